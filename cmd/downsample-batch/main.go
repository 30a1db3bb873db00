// Command-line tool that downsamples a whole image by running one downsample
// process per split.

package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/janelia-flyem/downsample/dvid"
	"github.com/janelia-flyem/downsample/server"
)

var (
	// Display usage if true.
	showHelp = flag.Bool("help", false, "")

	// Print the build version and exit.
	showVersion = flag.Bool("version", false, "")

	// Run in verbose mode if true.
	runVerbose = flag.Bool("verbose", false, "")

	// Path to a TOML or YAML configuration file, also passed to each process.
	configFile = flag.String("config", "", "")

	// Number of concurrent processes.  Zero uses the configured value.
	maxProcs = flag.Int("procs", 0, "")

	// Downsample executable.  Empty uses the configured value.
	binary = flag.String("binary", "", "")

	// Directory for the per-process splits files.
	splitsDir = flag.String("splits-dir", "", "")
)

const helpMessage = `
downsample-batch shrinks an image by running one downsample process per split

Usage: downsample-batch [options] <isLabelImage> <input> <outputPrefix> <fI> <fJ> <fK> <maxTotalSplits>

      Split i is written to <outputPrefix>/i.

      -binary     =string   downsample executable (default from config, else "downsample")
      -config     =string   TOML or YAML configuration file.
      -procs      =number   Maximum number of concurrent processes.
      -splits-dir =string   Directory for splits files (default: a temporary directory).
      -verbose    (flag)    Run in verbose mode.
      -version    (flag)    Print the build version.
  -h, -help       (flag)    Show help message
`

var usage = func() {
	fmt.Print(helpMessage)
}

func main() {
	flag.BoolVar(showHelp, "h", false, "Show help message")
	flag.Usage = usage
	flag.Parse()

	if *showVersion {
		fmt.Println(server.Version())
		os.Exit(0)
	}
	if *showHelp {
		flag.Usage()
		os.Exit(0)
	}
	if err := server.LoadConfig(*configFile); err != nil {
		exit(err)
	}
	if *runVerbose {
		dvid.Verbose = true
		dvid.SetLogMode(dvid.DebugMode)
	}
	defer dvid.Shutdown()

	b, err := parseBatch(flag.Args())
	if err != nil {
		flag.Usage()
		exit(err)
	}
	if b.SplitsDir == "" {
		dir, err := os.MkdirTemp("", "downsample-splits-")
		if err != nil {
			exit(dvid.IOError(err, "unable to create splits directory"))
		}
		defer os.RemoveAll(dir)
		b.SplitsDir = dir
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	timedLog := dvid.NewTimeLog()
	total, err := b.Run(ctx)
	if err != nil {
		exit(err)
	}
	timedLog.Infof("Wrote %d splits of %s to %s", total, b.Input, b.OutputPrefix)
}

func parseBatch(args []string) (*server.Batch, error) {
	if len(args) != 7 {
		return nil, dvid.ArgumentError("expected 7 arguments, got %d", len(args))
	}
	isLabel, err := dvid.ParseFlag01("isLabelImage", args[0])
	if err != nil {
		return nil, err
	}
	b := &server.Batch{
		IsLabel:      isLabel,
		Input:        args[1],
		OutputPrefix: args[2],
		SplitsDir:    *splitsDir,
		Binary:       server.BatchBinary(),
		MaxProcs:     server.MaxProcs(),
	}
	if b.Input == "" || b.OutputPrefix == "" {
		return nil, dvid.ArgumentError("input and output prefix must be non-empty")
	}
	for i, name := range []string{"fI", "fJ", "fK"} {
		if b.Factors[i], err = dvid.ParsePositiveInt(name, args[3+i]); err != nil {
			return nil, err
		}
	}
	if b.MaxTotalSplits, err = dvid.ParsePositiveInt("maxTotalSplits", args[6]); err != nil {
		return nil, err
	}
	if *binary != "" {
		b.Binary = *binary
	}
	if *maxProcs > 0 {
		b.MaxProcs = *maxProcs
	}
	if *configFile != "" {
		abs, err := filepath.Abs(*configFile)
		if err != nil {
			return nil, dvid.ArgumentError("bad config path %q: %v", *configFile, err)
		}
		b.BinaryArgs = []string{"-config", abs}
	}
	if *runVerbose {
		b.BinaryArgs = append(b.BinaryArgs, "-verbose")
	}
	return b, nil
}

func exit(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	dvid.Shutdown()
	os.Exit(server.ExitCode(err))
}
