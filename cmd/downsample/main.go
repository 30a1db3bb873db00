// Command-line tool that computes one split of a downsampled image.

package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"runtime/pprof"
	"syscall"

	"github.com/janelia-flyem/downsample/datatype"
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

	// Path to a TOML or YAML configuration file.
	configFile = flag.String("config", "", "")

	// List supported pixel layouts and exit.
	showTypes = flag.Bool("types", false, "")

	// Profile CPU usage using standard gotest system.
	cpuprofile = flag.String("cpuprofile", "", "")
)

const helpMessage = `
downsample shrinks an image by integer factors and writes one split of the result

Usage: downsample [options] ` + server.UsageArgs + `

      isLabelImage    1 if pixels are label identifiers, 0 for continuous values
      input           input image: local directory, file://, gs://, s3:// or mem:// reference
      output          output tile, same forms as input
      fI fJ fK        positive shrink factors per axis (fK ignored for 2d images)
      maxTotalSplits  upper bound on the number of splits of the shrunk image
      split           index of the split to compute, falling back to 0 if out of range
      splitsFile      file that receives the actual number of splits

      -config     =string   TOML or YAML configuration file.
      -cpuprofile =string   Write CPU profile to this file.
      -types      (flag)    List supported pixel layouts.
      -verbose    (flag)    Run in verbose mode.
      -version    (flag)    Print the build version.
  -h, -help       (flag)    Show help message

Exit status is 2 for bad arguments, 3 for unsupported pixel types or dimensions,
4 for I/O failures and 1 for anything else.
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
	if *showTypes {
		fmt.Print(datatype.CompiledChart())
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

	if *cpuprofile != "" {
		f, err := os.Create(*cpuprofile)
		if err != nil {
			log.Fatal(err)
		}
		pprof.StartCPUProfile(f)
		defer pprof.StopCPUProfile()
	}

	cmd := dvid.Command(append([]string{"downsample"}, flag.Args()...))
	inv, err := server.ParseInvocation(cmd)
	if err != nil {
		flag.Usage()
		exit(err)
	}

	// Capture ctrl+c and other interrupts and cancel any bucket transfers.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if _, err := server.Downsample(ctx, inv); err != nil {
		exit(err)
	}
}

func exit(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	pprof.StopCPUProfile()
	dvid.Shutdown()
	os.Exit(server.ExitCode(err))
}
