// Command-line tool for inspecting, importing and exporting chunked images.

package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/janelia-flyem/downsample/dvid"
	"github.com/janelia-flyem/downsample/server"
	"github.com/janelia-flyem/downsample/storage"
	"github.com/janelia-flyem/downsample/storage/dimage"

	"github.com/dustin/go-humanize"
)

const helpMessage = `
dimage manages chunked images in local directories or object storage buckets

Usage: dimage [options] <command> <image> [command options]

Commands:

  info    <image>     Print the image header as JSON.
  export  <image>     Write the raw pixels to stdout, fastest axis first, little-endian.
  import  <image>     Read raw pixels from stdin and write a new image.

Import options:

      -size       =list     Comma-separated extent per axis, e.g., 512,512,100 (required)
      -type       =string   Component type, e.g., uint8 or <u2 (required)
      -pixel      =string   Pixel type (default Scalar)
      -components =number   Components per pixel, needed for VariableLengthVector
      -spacing    =list     Physical spacing per axis (default all 1)
      -origin     =list     Physical origin per axis (default all 0)
      -index      =list     Index of the image's first voxel (default all 0)
      -chunk      =number   Slices per chunk along the slowest axis
      -compress   =string   none, snappy, gzip or zstd
      -checksum   =string   none or crc32

Options:

      -config     =string   TOML or YAML configuration file.
      -verbose    (flag)    Run in verbose mode.
      -version    (flag)    Print the build version.
  -h, -help       (flag)    Show help message
`

var (
	showHelp    = flag.Bool("help", false, "")
	showVersion = flag.Bool("version", false, "")
	runVerbose = flag.Bool("verbose", false, "")
	configFile = flag.String("config", "", "")
)

func main() {
	flag.BoolVar(showHelp, "h", false, "Show help message")
	flag.Usage = func() { fmt.Print(helpMessage) }
	flag.Parse()

	if *showVersion {
		fmt.Println(server.Version())
		os.Exit(0)
	}
	if *showHelp || flag.NArg() < 2 {
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

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var err error
	switch cmd, ref, args := flag.Arg(0), flag.Arg(1), flag.Args()[2:]; cmd {
	case "info":
		err = info(ctx, ref)
	case "export":
		err = export(ctx, ref)
	case "import":
		err = importImage(ctx, ref, args)
	default:
		flag.Usage()
		err = dvid.ArgumentError("unknown command %q", cmd)
	}
	if err != nil {
		exit(err)
	}
}

func open(ctx context.Context, ref string) (*dimage.Reader, func(), error) {
	bucket, err := storage.OpenBucket(ctx, ref)
	if err != nil {
		return nil, nil, err
	}
	r, err := dimage.Open(ctx, bucket)
	if err != nil {
		bucket.Close()
		return nil, nil, err
	}
	return r, func() { bucket.Close() }, nil
}

func info(ctx context.Context, ref string) error {
	r, done, err := open(ctx, ref)
	if err != nil {
		return err
	}
	defer done()
	b, err := dvid.MarshalJSON(r.Header(), "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(b))
	return nil
}

func export(ctx context.Context, ref string) error {
	r, done, err := open(ctx, ref)
	if err != nil {
		return err
	}
	defer done()
	w := bufio.NewWriter(os.Stdout)
	n, err := r.WriteTo(w)
	if err != nil {
		return err
	}
	if err := w.Flush(); err != nil {
		return dvid.IOError(err, "unable to write to stdout")
	}
	dvid.Infof("Exported %s from %s\n", humanize.Bytes(uint64(n)), ref)
	return nil
}

func importImage(ctx context.Context, ref string, args []string) error {
	fs := flag.NewFlagSet("import", flag.ContinueOnError)
	sizeStr := fs.String("size", "", "")
	typeStr := fs.String("type", "", "")
	pixelStr := fs.String("pixel", "Scalar", "")
	components := fs.Int("components", 0, "")
	spacingStr := fs.String("spacing", "", "")
	originStr := fs.String("origin", "", "")
	indexStr := fs.String("index", "", "")
	opts := server.OutputOptions()
	fs.IntVar(&opts.ChunkSlices, "chunk", opts.ChunkSlices, "")
	compress := fs.String("compress", "", "")
	checksum := fs.String("checksum", "", "")
	if err := fs.Parse(args); err != nil {
		return dvid.ArgumentError("%v", err)
	}

	size, err := dvid.ParseIntList(*sizeStr)
	if err != nil {
		return err
	}
	if len(size) == 0 || *typeStr == "" {
		return dvid.ArgumentError("import needs -size and -type")
	}
	info := dvid.ImageInfo{Geometry: dvid.NewGeometry(size)}
	if info.Component, err = dvid.ParseComponentType(*typeStr); err != nil {
		return err
	}
	if info.Pixel, err = dvid.ParsePixelType(*pixelStr); err != nil {
		return err
	}
	info.Components = *components
	if n := info.Pixel.Components(len(size)); n != 0 {
		info.Components = n
	}
	for _, setting := range []struct {
		s   string
		dst []float64
	}{{*spacingStr, info.Spacing}, {*originStr, info.Origin}} {
		vals, err := dvid.ParseFloatList(setting.s)
		if err != nil {
			return err
		}
		if len(vals) == 0 {
			continue
		}
		if len(vals) != len(size) {
			return dvid.ArgumentError("expected %d values in %q", len(size), setting.s)
		}
		copy(setting.dst, vals)
	}
	index, err := dvid.ParseIntList(*indexStr)
	if err != nil {
		return err
	}
	if *compress != "" {
		if opts.Compression, err = dvid.ParseCompression(*compress); err != nil {
			return err
		}
	}
	if *checksum != "" {
		if opts.Checksum, err = dvid.ParseChecksum(*checksum); err != nil {
			return err
		}
	}

	bucket, err := storage.OpenBucket(ctx, ref)
	if err != nil {
		return err
	}
	defer bucket.Close()
	w, err := dimage.Create(ctx, bucket, info, index, opts)
	if err != nil {
		return err
	}
	n, err := w.ReadFromContext(ctx, bufio.NewReader(os.Stdin))
	if err != nil {
		return err
	}
	if err := w.Commit(ctx); err != nil {
		return err
	}
	dvid.Infof("Imported %s into %s: %s\n", humanize.Bytes(uint64(n)), ref, w.Header())
	return nil
}

func exit(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	dvid.Shutdown()
	os.Exit(server.ExitCode(err))
}
