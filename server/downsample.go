package server

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/janelia-flyem/downsample/datatype"
	"github.com/janelia-flyem/downsample/dvid"
	"github.com/janelia-flyem/downsample/storage"
	"github.com/janelia-flyem/downsample/storage/dimage"

	humanize "github.com/dustin/go-humanize"
	"github.com/twinj/uuid"
	"gocloud.dev/blob"
)

// UsageArgs lists the positional arguments of a downsample invocation.
const UsageArgs = "<isLabelImage> <input> <output> <fI> <fJ> <fK> <maxTotalSplits> <split> <splitsFile>"

// Invocation holds the validated positional arguments of one downsample run.
type Invocation struct {
	IsLabel        bool
	Input          string
	Output         string
	Factors        [3]int
	MaxTotalSplits int
	Split          int
	SplitsFile     string
}

// ParseInvocation validates each positional argument of cmd.  The command name is
// the first element.
func ParseInvocation(cmd dvid.Command) (*Invocation, error) {
	var label, input, output, fi, fj, fk, maxSplits, split, splitsFile string
	overflow := cmd.CommandArgs(&label, &input, &output, &fi, &fj, &fk, &maxSplits, &split, &splitsFile)
	if cmd.NumArgs() < 9 || len(overflow) != 0 {
		return nil, dvid.ArgumentError("expected 9 arguments %s, got %d", UsageArgs, cmd.NumArgs())
	}
	inv := &Invocation{Input: input, Output: output, SplitsFile: splitsFile}
	var err error
	if inv.IsLabel, err = dvid.ParseFlag01("isLabelImage", label); err != nil {
		return nil, err
	}
	for i, s := range []string{fi, fj, fk} {
		if inv.Factors[i], err = dvid.ParsePositiveInt(fmt.Sprintf("shrink factor %d", i), s); err != nil {
			return nil, err
		}
	}
	if inv.MaxTotalSplits, err = dvid.ParsePositiveInt("maxTotalSplits", maxSplits); err != nil {
		return nil, err
	}
	if inv.Split, err = dvid.ParseNonNegativeInt("split", split); err != nil {
		return nil, err
	}
	for name, s := range map[string]string{"input": input, "output": output, "splitsFile": splitsFile} {
		if s == "" {
			return nil, dvid.ArgumentError("%s must not be empty", name)
		}
	}
	return inv, nil
}

func (inv *Invocation) String() string {
	return fmt.Sprintf("label=%t %s -> %s factors %v split %d of max %d", inv.IsLabel, inv.Input,
		inv.Output, inv.Factors, inv.Split, inv.MaxTotalSplits)
}

// Result summarizes a completed run.
type Result struct {
	JobID      string
	Split      dvid.Split
	ShrunkSize []int
	Kernel     string
	Bytes      int
	Elapsed    time.Duration
}

// openInput opens the image at ref and validates its metadata.
func openInput(ctx context.Context, ref string) (*blob.Bucket, *dimage.Reader, error) {
	bucket, err := storage.OpenBucket(ctx, ref)
	if err != nil {
		return nil, nil, err
	}
	reader, err := dimage.Open(ctx, bucket)
	if err != nil {
		bucket.Close()
		return nil, nil, err
	}
	if err := reader.Info().Validate(); err != nil {
		bucket.Close()
		return nil, nil, err
	}
	return bucket, reader, nil
}

// shrinkInput returns the shrink factor for the image and its shrunk geometry.
func shrinkInput(info dvid.ImageInfo, factors [3]int) (dvid.ShrinkFactor, dvid.Geometry, error) {
	f, err := dvid.NewShrinkFactor(info.Dims(), factors[0], factors[1], factors[2])
	if err != nil {
		return nil, dvid.Geometry{}, err
	}
	shrunk, err := info.Geometry.Shrink(f)
	if err != nil {
		return nil, dvid.Geometry{}, err
	}
	return f, shrunk, nil
}

// CountSplits returns the number of splits a run with these arguments would use,
// reading only the input header.
func CountSplits(ctx context.Context, input string, factors [3]int, maxTotalSplits int) (int, error) {
	bucket, reader, err := openInput(ctx, input)
	if err != nil {
		return 0, err
	}
	defer bucket.Close()
	_, shrunk, err := shrinkInput(reader.Info(), factors)
	if err != nil {
		return 0, err
	}
	return Splitter().NumberOfSplits(dvid.FullRegion(shrunk.Size), maxTotalSplits), nil
}

// newPublisher returns the completion event publisher or nil if none is configured.
var newPublisher = func() (*storage.EventPublisher, error) {
	return KafkaConfig().Initialize()
}

// Downsample computes one split of the shrunk input image and writes it as a tile
// whose geometry and index place it within the whole shrunk image.  The total
// number of splits is written to the splits file before the tile is computed.
func Downsample(ctx context.Context, inv *Invocation) (*Result, error) {
	jobID := fmt.Sprintf("%x", uuid.NewV4().Bytes())
	dvid.SetJobTag(jobID[:8])
	defer dvid.SetJobTag("")
	dvid.Debugf("downsample version %s: %s\n", Version(), inv)
	timedLog := dvid.NewTimeLog()
	startIO := storage.CurrentIOStats()
	dvid.Infof("Starting %s\n", inv)

	inBucket, reader, err := openInput(ctx, inv.Input)
	if err != nil {
		return nil, err
	}
	defer inBucket.Close()
	info := reader.Info()
	kernel, err := datatype.Resolve(info, inv.IsLabel, ContinuousMethod())
	if err != nil {
		return nil, err
	}
	f, shrunk, err := shrinkInput(info, inv.Factors)
	if err != nil {
		return nil, err
	}

	split := dvid.ComputeSplit(Splitter(), dvid.FullRegion(shrunk.Size), inv.MaxTotalSplits, inv.Split)
	if split.Index != inv.Split {
		dvid.Warningf("Split %d is out of range for %d splits, computing split %d\n", inv.Split, split.Total,
			split.Index)
	}
	if err := dvid.WriteTextFile(inv.SplitsFile, strconv.Itoa(split.Total)); err != nil {
		return nil, err
	}
	dvid.Infof("Input %s shrunk by %s to %v, %s with %s\n", info, f, shrunk.Size, split, kernel)

	tile, err := kernel.Run(reader, info.Geometry, f, split.Region)
	if err != nil {
		return nil, err
	}

	outInfo := dvid.ImageInfo{
		Geometry:   shrunk.RegionGeometry(split.Region),
		Component:  tile.Component,
		Pixel:      info.Pixel,
		Components: tile.Components,
	}
	outBucket, err := storage.OpenBucket(ctx, inv.Output)
	if err != nil {
		return nil, err
	}
	defer outBucket.Close()
	if err := dimage.WriteImage(ctx, outBucket, outInfo, split.Region.Index, tile.Data, OutputOptions()); err != nil {
		return nil, err
	}

	result := &Result{
		JobID:      jobID,
		Split:      split,
		ShrunkSize: shrunk.Size,
		Kernel:     kernel.String(),
		Bytes:      len(tile.Data),
		Elapsed:    timedLog.Elapsed(),
	}
	publishEvent(inv, result)
	timedLog.Infof("Wrote %s voxels (%s) of split %d/%d to %s", humanize.Comma(split.Region.NumVoxels()),
		humanize.Bytes(uint64(result.Bytes)), split.Index, split.Total, inv.Output)
	dvid.Debugf("Bucket traffic: %s, chunk cache hit rate %.2f\n", storage.CurrentIOStats().Since(startIO),
		dimage.CacheHitRate())
	return result, nil
}

// publishEvent announces the tile.  The tile is already durable, so failures are
// only logged.
func publishEvent(inv *Invocation, result *Result) {
	publisher, err := newPublisher()
	if err != nil {
		dvid.Errorf("Unable to connect for tile event: %v\n", err)
		return
	}
	if publisher == nil {
		return
	}
	defer publisher.Close()
	ev := &storage.TileEvent{
		JobID:       result.JobID,
		Input:       inv.Input,
		Output:      inv.Output,
		Split:       result.Split.Index,
		TotalSplits: result.Split.Total,
		Index:       result.Split.Region.Index,
		Size:        result.Split.Region.Size,
		ShrunkSize:  result.ShrunkSize,
		Label:       inv.IsLabel,
		ElapsedMs:   result.Elapsed.Milliseconds(),
	}
	if err := publisher.Publish(ev); err != nil {
		dvid.Errorf("Unable to publish tile event: %v\n", err)
	}
}

// Exit codes for each kind of failure.
const (
	ExitOther       = 1
	ExitBadArgument = 2
	ExitUnsupported = 3
	ExitIO          = 4
)

// ExitCode returns the process exit status for an error returned by a run.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, dvid.ErrBadArgument):
		return ExitBadArgument
	case errors.Is(err, dvid.ErrUnsupportedType), errors.Is(err, dvid.ErrDimensionality):
		return ExitUnsupported
	case errors.Is(err, dvid.ErrIO):
		return ExitIO
	default:
		return ExitOther
	}
}
