package server

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/janelia-flyem/downsample/dvid"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
)

// Batch describes a run of every split of a downsampled image, one downsample
// process per split.
type Batch struct {
	IsLabel        bool
	Input          string
	OutputPrefix   string
	Factors        [3]int
	MaxTotalSplits int

	// SplitsDir receives one splits file per process.
	SplitsDir string

	// Binary is the downsample executable and BinaryArgs are passed before the
	// positional arguments, e.g., a -config option.
	Binary     string
	BinaryArgs []string

	// MaxProcs bounds the number of concurrent processes.
	MaxProcs int
}

// SplitOutput returns the output reference for split i.
func SplitOutput(prefix string, i int) string {
	return strings.TrimRight(prefix, "/") + "/" + strconv.Itoa(i)
}

func (b *Batch) args(split int) []string {
	label := "0"
	if b.IsLabel {
		label = "1"
	}
	args := append([]string{}, b.BinaryArgs...)
	return append(args, label, b.Input, SplitOutput(b.OutputPrefix, split),
		strconv.Itoa(b.Factors[0]), strconv.Itoa(b.Factors[1]), strconv.Itoa(b.Factors[2]),
		strconv.Itoa(b.MaxTotalSplits), strconv.Itoa(split), b.splitsFile(split))
}

func (b *Batch) splitsFile(split int) string {
	return filepath.Join(b.SplitsDir, fmt.Sprintf("splits-%d.txt", split))
}

func (b *Batch) runSplit(ctx context.Context, split, total int) error {
	timedLog := dvid.NewTimeLog()
	cmd := exec.CommandContext(ctx, b.Binary, b.args(split)...)
	out, err := cmd.CombinedOutput()
	if err != nil {
		dvid.Errorf("Split %d output:\n%s\n", split, out)
		if exitErr, ok := err.(*exec.ExitError); ok {
			return fmt.Errorf("split %d exited with status %d: %w", split, exitErr.ExitCode(),
				exitKind(exitErr.ExitCode()))
		}
		return dvid.IOError(err, "unable to run %s for split %d", b.Binary, split)
	}
	contents, err := os.ReadFile(b.splitsFile(split))
	if err != nil {
		return dvid.IOError(err, "split %d left no splits file", split)
	}
	if got := strings.TrimSpace(string(contents)); got != strconv.Itoa(total) {
		return fmt.Errorf("split %d reported %s splits, expected %d", split, got, total)
	}
	timedLog.Infof("Finished split %d/%d", split, total)
	return nil
}

// exitKind returns the error kind for a downsample exit status.
func exitKind(code int) error {
	switch code {
	case ExitBadArgument:
		return dvid.ErrBadArgument
	case ExitUnsupported:
		return dvid.ErrUnsupportedType
	case ExitIO:
		return dvid.ErrIO
	}
	return fmt.Errorf("downsample failed")
}

// Run computes the number of splits and runs a process for each, at most MaxProcs
// at a time.  The first failure cancels the remaining processes.
func (b *Batch) Run(ctx context.Context) (total int, err error) {
	if total, err = CountSplits(ctx, b.Input, b.Factors, b.MaxTotalSplits); err != nil {
		return 0, err
	}
	if err = os.MkdirAll(b.SplitsDir, 0755); err != nil {
		return 0, dvid.IOError(err, "unable to create splits directory %q", b.SplitsDir)
	}
	procs := b.MaxProcs
	if procs <= 0 {
		procs = 1
	}
	dvid.Infof("Running %d splits of %s with up to %d processes of %s\n", total, b.Input, procs, b.Binary)

	sem := semaphore.NewWeighted(int64(procs))
	g, gctx := errgroup.WithContext(ctx)
	for i := 0; i < total; i++ {
		if err := sem.Acquire(gctx, 1); err != nil {
			break
		}
		split := i
		g.Go(func() error {
			defer sem.Release(1)
			return b.runSplit(gctx, split, total)
		})
	}
	if err := g.Wait(); err != nil {
		return total, err
	}
	return total, ctx.Err()
}
