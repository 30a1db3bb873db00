package server

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/janelia-flyem/downsample/datatype/common/downres"
	"github.com/janelia-flyem/downsample/dvid"
)

// TestHelperProcess stands in for the downsample executable when batch tests
// launch the test binary itself.
func TestHelperProcess(t *testing.T) {
	if os.Getenv("DOWNSAMPLE_HELPER_PROCESS") != "1" {
		return
	}
	args := os.Args
	for len(args) > 0 && args[0] != "--" {
		args = args[1:]
	}
	if len(args) == 0 {
		fmt.Fprintf(os.Stderr, "Error: no arguments\n")
		os.Exit(ExitOther)
	}
	inv, err := ParseInvocation(dvid.Command(append([]string{"downsample"}, args[1:]...)))
	if err == nil {
		_, err = Downsample(context.Background(), inv)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	os.Exit(ExitCode(err))
}

func helperBatch(dir, input string) *Batch {
	return &Batch{
		Input:          input,
		OutputPrefix:   filepath.Join(dir, "out"),
		Factors:        [3]int{2, 2, 2},
		MaxTotalSplits: 3,
		SplitsDir:      filepath.Join(dir, "splits"),
		Binary:         os.Args[0],
		BinaryArgs:     []string{"-test.run=^TestHelperProcess$", "--"},
		MaxProcs:       2,
	}
}

func TestBatchRun(t *testing.T) {
	LoadConfig("")
	t.Setenv("DOWNSAMPLE_HELPER_PROCESS", "1")
	dir := t.TempDir()
	vol := downres.NewVolume[uint16](dvid.FullRegion([]int{20, 20, 20}), 1)
	vol.Fill(7)
	input := storeInput(t, filepath.Join(dir, "input"), vol)

	b := helperBatch(dir, input)
	total, err := b.Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if total != 3 {
		t.Fatalf("expected 3 splits, got %d", total)
	}
	var slices int
	for i := 0; i < total; i++ {
		h, data := readTile[uint16](t, SplitOutput(b.OutputPrefix, i))
		if h.Index[2] != slices {
			t.Errorf("split %d: expected z start %d, got %d", i, slices, h.Index[2])
		}
		slices += h.Size[2]
		for j, v := range data {
			if v != 7 {
				t.Fatalf("split %d voxel %d: expected 7, got %d", i, j, v)
			}
		}
	}
	if slices != 10 {
		t.Errorf("expected tiles to cover 10 slices, got %d", slices)
	}
}

func TestBatchFailure(t *testing.T) {
	LoadConfig("")
	t.Setenv("DOWNSAMPLE_HELPER_PROCESS", "1")
	dir := t.TempDir()
	vol := downres.NewVolume[int16](dvid.FullRegion([]int{8, 8, 8}), 1)
	input := storeInput(t, filepath.Join(dir, "input"), vol)

	b := helperBatch(dir, input)
	b.IsLabel = true
	if _, err := b.Run(context.Background()); !errors.Is(err, dvid.ErrUnsupportedType) {
		t.Errorf("expected unsupported type from split processes, got %v", err)
	}

	b = helperBatch(dir, filepath.Join(dir, "no-image"))
	if _, err := b.Run(context.Background()); !errors.Is(err, dvid.ErrIO) {
		t.Errorf("expected i/o error for missing input, got %v", err)
	}
}

func TestSplitOutput(t *testing.T) {
	if got := SplitOutput("gs://bucket/tiles/", 3); got != "gs://bucket/tiles/3" {
		t.Errorf("unexpected split output %q", got)
	}
	b := &Batch{Input: "in", OutputPrefix: "out", Factors: [3]int{2, 3, 4}, MaxTotalSplits: 5,
		SplitsDir: "s", BinaryArgs: []string{"-config", "c.toml"}, IsLabel: true}
	args := b.args(2)
	expected := []string{"-config", "c.toml", "1", "in", "out/2", "2", "3", "4", "5", "2", filepath.Join("s", "splits-2.txt")}
	if fmt.Sprint(args) != fmt.Sprint(expected) {
		t.Errorf("expected args %v, got %v", expected, args)
	}
}
