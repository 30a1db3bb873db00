package labels

import (
	"math/rand"
	"testing"

	"github.com/janelia-flyem/downsample/datatype/common/downres"
	"github.com/janelia-flyem/downsample/dvid"
)

func TestKernelParams(t *testing.T) {
	spacing := []float64{2, 2, 4}
	sigma, alpha := KernelParams(spacing)
	for i, sp := range spacing {
		if sigma[i] != sp*0.7355 {
			t.Errorf("axis %d: expected sigma %f, got %f", i, sp*0.7355, sigma[i])
		}
	}
	maxSigma := spacing[2] * 0.7355
	if alpha != maxSigma*2.5 {
		t.Errorf("expected alpha %f, got %f", maxSigma*2.5, alpha)
	}

	spacing = []float64{0.5, 3}
	sigma, alpha = KernelParams(spacing)
	maxSigma = spacing[1] * 0.7355
	if sigma[0] != spacing[0]*0.7355 || sigma[1] != maxSigma || alpha != maxSigma*2.5 {
		t.Errorf("bad 2d kernel params: %v, %f", sigma, alpha)
	}
}

// randomLabels fills a volume with labels drawn from choices in blobs so that
// neighboring voxels usually agree.
func randomLabels(size []int, choices []uint32, seed int64) *downres.Volume[uint32] {
	rng := rand.New(rand.NewSource(seed))
	vol := downres.NewVolume[uint32](dvid.FullRegion(size), 1)
	downres.ForEachIndex(vol.Region, func(idx []int) {
		cell := 0
		for _, v := range idx {
			cell = cell*7 + v/4
		}
		label := choices[(cell+rng.Intn(4)/3)%len(choices)]
		vol.Set(idx, 0, label)
	})
	return vol
}

func resampleLabels(t *testing.T, vol *downres.Volume[uint32], geom dvid.Geometry, f dvid.ShrinkFactor,
	region *dvid.Region) *downres.Volume[uint32] {

	shrunk, err := geom.Shrink(f)
	if err != nil {
		t.Fatal(err)
	}
	out := dvid.FullRegion(shrunk.Size)
	if region != nil {
		out = *region
	}
	sigma, alpha := KernelParams(shrunk.Spacing)
	result, err := GaussianResample[uint32](vol, geom, shrunk, out, sigma, alpha)
	if err != nil {
		t.Fatal(err)
	}
	return result
}

func TestLabelClosure(t *testing.T) {
	input := []uint32{3, 1000, 77777}
	for _, size := range [][]int{{20, 18, 16}, {31, 9}} {
		vol := randomLabels(size, input, 42)
		geom := dvid.NewGeometry(size)
		f := make(dvid.ShrinkFactor, len(size))
		for i := range f {
			f[i] = 2 + i%2
		}
		out := resampleLabels(t, vol, geom, f, nil)
		got := NewSet(out.Data)
		if !got.SubsetOf(NewSet(vol.Data)) {
			t.Errorf("output labels %s not within input labels %s", got, NewSet(vol.Data))
		}
	}
}

func TestUniformLabel(t *testing.T) {
	size := []int{12, 10, 8}
	vol := downres.NewVolume[uint32](dvid.FullRegion(size), 1)
	vol.Fill(23)
	geom := dvid.NewGeometry(size)
	geom.Spacing = []float64{1, 1, 3}
	out := resampleLabels(t, vol, geom, dvid.ShrinkFactor{2, 2, 1}, nil)
	for i, v := range out.Data {
		if v != 23 {
			t.Fatalf("voxel %d: expected 23, got %d", i, v)
		}
	}
}

func TestPluralityNotNearest(t *testing.T) {
	size := []int{3, 3}
	vol := downres.NewVolume[uint32](dvid.FullRegion(size), 1)
	vol.Fill(7)
	vol.Set([]int{1, 1}, 0, 9)
	out := resampleLabels(t, vol, dvid.NewGeometry(size), dvid.ShrinkFactor{3, 3}, nil)
	if len(out.Data) != 1 || out.Data[0] != 7 {
		t.Errorf("expected surrounding label 7 to outvote center, got %v", out.Data)
	}
}

func TestFirstLabelWinsTie(t *testing.T) {
	geom := dvid.NewGeometry([]int{2, 1})
	for _, pair := range [][2]uint32{{5, 3}, {3, 5}} {
		vol := downres.NewVolume[uint32](dvid.FullRegion(geom.Size), 1)
		copy(vol.Data, pair[:])
		out := resampleLabels(t, vol, geom, dvid.ShrinkFactor{2, 1}, nil)
		if out.Data[0] != pair[0] {
			t.Errorf("labels %v: expected first label %d to win tie, got %d", pair, pair[0], out.Data[0])
		}
	}
}

func TestShortAxisLabels(t *testing.T) {
	size := []int{3, 4}
	vol := downres.NewVolume[uint8](dvid.FullRegion(size), 1)
	vol.Fill(7)
	geom := dvid.NewGeometry(size)
	shrunk, err := geom.Shrink(dvid.ShrinkFactor{8, 2})
	if err != nil {
		t.Fatal(err)
	}
	sigma, alpha := KernelParams(shrunk.Spacing)
	out, err := GaussianResample[uint8](vol, geom, shrunk, dvid.FullRegion(shrunk.Size), sigma, alpha)
	if err != nil {
		t.Fatal(err)
	}
	for i, v := range out.Data {
		if v != 7 {
			t.Fatalf("voxel %d: expected 7, got %d", i, v)
		}
	}

	input := []uint32{4, 900, 31}
	for _, tc := range []struct {
		size []int
		f    dvid.ShrinkFactor
	}{
		{[]int{3, 10, 5}, dvid.ShrinkFactor{4, 2, 8}},
		{[]int{20, 2, 1}, dvid.ShrinkFactor{2, 4, 2}},
		{[]int{1, 6}, dvid.ShrinkFactor{3, 3}},
	} {
		lvol := randomLabels(tc.size, input, 11)
		lout := resampleLabels(t, lvol, dvid.NewGeometry(tc.size), tc.f, nil)
		got := NewSet(lout.Data)
		if !got.SubsetOf(NewSet(lvol.Data)) {
			t.Errorf("shrink %v by %v: output labels %s not within input labels %s",
				tc.size, tc.f, got, NewSet(lvol.Data))
		}
	}
}

func TestSplitTilesMatchWhole(t *testing.T) {
	defer downres.SetSlabVoxels(0)
	size := []int{17, 15, 13}
	vol := randomLabels(size, []uint32{1, 2, 3, 4}, 7)
	geom := dvid.NewGeometry(size)
	f := dvid.ShrinkFactor{2, 2, 2}
	whole := resampleLabels(t, vol, geom, f, nil)

	downres.SetSlabVoxels(500)
	full := whole.Region
	total := dvid.NumberOfSplits(full, 3)
	for i := 0; i < total; i++ {
		sub, _ := dvid.GetSplit(i, total, full)
		tile := resampleLabels(t, vol, geom, f, &sub)
		downres.ForEachIndex(sub, func(idx []int) {
			if tile.At(idx, 0) != whole.At(idx, 0) {
				t.Fatalf("split %d differs at %v", i, idx)
			}
		})
	}
}

func TestLabelExampleScenario(t *testing.T) {
	size := []int{100, 100, 100}
	geom := dvid.NewGeometry(size)
	vol := downres.NewVolume[uint8](dvid.FullRegion(size), 1)
	// Three labels in slabs along x.
	downres.ForEachIndex(vol.Region, func(idx []int) {
		switch {
		case idx[0] < 30:
			vol.Set(idx, 0, 10)
		case idx[0] < 70:
			vol.Set(idx, 0, 20)
		default:
			vol.Set(idx, 0, 30)
		}
	})
	shrunk, err := geom.Shrink(dvid.ShrinkFactor{2, 2, 2})
	if err != nil {
		t.Fatal(err)
	}
	full := dvid.FullRegion(shrunk.Size)
	total := dvid.NumberOfSplits(full, 4)
	sub, _ := dvid.GetSplit(0, total, full)
	sigma, alpha := KernelParams(shrunk.Spacing)
	out, err := GaussianResample[uint8](vol, geom, shrunk, sub, sigma, alpha)
	if err != nil {
		t.Fatal(err)
	}
	got := NewSet(out.Data)
	input := NewSet([]uint8{10, 20, 30})
	if !got.SubsetOf(input) {
		t.Fatalf("output labels %s introduce values beyond %s", got, input)
	}
	if !got.Contains(10) || !got.Contains(20) || !got.Contains(30) {
		t.Errorf("expected all three slabs to survive shrinking, got %s", got)
	}
	// The 10/20 boundary lies at input x = 29.5, which is output x = 14.5.
	if v := out.At([]int{14, 5, 5}, 0); v != 10 {
		t.Errorf("expected label 10 left of boundary, got %d", v)
	}
	if v := out.At([]int{15, 5, 5}, 0); v != 20 {
		t.Errorf("expected label 20 right of boundary, got %d", v)
	}
}

func TestBadKernel(t *testing.T) {
	geom := dvid.NewGeometry([]int{4, 4})
	vol := downres.NewVolume[uint8](dvid.FullRegion(geom.Size), 1)
	if _, err := GaussianResample[uint8](vol, geom, geom, dvid.FullRegion(geom.Size), []float64{1}, 1); err == nil {
		t.Errorf("expected error for wrong number of sigmas")
	}
	if _, err := GaussianResample[uint8](vol, geom, geom, dvid.FullRegion(geom.Size), []float64{1, 0}, 1); err == nil {
		t.Errorf("expected error for zero sigma")
	}
}
