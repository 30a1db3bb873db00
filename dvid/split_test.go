package dvid

import (
	"errors"

	. "github.com/janelia-flyem/go/gocheck"
)

type SplitSuite struct {
	regions []Region
}

var _ = Suite(&SplitSuite{})

func (s *SplitSuite) SetUpSuite(c *C) {
	s.regions = []Region{
		FullRegion([]int{50, 50, 50}),
		FullRegion([]int{1, 1, 1}),
		FullRegion([]int{7, 3}),
		FullRegion([]int{3, 7}),
		FullRegion([]int{13, 40, 5}),
		FullRegion([]int{64, 64, 1}),
		NewRegion([]int{5, 10, 20}, []int{9, 9, 2}),
		NewRegion([]int{100, 3}, []int{17, 1}),
	}
}

var strategies = []Splitter{BalancedSplitter{}, SlowDimSplitter{}}

// checkCoverage verifies that every voxel of r is covered by exactly one split.
func checkCoverage(c *C, sp Splitter, r Region, requested int) {
	total := sp.NumberOfSplits(r, requested)
	c.Assert(total >= 1, Equals, true, Commentf("%s %s max %d", sp, r, requested))
	c.Assert(total <= requested || requested < 1, Equals, true, Commentf("%s %s max %d", sp, r, requested))

	counts := make(map[int]int)
	strides := make([]int, r.NumDims())
	stride := 1
	for i := range strides {
		strides[i] = stride
		stride *= r.Size[i]
	}
	for i := 0; i < total; i++ {
		sub, used := sp.GetSplit(i, total, r)
		c.Assert(used, Equals, i)
		c.Assert(sub.NumVoxels() > 0, Equals, true)
		c.Assert(r.Contains(sub), Equals, true, Commentf("%s split %d of %s: %s", sp, i, r, sub))
		forEachIndex(sub, func(idx []int) {
			pos := 0
			for d := range idx {
				pos += (idx[d] - r.Index[d]) * strides[d]
			}
			counts[pos]++
		})
	}
	c.Assert(int64(len(counts)), Equals, r.NumVoxels())
	for pos, n := range counts {
		c.Assert(n, Equals, 1, Commentf("voxel %d covered %d times", pos, n))
	}
}

func forEachIndex(r Region, fn func(idx []int)) {
	idx := make([]int, r.NumDims())
	copy(idx, r.Index)
	end := r.End()
	for {
		fn(idx)
		d := 0
		for ; d < len(idx); d++ {
			idx[d]++
			if idx[d] < end[d] {
				break
			}
			idx[d] = r.Index[d]
		}
		if d == len(idx) {
			return
		}
	}
}

func (s *SplitSuite) TestCoverage(c *C) {
	for _, sp := range strategies {
		for _, r := range s.regions {
			for _, requested := range []int{1, 2, 3, 4, 5, 7, 16, 100} {
				checkCoverage(c, sp, r, requested)
			}
		}
	}
}

func (s *SplitSuite) TestDeterminism(c *C) {
	for _, sp := range strategies {
		for _, r := range s.regions {
			total := sp.NumberOfSplits(r, 4)
			c.Assert(sp.NumberOfSplits(r, 4), Equals, total)
			for i := 0; i < total; i++ {
				a, _ := sp.GetSplit(i, total, r)
				b, _ := sp.GetSplit(i, total, r)
				c.Assert(a.Equals(b), Equals, true)
			}
		}
	}
}

func (s *SplitSuite) TestOutOfRangeFallback(c *C) {
	for _, sp := range strategies {
		for _, r := range s.regions {
			total := sp.NumberOfSplits(r, 4)
			first, _ := sp.GetSplit(0, total, r)
			for _, i := range []int{total, total + 1, 1000, -1} {
				sub, used := sp.GetSplit(i, total, r)
				c.Assert(used, Equals, 0)
				c.Assert(sub.Equals(first), Equals, true)
			}
		}
	}
}

func (s *SplitSuite) TestBalancedAxisAndLengths(c *C) {
	r := FullRegion([]int{50, 50, 50})
	total := NumberOfSplits(r, 4)
	c.Assert(total, Equals, 4)

	// Ties go to the slowest axis.
	expected := []Region{
		NewRegion([]int{0, 0, 0}, []int{50, 50, 13}),
		NewRegion([]int{0, 0, 13}, []int{50, 50, 13}),
		NewRegion([]int{0, 0, 26}, []int{50, 50, 12}),
		NewRegion([]int{0, 0, 38}, []int{50, 50, 12}),
	}
	for i, want := range expected {
		got, _ := GetSplit(i, total, r)
		c.Assert(got.Equals(want), Equals, true, Commentf("split %d: got %s", i, got))
	}

	// Largest extent wins over the slowest axis.
	r = FullRegion([]int{13, 40, 5})
	sub, _ := GetSplit(1, NumberOfSplits(r, 3), r)
	c.Assert(sub.Equals(NewRegion([]int{0, 14, 0}, []int{13, 13, 5})), Equals, true)

	// Count never exceeds the extent of the split axis.
	r = FullRegion([]int{7, 3})
	c.Assert(NumberOfSplits(r, 100), Equals, 7)
	c.Assert(NumberOfSplits(r, 0), Equals, 1)
}

func (s *SplitSuite) TestSlowDim(c *C) {
	sp := SlowDimSplitter{}

	// 10 slices into 4 requested pieces gives 3,3,3,1.
	r := FullRegion([]int{20, 20, 10})
	total := sp.NumberOfSplits(r, 4)
	c.Assert(total, Equals, 4)
	last, _ := sp.GetSplit(3, total, r)
	c.Assert(last.Equals(NewRegion([]int{0, 0, 9}, []int{20, 20, 1})), Equals, true)

	// 10 slices into 6 requested pieces only needs 5 pieces of 2.
	c.Assert(sp.NumberOfSplits(r, 6), Equals, 5)

	// Trailing unit axes are skipped.
	r = FullRegion([]int{20, 8, 1})
	sub, _ := sp.GetSplit(1, sp.NumberOfSplits(r, 2), r)
	c.Assert(sub.Equals(NewRegion([]int{0, 4, 0}, []int{20, 4, 1})), Equals, true)
}

func (s *SplitSuite) TestNewSplitter(c *C) {
	sp, err := NewSplitter("")
	c.Assert(err, IsNil)
	c.Assert(sp.String(), Equals, "balanced")
	sp, err = NewSplitter("SlowDim")
	c.Assert(err, IsNil)
	c.Assert(sp.String(), Equals, "slowdim")
	_, err = NewSplitter("random")
	c.Assert(errors.Is(err, ErrBadArgument), Equals, true)

	split := ComputeSplit(BalancedSplitter{}, FullRegion([]int{50, 50, 50}), 4, 4)
	c.Assert(split.Index, Equals, 0)
	c.Assert(split.Total, Equals, 4)
	c.Assert(split.Region.Size, DeepEquals, []int{50, 50, 13})
}
