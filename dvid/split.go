/*
	This file partitions a region into disjoint, contiguous sub-regions along a
	single axis so each piece can be computed by an independent process.
*/

package dvid

import (
	"strings"
)

// Splitter partitions a region into at most a requested number of non-empty,
// disjoint sub-regions whose union is the region.  Both methods are pure.
type Splitter interface {
	// NumberOfSplits returns the number of sub-regions, between 1 and requestedMax.
	NumberOfSplits(r Region, requestedMax int) int

	// GetSplit returns sub-region i of total.  An index outside [0, total) falls
	// back to 0 and the index actually used is returned.
	GetSplit(i, total int, r Region) (Region, int)

	String() string
}

// NewSplitter returns the split strategy with the given name: "balanced" (the
// default when name is empty) or "slowdim".
func NewSplitter(name string) (Splitter, error) {
	switch strings.ToLower(name) {
	case "", "balanced":
		return BalancedSplitter{}, nil
	case "slowdim":
		return SlowDimSplitter{}, nil
	default:
		return nil, ArgumentError("unknown splitter %q, expected \"balanced\" or \"slowdim\"", name)
	}
}

// ComputeSplit returns the descriptor for split i when asking s for at most
// requestedMax pieces of r.
func ComputeSplit(s Splitter, r Region, requestedMax, i int) Split {
	total := s.NumberOfSplits(r, requestedMax)
	sub, used := s.GetSplit(i, total, r)
	return Split{Index: used, Total: total, Region: sub}
}

// NumberOfSplits uses the balanced strategy.
func NumberOfSplits(r Region, requestedMax int) int {
	return BalancedSplitter{}.NumberOfSplits(r, requestedMax)
}

// GetSplit uses the balanced strategy.
func GetSplit(i, total int, r Region) (Region, int) {
	return BalancedSplitter{}.GetSplit(i, total, r)
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// BalancedSplitter cuts the axis with the greatest extent, preferring the
// slowest (highest numbered) axis on ties, into chunks whose lengths differ
// by at most one.  Longer chunks come first.
type BalancedSplitter struct{}

func (BalancedSplitter) String() string { return "balanced" }

func (BalancedSplitter) splitAxis(r Region) int {
	axis := 0
	for i, extent := range r.Size {
		if extent >= r.Size[axis] {
			axis = i
		}
	}
	return axis
}

func (s BalancedSplitter) NumberOfSplits(r Region, requestedMax int) int {
	if r.NumVoxels() == 0 {
		return 1
	}
	extent := r.Size[s.splitAxis(r)]
	return clampInt(requestedMax, 1, extent)
}

func (s BalancedSplitter) GetSplit(i, total int, r Region) (Region, int) {
	out := r.Copy()
	if r.NumVoxels() == 0 {
		return out, 0
	}
	axis := s.splitAxis(r)
	extent := r.Size[axis]
	total = clampInt(total, 1, extent)
	if i < 0 || i >= total {
		i = 0
	}
	base := extent / total
	rem := extent % total
	length := base
	if i < rem {
		length++
	}
	start := i*base + clampInt(i, 0, rem)
	out.Index[axis] += start
	out.Size[axis] = length
	return out, i
}

// SlowDimSplitter cuts the slowest axis with an extent above one into pieces of
// ceil(extent/requested) with a possibly shorter final piece.  It reproduces
// the tile layout of earlier versions of this tool.
type SlowDimSplitter struct{}

func (SlowDimSplitter) String() string { return "slowdim" }

// splitAxis returns -1 if every axis has extent 1.
func (SlowDimSplitter) splitAxis(r Region) int {
	axis := len(r.Size) - 1
	for axis >= 0 && r.Size[axis] == 1 {
		axis--
	}
	return axis
}

func ceilDiv(a, b int) int {
	return (a + b - 1) / b
}

func (s SlowDimSplitter) NumberOfSplits(r Region, requestedMax int) int {
	if r.NumVoxels() == 0 {
		return 1
	}
	axis := s.splitAxis(r)
	if axis < 0 {
		return 1
	}
	extent := r.Size[axis]
	perPiece := ceilDiv(extent, clampInt(requestedMax, 1, extent))
	return ceilDiv(extent, perPiece)
}

func (s SlowDimSplitter) GetSplit(i, total int, r Region) (Region, int) {
	out := r.Copy()
	if r.NumVoxels() == 0 {
		return out, 0
	}
	axis := s.splitAxis(r)
	if axis < 0 {
		return out, 0
	}
	extent := r.Size[axis]
	perPiece := ceilDiv(extent, clampInt(total, 1, extent))
	pieces := ceilDiv(extent, perPiece)
	if i < 0 || i >= pieces {
		i = 0
	}
	out.Index[axis] += i * perPiece
	if i < pieces-1 {
		out.Size[axis] = perPiece
	} else {
		out.Size[axis] = extent - i*perPiece
	}
	return out, i
}
