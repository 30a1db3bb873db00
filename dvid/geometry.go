package dvid

import (
	"fmt"
)

// Region is an axis-aligned box in index space.  Regions are values: methods
// never modify the receiver and always return fresh slices.
type Region struct {
	Index []int
	Size  []int
}

// NewRegion returns a region with copies of the given index and size.
func NewRegion(index, size []int) Region {
	return Region{Index: copyInts(index), Size: copyInts(size)}
}

// FullRegion returns the region starting at the origin with the given size.
func FullRegion(size []int) Region {
	return Region{Index: make([]int, len(size)), Size: copyInts(size)}
}

func copyInts(v []int) []int {
	if v == nil {
		return nil
	}
	out := make([]int, len(v))
	copy(out, v)
	return out
}

// NumDims returns the dimensionality of the region.
func (r Region) NumDims() int {
	return len(r.Size)
}

// NumVoxels returns the number of voxels within this region.
func (r Region) NumVoxels() int64 {
	if len(r.Size) == 0 {
		return 0
	}
	n := int64(1)
	for _, s := range r.Size {
		if s <= 0 {
			return 0
		}
		n *= int64(s)
	}
	return n
}

// End returns the exclusive upper index along each axis.
func (r Region) End() []int {
	end := make([]int, len(r.Size))
	for i := range r.Size {
		end[i] = r.Index[i] + r.Size[i]
	}
	return end
}

// Copy returns a region not sharing memory with r.
func (r Region) Copy() Region {
	return NewRegion(r.Index, r.Size)
}

// Equals returns true if both regions have identical index and size.
func (r Region) Equals(r2 Region) bool {
	if len(r.Index) != len(r2.Index) || len(r.Size) != len(r2.Size) {
		return false
	}
	for i := range r.Index {
		if r.Index[i] != r2.Index[i] {
			return false
		}
	}
	for i := range r.Size {
		if r.Size[i] != r2.Size[i] {
			return false
		}
	}
	return true
}

// ContainsIndex returns true if the index lies within the region.
func (r Region) ContainsIndex(idx []int) bool {
	if len(idx) != len(r.Size) {
		return false
	}
	for i := range idx {
		if idx[i] < r.Index[i] || idx[i] >= r.Index[i]+r.Size[i] {
			return false
		}
	}
	return true
}

// Contains returns true if r2 lies entirely within r.
func (r Region) Contains(r2 Region) bool {
	if len(r2.Size) != len(r.Size) {
		return false
	}
	for i := range r.Size {
		if r2.Index[i] < r.Index[i] || r2.Index[i]+r2.Size[i] > r.Index[i]+r.Size[i] {
			return false
		}
	}
	return true
}

// Intersect returns the overlap of two regions and false if they are disjoint.
func (r Region) Intersect(r2 Region) (Region, bool) {
	if len(r2.Size) != len(r.Size) {
		return Region{}, false
	}
	out := Region{Index: make([]int, len(r.Size)), Size: make([]int, len(r.Size))}
	for i := range r.Size {
		beg := r.Index[i]
		if r2.Index[i] > beg {
			beg = r2.Index[i]
		}
		end := r.Index[i] + r.Size[i]
		if e2 := r2.Index[i] + r2.Size[i]; e2 < end {
			end = e2
		}
		if end <= beg {
			return Region{}, false
		}
		out.Index[i] = beg
		out.Size[i] = end - beg
	}
	return out, true
}

// CheckWithin returns an error unless r is a non-empty region inside an image of the given size.
func (r Region) CheckWithin(imageSize []int) error {
	if len(r.Index) != len(imageSize) || len(r.Size) != len(imageSize) {
		return GeometryError("region %s has wrong dimensionality for image size %s", r, intsString(imageSize))
	}
	for i := range imageSize {
		if r.Index[i] < 0 || r.Size[i] <= 0 || r.Index[i]+r.Size[i] > imageSize[i] {
			return GeometryError("region %s is outside image size %s", r, intsString(imageSize))
		}
	}
	return nil
}

func (r Region) String() string {
	return fmt.Sprintf("index %s size %s", intsString(r.Index), intsString(r.Size))
}

// ShrinkFactor is the positive integer bin width along each axis.
type ShrinkFactor []int

// NewShrinkFactor builds a factor for an image of the given dimensionality from the
// three per-axis factors given on the command line.  The third factor is ignored for 2d.
func NewShrinkFactor(dims int, fi, fj, fk int) (ShrinkFactor, error) {
	var f ShrinkFactor
	switch dims {
	case 2:
		f = ShrinkFactor{fi, fj}
	case 3:
		f = ShrinkFactor{fi, fj, fk}
	default:
		return nil, DimensionalityError(dims)
	}
	if err := f.Validate(dims); err != nil {
		return nil, err
	}
	return f, nil
}

// Validate checks that every factor is positive and the dimensionality matches.
func (f ShrinkFactor) Validate(dims int) error {
	if len(f) != dims {
		return ArgumentError("shrink factor %s does not match %dd image", f, dims)
	}
	for i, v := range f {
		if v <= 0 {
			return ArgumentError("shrink factor along axis %d must be positive, got %d", i, v)
		}
	}
	return nil
}

// IsIdentity returns true if every factor is 1.
func (f ShrinkFactor) IsIdentity() bool {
	for _, v := range f {
		if v != 1 {
			return false
		}
	}
	return true
}

func (f ShrinkFactor) String() string {
	return intsString([]int(f))
}

// Split describes one of Total disjoint sub-regions of a region.
type Split struct {
	Index  int
	Total  int
	Region Region
}

func (s Split) String() string {
	return fmt.Sprintf("split %d of %d: %s", s.Index, s.Total, s.Region)
}
