package dvid

import (
	"errors"
	"math"
	"testing"

	. "github.com/janelia-flyem/go/gocheck"
)

// Hook up gocheck into the "go test" runner.
func Test(t *testing.T) { TestingT(t) }

type DataSuite struct{}

var _ = Suite(&DataSuite{})

func (s *DataSuite) TestRegion(c *C) {
	a := NewRegion([]int{10, 20, 30}, []int{5, 6, 7})
	c.Assert(a.NumVoxels(), Equals, int64(210))
	c.Assert(a.End(), DeepEquals, []int{15, 26, 37})
	c.Assert(a.String(), Equals, "index (10,20,30) size (5,6,7)")

	b := a.Copy()
	b.Index[0] = 0
	c.Assert(a.Index[0], Equals, 10)
	c.Assert(a.Equals(b), Equals, false)

	c.Assert(a.ContainsIndex([]int{14, 25, 36}), Equals, true)
	c.Assert(a.ContainsIndex([]int{15, 25, 36}), Equals, false)

	full := FullRegion([]int{100, 100, 100})
	c.Assert(full.Contains(a), Equals, true)
	c.Assert(a.Contains(full), Equals, false)

	overlap, ok := a.Intersect(NewRegion([]int{12, 0, 0}, []int{100, 21, 31}))
	c.Assert(ok, Equals, true)
	c.Assert(overlap.Equals(NewRegion([]int{12, 20, 30}, []int{3, 1, 1})), Equals, true)

	_, ok = a.Intersect(NewRegion([]int{0, 0, 0}, []int{10, 10, 10}))
	c.Assert(ok, Equals, false)

	c.Assert(a.CheckWithin([]int{100, 100, 100}), IsNil)
	err := a.CheckWithin([]int{12, 100, 100})
	c.Assert(errors.Is(err, ErrInvalidGeometry), Equals, true)
}

func (s *DataSuite) TestShrinkFactor(c *C) {
	f, err := NewShrinkFactor(2, 4, 3, 0)
	c.Assert(err, IsNil)
	c.Assert(f, DeepEquals, ShrinkFactor{4, 3})

	_, err = NewShrinkFactor(3, 2, 2, 0)
	c.Assert(errors.Is(err, ErrBadArgument), Equals, true)

	_, err = NewShrinkFactor(4, 2, 2, 2)
	c.Assert(errors.Is(err, ErrDimensionality), Equals, true)

	c.Assert(ShrinkFactor{1, 1, 1}.IsIdentity(), Equals, true)
	c.Assert(ShrinkFactor{1, 2, 1}.IsIdentity(), Equals, false)
}

func (s *DataSuite) TestShrinkGeometry(c *C) {
	g := NewGeometry([]int{100, 7, 1})
	g.Spacing = []float64{1, 0.5, 2}
	g.Origin = []float64{10, 20, 30}
	c.Assert(g.Validate(), IsNil)

	shrunk, err := g.Shrink(ShrinkFactor{2, 3, 4})
	c.Assert(err, IsNil)
	c.Assert(shrunk.Size, DeepEquals, []int{50, 2, 1})
	c.Assert(shrunk.Spacing, DeepEquals, []float64{2, 1.5, 8})
	c.Assert(shrunk.Direction, DeepEquals, g.Direction)

	// Output voxel centers sit on the centroid of their input bins.
	c.Assert(shrunk.Origin[0], Equals, 10.5)
	c.Assert(shrunk.Origin[1], Equals, 20.5)

	// An axis shorter than its factor centers on the voxels it has.
	c.Assert(shrunk.Origin[2], Equals, 30.0)

	// Input geometry is untouched.
	c.Assert(g.Size, DeepEquals, []int{100, 7, 1})
}

func (s *DataSuite) TestShrinkSizes(c *C) {
	for size := 1; size < 20; size++ {
		for f := 1; f < 7; f++ {
			g := NewGeometry([]int{size, size})
			shrunk, err := g.Shrink(ShrinkFactor{f, 1})
			c.Assert(err, IsNil)
			expected := size / f
			if expected < 1 {
				expected = 1
			}
			c.Assert(shrunk.Size[0], Equals, expected)
			c.Assert(shrunk.Size[1], Equals, size)
			c.Assert(shrunk.Spacing[0], Equals, float64(f))
		}
	}
}

func (s *DataSuite) TestRotatedGeometry(c *C) {
	g := NewGeometry([]int{10, 10})
	// 90 degree rotation: index axis 0 runs along physical y.
	g.Direction = []float64{0, -1, 1, 0}
	g.Spacing = []float64{2, 3}
	g.Origin = []float64{5, 7}
	c.Assert(g.Validate(), IsNil)

	p := g.IndexToPhysical([]float64{1, 1})
	c.Assert(p, DeepEquals, []float64{2, 9})
	idx := g.PhysicalToContinuousIndex(p)
	c.Assert(math.Abs(idx[0]-1) < 1e-12, Equals, true)
	c.Assert(math.Abs(idx[1]-1) < 1e-12, Equals, true)

	shrunk, err := g.Shrink(ShrinkFactor{2, 2})
	c.Assert(err, IsNil)
	m, err := shrunk.IndexMap(g)
	c.Assert(err, IsNil)
	out := make([]float64, 2)
	m.Apply([]float64{0, 0}, out)
	c.Assert(math.Abs(out[0]-0.5) < 1e-12, Equals, true)
	c.Assert(math.Abs(out[1]-0.5) < 1e-12, Equals, true)
	m.Apply([]float64{3, 1}, out)
	c.Assert(math.Abs(out[0]-6.5) < 1e-12, Equals, true)
	c.Assert(math.Abs(out[1]-2.5) < 1e-12, Equals, true)
}

func (s *DataSuite) TestBadGeometry(c *C) {
	g := NewGeometry([]int{10, 10})
	g.Direction = []float64{1, 0.1, 0, 1}
	c.Assert(errors.Is(g.Validate(), ErrInvalidGeometry), Equals, true)

	g = NewGeometry([]int{10, 10})
	g.Spacing[1] = 0
	c.Assert(errors.Is(g.Validate(), ErrInvalidGeometry), Equals, true)

	g = NewGeometry([]int{10, 10, 10, 10})
	c.Assert(errors.Is(g.Validate(), ErrDimensionality), Equals, true)
}

func (s *DataSuite) TestRegionGeometry(c *C) {
	g := NewGeometry([]int{50, 50, 50})
	g.Spacing = []float64{2, 2, 2}
	g.Origin = []float64{0.5, 0.5, 0.5}
	tile := g.RegionGeometry(NewRegion([]int{0, 0, 13}, []int{50, 50, 12}))
	c.Assert(tile.Size, DeepEquals, []int{50, 50, 12})
	c.Assert(tile.Origin, DeepEquals, []float64{0.5, 0.5, 26.5})
	c.Assert(tile.Spacing, DeepEquals, g.Spacing)
}

func (s *DataSuite) TestErrorKinds(c *C) {
	cause := errors.New("disk on fire")
	err := IOError(cause, "unable to read %q", "foo")
	c.Assert(errors.Is(err, ErrIO), Equals, true)
	c.Assert(errors.Is(err, cause), Equals, true)
	c.Assert(err.Error(), Equals, `unable to read "foo": disk on fire`)
	c.Assert(IOError(nil, "nothing"), IsNil)

	err = UnsupportedTypeError("no %s", "tensors")
	c.Assert(errors.Is(err, ErrUnsupportedType), Equals, true)
	c.Assert(errors.Is(err, ErrIO), Equals, false)
}
