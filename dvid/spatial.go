/*
	This file maps between index space and physical space for images with
	arbitrary spacing, origin and orthonormal direction cosines.
*/

package dvid

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// DirectionTolerance bounds the deviation of Direction^T * Direction from identity.
const DirectionTolerance = 1e-6

// Geometry is the spatial grid of an image.  A continuous index x maps to the
// physical point Origin + Direction * diag(Spacing) * x, where Direction is
// stored row-major as an N x N matrix.
type Geometry struct {
	Size      []int
	Origin    []float64
	Spacing   []float64
	Direction []float64
}

// NewGeometry returns a geometry of the given size with unit spacing, zero
// origin and identity direction.
func NewGeometry(size []int) Geometry {
	n := len(size)
	g := Geometry{
		Size:      copyInts(size),
		Origin:    make([]float64, n),
		Spacing:   make([]float64, n),
		Direction: make([]float64, n*n),
	}
	for i := 0; i < n; i++ {
		g.Spacing[i] = 1
		g.Direction[i*n+i] = 1
	}
	return g
}

// Dims returns the spatial dimensionality.
func (g Geometry) Dims() int {
	return len(g.Size)
}

// NumVoxels returns the number of voxels in the whole image.
func (g Geometry) NumVoxels() int64 {
	return FullRegion(g.Size).NumVoxels()
}

// Copy returns a geometry not sharing memory with g.
func (g Geometry) Copy() Geometry {
	out := Geometry{
		Size:      copyInts(g.Size),
		Origin:    make([]float64, len(g.Origin)),
		Spacing:   make([]float64, len(g.Spacing)),
		Direction: make([]float64, len(g.Direction)),
	}
	copy(out.Origin, g.Origin)
	copy(out.Spacing, g.Spacing)
	copy(out.Direction, g.Direction)
	return out
}

func (g Geometry) directionMatrix() *mat.Dense {
	n := g.Dims()
	return mat.NewDense(n, n, append([]float64(nil), g.Direction...))
}

// Validate checks dimensionality, slice lengths, positive size and spacing,
// and that the direction matrix is orthonormal.
func (g Geometry) Validate() error {
	n := g.Dims()
	if n != 2 && n != 3 {
		return DimensionalityError(n)
	}
	if len(g.Origin) != n || len(g.Spacing) != n || len(g.Direction) != n*n {
		return GeometryError("geometry needs %d origin, %d spacing and %d direction values, got %d, %d, %d",
			n, n, n*n, len(g.Origin), len(g.Spacing), len(g.Direction))
	}
	for i := 0; i < n; i++ {
		if g.Size[i] <= 0 {
			return GeometryError("size along axis %d must be positive, got %d", i, g.Size[i])
		}
		if !(g.Spacing[i] > 0) || math.IsInf(g.Spacing[i], 0) {
			return GeometryError("spacing along axis %d must be positive, got %g", i, g.Spacing[i])
		}
		if math.IsNaN(g.Origin[i]) || math.IsInf(g.Origin[i], 0) {
			return GeometryError("origin along axis %d is not finite", i)
		}
	}
	d := g.directionMatrix()
	var dtd mat.Dense
	dtd.Mul(d.T(), d)
	identity := mat.NewDiagDense(n, nil)
	for i := 0; i < n; i++ {
		identity.SetDiag(i, 1)
	}
	if !mat.EqualApprox(&dtd, identity, DirectionTolerance) {
		return GeometryError("direction %v is not orthonormal", g.Direction)
	}
	return nil
}

// IndexToPhysical maps a continuous index to a physical point.
func (g Geometry) IndexToPhysical(idx []float64) []float64 {
	n := g.Dims()
	p := make([]float64, n)
	for i := 0; i < n; i++ {
		sum := g.Origin[i]
		for j := 0; j < n; j++ {
			sum += g.Direction[i*n+j] * g.Spacing[j] * idx[j]
		}
		p[i] = sum
	}
	return p
}

// PhysicalToContinuousIndex maps a physical point to a continuous index.  The
// direction is orthonormal so its inverse is its transpose.
func (g Geometry) PhysicalToContinuousIndex(p []float64) []float64 {
	n := g.Dims()
	idx := make([]float64, n)
	for j := 0; j < n; j++ {
		var sum float64
		for i := 0; i < n; i++ {
			sum += g.Direction[i*n+j] * (p[i] - g.Origin[i])
		}
		idx[j] = sum / g.Spacing[j]
	}
	return idx
}

// Shrink returns the geometry of an image produced by averaging f-sized bins.
// Each output voxel center is the centroid of its input bin, so the new origin
// is the physical point of continuous input index (f-1)/2, or (size-1)/2 along
// an axis shorter than its factor.
func (g Geometry) Shrink(f ShrinkFactor) (Geometry, error) {
	n := g.Dims()
	if err := f.Validate(n); err != nil {
		return Geometry{}, err
	}
	out := g.Copy()
	centroid := make([]float64, n)
	for i := 0; i < n; i++ {
		out.Size[i] = g.Size[i] / f[i]
		if out.Size[i] < 1 {
			out.Size[i] = 1
		}
		out.Spacing[i] = g.Spacing[i] * float64(f[i])
		if g.Size[i] < f[i] {
			// The lone output voxel averages every input voxel on this axis.
			centroid[i] = float64(g.Size[i]-1) / 2
		} else {
			centroid[i] = float64(f[i]-1) / 2
		}
	}
	out.Origin = g.IndexToPhysical(centroid)
	return out, nil
}

// RegionGeometry returns the geometry of a sub-region extracted from g: the same
// spacing and direction with the origin moved to the region's first voxel.
func (g Geometry) RegionGeometry(r Region) Geometry {
	out := g.Copy()
	out.Size = copyInts(r.Size)
	start := make([]float64, len(r.Index))
	for i, v := range r.Index {
		start[i] = float64(v)
	}
	out.Origin = g.IndexToPhysical(start)
	return out
}

// AffineMap is x' = Matrix * x + Offset with a row-major N x N matrix.
type AffineMap struct {
	Matrix []float64
	Offset []float64
}

// Apply writes the mapped point into out, which must have the same length as in.
func (m AffineMap) Apply(in, out []float64) {
	n := len(m.Offset)
	for i := 0; i < n; i++ {
		sum := m.Offset[i]
		for j := 0; j < n; j++ {
			sum += m.Matrix[i*n+j] * in[j]
		}
		out[i] = sum
	}
}

// IndexMap returns the affine map from continuous indices of g to continuous
// indices of dst, going through physical space.
func (g Geometry) IndexMap(dst Geometry) (AffineMap, error) {
	n := g.Dims()
	if dst.Dims() != n {
		return AffineMap{}, GeometryError("cannot map %dd geometry onto %dd geometry", n, dst.Dims())
	}
	// src index -> physical: Dsrc * Ssrc
	srcScale := mat.NewDiagDense(n, append([]float64(nil), g.Spacing...))
	var toPhys mat.Dense
	toPhys.Mul(g.directionMatrix(), srcScale)

	// physical -> dst index: Sdst^-1 * Ddst^T
	inv := make([]float64, n)
	for i := range inv {
		inv[i] = 1 / dst.Spacing[i]
	}
	dstScale := mat.NewDiagDense(n, inv)
	var fromPhys mat.Dense
	fromPhys.Mul(dstScale, dst.directionMatrix().T())

	var linear mat.Dense
	linear.Mul(&fromPhys, &toPhys)

	diff := make([]float64, n)
	for i := range diff {
		diff[i] = g.Origin[i] - dst.Origin[i]
	}
	var offset mat.VecDense
	offset.MulVec(&fromPhys, mat.NewVecDense(n, diff))

	m := AffineMap{Matrix: make([]float64, n*n), Offset: make([]float64, n)}
	for i := 0; i < n; i++ {
		m.Offset[i] = offset.AtVec(i)
		for j := 0; j < n; j++ {
			m.Matrix[i*n+j] = linear.At(i, j)
		}
	}
	return m, nil
}

func (g Geometry) String() string {
	return fmt.Sprintf("size %s spacing %s origin %s", intsString(g.Size), floatsString(g.Spacing),
		floatsString(g.Origin))
}
