package downres

import (
	"math"

	"github.com/janelia-flyem/downsample/dvid"
)

// cornerIndices returns the continuous input indices of every corner of the
// output region r under the index map m.
func cornerIndices(m dvid.AffineMap, r dvid.Region) [][]float64 {
	dims := r.NumDims()
	corners := make([][]float64, 0, 1<<dims)
	in := make([]float64, dims)
	for mask := 0; mask < 1<<dims; mask++ {
		for d := 0; d < dims; d++ {
			in[d] = float64(r.Index[d])
			if mask&(1<<d) != 0 {
				in[d] = float64(r.Index[d] + r.Size[d] - 1)
			}
		}
		out := make([]float64, dims)
		m.Apply(in, out)
		corners = append(corners, out)
	}
	return corners
}

// MappedBounds returns, per axis, the range of continuous input indices reached by
// the output region r under m.  The map is affine so the extremes lie on corners.
func MappedBounds(m dvid.AffineMap, r dvid.Region) (lo, hi []float64) {
	dims := r.NumDims()
	lo = make([]float64, dims)
	hi = make([]float64, dims)
	for d := range lo {
		lo[d] = math.Inf(1)
		hi[d] = math.Inf(-1)
	}
	for _, c := range cornerIndices(m, r) {
		for d, v := range c {
			lo[d] = math.Min(lo[d], v)
			hi[d] = math.Max(hi[d], v)
		}
	}
	return
}

// InsideBuffer returns true if the continuous index lies within half a voxel of the image.
func InsideBuffer(ci []float64, size []int) bool {
	for d, v := range ci {
		if v < -0.5 || v > float64(size[d])-0.5 {
			return false
		}
	}
	return true
}

func clampFloat(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// linearFootprint returns the input voxels needed to interpolate every output voxel
// of r: the floor and floor+1 neighbors of the clamped mapped indices.
func linearFootprint(m dvid.AffineMap, inputSize []int, r dvid.Region) (dvid.Region, bool) {
	lo, hi := MappedBounds(m, r)
	dims := len(inputSize)
	fp := dvid.Region{Index: make([]int, dims), Size: make([]int, dims)}
	for d := 0; d < dims; d++ {
		maxIdx := float64(inputSize[d] - 1)
		if hi[d] < -0.5 || lo[d] > maxIdx+0.5 {
			return dvid.Region{}, false
		}
		beg := int(math.Floor(clampFloat(lo[d], 0, maxIdx)))
		end := int(math.Floor(clampFloat(hi[d], 0, maxIdx))) + 2
		if end > inputSize[d] {
			end = inputSize[d]
		}
		fp.Index[d] = beg
		fp.Size[d] = end - beg
	}
	return fp, true
}

// LinearResample computes outRegion of the image with geometry outputGeom by mapping
// each output voxel center through physical space into src and interpolating each
// component N-linearly.  Neighbors beyond the image edge clamp to the edge, and
// output voxels mapping more than half a voxel outside the input are zero.
func LinearResample[T Number](src RegionReader[T], components int, inputGeom, outputGeom dvid.Geometry,
	outRegion dvid.Region) (*Volume[T], error) {

	if err := outRegion.CheckWithin(outputGeom.Size); err != nil {
		return nil, err
	}
	m, err := outputGeom.IndexMap(inputGeom)
	if err != nil {
		return nil, err
	}
	inSize := inputGeom.Size
	footprint := func(out dvid.Region) (dvid.Region, bool) {
		return linearFootprint(m, inSize, out)
	}
	kernel := func(in *Volume[T], slab dvid.Region, out *Volume[T]) error {
		if in == nil {
			return nil
		}
		interpolateSlab(m, inSize, in, out)
		return nil
	}
	return Process(src, components, outRegion, footprint, kernel)
}

func interpolateSlab[T Number](m dvid.AffineMap, inSize []int, in, out *Volume[T]) {
	dims := len(inSize)
	comps := out.Components
	oi := make([]float64, dims)
	ci := make([]float64, dims)
	base := make([]int, dims)
	frac := make([]float64, dims)
	neighbor := make([]int, dims)
	acc := make([]float64, comps)

	next := 0
	ForEachIndex(out.Region, func(idx []int) {
		pos := next
		next++
		for d, v := range idx {
			oi[d] = float64(v)
		}
		m.Apply(oi, ci)
		if !InsideBuffer(ci, inSize) {
			return
		}
		for d := 0; d < dims; d++ {
			v := clampFloat(ci[d], 0, float64(inSize[d]-1))
			base[d] = int(math.Floor(v))
			frac[d] = v - float64(base[d])
		}
		for c := range acc {
			acc[c] = 0
		}
		for mask := 0; mask < 1<<dims; mask++ {
			w := 1.0
			for d := 0; d < dims; d++ {
				neighbor[d] = base[d]
				if mask&(1<<d) != 0 {
					w *= frac[d]
					if neighbor[d]+1 < inSize[d] {
						neighbor[d]++
					}
				} else {
					w *= 1 - frac[d]
				}
			}
			if w == 0 {
				continue
			}
			p := in.pixelOffset(neighbor) * comps
			for c := 0; c < comps; c++ {
				acc[c] += w * float64(in.Data[p+c])
			}
		}
		for c := 0; c < comps; c++ {
			out.Data[pos*comps+c] = FromFloat[T](acc[c])
		}
	})
}
