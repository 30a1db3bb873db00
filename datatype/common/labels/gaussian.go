package labels

import (
	"math"

	"github.com/janelia-flyem/downsample/datatype/common/downres"
	"github.com/janelia-flyem/downsample/dvid"
)

// Kernel constants.  Changing them changes every label image produced.
const (
	// SigmaPerSpacing scales shrunk spacing to the Gaussian sigma along each axis.
	SigmaPerSpacing = 0.7355

	// AlphaPerSigma scales the largest sigma to the kernel support bound alpha.
	AlphaPerSigma = 2.5
)

// KernelParams returns the per-axis Gaussian sigma and the support bound alpha for
// an image with the given shrunk spacing: sigma[i] = spacing[i]*0.7355 and
// alpha = max(sigma)*2.5.
func KernelParams(shrunkSpacing []float64) (sigma []float64, alpha float64) {
	sigma = make([]float64, len(shrunkSpacing))
	var maxSigma float64
	for i, sp := range shrunkSpacing {
		sigma[i] = sp * SigmaPerSpacing
		if sigma[i] > maxSigma {
			maxSigma = sigma[i]
		}
	}
	return sigma, maxSigma * AlphaPerSigma
}

// gaussianKernel holds per-axis constants in input index units.
type gaussianKernel struct {
	size    []int
	cutoff  []float64
	scaling []float64
}

func newGaussianKernel(inputGeom dvid.Geometry, sigma []float64, alpha float64) (*gaussianKernel, error) {
	dims := inputGeom.Dims()
	if len(sigma) != dims {
		return nil, dvid.GeometryError("need %d sigma values, got %d", dims, len(sigma))
	}
	if !(alpha > 0) {
		return nil, dvid.GeometryError("alpha must be positive, got %g", alpha)
	}
	k := &gaussianKernel{
		size:    inputGeom.Size,
		cutoff:  make([]float64, dims),
		scaling: make([]float64, dims),
	}
	for d := 0; d < dims; d++ {
		if !(sigma[d] > 0) {
			return nil, dvid.GeometryError("sigma along axis %d must be positive, got %g", d, sigma[d])
		}
		sigmaIdx := sigma[d] / inputGeom.Spacing[d]
		k.cutoff[d] = sigmaIdx * alpha
		k.scaling[d] = 1 / (math.Sqrt2 * sigmaIdx)
	}
	return k, nil
}

// support returns the input index range [beg, end) along axis d contributing to
// continuous index c.  Voxel i spans [i-0.5, i+0.5].
func (k *gaussianKernel) support(d int, c float64) (beg, end int) {
	beg = int(math.Floor(c + 0.5 - k.cutoff[d]))
	if beg < 0 {
		beg = 0
	}
	end = int(math.Ceil(c + 0.5 + k.cutoff[d]))
	if end > k.size[d] {
		end = k.size[d]
	}
	return
}

// weights fills w with the Gaussian mass over each voxel of [beg, end) along axis d,
// as differences of the error function at voxel boundaries.
func (k *gaussianKernel) weights(d int, c float64, beg, end int, w []float64) []float64 {
	w = w[:0]
	s := k.scaling[d]
	t := (float64(beg) - 0.5 - c) * s
	last := math.Erf(t)
	for i := beg; i < end; i++ {
		t += s
		now := math.Erf(t)
		w = append(w, now-last)
		last = now
	}
	return w
}

func (k *gaussianKernel) footprint(m dvid.AffineMap, r dvid.Region) (dvid.Region, bool) {
	lo, hi := downres.MappedBounds(m, r)
	dims := len(k.size)
	fp := dvid.Region{Index: make([]int, dims), Size: make([]int, dims)}
	for d := 0; d < dims; d++ {
		beg, _ := k.support(d, lo[d])
		_, end := k.support(d, hi[d])
		if end <= beg {
			return dvid.Region{}, false
		}
		fp.Index[d] = beg
		fp.Size[d] = end - beg
	}
	return fp, true
}

// GaussianResample computes outRegion of the label image with geometry outputGeom.
// Each output voxel center is mapped into src, every input voxel within the kernel
// support votes for its label with the product of its per-axis Gaussian masses, and
// the output is the label with the greatest accumulated weight.  The first label to
// reach the maximum wins ties.  Output voxels mapping more than half a voxel outside
// the input are zero.
func GaussianResample[T downres.Number](src downres.RegionReader[T], inputGeom, outputGeom dvid.Geometry,
	outRegion dvid.Region, sigma []float64, alpha float64) (*downres.Volume[T], error) {

	if err := outRegion.CheckWithin(outputGeom.Size); err != nil {
		return nil, err
	}
	k, err := newGaussianKernel(inputGeom, sigma, alpha)
	if err != nil {
		return nil, err
	}
	m, err := outputGeom.IndexMap(inputGeom)
	if err != nil {
		return nil, err
	}
	footprint := func(out dvid.Region) (dvid.Region, bool) {
		return k.footprint(m, out)
	}
	kernel := func(in *downres.Volume[T], slab dvid.Region, out *downres.Volume[T]) error {
		if in != nil {
			voteSlab(k, m, in, out)
		}
		return nil
	}
	return downres.Process(src, 1, outRegion, footprint, kernel)
}

// voteSlab computes every output voxel of out from the input footprint in.  Axes
// beyond the image dimensionality are handled as unit extents with unit weight.
func voteSlab[T downres.Number](k *gaussianKernel, m dvid.AffineMap, in, out *downres.Volume[T]) {
	dims := len(k.size)
	oi := make([]float64, dims)
	ci := make([]float64, dims)

	var inBeg, stride, beg, end [3]int
	var w [3][]float64
	stride[0] = 1
	for d := 0; d < dims; d++ {
		inBeg[d] = in.Region.Index[d]
		if d > 0 {
			stride[d] = stride[d-1] * in.Region.Size[d-1]
		}
	}
	var tally votes[T]

	next := 0
	downres.ForEachIndex(out.Region, func(idx []int) {
		pos := next
		next++
		for d, v := range idx {
			oi[d] = float64(v)
		}
		m.Apply(oi, ci)
		if !downres.InsideBuffer(ci, k.size) {
			return
		}
		for d := 0; d < 3; d++ {
			if d >= dims {
				beg[d], end[d] = 0, 1
				w[d] = append(w[d][:0], 1)
				continue
			}
			beg[d], end[d] = k.support(d, ci[d])
			w[d] = k.weights(d, ci[d], beg[d], end[d], w[d])
		}
		tally.reset()
		for z := beg[2]; z < end[2]; z++ {
			wz := w[2][z-beg[2]]
			zoff := (z - inBeg[2]) * stride[2]
			for y := beg[1]; y < end[1]; y++ {
				wy := w[1][y-beg[1]]
				yoff := zoff + (y-inBeg[1])*stride[1]
				for x := beg[0]; x < end[0]; x++ {
					weight := w[0][x-beg[0]] * wy * wz
					tally.add(in.Data[yoff+x-inBeg[0]], weight)
				}
			}
		}
		out.Data[pos] = tally.winner
	})
}
