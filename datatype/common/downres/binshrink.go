package downres

import (
	"github.com/janelia-flyem/downsample/dvid"
)

// BinFootprint returns the input region averaged into the output region outRegion
// when shrinking an image of size inputSize by f.  Output voxel o along axis i
// covers input indices [o*f[i], (o+1)*f[i]) clipped to the image, so an axis
// shorter than its factor contributes all of its voxels to output index 0.
func BinFootprint(inputSize []int, f dvid.ShrinkFactor, outRegion dvid.Region) dvid.Region {
	dims := len(inputSize)
	fp := dvid.Region{Index: make([]int, dims), Size: make([]int, dims)}
	for i := 0; i < dims; i++ {
		beg := outRegion.Index[i] * f[i]
		end := (outRegion.Index[i] + outRegion.Size[i]) * f[i]
		if end > inputSize[i] {
			end = inputSize[i]
		}
		if beg > end {
			beg = end
		}
		fp.Index[i] = beg
		fp.Size[i] = end - beg
	}
	return fp
}

// BinShrink computes outRegion of the image obtained by shrinking src by f.  Each
// output pixel is the per-component mean of the input pixels in its bin.  Integer
// results round half away from zero and clamp to the component range.
func BinShrink[T Number](src RegionReader[T], components int, inputGeom dvid.Geometry,
	f dvid.ShrinkFactor, outRegion dvid.Region) (*Volume[T], error) {

	shrunk, err := inputGeom.Shrink(f)
	if err != nil {
		return nil, err
	}
	if err := outRegion.CheckWithin(shrunk.Size); err != nil {
		return nil, err
	}
	footprint := func(out dvid.Region) (dvid.Region, bool) {
		fp := BinFootprint(inputGeom.Size, f, out)
		return fp, fp.NumVoxels() > 0
	}
	kernel := func(in *Volume[T], slab dvid.Region, out *Volume[T]) error {
		if in == nil {
			return dvid.GeometryError("no input voxels for output %s", slab)
		}
		binAverage(in, f, out)
		return nil
	}
	return Process(src, components, outRegion, footprint, kernel)
}

// binAverage visits each input voxel once, adding it to the bin of its output voxel.
// Images are handled as 3d with unit extents for missing axes.
func binAverage[T Number](in *Volume[T], f dvid.ShrinkFactor, out *Volume[T]) {
	comps := in.Components
	var inBeg, inSize, outBeg, outSize, fac [3]int
	for d := 0; d < 3; d++ {
		inSize[d], outSize[d], fac[d] = 1, 1, 1
	}
	for d := range in.Region.Size {
		inBeg[d] = in.Region.Index[d]
		inSize[d] = in.Region.Size[d]
		outBeg[d] = out.Region.Index[d]
		outSize[d] = out.Region.Size[d]
		fac[d] = f[d]
	}

	sums := make([]float64, len(out.Data))
	counts := make([]int, len(out.Data)/comps)

	i := 0
	for z := 0; z < inSize[2]; z++ {
		oz := (inBeg[2]+z)/fac[2] - outBeg[2]
		for y := 0; y < inSize[1]; y++ {
			oy := (inBeg[1]+y)/fac[1] - outBeg[1]
			row := (oz*outSize[1] + oy) * outSize[0]
			for x := 0; x < inSize[0]; x++ {
				o := row + (inBeg[0]+x)/fac[0] - outBeg[0]
				counts[o]++
				for c := 0; c < comps; c++ {
					sums[o*comps+c] += float64(in.Data[i])
					i++
				}
			}
		}
	}
	for o, n := range counts {
		if n == 0 {
			continue
		}
		for c := 0; c < comps; c++ {
			out.Data[o*comps+c] = FromFloat[T](sums[o*comps+c] / float64(n))
		}
	}
}
