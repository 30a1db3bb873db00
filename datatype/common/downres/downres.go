/*
	Package downres computes lower-resolution images by integer shrink factors.  Two
	kernels are provided for continuous-valued pixels: BinShrink, which averages each
	factor-sized bin of input voxels, and LinearResample, which interpolates the input
	at the physical centers of the shrunk grid.  Both compute only an arbitrary output
	region, reading just the input footprint of that region in bounded slabs along the
	slowest axis.
*/
package downres

import (
	"github.com/DmitriyVTitov/size"
	humanize "github.com/dustin/go-humanize"

	"github.com/janelia-flyem/downsample/dvid"
)

// DefaultSlabVoxels is the default bound on input voxels materialized per slab.
const DefaultSlabVoxels = 64 * dvid.Mega

// slabVoxels is the maximum number of input voxels read at once.  A slab always
// holds at least one output slice regardless of this bound.
var slabVoxels int64 = DefaultSlabVoxels

// SetSlabVoxels sets the maximum number of input voxels materialized per slab.
// Non-positive values restore the default.
func SetSlabVoxels(n int64) {
	if n <= 0 {
		n = DefaultSlabVoxels
	}
	slabVoxels = n
}

// SlabVoxels returns the current bound on input voxels per slab.
func SlabVoxels() int64 {
	return slabVoxels
}

// FootprintFunc returns the input region needed to compute an output region.
// The second return is false if no input voxel contributes.
type FootprintFunc func(out dvid.Region) (dvid.Region, bool)

// Slabs divides outRegion along its slowest axis into contiguous slabs whose input
// footprints hold at most maxVoxels voxels, with at least one slice per slab.
func Slabs(outRegion dvid.Region, footprint FootprintFunc, maxVoxels int64) []dvid.Region {
	dims := outRegion.NumDims()
	if dims == 0 || outRegion.NumVoxels() == 0 {
		return nil
	}
	slow := dims - 1
	extent := outRegion.Size[slow]

	slice := outRegion.Copy()
	slice.Size[slow] = 1
	var perSlice int64 = 1
	if fp, ok := footprint(slice); ok {
		perSlice = fp.NumVoxels()
		if perSlice < 1 {
			perSlice = 1
		}
	}
	slicesPerSlab := int(maxVoxels / perSlice)
	if slicesPerSlab < 1 {
		slicesPerSlab = 1
	}
	if slicesPerSlab > extent {
		slicesPerSlab = extent
	}

	var slabs []dvid.Region
	for beg := 0; beg < extent; beg += slicesPerSlab {
		slab := outRegion.Copy()
		slab.Index[slow] += beg
		slab.Size[slow] = slicesPerSlab
		if beg+slicesPerSlab > extent {
			slab.Size[slow] = extent - beg
		}
		slabs = append(slabs, slab)
	}
	return slabs
}

// SlabKernel computes the output voxels of one slab given its materialized input
// footprint.  The footprint volume is nil if no input voxel contributes.
type SlabKernel[T Number] func(in *Volume[T], slab dvid.Region, out *Volume[T]) error

// Process runs kernel over every slab of outRegion, reading each slab's footprint
// from src, and returns the assembled output volume.
func Process[T Number](src RegionReader[T], components int, outRegion dvid.Region,
	footprint FootprintFunc, kernel SlabKernel[T]) (*Volume[T], error) {

	out := NewVolume[T](outRegion, components)
	slabs := Slabs(outRegion, footprint, slabVoxels)
	for n, slab := range slabs {
		var in *Volume[T]
		fp, ok := footprint(slab)
		if ok {
			var err error
			if in, err = src.ReadRegion(fp); err != nil {
				return nil, err
			}
			if in.Components != components {
				return nil, dvid.GeometryError("input has %d components per pixel, expected %d",
					in.Components, components)
			}
			if !in.Region.Equals(fp) {
				return nil, dvid.GeometryError("reader returned %s for requested %s", in.Region, fp)
			}
			dvid.Debugf("slab %d/%d: output %s from input %s (%s)\n", n+1, len(slabs), slab, fp,
				humanize.Bytes(uint64(size.Of(in.Data))))
		}
		tile := NewVolume[T](slab, components)
		if err := kernel(in, slab, tile); err != nil {
			return nil, err
		}
		if err := out.Paste(tile); err != nil {
			return nil, err
		}
	}
	return out, nil
}
