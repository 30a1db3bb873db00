/*
Package datatype resolves an image's pixel layout into a downsampling kernel.

The pixel layout of an image is only known at run time, while the kernels in
datatype/common are generic over the component type.  Each supported component
type registers a set of kernel constructors at init time, and Resolve picks one
for a given component type, pixel type, dimensionality and label flag:

	kernel, err := datatype.Resolve(info, isLabel, datatype.BinShrink)
	if err != nil {
		return err
	}
	tile, err := kernel.Run(reader, info.Geometry, factor, region)

Kernels read and return little-endian interleaved components so that callers
never deal with the component type themselves.
*/
package datatype
