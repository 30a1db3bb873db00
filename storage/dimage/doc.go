/*
Package dimage stores N-d images in a blob bucket as a JSON header plus chunk objects.

An image under a bucket prefix is laid out as

	dimage.json   header: format version, pixel layout, geometry, chunking and codec
	chunks/0      slices [0, chunkSlices) along the slowest axis
	chunks/1      slices [chunkSlices, 2*chunkSlices)
	...

Chunk pixels are little-endian with interleaved components, first axis varying
fastest, and are serialized with dvid.SerializeData so each chunk carries its own
compression and checksum.  The header is written last.
*/
package dimage
