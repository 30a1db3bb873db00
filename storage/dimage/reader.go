package dimage

import (
	"context"
	"io"
	"sync/atomic"

	"github.com/janelia-flyem/downsample/dvid"
	"github.com/janelia-flyem/downsample/storage"

	humanize "github.com/dustin/go-humanize"
	"gocloud.dev/blob"
	"gocloud.dev/gcerrors"
)

// Reader gives random access to a stored image by index region.  Only the chunks
// intersecting a requested region are fetched.
type Reader struct {
	ctx    context.Context
	bucket *blob.Bucket
	header *Header
	id     uint64
	bpp    int
}

// Open reads and validates the header of the image in the bucket.  The context is
// used for every later chunk read.
func Open(ctx context.Context, bucket *blob.Bucket) (*Reader, error) {
	b, err := bucket.ReadAll(ctx, HeaderKey)
	if err != nil {
		if gcerrors.Code(err) == gcerrors.NotFound {
			return nil, dvid.IOError(err, "no image header %q found", HeaderKey)
		}
		return nil, dvid.IOError(err, "reading image header")
	}
	storage.StoreBytesRead(len(b))
	h, err := ParseHeader(b)
	if err != nil {
		return nil, err
	}
	if _, _, err := h.codec(); err != nil {
		return nil, err
	}
	return &Reader{
		ctx:    ctx,
		bucket: bucket,
		header: h,
		id:     atomic.AddUint64(&readerIDs, 1),
		bpp:    h.Info().BytesPerPixel(),
	}, nil
}

// Header returns the validated image header.
func (r *Reader) Header() *Header {
	return r.header
}

// Info returns the image metadata.
func (r *Reader) Info() dvid.ImageInfo {
	return r.header.Info()
}

// chunk returns the uncompressed pixels of chunk n.
func (r *Reader) chunk(n int) ([]byte, error) {
	key := chunkKey{r.id, n}
	if data := getCachedChunk(key); data != nil {
		return data, nil
	}
	s, err := r.bucket.ReadAll(r.ctx, ChunkKey(n))
	if err != nil {
		return nil, dvid.IOError(err, "reading chunk %d", n)
	}
	storage.StoreBytesRead(len(s))
	data, _, err := dvid.DeserializeData(s, true)
	if err != nil {
		return nil, dvid.IOError(err, "decoding chunk %d", n)
	}
	if expected := int(r.header.ChunkRegion(n).NumVoxels()) * r.bpp; len(data) != expected {
		return nil, dvid.IOError(io.ErrUnexpectedEOF, "chunk %d has %d bytes, expected %d", n, len(data), expected)
	}
	dvid.Debugf("Read chunk %d: %s stored, %s raw\n", n, humanize.Bytes(uint64(len(s))),
		humanize.Bytes(uint64(len(data))))
	putCachedChunk(key, data)
	return data, nil
}

// ReadRaw returns the pixels of the region as little-endian interleaved components.
func (r *Reader) ReadRaw(region dvid.Region) ([]byte, error) {
	if err := region.CheckWithin(r.header.Size); err != nil {
		return nil, err
	}
	out := make([]byte, int(region.NumVoxels())*r.bpp)
	if len(out) == 0 {
		return out, nil
	}
	slow := r.header.Dimension - 1
	first := region.Index[slow] / r.header.ChunkSlices
	last := (region.Index[slow] + region.Size[slow] - 1) / r.header.ChunkSlices
	for n := first; n <= last; n++ {
		chunkR := r.header.ChunkRegion(n)
		box, ok := region.Intersect(chunkR)
		if !ok {
			continue
		}
		data, err := r.chunk(n)
		if err != nil {
			return nil, err
		}
		copyBox(out, region, data, chunkR, box, r.bpp)
	}
	return out, nil
}

// WriteTo streams every pixel of the image to w in chunk order.
func (r *Reader) WriteTo(w io.Writer) (int64, error) {
	var total int64
	for n := 0; n < r.header.NumChunks(); n++ {
		data, err := r.chunk(n)
		if err != nil {
			return total, err
		}
		written, err := w.Write(data)
		total += int64(written)
		if err != nil {
			return total, dvid.IOError(err, "writing pixels of chunk %d", n)
		}
	}
	return total, nil
}

// offset returns the pixel offset of idx within region r.
func offset(r dvid.Region, idx []int) int {
	off, stride := 0, 1
	for d, v := range idx {
		off += (v - r.Index[d]) * stride
		stride *= r.Size[d]
	}
	return off
}

// copyBox copies the pixels of box, which lies within both regions, from src to dst.
func copyBox(dst []byte, dstR dvid.Region, src []byte, srcR dvid.Region, box dvid.Region, bpp int) {
	dims := box.NumDims()
	rowBytes := box.Size[0] * bpp
	pos := append([]int{}, box.Index...)
	for {
		so := offset(srcR, pos) * bpp
		do := offset(dstR, pos) * bpp
		copy(dst[do:do+rowBytes], src[so:so+rowBytes])
		d := 1
		for ; d < dims; d++ {
			pos[d]++
			if pos[d] < box.Index[d]+box.Size[d] {
				break
			}
			pos[d] = box.Index[d]
		}
		if d == dims {
			return
		}
	}
}
