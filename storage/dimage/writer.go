package dimage

import (
	"context"
	"io"

	"github.com/janelia-flyem/downsample/dvid"
	"github.com/janelia-flyem/downsample/storage"

	"gocloud.dev/blob"
	"gocloud.dev/gcerrors"
)

// Writer stores an image chunk by chunk.  The header is written by Commit only
// after every chunk is stored, so readers never see a partial image.
type Writer struct {
	bucket   *blob.Bucket
	header   *Header
	compress dvid.Compression
	checksum dvid.Checksum
	written  []bool
	bpp      int
}

// Create prepares to write an image into the bucket, removing any header already
// there.
func Create(ctx context.Context, bucket *blob.Bucket, info dvid.ImageInfo, index []int, opts Options) (*Writer, error) {
	h, err := NewHeader(info, index, opts)
	if err != nil {
		return nil, err
	}
	compress, checksum, err := h.codec()
	if err != nil {
		return nil, err
	}
	if err := bucket.Delete(ctx, HeaderKey); err != nil && gcerrors.Code(err) != gcerrors.NotFound {
		return nil, dvid.IOError(err, "removing old image header")
	}
	return &Writer{
		bucket:   bucket,
		header:   h,
		compress: compress,
		checksum: checksum,
		written:  make([]bool, h.NumChunks()),
		bpp:      info.BytesPerPixel(),
	}, nil
}

// Header returns the header that Commit will write.
func (w *Writer) Header() *Header {
	return w.header
}

// chunkBytes returns the number of pixel bytes in chunk n.
func (w *Writer) chunkBytes(n int) int {
	return int(w.header.ChunkRegion(n).NumVoxels()) * w.bpp
}

// WriteChunk stores chunk n, whose pixels are little-endian interleaved components.
func (w *Writer) WriteChunk(ctx context.Context, n int, data []byte) error {
	if n < 0 || n >= len(w.written) {
		return dvid.GeometryError("chunk %d outside image of %d chunks", n, len(w.written))
	}
	if expected := w.chunkBytes(n); len(data) != expected {
		return dvid.GeometryError("chunk %d needs %d bytes, got %d", n, expected, len(data))
	}
	s, err := dvid.SerializeData(data, w.compress, w.checksum)
	if err != nil {
		return dvid.IOError(err, "serializing chunk %d", n)
	}
	if err := w.bucket.WriteAll(ctx, ChunkKey(n), s, nil); err != nil {
		return dvid.IOError(err, "writing chunk %d", n)
	}
	storage.StoreBytesWritten(len(s))
	w.written[n] = true
	return nil
}

// Write stores every chunk from the pixels of the whole image.
func (w *Writer) Write(ctx context.Context, data []byte) error {
	var offset int
	for n := range w.written {
		size := w.chunkBytes(n)
		if offset+size > len(data) {
			return dvid.GeometryError("image needs more than %d bytes", len(data))
		}
		if err := w.WriteChunk(ctx, n, data[offset:offset+size]); err != nil {
			return err
		}
		offset += size
	}
	if offset != len(data) {
		return dvid.GeometryError("image needs %d bytes, got %d", offset, len(data))
	}
	return nil
}

// ReadFrom stores every chunk from pixels streamed by r.
func (w *Writer) ReadFrom(r io.Reader) (int64, error) {
	return w.ReadFromContext(context.Background(), r)
}

// ReadFromContext is ReadFrom with a context for bucket writes.
func (w *Writer) ReadFromContext(ctx context.Context, r io.Reader) (int64, error) {
	var total int64
	for n := range w.written {
		buf := make([]byte, w.chunkBytes(n))
		read, err := io.ReadFull(r, buf)
		total += int64(read)
		if err != nil {
			return total, dvid.IOError(err, "reading pixels of chunk %d", n)
		}
		if err := w.WriteChunk(ctx, n, buf); err != nil {
			return total, err
		}
	}
	return total, nil
}

// Commit writes the header.  It fails if any chunk has not been written.
func (w *Writer) Commit(ctx context.Context) error {
	for n, done := range w.written {
		if !done {
			return dvid.IOError(io.ErrUnexpectedEOF, "chunk %d of %d not written", n, len(w.written))
		}
	}
	b, err := dvid.MarshalJSON(w.header, "  ")
	if err != nil {
		return err
	}
	if err := w.bucket.WriteAll(ctx, HeaderKey, b, &blob.WriterOptions{ContentType: "application/json"}); err != nil {
		return dvid.IOError(err, "writing image header")
	}
	storage.StoreBytesWritten(len(b))
	dvid.Debugf("Committed %s\n", w.header)
	return nil
}

// WriteImage stores a whole image in one call.
func WriteImage(ctx context.Context, bucket *blob.Bucket, info dvid.ImageInfo, index []int, data []byte,
	opts Options) error {

	w, err := Create(ctx, bucket, info, index, opts)
	if err != nil {
		return err
	}
	if err := w.Write(ctx, data); err != nil {
		return err
	}
	return w.Commit(ctx)
}
