package downres

import (
	"bytes"
	"encoding/binary"
	"math"

	"github.com/janelia-flyem/downsample/dvid"
)

// Number is the set of pixel component types.
type Number interface {
	uint8 | int8 | uint16 | int16 | uint32 | int32 | uint64 | int64 | float32 | float64
}

// ComponentTypeOf returns the component type corresponding to T.
func ComponentTypeOf[T Number]() dvid.ComponentType {
	var zero T
	switch any(zero).(type) {
	case uint8:
		return dvid.T_uint8
	case int8:
		return dvid.T_int8
	case uint16:
		return dvid.T_uint16
	case int16:
		return dvid.T_int16
	case uint32:
		return dvid.T_uint32
	case int32:
		return dvid.T_int32
	case uint64:
		return dvid.T_uint64
	case int64:
		return dvid.T_int64
	case float32:
		return dvid.T_float32
	case float64:
		return dvid.T_float64
	}
	return dvid.UnknownComponent
}

// Volume holds the pixels of a region.  Components of a pixel are interleaved and
// pixels are ordered with the first axis varying fastest.
type Volume[T Number] struct {
	Region     dvid.Region
	Components int
	Data       []T
}

// NewVolume allocates a zeroed volume for the region.
func NewVolume[T Number](r dvid.Region, components int) *Volume[T] {
	return &Volume[T]{
		Region:     r.Copy(),
		Components: components,
		Data:       make([]T, r.NumVoxels()*int64(components)),
	}
}

// RegionReader provides random access to the pixels of an image by index region.
type RegionReader[T Number] interface {
	ReadRegion(r dvid.Region) (*Volume[T], error)
}

// pixelOffset returns the pixel (not component) offset of absolute index idx.
func (v *Volume[T]) pixelOffset(idx []int) int {
	offset := 0
	stride := 1
	for d := range idx {
		offset += (idx[d] - v.Region.Index[d]) * stride
		stride *= v.Region.Size[d]
	}
	return offset
}

// At returns component c of the pixel at absolute index idx.
func (v *Volume[T]) At(idx []int, c int) T {
	return v.Data[v.pixelOffset(idx)*v.Components+c]
}

// Set stores component c of the pixel at absolute index idx.
func (v *Volume[T]) Set(idx []int, c int, value T) {
	v.Data[v.pixelOffset(idx)*v.Components+c] = value
}

// Fill sets every component of every pixel to value.
func (v *Volume[T]) Fill(value T) {
	for i := range v.Data {
		v.Data[i] = value
	}
}

// copyRows copies the overlap of src and dst regions one first-axis row at a time.
func copyRows[T Number](dst, src *Volume[T], overlap dvid.Region) {
	comps := dst.Components
	rowLen := overlap.Size[0] * comps
	rows := overlap.Copy()
	rows.Size[0] = 1
	ForEachIndex(rows, func(idx []int) {
		s := src.pixelOffset(idx) * comps
		d := dst.pixelOffset(idx) * comps
		copy(dst.Data[d:d+rowLen], src.Data[s:s+rowLen])
	})
}

// ReadRegion returns a copy of the pixels of r, which must lie inside v.  A
// Volume can therefore serve as an in-memory RegionReader.
func (v *Volume[T]) ReadRegion(r dvid.Region) (*Volume[T], error) {
	if !v.Region.Contains(r) {
		return nil, dvid.GeometryError("region %s is not within volume %s", r, v.Region)
	}
	out := NewVolume[T](r, v.Components)
	if r.NumVoxels() > 0 {
		copyRows(out, v, r)
	}
	return out, nil
}

// Paste copies the pixels of src into the overlapping portion of v.
func (v *Volume[T]) Paste(src *Volume[T]) error {
	if src.Components != v.Components {
		return dvid.GeometryError("cannot paste %d-component pixels into %d-component volume",
			src.Components, v.Components)
	}
	overlap, ok := v.Region.Intersect(src.Region)
	if !ok {
		return nil
	}
	copyRows(v, src, overlap)
	return nil
}

// Bytes returns the little-endian encoding of the pixel data.
func (v *Volume[T]) Bytes() []byte {
	return EncodeLE(v.Data)
}

// EncodeLE returns the little-endian encoding of data.
func EncodeLE[T Number](data []T) []byte {
	var buf bytes.Buffer
	buf.Grow(len(data) * ComponentTypeOf[T]().Bytes())
	binary.Write(&buf, binary.LittleEndian, data) // writes to bytes.Buffer cannot fail
	return buf.Bytes()
}

// DecodeLE decodes little-endian bytes into n values.
func DecodeLE[T Number](b []byte, n int) ([]T, error) {
	bytesPer := ComponentTypeOf[T]().Bytes()
	if len(b) != n*bytesPer {
		return nil, dvid.GeometryError("expected %d bytes for %d values, got %d", n*bytesPer, n, len(b))
	}
	data := make([]T, n)
	if err := binary.Read(bytes.NewReader(b), binary.LittleEndian, data); err != nil {
		return nil, err
	}
	return data, nil
}

// FromFloat converts x to T.  Integer types round half away from zero and clamp to
// the type's range, with NaN becoming zero.  Floating-point types convert directly.
func FromFloat[T Number](x float64) T {
	var out T
	switch p := any(&out).(type) {
	case *float32:
		*p = float32(x)
	case *float64:
		*p = x
	case *uint8:
		*p = uint8(roundClamp(x, 0, math.MaxUint8))
	case *int8:
		*p = int8(roundClamp(x, math.MinInt8, math.MaxInt8))
	case *uint16:
		*p = uint16(roundClamp(x, 0, math.MaxUint16))
	case *int16:
		*p = int16(roundClamp(x, math.MinInt16, math.MaxInt16))
	case *uint32:
		*p = uint32(roundClamp(x, 0, math.MaxUint32))
	case *int32:
		*p = int32(roundClamp(x, math.MinInt32, math.MaxInt32))
	case *uint64:
		r := math.Round(x)
		switch {
		case math.IsNaN(r) || r <= 0:
			*p = 0
		case r >= 1<<64:
			*p = math.MaxUint64
		default:
			*p = uint64(r)
		}
	case *int64:
		r := math.Round(x)
		switch {
		case math.IsNaN(r):
			*p = 0
		case r >= 1<<63:
			*p = math.MaxInt64
		case r <= -(1 << 63):
			*p = math.MinInt64
		default:
			*p = int64(r)
		}
	}
	return out
}

func roundClamp(x, lo, hi float64) float64 {
	r := math.Round(x)
	switch {
	case math.IsNaN(r):
		return 0
	case r < lo:
		return lo
	case r > hi:
		return hi
	}
	return r
}

// ForEachIndex calls fn for every index of r with the first axis varying fastest.
// The idx slice is reused between calls.
func ForEachIndex(r dvid.Region, fn func(idx []int)) {
	if r.NumVoxels() == 0 {
		return
	}
	idx := make([]int, r.NumDims())
	copy(idx, r.Index)
	end := r.End()
	for {
		fn(idx)
		d := 0
		for ; d < len(idx); d++ {
			idx[d]++
			if idx[d] < end[d] {
				break
			}
			idx[d] = r.Index[d]
		}
		if d == len(idx) {
			return
		}
	}
}
