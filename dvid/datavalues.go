/*
	This file handles the layout of a pixel: the numeric type of each component
	and the topology that groups components into a pixel.
*/

package dvid

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ComponentType is the numeric type of a single pixel component, e.g., a uint8 or a float32.
type ComponentType uint8

const (
	UnknownComponent ComponentType = iota
	T_uint8
	T_int8
	T_uint16
	T_int16
	T_uint32
	T_int32
	T_uint64
	T_int64
	T_float32
	T_float64
)

var componentBytes = map[ComponentType]int{
	T_uint8:   1,
	T_int8:    1,
	T_uint16:  2,
	T_int16:   2,
	T_uint32:  4,
	T_int32:   4,
	T_uint64:  8,
	T_int64:   8,
	T_float32: 4,
	T_float64: 8,
}

var componentNames = map[ComponentType]string{
	T_uint8:   "uint8",
	T_int8:    "int8",
	T_uint16:  "uint16",
	T_int16:   "int16",
	T_uint32:  "uint32",
	T_int32:   "int32",
	T_uint64:  "uint64",
	T_int64:   "int64",
	T_float32: "float32",
	T_float64: "float64",
}

// NumPy array-protocol type strings.  Multi-byte types are always little-endian.
var componentDtypes = map[ComponentType]string{
	T_uint8:   "|u1",
	T_int8:    "|i1",
	T_uint16:  "<u2",
	T_int16:   "<i2",
	T_uint32:  "<u4",
	T_int32:   "<i4",
	T_uint64:  "<u8",
	T_int64:   "<i8",
	T_float32: "<f4",
	T_float64: "<f8",
}

// Bytes returns the # of bytes for one component of this type.
func (t ComponentType) Bytes() int {
	return componentBytes[t]
}

// IsFloat returns true for floating-point component types.
func (t ComponentType) IsFloat() bool {
	return t == T_float32 || t == T_float64
}

// IsSigned returns true for signed integer component types.
func (t ComponentType) IsSigned() bool {
	switch t {
	case T_int8, T_int16, T_int32, T_int64:
		return true
	}
	return false
}

// IsUnsigned returns true for unsigned integer component types.
func (t ComponentType) IsUnsigned() bool {
	switch t {
	case T_uint8, T_uint16, T_uint32, T_uint64:
		return true
	}
	return false
}

func (t ComponentType) String() string {
	if name, found := componentNames[t]; found {
		return name
	}
	return fmt.Sprintf("unknown component type %d", uint8(t))
}

// Dtype returns the NumPy-style type string, e.g., "<u2".
func (t ComponentType) Dtype() string {
	return componentDtypes[t]
}

// ParseComponentType accepts either a Go-style name ("uint16") or a NumPy-style
// type string ("<u2", "u2").
func ParseComponentType(s string) (ComponentType, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	for t, name := range componentNames {
		if s == name {
			return t, nil
		}
	}
	for t, dtype := range componentDtypes {
		if s == dtype || s == dtype[1:] {
			return t, nil
		}
	}
	return UnknownComponent, UnsupportedTypeError("unknown component type %q", s)
}

func (t ComponentType) MarshalJSON() ([]byte, error) {
	if t == UnknownComponent {
		return nil, UnsupportedTypeError("cannot marshal unknown component type")
	}
	return MarshalJSON(t.Dtype(), "")
}

func (t *ComponentType) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	ct, err := ParseComponentType(s)
	if err != nil {
		return err
	}
	*t = ct
	return nil
}

// PixelType is the topology of a pixel, i.e., how components are grouped.
type PixelType uint8

const (
	UnknownPixel PixelType = iota
	Scalar
	RGB
	RGBA
	Vector
	CovariantVector
	SymmetricSecondRankTensor
	VariableLengthVector
)

var pixelNames = map[PixelType]string{
	Scalar:                    "Scalar",
	RGB:                       "RGB",
	RGBA:                      "RGBA",
	Vector:                    "Vector",
	CovariantVector:           "CovariantVector",
	SymmetricSecondRankTensor: "SymmetricSecondRankTensor",
	VariableLengthVector:      "VariableLengthVector",
}

func (p PixelType) String() string {
	if name, found := pixelNames[p]; found {
		return name
	}
	return fmt.Sprintf("unknown pixel type %d", uint8(p))
}

// ParsePixelType is case-insensitive.
func ParsePixelType(s string) (PixelType, error) {
	lower := strings.ToLower(strings.TrimSpace(s))
	for p, name := range pixelNames {
		if strings.ToLower(name) == lower {
			return p, nil
		}
	}
	return UnknownPixel, UnsupportedTypeError("unknown pixel type %q", s)
}

// Components returns the number of components per pixel for a fixed-size topology
// in an image of the given dimensionality.  Variable-length vectors return 0 since
// the count must be declared separately.
func (p PixelType) Components(dims int) int {
	switch p {
	case Scalar:
		return 1
	case RGB:
		return 3
	case RGBA:
		return 4
	case Vector, CovariantVector:
		return dims
	case SymmetricSecondRankTensor:
		return dims * (dims + 1) / 2
	default:
		return 0
	}
}

func (p PixelType) MarshalJSON() ([]byte, error) {
	if p == UnknownPixel {
		return nil, UnsupportedTypeError("cannot marshal unknown pixel type")
	}
	return MarshalJSON(p.String(), "")
}

func (p *PixelType) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	pt, err := ParsePixelType(s)
	if err != nil {
		return err
	}
	*p = pt
	return nil
}

// ImageInfo is the metadata of an image that can be read without loading any pixels.
type ImageInfo struct {
	Geometry
	Component  ComponentType
	Pixel      PixelType
	Components int
}

// Dims returns the spatial dimensionality.
func (info ImageInfo) Dims() int {
	return len(info.Size)
}

// BytesPerPixel returns the number of bytes for all components of one pixel.
func (info ImageInfo) BytesPerPixel() int {
	return info.Components * info.Component.Bytes()
}

// Validate checks the pixel layout and the geometry.
func (info ImageInfo) Validate() error {
	if dims := info.Dims(); dims != 2 && dims != 3 {
		return DimensionalityError(dims)
	}
	if info.Component.Bytes() == 0 {
		return UnsupportedTypeError("unknown component type %d", uint8(info.Component))
	}
	if info.Pixel == UnknownPixel || info.Pixel > VariableLengthVector {
		return UnsupportedTypeError("unknown pixel type %d", uint8(info.Pixel))
	}
	if info.Components < 1 {
		return UnsupportedTypeError("%s pixels must have at least one component", info.Pixel)
	}
	if n := info.Pixel.Components(info.Dims()); n != 0 && n != info.Components {
		return UnsupportedTypeError("%s pixels in %dd need %d components, got %d",
			info.Pixel, info.Dims(), n, info.Components)
	}
	return info.Geometry.Validate()
}

func (info ImageInfo) String() string {
	return fmt.Sprintf("%dd %s %s (%d components) %s", info.Dims(), info.Component, info.Pixel,
		info.Components, info.Geometry)
}
