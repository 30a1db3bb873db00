package datatype

import (
	"fmt"
	"sort"
	"strings"

	"github.com/janelia-flyem/downsample/datatype/common/downres"
	"github.com/janelia-flyem/downsample/dvid"
)

// Method selects the kernel used for non-label images.
type Method uint8

const (
	// BinShrink averages each non-overlapping bin of input pixels.
	BinShrink Method = iota

	// Linear maps output voxel centers into the input and interpolates N-linearly.
	Linear
)

func (m Method) String() string {
	switch m {
	case BinShrink:
		return "binshrink"
	case Linear:
		return "linear"
	default:
		return fmt.Sprintf("unknown method %d", uint8(m))
	}
}

// ParseMethod returns the method with the given name.  An empty name is BinShrink.
func ParseMethod(s string) (Method, error) {
	switch strings.ToLower(s) {
	case "", "binshrink":
		return BinShrink, nil
	case "linear":
		return Linear, nil
	}
	return BinShrink, dvid.ArgumentError("unknown downsampling method %q", s)
}

// service holds the kernel constructors and the supported pixel types of one
// component type.
type service struct {
	pixels    []dvid.PixelType
	newBin    func(components int) Kernel
	newLinear func(components int) Kernel
	newLabel  func() Kernel
}

func (s service) supports(p dvid.PixelType) bool {
	for _, supported := range s.pixels {
		if p == supported {
			return true
		}
	}
	return false
}

// compiled is the set of registered component types.
var compiled map[dvid.ComponentType]service

// register adds the kernels for T.  Label kernels are only registered when
// labelable is true.
func register[T downres.Number](labelable bool, pixels ...dvid.PixelType) {
	if compiled == nil {
		compiled = make(map[dvid.ComponentType]service)
	}
	s := service{
		pixels:    pixels,
		newBin:    func(n int) Kernel { return binKernel[T]{n} },
		newLinear: func(n int) Kernel { return linearKernel[T]{n} },
	}
	if labelable {
		s.newLabel = func() Kernel { return labelKernel[T]{} }
	}
	compiled[downres.ComponentTypeOf[T]()] = s
}

func init() {
	unsigned := []dvid.PixelType{dvid.Scalar, dvid.RGB, dvid.RGBA, dvid.VariableLengthVector}
	register[uint8](true, unsigned...)
	register[uint16](true, unsigned...)
	register[uint32](true, unsigned...)
	register[uint64](true, unsigned...)

	signed := []dvid.PixelType{dvid.Scalar, dvid.VariableLengthVector}
	register[int8](false, signed...)
	register[int16](false, signed...)
	register[int32](false, signed...)
	register[int64](false, signed...)

	floats := []dvid.PixelType{dvid.Scalar, dvid.Vector, dvid.CovariantVector,
		dvid.SymmetricSecondRankTensor, dvid.VariableLengthVector}
	register[float32](false, floats...)
	register[float64](false, floats...)
}

// Resolve returns the kernel for an image with the given pixel layout.  Label images
// are always resampled with the Gaussian label vote and need single-component
// unsigned integer pixels.  Other images use the given method.
func Resolve(info dvid.ImageInfo, isLabel bool, method Method) (Kernel, error) {
	dims := info.Dims()
	if dims != 2 && dims != 3 {
		return nil, dvid.DimensionalityError(dims)
	}
	s, found := compiled[info.Component]
	if !found {
		return nil, dvid.UnsupportedTypeError("component type %s is not supported", info.Component)
	}
	if isLabel {
		if s.newLabel == nil {
			return nil, dvid.UnsupportedTypeError("label images need unsigned integer components, got %s",
				info.Component)
		}
		if info.Components != 1 || (info.Pixel != dvid.Scalar && info.Pixel != dvid.VariableLengthVector) {
			return nil, dvid.UnsupportedTypeError("label images need single-component pixels, got %s with %d components",
				info.Pixel, info.Components)
		}
		return s.newLabel(), nil
	}
	if !s.supports(info.Pixel) {
		return nil, dvid.UnsupportedTypeError("%s pixels of %s are not supported", info.Pixel, info.Component)
	}
	if info.Components < 1 {
		return nil, dvid.UnsupportedTypeError("%s pixels need at least one component", info.Pixel)
	}
	if n := info.Pixel.Components(dims); n != 0 && n != info.Components {
		return nil, dvid.UnsupportedTypeError("%s pixels in %dd have %d components, got %d",
			info.Pixel, dims, n, info.Components)
	}
	switch method {
	case BinShrink:
		return s.newBin(info.Components), nil
	case Linear:
		return s.newLinear(info.Components), nil
	}
	return nil, dvid.ArgumentError("unknown downsampling method %s", method)
}

// CompiledChart returns a chart of the supported pixel layouts.
func CompiledChart() string {
	types := make([]dvid.ComponentType, 0, len(compiled))
	for t := range compiled {
		types = append(types, t)
	}
	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })

	var sb strings.Builder
	sb.WriteString("\nPixel layouts supported by this executable\n\n")
	writeLine := func(component, label, pixels string) {
		fmt.Fprintf(&sb, "%-10s %-6s %s\n", component, label, pixels)
	}
	writeLine("Component", "Label", "Pixel types")
	for _, t := range types {
		s := compiled[t]
		label := "no"
		if s.newLabel != nil {
			label = "yes"
		}
		names := make([]string, len(s.pixels))
		for i, p := range s.pixels {
			names[i] = p.String()
		}
		writeLine(t.String(), label, strings.Join(names, ", "))
	}
	return sb.String() + "\n"
}
