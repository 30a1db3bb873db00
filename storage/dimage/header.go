package dimage

import (
	"encoding/json"
	"fmt"

	"github.com/janelia-flyem/downsample/dvid"

	"github.com/blang/semver"
	"github.com/santhosh-tekuri/jsonschema/v5"
)

// HeaderKey is the key of the header object within an image prefix.
const HeaderKey = "dimage.json"

// FormatVersion is written into every new header.  Readers accept any 1.x version.
var FormatVersion = semver.MustParse("1.0.0")

// DefaultChunkSlices is the number of slowest-axis slices per chunk when none is given.
const DefaultChunkSlices = 16

const headerSchema = `{
	"$schema": "http://json-schema.org/draft-07/schema#",
	"type": "object",
	"required": ["format", "dimension", "componentType", "pixelType", "components",
		"size", "spacing", "origin", "direction", "chunkSlices", "compression", "checksum"],
	"properties": {
		"format": {"type": "string"},
		"dimension": {"type": "integer", "minimum": 2, "maximum": 3},
		"componentType": {"type": "string"},
		"pixelType": {"type": "string"},
		"components": {"type": "integer", "minimum": 1},
		"size": {"type": "array", "items": {"type": "integer", "minimum": 1}, "minItems": 2, "maxItems": 3},
		"spacing": {"type": "array", "items": {"type": "number", "exclusiveMinimum": 0}, "minItems": 2, "maxItems": 3},
		"origin": {"type": "array", "items": {"type": "number"}, "minItems": 2, "maxItems": 3},
		"direction": {"type": "array", "items": {"type": "number"}, "minItems": 4, "maxItems": 9},
		"index": {"type": "array", "items": {"type": "integer", "minimum": 0}, "minItems": 2, "maxItems": 3},
		"chunkSlices": {"type": "integer", "minimum": 1},
		"compression": {"enum": ["none", "snappy", "gzip", "zstd"]},
		"checksum": {"enum": ["none", "crc32"]}
	}
}`

var compiledSchema = jsonschema.MustCompileString("dimage.schema.json", headerSchema)

// Header describes an image stored as a set of chunk objects.
type Header struct {
	Format      string             `json:"format"`
	Dimension   int                `json:"dimension"`
	Component   dvid.ComponentType `json:"componentType"`
	Pixel       dvid.PixelType     `json:"pixelType"`
	Components  int                `json:"components"`
	Size        []int              `json:"size"`
	Spacing     []float64          `json:"spacing"`
	Origin      []float64          `json:"origin"`
	Direction   []float64          `json:"direction"`
	Index       []int              `json:"index,omitempty"`
	ChunkSlices int                `json:"chunkSlices"`
	Compression string             `json:"compression"`
	Checksum    string             `json:"checksum"`
}

// Options control how an image is chunked and encoded.
type Options struct {
	ChunkSlices int
	Compression dvid.Compression
	Checksum    dvid.Checksum
}

// NewHeader returns the header for an image with the given metadata.  The index
// places the image within a larger grid and may be nil.
func NewHeader(info dvid.ImageInfo, index []int, opts Options) (*Header, error) {
	if err := info.Validate(); err != nil {
		return nil, err
	}
	dims := info.Dims()
	if index == nil {
		index = make([]int, dims)
	}
	if len(index) != dims {
		return nil, dvid.GeometryError("index %v does not match %dd image", index, dims)
	}
	if opts.ChunkSlices <= 0 {
		opts.ChunkSlices = DefaultChunkSlices
	}
	return &Header{
		Format:      FormatVersion.String(),
		Dimension:   dims,
		Component:   info.Component,
		Pixel:       info.Pixel,
		Components:  info.Components,
		Size:        append([]int{}, info.Size...),
		Spacing:     append([]float64{}, info.Spacing...),
		Origin:      append([]float64{}, info.Origin...),
		Direction:   append([]float64{}, info.Direction...),
		Index:       append([]int{}, index...),
		ChunkSlices: opts.ChunkSlices,
		Compression: opts.Compression.String(),
		Checksum:    opts.Checksum.String(),
	}, nil
}

// ParseHeader validates and decodes a header.
func ParseHeader(b []byte) (*Header, error) {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return nil, dvid.IOError(err, "bad image header")
	}
	if err := compiledSchema.Validate(v); err != nil {
		return nil, dvid.IOError(err, "image header does not match schema")
	}
	h := new(Header)
	if err := json.Unmarshal(b, h); err != nil {
		return nil, dvid.UnsupportedTypeError("image header: %v", err)
	}
	ver, err := semver.Parse(h.Format)
	if err != nil {
		return nil, dvid.IOError(err, "bad image format version %q", h.Format)
	}
	if ver.Major != FormatVersion.Major {
		return nil, dvid.UnsupportedTypeError("image format version %s, expected %d.x", ver, FormatVersion.Major)
	}
	dims := h.Dimension
	if len(h.Size) != dims || len(h.Spacing) != dims || len(h.Origin) != dims || len(h.Direction) != dims*dims {
		return nil, dvid.GeometryError("image header geometry does not match dimension %d", dims)
	}
	if h.Index == nil {
		h.Index = make([]int, dims)
	} else if len(h.Index) != dims {
		return nil, dvid.GeometryError("image header index %v does not match dimension %d", h.Index, dims)
	}
	if err := h.Info().Validate(); err != nil {
		return nil, err
	}
	return h, nil
}

// Info returns the image metadata described by the header.
func (h *Header) Info() dvid.ImageInfo {
	return dvid.ImageInfo{
		Geometry: dvid.Geometry{
			Size:      h.Size,
			Origin:    h.Origin,
			Spacing:   h.Spacing,
			Direction: h.Direction,
		},
		Component:  h.Component,
		Pixel:      h.Pixel,
		Components: h.Components,
	}
}

// codec returns the parsed chunk compression and checksum.
func (h *Header) codec() (dvid.Compression, dvid.Checksum, error) {
	compress, err := dvid.ParseCompression(h.Compression)
	if err != nil {
		return 0, 0, err
	}
	checksum, err := dvid.ParseChecksum(h.Checksum)
	if err != nil {
		return 0, 0, err
	}
	return compress, checksum, nil
}

// NumChunks returns the number of chunk objects.
func (h *Header) NumChunks() int {
	slices := h.Size[h.Dimension-1]
	return (slices + h.ChunkSlices - 1) / h.ChunkSlices
}

// ChunkRegion returns the index region covered by chunk n.
func (h *Header) ChunkRegion(n int) dvid.Region {
	r := dvid.FullRegion(h.Size)
	slow := h.Dimension - 1
	r.Index[slow] = n * h.ChunkSlices
	r.Size[slow] = h.ChunkSlices
	if end := r.Index[slow] + r.Size[slow]; end > h.Size[slow] {
		r.Size[slow] = h.Size[slow] - r.Index[slow]
	}
	return r
}

// ChunkKey returns the key of chunk n.
func ChunkKey(n int) string {
	return fmt.Sprintf("chunks/%d", n)
}

func (h *Header) String() string {
	return fmt.Sprintf("dimage %s: %s index %v, %d chunks of %d slices, %s/%s", h.Format, h.Info(),
		h.Index, h.NumChunks(), h.ChunkSlices, h.Compression, h.Checksum)
}
