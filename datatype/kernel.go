package datatype

import (
	"fmt"

	"github.com/janelia-flyem/downsample/datatype/common/downres"
	"github.com/janelia-flyem/downsample/datatype/common/labels"
	"github.com/janelia-flyem/downsample/dvid"
)

// RawReader reads the pixels of an index region as little-endian interleaved components,
// first axis varying fastest.
type RawReader interface {
	ReadRaw(r dvid.Region) ([]byte, error)
}

// Tile is a computed region of a shrunk image.
type Tile struct {
	Region     dvid.Region
	Component  dvid.ComponentType
	Components int

	// Data holds little-endian interleaved components.
	Data []byte
}

// Kernel computes a region of a shrunk image for one resolved pixel layout.
type Kernel interface {
	fmt.Stringer

	ComponentType() dvid.ComponentType
	Components() int

	// Run computes outRegion of the image obtained by shrinking an image with
	// geometry inputGeom by the factor f.  Only the input needed for outRegion
	// is read from src.
	Run(src RawReader, inputGeom dvid.Geometry, f dvid.ShrinkFactor, outRegion dvid.Region) (*Tile, error)
}

// typedReader adapts a RawReader to a typed region reader.
type typedReader[T downres.Number] struct {
	raw        RawReader
	components int
}

func (tr typedReader[T]) ReadRegion(r dvid.Region) (*downres.Volume[T], error) {
	b, err := tr.raw.ReadRaw(r)
	if err != nil {
		return nil, err
	}
	data, err := downres.DecodeLE[T](b, int(r.NumVoxels())*tr.components)
	if err != nil {
		return nil, dvid.IOError(err, "reading region %s", r)
	}
	return &downres.Volume[T]{Region: r.Copy(), Components: tr.components, Data: data}, nil
}

type volumeSource[T downres.Number] struct {
	vol *downres.Volume[T]
}

func (vs volumeSource[T]) ReadRaw(r dvid.Region) ([]byte, error) {
	v, err := vs.vol.ReadRegion(r)
	if err != nil {
		return nil, err
	}
	return v.Bytes(), nil
}

// VolumeSource returns a RawReader over an in-memory volume.
func VolumeSource[T downres.Number](vol *downres.Volume[T]) RawReader {
	return volumeSource[T]{vol}
}

func newTile[T downres.Number](vol *downres.Volume[T]) *Tile {
	return &Tile{
		Region:     vol.Region,
		Component:  downres.ComponentTypeOf[T](),
		Components: vol.Components,
		Data:       vol.Bytes(),
	}
}

type binKernel[T downres.Number] struct {
	components int
}

func (k binKernel[T]) String() string {
	return fmt.Sprintf("bin shrink of %s x%d", downres.ComponentTypeOf[T](), k.components)
}

func (k binKernel[T]) ComponentType() dvid.ComponentType { return downres.ComponentTypeOf[T]() }

func (k binKernel[T]) Components() int { return k.components }

func (k binKernel[T]) Run(src RawReader, inputGeom dvid.Geometry, f dvid.ShrinkFactor,
	outRegion dvid.Region) (*Tile, error) {

	vol, err := downres.BinShrink[T](typedReader[T]{src, k.components}, k.components, inputGeom, f, outRegion)
	if err != nil {
		return nil, err
	}
	return newTile(vol), nil
}

type linearKernel[T downres.Number] struct {
	components int
}

func (k linearKernel[T]) String() string {
	return fmt.Sprintf("linear resample of %s x%d", downres.ComponentTypeOf[T](), k.components)
}

func (k linearKernel[T]) ComponentType() dvid.ComponentType { return downres.ComponentTypeOf[T]() }

func (k linearKernel[T]) Components() int { return k.components }

func (k linearKernel[T]) Run(src RawReader, inputGeom dvid.Geometry, f dvid.ShrinkFactor,
	outRegion dvid.Region) (*Tile, error) {

	shrunk, err := inputGeom.Shrink(f)
	if err != nil {
		return nil, err
	}
	vol, err := downres.LinearResample[T](typedReader[T]{src, k.components}, k.components,
		inputGeom, shrunk, outRegion)
	if err != nil {
		return nil, err
	}
	return newTile(vol), nil
}

type labelKernel[T downres.Number] struct{}

func (k labelKernel[T]) String() string {
	return fmt.Sprintf("gaussian label vote of %s", downres.ComponentTypeOf[T]())
}

func (k labelKernel[T]) ComponentType() dvid.ComponentType { return downres.ComponentTypeOf[T]() }

func (k labelKernel[T]) Components() int { return 1 }

func (k labelKernel[T]) Run(src RawReader, inputGeom dvid.Geometry, f dvid.ShrinkFactor,
	outRegion dvid.Region) (*Tile, error) {

	shrunk, err := inputGeom.Shrink(f)
	if err != nil {
		return nil, err
	}
	sigma, alpha := labels.KernelParams(shrunk.Spacing)
	dvid.Debugf("Label kernel sigma %v, alpha %g\n", sigma, alpha)
	vol, err := labels.GaussianResample[T](typedReader[T]{src, 1}, inputGeom, shrunk, outRegion, sigma, alpha)
	if err != nil {
		return nil, err
	}
	return newTile(vol), nil
}
