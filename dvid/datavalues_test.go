package dvid

import (
	"encoding/json"
	"errors"

	. "github.com/janelia-flyem/go/gocheck"
)

type DatavalueSuite struct{}

var _ = Suite(&DatavalueSuite{})

func (s *DatavalueSuite) TestComponentTypes(c *C) {
	for _, name := range []string{"uint16", "<u2", "u2"} {
		t, err := ParseComponentType(name)
		c.Assert(err, IsNil)
		c.Assert(t, Equals, T_uint16)
	}
	c.Assert(T_int8.Dtype(), Equals, "|i1")
	c.Assert(T_float64.Bytes(), Equals, 8)
	c.Assert(T_int32.IsSigned(), Equals, true)
	c.Assert(T_uint64.IsUnsigned(), Equals, true)
	c.Assert(T_float32.IsFloat(), Equals, true)
	c.Assert(T_float32.IsSigned(), Equals, false)

	_, err := ParseComponentType("complex128")
	c.Assert(errors.Is(err, ErrUnsupportedType), Equals, true)

	b, err := MarshalJSON(T_float32, "")
	c.Assert(err, IsNil)
	c.Assert(string(b), Equals, `"<f4"`)
	b, err = MarshalJSON(struct {
		Type ComponentType `json:"type"`
	}{T_uint16}, "")
	c.Assert(err, IsNil)
	c.Assert(string(b), Equals, `{"type":"<u2"}`)
	var t ComponentType
	c.Assert(json.Unmarshal([]byte(`"|u1"`), &t), IsNil)
	c.Assert(t, Equals, T_uint8)
}

func (s *DatavalueSuite) TestPixelTypes(c *C) {
	p, err := ParsePixelType("covariantvector")
	c.Assert(err, IsNil)
	c.Assert(p, Equals, CovariantVector)

	c.Assert(Scalar.Components(3), Equals, 1)
	c.Assert(RGB.Components(2), Equals, 3)
	c.Assert(RGBA.Components(3), Equals, 4)
	c.Assert(Vector.Components(2), Equals, 2)
	c.Assert(SymmetricSecondRankTensor.Components(3), Equals, 6)
	c.Assert(SymmetricSecondRankTensor.Components(2), Equals, 3)
	c.Assert(VariableLengthVector.Components(3), Equals, 0)

	_, err = ParsePixelType("quaternion")
	c.Assert(errors.Is(err, ErrUnsupportedType), Equals, true)
}

func (s *DatavalueSuite) TestImageInfo(c *C) {
	info := ImageInfo{
		Geometry:   NewGeometry([]int{10, 10, 10}),
		Component:  T_float32,
		Pixel:      SymmetricSecondRankTensor,
		Components: 6,
	}
	c.Assert(info.Validate(), IsNil)
	c.Assert(info.BytesPerPixel(), Equals, 24)

	info.Components = 5
	c.Assert(errors.Is(info.Validate(), ErrUnsupportedType), Equals, true)

	info.Pixel = VariableLengthVector
	c.Assert(info.Validate(), IsNil)

	info.Geometry = NewGeometry([]int{10})
	c.Assert(errors.Is(info.Validate(), ErrDimensionality), Equals, true)
}

func (s *DatavalueSuite) TestCommand(c *C) {
	cmd := Command{"downsample", "1", "in", "out", "2"}
	c.Assert(cmd.Name(), Equals, "downsample")
	c.Assert(cmd.NumArgs(), Equals, 4)
	c.Assert(cmd.Argument(2), Equals, "in")
	c.Assert(cmd.Argument(9), Equals, "")

	var label, input string
	overflow := cmd.CommandArgs(&label, &input)
	c.Assert(label, Equals, "1")
	c.Assert(input, Equals, "in")
	c.Assert(overflow, DeepEquals, []string{"out", "2"})

	isLabel, err := ParseFlag01("isLabel", "1")
	c.Assert(err, IsNil)
	c.Assert(isLabel, Equals, true)
	_, err = ParseFlag01("isLabel", "yes")
	c.Assert(errors.Is(err, ErrBadArgument), Equals, true)

	_, err = ParsePositiveInt("factor", "0")
	c.Assert(errors.Is(err, ErrBadArgument), Equals, true)
	n, err := ParseNonNegativeInt("split", "0")
	c.Assert(err, IsNil)
	c.Assert(n, Equals, 0)
	_, err = ParseNonNegativeInt("split", "-1")
	c.Assert(errors.Is(err, ErrBadArgument), Equals, true)

	list, err := ParseIntList("100, 50,1")
	c.Assert(err, IsNil)
	c.Assert(list, DeepEquals, []int{100, 50, 1})
	floats, err := ParseFloatList("0.5,2")
	c.Assert(err, IsNil)
	c.Assert(floats, DeepEquals, []float64{0.5, 2})

	c.Assert(ConvertToAbsolute("/base", "logs/x.log"), Equals, "/base/logs/x.log")
	c.Assert(ConvertToAbsolute("/base", "/abs.log"), Equals, "/abs.log")
	c.Assert(ConvertToAbsolute("/base", "gs://bucket/x"), Equals, "gs://bucket/x")
}
