package dvid

import (
	"bytes"
	"testing"

	. "github.com/janelia-flyem/go/gocheck"
)

func (suite *DataSuite) TestSerialization(c *C) {
	data := make([]byte, 4000)
	for i := range data {
		data[i] = byte(i % 7)
	}
	data[100] = 0xFF

	for _, compression := range []Compression{Uncompressed, Snappy, Gzip, Zstd} {
		for _, checksum := range []Checksum{NoChecksum, CRC32} {
			s, err := SerializeData(data, compression, checksum)
			c.Assert(err, IsNil)
			if len(s) == 0 {
				c.Errorf("Bad SerializeData() - output length 0")
			}

			returned, compress, err := DeserializeData(s, true)
			c.Assert(err, IsNil)
			c.Assert(compress, Equals, compression)
			c.Assert(bytes.Equal(returned, data), Equals, true)

			if checksum != NoChecksum {
				s[5] = s[5] ^ 0x04 // Flip a bit
				_, _, err = DeserializeData(s, true)
				c.Assert(err, NotNil)
			}
		}
	}
}

func (suite *DataSuite) TestSerializationFormat(c *C) {
	for _, compression := range []Compression{Uncompressed, Snappy, Gzip, Zstd} {
		for _, checksum := range []Checksum{NoChecksum, CRC32} {
			format := EncodeSerializationFormat(compression, checksum)
			gotCompress, gotChecksum := DecodeSerializationFormat(format)
			c.Assert(gotCompress, Equals, compression)
			c.Assert(gotChecksum, Equals, checksum)
		}
	}

	_, _, err := DeserializeData(nil, true)
	c.Assert(err, NotNil)
}

func (suite *DataSuite) TestParseCompression(c *C) {
	compress, err := ParseCompression("ZSTD")
	c.Assert(err, IsNil)
	c.Assert(compress, Equals, Zstd)
	compress, err = ParseCompression("")
	c.Assert(err, IsNil)
	c.Assert(compress, Equals, Uncompressed)
	_, err = ParseCompression("lz77")
	c.Assert(err, NotNil)

	checksum, err := ParseChecksum("crc32")
	c.Assert(err, IsNil)
	c.Assert(checksum, Equals, CRC32)
	_, err = ParseChecksum("md5")
	c.Assert(err, NotNil)
}

func BenchmarkZstdSerialize(b *testing.B) {
	data := make([]byte, 1<<20)
	for i := range data {
		data[i] = byte(i / 1000)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := SerializeData(data, Zstd, CRC32); err != nil {
			b.Fatal(err)
		}
	}
}
