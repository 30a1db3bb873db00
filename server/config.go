package server

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/janelia-flyem/downsample/datatype"
	"github.com/janelia-flyem/downsample/datatype/common/downres"
	"github.com/janelia-flyem/downsample/dvid"
	"github.com/janelia-flyem/downsample/storage"
	"github.com/janelia-flyem/downsample/storage/dimage"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultChunkSlices is the default number of slowest-axis slices per output chunk.
	DefaultChunkSlices = 16

	// DefaultBinary is the downsample executable launched per split by the batch runner.
	DefaultBinary = "downsample"
)

var (
	// the parsed configuration data
	tc tomlConfig

	// the config file location
	tcLocation string
)

func init() {
	tc = defaultConfig()
}

type tomlConfig struct {
	Logging    dvid.LogConfig      `toml:"logging" yaml:"logging"`
	Downsample downsampleConfig    `toml:"downsample" yaml:"downsample"`
	Output     outputConfig        `toml:"output" yaml:"output"`
	Kafka      storage.KafkaConfig `toml:"kafka" yaml:"kafka"`
	Batch      batchConfig         `toml:"batch" yaml:"batch"`
}

type downsampleConfig struct {
	Continuous   string `toml:"continuous" yaml:"continuous"`
	Splitter     string `toml:"splitter" yaml:"splitter"`
	SlabVoxels   int64  `toml:"slab_voxels" yaml:"slab_voxels"`
	ChunkCacheMB int    `toml:"chunk_cache_mb" yaml:"chunk_cache_mb"`
}

type outputConfig struct {
	ChunkSlices int    `toml:"chunk_slices" yaml:"chunk_slices"`
	Compression string `toml:"compression" yaml:"compression"`
	Checksum    string `toml:"checksum" yaml:"checksum"`
}

type batchConfig struct {
	MaxProcs int    `toml:"max_procs" yaml:"max_procs"`
	Binary   string `toml:"binary" yaml:"binary"`
}

func defaultConfig() tomlConfig {
	return tomlConfig{
		Downsample: downsampleConfig{
			Continuous: datatype.BinShrink.String(),
			Splitter:   "balanced",
			SlabVoxels: downres.DefaultSlabVoxels,
		},
		Output: outputConfig{
			ChunkSlices: DefaultChunkSlices,
			Compression: dvid.Zstd.String(),
			Checksum:    dvid.CRC32.String(),
		},
		Batch: batchConfig{
			MaxProcs: runtime.NumCPU(),
			Binary:   DefaultBinary,
		},
	}
}

// Some settings can be given as relative paths.  This function converts them
// in-place to absolute paths, assuming the given paths were relative to the config
// file's own directory.
func (c *tomlConfig) convertPathsToAbsolute(configPath string) {
	configDir := filepath.Dir(configPath)

	// [logging].logfile
	c.Logging.Logfile = dvid.ConvertToAbsolute(configDir, c.Logging.Logfile)

	// [batch].binary, unless it is a bare name looked up on PATH
	if strings.ContainsRune(c.Batch.Binary, filepath.Separator) {
		c.Batch.Binary = dvid.ConvertToAbsolute(configDir, c.Batch.Binary)
	}
}

// validate checks every setting that names a choice.
func (c *tomlConfig) validate() error {
	if _, err := datatype.ParseMethod(c.Downsample.Continuous); err != nil {
		return err
	}
	if _, err := dvid.NewSplitter(c.Downsample.Splitter); err != nil {
		return err
	}
	if _, err := dvid.ParseCompression(c.Output.Compression); err != nil {
		return err
	}
	if _, err := dvid.ParseChecksum(c.Output.Checksum); err != nil {
		return err
	}
	switch strings.ToLower(c.Kafka.Encoding) {
	case "", "json", "msgpack":
	default:
		return dvid.ArgumentError("unknown kafka event encoding %q", c.Kafka.Encoding)
	}
	if c.Output.ChunkSlices <= 0 {
		c.Output.ChunkSlices = DefaultChunkSlices
	}
	if c.Batch.MaxProcs <= 0 {
		c.Batch.MaxProcs = runtime.NumCPU()
	}
	if c.Batch.Binary == "" {
		c.Batch.Binary = DefaultBinary
	}
	return nil
}

// LoadConfig loads configuration from a TOML file, or a YAML file if the extension
// is .yaml or .yml, and applies the logging, slab and cache settings.  An empty
// filename restores the defaults.
func LoadConfig(filename string) error {
	c := defaultConfig()
	if filename != "" {
		contents, err := os.ReadFile(filename)
		if err != nil {
			return dvid.IOError(err, "could not read config %q", filename)
		}
		switch strings.ToLower(filepath.Ext(filename)) {
		case ".yaml", ".yml":
			if err := yaml.Unmarshal(contents, &c); err != nil {
				return dvid.ArgumentError("could not decode YAML config: %v", err)
			}
		default:
			if _, err := toml.Decode(string(contents), &c); err != nil {
				return dvid.ArgumentError("could not decode TOML config: %v", err)
			}
		}
		c.convertPathsToAbsolute(filename)
	}
	if err := c.validate(); err != nil {
		return err
	}
	tc = c
	tcLocation = filename

	tc.Logging.SetLogger()
	downres.SetSlabVoxels(tc.Downsample.SlabVoxels)
	dimage.SetChunkCache(tc.Downsample.ChunkCacheMB * dvid.Mega)
	if filename != "" {
		dvid.Debugf("config %s: %+v\n", filename, tc)
	}
	return nil
}

// ConfigLocation returns the loaded config file or the empty string for defaults.
func ConfigLocation() string {
	return tcLocation
}

// ContinuousMethod returns the kernel method for non-label images.
func ContinuousMethod() datatype.Method {
	m, _ := datatype.ParseMethod(tc.Downsample.Continuous)
	return m
}

// Splitter returns the configured split strategy.
func Splitter() dvid.Splitter {
	s, err := dvid.NewSplitter(tc.Downsample.Splitter)
	if err != nil {
		return dvid.BalancedSplitter{}
	}
	return s
}

// OutputOptions returns how output tiles are chunked and encoded.
func OutputOptions() dimage.Options {
	compress, _ := dvid.ParseCompression(tc.Output.Compression)
	checksum, _ := dvid.ParseChecksum(tc.Output.Checksum)
	return dimage.Options{
		ChunkSlices: tc.Output.ChunkSlices,
		Compression: compress,
		Checksum:    checksum,
	}
}

// KafkaConfig returns the completion event settings.
func KafkaConfig() storage.KafkaConfig {
	return tc.Kafka
}

// KafkaAvailable returns true if kafka servers are configured.
func KafkaAvailable() bool {
	return len(tc.Kafka.Servers) != 0
}

// MaxProcs returns the number of concurrent split processes for batch runs.
func MaxProcs() int {
	return tc.Batch.MaxProcs
}

// BatchBinary returns the downsample executable used by batch runs.
func BatchBinary() string {
	return tc.Batch.Binary
}
