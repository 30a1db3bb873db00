/*
	Package server runs the downsampler: it loads configuration, computes one split of a
	shrunk image per Downsample call, and drives a batch of downsample processes that
	together cover every split.

	Configuration is read from a TOML file, or YAML when the file ends in .yaml or .yml:

		[logging]
		logfile = "/var/log/downsample.log"
		max_log_size = 500   # MB
		max_log_age = 30     # days

		[downsample]
		continuous = "binshrink"   # or "linear"
		splitter = "balanced"      # or "slowdim"
		slab_voxels = 16777216
		chunk_cache_mb = 256

		[output]
		chunk_slices = 16
		compression = "zstd"       # none, snappy, gzip or zstd
		checksum = "crc32"         # or none

		[kafka]
		servers = ["kafka1:9092"]
		topic = "downsample"
		encoding = "json"          # or msgpack

		[batch]
		max_procs = 8
		binary = "downsample"
*/
package server
