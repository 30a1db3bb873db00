/*
	Package dvid provides types, constants, and functions that have no other dependencies
	and can be used by all packages of the downsampler.  This includes image geometry,
	pixel layouts, region splitting, serialization of stored chunks, error kinds,
	command argument handling and logging.
*/
package dvid
