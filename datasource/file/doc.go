// Package file provides a DataSource which reads data from a set of files on disk, matched
// by a glob. Each file is parsed in its entirety, and files ending in .lz4 are decompressed
// while they are read.
package file
