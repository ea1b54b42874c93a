// Package datasource loads Frames from external data. A DataSource describes where data
// lives and divides it into PartitionLoaders (one per file or buffer), each of which parses
// its share of the data with a Parser. Load concatenates the parsed Frames.
package datasource

import (
	"fmt"
	"io"

	"github.com/go-sif/tabular"
	"github.com/go-sif/tabular/frame"
)

// A Parser reads a Frame from a stream of data. With a nil Schema, Parsers determine
// column names and types from the data itself.
type Parser interface {
	Parse(r io.Reader, schema tabular.Schema) (*frame.Frame, error)
}

// A PartitionLoader loads one share of a DataSource
type PartitionLoader interface {
	ToString() string
	Load(parser Parser, schema tabular.Schema) (*frame.Frame, error)
}

// A PartitionMap is an iterator producing a sequence of PartitionLoaders
type PartitionMap interface {
	HasNext() bool
	Next() PartitionLoader
}

// A DataSource is a source of data which can be divided into PartitionLoaders
type DataSource interface {
	Analyze() (PartitionMap, error)
}

// Load parses every PartitionLoader of source and concatenates the results into a single
// Frame with a fresh index
func Load(source DataSource, parser Parser, schema tabular.Schema) (*frame.Frame, error) {
	pm, err := source.Analyze()
	if err != nil {
		return nil, err
	}
	var frames []*frame.Frame
	for pm.HasNext() {
		pl := pm.Next()
		f, err := pl.Load(parser, schema)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", pl.ToString(), err)
		}
		frames = append(frames, f)
	}
	if len(frames) == 0 {
		return frame.New(schema), nil
	}
	result, err := frame.Concat(frames...)
	if err != nil {
		return nil, err
	}
	result.ResetIndex()
	return result, nil
}
