// Package memory provides a DataSource which parses in-memory buffers, one Frame per buffer.
package memory

import (
	"github.com/go-sif/tabular"
	"github.com/go-sif/tabular/datasource"
	"github.com/go-sif/tabular/frame"
)

// DataSource is a list of buffers containing data
type DataSource struct {
	data [][]byte
}

// CreateDataSource is a factory for DataSources
func CreateDataSource(data [][]byte) *DataSource {
	return &DataSource{data}
}

// Load parses every buffer with parser and concatenates the results
func Load(data [][]byte, parser datasource.Parser, schema tabular.Schema) (*frame.Frame, error) {
	return datasource.Load(CreateDataSource(data), parser, schema)
}

// Analyze returns a PartitionMap, describing how the source data will be divided into PartitionLoaders
func (fs *DataSource) Analyze() (datasource.PartitionMap, error) {
	return &PartitionMap{
		source: fs,
	}, nil
}
