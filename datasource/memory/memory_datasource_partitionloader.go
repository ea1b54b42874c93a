package memory

import (
	"bytes"
	"fmt"

	"github.com/go-sif/tabular"
	"github.com/go-sif/tabular/datasource"
	"github.com/go-sif/tabular/frame"
)

// PartitionLoader loads a single buffer
type PartitionLoader struct {
	idx    int
	source *DataSource
}

// ToString returns a string representation of this PartitionLoader
func (pl *PartitionLoader) ToString() string {
	return fmt.Sprintf("Memory loader index: %d", pl.idx)
}

// Load parses the buffer of this PartitionLoader
func (pl *PartitionLoader) Load(parser datasource.Parser, schema tabular.Schema) (*frame.Frame, error) {
	r := bytes.NewReader(pl.source.data[pl.idx])
	return parser.Parse(r, schema)
}
