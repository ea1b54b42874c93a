package file

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/go-sif/tabular"
	"github.com/go-sif/tabular/datasource"
	"github.com/go-sif/tabular/frame"
	"github.com/pierrec/lz4/v4"
)

// PartitionLoader loads a single file
type PartitionLoader struct {
	path   string
	source *DataSource
}

// ToString returns a string representation of this PartitionLoader
func (pl *PartitionLoader) ToString() string {
	return fmt.Sprintf("File loader filename: %s", pl.path)
}

// Load parses the file of this PartitionLoader
func (pl *PartitionLoader) Load(parser datasource.Parser, schema tabular.Schema) (*frame.Frame, error) {
	f, err := os.Open(pl.path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	var r io.Reader = f
	if strings.HasSuffix(strings.ToLower(pl.path), ".lz4") {
		r = lz4.NewReader(f)
	}
	return parser.Parse(r, schema)
}
