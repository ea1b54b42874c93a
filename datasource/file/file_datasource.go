package file

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/go-sif/tabular"
	"github.com/go-sif/tabular/datasource"
	"github.com/go-sif/tabular/datasource/parser/dsv"
	"github.com/go-sif/tabular/datasource/parser/jsonl"
	"github.com/go-sif/tabular/datasource/parser/xlsx"
	"github.com/go-sif/tabular/frame"
)

// DataSource is a set of files containing data
type DataSource struct {
	glob string
}

// CreateDataSource is a factory for DataSources
func CreateDataSource(glob string) *DataSource {
	return &DataSource{glob}
}

// Analyze returns a PartitionMap, describing how the source files will be divided into PartitionLoaders
func (fs *DataSource) Analyze() (datasource.PartitionMap, error) {
	matches, err := filepath.Glob(fs.glob)
	if err != nil {
		return nil, err
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("glob %s produced 0 files", fs.glob)
	}
	return &PartitionMap{
		files:  matches,
		source: fs,
	}, nil
}

// Conf configures Load
type Conf struct {
	Parser datasource.Parser // Defaults to ParserForPath of the glob.
	Schema tabular.Schema    // Defaults to the columns found in the data.
}

// Load parses every file matching glob and concatenates the results
func Load(glob string, conf *Conf) (*frame.Frame, error) {
	if conf == nil {
		conf = &Conf{}
	}
	parser := conf.Parser
	if parser == nil {
		var err error
		if parser, err = ParserForPath(glob); err != nil {
			return nil, err
		}
	}
	return datasource.Load(CreateDataSource(glob), parser, conf.Schema)
}

// ParserForPath returns a Parser suited to the extension of path (.csv, .tsv, .jsonl or
// .xlsx, optionally followed by .lz4). Text formats expect a header line, and column types
// are inferred.
func ParserForPath(path string) (datasource.Parser, error) {
	ext := strings.ToLower(filepath.Ext(strings.TrimSuffix(strings.ToLower(path), ".lz4")))
	switch ext {
	case ".csv":
		return dsv.CreateParser(&dsv.ParserConf{HeaderLines: 1, InferTypes: true}), nil
	case ".tsv":
		return dsv.CreateParser(&dsv.ParserConf{HeaderLines: 1, Delimiter: '\t', InferTypes: true}), nil
	case ".jsonl", ".ndjson":
		return jsonl.CreateParser(nil), nil
	case ".xlsx":
		return xlsx.CreateParser(&xlsx.ParserConf{HeaderLines: 1, InferTypes: true}), nil
	}
	return nil, fmt.Errorf("no parser for files with extension %q", ext)
}
