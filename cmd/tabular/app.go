package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-sif/tabular/config"
	"github.com/go-sif/tabular/datasource"
	"github.com/go-sif/tabular/datasource/file"
	"github.com/go-sif/tabular/datasource/parser/dsv"
	"github.com/go-sif/tabular/datasource/parser/jsonl"
	"github.com/go-sif/tabular/datasource/parser/xlsx"
	"github.com/go-sif/tabular/frame"
	"github.com/go-sif/tabular/logging"
	"github.com/pierrec/lz4/v4"
	"github.com/spf13/cobra"
)

// app holds the state shared by every command
type app struct {
	configPath string
	output     string
	logLevel   string
	cfg        *config.Config
	logger     *slog.Logger
}

func (a *app) init(cmd *cobra.Command) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if a.logLevel != "" {
		cfg.Logging.Level = a.logLevel
		if err := cfg.Validate(); err != nil {
			return err
		}
	}
	a.cfg = cfg
	a.logger = logging.New(cmd.ErrOrStderr(), logging.ParseLevel(cfg.Logging.Level))
	return nil
}

// extension returns the lowercase extension of path, ignoring a trailing .lz4
func extension(path string) string {
	return filepath.Ext(strings.TrimSuffix(strings.ToLower(path), ".lz4"))
}

func (a *app) parser(path string) (datasource.Parser, error) {
	in := a.cfg.Input
	delimiter := a.cfg.DelimiterRune()
	switch ext := extension(path); {
	case ext == ".jsonl" || ext == ".ndjson":
		return jsonl.CreateParser(nil), nil
	case ext == ".xlsx":
		return xlsx.CreateParser(&xlsx.ParserConf{Sheet: in.Sheet, HeaderLines: 1, NilValue: in.NilValue, InferTypes: in.InferTypes}), nil
	case ext == ".tsv" && delimiter == 0:
		delimiter = '\t'
	case ext != ".csv" && delimiter == 0:
		return nil, fmt.Errorf("cannot read %s: unknown extension %q and no delimiter configured", path, ext)
	}
	return dsv.CreateParser(&dsv.ParserConf{
		HeaderLines: 1,
		Delimiter:   delimiter,
		NilValue:    in.NilValue,
		InferTypes:  in.InferTypes,
	}), nil
}

// load reads every file matching the glob path
func (a *app) load(path string) (*frame.Frame, error) {
	parser, err := a.parser(path)
	if err != nil {
		return nil, err
	}
	f, err := file.Load(path, &file.Conf{Parser: parser})
	if err != nil {
		return nil, err
	}
	a.logger.Debug("loaded input", "path", path, "frame", f.ID(), "rows", f.NumRows(), "columns", f.NumColumns())
	return f, nil
}

// write stores f in the output file, or prints it when no output file is configured
func (a *app) write(cmd *cobra.Command, f *frame.Frame) error {
	if a.output == "" {
		_, err := fmt.Fprint(cmd.OutOrStdout(), f.ToString(a.cfg.Output.MaxRows))
		return err
	}
	var write func(io.Writer) error
	switch ext := extension(a.output); ext {
	case ".csv", ".tsv":
		delimiter := ','
		if ext == ".tsv" {
			delimiter = '\t'
		}
		parser := dsv.CreateParser(&dsv.ParserConf{Delimiter: delimiter, NilValue: a.cfg.Output.NilValue})
		write = func(w io.Writer) error { return parser.Write(w, f) }
	case ".xlsx":
		parser := xlsx.CreateParser(&xlsx.ParserConf{Sheet: a.cfg.Output.Sheet})
		write = func(w io.Writer) error { return parser.Write(w, f) }
	default:
		return fmt.Errorf("cannot write %s: unknown extension %q", a.output, ext)
	}
	out, err := os.Create(a.output)
	if err != nil {
		return err
	}
	var w io.Writer = out
	var zw *lz4.Writer
	if strings.HasSuffix(strings.ToLower(a.output), ".lz4") {
		zw = lz4.NewWriter(out)
		w = zw
	}
	err = write(w)
	if err == nil && zw != nil {
		err = zw.Close()
	}
	if closeErr := out.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return err
	}
	a.logger.Info("wrote output", "path", a.output, "rows", f.NumRows())
	return nil
}
