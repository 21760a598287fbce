// Package export renders table views and chart series as an aligned text
// table, CSV, JSON or YAML.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"reflect"
	"strings"
	"text/tabwriter"

	"fintrack/internal/config"
	"fintrack/internal/fileutils"
	"fintrack/internal/logging"
	"fintrack/internal/sourceerror"

	"github.com/gocarina/gocsv"
	"gopkg.in/yaml.v3"
)

// Formats lists the accepted output formats.
var Formats = []string{config.OutputTable, config.OutputCSV, config.OutputJSON, config.OutputYAML}

// Writer writes slices of row structs. CSV and table output take their
// columns from the rows' csv tags.
type Writer struct {
	format string
	comma  rune
	logger logging.Logger
}

// NewWriter returns a writer for format. comma is the CSV delimiter.
func NewWriter(format string, comma rune, logger logging.Logger) (*Writer, error) {
	format = strings.ToLower(format)
	for _, f := range Formats {
		if f == format {
			if comma == 0 {
				comma = ','
			}
			return &Writer{format: format, comma: comma, logger: logger}, nil
		}
	}
	return nil, &sourceerror.UnsupportedFormatError{Kind: "output format", Value: format, Expected: Formats}
}

// Format returns the output format.
func (w *Writer) Format() string {
	return w.format
}

// Write renders rows, which must be a slice of structs, to out.
func (w *Writer) Write(out io.Writer, rows any) error {
	if v := reflect.ValueOf(rows); v.Kind() != reflect.Slice {
		return fmt.Errorf("cannot export %T, only slices are supported", rows)
	}
	w.logger.Debug("Writing rows",
		logging.F(logging.FieldFormat, w.format),
		logging.F(logging.FieldCount, reflect.ValueOf(rows).Len()))

	switch w.format {
	case config.OutputCSV:
		csvWriter := csv.NewWriter(out)
		csvWriter.Comma = w.comma
		if err := gocsv.MarshalCSV(rows, gocsv.NewSafeCSVWriter(csvWriter)); err != nil {
			return fmt.Errorf("error writing CSV data: %w", err)
		}
		return nil
	case config.OutputJSON:
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(rows)
	case config.OutputYAML:
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		if err := enc.Encode(rows); err != nil {
			return err
		}
		return enc.Close()
	default:
		tw := newTableWriter(out)
		if err := gocsv.MarshalCSV(rows, tw); err != nil {
			return fmt.Errorf("error writing table: %w", err)
		}
		return nil
	}
}

// WriteFile renders rows into path, creating parent directories.
func (w *Writer) WriteFile(path string, rows any) error {
	return w.toFile(path, func(out io.Writer) error { return w.Write(out, rows) })
}

// WriteSectionsFile renders sections into path.
func (w *Writer) WriteSectionsFile(path string, sections []Section) error {
	return w.toFile(path, func(out io.Writer) error { return w.WriteSections(out, sections) })
}

func (w *Writer) toFile(path string, render func(io.Writer) error) error {
	file, err := fileutils.CreateFile(path)
	if err != nil {
		return err
	}
	defer func() {
		if err := file.Close(); err != nil {
			w.logger.WithError(err).Warn("Failed to close file")
		}
	}()

	if err := render(file); err != nil {
		return err
	}
	w.logger.Info("Wrote output file",
		logging.F(logging.FieldFile, path),
		logging.F(logging.FieldFormat, w.format))
	return nil
}

// tableWriter lets gocsv drive a tabwriter. The header row is upper-cased.
type tableWriter struct {
	tw     *tabwriter.Writer
	header bool
	err    error
}

func newTableWriter(out io.Writer) *tableWriter {
	return &tableWriter{tw: tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)}
}

func (t *tableWriter) Write(row []string) error {
	if t.err != nil {
		return t.err
	}
	cells := row
	if !t.header {
		t.header = true
		cells = make([]string, len(row))
		for i, c := range row {
			cells[i] = strings.ToUpper(c)
		}
	}
	_, t.err = io.WriteString(t.tw, strings.Join(cells, "\t")+"\n")
	return t.err
}

func (t *tableWriter) Flush() {
	if t.err == nil {
		t.err = t.tw.Flush()
	}
}

func (t *tableWriter) Error() error {
	return t.err
}

// Section is one titled block of a multi-part report.
type Section struct {
	Title string
	Rows  any
}

// WriteSections renders several row sets at once. JSON and YAML produce a
// single document keyed by title; table and CSV print each block under a
// "# title" line, separated by a blank line.
func (w *Writer) WriteSections(out io.Writer, sections []Section) error {
	if w.format == config.OutputJSON || w.format == config.OutputYAML {
		doc := make(map[string]any, len(sections))
		for _, s := range sections {
			doc[s.Title] = s.Rows
		}
		if w.format == config.OutputJSON {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(doc)
		}
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return err
		}
		return enc.Close()
	}

	for i, s := range sections {
		if i > 0 {
			if _, err := io.WriteString(out, "\n"); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(out, "# %s\n", s.Title); err != nil {
			return err
		}
		if err := w.Write(out, s.Rows); err != nil {
			return fmt.Errorf("section %s: %w", s.Title, err)
		}
	}
	return nil
}
