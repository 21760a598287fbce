package source

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"fintrack/internal/fileutils"
	"fintrack/internal/logging"
	"fintrack/internal/sourceerror"

	"github.com/gocarina/gocsv"
	"gopkg.in/yaml.v3"
)

// File formats understood by FileSource.
const (
	FormatAuto = "auto"
	FormatJSON = "json"
	FormatYAML = "yaml"
	FormatCSV  = "csv"
)

var extensions = map[string][]string{
	FormatJSON: {".json"},
	FormatYAML: {".yaml", ".yml"},
	FormatCSV:  {".csv"},
}

// FileSource reads each collection from {dir}/{collection}.{ext}.
type FileSource struct {
	dir    string
	format string
	comma  rune
	logger logging.Logger
}

// NewFileSource returns a source reading from dir. format is one of
// FormatAuto, FormatJSON, FormatYAML or FormatCSV; with FormatAuto the
// first existing file among .json, .yaml, .yml and .csv wins. comma is
// the CSV field delimiter.
func NewFileSource(dir, format string, comma rune, logger logging.Logger) (*FileSource, error) {
	if format == "" {
		format = FormatAuto
	}
	if _, ok := extensions[format]; !ok && format != FormatAuto {
		return nil, &sourceerror.UnsupportedFormatError{
			Kind:     "file format",
			Value:    format,
			Expected: []string{FormatAuto, FormatJSON, FormatYAML, FormatCSV},
		}
	}
	if !fileutils.DirectoryExists(dir) {
		return nil, fmt.Errorf("data directory does not exist: %s", dir)
	}
	return &FileSource{dir: dir, format: format, comma: comma, logger: logger}, nil
}

// Name identifies the source in logs and errors.
func (s *FileSource) Name() string { return "file" }

// Close releases the source.
func (s *FileSource) Close() error { return nil }

// locate returns the file holding c and its format, or "" when there is
// none.
func (s *FileSource) locate(c Collection) (string, string) {
	formats := []string{s.format}
	if s.format == FormatAuto {
		formats = []string{FormatJSON, FormatYAML, FormatCSV}
	}
	for _, f := range formats {
		candidates := make([]string, 0, len(extensions[f]))
		for _, ext := range extensions[f] {
			candidates = append(candidates, filepath.Join(s.dir, string(c)+ext))
		}
		if path := fileutils.FirstExisting(candidates...); path != "" {
			return path, f
		}
	}
	return "", ""
}

// Fetch returns the undecoded records of collection c.
func (s *FileSource) Fetch(ctx context.Context, c Collection) ([]Raw, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	path, format := s.locate(c)
	if path == "" {
		s.logger.Warn("No file for collection, treating it as empty",
			logging.F(logging.FieldCollection, string(c)),
			logging.F(logging.FieldFile, filepath.Join(s.dir, string(c)+".*")))
		return []Raw{}, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &sourceerror.FetchError{Source: s.Name(), Collection: string(c), Err: err}
	}
	s.logger.Debug("Reading collection file",
		logging.F(logging.FieldFile, path),
		logging.F(logging.FieldFormat, format))

	var raws []Raw
	switch format {
	case FormatJSON:
		raws, err = decodeJSON(data)
	case FormatYAML:
		raws, err = decodeYAML(data)
	case FormatCSV:
		raws, err = decodeCSV(data, s.comma)
	}
	if err != nil {
		return nil, &sourceerror.DecodeError{Source: s.Name(), Collection: string(c), Err: fmt.Errorf("%s: %w", path, err)}
	}
	return raws, nil
}

// decodeYAML reads a YAML sequence of mappings.
func decodeYAML(data []byte) ([]Raw, error) {
	var raws []Raw
	if err := yaml.Unmarshal(data, &raws); err != nil {
		return nil, err
	}
	if raws == nil {
		raws = []Raw{}
	}
	return raws, nil
}

// decodeCSV reads a headed CSV file; every value stays a string. Short
// rows leave the trailing columns missing.
func decodeCSV(data []byte, comma rune) ([]Raw, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return []Raw{}, nil
	}
	r := csv.NewReader(bytes.NewReader(data))
	r.Comma = comma
	r.TrimLeadingSpace = true
	r.FieldsPerRecord = -1

	rows, err := gocsv.NewSimpleDecoderFromCSVReader(r).GetCSVRows()
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return []Raw{}, nil
	}
	header := rows[0]
	raws := make([]Raw, 0, len(rows)-1)
	for _, row := range rows[1:] {
		raw := make(Raw, len(header))
		for i, col := range header {
			if i < len(row) {
				raw[strings.TrimSpace(col)] = row[i]
			}
		}
		raws = append(raws, raw)
	}
	return raws, nil
}
