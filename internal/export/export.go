package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/riskreg/riskreg/internal/risk"
	"github.com/riskreg/riskreg/pkg/shared/errors"
	"github.com/riskreg/riskreg/pkg/shared/files"
)

// Format is an export encoding.
type Format string

const (
	FormatCSV   Format = "csv"
	FormatJSON  Format = "json"
	FormatSARIF Format = "sarif"
)

// Formats lists the supported formats.
func Formats() []Format {
	return []Format{FormatCSV, FormatJSON, FormatSARIF}
}

// ParseFormat converts a format name into a Format.
func ParseFormat(raw string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(raw)))
	for _, known := range Formats() {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("unsupported export format %q", raw)
}

// FileName returns the default download name, e.g. "risks.csv".
func (f Format) FileName() string {
	return "risks." + string(f)
}

// ContentType returns the MIME type served for the format.
func (f Format) ContentType() string {
	switch f {
	case FormatCSV:
		return "text/csv"
	case FormatSARIF:
		return "application/sarif+json"
	default:
		return "application/json"
	}
}

// JSON renders records as an indented JSON array using the API field names.
func JSON(records []risk.Record) ([]byte, error) {
	if records == nil {
		records = []risk.Record{}
	}
	data, err := json.MarshalIndent(records, "", "    ")
	if err != nil {
		return nil, fmt.Errorf("error marshaling records: %w", err)
	}
	return data, nil
}

// Render encodes records in the requested format.
func Render(format Format, records []risk.Record, toolVersion string) ([]byte, error) {
	switch format {
	case FormatCSV:
		return []byte(Delimited(records)), nil
	case FormatJSON:
		return JSON(records)
	case FormatSARIF:
		report, err := SARIF(records, toolVersion)
		if err != nil {
			return nil, err
		}
		var buf bytes.Buffer
		if err := report.PrettyWrite(&buf); err != nil {
			return nil, fmt.Errorf("error writing SARIF report: %w", err)
		}
		return buf.Bytes(), nil
	default:
		return nil, errors.NewNotImplementedError("Render", string(format))
	}
}

// WriteFile writes data to path. A directory path, or a path without extension,
// receives the format's default file name. The final path is returned.
func WriteFile(path string, format Format, data []byte) (string, error) {
	if path == "" {
		path = "."
	}
	filePath, folder, err := files.DetermineFileFullPath(path, format.FileName())
	if err != nil {
		return "", err
	}
	if err := files.CreateFolderIfNotExists(folder); err != nil {
		return "", err
	}
	if err := files.WriteFile(filePath, data); err != nil {
		return "", err
	}
	return filePath, nil
}
