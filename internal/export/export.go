package export

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"mime-registry/internal/loader"
	"mime-registry/internal/logging"
	"mime-registry/internal/mimetypes"
)

// Format selects an export encoding.
type Format string

const (
	FormatXML    Format = "xml"
	FormatJSON   Format = "json"
	FormatYAML   Format = "yaml"
	FormatSQLite Format = "sqlite"
)

// Formats lists the supported formats.
var Formats = []Format{FormatXML, FormatJSON, FormatYAML, FormatSQLite}

// ParseFormat converts a flag value to a Format. "yml" and "db" are
// accepted as aliases.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "xml":
		return FormatXML, nil
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "sqlite", "sqlite3", "db":
		return FormatSQLite, nil
	default:
		return "", fmt.Errorf("unknown export format %q", s)
	}
}

// Streamable reports whether f can be written to an io.Writer.
func (f Format) Streamable() bool {
	return f != FormatSQLite
}

// Document is the JSON and YAML export layout.
type Document struct {
	Source  string              `json:"source,omitempty" yaml:"source,omitempty"`
	Count   int                 `json:"count" yaml:"count"`
	Records []*mimetypes.Record `json:"records" yaml:"records"`
}

// Write encodes records to w. The SQLite format needs a file and is
// rejected here; use ToFile.
func Write(w io.Writer, f Format, source string, records []*mimetypes.Record) error {
	switch f {
	case FormatXML:
		return loader.Encode(w, records)
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(newDocument(source, records)); err != nil {
			return fmt.Errorf("failed to encode json: %w", err)
		}
		return nil
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(newDocument(source, records)); err != nil {
			return fmt.Errorf("failed to encode yaml: %w", err)
		}
		if err := enc.Close(); err != nil {
			return fmt.Errorf("failed to flush yaml: %w", err)
		}
		return nil
	case FormatSQLite:
		return fmt.Errorf("format %s must be written to a file", f)
	default:
		return fmt.Errorf("unknown export format %q", f)
	}
}

// ToFile writes records to path, replacing any existing content.
func ToFile(ctx context.Context, path string, f Format, source string, records []*mimetypes.Record) (err error) {
	if f == FormatSQLite {
		return WriteSQLite(ctx, path, records)
	}

	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer func() {
		if closeErr := out.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("failed to close %s: %w", path, closeErr)
		}
	}()

	if err := Write(out, f, source, records); err != nil {
		return err
	}

	logging.Info("Exported %d records as %s to %s", len(records), f, path)
	return nil
}

func newDocument(source string, records []*mimetypes.Record) Document {
	if records == nil {
		records = []*mimetypes.Record{}
	}
	return Document{Source: source, Count: len(records), Records: records}
}
