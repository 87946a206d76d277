package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	lperrors "github.com/matzehuels/learnpath/pkg/errors"
)

// WriteResult encodes v as indented JSON or YAML and writes it to w.
// v is usually an engine.Run, an engine.Result or a resolve.Report.
func WriteResult(w io.Writer, v any, f Format) error {
	switch f {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("encode: %w", err)
		}
		return nil
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("encode: %w", err)
		}
		return enc.Close()
	}
	return lperrors.New(lperrors.ErrCodeInvalidFormat, "unsupported format %q", f)
}

// ExportResult writes v to a file at path, choosing the format from the
// extension. This is a convenience wrapper around [WriteResult].
func ExportResult(v any, path string) error {
	if err := lperrors.ValidatePath(path); err != nil {
		return err
	}
	f, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer file.Close()
	return WriteResult(file, v, f)
}
