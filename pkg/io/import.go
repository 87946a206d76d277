package io

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/matzehuels/learnpath/pkg/engine"
	"github.com/matzehuels/learnpath/pkg/override"

	lperrors "github.com/matzehuels/learnpath/pkg/errors"
)

// Format is a document encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat returns the format named by s ("json", "yaml" or "yml").
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	}
	return "", lperrors.New(lperrors.ErrCodeInvalidFormat, "unsupported format %q (must be json or yaml)", s)
}

// FormatFromPath selects the format from the file extension.
func FormatFromPath(path string) (Format, error) {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "" {
		return "", lperrors.New(lperrors.ErrCodeInvalidFormat, "cannot infer format of %q: no file extension", path)
	}
	return ParseFormat(ext)
}

// ReadDocument decodes a document from r and validates its identifiers.
// ReadDocument does not close r.
func ReadDocument(r io.Reader, f Format) (engine.Input, error) {
	var in engine.Input
	var err error
	switch f {
	case FormatJSON:
		err = json.NewDecoder(r).Decode(&in)
	case FormatYAML:
		err = yaml.NewDecoder(r).Decode(&in)
		if errors.Is(err, io.EOF) {
			err = nil
		}
	default:
		return in, lperrors.New(lperrors.ErrCodeInvalidFormat, "unsupported format %q", f)
	}
	if err != nil {
		return engine.Input{}, lperrors.Wrap(lperrors.ErrCodeInvalidFormat, err, "decode %s document", f)
	}
	if err := Validate(in); err != nil {
		return engine.Input{}, err
	}
	return in, nil
}

// ImportDocument reads the document at path, choosing the format from the
// extension.
func ImportDocument(path string) (engine.Input, error) {
	f, err := FormatFromPath(path)
	if err != nil {
		return engine.Input{}, err
	}
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return engine.Input{}, lperrors.Wrap(lperrors.ErrCodeFileNotFound, err, "open document")
		}
		return engine.Input{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer file.Close()
	return ReadDocument(file, f)
}

// Validate checks every identifier in the document. It reports the first
// offending identifier with its position.
func Validate(in engine.Input) error {
	for i, n := range in.Nodes {
		if err := lperrors.ValidateIdentifier("node ID", n.ID); err != nil {
			return at(err, "nodes[%d]", i)
		}
		for _, t := range n.Topics {
			if err := lperrors.ValidateIdentifier("topic", t); err != nil {
				return at(err, "nodes[%d] (%s)", i, n.ID)
			}
		}
	}
	for i, e := range in.Edges {
		if err := lperrors.ValidateIdentifier("edge source", e.From); err != nil {
			return at(err, "edges[%d]", i)
		}
		if err := lperrors.ValidateIdentifier("edge target", e.To); err != nil {
			return at(err, "edges[%d]", i)
		}
	}
	for i, o := range in.Overrides {
		if err := validateOverride(o); err != nil {
			return at(err, "overrides[%d]", i)
		}
	}
	return nil
}

func validateOverride(o override.Override) error {
	if o.Kind == override.PinPosition {
		return lperrors.ValidateIdentifier("pinned node", o.Node)
	}
	if err := lperrors.ValidateIdentifier("override source", o.From); err != nil {
		return err
	}
	return lperrors.ValidateIdentifier("override target", o.To)
}

func at(err error, format string, args ...any) error {
	return lperrors.Wrap(lperrors.ErrCodeInvalidInput, err, format, args...)
}
