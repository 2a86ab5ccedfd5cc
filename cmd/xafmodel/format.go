// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

const (
	formatText outputFormat = "text"
	formatJSON outputFormat = "json"
	formatYAML outputFormat = "yaml"
)

// ErrInvalidOutputFormat is the sentinel error wrapped by InvalidOutputFormatError.
var ErrInvalidOutputFormat = errors.New("invalid output format")

type (
	// outputFormat selects how resolve and tree print their results. It
	// implements pflag.Value so cobra rejects unknown values while parsing.
	outputFormat string

	// InvalidOutputFormatError is returned for an unknown --format value.
	InvalidOutputFormatError struct {
		Value string
	}
)

func (f *outputFormat) String() string { return string(*f) }

// Set parses a --format value.
func (f *outputFormat) Set(s string) error {
	switch v := outputFormat(s); v {
	case formatText, formatJSON, formatYAML:
		*f = v
		return nil
	default:
		return &InvalidOutputFormatError{Value: s}
	}
}

// Type names the flag value in help output.
func (f *outputFormat) Type() string { return "format" }

// Error implements the error interface for InvalidOutputFormatError.
func (e *InvalidOutputFormatError) Error() string {
	return fmt.Sprintf("invalid output format %q (expected text, json or yaml)", e.Value)
}

// Unwrap returns ErrInvalidOutputFormat for errors.Is() compatibility.
func (e *InvalidOutputFormatError) Unwrap() error { return ErrInvalidOutputFormat }

// writeStructured encodes v as JSON or YAML.
func writeStructured(w io.Writer, f outputFormat, v any) error {
	switch f {
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case formatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		return &InvalidOutputFormatError{Value: string(f)}
	}
}
