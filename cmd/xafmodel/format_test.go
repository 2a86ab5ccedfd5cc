// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestOutputFormat_Set(t *testing.T) {
	t.Parallel()

	for _, valid := range []string{"text", "json", "yaml"} {
		var f outputFormat
		if err := f.Set(valid); err != nil {
			t.Errorf("Set(%q) error: %v", valid, err)
		}
		if f.String() != valid {
			t.Errorf("String() = %q, want %q", f.String(), valid)
		}
	}

	f := formatText
	err := f.Set("xml")
	if !errors.Is(err, ErrInvalidOutputFormat) {
		t.Fatalf("Set(xml) error = %v, want ErrInvalidOutputFormat", err)
	}
	if f != formatText {
		t.Errorf("failed Set changed the value to %q", f)
	}
}

func TestWriteStructured(t *testing.T) {
	t.Parallel()

	v := struct {
		Name string   `json:"name" yaml:"name"`
		Args []string `json:"args" yaml:"args"`
	}{Name: "editor", Args: []string{"a.dll", "dir"}}

	tests := []struct {
		format outputFormat
		want   []string
	}{
		{formatJSON, []string{`"name": "editor"`, `"a.dll"`}},
		{formatYAML, []string{"name: editor", "- a.dll"}},
	}
	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			if err := writeStructured(&buf, tt.format, v); err != nil {
				t.Fatalf("writeStructured() error: %v", err)
			}
			for _, w := range tt.want {
				if !strings.Contains(buf.String(), w) {
					t.Errorf("output missing %q:\n%s", w, buf.String())
				}
			}
		})
	}

	if err := writeStructured(&bytes.Buffer{}, formatText, v); !errors.Is(err, ErrInvalidOutputFormat) {
		t.Errorf("writeStructured(text) error = %v, want ErrInvalidOutputFormat", err)
	}
}
