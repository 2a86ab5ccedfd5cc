// SPDX-License-Identifier: MPL-2.0

package cueutil

import (
	"strings"
	"testing"
)

const testSchema = `
#Settings: {
	name?:  string
	count?: int & >=0
	tags?:  [...string]
}
`

func TestDecodeMap(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		data    string
		opts    []Option
		wantErr string
		check   func(t *testing.T, m map[string]any)
	}{
		{
			name: "valid document",
			data: "name: \"a\"\ncount: 2\ntags: [\"x\"]\n",
			check: func(t *testing.T, m map[string]any) {
				t.Helper()
				if m["name"] != "a" {
					t.Errorf("name = %v, want a", m["name"])
				}
				tags, ok := m["tags"].([]any)
				if !ok || len(tags) != 1 || tags[0] != "x" {
					t.Errorf("tags = %v, want [x]", m["tags"])
				}
			},
		},
		{
			name: "omitted fields are absent",
			data: "name: \"a\"\n",
			check: func(t *testing.T, m map[string]any) {
				t.Helper()
				if _, ok := m["count"]; ok {
					t.Errorf("count should be absent, got %v", m["count"])
				}
			},
		},
		{
			name:    "constraint violation names the field",
			data:    "count: -1\n",
			opts:    []Option{WithFilename("s.cue")},
			wantErr: "s.cue: count",
		},
		{
			name:    "unknown field is rejected",
			data:    "bogus: 1\n",
			wantErr: "bogus",
		},
		{
			name:    "syntax error",
			data:    "name: \"a\n",
			opts:    []Option{WithFilename("broken.cue")},
			wantErr: "broken.cue",
		},
		{
			name:    "size limit",
			data:    "name: \"abcdef\"\n",
			opts:    []Option{WithMaxFileSize(4)},
			wantErr: "exceeds maximum",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			m, err := DecodeMap(testSchema, []byte(tt.data), "#Settings", tt.opts...)
			if tt.wantErr != "" {
				if err == nil {
					t.Fatalf("expected error containing %q", tt.wantErr)
				}
				if !strings.Contains(err.Error(), tt.wantErr) {
					t.Errorf("error %q should contain %q", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			tt.check(t, m)
		})
	}
}

func TestDecodeMap_MissingDefinition(t *testing.T) {
	t.Parallel()

	_, err := DecodeMap(testSchema, []byte("name: \"a\"\n"), "#Missing")
	if err == nil || !strings.Contains(err.Error(), "#Missing") {
		t.Errorf("expected missing definition error, got %v", err)
	}
}
