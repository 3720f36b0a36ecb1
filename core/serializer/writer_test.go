package serializer

import (
	"bytes"
	"encoding/json"
	"reflect"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

type sample struct {
	Name   string         `json:"name" yaml:"name"`
	Counts map[string]int `json:"counts" yaml:"counts"`
	Items  []string       `json:"items" yaml:"items"`
	hidden string
}

func testValue() sample {
	return sample{
		Name:   "stash",
		Counts: map[string]int{"RareRing": 2},
		Items:  []string{"a", "b"},
		hidden: "x",
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"json", FormatJSON, false},
		{" YAML ", FormatYAML, false},
		{"table", FormatTable, false},
		{"", FormatJSON, false},
		{"xml", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormat_Metadata(t *testing.T) {
	assert.Equal(t, "application/json", FormatJSON.ContentType())
	assert.Equal(t, "application/yaml", FormatYAML.ContentType())
	assert.Equal(t, "txt", FormatTable.Extension())
	assert.Equal(t, "json", FormatJSON.Extension())
	assert.Equal(t, []string{"json", "yaml", "table"}, SupportedFormats())
}

func TestNewWriter_Unknown(t *testing.T) {
	_, err := NewWriter("xml", nil)
	assert.Error(t, err)
}

func TestWriter_JSON(t *testing.T) {
	var buf bytes.Buffer
	w, err := NewWriter(FormatJSON, &buf)
	require.NoError(t, err)
	require.NoError(t, w.Serialize(testValue()))

	var got sample
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "stash", got.Name)
	assert.Equal(t, 2, got.Counts["RareRing"])
}

func TestWriter_YAML(t *testing.T) {
	var buf bytes.Buffer
	w, err := NewWriter(FormatYAML, &buf)
	require.NoError(t, err)
	require.NoError(t, w.Serialize(testValue()))

	assert.Contains(t, buf.String(), "name: stash")
	var got sample
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, []string{"a", "b"}, got.Items)
}

func TestWriter_Table(t *testing.T) {
	var buf bytes.Buffer
	w, err := NewWriter(FormatTable, &buf)
	require.NoError(t, err)
	require.NoError(t, w.Serialize(testValue()))

	out := buf.String()
	assert.Contains(t, out, "FIELD")
	assert.Contains(t, out, "counts.RareRing")
	assert.Contains(t, out, "items.[1]")
	assert.NotContains(t, out, "hidden")
	assert.Less(t, strings.Index(out, "counts.RareRing"), strings.Index(out, "name"))
}

func TestMarshal_Empty(t *testing.T) {
	out, err := Marshal(FormatTable, struct{}{})
	require.NoError(t, err)
	assert.Equal(t, "<empty>\n", string(out))

	_, err = Marshal("xml", 1)
	assert.Error(t, err)
}

func TestFlattenValue(t *testing.T) {
	flat := make(map[string]any)
	var nilPtr *sample
	flattenValue(flat, reflect.ValueOf(map[string]any{"p": nilPtr, "n": 3}), "")
	assert.Nil(t, flat["p"])
	assert.Equal(t, 3, flat["n"])

	scalar := make(map[string]any)
	flattenValue(scalar, reflect.ValueOf(42), "")
	assert.Equal(t, 42, scalar[defaultValueKey])
}
