package iofmt

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

type record struct {
	Date    string `json:"date" yaml:"date"`
	Display string `json:"display" yaml:"display"`
}

func TestWriteJSON(t *testing.T) {
	var b strings.Builder
	err := Write(&b, FormatJSON, []record{{Date: "2024-03-10", Display: "x"}})
	require.NoError(t, err)
	assert.JSONEq(t, `[{"date":"2024-03-10","display":"x"}]`, b.String())
}

func TestWriteYAML(t *testing.T) {
	var b strings.Builder
	in := []record{{Date: "2024-03-10", Display: "x"}}
	err := Write(&b, FormatYAML, in)
	require.NoError(t, err)

	var out []record
	require.NoError(t, yaml.Unmarshal([]byte(b.String()), &out))
	assert.Equal(t, in, out)
}

func TestWriteUnknownFormat(t *testing.T) {
	err := Write(&strings.Builder{}, "toml", nil)
	assert.Error(t, err)
}
