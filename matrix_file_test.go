package renderbench_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	rb "github.com/rmcsoft/renderbench"
)

const twoScenarios = `
[[scenario]]
destination = "offscreen"
scale = "double"
filter = "bilinear"

[[scenario]]
destination = "onscreen"
scale = "half"
`

func TestParseMatrix(t *testing.T) {
	matrix, err := rb.ParseMatrix(twoScenarios)
	require.NoError(t, err)
	assert.Equal(t, []rb.Scenario{
		{Destination: rb.OffScreen, Scale: rb.ScaleDouble, Filter: rb.FilterBilinear},
		{Destination: rb.OnScreen, Scale: rb.ScaleHalf, Filter: rb.FilterNearest},
	}, matrix)
}

func TestParseMatrix_Errors(t *testing.T) {
	for name, text := range map[string]string{
		"empty":       ``,
		"syntax":      `[[scenario]`,
		"destination": "[[scenario]]\ndestination = \"nowhere\"\nscale = \"half\"",
		"scale":       "[[scenario]]\ndestination = \"onscreen\"\nscale = \"huge\"",
		"filter":      "[[scenario]]\ndestination = \"onscreen\"\nscale = \"half\"\nfilter = \"box\"",
	} {
		_, err := rb.ParseMatrix(text)
		assert.Error(t, err, name)
	}
}

func TestLoadMatrix(t *testing.T) {
	fileName := filepath.Join(t.TempDir(), "matrix.toml")
	require.NoError(t, os.WriteFile(fileName, []byte(twoScenarios), 0o644))

	matrix, err := rb.LoadMatrix(fileName)
	require.NoError(t, err)
	assert.Len(t, matrix, 2)

	_, err = rb.LoadMatrix(filepath.Join(t.TempDir(), "none.toml"))
	assert.Error(t, err)
}
