package synth

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Generate(&buf, 3, 4, ','))

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "c1,c2,c3,c4", lines[0])
	assert.Equal(t, "1.1,1.2,1.3,1.4", lines[1])
	assert.Equal(t, "3.1,3.2,3.3,3.4", lines[3])
}

func TestGenerateDelimiter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Generate(&buf, 1, 2, '\t'))
	assert.Equal(t, "c1\tc2\n1.1\t1.2\n", buf.String())
}

func TestGenerateInvalidShape(t *testing.T) {
	var buf bytes.Buffer
	assert.Error(t, Generate(&buf, 5, 0, ','))
	assert.Error(t, Generate(&buf, -1, 3, ','))
}

func TestCell(t *testing.T) {
	assert.Equal(t, "10.3", Cell(10, 3))
}

func TestGenerateFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "synthetic.csv")
	require.NoError(t, GenerateFile(path, 10, 10, ','))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSuffix(string(data), "\n"), "\n")
	assert.Len(t, lines, 11)
	assert.Equal(t, "10.1,10.2,10.3,10.4,10.5,10.6,10.7,10.8,10.9,10.10", lines[10])
}
