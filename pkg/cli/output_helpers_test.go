package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateOutputFormat(t *testing.T) {
	assert.NoError(t, validateOutputFormat(""))
	assert.NoError(t, validateOutputFormat("table"))
	assert.NoError(t, validateOutputFormat("json"))
	assert.Error(t, validateOutputFormat("yaml"))
	assert.Error(t, validateOutputFormat("csv"))
}

func TestPrintTable_AlignsAndDashesEmptyCells(t *testing.T) {
	var buf bytes.Buffer
	err := printTable(&buf, []string{"ID", "NAME", "BRANCH"}, [][]string{
		{"u1", "Alice", "Downtown"},
		{"u2", "Bob", ""},
	})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "ID")
	assert.Contains(t, out, "Alice")
	assert.Contains(t, out, "Bob")
	// Empty cells render as a dash so columns stay scannable.
	assert.Contains(t, out, "-")
}

func TestPrintJSON_Indented(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, printJSON(&buf, map[string]string{"email": "alice@example.com"}))
	assert.Equal(t, "{\n  \"email\": \"alice@example.com\"\n}\n", buf.String())
}
