package cmd

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractCommand(t *testing.T) {
	assert.NotNil(t, extractCmd)
	assert.True(t, strings.HasPrefix(extractCmd.Use, "extract"))
	assert.NotEmpty(t, extractCmd.Short)
	assert.NotEmpty(t, extractCmd.Long)
}

func TestExtractCommandFormatFlag(t *testing.T) {
	flag := extractCmd.Flags().Lookup("format")
	require.NotNil(t, flag)
	assert.Equal(t, outputFormatJSON, flag.DefValue)
}

func TestExtractCommandRequiresFile(t *testing.T) {
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"extract"})

	err := rootCmd.Execute()
	assert.Error(t, err)
}

func TestExtractCommandInvalidFormat(t *testing.T) {
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"extract", "ticket.png", "--format", "xml"})

	err := rootCmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported output format")
}

func TestExtractCommandUnsupportedExtension(t *testing.T) {
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"extract", "notes.txt", "--format", "json"})

	err := rootCmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported format")
}

func TestExtractCommandMissingFile(t *testing.T) {
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	missing := filepath.Join(t.TempDir(), "absent.png")
	rootCmd.SetArgs([]string{"extract", missing, "--format", "json"})

	err := rootCmd.Execute()
	assert.Error(t, err)
}
