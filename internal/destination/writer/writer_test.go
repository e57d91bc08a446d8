// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package writer

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStdoutWriter(t *testing.T) {
	t.Parallel()

	buffer := new(bytes.Buffer)
	writer := NewStdout(buffer)

	_, err := writer.Write([]byte("SELECT 1;\n"))
	require.NoError(t, err)
	require.NoError(t, writer.Close())
	require.NoError(t, writer.Abort(assert.AnError))

	assert.Equal(t, "SELECT 1;\n", buffer.String())
}

func TestFileWriter(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "dump.sql")
	writer, err := NewFile(path)
	require.NoError(t, err)

	_, err = writer.Write([]byte("SELECT 1;\n"))
	require.NoError(t, err)
	require.NoError(t, writer.Close())
	require.NoError(t, writer.Close())

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "SELECT 1;\n", string(content))
}

func TestFileWriterAbort(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "dump.sql")
	writer, err := NewFile(path)
	require.NoError(t, err)

	_, err = writer.Write([]byte("partial"))
	require.NoError(t, err)
	require.NoError(t, writer.Abort(assert.AnError))

	_, err = os.Stat(path)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestFileWriterInvalidPath(t *testing.T) {
	t.Parallel()

	writer, err := NewFile(filepath.Join(t.TempDir(), "missing", "dump.sql"))
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.Nil(t, writer)
}
