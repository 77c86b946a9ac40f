package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
)

func newSourceCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "test"}
	cmd.Flags().StringP("code", "c", "", "Code to parse")
	cmd.Flags().Bool("stdin", false, "Read code from stdin")
	return cmd
}

func TestGetSourceCodeFlag(t *testing.T) {
	cmd := newSourceCmd()
	require.NoError(t, cmd.Flags().Set("code", "x = 1\n"))

	source, name, err := getSource(cmd, nil)
	require.NoError(t, err)
	require.Equal(t, "x = 1\n", source)
	require.Equal(t, "<code>", name)
}

func TestGetSourceFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prog.py")
	require.NoError(t, os.WriteFile(path, []byte("y = 2\n"), 0o644))

	cmd := newSourceCmd()
	source, name, err := getSource(cmd, []string{path})
	require.NoError(t, err)
	require.Equal(t, "y = 2\n", source)
	require.Equal(t, path, name)
}

func TestGetSourceConflict(t *testing.T) {
	cmd := newSourceCmd()
	require.NoError(t, cmd.Flags().Set("code", "x = 1\n"))

	_, _, err := getSource(cmd, []string{"prog.py"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "multiple input sources")
}
