package cmd

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jobmatchpro/backend/models"
)

func TestVersionCommand(t *testing.T) {
	out := new(bytes.Buffer)
	rootCmd.SetOut(out)
	rootCmd.SetArgs([]string{"version"})
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
	})

	require.NoError(t, Execute())
	assert.Equal(t, "jobmatch version: dev\n", out.String())
}

func TestMatchCommandRequiresFile(t *testing.T) {
	rootCmd.SetArgs([]string{"match"})
	t.Cleanup(func() { rootCmd.SetArgs(nil) })

	assert.Error(t, Execute())
}

func TestMatchCommandMissingFile(t *testing.T) {
	rootCmd.SetArgs([]string{"match", t.TempDir() + "/absent.pdf"})
	t.Cleanup(func() { rootCmd.SetArgs(nil) })

	err := Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "absent.pdf")
}

// captureStdout redirects the process stdout, where both the logger sink and
// the command output would land by default, while fn runs.
func captureStdout(t *testing.T, fn func()) []byte {
	t.Helper()

	r, w, err := os.Pipe()
	require.NoError(t, err)

	orig := os.Stdout
	os.Stdout = w
	t.Cleanup(func() { os.Stdout = orig })

	out := make(chan []byte)
	go func() {
		data, _ := io.ReadAll(r)
		out <- data
	}()

	fn()

	os.Stdout = orig
	require.NoError(t, w.Close())
	return <-out
}

func TestMatchCommandPrintsOnlyJSON(t *testing.T) {
	for _, src := range []string{"INDEED", "JOBBANK", "TALENT", "ADZUNA", "JOOBLE"} {
		t.Setenv("JOBMATCH_SOURCES_"+src+"_ENABLED", "false")
	}
	t.Setenv("DEBUG", "true")

	cv := filepath.Join(t.TempDir(), "cv.txt")
	require.NoError(t, os.WriteFile(cv, []byte(`Technicien informatique N2
Support informatique et réseau pour PME, gestion des postes Windows.`), 0o600))

	rootCmd.SetArgs([]string{"match", cv})
	t.Cleanup(func() { rootCmd.SetArgs(nil) })

	var runErr error
	stdout := captureStdout(t, func() { runErr = Execute() })
	require.NoError(t, runErr)

	var listings []models.Listing
	require.NoError(t, json.Unmarshal(stdout, &listings), string(stdout))
	assert.Empty(t, listings)
}
