package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gkatanacio/artifact-fetcher/download"
)

func Test_MoveFile(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "afetch-1.tar.gz")
	dst := filepath.Join(dir, "appc.tar.gz")
	require.NoError(t, os.WriteFile(src, []byte("artifact"), 0o644))

	require.NoError(t, moveFile(src, dst))

	assert.NoFileExists(t, src)
	got, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "artifact", string(got))
}

func Test_VerifyCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "artifact")
	require.NoError(t, os.WriteFile(path, []byte("hello world"), 0o644))

	testCases := map[string]struct {
		sum    string
		expErr bool
	}{
		"matching checksum":   {sum: "2aae6c35c94fcfb415dbe95f408b9ce91ee846ed"},
		"mismatched checksum": {sum: "deadbeef", expErr: true},
	}

	for scenario, tc := range testCases {
		t.Run(scenario, func(t *testing.T) {
			var out bytes.Buffer
			rootCmd.SetOut(&out)
			rootCmd.SetErr(&out)
			rootCmd.SetArgs([]string{"verify", path, tc.sum})

			err := rootCmd.Execute()
			if tc.expErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Contains(t, out.String(), "Checksum OK")
		})
	}
}

func Test_Report(t *testing.T) {
	testCases := map[string]struct {
		output    func(dir string) string
		expErr    bool
		expStdout string
	}{
		"moved to output": {
			output:    func(dir string) string { return filepath.Join(dir, "appc.tar.gz") },
			expStdout: "Download complete:",
		},
		"output directory missing": {
			output: func(dir string) string { return filepath.Join(dir, "missing", "appc.tar.gz") },
			expErr: true,
		},
	}

	for scenario, tc := range testCases {
		t.Run(scenario, func(t *testing.T) {
			dir := t.TempDir()
			src := filepath.Join(dir, "afetch-1.tar.gz")
			require.NoError(t, os.WriteFile(src, []byte("artifact"), 0o644))

			var out bytes.Buffer
			cmd := &cobra.Command{}
			cmd.SetOut(&out)

			res := &download.Result{Status: download.StatusDownloaded, Path: src, Version: "5.2.0"}
			err := report(cmd, res, tc.output(dir))
			if tc.expErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), src)
				assert.FileExists(t, src)
				return
			}
			require.NoError(t, err)
			assert.Contains(t, out.String(), tc.expStdout)
			assert.NoFileExists(t, src)
		})
	}
}

func Test_NewTracerProvider(t *testing.T) {
	var out bytes.Buffer
	tp, err := newTracerProvider(&out)
	require.NoError(t, err)

	_, span := tp.Tracer("test").Start(context.Background(), "download.attempt")
	span.End()
	require.NoError(t, tp.Shutdown(context.Background()))

	assert.Contains(t, out.String(), `"Name": "download.attempt"`)
}
