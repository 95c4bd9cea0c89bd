package filex

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestEnsureSubDir_CreatesDirectory(t *testing.T) {
	tmp := t.TempDir()

	got, err := EnsureSubDir(tmp, "exports")
	require.NoError(t, err)

	want := filepath.Join(tmp, "exports")
	require.Equal(t, want, got)

	fi, err := os.Stat(want)
	require.NoError(t, err)
	require.True(t, fi.IsDir(), "should create a directory")

	if runtime.GOOS != "windows" {
		perm := fi.Mode().Perm()
		require.Equal(t, os.FileMode(0o700), perm&0o700)
	}
}

func TestEnsureSubDir_Idempotent(t *testing.T) {
	tmp := t.TempDir()

	first, err := EnsureSubDir(tmp, "exports")
	require.NoError(t, err)

	second, err := EnsureSubDir(tmp, "exports")
	require.NoError(t, err)

	require.Equal(t, first, second)
}

func TestEnsureSubDir_FailsIfFileWithSameNameExists(t *testing.T) {
	tmp := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmp, "exports"), []byte("x"), 0o660))

	_, err := EnsureSubDir(tmp, "exports")
	require.Error(t, err, "should fail when a file exists with the same name")
}

func TestExportFileName(t *testing.T) {
	at := time.Date(2024, 3, 5, 7, 8, 9, 0, time.UTC)

	tests := []struct {
		category string
		want     string
	}{
		{"Shell", "Shell-20240305-070809.json"},
		{"C/C++ tricks", "C_C___tricks-20240305-070809.json"},
		{"  ", "category-20240305-070809.json"},
		{"../etc", "___etc-20240305-070809.json"},
	}
	for _, tt := range tests {
		t.Run(tt.category, func(t *testing.T) {
			require.Equal(t, tt.want, ExportFileName(tt.category, at))
		})
	}
}
