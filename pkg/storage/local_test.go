package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/groove-lab/backend/config"
	"github.com/stretchr/testify/require"
)

func TestLocalStorage_UploadDelete(t *testing.T) {
	dir := t.TempDir()
	s := NewLocalStorage(config.LocalStorageConfigs{RootDir: dir, URLPrefix: "/uploads"})

	resp, err := s.Upload(context.Background(), &UploadObject{
		Prefix:   "posts",
		FileName: "cover.png",
		Mime:     "image/png",
		Data:     []byte("data"),
	})
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(resp.Url, "/uploads/posts/"))
	require.True(t, strings.HasSuffix(resp.Url, "-cover.png"))

	b, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(resp.FileName)))
	require.NoError(t, err)
	require.Equal(t, "data", string(b))

	require.NoError(t, s.Delete(context.Background(), resp.Url))
	_, err = os.Stat(filepath.Join(dir, filepath.FromSlash(resp.FileName)))
	require.True(t, os.IsNotExist(err))

	// Deleting again is a no-op.
	require.NoError(t, s.Delete(context.Background(), resp.Url))
}

func TestLocalStorage_DeleteIgnoresForeignPath(t *testing.T) {
	s := NewLocalStorage(config.LocalStorageConfigs{RootDir: t.TempDir(), URLPrefix: "/uploads"})

	require.NoError(t, s.Delete(context.Background(), ""))
	require.NoError(t, s.Delete(context.Background(), "https://cdn.example.com/a.png"))
	require.Error(t, s.Delete(context.Background(), "/uploads/../secret"))
}

func TestUploadObject_newKey(t *testing.T) {
	tests := []struct {
		name     string
		fileName string
		suffix   string
	}{
		{name: "plain name", fileName: "cover.png", suffix: "-cover.png"},
		{name: "unix path", fileName: "../../etc/cover.png", suffix: "-cover.png"},
		{name: "windows path", fileName: `C:\photos\cover.png`, suffix: "-cover.png"},
		{name: "empty name", fileName: "", suffix: "-file"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key := (&UploadObject{Prefix: "clubs", FileName: tt.fileName}).newKey()
			require.True(t, strings.HasPrefix(key, "clubs/"))
			require.True(t, strings.HasSuffix(key, tt.suffix))
			require.NotContains(t, key, "..")
		})
	}
}
