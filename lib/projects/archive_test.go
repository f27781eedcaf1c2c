package projects

import (
	"archive/tar"
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type tarEntry struct {
	name     string
	body     string
	typeflag byte
	linkname string
}

func buildTarGz(t *testing.T, entries ...tarEntry) *bytes.Buffer {
	t.Helper()

	var buf bytes.Buffer
	gw := gzip.NewWriter(&buf)
	tw := tar.NewWriter(gw)
	for _, e := range entries {
		hdr := &tar.Header{Name: e.name, Mode: 0644, Typeflag: e.typeflag, Linkname: e.linkname}
		if hdr.Typeflag == 0 {
			hdr.Typeflag = tar.TypeReg
		}
		if hdr.Typeflag == tar.TypeReg {
			hdr.Size = int64(len(e.body))
		}
		if hdr.Typeflag == tar.TypeDir {
			hdr.Mode = 0755
		}
		require.NoError(t, tw.WriteHeader(hdr))
		if hdr.Size > 0 {
			_, err := tw.Write([]byte(e.body))
			require.NoError(t, err)
		}
	}
	require.NoError(t, tw.Close())
	require.NoError(t, gw.Close())
	return &buf
}

func TestImportArchive(t *testing.T) {
	mgr, _, _, p := setupTestManager(t)
	ctx := context.Background()

	proj, err := mgr.CreateProject(ctx, CreateProjectRequest{Name: "demo", Language: "python"})
	require.NoError(t, err)

	archive := buildTarGz(t,
		tarEntry{name: "./", typeflag: tar.TypeDir},
		tarEntry{name: "main.py", body: "print('hi')\n"},
		tarEntry{name: "pkg/", typeflag: tar.TypeDir},
		tarEntry{name: "pkg/util.py", body: "X = 1\n"},
		tarEntry{name: "link", typeflag: tar.TypeSymlink, linkname: "/etc/passwd"},
	)

	written, err := mgr.ImportArchive(ctx, proj.ID, archive)
	require.NoError(t, err)
	assert.Equal(t, []string{"main.py", "pkg/util.py"}, written)

	root := p.ProjectWorkspace(proj.ID)
	data, err := os.ReadFile(filepath.Join(root, "pkg", "util.py"))
	require.NoError(t, err)
	assert.Equal(t, "X = 1\n", string(data))

	_, err = os.Lstat(filepath.Join(root, "link"))
	assert.True(t, os.IsNotExist(err), "symlinks are skipped")
}

func TestImportArchive_Rejects(t *testing.T) {
	mgr, _, _, p := setupTestManager(t)
	ctx := context.Background()

	proj, err := mgr.CreateProject(ctx, CreateProjectRequest{Name: "demo", Language: "python"})
	require.NoError(t, err)

	t.Run("traversal", func(t *testing.T) {
		_, err := mgr.ImportArchive(ctx, proj.ID, buildTarGz(t, tarEntry{name: "../escape.py", body: "x"}))
		require.ErrorIs(t, err, ErrInvalidPath)
		_, err = os.Stat(filepath.Join(filepath.Dir(p.ProjectWorkspace(proj.ID)), "escape.py"))
		assert.True(t, os.IsNotExist(err))
	})

	t.Run("absolute", func(t *testing.T) {
		_, err := mgr.ImportArchive(ctx, proj.ID, buildTarGz(t, tarEntry{name: "/etc/evil", body: "x"}))
		require.ErrorIs(t, err, ErrInvalidPath)
	})

	t.Run("not gzip", func(t *testing.T) {
		_, err := mgr.ImportArchive(ctx, proj.ID, bytes.NewBufferString("plain text"))
		require.ErrorIs(t, err, ErrInvalidArchive)
	})

	t.Run("too large", func(t *testing.T) {
		// The header alone announces more than the limit
		var buf bytes.Buffer
		gw := gzip.NewWriter(&buf)
		tw := tar.NewWriter(gw)
		require.NoError(t, tw.WriteHeader(&tar.Header{
			Name:     "huge.bin",
			Mode:     0644,
			Size:     int64(MaxArchiveSize.Bytes()) + 1,
			Typeflag: tar.TypeReg,
		}))
		require.NoError(t, gw.Close())

		_, err := mgr.ImportArchive(ctx, proj.ID, &buf)
		require.ErrorIs(t, err, ErrArchiveTooLarge)
	})

	t.Run("unknown project", func(t *testing.T) {
		_, err := mgr.ImportArchive(ctx, "nope", buildTarGz(t, tarEntry{name: "a.py"}))
		require.ErrorIs(t, err, ErrNotFound)
	})
}
