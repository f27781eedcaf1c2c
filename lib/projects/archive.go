package projects

import (
	"archive/tar"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/c2h5oh/datasize"
	securejoin "github.com/cyphar/filepath-securejoin"
	"github.com/klauspost/compress/gzip"
	"github.com/onkernel/sandboxd/lib/logger"
)

// MaxArchiveSize bounds the total bytes extracted from one archive upload
const MaxArchiveSize = 64 * datasize.MB

// ImportArchive extracts a tar.gz stream into the project workspace and
// returns the relative paths of the regular files written. Symlinks, hard
// links and device entries are skipped. Extraction stops with
// ErrArchiveTooLarge once the file content passes MaxArchiveSize.
func (m *manager) ImportArchive(ctx context.Context, id string, r io.Reader) ([]string, error) {
	log := logger.FromContext(ctx)
	p, err := loadProject(ctx, m.db, id)
	if err != nil {
		return nil, err
	}

	gzr, err := gzip.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidArchive, err)
	}
	defer gzr.Close()

	root := m.paths.ProjectWorkspace(id)
	if err := os.MkdirAll(root, 0755); err != nil {
		return nil, fmt.Errorf("create project workspace: %w", err)
	}

	limit := int64(MaxArchiveSize.Bytes())
	var total int64
	var written []string
	skipped := 0

	tr := tar.NewReader(gzr)
	for {
		if err := ctx.Err(); err != nil {
			return written, err
		}
		hdr, err := tr.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return written, fmt.Errorf("%w: %w", ErrInvalidArchive, err)
		}

		if hdr.Typeflag != tar.TypeDir && hdr.Typeflag != tar.TypeReg {
			skipped++
			continue
		}

		name, err := cleanRelative(hdr.Name)
		if err != nil {
			// "./" is a common first entry
			if hdr.Typeflag == tar.TypeDir && filepath.Clean(hdr.Name) == "." {
				continue
			}
			return written, err
		}
		target, err := securejoin.SecureJoin(root, name)
		if err != nil {
			return written, fmt.Errorf("%w: %v", ErrInvalidPath, err)
		}

		if hdr.Typeflag == tar.TypeDir {
			if err := os.MkdirAll(target, 0755); err != nil {
				return written, fmt.Errorf("create directory %s: %w", name, err)
			}
			continue
		}

		if total+hdr.Size > limit {
			return written, fmt.Errorf("%w: more than %s", ErrArchiveTooLarge, MaxArchiveSize.HR())
		}
		n, err := writeArchiveFile(target, tr, hdr, limit-total)
		total += n
		if err != nil {
			return written, fmt.Errorf("write %s: %w", name, err)
		}
		written = append(written, name)
	}
	slices.Sort(written)

	p.UpdatedAt = time.Now().UTC()
	if err := saveProject(ctx, m.db, p); err != nil {
		return written, err
	}

	log.InfoContext(ctx, "project archive imported", "id", id, "files", len(written), "bytes", total, "skipped", skipped)
	return written, nil
}

func writeArchiveFile(target string, r io.Reader, hdr *tar.Header, remaining int64) (int64, error) {
	if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return 0, err
	}
	// Only the permission bits of the entry are kept
	mode := os.FileMode(hdr.Mode).Perm() | 0600
	f, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, mode)
	if err != nil {
		return 0, err
	}
	n, err := io.Copy(f, io.LimitReader(r, remaining+1))
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return n, err
	}
	if n > remaining {
		return n, ErrArchiveTooLarge
	}
	return n, nil
}
