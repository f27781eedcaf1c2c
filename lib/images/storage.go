package images

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/onkernel/sandboxd/lib/descriptor"
	"github.com/onkernel/sandboxd/lib/paths"
)

// imageMetadata represents the metadata stored on disk
type imageMetadata struct {
	Name             string               `json:"name"`
	Runtime          string               `json:"runtime,omitempty"`
	Tag              string               `json:"tag"`
	BaseImage        string               `json:"base_image"`
	BaseDigest       string               `json:"base_digest,omitempty"`
	ResolveBase      bool                 `json:"resolve_base,omitempty"`
	DescriptorDigest string               `json:"descriptor_digest"`
	Packages         []descriptor.Package `json:"packages,omitempty"`
	User             string               `json:"user"`
	Warnings         []string             `json:"warnings,omitempty"`
	Status           string               `json:"status"`
	Progress         int                  `json:"progress"`
	QueuePosition    *int                 `json:"queue_position,omitempty"`
	Error            *string              `json:"error,omitempty"`
	ImageID          string               `json:"image_id,omitempty"`
	SizeBytes        int64                `json:"size_bytes,omitempty"`
	CreatedAt        time.Time            `json:"created_at"`
	StartedAt        *time.Time           `json:"started_at,omitempty"`
	CompletedAt      *time.Time           `json:"completed_at,omitempty"`
	DurationMS       *int64               `json:"duration_ms,omitempty"`
}

func (m *imageMetadata) toImage() *Image {
	return &Image{
		Name:             m.Name,
		Runtime:          m.Runtime,
		Tag:              m.Tag,
		BaseImage:        m.BaseImage,
		BaseDigest:       m.BaseDigest,
		DescriptorDigest: m.DescriptorDigest,
		Packages:         m.Packages,
		User:             m.User,
		Warnings:         m.Warnings,
		Status:           m.Status,
		QueuePosition:    m.QueuePosition,
		Error:            m.Error,
		ImageID:          m.ImageID,
		SizeBytes:        m.SizeBytes,
		CreatedAt:        m.CreatedAt,
		StartedAt:        m.StartedAt,
		CompletedAt:      m.CompletedAt,
		DurationMS:       m.DurationMS,
	}
}

// isTerminal returns true if the status represents a finished build
func isTerminal(status string) bool {
	return status == StatusReady || status == StatusFailed
}

// writeMetadata writes metadata atomically using temp file + rename
func writeMetadata(p *paths.Paths, meta *imageMetadata) error {
	if err := os.MkdirAll(p.ImageDir(meta.Name), 0755); err != nil {
		return fmt.Errorf("create image directory: %w", err)
	}

	data, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal metadata: %w", err)
	}

	tempPath := p.ImageMetadata(meta.Name) + ".tmp"
	if err := os.WriteFile(tempPath, data, 0644); err != nil {
		return fmt.Errorf("write temp metadata: %w", err)
	}

	if err := os.Rename(tempPath, p.ImageMetadata(meta.Name)); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("rename metadata: %w", err)
	}
	return nil
}

// readMetadata reads metadata from disk
func readMetadata(p *paths.Paths, name string) (*imageMetadata, error) {
	data, err := os.ReadFile(p.ImageMetadata(name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("read metadata: %w", err)
	}

	var meta imageMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("unmarshal metadata: %w", err)
	}
	return &meta, nil
}

// listMetadata lists all image metadata by scanning the images directory,
// sorted by name
func listMetadata(p *paths.Paths) ([]*imageMetadata, error) {
	entries, err := os.ReadDir(p.ImagesDir())
	if err != nil {
		if os.IsNotExist(err) {
			return []*imageMetadata{}, nil
		}
		return nil, fmt.Errorf("read images directory: %w", err)
	}

	var metas []*imageMetadata
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta, err := readMetadata(p, entry.Name())
		if err != nil {
			// Skip invalid entries
			continue
		}
		metas = append(metas, meta)
	}

	slices.SortFunc(metas, func(a, b *imageMetadata) int { return strings.Compare(a.Name, b.Name) })
	return metas, nil
}

// writeDescriptor stores the rendered descriptor next to the metadata
func writeDescriptor(p *paths.Paths, name, text string) error {
	if err := os.MkdirAll(p.ImageDir(name), 0755); err != nil {
		return fmt.Errorf("create image directory: %w", err)
	}
	return os.WriteFile(p.ImageDescriptor(name), []byte(text), 0644)
}

func readDescriptor(p *paths.Paths, name string) (*descriptor.Descriptor, error) {
	return descriptor.ParseFile(p.ImageDescriptor(name))
}

// openLog truncates and opens the build log for appending
func openLog(p *paths.Paths, name string) (*os.File, error) {
	return os.OpenFile(p.ImageBuildLog(name), os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
}

func readLog(p *paths.Paths, name string) ([]byte, error) {
	data, err := os.ReadFile(p.ImageBuildLog(name))
	if err != nil && os.IsNotExist(err) {
		return []byte{}, nil
	}
	return data, err
}

// deleteImageDir removes the entire image directory
func deleteImageDir(p *paths.Paths, name string) error {
	dir := p.ImageDir(name)
	if _, err := os.Stat(dir); err != nil {
		if os.IsNotExist(err) {
			return ErrNotFound
		}
		return fmt.Errorf("stat image directory: %w", err)
	}
	if err := os.RemoveAll(dir); err != nil {
		return fmt.Errorf("remove image directory: %w", err)
	}
	return nil
}

// validName matches image names usable as directory names and tag components
func validName(name string) bool {
	if name == "" || len(name) > 63 || name != filepath.Base(name) {
		return false
	}
	for i, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
		case (r == '-' || r == '_' || r == '.') && i > 0:
		default:
			return false
		}
	}
	return true
}
