package images

import (
	"time"

	"github.com/onkernel/sandboxd/lib/descriptor"
)

// Build status constants
const (
	StatusPending   = "pending"
	StatusResolving = "resolving"
	StatusBuilding  = "building"
	StatusReady     = "ready"
	StatusFailed    = "failed"
)

// Image is a runtime image built from a descriptor
type Image struct {
	Name    string `json:"name"`
	Runtime string `json:"runtime,omitempty"`
	// Tag is the local engine tag (sandboxd-<name>:latest)
	Tag string `json:"tag"`
	// BaseImage is the normalized FROM reference
	BaseImage string `json:"base_image"`
	// BaseDigest is the registry digest the base was pinned to, if resolved
	BaseDigest       string               `json:"base_digest,omitempty"`
	DescriptorDigest string               `json:"descriptor_digest"`
	Packages         []descriptor.Package `json:"packages,omitempty"`
	User             string               `json:"user"`
	Warnings         []string             `json:"warnings,omitempty"`

	Status        string  `json:"status"`
	QueuePosition *int    `json:"queue_position,omitempty"`
	Error         *string `json:"error,omitempty"`

	ImageID   string `json:"image_id,omitempty"`
	SizeBytes int64  `json:"size_bytes,omitempty"`

	CreatedAt   time.Time  `json:"created_at"`
	StartedAt   *time.Time `json:"started_at,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	DurationMS  *int64     `json:"duration_ms,omitempty"`
}

// Ready reports whether the image can be used for sandboxes
func (i *Image) Ready() bool {
	return i.Status == StatusReady
}

// CreateImageRequest selects a catalogue runtime or supplies descriptor text
type CreateImageRequest struct {
	// Name defaults to the runtime name; required with Descriptor
	Name       string `json:"name,omitempty"`
	Runtime    string `json:"runtime,omitempty"`
	Descriptor string `json:"descriptor,omitempty"`
	// ResolveBase pins the base image to its current registry digest
	ResolveBase bool `json:"resolve_base,omitempty"`
	// Rebuild forces a build even when a ready image has the same digest
	Rebuild bool `json:"rebuild,omitempty"`
}
