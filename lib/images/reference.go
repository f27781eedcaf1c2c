package images

import (
	"context"
	"fmt"

	"github.com/distribution/reference"
	"github.com/google/go-containerregistry/pkg/authn"
	"github.com/google/go-containerregistry/pkg/name"
	"github.com/google/go-containerregistry/pkg/v1/remote"
)

// NormalizedRef is a validated and normalized OCI image reference.
// It can be either a tagged reference (e.g., "docker.io/library/alpine:latest")
// or a digest reference (e.g., "docker.io/library/alpine@sha256:abc123...").
type NormalizedRef struct {
	raw        string
	repository string
	tag        string // empty if digest ref
	digest     string // empty if tag ref
}

// ParseNormalizedRef validates and normalizes a user-provided image reference.
// Examples:
//   - "alpine" -> "docker.io/library/alpine:latest"
//   - "alpine:3.18" -> "docker.io/library/alpine:3.18"
//   - "alpine@sha256:abc..." -> "docker.io/library/alpine@sha256:abc..."
func ParseNormalizedRef(s string) (*NormalizedRef, error) {
	named, err := reference.ParseNormalizedNamed(s)
	if err != nil {
		return nil, err
	}

	ref := &NormalizedRef{
		repository: reference.Domain(named) + "/" + reference.Path(named),
	}

	if canonical, ok := named.(reference.Canonical); ok {
		ref.digest = canonical.Digest().String()
		ref.raw = canonical.String()
		return ref, nil
	}

	// Tagged reference; add :latest if missing
	tagged := reference.TagNameOnly(named)
	if t, ok := tagged.(reference.Tagged); ok {
		ref.tag = t.Tag()
	}
	ref.raw = tagged.String()

	return ref, nil
}

// String returns the full normalized reference.
func (r *NormalizedRef) String() string {
	return r.raw
}

// IsDigest returns true if this reference contains a digest (@sha256:...).
func (r *NormalizedRef) IsDigest() bool {
	return r.digest != ""
}

// Digest returns the digest if present, empty for tagged references.
func (r *NormalizedRef) Digest() string {
	return r.digest
}

// Repository returns the repository path without tag or digest.
// Example: "docker.io/library/alpine"
func (r *NormalizedRef) Repository() string {
	return r.repository
}

// Tag returns the tag, empty for digest references.
func (r *NormalizedRef) Tag() string {
	return r.tag
}

// Pinned returns the repository pinned to digest
func (r *NormalizedRef) Pinned(digest string) string {
	return r.repository + "@" + digest
}

// BaseResolver looks up the current manifest digest of an image reference
type BaseResolver interface {
	Resolve(ctx context.Context, ref *NormalizedRef) (string, error)
}

// RemoteResolver resolves digests against the registry with a HEAD request
type RemoteResolver struct {
	nameOpts   []name.Option
	remoteOpts []remote.Option
}

// NewRemoteResolver creates a resolver. Registry credentials come from the
// default docker keychain.
func NewRemoteResolver(insecure bool, opts ...remote.Option) *RemoteResolver {
	r := &RemoteResolver{
		remoteOpts: append([]remote.Option{remote.WithAuthFromKeychain(authn.DefaultKeychain)}, opts...),
	}
	if insecure {
		r.nameOpts = append(r.nameOpts, name.Insecure)
	}
	return r
}

// Resolve returns the manifest digest. Digest references resolve to themselves.
func (r *RemoteResolver) Resolve(ctx context.Context, ref *NormalizedRef) (string, error) {
	if ref.IsDigest() {
		return ref.Digest(), nil
	}

	parsed, err := name.ParseReference(ref.String(), r.nameOpts...)
	if err != nil {
		return "", fmt.Errorf("parse reference: %w", err)
	}

	opts := append([]remote.Option{remote.WithContext(ctx)}, r.remoteOpts...)
	desc, err := remote.Head(parsed, opts...)
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", ref, err)
	}
	return desc.Digest.String(), nil
}
