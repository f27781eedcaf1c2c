package engine

import (
	"archive/tar"
	"encoding/json"
	"io"
	"testing"

	"github.com/docker/docker/pkg/jsonmessage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManagedLabels(t *testing.T) {
	labels := ManagedLabels(
		map[string]string{LabelRuntime: "go", LabelManaged: "false"},
		map[string]string{LabelRuntime: "java"},
	)

	assert.Equal(t, "true", labels[LabelManaged], "managed marker cannot be overridden")
	assert.Equal(t, "java", labels[LabelRuntime], "later maps win")
	assert.True(t, IsManaged(labels))
	assert.False(t, IsManaged(map[string]string{"other": "true"}))
	assert.False(t, IsManaged(nil))
}

func TestDockerfileContext(t *testing.T) {
	r, err := dockerfileContext("FROM alpine:3.20\nCMD [\"sh\"]\n")
	require.NoError(t, err)

	tr := tar.NewReader(r)
	hdr, err := tr.Next()
	require.NoError(t, err)
	assert.Equal(t, "Dockerfile", hdr.Name)
	assert.Equal(t, int64(0644), hdr.Mode)

	data, err := io.ReadAll(tr)
	require.NoError(t, err)
	assert.Equal(t, "FROM alpine:3.20\nCMD [\"sh\"]\n", string(data))

	_, err = tr.Next()
	assert.Equal(t, io.EOF, err)
}

func TestDecodeAux(t *testing.T) {
	raw := json.RawMessage(`{"ID":"sha256:abc"}`)
	assert.Equal(t, "sha256:abc", decodeAux(jsonmessage.JSONMessage{Aux: &raw}))

	bad := json.RawMessage(`"not an object"`)
	assert.Empty(t, decodeAux(jsonmessage.JSONMessage{Aux: &bad}))
	assert.Empty(t, decodeAux(jsonmessage.JSONMessage{Stream: "Step 1/2"}))
}

func TestContainerRunning(t *testing.T) {
	assert.True(t, (&Container{State: StateRunning}).Running())
	assert.False(t, (&Container{State: StateExited}).Running())
}
