package api

import (
	"bufio"
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/onkernel/sandboxd/lib/images"
	"github.com/onkernel/sandboxd/lib/oapi"
	"github.com/onkernel/sandboxd/lib/runtimes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const customDescriptor = `FROM alpine:3.20
RUN apk add --no-cache curl && adduser -D app
USER app
ENV GREETING=hello
CMD ["sh"]
`

func TestListImages(t *testing.T) {
	ts := newTestService(t)

	resp, err := ts.ListImages(ctx(), oapi.ListImagesRequestObject{})
	require.NoError(t, err)

	list, ok := resp.(oapi.ListImages200JSONResponse)
	require.True(t, ok, "expected 200 response")
	require.Len(t, list, 1)
	assert.Equal(t, "python", list[0].Name)
	assert.Equal(t, images.StatusReady, list[0].Status)
}

func TestGetImage_NotFound(t *testing.T) {
	ts := newTestService(t)

	resp, err := ts.GetImage(ctx(), oapi.GetImageRequestObject{Name: "non-existent"})
	require.NoError(t, err)

	notFound, ok := resp.(oapi.GetImage404JSONResponse)
	require.True(t, ok, "expected 404 response")
	assert.Equal(t, "not_found", notFound.Code)
	assert.Contains(t, notFound.Message, "image not found")
}

func TestCreateImage_ReadyIsIdempotent(t *testing.T) {
	ts := newTestService(t)
	builds := len(ts.fake.BuildRequests())

	resp, err := ts.CreateImage(ctx(), oapi.CreateImageRequestObject{
		Body: &oapi.CreateImageRequest{Runtime: "python"},
	})
	require.NoError(t, err)

	ready, ok := resp.(oapi.CreateImage200JSONResponse)
	require.True(t, ok, "expected 200 response, got %T", resp)
	assert.Equal(t, images.StatusReady, ready.Status)
	assert.Len(t, ts.fake.BuildRequests(), builds)
}

func TestCreateImage_Invalid(t *testing.T) {
	ts := newTestService(t)

	tests := []struct {
		name string
		req  oapi.CreateImageRequest
	}{
		{"empty", oapi.CreateImageRequest{}},
		{"unknown runtime", oapi.CreateImageRequest{Runtime: "cobol"}},
		{"descriptor without name", oapi.CreateImageRequest{Descriptor: customDescriptor}},
		{"bad name", oapi.CreateImageRequest{Name: "Not/Valid", Descriptor: customDescriptor}},
		{"catalogue name", oapi.CreateImageRequest{Name: "python", Descriptor: customDescriptor}},
		{"root user", oapi.CreateImageRequest{Name: "rooted", Descriptor: "FROM alpine:3.20\nCMD [\"sh\"]\n"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := tt.req
			resp, err := ts.CreateImage(ctx(), oapi.CreateImageRequestObject{Body: &req})
			require.NoError(t, err)

			bad, ok := resp.(oapi.CreateImage400JSONResponse)
			require.True(t, ok, "expected 400 response, got %T", resp)
			assert.Equal(t, "invalid_request", bad.Code)
		})
	}
}

func TestCreateImage_DescriptorWithEvents(t *testing.T) {
	ts := newTestService(t)

	resp, err := ts.CreateImage(ctx(), oapi.CreateImageRequestObject{
		Body: &oapi.CreateImageRequest{Name: "custom", Descriptor: customDescriptor},
	})
	require.NoError(t, err)

	var img oapi.Image
	switch r := resp.(type) {
	case oapi.CreateImage202JSONResponse:
		img = oapi.Image(r)
	case oapi.CreateImage200JSONResponse:
		img = oapi.Image(r)
	default:
		t.Fatalf("unexpected response %T", resp)
	}
	assert.Equal(t, "custom", img.Name)
	assert.Equal(t, "app", img.User)
	assert.Equal(t, "docker.io/library/alpine:3.20", img.BaseImage)

	// The stream ends when the build finishes
	rec := ts.do(t, http.MethodGet, "/v1/images/custom/events", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/event-stream", rec.Header().Get("Content-Type"))
	assert.Equal(t, "no-cache", rec.Header().Get("Cache-Control"))
	assert.True(t, rec.Flushed)

	var last images.ProgressUpdate
	sawProgress := false
	scanner := bufio.NewScanner(strings.NewReader(rec.Body.String()))
	event := ""
	for scanner.Scan() {
		line := scanner.Text()
		switch {
		case strings.HasPrefix(line, "event: "):
			event = strings.TrimPrefix(line, "event: ")
		case strings.HasPrefix(line, "data: ") && event == "progress":
			sawProgress = true
			require.NoError(t, json.Unmarshal([]byte(strings.TrimPrefix(line, "data: ")), &last))
		}
	}
	require.True(t, sawProgress, rec.Body.String())
	assert.Equal(t, images.StatusReady, last.Status)

	getResp, err := ts.GetImage(ctx(), oapi.GetImageRequestObject{Name: "custom"})
	require.NoError(t, err)
	got, ok := getResp.(oapi.GetImage200JSONResponse)
	require.True(t, ok, "expected 200 response")
	assert.Equal(t, images.StatusReady, got.Status)

	rec = ts.do(t, http.MethodGet, "/v1/images/custom/logs", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/plain", rec.Header().Get("Content-Type"))
}

func TestImageEvents_NotFound(t *testing.T) {
	ts := newTestService(t)

	resp, err := ts.ImageEvents(ctx(), oapi.ImageEventsRequestObject{Name: "missing"})
	require.NoError(t, err)
	_, ok := resp.(oapi.ImageEvents404JSONResponse)
	assert.True(t, ok, "expected 404 response, got %T", resp)

	logResp, err := ts.GetImageLogs(ctx(), oapi.GetImageLogsRequestObject{Name: "missing"})
	require.NoError(t, err)
	_, ok = logResp.(oapi.GetImageLogs404JSONResponse)
	assert.True(t, ok, "expected 404 response, got %T", logResp)
}

func TestDeleteImage(t *testing.T) {
	ts := newTestService(t)

	resp, err := ts.DeleteImage(ctx(), oapi.DeleteImageRequestObject{Name: "python"})
	require.NoError(t, err)
	_, ok := resp.(oapi.DeleteImage204Response)
	require.True(t, ok, "expected 204 response, got %T", resp)

	getResp, err := ts.GetImage(ctx(), oapi.GetImageRequestObject{Name: "python"})
	require.NoError(t, err)
	_, ok = getResp.(oapi.GetImage404JSONResponse)
	assert.True(t, ok, "expected 404 response")

	resp, err = ts.DeleteImage(ctx(), oapi.DeleteImageRequestObject{Name: "python"})
	require.NoError(t, err)
	_, ok = resp.(oapi.DeleteImage404JSONResponse)
	assert.True(t, ok, "expected 404 response")
}

func TestBuildAllImages(t *testing.T) {
	ts := newTestService(t)

	resp, err := ts.BuildAllImages(ctx(), oapi.BuildAllImagesRequestObject{})
	require.NoError(t, err)

	results, ok := resp.(oapi.BuildAllImages200JSONResponse)
	require.True(t, ok, "expected 200 response, got %T", resp)
	require.Len(t, results, len(runtimes.Names()))
	for _, res := range results {
		assert.Equal(t, images.StatusReady, res.Status, res.Runtime)
		assert.Empty(t, res.Error)
	}
}

func TestBuildAllImages_Background(t *testing.T) {
	ts := newTestService(t)

	wait := false
	resp, err := ts.BuildAllImages(ctx(), oapi.BuildAllImagesRequestObject{
		Params: oapi.BuildAllImagesParams{Wait: &wait},
	})
	require.NoError(t, err)

	queued, ok := resp.(oapi.BuildAllImages202JSONResponse)
	require.True(t, ok, "expected 202 response, got %T", resp)
	require.Len(t, queued, len(runtimes.Names()))
	for _, q := range queued {
		assert.Equal(t, images.StatusPending, q.Status)
	}

	require.Eventually(t, func() bool {
		list, err := ts.ImageManager.ListImages(context.Background())
		if err != nil || len(list) != len(runtimes.Names()) {
			return false
		}
		for _, img := range list {
			if !img.Ready() {
				return false
			}
		}
		return true
	}, 10*time.Second, 20*time.Millisecond)
}

func TestVerifyImage_NotFound(t *testing.T) {
	ts := newTestService(t)

	resp, err := ts.VerifyImage(ctx(), oapi.VerifyImageRequestObject{Name: "missing"})
	require.NoError(t, err)

	notFound, ok := resp.(oapi.VerifyImage404JSONResponse)
	require.True(t, ok, "expected 404 response, got %T", resp)
	assert.Equal(t, "not_found", notFound.Code)
}
