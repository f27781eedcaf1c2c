package api

import (
	"archive/tar"
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/onkernel/sandboxd/lib/oapi"
	"github.com/onkernel/sandboxd/lib/paths"
	"github.com/onkernel/sandboxd/lib/projects"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProjects_CRUD(t *testing.T) {
	ts := newTestService(t)
	proj := createProject(t, ts)
	assert.Equal(t, "python", proj.Language)
	assert.Equal(t, projects.DefaultCPULimit, proj.CPULimit)

	listResp, err := ts.ListProjects(ctx(), oapi.ListProjectsRequestObject{})
	require.NoError(t, err)
	list, ok := listResp.(oapi.ListProjects200JSONResponse)
	require.True(t, ok, "expected 200 response")
	assert.Len(t, list, 1)

	name := "renamed"
	updResp, err := ts.UpdateProject(ctx(), oapi.UpdateProjectRequestObject{
		Id:   proj.ID,
		Body: &oapi.UpdateProjectRequest{Name: &name},
	})
	require.NoError(t, err)
	updated, ok := updResp.(oapi.UpdateProject200JSONResponse)
	require.True(t, ok, "expected 200 response, got %T", updResp)
	assert.Equal(t, "renamed", updated.Name)

	bad := "-1"
	updResp, err = ts.UpdateProject(ctx(), oapi.UpdateProjectRequestObject{
		Id:   proj.ID,
		Body: &oapi.UpdateProjectRequest{CPULimit: &bad},
	})
	require.NoError(t, err)
	invalid, ok := updResp.(oapi.UpdateProject400JSONResponse)
	require.True(t, ok, "expected 400 response, got %T", updResp)
	assert.Equal(t, "invalid_request", invalid.Code)

	getResp, err := ts.GetProject(ctx(), oapi.GetProjectRequestObject{Id: proj.ID})
	require.NoError(t, err)
	got, ok := getResp.(oapi.GetProject200JSONResponse)
	require.True(t, ok, "expected 200 response")
	assert.Equal(t, "renamed", got.Name)

	delResp, err := ts.DeleteProject(ctx(), oapi.DeleteProjectRequestObject{Id: proj.ID})
	require.NoError(t, err)
	_, ok = delResp.(oapi.DeleteProject204Response)
	require.True(t, ok, "expected 204 response, got %T", delResp)

	getResp, err = ts.GetProject(ctx(), oapi.GetProjectRequestObject{Id: proj.ID})
	require.NoError(t, err)
	_, ok = getResp.(oapi.GetProject404JSONResponse)
	assert.True(t, ok, "expected 404 response")
}

func TestCreateProject_Invalid(t *testing.T) {
	ts := newTestService(t)

	tests := []struct {
		name string
		req  oapi.CreateProjectRequest
	}{
		{"no name", oapi.CreateProjectRequest{Language: "python"}},
		{"unknown language", oapi.CreateProjectRequest{Name: "x", Language: "cobol"}},
		{"escaping main file", oapi.CreateProjectRequest{Name: "x", Language: "python", MainFile: "../main.py"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := tt.req
			resp, err := ts.CreateProject(ctx(), oapi.CreateProjectRequestObject{Body: &req})
			require.NoError(t, err)

			bad, ok := resp.(oapi.CreateProject400JSONResponse)
			require.True(t, ok, "expected 400 response, got %T", resp)
			assert.Equal(t, "invalid_request", bad.Code)
		})
	}
}

func TestUploadProjectFiles(t *testing.T) {
	ts := newTestService(t)
	proj := createProject(t, ts)

	upload := func(id string, files map[string]string) oapi.UploadProjectFilesResponseObject {
		t.Helper()
		resp, err := ts.UploadProjectFiles(ctx(), oapi.UploadProjectFilesRequestObject{
			Id:   id,
			Body: &oapi.UploadFilesRequest{Files: files},
		})
		require.NoError(t, err)
		return resp
	}

	res, ok := upload(proj.ID, map[string]string{"main.py": "print('hi')", "pkg/util.py": "X = 1"}).(oapi.UploadProjectFiles200JSONResponse)
	require.True(t, ok, "expected 200 response")
	assert.ElementsMatch(t, []string{"main.py", "pkg/util.py"}, res.Files)

	data, err := os.ReadFile(filepath.Join(paths.New(ts.Config.DataDir).ProjectWorkspace(proj.ID), "main.py"))
	require.NoError(t, err)
	assert.Equal(t, "print('hi')", string(data))

	_, ok = upload(proj.ID, map[string]string{"../../escape.py": "x"}).(oapi.UploadProjectFiles400JSONResponse)
	assert.True(t, ok, "expected 400 response for an escaping path")

	_, ok = upload(proj.ID, nil).(oapi.UploadProjectFiles400JSONResponse)
	assert.True(t, ok, "expected 400 response without files")

	_, ok = upload("missing", map[string]string{"main.py": "x"}).(oapi.UploadProjectFiles404JSONResponse)
	assert.True(t, ok, "expected 404 response")
}

func tarGz(t *testing.T, name string, body []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	gw := gzip.NewWriter(&buf)
	tw := tar.NewWriter(gw)
	require.NoError(t, tw.WriteHeader(&tar.Header{Name: name, Mode: 0644, Size: int64(len(body)), Typeflag: tar.TypeReg}))
	_, err := tw.Write(body)
	require.NoError(t, err)
	require.NoError(t, tw.Close())
	require.NoError(t, gw.Close())
	return buf.Bytes()
}

func TestUploadProjectArchive(t *testing.T) {
	ts := newTestService(t)
	proj := createProject(t, ts)
	body := []byte("print('from archive')\n")
	archive := tarGz(t, "src/main.py", body)

	upload := func(id string, r io.Reader) oapi.UploadProjectArchiveResponseObject {
		t.Helper()
		resp, err := ts.UploadProjectArchive(ctx(), oapi.UploadProjectArchiveRequestObject{Id: id, Body: r})
		require.NoError(t, err)
		return resp
	}

	res, ok := upload(proj.ID, bytes.NewReader(archive)).(oapi.UploadProjectArchive200JSONResponse)
	require.True(t, ok, "expected 200 response")
	assert.Equal(t, []string{"src/main.py"}, res.Files)

	data, err := os.ReadFile(filepath.Join(paths.New(ts.Config.DataDir).ProjectWorkspace(proj.ID), "src", "main.py"))
	require.NoError(t, err)
	assert.Equal(t, string(body), string(data))

	_, ok = upload(proj.ID, bytes.NewReader([]byte("not an archive"))).(oapi.UploadProjectArchive400JSONResponse)
	assert.True(t, ok, "expected 400 response")

	_, ok = upload("missing", bytes.NewReader(archive)).(oapi.UploadProjectArchive404JSONResponse)
	assert.True(t, ok, "expected 404 response")

	// A body cut off by the router's size limit
	limited := http.MaxBytesReader(httptest.NewRecorder(), io.NopCloser(bytes.NewReader(archive)), 16)
	tooLarge, ok := upload(proj.ID, limited).(oapi.UploadProjectArchive413JSONResponse)
	require.True(t, ok, "expected 413 response")
	assert.Equal(t, "too_large", tooLarge.Code)
}

func TestUploadProjectArchive_Router(t *testing.T) {
	ts := newTestService(t)
	proj := createProject(t, ts)

	req := httptest.NewRequest(http.MethodPost, "/v1/projects/"+proj.ID+"/archive", bytes.NewReader(tarGz(t, "main.py", []byte("x"))))
	req.Header.Set("Content-Type", "application/gzip")
	rec := httptest.NewRecorder()
	ts.handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, []string{"main.py"}, decodeBody[oapi.UploadFilesResponse](t, rec).Files)
}
