package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlushEventStream(t *testing.T) {
	tests := []struct {
		name        string
		contentType string
		flushed     bool
	}{
		{"event stream", "text/event-stream", true},
		{"json", "application/json", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := FlushEventStream(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", tt.contentType)
				w.WriteHeader(http.StatusOK)
				_, err := w.Write([]byte("data: 1\n\n"))
				require.NoError(t, err)
			}))

			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

			require.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, "data: 1\n\n", rec.Body.String())
			assert.Equal(t, tt.flushed, rec.Flushed)
			if tt.flushed {
				assert.Equal(t, "no-cache", rec.Header().Get("Cache-Control"))
			} else {
				assert.Empty(t, rec.Header().Get("Cache-Control"))
			}
		})
	}
}
