package middleware

import (
	"net/http"
	"strings"
)

// FlushEventStream flushes server-sent event responses after every write so
// clients see each event as it is produced. Other responses pass through
// untouched.
func FlushEventStream(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		next.ServeHTTP(&eventStreamWriter{ResponseWriter: w, rc: http.NewResponseController(w)}, r)
	})
}

type eventStreamWriter struct {
	http.ResponseWriter
	rc        *http.ResponseController
	streaming bool
}

func (w *eventStreamWriter) WriteHeader(status int) {
	if strings.HasPrefix(w.Header().Get("Content-Type"), "text/event-stream") {
		w.streaming = true
		w.Header().Set("Cache-Control", "no-cache")
	}
	w.ResponseWriter.WriteHeader(status)
	if w.streaming {
		w.rc.Flush()
	}
}

func (w *eventStreamWriter) Write(p []byte) (int, error) {
	n, err := w.ResponseWriter.Write(p)
	if err == nil && w.streaming {
		err = w.rc.Flush()
	}
	return n, err
}

// Unwrap exposes the underlying writer to http.ResponseController
func (w *eventStreamWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}
