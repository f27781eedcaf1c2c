package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/onkernel/sandboxd/lib/images"
	"github.com/onkernel/sandboxd/lib/oapi"
)

// GetSystemInfo returns engine host details with sandbox and image counts
func (s *ApiService) GetSystemInfo(ctx context.Context, request oapi.GetSystemInfoRequestObject) (oapi.GetSystemInfoResponseObject, error) {
	info, err := s.SandboxManager.SystemInfo(ctx)
	if err != nil {
		if status, e := failure(err); status == http.StatusServiceUnavailable {
			return oapi.GetSystemInfo503JSONResponse(e), nil
		}
		return nil, fmt.Errorf("get system info: %w", err)
	}
	imgs, err := s.ImageManager.ListImages(ctx)
	if err != nil {
		return nil, fmt.Errorf("list images: %w", err)
	}

	out := oapi.GetSystemInfo200JSONResponse{
		ServerVersion:     info.ServerVersion,
		OperatingSystem:   info.OperatingSystem,
		Architecture:      info.Architecture,
		KernelVersion:     info.KernelVersion,
		Ncpu:              info.NCPU,
		MemTotal:          info.MemTotal,
		Containers:        info.Containers,
		ContainersRunning: info.ContainersRunning,
		Images:            info.Images,
		Sandboxes:         info.Sandboxes,
		SandboxesRunning:  info.SandboxesRunning,
		DataDisk:          info.DataDisk,
		ImagesTotal:       len(imgs),
	}
	for _, img := range imgs {
		switch img.Status {
		case images.StatusReady:
			out.ImagesReady++
		case images.StatusFailed:
			out.ImagesFailed++
		}
	}
	return out, nil
}

// Health is the body of the health endpoints
type Health struct {
	Status string `json:"status"`
	Engine string `json:"engine,omitempty"`
}

func writeHealth(w http.ResponseWriter, status int, h Health) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(h)
}

// HealthLive reports that the process is serving
func (s *ApiService) HealthLive(w http.ResponseWriter, r *http.Request) {
	writeHealth(w, http.StatusOK, Health{Status: "ok"})
}

// HealthReady reports whether the container engine is reachable
func (s *ApiService) HealthReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()
	if err := s.Engine.Ping(ctx); err != nil {
		writeHealth(w, http.StatusServiceUnavailable, Health{Status: "unavailable", Engine: err.Error()})
		return
	}
	writeHealth(w, http.StatusOK, Health{Status: "ok", Engine: "ok"})
}

// HealthRoutes mounts the unauthenticated health endpoints on r
func (s *ApiService) HealthRoutes(r chi.Router) {
	r.Get("/health", s.HealthReady)
	r.Get("/health/ready", s.HealthReady)
	r.Get("/health/live", s.HealthLive)
}
