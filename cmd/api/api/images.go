package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/onkernel/sandboxd/lib/images"
	"github.com/onkernel/sandboxd/lib/logger"
	"github.com/onkernel/sandboxd/lib/oapi"
	"github.com/onkernel/sandboxd/lib/runtimes"
)

// ListImages lists all images
func (s *ApiService) ListImages(ctx context.Context, request oapi.ListImagesRequestObject) (oapi.ListImagesResponseObject, error) {
	imgs, err := s.ImageManager.ListImages(ctx)
	if err != nil {
		return nil, fmt.Errorf("list images: %w", err)
	}
	return oapi.ListImages200JSONResponse(imgs), nil
}

// CreateImage queues an image build. A ready image built from the same
// descriptor is returned with 200; otherwise 202.
func (s *ApiService) CreateImage(ctx context.Context, request oapi.CreateImageRequestObject) (oapi.CreateImageResponseObject, error) {
	req := request.Body
	resolve := s.Config.ResolveBaseImages
	if req.ResolveBase != nil {
		resolve = *req.ResolveBase
	}

	img, err := s.ImageManager.CreateImage(ctx, images.CreateImageRequest{
		Name:        req.Name,
		Runtime:     req.Runtime,
		Descriptor:  req.Descriptor,
		ResolveBase: resolve,
		Rebuild:     req.Rebuild,
	})
	if err != nil {
		switch status, e := failure(err); status {
		case http.StatusBadRequest:
			return oapi.CreateImage400JSONResponse(e), nil
		case http.StatusConflict:
			return oapi.CreateImage409JSONResponse(e), nil
		}
		return nil, fmt.Errorf("create image: %w", err)
	}
	if img.Ready() {
		return oapi.CreateImage200JSONResponse(*img), nil
	}
	return oapi.CreateImage202JSONResponse(*img), nil
}

// GetImage gets image details
func (s *ApiService) GetImage(ctx context.Context, request oapi.GetImageRequestObject) (oapi.GetImageResponseObject, error) {
	img, err := s.ImageManager.GetImage(ctx, request.Name)
	if err != nil {
		if status, e := failure(err); status == http.StatusNotFound {
			return oapi.GetImage404JSONResponse(e), nil
		}
		return nil, fmt.Errorf("get image: %w", err)
	}
	return oapi.GetImage200JSONResponse(*img), nil
}

// DeleteImage deletes an image, cancelling a queued build
func (s *ApiService) DeleteImage(ctx context.Context, request oapi.DeleteImageRequestObject) (oapi.DeleteImageResponseObject, error) {
	if err := s.ImageManager.DeleteImage(ctx, request.Name); err != nil {
		switch status, e := failure(err); status {
		case http.StatusNotFound:
			return oapi.DeleteImage404JSONResponse(e), nil
		case http.StatusConflict:
			return oapi.DeleteImage409JSONResponse(e), nil
		}
		return nil, fmt.Errorf("delete image: %w", err)
	}
	return oapi.DeleteImage204Response{}, nil
}

// GetImageLogs returns the raw build log
func (s *ApiService) GetImageLogs(ctx context.Context, request oapi.GetImageLogsRequestObject) (oapi.GetImageLogsResponseObject, error) {
	data, err := s.ImageManager.GetBuildLogs(ctx, request.Name)
	if err != nil {
		if status, e := failure(err); status == http.StatusNotFound {
			return oapi.GetImageLogs404JSONResponse(e), nil
		}
		return nil, fmt.Errorf("read build log: %w", err)
	}
	return oapi.GetImageLogs200TextResponse(data), nil
}

// ImageEvents streams build progress as server-sent events until the build
// finishes or the client goes away
func (s *ApiService) ImageEvents(ctx context.Context, request oapi.ImageEventsRequestObject) (oapi.ImageEventsResponseObject, error) {
	updates, err := s.ImageManager.Subscribe(ctx, request.Name)
	if err != nil {
		if status, e := failure(err); status == http.StatusNotFound {
			return oapi.ImageEvents404JSONResponse(e), nil
		}
		return nil, fmt.Errorf("subscribe to build: %w", err)
	}
	return oapi.ImageEvents200TexteventStreamResponse{Body: images.ToSSEReader(updates)}, nil
}

// BuildAllImages builds every catalogue runtime. With ?wait=false the
// builds run in the background and 202 is returned immediately.
func (s *ApiService) BuildAllImages(ctx context.Context, request oapi.BuildAllImagesRequestObject) (oapi.BuildAllImagesResponseObject, error) {
	if w := request.Params.Wait; w != nil && !*w {
		bg := context.WithoutCancel(ctx)
		go func() {
			if _, err := s.ImageManager.BuildAll(bg); err != nil {
				logger.FromContext(bg).ErrorContext(bg, "bulk build failed", "error", err)
			}
		}()
		queued := make([]oapi.BuildResult, 0)
		for _, name := range runtimes.Names() {
			queued = append(queued, oapi.BuildResult{Runtime: name, Status: images.StatusPending})
		}
		return oapi.BuildAllImages202JSONResponse(queued), nil
	}

	results, err := s.ImageManager.BuildAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("build images: %w", err)
	}
	out := make([]oapi.BuildResult, 0, len(results))
	for _, name := range runtimes.Names() {
		res, ok := results[name]
		if !ok {
			continue
		}
		br := oapi.BuildResult{Runtime: name, Status: images.StatusReady}
		if res != nil {
			br.Status = images.StatusFailed
			br.Error = res.Error()
		}
		out = append(out, br)
	}
	return oapi.BuildAllImages200JSONResponse(out), nil
}

// VerifyImage checks a built image against its descriptor
func (s *ApiService) VerifyImage(ctx context.Context, request oapi.VerifyImageRequestObject) (oapi.VerifyImageResponseObject, error) {
	report, err := s.Verifier.Verify(ctx, request.Name)
	if err != nil {
		switch status, e := failure(err); status {
		case http.StatusNotFound:
			return oapi.VerifyImage404JSONResponse(e), nil
		case http.StatusConflict:
			return oapi.VerifyImage409JSONResponse(e), nil
		}
		return nil, fmt.Errorf("verify image: %w", err)
	}
	return oapi.VerifyImage200JSONResponse(*report), nil
}
