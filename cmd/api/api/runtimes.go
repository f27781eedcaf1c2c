package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/onkernel/sandboxd/lib/descriptor"
	"github.com/onkernel/sandboxd/lib/oapi"
	"github.com/onkernel/sandboxd/lib/runtimes"
)

func summarize(rt *runtimes.Runtime) oapi.RuntimeSummary {
	return oapi.RuntimeSummary{
		Name:      rt.Name,
		Image:     rt.Image(),
		BaseImage: rt.Descriptor.BaseImage,
		User:      rt.Descriptor.User,
		WorkDir:   rt.WorkDir(),
		Recipe:    rt.Recipe,
	}
}

// ListRuntimes lists the runtime catalogue
func (s *ApiService) ListRuntimes(ctx context.Context, request oapi.ListRuntimesRequestObject) (oapi.ListRuntimesResponseObject, error) {
	list, err := runtimes.List()
	if err != nil {
		return oapi.ListRuntimes500JSONResponse{Code: "internal_error", Message: err.Error()}, nil
	}
	out := make([]oapi.RuntimeSummary, 0, len(list))
	for _, rt := range list {
		out = append(out, summarize(rt))
	}
	return oapi.ListRuntimes200JSONResponse(out), nil
}

// GetRuntime returns a runtime with its descriptor
func (s *ApiService) GetRuntime(ctx context.Context, request oapi.GetRuntimeRequestObject) (oapi.GetRuntimeResponseObject, error) {
	rt, err := runtimes.Get(request.Name)
	if err != nil {
		if status, e := failure(err); status == http.StatusNotFound {
			return oapi.GetRuntime404JSONResponse(e), nil
		}
		return nil, fmt.Errorf("get runtime: %w", err)
	}
	sum := summarize(rt)
	return oapi.GetRuntime200JSONResponse{
		Name:       sum.Name,
		Image:      sum.Image,
		BaseImage:  sum.BaseImage,
		User:       sum.User,
		WorkDir:    sum.WorkDir,
		Recipe:     sum.Recipe,
		Descriptor: *rt.Descriptor,
		Rendered:   rt.Descriptor.Render(),
		Digest:     rt.Descriptor.Digest().String(),
		Config:     rt.Descriptor.ImageConfig(nil),
	}, nil
}

// ParseDescriptor parses and validates arbitrary descriptor text. Syntax
// errors are a 400; validation failures are reported in the body.
func (s *ApiService) ParseDescriptor(ctx context.Context, request oapi.ParseDescriptorRequestObject) (oapi.ParseDescriptorResponseObject, error) {
	d, err := descriptor.ParseString(request.Body.Descriptor)
	if err != nil {
		return oapi.ParseDescriptor400JSONResponse{Code: "invalid_descriptor", Message: err.Error()}, nil
	}

	resp := oapi.ParseDescriptor200JSONResponse{
		Valid:      true,
		Warnings:   d.Warnings(),
		Descriptor: *d,
		Users:      d.Users(),
		Env:        d.ResolveEnv(nil),
		Rendered:   d.Render(),
		Digest:     d.Digest().String(),
	}
	if err := d.Validate(); err != nil {
		resp.Valid = false
		resp.Errors = descriptor.Problems(err)
	}
	return resp, nil
}
