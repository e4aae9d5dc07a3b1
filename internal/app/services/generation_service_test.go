package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/eventvault/backend/internal/app/models/dto"
	"github.com/eventvault/backend/internal/pkg/apperrors"
	"github.com/eventvault/backend/internal/pkg/retry"
	"github.com/eventvault/backend/internal/pkg/texel"
)

type fakeGenerator struct {
	configured bool
	results    []*texel.ImageResult
	errs       []error
	requests   []texel.ImageRequest
}

func (f *fakeGenerator) Configured() bool { return f.configured }

func (f *fakeGenerator) GenerateImage(_ context.Context, req texel.ImageRequest) (*texel.ImageResult, error) {
	i := len(f.requests)
	f.requests = append(f.requests, req)
	if i < len(f.errs) && f.errs[i] != nil {
		return nil, f.errs[i]
	}
	if i < len(f.results) {
		return f.results[i], nil
	}
	return &texel.ImageResult{Success: true, ImageURL: "https://cdn.example.com/img.png"}, nil
}

func (f *fakeGenerator) GenerateVideo(_ context.Context, req texel.VideoRequest) (*texel.VideoResult, error) {
	return &texel.VideoResult{Success: true, JobID: "job-1", Status: "queued"}, nil
}

func (f *fakeGenerator) GetJobStatus(_ context.Context, jobID string) (*texel.JobStatus, error) {
	return &texel.JobStatus{JobID: jobID, Status: "completed"}, nil
}

var fastPolicy = retry.Policy{MaxAttempts: 3, InitialInterval: time.Millisecond, MaxInterval: 2 * time.Millisecond}

func TestGenerateImageNotConfigured(t *testing.T) {
	svc := NewGenerationService(&fakeGenerator{}, fastPolicy, zerolog.Nop())
	_, err := svc.GenerateImage(context.Background(), &dto.GenerateImageRequest{Prompt: "stage"})
	if !errors.Is(err, apperrors.ErrNotConfigured) {
		t.Fatalf("error = %v, want not configured", err)
	}
	if err.Error() != "Texel API key not configured" {
		t.Errorf("message = %q", err.Error())
	}
}

func TestGenerateImageRetriesTemporaryFailures(t *testing.T) {
	gen := &fakeGenerator{
		configured: true,
		errs:       []error{&texel.APIError{StatusCode: 503, Body: "busy"}},
		results:    []*texel.ImageResult{nil, {Success: false, Error: "gpu timeout"}},
	}
	svc := NewGenerationService(gen, fastPolicy, zerolog.Nop())

	res, err := svc.GenerateImage(context.Background(), &dto.GenerateImageRequest{Prompt: "stage"})
	if err != nil {
		t.Fatalf("GenerateImage: %v", err)
	}
	if !res.Success || len(gen.requests) != 3 {
		t.Errorf("success=%v after %d attempts, want success after 3", res.Success, len(gen.requests))
	}
}

func TestGenerateImageStopsOnClientError(t *testing.T) {
	gen := &fakeGenerator{
		configured: true,
		errs:       []error{&texel.APIError{StatusCode: 400, Body: "bad prompt"}},
	}
	svc := NewGenerationService(gen, fastPolicy, zerolog.Nop())

	_, err := svc.GenerateImage(context.Background(), &dto.GenerateImageRequest{Prompt: "stage"})
	var apiErr *texel.APIError
	if !errors.As(err, &apiErr) || apiErr.StatusCode != 400 {
		t.Fatalf("error = %v, want APIError 400", err)
	}
	if len(gen.requests) != 1 {
		t.Errorf("attempts = %d, want 1", len(gen.requests))
	}
}

func TestGenerateImageGivesUpAfterMaxAttempts(t *testing.T) {
	gen := &fakeGenerator{
		configured: true,
		results: []*texel.ImageResult{
			{Success: false, Error: "a"}, {Success: false, Error: "b"}, {Success: false, Error: "c"},
		},
	}
	svc := NewGenerationService(gen, fastPolicy, zerolog.Nop())

	_, err := svc.GenerateImage(context.Background(), &dto.GenerateImageRequest{Prompt: "stage"})
	if !errors.Is(err, apperrors.ErrExternalService) {
		t.Fatalf("error = %v, want external service error", err)
	}
	if len(gen.requests) != 3 {
		t.Errorf("attempts = %d, want 3", len(gen.requests))
	}
}

func TestGenerateImageMergesPreset(t *testing.T) {
	gen := &fakeGenerator{configured: true}
	svc := NewGenerationService(gen, fastPolicy, zerolog.Nop())
	preset, ok := texel.FindPreset("quick-demo")
	if !ok {
		t.Fatal("preset quick-demo missing")
	}

	if _, err := svc.GenerateImage(context.Background(), &dto.GenerateImageRequest{PresetID: "quick-demo", Width: 512}); err != nil {
		t.Fatalf("GenerateImage: %v", err)
	}
	got := gen.requests[0]
	if got.Prompt != preset.PromptTemplate || got.Width != 512 || got.Height != preset.Height {
		t.Errorf("request = %+v", got)
	}

	_, err := svc.GenerateImage(context.Background(), &dto.GenerateImageRequest{PresetID: "nope"})
	if !errors.Is(err, apperrors.ErrValidationFailed) {
		t.Errorf("unknown preset error = %v", err)
	}
}

func TestGenerateVideoRequiresPrompt(t *testing.T) {
	svc := NewGenerationService(&fakeGenerator{configured: true}, fastPolicy, zerolog.Nop())
	_, err := svc.GenerateVideo(context.Background(), &dto.GenerateVideoRequest{Prompt: " "})
	if !errors.Is(err, apperrors.ErrValidationFailed) {
		t.Fatalf("error = %v", err)
	}

	res, err := svc.GenerateVideo(context.Background(), &dto.GenerateVideoRequest{Prompt: "crowd"})
	if err != nil || res.JobID != "job-1" {
		t.Fatalf("GenerateVideo = %+v, %v", res, err)
	}
}
