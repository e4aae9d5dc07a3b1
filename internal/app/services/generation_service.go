package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/eventvault/backend/internal/app/models/dto"
	"github.com/eventvault/backend/internal/pkg/apperrors"
	"github.com/eventvault/backend/internal/pkg/retry"
	"github.com/eventvault/backend/internal/pkg/texel"
)

// Generator is the AI generation backend. *texel.Client implements it.
type Generator interface {
	Configured() bool
	GenerateImage(ctx context.Context, req texel.ImageRequest) (*texel.ImageResult, error)
	GenerateVideo(ctx context.Context, req texel.VideoRequest) (*texel.VideoResult, error)
	GetJobStatus(ctx context.Context, jobID string) (*texel.JobStatus, error)
}

var _ Generator = (*texel.Client)(nil)

// GenerationService defines image and video generation operations
type GenerationService interface {
	GenerateImage(ctx context.Context, req *dto.GenerateImageRequest) (*texel.ImageResult, error)
	GenerateVideo(ctx context.Context, req *dto.GenerateVideoRequest) (*texel.VideoResult, error)
	GetJobStatus(ctx context.Context, jobID string) (*texel.JobStatus, error)
	Presets() []texel.Preset
}

type generationServiceImpl struct {
	generator Generator
	policy    retry.Policy
	logger    zerolog.Logger
}

// NewGenerationService creates a new generation service. Image generation
// is attempted up to policy.MaxAttempts times.
func NewGenerationService(generator Generator, policy retry.Policy, logger zerolog.Logger) GenerationService {
	return &generationServiceImpl{
		generator: generator,
		policy:    policy,
		logger:    logger,
	}
}

// imageRequest merges the preset named by req, if any, with the explicit fields
func imageRequest(req *dto.GenerateImageRequest) (texel.ImageRequest, error) {
	var out texel.ImageRequest
	if req.PresetID != "" {
		preset, ok := texel.FindPreset(req.PresetID)
		if !ok {
			return out, apperrors.NewValidationError(fmt.Sprintf("unknown preset: %s", req.PresetID))
		}
		out = preset.ImageRequest()
	}

	if p := strings.TrimSpace(req.Prompt); p != "" {
		out.Prompt = p
	}
	if out.Prompt == "" {
		return out, apperrors.NewValidationError("prompt is required")
	}
	if req.NegativePrompt != "" {
		out.NegativePrompt = req.NegativePrompt
	}
	if req.Width != 0 {
		out.Width = req.Width
	}
	if req.Height != 0 {
		out.Height = req.Height
	}
	if req.Steps != 0 {
		out.Steps = req.Steps
	}
	if req.CFGScale != 0 {
		out.CFGScale = req.CFGScale
	}
	if req.Model != "" {
		out.Model = req.Model
	}
	out.Seed = req.Seed
	return out, nil
}

// GenerateImage generates an image, retrying temporary failures and
// unsuccessful results with exponential backoff.
func (s *generationServiceImpl) GenerateImage(ctx context.Context, req *dto.GenerateImageRequest) (*texel.ImageResult, error) {
	if !s.generator.Configured() {
		return nil, texel.ErrNotConfigured
	}

	imgReq, err := imageRequest(req)
	if err != nil {
		return nil, err
	}

	result, err := retry.Do(ctx, s.policy, s.logger, func(ctx context.Context) (*texel.ImageResult, error) {
		res, err := s.generator.GenerateImage(ctx, imgReq)
		if err != nil {
			var apiErr *texel.APIError
			if errors.As(err, &apiErr) && apiErr.Temporary() {
				return nil, err
			}
			return nil, retry.Permanent(err)
		}
		if !res.Success {
			return res, apperrors.NewCustomError(apperrors.ErrExternalService, "Texel generation failed: "+res.Error)
		}
		return res, nil
	})
	if err != nil {
		s.logger.Error().Err(err).Str("model", imgReq.Model).Msg("Image generation failed")
		return nil, err
	}

	s.logger.Info().Str("model", imgReq.Model).Float64("seconds", result.GenerationTime).Msg("Image generated")
	return result, nil
}

// GenerateVideo submits a video generation. Videos are queued, so there is
// no retry here; callers poll GetJobStatus.
func (s *generationServiceImpl) GenerateVideo(ctx context.Context, req *dto.GenerateVideoRequest) (*texel.VideoResult, error) {
	if !s.generator.Configured() {
		return nil, texel.ErrNotConfigured
	}

	prompt := strings.TrimSpace(req.Prompt)
	if prompt == "" {
		return nil, apperrors.NewValidationError("prompt is required")
	}

	result, err := s.generator.GenerateVideo(ctx, texel.VideoRequest{
		Prompt:         prompt,
		NegativePrompt: req.NegativePrompt,
		ImageURL:       req.ImageURL,
		Model:          req.Model,
		Duration:       req.Duration,
	})
	if err != nil {
		s.logger.Error().Err(err).Msg("Video generation failed")
		return nil, err
	}
	return result, nil
}

// GetJobStatus polls a queued generation job
func (s *generationServiceImpl) GetJobStatus(ctx context.Context, jobID string) (*texel.JobStatus, error) {
	if !s.generator.Configured() {
		return nil, texel.ErrNotConfigured
	}
	if strings.TrimSpace(jobID) == "" {
		return nil, apperrors.NewValidationError("job id is required")
	}
	return s.generator.GetJobStatus(ctx, jobID)
}

// Presets lists the built-in prompt presets
func (s *generationServiceImpl) Presets() []texel.Preset {
	return texel.Presets()
}
