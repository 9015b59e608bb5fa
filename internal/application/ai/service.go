// Package ai orchestrates the create-ad and search-ads pipelines:
// image intake -> prompt construction -> chat completion -> JSON extraction
// -> sanitization -> persistence or query.
package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"speedlist-backend/internal/aivalidate"
	"speedlist-backend/internal/application/ads"
	"speedlist-backend/internal/domain"
	"speedlist-backend/internal/images"
	"speedlist-backend/internal/llm"
	"speedlist-backend/internal/prompts"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// ErrEmptyPrompt is returned when the request carries no prompt text.
var ErrEmptyPrompt = errors.New("Prompt is required")

// ImageError wraps an intake-guard rejection (client-caused, 4xx).
type ImageError struct {
	Msg string
}

func (e *ImageError) Error() string { return e.Msg }

// DraftError reports required fields still empty after sanitization.
type DraftError struct {
	Fields []string
}

func (e *DraftError) Error() string {
	return "Missing required fields: " + strings.Join(e.Fields, ", ")
}

// UpstreamError marks LLM-side failures (garbled output, transport). The
// raw model reply is logged, never echoed to the client.
type UpstreamError struct {
	Err error
}

func (e *UpstreamError) Error() string { return "AI service failed to process the request" }
func (e *UpstreamError) Unwrap() error { return e.Err }

const (
	groundingCacheKey = "ai:grounding"
	groundingCacheTTL = 5 * time.Minute
	groundingAdSample = 12
)

// Service wires the AI pipelines. All collaborators are injected; Rdb and
// Compressor may be nil (grounding falls back to the DB, compression is
// skipped).
type Service struct {
	LLM          llm.ChatCompleter
	Ads          *ads.Service
	Compressor   *images.Compressor
	Rdb          *redis.Client
	ImageOptions images.Options
}

// CreateAdInput is one create-ad request after HTTP decoding.
type CreateAdInput struct {
	Prompt   string
	Images   []string
	Language string
}

// CreateAd runs the full create pipeline and persists the ad only when the
// sanitized draft has no missing required fields.
func (s *Service) CreateAd(ctx context.Context, in CreateAdInput) (*domain.Ad, error) {
	if strings.TrimSpace(in.Prompt) == "" {
		return nil, ErrEmptyPrompt
	}
	if s.LLM == nil {
		return nil, &UpstreamError{Err: errors.New("LLM API key is not configured")}
	}

	guard := s.ImageOptions
	if guard.MaxCount == 0 {
		guard = images.DefaultOptions()
	}
	res := images.SanitizeStrings(in.Images, guard)
	if res.Err != "" {
		return nil, &ImageError{Msg: res.Err}
	}
	accepted := res.Images
	if s.Compressor != nil && len(accepted) > 0 {
		compressed, err := s.Compressor.CompressAll(accepted)
		if err != nil {
			return nil, &ImageError{Msg: fmt.Sprintf("could not process images: %v", err)}
		}
		accepted = compressed
	}

	raw, err := s.LLM.Complete(ctx, llm.Request{
		System:  prompts.BuildCreateAdSystemPrompt(in.Language, s.groundingContext(ctx)),
		FewShot: prompts.CreateAdFewShot(in.Language),
		Text:    in.Prompt,
		Images:  accepted,
	})
	if err != nil {
		return nil, &UpstreamError{Err: err}
	}

	obj, err := llm.ExtractJSONObject(raw)
	if err != nil {
		log.Error().Err(err).Str("raw_reply", raw).Msg("create-ad reply was not valid JSON")
		return nil, &UpstreamError{Err: err}
	}

	draft, fieldErrs := aivalidate.ValidateAdDraft(obj)
	if len(fieldErrs) > 0 {
		return nil, &DraftError{Fields: fieldErrs}
	}

	return s.Ads.CreateFromDraft(ctx, ads.CreateFromDraftInput{
		Draft:    draft,
		Images:   accepted,
		Language: in.Language,
	})
}

// SearchAds runs the search pipeline and returns matching ads together with
// the filters the model produced.
func (s *Service) SearchAds(ctx context.Context, prompt, language string) ([]domain.Ad, aivalidate.SearchFilters, error) {
	if strings.TrimSpace(prompt) == "" {
		return nil, aivalidate.SearchFilters{}, ErrEmptyPrompt
	}
	if s.LLM == nil {
		return nil, aivalidate.SearchFilters{}, &UpstreamError{Err: errors.New("LLM API key is not configured")}
	}

	raw, err := s.LLM.Complete(ctx, llm.Request{
		System:  prompts.BuildSearchSystemPrompt(language, s.groundingContext(ctx)),
		FewShot: prompts.SearchFewShot(language),
		Text:    prompt,
	})
	if err != nil {
		return nil, aivalidate.SearchFilters{}, &UpstreamError{Err: err}
	}

	obj, err := llm.ExtractJSONObject(raw)
	if err != nil {
		log.Error().Err(err).Str("raw_reply", raw).Msg("search-ads reply was not valid JSON")
		return nil, aivalidate.SearchFilters{}, &UpstreamError{Err: err}
	}

	filters := aivalidate.ValidateSearchFilters(obj)
	found, err := s.Ads.Search(ctx, filters)
	if err != nil {
		return nil, filters, err
	}
	return found, filters, nil
}

// groundingContext samples recent approved ads into a hint block for the
// system prompt. The block is cached in Redis for a few minutes; any cache
// or DB failure degrades to an empty context rather than failing the call.
func (s *Service) groundingContext(ctx context.Context) string {
	if s.Rdb != nil {
		if cached, err := s.Rdb.Get(ctx, groundingCacheKey).Result(); err == nil {
			return cached
		}
	}

	recent, err := s.Ads.ListLatest(ctx, groundingAdSample)
	if err != nil || len(recent) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString("Recent listings on the marketplace:\n")
	for _, ad := range recent {
		line := ad.Title
		if ad.Category != "" {
			line += " [" + ad.Category + "]"
		}
		if ad.Location != "" {
			line += " - " + ad.Location
		}
		b.WriteString("- " + line + "\n")
	}
	out := strings.TrimRight(b.String(), "\n")

	if s.Rdb != nil {
		if err := s.Rdb.Set(ctx, groundingCacheKey, out, groundingCacheTTL).Err(); err != nil {
			log.Warn().Err(err).Msg("grounding cache write failed")
		}
	}
	return out
}
