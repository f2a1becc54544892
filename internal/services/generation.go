// Package services sequences the craft -> synthesize -> normalize ->
// store chain behind the generate and edit endpoints. Every stage fails
// closed: a failure aborts the remaining stages and nothing partial is
// persisted.
package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"frame-art-backend/internal/gemini"
	"frame-art-backend/internal/imaging"
	"frame-art-backend/internal/models"
	"frame-art-backend/internal/styles"
)

// ErrMissingAPIKey is detected before any network call is made.
var ErrMissingAPIKey = errors.New("GEMINI_API_KEY is not configured")

// Stage identifies where in the chain a request failed.
type Stage string

const (
	StageCraft       Stage = "craft"
	StageSynthesize  Stage = "synthesize"
	StageFetchSource Stage = "fetch_source"
	StageNormalize   Stage = "normalize"
	StageStore       Stage = "store"
)

// ChainError wraps a stage failure so handlers can map it onto the
// error taxonomy without re-inspecting provider errors.
type ChainError struct {
	Stage Stage
	Err   error
}

func (e *ChainError) Error() string {
	return fmt.Sprintf("%s stage failed: %v", e.Stage, e.Err)
}

func (e *ChainError) Unwrap() error { return e.Err }

// PromptCrafter produces the image prompt for a style and subject.
type PromptCrafter interface {
	Craft(ctx context.Context, styleFragment, subject string, tealAccent bool) (string, error)
}

// ImageSynthesizer is the generate/edit image surface of gemini.Client.
type ImageSynthesizer interface {
	GenerateImage(ctx context.Context, craftedPrompt string) (gemini.ImageResult, error)
	EditImage(ctx context.Context, src []byte, mimeType, instruction string) (gemini.ImageResult, error)
}

// ArtworkStore persists normalized artworks.
type ArtworkStore interface {
	Save(png []byte, styleLabel, promptText string) (models.GeneratedImage, error)
}

// GenerationResult carries the saved record plus diagnostics from the
// normalizer about what the model actually returned.
type GenerationResult struct {
	Image         models.GeneratedImage
	CraftedPrompt string
	SourceWidth   int
	SourceHeight  int
}

type GenerationService struct {
	crafter     PromptCrafter
	synthesizer ImageSynthesizer
	store       ArtworkStore
	httpClient  *http.Client
	sourceCache *gocache.Cache
	logger      *slog.Logger
	apiKeySet   bool
}

func NewGenerationService(
	crafter PromptCrafter,
	synthesizer ImageSynthesizer,
	store ArtworkStore,
	apiKeySet bool,
	logger *slog.Logger,
) *GenerationService {
	if logger == nil {
		logger = slog.Default()
	}
	return &GenerationService{
		crafter:     crafter,
		synthesizer: synthesizer,
		store:       store,
		httpClient:  &http.Client{Timeout: 60 * time.Second},
		sourceCache: gocache.New(5*time.Minute, 10*time.Minute),
		logger:      logger,
		apiKeySet:   apiKeySet,
	}
}

// Generate runs the full chain for one queued request. The style input
// is resolved against the catalog by id or name; unknown values are
// used verbatim as the style fragment.
func (s *GenerationService) Generate(ctx context.Context, styleInput, userPrompt string, tealAccent bool) (GenerationResult, error) {
	if !s.apiKeySet {
		return GenerationResult{}, ErrMissingAPIKey
	}

	fragment := styleInput
	label := styleInput
	if style, ok := styles.Find(styleInput); ok {
		fragment = style.Prompt
		label = style.Name
	}

	crafted, err := s.crafter.Craft(ctx, fragment, userPrompt, tealAccent)
	if err != nil {
		return GenerationResult{}, &ChainError{Stage: StageCraft, Err: err}
	}

	result, err := s.synthesizer.GenerateImage(ctx, crafted)
	if err != nil {
		return GenerationResult{}, &ChainError{Stage: StageSynthesize, Err: err}
	}

	normalized, err := imaging.Normalize(result.Data)
	if err != nil {
		return GenerationResult{}, &ChainError{Stage: StageNormalize, Err: err}
	}

	s.logger.Info("image normalized",
		"style", label,
		"source_width", normalized.SourceWidth,
		"source_height", normalized.SourceHeight,
	)

	image, err := s.store.Save(normalized.PNG, label, crafted)
	if err != nil {
		return GenerationResult{}, &ChainError{Stage: StageStore, Err: err}
	}

	return GenerationResult{
		Image:         image,
		CraftedPrompt: crafted,
		SourceWidth:   normalized.SourceWidth,
		SourceHeight:  normalized.SourceHeight,
	}, nil
}

// Edit fetches the currently displayed image, applies the instruction,
// and persists the result as a new artwork. There is no crafting step.
func (s *GenerationService) Edit(ctx context.Context, imageURL, instruction, styleLabel string) (GenerationResult, error) {
	if !s.apiKeySet {
		return GenerationResult{}, ErrMissingAPIKey
	}

	src, mimeType, err := s.fetchSource(ctx, imageURL)
	if err != nil {
		return GenerationResult{}, &ChainError{Stage: StageFetchSource, Err: err}
	}

	result, err := s.synthesizer.EditImage(ctx, src, mimeType, instruction)
	if err != nil {
		return GenerationResult{}, &ChainError{Stage: StageSynthesize, Err: err}
	}

	normalized, err := imaging.Normalize(result.Data)
	if err != nil {
		return GenerationResult{}, &ChainError{Stage: StageNormalize, Err: err}
	}

	if strings.TrimSpace(styleLabel) == "" {
		styleLabel = "edited"
	}

	image, err := s.store.Save(normalized.PNG, styleLabel, instruction)
	if err != nil {
		return GenerationResult{}, &ChainError{Stage: StageStore, Err: err}
	}

	return GenerationResult{
		Image:         image,
		CraftedPrompt: instruction,
		SourceWidth:   normalized.SourceWidth,
		SourceHeight:  normalized.SourceHeight,
	}, nil
}

type fetchedSource struct {
	data     []byte
	mimeType string
}

// fetchSource downloads the edit source image, with a short-lived cache
// so chained edits against the same artwork skip repeat downloads.
func (s *GenerationService) fetchSource(ctx context.Context, imageURL string) ([]byte, string, error) {
	if cached, ok := s.sourceCache.Get(imageURL); ok {
		src := cached.(fetchedSource)
		return src.data, src.mimeType, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		return nil, "", fmt.Errorf("failed to fetch original image: %w", err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("failed to fetch original image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("failed to fetch original image: status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", fmt.Errorf("failed to fetch original image: %w", err)
	}

	mimeType := resp.Header.Get("Content-Type")
	if mimeType == "" || !strings.HasPrefix(mimeType, "image/") {
		mimeType = http.DetectContentType(data)
	}

	s.sourceCache.SetDefault(imageURL, fetchedSource{data: data, mimeType: mimeType})
	return data, mimeType, nil
}
