// Package studio is the top-level controller for the gallery UI. It
// owns all mutable application state: the selected style, the bounded
// generation queue, the gallery list, and the detail viewer with its
// edit conversation. State changes only through the action methods
// here; nested layers receive callbacks, never direct write access.
package studio

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"frame-art-backend/internal/models"
	"frame-art-backend/internal/queue"
	"frame-art-backend/internal/session"
	"frame-art-backend/internal/styles"
	"frame-art-backend/internal/viewport"
)

// API is the backend surface the studio drives. Implemented by
// client.Client.
type API interface {
	Generate(ctx context.Context, req models.GenerateRequest) (*models.GenerateResponse, error)
	Edit(ctx context.Context, req models.EditRequest) (*models.EditResponse, error)
	ListImages(ctx context.Context) ([]models.GeneratedImage, error)
	DeleteImage(ctx context.Context, id string) error
}

// ErrNoStyleSelected rejects a generation before anything is queued.
var ErrNoStyleSelected = errors.New("no style selected")

// ErrNoArtworkOpen rejects detail actions with no artwork open.
var ErrNoArtworkOpen = errors.New("no artwork open")

// Keyboard shortcuts handled by the detail viewer.
const (
	KeyZoomIn     = "+"
	KeyZoomOut    = "-"
	KeyFit        = "0"
	KeyActualSize = "1"
	KeyEscape     = "escape"
)

type detail struct {
	open    bool
	image   models.GeneratedImage
	view    viewport.View
	session *session.Store
}

type Studio struct {
	mu     sync.Mutex
	api    API
	queue  *queue.Queue
	logger *slog.Logger

	selectedStyle styles.Style
	styleChosen   bool
	gallery       []models.GeneratedImage
	detail        detail

	viewportWidth  float64
	viewportHeight float64
}

func New(api API, logger *slog.Logger) *Studio {
	if logger == nil {
		logger = slog.Default()
	}

	s := &Studio{
		api:            api,
		logger:         logger,
		viewportWidth:  1280,
		viewportHeight: 720,
	}
	s.detail.session = session.NewStore()

	s.queue = queue.New(queue.DefaultBound, s.runGeneration, s.onGenerated)
	return s
}

// SelectStyle picks a catalog style by id or name.
func (s *Studio) SelectStyle(q string) error {
	style, ok := styles.Find(q)
	if !ok {
		return fmt.Errorf("unknown style %q", q)
	}

	s.mu.Lock()
	s.selectedStyle = style
	s.styleChosen = true
	s.mu.Unlock()
	return nil
}

func (s *Studio) SelectedStyle() (styles.Style, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selectedStyle, s.styleChosen
}

// SubmitGeneration queues a generation for the selected style. Over the
// admission bound it fails with queue.ErrQueueFull before any network
// call.
func (s *Studio) SubmitGeneration(ctx context.Context, subject string, tealAccent bool) (string, error) {
	s.mu.Lock()
	if !s.styleChosen {
		s.mu.Unlock()
		return "", ErrNoStyleSelected
	}
	style := s.selectedStyle
	s.mu.Unlock()

	return s.queue.Submit(ctx, queue.Request{
		StylePrompt: style.ID,
		UserPrompt:  subject,
		TealAccent:  tealAccent,
	})
}

func (s *Studio) runGeneration(ctx context.Context, req queue.Request) (models.GeneratedImage, error) {
	resp, err := s.api.Generate(ctx, models.GenerateRequest{
		Style:         req.StylePrompt,
		UserPrompt:    req.UserPrompt,
		UseTealAccent: req.TealAccent,
	})
	if err != nil {
		return models.GeneratedImage{}, err
	}
	return resp.Image, nil
}

// onGenerated prepends a completed artwork to the gallery. Independent
// queue items race, so the gallery reflects completion order.
func (s *Studio) onGenerated(image models.GeneratedImage) {
	s.mu.Lock()
	s.gallery = append([]models.GeneratedImage{image}, s.gallery...)
	s.mu.Unlock()
	s.logger.Info("generation completed", "id", image.ID, "style", image.Style)
}

// DismissFailed removes a failed queue item, freeing its slot.
func (s *Studio) DismissFailed(itemID string) bool {
	return s.queue.Dismiss(itemID)
}

func (s *Studio) QueueItems() []queue.Item {
	return s.queue.Items()
}

// Refresh replaces the gallery with a fresh listing. The backend never
// caches, so this also reconciles artworks persisted by requests that
// timed out client-side.
func (s *Studio) Refresh(ctx context.Context) error {
	images, err := s.api.ListImages(ctx)
	if err != nil {
		return fmt.Errorf("failed to refresh gallery: %w", err)
	}

	s.mu.Lock()
	s.gallery = images
	s.mu.Unlock()
	return nil
}

func (s *Studio) Gallery() []models.GeneratedImage {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.GeneratedImage, len(s.gallery))
	copy(out, s.gallery)
	return out
}

// Delete removes an artwork from the store and from the local gallery.
func (s *Studio) Delete(ctx context.Context, id string) error {
	if err := s.api.DeleteImage(ctx, id); err != nil {
		return err
	}

	s.mu.Lock()
	for i, img := range s.gallery {
		if img.ID == id {
			s.gallery = append(s.gallery[:i], s.gallery[i+1:]...)
			break
		}
	}
	s.mu.Unlock()
	return nil
}

// SetViewportSize records the viewer dimensions used for fit math.
func (s *Studio) SetViewportSize(width, height float64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.viewportWidth = width
	s.viewportHeight = height
	if s.detail.open {
		s.detail.view = s.detail.view.Resize(width, height)
	}
}

// Open shows an artwork in the detail viewer with a fitted view.
// Opening a different artwork resets the edit conversation.
func (s *Studio) Open(image models.GeneratedImage) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.detail.open = true
	s.detail.image = image
	s.detail.view = viewport.New(s.viewportWidth, s.viewportHeight)
	s.detail.session.Open(image.ID)
}

func (s *Studio) CloseDetail() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.detail.open = false
}

// Current returns the artwork the detail viewer is showing, which after
// chained edits may not be the artwork originally opened.
func (s *Studio) Current() (models.GeneratedImage, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.detail.image, s.detail.open
}

func (s *Studio) View() viewport.View {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.detail.view
}

func (s *Studio) Conversation() []session.Message {
	return s.detail.session.Messages()
}

// Pan, Zoom and Pinch forward pointer gestures to the viewport.
func (s *Studio) Pan(dx, dy float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.detail.view = s.detail.view.Pan(dx, dy)
}

func (s *Studio) ZoomBy(anchorX, anchorY, factor float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.detail.view = s.detail.view.ZoomBy(anchorX, anchorY, factor)
}

func (s *Studio) Pinch(midX, midY, distanceRatio float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.detail.view = s.detail.view.Pinch(midX, midY, distanceRatio)
}

func (s *Studio) DoubleClick(anchorX, anchorY float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.detail.view = s.detail.view.ToggleFit(anchorX, anchorY)
}

// HandleKey applies a keyboard shortcut. Shortcuts are suppressed while
// a text input has focus. It reports whether the key was consumed.
func (s *Studio) HandleKey(key string, inputFocused bool) bool {
	if inputFocused {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.detail.open {
		return false
	}

	centerX := s.viewportWidth / 2
	centerY := s.viewportHeight / 2

	switch key {
	case KeyZoomIn:
		s.detail.view = s.detail.view.ZoomBy(centerX, centerY, viewport.ZoomStep)
	case KeyZoomOut:
		s.detail.view = s.detail.view.ZoomBy(centerX, centerY, 1/viewport.ZoomStep)
	case KeyFit:
		s.detail.view = s.detail.view.Reset()
	case KeyActualSize:
		s.detail.view = s.detail.view.ActualSize(centerX, centerY)
	case KeyEscape:
		s.detail.open = false
	default:
		return false
	}
	return true
}

// SubmitEdit runs one turn of the conversational edit loop against the
// currently displayed image, which may itself be a prior edit. On
// success the new image becomes current, so edits chain. Failure is
// recorded as an assistant message and the conversation continues.
func (s *Studio) SubmitEdit(ctx context.Context, instruction string) (models.GeneratedImage, error) {
	s.mu.Lock()
	if !s.detail.open {
		s.mu.Unlock()
		return models.GeneratedImage{}, ErrNoArtworkOpen
	}
	current := s.detail.image
	s.mu.Unlock()

	s.detail.session.Append(session.Message{Role: session.RoleUser, Text: instruction})

	resp, err := s.api.Edit(ctx, models.EditRequest{
		ImageURL:        current.URL,
		EditInstruction: instruction,
		Style:           current.Style,
	})
	if err != nil {
		s.detail.session.Append(session.Message{
			Role: session.RoleAssistant,
			Text: err.Error(),
		})
		return models.GeneratedImage{}, err
	}

	s.detail.session.Append(session.Message{
		Role:     session.RoleAssistant,
		Text:     "Here is the edited artwork.",
		ImageURL: resp.Image.URL,
	})

	s.mu.Lock()
	s.detail.image = resp.Image
	s.gallery = append([]models.GeneratedImage{resp.Image}, s.gallery...)
	s.mu.Unlock()

	return resp.Image, nil
}
