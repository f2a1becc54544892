package studio_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"frame-art-backend/internal/models"
	"frame-art-backend/internal/queue"
	"frame-art-backend/internal/session"
	"frame-art-backend/internal/viewport"
	"frame-art-backend/pkg/studio"
)

type fakeAPI struct {
	mu sync.Mutex

	generate    func(models.GenerateRequest) (*models.GenerateResponse, error)
	edit        func(models.EditRequest) (*models.EditResponse, error)
	listImages  []models.GeneratedImage
	listErr     error
	deleteErr   error
	deletedIDs  []string
	editReqs    []models.EditRequest
	generateReq []models.GenerateRequest
}

func (f *fakeAPI) Generate(_ context.Context, req models.GenerateRequest) (*models.GenerateResponse, error) {
	f.mu.Lock()
	f.generateReq = append(f.generateReq, req)
	f.mu.Unlock()
	if f.generate != nil {
		return f.generate(req)
	}
	return &models.GenerateResponse{Image: models.GeneratedImage{ID: "gen00001", Style: req.Style}}, nil
}

func (f *fakeAPI) Edit(_ context.Context, req models.EditRequest) (*models.EditResponse, error) {
	f.mu.Lock()
	f.editReqs = append(f.editReqs, req)
	f.mu.Unlock()
	if f.edit != nil {
		return f.edit(req)
	}
	return &models.EditResponse{Image: models.GeneratedImage{ID: "edit0001"}}, nil
}

func (f *fakeAPI) ListImages(context.Context) ([]models.GeneratedImage, error) {
	return f.listImages, f.listErr
}

func (f *fakeAPI) DeleteImage(_ context.Context, id string) error {
	f.mu.Lock()
	f.deletedIDs = append(f.deletedIDs, id)
	f.mu.Unlock()
	return f.deleteErr
}

func TestSubmitGenerationRequiresStyle(t *testing.T) {
	s := studio.New(&fakeAPI{}, nil)

	_, err := s.SubmitGeneration(context.Background(), "mountains", false)
	assert.ErrorIs(t, err, studio.ErrNoStyleSelected)
}

func TestSelectStyleUnknown(t *testing.T) {
	s := studio.New(&fakeAPI{}, nil)
	assert.Error(t, s.SelectStyle("vaporwave"))

	_, chosen := s.SelectedStyle()
	assert.False(t, chosen)
}

func TestGenerationPrependsGallery(t *testing.T) {
	api := &fakeAPI{}
	s := studio.New(api, nil)
	require.NoError(t, s.SelectStyle("Dawn Glow"))

	_, err := s.SubmitGeneration(context.Background(), "a quiet lake", true)
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		return len(s.Gallery()) == 1
	}, time.Second, 5*time.Millisecond)

	assert.Equal(t, "gen00001", s.Gallery()[0].ID)
	assert.Empty(t, s.QueueItems())

	api.mu.Lock()
	defer api.mu.Unlock()
	require.Len(t, api.generateReq, 1)
	assert.Equal(t, "dawn-glow", api.generateReq[0].Style)
	assert.Equal(t, "a quiet lake", api.generateReq[0].UserPrompt)
	assert.True(t, api.generateReq[0].UseTealAccent)
}

func TestGenerationAdmissionBound(t *testing.T) {
	release := make(chan struct{})
	api := &fakeAPI{generate: func(models.GenerateRequest) (*models.GenerateResponse, error) {
		<-release
		return &models.GenerateResponse{Image: models.GeneratedImage{ID: "gen00001"}}, nil
	}}
	defer close(release)

	s := studio.New(api, nil)
	require.NoError(t, s.SelectStyle("ink-wash"))

	for i := 0; i < queue.DefaultBound; i++ {
		_, err := s.SubmitGeneration(context.Background(), "", false)
		require.NoError(t, err)
	}

	_, err := s.SubmitGeneration(context.Background(), "", false)
	assert.ErrorIs(t, err, queue.ErrQueueFull)
}

func TestFailedGenerationDismissable(t *testing.T) {
	api := &fakeAPI{generate: func(models.GenerateRequest) (*models.GenerateResponse, error) {
		return nil, errors.New("status 500: image synthesis failed")
	}}
	s := studio.New(api, nil)
	require.NoError(t, s.SelectStyle("ink-wash"))

	id, err := s.SubmitGeneration(context.Background(), "", false)
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		items := s.QueueItems()
		return len(items) == 1 && items[0].Status == queue.StatusFailed
	}, time.Second, 5*time.Millisecond)

	assert.Empty(t, s.Gallery())
	assert.True(t, s.DismissFailed(id))
	assert.Empty(t, s.QueueItems())
}

func TestRefreshReplacesGallery(t *testing.T) {
	api := &fakeAPI{listImages: []models.GeneratedImage{
		{ID: "aaaa1111"}, {ID: "bbbb2222"},
	}}
	s := studio.New(api, nil)

	require.NoError(t, s.Refresh(context.Background()))

	gallery := s.Gallery()
	require.Len(t, gallery, 2)
	assert.Equal(t, "aaaa1111", gallery[0].ID)
}

func TestRefreshFailureKeepsGallery(t *testing.T) {
	api := &fakeAPI{listImages: []models.GeneratedImage{{ID: "aaaa1111"}}}
	s := studio.New(api, nil)
	require.NoError(t, s.Refresh(context.Background()))

	api.listErr = errors.New("storage down")
	assert.Error(t, s.Refresh(context.Background()))
	assert.Len(t, s.Gallery(), 1)
}

func TestDeleteRemovesLocally(t *testing.T) {
	api := &fakeAPI{listImages: []models.GeneratedImage{
		{ID: "aaaa1111"}, {ID: "bbbb2222"},
	}}
	s := studio.New(api, nil)
	require.NoError(t, s.Refresh(context.Background()))

	require.NoError(t, s.Delete(context.Background(), "aaaa1111"))

	gallery := s.Gallery()
	require.Len(t, gallery, 1)
	assert.Equal(t, "bbbb2222", gallery[0].ID)
	assert.Equal(t, []string{"aaaa1111"}, api.deletedIDs)
}

func TestDeleteFailureKeepsGallery(t *testing.T) {
	api := &fakeAPI{
		listImages: []models.GeneratedImage{{ID: "aaaa1111"}},
		deleteErr:  errors.New("storage down"),
	}
	s := studio.New(api, nil)
	require.NoError(t, s.Refresh(context.Background()))

	assert.Error(t, s.Delete(context.Background(), "aaaa1111"))
	assert.Len(t, s.Gallery(), 1)
}

func TestOpenFitsView(t *testing.T) {
	s := studio.New(&fakeAPI{}, nil)
	s.SetViewportSize(1920, 1080)

	s.Open(models.GeneratedImage{ID: "aaaa1111"})

	current, open := s.Current()
	require.True(t, open)
	assert.Equal(t, "aaaa1111", current.ID)

	view := s.View()
	assert.True(t, view.IsFit())
	assert.InDelta(t, viewport.FitScale(1920, 1080), view.Scale, 1e-9)
}

func TestOpenDifferentArtworkResetsConversation(t *testing.T) {
	s := studio.New(&fakeAPI{}, nil)
	s.Open(models.GeneratedImage{ID: "aaaa1111", URL: "https://example.com/a.png"})

	_, err := s.SubmitEdit(context.Background(), "make it warmer")
	require.NoError(t, err)
	require.NotEmpty(t, s.Conversation())

	s.Open(models.GeneratedImage{ID: "bbbb2222"})
	assert.Empty(t, s.Conversation())
}

func TestSubmitEditChains(t *testing.T) {
	calls := 0
	api := &fakeAPI{edit: func(req models.EditRequest) (*models.EditResponse, error) {
		calls++
		return &models.EditResponse{Image: models.GeneratedImage{
			ID:    "edit000" + string(rune('0'+calls)),
			URL:   "https://example.com/edit.png",
			Style: req.Style,
		}}, nil
	}}
	s := studio.New(api, nil)
	s.Open(models.GeneratedImage{ID: "orig0001", URL: "https://example.com/orig.png", Style: "Dawn Glow"})

	first, err := s.SubmitEdit(context.Background(), "warmer light")
	require.NoError(t, err)

	_, err = s.SubmitEdit(context.Background(), "now add mist")
	require.NoError(t, err)

	// The second edit runs against the first edit's result.
	require.Len(t, api.editReqs, 2)
	assert.Equal(t, "https://example.com/orig.png", api.editReqs[0].ImageURL)
	assert.Equal(t, first.URL, api.editReqs[1].ImageURL)
	assert.Equal(t, "Dawn Glow", api.editReqs[0].Style)

	current, _ := s.Current()
	assert.Equal(t, "edit0002", current.ID)

	msgs := s.Conversation()
	require.Len(t, msgs, 4)
	assert.Equal(t, session.RoleUser, msgs[0].Role)
	assert.Equal(t, "warmer light", msgs[0].Text)
	assert.Equal(t, session.RoleAssistant, msgs[1].Role)
	assert.NotEmpty(t, msgs[1].ImageURL)

	// Both edits land in the gallery, newest first.
	gallery := s.Gallery()
	require.Len(t, gallery, 2)
	assert.Equal(t, "edit0002", gallery[0].ID)
}

func TestSubmitEditFailureRecordedInConversation(t *testing.T) {
	api := &fakeAPI{edit: func(models.EditRequest) (*models.EditResponse, error) {
		return nil, errors.New("status 500: no image returned (the model declined)")
	}}
	s := studio.New(api, nil)
	s.Open(models.GeneratedImage{ID: "orig0001", URL: "https://example.com/orig.png"})

	_, err := s.SubmitEdit(context.Background(), "warmer light")
	require.Error(t, err)

	current, _ := s.Current()
	assert.Equal(t, "orig0001", current.ID)
	assert.Empty(t, s.Gallery())

	msgs := s.Conversation()
	require.Len(t, msgs, 2)
	assert.Equal(t, session.RoleAssistant, msgs[1].Role)
	assert.Contains(t, msgs[1].Text, "no image returned")
}

func TestSubmitEditRequiresOpenArtwork(t *testing.T) {
	s := studio.New(&fakeAPI{}, nil)

	_, err := s.SubmitEdit(context.Background(), "warmer light")
	assert.ErrorIs(t, err, studio.ErrNoArtworkOpen)
}

func TestHandleKeyShortcuts(t *testing.T) {
	s := studio.New(&fakeAPI{}, nil)
	s.Open(models.GeneratedImage{ID: "aaaa1111"})
	fitted := s.View().Scale

	require.True(t, s.HandleKey(studio.KeyZoomIn, false))
	assert.InDelta(t, fitted*viewport.ZoomStep, s.View().Scale, 1e-9)

	require.True(t, s.HandleKey(studio.KeyActualSize, false))
	assert.InDelta(t, 1.0, s.View().Scale, 1e-9)

	require.True(t, s.HandleKey(studio.KeyFit, false))
	assert.True(t, s.View().IsFit())

	assert.False(t, s.HandleKey("x", false))
}

func TestHandleKeySuppressedWhileTyping(t *testing.T) {
	s := studio.New(&fakeAPI{}, nil)
	s.Open(models.GeneratedImage{ID: "aaaa1111"})

	assert.False(t, s.HandleKey(studio.KeyZoomIn, true))
	assert.True(t, s.View().IsFit())
}

func TestEscapeClosesDetail(t *testing.T) {
	s := studio.New(&fakeAPI{}, nil)
	s.Open(models.GeneratedImage{ID: "aaaa1111"})

	require.True(t, s.HandleKey(studio.KeyEscape, false))
	_, open := s.Current()
	assert.False(t, open)

	assert.False(t, s.HandleKey(studio.KeyEscape, false))
}
