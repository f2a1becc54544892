// Package artstore persists normalized artworks to blob storage and
// reconstructs their metadata from the storage key grammar.
package artstore

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"frame-art-backend/internal/models"
)

// ListCap bounds a listing to the most recent artworks.
const ListCap = 100

// ErrNotFound means no stored key matched the requested id.
var ErrNotFound = errors.New("artwork not found")

// ObjectStorage is the blob surface the store needs. Implemented by
// supabase.StorageClient.
type ObjectStorage interface {
	Upload(key string, data []byte, contentType string) (string, error)
	List(prefix string) ([]string, error)
	Remove(key string) error
	PublicURL(key string) string
}

type Store struct {
	storage ObjectStorage
	logger  *slog.Logger
	now     func() time.Time
}

func New(storage ObjectStorage, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		storage: storage,
		logger:  logger,
		now:     time.Now,
	}
}

// Save uploads a normalized PNG under a freshly minted key and returns
// the record with the literal (unsanitized) style label and prompt.
func (s *Store) Save(png []byte, styleLabel, promptText string) (models.GeneratedImage, error) {
	id := newID()
	createdAt := s.now()
	key := EncodeKey(id, Slugify(styleLabel), createdAt.UnixMilli())

	url, err := s.storage.Upload(key, png, "image/png")
	if err != nil {
		return models.GeneratedImage{}, fmt.Errorf("failed to save artwork: %w", err)
	}

	s.logger.Info("artwork saved", "key", key, "bytes", len(png))

	return models.GeneratedImage{
		ID:        id,
		URL:       url,
		Prompt:    promptText,
		Style:     styleLabel,
		CreatedAt: createdAt.UTC().Format(time.RFC3339Nano),
	}, nil
}

// List enumerates every artwork under the prefix, newest first, capped
// at ListCap. The result is always a fresh read; nothing is cached.
func (s *Store) List() ([]models.GeneratedImage, error) {
	keys, err := s.storage.List(KeyPrefix)
	if err != nil {
		return nil, fmt.Errorf("failed to list artworks: %w", err)
	}

	type entry struct {
		image  models.GeneratedImage
		millis int64
	}

	entries := make([]entry, 0, len(keys))
	for _, key := range keys {
		if !strings.HasSuffix(key, ".png") {
			continue
		}
		id, slug, millis, err := DecodeKey(key)
		if err != nil {
			s.logger.Warn("skipping unparseable artwork key", "key", key, "error", err)
			continue
		}
		entries = append(entries, entry{
			image: models.GeneratedImage{
				ID:        id,
				URL:       s.storage.PublicURL(key),
				Style:     StyleLabel(slug),
				CreatedAt: time.UnixMilli(millis).UTC().Format(time.RFC3339Nano),
			},
			millis: millis,
		})
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].millis > entries[j].millis
	})
	if len(entries) > ListCap {
		entries = entries[:ListCap]
	}

	images := make([]models.GeneratedImage, len(entries))
	for i, e := range entries {
		images[i] = e.image
	}
	return images, nil
}

// Delete removes the first stored object whose key contains id as a
// substring. Ids are 8 random hex characters, which keeps accidental
// substring collisions between distinct ids negligible; the match is
// deliberately not tightened to an exact prefix.
func (s *Store) Delete(id string) error {
	if id == "" {
		return ErrNotFound
	}

	keys, err := s.storage.List(KeyPrefix)
	if err != nil {
		return fmt.Errorf("failed to list artworks: %w", err)
	}

	for _, key := range keys {
		if strings.Contains(key, id) {
			if err := s.storage.Remove(key); err != nil {
				return fmt.Errorf("failed to delete artwork: %w", err)
			}
			s.logger.Info("artwork deleted", "key", key)
			return nil
		}
	}

	return ErrNotFound
}

// newID mints a short random token: the first 8 hex characters of a
// random UUID.
func newID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
}
