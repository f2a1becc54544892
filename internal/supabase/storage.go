// Package supabase wraps the Supabase storage API behind the small
// object-storage surface the artwork store needs.
package supabase

import (
	"bytes"
	"fmt"
	"strings"

	storage "github.com/supabase-community/storage-go"
)

// listPageSize is the page size used when walking a prefix.
const listPageSize = 100

type StorageClient struct {
	client  *storage.Client
	bucket  string
	baseURL string
}

func NewStorageClient(supabaseURL, serviceKey, bucket string) (*StorageClient, error) {
	baseURL := strings.TrimRight(supabaseURL, "/")
	if baseURL == "" {
		return nil, fmt.Errorf("supabase url is required")
	}
	client := storage.NewClient(baseURL+"/storage/v1", serviceKey, nil)

	return &StorageClient{
		client:  client,
		bucket:  bucket,
		baseURL: baseURL,
	}, nil
}

// Upload writes publicly readable bytes under key and returns the
// public URL.
func (s *StorageClient) Upload(key string, data []byte, contentType string) (string, error) {
	upsert := true
	_, err := s.client.UploadFile(s.bucket, key, bytes.NewReader(data), storage.FileOptions{
		ContentType: &contentType,
		Upsert:      &upsert,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload file: %w", err)
	}

	return s.PublicURL(key), nil
}

// List walks every object under prefix, following pagination until a
// short page, and returns full object keys.
func (s *StorageClient) List(prefix string) ([]string, error) {
	keys := []string{}
	offset := 0
	for {
		files, err := s.client.ListFiles(s.bucket, prefix, storage.FileSearchOptions{
			Limit:  listPageSize,
			Offset: offset,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to list files: %w", err)
		}

		for _, file := range files {
			// ListFiles returns names relative to the prefix folder.
			keys = append(keys, prefix+"/"+file.Name)
		}

		if len(files) < listPageSize {
			return keys, nil
		}
		offset += listPageSize
	}
}

func (s *StorageClient) Remove(key string) error {
	_, err := s.client.RemoveFile(s.bucket, []string{key})
	if err != nil {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

func (s *StorageClient) PublicURL(key string) string {
	return fmt.Sprintf("%s/storage/v1/object/public/%s/%s", s.baseURL, s.bucket, key)
}
