package models

// GeneratedImage is a persisted artwork. It is never stored as a record
// of its own: id, style slug and creation time are reconstructed from
// the storage key, so Prompt may be empty for listed images.
type GeneratedImage struct {
	ID        string `json:"id"`
	URL       string `json:"url"`
	Prompt    string `json:"prompt"`
	Style     string `json:"style"`
	CreatedAt string `json:"createdAt"`
}
