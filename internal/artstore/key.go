package artstore

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// KeyPrefix is the single flat prefix all artworks live under. The key
// is the only index: id, style slug and creation time are encoded in it.
const KeyPrefix = "frame-art"

var nonSlugChars = regexp.MustCompile(`[^a-z0-9-]`)

// Slugify lowercases a style label and replaces every character
// outside [a-z0-9-] with a hyphen.
func Slugify(label string) string {
	return nonSlugChars.ReplaceAllString(strings.ToLower(label), "-")
}

// StyleLabel reconstructs a display label from a slug by replacing
// separators with spaces.
func StyleLabel(slug string) string {
	return strings.NewReplacer("-", " ", "_", " ").Replace(slug)
}

// EncodeKey composes the storage key frame-art/{id}_{slug}_{millis}.png.
func EncodeKey(id, slug string, epochMillis int64) string {
	return fmt.Sprintf("%s/%s_%s_%d.png", KeyPrefix, id, slug, epochMillis)
}

// DecodeKey inverts EncodeKey. The slug may itself contain underscores,
// so the first token is always the id, the last is always the
// timestamp, and everything between is rejoined as the slug.
func DecodeKey(key string) (id, slug string, epochMillis int64, err error) {
	name := strings.TrimPrefix(key, KeyPrefix+"/")
	name = strings.TrimSuffix(name, ".png")

	tokens := strings.Split(name, "_")
	if len(tokens) < 3 {
		return "", "", 0, fmt.Errorf("malformed artwork key %q", key)
	}

	epochMillis, err = strconv.ParseInt(tokens[len(tokens)-1], 10, 64)
	if err != nil {
		return "", "", 0, fmt.Errorf("malformed timestamp in artwork key %q: %w", key, err)
	}

	id = tokens[0]
	slug = strings.Join(tokens[1:len(tokens)-1], "_")
	return id, slug, epochMillis, nil
}
