package gemini

import "fmt"

// ImageResult is the single internal type every synthesis response is
// normalized to at the parsing boundary. Downstream code never
// re-inspects provider response shapes.
type ImageResult struct {
	Data     []byte
	MimeType string
}

// UpstreamError is a non-2xx response from the Gemini API.
type UpstreamError struct {
	StatusCode int
	Body       string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("gemini API returned status %d: %s", e.StatusCode, truncate(e.Body, 500))
}

// NoImageError is a well-formed response that carried no image payload.
// Explanation holds any text the model returned instead.
type NoImageError struct {
	Explanation string
}

func (e *NoImageError) Error() string {
	if e.Explanation == "" {
		return "gemini API returned no image"
	}
	return fmt.Sprintf("gemini API returned no image: %s", truncate(e.Explanation, 500))
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

type generateContentRequest struct {
	Contents         []content         `json:"contents"`
	GenerationConfig *generationConfig `json:"generationConfig,omitempty"`
}

type generationConfig struct {
	Temperature        float64      `json:"temperature,omitempty"`
	MaxOutputTokens    int          `json:"maxOutputTokens,omitempty"`
	ResponseModalities []string     `json:"responseModalities,omitempty"`
	ImageConfig        *imageConfig `json:"imageConfig,omitempty"`
}

type imageConfig struct {
	AspectRatio string `json:"aspectRatio,omitempty"`
	ImageSize   string `json:"imageSize,omitempty"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type part struct {
	Text       string `json:"text,omitempty"`
	InlineData *blob  `json:"inlineData,omitempty"`
}

type blob struct {
	MimeType string `json:"mimeType"`
	Data     string `json:"data"`
}

type generateContentResponse struct {
	Candidates []candidate `json:"candidates"`
}

type candidate struct {
	Content content `json:"content"`
}
