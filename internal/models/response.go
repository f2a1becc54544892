package models

type GenerateResponse struct {
	Image      GeneratedImage `json:"image"`
	Prompt     string         `json:"prompt"`
	Dimensions Dimensions     `json:"dimensions"`
}

type Dimensions struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

type EditResponse struct {
	Image GeneratedImage `json:"image"`
}

type ImagesResponse struct {
	Images []GeneratedImage `json:"images"`
}

// ImagesErrorResponse keeps the images key present on failure so the
// gallery can render a degraded but valid empty list.
type ImagesErrorResponse struct {
	Error  string           `json:"error"`
	Images []GeneratedImage `json:"images"`
}

type SaveImageResponse struct {
	Image GeneratedImage `json:"image"`
}

type DeleteResponse struct {
	Success bool `json:"success"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

type HealthResponse struct {
	Status string `json:"status"`
}

type StylesResponse struct {
	Styles []StyleResponse `json:"styles"`
}

type StyleResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Category    string `json:"category"`
	Description string `json:"description"`
}
