package models

type GenerateRequest struct {
	// Style is a catalog id or display name; unknown values are used
	// verbatim as the style prompt fragment.
	Style         string `json:"style" binding:"required"`
	UserPrompt    string `json:"userPrompt,omitempty"`
	UseTealAccent bool   `json:"useTealAccent,omitempty"`
}

type EditRequest struct {
	ImageURL        string `json:"imageUrl" binding:"required"`
	EditInstruction string `json:"editInstruction" binding:"required"`
	Style           string `json:"style,omitempty"`
}

type SaveImageRequest struct {
	// ImageBase64 accepts raw base64 or a data URL.
	ImageBase64 string `json:"imageBase64" binding:"required"`
	Style       string `json:"style,omitempty"`
	Prompt      string `json:"prompt,omitempty"`
}
