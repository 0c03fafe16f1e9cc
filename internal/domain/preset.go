package domain

// Style is a Soul image style preset.
type Style struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	PreviewURL  string `json:"preview_url,omitempty"`
}

// Motion is a DoP video motion preset.
type Motion struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Description   string `json:"description"`
	PreviewURL    string `json:"preview_url,omitempty"`
	StartEndFrame bool   `json:"start_end_frame"`
}
