package domain

// CharacterStatus tracks training of a character reference.
type CharacterStatus string

const (
	CharacterStatusNotReady   CharacterStatus = "not_ready"
	CharacterStatusQueued     CharacterStatus = "queued"
	CharacterStatusInProgress CharacterStatus = "in_progress"
	CharacterStatusCompleted  CharacterStatus = "completed"
	CharacterStatusFailed     CharacterStatus = "failed"
)

// MaxCharacterImages is the upper bound on source images per character.
const MaxCharacterImages = 5

// Character is a stored reference that biases later generations toward a
// consistent subject. It is referenced from image generation by ID.
type Character struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Status       CharacterStatus `json:"status"`
	ThumbnailURL string          `json:"thumbnail_url,omitempty"`
	InputImages  []InputImage    `json:"input_images,omitempty"`
	CreatedAt    string          `json:"created_at"`
}

// CharacterPage is one page of the character listing.
type CharacterPage struct {
	Items    []Character `json:"items"`
	Total    int         `json:"total"`
	Page     int         `json:"page"`
	PageSize int         `json:"page_size"`
}

// InputImage is the provider's shape for image inputs. Type is always
// "image_url".
type InputImage struct {
	Type     string `json:"type"`
	ImageURL string `json:"image_url"`
}

// InputImageType is the only supported InputImage type.
const InputImageType = "image_url"

// NewInputImage wraps a URL in the provider's input image shape.
func NewInputImage(url string) InputImage {
	return InputImage{Type: InputImageType, ImageURL: url}
}
