package higgsfield

import (
	"slices"
	"strings"

	"higgsfield-mcp/internal/domain"
)

// Generation endpoints take their arguments wrapped in a "params" object.
type paramsEnvelope[T any] struct {
	Params T `json:"params"`
}

type webhookParams struct {
	URL    string `json:"url"`
	Secret string `json:"secret"`
}

type imageParams struct {
	Prompt            string         `json:"prompt"`
	WidthAndHeight    string         `json:"width_and_height"`
	EnhancePrompt     bool           `json:"enhance_prompt"`
	Quality           string         `json:"quality"`
	BatchSize         int            `json:"batch_size"`
	CustomReferenceID string         `json:"custom_reference_id,omitempty"`
	StyleID           string         `json:"style_id,omitempty"`
	Webhook           *webhookParams `json:"webhook,omitempty"`
}

// videoParams must keep the image inside input_images. A bare image_url field
// is rejected by the provider with a 422.
type videoParams struct {
	Prompt      string              `json:"prompt"`
	InputImages []domain.InputImage `json:"input_images"`
	MotionID    string              `json:"motion_id"`
	Quality     string              `json:"quality"`
	Webhook     *webhookParams      `json:"webhook,omitempty"`
}

type characterRequest struct {
	Name        string              `json:"name"`
	InputImages []domain.InputImage `json:"input_images"`
}

func buildImageParams(req ImageRequest) (imageParams, error) {
	prompt := strings.TrimSpace(req.Prompt)
	if prompt == "" {
		return imageParams{}, invalidArgument("prompt is required")
	}
	quality := strings.TrimSpace(req.Quality)
	if quality == "" {
		quality = DefaultImageQuality
	}
	if !slices.Contains(imageQualities, quality) {
		return imageParams{}, invalidArgument("quality must be one of %s, got %q", strings.Join(imageQualities, ", "), quality)
	}
	size := strings.TrimSpace(req.WidthAndHeight)
	if size == "" {
		size = DefaultImageSize
	}
	batch := req.BatchSize
	if batch == 0 {
		batch = 1
	}
	if !slices.Contains(batchSizes, batch) {
		return imageParams{}, invalidArgument("batch_size must be 1 or 4, got %d", batch)
	}
	return imageParams{
		Prompt:            prompt,
		WidthAndHeight:    size,
		EnhancePrompt:     req.EnhancePrompt,
		Quality:           quality,
		BatchSize:         batch,
		CustomReferenceID: strings.TrimSpace(req.CustomReferenceID),
		StyleID:           strings.TrimSpace(req.StyleID),
		Webhook:           buildWebhook(req.Webhook),
	}, nil
}

func buildVideoParams(req VideoRequest) (videoParams, error) {
	imageURL := strings.TrimSpace(req.ImageURL)
	if imageURL == "" {
		return videoParams{}, invalidArgument("image_url is required")
	}
	motionID := strings.TrimSpace(req.MotionID)
	if motionID == "" {
		return videoParams{}, invalidArgument("motion_id is required")
	}
	prompt := strings.TrimSpace(req.Prompt)
	if prompt == "" {
		prompt = DefaultVideoPrompt
	}
	quality := strings.TrimSpace(req.Quality)
	if quality == "" {
		quality = DefaultVideoQuality
	}
	if !slices.Contains(videoQualities, quality) {
		return videoParams{}, invalidArgument("quality must be one of %s, got %q", strings.Join(videoQualities, ", "), quality)
	}
	return videoParams{
		Prompt:      prompt,
		InputImages: []domain.InputImage{domain.NewInputImage(imageURL)},
		MotionID:    motionID,
		Quality:     quality,
		Webhook:     buildWebhook(req.Webhook),
	}, nil
}

func buildCharacterRequest(name string, imageURLs []string) (characterRequest, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return characterRequest{}, invalidArgument("name is required")
	}
	if len(imageURLs) == 0 || len(imageURLs) > domain.MaxCharacterImages {
		return characterRequest{}, invalidArgument("image_urls must contain 1 to %d urls, got %d", domain.MaxCharacterImages, len(imageURLs))
	}
	images := make([]domain.InputImage, 0, len(imageURLs))
	for i, raw := range imageURLs {
		u := strings.TrimSpace(raw)
		if u == "" {
			return characterRequest{}, invalidArgument("image_urls[%d] is empty", i)
		}
		images = append(images, domain.NewInputImage(u))
	}
	return characterRequest{Name: name, InputImages: images}, nil
}

func buildWebhook(w *Webhook) *webhookParams {
	if w == nil || strings.TrimSpace(w.URL) == "" {
		return nil
	}
	return &webhookParams{URL: strings.TrimSpace(w.URL), Secret: w.Secret}
}
