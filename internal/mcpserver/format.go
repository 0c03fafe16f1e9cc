package mcpserver

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"higgsfield-mcp/internal/domain"
	"higgsfield-mcp/internal/providers/higgsfield"
)

type generationStarted struct {
	Success   bool         `json:"success"`
	JobSetID  string       `json:"job_set_id"`
	JobType   string       `json:"job_type"`
	Status    string       `json:"status"`
	CreatedAt string       `json:"created_at"`
	Jobs      []domain.Job `json:"jobs"`
}

type generationStatus struct {
	Success   bool        `json:"success"`
	JobSetID  string      `json:"job_set_id"`
	Type      string      `json:"type"`
	CreatedAt string      `json:"created_at"`
	Status    string      `json:"status,omitempty"`
	Jobs      []jobStatus `json:"jobs"`
	Message   string      `json:"message"`
}

type jobStatus struct {
	JobID   string      `json:"job_id"`
	Status  string      `json:"status"`
	Results *jobResults `json:"results,omitempty"`
}

type jobResults struct {
	PreviewURL     string `json:"preview_url"`
	FullQualityURL string `json:"full_quality_url"`
	Type           string `json:"type"`
}

type characterCreated struct {
	Success     bool   `json:"success"`
	CharacterID string `json:"character_id"`
	Name        string `json:"name"`
	Status      string `json:"status"`
	CreatedAt   string `json:"created_at"`
	Message     string `json:"message"`
	Note        string `json:"note"`
}

type characterSummary struct {
	CharacterID  string `json:"character_id"`
	Name         string `json:"name"`
	Status       string `json:"status"`
	ThumbnailURL string `json:"thumbnail_url,omitempty"`
	CreatedAt    string `json:"created_at"`
}

type characterList struct {
	Success    bool               `json:"success"`
	Total      int                `json:"total"`
	Characters []characterSummary `json:"characters"`
	Message    string             `json:"message"`
}

type characterDetail struct {
	Success     bool     `json:"success"`
	CharacterID string   `json:"character_id"`
	Name        string   `json:"name"`
	Status      string   `json:"status"`
	ImageURLs   []string `json:"image_urls,omitempty"`
	CreatedAt   string   `json:"created_at"`
}

type failure struct {
	Success    bool   `json:"success"`
	Error      string `json:"error"`
	ErrorType  string `json:"error_type"`
	StatusCode int    `json:"status_code,omitempty"`
	Message    string `json:"message"`
}

func newGenerationStarted(set *domain.JobSet) generationStarted {
	jobs := set.Jobs
	if jobs == nil {
		jobs = []domain.Job{}
	}
	return generationStarted{
		Success:   true,
		JobSetID:  set.ID,
		JobType:   set.Type,
		Status:    "Job started - use get_generation_status to check completion",
		CreatedAt: set.CreatedAt,
		Jobs:      jobs,
	}
}

func newGenerationStatus(set *domain.JobSet) generationStatus {
	out := generationStatus{
		Success:   true,
		JobSetID:  set.ID,
		Type:      set.Type,
		CreatedAt: set.CreatedAt,
		Jobs:      make([]jobStatus, 0, len(set.Jobs)),
	}
	for _, job := range set.Jobs {
		view := jobStatus{JobID: job.ID, Status: string(job.Status)}
		if job.Results != nil {
			view.Results = &jobResults{
				PreviewURL:     job.Results.Min.URL,
				FullQualityURL: job.Results.Raw.URL,
				Type:           job.Results.Raw.Type,
			}
		}
		out.Jobs = append(out.Jobs, view)
	}

	summary := set.Summary()
	out.Status = string(summary)
	switch {
	case len(set.Jobs) == 0:
		out.Message = "The job set has no jobs."
	case summary == domain.JobStatusCompleted:
		out.Message = "Generation complete. Download URLs are in each job's results."
	case summary == domain.JobStatusFailed:
		out.Message = "One or more jobs failed."
	case summary == domain.JobStatusNSFW:
		out.Message = "Content filter triggered - regenerate with a different prompt."
	default:
		out.Message = "Still processing - check again in about 10 seconds."
	}
	return out
}

func summarizeCharacters(items []domain.Character) []characterSummary {
	out := make([]characterSummary, 0, len(items))
	for _, item := range items {
		out = append(out, characterSummary{
			CharacterID:  item.ID,
			Name:         item.Name,
			Status:       string(item.Status),
			ThumbnailURL: item.ThumbnailURL,
			CreatedAt:    item.CreatedAt,
		})
	}
	return out
}

func newCharacterDetail(c *domain.Character) characterDetail {
	out := characterDetail{
		Success:     true,
		CharacterID: c.ID,
		Name:        c.Name,
		Status:      string(c.Status),
		CreatedAt:   c.CreatedAt,
	}
	for _, img := range c.InputImages {
		out.ImageURLs = append(out.ImageURLs, img.ImageURL)
	}
	return out
}

func marshal(v any) (string, error) {
	raw, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode result: %w", err)
	}
	return string(raw), nil
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	text, err := marshal(v)
	if err != nil {
		return nil, err
	}
	return mcp.NewToolResultText(text), nil
}

// errorResult reports err to the caller without interpreting it. Provider
// status codes and messages are kept as they were.
func errorResult(message string, err error) *mcp.CallToolResult {
	body := failure{
		Error:     err.Error(),
		ErrorType: errorType(err),
		Message:   message,
	}
	if apiErr, ok := higgsfield.AsAPIError(err); ok {
		body.StatusCode = apiErr.StatusCode
	}
	text, mErr := marshal(body)
	if mErr != nil {
		text = err.Error()
	}
	return mcp.NewToolResultError(text)
}

func errorType(err error) string {
	switch {
	case errors.Is(err, domain.ErrInvalidArgument):
		return "invalid_argument"
	case errors.Is(err, domain.ErrUnauthorized):
		return "unauthorized"
	case errors.Is(err, domain.ErrInsufficientBalance):
		return "insufficient_balance"
	case errors.Is(err, domain.ErrValidation):
		return "validation"
	case errors.Is(err, domain.ErrNotFound):
		return "not_found"
	case errors.Is(err, domain.ErrRateLimited):
		return "rate_limited"
	default:
		return "provider_failure"
	}
}
