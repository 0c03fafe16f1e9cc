package higgsfield

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"higgsfield-mcp/internal/domain"
	"higgsfield-mcp/internal/infra"
)

const (
	DefaultBaseURL = "https://platform.higgsfield.ai"

	// DefaultVideoPrompt fills in for a blank video prompt. The DoP endpoint
	// rejects payloads without a prompt.
	DefaultVideoPrompt = "Cinematic video with natural motion"

	DefaultImageQuality   = "1080p"
	DefaultImageSize      = "2048x1152"
	DefaultVideoQuality   = "standard"
	DefaultCharactersPage = 1
	DefaultCharactersSize = 20

	headerAPIKey = "hf-api-key"
	headerSecret = "hf-secret"
)

// ErrMissingCredentials indicates that the client was configured without a key pair.
var ErrMissingCredentials = fmt.Errorf("higgsfield: %w", domain.ErrMissingCredentials)

var (
	imageQualities = []string{"720p", "1080p"}
	videoQualities = []string{"lite", "turbo", "standard"}
	batchSizes     = []int{1, 4}
)

// Options configures the Higgsfield platform client.
type Options struct {
	APIKey         string
	Secret         string
	BaseURL        string
	HTTPClient     *http.Client
	Logger         *infra.Logger
	RequestTimeout time.Duration
}

// Client performs HTTP calls to the Higgsfield platform API. Every method
// issues exactly one request; nothing is retried or cached.
type Client struct {
	apiKey     string
	secret     string
	baseURL    string
	httpClient *http.Client
	logger     *infra.Logger
}

// Webhook asks the provider to notify a URL when the job set finishes.
type Webhook struct {
	URL    string
	Secret string
}

// ImageRequest captures the inputs of Soul text-to-image generation.
type ImageRequest struct {
	Prompt            string
	Quality           string
	CustomReferenceID string
	StyleID           string
	WidthAndHeight    string
	BatchSize         int
	EnhancePrompt     bool
	Webhook           *Webhook
}

// VideoRequest captures the inputs of DoP image-to-video generation.
type VideoRequest struct {
	ImageURL string
	MotionID string
	Prompt   string
	Quality  string
	Webhook  *Webhook
}

// NewClient constructs a client with sane defaults and injected dependencies.
func NewClient(opts Options) (*Client, error) {
	apiKey := strings.TrimSpace(opts.APIKey)
	secret := strings.TrimSpace(opts.Secret)
	if apiKey == "" || secret == "" {
		return nil, ErrMissingCredentials
	}
	httpClient := opts.HTTPClient
	if httpClient == nil {
		timeout := opts.RequestTimeout
		if timeout <= 0 {
			timeout = 30 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	baseURL := strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	logger := opts.Logger
	if logger == nil {
		logger = infra.NopLogger()
	}
	return &Client{
		apiKey:     apiKey,
		secret:     secret,
		baseURL:    baseURL,
		httpClient: httpClient,
		logger:     logger,
	}, nil
}

// BaseURL returns the configured API root.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// GenerateImage starts a Soul text-to-image job set.
func (c *Client) GenerateImage(ctx context.Context, req ImageRequest) (*domain.JobSet, error) {
	payload, err := buildImageParams(req)
	if err != nil {
		return nil, err
	}
	var out domain.JobSet
	if err := c.do(ctx, http.MethodPost, "/v1/text2image/soul", nil, paramsEnvelope[imageParams]{Params: payload}, &out); err != nil {
		return nil, err
	}
	c.logger.Debug().
		Str("job_set_id", out.ID).
		Str("quality", payload.Quality).
		Int("batch_size", payload.BatchSize).
		Msg("higgsfield: image job set created")
	return &out, nil
}

// GenerateVideo starts a DoP image-to-video job set.
func (c *Client) GenerateVideo(ctx context.Context, req VideoRequest) (*domain.JobSet, error) {
	payload, err := buildVideoParams(req)
	if err != nil {
		return nil, err
	}
	var out domain.JobSet
	if err := c.do(ctx, http.MethodPost, "/v1/image2video/dop", nil, paramsEnvelope[videoParams]{Params: payload}, &out); err != nil {
		return nil, err
	}
	c.logger.Debug().
		Str("job_set_id", out.ID).
		Str("motion_id", payload.MotionID).
		Str("quality", payload.Quality).
		Msg("higgsfield: video job set created")
	return &out, nil
}

// CreateCharacter registers a character reference from 1 to 5 face images.
func (c *Client) CreateCharacter(ctx context.Context, name string, imageURLs []string) (*domain.Character, error) {
	payload, err := buildCharacterRequest(name, imageURLs)
	if err != nil {
		return nil, err
	}
	var out domain.Character
	if err := c.do(ctx, http.MethodPost, "/v1/custom-references", nil, payload, &out); err != nil {
		return nil, err
	}
	c.logger.Debug().
		Str("character_id", out.ID).
		Int("images", len(payload.InputImages)).
		Msg("higgsfield: character reference created")
	return &out, nil
}

// GetJobSet returns the current state of a job set.
func (c *Client) GetJobSet(ctx context.Context, jobSetID string) (*domain.JobSet, error) {
	id, err := requireID("job_set_id", jobSetID)
	if err != nil {
		return nil, err
	}
	var out domain.JobSet
	if err := c.do(ctx, http.MethodGet, "/v1/job-sets/"+url.PathEscape(id), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListCharacters returns one page of the account's character references.
func (c *Client) ListCharacters(ctx context.Context, page, pageSize int) (*domain.CharacterPage, error) {
	if page <= 0 {
		page = DefaultCharactersPage
	}
	if pageSize <= 0 {
		pageSize = DefaultCharactersSize
	}
	query := url.Values{}
	query.Set("page", strconv.Itoa(page))
	query.Set("page_size", strconv.Itoa(pageSize))
	var out domain.CharacterPage
	if err := c.do(ctx, http.MethodGet, "/v1/custom-references/list", query, nil, &out); err != nil {
		return nil, err
	}
	if out.Page == 0 {
		out.Page = page
	}
	if out.PageSize == 0 {
		out.PageSize = pageSize
	}
	return &out, nil
}

// GetCharacter returns a single character reference including its source images.
func (c *Client) GetCharacter(ctx context.Context, characterID string) (*domain.Character, error) {
	id, err := requireID("character_id", characterID)
	if err != nil {
		return nil, err
	}
	var out domain.Character
	if err := c.do(ctx, http.MethodGet, "/v1/custom-references/"+url.PathEscape(id), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteCharacter removes a character reference.
func (c *Client) DeleteCharacter(ctx context.Context, characterID string) error {
	id, err := requireID("character_id", characterID)
	if err != nil {
		return err
	}
	return c.do(ctx, http.MethodDelete, "/v1/custom-references/"+url.PathEscape(id), nil, nil, nil)
}

// ListStyles returns the Soul style presets.
func (c *Client) ListStyles(ctx context.Context) ([]domain.Style, error) {
	var out []domain.Style
	if err := c.do(ctx, http.MethodGet, "/v1/text2image/soul-styles", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ListMotions returns the DoP motion presets.
func (c *Client) ListMotions(ctx context.Context) ([]domain.Motion, error) {
	var out []domain.Motion
	if err := c.do(ctx, http.MethodGet, "/v1/motions", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// maxResponseBytes bounds how much of a JSON response body is buffered.
var maxResponseBytes int64 = 16 << 20

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, result any) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("higgsfield: encode request: %w", err)
		}
		reader = bytes.NewReader(raw)
	}
	httpReq, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("higgsfield: build request: %w", err)
	}
	httpReq.Header.Set(headerAPIKey, c.apiKey)
	httpReq.Header.Set(headerSecret, c.secret)
	httpReq.Header.Set("Accept", "application/json")
	if body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("higgsfield: http request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes+1))
	if err != nil {
		return fmt.Errorf("higgsfield: read response: %w", err)
	}
	oversized := int64(len(raw)) > maxResponseBytes
	if oversized {
		raw = raw[:maxResponseBytes]
	}

	c.logger.Debug().
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).
		Msg("higgsfield: request finished")

	if resp.StatusCode >= 300 {
		return newAPIError(resp.StatusCode, raw)
	}
	if oversized {
		return fmt.Errorf("higgsfield: response exceeds %d bytes", maxResponseBytes)
	}
	if result == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, result); err != nil {
		return fmt.Errorf("higgsfield: decode response: %w", err)
	}
	return nil
}

func requireID(field, value string) (string, error) {
	id := strings.TrimSpace(value)
	if id == "" {
		return "", invalidArgument("%s is required", field)
	}
	return id, nil
}

func invalidArgument(format string, args ...any) error {
	return fmt.Errorf("higgsfield: %w: %s", domain.ErrInvalidArgument, fmt.Sprintf(format, args...))
}

// IsInvalidArgument reports whether err was raised by local validation, in
// which case no request reached the provider.
func IsInvalidArgument(err error) bool {
	return errors.Is(err, domain.ErrInvalidArgument)
}
