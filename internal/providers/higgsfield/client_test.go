package higgsfield

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"sync"
	"testing"
	"time"

	"higgsfield-mcp/internal/domain"
)

func TestGenerateVideoPayloadShape(t *testing.T) {
	transport := newCaptureTransport()
	transport.setJSONResponse(http.MethodPost, "/v1/image2video/dop", http.StatusOK, jobSetFixture("js-1", domain.JobStatusQueued))
	client := newTestClient(t, transport)

	set, err := client.GenerateVideo(context.Background(), VideoRequest{
		ImageURL: "https://x/a.png",
		MotionID: "m1",
		Quality:  "turbo",
	})
	if err != nil {
		t.Fatalf("generate video: %v", err)
	}
	if set.ID != "js-1" {
		t.Fatalf("job set id = %q, want js-1", set.ID)
	}

	req := transport.last()
	if req.path != "/v1/image2video/dop" {
		t.Fatalf("path = %q", req.path)
	}
	var envelope struct {
		Params json.RawMessage `json:"params"`
	}
	if err := json.Unmarshal(req.body, &envelope); err != nil {
		t.Fatalf("decode payload: %v", err)
	}
	want := `{"prompt":"Cinematic video with natural motion","input_images":[{"type":"image_url","image_url":"https://x/a.png"}],"motion_id":"m1","quality":"turbo"}`
	if string(envelope.Params) != want {
		t.Fatalf("params = %s\nwant     %s", envelope.Params, want)
	}

	var params map[string]any
	if err := json.Unmarshal(envelope.Params, &params); err != nil {
		t.Fatalf("decode params: %v", err)
	}
	if _, ok := params["image_url"]; ok {
		t.Fatalf("params must not carry a bare image_url field")
	}
}

func TestGenerateVideoKeepsCallerPrompt(t *testing.T) {
	transport := newCaptureTransport()
	transport.setJSONResponse(http.MethodPost, "/v1/image2video/dop", http.StatusOK, jobSetFixture("js-2", domain.JobStatusQueued))
	client := newTestClient(t, transport)

	_, err := client.GenerateVideo(context.Background(), VideoRequest{
		ImageURL: " https://x/b.png ",
		MotionID: "m2",
		Prompt:   "slow dolly zoom",
		Webhook:  &Webhook{URL: "https://hooks.example.com/hf", Secret: "s3"},
	})
	if err != nil {
		t.Fatalf("generate video: %v", err)
	}

	var payload struct {
		Params struct {
			Prompt      string `json:"prompt"`
			Quality     string `json:"quality"`
			InputImages []struct {
				Type     string `json:"type"`
				ImageURL string `json:"image_url"`
			} `json:"input_images"`
			Webhook *struct {
				URL    string `json:"url"`
				Secret string `json:"secret"`
			} `json:"webhook"`
		} `json:"params"`
	}
	if err := json.Unmarshal(transport.last().body, &payload); err != nil {
		t.Fatalf("decode payload: %v", err)
	}
	if payload.Params.Prompt != "slow dolly zoom" {
		t.Fatalf("prompt = %q", payload.Params.Prompt)
	}
	if payload.Params.Quality != DefaultVideoQuality {
		t.Fatalf("quality = %q, want %q", payload.Params.Quality, DefaultVideoQuality)
	}
	if len(payload.Params.InputImages) != 1 || payload.Params.InputImages[0].ImageURL != "https://x/b.png" || payload.Params.InputImages[0].Type != "image_url" {
		t.Fatalf("input_images = %#v", payload.Params.InputImages)
	}
	if payload.Params.Webhook == nil || payload.Params.Webhook.URL != "https://hooks.example.com/hf" || payload.Params.Webhook.Secret != "s3" {
		t.Fatalf("webhook = %#v", payload.Params.Webhook)
	}
}

func TestGenerateVideoValidation(t *testing.T) {
	tests := []struct {
		name string
		req  VideoRequest
	}{
		{name: "missing image", req: VideoRequest{MotionID: "m1"}},
		{name: "missing motion", req: VideoRequest{ImageURL: "https://x/a.png"}},
		{name: "unknown quality", req: VideoRequest{ImageURL: "https://x/a.png", MotionID: "m1", Quality: "ultra"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			transport := newCaptureTransport()
			client := newTestClient(t, transport)
			_, err := client.GenerateVideo(context.Background(), tt.req)
			if !IsInvalidArgument(err) {
				t.Fatalf("err = %v, want invalid argument", err)
			}
			if n := transport.count(); n != 0 {
				t.Fatalf("expected no network call, got %d", n)
			}
		})
	}
}

func TestGenerateImageDefaultsAndOmissions(t *testing.T) {
	transport := newCaptureTransport()
	transport.setJSONResponse(http.MethodPost, "/v1/text2image/soul", http.StatusOK, jobSetFixture("js-img", domain.JobStatusQueued))
	client := newTestClient(t, transport)

	if _, err := client.GenerateImage(context.Background(), ImageRequest{Prompt: "a desert garden"}); err != nil {
		t.Fatalf("generate image: %v", err)
	}

	var payload map[string]map[string]any
	if err := json.Unmarshal(transport.last().body, &payload); err != nil {
		t.Fatalf("decode payload: %v", err)
	}
	params := payload["params"]
	if params["prompt"] != "a desert garden" {
		t.Fatalf("prompt = %v", params["prompt"])
	}
	if params["quality"] != DefaultImageQuality {
		t.Fatalf("quality = %v", params["quality"])
	}
	if params["width_and_height"] != DefaultImageSize {
		t.Fatalf("width_and_height = %v", params["width_and_height"])
	}
	if params["batch_size"] != float64(1) {
		t.Fatalf("batch_size = %v", params["batch_size"])
	}
	for _, key := range []string{"custom_reference_id", "style_id", "webhook"} {
		if _, ok := params[key]; ok {
			t.Fatalf("%s should be omitted when unset", key)
		}
	}
}

func TestGenerateImageWithReferences(t *testing.T) {
	transport := newCaptureTransport()
	transport.setJSONResponse(http.MethodPost, "/v1/text2image/soul", http.StatusOK, jobSetFixture("js-img", domain.JobStatusQueued))
	client := newTestClient(t, transport)

	_, err := client.GenerateImage(context.Background(), ImageRequest{
		Prompt:            "portrait",
		Quality:           "720p",
		CustomReferenceID: "char-1",
		StyleID:           "style-1",
		BatchSize:         4,
		EnhancePrompt:     true,
	})
	if err != nil {
		t.Fatalf("generate image: %v", err)
	}
	var payload map[string]map[string]any
	if err := json.Unmarshal(transport.last().body, &payload); err != nil {
		t.Fatalf("decode payload: %v", err)
	}
	params := payload["params"]
	if params["custom_reference_id"] != "char-1" || params["style_id"] != "style-1" {
		t.Fatalf("references missing: %#v", params)
	}
	if params["batch_size"] != float64(4) || params["enhance_prompt"] != true || params["quality"] != "720p" {
		t.Fatalf("options not forwarded: %#v", params)
	}
}

func TestGenerateImageValidation(t *testing.T) {
	tests := []ImageRequest{
		{Prompt: "   "},
		{Prompt: "x", Quality: "4k"},
		{Prompt: "x", BatchSize: 2},
	}
	for _, req := range tests {
		transport := newCaptureTransport()
		client := newTestClient(t, transport)
		if _, err := client.GenerateImage(context.Background(), req); !IsInvalidArgument(err) {
			t.Fatalf("request %#v: err = %v, want invalid argument", req, err)
		}
		if transport.count() != 0 {
			t.Fatalf("request %#v reached the network", req)
		}
	}
}

func TestCreateCharacterImageBounds(t *testing.T) {
	six := []string{"a", "b", "c", "d", "e", "f"}
	for _, urls := range [][]string{nil, {}, six} {
		transport := newCaptureTransport()
		client := newTestClient(t, transport)
		_, err := client.CreateCharacter(context.Background(), "Jane", urls)
		if !IsInvalidArgument(err) {
			t.Fatalf("len=%d: err = %v, want invalid argument", len(urls), err)
		}
		if transport.count() != 0 {
			t.Fatalf("len=%d: expected no network call", len(urls))
		}
	}
}

func TestCreateCharacterPayload(t *testing.T) {
	transport := newCaptureTransport()
	transport.setJSONResponse(http.MethodPost, "/v1/custom-references", http.StatusOK, map[string]any{
		"id":         "char-9",
		"name":       "Jane",
		"status":     "not_ready",
		"created_at": "2025-01-02T03:04:05Z",
	})
	client := newTestClient(t, transport)

	urls := []string{"https://x/1.jpg", "https://x/2.jpg", "https://x/3.jpg", "https://x/4.jpg", "https://x/5.jpg"}
	character, err := client.CreateCharacter(context.Background(), "Jane", urls)
	if err != nil {
		t.Fatalf("create character: %v", err)
	}
	if character.ID != "char-9" || character.Status != domain.CharacterStatusNotReady {
		t.Fatalf("unexpected character: %#v", character)
	}

	var payload characterRequest
	if err := json.Unmarshal(transport.last().body, &payload); err != nil {
		t.Fatalf("decode payload: %v", err)
	}
	if payload.Name != "Jane" || len(payload.InputImages) != len(urls) {
		t.Fatalf("payload = %#v", payload)
	}
	for i, img := range payload.InputImages {
		if img.Type != domain.InputImageType || img.ImageURL != urls[i] {
			t.Fatalf("input_images[%d] = %#v", i, img)
		}
	}
}

func TestGetJobSetCompleted(t *testing.T) {
	transport := newCaptureTransport()
	transport.setJSONResponse(http.MethodGet, "/v1/job-sets/js-3", http.StatusOK, map[string]any{
		"id":         "js-3",
		"type":       "text2image_soul",
		"created_at": "2025-01-02T03:04:05Z",
		"jobs": []any{map[string]any{
			"id":     "job-1",
			"status": "completed",
			"results": map[string]any{
				"min": map[string]any{"type": "image/webp", "url": "https://cdn.example.com/min.webp"},
				"raw": map[string]any{"type": "image/png", "url": "https://cdn.example.com/raw.png"},
			},
		}},
	})
	client := newTestClient(t, transport)

	set, err := client.GetJobSet(context.Background(), "js-3")
	if err != nil {
		t.Fatalf("get job set: %v", err)
	}
	if len(set.Jobs) != 1 || set.Jobs[0].Status != domain.JobStatusCompleted {
		t.Fatalf("jobs = %#v", set.Jobs)
	}
	if set.Jobs[0].Results == nil || set.Jobs[0].Results.Raw.URL != "https://cdn.example.com/raw.png" {
		t.Fatalf("results = %#v", set.Jobs[0].Results)
	}
	if req := transport.last(); req.method != http.MethodGet || len(req.body) != 0 {
		t.Fatalf("unexpected request %s body=%q", req.method, req.body)
	}
}

func TestGetJobSetPassesUnknownStatusThrough(t *testing.T) {
	transport := newCaptureTransport()
	transport.setJSONResponse(http.MethodGet, "/v1/job-sets/js-4", http.StatusOK, jobSetFixture("js-4", domain.JobStatusNSFW))
	client := newTestClient(t, transport)

	set, err := client.GetJobSet(context.Background(), "js-4")
	if err != nil {
		t.Fatalf("get job set: %v", err)
	}
	if set.Jobs[0].Status != domain.JobStatusNSFW {
		t.Fatalf("status = %q, want nsfw", set.Jobs[0].Status)
	}
}

func TestListCharactersQuery(t *testing.T) {
	transport := newCaptureTransport()
	transport.setJSONResponse(http.MethodGet, "/v1/custom-references/list", http.StatusOK, map[string]any{
		"total": 1,
		"items": []any{map[string]any{"id": "char-1", "name": "Jane", "status": "completed", "thumbnail_url": "https://x/t.jpg"}},
	})
	client := newTestClient(t, transport)

	page, err := client.ListCharacters(context.Background(), 2, 50)
	if err != nil {
		t.Fatalf("list characters: %v", err)
	}
	if page.Total != 1 || len(page.Items) != 1 || page.Items[0].ThumbnailURL != "https://x/t.jpg" {
		t.Fatalf("page = %#v", page)
	}
	if page.Page != 2 || page.PageSize != 50 {
		t.Fatalf("paging not echoed: %#v", page)
	}
	req := transport.last()
	if req.query != "page=2&page_size=50" {
		t.Fatalf("query = %q", req.query)
	}
}

func TestDeleteCharacterEscapesID(t *testing.T) {
	transport := newCaptureTransport()
	transport.setJSONResponse(http.MethodDelete, "/v1/custom-references/a b", http.StatusNoContent, nil)
	client := newTestClient(t, transport)

	if err := client.DeleteCharacter(context.Background(), "a b"); err != nil {
		t.Fatalf("delete character: %v", err)
	}
	if req := transport.last(); req.rawPath != "/v1/custom-references/a%20b" {
		t.Fatalf("raw path = %q", req.rawPath)
	}
}

func TestListPresets(t *testing.T) {
	transport := newCaptureTransport()
	transport.setJSONResponse(http.MethodGet, "/v1/text2image/soul-styles", http.StatusOK, []any{
		map[string]any{"id": "s1", "name": "Noir", "description": "dark"},
	})
	transport.setJSONResponse(http.MethodGet, "/v1/motions", http.StatusOK, []any{
		map[string]any{"id": "m1", "name": "Crash zoom", "description": "fast", "start_end_frame": true},
	})
	client := newTestClient(t, transport)

	styles, err := client.ListStyles(context.Background())
	if err != nil || len(styles) != 1 || styles[0].Name != "Noir" {
		t.Fatalf("styles = %#v, err = %v", styles, err)
	}
	motions, err := client.ListMotions(context.Background())
	if err != nil || len(motions) != 1 || !motions[0].StartEndFrame {
		t.Fatalf("motions = %#v, err = %v", motions, err)
	}
}

func TestRequestsCarryCredentials(t *testing.T) {
	transport := newCaptureTransport()
	transport.setJSONResponse(http.MethodGet, "/v1/motions", http.StatusOK, []any{})
	client := newTestClient(t, transport)

	if _, err := client.ListMotions(context.Background()); err != nil {
		t.Fatalf("list motions: %v", err)
	}
	header := transport.last().header
	if header.Get("hf-api-key") != "key" || header.Get("hf-secret") != "secret" {
		t.Fatalf("credentials headers missing: %v", header)
	}
	if header.Get("Accept") != "application/json" {
		t.Fatalf("accept header = %q", header.Get("Accept"))
	}
}

func TestErrorTaxonomy(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		want    error
		message string
	}{
		{name: "unauthorized", status: http.StatusUnauthorized, body: `{"detail":"Invalid credentials"}`, want: domain.ErrUnauthorized, message: "Invalid credentials"},
		{name: "payment", status: http.StatusPaymentRequired, body: `{"detail":"Not enough credits"}`, want: domain.ErrInsufficientBalance, message: "Not enough credits"},
		{name: "validation list", status: http.StatusUnprocessableEntity, body: `{"detail":[{"loc":["body","params","prompt"],"msg":"field required"}]}`, want: domain.ErrValidation, message: "body.params.prompt: field required"},
		{name: "not found", status: http.StatusNotFound, body: `{"message":"job set not found"}`, want: domain.ErrNotFound, message: "job set not found"},
		{name: "rate limited", status: http.StatusTooManyRequests, body: ``, want: domain.ErrRateLimited},
		{name: "upstream", status: http.StatusBadGateway, body: `upstream exploded`, want: domain.ErrProviderFailure, message: "upstream exploded"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			transport := newCaptureTransport()
			transport.setRawResponse(http.MethodGet, "/v1/job-sets/js-err", tt.status, []byte(tt.body))
			client := newTestClient(t, transport)

			_, err := client.GetJobSet(context.Background(), "js-err")
			if !errors.Is(err, tt.want) {
				t.Fatalf("err = %v, want %v", err, tt.want)
			}
			apiErr, ok := AsAPIError(err)
			if !ok {
				t.Fatalf("expected *APIError, got %T", err)
			}
			if apiErr.StatusCode != tt.status {
				t.Fatalf("status = %d, want %d", apiErr.StatusCode, tt.status)
			}
			if apiErr.Message != tt.message {
				t.Fatalf("message = %q, want %q", apiErr.Message, tt.message)
			}
			if transport.count() != 1 {
				t.Fatalf("expected exactly one request, got %d", transport.count())
			}
		})
	}
}

func TestNewClientRequiresCredentials(t *testing.T) {
	if _, err := NewClient(Options{APIKey: "key"}); !errors.Is(err, domain.ErrMissingCredentials) {
		t.Fatalf("err = %v, want ErrMissingCredentials", err)
	}
	client, err := NewClient(Options{APIKey: "key", Secret: "secret", BaseURL: "http://localhost:4010/"})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	if client.BaseURL() != "http://localhost:4010" {
		t.Fatalf("base url = %q", client.BaseURL())
	}
}

func TestWaitForJobSetStopsAtTerminal(t *testing.T) {
	transport := newCaptureTransport()
	transport.queueJSONResponse(http.MethodGet, "/v1/job-sets/js-5", http.StatusOK, jobSetFixture("js-5", domain.JobStatusQueued))
	transport.queueJSONResponse(http.MethodGet, "/v1/job-sets/js-5", http.StatusOK, jobSetFixture("js-5", domain.JobStatusInProgress))
	transport.queueJSONResponse(http.MethodGet, "/v1/job-sets/js-5", http.StatusOK, jobSetFixture("js-5", domain.JobStatusFailed))
	client := newTestClient(t, transport)

	var seen []domain.JobStatus
	set, err := client.WaitForJobSet(context.Background(), "js-5", time.Millisecond, func(s *domain.JobSet) {
		seen = append(seen, s.Summary())
	})
	if err != nil {
		t.Fatalf("wait: %v", err)
	}
	if set.Summary() != domain.JobStatusFailed {
		t.Fatalf("summary = %q, want failed", set.Summary())
	}
	if len(seen) != 3 || transport.count() != 3 {
		t.Fatalf("seen = %v, requests = %d", seen, transport.count())
	}
}

func TestWaitForJobSetHonorsContext(t *testing.T) {
	transport := newCaptureTransport()
	transport.setJSONResponse(http.MethodGet, "/v1/job-sets/js-6", http.StatusOK, jobSetFixture("js-6", domain.JobStatusQueued))
	client := newTestClient(t, transport)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err := client.WaitForJobSet(ctx, "js-6", 5*time.Millisecond, nil)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("err = %v, want deadline exceeded", err)
	}
}

func TestWaitForJobSetReturnsEmptySet(t *testing.T) {
	transport := newCaptureTransport()
	transport.setJSONResponse(http.MethodGet, "/v1/job-sets/js-7", http.StatusOK, map[string]any{
		"id":   "js-7",
		"type": "image2video_dop",
		"jobs": []any{},
	})
	client := newTestClient(t, transport)

	done := make(chan struct{})
	var (
		set *domain.JobSet
		err error
	)
	go func() {
		defer close(done)
		set, err = client.WaitForJobSet(context.Background(), "js-7", time.Millisecond, nil)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("wait did not return for a job set without jobs")
	}
	if err != nil {
		t.Fatalf("wait: %v", err)
	}
	if len(set.Jobs) != 0 || set.Summary() != "" {
		t.Fatalf("set = %#v, summary = %q", set, set.Summary())
	}
	if transport.count() != 1 {
		t.Fatalf("expected exactly one request, got %d", transport.count())
	}
}

func TestResponseBodyIsBounded(t *testing.T) {
	prev := maxResponseBytes
	maxResponseBytes = 64
	t.Cleanup(func() { maxResponseBytes = prev })

	transport := newCaptureTransport()
	big := `{"id":"js-8","jobs":[],"pad":"` + strings.Repeat("x", 256) + `"}`
	transport.setRawResponse(http.MethodGet, "/v1/job-sets/js-8", http.StatusOK, []byte(big))
	client := newTestClient(t, transport)

	_, err := client.GetJobSet(context.Background(), "js-8")
	if err == nil || !strings.Contains(err.Error(), "response exceeds 64 bytes") {
		t.Fatalf("err = %v, want size limit error", err)
	}

	transport.setRawResponse(http.MethodGet, "/v1/job-sets/js-9", http.StatusInternalServerError, []byte(strings.Repeat("e", 256)))
	_, err = client.GetJobSet(context.Background(), "js-9")
	apiErr, ok := AsAPIError(err)
	if !ok {
		t.Fatalf("expected *APIError, got %T", err)
	}
	if len(apiErr.Message) > 64 {
		t.Fatalf("message length = %d, want at most 64", len(apiErr.Message))
	}
}

func newTestClient(t *testing.T, transport *captureTransport) *Client {
	t.Helper()
	client, err := NewClient(Options{
		APIKey:     "key",
		Secret:     "secret",
		BaseURL:    "https://platform.test",
		HTTPClient: &http.Client{Transport: transport},
	})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	return client
}

func jobSetFixture(id string, status domain.JobStatus) map[string]any {
	return map[string]any{
		"id":         id,
		"type":       "image2video_dop",
		"created_at": "2025-01-02T03:04:05Z",
		"jobs":       []any{map[string]any{"id": id + "-job", "status": string(status)}},
	}
}

type capturedRequest struct {
	method  string
	path    string
	rawPath string
	query   string
	header  http.Header
	body    []byte
}

type captureTransport struct {
	mu        sync.Mutex
	responses map[string][]responseStub
	requests  []capturedRequest
}

type responseStub struct {
	status int
	header http.Header
	body   []byte
}

func newCaptureTransport() *captureTransport {
	return &captureTransport{responses: map[string][]responseStub{}}
}

func (c *captureTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	var body []byte
	if req.Body != nil {
		var err error
		body, err = io.ReadAll(req.Body)
		if err != nil {
			return nil, err
		}
		req.Body.Close()
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.requests = append(c.requests, capturedRequest{
		method:  req.Method,
		path:    req.URL.Path,
		rawPath: req.URL.EscapedPath(),
		query:   req.URL.RawQuery,
		header:  req.Header.Clone(),
		body:    body,
	})

	key := req.Method + " " + req.URL.Path
	stubs := c.responses[key]
	if len(stubs) == 0 {
		return &http.Response{
			StatusCode: http.StatusNotFound,
			Header:     http.Header{},
			Body:       io.NopCloser(strings.NewReader("not found")),
		}, nil
	}
	stub := stubs[0]
	if len(stubs) > 1 {
		c.responses[key] = stubs[1:]
	}
	return stub.toResponse(), nil
}

func (c *captureTransport) setJSONResponse(method, path string, status int, payload any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.responses[method+" "+path] = []responseStub{jsonStub(status, payload)}
}

func (c *captureTransport) queueJSONResponse(method, path string, status int, payload any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	key := method + " " + path
	c.responses[key] = append(c.responses[key], jsonStub(status, payload))
}

func (c *captureTransport) setRawResponse(method, path string, status int, body []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.responses[method+" "+path] = []responseStub{{
		status: status,
		header: http.Header{"Content-Type": []string{"application/json"}},
		body:   body,
	}}
}

func (c *captureTransport) last() capturedRequest {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.requests) == 0 {
		return capturedRequest{}
	}
	return c.requests[len(c.requests)-1]
}

func (c *captureTransport) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.requests)
}

func jsonStub(status int, payload any) responseStub {
	var body []byte
	if payload != nil {
		body, _ = json.Marshal(payload)
	}
	return responseStub{
		status: status,
		header: http.Header{"Content-Type": []string{"application/json"}},
		body:   body,
	}
}

func (s responseStub) toResponse() *http.Response {
	header := http.Header{}
	for k, values := range s.header {
		cloned := make([]string, len(values))
		copy(cloned, values)
		header[k] = cloned
	}
	return &http.Response{
		StatusCode: s.status,
		Header:     header,
		Body:       io.NopCloser(bytes.NewReader(s.body)),
	}
}

func TestOpenResultSkipsCredentials(t *testing.T) {
	transport := newCaptureTransport()
	transport.setRawResponse(http.MethodGet, "/results/raw.mp4", http.StatusOK, []byte("video"))
	client := newTestClient(t, transport)

	dl, err := client.OpenResult(context.Background(), "https://cdn.example.com/results/raw.mp4")
	if err != nil {
		t.Fatalf("open result: %v", err)
	}
	defer dl.Body.Close()
	data, _ := io.ReadAll(dl.Body)
	if string(data) != "video" || dl.Extension != ".mp4" {
		t.Fatalf("download = %q ext %q", data, dl.Extension)
	}
	if got := transport.last().header.Get(headerAPIKey); got != "" {
		t.Fatalf("credentials leaked to result host: %q", got)
	}
}

func TestOpenResultRejectsNonHTTP(t *testing.T) {
	transport := newCaptureTransport()
	client := newTestClient(t, transport)

	if _, err := client.OpenResult(context.Background(), "file:///etc/passwd"); !IsInvalidArgument(err) {
		t.Fatalf("err = %v, want invalid argument", err)
	}
	if transport.count() != 0 {
		t.Fatalf("unexpected request")
	}
}

func TestResultExtension(t *testing.T) {
	tests := []struct {
		path, contentType, want string
	}{
		{"/a/b.PNG", "", ".png"},
		{"/a/b", "image/png; charset=binary", ".png"},
		{"/a/b", "", ".bin"},
	}
	for _, tc := range tests {
		if got := resultExtension(tc.path, tc.contentType); got != tc.want {
			t.Fatalf("resultExtension(%q, %q) = %q, want %q", tc.path, tc.contentType, got, tc.want)
		}
	}
}
