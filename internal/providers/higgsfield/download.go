package higgsfield

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"path"
	"strings"
)

const errorBodyLimit = 64 << 10

// Download is an open result file. The caller closes Body.
type Download struct {
	Body        io.ReadCloser
	ContentType string
	Extension   string
}

// OpenResult fetches a result URL from a completed job. Result URLs are
// public CDN links, so the credential headers are not sent with them.
func (c *Client) OpenResult(ctx context.Context, fileURL string) (*Download, error) {
	parsed, err := url.Parse(strings.TrimSpace(fileURL))
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
		return nil, invalidArgument("result url %q is not an http(s) url", fileURL)
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, parsed.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("higgsfield: build request: %w", err)
	}
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("higgsfield: download %s: %w", parsed.Redacted(), err)
	}
	if resp.StatusCode >= 300 {
		defer resp.Body.Close()
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, errorBodyLimit))
		return nil, newAPIError(resp.StatusCode, raw)
	}

	contentType := resp.Header.Get("Content-Type")
	return &Download{
		Body:        resp.Body,
		ContentType: contentType,
		Extension:   resultExtension(parsed.Path, contentType),
	}, nil
}

// resultExtension prefers the extension in the URL path and falls back to
// the response content type.
func resultExtension(urlPath, contentType string) string {
	if ext := path.Ext(urlPath); ext != "" && len(ext) <= 6 {
		return strings.ToLower(ext)
	}
	if mediaType, _, err := mime.ParseMediaType(contentType); err == nil {
		if exts, err := mime.ExtensionsByType(mediaType); err == nil && len(exts) > 0 {
			return exts[0]
		}
	}
	return ".bin"
}
