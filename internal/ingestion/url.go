package ingestion

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/jonathan/skillboard/internal/types"
)

// DefaultTimeout is the default HTTP request timeout.
const DefaultTimeout = 30 * time.Second

// DefaultUserAgent is the user agent string for HTTP requests.
const DefaultUserAgent = "Mozilla/5.0 (compatible; Skillboard/1.0)"

// maxBodyBytes caps the size of a fetched dataset.
var maxBodyBytes int64 = 32 << 20

// IsURL reports whether source looks like an http(s) URL.
func IsURL(source string) bool {
	return strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://")
}

// LoadDatasetURL fetches a dataset over HTTP. The format comes from the Content-Type
// header, falling back to the URL path extension and then JSON.
func LoadDatasetURL(ctx context.Context, urlStr string, client *http.Client) (types.Dataset, *Metadata, error) {
	data, format, err := fetchURL(ctx, urlStr, client)
	if err != nil {
		return nil, nil, err
	}

	dataset, err := ParseDataset(urlStr, data, format)
	if err != nil {
		return nil, nil, err
	}
	return dataset, NewMetadata(urlStr, format, data, dataset), nil
}

// fetchURL downloads a dataset document and reports its format.
func fetchURL(ctx context.Context, urlStr string, client *http.Client) ([]byte, Format, error) {
	parsedURL, err := url.Parse(urlStr)
	if err != nil || parsedURL.Scheme == "" || parsedURL.Host == "" {
		return nil, "", &LoadError{Source: urlStr, Stage: StageRead, Message: "bad dataset URL", Cause: ErrInvalidURL}
	}

	if client == nil {
		client = &http.Client{Timeout: DefaultTimeout}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, urlStr, nil)
	if err != nil {
		return nil, "", &LoadError{Source: urlStr, Stage: StageRead, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("User-Agent", DefaultUserAgent)
	req.Header.Set("Accept", "application/json, application/yaml;q=0.9")

	resp, err := client.Do(req)
	if err != nil {
		return nil, "", &LoadError{Source: urlStr, Stage: StageRead, Message: "request failed", Cause: fmt.Errorf("%w: %w", ErrHTTPRequestFailed, err)}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, "", &LoadError{
			Source:  urlStr,
			Stage:   StageRead,
			Message: fmt.Sprintf("HTTP status %d", resp.StatusCode),
			Cause:   ErrHTTPRequestFailed,
		}
	}

	// One byte past the cap tells a full body apart from a cut one.
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes+1))
	if err != nil {
		return nil, "", &LoadError{Source: urlStr, Stage: StageRead, Message: "failed to read response body", Cause: err}
	}
	if int64(len(data)) > maxBodyBytes {
		return nil, "", &LoadError{
			Source:  urlStr,
			Stage:   StageRead,
			Message: fmt.Sprintf("response body exceeds %s", humanize.IBytes(uint64(maxBodyBytes))),
			Cause:   ErrBodyTooLarge,
		}
	}

	return data, formatFromResponse(resp.Header.Get("Content-Type"), parsedURL.Path), nil
}

func formatFromResponse(contentType, path string) Format {
	ct := strings.ToLower(contentType)
	switch {
	case strings.Contains(ct, "yaml"):
		return FormatYAML
	case strings.Contains(ct, "json"):
		return FormatJSON
	}
	if format, err := FormatFromPath(path); err == nil {
		return format
	}
	return FormatJSON
}
