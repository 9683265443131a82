package report

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/crewsync/crewsync-backend-go/internal/domain/report"
)

// HTTPRenderer talks to the external rendering service over HTTP. The
// document goes out as JSON; the finished file comes back as the response
// body.
type HTTPRenderer struct {
	baseURL string
	client  *http.Client
}

func NewHTTPRenderer(baseURL string, timeout time.Duration) *HTTPRenderer {
	return &HTTPRenderer{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

func (r *HTTPRenderer) RenderCSV(ctx context.Context, doc report.Document) ([]byte, error) {
	return r.render(ctx, "/render/csv", doc)
}

func (r *HTTPRenderer) RenderPDF(ctx context.Context, doc report.Document) ([]byte, error) {
	return r.render(ctx, "/render/pdf", doc)
}

func (r *HTTPRenderer) render(ctx context.Context, path string, doc report.Document) ([]byte, error) {
	body, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("encode report document: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", report.ErrRendererUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: renderer returned status %d", report.ErrRendererUnavailable, resp.StatusCode)
	}

	return io.ReadAll(resp.Body)
}
