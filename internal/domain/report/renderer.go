package report

import "context"

// Renderer is the external rendering collaborator. It accepts the
// pre-formatted document and returns a finished byte stream.
type Renderer interface {
	RenderCSV(ctx context.Context, doc Document) ([]byte, error)
	RenderPDF(ctx context.Context, doc Document) ([]byte, error)
}
