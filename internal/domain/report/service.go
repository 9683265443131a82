package report

import "context"

type ReportService interface {
	// Generate builds the labor report document and hands it to the external
	// renderer, returning the finished bytes and their content type.
	Generate(ctx context.Context, companyID string, req GenerateRequest) ([]byte, string, error)

	// BuildDocument assembles the document without rendering it, for callers
	// that want the raw structure.
	BuildDocument(ctx context.Context, companyID string, req GenerateRequest) (*Document, error)
}
