package updlib

import (
	"context"
	"io"

	"github.com/rezonia/edo-upd/internal/archive"
	"github.com/rezonia/edo-upd/internal/crpt"
	"github.com/rezonia/edo-upd/internal/model"
	"github.com/rezonia/edo-upd/internal/parser"
	"github.com/rezonia/edo-upd/internal/render"
)

var (
	renderers = render.NewRegistry()
	parsers   = parser.NewRegistry()
)

// RenderSeller renders a seller document in its Generation
func RenderSeller(d *SellerDocument) (Payload, error) {
	return renderers.RenderSeller(d)
}

// RenderBuyer renders a buyer document in its Generation
func RenderBuyer(d *BuyerDocument) (Payload, error) {
	return renderers.RenderBuyer(d)
}

// Extract unpacks an operator ZIP package read from r
func Extract(r io.Reader, fileName, documentID string) (SignedDocument, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return SignedDocument{}, model.NewExtractionError("read", "failed to read input", err)
	}
	return archive.Extract(content, fileName, documentID)
}

// ParseSellerInfo reads the seller document info that a buyer title refers to
func ParseSellerInfo(ctx context.Context, doc SignedDocument) (*SellerDocumentInfo, error) {
	return parsers.Parse(ctx, doc)
}

// Re-export operator client types
type (
	Client         = crpt.Client
	ClientOptions  = crpt.Options
	ClientOption   = crpt.Option
	DocumentSigner = crpt.Signer
	Result         = crpt.Result
)

// NewClient creates an operator API client
func NewClient(opts ClientOptions, signer DocumentSigner, options ...ClientOption) (*Client, error) {
	return crpt.New(opts, signer, options...)
}
