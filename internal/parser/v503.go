package parser

import (
	"context"

	"github.com/beevik/etree"

	"github.com/rezonia/edo-upd/internal/model"
)

// V503Adapter reads 5.03 seller files
type V503Adapter struct {
	layout layout
}

// NewV503Adapter creates a 5.03 adapter
func NewV503Adapter() *V503Adapter {
	return &V503Adapter{layout: layout{
		generation:     model.GenerationV503,
		numberAttr:     "НомерДок",
		dateAttr:       "ДатаДок",
		revisionTag:    "ИспрДок",
		revisionNumber: "НомИспр",
	}}
}

func (a *V503Adapter) Parse(ctx context.Context, doc model.SignedDocument) (*model.SellerDocumentInfo, error) {
	return a.layout.parse(ctx, doc)
}

func (a *V503Adapter) CanParse(doc *etree.Document) bool {
	return a.layout.canParse(doc)
}

// Generation returns model.GenerationV503
func (a *V503Adapter) Generation() model.Generation {
	return model.GenerationV503
}
