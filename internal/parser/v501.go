package parser

import (
	"context"

	"github.com/beevik/etree"

	"github.com/rezonia/edo-upd/internal/model"
)

// V501Adapter reads 5.01 seller files
type V501Adapter struct {
	layout layout
}

// NewV501Adapter creates a 5.01 adapter
func NewV501Adapter() *V501Adapter {
	return &V501Adapter{layout: layout{
		generation:     model.GenerationV501,
		numberAttr:     "НомерСчФ",
		dateAttr:       "ДатаСчФ",
		revisionTag:    "ИспрСчФ",
		revisionNumber: "НомИспрСчФ",
	}}
}

// Parse reads the seller document info. A revision with a hyphen
// placeholder instead of its number is not a correction.
func (a *V501Adapter) Parse(ctx context.Context, doc model.SignedDocument) (*model.SellerDocumentInfo, error) {
	return a.layout.parse(ctx, doc)
}

// CanParse checks ВерсФорм of the root element
func (a *V501Adapter) CanParse(doc *etree.Document) bool {
	return a.layout.canParse(doc)
}

// Generation returns model.GenerationV501
func (a *V501Adapter) Generation() model.Generation {
	return model.GenerationV501
}
