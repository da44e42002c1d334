// Package parser reconstructs the seller document info a buyer document
// answers from a previously received seller file.
package parser

import (
	"context"

	"github.com/beevik/etree"

	"github.com/rezonia/edo-upd/internal/model"
	"github.com/rezonia/edo-upd/internal/render/wire"
)

// Adapter reads the seller file of one schema generation
type Adapter interface {
	// Parse reads the seller document info from a signed seller file
	Parse(ctx context.Context, doc model.SignedDocument) (*model.SellerDocumentInfo, error)

	// CanParse returns true if adapter can handle this document
	CanParse(doc *etree.Document) bool

	// Generation returns the schema generation read by the adapter
	Generation() model.Generation
}

// Registry holds all registered adapters
type Registry struct {
	adapters []Adapter
}

// NewRegistry creates registry with both generations
func NewRegistry() *Registry {
	return &Registry{
		adapters: []Adapter{
			NewV503Adapter(),
			NewV501Adapter(),
		},
	}
}

// Detect identifies the generation of a parsed seller file
func (r *Registry) Detect(doc *etree.Document) (Adapter, error) {
	for _, a := range r.adapters {
		if a.CanParse(doc) {
			return a, nil
		}
	}
	version := ""
	if root := doc.Root(); root != nil {
		version = root.SelectAttrValue("ВерсФорм", "")
	}
	return nil, model.NewParseError(model.Generation(version), "Файл", "unknown seller file format, no matching adapter found", nil)
}

// Parse parses a seller file using the adapter of its generation
func (r *Registry) Parse(ctx context.Context, doc model.SignedDocument) (*model.SellerDocumentInfo, error) {
	tree, err := wire.ReadString(doc.Content)
	if err != nil {
		return nil, model.NewParseError("", "Файл", "malformed xml", err)
	}
	adapter, err := r.Detect(tree)
	if err != nil {
		return nil, err
	}
	return adapter.Parse(ctx, doc)
}

// RegisterAdapter adds a custom adapter to the registry
func (r *Registry) RegisterAdapter(a Adapter) {
	r.adapters = append([]Adapter{a}, r.adapters...)
}

// GetAdapter returns adapter for a specific generation
func (r *Registry) GetAdapter(g model.Generation) Adapter {
	for _, a := range r.adapters {
		if a.Generation() == g {
			return a
		}
	}
	return nil
}

// layout names the generation-specific invoice attributes
type layout struct {
	generation     model.Generation
	numberAttr     string
	dateAttr       string
	revisionTag    string
	revisionNumber string
}

func (l layout) canParse(doc *etree.Document) bool {
	root := doc.Root()
	return root != nil && root.Tag == "Файл" && root.SelectAttrValue("ВерсФорм", "") == string(l.generation)
}

func (l layout) parse(ctx context.Context, doc model.SignedDocument) (*model.SellerDocumentInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	tree, err := wire.ReadString(doc.Content)
	if err != nil {
		return nil, model.NewParseError(l.generation, "Файл", "malformed xml", err)
	}

	root := tree.SelectElement("Файл")
	if root == nil {
		return nil, model.NewParseError(l.generation, "Файл", "missing root element", nil)
	}
	document := root.SelectElement("Документ")
	if document == nil {
		return nil, model.NewParseError(l.generation, "Документ", "missing document element", nil)
	}
	invoice := document.SelectElement("СвСчФакт")
	if invoice == nil {
		return nil, model.NewParseError(l.generation, "СвСчФакт", "missing invoice element", nil)
	}

	fn := model.Function(document.SelectAttrValue("Функция", ""))
	if !fn.Valid() {
		return nil, model.NewParseError(l.generation, "Функция", "unknown document function "+string(fn), nil)
	}

	info := &model.SellerDocumentInfo{
		FileID:       root.SelectAttrValue("ИдФайл", ""),
		CreatedDate:  document.SelectAttrValue("ДатаИнфПр", ""),
		CreatedTime:  document.SelectAttrValue("ВремИнфПр", ""),
		DocumentName: document.SelectAttrValue("НаимДокОпр", ""),
		Function:     fn,
		Number:       invoice.SelectAttrValue(l.numberAttr, ""),
		Date:         invoice.SelectAttrValue(l.dateAttr, ""),
	}
	if doc.Signature != "" {
		info.Signatures = []string{doc.Signature}
	}
	for _, revision := range invoice.SelectElements(l.revisionTag) {
		info.IsCorrection = revision.SelectAttr(l.revisionNumber) != nil
	}
	return info, nil
}
