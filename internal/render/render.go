// Package render selects the document renderer for a schema generation.
package render

import (
	"github.com/rezonia/edo-upd/internal/model"
	"github.com/rezonia/edo-upd/internal/render/v501"
	"github.com/rezonia/edo-upd/internal/render/v503"
	"github.com/rezonia/edo-upd/internal/render/wire"
)

// Renderer renders seller and buyer documents of one schema generation
type Renderer interface {
	// RenderSeller builds the seller (invoice and transfer) file
	RenderSeller(d *model.SellerDocument) (wire.Payload, error)

	// RenderBuyer builds the buyer (acceptance) file
	RenderBuyer(d *model.BuyerDocument) (wire.Payload, error)

	// Generation returns the schema generation written by the renderer
	Generation() model.Generation
}

var (
	_ Renderer = (*v501.Renderer)(nil)
	_ Renderer = (*v503.Renderer)(nil)
)

// Registry holds the renderers by generation
type Registry struct {
	renderers map[model.Generation]Renderer
}

// NewRegistry creates registry with both generations
func NewRegistry() *Registry {
	r := &Registry{renderers: make(map[model.Generation]Renderer)}
	r.Register(v501.New())
	r.Register(v503.New())
	return r
}

// Register adds or replaces the renderer for its generation
func (r *Registry) Register(renderer Renderer) {
	r.renderers[renderer.Generation()] = renderer
}

// Get returns renderer for a generation
func (r *Registry) Get(g model.Generation) (Renderer, error) {
	renderer, ok := r.renderers[g]
	if !ok {
		return nil, model.NewValidationError("generation", string(g), model.RuleUnknownValue, "unsupported schema generation")
	}
	return renderer, nil
}

// RenderSeller renders a seller document with the renderer of its generation
func (r *Registry) RenderSeller(d *model.SellerDocument) (wire.Payload, error) {
	if d == nil {
		return wire.Payload{}, model.NewRequiredError("document", "document is nil")
	}
	renderer, err := r.Get(d.Generation)
	if err != nil {
		return wire.Payload{}, err
	}
	return renderer.RenderSeller(d)
}

// RenderBuyer renders a buyer document with the renderer of its generation
func (r *Registry) RenderBuyer(d *model.BuyerDocument) (wire.Payload, error) {
	if d == nil {
		return wire.Payload{}, model.NewRequiredError("document", "document is nil")
	}
	renderer, err := r.Get(d.Generation)
	if err != nil {
		return wire.Payload{}, err
	}
	return renderer.RenderBuyer(d)
}
