// Package updlib provides a public API for building universal transfer
// documents (УПД) and exchanging them with the CRPT operator.
//
// Example usage:
//
//	payload, err := updlib.RenderSeller(doc)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.WriteFile(payload.ID+".xml", payload.Content, 0o644)
package updlib

import (
	"github.com/rezonia/edo-upd/internal/model"
	"github.com/rezonia/edo-upd/internal/render/wire"
)

// Re-export document types for public API
type (
	SellerDocument     = model.SellerDocument
	BuyerDocument      = model.BuyerDocument
	SellerDocumentInfo = model.SellerDocumentInfo
	SignedDocument     = model.SignedDocument
	Organization       = model.Organization
	InvoiceItem        = model.InvoiceItem
	DocumentRef        = model.DocumentRef
	TransferInfo       = model.TransferInfo
	AcceptanceInfo     = model.AcceptanceInfo
	Signer             = model.Signer
	Payload            = wire.Payload
)

// Re-export reference types
type (
	Generation = model.Generation
	Function   = model.Function
	TaxRate    = model.TaxRate
)

// Re-export schema generations
const (
	GenerationV501 = model.GenerationV501
	GenerationV503 = model.GenerationV503
)

// Re-export document functions
const (
	FunctionInvoice             = model.FunctionInvoice
	FunctionInvoiceAndTransfer  = model.FunctionInvoiceAndTransfer
	FunctionTransfer            = model.FunctionTransfer
	FunctionPriceChangeApproval = model.FunctionPriceChangeApproval
)

// Re-export error types
type (
	ParseError      = model.ParseError
	ValidationError = model.ValidationError
	ExtractionError = model.ExtractionError
)

// ErrValidation matches every *ValidationError
var ErrValidation = model.ErrValidation
