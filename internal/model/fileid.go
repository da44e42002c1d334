package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/gofrs/uuid/v5"
)

// File id prefixes of seller and buyer documents
const (
	SellerFilePrefix = "ON_NSCHFDOPPR"
	BuyerFilePrefix  = "ON_NSCHFDOPPOK"
)

// NewFileID builds a file id of the form
// <prefix>_<recipient>_<sender>_<yyyyMMdd>_<uuid>.
func NewFileID(prefix string, recipient, sender EdmParticipant, date time.Time) (string, error) {
	id, err := uuid.NewV4()
	if err != nil {
		return "", fmt.Errorf("generate file id: %w", err)
	}
	return strings.Join([]string{
		prefix,
		recipient.FullID(),
		sender.FullID(),
		date.Format("20060102"),
		id.String(),
	}, "_"), nil
}

// EnsureFileID assigns a generated file id when the document has none
func (d *SellerDocument) EnsureFileID() error {
	if d.FileID != "" {
		return nil
	}
	if d.Sender == nil || d.Recipient == nil {
		return NewRequiredError("sender", "sender and recipient are required to generate a file id")
	}
	id, err := NewFileID(SellerFilePrefix, *d.Recipient, *d.Sender, d.CreatedAt)
	if err != nil {
		return err
	}
	d.FileID = id
	return nil
}

// EnsureFileID assigns a generated file id when the document has none
func (d *BuyerDocument) EnsureFileID() error {
	if d.FileID != "" {
		return nil
	}
	if d.Sender == nil || d.Recipient == nil {
		return NewRequiredError("sender", "sender and recipient are required to generate a file id")
	}
	id, err := NewFileID(BuyerFilePrefix, *d.Recipient, *d.Sender, d.CreatedAt)
	if err != nil {
		return err
	}
	d.FileID = id
	return nil
}
