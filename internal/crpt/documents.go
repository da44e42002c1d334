package crpt

import (
	"context"
	"encoding/base64"
	"fmt"
	"mime"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rezonia/edo-upd/internal/archive"
	"github.com/rezonia/edo-upd/internal/model"
	"github.com/rezonia/edo-upd/internal/render/wire"
)

// Direction selects incoming or outgoing documents
type Direction string

const (
	Incoming Direction = "incoming"
	Outgoing Direction = "outgoing"
)

// ParseDirection accepts incoming and outgoing
func ParseDirection(s string) (Direction, error) {
	switch Direction(s) {
	case Incoming, Outgoing:
		return Direction(s), nil
	default:
		return "", fmt.Errorf("unknown direction %q", s)
	}
}

func (d Direction) path() string {
	return "/api/v1/" + string(d) + "-documents"
}

// SearchModel filters a document listing. Zero fields are not sent.
type SearchModel struct {
	PartnerINN  string
	Number      string
	CreatedFrom *time.Time
	CreatedTo   *time.Time
	Statuses    []string
	Types       []string
	Limit       int
	Offset      int
	OrderBy     string
	// Order is asc or desc
	Order string
}

// Values encodes the model as query parameters
func (s *SearchModel) Values() url.Values {
	v := url.Values{}
	if s == nil {
		return v
	}
	set := func(key, value string) {
		if value != "" {
			v.Set(key, value)
		}
	}
	set("partner_inn", s.PartnerINN)
	set("number", s.Number)
	if s.CreatedFrom != nil {
		v.Set("created_from", s.CreatedFrom.Format(time.RFC3339))
	}
	if s.CreatedTo != nil {
		v.Set("created_to", s.CreatedTo.Format(time.RFC3339))
	}
	for _, st := range s.Statuses {
		v.Add("status", st)
	}
	for _, t := range s.Types {
		v.Add("type", t)
	}
	if s.Limit > 0 {
		v.Set("limit", strconv.Itoa(s.Limit))
	}
	if s.Offset > 0 {
		v.Set("offset", strconv.Itoa(s.Offset))
	}
	set("order_by", s.OrderBy)
	set("order", s.Order)
	return v
}

// Document is an entry of a document listing
type Document struct {
	ID            string          `json:"id"`
	Number        string          `json:"number,omitempty"`
	Date          string          `json:"date,omitempty"`
	Type          string          `json:"type,omitempty"`
	Status        string          `json:"status,omitempty"`
	SenderINN     string          `json:"sender_inn,omitempty"`
	SenderName    string          `json:"sender_name,omitempty"`
	RecipientINN  string          `json:"recipient_inn,omitempty"`
	RecipientName string          `json:"recipient_name,omitempty"`
	Total         decimal.Decimal `json:"total_price"`
	VAT           decimal.Decimal `json:"total_vat_amount"`
	CreatedAt     string          `json:"created_at,omitempty"`
}

// DocumentCollection is a page of a document listing
type DocumentCollection struct {
	Total int        `json:"total"`
	Items []Document `json:"items"`
}

// List returns incoming or outgoing documents matching search
func (c *Client) List(ctx context.Context, dir Direction, search *SearchModel) (*DocumentCollection, error) {
	rep, err := c.invoke(ctx, request{
		method: http.MethodGet,
		path:   dir.path(),
		query:  search.Values(),
		header: http.Header{"Accept": {mediaJSON}},
	})
	if err != nil {
		return nil, err
	}

	var out DocumentCollection
	if err := rep.decode(&out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetContent returns the XML body of a document decoded to UTF-8
func (c *Client) GetContent(ctx context.Context, dir Direction, id string) (string, error) {
	rep, err := c.invoke(ctx, request{
		method: http.MethodGet,
		path:   dir.path() + "/" + url.PathEscape(id) + "/content",
	})
	if err != nil {
		return "", err
	}
	return rep.text()
}

// Archive is the ZIP package of a received document
type Archive struct {
	// FileName is taken from Content-Disposition and may be empty
	FileName string
	Content  []byte
}

// GetArchive downloads the package of an incoming document
func (c *Client) GetArchive(ctx context.Context, id string) (*Archive, error) {
	rep, err := c.invoke(ctx, request{
		method: http.MethodGet,
		path:   Incoming.path() + "/" + url.PathEscape(id),
	})
	if err != nil {
		return nil, err
	}

	a := &Archive{Content: rep.body}
	if _, params, err := mime.ParseMediaType(rep.header.Get("Content-Disposition")); err == nil {
		a.FileName = params["filename"]
	}
	return a, nil
}

// GetSignedDocument downloads an incoming document and unpacks its body
// and detached signature
func (c *Client) GetSignedDocument(ctx context.Context, id string) (model.SignedDocument, error) {
	a, err := c.GetArchive(ctx, id)
	if err != nil {
		return model.SignedDocument{}, err
	}
	return archive.Extract(a.Content, a.FileName, id)
}

// Sign signs an outgoing document that was uploaded as a draft
func (c *Client) Sign(ctx context.Context, id string) error {
	content, err := c.GetContent(ctx, Outgoing, id)
	if err != nil {
		return fmt.Errorf("get content: %w", err)
	}

	raw, err := wire.EncodeString(content)
	if err != nil {
		return err
	}
	signature, err := c.signer.SignBase64(ctx, base64.StdEncoding.EncodeToString(raw), c.opts.CertificateThumbprint)
	if err != nil {
		return fmt.Errorf("sign document: %w", err)
	}

	_, err = c.invoke(ctx, request{
		method:      http.MethodPost,
		path:        Outgoing.path() + "/" + url.PathEscape(id) + "/signature",
		body:        []byte(signature),
		contentType: "text/plain; charset=utf-8",
		header:      http.Header{"Content-Encoding": {"base64"}},
	})
	return err
}
