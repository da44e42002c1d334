package crpt

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/textproto"

	"github.com/rezonia/edo-upd/internal/model"
	"github.com/rezonia/edo-upd/internal/render/wire"
)

// Multipart field names of the upload endpoints
const (
	FieldContent   = "content"
	FieldSignature = "signature"
	FieldDocID     = "doc_id"
)

// Result is the outcome of Submit and Acknowledge. Err is set instead of
// returning an error; Content holds the rendered XML whenever rendering
// succeeded.
type Result struct {
	Content string `json:"content,omitempty"`
	ID      string `json:"id,omitempty"`
	Err     error  `json:"-"`
}

// OK reports whether the call succeeded
func (r *Result) OK() bool {
	return r.Err == nil
}

type stringResult struct {
	ID string `json:"id"`
}

// SubmitPath returns the upload endpoint of a seller document.
// Corrections go to the updi endpoint.
func SubmitPath(d *model.SellerDocument) string {
	if d.IsCorrection() {
		return Outgoing.path() + "/xml/updi"
	}
	return Outgoing.path()
}

// AcknowledgePath returns the title endpoint for the seller document
// being answered. 5.03 titles use the /970 variant.
func AcknowledgePath(g model.Generation, info *model.SellerDocumentInfo) string {
	kind := "upd"
	if info != nil && info.IsCorrection {
		kind = "updi"
	}
	path := Incoming.path() + "/xml/" + kind + "/title"
	if g == model.GenerationV503 {
		path += "/970"
	}
	return path
}

// Submit renders and uploads a seller document. A draft is uploaded
// without a signature and is not sent to the recipient.
func (c *Client) Submit(ctx context.Context, d *model.SellerDocument, draft bool) *Result {
	res := &Result{}
	if err := c.submit(ctx, d, draft, res); err != nil {
		c.log.ErrorContext(ctx, "Ошибка при отправки универсального передаточного документа.", "error", err)
		res.Err = err
	}
	return res
}

func (c *Client) submit(ctx context.Context, d *model.SellerDocument, draft bool, res *Result) error {
	payload, err := c.renderer.RenderSeller(d)
	if err != nil {
		return fmt.Errorf("render seller document: %w", err)
	}
	res.Content = payload.String()

	f := newForm()
	if err := f.content(payload); err != nil {
		return err
	}
	if !draft {
		if err := c.attachSignature(ctx, f, payload); err != nil {
			return err
		}
	}

	id, err := c.upload(ctx, SubmitPath(d), f)
	if err != nil {
		return err
	}
	res.ID = id
	return nil
}

// Acknowledge answers a received seller document with a buyer title. The
// seller document info is read from the received package, so
// d.SellerInfo is ignored.
func (c *Client) Acknowledge(ctx context.Context, d *model.BuyerDocument) *Result {
	res := &Result{}
	if err := c.acknowledge(ctx, d, res); err != nil {
		c.log.ErrorContext(ctx, "Ошибка при добавлении извещения о получении к документу.", "error", err)
		res.Err = err
	}
	return res
}

func (c *Client) acknowledge(ctx context.Context, d *model.BuyerDocument, res *Result) error {
	if d == nil {
		return model.NewRequiredError("document", "document is nil")
	}
	if d.EdmDocumentID == "" {
		return model.NewRequiredError("edm_document_id", "Не указан идентификатор документа в системе ЭДО.")
	}

	signed, err := c.GetSignedDocument(ctx, d.EdmDocumentID)
	if err != nil {
		return fmt.Errorf("get seller document: %w", err)
	}
	info, err := c.parser.Parse(ctx, signed)
	if err != nil {
		return fmt.Errorf("parse seller document: %w", err)
	}

	doc := *d
	doc.SellerInfo = info

	payload, err := c.renderer.RenderBuyer(&doc)
	if err != nil {
		return fmt.Errorf("render buyer document: %w", err)
	}
	res.Content = payload.String()

	f := newForm()
	if err := f.content(payload); err != nil {
		return err
	}
	if err := f.text(FieldDocID, d.EdmDocumentID, nil); err != nil {
		return err
	}
	if err := c.attachSignature(ctx, f, payload); err != nil {
		return err
	}

	id, err := c.upload(ctx, AcknowledgePath(d.Generation, info), f)
	if err != nil {
		return err
	}
	res.ID = id
	return nil
}

func (c *Client) attachSignature(ctx context.Context, f *form, payload wire.Payload) error {
	data := base64.StdEncoding.EncodeToString(payload.Content)
	signature, err := c.signer.SignBase64(ctx, data, c.opts.CertificateThumbprint)
	if err != nil {
		return fmt.Errorf("sign document: %w", err)
	}
	return f.text(FieldSignature, signature, textproto.MIMEHeader{"Content-Encoding": {"base64"}})
}

func (c *Client) upload(ctx context.Context, path string, f *form) (string, error) {
	body, contentType, err := f.close()
	if err != nil {
		return "", err
	}

	rep, err := c.invoke(ctx, request{
		method:      http.MethodPost,
		path:        path,
		body:        body,
		contentType: contentType,
		header:      http.Header{"Accept": {mediaJSON}},
	})
	if err != nil {
		return "", err
	}

	var out stringResult
	if err := rep.decode(&out); err != nil {
		return "", err
	}
	return out.ID, nil
}

// form builds a multipart/form-data body
type form struct {
	buf bytes.Buffer
	w   *multipart.Writer
}

func newForm() *form {
	f := &form{}
	f.w = multipart.NewWriter(&f.buf)
	return f
}

// content adds the rendered XML named after the file id
func (f *form) content(p wire.Payload) error {
	h := textproto.MIMEHeader{}
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, FieldContent, p.ID))
	h.Set("Content-Type", "text/xml")

	part, err := f.w.CreatePart(h)
	if err != nil {
		return fmt.Errorf("create %s part: %w", FieldContent, err)
	}
	if _, err := part.Write(p.Content); err != nil {
		return fmt.Errorf("write %s part: %w", FieldContent, err)
	}
	return nil
}

func (f *form) text(name, value string, extra textproto.MIMEHeader) error {
	h := textproto.MIMEHeader{}
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q`, name))
	h.Set("Content-Type", "text/plain; charset=utf-8")
	for k, v := range extra {
		h[k] = v
	}

	part, err := f.w.CreatePart(h)
	if err != nil {
		return fmt.Errorf("create %s part: %w", name, err)
	}
	if _, err := part.Write([]byte(value)); err != nil {
		return fmt.Errorf("write %s part: %w", name, err)
	}
	return nil
}

func (f *form) close() ([]byte, string, error) {
	if err := f.w.Close(); err != nil {
		return nil, "", fmt.Errorf("close multipart: %w", err)
	}
	return f.buf.Bytes(), f.w.FormDataContentType(), nil
}
