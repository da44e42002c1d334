package crpt_test

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/base64"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rezonia/edo-upd/internal/crpt"
	"github.com/rezonia/edo-upd/internal/model"
	"github.com/rezonia/edo-upd/internal/model/modeltest"
	"github.com/rezonia/edo-upd/internal/render/v503"
	"github.com/rezonia/edo-upd/internal/render/wire"
)

// formPart is a received multipart part
type formPart struct {
	header map[string][]string
	body   []byte
}

func (p formPart) get(key string) string {
	if v := p.header[key]; len(v) > 0 {
		return v[0]
	}
	return ""
}

func readForm(t *testing.T, r *http.Request) map[string]formPart {
	t.Helper()

	mediaType, params, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	require.NoError(t, err)
	require.Equal(t, "multipart/form-data", mediaType)

	parts := map[string]formPart{}
	mr := multipart.NewReader(r.Body, params["boundary"])
	for {
		p, err := mr.NextPart()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		b, err := io.ReadAll(p)
		require.NoError(t, err)
		parts[p.FormName()] = formPart{header: p.Header, body: b}
	}
	return parts
}

func TestClient_Submit(t *testing.T) {
	d := modeltest.SellerDocument(model.GenerationV503)

	tests := []struct {
		name  string
		draft bool
		parts []string
	}{
		{"draft", true, []string{crpt.FieldContent}},
		{"signed", false, []string{crpt.FieldContent, crpt.FieldSignature}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			op := newOperator(t)
			var parts map[string]formPart
			op.handle("POST /api/v1/outgoing-documents", func(w http.ResponseWriter, r *http.Request) {
				parts = readForm(t, r)
				writeJSON(w, http.StatusOK, map[string]string{"id": "edm-1"})
			})

			res := op.client().Submit(context.Background(), d, tt.draft)
			require.NoError(t, res.Err)
			assert.True(t, res.OK())
			assert.Equal(t, "edm-1", res.ID)
			assert.Contains(t, res.Content, `ИдФайл="`+d.FileID+`"`)

			require.Len(t, parts, len(tt.parts))
			for _, name := range tt.parts {
				assert.Contains(t, parts, name)
			}

			content := parts[crpt.FieldContent]
			assert.Equal(t, "text/xml", content.get("Content-Type"))
			_, params, err := mime.ParseMediaType(content.get("Content-Disposition"))
			require.NoError(t, err)
			assert.Equal(t, d.FileID, params["filename"])

			body, err := wire.Decode(content.body)
			require.NoError(t, err)
			assert.Equal(t, res.Content, body)

			if !tt.draft {
				sig := parts[crpt.FieldSignature]
				assert.Equal(t, "base64", sig.get("Content-Encoding"))
				assert.Equal(t, "text/plain; charset=utf-8", sig.get("Content-Type"))
				assert.Equal(t, signature(base64.StdEncoding.EncodeToString(content.body)), string(sig.body))
			}
		})
	}
}

func TestClient_SubmitCorrection(t *testing.T) {
	d := modeltest.SellerDocument(model.GenerationV503)
	d.RevisionNumber = "1"
	d.RevisionDate = &d.Date

	op := newOperator(t)
	op.handle("POST /api/v1/outgoing-documents/xml/updi", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"id": "edm-2"})
	})

	res := op.client().Submit(context.Background(), d, false)
	require.NoError(t, res.Err)
	assert.Equal(t, "edm-2", res.ID)
}

func TestClient_SubmitErrors(t *testing.T) {
	t.Run("validation", func(t *testing.T) {
		op := newOperator(t)
		d := modeltest.SellerDocument(model.GenerationV503)
		d.Buyers = nil

		res := op.client().Submit(context.Background(), d, false)
		require.ErrorIs(t, res.Err, model.ErrValidation)
		assert.False(t, res.OK())
		assert.Empty(t, res.Content)
		assert.Zero(t, op.tokensIssued())
	})

	t.Run("api", func(t *testing.T) {
		op := newOperator(t)
		op.handle("POST /api/v1/outgoing-documents", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusConflict, map[string]string{"error_message": "Документ уже существует"})
		})

		res := op.client().Submit(context.Background(), modeltest.SellerDocument(model.GenerationV501), true)
		var apiErr *crpt.APIError
		require.ErrorAs(t, res.Err, &apiErr)
		assert.Equal(t, "Документ уже существует", apiErr.Message())
		assert.NotEmpty(t, res.Content)
		assert.Empty(t, res.ID)
	})
}

// sellerArchive zips a rendered seller file with a detached signature
func sellerArchive(t *testing.T, d *model.SellerDocument) []byte {
	t.Helper()

	p, err := v503.New().RenderSeller(d)
	require.NoError(t, err)

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, body := range map[string][]byte{
		d.FileID + ".xml": p.Content,
		d.FileID + ".p7s": []byte("MII"),
	} {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write(body)
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func TestClient_Acknowledge(t *testing.T) {
	tests := []struct {
		name       string
		generation model.Generation
		correction bool
		path       string
	}{
		{"5.03", model.GenerationV503, false, "/api/v1/incoming-documents/xml/upd/title/970"},
		{"5.03 correction", model.GenerationV503, true, "/api/v1/incoming-documents/xml/updi/title/970"},
		{"5.01", model.GenerationV501, false, "/api/v1/incoming-documents/xml/upd/title"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seller := modeltest.SellerDocument(model.GenerationV503)
			if tt.correction {
				seller.RevisionNumber = "1"
				seller.RevisionDate = &seller.Date
			}
			zipped := sellerArchive(t, seller)

			d := modeltest.BuyerDocument(tt.generation)
			original := *d.SellerInfo
			d.SellerInfo.FileID = "ignored"

			op := newOperator(t)
			op.handle("GET /api/v1/incoming-documents/{id}", func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, d.EdmDocumentID, r.PathValue("id"))
				w.Header().Set("Content-Type", "application/zip")
				w.Header().Set("Content-Disposition", `attachment; filename="`+seller.FileID+`.zip"`)
				_, _ = w.Write(zipped)
			})

			var parts map[string]formPart
			op.handle("POST "+tt.path, func(w http.ResponseWriter, r *http.Request) {
				parts = readForm(t, r)
				writeJSON(w, http.StatusOK, map[string]string{"id": "edm-title"})
			})

			res := op.client().Acknowledge(context.Background(), d)
			require.NoError(t, res.Err)
			assert.Equal(t, "edm-title", res.ID)

			require.Len(t, parts, 3)
			assert.Equal(t, d.EdmDocumentID, string(parts[crpt.FieldDocID].body))
			assert.Equal(t, "base64", parts[crpt.FieldSignature].get("Content-Encoding"))

			doc, err := wire.ReadDocument(parts[crpt.FieldContent].body)
			require.NoError(t, err)
			el := doc.FindElement("/Файл/Документ/ИдИнфПрод")
			require.NotNil(t, el)
			assert.Equal(t, seller.FileID, el.SelectAttrValue("ИдФайлИнфПр", ""))
			assert.Equal(t, "TUlJ", strings.TrimSpace(el.FindElement("ЭП").Text()))

			assert.Equal(t, "ignored", d.SellerInfo.FileID)
			assert.Equal(t, original.Number, d.SellerInfo.Number)
		})
	}
}

func TestClient_AcknowledgeErrors(t *testing.T) {
	t.Run("no document id", func(t *testing.T) {
		op := newOperator(t)
		d := modeltest.BuyerDocument(model.GenerationV503)
		d.EdmDocumentID = ""

		res := op.client().Acknowledge(context.Background(), d)
		var verr *model.ValidationError
		require.ErrorAs(t, res.Err, &verr)
		assert.Equal(t, "edm_document_id", verr.Field)
	})

	t.Run("not a zip", func(t *testing.T) {
		op := newOperator(t)
		op.handle("GET /api/v1/incoming-documents/{id}", func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("plain"))
		})

		res := op.client().Acknowledge(context.Background(), modeltest.BuyerDocument(model.GenerationV503))
		var extErr *model.ExtractionError
		require.ErrorAs(t, res.Err, &extErr)
		assert.Empty(t, res.Content)
	})
}

func TestAcknowledgePath(t *testing.T) {
	info := &model.SellerDocumentInfo{IsCorrection: true}
	assert.Equal(t, "/api/v1/incoming-documents/xml/updi/title", crpt.AcknowledgePath(model.GenerationV501, info))
	assert.Equal(t, "/api/v1/incoming-documents/xml/upd/title/970", crpt.AcknowledgePath(model.GenerationV503, nil))
}

func TestSubmitPath(t *testing.T) {
	d := modeltest.SellerDocument(model.GenerationV501)
	assert.Equal(t, "/api/v1/outgoing-documents", crpt.SubmitPath(d))

	d.RevisionNumber = "2"
	d.RevisionDate = ptr(time.Date(2024, time.April, 1, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, "/api/v1/outgoing-documents/xml/updi", crpt.SubmitPath(d))
}

func ptr[T any](v T) *T {
	return &v
}
