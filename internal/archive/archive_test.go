package archive_test

import (
	"archive/zip"
	"bytes"
	"encoding/base64"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rezonia/edo-upd/internal/archive"
	"github.com/rezonia/edo-upd/internal/model"
	"github.com/rezonia/edo-upd/internal/model/modeltest"
	"github.com/rezonia/edo-upd/internal/render"
	"github.com/rezonia/edo-upd/internal/render/wire"
)

func zipOf(t *testing.T, entries map[string][]byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	for name, data := range entries {
		f, err := w.Create(name)
		require.NoError(t, err)
		_, err = f.Write(data)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return buf.Bytes()
}

var signature = []byte{0x30, 0x82, 0x01, 0x0a, 0xff}

func TestExtract_RoundTrip(t *testing.T) {
	for _, g := range []model.Generation{model.GenerationV501, model.GenerationV503} {
		t.Run(string(g), func(t *testing.T) {
			p, err := render.NewRegistry().RenderSeller(modeltest.SellerDocument(g))
			require.NoError(t, err)

			pkg := zipOf(t, map[string][]byte{
				p.ID + ".xml": p.Content,
				p.ID + ".p7s": signature,
			})

			doc, err := archive.Extract(pkg, p.ID+".zip", "")
			require.NoError(t, err)
			assert.Equal(t, p.String(), doc.Content)
			assert.Equal(t, base64.StdEncoding.EncodeToString(signature), doc.Signature)

			encoded, err := wire.EncodeString(doc.Content)
			require.NoError(t, err)
			assert.Equal(t, p.Content, encoded)
		})
	}
}

func TestExtract_DeclaredFileName(t *testing.T) {
	content, err := wire.EncodeString(`<?xml version="1.0" encoding="windows-1251"?><Файл ИдФайл="ON_1"/>`)
	require.NoError(t, err)

	pkg := zipOf(t, map[string][]byte{
		"ON_1.xml":       content,
		"ON_1.p7s":       signature,
		"ON_1_other.xml": []byte("<x/>"),
		"card.xml":       []byte("<card/>"),
	})

	doc, err := archive.Extract(pkg, `ON_1.zip`, "ignored")
	require.NoError(t, err)
	assert.Contains(t, doc.Content, `ИдФайл="ON_1"`)
}

func TestExtract_DocumentIDPrefix(t *testing.T) {
	content, err := wire.EncodeString("<Файл/>")
	require.NoError(t, err)

	pkg := zipOf(t, map[string][]byte{
		"docs/a3f1_ON_NSCHFDOPPR.xml": content,
		"docs/a3f1_ON_NSCHFDOPPR.P7S": signature,
		"docs/b000.xml":               []byte("<other/>"),
	})

	doc, err := archive.Extract(pkg, "", "a3f1")
	require.NoError(t, err)
	assert.Equal(t, "<Файл/>", doc.Content)
}

func TestExtract_Errors(t *testing.T) {
	tests := []struct {
		name     string
		entries  map[string][]byte
		fileName string
		id       string
		want     error
	}{
		{
			name:    "no signature",
			entries: map[string][]byte{"a1.xml": []byte("<x/>")},
			id:      "a1",
			want:    archive.ErrEntryNotFound,
		},
		{
			name:     "declared name not present",
			entries:  map[string][]byte{"a1.xml": []byte("<x/>"), "a1.p7s": signature},
			fileName: "b2.zip",
			want:     archive.ErrEntryNotFound,
		},
		{
			name:    "two xml entries",
			entries: map[string][]byte{"a1.xml": []byte("<x/>"), "a1_2.xml": []byte("<y/>"), "a1.p7s": signature},
			id:      "a1",
			want:    archive.ErrAmbiguousEntry,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := archive.Extract(zipOf(t, tt.entries), tt.fileName, tt.id)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.want))

			var xerr *model.ExtractionError
			assert.ErrorAs(t, err, &xerr)
		})
	}
}

func TestExtract_NotZip(t *testing.T) {
	_, err := archive.Extract([]byte("not a zip"), "", "a1")
	var xerr *model.ExtractionError
	require.ErrorAs(t, err, &xerr)
	assert.Equal(t, "zip", xerr.Method)
}
