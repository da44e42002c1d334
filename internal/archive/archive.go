// Package archive unpacks the ZIP packages the operator returns for
// received documents: the document body (.xml) and its detached
// signature (.p7s).
package archive

import (
	"archive/zip"
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/samber/lo"

	"github.com/rezonia/edo-upd/internal/model"
	"github.com/rezonia/edo-upd/internal/render/wire"
)

// Entry extensions of a document package
const (
	ContentExt   = ".xml"
	SignatureExt = ".p7s"
)

var (
	// ErrEntryNotFound means the package has no entry of the expected kind
	ErrEntryNotFound = errors.New("archive entry not found")
	// ErrAmbiguousEntry means more than one entry matches the expected kind
	ErrAmbiguousEntry = errors.New("ambiguous archive entry")
)

// Extract returns the document body decoded from windows-1251 and its
// signature as base64. When fileName is known the entries <base>.xml and
// <base>.p7s are taken literally, otherwise entries are matched by the
// documentID prefix.
func Extract(content []byte, fileName, documentID string) (model.SignedDocument, error) {
	r, err := zip.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return model.SignedDocument{}, model.NewExtractionError("zip", "invalid archive", err)
	}

	files := lo.Filter(r.File, func(f *zip.File, _ int) bool {
		return !f.FileInfo().IsDir()
	})

	var match func(f *zip.File, ext string) bool
	if base := baseName(fileName); base != "" {
		match = func(f *zip.File, ext string) bool {
			return path.Base(f.Name) == base+ext
		}
	} else {
		match = func(f *zip.File, ext string) bool {
			name := path.Base(f.Name)
			return strings.HasPrefix(name, documentID) && strings.EqualFold(path.Ext(name), ext)
		}
	}

	xmlFile, err := single(files, ContentExt, match)
	if err != nil {
		return model.SignedDocument{}, err
	}
	sigFile, err := single(files, SignatureExt, match)
	if err != nil {
		return model.SignedDocument{}, err
	}

	raw, err := read(xmlFile)
	if err != nil {
		return model.SignedDocument{}, err
	}
	body, err := wire.Decode(raw)
	if err != nil {
		return model.SignedDocument{}, model.NewExtractionError("decode", xmlFile.Name, err)
	}

	sig, err := read(sigFile)
	if err != nil {
		return model.SignedDocument{}, err
	}

	return model.SignedDocument{
		Content:   body,
		Signature: base64.StdEncoding.EncodeToString(sig),
	}, nil
}

// baseName strips directories and the extension of a declared file name
func baseName(fileName string) string {
	name := path.Base(strings.ReplaceAll(strings.TrimSpace(fileName), `\`, "/"))
	if name == "." || name == "/" {
		return ""
	}
	return strings.TrimSuffix(name, path.Ext(name))
}

func single(files []*zip.File, ext string, match func(*zip.File, string) bool) (*zip.File, error) {
	found := lo.Filter(files, func(f *zip.File, _ int) bool {
		return match(f, ext)
	})
	switch len(found) {
	case 0:
		return nil, model.NewExtractionError("zip", "no "+ext+" entry", ErrEntryNotFound)
	case 1:
		return found[0], nil
	default:
		names := lo.Map(found, func(f *zip.File, _ int) string { return f.Name })
		return nil, model.NewExtractionError("zip", fmt.Sprintf("%d %s entries: %s", len(found), ext, strings.Join(names, ", ")), ErrAmbiguousEntry)
	}
}

func read(f *zip.File) ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, model.NewExtractionError("zip", "open "+f.Name, err)
	}
	defer rc.Close()

	b, err := io.ReadAll(rc)
	if err != nil {
		return nil, model.NewExtractionError("zip", "read "+f.Name, err)
	}
	return b, nil
}
