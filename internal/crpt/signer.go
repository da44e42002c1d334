package crpt

import "context"

//go:generate go run go.uber.org/mock/mockgen@latest -source=signer.go -destination=../mocks/signer.go -package=mocks -typed

// Signer produces a detached signature of base64 encoded data with the
// certificate identified by thumbprint. The signature is base64 too.
type Signer interface {
	SignBase64(ctx context.Context, data, thumbprint string) (string, error)
}
