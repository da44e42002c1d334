package crpt

import (
	"errors"
	"strings"
)

// Options are the operator endpoints and the signing certificate
type Options struct {
	// ServiceURL is the base of the document API
	ServiceURL string
	// AuthURL is the base of the session API
	AuthURL string
	// CertificateThumbprint selects the signing certificate
	CertificateThumbprint string
}

// Validate checks that both endpoints are set
func (o Options) Validate() error {
	var errs []error
	if strings.TrimSpace(o.AuthURL) == "" {
		errs = append(errs, errors.New("auth url is required"))
	}
	if strings.TrimSpace(o.ServiceURL) == "" {
		errs = append(errs, errors.New("service url is required"))
	}
	return errors.Join(errs...)
}

func joinURL(base, path string) string {
	return strings.TrimRight(base, "/") + path
}
