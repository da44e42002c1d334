package crpt_test

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/rezonia/edo-upd/internal/crpt"
	"github.com/rezonia/edo-upd/internal/logger"
	"github.com/rezonia/edo-upd/internal/mocks"
)

const (
	thumbprint = "A1B2C3"
	challenge  = "challenge-data"
)

// signature is what the fake signer returns for data
func signature(data string) string {
	return "sig:" + data
}

// operator is a fake operator API. Session requests are served by
// default; tests add their own document routes.
type operator struct {
	t   *testing.T
	mux *http.ServeMux
	srv *httptest.Server

	mu     sync.Mutex
	issued int
	auth   []string
}

func newOperator(t *testing.T) *operator {
	t.Helper()

	o := &operator{t: t, mux: http.NewServeMux()}
	o.mux.HandleFunc("GET /api/v1/session", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"uuid": "session-uuid", "data": challenge})
	})
	o.mux.HandleFunc("POST /api/v1/session", func(w http.ResponseWriter, r *http.Request) {
		var key struct {
			UUID string `json:"uuid"`
			Data string `json:"data"`
		}
		if err := json.NewDecoder(r.Body).Decode(&key); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error_message": err.Error()})
			return
		}
		want := signature(base64.StdEncoding.EncodeToString([]byte(challenge)))
		if key.UUID != "session-uuid" || key.Data != want {
			writeJSON(w, http.StatusForbidden, map[string]string{"error_message": "bad signature"})
			return
		}

		o.mu.Lock()
		o.issued++
		n := o.issued
		o.mu.Unlock()
		writeJSON(w, http.StatusOK, map[string]string{"token": fmt.Sprintf("token-%d", n), "type": "Bearer"})
	})

	o.srv = httptest.NewServer(o.mux)
	t.Cleanup(o.srv.Close)
	return o
}

// handle registers a document route and records its Authorization headers
func (o *operator) handle(pattern string, h http.HandlerFunc) {
	o.mux.HandleFunc(pattern, func(w http.ResponseWriter, r *http.Request) {
		o.mu.Lock()
		o.auth = append(o.auth, r.Header.Get("Authorization"))
		o.mu.Unlock()
		h(w, r)
	})
}

func (o *operator) tokensIssued() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.issued
}

func (o *operator) authHeaders() []string {
	o.mu.Lock()
	defer o.mu.Unlock()
	return append([]string(nil), o.auth...)
}

func (o *operator) options() crpt.Options {
	return crpt.Options{
		ServiceURL:            o.srv.URL,
		AuthURL:               o.srv.URL,
		CertificateThumbprint: thumbprint,
	}
}

func (o *operator) client(options ...crpt.Option) *crpt.Client {
	o.t.Helper()

	options = append([]crpt.Option{
		crpt.WithHTTPClient(o.srv.Client()),
		crpt.WithLogger(logger.Discard()),
	}, options...)

	c, err := crpt.New(o.options(), newSigner(o.t), options...)
	require.NoError(o.t, err)
	return c
}

func newSigner(t *testing.T) *mocks.MockSigner {
	ctrl := gomock.NewController(t)
	s := mocks.NewMockSigner(ctrl)
	s.EXPECT().
		SignBase64(gomock.Any(), gomock.Any(), thumbprint).
		DoAndReturn(func(_ context.Context, data, _ string) (string, error) {
			return signature(data), nil
		}).
		AnyTimes()
	return s
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
