package crpt

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync"
)

const sessionPath = "/api/v1/session"

// Token is a bearer token of the operator API
type Token struct {
	Value string `json:"token"`
	Type  string `json:"type"`
}

// Header returns the Authorization header value
func (t *Token) Header() string {
	return t.Type + " " + t.Value
}

// authKey is the session challenge; Data is replaced by its signature
// before it is sent back
type authKey struct {
	UUID string `json:"uuid"`
	Data string `json:"data"`
}

// TokenManager acquires a token by signing the session challenge and
// caches it for the lifetime of the manager
type TokenManager struct {
	client *http.Client
	opts   Options
	signer Signer
	log    *slog.Logger

	mu    sync.Mutex
	token *Token
}

// NewTokenManager creates an empty token cache
func NewTokenManager(client *http.Client, opts Options, signer Signer, log *slog.Logger) *TokenManager {
	return &TokenManager{
		client: client,
		opts:   opts,
		signer: signer,
		log:    log,
	}
}

// Token returns the cached token or acquires a new one. Concurrent
// callers share a single acquisition.
func (m *TokenManager) Token(ctx context.Context) (*Token, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.token != nil {
		return m.token, nil
	}

	token, err := m.acquire(ctx)
	if err != nil {
		return nil, err
	}
	m.token = token
	m.log.DebugContext(ctx, "token acquired", "type", token.Type)
	return token, nil
}

// Invalidate drops the cached token if it is still stale. A token that
// was already replaced by another caller is kept.
func (m *TokenManager) Invalidate(ctx context.Context, stale *Token) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.token == nil || m.token != stale {
		return false
	}
	m.token = nil
	m.log.DebugContext(ctx, "token invalidated")
	return true
}

func (m *TokenManager) acquire(ctx context.Context) (*Token, error) {
	key, err := m.challenge(ctx)
	if err != nil {
		return nil, err
	}

	data := base64.StdEncoding.EncodeToString([]byte(key.Data))
	signature, err := m.signer.SignBase64(ctx, data, m.opts.CertificateThumbprint)
	if err != nil {
		return nil, fmt.Errorf("sign challenge: %w", err)
	}
	key.Data = signature

	b, err := json.Marshal(key)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, joinURL(m.opts.AuthURL, sessionPath), bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json; charset=utf-8")
	req.Header.Set("Accept", "application/json")

	status, code, body, err := m.send(req)
	if err != nil {
		return nil, err
	}

	if code < 200 || code > 299 {
		apiErr := &APIError{StatusCode: code, Status: status, Body: string(body)}
		if len(body) > 0 {
			var envelope ErrorModel
			if err := json.Unmarshal(body, &envelope); err != nil {
				envelope = ErrorModel{Errors: []ErrorInfo{{ErrorMessage: string(body)}}}
			}
			apiErr.Envelope = &envelope
		}
		return nil, apiErr
	}

	var token Token
	if err := json.Unmarshal(body, &token); err != nil || token.Value == "" {
		return nil, fmt.Errorf("%w\n%s", ErrTokenFormation, body)
	}
	return &token, nil
}

func (m *TokenManager) challenge(ctx context.Context) (*authKey, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, joinURL(m.opts.AuthURL, sessionPath), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	status, code, body, err := m.send(req)
	if err != nil {
		return nil, err
	}

	if code < 200 || code > 299 {
		return nil, &APIError{StatusCode: code, Status: status, Body: string(body)}
	}

	var key authKey
	if err := json.Unmarshal(body, &key); err != nil {
		return nil, fmt.Errorf("%w\n%s", ErrTokenFormation, body)
	}
	return &key, nil
}

func (m *TokenManager) send(req *http.Request) (string, int, []byte, error) {
	resp, err := m.client.Do(req)
	if err != nil {
		return "", 0, nil, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", 0, nil, fmt.Errorf("read body: %w", err)
	}
	return reasonPhrase(resp), resp.StatusCode, body, nil
}

// reasonPhrase strips the status code from resp.Status
func reasonPhrase(resp *http.Response) string {
	if _, text, ok := strings.Cut(resp.Status, " "); ok && text != "" {
		return text
	}
	return http.StatusText(resp.StatusCode)
}
