// Package crpt is a client of the CRPT document exchange operator API:
// session tokens, document listing and retrieval, signing, submission of
// seller files and acknowledgement of received ones.
package crpt

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"net/url"

	"github.com/rezonia/edo-upd/internal/model"
	"github.com/rezonia/edo-upd/internal/parser"
	"github.com/rezonia/edo-upd/internal/render"
	"github.com/rezonia/edo-upd/internal/render/wire"
	"github.com/rezonia/edo-upd/internal/transport"
)

const (
	mediaJSON        = "application/json"
	mediaOctetStream = "application/octet-stream"
)

// Renderer renders documents for submission
type Renderer interface {
	RenderSeller(d *model.SellerDocument) (wire.Payload, error)
	RenderBuyer(d *model.BuyerDocument) (wire.Payload, error)
}

// SellerInfoParser reads the seller document info from a received file
type SellerInfoParser interface {
	Parse(ctx context.Context, doc model.SignedDocument) (*model.SellerDocumentInfo, error)
}

var (
	_ Renderer         = (*render.Registry)(nil)
	_ SellerInfoParser = (*parser.Registry)(nil)
)

// Client calls the operator API
type Client struct {
	opts     Options
	http     *http.Client
	signer   Signer
	tokens   *TokenManager
	renderer Renderer
	parser   SellerInfoParser
	log      *slog.Logger
}

// Option customizes a Client
type Option func(*Client)

// WithHTTPClient replaces the default logging client
func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) { cl.http = c }
}

// WithLogger sets the logger
func WithLogger(l *slog.Logger) Option {
	return func(cl *Client) { cl.log = l }
}

// WithRenderer replaces the generation registry used by Submit and Acknowledge
func WithRenderer(r Renderer) Option {
	return func(cl *Client) { cl.renderer = r }
}

// WithParser replaces the seller info parser used by Acknowledge
func WithParser(p SellerInfoParser) Option {
	return func(cl *Client) { cl.parser = p }
}

// New creates a client. The token cache belongs to the client.
func New(opts Options, signer Signer, options ...Option) (*Client, error) {
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("validate options: %w", err)
	}
	if signer == nil {
		return nil, errors.New("signer is required")
	}

	c := &Client{
		opts:   opts,
		signer: signer,
	}
	for _, o := range options {
		o(c)
	}

	if c.log == nil {
		c.log = slog.Default()
	}
	if c.http == nil {
		c.http = transport.NewHTTPClient(transport.Options{Logger: c.log})
	}
	if c.renderer == nil {
		c.renderer = render.NewRegistry()
	}
	if c.parser == nil {
		c.parser = parser.NewRegistry()
	}
	c.tokens = NewTokenManager(c.http, opts, signer, c.log)

	return c, nil
}

// Tokens returns the token cache of the client
func (c *Client) Tokens() *TokenManager {
	return c.tokens
}

// request is an API call that can be sent more than once
type request struct {
	method      string
	path        string
	query       url.Values
	body        []byte
	contentType string
	header      http.Header
}

// reply is a successful response
type reply struct {
	mediaType string
	header    http.Header
	body      []byte
}

// invoke sends the request with a bearer token. A 401 invalidates the
// token and the request is repeated once with a fresh one.
func (c *Client) invoke(ctx context.Context, r request) (*reply, error) {
	for attempt := 0; ; attempt++ {
		token, err := c.tokens.Token(ctx)
		if err != nil {
			return nil, fmt.Errorf("get token: %w", err)
		}

		rep, err := c.send(ctx, r, token)
		if err == nil {
			return rep, nil
		}
		if attempt == 0 && errors.Is(err, ErrUnauthorized) {
			c.tokens.Invalidate(ctx, token)
			continue
		}
		return nil, err
	}
}

func (c *Client) send(ctx context.Context, r request, token *Token) (*reply, error) {
	target := joinURL(c.opts.ServiceURL, r.path)
	if len(r.query) > 0 {
		target += "?" + r.query.Encode()
	}

	var body io.Reader
	if r.body != nil {
		body = bytes.NewReader(r.body)
	}

	req, err := http.NewRequestWithContext(ctx, r.method, target, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	for k, v := range r.header {
		req.Header[k] = v
	}
	if r.contentType != "" {
		req.Header.Set("Content-Type", r.contentType)
	}
	req.Header.Set("Authorization", token.Header())

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	mediaType, _, _ := mime.ParseMediaType(resp.Header.Get("Content-Type"))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{StatusCode: resp.StatusCode, Status: reasonPhrase(resp), Body: string(b)}
		if len(b) > 0 && mediaType == mediaJSON {
			var envelope ErrorModel
			if err := json.Unmarshal(b, &envelope); err == nil {
				apiErr.Envelope = &envelope
			}
		}
		return nil, apiErr
	}

	return &reply{mediaType: mediaType, header: resp.Header, body: b}, nil
}

// decode unmarshals a JSON reply; an empty body leaves out untouched
func (r *reply) decode(out any) error {
	if len(r.body) == 0 {
		return nil
	}
	if err := json.Unmarshal(r.body, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// text returns the reply body, decoding windows-1251 octet streams
func (r *reply) text() (string, error) {
	if r.mediaType == mediaOctetStream {
		return wire.Decode(r.body)
	}
	return string(r.body), nil
}
