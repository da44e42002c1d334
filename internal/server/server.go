package server

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gofrs/uuid/v5"

	"github.com/rezonia/edo-upd/internal/archive"
	"github.com/rezonia/edo-upd/internal/crpt"
	"github.com/rezonia/edo-upd/internal/logger"
	"github.com/rezonia/edo-upd/internal/model"
	"github.com/rezonia/edo-upd/internal/parser"
	"github.com/rezonia/edo-upd/internal/render"
	"github.com/rezonia/edo-upd/internal/render/wire"
)

const (
	kindSeller = "seller"
	kindBuyer  = "buyer"

	headerContentID         = "X-Content-Id"
	headerRequestID         = "X-Request-Id"
	headerDetachedSignature = "X-Detached-Signature"

	mediaWindows1251XML = "text/xml; charset=windows-1251"
)

// Config holds server configuration
type Config struct {
	Address      string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	Debug        bool
}

// Operator submits and acknowledges documents at the exchange operator
type Operator interface {
	Submit(ctx context.Context, d *model.SellerDocument, draft bool) *crpt.Result
	Acknowledge(ctx context.Context, d *model.BuyerDocument) *crpt.Result
}

var _ Operator = (*crpt.Client)(nil)

// Server represents the HTTP API server
type Server struct {
	router   *gin.Engine
	renderer *render.Registry
	parser   *parser.Registry
	operator Operator
	log      *slog.Logger
}

// Option customizes a Server
type Option func(*Server)

// WithOperator enables the document endpoints
func WithOperator(op Operator) Option {
	return func(s *Server) { s.operator = op }
}

// WithLogger sets the logger
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) { s.log = l }
}

// NewServer creates a new API server
func NewServer(config *Config, opts ...Option) *Server {
	if !config.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	s := &Server{
		renderer: render.NewRegistry(),
		parser:   parser.NewRegistry(),
		log:      slog.Default(),
	}
	for _, o := range opts {
		o(s)
	}

	router := gin.New()
	router.Use(gin.Recovery(), s.requestID())
	if config.Debug {
		router.Use(gin.Logger())
	}
	s.router = router

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.router.GET("/health", s.handleHealth)

	v1 := s.router.Group("/api/v1")
	{
		v1.POST("/render/:generation/:kind", s.handleRender)
		v1.POST("/archive/extract", s.handleExtract)
		v1.POST("/seller-info", s.handleSellerInfo)

		documents := v1.Group("/documents/:generation", s.requireOperator)
		documents.POST("/submit", s.handleSubmit)
		documents.POST("/acknowledge", s.handleAcknowledge)
	}
}

// Handler returns the http.Handler for use with custom servers
func (s *Server) Handler() http.Handler {
	return s.router
}

// requestID takes X-Request-Id or generates one and puts it in the
// request context for logging
func (s *Server) requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(headerRequestID)
		if id == "" {
			if u, err := uuid.NewV4(); err == nil {
				id = u.String()
			}
		}
		c.Header(headerRequestID, id)
		c.Request = c.Request.WithContext(logger.WithRequestID(c.Request.Context(), id))
		c.Next()
	}
}

func (s *Server) requireOperator(c *gin.Context) {
	if s.operator == nil {
		c.AbortWithStatusJSON(http.StatusServiceUnavailable, ErrorResponse{
			Error:   "operator client is not configured",
			Details: "set CRPT_SERVICE_URL and SIGNER_COMMAND",
		})
		return
	}
	c.Next()
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":   "ok",
		"time":     time.Now().UTC().Format(time.RFC3339),
		"operator": s.operator != nil,
	})
}

func (s *Server) handleRender(c *gin.Context) {
	gen, ok := s.generation(c)
	if !ok {
		return
	}
	body, ok := readBody(c)
	if !ok {
		return
	}

	ctx := logger.WithOperation(c.Request.Context(), "render")

	var (
		p   wire.Payload
		err error
	)
	switch c.Param("kind") {
	case kindSeller:
		var d model.SellerDocument
		if err := json.Unmarshal(body, &d); err != nil {
			s.badJSON(c, err)
			return
		}
		d.Generation = gen
		p, err = s.renderer.RenderSeller(&d)
	case kindBuyer:
		var d model.BuyerDocument
		if err := json.Unmarshal(body, &d); err != nil {
			s.badJSON(c, err)
			return
		}
		d.Generation = gen
		p, err = s.renderer.RenderBuyer(&d)
	default:
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "unknown document kind " + strconv.Quote(c.Param("kind"))})
		return
	}
	if err != nil {
		s.log.WarnContext(ctx, "render failed", "generation", gen, "error", err)
		s.writeError(c, err)
		return
	}

	c.Header(headerContentID, p.ID)
	c.Data(http.StatusOK, mediaWindows1251XML, p.Content)
}

func (s *Server) handleExtract(c *gin.Context) {
	body, ok := readBody(c)
	if !ok {
		return
	}

	signed, err := archive.Extract(body, c.Query("file_name"), c.Query("document_id"))
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, signed)
}

func (s *Server) handleSellerInfo(c *gin.Context) {
	body, ok := readBody(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 30*time.Second)
	defer cancel()

	content, err := wire.DecodeText(body)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "failed to decode request body", Details: err.Error()})
		return
	}

	info, err := s.parser.Parse(ctx, model.SignedDocument{
		Content:   content,
		Signature: c.GetHeader(headerDetachedSignature),
	})
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, info)
}

func (s *Server) handleSubmit(c *gin.Context) {
	gen, ok := s.generation(c)
	if !ok {
		return
	}
	body, ok := readBody(c)
	if !ok {
		return
	}
	var d model.SellerDocument
	if err := json.Unmarshal(body, &d); err != nil {
		s.badJSON(c, err)
		return
	}
	d.Generation = gen

	draft, _ := strconv.ParseBool(c.DefaultQuery("draft", "false"))

	ctx, cancel := context.WithTimeout(logger.WithOperation(c.Request.Context(), "submit"), 2*time.Minute)
	defer cancel()

	s.writeResult(c, s.operator.Submit(ctx, &d, draft))
}

func (s *Server) handleAcknowledge(c *gin.Context) {
	gen, ok := s.generation(c)
	if !ok {
		return
	}
	body, ok := readBody(c)
	if !ok {
		return
	}
	var d model.BuyerDocument
	if err := json.Unmarshal(body, &d); err != nil {
		s.badJSON(c, err)
		return
	}
	d.Generation = gen

	ctx, cancel := context.WithTimeout(logger.WithOperation(c.Request.Context(), "acknowledge"), 2*time.Minute)
	defer cancel()

	s.writeResult(c, s.operator.Acknowledge(ctx, &d))
}

// Helper functions

func (s *Server) generation(c *gin.Context) (model.Generation, bool) {
	gen, err := model.ParseGeneration(c.Param("generation"))
	if err != nil {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "unsupported schema generation", Details: err.Error()})
		return "", false
	}
	return gen, true
}

func readBody(c *gin.Context) ([]byte, bool) {
	body, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "failed to read request body"})
		return nil, false
	}
	if len(body) == 0 {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "empty request body"})
		return nil, false
	}
	return body, true
}

func (s *Server) badJSON(c *gin.Context, err error) {
	var verr *model.ValidationError
	if errors.As(err, &verr) {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid document json", Details: err.Error()})
}

func (s *Server) writeResult(c *gin.Context, res *crpt.Result) {
	resp := ResultResponse{Content: res.Content, ID: res.ID}
	if res.Err == nil {
		c.JSON(http.StatusOK, resp)
		return
	}

	resp.Error = res.Err.Error()
	status := statusOf(res.Err)
	var apiErr *crpt.APIError
	if errors.As(res.Err, &apiErr) {
		resp.OperatorStatus = apiErr.StatusCode
	}
	c.JSON(status, resp)
}

func (s *Server) writeError(c *gin.Context, err error) {
	resp := ErrorResponse{Error: err.Error()}
	var verr *model.ValidationError
	if errors.As(err, &verr) {
		resp.Error = verr.Message
		resp.Field = verr.Field
		resp.Rule = verr.Rule
	}
	c.JSON(statusOf(err), resp)
}

func statusOf(err error) int {
	var (
		verr   *model.ValidationError
		perr   *model.ParseError
		eerr   *model.ExtractionError
		apiErr *crpt.APIError
	)
	switch {
	case errors.As(err, &verr), errors.As(err, &perr), errors.As(err, &eerr):
		return http.StatusUnprocessableEntity
	case errors.As(err, &apiErr):
		return http.StatusBadGateway
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}
