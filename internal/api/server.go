// Package api exposes the mail-management HTTP surface: script blob upload,
// sieve script validation, and OSB feature extraction for corpus tooling.
package api

import (
	"errors"
	"io"
	"net/http"

	"github.com/goccy/go-json"
	"github.com/labstack/echo/v5"
	"golang.org/x/time/rate"

	"github.com/mailprobe/mailprobe/internal/jmap"
	"github.com/mailprobe/mailprobe/internal/logger"
	"github.com/mailprobe/mailprobe/internal/nlp/feature"
	"github.com/mailprobe/mailprobe/internal/nlp/osb"
	"github.com/mailprobe/mailprobe/internal/nlp/words"
	"github.com/mailprobe/mailprobe/internal/sieve"
)

// maxBlobSize caps uploaded scripts; sieve filters are small by nature.
const maxBlobSize = 1 << 20

// Config carries server tunables. Zero values pick the defaults.
type Config struct {
	// WindowSize is the default OSB window for /api/features.
	WindowSize int
	// RateLimit is the sustained validate-requests-per-second allowance.
	RateLimit float64
	// RateBurst is the burst allowance on top of RateLimit.
	RateBurst int
	Log       logger.Logger
}

type Server struct {
	store   *BlobStore
	window  int
	limiter *rate.Limiter
	log     logger.Logger
}

func NewServer(store *BlobStore, cfg Config) *Server {
	if store == nil {
		store = NewBlobStore()
	}
	if cfg.WindowSize <= 0 {
		cfg.WindowSize = 5
	}
	if cfg.RateLimit <= 0 {
		cfg.RateLimit = 50
	}
	if cfg.RateBurst <= 0 {
		cfg.RateBurst = 100
	}
	if cfg.Log == nil {
		cfg.Log = logger.Default()
	}
	return &Server{
		store:   store,
		window:  cfg.WindowSize,
		limiter: rate.NewLimiter(rate.Limit(cfg.RateLimit), cfg.RateBurst),
		log:     cfg.Log,
	}
}

func (s *Server) Register(e *echo.Echo) {
	e.POST("/api/blobs", s.handleUploadBlob)
	e.POST("/api/sieve/validate", s.handleValidate)
	e.POST("/api/features", s.handleFeatures)
}

// UploadBlobResponse acknowledges a stored blob.
type UploadBlobResponse struct {
	AccountID string `json:"accountId"`
	BlobID    string `json:"blobId"`
}

func (s *Server) handleUploadBlob(c *echo.Context) error {
	accountID := c.QueryParam("accountId")
	if accountID == "" {
		return writeBadRequest(c, "accountId query parameter is required")
	}
	data, err := io.ReadAll(io.LimitReader(c.Request().Body, maxBlobSize+1))
	if err != nil {
		return writeBadRequest(c, "unreadable request body")
	}
	if len(data) > maxBlobSize {
		return writeError(c, http.StatusRequestEntityTooLarge, "invalid_request_error", "blob too large")
	}
	blobID := s.store.Put(accountID, data)
	s.log.Debug("stored blob", "accountId", accountID, "blobId", blobID, "bytes", len(data))
	return c.JSON(http.StatusOK, UploadBlobResponse{AccountID: accountID, BlobID: blobID})
}

func (s *Server) handleValidate(c *echo.Context) error {
	if !s.limiter.Allow() {
		return writeError(c, http.StatusTooManyRequests, "rate_limited", "validate rate limit exceeded")
	}

	body, err := io.ReadAll(io.LimitReader(c.Request().Body, maxBlobSize))
	if err != nil {
		return writeBadRequest(c, "unreadable request body")
	}
	req, err := jmap.ParseValidateRequest(body)
	if err != nil {
		// A parse failure is the caller's fault either way; field errors
		// propagate the offending field name unmodified.
		var fieldErr *jmap.FieldError
		if errors.As(err, &fieldErr) {
			return writeBadRequest(c, fieldErr.Error())
		}
		return writeBadRequest(c, err.Error())
	}

	resp := jmap.ValidateSieveScriptResponse{AccountID: req.AccountID}
	script, ok := s.store.Get(req.AccountID, req.BlobID)
	switch {
	case !ok:
		resp.Error = jmap.BlobNotFound(req.BlobID)
	default:
		if checkErr := sieve.Check(string(script)); checkErr != nil {
			resp.Error = jmap.InvalidScript(checkErr.Error())
			s.log.Debug("script rejected", "accountId", req.AccountID, "blobId", req.BlobID, "reason", checkErr)
		}
	}
	return c.JSON(http.StatusOK, resp)
}

// FeaturesRequest asks for OSB features over a piece of text. WindowSize 0
// means the server default.
type FeaturesRequest struct {
	Text       string `json:"text"`
	WindowSize int    `json:"windowSize,omitempty"`
}

type FeatureItem struct {
	Feature string `json:"feature"`
	Idx     int    `json:"idx"`
}

type FeaturesResponse struct {
	WindowSize int           `json:"windowSize"`
	Features   []FeatureItem `json:"features"`
}

func (s *Server) handleFeatures(c *echo.Context) error {
	body, err := io.ReadAll(io.LimitReader(c.Request().Body, maxBlobSize))
	if err != nil {
		return writeBadRequest(c, "unreadable request body")
	}
	var req FeaturesRequest
	if err := json.Unmarshal(body, &req); err != nil {
		return writeBadRequest(c, "malformed request body")
	}
	window := req.WindowSize
	if window == 0 {
		window = s.window
	}
	if window < 0 {
		return writeBadRequest(c, "windowSize must be positive")
	}

	tok, err := osb.New(words.NewSplitter(req.Text), window, feature.Text)
	if err != nil {
		return writeBadRequest(c, err.Error())
	}
	items := []FeatureItem{}
	for {
		item, ok := tok.Next()
		if !ok {
			break
		}
		items = append(items, FeatureItem{Feature: item.Inner, Idx: item.Idx})
	}
	return c.JSON(http.StatusOK, FeaturesResponse{WindowSize: window, Features: items})
}
