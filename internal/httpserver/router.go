// Package httpserver exposes the scoring engine over HTTP for the web
// frontend. The server holds no engine state; only the session history
// lives behind it.
package httpserver

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/farcloser/mimesis"
	"github.com/farcloser/mimesis/internal/history"
	"github.com/farcloser/mimesis/internal/source"
	"github.com/farcloser/mimesis/internal/types"
)

const uploadMemoryLimit = 32 << 20

type Server struct {
	opts    mimesis.Options
	log     *history.Log
	fetcher *source.Fetcher
}

func New(opts mimesis.Options, log *history.Log) *Server {
	if log == nil {
		log = history.New(history.DefaultCap)
	}

	return &Server{
		opts:    opts,
		log:     log,
		fetcher: source.DefaultFetcher(),
	}
}

func (s *Server) Handler() http.Handler {
	mux := chi.NewRouter()

	mux.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))
	mux.Use(requestLogger)

	mux.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})

	mux.Route("/v1", func(rt chi.Router) {
		rt.Post("/analyze", s.wrap(s.handleAnalyze))
		rt.Post("/analyze/url", s.wrap(s.handleAnalyzeURL))
		rt.Get("/history", s.wrap(s.handleHistory))
	})

	return mux
}

type handlerFunc func(http.ResponseWriter, *http.Request) error

func (s *Server) wrap(h handlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		if err := h(w, req); err != nil {
			switch {
			case errors.Is(err, source.ErrUnsupportedMedia):
				http.Error(w, err.Error(), http.StatusUnsupportedMediaType)
			case errors.Is(err, source.ErrEmptyFile),
				errors.Is(err, source.ErrTooLarge),
				errors.Is(err, source.ErrMalformedURL),
				errors.Is(err, mimesis.ErrInvalidDescriptor):
				http.Error(w, err.Error(), http.StatusBadRequest)
			case errors.Is(err, source.ErrFetchFailed):
				http.Error(w, err.Error(), http.StatusBadGateway)
			default:
				http.Error(w, err.Error(), http.StatusInternalServerError)
			}
		}
	}
}

type descriptorRequest struct {
	Name           string `json:"name"`
	MIMEType       string `json:"mime_type"`
	SizeBytes      int64  `json:"size_bytes"`
	LastModifiedMs int64  `json:"last_modified_ms"`
}

// POST /v1/analyze
// Accepts either a JSON descriptor or a multipart upload under "file".
func (s *Server) handleAnalyze(w http.ResponseWriter, req *http.Request) error {
	var (
		desc types.FileDescriptor
		err  error
	)

	if strings.HasPrefix(req.Header.Get("Content-Type"), "multipart/form-data") {
		desc, err = descriptorFromUpload(req)
	} else {
		desc, err = descriptorFromJSON(req)
	}

	if err != nil {
		return err
	}

	if err := source.Validate(desc); err != nil {
		return err
	}

	return s.analyze(w, req, desc)
}

// POST /v1/analyze/url
// Body: {"url": "<resource>"}
func (s *Server) handleAnalyzeURL(w http.ResponseWriter, req *http.Request) error {
	var body struct {
		URL string `json:"url"`
	}

	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		return err
	}

	desc, err := s.fetcher.FromURL(req.Context(), body.URL)
	if err != nil {
		return err
	}

	return s.analyze(w, req, desc)
}

// GET /v1/history
func (s *Server) handleHistory(w http.ResponseWriter, _ *http.Request) error {
	w.Header().Set("Content-Type", "application/json")

	return json.NewEncoder(w).Encode(s.log.Entries())
}

func (s *Server) analyze(w http.ResponseWriter, req *http.Request, desc types.FileDescriptor) error {
	result, err := mimesis.Analyze(req.Context(), desc, s.opts)
	if err != nil {
		return err
	}

	s.log.Add(history.Entry{Descriptor: desc, Result: result, At: time.Now()})

	w.Header().Set("Content-Type", "application/json")

	return json.NewEncoder(w).Encode(struct {
		Descriptor types.FileDescriptor `json:"descriptor"`
		Result     *mimesis.Result      `json:"result"`
	}{desc, result})
}

func descriptorFromJSON(req *http.Request) (types.FileDescriptor, error) {
	var body descriptorRequest
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		return types.FileDescriptor{}, err
	}

	modified := time.Now()
	if body.LastModifiedMs > 0 {
		modified = time.UnixMilli(body.LastModifiedMs)
	}

	return types.FileDescriptor{
		Name:         body.Name,
		MIMEType:     body.MIMEType,
		SizeBytes:    body.SizeBytes,
		LastModified: modified,
	}, nil
}

func descriptorFromUpload(req *http.Request) (types.FileDescriptor, error) {
	if err := req.ParseMultipartForm(uploadMemoryLimit); err != nil {
		return types.FileDescriptor{}, err
	}

	file, header, err := req.FormFile("file")
	if err != nil {
		return types.FileDescriptor{}, err
	}
	defer file.Close()

	mimeType := header.Header.Get("Content-Type")
	if mimeType == "" || mimeType == "application/octet-stream" {
		sniff := make([]byte, 3072)

		n, readErr := io.ReadFull(file, sniff)
		if readErr != nil && !errors.Is(readErr, io.ErrUnexpectedEOF) && !errors.Is(readErr, io.EOF) {
			return types.FileDescriptor{}, readErr
		}

		mimeType = mimetype.Detect(sniff[:n]).String()
		if mimeType == "application/octet-stream" {
			mimeType = mime.TypeByExtension(filepath.Ext(header.Filename))
		}
	}

	return types.FileDescriptor{
		Name:         header.Filename,
		MIMEType:     mimeType,
		SizeBytes:    header.Size,
		LastModified: time.Now(),
	}, nil
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, req)
		slog.Info("request", "method", req.Method, "path", req.URL.Path, "duration", time.Since(start))
	})
}
