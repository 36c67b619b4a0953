package server

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"

	"phrasecorrector/internal/config"
	"phrasecorrector/internal/corrector"
)

// Corrector answers correction queries.
type Corrector interface {
	Correct(ctx context.Context, text, language string) corrector.CorrectionResult
	Languages() map[string]int
}

// PhraseWriter adds and removes custom phrases.
type PhraseWriter interface {
	AddCustomPhrase(ctx context.Context, language, phrase string, score float64) error
	RemoveCustomPhrase(ctx context.Context, language, phrase string) error
}

type Server struct {
	corrector Corrector
	phrases   PhraseWriter
	log       *zap.SugaredLogger
	now       func() time.Time
}

// New builds the HTTP handlers. phrases may be nil, in which case the
// custom phrase routes are not registered.
func New(c Corrector, phrases PhraseWriter, log *zap.SugaredLogger) *Server {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Server{corrector: c, phrases: phrases, log: log, now: time.Now}
}

func (s *Server) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /corrections", s.corrections)
	mux.HandleFunc("GET /api/v1/languages", s.languages)
	if s.phrases != nil {
		RegisterCustomPhrases(mux, s.phrases, s.log)
	}
}

type correctionResponse struct {
	Text     string  `json:"text"`
	Distance int     `json:"distance"`
	Score    float64 `json:"score"`
	// Took is in milliseconds.
	Took int64 `json:"took"`
}

func (s *Server) corrections(w http.ResponseWriter, r *http.Request) {
	start := s.now()
	q := r.URL.Query()
	if !q.Has("text") {
		writeMessage(w, http.StatusUnprocessableEntity, "Missing parameter: text")
		return
	}
	if !q.Has("language") {
		writeMessage(w, http.StatusUnprocessableEntity, "Missing parameter: language")
		return
	}
	text, language := q.Get("text"), q.Get("language")

	res := s.corrector.Correct(r.Context(), text, language)
	writeJSON(w, http.StatusOK, correctionResponse{
		Text:     res.Text,
		Distance: res.Distance,
		Score:    res.Score,
		Took:     s.now().Sub(start).Milliseconds(),
	})
}

func (s *Server) languages(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.corrector.Languages())
}

type customPhraseRequest struct {
	Language string  `json:"language"`
	Phrase   string  `json:"phrase"`
	Score    float64 `json:"score"`
}

// RegisterCustomPhrases adds the custom phrase admin routes to mux.
func RegisterCustomPhrases(mux *http.ServeMux, phrases PhraseWriter, log *zap.SugaredLogger) {
	if log == nil {
		log = zap.NewNop().Sugar()
	}

	mux.HandleFunc("POST /api/v1/custom-phrase", func(w http.ResponseWriter, r *http.Request) {
		var req customPhraseRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil ||
			strings.TrimSpace(req.Phrase) == "" || strings.TrimSpace(req.Language) == "" {
			writeError(w, http.StatusBadRequest, "invalid request")
			return
		}
		if err := phrases.AddCustomPhrase(r.Context(), req.Language, req.Phrase, req.Score); err != nil {
			log.Errorw("add custom phrase", "language", req.Language, "phrase", req.Phrase, "error", err)
			writeError(w, statusOf(err), err.Error())
			return
		}
		writeJSON(w, http.StatusCreated, map[string]string{"status": "ok"})
	})

	mux.HandleFunc("DELETE /api/v1/custom-phrase/{language}/{phrase}", func(w http.ResponseWriter, r *http.Request) {
		language, phrase := r.PathValue("language"), r.PathValue("phrase")
		if err := phrases.RemoveCustomPhrase(r.Context(), language, phrase); err != nil {
			log.Errorw("remove custom phrase", "language", language, "phrase", phrase, "error", err)
			writeError(w, statusOf(err), err.Error())
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
}

func statusOf(err error) int {
	if errors.Is(err, corrector.ErrEmptyPhrase) || errors.Is(err, corrector.ErrEmptyLanguage) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// NewHTTPServer applies the configured address and timeouts to h.
func NewHTTPServer(cfg config.ServerConfig, h http.Handler) *http.Server {
	return &http.Server{
		Addr:         cfg.Addr(),
		Handler:      h,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}
}

func writeMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"message": msg})
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
