package server

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"html/template"
	"io/fs"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"headline_assistant/config"
	"headline_assistant/generator"
	"headline_assistant/render"
)

//go:embed web/templates/*.html web/static/*
var embedded embed.FS

const shutdownGrace = 5 * time.Second

type Server struct {
	agent    *generator.Agent
	timeout  time.Duration
	page     *template.Template
	staticFS http.Handler
	logger   zerolog.Logger
}

func New(agent *generator.Agent, cfg config.Config, logger zerolog.Logger) (*Server, error) {
	if agent == nil {
		return nil, errors.New("generator agent required")
	}

	page, err := template.ParseFS(embedded, "web/templates/index.html")
	if err != nil {
		return nil, err
	}
	sub, err := fs.Sub(embedded, "web/static")
	if err != nil {
		return nil, err
	}

	timeout := cfg.RequestTimeout()
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &Server{
		agent:    agent,
		timeout:  timeout,
		page:     page,
		staticFS: http.StripPrefix("/static/", http.FileServer(http.FS(sub))),
		logger:   logger,
	}, nil
}

func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("POST /{$}", s.handleGenerate)
	mux.HandleFunc("POST /api/titles", s.handleAPITitles)
	mux.HandleFunc("GET /api/options", s.handleAPIOptions)
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.Handle("GET /static/", s.staticFS)
	return s.logMiddleware(mux)
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
		defer cancel()
		return srv.Shutdown(shutCtx)
	})
	return g.Wait()
}

// --- Handlers ---

type toneOption struct {
	Key   string `json:"key"`
	Label string `json:"label"`
}

type pageData struct {
	Tones       []toneOption
	Models      []string
	Article     string
	Tone        string
	Model       string
	Suggestions []render.Suggestion
	Raw         string
	Warning     string
	Error       string
	RequestID   string
}

type titlesReq struct {
	Article string `json:"article"`
	Tone    string `json:"tone"`
	Model   string `json:"model"`
}

type titlesResp struct {
	RequestID string   `json:"request_id"`
	Model     string   `json:"model"`
	Tone      string   `json:"tone"`
	Titles    []string `json:"titles"`
	Raw       string   `json:"raw"`
}

const (
	emptyArticleMsg = "Please paste an article before generating titles."
	generateErrMsg  = "Could not generate titles: "
)

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	s.renderPage(w, s.newPage(r, "", generator.ToneInformative, ""))
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	req := generator.Request{
		Article: r.PostFormValue("article"),
		Tone:    generator.ParseTone(r.PostFormValue("tone")),
		Model:   r.PostFormValue("model"),
	}
	data := s.newPage(r, req.Article, req.Tone, req.Model)

	res, err := s.generate(r, req)
	switch {
	case errors.Is(err, generator.ErrEmptyArticle):
		data.Warning = emptyArticleMsg
	case err != nil:
		data.Error = generateErrMsg + err.Error()
	default:
		data.Suggestions = render.Suggestions(res.Titles)
		data.Raw = res.Raw
	}
	s.renderPage(w, data)
}

func (s *Server) handleAPITitles(w http.ResponseWriter, r *http.Request) {
	var body titlesReq
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		jsonErr(w, "invalid body", http.StatusBadRequest)
		return
	}
	req := generator.Request{
		Article: body.Article,
		Tone:    generator.ParseTone(body.Tone),
		Model:   body.Model,
	}

	res, err := s.generate(r, req)
	switch {
	case errors.Is(err, generator.ErrEmptyArticle):
		jsonErr(w, emptyArticleMsg, http.StatusBadRequest)
		return
	case err != nil:
		jsonErr(w, generateErrMsg+err.Error(), http.StatusBadGateway)
		return
	}
	jsonOK(w, titlesResp{
		RequestID: requestID(r),
		Model:     res.Model,
		Tone:      res.Tone.Key(),
		Titles:    res.Titles,
		Raw:       res.Raw,
	}, http.StatusOK)
}

func (s *Server) handleAPIOptions(w http.ResponseWriter, r *http.Request) {
	jsonOK(w, map[string]any{
		"tones":  toneOptions(),
		"models": s.agent.Models(),
	}, http.StatusOK)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	jsonOK(w, map[string]string{"status": "ok"}, http.StatusOK)
}

// generate runs one completion bounded by the configured timeout. Completion
// failures are logged here and returned for display.
func (s *Server) generate(r *http.Request, req generator.Request) (generator.Result, error) {
	ctx, cancel := context.WithTimeout(r.Context(), s.timeout)
	defer cancel()

	res, err := s.agent.Generate(ctx, req)
	if err != nil && !errors.Is(err, generator.ErrEmptyArticle) {
		s.logger.Error().Err(err).
			Str("request_id", requestID(r)).
			Stringer("tone", req.Tone).
			Str("model", s.agent.ResolveModel(req.Model)).
			Msg("title generation failed")
	}
	return res, err
}

// --- Helpers ---

func (s *Server) newPage(r *http.Request, article string, tone generator.Tone, model string) pageData {
	return pageData{
		Tones:     toneOptions(),
		Models:    s.agent.Models(),
		Article:   article,
		Tone:      tone.Key(),
		Model:     s.agent.ResolveModel(model),
		RequestID: requestID(r),
	}
}

func (s *Server) renderPage(w http.ResponseWriter, data pageData) {
	var buf strings.Builder
	if err := s.page.Execute(&buf, data); err != nil {
		s.logger.Error().Err(err).Msg("render page")
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(buf.String()))
}

func toneOptions() []toneOption {
	tones := generator.Tones()
	out := make([]toneOption, 0, len(tones))
	for _, t := range tones {
		out = append(out, toneOption{Key: t.Key(), Label: t.Label()})
	}
	return out
}

func jsonOK(w http.ResponseWriter, v any, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func jsonErr(w http.ResponseWriter, msg string, code int) {
	jsonOK(w, map[string]string{"error": msg}, code)
}

// --- Middleware ---

type ctxKey struct{}

const requestIDHeader = "X-Request-ID"

func requestID(r *http.Request) string {
	id, _ := r.Context().Value(ctxKey{}).(string)
	return id
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (rec *statusRecorder) WriteHeader(code int) {
	rec.status = code
	rec.ResponseWriter.WriteHeader(code)
}

func (s *Server) logMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		id := uuid.NewString()
		w.Header().Set(requestIDHeader, id)
		r = r.WithContext(context.WithValue(r.Context(), ctxKey{}, id))

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		s.logger.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", rec.status).
			Dur("took", time.Since(start)).
			Str("request_id", id).
			Msg("request")
	})
}
