package service

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/rushteam/menukit/core"
	"github.com/rushteam/menukit/feedback"
)

// Server HTTP 服务，薄封装：参数解析、错误映射、结构化日志。
type Server struct {
	rec    *Recommender
	logger zerolog.Logger
}

// NewServer 构造 HTTP 服务
func NewServer(rec *Recommender, logger zerolog.Logger) *Server {
	return &Server{rec: rec, logger: logger}
}

// Router 装配路由
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/health", s.handleHealth)
	r.Get("/recommendations", s.handleRecommend)
	r.Post("/feedback", s.handleFeedback)
	return r
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, req.ProtoMajor)
		next.ServeHTTP(ww, req)
		s.logger.Info().
			Str("method", req.Method).
			Str("path", req.URL.Path).
			Int("status", ww.Status()).
			Dur("elapsed", time.Since(start)).
			Str("request_id", middleware.GetReqID(req.Context())).
			Msg("request")
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, req *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleRecommend(w http.ResponseWriter, req *http.Request) {
	q := req.URL.Query()
	userID, err := strconv.ParseInt(q.Get("user_id"), 10, 64)
	if err != nil || userID <= 0 {
		s.writeError(w, core.NewDomainError(core.ModuleService, core.ErrorCodeInvalidInput, "user_id is required"))
		return
	}
	topK := 0
	if raw := q.Get("top_k"); raw != "" {
		topK, err = strconv.Atoi(raw)
		if err != nil || topK < 0 {
			s.writeError(w, core.NewDomainError(core.ModuleService, core.ErrorCodeInvalidInput, "top_k must be a non-negative integer"))
			return
		}
	}

	resp, err := s.rec.Recommend(req.Context(), &Request{
		UserID:      userID,
		TopK:        topK,
		TimeOfDay:   core.TimeOfDay(q.Get("time_of_day")),
		BudgetLevel: q.Get("budget_level"),
		Query:       q.Get("q"),
	})
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleFeedback(w http.ResponseWriter, req *http.Request) {
	if s.rec.Collector == nil {
		s.writeError(w, core.NewDomainError(core.ModuleService, core.ErrorCodeNotSupported, "feedback collector not configured"))
		return
	}
	var event feedback.Event
	if err := json.NewDecoder(req.Body).Decode(&event); err != nil {
		s.writeError(w, core.NewDomainError(core.ModuleService, core.ErrorCodeInvalidInput, "invalid feedback payload"))
		return
	}
	if event.UserID <= 0 || event.ItemID <= 0 || event.Type == "" {
		s.writeError(w, core.NewDomainError(core.ModuleService, core.ErrorCodeInvalidInput, "user_id, item_id and type are required"))
		return
	}
	if event.Timestamp == 0 {
		event.Timestamp = time.Now().Unix()
	}
	if err := s.rec.Collector.Record(req.Context(), &event); err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusAccepted, map[string]string{"status": "accepted"})
}

// writeError 统一错误出口：领域错误映射状态码，其余按 500 处理。
func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	code := core.ErrorCodeInternalError
	var derr *core.DomainError
	if errors.As(err, &derr) {
		code = derr.Code
		switch derr.Code {
		case core.ErrorCodeInvalidInput:
			status = http.StatusBadRequest
		case core.ErrorCodeNotFound:
			status = http.StatusNotFound
		case core.ErrorCodeNotSupported:
			status = http.StatusNotImplemented
		case core.ErrorCodeUnavailable:
			status = http.StatusServiceUnavailable
		}
	}
	if status >= http.StatusInternalServerError {
		s.logger.Error().Err(err).Msg("request failed")
	}
	writeJSON(w, status, map[string]string{
		"code":  code,
		"error": err.Error(),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
