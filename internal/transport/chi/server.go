// Package chi exposes the search, conversation, and profile services
// over HTTP.
package chi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	gochi "github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/recruitu/lateral/internal/domain"
	domprofile "github.com/recruitu/lateral/internal/domain/profile"
	"github.com/recruitu/lateral/internal/domain/search/query"
	"github.com/recruitu/lateral/internal/domain/search/result"
	chatuc "github.com/recruitu/lateral/internal/usecase/chat"
	healthuc "github.com/recruitu/lateral/internal/usecase/health"
	profileuc "github.com/recruitu/lateral/internal/usecase/profile"
	searchuc "github.com/recruitu/lateral/internal/usecase/search"
)

const emptyResultsHint = "no candidates matched; try broadening the criteria"

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Server routes HTTP requests to the use case services.
type Server struct {
	search        *searchuc.Service
	chat          *chatuc.Service
	profiles      *profileuc.Service
	health        *healthuc.Service
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(
	search *searchuc.Service,
	chat *chatuc.Service,
	profiles *profileuc.Service,
	health *healthuc.Service,
	logger *zap.Logger,
) *Server {
	s := &Server{
		search:   search,
		chat:     chat,
		profiles: profiles,
		health:   health,
		logger:   logger,
	}
	s.errorHandlers = []errorHandler{
		upstreamStatusHandler,
		sentinelHandler(domain.ErrNoActiveSession, http.StatusConflict, "no_active_session"),
		sentinelHandler(domain.ErrInvalidPayload, http.StatusBadGateway, "bad_upstream_payload"),
		sentinelHandler(domain.ErrUpstreamUnavailable, http.StatusServiceUnavailable, "upstream_unavailable"),
		sentinelHandler(domain.ErrProfileNotFound, http.StatusNotFound, "profile_not_found"),
		sentinelHandler(domain.ErrResolverUnavailable, http.StatusBadGateway, "resolver_unavailable"),
		sentinelHandler(domain.ErrChatDisabled, http.StatusServiceUnavailable, "chat_disabled"),
	}
	return s
}

// Routes registers all endpoints on the router.
func (s *Server) Routes(r gochi.Router) {
	r.Post("/api/chat", s.handleChat)
	r.Post("/api/search", s.handleSearch)
	r.Post("/api/search/next", s.handleNextPage)
	r.Delete("/api/conversations/{id}", s.handleEndConversation)
	r.Get("/api/profiles", s.handleProfiles)
	r.Get("/api/profiles/{id}", s.handleProfile)
	r.Get("/health", s.handleHealth)
	r.Get("/metrics", promhttp.Handler().ServeHTTP)
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type searchRequest struct {
	ConversationID string `json:"conversation_id"`
	query.Params
}

type searchResponse struct {
	ConversationID string            `json:"conversation_id,omitempty"`
	Results        []result.Document `json:"results"`
	PageNum        int               `json:"page_num"`
	NumPages       int               `json:"num_pages"`
	NumItems       int               `json:"num_items"`
	Hint           string            `json:"hint,omitempty"`
}

type nextPageRequest struct {
	ConversationID string `json:"conversation_id"`
}

type chatRequest struct {
	ConversationID string `json:"conversation_id"`
	Message        string `json:"message"`
}

type chatResponse struct {
	ConversationID string            `json:"conversation_id"`
	Reply          string            `json:"reply"`
	Results        []result.Document `json:"results"`
	PageNum        int               `json:"page_num,omitempty"`
	NumPages       int               `json:"num_pages,omitempty"`
	NumItems       int               `json:"num_items,omitempty"`
}

// handleChat runs one conversational turn.
func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "Invalid request body: "+err.Error())
		return
	}
	if req.Message == "" {
		writeError(w, http.StatusBadRequest, "validation_failed", "message is required")
		return
	}

	turn, err := s.chat.Converse(r.Context(), req.ConversationID, req.Message)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, chatResponse{
		ConversationID: turn.ConversationID,
		Reply:          turn.Reply,
		Results:        result.Documents(turn.Records),
		PageNum:        turn.Page.PageNum,
		NumPages:       turn.Page.NumPages,
		NumItems:       turn.Page.NumItems,
	})
}

// handleSearch executes a structured search directly, bypassing the
// resolver. A conversation_id is optional; without one no pagination
// session is kept.
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "Invalid request body: "+err.Error())
		return
	}

	records, page, err := s.search.Search(r.Context(), req.ConversationID, req.Params)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, searchResult(req.ConversationID, records, page))
}

// handleNextPage re-executes the conversation's last query on the next
// page.
func (s *Server) handleNextPage(w http.ResponseWriter, r *http.Request) {
	var req nextPageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "Invalid request body: "+err.Error())
		return
	}
	if req.ConversationID == "" {
		writeError(w, http.StatusBadRequest, "validation_failed", "conversation_id is required")
		return
	}

	records, page, err := s.search.NextPage(r.Context(), req.ConversationID)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, searchResult(req.ConversationID, records, page))
}

// handleEndConversation discards all state held for a conversation.
func (s *Server) handleEndConversation(w http.ResponseWriter, r *http.Request) {
	id := gochi.URLParam(r, "id")
	s.chat.End(id)
	w.WriteHeader(http.StatusNoContent)
}

// handleProfile returns the full profile for one identifier.
func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	id := gochi.URLParam(r, "id")

	rec, err := s.profiles.ByID(r.Context(), id)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, rec)
}

// handleProfiles returns full profiles for a comma-separated ids query
// parameter, in request order. Unknown ids are skipped.
func (s *Server) handleProfiles(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("ids")
	if raw == "" {
		writeError(w, http.StatusBadRequest, "validation_failed", "ids query parameter is required")
		return
	}

	var ids []string
	for _, id := range strings.Split(raw, ",") {
		if id = strings.TrimSpace(id); id != "" {
			ids = append(ids, id)
		}
	}

	records, err := s.profiles.ByIDs(r.Context(), ids)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	if records == nil {
		records = []domprofile.Record{}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"num_items": len(records),
		"results":   records,
	})
}

// handleHealth reports component availability.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	status := http.StatusOK
	if report.Status != healthuc.Healthy {
		status = http.StatusServiceUnavailable
	}

	writeJSON(w, status, map[string]any{
		"status": report.Status,
		"checks": report.Checks,
	})
}

func searchResult(conversationID string, records []result.Record, page searchuc.Page) searchResponse {
	resp := searchResponse{
		ConversationID: conversationID,
		Results:        result.Documents(records),
		PageNum:        page.PageNum,
		NumPages:       page.NumPages,
		NumItems:       page.NumItems,
	}
	if len(resp.Results) == 0 {
		resp.Results = []result.Document{}
		resp.Hint = emptyResultsHint
	}
	return resp
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{
		Code:    code,
		Message: message,
	})
}

// safeDomainMessage returns a sentinel error message for the client
// without exposing internals. PayloadError details stay in the logs.
func safeDomainMessage(err error) string {
	sentinels := []error{
		domain.ErrNoActiveSession,
		domain.ErrUpstreamStatus,
		domain.ErrInvalidPayload,
		domain.ErrUpstreamUnavailable,
		domain.ErrProfileNotFound,
		domain.ErrResolverUnavailable,
		domain.ErrChatDisabled,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code string) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

// upstreamStatusHandler handles UpstreamStatusError with the upstream
// code surfaced in the body.
func upstreamStatusHandler(w http.ResponseWriter, err error, msg string) bool {
	var statusErr *domain.UpstreamStatusError
	if !errors.As(err, &statusErr) {
		return false
	}
	writeJSON(w, http.StatusBadGateway, map[string]any{
		"code":            "upstream_error",
		"message":         msg,
		"upstream_status": statusErr.Code,
	})
	return true
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	s.logger.Warn("domain error", zap.Error(err))
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
}
