// internal/server/handlers.go
package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/valpere/audiotekameta/internal/errors"
	"github.com/valpere/audiotekameta/pkg/api"
)

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("query")
	author := r.URL.Query().Get("author")
	log := loggerFrom(r.Context(), s.logger)

	if strings.TrimSpace(query) == "" {
		s.writeError(w, r, errors.New(errors.KindValidation, "server.search", "Query parameter is required"))
		return
	}

	log.WithFields(map[string]interface{}{"query": query, "author": author}).Info("Received search request")

	records, err := s.searcher.Search(r.Context(), query, author)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, api.NewSearchResponse(records))
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, api.HealthStatus{
		Status:  "healthy",
		Locale:  s.config.Language,
		Version: s.config.Version,
	})
}

func errorBody(message string) api.ErrorResponse {
	return api.ErrorResponse{Error: message}
}

// writeError maps err onto a status code and a caller-safe message.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := errors.HTTPStatus(err)
	log := loggerFrom(r.Context(), s.logger)
	if status >= http.StatusInternalServerError {
		log.Errorf("Request failed: %v", err)
	} else {
		log.Debugf("Request rejected: %v", err)
	}
	s.writeJSON(w, status, errorBody(errors.UserMessage(err)))
}

// writeJSON encodes v before writing anything, so an encoding failure
// still produces a well-formed 500.
func (s *Server) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		s.logger.Errorf("Failed to encode response: %v", errors.E(errors.KindUnexpected, "server.writeJSON", err))
		buf.Reset()
		status = http.StatusInternalServerError
		_ = json.NewEncoder(&buf).Encode(errorBody("Internal server error"))
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(buf.Bytes())
}
