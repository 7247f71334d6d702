package web

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/vbonduro/truckfest/internal/forms"
	"github.com/vbonduro/truckfest/internal/record"
	"github.com/vbonduro/truckfest/internal/service"
)

const maxFormSize = 1 << 20 // 1 MB

type errorBody struct {
	Error  string             `json:"error"`
	Fields []forms.FieldError `json:"fields,omitempty"`
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("write response failed", "error", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, errorBody{Error: msg})
}

// writeServiceError maps planner errors onto HTTP statuses.
func (s *Server) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *forms.ValidationError
	switch {
	case errors.As(err, &verr):
		s.writeJSON(w, http.StatusUnprocessableEntity, errorBody{Error: verr.Error(), Fields: verr.Fields})
	case errors.Is(err, service.ErrNotFound):
		s.writeError(w, http.StatusNotFound, "not found")
	case errors.Is(err, record.ErrDuplicateIdentity):
		s.writeError(w, http.StatusConflict, "a record with this id already exists")
	default:
		s.logger.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		s.writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func parseID(r *http.Request) (uuid.UUID, error) {
	return uuid.Parse(r.PathValue("id"))
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxFormSize)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("failed to decode request body: %w", err)
	}
	return nil
}

func handleCreate[F, T any](s *Server, save func(F) (T, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var form F
		if err := decodeJSON(w, r, &form); err != nil {
			s.writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		created, err := save(form)
		if err != nil {
			s.writeServiceError(w, r, err)
			return
		}
		s.writeJSON(w, http.StatusCreated, created)
	}
}

func handleGet[T any](s *Server, get func(uuid.UUID) (T, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseID(r)
		if err != nil {
			s.writeError(w, http.StatusBadRequest, "invalid id")
			return
		}
		rec, err := get(id)
		if err != nil {
			s.writeServiceError(w, r, err)
			return
		}
		s.writeJSON(w, http.StatusOK, rec)
	}
}

func handleUpdate[F, T any](s *Server, update func(uuid.UUID, F) (T, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseID(r)
		if err != nil {
			s.writeError(w, http.StatusBadRequest, "invalid id")
			return
		}
		var form F
		if err := decodeJSON(w, r, &form); err != nil {
			s.writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		updated, err := update(id, form)
		if err != nil {
			s.writeServiceError(w, r, err)
			return
		}
		s.writeJSON(w, http.StatusOK, updated)
	}
}

func handleDelete(s *Server, del func(uuid.UUID) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseID(r)
		if err != nil {
			s.writeError(w, http.StatusBadRequest, "invalid id")
			return
		}
		if err := del(id); err != nil {
			s.writeServiceError(w, r, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
