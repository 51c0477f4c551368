package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/mariana/linguaflash/internal/errors"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// pathID parses a numeric URL parameter.
func pathID(r *http.Request, name string) (int64, error) {
	raw := chi.URLParam(r, name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, errors.NewBadRequestError("invalid " + name)
	}
	return id, nil
}

// decodeBody decodes a JSON request body into v and validates it.
func (s *Server) decodeBody(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return errors.NewBadRequestError("malformed request body: " + err.Error())
	}
	if err := s.validate.Struct(v); err != nil {
		return errors.NewBadRequestError(err.Error())
	}
	return nil
}
