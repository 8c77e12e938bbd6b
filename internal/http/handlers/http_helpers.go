package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/Adhandevelop/taller-powerby/internal/models"
)

const (
	maxBodyBytes   = 1048576 // one megabyte
	msgInvalidJSON = "Invalid JSON"
	msgNotFound    = "not found"
	msgInvalidID   = "invalid id"
	msgMissingID   = "IdProducto is required"
)

// readJSON tries to read the body of a request and converts it into JSON
func readJSON(w http.ResponseWriter, r *http.Request, data any) error {
	r.Body = http.MaxBytesReader(w, r.Body, int64(maxBodyBytes))

	dec := json.NewDecoder(r.Body)
	err := dec.Decode(data)
	if err != nil {
		return fmt.Errorf("failed to read JSON: %w", err)
	}

	err = dec.Decode(&struct{}{})
	if err != io.EOF {
		return errors.New("body must have only a single json value")
	}

	return nil
}

// productID returns the {id} path segment decoded. chi routes on the escaped
// path whenever it differs from the decoded one, so an id sent as A%2F1
// reaches the handler still escaped.
func productID(r *http.Request) (string, error) {
	id := chi.URLParam(r, "id")
	if r.URL.RawPath == "" {
		return id, nil
	}
	return url.PathUnescape(id)
}

func hasID(p models.Product) bool {
	return strings.TrimSpace(p.IdProducto) != ""
}

// writeJSON takes a response status code and arbitrary data and writes a json response to the client
func (h *Handler) writeJSON(w http.ResponseWriter, status int, data any) {
	out, err := json.Marshal(data)
	if err != nil {
		h.logger.Error("failed to encode JSON response", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(out); err != nil {
		h.logger.Error("failed to write response", "error", err)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, message string) {
	h.writeJSON(w, status, ErrorResponse{Success: false, Error: message})
}

// writeServerError logs err against the request and reports its message in the envelope.
func (h *Handler) writeServerError(w http.ResponseWriter, r *http.Request, msg string, err error) {
	h.logger.Error(msg,
		"error", err,
		"method", r.Method,
		"path", r.URL.Path,
		"request_id", middleware.GetReqID(r.Context()),
	)
	h.writeError(w, http.StatusInternalServerError, err.Error())
}
