package controllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"pressroom/app/logger"
	"pressroom/app/models"
	"pressroom/app/repositories"
	"pressroom/app/services"

	"github.com/gorilla/mux"
)

// maxBodyBytes bounds request bodies accepted by the API.
const maxBodyBytes = 1 << 20

func sendJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func sendError(w http.ResponseWriter, message string, status int) {
	sendJSON(w, status, map[string]string{"error": message})
}

// MethodNotAllowed answers verbs a route does not support.
func MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	sendError(w, "Method not allowed", http.StatusMethodNotAllowed)
}

// NotFound answers requests no route matches.
func NotFound(w http.ResponseWriter, r *http.Request) {
	sendError(w, "Not found", http.StatusNotFound)
}

// errorResponse maps a service error onto a status and JSON body.
func errorResponse(r *http.Request, err error) (int, map[string]interface{}) {
	var (
		verrs models.ValidationErrors
		derr  *services.DeliveryError
	)
	switch {
	case errors.As(err, &verrs):
		return http.StatusBadRequest, map[string]interface{}{"errors": verrs}
	case errors.Is(err, repositories.ErrNotFound):
		return http.StatusNotFound, map[string]interface{}{"error": "Not found"}
	case errors.Is(err, repositories.ErrDuplicateSlug):
		return http.StatusConflict, map[string]interface{}{"error": "A post with this slug already exists for this publish date"}
	case errors.As(err, &derr):
		return http.StatusBadGateway, map[string]interface{}{"error": "Failed to send email"}
	default:
		logger.FromContext(r.Context()).ErrorContext(r.Context(), "request failed",
			"method", r.Method, "path", r.URL.Path, "error", err)
		return http.StatusInternalServerError, map[string]interface{}{"error": "Internal server error"}
	}
}

// handleError maps service errors onto HTTP responses.
func handleError(w http.ResponseWriter, r *http.Request, err error) {
	status, body := errorResponse(r, err)
	sendJSON(w, status, body)
}

// pathInt reads an integer route variable.
func pathInt(r *http.Request, name string) (int, bool) {
	n, err := strconv.Atoi(mux.Vars(r)[name])
	return n, err == nil
}

// bindForm fills dst from a JSON body or, for any other content type, from
// URL-encoded form fields keyed by dst's json tags.
func bindForm(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if isJSON(r) {
		return json.NewDecoder(r.Body).Decode(dst)
	}

	if err := r.ParseForm(); err != nil {
		return err
	}
	fields := make(map[string]string, len(r.PostForm))
	for key := range r.PostForm {
		fields[key] = r.PostForm.Get(key)
	}
	raw, err := json.Marshal(fields)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, dst)
}

// decodeJSON reads a JSON body into dst.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	return json.NewDecoder(r.Body).Decode(dst)
}

func isJSON(r *http.Request) bool {
	return strings.HasPrefix(strings.ToLower(r.Header.Get("Content-Type")), "application/json")
}
