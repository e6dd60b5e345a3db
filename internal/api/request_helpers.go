package api

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/task-api/internal/api/shared"
	"github.com/phrazzld/task-api/internal/store"
)

// getPathID extracts a numeric entity ID from the URL path parameters.
// Any parseable integer is accepted; zero and negative values simply match
// no row and surface as not found from the lookup itself.
func getPathID(r *http.Request, paramName string) (int64, error) {
	pathParam := chi.URLParam(r, paramName)
	if pathParam == "" {
		return 0, fmt.Errorf("%s is required", paramName)
	}

	id, err := strconv.ParseInt(pathParam, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer", paramName)
	}

	return id, nil
}

// parsePageParams extracts pagination parameters from the query string.
// Absent parameters take their defaults; present parameters must be valid
// integers within range or an error is returned.
func parsePageParams(r *http.Request) (store.PageParams, error) {
	page := store.PageParams{
		Page: store.DefaultPage,
		Size: store.DefaultSize,
	}

	query := r.URL.Query()

	if raw := query.Get("page"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			return store.PageParams{}, fmt.Errorf("page must be an integer greater than or equal to 1")
		}
		page.Page = n
	}

	if raw := query.Get("size"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > store.MaxSize {
			return store.PageParams{}, fmt.Errorf("size must be an integer between 1 and %d", store.MaxSize)
		}
		page.Size = n
	}

	return page, nil
}

// parseTaskFilter extracts the optional list filters from the query string.
// An absent parameter means no constraint on that field.
func parseTaskFilter(r *http.Request) store.TaskFilter {
	query := r.URL.Query()
	return store.TaskFilter{
		Title:  query.Get("title"),
		Status: query.Get("status"),
	}
}

// handleServiceError maps a service-layer error to an HTTP status code and
// sanitized message and writes the error response.
func handleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	status := MapErrorToStatusCode(err)
	message := GetSafeErrorMessage(err)
	shared.RespondWithErrorAndLog(w, r, status, message, err)
}
