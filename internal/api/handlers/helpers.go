package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"healthycity-service/internal/api/dto"
	"healthycity-service/internal/domain"
)

var titleCaser = cases.Title(language.English)

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("encode failed: method=%s path=%s err=%v", r.Method, r.URL.Path, err)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, detail string) {
	writeJSON(w, r, status, dto.ErrorResponse{Detail: detail})
}

// writeResolveError maps city resolution failures onto the HTTP surface.
func writeResolveError(w http.ResponseWriter, r *http.Request, city string, err error) {
	switch {
	case errors.Is(err, domain.ErrCityNotFound):
		writeError(w, r, http.StatusNotFound, fmt.Sprintf("City '%s' not found.", city))
	case errors.Is(err, domain.ErrGeocodingUnavailable):
		writeError(w, r, http.StatusServiceUnavailable, "Geocoding service is unavailable.")
	default:
		log.Printf("resolve city failed: city=%q err=%v", city, err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
	}
}

// writePipelineError maps imagery pipeline failures onto the HTTP surface.
// noDataDetail is the 404 message for an empty reduction; platform errors keep
// their message in the detail, as the dashboard shows it verbatim.
func writePipelineError(w http.ResponseWriter, r *http.Request, err error, noDataDetail string) {
	switch {
	case errors.Is(err, domain.ErrNoData):
		writeError(w, r, http.StatusNotFound, noDataDetail)
	case errors.Is(err, domain.ErrPlatformNotReady):
		writeError(w, r, http.StatusServiceUnavailable, "Satellite analytics platform is not initialized.")
	default:
		log.Printf("pipeline failed: path=%s err=%v", r.URL.Path, err)
		writeError(w, r, http.StatusInternalServerError, fmt.Sprintf("An Earth Engine error occurred: %v", err))
	}
}
