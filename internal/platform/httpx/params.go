package httpx

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/educa-hq/educa/internal/shared"
)

// PathID parses a numeric chi URL parameter; 404 on garbage, matching the
// behavior of an id that names no row.
func PathID(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		return 0, shared.ErrNotFound
	}
	return id, nil
}

// QueryID parses a numeric query-string value; unlike path parameters a
// malformed value is a validation error, not a missing resource.
func QueryID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: invalid id %q", shared.ErrValidation, raw)
	}
	return id, nil
}
