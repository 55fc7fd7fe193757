package httpapi

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/dmitrijs2005/listkeeper/internal/common"
	"github.com/dmitrijs2005/listkeeper/internal/server/args"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// pathID reads the "id" path parameter and requires it to be a UUID.
// Malformed ids become a validation error here instead of an "invalid
// input syntax" failure inside Postgres.
func pathID(r *http.Request) (string, error) {
	id := chi.URLParam(r, "id")
	if _, err := uuid.Parse(id); err != nil {
		return "", fmt.Errorf("%w: id must be a UUID", common.ErrValidation)
	}
	return id, nil
}

// parseListArgs reads the shared collection query parameters: limit,
// offset, and search. Absent parameters fall back to the defaults; range
// checks happen in the service layer via Pagination.Validate.
func parseListArgs(r *http.Request) (args.Pagination, args.Search, error) {
	p := args.DefaultPagination()
	q := r.URL.Query()

	if v := q.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return p, args.Search{}, fmt.Errorf("%w: limit must be an integer", common.ErrValidation)
		}
		p.Limit = n
	}
	if v := q.Get("offset"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return p, args.Search{}, fmt.Errorf("%w: offset must be an integer", common.ErrValidation)
		}
		p.Offset = n
	}

	return p, args.Search{Term: q.Get("search")}, nil
}
