package pagination

import (
	"fmt"
	"net/http"
	"strconv"
)

// Params represents pagination query parameters from an HTTP request.
type Params struct {
	Page     int // 1-based page number
	PageSize int // Items per page
}

// ParseQueryParams parses pagination parameters from the request query
// string. Missing parameters fall back to the configured defaults.
//
// Query parameters:
//   - page: Page number (must be a positive integer)
//   - page_size: Items per page (must be between 1 and config.MaxPageSize)
//
// Returns an error if a parameter is present but invalid.
func ParseQueryParams(r *http.Request, config Config) (Params, error) {
	params := Params{
		Page:     config.DefaultPage,
		PageSize: config.DefaultPageSize,
	}

	if pageStr := r.URL.Query().Get("page"); pageStr != "" {
		page, err := strconv.Atoi(pageStr)
		if err != nil || page < 1 {
			return params, fmt.Errorf("invalid query parameter: page must be a positive integer")
		}
		params.Page = page
	}

	if sizeStr := r.URL.Query().Get("page_size"); sizeStr != "" {
		size, err := strconv.Atoi(sizeStr)
		if err != nil || size < 1 || size > config.MaxPageSize {
			return params, fmt.Errorf("invalid query parameter: page_size must be between 1 and %d", config.MaxPageSize)
		}
		params.PageSize = size
	}

	return params, nil
}
