package news

import (
	"errors"
	"net/http"
	"strconv"

	"crypto-news/internal/common/pagination"
	"crypto-news/internal/handler/http/respond"
	newsUC "crypto-news/internal/usecase/news"
)

type ListHandler struct {
	Svc           *newsUC.Service
	PaginationCfg pagination.Config
}

// ServeHTTP lists news items, newest first, with optional search.
// @Summary      List news
// @Description  Paginated news listing with optional relevance-ranked search
// @Tags         news
// @Produce      json
// @Param        search query string false "Search keyword"
// @Param        relevance_threshold query number false "Minimum full-text rank (default 0)"
// @Param        page query int false "Page number (1-indexed, default 1)"
// @Param        page_size query int false "Items per page (default 20, max 100)"
// @Success      200 {object} ListResponse
// @Failure      400 {string} string "Bad request - invalid query parameter"
// @Failure      500 {string} string "Server error"
// @Router       /get_news [get]
func (h ListHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	params, err := pagination.ParseQueryParams(r, h.PaginationCfg)
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	var threshold float64
	if thresholdStr := r.URL.Query().Get("relevance_threshold"); thresholdStr != "" {
		threshold, err = strconv.ParseFloat(thresholdStr, 64)
		if err != nil || threshold < 0 {
			respond.SafeError(w, http.StatusBadRequest,
				errors.New("invalid query parameter: relevance_threshold must be a non-negative number"))
			return
		}
	}

	result, err := h.Svc.List(r.Context(), newsUC.ListInput{
		Search:             r.URL.Query().Get("search"),
		RelevanceThreshold: threshold,
		Params:             params,
	})
	if err != nil {
		respond.SafeError(w, http.StatusInternalServerError, err)
		return
	}

	items := make([]ItemDTO, 0, len(result.Items))
	for _, item := range result.Items {
		items = append(items, toItemDTO(item))
	}

	respond.JSON(w, http.StatusOK, ListResponse{
		Items:      items,
		Total:      result.Pagination.Total,
		Page:       result.Pagination.Page,
		PageSize:   result.Pagination.PageSize,
		TotalPages: result.Pagination.TotalPages,
	})
}
