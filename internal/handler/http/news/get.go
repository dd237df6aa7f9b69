package news

import (
	"errors"
	"net/http"

	"crypto-news/internal/handler/http/pathutil"
	"crypto-news/internal/handler/http/respond"
	newsUC "crypto-news/internal/usecase/news"
)

type GetHandler struct{ Svc *newsUC.Service }

// ServeHTTP returns a single news item by ID.
// @Summary      News detail
// @Description  Returns the full stored news item for the given ID
// @Tags         news
// @Produce      json
// @Param        id path int true "News ID"
// @Success      200 {object} ItemDTO
// @Failure      400 {string} string "Bad request - invalid news ID"
// @Failure      404 {string} string "Not found"
// @Failure      500 {string} string "Server error"
// @Router       /get_new_detail/{id} [get]
func (h GetHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := pathutil.ExtractID(r.URL.Path, "/get_new_detail/")
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	item, err := h.Svc.Get(r.Context(), id)
	if err != nil {
		code := http.StatusInternalServerError
		if errors.Is(err, newsUC.ErrInvalidNewsID) {
			code = http.StatusBadRequest
		} else if errors.Is(err, newsUC.ErrNewsNotFound) {
			code = http.StatusNotFound
		}
		respond.SafeError(w, code, err)
		return
	}

	respond.JSON(w, http.StatusOK, toItemDTO(item))
}
