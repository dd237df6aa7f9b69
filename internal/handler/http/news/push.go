package news

import (
	"encoding/json"
	"errors"
	"net/http"

	"crypto-news/internal/domain/entity"
	httpmetrics "crypto-news/internal/handler/http"
	"crypto-news/internal/handler/http/respond"
	"crypto-news/internal/usecase/ingest"
)

type PushHandler struct{ Svc *ingest.Service }

// ServeHTTP ingests a crawler-pushed news article.
// @Summary      Push news
// @Description  Accepts a news article, analyzes it and stores the result
// @Tags         news
// @Accept       json
// @Produce      json
// @Param        news body object true "News article"
// @Success      200 {object} PushResponse
// @Failure      400 {string} string "Bad request - invalid input"
// @Failure      500 {string} string "Classification or storage failure"
// @Router       /push_news [post]
func (h PushHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Title     string `json:"title"`
		Content   string `json:"content"`
		SourceURL string `json:"source_url"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	item, err := h.Svc.Push(r.Context(), ingest.PushInput{
		Title:     req.Title,
		Content:   req.Content,
		SourceURL: req.SourceURL,
	})
	if err != nil {
		code := http.StatusInternalServerError
		var vErr *entity.ValidationError
		if errors.As(err, &vErr) || errors.Is(err, entity.ErrInvalidInput) {
			code = http.StatusBadRequest
		}
		respond.SafeError(w, code, err)
		return
	}

	httpmetrics.RecordNewsIngested(item.IsMajor)

	respond.JSON(w, http.StatusOK, PushResponse{
		Status:  "success",
		Message: "News received and analyzed.",
		ID:      item.ID,
	})
}
