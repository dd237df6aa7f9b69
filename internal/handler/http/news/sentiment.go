package news

import (
	"net/http"
	"time"

	"crypto-news/internal/handler/http/respond"
	newsUC "crypto-news/internal/usecase/news"
)

type SentimentHandler struct {
	Svc    *newsUC.Service
	Window time.Duration
}

// ServeHTTP returns the aggregate market sentiment over the retention window.
// @Summary      Market sentiment
// @Description  Average, count and extrema of sentiment scores over the recent window
// @Tags         news
// @Produce      json
// @Success      200 {object} SentimentResponse
// @Failure      500 {string} string "Server error"
// @Router       /get_market_sentiment [get]
func (h SentimentHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ms, err := h.Svc.Sentiment(r.Context(), time.Now().UTC(), h.Window)
	if err != nil {
		respond.SafeError(w, http.StatusInternalServerError, err)
		return
	}

	respond.JSON(w, http.StatusOK, toSentimentResponse(ms))
}
