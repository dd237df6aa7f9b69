package news

import (
	"net/http"
	"time"

	"crypto-news/internal/common/pagination"
	"crypto-news/internal/usecase/ingest"
	newsUC "crypto-news/internal/usecase/news"
)

// Register registers all news HTTP handlers with the given mux.
func Register(mux *http.ServeMux, ingestSvc *ingest.Service, querySvc *newsUC.Service,
	paginationCfg pagination.Config, sentimentWindow time.Duration) {

	mux.Handle("POST /push_news", PushHandler{Svc: ingestSvc})
	mux.Handle("GET /get_news", ListHandler{Svc: querySvc, PaginationCfg: paginationCfg})
	mux.Handle("GET /get_new_detail/", GetHandler{Svc: querySvc})
	mux.Handle("GET /get_market_sentiment", SentimentHandler{Svc: querySvc, Window: sentimentWindow})
}
