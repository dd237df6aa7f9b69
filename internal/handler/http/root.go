package http

import (
	"encoding/json"
	"log"
	"net/http"
)

// RootHandler returns service metadata and an endpoint directory at "/".
type RootHandler struct {
	Name    string
	Version string
}

func (h RootHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	// ServeMux routes every unmatched path here
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	resp := map[string]any{
		"message": h.Name,
		"version": h.Version,
		"endpoints": map[string]string{
			"push_news":            "POST /push_news",
			"get_news":             "GET /get_news",
			"get_new_detail":       "GET /get_new_detail/{id}",
			"get_market_sentiment": "GET /get_market_sentiment",
			"health":               "GET /health",
			"metrics":              "GET /metrics",
		},
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		log.Printf("root: failed to encode response: %v", err)
	}
}
