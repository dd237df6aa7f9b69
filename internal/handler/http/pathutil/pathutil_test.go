package pathutil

import (
	"errors"
	"testing"
)

func TestExtractID(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		prefix  string
		want    int64
		wantErr bool
	}{
		{name: "valid id", path: "/get_new_detail/123", prefix: "/get_new_detail/", want: 123},
		{name: "id one", path: "/get_new_detail/1", prefix: "/get_new_detail/", want: 1},
		{name: "not a number", path: "/get_new_detail/abc", prefix: "/get_new_detail/", wantErr: true},
		{name: "zero", path: "/get_new_detail/0", prefix: "/get_new_detail/", wantErr: true},
		{name: "negative", path: "/get_new_detail/-5", prefix: "/get_new_detail/", wantErr: true},
		{name: "empty", path: "/get_new_detail/", prefix: "/get_new_detail/", wantErr: true},
		{name: "trailing segment", path: "/get_new_detail/12/extra", prefix: "/get_new_detail/", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractID(tt.path, tt.prefix)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidID) {
					t.Fatalf("ExtractID() err=%v, want ErrInvalidID", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ExtractID() err=%v", err)
			}
			if got != tt.want {
				t.Fatalf("ExtractID()=%d want %d", got, tt.want)
			}
		})
	}
}

func TestNormalizePath(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"/get_new_detail/123", "/get_new_detail/:id"},
		{"/get_new_detail/456789", "/get_new_detail/:id"},
		{"/get_new_detail/123?fields=all", "/get_new_detail/:id"},
		{"/get_new_detail/123/", "/get_new_detail/:id"},
		{"/get_news", "/get_news"},
		{"/get_news?page=2", "/get_news"},
		{"/get_market_sentiment", "/get_market_sentiment"},
		{"/push_news", "/push_news"},
		{"/health", "/health"},
		{"/metrics", "/metrics"},
		{"/", "/"},
		{"/unknown/path/123", "/unknown/path/123"},
	}

	for _, tt := range tests {
		if got := NormalizePath(tt.path); got != tt.want {
			t.Errorf("NormalizePath(%q)=%q want %q", tt.path, got, tt.want)
		}
	}
}
