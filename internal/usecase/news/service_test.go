package news_test

import (
	"context"
	"errors"
	"sort"
	"strings"
	"testing"
	"time"

	"crypto-news/internal/common/pagination"
	"crypto-news/internal/domain/entity"
	"crypto-news/internal/repository"
	newsUC "crypto-news/internal/usecase/news"
)

/* ───────── stub repository ───────── */

// in-memory NewsRepository with optional forced errors
type stubRepo struct {
	items  []*entity.NewsItem
	err    error // every operation fails with this
	ftsErr error // only the ranked search path fails
}

func (s *stubRepo) Create(_ context.Context, item *entity.NewsItem) error {
	if s.err != nil {
		return s.err
	}
	s.items = append(s.items, item)
	return nil
}

func (s *stubRepo) Get(_ context.Context, id int64) (*entity.NewsItem, error) {
	if s.err != nil {
		return nil, s.err
	}
	for _, item := range s.items {
		if item.ID == id {
			return item, nil
		}
	}
	return nil, nil
}

func (s *stubRepo) sorted() []*entity.NewsItem {
	out := make([]*entity.NewsItem, len(s.items))
	copy(out, s.items)
	sort.Slice(out, func(i, j int) bool {
		return out[i].ReceivedAt.After(out[j].ReceivedAt)
	})
	return out
}

func page(items []*entity.NewsItem, offset, limit int) []*entity.NewsItem {
	if offset >= len(items) {
		return []*entity.NewsItem{}
	}
	end := offset + limit
	if end > len(items) {
		end = len(items)
	}
	return items[offset:end]
}

func (s *stubRepo) ListPaginated(_ context.Context, offset, limit int) ([]*entity.NewsItem, error) {
	if s.err != nil {
		return nil, s.err
	}
	return page(s.sorted(), offset, limit), nil
}

func (s *stubRepo) Count(_ context.Context) (int64, error) {
	if s.err != nil {
		return 0, s.err
	}
	return int64(len(s.items)), nil
}

func (s *stubRepo) SearchRanked(_ context.Context, search string, _ float64, offset, limit int) ([]*entity.NewsItem, error) {
	if s.err != nil {
		return nil, s.err
	}
	if s.ftsErr != nil {
		return nil, s.ftsErr
	}
	return page(s.substringMatch(search), offset, limit), nil
}

func (s *stubRepo) CountRanked(_ context.Context, search string, _ float64) (int64, error) {
	if s.err != nil {
		return 0, s.err
	}
	if s.ftsErr != nil {
		return 0, s.ftsErr
	}
	return int64(len(s.substringMatch(search))), nil
}

func (s *stubRepo) substringMatch(search string) []*entity.NewsItem {
	needle := strings.ToLower(search)
	var out []*entity.NewsItem
	for _, item := range s.sorted() {
		haystack := strings.ToLower(item.Title + " " + item.OriginalContent + " " + item.Summary)
		if strings.Contains(haystack, needle) {
			out = append(out, item)
		}
	}
	return out
}

func (s *stubRepo) SearchSubstring(_ context.Context, search string, offset, limit int) ([]*entity.NewsItem, error) {
	if s.err != nil {
		return nil, s.err
	}
	return page(s.substringMatch(search), offset, limit), nil
}

func (s *stubRepo) CountSubstring(_ context.Context, search string) (int64, error) {
	if s.err != nil {
		return 0, s.err
	}
	return int64(len(s.substringMatch(search))), nil
}

func (s *stubRepo) SentimentStats(_ context.Context, since time.Time) (*repository.SentimentStats, error) {
	if s.err != nil {
		return nil, s.err
	}

	var inWindow []*entity.NewsItem
	for _, item := range s.items {
		if !item.ReceivedAt.Before(since) {
			inWindow = append(inWindow, item)
		}
	}
	if len(inWindow) == 0 {
		return nil, nil
	}

	stats := &repository.SentimentStats{
		Count:    int64(len(inWindow)),
		MaxScore: inWindow[0].SentimentScore,
		MinScore: inWindow[0].SentimentScore,
	}
	var sum float64
	for _, item := range inWindow {
		sum += item.SentimentScore
		if item.SentimentScore > stats.MaxScore {
			stats.MaxScore = item.SentimentScore
		}
		if item.SentimentScore < stats.MinScore {
			stats.MinScore = item.SentimentScore
		}
	}
	stats.Average = sum / float64(len(inWindow))

	// earliest received_at, then smallest id
	extreme := func(score float64) int64 {
		var best *entity.NewsItem
		for _, item := range inWindow {
			if item.SentimentScore != score {
				continue
			}
			if best == nil ||
				item.ReceivedAt.Before(best.ReceivedAt) ||
				(item.ReceivedAt.Equal(best.ReceivedAt) && item.ID < best.ID) {
				best = item
			}
		}
		return best.ID
	}
	stats.MaxID = extreme(stats.MaxScore)
	stats.MinID = extreme(stats.MinScore)
	return stats, nil
}

func (s *stubRepo) DeleteOlderThan(_ context.Context, _ time.Time) (int64, error) {
	return 0, s.err
}

func seedItem(id int64, title string, score float64, receivedAt time.Time) *entity.NewsItem {
	return &entity.NewsItem{
		ID: id, Title: title, OriginalContent: "content about " + title,
		SourceURL: "https://example.com", ReceivedAt: receivedAt,
		Summary: "summary", Sentiment: entity.SentimentFromScore(score),
		SentimentScore: score, MentionedCoins: []string{},
	}
}

/* ───────── List ───────── */

func TestList_Pagination(t *testing.T) {
	now := time.Now().UTC()
	repo := &stubRepo{}
	for i := int64(1); i <= 5; i++ {
		repo.items = append(repo.items,
			seedItem(i, "news", 0.5, now.Add(time.Duration(i)*time.Minute)))
	}
	svc := &newsUC.Service{Repo: repo}

	got, err := svc.List(context.Background(), newsUC.ListInput{
		Params: pagination.Params{Page: 2, PageSize: 2},
	})
	if err != nil {
		t.Fatalf("List err=%v", err)
	}
	if len(got.Items) != 2 {
		t.Fatalf("items=%d want 2", len(got.Items))
	}
	if got.Pagination.Total != 5 || got.Pagination.TotalPages != 3 {
		t.Fatalf("pagination=%+v", got.Pagination)
	}
	// newest first: ids 5,4 on page 1, 3,2 on page 2
	if got.Items[0].ID != 3 || got.Items[1].ID != 2 {
		t.Fatalf("page 2 ids=%d,%d want 3,2", got.Items[0].ID, got.Items[1].ID)
	}
}

func TestList_Empty(t *testing.T) {
	svc := &newsUC.Service{Repo: &stubRepo{}}

	got, err := svc.List(context.Background(), newsUC.ListInput{
		Params: pagination.Params{Page: 1, PageSize: 20},
	})
	if err != nil {
		t.Fatalf("List err=%v", err)
	}
	if len(got.Items) != 0 {
		t.Fatalf("items=%d want 0", len(got.Items))
	}
	if got.Pagination.TotalPages != 0 {
		t.Fatalf("total_pages=%d want 0", got.Pagination.TotalPages)
	}
}

func TestList_PageBeyondRange(t *testing.T) {
	now := time.Now().UTC()
	repo := &stubRepo{items: []*entity.NewsItem{seedItem(1, "news", 0.5, now)}}
	svc := &newsUC.Service{Repo: repo}

	got, err := svc.List(context.Background(), newsUC.ListInput{
		Params: pagination.Params{Page: 9, PageSize: 20},
	})
	if err != nil {
		t.Fatalf("List err=%v", err)
	}
	if len(got.Items) != 0 || got.Pagination.Total != 1 {
		t.Fatalf("got=%+v", got)
	}
}

func TestList_Search(t *testing.T) {
	now := time.Now().UTC()
	repo := &stubRepo{items: []*entity.NewsItem{
		seedItem(1, "Bitcoin ETF approved", 0.9, now),
		seedItem(2, "Ethereum upgrade", 0.6, now.Add(time.Minute)),
	}}
	svc := &newsUC.Service{Repo: repo}

	got, err := svc.List(context.Background(), newsUC.ListInput{
		Search: "bitcoin",
		Params: pagination.Params{Page: 1, PageSize: 20},
	})
	if err != nil {
		t.Fatalf("List err=%v", err)
	}
	if len(got.Items) != 1 || got.Items[0].ID != 1 {
		t.Fatalf("items=%+v", got.Items)
	}
	if got.Pagination.Total != 1 {
		t.Fatalf("total=%d want 1", got.Pagination.Total)
	}
}

func TestList_SearchFallback(t *testing.T) {
	now := time.Now().UTC()
	repo := &stubRepo{
		items:  []*entity.NewsItem{seedItem(1, "Bitcoin ETF approved", 0.9, now)},
		ftsErr: errors.New("function to_tsvector does not exist"),
	}
	svc := &newsUC.Service{Repo: repo}

	got, err := svc.List(context.Background(), newsUC.ListInput{
		Search: "BITCOIN",
		Params: pagination.Params{Page: 1, PageSize: 20},
	})
	if err != nil {
		t.Fatalf("List err=%v", err)
	}
	if len(got.Items) != 1 || got.Pagination.Total != 1 {
		t.Fatalf("fallback got=%+v", got)
	}
}

func TestList_RepoFailure(t *testing.T) {
	svc := &newsUC.Service{Repo: &stubRepo{err: errors.New("db down")}}

	if _, err := svc.List(context.Background(), newsUC.ListInput{
		Params: pagination.Params{Page: 1, PageSize: 20},
	}); err == nil {
		t.Fatal("List err=nil, want error")
	}
}

/* ───────── Get ───────── */

func TestGet(t *testing.T) {
	now := time.Now().UTC()
	repo := &stubRepo{items: []*entity.NewsItem{seedItem(7, "news", 0.5, now)}}
	svc := &newsUC.Service{Repo: repo}

	got, err := svc.Get(context.Background(), 7)
	if err != nil {
		t.Fatalf("Get err=%v", err)
	}
	if got.ID != 7 {
		t.Fatalf("id=%d want 7", got.ID)
	}

	if _, err := svc.Get(context.Background(), 99); !errors.Is(err, newsUC.ErrNewsNotFound) {
		t.Fatalf("Get(99) err=%v, want ErrNewsNotFound", err)
	}
	if _, err := svc.Get(context.Background(), 0); !errors.Is(err, newsUC.ErrInvalidNewsID) {
		t.Fatalf("Get(0) err=%v, want ErrInvalidNewsID", err)
	}
	if _, err := svc.Get(context.Background(), -1); !errors.Is(err, newsUC.ErrInvalidNewsID) {
		t.Fatalf("Get(-1) err=%v, want ErrInvalidNewsID", err)
	}
}

/* ───────── Sentiment ───────── */

func TestSentiment_EmptyWindow(t *testing.T) {
	svc := &newsUC.Service{Repo: &stubRepo{}}

	got, err := svc.Sentiment(context.Background(), time.Now().UTC(), time.Hour)
	if err != nil {
		t.Fatalf("Sentiment err=%v", err)
	}
	if got.Average != 0.5 || got.Count != 0 {
		t.Fatalf("got=%+v want neutral default", got)
	}
	if got.MaxScore != nil || got.MinScore != nil || got.MaxID != nil || got.MinID != nil {
		t.Fatalf("extrema should be absent on empty window: %+v", got)
	}
}

func TestSentiment_Aggregates(t *testing.T) {
	now := time.Now().UTC()
	repo := &stubRepo{items: []*entity.NewsItem{
		seedItem(1, "a", 0.9, now.Add(-10*time.Minute)),
		seedItem(2, "b", 0.1, now.Add(-20*time.Minute)),
		seedItem(3, "c", 0.5, now.Add(-30*time.Minute)),
		seedItem(4, "old", 0.99, now.Add(-2*time.Hour)), // outside window
	}}
	svc := &newsUC.Service{Repo: repo}

	got, err := svc.Sentiment(context.Background(), now, time.Hour)
	if err != nil {
		t.Fatalf("Sentiment err=%v", err)
	}
	if got.Count != 3 {
		t.Fatalf("count=%d want 3", got.Count)
	}
	if got.Average != 0.5 {
		t.Fatalf("avg=%v want 0.5", got.Average)
	}
	if *got.MaxScore != 0.9 || *got.MaxID != 1 {
		t.Fatalf("max=%v id=%v", *got.MaxScore, *got.MaxID)
	}
	if *got.MinScore != 0.1 || *got.MinID != 2 {
		t.Fatalf("min=%v id=%v", *got.MinScore, *got.MinID)
	}
}

func TestSentiment_Rounding(t *testing.T) {
	now := time.Now().UTC()
	repo := &stubRepo{items: []*entity.NewsItem{
		seedItem(1, "a", 0.1, now),
		seedItem(2, "b", 0.2, now),
		seedItem(3, "c", 0.3, now),
	}}
	svc := &newsUC.Service{Repo: repo}

	got, err := svc.Sentiment(context.Background(), now.Add(time.Second), time.Hour)
	if err != nil {
		t.Fatalf("Sentiment err=%v", err)
	}
	// (0.1+0.2+0.3)/3 = 0.20000000000000004 before rounding
	if got.Average != 0.2 {
		t.Fatalf("avg=%v want 0.2", got.Average)
	}
}
