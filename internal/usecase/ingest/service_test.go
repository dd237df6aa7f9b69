package ingest_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"crypto-news/internal/domain/entity"
	"crypto-news/internal/infra/classifier"
	"crypto-news/internal/repository"
	"crypto-news/internal/usecase/ingest"
)

/* ───────── stubs ───────── */

type stubRepo struct {
	data   map[int64]*entity.NewsItem
	nextID int64
	err    error
}

func newStubRepo() *stubRepo {
	return &stubRepo{data: map[int64]*entity.NewsItem{}, nextID: 1}
}

func (s *stubRepo) Create(_ context.Context, item *entity.NewsItem) error {
	if s.err != nil {
		return s.err
	}
	item.ID = s.nextID
	s.nextID++
	s.data[item.ID] = item
	return nil
}

func (s *stubRepo) Get(_ context.Context, id int64) (*entity.NewsItem, error) {
	return s.data[id], s.err
}

func (s *stubRepo) ListPaginated(_ context.Context, _, _ int) ([]*entity.NewsItem, error) {
	return nil, s.err
}

func (s *stubRepo) Count(_ context.Context) (int64, error) {
	return int64(len(s.data)), s.err
}

func (s *stubRepo) SearchRanked(_ context.Context, _ string, _ float64, _, _ int) ([]*entity.NewsItem, error) {
	return nil, s.err
}

func (s *stubRepo) CountRanked(_ context.Context, _ string, _ float64) (int64, error) {
	return 0, s.err
}

func (s *stubRepo) SearchSubstring(_ context.Context, _ string, _, _ int) ([]*entity.NewsItem, error) {
	return nil, s.err
}

func (s *stubRepo) CountSubstring(_ context.Context, _ string) (int64, error) {
	return 0, s.err
}

func (s *stubRepo) SentimentStats(_ context.Context, _ time.Time) (*repository.SentimentStats, error) {
	return nil, s.err
}

func (s *stubRepo) DeleteOlderThan(_ context.Context, _ time.Time) (int64, error) {
	return 0, s.err
}

type stubClassifier struct {
	result *classifier.Result
	err    error
}

func (c *stubClassifier) Classify(_ context.Context, _, _ string) (*classifier.Result, error) {
	return c.result, c.err
}

type stubCleaner struct {
	called chan struct{}
}

func (c *stubCleaner) Cleanup(_ context.Context, _ time.Time) (int64, error) {
	close(c.called)
	return 1, nil
}

type stubNotifier struct {
	notified []*entity.NewsItem
}

func (n *stubNotifier) NotifyMajorNews(_ context.Context, item *entity.NewsItem) error {
	n.notified = append(n.notified, item)
	return nil
}

func newService(repo *stubRepo, cl classifier.Classifier) *ingest.Service {
	return &ingest.Service{
		Repo:          repo,
		Classifier:    cl,
		ThresholdLow:  0.2,
		ThresholdHigh: 0.8,
	}
}

/* ───────── Push ───────── */

func TestPush_Success(t *testing.T) {
	repo := newStubRepo()
	svc := newService(repo, &stubClassifier{result: &classifier.Result{
		Summary:        "summary",
		Sentiment:      entity.SentimentPositive,
		SentimentScore: 0.9,
		MentionedCoins: []string{"BTC", "ETH"},
	}})

	item, err := svc.Push(context.Background(), ingest.PushInput{
		Title:     "BTC rallies",
		Content:   "content",
		SourceURL: "https://example.com/btc",
	})
	if err != nil {
		t.Fatalf("Push err=%v", err)
	}
	if item.ID != 1 {
		t.Fatalf("id=%d want 1", item.ID)
	}
	if !item.IsMajor {
		t.Fatal("score 0.9 should be major")
	}
	if len(item.MentionedCoins) != 2 {
		t.Fatalf("coins=%v", item.MentionedCoins)
	}
	if _, ok := repo.data[1]; !ok {
		t.Fatal("item not persisted")
	}
}

func TestPush_Validation(t *testing.T) {
	repo := newStubRepo()
	svc := newService(repo, &stubClassifier{result: &classifier.Result{}})

	tests := []struct {
		name string
		in   ingest.PushInput
	}{
		{"missing title", ingest.PushInput{Content: "c", SourceURL: "https://u.example"}},
		{"missing content", ingest.PushInput{Title: "t", SourceURL: "https://u.example"}},
		{"missing source url", ingest.PushInput{Title: "t", Content: "c"}},
		{"bad scheme", ingest.PushInput{Title: "t", Content: "c", SourceURL: "ftp://u.example"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.Push(context.Background(), tt.in); err == nil {
				t.Fatal("Push err=nil, want validation error")
			}
		})
	}
	if len(repo.data) != 0 {
		t.Fatalf("invalid input persisted %d items", len(repo.data))
	}
}

func TestPush_ClassifierFailure(t *testing.T) {
	repo := newStubRepo()
	wantErr := errors.New("api down")
	svc := newService(repo, &stubClassifier{err: wantErr})

	_, err := svc.Push(context.Background(), ingest.PushInput{
		Title: "t", Content: "c", SourceURL: "https://u.example",
	})
	if !errors.Is(err, wantErr) {
		t.Fatalf("Push err=%v, want wrapped classifier error", err)
	}
	if len(repo.data) != 0 {
		t.Fatal("item persisted despite classification failure")
	}
}

func TestPush_RepoFailure(t *testing.T) {
	repo := newStubRepo()
	repo.err = errors.New("db down")
	svc := newService(repo, &stubClassifier{result: &classifier.Result{
		Sentiment: entity.SentimentNeutral, SentimentScore: 0.5, MentionedCoins: []string{},
	}})

	if _, err := svc.Push(context.Background(), ingest.PushInput{
		Title: "t", Content: "c", SourceURL: "https://u.example",
	}); err == nil {
		t.Fatal("Push err=nil, want repo error")
	}
}

func TestPush_MajorBoundaries(t *testing.T) {
	tests := []struct {
		score float64
		major bool
	}{
		{0.19, true},
		{0.2, false},
		{0.5, false},
		{0.8, false},
		{0.81, true},
	}

	for _, tt := range tests {
		repo := newStubRepo()
		svc := newService(repo, &stubClassifier{result: &classifier.Result{
			Summary:        "s",
			Sentiment:      entity.SentimentFromScore(tt.score),
			SentimentScore: tt.score,
			MentionedCoins: []string{},
		}})

		item, err := svc.Push(context.Background(), ingest.PushInput{
			Title: "t", Content: "c", SourceURL: "https://u.example",
		})
		if err != nil {
			t.Fatalf("score %v: Push err=%v", tt.score, err)
		}
		if item.IsMajor != tt.major {
			t.Errorf("score %v: is_major=%v want %v", tt.score, item.IsMajor, tt.major)
		}
	}
}

func TestPush_FallbackClassifier(t *testing.T) {
	repo := newStubRepo()
	svc := newService(repo, classifier.NewNoOp())

	long := strings.Repeat("x", 450)
	item, err := svc.Push(context.Background(), ingest.PushInput{
		Title: "t", Content: long, SourceURL: "https://u.example",
	})
	if err != nil {
		t.Fatalf("Push err=%v", err)
	}
	if len([]rune(item.Summary)) != entity.FallbackSummaryRunes {
		t.Fatalf("summary length=%d", len([]rune(item.Summary)))
	}
	if item.Sentiment != entity.SentimentNeutral || item.SentimentScore != entity.NeutralScore {
		t.Fatalf("fallback result=%+v", item)
	}
	if item.IsMajor {
		t.Fatal("fallback item must not be major")
	}
}

func TestPush_TriggersCleanup(t *testing.T) {
	repo := newStubRepo()
	cleaner := &stubCleaner{called: make(chan struct{})}
	svc := newService(repo, classifier.NewNoOp())
	svc.Cleaner = cleaner

	if _, err := svc.Push(context.Background(), ingest.PushInput{
		Title: "t", Content: "c", SourceURL: "https://u.example",
	}); err != nil {
		t.Fatalf("Push err=%v", err)
	}

	select {
	case <-cleaner.called:
	case <-time.After(time.Second):
		t.Fatal("cleanup was not triggered")
	}
}

func TestPush_NotifiesOnMajorNews(t *testing.T) {
	repo := newStubRepo()
	notifier := &stubNotifier{}
	svc := newService(repo, &stubClassifier{result: &classifier.Result{
		Summary:        "exchange hacked",
		Sentiment:      entity.SentimentNegative,
		SentimentScore: 0.05,
		MentionedCoins: []string{"BTC"},
	}})
	svc.Notifier = notifier

	item, err := svc.Push(context.Background(), ingest.PushInput{
		Title: "Exchange hacked", Content: "details", SourceURL: "https://u.example",
	})
	if err != nil {
		t.Fatalf("Push err=%v", err)
	}
	if !item.IsMajor {
		t.Fatal("item with score 0.05 should be major")
	}
	if len(notifier.notified) != 1 || notifier.notified[0].ID != item.ID {
		t.Errorf("notified = %+v, want the stored item once", notifier.notified)
	}
}

func TestPush_NoNotificationForMinorNews(t *testing.T) {
	repo := newStubRepo()
	notifier := &stubNotifier{}
	svc := newService(repo, classifier.NewNoOp())
	svc.Notifier = notifier

	if _, err := svc.Push(context.Background(), ingest.PushInput{
		Title: "t", Content: "c", SourceURL: "https://u.example",
	}); err != nil {
		t.Fatalf("Push err=%v", err)
	}
	if len(notifier.notified) != 0 {
		t.Errorf("minor news produced %d notifications", len(notifier.notified))
	}
}
