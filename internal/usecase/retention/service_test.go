package retention_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"crypto-news/internal/domain/entity"
	"crypto-news/internal/repository"
	"crypto-news/internal/usecase/retention"
)

type stubRepo struct {
	cutoff  time.Time
	deleted int64
	err     error
}

func (s *stubRepo) Create(_ context.Context, _ *entity.NewsItem) error { return s.err }
func (s *stubRepo) Get(_ context.Context, _ int64) (*entity.NewsItem, error) {
	return nil, s.err
}
func (s *stubRepo) ListPaginated(_ context.Context, _, _ int) ([]*entity.NewsItem, error) {
	return nil, s.err
}
func (s *stubRepo) Count(_ context.Context) (int64, error) { return 0, s.err }
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
func (s *stubRepo) DeleteOlderThan(_ context.Context, cutoff time.Time) (int64, error) {
	if s.err != nil {
		return 0, s.err
	}
	s.cutoff = cutoff
	return s.deleted, nil
}

func TestCleanup(t *testing.T) {
	repo := &stubRepo{deleted: 4}
	svc := &retention.Service{Repo: repo, Window: 24 * time.Hour}

	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	deleted, err := svc.Cleanup(context.Background(), now)
	if err != nil {
		t.Fatalf("Cleanup err=%v", err)
	}
	if deleted != 4 {
		t.Fatalf("deleted=%d want 4", deleted)
	}
	want := now.Add(-24 * time.Hour)
	if !repo.cutoff.Equal(want) {
		t.Fatalf("cutoff=%v want %v", repo.cutoff, want)
	}
}

func TestCleanup_RepoFailure(t *testing.T) {
	repo := &stubRepo{err: errors.New("db down")}
	svc := &retention.Service{Repo: repo, Window: time.Hour}

	if _, err := svc.Cleanup(context.Background(), time.Now()); err == nil {
		t.Fatal("Cleanup err=nil, want error")
	}
}
