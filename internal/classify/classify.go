package classify

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

var ErrEmptyMapping = errors.New("pattern and hs code are required")

// Mapping teaches the classifier that descriptions containing Pattern ship
// under HSCode.
type Mapping struct {
	Pattern   string
	HSCode    string
	CreatedAt time.Time
}

//go:generate mockgen -source=classify.go -destination=repository_mock.go -package=classify
type Repository interface {
	FindMatch(ctx context.Context, description string) (string, error)
	CreateMapping(ctx context.Context, m Mapping) error
	ListMappings(ctx context.Context) ([]Mapping, error)
}

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// Suggest returns the HS code learned for the best matching pattern, or an
// empty string when nothing matches.
func (s *Service) Suggest(ctx context.Context, description string) (string, error) {
	description = strings.TrimSpace(description)
	if description == "" {
		return "", nil
	}

	return s.repo.FindMatch(ctx, description)
}

// Learn remembers that descriptions containing pattern use hsCode.
func (s *Service) Learn(ctx context.Context, pattern, hsCode string) error {
	m := Mapping{
		Pattern:   strings.TrimSpace(pattern),
		HSCode:    strings.TrimSpace(hsCode),
		CreatedAt: s.now(),
	}

	if m.Pattern == "" || m.HSCode == "" {
		return ErrEmptyMapping
	}

	if err := s.repo.CreateMapping(ctx, m); err != nil {
		return fmt.Errorf("learning hs code: %w", err)
	}

	return nil
}

func (s *Service) List(ctx context.Context) ([]Mapping, error) {
	return s.repo.ListMappings(ctx)
}
