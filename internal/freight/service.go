package freight

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=freight
type Repository interface {
	CreateCost(ctx context.Context, c *Cost) error
	GetCost(ctx context.Context, id uuid.UUID) (*Cost, error)
	DeleteCost(ctx context.Context, id uuid.UUID) error
	ListCosts(ctx context.Context) ([]*Cost, error)
}

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// WithClock overrides the clock that stamps CreatedAt.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Add saves a new freight calculation. An empty shipment type means sea freight.
func (s *Service) Add(ctx context.Context, comp Components) (*Cost, error) {
	comp.ShipmentType = ShipmentType(strings.ToLower(strings.TrimSpace(string(comp.ShipmentType))))
	if comp.ShipmentType == "" {
		comp.ShipmentType = ShipmentSea
	}

	if !comp.ShipmentType.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownShipmentType, comp.ShipmentType)
	}

	comp.Origin = strings.TrimSpace(comp.Origin)
	comp.Destination = strings.TrimSpace(comp.Destination)

	c := &Cost{
		Components: comp,
		ID:         uuid.New(),
		CreatedAt:  s.now(),
	}
	if err := s.repo.CreateCost(ctx, c); err != nil {
		return nil, fmt.Errorf("creating freight cost: %w", err)
	}

	return c, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Cost, error) {
	return s.repo.GetCost(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]*Cost, error) {
	return s.repo.ListCosts(ctx)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteCost(ctx, id)
}
