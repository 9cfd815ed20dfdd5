package importer

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// Suggester proposes an HS code for a description, or "" when it has none.
type Suggester interface {
	Suggest(ctx context.Context, description string) (string, error)
}

// Service parses line item spreadsheets and fills blank HS codes from the
// learned classifications.
type Service struct {
	parser    *Parser
	suggester Suggester
	logger    *slog.Logger
}

// NewService builds an import service. suggester may be nil.
func NewService(suggester Suggester, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}

	return &Service{
		parser:    NewParser(),
		suggester: suggester,
		logger:    logger,
	}
}

func (s *Service) Import(ctx context.Context, r io.Reader) (Result, error) {
	res, err := s.parser.Parse(r)
	if err != nil {
		return Result{}, err
	}

	if s.suggester != nil {
		for i := range res.Items {
			item := &res.Items[i]
			if strings.TrimSpace(item.HSCode) != "" {
				continue
			}

			code, err := s.suggester.Suggest(ctx, item.Description)
			if err != nil {
				return Result{}, fmt.Errorf("suggesting hs code for %q: %w", item.Description, err)
			}

			item.HSCode = code
		}
	}

	s.logger.Info("line items imported",
		"profile", res.Profile,
		"charset", res.Charset,
		"items", len(res.Items),
		"skipped", res.Skipped,
	)

	return res, nil
}
