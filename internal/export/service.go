package export

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/MrJamesThe3rd/landed/internal/landedcost"
)

// Format selects the file type an export is rendered as.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// Source lists the accumulated worksheet rows.
type Source interface {
	List(ctx context.Context) ([]landedcost.Item, error)
}

// Service renders the worksheet in the supported formats.
type Service struct {
	source Source
	logger *slog.Logger
	now    func() time.Time
}

func NewService(source Source, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}

	return &Service{source: source, logger: logger, now: time.Now}
}

// WithClock overrides the clock used for file names.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Render returns the worksheet encoded as format along with its file name.
func (s *Service) Render(ctx context.Context, format Format) ([]byte, string, error) {
	items, err := s.source.List(ctx)
	if err != nil {
		return nil, "", fmt.Errorf("listing landed cost items: %w", err)
	}

	var data []byte

	switch format {
	case FormatCSV:
		var buf bytes.Buffer
		if err := WriteCSV(&buf, items); err != nil {
			return nil, "", fmt.Errorf("writing csv: %w", err)
		}

		data = buf.Bytes()
	case FormatXLSX:
		data, err = WriteXLSX(items)
		if err != nil {
			return nil, "", err
		}
	default:
		return nil, "", fmt.Errorf("unsupported export format %q", format)
	}

	s.logger.Info("worksheet exported", "format", format, "rows", len(items))

	return data, FileName(s.now(), string(format)), nil
}

// Save renders the worksheet into outputDir and returns the written path.
func (s *Service) Save(ctx context.Context, format Format, outputDir string) (string, error) {
	data, name, err := s.Render(ctx, format)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return "", fmt.Errorf("creating output directory: %w", err)
	}

	path := filepath.Join(outputDir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("writing file: %w", err)
	}

	return path, nil
}
