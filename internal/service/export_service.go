package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/rs/zerolog"
	"github.com/solar-catalog-api/internal/models"
	"github.com/solar-catalog-api/internal/repository"
)

// Export formats
const (
	FormatJSON   = "json"
	FormatNDJSON = "ndjson"
)

// exportService is the concrete implementation of ExportService
type exportService struct {
	repos *repository.Repositories
	log   zerolog.Logger
}

// newExportService creates a new ExportService
func newExportService(repos *repository.Repositories, log zerolog.Logger) *exportService {
	return &exportService{
		repos: repos,
		log:   log.With().Str("service", "export").Logger(),
	}
}

// StreamArticles writes every stored article in the given format
func (s *exportService) StreamArticles(ctx context.Context, w http.ResponseWriter, format string) error {
	s.log.Info().Str("format", format).Msg("Starting articles export")
	return stream(ctx, w, s.log, "articles", format, s.repos.Article.StreamAll)
}

// StreamProducts writes every stored product in the given format.
// Seed data is never exported.
func (s *exportService) StreamProducts(ctx context.Context, w http.ResponseWriter, format string) error {
	s.log.Info().Str("format", format).Msg("Starting products export")
	return stream(ctx, w, s.log, "products", format, s.repos.Product.StreamAll)
}

// GetCount returns the number of stored documents for a resource
func (s *exportService) GetCount(ctx context.Context, resource string) (int, error) {
	count := 0
	var err error
	switch resource {
	case "articles":
		err = s.repos.Article.StreamAll(ctx, func(*models.Article) error { count++; return nil })
	case "products":
		err = s.repos.Product.StreamAll(ctx, func(*models.Product) error { count++; return nil })
	default:
		return 0, fmt.Errorf("unknown resource: %s", resource)
	}
	if err != nil {
		return 0, storeError("count "+resource, err)
	}
	return count, nil
}

// stream writes the documents produced by streamAll as a JSON array or as
// newline-delimited JSON, flushing every 100 records. Nothing reaches w until
// the first document arrives, so a store failure before that leaves the
// response untouched for the caller to report.
func stream[T any](ctx context.Context, w http.ResponseWriter, log zerolog.Logger, name, format string, streamAll func(context.Context, func(T) error) error) error {
	var contentType string
	switch format {
	case FormatJSON:
		contentType = "application/json"
	case FormatNDJSON:
		contentType = "application/x-ndjson"
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}

	flusher, _ := w.(http.Flusher)
	count := 0
	started := false

	begin := func() {
		started = true
		w.Header().Set("Content-Type", contentType)
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s.%s", name, format))
		w.WriteHeader(http.StatusOK)
		if format == FormatJSON {
			w.Write([]byte("["))
		}
	}

	err := streamAll(ctx, func(doc T) error {
		data, err := json.Marshal(doc)
		if err != nil {
			return err
		}
		if !started {
			begin()
		}
		if format == FormatJSON && count > 0 {
			w.Write([]byte(","))
		}
		w.Write(data)
		if format == FormatNDJSON {
			w.Write([]byte("\n"))
		}
		count++

		if count%100 == 0 && flusher != nil {
			flusher.Flush()
		}
		return nil
	})

	if err != nil {
		// A JSON array already started is left unterminated so clients see a truncated body
		log.Error().Err(err).Str("resource", name).Int("count", count).Msg("Export aborted")
		return storeError("export "+name, err)
	}

	if !started {
		begin()
	}
	if format == FormatJSON {
		w.Write([]byte("]"))
	}
	log.Info().Str("resource", name).Int("count", count).Msg("Export completed")
	return nil
}
