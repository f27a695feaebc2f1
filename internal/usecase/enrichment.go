package usecase

import (
	"context"
	"log/slog"

	"github.com/polkiloo/eventhub/internal/domain/model"
	"github.com/polkiloo/eventhub/internal/metrics"
)

// MetadataSource reads buyer profile metadata from the identity provider.
type MetadataSource interface {
	ProfileMetadata(ctx context.Context, userID string) (model.ProfileMetadata, error)
}

// Enricher resolves a profile snapshot for a buyer. It never fails.
type Enricher interface {
	ProfileMetadata(ctx context.Context, buyerID string) model.ProfileMetadata
}

// MetadataEnricher degrades every lookup failure to an empty snapshot.
type MetadataEnricher struct {
	source  MetadataSource
	logger  *slog.Logger
	metrics *metrics.Recorder
}

// NewMetadataEnricher constructs MetadataEnricher.
func NewMetadataEnricher(source MetadataSource, logger *slog.Logger, rec *metrics.Recorder) *MetadataEnricher {
	return &MetadataEnricher{source: source, logger: logger, metrics: rec}
}

// ProfileMetadata returns the buyer's metadata or an empty non-nil map.
func (e *MetadataEnricher) ProfileMetadata(ctx context.Context, buyerID string) model.ProfileMetadata {
	meta, err := e.source.ProfileMetadata(ctx, buyerID)
	if err != nil {
		e.logger.Warn("buyer metadata unavailable",
			slog.String("buyer_id", buyerID),
			slog.String("error", err.Error()),
		)
		e.metrics.EnrichmentFailed()
		return model.ProfileMetadata{}
	}
	if meta == nil {
		return model.ProfileMetadata{}
	}
	return meta
}
