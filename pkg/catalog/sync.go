package catalog

import (
	"context"
	"fmt"

	"github.com/latoulicious/dexbox/pkg/logging"
)

// Synchronizer copies a catalogue from one source into a Sink, used to seed
// the database-backed catalogue from the shipped files.
type Synchronizer struct {
	loader *Loader
	sink   Sink
	logger logging.Logger
}

// NewSynchronizer creates a Synchronizer.
func NewSynchronizer(from Source, sink Sink) *Synchronizer {
	return &Synchronizer{
		loader: NewLoader(from),
		sink:   sink,
		logger: logging.GetGlobalLoggerFactory().CreateLogger("catalog_sync"),
	}
}

// Sync loads the source and replaces the sink's contents with it.
func (s *Synchronizer) Sync(ctx context.Context) error {
	s.logger.Info("Starting catalogue synchronization", map[string]interface{}{
		"stage": "fetch_all",
	})

	catalog, err := s.loader.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch catalogue: %w", err)
	}

	if err := s.sink.ReplaceEntries(ctx, catalog.Entries()); err != nil {
		s.logger.Error("Failed to save entries", err, map[string]interface{}{
			"entries": catalog.Len(),
			"stage":   "database_sync",
		})
		return fmt.Errorf("failed to save entries: %w", err)
	}

	for _, kind := range ListKinds {
		items := catalog.Lists().Get(kind)
		if err := s.sink.ReplaceItems(ctx, kind, items); err != nil {
			s.logger.Error("Failed to save lookup list", err, map[string]interface{}{
				"list":  string(kind),
				"stage": "database_sync",
			})
			return fmt.Errorf("failed to save %s list: %w", kind, err)
		}
	}

	s.logger.Info("Catalogue synchronization completed", map[string]interface{}{
		"entries": catalog.Len(),
		"stage":   "completed",
	})
	return nil
}
