package catalog

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/latoulicious/dexbox/pkg/logging"
)

// Loader fetches the dataset and the three lookup lists concurrently.
type Loader struct {
	source Source
	logger logging.Logger
}

// NewLoader creates a Loader for source.
func NewLoader(source Source) *Loader {
	return &Loader{
		source: source,
		logger: logging.GetGlobalLoggerFactory().CreateLogger("catalog"),
	}
}

// SourceName names the source the loader reads.
func (l *Loader) SourceName() string {
	return l.source.Name()
}

// Load fetches everything and builds a Catalog. Any failure fails the whole
// load; nothing partial is returned.
func (l *Loader) Load(ctx context.Context) (*Catalog, error) {
	l.logger.Info("Loading catalogue", map[string]interface{}{
		"source": l.source.Name(),
	})

	g, ctx := errgroup.WithContext(ctx)

	var entries []Entry
	g.Go(func() error {
		loaded, err := l.source.LoadDataset(ctx)
		if err != nil {
			return fmt.Errorf("load dataset: %w", err)
		}
		entries = loaded
		return nil
	})

	results := make([][]LookupItem, len(ListKinds))
	for i, kind := range ListKinds {
		i, kind := i, kind
		g.Go(func() error {
			items, err := l.source.LoadList(ctx, kind)
			if err != nil {
				return fmt.Errorf("load %s list: %w", kind, err)
			}
			results[i] = items
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		l.logger.Error("Failed to load catalogue", err, map[string]interface{}{
			"source": l.source.Name(),
		})
		return nil, err
	}

	var lists Lists
	for i, kind := range ListKinds {
		lists.set(kind, results[i])
	}

	catalog := New(entries, lists)
	l.logger.Info("Catalogue loaded", map[string]interface{}{
		"source":  l.source.Name(),
		"entries": catalog.Len(),
		"balls":   len(lists.Balls),
		"items":   len(lists.Items),
		"natures": len(lists.Natures),
	})
	return catalog, nil
}
