package editor

import (
	"context"
	"strconv"

	"github.com/latoulicious/dexbox/pkg/catalog"
	"github.com/latoulicious/dexbox/pkg/notify"
)

// Reload fetches a fresh catalogue through loader and installs it. On
// failure the installed catalogue, if any, stays in place. Either outcome
// is announced to the notifier.
func (s *Session) Reload(ctx context.Context, loader *catalog.Loader) error {
	c, err := loader.Load(ctx)
	if err != nil {
		s.announce(notify.Notification{
			Kind:    notify.KindCatalogFailed,
			Message: "catalogue reload failed",
			Detail: map[string]string{
				"source": loader.SourceName(),
				"error":  err.Error(),
			},
		})
		return err
	}

	s.SetCatalog(c)
	s.announce(notify.Notification{
		Kind:    notify.KindCatalogReloaded,
		Message: "catalogue reloaded",
		Detail: map[string]string{
			"source":  loader.SourceName(),
			"entries": strconv.Itoa(c.Len()),
		},
	})
	return nil
}

func (s *Session) announce(n notify.Notification) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending = append(s.pending, n)
	s.flush()
}
