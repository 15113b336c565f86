package sprite_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/latoulicious/dexbox/pkg/sprite"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

type outcomes struct {
	mu       sync.Mutex
	found    []string
	notFound int
}

func (o *outcomes) onFound(location string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.found = append(o.found, location)
}

func (o *outcomes) onNotFound() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.notFound++
}

func (o *outcomes) snapshot() ([]string, int) {
	o.mu.Lock()
	defer o.mu.Unlock()
	return append([]string(nil), o.found...), o.notFound
}

func allowOnly(locations ...string) sprite.Prober {
	allowed := make(map[string]bool, len(locations))
	for _, l := range locations {
		allowed[l] = true
	}
	return sprite.ProberFunc(func(ctx context.Context, location string) error {
		if allowed[location] {
			return nil
		}
		return errors.New("not found")
	})
}

func TestResolve_FirstLoadingCandidateWins(t *testing.T) {
	var probed []string
	var mu sync.Mutex
	prober := sprite.ProberFunc(func(ctx context.Context, location string) error {
		mu.Lock()
		probed = append(probed, location)
		mu.Unlock()
		if location == "picture/007.jpg" || location == "picture/7.webp" {
			return nil
		}
		return errors.New("missing")
	})

	r := sprite.NewResolver(prober, "")
	var o outcomes
	r.Resolve("7", o.onFound, o.onNotFound)
	r.Wait()

	found, notFound := o.snapshot()
	assert.Equal(t, []string{"picture/007.jpg"}, found)
	assert.Zero(t, notFound)
	assert.Equal(t, []string{"picture/7.png", "picture/007.png", "picture/7.jpg", "picture/007.jpg"}, probed)
}

func TestResolve_ExhaustedReportsNotFound(t *testing.T) {
	r := sprite.NewResolver(allowOnly(), "")
	var o outcomes
	r.Resolve("7", o.onFound, o.onNotFound)
	r.Wait()

	found, notFound := o.snapshot()
	assert.Empty(t, found)
	assert.Equal(t, 1, notFound)
}

func TestResolve_EmptyReferenceIsSynchronous(t *testing.T) {
	r := sprite.NewResolver(allowOnly(), "")
	var o outcomes
	r.Resolve("  ", o.onFound, o.onNotFound)

	_, notFound := o.snapshot()
	assert.Equal(t, 1, notFound)
}

func TestResolve_SupersededResolutionIsSilent(t *testing.T) {
	entered := make(chan struct{})
	release := make(chan struct{})
	prober := sprite.ProberFunc(func(ctx context.Context, location string) error {
		switch location {
		case "picture/7.png":
			close(entered)
			<-release
			return nil
		case "picture/8.png":
			return nil
		}
		return errors.New("missing")
	})

	r := sprite.NewResolver(prober, "")
	var seven, eight outcomes
	first := r.Resolve("7", seven.onFound, seven.onNotFound)
	<-entered
	second := r.Resolve("8", eight.onFound, eight.onNotFound)
	close(release)
	r.Wait()

	assert.Greater(t, second, first)

	found, notFound := seven.snapshot()
	assert.Empty(t, found)
	assert.Zero(t, notFound)

	found, notFound = eight.snapshot()
	assert.Equal(t, []string{"picture/8.png"}, found)
	assert.Zero(t, notFound)
}

func TestResolveSync(t *testing.T) {
	r := sprite.NewResolver(allowOnly("picture/025.gif"), "")

	location, err := r.ResolveSync(context.Background(), "25")
	require.NoError(t, err)
	assert.Equal(t, "picture/025.gif", location)

	_, err = r.ResolveSync(context.Background(), "26")
	assert.ErrorIs(t, err, sprite.ErrNotFound)
}

func TestView_ShowsOnlyNewest(t *testing.T) {
	r := sprite.NewResolver(allowOnly("picture/1.png"), "")
	view := sprite.NewView()

	view.Show(r, "1")
	r.Wait()
	state := view.State()
	assert.True(t, state.ShowImage)
	assert.False(t, state.ShowPlaceholder)
	assert.Equal(t, "picture/1.png", state.Source)

	gen := view.Show(r, "2")
	r.Wait()
	state = view.State()
	assert.False(t, state.ShowImage)
	assert.True(t, state.ShowPlaceholder)
	assert.False(t, state.Pending)
	assert.Equal(t, "2", state.Reference)
	assert.Equal(t, gen, state.Generation)
}

func TestResolver_CloseCancelsProbe(t *testing.T) {
	prober := sprite.ProberFunc(func(ctx context.Context, location string) error {
		<-ctx.Done()
		return ctx.Err()
	})
	r := sprite.NewResolver(prober, "")
	var o outcomes
	r.Resolve("7", o.onFound, o.onNotFound)

	done := make(chan struct{})
	go func() {
		r.Close()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Close did not return")
	}

	found, notFound := o.snapshot()
	assert.Empty(t, found)
	assert.Zero(t, notFound)
}

func TestFileProber(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "picture"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "picture", "7.png"), pngHeader, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "picture", "7.svg"), []byte(`<?xml version="1.0"?><svg xmlns="http://www.w3.org/2000/svg"></svg>`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "picture", "7.gif"), []byte("not an image"), 0o644))

	p := sprite.FileProber{Root: root}
	ctx := context.Background()

	assert.NoError(t, p.Probe(ctx, "picture/7.png"))
	assert.NoError(t, p.Probe(ctx, "/picture/7.png"))
	assert.NoError(t, p.Probe(ctx, "./picture/7.svg"))
	assert.ErrorIs(t, p.Probe(ctx, "picture/7.gif"), sprite.ErrNotImage)
	assert.ErrorIs(t, p.Probe(ctx, "picture/8.png"), os.ErrNotExist)
	assert.ErrorIs(t, p.Probe(ctx, "../secret.png"), sprite.ErrUnsupported)
}

func TestHTTPProber(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/typed.png", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write(pngHeader)
	})
	mux.HandleFunc("/sniffed", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/octet-stream")
		_, _ = w.Write(pngHeader)
	})
	mux.HandleFunc("/page", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte("<html></html>"))
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	p := sprite.HTTPProber{Client: server.Client()}
	ctx := context.Background()

	assert.NoError(t, p.Probe(ctx, server.URL+"/typed.png"))
	assert.NoError(t, p.Probe(ctx, server.URL+"/sniffed"))
	assert.ErrorIs(t, p.Probe(ctx, server.URL+"/page"), sprite.ErrNotImage)
	assert.Error(t, p.Probe(ctx, server.URL+"/missing.png"))
}

func TestSchemeProber(t *testing.T) {
	var routed []string
	record := func(name string) sprite.Prober {
		return sprite.ProberFunc(func(ctx context.Context, location string) error {
			routed = append(routed, name)
			return nil
		})
	}
	p := sprite.SchemeProber{File: record("file"), HTTP: record("http")}
	ctx := context.Background()

	assert.NoError(t, p.Probe(ctx, "https://x/y.png"))
	assert.NoError(t, p.Probe(ctx, "picture/7.png"))
	assert.NoError(t, p.Probe(ctx, "data:image/png;base64,AAAA"))
	assert.ErrorIs(t, p.Probe(ctx, "data:text/plain,hi"), sprite.ErrNotImage)
	assert.ErrorIs(t, p.Probe(ctx, "blob:abc"), sprite.ErrUnsupported)
	assert.Equal(t, []string{"http", "file"}, routed)

	assert.ErrorIs(t, sprite.SchemeProber{}.Probe(ctx, "picture/7.png"), sprite.ErrUnsupported)
}
