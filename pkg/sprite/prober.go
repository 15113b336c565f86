package sprite

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

// sniffLen is how much of an asset is read to decide whether it is an image.
const sniffLen = 512

var (
	// ErrNotImage is returned when an asset loads but is not an image.
	ErrNotImage = errors.New("asset is not an image")
	// ErrUnsupported is returned for references no prober can load.
	ErrUnsupported = errors.New("unsupported asset reference")
)

// Prober attempts to load one candidate location.
type Prober interface {
	Probe(ctx context.Context, location string) error
}

// ProberFunc adapts a function to Prober.
type ProberFunc func(ctx context.Context, location string) error

// Probe calls f.
func (f ProberFunc) Probe(ctx context.Context, location string) error {
	return f(ctx, location)
}

func looksLikeImage(head []byte) bool {
	if strings.HasPrefix(http.DetectContentType(head), "image/") {
		return true
	}
	return bytes.Contains(bytes.ToLower(head), []byte("<svg"))
}

// FileProber loads candidates from a directory tree. Leading "/" and "./"
// are relative to Root; paths leaving Root never load.
type FileProber struct {
	Root string
}

// Probe checks that location exists under Root and holds an image.
func (p FileProber) Probe(ctx context.Context, location string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	rel := filepath.Clean(filepath.FromSlash(strings.TrimPrefix(location, "/")))
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return fmt.Errorf("%s escapes asset root: %w", location, ErrUnsupported)
	}
	full := filepath.Join(p.Root, rel)

	f, err := os.Open(full)
	if err != nil {
		return fmt.Errorf("open %s: %w", location, err)
	}
	defer f.Close()

	head := make([]byte, sniffLen)
	n, err := io.ReadFull(f, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return fmt.Errorf("read %s: %w", location, err)
	}
	if !looksLikeImage(head[:n]) {
		return fmt.Errorf("%s: %w", location, ErrNotImage)
	}
	return nil
}

// HTTPProber loads absolute URLs.
type HTTPProber struct {
	Client *http.Client
}

// Probe fetches location and checks the response is an image.
func (p HTTPProber) Probe(ctx context.Context, location string) error {
	client := p.Client
	if client == nil {
		client = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, location, nil)
	if err != nil {
		return fmt.Errorf("build request for %s: %w", location, err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("fetch %s: %w", location, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("fetch %s: status %d", location, resp.StatusCode)
	}
	if strings.HasPrefix(resp.Header.Get("Content-Type"), "image/") {
		return nil
	}

	head, err := io.ReadAll(io.LimitReader(resp.Body, sniffLen))
	if err != nil {
		return fmt.Errorf("read %s: %w", location, err)
	}
	if !looksLikeImage(head) {
		return fmt.Errorf("%s: %w", location, ErrNotImage)
	}
	return nil
}

// SchemeProber routes a location to the prober for its scheme. Inline data
// URIs load when they carry an image type; blob URLs never load server side.
type SchemeProber struct {
	File Prober
	HTTP Prober
}

// Probe dispatches on the location's scheme.
func (p SchemeProber) Probe(ctx context.Context, location string) error {
	lower := strings.ToLower(location)
	switch {
	case strings.HasPrefix(lower, "http:"), strings.HasPrefix(lower, "https:"):
		if p.HTTP == nil {
			return fmt.Errorf("%s: %w", location, ErrUnsupported)
		}
		return p.HTTP.Probe(ctx, location)
	case strings.HasPrefix(lower, "data:"):
		if strings.HasPrefix(lower, "data:image/") {
			return nil
		}
		return fmt.Errorf("data uri: %w", ErrNotImage)
	case strings.HasPrefix(lower, "blob:"):
		return fmt.Errorf("%s: %w", location, ErrUnsupported)
	}
	if p.File == nil {
		return fmt.Errorf("%s: %w", location, ErrUnsupported)
	}
	return p.File.Probe(ctx, location)
}
