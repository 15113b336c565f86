package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
)

// ErrSourceUnavailable wraps every failure to fetch the dataset or a list.
var ErrSourceUnavailable = errors.New("catalog source unavailable")

// Source yields the reference dataset and the lookup lists.
type Source interface {
	Name() string
	LoadDataset(ctx context.Context) ([]Entry, error)
	LoadList(ctx context.Context, kind ListKind) ([]LookupItem, error)
}

// Paths names the four documents relative to a source's base.
type Paths struct {
	Dataset string
	Balls   string
	Items   string
	Natures string
}

// DefaultPaths are the document names the editor ships with.
func DefaultPaths() Paths {
	return Paths{
		Dataset: "test.json",
		Balls:   "ball_list.txt",
		Items:   "itemlist.txt",
		Natures: "NatureList.txt",
	}
}

func (p Paths) list(kind ListKind) (string, error) {
	switch kind {
	case ListBalls:
		return p.Balls, nil
	case ListItems:
		return p.Items, nil
	case ListNatures:
		return p.Natures, nil
	}
	return "", fmt.Errorf("unknown list kind %q", kind)
}

func decodeDataset(name string, data []byte) ([]Entry, error) {
	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("%w: decode %s: %v", ErrSourceUnavailable, name, err)
	}
	return entries, nil
}

// FileSource reads the documents from a directory.
type FileSource struct {
	BaseDir string
	Paths   Paths
}

// NewFileSource creates a FileSource rooted at baseDir.
func NewFileSource(baseDir string, paths Paths) *FileSource {
	return &FileSource{BaseDir: baseDir, Paths: paths}
}

// Name identifies the source in logs.
func (s *FileSource) Name() string {
	return "file"
}

func (s *FileSource) read(ctx context.Context, name string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(filepath.Join(s.BaseDir, name))
	if err != nil {
		return nil, fmt.Errorf("%w: cannot read %s: %v", ErrSourceUnavailable, name, err)
	}
	return data, nil
}

// LoadDataset reads and decodes the dataset file.
func (s *FileSource) LoadDataset(ctx context.Context) ([]Entry, error) {
	data, err := s.read(ctx, s.Paths.Dataset)
	if err != nil {
		return nil, err
	}
	return decodeDataset(s.Paths.Dataset, data)
}

// LoadList reads and parses one lookup list file.
func (s *FileSource) LoadList(ctx context.Context, kind ListKind) ([]LookupItem, error) {
	name, err := s.Paths.list(kind)
	if err != nil {
		return nil, err
	}
	data, err := s.read(ctx, name)
	if err != nil {
		return nil, err
	}
	return ParseList(kind, string(data))
}

// HTTPSource fetches the documents relative to a base URL.
type HTTPSource struct {
	BaseURL string
	Paths   Paths
	Client  *http.Client
}

// NewHTTPSource creates an HTTPSource. A nil client uses http.DefaultClient.
func NewHTTPSource(baseURL string, paths Paths, client *http.Client) *HTTPSource {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPSource{BaseURL: baseURL, Paths: paths, Client: client}
}

// Name identifies the source in logs.
func (s *HTTPSource) Name() string {
	return "http"
}

func (s *HTTPSource) fetch(ctx context.Context, name string) ([]byte, error) {
	target, err := url.JoinPath(s.BaseURL, name)
	if err != nil {
		return nil, fmt.Errorf("%w: bad url for %s: %v", ErrSourceUnavailable, name, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}

	resp, err := s.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: cannot read %s: %v", ErrSourceUnavailable, target, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: cannot read %s: status %d", ErrSourceUnavailable, target, resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: cannot read %s: %v", ErrSourceUnavailable, target, err)
	}
	return data, nil
}

// LoadDataset fetches and decodes the dataset document.
func (s *HTTPSource) LoadDataset(ctx context.Context) ([]Entry, error) {
	data, err := s.fetch(ctx, s.Paths.Dataset)
	if err != nil {
		return nil, err
	}
	return decodeDataset(s.Paths.Dataset, data)
}

// LoadList fetches and parses one lookup list.
func (s *HTTPSource) LoadList(ctx context.Context, kind ListKind) ([]LookupItem, error) {
	name, err := s.Paths.list(kind)
	if err != nil {
		return nil, err
	}
	data, err := s.fetch(ctx, name)
	if err != nil {
		return nil, err
	}
	return ParseList(kind, string(data))
}

// Store is a persistent catalogue, implemented by the database repository.
type Store interface {
	ListEntries(ctx context.Context) ([]Entry, error)
	ListItems(ctx context.Context, kind ListKind) ([]LookupItem, error)
}

// Sink receives a catalogue snapshot, implemented by the database repository.
type Sink interface {
	ReplaceEntries(ctx context.Context, entries []Entry) error
	ReplaceItems(ctx context.Context, kind ListKind, items []LookupItem) error
}

// DatabaseSource serves the catalogue from a Store.
type DatabaseSource struct {
	store Store
}

// NewDatabaseSource creates a DatabaseSource.
func NewDatabaseSource(store Store) *DatabaseSource {
	return &DatabaseSource{store: store}
}

// Name identifies the source in logs.
func (s *DatabaseSource) Name() string {
	return "database"
}

// LoadDataset reads every stored entry.
func (s *DatabaseSource) LoadDataset(ctx context.Context) ([]Entry, error) {
	entries, err := s.store.ListEntries(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: list entries: %v", ErrSourceUnavailable, err)
	}
	return entries, nil
}

// LoadList reads one stored lookup list.
func (s *DatabaseSource) LoadList(ctx context.Context, kind ListKind) ([]LookupItem, error) {
	items, err := s.store.ListItems(ctx, kind)
	if err != nil {
		return nil, fmt.Errorf("%w: list %s: %v", ErrSourceUnavailable, kind, err)
	}
	return items, nil
}
