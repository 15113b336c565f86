package catalog_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/latoulicious/dexbox/pkg/catalog"
)

const (
	datasetJSON = `[{"No":"4","CN_Name":"小火龙"},{"No":"1","CN_Name":"妙蛙种子","LV_Min":"5"}]`
	ballsText   = "id name\n1 精灵球\n2 超级球\n"
	itemsText   = "id name\n1 大师球\n2 剩饭\n"
	naturesText = "name\n固执\n胆小\n"
)

func writeDocuments(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	paths := catalog.DefaultPaths()
	files := map[string]string{
		paths.Dataset: datasetJSON,
		paths.Balls:   ballsText,
		paths.Items:   itemsText,
		paths.Natures: naturesText,
	}
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}
	return dir
}

func TestFileSource_Load(t *testing.T) {
	dir := writeDocuments(t)
	c, err := catalog.NewLoader(catalog.NewFileSource(dir, catalog.DefaultPaths())).Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, c.Len())
	first, _ := c.Default()
	assert.Equal(t, "妙蛙种子", first.CNName.Value)
	assert.Len(t, c.Lists().Balls, 2)
	assert.Equal(t, []catalog.LookupItem{{Name: "固执"}, {Name: "胆小"}}, c.Lists().Natures)
	assert.Equal(t, "大师球", c.DefaultHeldItemName("1", "fallback"))
}

func TestFileSource_MissingFile(t *testing.T) {
	dir := writeDocuments(t)
	require.NoError(t, os.Remove(filepath.Join(dir, "NatureList.txt")))

	c, err := catalog.NewLoader(catalog.NewFileSource(dir, catalog.DefaultPaths())).Load(context.Background())
	assert.Nil(t, c)
	assert.ErrorIs(t, err, catalog.ErrSourceUnavailable)
}

func TestFileSource_BadJSON(t *testing.T) {
	dir := writeDocuments(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "test.json"), []byte("{"), 0o644))

	_, err := catalog.NewFileSource(dir, catalog.DefaultPaths()).LoadDataset(context.Background())
	assert.ErrorIs(t, err, catalog.ErrSourceUnavailable)
}

func TestHTTPSource_Load(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/data/test.json", func(w http.ResponseWriter, r *http.Request) { _, _ = w.Write([]byte(datasetJSON)) })
	mux.HandleFunc("/data/ball_list.txt", func(w http.ResponseWriter, r *http.Request) { _, _ = w.Write([]byte(ballsText)) })
	mux.HandleFunc("/data/itemlist.txt", func(w http.ResponseWriter, r *http.Request) { _, _ = w.Write([]byte(itemsText)) })
	mux.HandleFunc("/data/NatureList.txt", func(w http.ResponseWriter, r *http.Request) { _, _ = w.Write([]byte(naturesText)) })
	server := httptest.NewServer(mux)
	defer server.Close()

	source := catalog.NewHTTPSource(server.URL+"/data", catalog.DefaultPaths(), server.Client())
	c, err := catalog.NewLoader(source).Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, c.Len())
	assert.Len(t, c.Lists().Items, 2)
}

func TestHTTPSource_StatusError(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	defer server.Close()

	source := catalog.NewHTTPSource(server.URL, catalog.DefaultPaths(), nil)
	_, err := source.LoadList(context.Background(), catalog.ListBalls)
	assert.ErrorIs(t, err, catalog.ErrSourceUnavailable)
	assert.Contains(t, err.Error(), "status 404")
}

// mockSource is a testify mock of catalog.Source
type mockSource struct {
	mock.Mock
}

func (m *mockSource) Name() string { return "mock" }

func (m *mockSource) LoadDataset(ctx context.Context) ([]catalog.Entry, error) {
	args := m.Called(ctx)
	entries, _ := args.Get(0).([]catalog.Entry)
	return entries, args.Error(1)
}

func (m *mockSource) LoadList(ctx context.Context, kind catalog.ListKind) ([]catalog.LookupItem, error) {
	args := m.Called(ctx, kind)
	items, _ := args.Get(0).([]catalog.LookupItem)
	return items, args.Error(1)
}

func TestLoader_AnyFailureFailsWholeLoad(t *testing.T) {
	source := &mockSource{}
	source.On("LoadDataset", mock.Anything).Return([]catalog.Entry{{No: catalog.Text("1")}}, nil)
	source.On("LoadList", mock.Anything, catalog.ListBalls).Return([]catalog.LookupItem{{ID: "1", Name: "a"}}, nil)
	source.On("LoadList", mock.Anything, catalog.ListItems).Return(nil, errors.New("connection reset"))
	source.On("LoadList", mock.Anything, catalog.ListNatures).Return([]catalog.LookupItem{{Name: "n"}}, nil)

	c, err := catalog.NewLoader(source).Load(context.Background())
	assert.Nil(t, c)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "items")
}

type fakeStore struct {
	entries []catalog.Entry
	items   map[catalog.ListKind][]catalog.LookupItem
	err     error
}

func (s *fakeStore) ListEntries(ctx context.Context) ([]catalog.Entry, error) {
	return s.entries, s.err
}

func (s *fakeStore) ListItems(ctx context.Context, kind catalog.ListKind) ([]catalog.LookupItem, error) {
	return s.items[kind], s.err
}

func (s *fakeStore) ReplaceEntries(ctx context.Context, entries []catalog.Entry) error {
	if s.err != nil {
		return s.err
	}
	s.entries = entries
	return nil
}

func (s *fakeStore) ReplaceItems(ctx context.Context, kind catalog.ListKind, items []catalog.LookupItem) error {
	if s.err != nil {
		return s.err
	}
	if s.items == nil {
		s.items = make(map[catalog.ListKind][]catalog.LookupItem)
	}
	s.items[kind] = items
	return nil
}

func TestSynchronizer_SeedsStoreAndDatabaseSourceReadsBack(t *testing.T) {
	dir := writeDocuments(t)
	store := &fakeStore{}

	err := catalog.NewSynchronizer(catalog.NewFileSource(dir, catalog.DefaultPaths()), store).Sync(context.Background())
	require.NoError(t, err)
	assert.Len(t, store.entries, 2)
	assert.Len(t, store.items[catalog.ListNatures], 2)

	c, err := catalog.NewLoader(catalog.NewDatabaseSource(store)).Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, c.Len())
	assert.Equal(t, "剩饭", c.Lists().Items[1].Name)
}

func TestDatabaseSource_WrapsStoreErrors(t *testing.T) {
	source := catalog.NewDatabaseSource(&fakeStore{err: errors.New("db down")})

	_, err := source.LoadDataset(context.Background())
	assert.ErrorIs(t, err, catalog.ErrSourceUnavailable)

	_, err = source.LoadList(context.Background(), catalog.ListItems)
	assert.ErrorIs(t, err, catalog.ErrSourceUnavailable)
}

func TestSynchronizer_SinkFailure(t *testing.T) {
	dir := writeDocuments(t)
	store := &fakeStore{err: errors.New("read only")}

	err := catalog.NewSynchronizer(catalog.NewFileSource(dir, catalog.DefaultPaths()), store).Sync(context.Background())
	assert.Error(t, err)
}
