package embed_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/latoulicious/dexbox/pkg/embed"
)

func TestBasicEmbeds_Colors(t *testing.T) {
	b := embed.NewBasicEmbedBuilder()

	assert.Equal(t, 0x00ff00, b.Success("t", "d").Color)
	assert.Equal(t, 0xff0000, b.Error("t", "d").Color)
	assert.Equal(t, 0x7289da, b.Info("t", "d").Color)
	assert.Equal(t, 0xffaa00, b.Warning("t", "d").Color)

	e := b.Info("title", "description")
	assert.Equal(t, "title", e.Title)
	assert.Equal(t, "description", e.Description)
	_, err := time.Parse(time.RFC3339, e.Timestamp)
	assert.NoError(t, err)
}

func TestEditorEmbeds(t *testing.T) {
	b := embed.CreateEditorEmbeds()

	added := b.BoxAdded("025", "皮卡丘")
	assert.Contains(t, added.Description, "#025")
	require.Len(t, added.Fields, 2)
	assert.Equal(t, "皮卡丘", added.Fields[1].Value)

	conflict := b.MoveConflict("撞击", 2)
	assert.Contains(t, conflict.Description, "撞击")
	assert.Equal(t, "3", conflict.Fields[0].Value)

	reloaded := b.CatalogReloaded("file", 151)
	assert.Contains(t, reloaded.Description, "151")

	failed := b.CatalogLoadFailed("http", errors.New("status 404"))
	require.NotNil(t, failed.Footer)
	assert.Equal(t, "status 404", failed.Footer.Text)
}
