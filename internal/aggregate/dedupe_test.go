// ABOUTME: Tests for cross-source deduplication
// ABOUTME: Verifies first-occurrence precedence and dropping of empty keys

package aggregate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harper/matchday/internal/models"
)

func TestDedupeArticlesKeepsFirst(t *testing.T) {
	id := models.DeriveID("https://x/a", "")
	items := []models.Article{
		{ID: id, Title: "Derby Day", SourceLabel: "First"},
		{ID: models.DeriveID("https://x/b", ""), Title: "Other"},
		{ID: id, Title: "DERBY DAY", SourceLabel: "Second"},
	}

	out := DedupeArticles(items)
	require.Len(t, out, len(items)-1)
	assert.Equal(t, "Derby Day", out[0].Title)
	assert.Equal(t, "First", out[0].SourceLabel)
	assert.Equal(t, "Other", out[1].Title)
}

func TestDedupeDropsEmptyKeys(t *testing.T) {
	out := DedupeEvents([]models.Event{{ID: ""}, {ID: "e1"}, {ID: ""}})
	require.Len(t, out, 1)
	assert.Equal(t, "e1", out[0].ID)
}

func TestDedupeKeepsNearDuplicates(t *testing.T) {
	items := []models.Article{
		{ID: models.DeriveID("https://store/a", "Same title"), Title: "Same title"},
		{ID: models.DeriveID("https://feed/a", "Same title"), Title: "Same title"},
	}
	assert.Len(t, DedupeArticles(items), 2)
}

func TestDedupeEmpty(t *testing.T) {
	assert.Empty(t, DedupeArticles(nil))
}
