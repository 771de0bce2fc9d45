package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/anime-shed/random-art-go/internal/errors"
)

const artsText = `https://twitter.com/artist/status/1111
https://safebooru.org/index.php?page=post&s=view&id=2222

https://twitter.com/artist/status/3333
`

func TestParse(t *testing.T) {
	reg, err := Parse(artsText)
	require.NoError(t, err)
	require.Equal(t, 3, reg.Len())

	first := reg.entries[0]
	assert.Equal(t, KindTwitter, first.Kind)
	assert.Equal(t, "https://twitter.com/artist/status/1111", first.SourceURL.String())

	second := reg.entries[1]
	assert.Equal(t, KindSafebooru, second.Kind)

	assert.True(t, reg.Known("https://twitter.com/artist/status/3333"))
	assert.False(t, reg.Known("https://twitter.com/artist/status/9999"))
}

func TestParseRejectsUnknownHost(t *testing.T) {
	_, err := Parse("https://example.com/some/art")
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeParse))
}

func TestParseRejectsLineWithoutHost(t *testing.T) {
	_, err := Parse("not a url at all")
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeParse))
}

func TestKindForHost(t *testing.T) {
	kind, err := KindForHost("twitter.com")
	require.NoError(t, err)
	assert.Equal(t, KindTwitter, kind)

	kind, err = KindForHost("safebooru.org")
	require.NoError(t, err)
	assert.Equal(t, KindSafebooru, kind)

	_, err = KindForHost("pixiv.net")
	assert.Error(t, err)
}

func TestPickRandomCoversAllEntries(t *testing.T) {
	reg, err := Parse(artsText)
	require.NoError(t, err)

	counts := make(map[string]int)
	const samples = 6000
	for i := 0; i < samples; i++ {
		entry := reg.PickRandom()
		counts[entry.SourceURL.String()]++
	}

	require.Len(t, counts, reg.Len())
	// Roughly uniform: each entry should land well within 2x of its
	// expected share over this many samples.
	expected := samples / reg.Len()
	for url, count := range counts {
		assert.Greater(t, count, expected/2, "entry %s picked too rarely", url)
		assert.Less(t, count, expected*2, "entry %s picked too often", url)
	}
}

func TestReloadIsIdempotent(t *testing.T) {
	reg, err := Parse(artsText)
	require.NoError(t, err)

	require.NoError(t, reg.Reload(artsText))
	assert.Equal(t, 3, reg.Len())

	require.NoError(t, reg.Reload(artsText))
	assert.Equal(t, 3, reg.Len())
}

func TestReloadAppendsOnlyNewEntries(t *testing.T) {
	reg, err := Parse(artsText)
	require.NoError(t, err)

	updated := artsText + "\nhttps://twitter.com/artist/status/4444\n"
	require.NoError(t, reg.Reload(updated))

	require.Equal(t, 4, reg.Len())
	// Existing entries keep their positions; the new one lands at the end.
	assert.Equal(t, "https://twitter.com/artist/status/1111", reg.entries[0].SourceURL.String())
	assert.Equal(t, "https://twitter.com/artist/status/4444", reg.entries[3].SourceURL.String())
}

func TestReloadIsMonotonic(t *testing.T) {
	reg, err := Parse(artsText)
	require.NoError(t, err)

	before := make([]string, 0, reg.Len())
	for _, entry := range reg.entries {
		before = append(before, entry.SourceURL.String())
	}

	require.NoError(t, reg.Reload("https://safebooru.org/index.php?page=post&s=view&id=5555"))
	for _, url := range before {
		assert.True(t, reg.Known(url))
	}
}

func TestReloadAppliesLinesUpToFirstFailure(t *testing.T) {
	reg, err := Parse(artsText)
	require.NoError(t, err)

	bad := "https://twitter.com/artist/status/4444\nhttps://example.com/nope\nhttps://twitter.com/artist/status/5555"
	err = reg.Reload(bad)
	require.Error(t, err)

	// The line before the failure is applied, the one after is not.
	assert.True(t, reg.Known("https://twitter.com/artist/status/4444"))
	assert.False(t, reg.Known("https://twitter.com/artist/status/5555"))
	assert.Equal(t, 4, reg.Len())
}
