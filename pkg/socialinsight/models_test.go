package socialinsight

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const listingHTML = `
<html>
<body>
  <nav><a href="/dashboard">ダッシュボード</a></nav>
  <table>
    <tr><td><a href="/keywords/101/tw/summary">渋谷</a></td></tr>
    <tr><td><a href="/keywords/102">
      新宿
    </a></td></tr>
    <tr><td><a href="https://social-admin.userlocal.jp/keywords/103?tab=tw">ラーメン</a></td></tr>
  </table>
  <footer><a href="/keywords/">すべて見る</a></footer>
</body>
</html>`

func TestParseKeywordListing(t *testing.T) {
	entries, err := ParseKeywordListing(listingHTML)
	require.NoError(t, err)

	assert.Equal(t, []KeywordEntry{
		{ID: "101", Name: "渋谷"},
		{ID: "102", Name: "新宿"},
		{ID: "103", Name: "ラーメン"},
	}, entries)
}

func TestParseKeywordListingSkipsNonKeywordAnchors(t *testing.T) {
	html := `<a href="/dashboard">home</a><a>no href</a><a href="/keywords/">listing</a>`

	entries, err := ParseKeywordListing(html)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestParseKeywordListingPreservesDocumentOrder(t *testing.T) {
	html := `
<a href="/keywords/2">beta</a>
<a href="/keywords/1">alpha</a>
<a href="/keywords/3">alpha</a>`

	entries, err := ParseKeywordListing(html)
	require.NoError(t, err)
	require.Len(t, entries, 3)

	assert.Equal(t, "2", entries[0].ID)
	assert.Equal(t, "1", entries[1].ID)
	assert.Equal(t, "3", entries[2].ID)
}

func TestParseKeywordListingEmptyDocument(t *testing.T) {
	entries, err := ParseKeywordListing("")
	require.NoError(t, err)
	assert.Empty(t, entries)
}
