package goquery_test

import (
	"regexp"
	"testing"

	"github.com/fwojciec/tropy/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const listHTML = `<html><body>
<div class="header"><a class="twikilink" href="http://tvtropes.org/pmwiki/pmwiki.php/Main/Outside">Outside</a></div>
<div class="page-content">
<ul>
<li><a class="twikilink" href="http://tvtropes.org/pmwiki/pmwiki.php/Main/FooBar" title="FooBar">Foo Bar</a></li>
<li><a class="twikilink" href="http://tvtropes.org/pmwiki/pmwiki.php/Film/Bright">Bright</a></li>
<li><a class="external" href="http://tvtropes.org/pmwiki/pmwiki.php/Main/BarFoo">Not a twikilink</a></li>
<li><a class="twikilink">No href</a></li>
</ul>
<input type="hidden" id="title-hidden" value="FooBar"/>
</div>
</body></html>`

func TestParser_Parse(t *testing.T) {
	t.Parallel()

	t.Run("keeps url and source verbatim", func(t *testing.T) {
		t.Parallel()

		doc, err := goquery.NewParser().Parse("http://tvtropes.org/x", listHTML)
		require.NoError(t, err)
		assert.Equal(t, "http://tvtropes.org/x", doc.URL())
		assert.Equal(t, listHTML, doc.Source())
	})

	t.Run("empty html yields a document without matches", func(t *testing.T) {
		t.Parallel()

		doc, err := goquery.NewParser().Parse("", "")
		require.NoError(t, err)
		_, ok := doc.Find("div", "page-content")
		assert.False(t, ok)
	})

	t.Run("malformed html does not fail", func(t *testing.T) {
		t.Parallel()

		doc, err := goquery.NewParser().Parse("", `<div class="page-content"><a class="twikilink" href="x">unclosed`)
		require.NoError(t, err)
		_, ok := doc.Find("div", "page-content")
		assert.True(t, ok)
	})
}

func TestNode_Find(t *testing.T) {
	t.Parallel()

	doc, err := goquery.NewParser().Parse("", listHTML)
	require.NoError(t, err)

	t.Run("finds element by tag and class", func(t *testing.T) {
		t.Parallel()

		region, ok := doc.Find("div", "page-content")
		require.True(t, ok)
		assert.Contains(t, region.HTML(), "Foo Bar")
		assert.NotContains(t, region.HTML(), "Outside")
	})

	t.Run("reports missing element", func(t *testing.T) {
		t.Parallel()

		_, ok := doc.Find("div", "foo-class")
		assert.False(t, ok)
	})

	t.Run("finds element by id and reads attribute", func(t *testing.T) {
		t.Parallel()

		input, ok := doc.FindByID("input", "title-hidden")
		require.True(t, ok)
		value, ok := input.Attr("value")
		require.True(t, ok)
		assert.Equal(t, "FooBar", value)

		_, ok = input.Attr("missing")
		assert.False(t, ok)
	})
}

func TestNode_FindAll(t *testing.T) {
	t.Parallel()

	doc, err := goquery.NewParser().Parse("", listHTML)
	require.NoError(t, err)
	region, ok := doc.Find("div", "page-content")
	require.True(t, ok)

	t.Run("filters by class and attribute pattern within the node", func(t *testing.T) {
		t.Parallel()

		pattern := regexp.MustCompile(regexp.QuoteMeta("tvtropes.org/pmwiki/pmwiki.php/Main/"))
		links := region.FindAll("a", "twikilink", "href", pattern)
		require.Len(t, links, 1)
		assert.Equal(t, "Foo Bar", links[0].Text())
	})

	t.Run("nil pattern only requires the attribute", func(t *testing.T) {
		t.Parallel()

		links := region.FindAll("a", "twikilink", "href", nil)
		assert.Len(t, links, 2)
	})
}
