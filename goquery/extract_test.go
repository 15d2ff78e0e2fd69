package goquery_test

import (
	"strings"
	"testing"

	krpcgoquery "github.com/fwojciec/krpcdocs/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sphinxPage = `<!DOCTYPE html>
<html>
<head><title>SpaceCenter &mdash; kRPC 0.5.4 documentation</title>
<script>var x = "script noise";</script>
<style>.hidden { display: none; }</style>
</head>
<body>
<nav class="wy-nav-side"><a href="../../python.html">Home</a></nav>
<div class="document">
<h1>SpaceCenter</h1>
<p>Provides functionality to interact with Kerbal Space Program.</p>
<dl class="py method">
<dt id="SpaceCenter.Vessel.flight">
<code>flight</code><span class="sig-paren">(</span><em>reference_frame</em><span class="sig-paren">)</span>
</dt>
<dd><p>Returns a flight object that can be used   to get flight telemetry
for the vessel.</p></dd>
<dt id="SpaceCenter.Vessel.name">
<code>name</code>
</dt>
<dd><p>The name of the vessel.</p></dd>
<dt id="SpaceCenter.active_vessel">
<code>active_vessel</code>
</dt>
</dl>
<p>See <a href="space-center/vessel.html">Vessel</a> and
<a href="/krpc/python/tutorials.html#launching">Tutorials</a>.
<a href="mailto:team@example.com">Contact</a>
<a href="javascript:void(0)">Noop</a>
<a href="https://example.com/external.html">External</a></p>
</div>
<footer>Generated by Sphinx.</footer>
</body>
</html>`

func TestExtractor_Extract_title(t *testing.T) {
	t.Parallel()

	e := krpcgoquery.NewExtractor()

	content, err := e.Extract(sphinxPage, "https://krpc.github.io/krpc/python/api/space-center.html")
	require.NoError(t, err)

	assert.Equal(t, "SpaceCenter — kRPC 0.5.4 documentation", content.Title)
}

func TestExtractor_Extract_text_comes_from_document_region(t *testing.T) {
	t.Parallel()

	e := krpcgoquery.NewExtractor()

	content, err := e.Extract(sphinxPage, "https://krpc.github.io/krpc/python/api/space-center.html")
	require.NoError(t, err)

	assert.Contains(t, content.Text, "SpaceCenter")
	assert.Contains(t, content.Text, "Provides functionality to interact with Kerbal Space Program.")

	// Outside the content region.
	assert.NotContains(t, content.Text, "Generated by Sphinx")
	assert.NotContains(t, content.Text, "Home")

	// Invisible content.
	assert.NotContains(t, content.Text, "script noise")
	assert.NotContains(t, content.Text, "display: none")
}

func TestExtractor_Extract_text_has_no_blank_lines(t *testing.T) {
	t.Parallel()

	e := krpcgoquery.NewExtractor()

	content, err := e.Extract(sphinxPage, "https://krpc.github.io/krpc/python/api/space-center.html")
	require.NoError(t, err)

	for _, line := range strings.Split(content.Text, "\n") {
		assert.NotEmpty(t, strings.TrimSpace(line), "extracted text should contain no blank lines")
		assert.Equal(t, strings.TrimSpace(line), line, "lines should be trimmed")
	}
}

func TestExtractor_Extract_falls_back_to_whole_document(t *testing.T) {
	t.Parallel()

	e := krpcgoquery.NewExtractor()

	content, err := e.Extract("<html><body><p>bare page</p></body></html>", "https://krpc.github.io/krpc/python.html")
	require.NoError(t, err)

	assert.Contains(t, content.Text, "bare page")
	assert.Empty(t, content.Title)
}

func TestExtractor_Extract_members(t *testing.T) {
	t.Parallel()

	e := krpcgoquery.NewExtractor()

	pageURL := "https://krpc.github.io/krpc/python/api/space-center.html"
	content, err := e.Extract(sphinxPage, pageURL)
	require.NoError(t, err)
	require.Len(t, content.Members, 3)

	flight := content.Members[0]
	assert.Equal(t, "SpaceCenter.Vessel.flight", flight.ID)
	assert.Equal(t, pageURL+"#SpaceCenter.Vessel.flight", flight.URL)
	assert.Equal(t, "flight ( reference_frame )", flight.Signature)
	assert.Equal(t, "Returns a flight object that can be used to get flight telemetry for the vessel.", flight.Description)

	name := content.Members[1]
	assert.Equal(t, "SpaceCenter.Vessel.name", name.ID)
	assert.Equal(t, "The name of the vessel.", name.Description)

	// dt with no following dd has an empty description.
	active := content.Members[2]
	assert.Equal(t, "SpaceCenter.active_vessel", active.ID)
	assert.Empty(t, active.Description)
}

func TestExtractor_Extract_truncates_long_descriptions(t *testing.T) {
	t.Parallel()

	e := krpcgoquery.NewExtractor(krpcgoquery.WithMaxDescriptionLen(10))

	page := `<html><body><div class="document">
<dl><dt id="X.y"><code>y</code></dt><dd>this description is much longer than ten bytes</dd></dl>
</div></body></html>`

	content, err := e.Extract(page, "https://krpc.github.io/krpc/python/x.html")
	require.NoError(t, err)
	require.Len(t, content.Members, 1)
	assert.Len(t, content.Members[0].Description, 10)
}

func TestExtractor_Extract_truncates_long_text(t *testing.T) {
	t.Parallel()

	e := krpcgoquery.NewExtractor(krpcgoquery.WithMaxTextLen(16))

	page := `<html><body><div class="document"><p>` + strings.Repeat("word ", 100) + `</p></div></body></html>`

	content, err := e.Extract(page, "https://krpc.github.io/krpc/python/x.html")
	require.NoError(t, err)
	assert.Len(t, content.Text, 16)
}

func TestExtractor_ExtractLinks_resolves_and_dedupes(t *testing.T) {
	t.Parallel()

	e := krpcgoquery.NewExtractor()

	base := "https://krpc.github.io/krpc/python/api/space-center.html"
	links, err := e.ExtractLinks(sphinxPage, base)
	require.NoError(t, err)

	assert.Contains(t, links, "https://krpc.github.io/krpc/python.html")
	assert.Contains(t, links, "https://krpc.github.io/krpc/python/api/space-center/vessel.html")
	assert.Contains(t, links, "https://krpc.github.io/krpc/python/tutorials.html")
	assert.Contains(t, links, "https://example.com/external.html")

	for _, link := range links {
		assert.NotContains(t, link, "#", "fragments should be stripped")
		assert.NotContains(t, link, "mailto:")
		assert.NotContains(t, link, "javascript:")
	}

	seen := make(map[string]int)
	for _, link := range links {
		seen[link]++
	}
	for link, n := range seen {
		assert.Equal(t, 1, n, "link %s should appear once", link)
	}
}

func TestExtractor_ExtractLinks_empty_document(t *testing.T) {
	t.Parallel()

	e := krpcgoquery.NewExtractor()

	links, err := e.ExtractLinks("<html><body></body></html>", "https://krpc.github.io/krpc/python.html")
	require.NoError(t, err)
	assert.Empty(t, links)
}
