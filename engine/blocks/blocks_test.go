package blocks

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/npillmayer/mdlines/core"
	"github.com/npillmayer/mdlines/core/option"
	"github.com/npillmayer/mdlines/engine/probe"
	"github.com/npillmayer/mdlines/input/markdown"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

// compare optional strings by what they print
var optionCmp = cmp.Comparer(func(a, b option.StringT) bool {
	return a.Equals(b)
})

func TestSplitBlocks(t *testing.T) {
	text := "# Title\n\n```go\nfunc f() {}\n\n```\n- item\n```js```\n```\nunclosed\nrest"
	want := []string{
		"# Title",
		"",
		"```go\nfunc f() {}\n\n```",
		"- item",
		"```js```",
		"```\nunclosed\nrest",
	}
	if diff := cmp.Diff(want, SplitBlocks(text)); diff != "" {
		t.Errorf("SplitBlocks mismatch (-want +got):\n%s", diff)
	}
	assert.Empty(t, SplitBlocks(""))
}

func TestDocumentEditing(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mdlines.blocks")
	defer teardown()
	//
	doc := FromText("# A\nb", nil, nil)
	require.Equal(t, 2, doc.Len())
	l, err := doc.Insert(1, "**c**")
	require.NoError(t, err)
	assert.Equal(t, 3, l.ID)
	assert.Equal(t, "<strong>c</strong>", l.RenderedHTML)
	assert.Nil(t, l.ComputedStyles)
	//
	l, err = doc.SetText(0, "## A")
	require.NoError(t, err)
	assert.Equal(t, "<h2>A</h2>", l.RenderedHTML)
	assert.Equal(t, 1, l.ID, "ids are stable across edits")
	//
	require.NoError(t, doc.Remove(2))
	assert.Equal(t, "## A\n**c**", doc.Text())
	l = doc.Append("")
	assert.Equal(t, 4, l.ID, "ids are never reused")
	assert.Equal(t, markdown.NBSP, l.RenderedHTML)
	//
	at, found, ok := doc.Find(3)
	assert.True(t, ok)
	assert.Equal(t, 1, at)
	assert.Equal(t, "**c**", found.Text)
	_, _, ok = doc.Find(2)
	assert.False(t, ok)
}

func TestDocumentIndexErrors(t *testing.T) {
	doc := NewDocument(nil, nil)
	_, err := doc.Line(0)
	assert.Equal(t, core.EINVALID, core.Code(err))
	_, err = doc.Insert(1, "x")
	assert.Equal(t, core.EINVALID, core.Code(err))
	assert.Equal(t, core.EINVALID, core.Code(doc.Remove(-1)))
	_, err = doc.SetText(5, "x")
	assert.Equal(t, core.EINVALID, core.Code(err))
	_, err = doc.Insert(0, "x")
	assert.NoError(t, err)
}

func TestRenderInvariant(t *testing.T) {
	doc := FromText("# H\n- li\n*e*\n```mermaid\ngraph\n```", nil, nil)
	for _, l := range doc.Lines() {
		assert.Equal(t, markdown.Render(l.Text), l.RenderedHTML)
	}
}

func TestProbedLines(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mdlines.blocks")
	defer teardown()
	//
	p, err := probe.NewProber()
	require.NoError(t, err)
	doc := FromText("# Big\nsmall", nil, p)
	want := []*Line{
		{ID: 1, Text: "# Big", RenderedHTML: "<h1>Big</h1>", ComputedStyles: &FontMetrics{
			FontSize: option.SomeString("32px"), FontWeight: option.SomeString("700"),
		}},
		{ID: 2, Text: "small", RenderedHTML: "<p>small</p>", ComputedStyles: &FontMetrics{
			FontSize: option.SomeString("16px"), FontWeight: option.SomeString("400"),
		}},
	}
	if diff := cmp.Diff(want, doc.Lines(), optionCmp); diff != "" {
		t.Errorf("probed lines mismatch (-want +got):\n%s", diff)
	}
	//
	var nilProber *probe.Prober
	doc = FromText("x", nil, nilProber)
	l, _ := doc.Line(0)
	require.NotNil(t, l.ComputedStyles)
	assert.False(t, l.ComputedStyles.IsSet(), "no rendering environment, no metrics")
}

func TestJSONRoundTrip(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mdlines.blocks")
	defer teardown()
	//
	p, err := probe.NewProber()
	require.NoError(t, err)
	doc := FromText("# T\n```go\nx := 1\n```\nplain", nil, p)
	require.NoError(t, doc.Remove(0))
	js, err := ExportJSON(doc)
	require.NoError(t, err)
	assert.Equal(t, int64(2), gjson.Get(js, "lines.0.id").Int())
	assert.Equal(t, "16px", gjson.Get(js, "lines.1.computedStyles.fontSize").String())
	//
	back, err := ImportJSON(js, nil, p)
	require.NoError(t, err)
	if diff := cmp.Diff(doc.Lines(), back.Lines(), optionCmp); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
	l := back.Append("new")
	assert.Equal(t, 4, l.ID)
}

func TestImportDiscardsStoredHTML(t *testing.T) {
	js := `{"lines":[{"id":7,"text":"**b**","renderedHtml":"<script>x</script>",
		"computedStyles":{"fontSize":"20px","fontWeight":null}}]}`
	doc, err := ImportJSON(js, nil, nil)
	require.NoError(t, err)
	l, err := doc.Line(0)
	require.NoError(t, err)
	assert.Equal(t, "<strong>b</strong>", l.RenderedHTML)
	require.NotNil(t, l.ComputedStyles)
	assert.Equal(t, "20px", l.ComputedStyles.FontSize.Unwrap())
	assert.True(t, l.ComputedStyles.FontWeight.IsNone())
	//
	js, err = ExportJSON(doc)
	require.NoError(t, err)
	assert.Equal(t, gjson.Null, gjson.Get(js, "lines.0.computedStyles.fontWeight").Type)
}

func TestImportKeepsMetricsWithoutRenderingEnvironment(t *testing.T) {
	js := `{"lines":[{"id":1,"text":"# H","computedStyles":{"fontSize":"32px","fontWeight":"700"}}]}`
	var nilProber *probe.Prober
	doc, err := ImportJSON(js, nil, nilProber)
	require.NoError(t, err)
	l, err := doc.Line(0)
	require.NoError(t, err)
	require.NotNil(t, l.ComputedStyles)
	assert.Equal(t, "32px", l.ComputedStyles.FontSize.Unwrap())
	assert.Equal(t, "700", l.ComputedStyles.FontWeight.Unwrap())
}

func TestImportErrors(t *testing.T) {
	for _, js := range []string{
		`{"lines":[`,
		`{"nolines":true}`,
		`{"lines":[{"text":"x"}]}`,
		`{"lines":[{"id":1,"text":"x"},{"id":1,"text":"y"}]}`,
	} {
		_, err := ImportJSON(js, nil, nil)
		assert.Equal(t, core.EINVALID, core.Code(err), "snapshot %s", js)
	}
}
