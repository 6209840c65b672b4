package blocks

import (
	"github.com/npillmayer/mdlines/core"
	"github.com/npillmayer/mdlines/core/option"
	"github.com/npillmayer/mdlines/engine/probe"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// ExportJSON writes a snapshot of a document:
//
//     {"lines":[{"id":1,"text":"# Hi","renderedHtml":"<h1>Hi</h1>",
//                "computedStyles":{"fontSize":"32px","fontWeight":"700"}}]}
//
// computedStyles is omitted for lines which have not been probed; unset
// metrics are written as null.
func ExportJSON(doc *Document) (string, error) {
	js := `{"lines":[]}`
	for _, l := range doc.Lines() {
		obj, err := lineJSON(l)
		if err != nil {
			return "", core.WrapError(err, core.EINTERNAL, "cannot export line %d", l.ID)
		}
		if js, err = sjson.SetRaw(js, "lines.-1", obj); err != nil {
			return "", core.WrapError(err, core.EINTERNAL, "cannot export line %d", l.ID)
		}
	}
	return js, nil
}

func lineJSON(l *Line) (obj string, err error) {
	obj = `{}`
	if obj, err = sjson.Set(obj, "id", l.ID); err != nil {
		return
	}
	if obj, err = sjson.Set(obj, "text", l.Text); err != nil {
		return
	}
	if obj, err = sjson.Set(obj, "renderedHtml", l.RenderedHTML); err != nil {
		return
	}
	if l.ComputedStyles == nil {
		return
	}
	if obj, err = sjson.Set(obj, "computedStyles.fontSize", optionalValue(l.ComputedStyles.FontSize)); err != nil {
		return
	}
	obj, err = sjson.Set(obj, "computedStyles.fontWeight", optionalValue(l.ComputedStyles.FontWeight))
	return
}

func optionalValue(s option.StringT) interface{} {
	if s.IsNone() {
		return nil
	}
	return s.Unwrap()
}

// ImportJSON reads a document snapshot written by ExportJSON. Line ids are
// kept, new lines continue after the highest id. Stored HTML is discarded
// and rendered again. Stored metrics are kept only if prober is nil;
// otherwise lines are probed again.
func ImportJSON(js string, renderer Renderer, prober Prober) (*Document, error) {
	if !gjson.Valid(js) {
		return nil, core.Error(core.EINVALID, "document snapshot is not valid JSON")
	}
	lines := gjson.Get(js, "lines")
	if !lines.IsArray() {
		return nil, core.Error(core.EINVALID, "document snapshot has no lines array")
	}
	doc := NewDocument(renderer, prober)
	seen := make(map[int]bool)
	maxID := 0
	for i, entry := range lines.Array() {
		id := entry.Get("id")
		if id.Type != gjson.Number || id.Int() <= 0 {
			return nil, core.Error(core.EINVALID, "line #%d has no valid id", i)
		}
		line := &Line{ID: int(id.Int()), Text: entry.Get("text").String()}
		if seen[line.ID] {
			return nil, core.Error(core.EINVALID, "duplicate line id %d", line.ID)
		}
		seen[line.ID] = true
		if line.ID > maxID {
			maxID = line.ID
		}
		doc.render(line)
		if !canProbe(prober) {
			line.ComputedStyles = storedMetrics(entry.Get("computedStyles"))
		}
		doc.lines.Add(line)
	}
	doc.nextID = maxID + 1
	tracer().Debugf("imported document with %d lines, next id %d", doc.Len(), doc.nextID)
	return doc, nil
}

// canProbe is false for a nil prober and for a nil *probe.Prober,
// which stands for a missing rendering environment.
func canProbe(p Prober) bool {
	if p == nil {
		return false
	}
	pp, ok := p.(*probe.Prober)
	return !ok || pp != nil
}

func storedMetrics(cs gjson.Result) *FontMetrics {
	if !cs.IsObject() {
		return nil
	}
	fm := &FontMetrics{
		FontSize:   optionalString(cs.Get("fontSize")),
		FontWeight: optionalString(cs.Get("fontWeight")),
	}
	return fm
}

func optionalString(r gjson.Result) option.StringT {
	if r.Type != gjson.String {
		return option.String()
	}
	return option.SomeString(r.String())
}
