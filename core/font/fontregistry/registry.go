package fontregistry

import (
	"fmt"
	"strings"
	"sync"

	"github.com/flopp/go-findfont"
	"github.com/npillmayer/mdlines/core"
	"github.com/npillmayer/mdlines/core/dimen"
	"github.com/npillmayer/mdlines/core/font"
	xfont "golang.org/x/image/font"
)

// Registry is a type for holding information about loaded fonts and
// typecases.
type Registry struct {
	sync.Mutex
	fonts     map[string]*font.ScalableFont
	typecases map[string]*font.TypeCase
	locate    func(string) (string, error)
}

var globalFontRegistry *Registry

var globalRegistryCreation sync.Once

// GlobalRegistry is an application-wide singleton to hold information about
// loaded fonts and typecases.
func GlobalRegistry() *Registry {
	globalRegistryCreation.Do(func() {
		globalFontRegistry = NewRegistry()
	})
	return globalFontRegistry
}

// NewRegistry creates an empty registry which locates system fonts with
// go-findfont.
func NewRegistry() *Registry {
	return &Registry{
		fonts:     make(map[string]*font.ScalableFont),
		typecases: make(map[string]*font.TypeCase),
		locate:    findfont.Find,
	}
}

// TypeCase returns a typecase for a CSS font-family list, a numeric CSS
// font-weight and a size. Families are tried in order.
//
// If no family can be resolved, TypeCase derives a typecase from a Go
// fallback font and returns it together with an EMISSING error. Clients
// may use the typecase in any case.
//
func (fr *Registry) TypeCase(family string, weight int, size dimen.Dimen) (*font.TypeCase, error) {
	w := font.WeightFromCSS(weight)
	families := splitFamilies(family)
	fr.Lock()
	defer fr.Unlock()
	for _, fam := range families {
		if generic, mono := isGeneric(fam); generic {
			return fr.typecase(fallbackKey(w, mono), size, font.FallbackFont(w, mono))
		}
		name := NormalizeFontname(fam, w)
		if f, ok := fr.fonts[name]; ok {
			return fr.typecase(name, size, f)
		}
		if f := fr.findSystemFont(fam, w); f != nil {
			fr.fonts[name] = f
			return fr.typecase(name, size, f)
		}
	}
	tracer().Infof("registry cannot resolve font family %q, using fallback", family)
	t, err := fr.typecase(fallbackKey(w, false), size, font.FallbackFont(w, false))
	if err != nil {
		return nil, err
	}
	return t, core.Error(core.EMISSING, "font family %q not found", family)
}

func (fr *Registry) typecase(name string, size dimen.Dimen, f *font.ScalableFont) (*font.TypeCase, error) {
	tname := appendSize(name, size)
	if t, ok := fr.typecases[tname]; ok {
		return t, nil
	}
	t, err := f.PrepareCase(size)
	if err != nil {
		return nil, err
	}
	tracer().Debugf("font registry caches %s", tname)
	fr.typecases[tname] = t
	return t, nil
}

func (fr *Registry) findSystemFont(family string, weight xfont.Weight) *font.ScalableFont {
	if fr.locate == nil {
		return nil
	}
	base := strings.ReplaceAll(family, " ", "")
	candidates := []string{family + ".ttf", base + ".ttf"}
	if weight >= xfont.WeightSemiBold {
		candidates = append([]string{base + "-Bold.ttf", family + " Bold.ttf"}, candidates...)
	}
	for _, c := range candidates {
		fpath, err := fr.locate(c)
		if err != nil {
			continue
		}
		if !font.FileMatches(fpath, family, weight) {
			tracer().Debugf("system font %s does not match %s/%d", fpath, family, weight)
			continue
		}
		f, err := font.LoadOpenTypeFont(fpath)
		if err != nil {
			tracer().Errorf("cannot load system font %s: %v", fpath, err)
			continue
		}
		tracer().Infof("located system font %s at %s", family, fpath)
		return f
	}
	return nil
}

// LogFontList dumps the list of known fonts and typecases to the trace.
func (fr *Registry) LogFontList() {
	fr.Lock()
	defer fr.Unlock()
	tracer().Infof("--- registered fonts ---")
	for k, v := range fr.fonts {
		tracer().Infof("font [%s] = %v", k, v.Fontname)
	}
	for k, v := range fr.typecases {
		tracer().Infof("typecase [%s] = %v", k, v.ScalableFontParent().Fontname)
	}
	tracer().Infof("------------------------")
}

// NormalizeFontname creates a registry key from a family name and a weight.
func NormalizeFontname(fname string, weight xfont.Weight) string {
	fname = strings.TrimSpace(fname)
	fname = strings.ReplaceAll(fname, " ", "_")
	if dot := strings.LastIndex(fname, "."); dot > 0 {
		fname = fname[:dot]
	}
	fname = strings.ToLower(fname)
	switch weight {
	case xfont.WeightLight, xfont.WeightExtraLight, xfont.WeightThin:
		fname += "-light"
	case xfont.WeightBold, xfont.WeightExtraBold, xfont.WeightSemiBold, xfont.WeightBlack:
		fname += "-bold"
	}
	return fname
}

func appendSize(fname string, size dimen.Dimen) string {
	return fmt.Sprintf("%s-%.2f", fname, size.Pixels())
}

func fallbackKey(w xfont.Weight, mono bool) string {
	if mono {
		return "fallback-mono"
	}
	return NormalizeFontname("fallback", w)
}

// splitFamilies splits a CSS font-family list and strips quotes.
func splitFamilies(family string) []string {
	var fams []string
	for _, f := range strings.Split(family, ",") {
		f = strings.Trim(strings.TrimSpace(f), `"'`)
		if f != "" {
			fams = append(fams, f)
		}
	}
	return fams
}

func isGeneric(family string) (generic bool, mono bool) {
	switch strings.ToLower(family) {
	case "monospace", "ui-monospace":
		return true, true
	case "serif", "sans-serif", "system-ui", "ui-sans-serif", "ui-serif", "cursive", "fantasy":
		return true, false
	}
	return false, false
}
