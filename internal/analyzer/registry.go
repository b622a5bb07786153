package analyzer

import (
	"strings"

	"github.com/rs/zerolog/log"
)

// Registry routes a language tag to its bound adapter.
type Registry struct {
	adapters map[Language]Analyzer
}

// NewRegistry creates a registry with every supported language registered.
func NewRegistry() *Registry {
	r := &Registry{adapters: make(map[Language]Analyzer)}
	r.Register(LanguagePython, NewPythonAnalyzer())
	r.Register(LanguageJavaScript, NewJavaScriptAnalyzer())
	return r
}

// Register binds an adapter to a language tag.
func (r *Registry) Register(lang Language, a Analyzer) {
	r.adapters[lang] = a
}

// Get returns the adapter bound to a language tag.
func (r *Registry) Get(lang Language) (Analyzer, bool) {
	a, ok := r.adapters[lang]
	return a, ok
}

// Languages returns the registered tags in stable order.
func (r *Registry) Languages() []Language {
	langs := make([]Language, 0, len(r.adapters))
	for _, lang := range []Language{LanguagePython, LanguageJavaScript} {
		if _, ok := r.adapters[lang]; ok {
			langs = append(langs, lang)
		}
	}
	return langs
}

// Dispatch case-normalizes the tag and routes the source to the bound
// adapter. An unrecognized tag yields an empty Result and no error, so the
// surface stays tolerant of callers probing unknown file types. Adapter
// failures propagate unchanged.
func (r *Registry) Dispatch(tag, source string) (*Result, error) {
	lang := Language(strings.ToLower(strings.TrimSpace(tag)))

	adapter, ok := r.adapters[lang]
	if !ok {
		log.Debug().Str("language", tag).Msg("no adapter for language tag")
		return NewResult(), nil
	}

	return adapter.Analyze(source)
}
