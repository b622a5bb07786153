package source

import (
	"path/filepath"
	"strings"

	"github.com/JuanJml01/Lector/internal/analyzer"
)

var extensionMap = map[string]analyzer.Language{
	".py":  analyzer.LanguagePython,
	".js":  analyzer.LanguageJavaScript,
	".mjs": analyzer.LanguageJavaScript,
	".cjs": analyzer.LanguageJavaScript,
	".jsx": analyzer.LanguageJavaScript,
}

// DetectLanguage maps a file path to its language tag by extension,
// case-insensitively. Unsupported extensions yield LanguageUnknown.
func DetectLanguage(path string) analyzer.Language {
	ext := strings.ToLower(filepath.Ext(path))
	if lang, ok := extensionMap[ext]; ok {
		return lang
	}
	return analyzer.LanguageUnknown
}
