package domain

type Language string

const (
	LanguageEnglish Language = "en"
	LanguageAmharic Language = "am"
)

func (l Language) IsValid() bool {
	return l == LanguageEnglish || l == LanguageAmharic
}

// OrDefault returns l, or English when l is not a supported language.
func (l Language) OrDefault() Language {
	if l.IsValid() {
		return l
	}
	return LanguageEnglish
}
