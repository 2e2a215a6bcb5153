// Package i18n picks the storefront language and formats prices.
package i18n

import (
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/aseid1997/rejeb-arabian-mejlis/internal/domain"
)

// Currency is the shop's single pricing currency.
var Currency = currency.MustParseISO("ETB")

var matcher = language.NewMatcher([]language.Tag{
	language.English,
	language.Amharic,
})

// Negotiate resolves the first usable language from the given candidates,
// which may be bare codes ("am") or Accept-Language header values. Empty
// candidates are skipped; English is the fallback.
func Negotiate(candidates ...string) domain.Language {
	for _, c := range candidates {
		if c == "" {
			continue
		}
		if l := domain.Language(c); l.IsValid() {
			return l
		}
		tags, _, err := language.ParseAcceptLanguage(c)
		if err != nil || len(tags) == 0 {
			continue
		}
		_, idx, conf := matcher.Match(tags...)
		if conf == language.No {
			continue
		}
		if idx == 1 {
			return domain.LanguageAmharic
		}
		return domain.LanguageEnglish
	}
	return domain.LanguageEnglish
}

var printer = message.NewPrinter(language.English)

// FormatPrice renders an amount the way the storefront shows it,
// e.g. "ETB 125,000".
func FormatPrice(amount float64) string {
	if amount == float64(int64(amount)) {
		return printer.Sprintf("%s %d", Currency, int64(amount))
	}
	return printer.Sprintf("%s %.2f", Currency, amount)
}
