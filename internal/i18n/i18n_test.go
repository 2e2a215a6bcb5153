package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aseid1997/rejeb-arabian-mejlis/internal/domain"
)

func TestNegotiate(t *testing.T) {
	tests := []struct {
		name       string
		candidates []string
		want       domain.Language
	}{
		{"no candidates", nil, domain.LanguageEnglish},
		{"bare code", []string{"am"}, domain.LanguageAmharic},
		{"first non-empty wins", []string{"", "am", "en"}, domain.LanguageAmharic},
		{"accept-language amharic", []string{"am-ET,am;q=0.9,en;q=0.8"}, domain.LanguageAmharic},
		{"accept-language english", []string{"en-US,en;q=0.9"}, domain.LanguageEnglish},
		{"unsupported falls through", []string{"xx-invalid-!!", "am"}, domain.LanguageAmharic},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Negotiate(tt.candidates...))
		})
	}
}

func TestFormatPrice(t *testing.T) {
	assert.Equal(t, "ETB 125,000", FormatPrice(125000))
	assert.Equal(t, "ETB 0", FormatPrice(0))
	assert.Equal(t, "ETB 1,234.50", FormatPrice(1234.5))
}
