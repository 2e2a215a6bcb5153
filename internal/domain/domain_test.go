package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidEmail(t *testing.T) {
	valid := []string{"sarah@example.com", "a.b+c@sub.example.et", "x@localhost"}
	invalid := []string{"", "plain", "@example.com", "a@", "a b@example.com", "a@-bad.com"}

	for _, e := range valid {
		assert.True(t, ValidEmail(e), e)
	}
	for _, e := range invalid {
		assert.False(t, ValidEmail(e), e)
	}
}

func TestCategory_IsValid(t *testing.T) {
	for _, c := range Categories() {
		assert.True(t, c.IsValid())
	}
	assert.False(t, Category("tables").IsValid())
	assert.False(t, Category("").IsValid())
}

func TestOrderStatus(t *testing.T) {
	assert.True(t, OrderStatusShipped.IsValid())
	assert.False(t, OrderStatus("PENDING").IsValid())
	assert.True(t, OrderStatusCancelled.IsTerminal())
	assert.False(t, OrderStatusPending.IsTerminal())
}

func TestProduct_Localized(t *testing.T) {
	p := Product{Name: "Royal Majlis Set", NameAm: "ንጉሣዊ መጅሊስ ስብስብ", Description: "desc"}

	assert.Equal(t, "ንጉሣዊ መጅሊስ ስብስብ", p.LocalizedName(LanguageAmharic))
	assert.Equal(t, "Royal Majlis Set", p.LocalizedName(LanguageEnglish))
	assert.Equal(t, "desc", p.LocalizedDescription(LanguageAmharic), "missing translation falls back to English")
}

func TestLanguage_OrDefault(t *testing.T) {
	assert.Equal(t, LanguageAmharic, Language("am").OrDefault())
	assert.Equal(t, LanguageEnglish, Language("fr").OrDefault())
}
