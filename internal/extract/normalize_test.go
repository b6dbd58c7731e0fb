package extract_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"billscan/internal/extract"
)

func TestNormalize_DropsShortLines(t *testing.T) {
	lines := extract.Normalize("ab\nabcdef")
	assert.Equal(t, []string{"abcdef"}, lines)
}

func TestNormalize_StripsDisallowedCharacters(t *testing.T) {
	lines := extract.Normalize("Total: ₹1,200/-!!")
	// Commas are on the allow-list; only symbols like "!" are stripped.
	// Comma handling happens later, inside numeric parsing.
	assert.Equal(t, []string{"Total: ₹1,200/-"}, lines)
}

func TestNormalize_KeepsCurrencySymbols(t *testing.T) {
	lines := extract.Normalize("Paid €20 & $5 @ ₹100")
	assert.Equal(t, []string{"Paid €20  $5  ₹100"}, lines)
}

func TestNormalize_KeepsAccentedLetters(t *testing.T) {
	lines := extract.Normalize("Café Müller & Söhne!!")
	assert.Equal(t, []string{"Café Müller  Söhne"}, lines)
}

func TestNormalize_PreservesOrder(t *testing.T) {
	lines := extract.Normalize("first line\nx\nsecond line\nthird line")
	assert.Equal(t, []string{"first line", "second line", "third line"}, lines)
}

func TestNormalize_TrimsBeforeLengthCheck(t *testing.T) {
	// "  ab  " trims to 2 chars and is dropped even though the raw line is longer.
	lines := extract.Normalize("  ab  \n  abc  ")
	assert.Equal(t, []string{"abc"}, lines)
}

func TestNormalize_EmptyInput(t *testing.T) {
	assert.Empty(t, extract.Normalize(""))
	assert.Empty(t, extract.Normalize("  \n\n \t \n"))
}

func TestNormalize_Idempotent(t *testing.T) {
	raw := "ABC Store!!\nTotal: ₹1,200/-\nPh# 9876543210"
	once := extract.Normalize(raw)
	twice := extract.Normalize(strings.Join(once, "\n"))
	assert.Equal(t, once, twice)
}
