package extract_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"billscan/internal/extract"
)

func extractItems(lines ...string) []extract.LineItem {
	return extract.ExtractItems(lines, extract.DocTypeReceipt, extract.Options{})
}

func TestExtractItems_Basic(t *testing.T) {
	items := extractItems("Coffee 50 2 100", "Sandwich 80 1 80")
	require.Len(t, items, 2)
	assert.Equal(t, extract.LineItem{Name: "Coffee", UnitPrice: 50, Quantity: 2, Total: 100}, items[0])
	assert.Equal(t, extract.LineItem{Name: "Sandwich", UnitPrice: 80, Quantity: 1, Total: 80}, items[1])
}

func TestExtractItems_ArithmeticTolerance(t *testing.T) {
	t.Run("accepts_diff_of_one", func(t *testing.T) {
		items := extractItems("Coffee 50 2 101")
		require.Len(t, items, 1)
		assert.Equal(t, float64(101), items[0].Total)
	})

	t.Run("rejects_larger_diff", func(t *testing.T) {
		assert.Empty(t, extractItems("Coffee 50 2 200"))
	})

	t.Run("custom_tolerance", func(t *testing.T) {
		opts := extract.Options{MathTolerance: 150}
		items := extract.ExtractItems([]string{"Coffee 50 2 200"}, extract.DocTypeReceipt, opts)
		assert.Len(t, items, 1)
	})
}

func TestExtractItems_StopKeywords(t *testing.T) {
	// Arithmetic holds (3*1=3) but structural keywords always exclude the line.
	assert.Empty(t, extractItems("Subtotal 3 1 3"))
	assert.Empty(t, extractItems("Cash paid 50 2 100"))
	assert.Empty(t, extractItems("Table 50 2 100"))
}

func TestExtractItems_RequiresThreeNumbers(t *testing.T) {
	assert.Empty(t, extractItems("Coffee 100"))
	assert.Empty(t, extractItems("Coffee 2 100"))
}

func TestExtractItems_LastThreeNumbersWin(t *testing.T) {
	// Leading numbers (serial no.) are ignored; the last three are read as
	// price, quantity, total.
	items := extractItems("1 Coffee 50 2 100")
	require.Len(t, items, 1)
	assert.Equal(t, float64(50), items[0].UnitPrice)
	assert.Equal(t, float64(2), items[0].Quantity)
	assert.Equal(t, float64(100), items[0].Total)
}

func TestExtractItems_MultiplicationMarkerAndCommas(t *testing.T) {
	items := extractItems("Paneer Tikka ₹800 x2 1,600")
	require.Len(t, items, 1)
	assert.Equal(t, "Paneer Tikka", items[0].Name)
	assert.Equal(t, float64(800), items[0].UnitPrice)
	assert.Equal(t, float64(2), items[0].Quantity)
	assert.Equal(t, float64(1600), items[0].Total)
}

func TestExtractItems_RejectsGarbageNames(t *testing.T) {
	assert.Empty(t, extractItems("50 2 100"))
	assert.Empty(t, extractItems(".. 50 2 100"))
}

func TestExtractItems_EmptySliceNotNil(t *testing.T) {
	items := extractItems()
	assert.NotNil(t, items)
	assert.Empty(t, items)
}
