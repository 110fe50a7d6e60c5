package invoicing

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDraft(t *testing.T) *Invoice {
	t.Helper()
	inv, err := NewInvoice(uuid.New(), "INV-2026-000001", "SN003", "Buyer Traders", time.Now())
	require.NoError(t, err)
	return inv
}

func steelLine() LineInput {
	return LineInput{
		ItemID:        uuid.New(),
		ItemCode:      "STL-001",
		Description:   "Steel billets",
		HSCode:        "7207.1100",
		UnitOfMeasure: "MT",
		Quantity:      decimal.NewFromInt(10),
		UnitPrice:     decimal.NewFromFloat(250000),
		TaxRate:       decimal.NewFromInt(18),
	}
}

func TestNewInvoice(t *testing.T) {
	inv := newDraft(t)

	assert.Equal(t, InvoiceStatusDraft, inv.Status)
	assert.Equal(t, "SN003", inv.ScenarioCode)
	assert.True(t, inv.Total.IsZero())
	assert.Empty(t, inv.Lines)
}

func TestNewInvoice_Validation(t *testing.T) {
	tenantID := uuid.New()
	now := time.Now()

	_, err := NewInvoice(tenantID, "", "SN003", "Buyer", now)
	assert.Error(t, err)

	_, err = NewInvoice(tenantID, "INV-1", "BOGUS", "Buyer", now)
	assert.Error(t, err)

	_, err = NewInvoice(tenantID, "INV-1", "SN003", "", now)
	assert.Error(t, err)

	_, err = NewInvoice(tenantID, "INV-1", "SN003", "Buyer", time.Time{})
	assert.Error(t, err)
}

func TestInvoice_AddLine_ComputesAmounts(t *testing.T) {
	inv := newDraft(t)

	require.NoError(t, inv.AddLine(steelLine()))
	require.Len(t, inv.Lines, 1)

	line := inv.Lines[0]
	assert.Equal(t, 1, line.LineNumber)
	assert.True(t, line.LineSubtotal.Equal(decimal.NewFromInt(2500000)), "subtotal %s", line.LineSubtotal)
	assert.True(t, line.LineTax.Equal(decimal.NewFromInt(450000)), "tax %s", line.LineTax)
	assert.True(t, line.LineTotal.Equal(decimal.NewFromInt(2950000)))

	assert.True(t, inv.Subtotal.Equal(decimal.NewFromInt(2500000)))
	assert.True(t, inv.TaxAmount.Equal(decimal.NewFromInt(450000)))
	assert.True(t, inv.Total.Equal(decimal.NewFromInt(2950000)))
}

func TestInvoice_AddLine_RoundsToTwoPlaces(t *testing.T) {
	inv := newDraft(t)

	input := steelLine()
	input.Quantity = decimal.NewFromFloat(1.333)
	input.UnitPrice = decimal.NewFromFloat(99.99)
	input.TaxRate = decimal.NewFromInt(17)
	require.NoError(t, inv.AddLine(input))

	line := inv.Lines[0]
	// 1.333 * 99.99 = 133.28667 -> 133.29; 17% of that -> 22.6593 -> 22.66
	assert.True(t, line.LineSubtotal.Equal(decimal.NewFromFloat(133.29)), "subtotal %s", line.LineSubtotal)
	assert.True(t, line.LineTax.Equal(decimal.NewFromFloat(22.66)), "tax %s", line.LineTax)
}

func TestInvoice_AddLine_Validation(t *testing.T) {
	inv := newDraft(t)

	bad := steelLine()
	bad.Description = ""
	assert.Error(t, inv.AddLine(bad))

	bad = steelLine()
	bad.Quantity = decimal.Zero
	assert.Error(t, inv.AddLine(bad))

	bad = steelLine()
	bad.UnitPrice = decimal.NewFromInt(-1)
	assert.Error(t, inv.AddLine(bad))

	bad = steelLine()
	bad.TaxRate = decimal.NewFromInt(101)
	assert.Error(t, inv.AddLine(bad))
}

func TestInvoice_RemoveLine_Renumbers(t *testing.T) {
	inv := newDraft(t)
	require.NoError(t, inv.AddLine(steelLine()))

	second := steelLine()
	second.Description = "Steel coils"
	require.NoError(t, inv.AddLine(second))

	require.NoError(t, inv.RemoveLine(1))
	require.Len(t, inv.Lines, 1)
	assert.Equal(t, "Steel coils", inv.Lines[0].Description)
	assert.Equal(t, 1, inv.Lines[0].LineNumber)
	assert.True(t, inv.Subtotal.Equal(decimal.NewFromInt(2500000)))

	assert.Error(t, inv.RemoveLine(5))
}

func TestInvoice_Lifecycle(t *testing.T) {
	inv := newDraft(t)

	// Empty drafts cannot be issued.
	assert.Error(t, inv.Issue())

	require.NoError(t, inv.AddLine(steelLine()))
	require.NoError(t, inv.Issue())
	assert.Equal(t, InvoiceStatusIssued, inv.Status)
	assert.NotNil(t, inv.IssuedAt)

	// Issued invoices are frozen.
	assert.Error(t, inv.AddLine(steelLine()))
	assert.Error(t, inv.RemoveLine(1))
	assert.Error(t, inv.ChangeScenarioCode("SN004"))
	assert.Error(t, inv.Issue())

	assert.Error(t, inv.Void(""))
	require.NoError(t, inv.Void("duplicate entry"))
	assert.Equal(t, InvoiceStatusVoided, inv.Status)
	assert.NotNil(t, inv.VoidedAt)

	// Voided is terminal.
	assert.Error(t, inv.Void("again"))
}

func TestInvoice_VoidRequiresIssued(t *testing.T) {
	inv := newDraft(t)
	assert.Error(t, inv.Void("not yet issued"))
}

func TestInvoice_ChangeScenarioCode(t *testing.T) {
	inv := newDraft(t)

	require.NoError(t, inv.ChangeScenarioCode("SN004"))
	assert.Equal(t, "SN004", inv.ScenarioCode)

	assert.Error(t, inv.ChangeScenarioCode("sn004"))
	assert.Equal(t, "SN004", inv.ScenarioCode)
}
