package facturx_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/taller-facturx/internal/domain/facturx"
)

func TestFormatAmount(t *testing.T) {
	cases := map[string]string{
		"0":          "0.00",
		"100":        "100.00",
		"20.5":       "20.50",
		"1234567.8":  "1234567.80",
		"1.005":      "1.01",
		"-1.005":     "-1.01",
		"-250":       "-250.00",
		"0.004":      "0.00",
		"99.999":     "100.00",
		"12.344999":  "12.34",
	}
	for in, want := range cases {
		assert.Equal(t, want, facturx.FormatAmount(decimal.RequireFromString(in)), "FormatAmount(%s)", in)
	}
}

func TestFormatPercentQuantityLineID(t *testing.T) {
	assert.Equal(t, "20.00", facturx.FormatPercent(decimal.NewFromInt(20)))
	assert.Equal(t, "5.50", facturx.FormatPercent(decimal.RequireFromString("5.5")))
	assert.Equal(t, "0.00", facturx.FormatPercent(decimal.Zero))

	assert.Equal(t, "1", facturx.FormatQuantity(decimal.NewFromInt(1)))
	assert.Equal(t, "2.5", facturx.FormatQuantity(decimal.RequireFromString("2.50")))
	assert.Equal(t, "0.3333", facturx.FormatQuantity(decimal.RequireFromString("0.33333")))

	assert.Equal(t, "1", facturx.FormatLineID(1))
	assert.Equal(t, "12", facturx.FormatLineID(12))
}

// TestFormatAmount_TotalInvariante el bruto formateado coincide con neto + IVA formateados,
// también en notas de crédito.
func TestFormatAmount_TotalInvariante(t *testing.T) {
	pairs := [][2]string{
		{"100.00", "20.00"},
		{"-100.00", "-20.00"},
		{"33.335", "6.667"},
		{"-33.335", "-6.667"},
		{"0", "0"},
	}
	for _, p := range pairs {
		totals := facturx.Totals{Net: decimal.RequireFromString(p[0]), VAT: decimal.RequireFromString(p[1])}
		net := decimal.RequireFromString(facturx.FormatAmount(totals.Net))
		vat := decimal.RequireFromString(facturx.FormatAmount(totals.VAT))
		assert.Equal(t, net.Add(vat).StringFixed(2), facturx.FormatAmount(totals.Gross()), "net=%s vat=%s", p[0], p[1])
	}
}

func TestFormatDate(t *testing.T) {
	got, err := facturx.FormatDate(time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, "20240315", got)

	// 23:30 UTC ya es el día siguiente en París.
	got, err = facturx.FormatDate(time.Date(2024, 3, 14, 23, 30, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, "20240315", got)
	assert.Len(t, got, 8)
}

func TestFormatDate_Invalida(t *testing.T) {
	_, err := facturx.FormatDate(time.Time{})
	require.Error(t, err)
	assert.ErrorIs(t, err, facturx.ErrInvalidDate)

	_, err = facturx.FormatDate(time.Date(12000, 1, 1, 0, 0, 0, 0, time.UTC))
	assert.ErrorIs(t, err, facturx.ErrInvalidDate)
}

func TestParseDate(t *testing.T) {
	for _, raw := range []string{"2024-03-15", "20240315", "15/03/2024", "2024-03-15T10:00:00", "2024-03-15T10:00:00+01:00"} {
		d, err := facturx.ParseDate(raw)
		require.NoError(t, err, raw)
		got, err := facturx.FormatDate(d)
		require.NoError(t, err)
		assert.Equal(t, "20240315", got, raw)
	}
}

func TestParseDate_Invalida(t *testing.T) {
	for _, raw := range []string{"", "   ", "2024-02-30", "mañana", "15.03.2024"} {
		_, err := facturx.ParseDate(raw)
		var dateErr *facturx.InvalidDateError
		require.ErrorAs(t, err, &dateErr, raw)
		assert.Equal(t, raw, dateErr.Raw)
	}
}

func TestCivilDate_CalendarioEmisor(t *testing.T) {
	instant := time.Date(2024, 3, 14, 23, 30, 0, 0, time.UTC)
	assert.Equal(t, "2024-03-15", facturx.CivilDate(instant))
}
