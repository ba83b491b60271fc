package pricing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront-api/internal/model"
)

func TestParseDiscountType(t *testing.T) {
	tests := []struct {
		raw  string
		want DiscountType
		ok   bool
	}{
		{"fixed", DiscountFixed, true},
		{"percent", DiscountPercent, true},
		{"percentage", DiscountPercent, true},
		{"PERCENT", DiscountPercent, true},
		{" fixed ", DiscountFixed, true},
		{"amount", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		got, ok := ParseDiscountType(tt.raw)
		assert.Equal(t, tt.ok, ok, "raw=%q", tt.raw)
		assert.Equal(t, tt.want, got, "raw=%q", tt.raw)
	}
}

func TestParseDateLayouts(t *testing.T) {
	for _, raw := range []string{
		"2026-06-15T12:00:00Z",
		"2026-06-15T12:00:00+07:00",
		"2026-06-15T12:00:00",
		"2026-06-15 12:00:00",
		"2026-06-15",
	} {
		got, ok := parseDate(raw)
		require.True(t, ok, "raw=%q", raw)
		require.NotNil(t, got, "raw=%q", raw)
	}

	got, ok := parseDate("")
	assert.True(t, ok)
	assert.Nil(t, got)

	_, ok = parseDate("15/06/2026")
	assert.False(t, ok)
	_, ok = parseDate("soon")
	assert.False(t, ok)
}

func TestCandidateWindow(t *testing.T) {
	start := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 6, 30, 0, 0, 0, 0, time.UTC)
	c := &Candidate{Amount: 10, Type: DiscountFixed, StartDate: &start, EndDate: &end}

	assert.True(t, c.ActiveAt(time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC)))
	assert.True(t, c.ActiveAt(start))
	assert.True(t, c.ActiveAt(end))
	assert.False(t, c.ActiveAt(start.Add(-time.Second)))
	assert.False(t, c.ActiveAt(end.Add(time.Second)))

	open := &Candidate{Amount: 10, Type: DiscountFixed}
	assert.True(t, open.ActiveAt(time.Now()))
	assert.True(t, open.ActiveAt(time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC)))
}

func TestNewCandidateFailClosed(t *testing.T) {
	// Malformed window date invalidates the whole candidate.
	c := newCandidate(model.NumberFrom(10), "fixed", "soon", "", nil, SourceProduct)
	assert.Nil(t, c)

	c = newCandidate(model.NumberFrom(10), "fixed", "", "garbage", nil, SourceProduct)
	assert.Nil(t, c)

	// Absent amount or unknown type likewise.
	c = newCandidate(model.Number{}, "fixed", "", "", nil, SourceProduct)
	assert.Nil(t, c)
	c = newCandidate(model.NumberFrom(10), "buy-one-get-one", "", "", nil, SourceProduct)
	assert.Nil(t, c)
}

func TestFlashSaleExplicitInactive(t *testing.T) {
	p := &model.Product{Price: model.NumberFrom(100)}

	p.FlashSale = &model.FlashSale{SalePrice: model.NumberFrom(50), IsActive: model.BoolFrom(false)}
	assert.Nil(t, flashSaleCandidate(p, 100))

	p.FlashSale = &model.FlashSale{SalePrice: model.NumberFrom(50), Active: model.BoolFrom(false)}
	assert.Nil(t, flashSaleCandidate(p, 100))

	p.FlashSale = &model.FlashSale{SalePrice: model.NumberFrom(50), Status: "INACTIVE"}
	assert.Nil(t, flashSaleCandidate(p, 100))

	// Any other status does not disable the sale.
	p.FlashSale = &model.FlashSale{SalePrice: model.NumberFrom(50), Status: "scheduled"}
	assert.NotNil(t, flashSaleCandidate(p, 100))
}

func TestFlashSaleSalePriceSynthesizesFixedDiscount(t *testing.T) {
	p := &model.Product{
		Price:     model.NumberFrom(100),
		FlashSale: &model.FlashSale{SalePrice: model.NumberFrom(79.5)},
	}

	c := flashSaleCandidate(p, 100)
	require.NotNil(t, c)
	assert.Equal(t, DiscountFixed, c.Type)
	assert.InDelta(t, 20.5, c.Amount, 1e-9)
	assert.Equal(t, SourceFlashSale, c.Source)
}

func TestFlashSaleSalePriceAboveBaseIgnored(t *testing.T) {
	p := &model.Product{
		Price:     model.NumberFrom(100),
		FlashSale: &model.FlashSale{SalePrice: model.NumberFrom(120)},
	}

	assert.Nil(t, flashSaleCandidate(p, 100))
}

func TestFlashSaleNestedDiscountFields(t *testing.T) {
	p := &model.Product{
		Price: model.NumberFrom(100),
		FlashSale: &model.FlashSale{
			DiscountAmount: model.NumberFrom(15),
			DiscountType:   "percent",
			StartDate:      "2026-06-01",
			EndDate:        "2026-06-30",
		},
	}

	c := flashSaleCandidate(p, 100)
	require.NotNil(t, c)
	assert.Equal(t, DiscountPercent, c.Type)
	assert.Equal(t, 15.0, c.Amount)
	require.NotNil(t, c.StartDate)
	require.NotNil(t, c.EndDate)
}

func TestFlashSaleFlattenedFields(t *testing.T) {
	p := &model.Product{
		Price:              model.NumberFrom(100),
		FlashSalePrice:     model.NumberFrom(60),
		FlashSaleStartDate: "2026-06-01",
		FlashSaleEndDate:   "2026-06-30",
	}

	c := flashSaleCandidate(p, 100)
	require.NotNil(t, c)
	assert.Equal(t, DiscountFixed, c.Type)
	assert.Equal(t, 40.0, c.Amount)

	p = &model.Product{
		Price:                   model.NumberFrom(100),
		FlashSaleDiscountAmount: model.NumberFrom(25),
		FlashSaleDiscountType:   "fixed",
	}

	c = flashSaleCandidate(p, 100)
	require.NotNil(t, c)
	assert.Equal(t, 25.0, c.Amount)
}

func TestFlashSaleNoDataNoCandidate(t *testing.T) {
	p := &model.Product{Price: model.NumberFrom(100)}
	assert.Nil(t, flashSaleCandidate(p, 100))
}
