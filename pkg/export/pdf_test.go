package export

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"travella-service/internal/domain/entity"
)

func TestRenderPDF(t *testing.T) {
	data := TripExport{
		Trips: []*entity.Trip{
			{Title: "Sydney getaway", Destination: "SYD", Status: entity.TripPlanned,
				StartDate: 1710460800000, EndDate: 1711065600000},
		},
		Expenses: []*entity.Expense{
			{Title: "Flight", Amount: 450, Currency: "AUD", AmountUSD: 292.5, Category: "TRANSPORT"},
			{Title: "Hotel", Amount: 800, Currency: "AUD", AmountUSD: 520, Category: "ACCOMMODATION"},
		},
		GeneratedAt: time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC),
	}

	out, err := RenderPDF(data)
	require.NoError(t, err)
	assert.NotEmpty(t, out)
	assert.Equal(t, "%PDF", string(out[:4]))
}

func TestRenderPDFEmpty(t *testing.T) {
	out, err := RenderPDF(TripExport{GeneratedAt: time.Now()})
	require.NoError(t, err)
	assert.NotEmpty(t, out)
}
