package exports

import (
	"bytes"
	"testing"
	"time"

	"github.com/agriquote/agriquote-backend/pkg/db/models"
	"github.com/agriquote/agriquote-backend/pkg/enums"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func sampleRequests() []models.QuotationRequest {
	at := time.Date(2026, 10, 15, 9, 0, 0, 0, time.UTC)
	return []models.QuotationRequest{
		{
			ID:              "req_2",
			CreatedAt:       at,
			CustomerName:    "Rajesh Patil",
			District:        "Satara",
			Status:          enums.RequestStatusOpen,
			TractorSnapshot: models.Tractor{Brand: "Mahindra", Model: "575 DI XP Plus", HP: 47},
			Quotes: []models.Quote{
				{ID: "q1", DealerName: "Amit Deshmukh", FinalPrice: decimal.NewFromInt(530000), SubmittedAt: at},
				{ID: "q2", DealerName: "Vikas", FinalPrice: decimal.NewFromInt(525500), SubmittedAt: at},
			},
		},
		{
			ID:              "req_1",
			CreatedAt:       at.Add(-time.Hour),
			District:        "Pune",
			Status:          enums.RequestStatusOpen,
			TractorSnapshot: models.Tractor{Brand: "Swaraj", Model: "744 FE", HP: 48},
		},
	}
}

func TestGenerateWritesBothSheets(t *testing.T) {
	out, err := NewGenerator().Generate(sampleRequests())
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(out))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{RequestsSheet, QuotesSheet}, f.GetSheetList())

	rows, err := f.GetRows(RequestsSheet)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, requestHeaders, rows[0])
	assert.Equal(t, "req_2", rows[1][0])
	assert.Equal(t, "2", rows[1][8])
	assert.Equal(t, "525500.00", rows[1][9])
	assert.Equal(t, "0", rows[2][8])

	quotes, err := f.GetRows(QuotesSheet)
	require.NoError(t, err)
	require.Len(t, quotes, 3)
	assert.Equal(t, "q1", quotes[1][1])
	assert.Equal(t, "530000", quotes[1][11])
}

func TestBestFinalPrice(t *testing.T) {
	_, ok := BestFinalPrice(models.QuotationRequest{})
	assert.False(t, ok)

	best, ok := BestFinalPrice(sampleRequests()[0])
	assert.True(t, ok)
	assert.True(t, best.Equal(decimal.NewFromInt(525500)))
}
