package export

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/360EntSecGroup-Skylar/excelize"
	"github.com/stretchr/testify/require"

	"github.com/orderkart/orderkart/internal/domain"
)

func sampleOrder() *domain.Order {
	return &domain.Order{
		ID:       1,
		Customer: "RK Printers",
		Place:    "Rajkot",
		Items: []domain.CartItem{
			{ProductId: "a", ProductName: "Black", GroupName: "Inks", Sets: 2, Rate: 100},
			{ProductId: "b", ProductName: "Cyan", GroupName: "Inks", Note: "urgent refill"},
		},
		Total:     200,
		CreatedAt: time.Date(2026, 8, 30, 10, 30, 0, 0, time.UTC),
	}
}

func TestBuildShareText(t *testing.T) {
	text := BuildShareText(sampleOrder())

	require.Contains(t, text, "*Order - RK Printers*")
	require.Contains(t, text, "Place: Rajkot")
	require.Contains(t, text, "1. Black (Inks) - 2 set x 100.00 = 200.00")
	require.Contains(t, text, "2. Cyan (Inks) - urgent refill")
	require.Contains(t, text, "*Total: 200.00*")
}

func TestShareLink(t *testing.T) {
	link := ShareLink("", "hello world")
	require.Equal(t, "https://wa.me/?text=hello+world", link)

	link = ShareLink("+91 98765-43210", "x")
	require.True(t, strings.HasPrefix(link, "https://wa.me/919876543210?text="))
}

func TestWriteOrderWorkbook(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteOrderWorkbook(&buf, sampleOrder()))
	require.NotZero(t, buf.Len())

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	require.Equal(t, "RK Printers", f.GetCellValue("Sheet1", "B1"))
	require.Equal(t, "Product", f.GetCellValue("Sheet1", "A5"))
	require.Equal(t, "Black (Inks)", f.GetCellValue("Sheet1", "A6"))
	require.Equal(t, "note", f.GetCellValue("Sheet1", "B7"))
}

func TestWriteCatalogCSV(t *testing.T) {
	products := []domain.Product{
		{ID: "32d4568d", GroupName: "Inks", ProductName: "Black", Quantity: 5, Rate: 100, Amount: 500, ImageUrl: "u"},
	}
	var buf bytes.Buffer
	require.NoError(t, WriteCatalogCSV(&buf, products))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	require.Equal(t, "id,group,product,quantity,rate,amount,image_url", strings.TrimSpace(lines[0]))
	require.Contains(t, lines[1], "32d4568d")
	require.Contains(t, lines[1], "Black")
}
