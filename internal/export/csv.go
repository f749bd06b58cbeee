package export

import (
	"io"

	"github.com/gocarina/gocsv"
	"github.com/pkg/errors"

	"github.com/orderkart/orderkart/internal/domain"
)

type catalogCsvRow struct {
	ID          string  `csv:"id"`
	GroupName   string  `csv:"group"`
	ProductName string  `csv:"product"`
	Quantity    int     `csv:"quantity"`
	Rate        float64 `csv:"rate"`
	Amount      float64 `csv:"amount"`
	ImageUrl    string  `csv:"image_url"`
}

// WriteCatalogCSV dumps the cached catalog as CSV, one row per product in
// cache order.
func WriteCatalogCSV(w io.Writer, products []domain.Product) error {
	rows := make([]catalogCsvRow, 0, len(products))
	for _, p := range products {
		rows = append(rows, catalogCsvRow{
			ID:          p.ID,
			GroupName:   p.GroupName,
			ProductName: p.ProductName,
			Quantity:    p.Quantity,
			Rate:        p.Rate,
			Amount:      p.Amount,
			ImageUrl:    p.ImageUrl,
		})
	}
	if err := gocsv.Marshal(rows, w); err != nil {
		return errors.Wrap(err, "write catalog csv")
	}
	return nil
}
