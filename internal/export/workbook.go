package export

import (
	"fmt"
	"io"

	"github.com/360EntSecGroup-Skylar/excelize"
	"github.com/pkg/errors"

	"github.com/orderkart/orderkart/internal/cart"
	"github.com/orderkart/orderkart/internal/domain"
)

const orderSheet = "Sheet1"

// WriteOrderWorkbook renders an order into a tabular xlsx workbook: one row
// per cart entry with product, quantity-or-mode, note, rate and line total,
// followed by the grand total. The writer receives the finished file; a
// failed render writes nothing to persisted state.
func WriteOrderWorkbook(w io.Writer, order *domain.Order) error {
	f := excelize.NewFile()

	f.SetCellValue(orderSheet, "A1", "Customer")
	f.SetCellValue(orderSheet, "B1", order.Customer)
	f.SetCellValue(orderSheet, "A2", "Place")
	f.SetCellValue(orderSheet, "B2", order.Place)
	f.SetCellValue(orderSheet, "A3", "Date")
	f.SetCellValue(orderSheet, "B3", order.CreatedAt.Format("02 Jan 2006 15:04"))

	headers := []string{"Product", "Qty / Mode", "Note", "Rate", "Line Total"}
	for i, h := range headers {
		f.SetCellValue(orderSheet, fmt.Sprintf("%c5", 'A'+i), h)
	}

	row := 6
	for _, it := range order.Items {
		f.SetCellValue(orderSheet, fmt.Sprintf("A%d", row), fmt.Sprintf("%s (%s)", it.ProductName, it.GroupName))
		f.SetCellValue(orderSheet, fmt.Sprintf("B%d", row), quantityOrMode(it))
		f.SetCellValue(orderSheet, fmt.Sprintf("C%d", row), it.Note)
		f.SetCellValue(orderSheet, fmt.Sprintf("D%d", row), it.Rate)
		f.SetCellValue(orderSheet, fmt.Sprintf("E%d", row), it.LineTotal())
		row++
	}

	row++
	f.SetCellValue(orderSheet, fmt.Sprintf("D%d", row), "Total")
	f.SetCellValue(orderSheet, fmt.Sprintf("E%d", row), cart.Total(order.Items))

	f.SetColWidth(orderSheet, "A", "A", 36)
	f.SetColWidth(orderSheet, "B", "C", 18)

	if err := f.Write(w); err != nil {
		return errors.Wrap(err, "write order workbook")
	}
	return nil
}

func quantityOrMode(it domain.CartItem) string {
	if it.Sets > 0 {
		return fmt.Sprintf("%d set", it.Sets)
	}
	return "note"
}
