package export

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/orderkart/orderkart/internal/cart"
	"github.com/orderkart/orderkart/internal/domain"
)

// BuildShareText renders an order into the plain-text summary used for the
// WhatsApp share. The layout mirrors the workbook table.
func BuildShareText(order *domain.Order) string {
	var b strings.Builder
	fmt.Fprintf(&b, "*Order - %s*\n", order.Customer)
	if order.Place != "" {
		fmt.Fprintf(&b, "Place: %s\n", order.Place)
	}
	fmt.Fprintf(&b, "Date: %s\n\n", order.CreatedAt.Format("02 Jan 2006 15:04"))

	for i, it := range order.Items {
		fmt.Fprintf(&b, "%d. %s (%s)", i+1, it.ProductName, it.GroupName)
		if it.Sets > 0 {
			fmt.Fprintf(&b, " - %d set x %.2f = %.2f", it.Sets, it.Rate, it.LineTotal())
		} else {
			fmt.Fprintf(&b, " - %s", it.Note)
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "\n*Total: %.2f*", cart.Total(order.Items))
	return b.String()
}

// ShareLink builds a pre-filled wa.me link for the given text. phone may be
// empty, in which case the recipient is chosen in the WhatsApp client.
func ShareLink(phone, text string) string {
	phone = strings.NewReplacer("+", "", " ", "", "-", "").Replace(strings.TrimSpace(phone))
	return fmt.Sprintf("https://wa.me/%s?text=%s", phone, url.QueryEscape(text))
}
