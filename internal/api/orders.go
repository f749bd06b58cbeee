package api

import (
	"bytes"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/orderkart/orderkart/internal/cart"
	"github.com/orderkart/orderkart/internal/domain"
	"github.com/orderkart/orderkart/internal/export"
	"github.com/orderkart/orderkart/internal/webserver"
	"github.com/orderkart/orderkart/internal/whatsapp"
	"github.com/orderkart/orderkart/pkg/common"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

func registerOrderRoutes() {
	webserver.ApiPOST("/api/orders/export", exportOrder)
	webserver.ApiPOST("/api/orders/share", shareOrder)
	webserver.ApiGET("/api/orders", listOrders)
}

type orderPayload struct {
	Customer string `json:"customer"`
	Place    string `json:"place"`
	// share options
	Phone string `json:"phone"`
	Jid   string `json:"jid"`
	Send  bool   `json:"send"`
}

func buildOrder(c echo.Context, channel string) (*domain.Order, *orderPayload, error) {
	var payload orderPayload
	if err := c.Bind(&payload); err != nil {
		return nil, nil, fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse order request", err.Error())
	}
	if strings.TrimSpace(payload.Customer) == "" {
		return nil, nil, fail(c, http.StatusBadRequest, "MISSING_CUSTOMER", "Customer name is required", nil)
	}

	items, err := cartSvc.Items()
	if err != nil {
		return nil, nil, fail(c, http.StatusInternalServerError, "STORE_ERROR", "Failed to load cart", err.Error())
	}
	if len(items) == 0 {
		return nil, nil, fail(c, http.StatusBadRequest, "EMPTY_CART", "Cart is empty", nil)
	}

	return &domain.Order{
		ID:        common.UUIDint64(),
		Customer:  strings.TrimSpace(payload.Customer),
		Place:     strings.TrimSpace(payload.Place),
		Items:     items,
		Total:     cart.Total(items),
		Channel:   channel,
		CreatedAt: time.Now(),
	}, &payload, nil
}

// exportOrder renders the current cart as a downloadable workbook and
// records the order. Render failures leave the order history untouched.
func exportOrder(c echo.Context) error {
	order, _, errResp := buildOrder(c, "xlsx")
	if order == nil {
		return errResp
	}

	var buf bytes.Buffer
	if err := export.WriteOrderWorkbook(&buf, order); err != nil {
		zap.L().Error("order workbook export failed", zap.Error(err))
		return fail(c, http.StatusInternalServerError, "EXPORT_FAILED", "Failed to build order workbook", err.Error())
	}

	if err := cacheStore.PutOrder(order); err != nil {
		zap.L().Warn("failed to record exported order", zap.Error(err))
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="order.xlsx"`)
	return c.Blob(http.StatusOK, xlsxContentType, buf.Bytes())
}

// shareOrder returns the plain-text summary and a pre-filled wa.me link.
// With send=true and a paired WhatsApp device, the summary is also sent
// directly.
func shareOrder(c echo.Context) error {
	order, payload, errResp := buildOrder(c, "whatsapp")
	if order == nil {
		return errResp
	}

	text := export.BuildShareText(order)
	link := export.ShareLink(payload.Phone, text)

	sent := false
	if payload.Send {
		svc := whatsapp.Get()
		if svc == nil {
			return fail(c, http.StatusServiceUnavailable, "WA_NOT_INITIALIZED", "WhatsApp service not initialized", nil)
		}
		jid := payload.Jid
		if jid == "" {
			jid = appConfig.Whatsapp.DefaultJid
		}
		if jid == "" {
			return fail(c, http.StatusBadRequest, "MISSING_JID", "jid is required for direct send", nil)
		}
		if err := svc.SendText(c.Request().Context(), jid, text); err != nil {
			return fail(c, http.StatusInternalServerError, "SEND_FAILED", "Failed to send WhatsApp message", err.Error())
		}
		sent = true
	}

	if err := cacheStore.PutOrder(order); err != nil {
		zap.L().Warn("failed to record shared order", zap.Error(err))
	}

	return ok(c, echo.Map{
		"text":  text,
		"link":  link,
		"sent":  sent,
		"total": order.Total,
	})
}

func listOrders(c echo.Context) error {
	limit := 50
	if n, err := strconv.Atoi(c.QueryParam("limit")); err == nil && n > 0 && n <= 500 {
		limit = n
	}
	orders, err := cacheStore.Orders(limit)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "STORE_ERROR", "Failed to load orders", err.Error())
	}
	return ok(c, orders)
}
