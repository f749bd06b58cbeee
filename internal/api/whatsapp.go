package api

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/orderkart/orderkart/internal/webserver"
	"github.com/orderkart/orderkart/internal/whatsapp"
)

func registerWhatsAppRoutes() {
	webserver.ApiGET("/whatsapp/qr", getWhatsAppQR)
	webserver.ApiPOST("/whatsapp/connect", postWhatsAppConnect)
	webserver.ApiGET("/whatsapp/status", getWhatsAppStatus)
}

// getWhatsAppQR returns the latest pairing QR code string (if any); the
// frontend renders the QR image client-side.
func getWhatsAppQR(c echo.Context) error {
	svc := whatsapp.Get()
	if svc == nil {
		return fail(c, http.StatusServiceUnavailable, "WA_NOT_INITIALIZED", "WhatsApp service not initialized", nil)
	}
	code := svc.GetQRCode()
	return ok(c, echo.Map{"code": code, "has_qr": code != ""})
}

// postWhatsAppConnect triggers a non-blocking connect attempt; a fresh QR
// event will be captured and exposed via GET /whatsapp/qr.
func postWhatsAppConnect(c echo.Context) error {
	svc := whatsapp.Get()
	if svc == nil {
		return fail(c, http.StatusServiceUnavailable, "WA_NOT_INITIALIZED", "WhatsApp service not initialized", nil)
	}
	svc.ConnectAsync()
	return ok(c, echo.Map{"started": true})
}

func getWhatsAppStatus(c echo.Context) error {
	svc := whatsapp.Get()
	if svc == nil {
		return fail(c, http.StatusServiceUnavailable, "WA_NOT_INITIALIZED", "WhatsApp service not initialized", nil)
	}
	return ok(c, echo.Map{"paired": svc.Paired(), "connected": svc.Connected()})
}
