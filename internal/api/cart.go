package api

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/orderkart/orderkart/internal/cart"
	"github.com/orderkart/orderkart/internal/domain"
	"github.com/orderkart/orderkart/internal/webserver"
)

func registerCartRoutes() {
	webserver.ApiGET("/api/cart", getCart)
	webserver.ApiPOST("/api/cart/items", addCartItem)
	webserver.ApiDELETE("/api/cart/items/:productId", removeCartItem)
	webserver.ApiPOST("/api/cart/clear", clearCart)
}

func getCart(c echo.Context) error {
	items, err := cartSvc.Items()
	if err != nil {
		return fail(c, http.StatusInternalServerError, "STORE_ERROR", "Failed to load cart", err.Error())
	}
	return ok(c, echo.Map{"items": items, "total": cart.Total(items)})
}

// addCartItem stores an exclusive selection for a product: repeated adds for
// the same product id replace the previous entry.
func addCartItem(c echo.Context) error {
	var item domain.CartItem
	if err := c.Bind(&item); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse cart item", err.Error())
	}
	if strings.TrimSpace(item.ProductId) == "" {
		return fail(c, http.StatusBadRequest, "MISSING_PRODUCT_ID", "productId is required", nil)
	}

	items, err := cartSvc.Add(item)
	if errors.Is(err, cart.ErrEmptySelection) {
		return fail(c, http.StatusBadRequest, "EMPTY_SELECTION", "Either sets > 0 or a note is required", nil)
	}
	if err != nil {
		return fail(c, http.StatusInternalServerError, "STORE_ERROR", "Failed to store cart item", err.Error())
	}
	return ok(c, echo.Map{"items": items, "total": cart.Total(items)})
}

func removeCartItem(c echo.Context) error {
	productId := c.Param("productId")
	items, err := cartSvc.Remove(productId)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "STORE_ERROR", "Failed to remove cart item", err.Error())
	}
	return ok(c, echo.Map{"items": items, "total": cart.Total(items)})
}

// clearCart empties cart, product cache and last-sync marker together. The
// action is irreversible, so explicit confirmation is required.
func clearCart(c echo.Context) error {
	if c.QueryParam("confirm") != "true" {
		return fail(c, http.StatusBadRequest, "CONFIRM_REQUIRED", "Pass confirm=true to clear all cached data", nil)
	}
	if err := cartSvc.Clear(); err != nil {
		return fail(c, http.StatusInternalServerError, "STORE_ERROR", "Failed to clear cache", err.Error())
	}
	return ok(c, echo.Map{"cleared": true})
}
