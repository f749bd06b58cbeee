package api

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/orderkart/orderkart/internal/catalog"
	"github.com/orderkart/orderkart/internal/domain"
	"github.com/orderkart/orderkart/internal/export"
	"github.com/orderkart/orderkart/internal/webserver"
)

func registerCatalogRoutes() {
	webserver.ApiGET("/api/catalog/products", listProducts)
	webserver.ApiGET("/api/catalog/groups", listGroups)
	webserver.ApiPOST("/api/catalog/sync", runSync)
	webserver.ApiGET("/api/catalog/status", syncStatus)
	webserver.ApiGET("/api/catalog/export/csv", exportCatalogCSV)
}

// listProducts serves the cached catalog with substring search and group
// filtering. Cache order is preserved; pagination slices the filtered list.
func listProducts(c echo.Context) error {
	page, pageSize := parsePagination(c)
	q := strings.TrimSpace(c.QueryParam("q"))
	group := strings.TrimSpace(c.QueryParam("group"))

	products, err := cacheStore.Products()
	if err != nil {
		return fail(c, http.StatusInternalServerError, "STORE_ERROR", "Failed to load catalog", err.Error())
	}

	rows := catalog.Search(products, q)
	if group != "" {
		filtered := make([]domain.Product, 0, len(rows))
		for _, p := range rows {
			if p.GroupName == group {
				filtered = append(filtered, p)
			}
		}
		rows = filtered
	}

	total := int64(len(rows))
	start := (page - 1) * pageSize
	if start > len(rows) {
		start = len(rows)
	}
	end := start + pageSize
	if end > len(rows) {
		end = len(rows)
	}
	return paged(c, rows[start:end], total, page, pageSize)
}

func listGroups(c echo.Context) error {
	products, err := cacheStore.Products()
	if err != nil {
		return fail(c, http.StatusInternalServerError, "STORE_ERROR", "Failed to load catalog", err.Error())
	}
	return ok(c, catalog.Groups(products))
}

// runSync performs one synchronization pass against the remote catalog. The
// previous cache survives any failure.
func runSync(c echo.Context) error {
	result, err := syncSvc.Sync(c.Request().Context())
	if err != nil {
		return fail(c, http.StatusBadGateway, "SYNC_FAILED", "Catalog sync failed", err.Error())
	}
	return ok(c, echo.Map{
		"stats":    result.Stats,
		"products": len(result.Products),
	})
}

func syncStatus(c echo.Context) error {
	health, err := syncSvc.Health()
	if err != nil {
		return fail(c, http.StatusInternalServerError, "STORE_ERROR", "Failed to read sync status", err.Error())
	}
	return ok(c, health)
}

func exportCatalogCSV(c echo.Context) error {
	products, err := cacheStore.Products()
	if err != nil {
		return fail(c, http.StatusInternalServerError, "STORE_ERROR", "Failed to load catalog", err.Error())
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="catalog.csv"`)
	c.Response().Header().Set(echo.HeaderContentType, "text/csv")
	c.Response().WriteHeader(http.StatusOK)
	return export.WriteCatalogCSV(c.Response(), products)
}
