package api

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/orderkart/orderkart/config"
	"github.com/orderkart/orderkart/internal/cart"
	"github.com/orderkart/orderkart/internal/store"
	"github.com/orderkart/orderkart/internal/syncer"
)

// Shared handler state, set once by Register.
var (
	appConfig  *config.AppConfig
	cacheStore *store.Store
	cartSvc    *cart.Service
	syncSvc    *syncer.Service
)

// Register wires the handler dependencies and mounts all API routes on the
// running web server.
func Register(cfg *config.AppConfig, st *store.Store, cs *cart.Service, ss *syncer.Service) {
	appConfig = cfg
	cacheStore = st
	cartSvc = cs
	syncSvc = ss

	registerCatalogRoutes()
	registerCartRoutes()
	registerOrderRoutes()
	registerWhatsAppRoutes()
}

func ok(c echo.Context, data interface{}) error {
	return c.JSON(http.StatusOK, echo.Map{"code": "OK", "data": data})
}

func fail(c echo.Context, status int, code, message string, detail interface{}) error {
	body := echo.Map{"code": code, "message": message}
	if detail != nil {
		body["detail"] = detail
	}
	return c.JSON(status, body)
}

func paged(c echo.Context, rows interface{}, total int64, page, pageSize int) error {
	return c.JSON(http.StatusOK, echo.Map{
		"code":    "OK",
		"data":    rows,
		"total":   total,
		"page":    page,
		"perPage": pageSize,
	})
}

// parsePagination accepts both perPage and the legacy pageSize param.
func parsePagination(c echo.Context) (page, pageSize int) {
	page = 1
	if p, err := strconv.Atoi(c.QueryParam("page")); err == nil && p > 0 {
		page = p
	}
	pageSize = 20
	for _, name := range []string{"perPage", "pageSize"} {
		if ps, err := strconv.Atoi(c.QueryParam(name)); err == nil && ps > 0 && ps <= 500 {
			pageSize = ps
			break
		}
	}
	return page, pageSize
}
