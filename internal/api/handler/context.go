package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	mw "github.com/devfolio/portfolio-api/internal/api/middleware"
	"github.com/devfolio/portfolio-api/internal/core/domain"
)

// currentPrincipal returns the Principal injected by the auth middleware.
// Its absence means the route was mounted without Auth; reject as
// unauthenticated rather than crash.
func currentPrincipal(c echo.Context) (*domain.Principal, error) {
	p := mw.PrincipalFrom(c)
	if p == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
	}
	return p, nil
}

// pathID parses a numeric :id path parameter.
func pathID(c echo.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	return id, nil
}

// pageParams reads the page/limit query parameters, leaving zero values for
// the service layer to clamp.
func pageParams(c echo.Context) (page, limit int) {
	page, _ = strconv.Atoi(c.QueryParam("page"))
	limit, _ = strconv.Atoi(c.QueryParam("limit"))
	return page, limit
}
