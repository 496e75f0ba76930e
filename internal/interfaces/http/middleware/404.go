package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
	infra "github.com/pot-code/regform/internal/infrastructure"
)

// NoRouteMatched no matched route handler
func NoRouteMatched() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			err := next(c)
			if v, ok := err.(*echo.HTTPError); ok && (v.Code == http.StatusNotFound || v.Code == http.StatusMethodNotAllowed) {
				return c.JSON(v.Code, infra.NewRESTStandardError(v.Code, c.Request().URL.Path))
			}
			return err
		}
	}
}
