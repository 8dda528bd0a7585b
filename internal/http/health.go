package http

import (
	"net/http"

	"github.com/jmoiron/sqlx"
	echo "github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"

	"github.com/wabdine85-debug/kundenkartei-fahrschule/internal/repository"
)

func healthHandler(db *sqlx.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		var one int
		if err := db.GetContext(c.Request().Context(), &one, `SELECT 1`); err != nil {
			return c.JSON(http.StatusInternalServerError, map[string]any{"ok": false, "error": err.Error()})
		}
		return c.JSON(http.StatusOK, map[string]any{"ok": true, "db": one})
	}
}

func statsCountHandler(customers repository.CustomersRepository) echo.HandlerFunc {
	return func(c echo.Context) error {
		count, err := customers.Count(c.Request().Context())
		if err != nil {
			log.Errorf("stats count failed: %v", err)

			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "db error"})
		}
		return c.JSON(http.StatusOK, map[string]int{"count": count})
	}
}
