package http

import (
	"net/http"

	echo "github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"

	"github.com/wabdine85-debug/kundenkartei-fahrschule/internal/repository"
)

func listInstructorsHandler(instructors repository.InstructorsRepository) echo.HandlerFunc {
	return func(c echo.Context) error {
		list, err := instructors.List(c.Request().Context())
		if err != nil {
			log.Errorf("list instructors failed: %v", err)

			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "db error"})
		}
		return c.JSON(http.StatusOK, list)
	}
}

func instructorCustomersHandler(instructors repository.InstructorsRepository) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, ok := pathID(c, "id")
		if !ok {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid id"})
		}
		list, err := instructors.CustomersOf(c.Request().Context(), id)
		if err != nil {
			log.Errorf("list customers of instructor %d failed: %v", id, err)

			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "db error"})
		}
		return c.JSON(http.StatusOK, list)
	}
}
