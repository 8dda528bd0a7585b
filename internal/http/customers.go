package http

import (
	"net/http"
	"strconv"
	"strings"

	echo "github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"

	"github.com/wabdine85-debug/kundenkartei-fahrschule/internal/metrics"
	"github.com/wabdine85-debug/kundenkartei-fahrschule/internal/model"
	"github.com/wabdine85-debug/kundenkartei-fahrschule/internal/repository"
)

func pathID(c echo.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	return id, err == nil && id > 0
}

func listCustomersHandler(customers repository.CustomersRepository) echo.HandlerFunc {
	return func(c echo.Context) error {
		filter := repository.CustomerFilter{
			Query: strings.TrimSpace(c.QueryParam("q")),
			First: strings.TrimSpace(c.QueryParam("first")),
			Last:  strings.TrimSpace(c.QueryParam("last")),
		}
		list, err := customers.List(c.Request().Context(), filter)
		if err != nil {
			log.Errorf("list customers failed: %v", err)

			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "db error"})
		}
		return c.JSON(http.StatusOK, list)
	}
}

type customerReq struct {
	FullName string `json:"full_name"`
}

// createCustomerHandler inserts unconditionally and returns the new row.
func createCustomerHandler(customers repository.CustomersRepository) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req customerReq
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad request"})
		}
		if strings.TrimSpace(req.FullName) == "" {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "full_name required"})
		}

		cu, err := customers.Create(c.Request().Context(), req.FullName)
		if err != nil {
			log.Errorf("create customer failed: %v", err)

			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "db error"})
		}
		metrics.CustomersCreated.Inc()

		return c.JSON(http.StatusCreated, cu)
	}
}

// findOrCreateCustomerHandler resolves a customer by case-insensitive name,
// inserting only when no match exists.
func findOrCreateCustomerHandler(customers repository.CustomersRepository) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req customerReq
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad request"})
		}
		if strings.TrimSpace(req.FullName) == "" {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "full_name required"})
		}

		id, created, err := customers.FindOrCreate(c.Request().Context(), nil, req.FullName)
		if err != nil {
			log.Errorf("find-or-create customer failed: %v", err)

			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "db error"})
		}
		if created {
			metrics.CustomersCreated.Inc()
		}

		return c.JSON(http.StatusOK, map[string]any{"id": id, "created": created})
	}
}

// entryView flattens an entry for the detail page: NULL notes render as "".
type entryView struct {
	ID           int64      `json:"id"`
	Date         model.Date `json:"date"`
	Amount       float64    `json:"amount"`
	Note         string     `json:"note"`
	FahrlehrerID *int64     `json:"fahrlehrer_id"`
}

func getCustomerHandler(customers repository.CustomersRepository, entries repository.EntriesRepository) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, ok := pathID(c, "id")
		if !ok {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid id"})
		}

		ctx := c.Request().Context()
		cu, err := customers.GetByID(ctx, id)
		if err != nil {
			log.Errorf("get customer %d failed: %v", id, err)

			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "db error"})
		}
		if cu == nil {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "not found"})
		}

		list, err := entries.ListByCustomer(ctx, id)
		if err != nil {
			log.Errorf("list entries for customer %d failed: %v", id, err)

			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "db error"})
		}
		views := make([]entryView, 0, len(list))
		for _, e := range list {
			v := entryView{
				ID:           e.ID,
				Date:         e.Date,
				Amount:       e.Amount,
				FahrlehrerID: e.FahrlehrerID,
			}
			if e.Note != nil {
				v.Note = strings.TrimSpace(*e.Note)
			}
			views = append(views, v)
		}

		total, err := entries.SumByCustomer(ctx, id)
		if err != nil {
			log.Errorf("sum entries for customer %d failed: %v", id, err)

			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "db error"})
		}

		return c.JSON(http.StatusOK, map[string]any{
			"customer": cu,
			"entries":  views,
			"total":    total,
		})
	}
}

func renameCustomerHandler(customers repository.CustomersRepository) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, ok := pathID(c, "id")
		if !ok {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid id"})
		}
		var req customerReq
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad request"})
		}
		if strings.TrimSpace(req.FullName) == "" {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "full_name required"})
		}

		if err := customers.Rename(c.Request().Context(), id, req.FullName); err != nil {
			log.Errorf("rename customer %d failed: %v", id, err)

			return c.JSON(http.StatusInternalServerError, map[string]any{"success": false, "error": "db error"})
		}
		return c.JSON(http.StatusOK, map[string]bool{"success": true})
	}
}

func deleteCustomerHandler(customers repository.CustomersRepository) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, ok := pathID(c, "id")
		if !ok {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid id"})
		}

		if err := customers.DeleteCascade(c.Request().Context(), id); err != nil {
			log.Errorf("delete customer %d failed: %v", id, err)

			return c.JSON(http.StatusInternalServerError, map[string]any{"success": false, "error": "db error"})
		}
		return c.JSON(http.StatusOK, map[string]bool{"success": true})
	}
}
