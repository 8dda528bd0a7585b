package http

import (
	"net/http"
	"strings"

	echo "github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"

	"github.com/wabdine85-debug/kundenkartei-fahrschule/internal/metrics"
	"github.com/wabdine85-debug/kundenkartei-fahrschule/internal/model"
	"github.com/wabdine85-debug/kundenkartei-fahrschule/internal/repository"
)

func listEntriesHandler(entries repository.EntriesRepository) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, ok := pathID(c, "id")
		if !ok {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid id"})
		}
		list, err := entries.ListByCustomer(c.Request().Context(), id)
		if err != nil {
			log.Errorf("list entries for customer %d failed: %v", id, err)

			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "db error"})
		}
		return c.JSON(http.StatusOK, list)
	}
}

type createEntryReq struct {
	CustomerID   int64    `json:"customer_id" validate:"required,gt=0"`
	Date         string   `json:"date" validate:"required,datetime=2006-01-02"`
	Amount       *float64 `json:"amount" validate:"required"`
	Note         string   `json:"note"`
	FahrlehrerID *int64   `json:"fahrlehrer_id" validate:"omitempty,gt=0"`
}

type updateEntryReq struct {
	Date         string   `json:"date" validate:"required,datetime=2006-01-02"`
	Amount       *float64 `json:"amount" validate:"required"`
	Note         string   `json:"note"`
	FahrlehrerID *int64   `json:"fahrlehrer_id" validate:"omitempty,gt=0"`
}

// cleanNote trims and converts empty notes to NULL.
func cleanNote(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

func createEntryHandler(entries repository.EntriesRepository, unknownInstructorID int64) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req createEntryReq
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad request"})
		}
		if err := validate.Struct(req); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "date and amount required"})
		}

		date, err := model.ParseDate(req.Date)
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid date"})
		}

		fahrlehrerID := unknownInstructorID
		if req.FahrlehrerID != nil {
			fahrlehrerID = *req.FahrlehrerID
		}

		entry, err := entries.Insert(c.Request().Context(), nil, model.Entry{
			CustomerID:   req.CustomerID,
			Date:         date,
			Amount:       *req.Amount,
			Note:         cleanNote(req.Note),
			FahrlehrerID: &fahrlehrerID,
		})
		if err != nil {
			log.Errorf("create entry failed: %v", err)

			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "db error"})
		}
		metrics.EntriesWritten.WithLabelValues("api").Inc()

		return c.JSON(http.StatusOK, map[string]any{"success": true, "entry": entry})
	}
}

func updateEntryHandler(entries repository.EntriesRepository, unknownInstructorID int64) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, ok := pathID(c, "id")
		if !ok {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid id"})
		}
		var req updateEntryReq
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad request"})
		}
		if err := validate.Struct(req); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "date and amount required"})
		}

		date, err := model.ParseDate(req.Date)
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid date"})
		}

		fahrlehrerID := unknownInstructorID
		if req.FahrlehrerID != nil {
			fahrlehrerID = *req.FahrlehrerID
		}

		entry, err := entries.Update(c.Request().Context(), id, model.Entry{
			Date:         date,
			Amount:       *req.Amount,
			Note:         cleanNote(req.Note),
			FahrlehrerID: &fahrlehrerID,
		})
		if err != nil {
			log.Errorf("update entry %d failed: %v", id, err)

			return c.JSON(http.StatusInternalServerError, map[string]any{"success": false, "error": "db error"})
		}
		if entry == nil {
			return c.JSON(http.StatusNotFound, map[string]any{"success": false, "error": "not found"})
		}

		return c.JSON(http.StatusOK, map[string]any{"success": true, "entry": entry})
	}
}

func deleteEntryHandler(entries repository.EntriesRepository) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, ok := pathID(c, "id")
		if !ok {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid id"})
		}
		if err := entries.Delete(c.Request().Context(), id); err != nil {
			log.Errorf("delete entry %d failed: %v", id, err)

			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "db error"})
		}
		return c.JSON(http.StatusOK, map[string]bool{"success": true})
	}
}
