package http

import (
	"net/http"
	"strings"

	echo "github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"

	"github.com/wabdine85-debug/kundenkartei-fahrschule/internal/model"
	"github.com/wabdine85-debug/kundenkartei-fahrschule/internal/repository"
)

func listMinutesHandler(minutes repository.MinutesRepository) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, ok := pathID(c, "customer_id")
		if !ok {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid customer_id"})
		}
		list, err := minutes.ListByCustomer(c.Request().Context(), id)
		if err != nil {
			log.Errorf("list minutes for customer %d failed: %v", id, err)

			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "db error"})
		}
		return c.JSON(http.StatusOK, list)
	}
}

// sumMinutesHandler reports the minute total plus the frontend's
// hours.minutes display value (90 -> "1.30").
func sumMinutesHandler(minutes repository.MinutesRepository) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, ok := pathID(c, "customer_id")
		if !ok {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid customer_id"})
		}
		total, err := minutes.SumMinutes(c.Request().Context(), id)
		if err != nil {
			log.Errorf("sum minutes for customer %d failed: %v", id, err)

			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "db error"})
		}
		return c.JSON(http.StatusOK, map[string]any{
			"total_minutes": total,
			"total_hours":   model.DecimalHours(total),
		})
	}
}

type minuteReq struct {
	CustomerID int64  `json:"customer_id" validate:"required,gt=0"`
	Taetigkeit string `json:"taetigkeit"`
	Minuten    *int   `json:"minuten" validate:"required,gte=0"`
	Fahrlehrer string `json:"fahrlehrer"`
	Datum      string `json:"datum" validate:"required,datetime=2006-01-02"`
}

type minuteUpdateReq struct {
	Taetigkeit string `json:"taetigkeit"`
	Minuten    *int   `json:"minuten" validate:"required,gte=0"`
	Fahrlehrer string `json:"fahrlehrer"`
	Datum      string `json:"datum" validate:"required,datetime=2006-01-02"`
}

func createMinuteHandler(minutes repository.MinutesRepository) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req minuteReq
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad request"})
		}
		if err := validate.Struct(req); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "customer_id, minuten and datum required"})
		}

		datum, err := model.ParseDate(req.Datum)
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid datum"})
		}

		m, err := minutes.Insert(c.Request().Context(), model.Minute{
			CustomerID: req.CustomerID,
			Taetigkeit: strings.TrimSpace(req.Taetigkeit),
			Minuten:    *req.Minuten,
			Fahrlehrer: strings.TrimSpace(req.Fahrlehrer),
			Datum:      datum,
		})
		if err != nil {
			log.Errorf("create minute failed: %v", err)

			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "db error"})
		}
		return c.JSON(http.StatusOK, m)
	}
}

func updateMinuteHandler(minutes repository.MinutesRepository) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, ok := pathID(c, "id")
		if !ok {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid id"})
		}
		var req minuteUpdateReq
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad request"})
		}
		if err := validate.Struct(req); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "minuten and datum required"})
		}

		datum, err := model.ParseDate(req.Datum)
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid datum"})
		}

		found, err := minutes.Update(c.Request().Context(), id, model.Minute{
			Taetigkeit: strings.TrimSpace(req.Taetigkeit),
			Minuten:    *req.Minuten,
			Fahrlehrer: strings.TrimSpace(req.Fahrlehrer),
			Datum:      datum,
		})
		if err != nil {
			log.Errorf("update minute %d failed: %v", id, err)

			return c.JSON(http.StatusInternalServerError, map[string]any{"success": false, "error": "db error"})
		}
		if !found {
			return c.JSON(http.StatusNotFound, map[string]any{"success": false, "error": "not found"})
		}
		return c.JSON(http.StatusOK, map[string]bool{"success": true})
	}
}

func deleteMinuteHandler(minutes repository.MinutesRepository) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, ok := pathID(c, "id")
		if !ok {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid id"})
		}
		if err := minutes.Delete(c.Request().Context(), id); err != nil {
			log.Errorf("delete minute %d failed: %v", id, err)

			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "db error"})
		}
		return c.JSON(http.StatusOK, map[string]bool{"success": true})
	}
}
