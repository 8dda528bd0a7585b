package http

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wabdine85-debug/kundenkartei-fahrschule/internal/model"
)

func TestFindOrCreateCustomerIsIdempotentPerName(t *testing.T) {
	customers := newFakeCustomers()
	h := findOrCreateCustomerHandler(customers)

	c, rec := newTestCtx(http.MethodPost, "/api/customer", `{"full_name":"Jane Doe"}`)
	require.NoError(t, h(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var first struct {
		ID      int64 `json:"id"`
		Created bool  `json:"created"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &first))
	assert.True(t, first.Created)

	// same name, different case
	c, rec = newTestCtx(http.MethodPost, "/api/customer", `{"full_name":"jane doe"}`)
	require.NoError(t, h(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var second struct {
		ID      int64 `json:"id"`
		Created bool  `json:"created"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &second))
	assert.False(t, second.Created)
	assert.Equal(t, first.ID, second.ID)
}

func TestCreateCustomerRejectsBlankName(t *testing.T) {
	customers := newFakeCustomers()

	c, rec := newTestCtx(http.MethodPost, "/api/customers", `{"full_name":"   "}`)
	require.NoError(t, createCustomerHandler(customers)(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	c, rec = newTestCtx(http.MethodPost, "/api/customer", `{"full_name":""}`)
	require.NoError(t, findOrCreateCustomerHandler(customers)(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	assert.Empty(t, customers.customers)
}

func TestCreateCustomerTrimsAndReturnsRow(t *testing.T) {
	customers := newFakeCustomers()

	c, rec := newTestCtx(http.MethodPost, "/api/customers", `{"full_name":"  Max Mustermann  "}`)
	require.NoError(t, createCustomerHandler(customers)(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	var got model.Customer
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "Max Mustermann", got.FullName)
	assert.NotZero(t, got.ID)
}

func TestGetCustomerZeroEntriesTotalIsZero(t *testing.T) {
	customers := newFakeCustomers()
	entries := newFakeEntries()
	cu, _ := customers.Create(context.Background(), "Leerer Kunde")

	c, rec := newTestCtx(http.MethodGet, "/", "")
	c.SetParamNames("id")
	c.SetParamValues("1")
	require.NoError(t, getCustomerHandler(customers, entries)(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var got struct {
		Customer model.Customer `json:"customer"`
		Entries  []entryView    `json:"entries"`
		Total    float64        `json:"total"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, cu.ID, got.Customer.ID)
	assert.Empty(t, got.Entries)
	assert.Equal(t, 0.0, got.Total)
}

func TestGetCustomerNormalizesNotesForDisplay(t *testing.T) {
	customers := newFakeCustomers()
	entries := newFakeEntries()
	customers.Create(context.Background(), "Jane Doe")

	note := "  Fahrstunde  "
	entries.Insert(context.Background(), nil, model.Entry{CustomerID: 1, Date: mustDate(t, "2024-01-05"), Amount: 55, Note: &note})
	entries.Insert(context.Background(), nil, model.Entry{CustomerID: 1, Date: mustDate(t, "2024-01-06"), Amount: 10})

	c, rec := newTestCtx(http.MethodGet, "/", "")
	c.SetParamNames("id")
	c.SetParamValues("1")
	require.NoError(t, getCustomerHandler(customers, entries)(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var got struct {
		Entries []entryView `json:"entries"`
		Total   float64     `json:"total"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got.Entries, 2)
	// date DESC: the noteless entry first
	assert.Equal(t, "", got.Entries[0].Note)
	assert.Equal(t, "Fahrstunde", got.Entries[1].Note)
	assert.Equal(t, 65.0, got.Total)
}

func TestGetCustomerNotFound(t *testing.T) {
	c, rec := newTestCtx(http.MethodGet, "/", "")
	c.SetParamNames("id")
	c.SetParamValues("99")
	require.NoError(t, getCustomerHandler(newFakeCustomers(), newFakeEntries())(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeleteCustomerCascadesEntries(t *testing.T) {
	customers := newFakeCustomers()
	entries := newFakeEntries()
	customers.entries = entries
	customers.Create(context.Background(), "Jane Doe")
	entries.Insert(context.Background(), nil, model.Entry{CustomerID: 1, Date: mustDate(t, "2024-01-05"), Amount: 55})
	entries.Insert(context.Background(), nil, model.Entry{CustomerID: 1, Date: mustDate(t, "2024-01-06"), Amount: 10})

	c, rec := newTestCtx(http.MethodDelete, "/", "")
	c.SetParamNames("id")
	c.SetParamValues("1")
	require.NoError(t, deleteCustomerHandler(customers)(c))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true}`, rec.Body.String())

	assert.Empty(t, customers.customers)
	assert.Empty(t, entries.entries)
}

func TestStatsCount(t *testing.T) {
	customers := newFakeCustomers()
	customers.Create(context.Background(), "A")
	customers.Create(context.Background(), "B")

	c, rec := newTestCtx(http.MethodGet, "/api/stats/count", "")
	require.NoError(t, statsCountHandler(customers)(c))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"count":2}`, rec.Body.String())
}

func mustDate(t *testing.T, s string) model.Date {
	t.Helper()
	d, err := model.ParseDate(s)
	require.NoError(t, err)
	return d
}
