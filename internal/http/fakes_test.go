package http

import (
	"context"
	"net/http/httptest"
	"sort"
	"strings"

	"github.com/jmoiron/sqlx"
	echo "github.com/labstack/echo/v4"

	"github.com/wabdine85-debug/kundenkartei-fahrschule/internal/model"
	"github.com/wabdine85-debug/kundenkartei-fahrschule/internal/repository"
)

// newTestCtx builds an echo context around a recorded request. Body, when
// non-empty, is JSON.
func newTestCtx(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	var req = httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

type fakeCustomers struct {
	nextID    int64
	customers map[int64]model.Customer
	entries   *fakeEntries // cascade target, may be nil
}

var _ repository.CustomersRepository = (*fakeCustomers)(nil)

func newFakeCustomers() *fakeCustomers {
	return &fakeCustomers{nextID: 1, customers: map[int64]model.Customer{}}
}

func (f *fakeCustomers) List(_ context.Context, filter repository.CustomerFilter) ([]model.Customer, error) {
	out := []model.Customer{}
	for _, c := range f.customers {
		if filter.Query != "" && !strings.Contains(strings.ToLower(c.FullName), strings.ToLower(filter.Query)) {
			continue
		}
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].FullName < out[j].FullName })
	return out, nil
}

func (f *fakeCustomers) Count(context.Context) (int, error) {
	return len(f.customers), nil
}

func (f *fakeCustomers) GetByID(_ context.Context, id int64) (*model.Customer, error) {
	c, ok := f.customers[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (f *fakeCustomers) Create(_ context.Context, fullName string) (*model.Customer, error) {
	c := model.Customer{ID: f.nextID, FullName: strings.TrimSpace(fullName)}
	f.customers[c.ID] = c
	f.nextID++
	return &c, nil
}

func (f *fakeCustomers) FindOrCreate(ctx context.Context, _ *sqlx.Tx, fullName string) (int64, bool, error) {
	name := strings.TrimSpace(fullName)
	for id, c := range f.customers {
		if strings.EqualFold(c.FullName, name) {
			return id, false, nil
		}
	}
	c, err := f.Create(ctx, name)
	if err != nil {
		return 0, false, err
	}
	return c.ID, true, nil
}

func (f *fakeCustomers) Rename(_ context.Context, id int64, fullName string) error {
	if c, ok := f.customers[id]; ok {
		c.FullName = strings.TrimSpace(fullName)
		f.customers[id] = c
	}
	return nil
}

func (f *fakeCustomers) DeleteCascade(_ context.Context, id int64) error {
	delete(f.customers, id)
	if f.entries != nil {
		for eid, e := range f.entries.entries {
			if e.CustomerID == id {
				delete(f.entries.entries, eid)
			}
		}
	}
	return nil
}

type fakeEntries struct {
	nextID  int64
	entries map[int64]model.Entry
}

var _ repository.EntriesRepository = (*fakeEntries)(nil)

func newFakeEntries() *fakeEntries {
	return &fakeEntries{nextID: 1, entries: map[int64]model.Entry{}}
}

func (f *fakeEntries) ListByCustomer(_ context.Context, customerID int64) ([]model.Entry, error) {
	out := []model.Entry{}
	for _, e := range f.entries {
		if e.CustomerID == customerID {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date.Time) {
			return out[i].Date.After(out[j].Date.Time)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

func (f *fakeEntries) SumByCustomer(_ context.Context, customerID int64) (float64, error) {
	var total float64
	for _, e := range f.entries {
		if e.CustomerID == customerID {
			total += e.Amount
		}
	}
	return total, nil
}

func (f *fakeEntries) Insert(_ context.Context, _ *sqlx.Tx, e model.Entry) (*model.Entry, error) {
	e.ID = f.nextID
	f.nextID++
	f.entries[e.ID] = e
	return &e, nil
}

func (f *fakeEntries) Update(_ context.Context, id int64, e model.Entry) (*model.Entry, error) {
	old, ok := f.entries[id]
	if !ok {
		return nil, nil
	}
	e.ID = id
	e.CustomerID = old.CustomerID
	f.entries[id] = e
	return &e, nil
}

func (f *fakeEntries) Delete(_ context.Context, id int64) error {
	delete(f.entries, id)
	return nil
}

type fakeInstructors struct {
	instructors []model.Instructor
	customers   map[int64][]model.Customer
}

var _ repository.InstructorsRepository = (*fakeInstructors)(nil)

func (f *fakeInstructors) List(context.Context) ([]model.Instructor, error) {
	out := append([]model.Instructor{}, f.instructors...)
	model.SortByRoster(out)
	return out, nil
}

func (f *fakeInstructors) IDByName(_ context.Context, name string) (int64, error) {
	for _, in := range f.instructors {
		if in.Name == name {
			return in.ID, nil
		}
	}
	return 0, echo.ErrNotFound
}

func (f *fakeInstructors) CustomersOf(_ context.Context, instructorID int64) ([]model.Customer, error) {
	return f.customers[instructorID], nil
}

type fakeMinutes struct {
	nextID  int64
	minutes map[int64]model.Minute
}

var _ repository.MinutesRepository = (*fakeMinutes)(nil)

func newFakeMinutes() *fakeMinutes {
	return &fakeMinutes{nextID: 1, minutes: map[int64]model.Minute{}}
}

func (f *fakeMinutes) ListByCustomer(_ context.Context, customerID int64) ([]model.Minute, error) {
	out := []model.Minute{}
	for _, m := range f.minutes {
		if m.CustomerID == customerID {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (f *fakeMinutes) SumMinutes(_ context.Context, customerID int64) (int, error) {
	total := 0
	for _, m := range f.minutes {
		if m.CustomerID == customerID {
			total += m.Minuten
		}
	}
	return total, nil
}

func (f *fakeMinutes) Insert(_ context.Context, m model.Minute) (*model.Minute, error) {
	m.ID = f.nextID
	f.nextID++
	f.minutes[m.ID] = m
	return &m, nil
}

func (f *fakeMinutes) Update(_ context.Context, id int64, m model.Minute) (bool, error) {
	old, ok := f.minutes[id]
	if !ok {
		return false, nil
	}
	m.ID = id
	m.CustomerID = old.CustomerID
	f.minutes[id] = m
	return true, nil
}

func (f *fakeMinutes) Delete(_ context.Context, id int64) error {
	delete(f.minutes, id)
	return nil
}
