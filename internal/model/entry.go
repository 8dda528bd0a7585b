package model

// Entry is a dated ledger line owned by a customer, optionally attributed to
// an instructor. A NULL fahrlehrer_id means the row predates instructor
// tracking (CSV imports).
type Entry struct {
	ID           int64   `db:"id" json:"id"`
	CustomerID   int64   `db:"customer_id" json:"customer_id"`
	Date         Date    `db:"date" json:"date"`
	Amount       float64 `db:"amount" json:"amount"`
	Note         *string `db:"note" json:"note"`
	FahrlehrerID *int64  `db:"fahrlehrer_id" json:"fahrlehrer_id"`
}
