package model

import "fmt"

// Minute is a tracked activity (driving lesson, theory, office work) measured
// in minutes, attributed to an instructor by name.
type Minute struct {
	ID         int64  `db:"id" json:"id"`
	CustomerID int64  `db:"customer_id" json:"customer_id"`
	Taetigkeit string `db:"taetigkeit" json:"taetigkeit"`
	Minuten    int    `db:"minuten" json:"minuten"`
	Fahrlehrer string `db:"fahrlehrer" json:"fahrlehrer"`
	Datum      Date   `db:"datum" json:"datum"`
}

// DecimalHours renders a minute total the way the frontend has always shown
// it: 90 minutes displays as "1.30" (1 hour 30 minutes), not 1.5 decimal
// hours. Known to be mathematically odd; kept for display compatibility.
func DecimalHours(totalMinutes int) string {
	hours := totalMinutes / 60
	rem := totalMinutes % 60
	return fmt.Sprintf("%.2f", float64(hours)+float64(rem)/100)
}
