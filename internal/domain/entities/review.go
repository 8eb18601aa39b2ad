package entities

import "time"

const (
	MinRating = 1
	MaxRating = 5
)

// Review represents a user review of a clinic
type Review struct {
	ID        int64     `json:"id" db:"id"`
	ClinicID  int64     `json:"clinic_id" db:"clinic_id"`
	UserID    int64     `json:"user_id" db:"user_id"`
	Rating    int       `json:"rating" db:"rating"`
	Text      string    `json:"text" db:"review_text"`
	CreatedAt time.Time `json:"date" db:"created_at"`
}

// ReviewView is a review as shown on a clinic page
type ReviewView struct {
	ID     int64     `json:"id"`
	Rating int       `json:"rating"`
	Text   string    `json:"text"`
	Date   time.Time `json:"date"`
	Author string    `json:"author"`
}

// ValidRating reports whether r lies within the accepted star range
func ValidRating(r float64) bool {
	return r >= MinRating && r <= MaxRating
}
