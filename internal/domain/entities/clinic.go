package entities

import "strconv"

// Clinic represents a row of the clinics table
type Clinic struct {
	ID          int64  `json:"id" db:"id"`
	Name        string `json:"name" db:"name"`
	ImageURL    string `json:"image_url" db:"image_url"`
	Address     string `json:"address" db:"address"`
	Phone       string `json:"phone" db:"phone"`
	Email       string `json:"email" db:"email"`
	Website     string `json:"website" db:"website"`
	Description string `json:"description" db:"description"`
}

// ClinicBasic is the unaggregated view used by the admin panel
type ClinicBasic struct {
	ID      int64  `json:"id" db:"id"`
	Name    string `json:"name" db:"name"`
	Address string `json:"address" db:"address"`
	Phone   string `json:"phone" db:"phone"`
	Email   string `json:"email" db:"email"`
}

// ClinicSummary is a directory entry with its computed rating
type ClinicSummary struct {
	ID          int64             `json:"id"`
	Name        string            `json:"name"`
	Image       string            `json:"image"`
	Address     string            `json:"address"`
	Phone       string            `json:"phone"`
	Email       string            `json:"email"`
	Website     string            `json:"website"`
	Description string            `json:"description"`
	Rating      float64           `json:"rating"`
	ReviewCount int               `json:"reviewCount"`
	Services    []string          `json:"services"`
	Schedule    map[string]string `json:"schedule"`
}

// ClinicDetail is a directory entry together with its reviews, newest first
type ClinicDetail struct {
	ClinicSummary
	Reviews []ReviewView `json:"reviews"`
}

// ClinicPatch carries a sparse clinic update. Nil fields are left untouched.
type ClinicPatch struct {
	Name        *string `json:"name,omitempty"`
	ImageURL    *string `json:"image_url,omitempty"`
	Address     *string `json:"address,omitempty"`
	Phone       *string `json:"phone,omitempty"`
	Email       *string `json:"email,omitempty"`
	Website     *string `json:"website,omitempty"`
	Description *string `json:"description,omitempty"`
}

// Columns returns the present fields keyed by column name
func (p ClinicPatch) Columns() map[string]string {
	cols := make(map[string]string)
	set := func(column string, v *string) {
		if v != nil {
			cols[column] = *v
		}
	}
	set("name", p.Name)
	set("image_url", p.ImageURL)
	set("address", p.Address)
	set("phone", p.Phone)
	set("email", p.Email)
	set("website", p.Website)
	set("description", p.Description)
	return cols
}

// IsEmpty reports whether the patch changes no column
func (p ClinicPatch) IsEmpty() bool {
	return len(p.Columns()) == 0
}

// RoundRating rounds an average rating to one decimal place. The exact
// binary value is rounded, so a true tie such as 2.25 goes to the even digit.
func RoundRating(avg float64) float64 {
	rounded, _ := strconv.ParseFloat(strconv.FormatFloat(avg, 'f', 1, 64), 64)
	return rounded
}
