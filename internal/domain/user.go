package domain

import "time"

type User struct {
	ID                int64     `json:"id"`
	AccountID         int64     `json:"account_id"`
	Name              string    `json:"name"`
	Email             *string   `json:"email"`
	Age               *int      `json:"age"`
	Height            *float64  `json:"height"`
	Weight            *float64  `json:"weight"`
	MedicalConditions []string  `json:"medical_conditions"`
	Address           *string   `json:"address"`
	Phone             *string   `json:"phone"`
	Avatar            *string   `json:"avatar"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// BMISummary is the display form of an evaluated BMI.
type BMISummary struct {
	Index    float64 `json:"index"`
	Rounded  float64 `json:"rounded"`
	Category string  `json:"category"`
	Label    string  `json:"label"`
	Color    string  `json:"color"`
}

type UserProfile struct {
	User
	BMI *BMISummary `json:"bmi"`
}
