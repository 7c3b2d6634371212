package models

import "time"

// ApplicationSummary is the projection of an ApplicationRecord returned by
// the list endpoint. Derived on read, never stored.
type ApplicationSummary struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	EmploymentStatus string    `json:"employmentStatus"`
	Income           float64   `json:"income"`
	LoanAmount       float64   `json:"loanAmount"`
	DecisionCode     *string   `json:"decisionCode"`
	Status           string    `json:"status"`
	CreatedAt        time.Time `json:"createdAt"`
}
