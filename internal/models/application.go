package models

import "time"

// Application status values
const (
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// ApplicationInput represents a loan application as submitted by the applicant
type ApplicationInput struct {
	Name             string  `json:"name"`
	DateOfBirth      string  `json:"dateOfBirth"`
	Address          string  `json:"address"`
	DriverLicense    string  `json:"driverLicense"`
	EmploymentStatus string  `json:"employmentStatus"`
	Income           float64 `json:"income"`
	CarValue         float64 `json:"carValue"`
	DepositAmount    float64 `json:"depositAmount"`
	LoanAmount       float64 `json:"loanAmount"`
}

// ApplicationRecord represents a processed application as persisted in the store.
// ID and CreatedAt are assigned once on creation and never mutated.
type ApplicationRecord struct {
	ApplicationInput
	ID           string    `json:"id"`
	Status       string    `json:"status"`
	DecisionCode *string   `json:"decisionCode"`
	CreatedAt    time.Time `json:"createdAt"`
}
