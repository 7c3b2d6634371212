package models

// DecisionOutcome represents the result of evaluating an application against
// the underwriting rules. Ephemeral; folded into the ApplicationRecord.
type DecisionOutcome struct {
	Status       string  `json:"status"`
	DecisionCode *string `json:"decisionCode"`
	Message      string  `json:"message"`
}
