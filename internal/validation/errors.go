package validation

import (
	"fmt"
	"strings"
)

// Validation error codes
const (
	CodeMissingRequired    = "MISSING_REQUIRED"
	CodeInvalidType        = "INVALID_TYPE"
	CodeInvalidValue       = "INVALID_VALUE"
	CodeInvalidDate        = "INVALID_DATE"
	CodeUnderage           = "UNDERAGE"
	CodeLoanAmountMismatch = "LOAN_AMOUNT_MISMATCH"
	CodeNonPositiveIncome  = "NON_POSITIVE_INCOME"
)

// FieldError describes a single validation failure attributable to a field
type FieldError struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Errors aggregates all validation failures for a submission
type Errors []FieldError

func (e Errors) Error() string {
	msgs := make([]string, len(e))
	for i, fe := range e {
		msgs[i] = fe.Error()
	}
	return strings.Join(msgs, "; ")
}
