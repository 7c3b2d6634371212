package validation

import (
	"encoding/json"
	"fmt"
	"math"
	"time"

	"github.com/rkbisoi/demo-loan-app-api/internal/models"
	"github.com/xeipuuv/gojsonschema"
)

const (
	minAge = 18
	// Absolute tolerance when matching loanAmount against carValue - depositAmount.
	loanTolerance = 0.01
)

// Options controls the optional business rules.
type Options struct {
	// RejectNonPositiveIncome enables the income > 0 rule. Off by default;
	// the rule exists in the source system but was never switched on.
	RejectNonPositiveIncome bool
}

// Validator checks loan application submissions: structural checks against a
// JSON schema, then cross-field business rules. It holds no mutable state and
// is safe for concurrent use.
type Validator struct {
	schema *gojsonschema.Schema
	opts   Options
	now    func() time.Time
}

// New compiles the application schema and returns a ready validator.
func New(opts Options) (*Validator, error) {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(applicationSchema))
	if err != nil {
		return nil, fmt.Errorf("failed to compile application schema: %w", err)
	}
	return &Validator{schema: schema, opts: opts, now: time.Now}, nil
}

// Parse validates a raw submission document and decodes it into an
// ApplicationInput. Returns Errors with field-level detail on failure.
func (v *Validator) Parse(doc []byte) (models.ApplicationInput, error) {
	var input models.ApplicationInput

	result, err := v.schema.Validate(gojsonschema.NewBytesLoader(doc))
	if err != nil {
		return input, Errors{{Field: "(root)", Code: CodeInvalidType, Message: "request body is not valid JSON"}}
	}
	if !result.Valid() {
		return input, schemaErrors(result)
	}

	if err := json.Unmarshal(doc, &input); err != nil {
		return input, Errors{{Field: "(root)", Code: CodeInvalidType, Message: err.Error()}}
	}

	if err := v.Check(input); err != nil {
		return input, err
	}
	return input, nil
}

// Check runs the cross-field business rules over an already-decoded input.
// Pure function of the input and the current UTC date.
func (v *Validator) Check(input models.ApplicationInput) error {
	return v.checkAt(input, v.now().UTC())
}

func (v *Validator) checkAt(input models.ApplicationInput, now time.Time) error {
	var errs Errors

	dob, err := time.Parse("2006-01-02", input.DateOfBirth)
	if err != nil {
		errs = append(errs, FieldError{
			Field:   "dateOfBirth",
			Code:    CodeInvalidDate,
			Message: "dateOfBirth must be a valid date in YYYY-MM-DD format",
		})
	} else if ageAt(dob, now) < minAge {
		errs = append(errs, FieldError{
			Field:   "dateOfBirth",
			Code:    CodeUnderage,
			Message: fmt.Sprintf("applicant must be at least %d years old", minAge),
		})
	}

	if v.opts.RejectNonPositiveIncome && input.Income <= 0 {
		errs = append(errs, FieldError{
			Field:   "income",
			Code:    CodeNonPositiveIncome,
			Message: "income must be greater than zero",
		})
	}

	expected := math.Max(0, input.CarValue-input.DepositAmount)
	diff := math.Abs(input.LoanAmount - expected)
	// Round the difference to cents so the tolerance boundary itself passes.
	if math.Round(diff*100)/100 > loanTolerance {
		errs = append(errs, FieldError{
			Field:   "loanAmount",
			Code:    CodeLoanAmountMismatch,
			Message: fmt.Sprintf("loanAmount must equal car value minus deposit (expected %.2f)", expected),
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ageAt computes whole years between birthdate and now, decremented by one
// when now's (month, day) precedes the birthdate's.
func ageAt(dob, now time.Time) int {
	age := now.Year() - dob.Year()
	if now.Month() < dob.Month() || (now.Month() == dob.Month() && now.Day() < dob.Day()) {
		age--
	}
	return age
}

// schemaErrors maps gojsonschema results onto field-level errors.
func schemaErrors(result *gojsonschema.Result) Errors {
	var errs Errors
	for _, re := range result.Errors() {
		fe := FieldError{Field: re.Field(), Code: CodeInvalidValue, Message: re.Description()}
		switch re.Type() {
		case "required":
			if prop, ok := re.Details()["property"].(string); ok {
				fe.Field = prop
			}
			fe.Code = CodeMissingRequired
		case "invalid_type":
			fe.Code = CodeInvalidType
		}
		errs = append(errs, fe)
	}
	return errs
}
