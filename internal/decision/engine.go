package decision

import (
	"math"

	"github.com/rkbisoi/demo-loan-app-api/internal/models"
)

// Decision codes attached to rejections
const (
	CodeUnemployment = "D_017"
	CodeHighLVR      = "R_040"
)

// maxLVR is the highest acceptable loan-to-value ratio, in percent.
const maxLVR = 150.0

// Decide maps a validated application to a decision outcome. Deterministic
// and total: first matching rule wins, no side effects.
func Decide(app models.ApplicationInput) models.DecisionOutcome {
	if app.EmploymentStatus == "unemployed" {
		return rejected(CodeUnemployment, "Application declined due to unemployment status.")
	}

	if LVR(app.LoanAmount, app.Income) > maxLVR {
		return rejected(CodeHighLVR, "Application declined due to high LVR ratio.")
	}

	return models.DecisionOutcome{
		Status:  models.StatusApproved,
		Message: "Application has been approved!",
	}
}

// LVR computes the loan-to-value ratio in percent, with income standing in
// for asset value. Defined as +Inf when income is not positive.
func LVR(loanAmount, income float64) float64 {
	if income > 0 {
		return (loanAmount / income) * 100
	}
	return math.Inf(1)
}

func rejected(code, message string) models.DecisionOutcome {
	return models.DecisionOutcome{
		Status:       models.StatusRejected,
		DecisionCode: &code,
		Message:      message,
	}
}
