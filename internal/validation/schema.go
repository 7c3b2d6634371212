package validation

// applicationSchema covers the structural checks: every field present, the
// right JSON type, name non-empty and the money fields non-negative.
// Cross-field rules live in validator.go.
const applicationSchema = `{
	"type": "object",
	"required": [
		"name",
		"dateOfBirth",
		"address",
		"driverLicense",
		"employmentStatus",
		"income",
		"carValue",
		"depositAmount",
		"loanAmount"
	],
	"properties": {
		"name":             {"type": "string", "minLength": 1},
		"dateOfBirth":      {"type": "string"},
		"address":          {"type": "string"},
		"driverLicense":    {"type": "string"},
		"employmentStatus": {"type": "string"},
		"income":           {"type": "number", "minimum": 0},
		"carValue":         {"type": "number", "minimum": 0},
		"depositAmount":    {"type": "number", "minimum": 0},
		"loanAmount":       {"type": "number"}
	}
}`
