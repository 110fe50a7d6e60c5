package compliance

import (
	"regexp"

	"github.com/invoiceflow/backend/internal/domain/shared"
)

// ScenarioCode identifies a tax-authority compliance scenario that must be
// reported on invoices matching certain activity/sector profiles. Codes are
// opaque tokens of the form "SN" followed by zero-padded digits, e.g. SN001.
type ScenarioCode string

var scenarioCodePattern = regexp.MustCompile(`^SN\d{3,}$`)

// IsWellFormed reports whether the code matches the SNxxx token pattern.
func (c ScenarioCode) IsWellFormed() bool {
	return scenarioCodePattern.MatchString(string(c))
}

// String returns the code token.
func (c ScenarioCode) String() string {
	return string(c)
}

// ParseScenarioCode validates and converts a raw token.
func ParseScenarioCode(raw string) (ScenarioCode, error) {
	code := ScenarioCode(raw)
	if !code.IsWellFormed() {
		return "", shared.NewDomainError("INVALID_SCENARIO_CODE", "Scenario code must match pattern SNxxx")
	}
	return code, nil
}
