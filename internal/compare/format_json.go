package compare

import (
	"encoding/json"

	"github.com/rgehrsitz/jptax/internal/domain"
)

// JSONFormatter renders comparison output as JSON
type JSONFormatter struct {
	Pretty bool
}

// Format renders a what-if comparison set
func (jf *JSONFormatter) Format(compSet *ComparisonSet) (string, error) {
	return jf.marshal(compSet)
}

// FormatLoanVsNisa renders a prepayment vs. investment result together with its horizon
func (jf *JSONFormatter) FormatLoanVsNisa(result domain.LoanVsNisaResult, years int) (string, error) {
	return jf.marshal(struct {
		Years int `json:"years"`
		domain.LoanVsNisaResult
	}{years, result})
}

func (jf *JSONFormatter) marshal(v any) (string, error) {
	marshal := json.Marshal
	if jf.Pretty {
		marshal = func(v any) ([]byte, error) { return json.MarshalIndent(v, "", "  ") }
	}
	data, err := marshal(v)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
