package output

import "github.com/rgehrsitz/jptax/internal/domain"

// DefaultAssumptions lists the current rule set's assumptions, rendered when a report
// carries none of its own.
var DefaultAssumptions = domain.DefaultRuleSet().Assumptions()

func assumptionsOf(report *domain.Report) []string {
	if len(report.Assumptions) > 0 {
		return report.Assumptions
	}
	return DefaultAssumptions
}
