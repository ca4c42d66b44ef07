package planner

import (
	"regexp"

	"github.com/alexanderramin/taskflow/internal/domain"
)

// timeEstimatePattern matches a parenthesised duration such as "(2 hrs)",
// "(45min)" or "(1.5 Hour)".
var timeEstimatePattern = regexp.MustCompile(`(?i)\((\d+(?:\.\d+)?\s*(?:hr|hour|min|minute)s?)\)`)

// ExtractTimeEstimate returns the first parenthesised duration in task
// without its parentheses, or domain.DefaultTimeEstimate.
func ExtractTimeEstimate(task string) string {
	if m := timeEstimatePattern.FindStringSubmatch(task); m != nil {
		return m[1]
	}
	return domain.DefaultTimeEstimate
}
