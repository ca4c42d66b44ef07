package planner

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/taskflow/internal/domain"
	"github.com/alexanderramin/taskflow/internal/llm"
)

// PlanSource names the layer that produced a plan.
type PlanSource string

const (
	// SourceStructured plans were decoded from a JSON payload in the model reply.
	SourceStructured PlanSource = "llm_structured"
	// SourceText plans were recovered line by line from a non-JSON model reply.
	SourceText PlanSource = "llm_text"
	// SourceKeyword plans come from the offline keyword classifier.
	SourceKeyword PlanSource = "keyword_fallback"
)

// bulletPrefixes start a task line in free-text replies.
var bulletPrefixes = []string{"-", "•"}

// Interpreter recovers plans from raw model replies.
type Interpreter struct {
	markers []string
}

// NewInterpreter creates an Interpreter that recognises category headers by
// markers. A nil or empty slice selects domain.DefaultHeaderMarkers.
func NewInterpreter(markers []string) *Interpreter {
	if len(markers) == 0 {
		markers = domain.DefaultHeaderMarkers()
	}
	return &Interpreter{markers: markers}
}

// Interpret decodes the JSON payload embedded in raw and falls back to line
// parsing when there is none or it does not decode.
func (i *Interpreter) Interpret(raw string) (*domain.Plan, PlanSource) {
	if plan, err := ParseStructured(raw); err == nil {
		return plan, SourceStructured
	}
	return ParseText(raw, i.markers), SourceText
}

// ParseStructured decodes the text between the first '{' and the last '}' of
// raw as a plan. Fields are coerced individually: missing fields take their
// defaults, while fields of the wrong JSON type fail the whole decode.
// Category labels are taken as given.
func ParseStructured(raw string) (*domain.Plan, error) {
	payload, err := llm.ExtractOutermostObject(raw)
	if err != nil {
		return nil, err
	}
	fields, err := llm.DecodeObject([]byte(payload))
	if err != nil {
		return nil, err
	}

	plan := domain.NewPlan()
	for _, f := range fields {
		switch f.Key {
		case "categories":
			cats, err := decodeCategories(f.Value)
			if err != nil {
				return nil, err
			}
			plan.Categories = cats
		case "suggested_schedule":
			slots, err := decodeSchedule(f.Value)
			if err != nil {
				return nil, err
			}
			plan.SuggestedSchedule = slots
		case "total_estimated_time":
			var v any
			if err := json.Unmarshal(f.Value, &v); err != nil {
				return nil, fmt.Errorf("%w: total_estimated_time: %v", llm.ErrInvalidOutput, err)
			}
			switch v.(type) {
			case nil, string, float64:
			default:
				return nil, fmt.Errorf("%w: total_estimated_time must be a string", llm.ErrInvalidOutput)
			}
			if total := scalarString(v); total != "" {
				plan.TotalEstimatedTime = total
			}
		}
	}
	return plan, nil
}

func decodeCategories(raw json.RawMessage) (domain.Categories, error) {
	cats := domain.Categories{}
	if isJSONNull(raw) {
		return cats, nil
	}
	fields, err := llm.DecodeObject(raw)
	if err != nil {
		return nil, fmt.Errorf("categories: %w", err)
	}
	for _, f := range fields {
		var items []any
		if err := json.Unmarshal(f.Value, &items); err != nil {
			return nil, fmt.Errorf("%w: category %q must be a list", llm.ErrInvalidOutput, f.Key)
		}
		tasks := make([]domain.TaskEntry, 0, len(items))
		for _, item := range items {
			if entry, ok := coerceTaskEntry(item); ok {
				tasks = append(tasks, entry)
			}
		}
		cats.Set(f.Key, tasks)
	}
	return cats, nil
}

// coerceTaskEntry accepts {"task", "time_estimate"} objects and bare strings.
// Entries without task text are dropped.
func coerceTaskEntry(item any) (domain.TaskEntry, bool) {
	var task, estimate string
	switch v := item.(type) {
	case map[string]any:
		task = scalarString(v["task"])
		estimate = scalarString(v["time_estimate"])
	case string:
		task = strings.TrimSpace(v)
	default:
		return domain.TaskEntry{}, false
	}
	if task == "" {
		return domain.TaskEntry{}, false
	}
	if estimate == "" {
		estimate = ExtractTimeEstimate(task)
	}
	return domain.TaskEntry{Task: task, TimeEstimate: estimate}, true
}

func decodeSchedule(raw json.RawMessage) ([]domain.ScheduleSlot, error) {
	slots := []domain.ScheduleSlot{}
	if isJSONNull(raw) {
		return slots, nil
	}
	var items []any
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("%w: suggested_schedule must be a list", llm.ErrInvalidOutput)
	}
	for _, item := range items {
		m, ok := item.(map[string]any)
		if !ok {
			continue
		}
		slot := domain.ScheduleSlot{
			Time: scalarString(m["time"]),
			Task: scalarString(m["task"]),
		}
		if slot.Time == "" && slot.Task == "" {
			continue
		}
		slots = append(slots, slot)
	}
	return slots, nil
}

func scalarString(v any) string {
	switch s := v.(type) {
	case string:
		return strings.TrimSpace(s)
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	default:
		return ""
	}
}

func isJSONNull(raw json.RawMessage) bool {
	return strings.TrimSpace(string(raw)) == "null"
}

// ParseText recovers categories from a free-text reply. A line containing
// one of markers opens a category named by the text before its first colon;
// bulleted lines below it become tasks. Bullets before the first header and
// all other lines are ignored, and the schedule and total keep their
// defaults. A repeated header starts its category over.
func ParseText(text string, markers []string) *domain.Plan {
	plan := domain.NewPlan()
	current := ""

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if domain.ContainsAnyMarker(line, markers) {
			label, _, _ := strings.Cut(line, ":")
			current = strings.TrimSpace(label)
			if current != "" {
				plan.Categories.Set(current, nil)
			}
			continue
		}

		if current == "" {
			continue
		}
		task, ok := stripBullet(line)
		if !ok || task == "" {
			continue
		}
		plan.Categories.Append(current, domain.TaskEntry{
			Task:         task,
			TimeEstimate: ExtractTimeEstimate(task),
		})
	}
	return plan
}

func stripBullet(line string) (string, bool) {
	for _, p := range bulletPrefixes {
		if rest, ok := strings.CutPrefix(line, p); ok {
			return strings.TrimSpace(rest), true
		}
	}
	return "", false
}
