package domain

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

const (
	// DefaultTimeEstimate is used when a task carries no recognisable duration.
	DefaultTimeEstimate = "30 min"

	// DefaultTotalTime is the total of a plan nobody has budgeted yet.
	DefaultTotalTime = "0 hours"
)

// TaskEntry is a single task with its free-form duration.
type TaskEntry struct {
	Task         string `json:"task" yaml:"task"`
	TimeEstimate string `json:"time_estimate" yaml:"time_estimate"`
}

// ScheduleSlot is one line of the suggested schedule.
type ScheduleSlot struct {
	Time string `json:"time"`
	Task string `json:"task"`
}

// CategoryTasks is one category label and the tasks filed under it.
type CategoryTasks struct {
	Label string
	Tasks []TaskEntry
}

// Categories is an insertion-ordered mapping from category label to tasks.
// It serialises as a JSON object whose keys keep that order.
type Categories []CategoryTasks

// Plan is the structured result of turning free text into a day.
type Plan struct {
	Categories         Categories     `json:"categories"`
	SuggestedSchedule  []ScheduleSlot `json:"suggested_schedule"`
	TotalEstimatedTime string         `json:"total_estimated_time"`
}

// NewPlan returns an empty plan with non-nil collections and the default total.
func NewPlan() *Plan {
	return &Plan{
		Categories:         Categories{},
		SuggestedSchedule:  []ScheduleSlot{},
		TotalEstimatedTime: DefaultTotalTime,
	}
}

// Index returns the position of label, or -1.
func (c Categories) Index(label string) int {
	for i, ct := range c {
		if ct.Label == label {
			return i
		}
	}
	return -1
}

// Get returns the tasks filed under label.
func (c Categories) Get(label string) ([]TaskEntry, bool) {
	if i := c.Index(label); i >= 0 {
		return c[i].Tasks, true
	}
	return nil, false
}

// Labels returns the category labels in order.
func (c Categories) Labels() []string {
	labels := make([]string, len(c))
	for i, ct := range c {
		labels[i] = ct.Label
	}
	return labels
}

// Set replaces the tasks under label. A new label is appended; an existing
// one keeps its position.
func (c *Categories) Set(label string, tasks []TaskEntry) {
	if tasks == nil {
		tasks = []TaskEntry{}
	}
	if i := c.Index(label); i >= 0 {
		(*c)[i].Tasks = tasks
		return
	}
	*c = append(*c, CategoryTasks{Label: label, Tasks: tasks})
}

// Append adds a task under label, registering the label if needed.
func (c *Categories) Append(label string, entry TaskEntry) {
	i := c.Index(label)
	if i < 0 {
		*c = append(*c, CategoryTasks{Label: label, Tasks: []TaskEntry{}})
		i = len(*c) - 1
	}
	(*c)[i].Tasks = append((*c)[i].Tasks, entry)
}

// TaskCount returns the number of tasks across all categories.
func (c Categories) TaskCount() int {
	n := 0
	for _, ct := range c {
		n += len(ct.Tasks)
	}
	return n
}

func (c Categories) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, ct := range c {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(ct.Label)
		if err != nil {
			return nil, err
		}
		tasks := ct.Tasks
		if tasks == nil {
			tasks = []TaskEntry{}
		}
		val, err := json.Marshal(tasks)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (c *Categories) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		*c = Categories{}
		return nil
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("categories must be a JSON object, got %v", tok)
	}

	out := Categories{}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		label, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("unexpected category key %v", keyTok)
		}
		var tasks []TaskEntry
		if err := dec.Decode(&tasks); err != nil {
			return fmt.Errorf("category %q: %w", label, err)
		}
		out.Set(label, tasks)
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	*c = out
	return nil
}

var (
	ErrEmptyTask         = errors.New("task text is empty")
	ErrEmptyTimeEstimate = errors.New("time estimate is empty")
)

// Validate checks that every task has text and a time estimate.
func (p *Plan) Validate() error {
	for _, ct := range p.Categories {
		for i, t := range ct.Tasks {
			if strings.TrimSpace(t.Task) == "" {
				return fmt.Errorf("category %q task %d: %w", ct.Label, i, ErrEmptyTask)
			}
			if strings.TrimSpace(t.TimeEstimate) == "" {
				return fmt.Errorf("category %q task %d: %w", ct.Label, i, ErrEmptyTimeEstimate)
			}
		}
	}
	return nil
}
