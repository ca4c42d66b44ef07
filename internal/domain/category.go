package domain

import "strings"

// CategoryID is the stable internal identifier of a canonical category.
// Parsing and classification key on the ID; the marker and name are
// presentation.
type CategoryID string

const (
	CategoryPriority      CategoryID = "priority"
	CategoryCommunication CategoryID = "communication"
	CategoryPersonal      CategoryID = "personal"
	CategoryWork          CategoryID = "work"
)

// Category pairs a canonical ID with its display marker and name.
type Category struct {
	ID     CategoryID
	Marker string
	Name   string
}

// Label returns the plan key for the category, e.g. "🎯 Priority Tasks".
func (c Category) Label() string {
	return c.Marker + " " + c.Name
}

var canonicalCategories = []Category{
	{ID: CategoryPriority, Marker: "🎯", Name: "Priority Tasks"},
	{ID: CategoryCommunication, Marker: "📨", Name: "Communication"},
	{ID: CategoryPersonal, Marker: "🛒", Name: "Personal"},
	{ID: CategoryWork, Marker: "💼", Name: "Work"},
}

// Markers recognised as category headers in free text on top of the
// canonical ones. Models often invent home and study sections.
var extraHeaderMarkers = []string{"🏠", "📚"}

// CanonicalCategories returns the fixed category table in display order.
// The returned slice is a copy.
func CanonicalCategories() []Category {
	out := make([]Category, len(canonicalCategories))
	copy(out, canonicalCategories)
	return out
}

// CategoryByID looks up a canonical category.
func CategoryByID(id CategoryID) (Category, bool) {
	for _, c := range canonicalCategories {
		if c.ID == id {
			return c, true
		}
	}
	return Category{}, false
}

// DefaultHeaderMarkers returns the markers that identify a category header
// line: the canonical markers followed by the extra header markers.
func DefaultHeaderMarkers() []string {
	markers := make([]string, 0, len(canonicalCategories)+len(extraHeaderMarkers))
	for _, c := range canonicalCategories {
		markers = append(markers, c.Marker)
	}
	return append(markers, extraHeaderMarkers...)
}

// ContainsAnyMarker reports whether line contains at least one of markers.
func ContainsAnyMarker(line string, markers []string) bool {
	for _, m := range markers {
		if m != "" && strings.Contains(line, m) {
			return true
		}
	}
	return false
}
