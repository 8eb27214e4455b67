// Package catalog holds the static object and system templates the studio
// can instantiate. Templates are pure data: looking them up or searching
// them never touches scene state.
package catalog

import "strings"

// match is the search predicate: case-insensitive substring over name and
// description, exact match over category tags.
func match(query, name, description string, categories []string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return true
	}
	if strings.Contains(strings.ToLower(name), q) {
		return true
	}
	if strings.Contains(strings.ToLower(description), q) {
		return true
	}
	for _, c := range categories {
		if strings.EqualFold(c, q) {
			return true
		}
	}
	return false
}

func hasCategory(categories []string, tag string) bool {
	for _, c := range categories {
		if strings.EqualFold(c, tag) {
			return true
		}
	}
	return false
}

// SearchBodies returns body templates matching the query.
func SearchBodies(query string) []BodyTemplate {
	var out []BodyTemplate
	for _, t := range Bodies() {
		if match(query, t.Name, t.Description, t.Categories) {
			out = append(out, t)
		}
	}
	return out
}

// SearchSystems returns system templates matching the query.
func SearchSystems(query string) []SystemTemplate {
	var out []SystemTemplate
	for _, t := range Systems() {
		if match(query, t.Name, t.Description, t.Categories) {
			out = append(out, t)
		}
	}
	return out
}

// BodiesByCategory filters body templates by category tag.
func BodiesByCategory(tag string) []BodyTemplate {
	var out []BodyTemplate
	for _, t := range Bodies() {
		if hasCategory(t.Categories, tag) {
			out = append(out, t)
		}
	}
	return out
}

// SystemsByCategory filters system templates by category tag.
func SystemsByCategory(tag string) []SystemTemplate {
	var out []SystemTemplate
	for _, t := range Systems() {
		if hasCategory(t.Categories, tag) {
			out = append(out, t)
		}
	}
	return out
}

// BodyByID looks up a body template.
func BodyByID(id string) (BodyTemplate, bool) {
	for _, t := range Bodies() {
		if t.ID == id {
			return t, true
		}
	}
	return BodyTemplate{}, false
}

// SystemByID looks up a system template.
func SystemByID(id string) (SystemTemplate, bool) {
	for _, t := range Systems() {
		if t.ID == id {
			return t, true
		}
	}
	return SystemTemplate{}, false
}
