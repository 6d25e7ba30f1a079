package rule

// CategoryFilter controls which rules from a category are selected.
type CategoryFilter struct {
	// Enabled gates the whole category. Disabled categories contribute
	// no rules regardless of include/exclude.
	Enabled bool

	// Include, when non-empty, restricts the category to these rule IDs.
	Include []string

	// Exclude removes rule IDs from the category. Exclude wins over
	// Include when an ID appears in both.
	Exclude []string
}

// Selection describes the full filter applied to a fetched rule set.
type Selection struct {
	// Categories maps category names to their filters. Categories not
	// present in the map are not selected.
	Categories map[string]CategoryFilter

	// Overrides lists rule IDs removed globally, across all categories.
	// These are rules the project maintains locally instead.
	Overrides []string
}

// Resolve computes the materialized rule set:
//
//	(rules in enabled categories)
//	∩ (category include, when specified)
//	− (category exclude)
//	− (global overrides)
//
// A rule ID present in both include and exclude is excluded. The result is
// sorted by category then id.
func Resolve(rules []Rule, sel Selection) []Rule {
	overridden := make(map[string]struct{}, len(sel.Overrides))
	for _, id := range sel.Overrides {
		overridden[id] = struct{}{}
	}

	var out []Rule
	for _, r := range rules {
		filter, ok := sel.Categories[r.Category]
		if !ok || !filter.Enabled {
			continue
		}
		if contains(filter.Exclude, r.ID) {
			continue
		}
		if len(filter.Include) > 0 && !contains(filter.Include, r.ID) {
			continue
		}
		if _, ok := overridden[r.ID]; ok {
			continue
		}
		out = append(out, r)
	}

	Sort(out)
	return out
}

func contains(ids []string, id string) bool {
	for _, candidate := range ids {
		if candidate == id {
			return true
		}
	}
	return false
}
