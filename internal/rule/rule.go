// Package rule defines rule documents and the set resolution that decides
// which rules are materialized for each agent.
package rule

import "sort"

// Rule is a markdown coding-standard document with YAML frontmatter,
// fetched from a registry. Rules are immutable once fetched and keyed
// by category + id.
type Rule struct {
	// ID uniquely identifies the rule within its category.
	ID string

	// Version is the rule's semantic version from frontmatter. May be empty.
	Version string

	// Description is a short human-readable summary. May be empty.
	Description string

	// Category is the registry subdirectory the rule was found in
	// (e.g. "go", "react", "typescript").
	Category string

	// Triggers lists keywords or file globs that activate the rule.
	Triggers []string

	// Body is the markdown content without the frontmatter block.
	Body []byte
}

// Key returns the category-qualified identifier, e.g. "go/error-handling".
func (r Rule) Key() string {
	return r.Category + "/" + r.ID
}

// Sort orders rules by category, then id. Resolution and sync output
// depend on this order being deterministic.
func Sort(rules []Rule) {
	sort.Slice(rules, func(i, j int) bool {
		if rules[i].Category != rules[j].Category {
			return rules[i].Category < rules[j].Category
		}
		return rules[i].ID < rules[j].ID
	})
}

// Categories returns the distinct categories present in rules, sorted.
func Categories(rules []Rule) []string {
	seen := make(map[string]struct{})
	for _, r := range rules {
		seen[r.Category] = struct{}{}
	}
	out := make([]string, 0, len(seen))
	for c := range seen {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}
