package agent

import (
	"github.com/cockroachdb/errors"

	srerrors "github.com/ruleshub/sr/internal/errors"
)

// agents holds the supported agent set keyed by name.
// The set is static; new agents are added here at compile time.
var agents = map[string]Agent{
	NameCursor:   cursorAgent{},
	NameClaude:   markdownAgent{name: NameClaude, dir: ".claude/rules"},
	NameCopilot:  markdownAgent{name: NameCopilot, dir: ".github/rules"},
	NameOpenCode: markdownAgent{name: NameOpenCode, dir: ".opencode/rules"},
	NameGemini:   markdownAgent{name: NameGemini, dir: ".gemini/rules"},
}

// order fixes the deterministic iteration order for All and Names.
var order = []string{NameCursor, NameClaude, NameCopilot, NameOpenCode, NameGemini}

// Valid reports whether name is a supported agent.
func Valid(name string) bool {
	_, ok := agents[name]
	return ok
}

// Lookup returns the agent with the given name.
// Returns srerrors.ErrUnknownAgent for unsupported names.
func Lookup(name string) (Agent, error) {
	a, ok := agents[name]
	if !ok {
		return nil, errors.Wrapf(srerrors.ErrUnknownAgent, "%q", name)
	}
	return a, nil
}

// All returns every supported agent in deterministic order.
func All() []Agent {
	out := make([]Agent, 0, len(order))
	for _, name := range order {
		out = append(out, agents[name])
	}
	return out
}

// Names returns every supported agent name in deterministic order.
func Names() []string {
	out := make([]string, len(order))
	copy(out, order)
	return out
}
