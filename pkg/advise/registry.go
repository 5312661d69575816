package advise

import (
	"cmp"
	"slices"
	"sync"

	"github.com/yaklabco/mdslice/pkg/parser"
)

// Registry holds advisory rules by ID and by name.
type Registry struct {
	mu     sync.RWMutex
	byID   map[string]Rule
	byName map[string]Rule
}

// NewRegistry creates an empty rule registry.
func NewRegistry() *Registry {
	return &Registry{
		byID:   make(map[string]Rule),
		byName: make(map[string]Rule),
	}
}

// Register adds a rule to the registry.
// If a rule with the same ID already exists, it is replaced.
func (r *Registry) Register(rule Rule) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[rule.ID()] = rule
	r.byName[rule.Name()] = rule
}

// Resolve returns the canonical ID and rule for a rule ID or name.
func (r *Registry) Resolve(key string) (string, Rule, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if rule, ok := r.byID[key]; ok {
		return rule.ID(), rule, true
	}
	if rule, ok := r.byName[key]; ok {
		return rule.ID(), rule, true
	}
	return "", nil, false
}

// Rules returns all registered rules sorted by ID.
func (r *Registry) Rules() []Rule {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]Rule, 0, len(r.byID))
	for _, rule := range r.byID {
		result = append(result, rule)
	}

	slices.SortFunc(result, func(a, b Rule) int {
		return cmp.Compare(a.ID(), b.ID())
	})
	return result
}

// DefaultRegistry holds the built-in rules.
//
//nolint:gochecknoglobals // Global registry is intentional for rule registration
var DefaultRegistry = NewRegistry()

// BaseRule provides the metadata half of the Rule interface.
// Embed it in rule implementations and add a Check method.
type BaseRule struct {
	id       string
	name     string
	desc     string
	severity parser.Severity
}

// NewBaseRule creates a BaseRule with the given properties.
func NewBaseRule(id, name, desc string, severity parser.Severity) BaseRule {
	return BaseRule{id: id, name: name, desc: desc, severity: severity}
}

// ID returns the unique identifier for this rule.
func (r *BaseRule) ID() string {
	return r.id
}

// Name returns the human-readable name of the rule.
func (r *BaseRule) Name() string {
	return r.name
}

// Description returns what the rule reports.
func (r *BaseRule) Description() string {
	return r.desc
}

// Severity returns the severity of the rule's diagnostics.
func (r *BaseRule) Severity() parser.Severity {
	return r.severity
}
