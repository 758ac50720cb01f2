package labels

import (
	"sort"

	"github.com/pkg/errors"
)

var (
	// ErrIndexOutOfRange is returned when a code has no label in its set.
	ErrIndexOutOfRange = errors.New("index out of range")
	// ErrConfigMissing is returned when no tables are registered for a project.
	ErrConfigMissing = errors.New("configuration missing")
)

// LabelSet is an ordered list of fixed-width labels indexed by code.
type LabelSet []string

// Label returns the label for code, padding included.
func (s LabelSet) Label(code int) (string, error) {
	if code < 0 || code >= len(s) {
		return "", errors.Wrapf(ErrIndexOutOfRange, "code %d not in [0,%d)", code, len(s))
	}
	return s[code], nil
}

// Tables bundles the label sets of one project.
// StateCodes is carried with the project but not rendered.
type Tables struct {
	Project    string
	Types      LabelSet
	Codes      LabelSet
	Details    LabelSet
	StateCodes LabelSet
}

// Registry maps project identifiers to their tables.
type Registry struct {
	projects map[string]*Tables
}

// NewRegistry returns a registry holding the built-in projects.
func NewRegistry() *Registry {
	r := &Registry{projects: make(map[string]*Tables)}
	for _, t := range builtin() {
		r.projects[t.Project] = t
	}
	return r
}

// Register adds a project. Names are case-sensitive and must be unique.
func (r *Registry) Register(t *Tables) error {
	if t == nil || t.Project == "" {
		return errors.New("project name is empty")
	}
	if _, exists := r.projects[t.Project]; exists {
		return errors.Errorf("project %q already registered", t.Project)
	}
	r.projects[t.Project] = t
	return nil
}

// Lookup returns the tables for a project.
func (r *Registry) Lookup(name string) (*Tables, bool) {
	t, ok := r.projects[name]
	return t, ok
}

// Names returns the registered project names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.projects))
	for n := range r.projects {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
