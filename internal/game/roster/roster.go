package roster

import (
	"fmt"
	"sort"
	"strings"

	"github.com/cory-johannsen/brawl/internal/game/dice"
)

// Roster is an immutable, id-indexed set of fighter templates.
type Roster struct {
	byID map[string]*Template
	ids  []string
}

// New indexes templates by id.
//
// Precondition: templates must be non-empty with unique ids.
// Postcondition: Returns a Roster whose IDs are sorted, or an error.
func New(templates []*Template) (*Roster, error) {
	if len(templates) == 0 {
		return nil, fmt.Errorf("roster: no fighters")
	}
	r := &Roster{byID: make(map[string]*Template, len(templates))}
	for _, t := range templates {
		if _, dup := r.byID[t.ID]; dup {
			return nil, fmt.Errorf("roster: duplicate fighter id %q", t.ID)
		}
		r.byID[t.ID] = t
		r.ids = append(r.ids, t.ID)
	}
	sort.Strings(r.ids)
	return r, nil
}

// Load reads every fighter in dir and indexes them.
func Load(dir string) (*Roster, error) {
	templates, err := LoadTemplates(dir)
	if err != nil {
		return nil, err
	}
	return New(templates)
}

// Get returns the template with the given id.
func (r *Roster) Get(id string) (*Template, bool) {
	t, ok := r.byID[id]
	return t, ok
}

// Find resolves query against ids first, then display names, ignoring case.
func (r *Roster) Find(query string) (*Template, error) {
	q := strings.ToLower(strings.TrimSpace(query))
	if t, ok := r.byID[q]; ok {
		return t, nil
	}
	for _, id := range r.ids {
		if strings.EqualFold(r.byID[id].Name, q) {
			return r.byID[id], nil
		}
	}
	return nil, fmt.Errorf("roster: no fighter matches %q (known: %s)", query, strings.Join(r.ids, ", "))
}

// IDs returns fighter ids in sorted order.
func (r *Roster) IDs() []string {
	out := make([]string, len(r.ids))
	copy(out, r.ids)
	return out
}

// Names returns display names in id order.
func (r *Roster) Names() []string {
	out := make([]string, len(r.ids))
	for i, id := range r.ids {
		out[i] = r.byID[id].Name
	}
	return out
}

// Len returns the number of fighters.
func (r *Roster) Len() int { return len(r.ids) }

// Random picks a fighter uniformly.
//
// Precondition: src must be non-nil.
func (r *Roster) Random(src dice.Source) *Template {
	return r.byID[dice.Pick(src, r.ids)]
}
