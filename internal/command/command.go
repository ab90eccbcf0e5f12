// Package command implements the command registry spec.md §6 names: an
// external collaborator registers (id, label, category, handler), and the
// command palette routes a selected id back to its handler. Grounded on
// the teacher's bridge command allow-listing shape (internal/config's
// AllowedCommands validation), generalized from a string allow-list into a
// full id -> handler registry the palette dispatches through.
package command

import "sort"

// Command is one entry an external collaborator (e.g. an extension) has
// registered with the palette.
type Command struct {
	ID       string
	Label    string
	Category string
	Handler  func()
}

// Registry holds registered commands, keyed by ID.
type Registry struct {
	byID map[string]Command
}

// New creates an empty Registry.
func New() *Registry {
	return &Registry{byID: make(map[string]Command)}
}

// Register adds or replaces the command with id cmd.ID.
func (r *Registry) Register(cmd Command) {
	r.byID[cmd.ID] = cmd
}

// Unregister removes a previously registered command, if present.
func (r *Registry) Unregister(id string) {
	delete(r.byID, id)
}

// Dispatch invokes the handler registered under id, returning false if no
// such command exists (a stale palette selection after Unregister, say).
func (r *Registry) Dispatch(id string) bool {
	cmd, ok := r.byID[id]
	if !ok || cmd.Handler == nil {
		return false
	}
	cmd.Handler()
	return true
}

// List returns all registered commands sorted by Category then Label, the
// order the command palette renders them in.
func (r *Registry) List() []Command {
	out := make([]Command, 0, len(r.byID))
	for _, c := range r.byID {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Category != out[j].Category {
			return out[i].Category < out[j].Category
		}
		return out[i].Label < out[j].Label
	})
	return out
}
