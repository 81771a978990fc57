// Package registry provides an explicit action catalog. Catalogs are plain
// objects constructed once and passed by reference, so multiple independent
// catalogs can coexist in one process.
package registry

import (
	"fmt"

	"github.com/kestrelworks/symbolic-planner/internal/action"
)

// #region catalog

// Catalog is an ordered action library keyed by action name.
type Catalog struct {
	ordered []*action.Action
	byName  map[string]*action.Action
}

// NewCatalog creates an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{byName: make(map[string]*action.Action)}
}

// Register adds an action. Re-registering a name replaces the previous
// entry while keeping its original position.
func (c *Catalog) Register(a *action.Action) error {
	if a == nil {
		return fmt.Errorf("register: nil action")
	}
	if a.Name == "" {
		return fmt.Errorf("register: action has no name")
	}
	if prev, ok := c.byName[a.Name]; ok {
		for i, existing := range c.ordered {
			if existing == prev {
				c.ordered[i] = a
				break
			}
		}
	} else {
		c.ordered = append(c.ordered, a)
	}
	c.byName[a.Name] = a
	return nil
}

// Lookup returns the action registered under name.
func (c *Catalog) Lookup(name string) (*action.Action, bool) {
	a, ok := c.byName[name]
	return a, ok
}

// ByType returns every registered action carrying the given type tag, in
// registration order.
func (c *Catalog) ByType(t action.Type) []*action.Action {
	var out []*action.Action
	for _, a := range c.ordered {
		if a.Type == t {
			out = append(out, a)
		}
	}
	return out
}

// List returns a snapshot of the catalog in registration order.
func (c *Catalog) List() []*action.Action {
	return append([]*action.Action(nil), c.ordered...)
}

// Len returns the number of registered actions.
func (c *Catalog) Len() int {
	return len(c.ordered)
}

// #endregion catalog
