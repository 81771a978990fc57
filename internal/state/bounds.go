package state

import (
	"fmt"
	"slices"

	"github.com/kestrelworks/symbolic-planner/internal/predicate"
)

// #region veto

// Veto explains why a proposed merge was rejected by variable restrictions.
type Veto struct {
	Variable string
	Reason   string
}

// #endregion veto

// #region check-restrictions

// checkRestrictions validates a proposed merge against registered bounds and
// domains. Returns the first veto, or nil when the merge is acceptable.
func (e *Environment) checkRestrictions(merge map[string]any) *Veto {
	for name, value := range merge {
		v, ok := e.vars[name]
		if !ok {
			continue
		}

		if v.Bounds != nil {
			n, numOK := predicate.NumberForm(value)
			if !numOK {
				return &Veto{
					Variable: name,
					Reason:   fmt.Sprintf("%s: non-numeric value for bounded variable", name),
				}
			}
			if n < v.Bounds.Min || n > v.Bounds.Max {
				return &Veto{
					Variable: name,
					Reason: fmt.Sprintf("%s: value %v outside bounds [%v, %v]",
						name, n, v.Bounds.Min, v.Bounds.Max),
				}
			}
		}

		if len(v.Domain) > 0 {
			s, isStr := value.(string)
			if !isStr || !slices.Contains(v.Domain, s) {
				return &Veto{
					Variable: name,
					Reason:   fmt.Sprintf("%s: value %v not in domain %v", name, value, v.Domain),
				}
			}
		}
	}
	return nil
}

// #endregion check-restrictions
