// Package permission implements the capability set carried by an
// authenticated principal. Grants are loaded from the database at login and
// travel inside the JWT, so checks are pure set membership with no further
// database access.
package permission

// Known permission modules.
const (
	ModulePrices        = "prices"
	ModuleInquiries     = "inquiries"
	ModuleAnnouncements = "announcements"
	ModuleBusinessTypes = "business_types"
	ModuleUsers         = "users"
	ModuleSettings      = "settings"
)

// Known permission actions.
const (
	ActionView   = "view"
	ActionCreate = "create"
	ActionUpdate = "update"
	ActionDelete = "delete"
	ActionExport = "export"
)

// Grant is a single (module, action) capability.
type Grant struct {
	Module string `json:"module"`
	Action string `json:"action"`
}

// Set is a principal's capability set.
type Set struct {
	grants map[Grant]struct{}
}

// NewSet builds a Set from a grant list. Duplicates collapse.
func NewSet(grants []Grant) *Set {
	s := &Set{grants: make(map[Grant]struct{}, len(grants))}
	for _, g := range grants {
		s.grants[g] = struct{}{}
	}
	return s
}

// Has reports whether the set contains the (module, action) capability.
func (s *Set) Has(module, action string) bool {
	if s == nil {
		return false
	}
	_, ok := s.grants[Grant{Module: module, Action: action}]
	return ok
}

// Grants returns the grants as a list, for serialization.
func (s *Set) Grants() []Grant {
	if s == nil {
		return nil
	}
	out := make([]Grant, 0, len(s.grants))
	for g := range s.grants {
		out = append(out, g)
	}
	return out
}

// Len returns the number of distinct grants.
func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	return len(s.grants)
}
