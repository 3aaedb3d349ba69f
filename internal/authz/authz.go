// Package authz decides whether an actor may run privileged operations.
// The policy is injected configuration, not a hard-coded role snowflake,
// so commands stay testable and per-deployment configurable.
package authz

// Policy evaluates an actor's granted roles against a required set.
type Policy interface {
	Allowed(actorRoles []string) bool
}

// RoleSet permits actors holding at least one of the listed role IDs.
// An empty set denies everyone, which is the safe default for a
// misconfigured deployment.
type RoleSet map[string]struct{}

func NewRoleSet(roleIDs ...string) RoleSet {
	set := make(RoleSet, len(roleIDs))
	for _, id := range roleIDs {
		if id != "" {
			set[id] = struct{}{}
		}
	}
	return set
}

func (s RoleSet) Allowed(actorRoles []string) bool {
	for _, r := range actorRoles {
		if _, ok := s[r]; ok {
			return true
		}
	}
	return false
}

// AllowAll is for surfaces that carry their own authentication, like the
// dashboard behind its session check.
type AllowAll struct{}

func (AllowAll) Allowed([]string) bool { return true }
