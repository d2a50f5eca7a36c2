// Package auth holds the authorization predicate for restricted tools.
package auth

// Authorizer reports whether a caller identity may use a restricted tool.
type Authorizer interface {
	Allowed(callerID string) bool
}

// AllowList authorizes callers by exact identity match.
type AllowList struct {
	members map[string]struct{}
}

// NewAllowList builds an AllowList from the given identities. An empty list
// authorizes nobody.
func NewAllowList(ids []string) *AllowList {
	members := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		members[id] = struct{}{}
	}
	return &AllowList{members: members}
}

// Allowed reports whether callerID is on the list. An empty identity is
// never authorized.
func (a *AllowList) Allowed(callerID string) bool {
	if callerID == "" {
		return false
	}
	_, ok := a.members[callerID]
	return ok
}
