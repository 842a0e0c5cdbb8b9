// Package identity abstracts who is playing. The game core only ever
// sees an opaque identifier and a display name; where they come from
// (a local profile, an SSH username) is a platform concern.
package identity

// Identity is the current player.
type Identity struct {
	ID       string // stable identifier, uuid for stored profiles
	Username string // leaderboard display name
}

// Provider yields the current identity, or reports that there is none.
// Anonymous sessions play without score persistence.
type Provider interface {
	Current() (Identity, bool)
}

// Static is a fixed identity, used for --user sessions and SSH sessions
// where the username comes from the connection itself.
type Static struct {
	Identity Identity
}

// Current implements Provider.
func (s Static) Current() (Identity, bool) {
	if s.Identity.Username == "" {
		return Identity{}, false
	}
	return s.Identity, true
}

// Anonymous is a provider with no identity.
type Anonymous struct{}

// Current implements Provider.
func (Anonymous) Current() (Identity, bool) { return Identity{}, false }
