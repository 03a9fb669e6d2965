package session

import (
	"notekeeper/internal/domain/credential"
	"notekeeper/internal/domain/user"
)

type State int

const (
	StateUninitialized State = iota
	StateAuthenticated
	StateUnauthenticated
)

func (s State) String() string {
	switch s {
	case StateAuthenticated:
		return "authenticated"
	case StateUnauthenticated:
		return "unauthenticated"
	default:
		return "uninitialized"
	}
}

// Session - снимок состояния. Аутентифицирован тот, у кого есть User.
type Session struct {
	State      State
	User       *user.User
	Credential credential.Credential
}

func (s Session) IsAuthenticated() bool {
	return s.User != nil
}

// Listener получает новый снимок после каждого перехода состояния
type Listener func(Session)
