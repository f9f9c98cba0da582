package domain

import "time"

// AuthAction identifies what happened at the authentication boundary.
type AuthAction string

const (
	ActionRegister    AuthAction = "register"
	ActionLogin       AuthAction = "login"
	ActionLoginFailed AuthAction = "login_failed"
	ActionLogout      AuthAction = "logout"
)

// AuthEvent is an audit record of an authentication boundary event. Events
// are written asynchronously; losing one never fails the request that
// produced it.
type AuthEvent struct {
	UserID string
	Email  string
	Action AuthAction
	At     time.Time
}
