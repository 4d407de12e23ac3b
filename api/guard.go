package api

import (
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Alerter shows a blocking, user-visible message. The view layer supplies the
// implementation; tests record calls.
type Alerter interface {
	Alert(message string)
}

// AlerterFunc adapts a plain function to the Alerter interface.
type AlerterFunc func(string)

func (f AlerterFunc) Alert(message string) { f(message) }

const (
	sessionExpiredMessage = "Your session has expired. Please log in again."
	serverProblemMessage  = "A temporary server problem occurred. Please try again."
	noResponseMessage     = "Could not reach the server. Check your connection."

	// logoutCooldown keeps a burst of failing requests from forcing logout
	// more than once. Cleared by time, not by request count.
	logoutCooldown = 1500 * time.Millisecond
)

type guardState int

const (
	guardIdle guardState = iota
	guardLoggingOut
)

// ExpiryGuard centralizes authentication-failure handling for every endpoint
// except the pre-auth routes. It is the single point of truth for "you are no
// longer authenticated": individual actions never special-case 401/403.
type ExpiryGuard struct {
	alert  Alerter
	logout func()
	nowFn  func() time.Time
	logger zerolog.Logger

	lock      sync.Mutex
	state     guardState
	enteredAt time.Time
}

// GuardOption modifies an ExpiryGuard.
type GuardOption func(*ExpiryGuard)

// WithNowFunc sets the guard's clock (primarily for testing the cooldown).
func WithNowFunc(nowFn func() time.Time) GuardOption {
	return func(g *ExpiryGuard) {
		g.nowFn = nowFn
	}
}

// WithGuardLogger sets the guard's logger.
func WithGuardLogger(logger zerolog.Logger) GuardOption {
	return func(g *ExpiryGuard) {
		g.logger = logger
	}
}

// NewExpiryGuard creates a guard that alerts through alert and forces logout
// through logout. The logout hook may be set later with SetLogout when the
// store is constructed after the client.
func NewExpiryGuard(alert Alerter, logout func(), options ...GuardOption) *ExpiryGuard {
	g := &ExpiryGuard{
		alert:  alert,
		logout: logout,
		nowFn:  time.Now,
		logger: zerolog.Nop(),
	}
	for _, opt := range options {
		opt(g)
	}
	return g
}

// SetLogout wires the forced-logout hook. Must be called before the first
// request when the guard was built without one.
func (g *ExpiryGuard) SetLogout(logout func()) {
	g.lock.Lock()
	defer g.lock.Unlock()
	g.logout = logout
}

// NoResponse handles a transport failure: blocking alert, then the error is
// propagated so the caller still runs its own failure branch.
func (g *ExpiryGuard) NoResponse(path string, err error) error {
	g.logger.Error().Err(err).Str("path", path).Msg("no response from server")
	g.alertMsg(noResponseMessage)
	return err
}

func (g *ExpiryGuard) alertMsg(message string) {
	if g.alert != nil {
		g.alert.Alert(message)
	}
}

// Classify reacts to a non-2xx response and decides what the caller sees.
//
//   - Pre-auth routes pass through untouched.
//   - 401/403 anywhere else is session expiry: one blocking alert, one forced
//     logout, and ErrSessionExpired back to the caller. While a forced logout
//     is in flight (and for the cooldown after), further expiries get
//     ErrSessionExpired without a second alert or logout.
//   - Any other status alerts generically and passes the error through.
func (g *ExpiryGuard) Classify(path string, apiErr *Error) error {
	if isPreAuthRoute(path) {
		return apiErr
	}

	if apiErr.Status != 401 && apiErr.Status != 403 {
		g.logger.Error().Int("status", apiErr.Status).Str("path", path).Msg("server error")
		g.alertMsg(serverProblemMessage)
		return apiErr
	}

	// Login handles its own 401s. Unreachable given the pre-auth check above,
	// kept so the invariant does not depend on the route table.
	if path == RouteUserLogin {
		return apiErr
	}

	if !g.enterLoggingOut() {
		return ErrSessionExpired
	}

	g.logger.Warn().Int("status", apiErr.Status).Str("path", path).Msg("session expired, forcing logout")
	g.alertMsg(sessionExpiredMessage)
	if g.logout != nil {
		// Side effects run outside the lock: the logout itself may hit the
		// backend and come straight back through Classify.
		g.logout()
	}
	return ErrSessionExpired
}

// enterLoggingOut reports whether this failure starts a forced-logout cycle.
// False means one is already in flight or still cooling down.
func (g *ExpiryGuard) enterLoggingOut() bool {
	g.lock.Lock()
	defer g.lock.Unlock()

	now := g.nowFn()
	if g.state == guardLoggingOut && now.Sub(g.enteredAt) < logoutCooldown {
		return false
	}
	g.state = guardLoggingOut
	g.enteredAt = now
	return true
}
