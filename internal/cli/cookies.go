package cli

import (
	"encoding/json"
	"net/http"
	"os"
)

// persistedCookie is the subset of cookie fields worth keeping between
// invocations.
type persistedCookie struct {
	Name  string `json:"name"`
	Value string `json:"value"`
	Path  string `json:"path,omitempty"`
}

// restoreCookies seeds the client's jar from the cookie file, standing in for
// the browser cookie store a long-lived client would have.
func (a *App) restoreCookies() {
	data, err := os.ReadFile(a.cfg.CookieFile())
	if err != nil {
		return // first run
	}
	var stored []persistedCookie
	if err := json.Unmarshal(data, &stored); err != nil {
		a.logger.Warn().Err(err).Msg("discarding unreadable cookie file")
		return
	}
	cookies := make([]*http.Cookie, len(stored))
	for i, c := range stored {
		cookies[i] = &http.Cookie{Name: c.Name, Value: c.Value, Path: c.Path}
	}
	a.client.SetCookies(cookies)
}

func (a *App) persistCookies() {
	cookies := a.client.Cookies()
	stored := make([]persistedCookie, len(cookies))
	for i, c := range cookies {
		stored[i] = persistedCookie{Name: c.Name, Value: c.Value, Path: c.Path}
	}
	data, err := json.Marshal(stored)
	if err != nil {
		return
	}
	if err := os.WriteFile(a.cfg.CookieFile(), data, 0o600); err != nil {
		a.logger.Warn().Err(err).Msg("failed to persist session cookies")
	}
}
