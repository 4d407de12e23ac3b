// Package spaces defines the workspace ("space") model shared by the session
// store and the view layer. A space is the tenant boundary: templates and
// contacts belong to exactly one space and never leak across it.
package spaces

import (
	"sort"
	"strings"
)

// Authority is the caller's role within a space.
type Authority string

const (
	AuthorityAdmin  Authority = "ADMIN"
	AuthorityMember Authority = "MEMBER"
)

// Space is one workspace the logged-in user belongs to. Color is derived
// client-side from the space id and is never sent by the server.
type Space struct {
	SpaceID   int       `json:"spaceId"`
	SpaceName string    `json:"spaceName"`
	Authority Authority `json:"authority"`
	Color     string    `json:"color"`
}

// Palette holds the fixed display colors assigned to spaces. The assignment
// must stay stable across sessions, so colors are a pure function of the
// space id rather than server state.
var Palette = []string{
	"#7C3AED", // violet
	"#2563EB", // blue
	"#0D9488", // teal
	"#16A34A", // green
	"#CA8A04", // amber
	"#EA580C", // orange
	"#DC2626", // red
	"#DB2777", // pink
}

// ColorFor maps a space id onto the palette. Ids wrap modulo the palette
// size; non-positive ids fall back to the first entry.
func ColorFor(spaceID int) string {
	if spaceID <= 0 {
		return Palette[0]
	}
	return Palette[(spaceID-1)%len(Palette)]
}

// WithColors returns a copy of the slice with Color filled in for each space.
func WithColors(list []Space) []Space {
	out := make([]Space, len(list))
	for i, s := range list {
		s.Color = ColorFor(s.SpaceID)
		out[i] = s
	}
	return out
}

// SortedByName returns a copy sorted by space name ascending. Display order
// only; the store keeps the server's order for the canonical slice.
func SortedByName(list []Space) []Space {
	out := make([]Space, len(list))
	copy(out, list)
	sort.SliceStable(out, func(i, j int) bool {
		return strings.Compare(out[i].SpaceName, out[j].SpaceName) < 0
	})
	return out
}

// Contains reports whether the slice holds a space with the given id.
func Contains(list []Space, spaceID int) bool {
	for _, s := range list {
		if s.SpaceID == spaceID {
			return true
		}
	}
	return false
}
