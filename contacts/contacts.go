// Package contacts defines the contact model and the pure derivations the
// session store maintains over a space's contact list: the unique tag set,
// the tag-filtered view, and the multi-select set used for bulk actions.
package contacts

import "sort"

// Contact is one recipient entry scoped to a single space.
type Contact struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	PhoneNumber string `json:"phoneNumber"`
	Email       string `json:"email"`
	Tag         string `json:"tag"`
}

// AddPayload is the body for bulk-creating contacts in a space.
type AddPayload struct {
	SpaceID  int       `json:"spaceId"`
	Contacts []Contact `json:"contacts"`
}

// UniqueTags returns the sorted set of non-empty tag values across the list.
func UniqueTags(list []Contact) []string {
	seen := make(map[string]struct{})
	for _, c := range list {
		if c.Tag == "" {
			continue
		}
		seen[c.Tag] = struct{}{}
	}
	tags := make([]string, 0, len(seen))
	for t := range seen {
		tags = append(tags, t)
	}
	sort.Strings(tags)
	return tags
}

// FilterByTags returns the contacts whose tag is in the filter set. An empty
// filter means no filtering: every contact passes.
func FilterByTags(list []Contact, selectedTags []string) []Contact {
	if len(selectedTags) == 0 {
		out := make([]Contact, len(list))
		copy(out, list)
		return out
	}
	selected := make(map[string]struct{}, len(selectedTags))
	for _, t := range selectedTags {
		selected[t] = struct{}{}
	}
	out := make([]Contact, 0, len(list))
	for _, c := range list {
		if _, ok := selected[c.Tag]; ok {
			out = append(out, c)
		}
	}
	return out
}

// ToggleTag adds tag to the filter set if absent, removes it if present.
func ToggleTag(selectedTags []string, tag string) []string {
	out := make([]string, 0, len(selectedTags)+1)
	removed := false
	for _, t := range selectedTags {
		if t == tag {
			removed = true
			continue
		}
		out = append(out, t)
	}
	if !removed {
		out = append(out, tag)
	}
	return out
}

// ToggleID adds id to the selection if absent, removes it if present.
func ToggleID(selected []int, id int) []int {
	out := make([]int, 0, len(selected)+1)
	removed := false
	for _, s := range selected {
		if s == id {
			removed = true
			continue
		}
		out = append(out, s)
	}
	if !removed {
		out = append(out, id)
	}
	return out
}

// ToggleAll implements select-all as a toggle over the visible contacts.
// When the current selection already covers the visible set it clears
// instead; coverage is judged by count, matching the shipped behavior, not
// by id-set equality.
func ToggleAll(visible []Contact, selected []int) []int {
	if len(selected) == len(visible) {
		return []int{}
	}
	ids := make([]int, len(visible))
	for i, c := range visible {
		ids[i] = c.ID
	}
	return ids
}
