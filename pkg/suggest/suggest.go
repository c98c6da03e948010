// Package suggest matches a device contact list against the user
// directory to produce "people you may know" candidates.
package suggest

import (
	"sort"
	"strings"
	"time"

	"github.com/agnivade/levenshtein"
)

// FallbackCount is how many recently active users pad out the results
// when contact matching comes up short.
const FallbackCount = 5

// NameMatchBudget is the fraction of a contact name key's length allowed
// as Levenshtein edit distance for a fuzzy name match.
const NameMatchBudget = 0.3

// Contact is one address-book entry. Emails and phones are treated as
// sets; order is irrelevant.
type Contact struct {
	Name   string
	Emails []string
	Phones []string
}

// User is one directory entry.
//
//nolint:govet // fieldalignment: intentional layout for readability
type User struct {
	ID        string
	Email     string
	FirstName string
	LastName  string
	Phone     string
	UpdatedAt time.Time
}

// NameKey normalizes a name for fuzzy comparison: lowercased with all
// whitespace removed.
func NameKey(name string) string {
	return strings.ToLower(strings.Join(strings.Fields(name), ""))
}

func (u User) nameKey() string {
	return NameKey(u.FirstName + u.LastName)
}

// Users returns suggestion candidates for the given contacts, excluding
// the current user and any IDs in exclude (already-connected users).
//
// Matches accumulate in contact encounter order, de-duplicated by user ID;
// a user matched by email is not re-added on a later phone or name match.
// Up to FallbackCount most-recently-updated directory users are appended
// afterward. Empty contacts or an empty directory degrade to fallback-only
// or empty output; this never fails.
func Users(contacts []Contact, directory []User, selfID string, exclude []string) []User {
	skip := make(map[string]bool, len(exclude)+1)
	skip[selfID] = true
	for _, id := range exclude {
		skip[id] = true
	}

	byEmail := make(map[string]User)
	byPhone := make(map[string]User)
	for _, u := range directory {
		if skip[u.ID] {
			continue
		}
		if u.Email != "" {
			byEmail[strings.ToLower(u.Email)] = u
		}
		if u.Phone != "" {
			byPhone[u.Phone] = u
		}
	}

	var result []User
	seen := make(map[string]bool)
	add := func(u User) {
		if seen[u.ID] || skip[u.ID] {
			return
		}
		seen[u.ID] = true
		result = append(result, u)
	}

	for _, contact := range contacts {
		for _, email := range contact.Emails {
			if u, ok := byEmail[strings.ToLower(email)]; ok {
				add(u)
			}
		}
		for _, phone := range contact.Phones {
			if u, ok := byPhone[phone]; ok {
				add(u)
			}
		}

		key := NameKey(contact.Name)
		if key == "" {
			continue
		}
		budget := int(NameMatchBudget * float64(len(key)))
		for _, u := range directory {
			if skip[u.ID] || seen[u.ID] {
				continue
			}
			if levenshtein.ComputeDistance(key, u.nameKey()) <= budget {
				add(u)
			}
		}
	}

	result = append(result, recentUsers(directory, seen, skip)...)
	return result
}

// recentUsers returns up to FallbackCount directory users by most recent
// update, skipping anyone already collected or excluded.
func recentUsers(directory []User, seen, skip map[string]bool) []User {
	candidates := make([]User, 0, len(directory))
	for _, u := range directory {
		if seen[u.ID] || skip[u.ID] {
			continue
		}
		candidates = append(candidates, u)
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].UpdatedAt.After(candidates[j].UpdatedAt)
	})
	if len(candidates) > FallbackCount {
		candidates = candidates[:FallbackCount]
	}
	return candidates
}
