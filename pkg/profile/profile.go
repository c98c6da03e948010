// Package profile defines the common types for diver profile extraction.
package profile

import (
	"errors"
)

// Common errors returned by the parser layer.
var (
	// ErrProfileNotFound means the page fetched cleanly but held no
	// recognizable profile (unlinked account, deleted diver, search page).
	ErrProfileNotFound = errors.New("profile not found")
	// ErrNoStatistics means the profile exists but carries no dive
	// statistics table.
	ErrNoStatistics = errors.New("no dive statistics")
)

// DiveStatistic is one row of a profile's dive statistics table.
//
//nolint:govet // fieldalignment: intentional layout for readability
type DiveStatistic struct {
	Number        string  `json:"number"`        // Category-prefixed dive code, e.g. "105B"
	Name          string  `json:"name"`          // Dive name, e.g. "Forward 2 1/2 Somersault"
	Height        float64 `json:"height"`        // Apparatus height in meters
	HighScore     float64 `json:"highScore"`     // Best total score recorded
	HighScoreLink string  `json:"highScoreLink"` // Result sheet for the high score
	AvgScore      float64 `json:"avgScore"`      // Mean total score across performances
	AvgScoreLink  string  `json:"avgScoreLink"`  // Result listing behind the average
	NumberOfTimes int     `json:"numberOfTimes"` // How often the dive was performed
}

// Category returns the dive category digit ('1'..'6'), or 0 when the
// number is empty.
func (d DiveStatistic) Category() byte {
	if d.Number == "" {
		return 0
	}
	return d.Number[0]
}

// BaseNumber returns the dive code without its trailing position letter,
// so "105B" and "105C" compare equal.
func (d DiveStatistic) BaseNumber() string {
	if d.Number == "" {
		return ""
	}
	last := d.Number[len(d.Number)-1]
	if last >= 'A' && last <= 'Z' {
		return d.Number[:len(d.Number)-1]
	}
	return d.Number
}

// Info holds the personal block of a profile page.
//
//nolint:govet // fieldalignment: intentional layout for readability
type Info struct {
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	CityState  string `json:"cityState,omitempty"`
	Country    string `json:"country,omitempty"`
	Gender     string `json:"gender,omitempty"`
	Age        int    `json:"age,omitempty"`
	FINAAge    int    `json:"finaAge,omitempty"`
	DiverID    string `json:"diverId"`
	HSGradYear int    `json:"hsGradYear,omitempty"`
}

// Name returns the display name in "First Last" order.
func (i Info) Name() string {
	if i.FirstName == "" {
		return i.LastName
	}
	if i.LastName == "" {
		return i.FirstName
	}
	return i.FirstName + " " + i.LastName
}

// Snapshot is a fully parsed profile. A new parse replaces any prior
// snapshot for the same diver ID wholesale; snapshots are never updated
// in place.
type Snapshot struct {
	DiverID        string          `json:"diverId"`
	URL            string          `json:"url"`
	Info           Info            `json:"info"`
	DiveStatistics []DiveStatistic `json:"diveStatistics,omitempty"`
}
