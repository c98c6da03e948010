// Package stats filters parsed dive statistics by category and height for
// display and for rating input.
package stats

import (
	"github.com/adrenaline-dev/divescout/pkg/profile"
)

// Category selects dives by the leading digit of the dive number.
type Category int

// Dive categories in dive-number order.
const (
	CategoryAll Category = iota
	Forward
	Back
	Reverse
	Inward
	Twist
	Armstand
)

// String returns the display name of the category.
func (c Category) String() string {
	switch c {
	case Forward:
		return "Forward"
	case Back:
		return "Back"
	case Reverse:
		return "Reverse"
	case Inward:
		return "Inward"
	case Twist:
		return "Twist"
	case Armstand:
		return "Armstand"
	case CategoryAll:
		return "All"
	default:
		return "All"
	}
}

// matches reports whether the dive's number starts with this category's digit.
func (c Category) matches(d profile.DiveStatistic) bool {
	if c == CategoryAll {
		return true
	}
	return d.Category() == byte('0'+c)
}

// Height selects dives by apparatus height.
type Height int

// Height buckets. Platform absorbs every height of five meters or more
// (the results site lists 5, 7.5 and 10 meter platforms).
const (
	HeightAll Height = iota
	OneMeter
	ThreeMeter
	Platform
)

// String returns the display name of the height bucket.
func (h Height) String() string {
	switch h {
	case OneMeter:
		return "1M"
	case ThreeMeter:
		return "3M"
	case Platform:
		return "Platform"
	case HeightAll:
		return "All"
	default:
		return "All"
	}
}

func (h Height) matches(d profile.DiveStatistic) bool {
	switch h {
	case OneMeter:
		return d.Height == 1
	case ThreeMeter:
		return d.Height == 3
	case Platform:
		return d.Height >= 5
	case HeightAll:
		return true
	default:
		return true
	}
}

// Filter returns the dives matching both selectors, in input order. The
// input slice is never mutated; CategoryAll with HeightAll returns a copy
// of the full sequence.
func Filter(dives []profile.DiveStatistic, category Category, height Height) []profile.DiveStatistic {
	result := make([]profile.DiveStatistic, 0, len(dives))
	for _, d := range dives {
		if category.matches(d) && height.matches(d) {
			result = append(result, d)
		}
	}
	return result
}
