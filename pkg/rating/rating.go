// Package rating computes composite skill ratings from a diver's parsed
// dive statistics.
//
// Formula version 1: dives are split into 1M, 3M and platform events by
// height. Within each event the top dives are selected (best per dive
// category by average score times degree of difficulty, plus the best
// runner-up) and summed as avgScore * DD * (1.01 - 1/timesPerformed). The
// springboard rating is the 1M and 3M event sum, the platform rating is
// the platform event sum.
package rating

import (
	"github.com/adrenaline-dev/divescout/pkg/profile"
)

// Rating holds the three composite scores. A nil field means no dives
// exist for that group, which is distinct from a score of zero.
type Rating struct {
	Springboard *float64 `json:"springboard"`
	Platform    *float64 `json:"platform"`
	Total       *float64 `json:"total"`
}

// Calculator scores dive statistics against a difficulty table.
type Calculator struct {
	table DiveTable
}

// NewCalculator returns a Calculator using the embedded difficulty table.
func NewCalculator() *Calculator {
	return &Calculator{table: DefaultDiveTable()}
}

// NewCalculatorWithTable returns a Calculator using a custom table.
func NewCalculatorWithTable(table DiveTable) *Calculator {
	return &Calculator{table: table}
}

// Compute derives a Rating from a dive set. It is a pure function of the
// input; the same dives always yield the same rating.
func (c *Calculator) Compute(dives []profile.DiveStatistic) Rating {
	oneMeter, threeMeter, platform := splitByEvent(dives)

	var rating Rating
	if len(oneMeter) > 0 || len(threeMeter) > 0 {
		springboard := c.eventScore(c.topDives(oneMeter)) + c.eventScore(c.topDives(threeMeter))
		rating.Springboard = &springboard
	}
	if len(platform) > 0 {
		score := c.eventScore(c.topDives(platform))
		rating.Platform = &score
	}

	if rating.Springboard != nil || rating.Platform != nil {
		var total float64
		if rating.Springboard != nil {
			total += *rating.Springboard
		}
		if rating.Platform != nil {
			total += *rating.Platform
		}
		rating.Total = &total
	}
	return rating
}

// splitByEvent buckets dives into 1M (height <= 1), 3M (height <= 3) and
// platform (everything higher) events.
func splitByEvent(dives []profile.DiveStatistic) (oneMeter, threeMeter, platform []profile.DiveStatistic) {
	for _, d := range dives {
		switch {
		case d.Height > 3:
			platform = append(platform, d)
		case d.Height > 1:
			threeMeter = append(threeMeter, d)
		default:
			oneMeter = append(oneMeter, d)
		}
	}
	return oneMeter, threeMeter, platform
}

// skillValue is average score weighted by degree of difficulty. Dives
// missing from the table score zero.
func (c *Calculator) skillValue(d profile.DiveStatistic) float64 {
	return d.AvgScore * c.table.DD(d.Number, d.Height)
}

// betterDive picks the higher-skill-value dive, breaking ties by how often
// the dive has been performed.
func (c *Calculator) betterDive(dive profile.DiveStatistic, stored *profile.DiveStatistic) *profile.DiveStatistic {
	if stored == nil {
		d := dive
		return &d
	}
	diveValue := c.skillValue(dive)
	curValue := c.skillValue(*stored)
	if diveValue > curValue || (diveValue == curValue && dive.NumberOfTimes > stored.NumberOfTimes) {
		d := dive
		return &d
	}
	return stored
}

func sameBaseNumber(a profile.DiveStatistic, b *profile.DiveStatistic) bool {
	return b != nil && a.BaseNumber() == b.BaseNumber()
}

// topDives selects the scoring dives for one event: the best dive per
// category plus a final slot for the best runner-up across categories. A
// runner-up never shares a base dive number with the best it sits behind.
// Armstand dives compete for the final slot only through the runner-up
// pool.
func (c *Calculator) topDives(dives []profile.DiveStatistic) []profile.DiveStatistic {
	var best, second [7]*profile.DiveStatistic

	for i := range dives {
		dive := dives[i]
		cat := dive.Category()
		if cat < '1' || cat > '6' {
			continue
		}
		idx := int(cat - '0')

		if best[idx] == nil {
			best[idx] = &dives[i]
			continue
		}

		diveValue := c.skillValue(dive)
		curValue := c.skillValue(*best[idx])
		if diveValue > curValue || (diveValue == curValue && dive.NumberOfTimes > best[idx].NumberOfTimes) {
			if !sameBaseNumber(dive, best[idx]) {
				second[idx] = best[idx]
			}
			best[idx] = &dives[i]
		} else if !sameBaseNumber(dive, best[idx]) && !sameBaseNumber(dive, second[idx]) {
			second[idx] = c.betterDive(dive, second[idx])
		}
	}

	var sixth *profile.DiveStatistic
	for idx := 1; idx <= 6; idx++ {
		if second[idx] == nil {
			continue
		}
		sixth = c.betterDive(*second[idx], sixth)
	}

	var result []profile.DiveStatistic
	for _, d := range []*profile.DiveStatistic{best[1], best[2], best[3], best[4], best[5], sixth} {
		if d == nil {
			continue
		}
		result = append(result, *d)
	}
	return result
}

// eventScore sums each selected dive's weighted average, discounted for
// dives performed only a few times. A dive performed once contributes
// almost nothing; the discount vanishes as the count grows.
func (c *Calculator) eventScore(dives []profile.DiveStatistic) float64 {
	var total float64
	for _, d := range dives {
		if d.NumberOfTimes <= 0 {
			continue
		}
		total += c.skillValue(d) * (1.01 - 1.0/float64(d.NumberOfTimes))
	}
	return total
}
