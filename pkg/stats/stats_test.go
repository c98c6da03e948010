package stats

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/adrenaline-dev/divescout/pkg/profile"
)

func sampleDives() []profile.DiveStatistic {
	return []profile.DiveStatistic{
		{Number: "105B", Height: 1, AvgScore: 5.5, NumberOfTimes: 4},
		{Number: "203C", Height: 3, AvgScore: 6.0, NumberOfTimes: 7},
		{Number: "305C", Height: 5, AvgScore: 5.2, NumberOfTimes: 2},
		{Number: "403B", Height: 3, AvgScore: 6.4, NumberOfTimes: 9},
		{Number: "5233D", Height: 7.5, AvgScore: 4.9, NumberOfTimes: 1},
		{Number: "626C", Height: 10, AvgScore: 6.8, NumberOfTimes: 3},
	}
}

func TestFilterIdentity(t *testing.T) {
	dives := sampleDives()
	got := Filter(dives, CategoryAll, HeightAll)
	if diff := cmp.Diff(dives, got); diff != "" {
		t.Errorf("Filter(All, All) mismatch (-want +got):\n%s", diff)
	}
}

func TestFilterCategory(t *testing.T) {
	tests := []struct {
		name     string
		category Category
		want     []string
	}{
		{"forward", Forward, []string{"105B"}},
		{"back", Back, []string{"203C"}},
		{"reverse", Reverse, []string{"305C"}},
		{"inward", Inward, []string{"403B"}},
		{"twist", Twist, []string{"5233D"}},
		{"armstand", Armstand, []string{"626C"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Filter(sampleDives(), tt.category, HeightAll)
			var numbers []string
			for _, d := range got {
				numbers = append(numbers, d.Number)
			}
			if diff := cmp.Diff(tt.want, numbers); diff != "" {
				t.Errorf("Filter(%v) mismatch (-want +got):\n%s", tt.category, diff)
			}
		})
	}
}

func TestFilterHeight(t *testing.T) {
	tests := []struct {
		name   string
		height Height
		want   []string
	}{
		{"one meter", OneMeter, []string{"105B"}},
		{"three meter", ThreeMeter, []string{"203C", "403B"}},
		{"platform absorbs five and up", Platform, []string{"305C", "5233D", "626C"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Filter(sampleDives(), CategoryAll, tt.height)
			var numbers []string
			for _, d := range got {
				numbers = append(numbers, d.Number)
			}
			if diff := cmp.Diff(tt.want, numbers); diff != "" {
				t.Errorf("Filter(%v) mismatch (-want +got):\n%s", tt.height, diff)
			}
		})
	}
}

func TestFilterDoesNotMutate(t *testing.T) {
	dives := sampleDives()
	_ = Filter(dives, Forward, OneMeter)
	if diff := cmp.Diff(sampleDives(), dives); diff != "" {
		t.Errorf("input mutated (-want +got):\n%s", diff)
	}
}

func TestFilterCombined(t *testing.T) {
	got := Filter(sampleDives(), Inward, ThreeMeter)
	if len(got) != 1 || got[0].Number != "403B" {
		t.Errorf("Filter(Inward, ThreeMeter) = %v, want [403B]", got)
	}
}
