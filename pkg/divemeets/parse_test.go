package divemeets

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/adrenaline-dev/divescout/pkg/profile"
)

// profilePage mimics the results site's markup: one outer cell holding the
// whole profile, loose text values, and a statistics table whose third row
// is malformed.
const profilePage = `<html><body>
<table><tr>
<td>
<table><tr><td><img src="star.gif"></td></tr></table><br><br><br><br>
<strong>Name:</strong> Jane M Doe<br>
<strong>City/State:</strong> Austin, TX<br>
<strong>Country:</strong> United States<br>
<strong>Gender:</strong> F<br>
<strong>Age:</strong> 17<br>
<strong>FINA Age:</strong> 18<br>
<strong>High School Graduation:</strong> 2027<br>
<strong>DiveMeets #:</strong> 56789<br><br><br><br>
<strong>Dive Statistics</strong><br>
<table>
<tr><td>Dive</td><td>Height</td><td>Name</td><td>High Score</td><td>Avg Score</td><td>#</td></tr>
<tr bgcolor="eeeeee"><td>105B</td><td>3M</td><td>Forward 2 1/2 Somersault Pike</td><td><a href="meetresultsext.php?meetnum=1">7.50</a></td><td><a href="divesheetresultsext.php?dive=105B">6.20</a></td><td>12</td></tr>
<tr bgcolor="ffffff"><td>403B</td><td>3M</td><td>Inward 1 1/2 Somersault Pike</td><td><a href="meetresultsext.php?meetnum=2">6.80</a></td><td><a href="divesheetresultsext.php?dive=403B">5.90</a></td><td>8</td></tr>
<tr bgcolor="eeeeee"><td>205C</td><td>bogus</td><td>Back 2 1/2 Somersault Tuck</td><td>oops</td><td>5.10</td><td>4</td></tr>
</table>
</td>
</tr></table>
</body></html>`

func TestParse(t *testing.T) {
	snap, err := Parse([]byte(profilePage), ProfileURL("56789"))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	wantInfo := profile.Info{
		FirstName:  "Jane M",
		LastName:   "Doe",
		CityState:  "Austin, TX",
		Country:    "United States",
		Gender:     "F",
		Age:        17,
		FINAAge:    18,
		HSGradYear: 2027,
		DiverID:    "56789",
	}
	if diff := cmp.Diff(wantInfo, snap.Info); diff != "" {
		t.Errorf("Info mismatch (-want +got):\n%s", diff)
	}
	if snap.DiverID != "56789" {
		t.Errorf("DiverID = %q, want %q", snap.DiverID, "56789")
	}

	// The malformed third row is dropped; the rest parse.
	wantDives := []profile.DiveStatistic{
		{
			Number:        "105B",
			Name:          "Forward 2 1/2 Somersault Pike",
			Height:        3,
			HighScore:     7.50,
			HighScoreLink: LeadingLink + "meetresultsext.php?meetnum=1",
			AvgScore:      6.20,
			AvgScoreLink:  LeadingLink + "divesheetresultsext.php?dive=105B",
			NumberOfTimes: 12,
		},
		{
			Number:        "403B",
			Name:          "Inward 1 1/2 Somersault Pike",
			Height:        3,
			HighScore:     6.80,
			HighScoreLink: LeadingLink + "meetresultsext.php?meetnum=2",
			AvgScore:      5.90,
			AvgScoreLink:  LeadingLink + "divesheetresultsext.php?dive=403B",
			NumberOfTimes: 8,
		},
	}
	if diff := cmp.Diff(wantDives, snap.DiveStatistics); diff != "" {
		t.Errorf("DiveStatistics mismatch (-want +got):\n%s", diff)
	}
}

func TestParseDeterministic(t *testing.T) {
	first, err := Parse([]byte(profilePage), ProfileURL("56789"))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	second, err := Parse([]byte(profilePage), ProfileURL("56789"))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("repeated Parse() differs (-first +second):\n%s", diff)
	}
}

func TestParseNoStatisticsTable(t *testing.T) {
	page := `<html><body><table><tr><td>
<strong>Name:</strong> Jane Doe<br>
<strong>DiveMeets #:</strong> 42<br>
</td></tr></table></body></html>`

	snap, err := Parse([]byte(page), ProfileURL("42"))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if snap.Info.Name() != "Jane Doe" {
		t.Errorf("Name() = %q, want %q", snap.Info.Name(), "Jane Doe")
	}
	if len(snap.DiveStatistics) != 0 {
		t.Errorf("DiveStatistics = %v, want none", snap.DiveStatistics)
	}
}

func TestParseNotFound(t *testing.T) {
	tests := []struct {
		name string
		page string
	}{
		{"no cell", "<html><body><p>nothing here</p></body></html>"},
		{"no info block", "<html><body><table><tr><td>Search results</td></tr></table></body></html>"},
		{"empty", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.page), ProfileURL("1"))
			if !errors.Is(err, profile.ErrProfileNotFound) {
				t.Errorf("Parse() error = %v, want ErrProfileNotFound", err)
			}
		})
	}
}

func TestParsePlatformHeights(t *testing.T) {
	page := `<html><body><table><tr><td>
<strong>Name:</strong> Max Tower<br>
<strong>DiveMeets #:</strong> 7<br><br><br><br>
<strong>Dive Statistics</strong><br>
<table>
<tr bgcolor="eeeeee"><td>107C</td><td>7.5M</td><td>Forward 3 1/2 Somersault Tuck</td><td>8.10</td><td>6.90</td><td>5</td></tr>
<tr bgcolor="ffffff"><td>626C</td><td>10M</td><td>Armstand Back 3 Somersault Tuck</td><td>7.40</td><td>6.10</td><td>3</td></tr>
</table>
</td></tr></table></body></html>`

	snap, err := Parse([]byte(page), ProfileURL("7"))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(snap.DiveStatistics) != 2 {
		t.Fatalf("got %d dives, want 2", len(snap.DiveStatistics))
	}
	if snap.DiveStatistics[0].Height != 7.5 {
		t.Errorf("Height = %v, want 7.5", snap.DiveStatistics[0].Height)
	}
	if snap.DiveStatistics[1].Height != 10 {
		t.Errorf("Height = %v, want 10", snap.DiveStatistics[1].Height)
	}
}
