package divemeets

import (
	"strconv"
	"strings"

	"golang.org/x/net/html"

	"github.com/adrenaline-dev/divescout/pkg/htmlutil"
	"github.com/adrenaline-dev/divescout/pkg/profile"
)

// Parse extracts a profile snapshot from a fetched profile page. It is a
// pure function of the page text: parsing the same bytes twice yields
// structurally equal snapshots.
//
// Individually malformed statistics rows are skipped rather than failing
// the whole parse; a snapshot with a valid info block and zero dives is
// still a success.
func Parse(data []byte, urlStr string) (*profile.Snapshot, error) {
	content := string(data)

	cell, ok := firstCell(content)
	if !ok {
		return nil, profile.ErrProfileNotFound
	}

	body := htmlutil.WrapLooseText(htmlutil.Normalize(cell))

	snap := &profile.Snapshot{URL: urlStr}
	var haveInfo bool
	for _, block := range htmlutil.SplitBlocks(body) {
		if strings.Contains(block, "img src=") {
			continue
		}
		switch {
		case strings.Contains(block, "DiveMeets #"):
			snap.Info = parseInfo(block)
			haveInfo = true
		case strings.Contains(block, "Dive Statistics"):
			snap.DiveStatistics = parseStatistics(block)
		}
	}

	if !haveInfo {
		return nil, profile.ErrProfileNotFound
	}
	if snap.Info.DiverID != "" {
		snap.DiverID = snap.Info.DiverID
	}
	return snap, nil
}

// firstCell returns the inner HTML of the first <td> on the page, which
// holds the entire profile body. Depth counting is required because the
// statistics tables nest further td cells inside it.
func firstCell(content string) (string, bool) {
	lower := strings.ToLower(content)
	start := strings.Index(lower, "<td")
	if start < 0 {
		return "", false
	}
	open := strings.IndexByte(lower[start:], '>')
	if open < 0 {
		return "", false
	}
	innerStart := start + open + 1

	depth := 1
	pos := innerStart
	for depth > 0 {
		next := strings.Index(lower[pos:], "<td")
		closeTag := strings.Index(lower[pos:], "</td")
		if closeTag < 0 {
			// Unterminated cell; take the remainder.
			return content[innerStart:], true
		}
		if next >= 0 && next < closeTag {
			depth++
			pos += next + len("<td")
			continue
		}
		depth--
		if depth == 0 {
			return content[innerStart : pos+closeTag], true
		}
		pos += closeTag + len("</td")
	}
	return "", false
}

// parseInfo walks the personal-info block, pairing <strong> labels with
// the wrapped <div> values that follow them.
func parseInfo(block string) profile.Info {
	fields := make(map[string]string)
	z := html.NewTokenizer(strings.NewReader(block))

	var lastKey string
	var capture string // "strong" or "div" while inside one
	var text strings.Builder
	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			break
		}
		switch tt {
		case html.StartTagToken:
			t := z.Token()
			if t.Data == "strong" || t.Data == "div" {
				capture = t.Data
				text.Reset()
			}
		case html.TextToken:
			if capture != "" {
				text.WriteString(z.Token().Data)
			}
		case html.EndTagToken:
			t := z.Token()
			if t.Data != capture {
				continue
			}
			value := strings.TrimSpace(text.String())
			if t.Data == "strong" {
				lastKey = value
			} else if lastKey != "" && value != "" {
				fields[lastKey] = value
			}
			capture = ""
		default:
		}
	}

	return assignInfo(fields)
}

func assignInfo(fields map[string]string) profile.Info {
	var info profile.Info
	for key, value := range fields {
		switch key {
		case "Name:":
			comps := strings.Fields(value)
			if len(comps) > 0 {
				info.FirstName = strings.Join(comps[:len(comps)-1], " ")
				info.LastName = comps[len(comps)-1]
			}
		case "City/State:", "State:":
			info.CityState = value
		case "Country:":
			info.Country = value
		case "Gender:":
			info.Gender = value
		case "Age:":
			info.Age, _ = strconv.Atoi(value) //nolint:errcheck // absent on parse failure
		case "FINA Age:":
			info.FINAAge, _ = strconv.Atoi(value) //nolint:errcheck // absent on parse failure
		case "High School Graduation:":
			info.HSGradYear, _ = strconv.Atoi(value) //nolint:errcheck // absent on parse failure
		case "DiveMeets #:":
			info.DiverID = value
		default:
		}
	}
	return info
}

// statCell is one td of a statistics row.
type statCell struct {
	text string
	href string
}

// parseStatistics extracts dive rows from the statistics table. Data rows
// carry a bgcolor attribute and exactly six cells: number, height, name,
// high score (linked), average score (linked), and occurrence count.
func parseStatistics(block string) []profile.DiveStatistic {
	var result []profile.DiveStatistic
	seen := make(map[string]bool)

	z := html.NewTokenizer(strings.NewReader(block))
	var inRow, inCell bool
	var cells []statCell
	var text strings.Builder
	var href string
	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			break
		}
		switch tt {
		case html.StartTagToken:
			t := z.Token()
			switch t.Data {
			case "tr":
				for _, attr := range t.Attr {
					if attr.Key == "bgcolor" {
						inRow = true
						cells = cells[:0]
						break
					}
				}
			case "td":
				if inRow {
					inCell = true
					text.Reset()
					href = ""
				}
			case "a":
				if inCell {
					for _, attr := range t.Attr {
						if attr.Key == "href" && href == "" {
							href = attr.Val
						}
					}
				}
			default:
			}
		case html.TextToken:
			if inCell {
				text.WriteString(z.Token().Data)
			}
		case html.EndTagToken:
			t := z.Token()
			switch t.Data {
			case "td":
				if inCell {
					cells = append(cells, statCell{text: strings.TrimSpace(text.String()), href: href})
					inCell = false
				}
			case "tr":
				if !inRow {
					continue
				}
				inRow = false
				dive, ok := parseStatRow(cells)
				if !ok || seen[dive.Number] {
					continue
				}
				seen[dive.Number] = true
				result = append(result, dive)
			default:
			}
		default:
		}
	}
	return result
}

func parseStatRow(cells []statCell) (profile.DiveStatistic, bool) {
	if len(cells) != 6 {
		return profile.DiveStatistic{}, false
	}

	number := cells[0].text
	if number == "" {
		return profile.DiveStatistic{}, false
	}
	height, err := strconv.ParseFloat(strings.TrimSuffix(strings.ToUpper(cells[1].text), "M"), 64)
	if err != nil || height <= 0 {
		return profile.DiveStatistic{}, false
	}
	highScore, err := strconv.ParseFloat(cells[3].text, 64)
	if err != nil {
		return profile.DiveStatistic{}, false
	}
	avgScore, err := strconv.ParseFloat(cells[4].text, 64)
	if err != nil {
		return profile.DiveStatistic{}, false
	}
	numberOfTimes, err := strconv.Atoi(cells[5].text)
	if err != nil {
		return profile.DiveStatistic{}, false
	}

	dive := profile.DiveStatistic{
		Number:        number,
		Name:          cells[2].text,
		Height:        height,
		HighScore:     highScore,
		AvgScore:      avgScore,
		NumberOfTimes: numberOfTimes,
	}
	if cells[3].href != "" {
		dive.HighScoreLink = LeadingLink + cells[3].href
	}
	if cells[4].href != "" {
		dive.AvgScoreLink = LeadingLink + cells[4].href
	}
	return dive, true
}
