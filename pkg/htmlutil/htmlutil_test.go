package htmlutil

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"canonical break", "a<br>b", "a<br/>b"},
		{"self closing with space", "a<br />b", "a<br/>b"},
		{"uppercase break", "a<BR>b", "a<br/>b"},
		{"newlines dropped", "a\nb\r\nc", "abc"},
		{"adjacent tags joined", "</strong> <div>", "</strong><div>"},
		{"text spacing kept", "Jane Doe", "Jane Doe"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(tt.input)
			if got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestWrapLooseText(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			"value after label",
			"<strong>Name:</strong> Jane Doe<br/>",
			"<strong>Name:</strong><div>Jane Doe</div><br/>",
		},
		{
			"comma kept",
			"<strong>City/State:</strong> Austin, TX<br/>",
			"<strong>City/State:</strong><div>Austin, TX</div><br/>",
		},
		{
			"nbsp only run untouched",
			"&nbsp;<br/>",
			"&nbsp;<br/>",
		},
		{
			"no loose text",
			"<div>already wrapped</div>",
			"<div>already wrapped</div>",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := WrapLooseText(tt.input)
			if got != tt.want {
				t.Errorf("WrapLooseText(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestSplitBlocks(t *testing.T) {
	input := "<img src=x.gif><br/><br/><br/><br/>" +
		"<strong>Name:</strong><div>Jane Doe</div><br/>" +
		"<strong>DiveMeets #:</strong><div>123</div><br/><br/>" +
		"<div>something else</div><br/><br/><br/><br/>" +
		"<strong>Dive Statistics</strong><table><tr><td>a</td></tr></table>"

	want := []string{
		"<img src=x.gif>",
		"<strong>Name:</strong><div>Jane Doe</div><br/><strong>DiveMeets #:</strong><div>123</div>",
		"<div>something else</div>",
		"<strong>Dive Statistics</strong><table><tr><td>a</td></tr></table>",
	}

	got := SplitBlocks(input)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("SplitBlocks() mismatch (-want +got):\n%s", diff)
	}
}

func TestSplitBlocksPerTable(t *testing.T) {
	input := "<strong>Dive Statistics</strong><table><tr><td>a</td></tr></table><table><tr><td>b</td></tr></table>"

	got := SplitBlocks(input)
	if len(got) != 2 {
		t.Fatalf("SplitBlocks() returned %d blocks, want 2: %#v", len(got), got)
	}
	for _, block := range got {
		if block[len(block)-len("</table>"):] != "</table>" {
			t.Errorf("block does not end with </table>: %q", block)
		}
	}
}

func TestText(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"<div>Jane  Doe</div>", "Jane Doe"},
		{"<td>Austin,&nbsp;TX</td>", "Austin, TX"},
		{"plain", "plain"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := Text(tt.input)
			if got != tt.want {
				t.Errorf("Text(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
