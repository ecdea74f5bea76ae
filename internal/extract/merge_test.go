package extract

import (
	"slices"
	"testing"
)

func TestMergeFragments(t *testing.T) {
	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{
			name: "adjacent tableau fragments merge",
			in:   []string{"tab", "eau"},
			want: []string{"tableau"},
		},
		{
			name: "alternate tableau decomposition",
			in:   []string{"table", "au"},
			want: []string{"tableau"},
		},
		{
			name: "figma fragments merge",
			in:   []string{"fig", "ma"},
			want: []string{"figma"},
		},
		{
			name: "wildcard rule keeps second fragment",
			in:   []string{"google", "sheets"},
			want: []string{"google sheets"},
		},
		{
			name: "merge is local to adjacent pairs",
			in:   []string{"python", "tab", "eau", "sql"},
			want: []string{"python", "tableau", "sql"},
		},
		{
			name: "orphaned partial fragment remapped",
			in:   []string{"eau"},
			want: []string{"tableau"},
		},
		{
			name: "unrelated fragments pass through",
			in:   []string{"python", "java"},
			want: []string{"python", "java"},
		},
		{
			name: "case insensitive matching",
			in:   []string{"Tab", "EAU"},
			want: []string{"tableau"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MergeFragments(tt.in)
			if !slices.Equal(got, tt.want) {
				t.Errorf("MergeFragments(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestMergeFragmentsIdempotent(t *testing.T) {
	inputs := [][]string{
		{"tab", "eau"},
		{"google", "docs", "machine", "learning"},
		{"python", "fig", "ma", "sql"},
		{"node", "js", "react", "js"},
	}

	for _, in := range inputs {
		once := MergeFragments(in)
		twice := MergeFragments(once)
		if !slices.Equal(once, twice) {
			t.Errorf("MergeFragments not idempotent for %v: first %v, second %v", in, once, twice)
		}
	}
}

func TestIsNoiseFragment(t *testing.T) {
	if !IsNoiseFragment("au") {
		t.Error("expected 'au' to be noise")
	}
	if !IsNoiseFragment("Tab") {
		t.Error("expected 'Tab' to be noise regardless of case")
	}
	if IsNoiseFragment("python") {
		t.Error("did not expect 'python' to be noise")
	}
}
