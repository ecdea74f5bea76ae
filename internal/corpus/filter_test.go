package corpus

import (
	"testing"

	"cvmatch/internal/types"
)

func TestKeep(t *testing.T) {
	tests := []struct {
		name string
		rec  types.JobRecord
		want bool
	}{
		{
			name: "title inclusion hit",
			rec:  types.JobRecord{Title: "Backend Developer", JobField: ""},
			want: true,
		},
		{
			name: "field inclusion hit",
			rec:  types.JobRecord{Title: "Analyst", JobField: "Information Technology"},
			want: true,
		},
		{
			name: "no inclusion hit",
			rec:  types.JobRecord{Title: "Store Supervisor", JobField: "Retail"},
			want: false,
		},
		{
			name: "exclusion keyword drops the record",
			rec:  types.JobRecord{Title: "Sales Manager", JobField: "Information Technology"},
			want: false,
		},
		{
			name: "standalone it token overrides exclusion",
			rec:  types.JobRecord{Title: "Sales Executive (IT Products)", JobField: "Information Technology"},
			want: true,
		},
		{
			name: "it inside a word does not override",
			rec:  types.JobRecord{Title: "Recruitment Admin", JobField: "Information Technology"},
			want: false,
		},
		{
			name: "hybrid it title survives exclusion",
			rec:  types.JobRecord{Title: "IT & Finance Support", JobField: "IT"},
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Keep(tt.rec); got != tt.want {
				t.Errorf("Keep(%q/%q) = %v, want %v", tt.rec.Title, tt.rec.JobField, got, tt.want)
			}
		})
	}
}

func TestFilterRelevantPreservesOrder(t *testing.T) {
	records := []types.JobRecord{
		{Title: "Backend Developer"},
		{Title: "Cashier"},
		{Title: "Data Analyst"},
		{Title: "Sales Manager"},
		{Title: "QA Tester"},
	}

	kept := FilterRelevant(records)

	want := []string{"Backend Developer", "Data Analyst", "QA Tester"}
	if len(kept) != len(want) {
		t.Fatalf("FilterRelevant() kept %d records, want %d", len(kept), len(want))
	}
	for i, title := range want {
		if kept[i].Title != title {
			t.Errorf("kept[%d].Title = %q, want %q", i, kept[i].Title, title)
		}
	}
}

func TestAdvisoryMismatches(t *testing.T) {
	records := []types.JobRecord{
		{WorkType: "Full-Time", Location: "Jakarta"},
		{WorkType: "Seasonal", Location: "Singapore"},
		{WorkType: "Contract", Location: "Kuala Lumpur"},
		{WorkType: "", Location: ""},
	}

	workType, location := AdvisoryMismatches(records)

	if workType != 1 {
		t.Errorf("work type mismatches = %d, want 1", workType)
	}
	if location != 2 {
		t.Errorf("location mismatches = %d, want 2", location)
	}

	workType, location = AdvisoryMismatches(nil)
	if workType != 0 || location != 0 {
		t.Errorf("AdvisoryMismatches(nil) = (%d, %d), want (0, 0)", workType, location)
	}
}

func TestAdvisoryPreferences(t *testing.T) {
	if !MatchesPreferredWorkType(types.JobRecord{WorkType: "Full-Time"}) {
		t.Error("expected Full-Time to match the work type preference")
	}
	if MatchesPreferredWorkType(types.JobRecord{WorkType: "Seasonal"}) {
		t.Error("did not expect Seasonal to match the work type preference")
	}
	if !MatchesPreferredLocation(types.JobRecord{Location: "Jakarta Selatan"}) {
		t.Error("expected Jakarta to match the location preference")
	}
	if !MatchesPreferredWorkType(types.JobRecord{}) {
		t.Error("empty work type is not a preference miss")
	}
}
