package corpus

import "testing"

func TestInferLevel(t *testing.T) {
	tests := []struct {
		title string
		want  string
	}{
		{"Data Intern", "Intern"},
		{"Magang IT Support", "Intern"},
		{"Junior Backend Developer", "Junior"},
		{"Jr Data Analyst", "Junior"},
		{"Senior Software Engineer", "Senior"},
		{"Sr DevOps Engineer", "Senior"},
		{"Tech Lead", "Lead/Principal"},
		{"Principal Engineer", "Lead/Principal"},
		{"Head of Engineering", "Lead/Principal"},
		{"Software Engineer", "Mid/Unspecified"},
		{"", "Mid/Unspecified"},
	}

	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			if got := InferLevel(tt.title); got != tt.want {
				t.Errorf("InferLevel(%q) = %q, want %q", tt.title, got, tt.want)
			}
		})
	}
}

func TestInferLevelAbbreviationsNeedWordBoundary(t *testing.T) {
	// "jr"/"sr" inside longer words must not trigger.
	if got := InferLevel("Jrx Developer"); got != "Mid/Unspecified" {
		t.Errorf("InferLevel(Jrx Developer) = %q, want Mid/Unspecified", got)
	}
}
