package types

// Profile represents the structured data extracted from a single resume
// document. It is constructed once per analyze call and never mutated
// afterwards.
type Profile struct {
	Education  string   `json:"education"`
	Skills     []string `json:"skills"`
	Experience []string `json:"experience"`
	Location   string   `json:"location"`
}

// JobRecord is one row of the externally maintained job corpus. The corpus
// is read-only input; ranking never writes derived values back to it.
type JobRecord struct {
	Title       string `json:"title"`
	Company     string `json:"company"`
	Location    string `json:"location"`
	JobField    string `json:"jobField"`
	WorkType    string `json:"workType"`
	Salary      string `json:"salary"`
	Requirement string `json:"requirement"`
	Posted      string `json:"posted"`
	Link        string `json:"link"`
	Category    string `json:"category"`
	Level       string `json:"level"`
}

// MatchResult pairs a job record with its similarity score against a
// profile. Score is a cosine similarity on normalized embeddings, so it is
// bounded by [-1,1] and in practice falls in [0,1].
type MatchResult struct {
	Title       string  `json:"title"`
	Company     string  `json:"company"`
	Location    string  `json:"location"`
	JobField    string  `json:"jobField"`
	Requirement string  `json:"requirement"`
	Level       string  `json:"level"`
	Link        string  `json:"link"`
	Score       float64 `json:"similarityScore"`
}

// AnalyzeInput represents the input for analyzing a resume document
type AnalyzeInput struct {
	DocumentPath string `json:"documentPath"`
	Location     string `json:"location"`
}

// MatchInput represents the input for ranking a corpus against a resume
type MatchInput struct {
	DocumentPath string `json:"documentPath"`
	CorpusPath   string `json:"corpusPath"`
	Location     string `json:"location"`
	ResultCount  int    `json:"resultCount"`
	RelevantOnly bool   `json:"relevantOnly"`
}

// MatchOutput represents the output of a match run: the extracted profile
// plus the ranked results.
type MatchOutput struct {
	Profile Profile       `json:"profile"`
	Matches []MatchResult `json:"matches"`
}

// Sentinel values returned when an extractor finds nothing. Extraction
// misses are never errors; the Profile is always fully populated.
const (
	NotDetected       = "Not detected"
	EducationSentinel = "-"
)
