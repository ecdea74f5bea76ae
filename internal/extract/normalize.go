package extract

import (
	"regexp"
	"strings"
)

// aliasEntry maps a known variant spelling to its canonical lowercase form.
// Entries are tested in order and matched by prefix: the raw string either
// equals the alias or starts with alias + " " or alias + "-". Prefix
// matching lets one entry absorb suffixed variants ("excel", "excel 2019")
// without enumerating every surface form.
type aliasEntry struct {
	alias     string
	canonical string
}

var aliasTable = []aliasEntry{
	{"pyth", "python"},
	{"phyton", "python"},
	{"ms excel", "excel"},
	{"microsoft excel", "excel"},
	{"msexcel", "excel"},
	{"msoffice", "office"},
	{"ms word", "word"},
	{"power point", "powerpoint"},
	{"power-point", "powerpoint"},
	{"ppt", "powerpoint"},
	{"html5", "html"},
	{"htm", "html"},
	{"postgres", "postgresql"},
	{"postgre", "postgresql"},
	{"postgress", "postgresql"},
	{"node.js", "nodejs"},
	{"node js", "nodejs"},
	{"react.js", "reactjs"},
	{"react js", "reactjs"},
	{"vue.js", "vuejs"},
	{"vue js", "vuejs"},
	{"tableu", "tableau"},
	{"figm", "figma"},
	{"canv", "canva"},
}

var (
	bracketedRe  = regexp.MustCompile(`\s*\(.*?\)`)
	multiSpaceRe = regexp.MustCompile(`\s{2,}`)
)

// NormalizeTerm canonicalizes a raw token or short phrase for matching and
// deduplication. The result stays lowercase; display formatting is
// PrettyTerm's job and happens only at presentation time.
func NormalizeTerm(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))

	s = bracketedRe.ReplaceAllString(s, "")
	s = strings.ReplaceAll(s, "–", "-")
	s = strings.ReplaceAll(s, "—", "-")
	s = strings.Trim(s, ". ,;:\")")

	for _, e := range aliasTable {
		if s == e.alias || strings.HasPrefix(s, e.alias+" ") || strings.HasPrefix(s, e.alias+"-") {
			return e.canonical
		}
	}

	s = strings.ReplaceAll(s, "/", " ")
	s = strings.ReplaceAll(s, "\\", " ")
	s = multiSpaceRe.ReplaceAllString(s, " ")

	return strings.TrimSpace(s)
}

// acronyms are rendered fully uppercase in display form.
var acronyms = map[string]bool{
	"sql": true, "html": true, "css": true, "aws": true, "api": true,
	"nlp": true, "ai": true, "ml": true, "db": true, "ios": true,
	"js": true, "php": true, "r": true,
}

// prettyTable holds display spellings that plain title-casing gets wrong.
var prettyTable = map[string]string{
	"nodejs":           "Node.js",
	"reactjs":          "React.js",
	"vuejs":            "Vue.js",
	"postgresql":       "PostgreSQL",
	"mongodb":          "MongoDB",
	"powerpoint":       "PowerPoint",
	"excel":            "Microsoft Excel",
	"word":             "Microsoft Word",
	"docker":           "Docker",
	"git":              "Git",
	"github":           "GitHub",
	"gitlab":           "GitLab",
	"tableau":          "Tableau",
	"canva":            "Canva",
	"figma":            "Figma",
	"tensorflow":       "TensorFlow",
	"pytorch":          "PyTorch",
	"numpy":            "NumPy",
	"pandas":           "pandas",
	"javascript":       "JavaScript",
	"typescript":       "TypeScript",
	"python":           "Python",
	"java":             "Java",
	"php":              "PHP",
	"laravel":          "Laravel",
	"django":           "Django",
	"google sheets":    "Google Sheets",
	"google docs":      "Google Docs",
	"machine learning": "Machine Learning",
	"deep learning":    "Deep Learning",
	"data science":     "Data Science",
	"data analytics":   "Data Analytics",
}

// PrettyTerm returns the display form of a normalized term. It is a pure,
// idempotent presentation function: applying it to its own output yields the
// same string, and it never participates in matching or deduplication.
func PrettyTerm(s string) string {
	lower := strings.ToLower(s)

	if pretty, ok := prettyTable[lower]; ok {
		return pretty
	}
	if lower == "c++" || lower == "c#" {
		return lower
	}
	if acronyms[lower] {
		return strings.ToUpper(lower)
	}

	words := strings.Fields(lower)
	for i, w := range words {
		if acronyms[w] {
			words[i] = strings.ToUpper(w)
		} else {
			words[i] = capitalize(w)
		}
	}
	return strings.Join(words, " ")
}

func capitalize(w string) string {
	if w == "" {
		return w
	}
	return strings.ToUpper(w[:1]) + w[1:]
}
