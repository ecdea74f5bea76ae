package corpus

import (
	"regexp"
	"strings"

	"cvmatch/internal/types"
)

// Relevance patterns mirror the acquisition-time filter of the scraping
// pipeline so the same keep/drop rule can be applied on demand.
var (
	includeTitleRe = regexp.MustCompile(`(?i)\b(software\s+engineer|backend|frontend|full\s*stack|mobile|android|ios|web\s+developer|` +
		`programmer|devops|sre|data\s+engineer|ml\s+engineer|ai\s+engineer|` +
		`system\s+analyst|business\s+analyst|it\s+business\s+analyst|data\s+analyst|bi\s+analyst|` +
		`database\s+administrator|dba|qa|quality\s+assurance|sqa|tester|product\s+manager|` +
		`it\s+project\s+manager|scrum\s+master|it\s+support|helpdesk|network\s+engineer|sysadmin|` +
		`erp|sap|crm|it\s+auditor|governance|risk|information\s+security|soc|ui\s*/?\s*ux|ux\s+research)\b`)

	includeFieldRe = regexp.MustCompile(`(?i)\b(Information\s*&\s*Communication|Information\s+Technology|Software|Computer|` +
		`Systems\s+Analyst|Data|Database|Business\s+Analysis|Quality\s+Assurance|Security|Network|` +
		`IT|Engineering|Developer|Programming|UI|UX|Product|Project|ERP|SAP|CRM)\b`)

	excludeTitleRe = regexp.MustCompile(`(?i)\b(sales|marketing|telemarketing|customer\s+service|cs|admin|receptionist|cashier|` +
		`waiter|barista|accounting|finance|hr|human\s+resources|purchasing|logistics?)\b`)

	standaloneITRe = regexp.MustCompile(`(?i)\bit\b`)
)

// Advisory preference lists. Evaluated for logging but never cause
// rejection; locale fit is the ranker's concern.
var (
	preferredWorkTypeRe = regexp.MustCompile(`(?i)\b(full-time|kontrak|contract|intern|internship|remote|hybrid)\b`)
	preferredLocationRe = regexp.MustCompile(`(?i)\b(Indonesia|Jakarta|Jabodetabek|Bandung|Surabaya|Yogyakarta|` +
		`Semarang|Bali|Malang|Medan|Makassar|Remote)\b`)
)

// Keep decides whether a job record is IT/software relevant. A record stays
// when its title or classification field hits an inclusion pattern, unless
// the title also hits an exclusion keyword without a standalone "it" token.
// The standalone "it" override exists for hybrid titles like
// "IT & Finance Support": an explicit IT mention beats an exclusion hit.
func Keep(rec types.JobRecord) bool {
	title := strings.TrimSpace(rec.Title)
	field := strings.TrimSpace(rec.JobField)

	includeHit := includeTitleRe.MatchString(title) || includeFieldRe.MatchString(field)
	excludeHit := excludeTitleRe.MatchString(title) && !standaloneITRe.MatchString(title)

	return includeHit && !excludeHit
}

// MatchesPreferredWorkType reports whether the record's work type is on the
// advisory preference list. Advisory only.
func MatchesPreferredWorkType(rec types.JobRecord) bool {
	work := strings.TrimSpace(rec.WorkType)
	return work == "" || preferredWorkTypeRe.MatchString(work)
}

// MatchesPreferredLocation reports whether the record's location is on the
// advisory preference list. Advisory only.
func MatchesPreferredLocation(rec types.JobRecord) bool {
	loc := strings.TrimSpace(rec.Location)
	return loc == "" || preferredLocationRe.MatchString(loc)
}

// AdvisoryMismatches counts records falling outside the advisory work-type
// and location preference lists. Informational only; callers log the counts
// and never drop records over them.
func AdvisoryMismatches(records []types.JobRecord) (workType, location int) {
	for _, rec := range records {
		if !MatchesPreferredWorkType(rec) {
			workType++
		}
		if !MatchesPreferredLocation(rec) {
			location++
		}
	}
	return workType, location
}

// FilterRelevant returns the records that pass Keep, preserving input order.
func FilterRelevant(records []types.JobRecord) []types.JobRecord {
	kept := make([]types.JobRecord, 0, len(records))
	for _, rec := range records {
		if Keep(rec) {
			kept = append(kept, rec)
		}
	}
	return kept
}
