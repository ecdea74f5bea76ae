package formatters

import (
	"encoding/json"
	"fmt"
	"strings"

	"cvmatch/internal/types"
)

// Formatter interface for different output formats
type Formatter interface {
	Format(data any) (string, error)
	SupportedType() string
}

// FormatterRegistry manages all available formatters
type FormatterRegistry struct {
	formatters map[string]map[string]Formatter // format -> type -> formatter
}

// NewFormatterRegistry creates a new formatter registry with default formatters
func NewFormatterRegistry() *FormatterRegistry {
	registry := &FormatterRegistry{
		formatters: make(map[string]map[string]Formatter),
	}

	// Register default formatters
	registry.RegisterFormatter("json", "any", &JSONFormatter{})
	registry.RegisterFormatter("text", "Profile", &ProfileTextFormatter{})
	registry.RegisterFormatter("markdown", "Profile", &ProfileMarkdownFormatter{})
	registry.RegisterFormatter("text", "MatchOutput", &MatchTextFormatter{})
	registry.RegisterFormatter("markdown", "MatchOutput", &MatchMarkdownFormatter{})

	return registry
}

// RegisterFormatter registers a new formatter for a specific format and data type
func (fr *FormatterRegistry) RegisterFormatter(format, dataType string, formatter Formatter) {
	if fr.formatters[format] == nil {
		fr.formatters[format] = make(map[string]Formatter)
	}
	fr.formatters[format][dataType] = formatter
}

// Format formats data using the appropriate formatter
func (fr *FormatterRegistry) Format(data any, format string) (string, error) {
	dataType := getDataType(data)

	// Try specific formatter first
	if formatters, exists := fr.formatters[format]; exists {
		if formatter, exists := formatters[dataType]; exists {
			return formatter.Format(data)
		}
		// Fall back to generic formatter
		if formatter, exists := formatters["any"]; exists {
			return formatter.Format(data)
		}
	}

	return "", fmt.Errorf("no formatter found for format '%s' and type '%s'", format, dataType)
}

// GetSupportedFormats returns all supported formats
func (fr *FormatterRegistry) GetSupportedFormats() []string {
	formats := make([]string, 0, len(fr.formatters))
	for format := range fr.formatters {
		formats = append(formats, format)
	}
	return formats
}

func getDataType(data any) string {
	switch data.(type) {
	case types.Profile:
		return "Profile"
	case types.MatchOutput:
		return "MatchOutput"
	default:
		return "any"
	}
}

// JSONFormatter handles JSON formatting for any data type
type JSONFormatter struct{}

func (jf *JSONFormatter) Format(data any) (string, error) {
	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return "", err
	}
	return string(jsonData), nil
}

func (jf *JSONFormatter) SupportedType() string {
	return "any"
}

// scorePercent renders a [0,1] similarity score as a percentage string.
func scorePercent(score float64) string {
	return fmt.Sprintf("%.2f%%", score*100)
}

func writeProfile(output *strings.Builder, profile types.Profile) {
	output.WriteString(fmt.Sprintf("Education:  %s\n", profile.Education))
	output.WriteString(fmt.Sprintf("Location:   %s\n", profile.Location))

	output.WriteString("Skills:\n")
	if len(profile.Skills) == 0 {
		output.WriteString("  (none detected)\n")
	}
	for _, skill := range profile.Skills {
		output.WriteString(fmt.Sprintf("  - %s\n", skill))
	}

	output.WriteString("Experience:\n")
	for _, exp := range profile.Experience {
		output.WriteString(fmt.Sprintf("  - %s\n", exp))
	}
}

func writeProfileMarkdown(output *strings.Builder, profile types.Profile) {
	output.WriteString(fmt.Sprintf("**Education:** %s\n\n", profile.Education))
	output.WriteString(fmt.Sprintf("**Location:** %s\n\n", profile.Location))

	output.WriteString("### Skills\n\n")
	if len(profile.Skills) == 0 {
		output.WriteString("_None detected._\n")
	}
	for _, skill := range profile.Skills {
		output.WriteString(fmt.Sprintf("- %s\n", skill))
	}
	output.WriteString("\n")

	output.WriteString("### Experience\n\n")
	for _, exp := range profile.Experience {
		output.WriteString(fmt.Sprintf("- %s\n", exp))
	}
	output.WriteString("\n")
}

// ProfileTextFormatter handles text formatting for extracted profiles
type ProfileTextFormatter struct{}

func (ptf *ProfileTextFormatter) Format(data any) (string, error) {
	profile, ok := data.(types.Profile)
	if !ok {
		return "", fmt.Errorf("expected Profile, got %T", data)
	}

	var output strings.Builder

	output.WriteString("=== EXTRACTED PROFILE ===\n\n")
	writeProfile(&output, profile)

	return output.String(), nil
}

func (ptf *ProfileTextFormatter) SupportedType() string {
	return "Profile"
}

// ProfileMarkdownFormatter handles markdown formatting for extracted profiles
type ProfileMarkdownFormatter struct{}

func (pmf *ProfileMarkdownFormatter) Format(data any) (string, error) {
	profile, ok := data.(types.Profile)
	if !ok {
		return "", fmt.Errorf("expected Profile, got %T", data)
	}

	var output strings.Builder

	output.WriteString("# Extracted Profile\n\n")
	writeProfileMarkdown(&output, profile)

	return output.String(), nil
}

func (pmf *ProfileMarkdownFormatter) SupportedType() string {
	return "Profile"
}

// MatchTextFormatter handles text formatting for match results
type MatchTextFormatter struct{}

func (mtf *MatchTextFormatter) Format(data any) (string, error) {
	result, ok := data.(types.MatchOutput)
	if !ok {
		return "", fmt.Errorf("expected MatchOutput, got %T", data)
	}

	var output strings.Builder

	output.WriteString("=== EXTRACTED PROFILE ===\n\n")
	writeProfile(&output, result.Profile)
	output.WriteString("\n")

	output.WriteString("=== TOP MATCHES ===\n\n")
	if len(result.Matches) == 0 {
		output.WriteString("No matching jobs found.\n")
	}
	for i, match := range result.Matches {
		output.WriteString(fmt.Sprintf("%d. %s\n", i+1, match.Title))
		output.WriteString(fmt.Sprintf("   Company:    %s\n", match.Company))
		output.WriteString(fmt.Sprintf("   Location:   %s\n", match.Location))
		if match.Level != "" {
			output.WriteString(fmt.Sprintf("   Level:      %s\n", match.Level))
		}
		output.WriteString(fmt.Sprintf("   Similarity: %s\n", scorePercent(match.Score)))
		if match.Link != "" {
			output.WriteString(fmt.Sprintf("   Link:       %s\n", match.Link))
		}
		output.WriteString("\n")
	}

	return output.String(), nil
}

func (mtf *MatchTextFormatter) SupportedType() string {
	return "MatchOutput"
}

// MatchMarkdownFormatter handles markdown formatting for match results
type MatchMarkdownFormatter struct{}

func (mmf *MatchMarkdownFormatter) Format(data any) (string, error) {
	result, ok := data.(types.MatchOutput)
	if !ok {
		return "", fmt.Errorf("expected MatchOutput, got %T", data)
	}

	var output strings.Builder

	output.WriteString("# Job Match Report\n\n")

	output.WriteString("## Extracted Profile\n\n")
	writeProfileMarkdown(&output, result.Profile)

	output.WriteString("## Top Matches\n\n")
	if len(result.Matches) == 0 {
		output.WriteString("_No matching jobs found._\n")
		return output.String(), nil
	}

	output.WriteString("| # | Title | Company | Location | Level | Similarity |\n")
	output.WriteString("|---|-------|---------|----------|-------|------------|\n")
	for i, match := range result.Matches {
		title := match.Title
		if match.Link != "" {
			title = fmt.Sprintf("[%s](%s)", match.Title, match.Link)
		}
		output.WriteString(fmt.Sprintf("| %d | %s | %s | %s | %s | %s |\n",
			i+1, title, match.Company, match.Location, match.Level, scorePercent(match.Score)))
	}

	return output.String(), nil
}

func (mmf *MatchMarkdownFormatter) SupportedType() string {
	return "MatchOutput"
}

// Global formatter registry
var GlobalRegistry = NewFormatterRegistry()
