package summarize

import (
	"encoding/json"
	"regexp"
	"strconv"
	"strings"

	"github.com/theboringdotapp/newsletter-builder/internal/domain"
)

// Literal defaults used when the model answer cannot provide a field.
const (
	UntitledTitle     = "Untitled"
	NoDescriptionText = "No description available"
)

// Summary is the metadata proposed for a saved link.
type Summary struct {
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Category    domain.Category `json:"category"`

	// BestEffort is set when the model answer was not valid JSON and the
	// fields were recovered by pattern matching.
	BestEffort bool `json:"bestEffort"`
}

type summaryJSON struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
}

var (
	codeFence     = regexp.MustCompile("(?s)^```[a-zA-Z]*\\s*(.*?)\\s*```$")
	fieldTitle    = regexp.MustCompile(`"title"\s*:\s*"((?:[^"\\]|\\.)*)"`)
	fieldDesc     = regexp.MustCompile(`"description"\s*:\s*"((?:[^"\\]|\\.)*)"`)
	fieldCategory = regexp.MustCompile(`"category"\s*:\s*"((?:[^"\\]|\\.)*)"`)
)

// ParseSummary reads a model answer for pageURL.
//
// Strict JSON decoding is tried first. When it fails the answer is scanned
// for "title", "description" and "category" fields and the result is
// flagged BestEffort. Missing fields get UntitledTitle, NoDescriptionText
// and domain.Categorize(pageURL). It never fails.
func ParseSummary(raw, pageURL string) Summary {
	text := strings.TrimSpace(raw)
	if m := codeFence.FindStringSubmatch(text); m != nil {
		text = m[1]
	}

	var parsed summaryJSON
	s := Summary{}
	if err := strictParse(text, &parsed); err == nil {
		s.Title, s.Description = parsed.Title, parsed.Description
		s.Category, _ = domain.ParseCategory(parsed.Category)
	} else {
		s = bestEffortParse(text)
	}

	s.Title = strings.TrimSpace(s.Title)
	s.Description = strings.TrimSpace(s.Description)
	if s.Title == "" {
		s.Title = UntitledTitle
	}
	if s.Description == "" {
		s.Description = NoDescriptionText
	}
	if !s.Category.Valid() {
		s.Category = domain.Categorize(pageURL)
	}
	return s
}

func strictParse(text string, out *summaryJSON) error {
	if err := json.Unmarshal([]byte(text), out); err != nil {
		return domain.ParseError{Input: text, Err: err}
	}
	return nil
}

func bestEffortParse(text string) Summary {
	s := Summary{BestEffort: true}
	s.Title = matchField(fieldTitle, text)
	s.Description = matchField(fieldDesc, text)
	s.Category, _ = domain.ParseCategory(matchField(fieldCategory, text))
	return s
}

func matchField(re *regexp.Regexp, text string) string {
	m := re.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	if v, err := strconv.Unquote(`"` + m[1] + `"`); err == nil {
		return v
	}
	return m[1]
}
