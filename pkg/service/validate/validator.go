package validate

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/remedian-lab/remedian/pkg/domain/interfaces"
)

// Field length caps mirror the backing ITSM system's form constraints
const (
	maxSummaryLength     = 255
	maxDescriptionLength = 32000
	maxCategoryLength    = 120
	maxNameLength        = 50
)

// fieldRule describes the constraints applied to one named field
type fieldRule struct {
	maxLength      int
	checkInjection bool
}

var fieldRules = map[string]fieldRule{
	"summary":     {maxLength: maxSummaryLength, checkInjection: true},
	"description": {maxLength: maxDescriptionLength, checkInjection: true},
	"resolution":  {maxLength: maxDescriptionLength, checkInjection: true},
	"work_log":    {maxLength: maxDescriptionLength, checkInjection: true},
	"category":    {maxLength: maxCategoryLength, checkInjection: false},
	"group":       {maxLength: maxCategoryLength, checkInjection: false},
	"name":        {maxLength: maxNameLength, checkInjection: false},
}

// injectionPatterns reject input that attempts to steer the agent rather
// than describe an issue. These fields are echoed back into LLM context, so
// instruction-override and delimiter tricks are treated as hard errors.
var injectionPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(ignore|disregard|forget)\s+(all\s+)?(previous|prior|above)\s+(instructions?|rules?|prompts?|context)`),
	regexp.MustCompile(`(?i)(new|override|replace)\s+(instructions?|rules?|system\s+prompt)`),
	regexp.MustCompile(`(?i)you\s+are\s+now\s+a`),
	regexp.MustCompile(`(?i)pretend\s+(to\s+be|you\s+are)`),
	regexp.MustCompile(`(?i)(show|reveal|display|print|output)\s+(your|the)\s+(system\s+)?prompt`),
	regexp.MustCompile(`(?i)<\|?(system|im_start|im_end)\|?>`),
	regexp.MustCompile("(?i)```\\s*(system|assistant|user)"),
	regexp.MustCompile(`(?i)<script[^>]*>`),
}

// suspiciousPatterns flag input worth a warning but not a rejection
var suspiciousPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)bypass\s+(security|filter|validation)`),
	regexp.MustCompile(`(?i)jailbreak`),
	regexp.MustCompile(`(?i)do\s+anything\s+now`),
	regexp.MustCompile(`(?i)developer\s+mode`),
}

// Validator is the default implementation of interfaces.Validator. It
// enforces per-field length caps, strips control characters, and screens
// free-text fields for prompt injection.
type Validator struct{}

var _ interfaces.Validator = &Validator{}

// New creates a Validator with the default field rules
func New() *Validator {
	return &Validator{}
}

// ValidateField validates and sanitizes a single named field value. Unknown
// field names fall back to the category rule (short, no injection check).
func (v *Validator) ValidateField(field string, value string) interfaces.FieldValidation {
	rule, ok := fieldRules[field]
	if !ok {
		rule = fieldRules["category"]
	}

	if strings.TrimSpace(value) == "" {
		return interfaces.FieldValidation{
			Errors: []string{fmt.Sprintf("%s is required", field)},
		}
	}

	sanitized := stripControlChars(strings.TrimSpace(value))

	if len(sanitized) > rule.maxLength {
		return interfaces.FieldValidation{
			Errors: []string{fmt.Sprintf("%s exceeds maximum length of %d characters", field, rule.maxLength)},
		}
	}

	if rule.checkInjection {
		for _, p := range injectionPatterns {
			if p.MatchString(sanitized) {
				return interfaces.FieldValidation{
					Errors: []string{fmt.Sprintf("%s contains disallowed instruction-like content", field)},
				}
			}
		}
	}

	var warnings []string
	for _, p := range suspiciousPatterns {
		if p.MatchString(sanitized) {
			warnings = append(warnings, fmt.Sprintf("%s contains suspicious content", field))
			break
		}
	}

	return interfaces.FieldValidation{
		Accepted:  true,
		Warnings:  warnings,
		Sanitized: sanitized,
	}
}

// stripControlChars removes non-printable control characters, preserving
// newlines and tabs in multi-line fields
func stripControlChars(s string) string {
	return strings.Map(func(r rune) rune {
		if r == '\n' || r == '\t' {
			return r
		}
		if r < 0x20 || r == 0x7f {
			return -1
		}
		return r
	}, s)
}
