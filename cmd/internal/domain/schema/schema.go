// Package schema holds the declarative validation schemas for every listing
// type and the engine that applies them. Validation is a normal result, not
// an error: Validate returns either a fully normalized record or the complete
// list of field violations, never both and never a partial record.
package schema

import (
	"fmt"
	"net/mail"
	"net/url"
	"regexp"
	"strings"

	"listingdesk/cmd/internal/domain/entity"
)

// PercentTolerance absorbs floating rounding when a percentage group is
// compared against 100.
const PercentTolerance = 0.1

// FieldError is one violation, tagged with a dot/bracket path into the record.
type FieldError struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

// ErrorList is every violation found in one validation pass.
type ErrorList []FieldError

// ByPath groups messages by field path, the shape the API layer renders.
func (e ErrorList) ByPath() map[string][]string {
	out := make(map[string][]string, len(e))
	for _, fe := range e {
		out[fe.Path] = append(out[fe.Path], fe.Message)
	}
	return out
}

// Rule checks one field or field group of a normalized candidate record.
type Rule func(l *entity.Listing, c *Checker)

// Schema is a compiled constraint set for one listing type. Schemas are pure
// and stateless; the same Schema value is shared by all validations.
type Schema struct {
	Type  entity.ListingType
	rules []Rule
}

// New builds a schema from an ordered rule list.
func New(t entity.ListingType, rules ...Rule) *Schema {
	return &Schema{Type: t, rules: rules}
}

// Validate runs every rule against a normalized copy of the candidate.
// On success the normalized copy is returned (defaults applied, strings
// trimmed); on failure the caller's record is untouched and only the error
// list is returned.
func (s *Schema) Validate(candidate *entity.Listing) (*entity.Listing, ErrorList) {
	rec := normalize(candidate)
	c := NewChecker()
	for _, rule := range s.rules {
		rule(rec, c)
	}
	if len(c.errs) > 0 {
		return nil, c.errs
	}
	return rec, nil
}

// Checker accumulates violations during one pass. It remembers which paths
// failed so cross-field refinements can be skipped when a field they depend
// on is already invalid.
type Checker struct {
	errs   ErrorList
	failed map[string]struct{}
}

func NewChecker() *Checker {
	return &Checker{failed: make(map[string]struct{})}
}

// Errors returns everything collected so far.
func (c *Checker) Errors() ErrorList {
	return c.errs
}

// OK reports whether none of the given paths has failed yet. Refinements use
// it to honor the "field checks first" contract.
func (c *Checker) OK(paths ...string) bool {
	for _, p := range paths {
		if _, bad := c.failed[p]; bad {
			return false
		}
	}
	return true
}

func (c *Checker) Fail(path, msg string) {
	c.errs = append(c.errs, FieldError{Path: path, Message: msg})
	c.failed[path] = struct{}{}
}

func (c *Checker) Failf(path, format string, args ...any) {
	c.Fail(path, fmt.Sprintf(format, args...))
}

var (
	nameRe     = regexp.MustCompile(`^[A-Za-z0-9 &-]+$`)
	currencyRe = regexp.MustCompile(`^[A-Z]{3}$`)
)

// RequiredString enforces presence plus rune-length bounds.
func (c *Checker) RequiredString(path, val string, min, max int) {
	if val == "" {
		c.Fail(path, "is required")
		return
	}
	c.length(path, val, min, max)
}

// OptionalString enforces length bounds only when the value is present.
func (c *Checker) OptionalString(path, val string, min, max int) {
	if val == "" {
		return
	}
	c.length(path, val, min, max)
}

func (c *Checker) length(path, val string, min, max int) {
	n := len([]rune(val))
	if n < min {
		c.Failf(path, "must be at least %d characters", min)
	} else if max > 0 && n > max {
		c.Failf(path, "must be at most %d characters", max)
	}
}

// Name enforces the restricted listing-name charset on top of the length
// bounds: letters, digits, spaces, hyphens and ampersands.
func (c *Checker) Name(path, val string, min, max int) {
	c.RequiredString(path, val, min, max)
	if val != "" && !nameRe.MatchString(val) {
		c.Fail(path, "may only contain letters, digits, spaces, hyphens and ampersands")
	}
}

// Enum checks membership; empty optional values pass.
func (c *Checker) Enum(path, val string, required bool, allowed ...string) {
	if val == "" {
		if required {
			c.Fail(path, "is required")
		}
		return
	}
	for _, a := range allowed {
		if val == a {
			return
		}
	}
	c.Failf(path, "must be one of: %s", strings.Join(allowed, ", "))
}

// Email validates the address format.
func (c *Checker) Email(path, val string, required bool) {
	if val == "" {
		if required {
			c.Fail(path, "is required")
		}
		return
	}
	if _, err := mail.ParseAddress(val); err != nil {
		c.Fail(path, "must be a valid email address")
	}
}

// URL accepts absolute http/https URLs only.
func (c *Checker) URL(path, val string, required bool) {
	if val == "" {
		if required {
			c.Fail(path, "is required")
		}
		return
	}
	u, err := url.Parse(val)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		c.Fail(path, "must be a valid http(s) URL")
	}
}

// IntMin covers non-negative counts and similar lower-bounded integers.
func (c *Checker) IntMin(path string, val, min int) {
	if val < min {
		c.Failf(path, "must be %d or greater", min)
	}
}

// IntRange enforces an inclusive integer range.
func (c *Checker) IntRange(path string, val, min, max int) {
	if val < min || val > max {
		c.Failf(path, "must be between %d and %d", min, max)
	}
}

// Percent is a floating point value in [0, 100].
func (c *Checker) Percent(path string, val float64) {
	if val < 0 || val > 100 {
		c.Fail(path, "must be between 0 and 100")
	}
}

// Money applies the compound money check: nil is only a violation when the
// owning field marks it required; a present value must be non-negative and
// carry a plausible currency code. Normalization has already defaulted an
// omitted currency to INR.
func (c *Checker) Money(path string, m *entity.Money, required bool) {
	if m == nil {
		if required {
			c.Fail(path, "is required")
		}
		return
	}
	if m.Value < 0 {
		c.Fail(path+".value", "must be zero or greater")
	}
	if m.Currency != "" && !currencyRe.MatchString(m.Currency) {
		c.Fail(path+".currency", "must be a three-letter currency code")
	}
}

// StringList enforces cardinality bounds, optional uniqueness and per-item
// length bounds. Item violations are tagged with bracket paths.
func (c *Checker) StringList(path string, vals []string, minLen, maxLen int, unique bool) {
	if len(vals) < minLen {
		c.Failf(path, "must have at least %d entries", minLen)
		return
	}
	if maxLen > 0 && len(vals) > maxLen {
		c.Failf(path, "must have at most %d entries", maxLen)
		return
	}
	seen := make(map[string]struct{}, len(vals))
	for i, v := range vals {
		item := fmt.Sprintf("%s[%d]", path, i)
		if strings.TrimSpace(v) == "" {
			c.Fail(item, "must not be blank")
			continue
		}
		if unique {
			if _, dup := seen[v]; dup {
				c.Fail(item, "duplicate entry")
			}
			seen[v] = struct{}{}
		}
	}
}

// PercentPart is one named share of a percentage breakdown.
type PercentPart struct {
	Name  string
	Value float64
}

// PercentGroup validates each share as a percentage, then — only if every
// share passed — applies the named refinement: the shares must sum to 100
// within PercentTolerance. With allowAllZero, an all-zero group is accepted
// as "not yet specified". The sum violation is tagged to the group path.
func (c *Checker) PercentGroup(path string, allowAllZero bool, parts ...PercentPart) {
	paths := make([]string, len(parts))
	sum := 0.0
	for i, p := range parts {
		paths[i] = path + "." + p.Name
		c.Percent(paths[i], p.Value)
		sum += p.Value
	}
	if !c.OK(paths...) {
		return
	}
	if allowAllZero && sum == 0 {
		return
	}
	if sum < 100-PercentTolerance || sum > 100+PercentTolerance {
		c.Failf(path, "percentages must add up to 100, got %g", sum)
	}
}
