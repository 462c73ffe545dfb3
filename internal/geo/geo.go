package geo

import (
	"context"
	"fmt"
	"regexp"
	"strings"
)

var (
	codeRE   = regexp.MustCompile(`^[A-Z]{3}$`)
	regionRE = regexp.MustCompile(`\b[A-Z]{2}\b`)
)

// IsCode reports whether s is a bare 3-letter uppercase location code.
func IsCode(s string) bool {
	return codeRE.MatchString(s)
}

// StripRegion removes free-standing 2-letter uppercase tokens (state or
// country abbreviations) from s, e.g. "Miami FL" -> "Miami".
func StripRegion(s string) string {
	return strings.TrimSpace(strings.Join(strings.Fields(regionRE.ReplaceAllString(s, "")), " "))
}

// UnresolvedLocationError reports a city or airport reference that could
// not be turned into a location code by any resolution method.
type UnresolvedLocationError struct {
	Place string
}

func (e *UnresolvedLocationError) Error() string {
	return fmt.Sprintf("could not resolve location %q to an airport code", e.Place)
}

// Resolver is a remote best-effort code lookup. Implementations may fail
// freely; callers treat any error as "unresolved".
type Resolver interface {
	ResolveCode(ctx context.Context, text string) (string, error)
}

// CodeForCity looks text up in the static city table, case-insensitively,
// retrying with trailing region abbreviations stripped.
func CodeForCity(text string) (string, bool) {
	key := strings.ToLower(strings.TrimSpace(text))
	if code, ok := cityCodes[key]; ok {
		return code, true
	}
	stripped := strings.ToLower(StripRegion(strings.TrimSpace(text)))
	if stripped != key {
		if code, ok := cityCodes[stripped]; ok {
			return code, true
		}
	}
	return "", false
}

// Resolve turns free text into a location code: code passthrough, then the
// static table, then the remote resolver. The remote lookup is best-effort
// geocoding, not authoritative; its failures are swallowed and an empty
// string marks the location as unresolved.
func Resolve(ctx context.Context, text string, r Resolver) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return ""
	}
	if IsCode(text) {
		return text
	}
	if code, ok := CodeForCity(text); ok {
		return code
	}
	if r != nil {
		if code, err := r.ResolveCode(ctx, text); err == nil && IsCode(code) {
			return code
		}
	}
	return ""
}
