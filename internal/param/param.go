// Package param converts and range-checks request parameters.
package param

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/SergeyParamoshkin/marucat/internal/apperror"
)

var (
	specialChars = regexp.MustCompile("[`~!@#$%^&*()=_\\-+<>?:\"{},./;'\\[\\]\\s]")
	nameChars    = regexp.MustCompile(`^[A-Za-z0-9_.\-]+$`)
)

// ParseNatural parses raw as an integer >= 0. An empty raw yields def.
func ParseNatural(name, raw string, def int) (int, error) {
	n, err := parse(name, raw, def)
	if err != nil {
		return 0, err
	}

	if n < 0 {
		return 0, apperror.NewParamError(name, apperror.ErrNotANaturalNumber)
	}

	return n, nil
}

// ParsePositive parses raw as an integer > 0. An empty raw yields def.
func ParsePositive(name, raw string, def int) (int, error) {
	n, err := parse(name, raw, def)
	if err != nil {
		return 0, err
	}

	if n <= 0 {
		return 0, apperror.NewParamError(name, apperror.ErrNotAPositiveNumber)
	}

	return n, nil
}

func parse(name, raw string, def int) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return def, nil
	}

	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, apperror.NewParamError(name, apperror.ErrNotANumber)
	}

	return n, nil
}

// ValidID reports whether id is usable as an article or comment identifier.
func ValidID(id string) bool {
	return id != "" && !specialChars.MatchString(id)
}

// ValidName reports whether name is usable as a setting name.
func ValidName(name string) bool {
	return nameChars.MatchString(name)
}

// ParseTags accepts "a", "a,b" and "[a,b]".
func ParseTags(raw string) []string {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "[") && strings.HasSuffix(raw, "]") {
		raw = raw[1 : len(raw)-1]
	}

	var tags []string
	for _, t := range strings.Split(raw, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}

	return tags
}
