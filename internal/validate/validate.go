package validate

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	reID    = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)
	reEmail = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)
	// US ZIP: 5 digits
	reZIP    = regexp.MustCompile(`^[0-9]{5}$`)
	reCard   = regexp.MustCompile(`^[0-9]{13,19}$`)
	reExpiry = regexp.MustCompile(`^(0[1-9]|1[0-2])/([0-9]{2})$`)
	reCVV    = regexp.MustCompile(`^[0-9]{3,4}$`)
)

// ID validates a product id.
func ID(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, s != "" && reID.MatchString(s)
}

func Email(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if len(s) == 0 || len(s) > 50 {
		return "", false
	}
	return s, reEmail.MatchString(s)
}

// Name validates a displayable name with a reasonable max length.
func Name(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" || len(s) > 50 {
		return "", false
	}
	return s, true
}

func ZIP(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, reZIP.MatchString(s)
}

// Qty parses a cart quantity. Unlike a form default, an unparsable or
// non-positive API value is an error, not a silent 1.
func Qty(s string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 || n > 99 {
		return 0, false
	}
	return n, true
}

// CardNumber checks the mocked payment card field: digits only after
// stripping spaces. No Luhn check; nothing is charged.
func CardNumber(s string) (string, bool) {
	s = strings.ReplaceAll(strings.TrimSpace(s), " ", "")
	return s, reCard.MatchString(s)
}

// Expiry checks MM/YY and rejects past months against the supplied clock.
func Expiry(s string, now time.Time) bool {
	m := reExpiry.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return false
	}
	month, _ := strconv.Atoi(m[1])
	year, _ := strconv.Atoi(m[2])
	year += 2000
	// valid through the last moment of the expiry month
	end := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, 0)
	return now.Before(end)
}

func CVV(s string) bool {
	return reCVV.MatchString(strings.TrimSpace(s))
}
