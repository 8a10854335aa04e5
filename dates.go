package tmdb

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// A Date is a calendar date parsed from the service's "YYYY-MM-DD" strings.
// The month is 0-indexed, matching the index into the source string's month
// component minus one; September is month 8. The zero Date means "no date
// set" and is what an empty date string hydrates to.
type Date struct {
	Year  int
	Month int
	Day   int

	set bool
}

// IsSet reports whether the date was actually present in the payload.
func (d Date) IsSet() bool {
	return d.set
}

// Time converts the date to a time.Time at midnight UTC.
func (d Date) Time() time.Time {
	return time.Date(d.Year, time.Month(d.Month+1), d.Day, 0, 0, 0, 0, time.UTC)
}

func (d Date) String() string {
	if !d.set {
		return ""
	}

	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month+1, d.Day)
}

// parseDate splits the input on its first and second "-" separators; the
// prefix is the year, the middle the 1-indexed month, the remainder the day.
// The split points are positional on purpose, this is not a general date
// format parser. An empty input yields the unset Date with no error.
func parseDate(input string) (Date, error) {
	if input == "" {
		return Date{}, nil
	}

	first := strings.Index(input, "-")
	if first < 0 {
		return Date{}, wrapErr(ErrMalformedPayload, fmt.Errorf("date %q has no separator", input))
	}

	rest := input[first+1:]
	second := strings.Index(rest, "-")
	if second < 0 {
		return Date{}, wrapErr(ErrMalformedPayload, fmt.Errorf("date %q has one separator", input))
	}

	var (
		yearText  = input[:first]
		monthText = rest[:second]
		dayText   = rest[second+1:]
	)

	year, err := strconv.Atoi(yearText)
	if err != nil {
		return Date{}, wrapErr(ErrMalformedPayload, fmt.Errorf("date year %q: %w", yearText, err))
	}

	month, err := strconv.Atoi(monthText)
	if err != nil {
		return Date{}, wrapErr(ErrMalformedPayload, fmt.Errorf("date month %q: %w", monthText, err))
	}

	day, err := strconv.Atoi(dayText)
	if err != nil {
		return Date{}, wrapErr(ErrMalformedPayload, fmt.Errorf("date day %q: %w", dayText, err))
	}

	if month < 1 || month > 12 || day < 1 || day > 31 {
		return Date{}, wrapErr(ErrMalformedPayload, fmt.Errorf("date %q out of range", input))
	}

	return Date{Year: year, Month: month - 1, Day: day, set: true}, nil
}
