// Package dates resolves relative and absolute date expressions found in query
// text against the query's reference timestamp. Resolution is best effort:
// unrecognized input yields "not resolved", never an error.
package dates

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"rag-pipeline/internal/domain"
)

const dayLayout = "2006-01-02"

var (
	recencyPattern  = regexp.MustCompile(`(last|past|previous|recent)`)
	weekdayPattern  = regexp.MustCompile(`(mon|tues|wednes|thurs|fri|satur|sun)`)
	relDayPattern   = regexp.MustCompile(`(today|yesterday)`)
	fullDatePattern = regexp.MustCompile(`(\d{4})-(\d{2})-(\d{2})`)
	yearMonthPat    = regexp.MustCompile(`(\d{4})-(\d{2})`)
	yearPattern     = regexp.MustCompile(`\d{4}`)
	writtenDatePat  = regexp.MustCompile(`([A-Za-z]+) (\d{1,2}) (\d{4})`)

	monthNamePattern = regexp.MustCompile(`\b(?:january|february|march|april|may|june|july|august|september|october|november|december)\b`)
	monthAbbrPattern = regexp.MustCompile(`\b(?:jan|feb|mar|apr|may|jun|jul|aug|sep|oct|nov|dec)\b`)
)

// Offsets in days from the most recent Sunday boundary back to "last <weekday>".
var lastWeekdayOffset = map[string]int{
	"sun":    7,
	"mon":    6,
	"tues":   5,
	"wednes": 4,
	"thurs":  3,
	"fri":    2,
	"satur":  1,
}

var monthNumbers = map[string]int{
	"jan": 1, "feb": 2, "mar": 3, "apr": 4, "may": 5, "jun": 6,
	"jul": 7, "aug": 8, "sep": 9, "oct": 10, "nov": 11, "dec": 12,
	"january": 1, "february": 2, "march": 3, "april": 4, "june": 6,
	"july": 7, "august": 8, "september": 9, "october": 10, "november": 11, "december": 12,
}

var weekdayNames = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

// ParseQueryTime parses the fixed "MM/DD/YYYY, HH:MM:SS PT" reference format.
func ParseQueryTime(queryTime string) (time.Time, error) {
	trimmed := strings.TrimSuffix(queryTime, " PT")
	t, err := time.Parse(domain.QueryTimeLayout, trimmed)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse query time %q: %w", queryTime, err)
	}
	return t, nil
}

// QueryDate returns the reference date as "YYYY-MM-DD", or "" if the timestamp
// is malformed.
func QueryDate(queryTime string) string {
	t, err := ParseQueryTime(queryTime)
	if err != nil {
		return ""
	}
	return t.Format(dayLayout)
}

// lastSunday returns the most recent Sunday strictly before t.
func lastSunday(t time.Time) time.Time {
	offset := int(t.Weekday())
	if offset == 0 {
		offset = 7
	}
	return t.AddDate(0, 0, -offset)
}

// Resolve finds a single relative-date expression in text and resolves it
// against the reference timestamp. The "last <weekday>" pattern wins only when
// both a recency qualifier and a weekday token are present; otherwise a bare
// today/yesterday match applies. Returns ok=false when nothing is recognized.
func Resolve(queryTime, text string) (date, descriptor string, ok bool) {
	today, err := ParseQueryTime(queryTime)
	if err != nil {
		return "", "", false
	}

	recency := recencyPattern.FindString(text)
	weekday := weekdayPattern.FindString(text)
	relDay := relDayPattern.FindString(text)

	switch {
	case recency != "" && weekday != "":
		descriptor = "last " + weekday + "day"
		date = lastSunday(today).AddDate(0, 0, -lastWeekdayOffset[weekday]).Format(dayLayout)
	case relDay == "today":
		descriptor = "today"
		date = today.Format(dayLayout)
	case relDay == "yesterday":
		descriptor = "yesterday"
		date = today.AddDate(0, 0, -1).Format(dayLayout)
	default:
		return "", "", false
	}
	return date, descriptor, true
}

// ResolveAll resolves every relative-date expression in text. A "last
// <weekday>" match yields a single date; otherwise each today/yesterday
// occurrence resolves independently. Both slices are empty when nothing
// is recognized.
func ResolveAll(queryTime, text string) (resolved, descriptors []string) {
	today, err := ParseQueryTime(queryTime)
	if err != nil {
		return nil, nil
	}

	recency := recencyPattern.FindString(text)
	weekday := weekdayPattern.FindString(text)

	if recency != "" && weekday != "" {
		descriptor := "last " + weekday + "day"
		date := lastSunday(today).AddDate(0, 0, -lastWeekdayOffset[weekday]).Format(dayLayout)
		return []string{date}, []string{descriptor}
	}

	for _, match := range relDayPattern.FindAllString(text, -1) {
		if match == "today" {
			resolved = append(resolved, today.Format(dayLayout))
		} else {
			resolved = append(resolved, today.AddDate(0, 0, -1).Format(dayLayout))
		}
		descriptors = append(descriptors, match)
	}
	return resolved, descriptors
}

// ThisWeekDates returns the 7 dates of the Sunday-to-Saturday week containing
// the reference date, ascending. The reference day itself may be included;
// callers that need strictly-past days filter on the reference date.
func ThisWeekDates(queryTime string) []string {
	today, err := ParseQueryTime(queryTime)
	if err != nil {
		return nil
	}
	sunday := lastSunday(today)
	dates := make([]string, 0, 7)
	for i := 0; i < 7; i++ {
		dates = append(dates, sunday.AddDate(0, 0, i).Format(dayLayout))
	}
	return dates
}

// LastWeekDates returns the 7 dates immediately preceding this week's window,
// in descending order (Saturday first). The descending order is relied on by
// the finance price reports, which read the window open from the first entry.
func LastWeekDates(queryTime string) []string {
	today, err := ParseQueryTime(queryTime)
	if err != nil {
		return nil
	}
	sunday := lastSunday(today)
	dates := make([]string, 0, 7)
	for i := 1; i <= 7; i++ {
		dates = append(dates, sunday.AddDate(0, 0, -i).Format(dayLayout))
	}
	return dates
}

// ThisMonthDates returns the dates of the current calendar month up to but
// excluding the reference day, ascending.
func ThisMonthDates(queryTime string) []string {
	today, err := ParseQueryTime(queryTime)
	if err != nil {
		return nil
	}
	first := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, today.Location())
	var dates []string
	for i := 0; i < today.Day()-1; i++ {
		dates = append(dates, first.AddDate(0, 0, i).Format(dayLayout))
	}
	return dates
}

// LastMonthDates returns every date of the previous calendar month, ascending.
func LastMonthDates(queryTime string) []string {
	today, err := ParseQueryTime(queryTime)
	if err != nil {
		return nil
	}
	firstOfCurrent := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, today.Location())
	lastOfPrevious := firstOfCurrent.AddDate(0, 0, -1)
	firstOfPrevious := time.Date(lastOfPrevious.Year(), lastOfPrevious.Month(), 1, 0, 0, 0, 0, today.Location())

	var dates []string
	for d := firstOfPrevious; !d.After(lastOfPrevious); d = d.AddDate(0, 0, 1) {
		dates = append(dates, d.Format(dayLayout))
	}
	return dates
}

// ExtractYMD finds the most specific numeric date in text: full "YYYY-MM-DD",
// then "YYYY-MM", then a bare 4-digit year. Missing components are "".
func ExtractYMD(text string) (year, month, day string) {
	if m := fullDatePattern.FindStringSubmatch(text); m != nil {
		return m[1], m[2], m[3]
	}
	if m := yearMonthPat.FindStringSubmatch(text); m != nil {
		return m[1], m[2], ""
	}
	if m := yearPattern.FindString(text); m != "" {
		return m, "", ""
	}
	return "", "", ""
}

// ExtractWrittenDate recognizes "Month Day Year" (full or abbreviated month
// name, commas ignored) and returns the canonical "YYYY-MM-DD" form, or ""
// when no such date is present.
func ExtractWrittenDate(text string) string {
	cleaned := strings.ReplaceAll(text, ",", "")
	m := writtenDatePat.FindStringSubmatch(cleaned)
	if m == nil {
		return ""
	}
	month, ok := monthNumbers[strings.ToLower(m[1])]
	if !ok {
		return ""
	}
	day := m[2]
	if len(day) == 1 {
		day = "0" + day
	}
	return fmt.Sprintf("%s-%02d-%s", m[3], month, day)
}

// Years returns every 4-digit year token in text, in order of appearance.
func Years(text string) []string {
	return yearPattern.FindAllString(text, -1)
}

// OrderYears returns the pair with the earlier year first, regardless of
// input order.
func OrderYears(a, b string) (string, string) {
	if a < b {
		return a, b
	}
	return b, a
}

// MonthInQuery finds a month name (full name checked before abbreviation) in
// the query and returns its number and the matched token.
func MonthInQuery(query string) (month int, name string, ok bool) {
	if m := monthNamePattern.FindString(query); m != "" {
		return monthNumbers[m], m, true
	}
	if m := monthAbbrPattern.FindString(query); m != "" {
		return monthNumbers[m], m, true
	}
	return 0, "", false
}

// WeekdayName returns the English weekday name for a "YYYY-MM-DD" date, or ""
// if the date is malformed.
func WeekdayName(date string) string {
	t, err := time.Parse(dayLayout, date)
	if err != nil {
		return ""
	}
	// Monday-first indexing to match the reference data convention.
	idx := (int(t.Weekday()) + 6) % 7
	return weekdayNames[idx]
}
