package parser

import (
	"strconv"
	"strings"
	"time"

	tok "github.com/shibukawa/calcpad/tokenizer"
	"github.com/shibukawa/calcpad/value"
)

// monthNames resolves month words, full and abbreviated, to time.Month.
var monthNames = map[string]time.Month{
	"jan": time.January, "january": time.January,
	"feb": time.February, "february": time.February,
	"mar": time.March, "march": time.March,
	"apr": time.April, "april": time.April,
	"may": time.May,
	"jun": time.June, "june": time.June,
	"jul": time.July, "july": time.July,
	"aug": time.August, "august": time.August,
	"sep": time.September, "september": time.September,
	"oct": time.October, "october": time.October,
	"nov": time.November, "november": time.November,
	"dec": time.December, "december": time.December,
}

// dateKeywords are single-word date literals relative to the current day.
var dateKeywords = map[string]struct{}{
	"today": {}, "now": {}, "tomorrow": {}, "yesterday": {},
}

// isDateWord reports whether the identifier can begin a date literal.
func isDateWord(word string) bool {
	lower := strings.ToLower(word)

	if _, ok := dateKeywords[lower]; ok {
		return true
	}

	_, ok := monthNames[lower]

	return ok
}

// tryDateLiteral recognizes a date literal starting at tokens[i]:
// "today"/"now"/"tomorrow"/"yesterday" or "<month> <day>[,] <year>".
// It returns the value and the number of tokens consumed, or (nil, 0).
func tryDateLiteral(tokens []tok.Token, i int, now time.Time) (value.Value, int) {
	if i >= len(tokens) || tokens[i].Type != tok.IDENTIFIER {
		return nil, 0
	}

	word := strings.ToLower(tokens[i].Value)

	switch word {
	case "today":
		midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		return value.NewDate(midnight, false), 1
	case "now":
		return value.NewDate(now, true), 1
	case "tomorrow":
		midnight := time.Date(now.Year(), now.Month(), now.Day()+1, 0, 0, 0, 0, now.Location())
		return value.NewDate(midnight, false), 1
	case "yesterday":
		midnight := time.Date(now.Year(), now.Month(), now.Day()-1, 0, 0, 0, 0, now.Location())
		return value.NewDate(midnight, false), 1
	}

	month, ok := monthNames[word]
	if !ok {
		return nil, 0
	}

	// <month> <day> [,] <year>
	j := i + 1
	if j >= len(tokens) || tokens[j].Type != tok.NUMBER {
		return nil, 0
	}

	day, err := strconv.Atoi(tokens[j].Value)
	if err != nil || day < 1 || day > 31 {
		return nil, 0
	}

	j++

	year := now.Year()
	consumed := j - i

	if j < len(tokens) && tokens[j].Type == tok.COMMA {
		j++
	}

	if j < len(tokens) && tokens[j].Type == tok.NUMBER && len(tokens[j].Value) == 4 {
		if y, err := strconv.Atoi(tokens[j].Value); err == nil {
			year = y
			consumed = j - i + 1
		}
	}

	date := time.Date(year, month, day, 0, 0, 0, 0, now.Location())

	return value.NewDate(date, false), consumed
}

// tryTimeLiteral recognizes "<hh>:<mm>[:<ss>] [am|pm]" starting at
// tokens[i].
func tryTimeLiteral(tokens []tok.Token, i int) (value.Value, int) {
	if i+2 >= len(tokens) ||
		tokens[i].Type != tok.NUMBER ||
		tokens[i+1].Type != tok.COLON ||
		tokens[i+2].Type != tok.NUMBER {
		return nil, 0
	}

	hours, err := strconv.Atoi(tokens[i].Value)
	if err != nil || hours > 23 {
		return nil, 0
	}

	minutes, err := strconv.Atoi(tokens[i+2].Value)
	if err != nil || minutes > 59 {
		return nil, 0
	}

	consumed := 3
	seconds := 0

	if i+4 < len(tokens) && tokens[i+3].Type == tok.COLON && tokens[i+4].Type == tok.NUMBER {
		if s, err := strconv.Atoi(tokens[i+4].Value); err == nil && s <= 59 {
			seconds = s
			consumed = 5
		}
	}

	if j := i + consumed; j < len(tokens) && tokens[j].Type == tok.IDENTIFIER {
		switch strings.ToLower(tokens[j].Value) {
		case "am":
			if hours == 12 {
				hours = 0
			}
			consumed++
		case "pm":
			if hours < 12 {
				hours += 12
			}
			consumed++
		}
	}

	total := float64(hours*3600 + minutes*60 + seconds)

	return value.NewTimeOfDay(total), consumed
}

// durationWords maps time-part words to setters on a duration under
// construction.
var durationWords = map[string]func(*value.Duration, float64){
	"year": func(d *value.Duration, v float64) { d.Years += v },
	"month": func(d *value.Duration, v float64) { d.Months += v },
	"week": func(d *value.Duration, v float64) { d.Weeks += v },
	"day": func(d *value.Duration, v float64) { d.Days += v },
	"hour": func(d *value.Duration, v float64) { d.Hours += v },
	"minute": func(d *value.Duration, v float64) { d.Minutes += v },
	"second": func(d *value.Duration, v float64) { d.Seconds += v },
	"millisecond": func(d *value.Duration, v float64) { d.Millis += v },
}

// durationWord canonicalizes a time-part word ("weeks", "wk", "mins") to
// its singular form, or "" when the word is not a duration part.
func durationWord(word string) string {
	lower := strings.ToLower(word)
	if lower == "ms" {
		return "millisecond"
	}

	lower = strings.TrimSuffix(lower, "s")

	switch lower {
	case "year", "yr":
		return "year"
	case "month", "mo":
		return "month"
	case "week", "wk":
		return "week"
	case "day":
		return "day"
	case "hour", "hr":
		return "hour"
	case "minute", "min":
		return "minute"
	case "second", "sec":
		return "second"
	case "millisecond", "ms":
		return "millisecond"
	default:
		return ""
	}
}

// tryDurationLiteral recognizes a multi-part duration literal such as
// "2 weeks 3 days" starting at tokens[i]. Single number+unit pairs are
// left to unit-literal resolution so "2 weeks" stays a unit quantity;
// only sequences of two or more parts become a Duration.
func tryDurationLiteral(tokens []tok.Token, i int) (value.Value, int) {
	d := &value.Duration{}
	parts := 0
	j := i

	for j+1 < len(tokens) &&
		tokens[j].Type == tok.NUMBER &&
		tokens[j+1].Type == tok.IDENTIFIER {
		word := durationWord(tokens[j+1].Value)
		if word == "" {
			break
		}

		amount, err := strconv.ParseFloat(tokens[j].Value, 64)
		if err != nil {
			break
		}

		durationWords[word](d, amount)
		parts++
		j += 2
	}

	if parts < 2 {
		return nil, 0
	}

	return d, j - i
}
