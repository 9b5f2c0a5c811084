package criteria

import (
	"strings"
	"time"
	"unicode"

	"github.com/SashaSaw/Habitat-sub000/internal/constants"
)

// Mode distinguishes the two kinds of success-criterion entries.
type Mode string

const (
	// ModeMeasure is a quantity target, e.g. "2 litres" or "30 minutes".
	ModeMeasure Mode = "measure"
	// ModeByTime is a clock-time target, e.g. "by 7:00am".
	ModeByTime Mode = "by_time"
)

// Entry is one parsed unit of a habit's success definition.
type Entry struct {
	Mode      Mode   `json:"mode"`
	Value     string `json:"value,omitempty"`       // measure: bare number or hyphenated range like "2-3"
	Unit      string `json:"unit,omitempty"`        // measure: canonical or custom unit
	TimeOfDay string `json:"time_of_day,omitempty"` // by_time: HH:MM, no date component
}

// timeKeywords mark a part as a clock-time criterion when they lead it.
var timeKeywords = []string{"by", "before", "at", "after", "until"}

// timeLayouts are the accepted clock formats, tried in order. Input is
// lower-cased before matching so meridiem case never matters.
var timeLayouts = []string{"3:04pm", "3:04 pm", "3pm", "3 pm", "15:04"}

// defaultTimeOfDay is used when a part is recognizably a time criterion
// but the clock text itself cannot be parsed.
const defaultTimeOfDay = "07:00"

// unitAliases maps lower-cased unit spellings to their canonical form.
// Units not present here pass through as custom units.
var unitAliases = map[string]string{
	"l": "litres", "ltr": "litres", "ltrs": "litres",
	"litre": "litres", "litres": "litres", "liter": "litres", "liters": "litres",
	"ml": "ml",
	"h": "hours", "hr": "hours", "hrs": "hours", "hour": "hours", "hours": "hours",
	"min": "minutes", "mins": "minutes", "minute": "minutes", "minutes": "minutes",
	"sec": "seconds", "secs": "seconds", "second": "seconds", "seconds": "seconds",
	"kg": "kg", "kgs": "kg", "kilo": "kg", "kilos": "kg",
	"g": "g", "gram": "g", "grams": "g",
	"km": "km", "kms": "km",
	"mi": "miles", "mile": "miles", "miles": "miles",
	"lb": "lbs", "lbs": "lbs",
	"oz": "oz",
	"cal": "calories", "cals": "calories", "kcal": "calories",
	"calorie": "calories", "calories": "calories",
	"rep": "reps", "reps": "reps",
	"set": "sets", "sets": "sets",
	"step": "steps", "steps": "steps",
	"page": "pages", "pages": "pages", "pg": "pages", "pgs": "pages",
	"glass": "glasses", "glasses": "glasses",
	"cup": "cups", "cups": "cups",
	"time": "times", "times": "times",
}

// CanonicalUnit resolves a unit spelling against the alias table. The second
// return reports whether the spelling was recognized; unrecognized spellings
// are returned trimmed as custom units.
func CanonicalUnit(unit string) (string, bool) {
	key := strings.ToLower(strings.TrimSpace(unit))
	if canonical, ok := unitAliases[key]; ok {
		return canonical, true
	}
	return strings.TrimSpace(unit), false
}

// Parse converts free-form success-criteria text into structured entries.
// Parsing is total: unparseable fragments are dropped, and if nothing
// parses the result is a single empty measure entry so callers always have
// at least one editable row.
func Parse(raw string) []Entry {
	var entries []Entry

	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		if rest, ok := trimTimeKeyword(part); ok {
			entries = append(entries, Entry{
				Mode:      ModeByTime,
				TimeOfDay: parseClock(rest),
			})
			continue
		}

		if entry, ok := parseMeasure(part); ok {
			entries = append(entries, entry)
		}
	}

	if len(entries) == 0 {
		return []Entry{{Mode: ModeMeasure}}
	}
	return entries
}

// Build renders entries back into the canonical criteria string. Entries
// missing a value, unit, or time are skipped so partially-filled rows never
// reach storage. Build(Parse(s)) is stable for any s previously produced by
// Build.
func Build(entries []Entry) string {
	var parts []string
	for _, e := range entries {
		switch e.Mode {
		case ModeByTime:
			clock, err := time.Parse(constants.TimeFormat, e.TimeOfDay)
			if err != nil {
				continue
			}
			parts = append(parts, "by "+clock.Format("3:04pm"))
		case ModeMeasure:
			if e.Value == "" || e.Unit == "" {
				continue
			}
			parts = append(parts, e.Value+" "+e.Unit)
		}
	}
	return strings.Join(parts, ", ")
}

// HasValid reports whether any entry is complete enough to count as a real
// criterion: a by-time entry, or a measure entry with both value and unit.
func HasValid(entries []Entry) bool {
	for _, e := range entries {
		switch e.Mode {
		case ModeByTime:
			if e.TimeOfDay != "" {
				return true
			}
		case ModeMeasure:
			if e.Value != "" && e.Unit != "" {
				return true
			}
		}
	}
	return false
}

// trimTimeKeyword checks whether the part opens with a time keyword followed
// by whitespace and returns the remainder if so.
func trimTimeKeyword(part string) (string, bool) {
	lower := strings.ToLower(part)
	for _, kw := range timeKeywords {
		if !strings.HasPrefix(lower, kw) {
			continue
		}
		rest := part[len(kw):]
		if rest == "" || !unicode.IsSpace(rune(rest[0])) {
			continue
		}
		return strings.TrimSpace(rest), true
	}
	return "", false
}

// parseClock parses a clock string against the accepted layouts, returning
// HH:MM. Total parse failure falls back to the default morning time rather
// than producing an error.
func parseClock(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format(constants.TimeFormat)
		}
	}
	return defaultTimeOfDay
}

// parseMeasure splits a part into value and unit: the trailing contiguous
// run of letters is the unit, everything before it (trimmed) is the value.
// A part with no value yields no entry.
func parseMeasure(part string) (Entry, bool) {
	runes := []rune(part)
	i := len(runes)
	for i > 0 && unicode.IsLetter(runes[i-1]) {
		i--
	}

	value := strings.TrimSpace(string(runes[:i]))
	unit := string(runes[i:])
	if value == "" {
		return Entry{}, false
	}

	canonical, _ := CanonicalUnit(unit)
	return Entry{Mode: ModeMeasure, Value: value, Unit: canonical}, true
}
