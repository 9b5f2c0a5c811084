package criteria

import (
	"reflect"
	"testing"
)

func TestParse_MeasureAndTime(t *testing.T) {
	entries := Parse("2-3L, by 7:00am")

	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}

	if entries[0].Mode != ModeMeasure || entries[0].Value != "2-3" || entries[0].Unit != "litres" {
		t.Errorf("unexpected measure entry: %+v", entries[0])
	}
	if entries[1].Mode != ModeByTime || entries[1].TimeOfDay != "07:00" {
		t.Errorf("unexpected by-time entry: %+v", entries[1])
	}

	if got := Build(entries); got != "2-3 litres, by 7:00am" {
		t.Errorf("Build returned %q, want %q", got, "2-3 litres, by 7:00am")
	}
}

func TestParse_UnitCanonicalization(t *testing.T) {
	tests := []struct {
		raw   string
		value string
		unit  string
	}{
		{"2 l", "2", "litres"},
		{"2 LTR", "2", "litres"},
		{"1.5 litre", "1.5", "litres"},
		{"8 hr", "8", "hours"},
		{"30 mins", "30", "minutes"},
		{"5 kilo", "5", "kg"},
		{"10 KG", "10", "kg"},
		{"20 pages", "20", "pages"},
		{"3 widgets", "3", "widgets"}, // custom unit passes through
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			entries := Parse(tt.raw)
			if len(entries) != 1 {
				t.Fatalf("expected 1 entry, got %d", len(entries))
			}
			e := entries[0]
			if e.Mode != ModeMeasure || e.Value != tt.value || e.Unit != tt.unit {
				t.Errorf("got %+v, want value=%q unit=%q", e, tt.value, tt.unit)
			}
		})
	}
}

func TestParse_TimeFormats(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"by 7:00am", "07:00"},
		{"by 7:00 AM", "07:00"},
		{"by 7am", "07:00"},
		{"before 9:30pm", "21:30"},
		{"at 12pm", "12:00"},
		{"after 06:15", "06:15"},
		{"until 22:00", "22:00"},
		{"by sunrise", "07:00"}, // unparseable clock falls back to default
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			entries := Parse(tt.raw)
			if len(entries) != 1 {
				t.Fatalf("expected 1 entry, got %d", len(entries))
			}
			if entries[0].Mode != ModeByTime {
				t.Fatalf("expected by-time mode, got %+v", entries[0])
			}
			if entries[0].TimeOfDay != tt.want {
				t.Errorf("got %q, want %q", entries[0].TimeOfDay, tt.want)
			}
		})
	}
}

func TestParse_KeywordRequiresWhitespace(t *testing.T) {
	// "byword" starts with "by" but has no following whitespace, so it is
	// a measure part with unit "byword" and no value — dropped entirely.
	entries := Parse("byword")
	if len(entries) != 1 || entries[0].Mode != ModeMeasure || entries[0].Value != "" {
		t.Errorf("expected single default entry, got %+v", entries)
	}
}

func TestParse_EmptyInputYieldsDefaultRow(t *testing.T) {
	for _, raw := range []string{"", "   ", ",,", "litres"} {
		entries := Parse(raw)
		if len(entries) != 1 {
			t.Fatalf("Parse(%q): expected 1 entry, got %d", raw, len(entries))
		}
		if entries[0].Mode != ModeMeasure || entries[0].Value != "" || entries[0].Unit != "" {
			t.Errorf("Parse(%q): expected empty measure entry, got %+v", raw, entries[0])
		}
	}
}

func TestParse_DropsEmptyValueKeepsRest(t *testing.T) {
	entries := Parse("litres, 2 kg")
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	if entries[0].Value != "2" || entries[0].Unit != "kg" {
		t.Errorf("unexpected entry: %+v", entries[0])
	}
}

func TestBuild_SkipsPartialEntries(t *testing.T) {
	entries := []Entry{
		{Mode: ModeMeasure, Value: "2", Unit: ""},
		{Mode: ModeMeasure, Value: "", Unit: "kg"},
		{Mode: ModeByTime, TimeOfDay: ""},
		{Mode: ModeMeasure, Value: "3", Unit: "reps"},
	}
	if got := Build(entries); got != "3 reps" {
		t.Errorf("Build returned %q, want %q", got, "3 reps")
	}
}

func TestRoundTrip_Stable(t *testing.T) {
	inputs := []string{
		"2-3L, by 7:00am",
		"8 hrs",
		"by 10pm, 20 pages",
		"30 min, 2 l, by 6:45am",
	}

	for _, raw := range inputs {
		t.Run(raw, func(t *testing.T) {
			first := Parse(raw)
			built := Build(first)
			second := Parse(built)
			if !reflect.DeepEqual(first, second) {
				t.Errorf("round trip changed entries:\nfirst:  %+v\nsecond: %+v", first, second)
			}
			if rebuilt := Build(second); rebuilt != built {
				t.Errorf("second build %q differs from first %q", rebuilt, built)
			}
		})
	}
}

func TestHasValid(t *testing.T) {
	tests := []struct {
		name    string
		entries []Entry
		want    bool
	}{
		{"empty", []Entry{{Mode: ModeMeasure}}, false},
		{"by time", []Entry{{Mode: ModeByTime, TimeOfDay: "07:00"}}, true},
		{"complete measure", []Entry{{Mode: ModeMeasure, Value: "2", Unit: "litres"}}, true},
		{"value only", []Entry{{Mode: ModeMeasure, Value: "2"}}, false},
		{"unit only", []Entry{{Mode: ModeMeasure, Unit: "litres"}}, false},
		{"mixed", []Entry{{Mode: ModeMeasure}, {Mode: ModeByTime, TimeOfDay: "09:00"}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HasValid(tt.entries); got != tt.want {
				t.Errorf("HasValid = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCanonicalUnit(t *testing.T) {
	if unit, ok := CanonicalUnit("HRS"); !ok || unit != "hours" {
		t.Errorf("CanonicalUnit(HRS) = %q, %v", unit, ok)
	}
	if unit, ok := CanonicalUnit(" widgets "); ok || unit != "widgets" {
		t.Errorf("CanonicalUnit(widgets) = %q, %v", unit, ok)
	}
}
