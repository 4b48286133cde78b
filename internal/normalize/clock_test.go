package normalize

import (
	"testing"

	"github.com/coldrink/pwhl-data/internal/config"
)

func TestParsePeriod(t *testing.T) {
	tests := []struct {
		raw  string
		want int
		ok   bool
	}{
		{"1", 1, true},
		{"1st", 1, true},
		{"2nd", 2, true},
		{"3rd", 3, true},
		{"OT", 4, true},
		{"ot", 4, true},
		{"OT1", 4, true},
		{"OT2", 5, true},
		{"OT3", 6, true},
		{"SO", 7, true},
		{"7", 7, true},
		{"", 0, false},
		{"0", 0, false},
		{"8", 0, false},
		{"abc", 0, false},
	}
	for _, tt := range tests {
		got, ok := parsePeriod(tt.raw)
		if got != tt.want || ok != tt.ok {
			t.Errorf("parsePeriod(%q) = (%d, %v), want (%d, %v)", tt.raw, got, ok, tt.want, tt.ok)
		}
	}
}

func TestParseClockTime(t *testing.T) {
	tests := []struct {
		raw     string
		want    int
		wantErr bool
	}{
		{"0:00", 0, false},
		{"12:34", 754, false},
		{"19:59", 1199, false},
		{"5:07", 307, false},
		{"1234", 0, true},
		{"12:61", 0, true},
		{"ab:cd", 0, true},
	}
	for _, tt := range tests {
		got, err := parseClockTime(tt.raw)
		if (err != nil) != tt.wantErr {
			t.Errorf("parseClockTime(%q) error = %v, wantErr %v", tt.raw, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("parseClockTime(%q) = %d, want %d", tt.raw, got, tt.want)
		}
	}
}

func TestClockElapsed(t *testing.T) {
	periodClock := Clock{Mode: config.ClockModePeriod}
	runningClock := Clock{Mode: config.ClockModeRunning}

	tests := []struct {
		name        string
		clock       Clock
		period      int
		feedSeconds int
		raw         string
		want        int
	}{
		{"feed seconds trusted", periodClock, 2, 754, "0:00", 754},
		{"clock fallback", periodClock, 1, 0, "12:34", 754},
		{"period mode ignores period", periodClock, 3, 100, "", 100},
		{"running mode first period", runningClock, 1, 100, "", 100},
		{"running mode adds completed periods", runningClock, 3, 100, "", 2500},
		{"running mode overtime", runningClock, 4, 30, "", 3630},
	}
	for _, tt := range tests {
		got, err := tt.clock.Elapsed(tt.period, tt.feedSeconds, tt.raw)
		if err != nil {
			t.Errorf("%s: Elapsed error = %v", tt.name, err)
			continue
		}
		if got != tt.want {
			t.Errorf("%s: Elapsed = %d, want %d", tt.name, got, tt.want)
		}
	}

	if _, err := periodClock.Elapsed(1, 0, "garbage"); err == nil {
		t.Error("Elapsed with unparseable clock should fail")
	}
}

func TestCoercions(t *testing.T) {
	o := obj{
		"str_num":  float64(17),
		"plus":     "+2",
		"empty":    "",
		"pct":      "12.5%",
		"flag_on":  "1",
		"flag_off": "0",
		"zero_id":  "0",
		"real_id":  "42",
	}
	if got := o.str("str_num"); got != "17" {
		t.Errorf("str(number) = %q, want \"17\"", got)
	}
	if got := o.num("plus"); got != 2 {
		t.Errorf("num(\"+2\") = %d, want 2", got)
	}
	if got := o.num("empty"); got != 0 {
		t.Errorf("num(\"\") = %d, want 0", got)
	}
	if got := o.f64("pct"); got != 12.5 {
		t.Errorf("f64(\"12.5%%\") = %v, want 12.5", got)
	}
	if !o.flag("flag_on") || o.flag("flag_off") || o.flag("missing") {
		t.Error("flag coercion mismatch")
	}
	if o.numPtr("zero_id") != nil {
		t.Error("numPtr(\"0\") should be nil")
	}
	if p := o.numPtr("real_id"); p == nil || *p != 42 {
		t.Errorf("numPtr(\"42\") = %v, want 42", p)
	}
	if _, err := o.requireID("thing", "zero_id"); err == nil {
		t.Error("requireID of zero should fail")
	}
}
