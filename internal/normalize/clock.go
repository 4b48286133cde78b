package normalize

import (
	"strconv"
	"strings"

	"github.com/coldrink/pwhl-data/internal/config"
)

// Canonical period numbers. Regulation is 1..3, overtimes 4..6, shootout 7,
// no matter how the feed labels the period.
const (
	periodOT1      = 4
	periodOT2      = 5
	periodOT3      = 6
	periodShootout = 7
)

var periodNames = map[string]int{
	"OT":  periodOT1,
	"OT1": periodOT1,
	"OT2": periodOT2,
	"OT3": periodOT3,
	"SO":  periodShootout,
}

// parsePeriod maps a feed period label ("1", "1st", "OT", "SO", ...) to the
// canonical period number.
func parsePeriod(raw string) (int, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, false
	}
	if p, ok := periodNames[strings.ToUpper(s)]; ok {
		return p, true
	}
	for _, suffix := range []string{"st", "nd", "rd", "th"} {
		s = strings.TrimSuffix(s, suffix)
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 || n > periodShootout {
		return 0, false
	}
	return n, true
}

// Clock converts a period plus clock reading into the elapsed-seconds value
// events are ordered by. The feed usually carries the within-period seconds
// in its "s" field; the clock string is the fallback.
type Clock struct {
	Mode config.ClockMode
}

// Elapsed returns the ordering value for an event. feedSeconds is trusted
// when positive; otherwise the MM:SS clock string is parsed. In running mode
// completed periods contribute 20 minutes each.
func (c Clock) Elapsed(period, feedSeconds int, clock string) (int, error) {
	secs := feedSeconds
	if secs <= 0 && clock != "" {
		parsed, err := parseClockTime(clock)
		if err != nil {
			return 0, err
		}
		secs = parsed
	}
	if c.Mode == config.ClockModeRunning && period > 1 {
		return (period-1)*20*60 + secs, nil
	}
	return secs, nil
}
