package rates

import "time"

// IST is the Indian Standard Time location (UTC+5:30).
var IST = time.FixedZone("IST", 5*3600+30*60)

// Trading window in IST. Both endpoints are inclusive.
const (
	openHour    = 9
	openMinute  = 0
	closeHour   = 23
	closeMinute = 30
)

// WithinTradingWindow returns true if t falls within the polling window
// (9:00 AM – 11:30 PM IST). The caller injects the clock, so this stays
// testable without wall-clock dependence.
func WithinTradingWindow(t time.Time) bool {
	ist := t.In(IST)
	hm := ist.Hour()*60 + ist.Minute()
	return hm >= openHour*60+openMinute && hm <= closeHour*60+closeMinute
}
