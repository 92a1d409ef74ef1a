package blackout

import "time"

// Config describes the nightly window during which reminders are suppressed.
// Hours are on a fixed GMT-offset local scale; DST is deliberately not
// handled.
type Config struct {
	Enabled   bool
	StartHour int // 0-23
	EndHour   int // 0-23
	GMTOffset int // signed hours added to UTC
}

// InBlackout reports whether the given UTC instant falls inside the
// configured blackout window.
//
// StartHour < EndHour is a same-day window, StartHour > EndHour wraps
// around midnight, and StartHour == EndHour means the whole day is
// blacked out.
func InBlackout(now time.Time, cfg Config) bool {
	if !cfg.Enabled {
		return false
	}

	h := (now.UTC().Hour() + cfg.GMTOffset) % 24
	if h < 0 {
		h += 24
	}

	switch {
	case cfg.StartHour == cfg.EndHour:
		return true
	case cfg.StartHour < cfg.EndHour:
		return cfg.StartHour <= h && h < cfg.EndHour
	default:
		return h >= cfg.StartHour || h < cfg.EndHour
	}
}
