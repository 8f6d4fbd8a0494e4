package timezone

import "time"

// The platform runs in one configured timezone; slot dates and times are
// interpreted in it. UTC unless overridden.
const DefaultTimezone = "UTC"

var platform = DefaultTimezone

// SetPlatform installs the configured timezone. Called once at startup
// before any request is served.
func SetPlatform(tz string) {
	if IsValid(tz) {
		platform = tz
	}
}

func IsValid(tz string) bool {
	if tz == "" {
		return false
	}
	_, err := time.LoadLocation(tz)
	return err == nil
}

func Location(tz string) *time.Location {
	if IsValid(tz) {
		if loc, err := time.LoadLocation(tz); err == nil {
			return loc
		}
	}

	loc, _ := time.LoadLocation(DefaultTimezone)
	return loc
}

func Platform() *time.Location {
	return Location(platform)
}

func Now() time.Time {
	return time.Now().In(Platform())
}
