package model

import "fmt"

// ParseClock parses a wall-clock time-of-day like "08:30" or "17:05" into
// hour and minute. Exactly two digits per field; the 24-hour form is the
// only stored representation, and 12-hour rendering is a display concern
// (see the schedule package).
func ParseClock(s string) (hour, minute int, err error) {
	if len(s) != 5 || s[2] != ':' {
		return 0, 0, fmt.Errorf("clock %q: want HH:MM", s)
	}
	for _, i := range []int{0, 1, 3, 4} {
		if s[i] < '0' || s[i] > '9' {
			return 0, 0, fmt.Errorf("clock %q: want HH:MM", s)
		}
	}

	hour = int(s[0]-'0')*10 + int(s[1]-'0')
	if hour > 23 {
		return 0, 0, fmt.Errorf("clock %q: hour out of range", s)
	}

	minute = int(s[3]-'0')*10 + int(s[4]-'0')
	if minute > 59 {
		return 0, 0, fmt.Errorf("clock %q: minute out of range", s)
	}

	return hour, minute, nil
}
