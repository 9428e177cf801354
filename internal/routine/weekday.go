package routine

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Weekday is a day of week that reads from YAML as either 0..6 or a name.
type Weekday int

var weekdayNames = map[string]time.Weekday{
	"sun": time.Sunday, "sunday": time.Sunday,
	"mon": time.Monday, "monday": time.Monday,
	"tue": time.Tuesday, "tuesday": time.Tuesday,
	"wed": time.Wednesday, "wednesday": time.Wednesday,
	"thu": time.Thursday, "thursday": time.Thursday,
	"fri": time.Friday, "friday": time.Friday,
	"sat": time.Saturday, "saturday": time.Saturday,
}

// ParseWeekday accepts a day number (0 = Sunday) or an English day name.
func ParseWeekday(s string) (time.Weekday, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if d, ok := weekdayNames[s]; ok {
		return d, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 || n > 6 {
		return 0, fmt.Errorf("invalid day %q (want 0-6 or a weekday name)", s)
	}
	return time.Weekday(n), nil
}

func (d *Weekday) UnmarshalYAML(node *yaml.Node) error {
	wd, err := ParseWeekday(node.Value)
	if err != nil {
		return err
	}
	*d = Weekday(wd)
	return nil
}

func (d Weekday) MarshalYAML() (any, error) {
	if d < 0 || d > 6 {
		return int(d), nil
	}
	return strings.ToLower(time.Weekday(d).String()), nil
}

// ParseClock parses "H:MM" or "HH:MM" into hour and minute.
func ParseClock(s string) (hour, minute int, err error) {
	t, err := time.Parse("15:04", strings.TrimSpace(s))
	if err != nil {
		return 0, 0, fmt.Errorf("invalid start time %q (want HH:MM)", s)
	}
	return t.Hour(), t.Minute(), nil
}
