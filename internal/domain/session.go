package domain

import "time"

// FocusSession is an immutable record of one started-and-stopped timer run.
type FocusSession struct {
	ID              string    `json:"id"`
	StartTime       time.Time `json:"startTime"`
	EndTime         time.Time `json:"endTime"`
	DurationSeconds int       `json:"durationSeconds"`
	Category        Category  `json:"category"`
	Date            string    `json:"date"`
}

// NewFocusSession builds a session covering [end-duration, end]. The date
// key derives from the start instant.
func NewFocusSession(id string, end time.Time, durationSeconds int, category Category) FocusSession {
	start := end.Add(-time.Duration(durationSeconds) * time.Second)
	return FocusSession{
		ID:              id,
		StartTime:       start,
		EndTime:         end,
		DurationSeconds: durationSeconds,
		Category:        category,
		Date:            DateKey(start),
	}
}
