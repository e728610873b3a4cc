package layout

import "time"

// Clock supplies the issue date printed on credentials.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// IssueDateLayout is the date format printed on credentials.
const IssueDateLayout = "2006-01-02"

// issueDate formats the clock's current day in UTC.
func issueDate(c Clock) string {
	return c.Now().UTC().Format(IssueDateLayout)
}
