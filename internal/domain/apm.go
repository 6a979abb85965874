package domain

// Interval enumerates the time windows the widget can display.
type Interval string

const (
	// IntervalMinute displays the APM over the last minute.
	IntervalMinute Interval = "minute"
	// IntervalHour displays the APM over the last hour.
	IntervalHour Interval = "hour"
	// IntervalDay displays the APM over the last 24 hours.
	IntervalDay Interval = "day"
	// IntervalWeek displays the APM over the last 7 days.
	IntervalWeek Interval = "week"
)

// Event is a single recorded user action (key press or mouse click).
type Event struct {
	Timestamp int64 // unix seconds
}
