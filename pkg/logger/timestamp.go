package logger

import "time"

const TimestampLayout = "2006-01-02 15:04:05"

// Timestamp renders t in local time as "YYYY-MM-DD HH:MM:SS".
func Timestamp(t time.Time) string {
	return t.Local().Format(TimestampLayout)
}

// Now is Timestamp(time.Now()).
func Now() string {
	return Timestamp(time.Now())
}
