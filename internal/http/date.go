package http

import "time"

// TimeFormat is the RFC 1123 date layout with a literal GMT zone, as required for the
// Date, Last-Modified and If-Modified-Since fields
const TimeFormat = "Mon, 02 Jan 2006 15:04:05 GMT"

func AppendDate(b []byte, t time.Time) []byte {
	return t.UTC().AppendFormat(b, TimeFormat)
}

func FormatDate(t time.Time) string {
	return t.UTC().Format(TimeFormat)
}

func ParseDate(value string) (time.Time, error) {
	return time.Parse(TimeFormat, value)
}
