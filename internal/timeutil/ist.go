package timeutil

import (
	"fmt"
	"time"
)

// IST is the Indian Standard Time location (UTC+5:30). Entry dates and
// report timestamps are expressed in warehouse local time.
var IST *time.Location

func init() {
	var err error
	IST, err = time.LoadLocation("Asia/Kolkata")
	if err != nil {
		// Fallback: create fixed zone if Asia/Kolkata not available
		IST = time.FixedZone("IST", 5*60*60+30*60) // UTC+5:30
	}
}

// Common layouts for IST formatting
const (
	DateLayout    = "2006-01-02"
	DisplayLayout = "02 Jan 2006, 03:04 PM"
)

// Now returns the current time in IST
func Now() time.Time {
	return time.Now().In(IST)
}

// Today returns the current IST calendar date as YYYY-MM-DD
func Today() string {
	return Now().Format(DateLayout)
}

// NormalizeDate parses a calendar date and returns it in canonical YYYY-MM-DD
// form. Spreadsheet imports also send "2006-01-02 15:04:05" and "02-01-2006";
// both are accepted.
func NormalizeDate(value string) (string, error) {
	for _, layout := range []string{DateLayout, "2006-01-02 15:04:05", "02-01-2006", "02/01/2006"} {
		if t, err := time.ParseInLocation(layout, value, IST); err == nil {
			return t.Format(DateLayout), nil
		}
	}
	return "", fmt.Errorf("invalid date %q, expected YYYY-MM-DD", value)
}

// FormatIST formats a time in IST using the given layout
func FormatIST(t time.Time, layout string) string {
	return t.In(IST).Format(layout)
}
