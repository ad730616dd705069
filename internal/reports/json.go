// Package reports provides daily and monthly report generation for the antigravity app.
package reports

import (
	"encoding/json"
)

// FormatDailyJSON formats a daily report as JSON.
func FormatDailyJSON(report *DailyReport) ([]byte, error) {
	return json.MarshalIndent(report, "", "  ")
}

// FormatMonthlyJSON formats a monthly report as JSON.
func FormatMonthlyJSON(report *MonthlyReport) ([]byte, error) {
	return json.MarshalIndent(report, "", "  ")
}
