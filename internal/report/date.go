package report

import (
	"fmt"
	"time"
)

// Indonesian day and month names for the report's long-form date line,
// e.g. "Senin, 2 Januari 2006".
var (
	dayNames = [...]string{
		"Minggu", "Senin", "Selasa", "Rabu", "Kamis", "Jumat", "Sabtu",
	}
	monthNames = [...]string{
		"Januari", "Februari", "Maret", "April", "Mei", "Juni",
		"Juli", "Agustus", "September", "Oktober", "November", "Desember",
	}
)

// FormatLongDate renders t in the Indonesian long form used on reports.
func FormatLongDate(t time.Time) string {
	return fmt.Sprintf("%s, %d %s %d",
		dayNames[t.Weekday()], t.Day(), monthNames[t.Month()-1], t.Year())
}
