package status

import (
	"fmt"
	"time"
)

// Display formatting always uses Asia/Jakarta, whatever the viewer's zone.
var jakarta = mustLoadJakarta()

func mustLoadJakarta() *time.Location {
	loc, err := time.LoadLocation("Asia/Jakarta")
	if err != nil {
		// WIB is fixed at UTC+7, no DST.
		return time.FixedZone("WIB", 7*60*60)
	}
	return loc
}

const invalidScheduleLabel = "Jadwal tidak valid"

// Schedule is the composed interview slot. Interviews are booked in fixed
// 60 minute windows, so the end time is derived, not delivered.
type Schedule struct {
	Start        time.Time `json:"start"`
	End          time.Time `json:"end"`
	Link         string    `json:"link"`
	DisplayDate  string    `json:"display_date"`
	DisplayStart string    `json:"display_start"`
	DisplayEnd   string    `json:"display_end"`
	Valid        bool      `json:"valid"`
}

// ComposeSchedule combines the calendar date and the time of day into one
// instant. A seconds component on the time is truncated before composition.
// An unparseable date or time yields a placeholder schedule instead of an
// error; the page renders the localized invalid label.
func ComposeSchedule(date string, timeOfDay string, link string) Schedule {
	hhmm := timeOfDay
	if len(hhmm) > 5 {
		hhmm = hhmm[:5]
	}

	start, err := time.ParseInLocation("2006-01-02 15:04", fmt.Sprintf("%s %s", date, hhmm), jakarta)
	if err != nil {
		return Schedule{
			Link:         link,
			DisplayDate:  invalidScheduleLabel,
			DisplayStart: invalidScheduleLabel,
			DisplayEnd:   invalidScheduleLabel,
		}
	}

	end := start.Add(60 * time.Minute)
	return Schedule{
		Start:        start,
		End:          end,
		Link:         link,
		DisplayDate:  formatIndonesianDate(start),
		DisplayStart: start.Format("15:04") + " WIB",
		DisplayEnd:   end.Format("15:04") + " WIB",
		Valid:        true,
	}
}

var indonesianMonths = [...]string{
	"Januari", "Februari", "Maret", "April", "Mei", "Juni",
	"Juli", "Agustus", "September", "Oktober", "November", "Desember",
}

var indonesianDays = map[time.Weekday]string{
	time.Sunday:    "Minggu",
	time.Monday:    "Senin",
	time.Tuesday:   "Selasa",
	time.Wednesday: "Rabu",
	time.Thursday:  "Kamis",
	time.Friday:    "Jumat",
	time.Saturday:  "Sabtu",
}

func formatIndonesianDate(t time.Time) string {
	return fmt.Sprintf("%s, %d %s %d",
		indonesianDays[t.Weekday()], t.Day(), indonesianMonths[t.Month()-1], t.Year())
}
