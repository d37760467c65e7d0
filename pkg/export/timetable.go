package export

// TimetableRow is one scheduled slot in a rendered timetable.
type TimetableRow struct {
	Day       string
	StartTime string
	EndTime   string
	Subject   string
	Classroom string
}

// Timetable holds the rows exported for a single faculty.
type Timetable struct {
	Title string
	Rows  []TimetableRow
}

var timetableHeaders = []string{"Day", "Start", "End", "Subject", "Classroom"}

func (t Timetable) records() [][]string {
	records := make([][]string, 0, len(t.Rows))
	for _, row := range t.Rows {
		records = append(records, []string{row.Day, row.StartTime, row.EndTime, row.Subject, row.Classroom})
	}
	return records
}
