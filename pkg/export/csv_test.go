package export

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTimetable() Timetable {
	return Timetable{
		Title: "Engineering timetable",
		Rows: []TimetableRow{
			{Day: "monday", StartTime: "08:00", EndTime: "10:00", Subject: "Mathematics", Classroom: "Lab 1"},
			{Day: "tuesday", StartTime: "10:00", EndTime: "12:00", Subject: "Physics", Classroom: "Lab 2"},
		},
	}
}

func TestCSVExporterRender(t *testing.T) {
	rendered, err := NewCSVExporter().Render(sampleTimetable())
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(rendered)), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, strings.Join(timetableHeaders, ","), lines[0])
	assert.Contains(t, lines[1], "Mathematics")
	assert.Contains(t, lines[2], "Physics")
}

func TestCSVExporterRenderEmpty(t *testing.T) {
	rendered, err := NewCSVExporter().Render(Timetable{Title: "Empty"})
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(rendered)), "\n")
	assert.Len(t, lines, 1)
}

func TestPDFExporterRender(t *testing.T) {
	rendered, err := NewPDFExporter().Render(sampleTimetable())
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(rendered), "%PDF"))
}
