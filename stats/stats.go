// Package stats derives the dashboard aggregates from a list of tasks.
package stats

import (
	"math"
	"strconv"

	"TareasWeb/dates"
	"TareasWeb/models"
)

// NoData is shown as the most active date when there are no tasks.
const NoData = "No hay datos"

// DateCount is the number of tasks starting on one calendar day.
type DateCount struct {
	// Label is the es-CO short date, the key of the per-date mapping.
	Label string
	// Day is the same date as yyyy-mm-dd, empty when the start date could not be parsed.
	Day   string
	Count int
}

// Summary holds every figure the statistics view shows.
type Summary struct {
	Total            int
	Completed        int
	Pending          int
	CompletedPercent int
	PendingPercent   int
	// ByDate is ordered by first appearance in the task list.
	ByDate     []DateCount
	MostActive string
	Average    string
}

// Compute aggregates tasks. It never calls the task service.
func Compute(tasks []models.Task) Summary {
	s := Summary{Total: len(tasks)}
	index := map[string]int{}
	for _, t := range tasks {
		if t.Completado {
			s.Completed++
		}
		label := dates.Short(t.FechaInicio)
		i, seen := index[label]
		if !seen {
			i = len(s.ByDate)
			index[label] = i
			s.ByDate = append(s.ByDate, DateCount{Label: label, Day: dates.ISO(t.FechaInicio)})
		}
		s.ByDate[i].Count++
	}
	s.Pending = s.Total - s.Completed
	s.CompletedPercent = percent(s.Completed, s.Total)
	s.PendingPercent = percent(s.Pending, s.Total)
	s.MostActive = mostActive(s.ByDate)
	s.Average = average(s.Total, len(s.ByDate))
	return s
}

// Labels returns the per-date keys in mapping order.
func (s Summary) Labels() []string {
	out := make([]string, len(s.ByDate))
	for i, dc := range s.ByDate {
		out[i] = dc.Label
	}
	return out
}

// Counts returns the per-date counts in mapping order.
func (s Summary) Counts() []int {
	out := make([]int, len(s.ByDate))
	for i, dc := range s.ByDate {
		out[i] = dc.Count
	}
	return out
}

func percent(part, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(part) / float64(total) * 100))
}

// mostActive keeps the first date reaching the highest count.
func mostActive(byDate []DateCount) string {
	if len(byDate) == 0 {
		return NoData
	}
	best := byDate[0]
	for _, dc := range byDate[1:] {
		if dc.Count > best.Count {
			best = dc
		}
	}
	return best.Label
}

// average is total/days to one decimal, halves rounded up.
func average(total, days int) string {
	if days == 0 {
		return "0"
	}
	tenths := (20*total + days) / (2 * days)
	return strconv.Itoa(tenths/10) + "." + strconv.Itoa(tenths%10)
}
