package models

// Dashboard is the analytics summary shown on the landing page
type Dashboard struct {
	TasksCompleted   int            `json:"tasks_completed"`
	TotalTasks       int            `json:"total_tasks"`
	TasksByStatus    map[Status]int `json:"tasks_by_status"`
	TotalHoursLogged float64        `json:"total_hours_logged"`
	ActiveTimers     int            `json:"active_timers"`
	WeeklyActivity   []DayActivity  `json:"weekly_activity"`
	CompletionRate   float64        `json:"completion_rate"`
}

// DayActivity is the hours logged on one day
type DayActivity struct {
	Date  string  `json:"date"`
	Hours float64 `json:"hours"`
}

// PeakHours returns the largest daily value, used to scale bars
func (d Dashboard) PeakHours() float64 {
	peak := 0.0
	for _, day := range d.WeeklyActivity {
		if day.Hours > peak {
			peak = day.Hours
		}
	}
	return peak
}
