package dto

// DailyStatDTO is one point on the dashboard charts.
type DailyStatDTO struct {
	Date                string  `json:"date"`
	CategoriesCompleted int     `json:"categories_completed"`
	CompletionRate      float64 `json:"completion_rate"`
	MoodAvg             float64 `json:"mood_avg"`
}

// MoodPointDTO is one point of the mood trend line. Days without a
// recorded mood are omitted.
type MoodPointDTO struct {
	Date    string  `json:"date"`
	MoodAvg float64 `json:"mood_avg"`
}

// StatsSummaryDTO condenses the 30-day window into the dashboard
// headline numbers. Averages cover tracked days only.
type StatsSummaryDTO struct {
	DaysTracked    int     `json:"days_tracked"`
	PerfectDays    int     `json:"perfect_days"`
	CompletionRate float64 `json:"completion_rate"`
	MoodAvg        float64 `json:"mood_avg"`
}
