package domain

type DailyData struct {
	Date           string `json:"date"`
	Label          string `json:"label"`
	FocusMinutes   int    `json:"focusMinutes"`
	TasksCompleted int    `json:"tasksCompleted"`
}

type CategoryData struct {
	Category Category `json:"category"`
	Hours    float64  `json:"hours"`
}

type Totals struct {
	TotalFocusHours     float64 `json:"totalFocusHours"`
	TotalTasksCompleted int     `json:"totalTasksCompleted"`
	AvgDailyFocus       int     `json:"avgDailyFocus"`
	AvgDailyTasks       float64 `json:"avgDailyTasks"`
	ProductiveDays      int     `json:"productiveDays"`
}

// HeatmapDay is one cell of the month activity heatmap, intensity 0..4.
type HeatmapDay struct {
	Date      string `json:"date"`
	Weekday   int    `json:"weekday"`
	Intensity int    `json:"intensity"`
}

type GoalProgress struct {
	FocusMinutes int     `json:"focusMinutes"`
	GoalMinutes  int     `json:"goalMinutes"`
	Percent      float64 `json:"percent"`
}
