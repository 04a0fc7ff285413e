package models

type HobbyStat struct {
	Hobby
	Share float64 `json:"share"`
	Posts int     `json:"posts"`
}

// ChartSeries feeds both the bar and the doughnut chart.
type ChartSeries struct {
	Labels           []string `json:"labels"`
	Data             []int    `json:"data"`
	BackgroundColors []string `json:"background_colors"`
	BorderColors     []string `json:"border_colors"`
	AccentColors     []string `json:"accent_colors"`
}

type Summary struct {
	VisitorCount    int         `json:"visitor_count"`
	TotalMembers    int         `json:"total_members"`
	TotalPosts      int         `json:"total_posts"`
	TodayAttendance int         `json:"today_attendance"`
	TotalAttendance int         `json:"total_attendance"`
	Hobbies         []HobbyStat `json:"hobbies"`
	Chart           ChartSeries `json:"chart"`
}
