package models

import "time"

type Attendance struct {
	ID   int64     `json:"id"`
	Name string    `json:"name"`
	Date time.Time `json:"date"`
}

type AttendanceInput struct {
	Name string `json:"name" validate:"required|maxLen:50"`
}

// AttendanceBoard is the attendance section as shown on the page.
type AttendanceBoard struct {
	Today   int          `json:"today"`
	Total   int          `json:"total"`
	Entries []Attendance `json:"entries"`
}
