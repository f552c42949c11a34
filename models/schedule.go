package models

import "time"

const (
	ScheduleStatusDraft     = "draft"
	ScheduleStatusPublished = "published"
)

// Schedule is one shop's roster for a single week.
type Schedule struct {
	ID          string            `bson:"id" json:"id"`
	ShopID      string            `bson:"shopId" json:"shopId"`
	WeekStart   string            `bson:"weekStart" json:"week_start"` // YYYY-MM-DD, first day of the week
	Status      string            `bson:"status" json:"status"`        // "draft" or "published"
	Assignments []ShiftAssignment `bson:"assignments" json:"assignments"`
	Model       string            `bson:"model,omitempty" json:"model,omitempty"` // generator that produced it
	GeneratedAt time.Time         `bson:"generatedAt" json:"generatedAt"`
	PublishedAt *time.Time        `bson:"publishedAt,omitempty" json:"publishedAt,omitempty"`
}

// ShiftAssignment staffs one shift on one day.
type ShiftAssignment struct {
	Date        string   `bson:"date" json:"date"`
	Shift       string   `bson:"shift" json:"shift"`
	EmployeeIDs []string `bson:"employeeIds" json:"employeeIds"`
}

// WeekSchedule is one entry of a window response; Schedule is nil for weeks
// nobody has generated yet.
type WeekSchedule struct {
	WeekStart string    `json:"week_start"`
	Schedule  *Schedule `json:"schedule"`
}
