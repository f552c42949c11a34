package models

import "time"

// Shift names accepted in preferences and assignments.
const (
	ShiftMorning   = "morning"
	ShiftAfternoon = "afternoon"
	ShiftEvening   = "evening"
	ShiftNight     = "night"
)

const (
	AvailabilityPreferred   = "preferred"
	AvailabilityAvailable   = "available"
	AvailabilityUnavailable = "unavailable"
)

var Shifts = []string{ShiftMorning, ShiftAfternoon, ShiftEvening, ShiftNight}

var Availabilities = []string{AvailabilityPreferred, AvailabilityAvailable, AvailabilityUnavailable}

// ShiftPreference is one employee's stated availability for one shift.
type ShiftPreference struct {
	ID           string    `bson:"id" json:"id"`
	ShopID       string    `bson:"shopId" json:"shopId"`
	EmployeeID   string    `bson:"employeeId" json:"employeeId"`
	EmployeeName string    `bson:"employeeName,omitempty" json:"employeeName,omitempty"`
	WeekStart    string    `bson:"weekStart" json:"week_start"`
	Date         string    `bson:"date" json:"date"`
	Shift        string    `bson:"shift" json:"shift"`
	Availability string    `bson:"availability" json:"availability"`
	Note         string    `bson:"note,omitempty" json:"note,omitempty"`
	CreatedAt    time.Time `bson:"createdAt" json:"createdAt"`
}

// PreferenceEntry is the client-supplied part of a ShiftPreference.
type PreferenceEntry struct {
	Date         string `json:"date" binding:"required"`
	Shift        string `json:"shift" binding:"required"`
	Availability string `json:"availability" binding:"required"`
	Note         string `json:"note,omitempty"`
}

// SubmitPreferencesRequest replaces an employee's preferences for one week.
type SubmitPreferencesRequest struct {
	WeekStart    string            `json:"week_start" binding:"required"`
	EmployeeName string            `json:"employeeName"`
	Entries      []PreferenceEntry `json:"entries" binding:"required,min=1,dive"`
}
