package models

// WeekWindowResponse is returned by the week window endpoints.
type WeekWindowResponse struct {
	ReferenceDate string   `json:"referenceDate"`
	WeekStartsOn  string   `json:"weekStartsOn"`
	Center        string   `json:"center"`
	Weeks         []string `json:"weeks"`
}
