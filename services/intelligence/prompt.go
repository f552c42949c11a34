package ai

import (
	"encoding/json"
	"fmt"
	"strings"

	"shiffy/models"
)

const systemInstruction = `You build weekly shift schedules for a small shop.
Respect every "unavailable" entry. Prefer employees who marked a shift "preferred",
then "available". Spread shifts fairly across employees.
Answer with JSON only: {"assignments":[{"date":"YYYY-MM-DD","shift":"morning","employeeIds":["..."]}]}`

type promptPayload struct {
	WeekStart   string             `json:"week_start"`
	Days        []string           `json:"days"`
	Shifts      []string           `json:"shifts"`
	Preferences []promptPreference `json:"preferences"`
}

type promptPreference struct {
	EmployeeID   string `json:"employeeId"`
	EmployeeName string `json:"employeeName,omitempty"`
	Date         string `json:"date"`
	Shift        string `json:"shift"`
	Availability string `json:"availability"`
	Note         string `json:"note,omitempty"`
}

// BuildPrompt renders the week's preferences as the user turn sent to the model.
func BuildPrompt(req GenerationRequest) (string, error) {
	payload := promptPayload{
		WeekStart:   req.WeekStart,
		Days:        req.Days,
		Shifts:      models.Shifts,
		Preferences: make([]promptPreference, 0, len(req.Preferences)),
	}
	for _, p := range req.Preferences {
		payload.Preferences = append(payload.Preferences, promptPreference{
			EmployeeID:   p.EmployeeID,
			EmployeeName: p.EmployeeName,
			Date:         p.Date,
			Shift:        p.Shift,
			Availability: p.Availability,
			Note:         p.Note,
		})
	}

	b, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode prompt: %w", err)
	}
	return "Create the schedule for this week.\n" + string(b), nil
}

// ParseAssignments decodes the model's JSON answer. Markdown code fences
// around the JSON are tolerated.
func ParseAssignments(raw string) ([]models.ShiftAssignment, error) {
	text := strings.TrimSpace(raw)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("empty generator response")
	}

	var out struct {
		Assignments []models.ShiftAssignment `json:"assignments"`
	}
	if err := json.Unmarshal([]byte(text), &out); err != nil {
		return nil, fmt.Errorf("decode generator response: %w", err)
	}
	return out.Assignments, nil
}
