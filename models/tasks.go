package models

// GenerationPayload is the asynq payload for a background schedule generation.
type GenerationPayload struct {
	ShopID    string `json:"shopId"`
	WeekStart string `json:"week_start"`
}
