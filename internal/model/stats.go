package model

// Stats reports the progress of the inventory session in progress.
type Stats struct {
	TotalActive int `json:"total_active_objects"`
	Scanned     int `json:"scanned_count"`
	Unscanned   int `json:"unscanned_count"`
}
