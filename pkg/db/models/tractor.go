package models

// Tractor is a catalog entry.
type Tractor struct {
	ID      string `json:"id"`
	Brand   string `json:"brand"`
	Model   string `json:"model"`
	Variant string `json:"variant,omitempty"`
	HP      int    `json:"hp"`
	Image   string `json:"image,omitempty"`
	VideoID string `json:"video_id,omitempty"`
}

func (t Tractor) Key() string { return t.ID }
