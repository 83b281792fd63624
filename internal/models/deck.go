package models

// Slide is one pitch-deck page. Slides are generated in bulk per pitch
// request and held only for the current view.
type Slide struct {
	Title   string   `json:"title"`
	Bullets []string `json:"bullets"`
}
