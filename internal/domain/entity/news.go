package entity

// NewsItem represents one aggregated feed entry in the daily digest.
// The JSON tags define the on-disk cache record layout.
type NewsItem struct {
	Title     string `json:"title"`
	Summary   string `json:"summary"`
	Content   string `json:"content"`
	Link      string `json:"link"`
	Published string `json:"published"`
	Source    string `json:"source"`
}
