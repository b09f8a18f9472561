package model

// Link is a markdown link extracted from a watched file
type Link struct {
	Text string `json:"text"`
	URL  string `json:"url"`
}

// BrokenLink records a link that failed verification
type BrokenLink struct {
	File   string `json:"file"`
	Text   string `json:"text"`
	URL    string `json:"url"`
	Status int    `json:"status,omitempty"`
	Error  string `json:"error,omitempty"`
}
