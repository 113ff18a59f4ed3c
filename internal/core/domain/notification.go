package domain

type Notification struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}
