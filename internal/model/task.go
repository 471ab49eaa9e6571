package model

type Task struct {
	ID          string  `json:"id"`
	UserID      string  `json:"-"`
	Title       string  `json:"title"`
	Done        bool    `json:"done"`
	CreatedAt   int64   `json:"createdAt"`
	DueDate     *string `json:"dueDate,omitempty"`
	IsRecurring *bool   `json:"isRecurring,omitempty"`
	Notes       *string `json:"notes,omitempty"`
}

// TaskPatch carries the fields of a partial task update; nil means unchanged.
type TaskPatch struct {
	Title       *string `json:"title"`
	Done        *bool   `json:"done"`
	DueDate     *string `json:"dueDate"`
	IsRecurring *bool   `json:"isRecurring"`
	Notes       *string `json:"notes"`
}
