package dto

// CreateTodoRequest carries user input for a new todo. Omitted fields
// take the store defaults.
type CreateTodoRequest struct {
	Title         string  `json:"title"`
	Description   *string `json:"description"`
	Priority      *int    `json:"priority"`
	Category      *string `json:"category"`
	EstimatedTime *int    `json:"estimated_time"`
}

// UpdateTodoRequest is a partial update; nil fields are left untouched.
type UpdateTodoRequest struct {
	Title         *string `json:"title"`
	Description   *string `json:"description"`
	Priority      *int    `json:"priority"`
	Category      *string `json:"category"`
	EstimatedTime *int    `json:"estimated_time"`
}

type StatusUpdateRequest struct {
	Status string `json:"status"`
}

type ParseRequest struct {
	Text string `json:"text"`
}

// TodoInput is the task context handed to the enrichment engine. Only
// Title is required.
type TodoInput struct {
	Title         string  `json:"title"`
	Description   *string `json:"description"`
	Priority      *int    `json:"priority"`
	Category      *string `json:"category"`
	EstimatedTime *int    `json:"estimated_time"`
	Status        string  `json:"status,omitempty"`
}

type SuggestionRequest struct {
	Todo TodoInput `json:"todo"`
}

type BatchAnalysisRequest struct {
	Todos []TodoInput `json:"todos"`
}

// ListQuery holds the normalized filters for listing todos.
type ListQuery struct {
	Page     int
	PageSize int
	Status   string
	Category string
	Priority *int
	SortBy   string
	Order    string
}
