package constants

type TodoStatus string

const (
	StatusTodo  TodoStatus = "TODO"
	StatusDoing TodoStatus = "DOING"
	StatusDone  TodoStatus = "DONE"
)

func ValidStatus(s string) bool {
	switch TodoStatus(s) {
	case StatusTodo, StatusDoing, StatusDone:
		return true
	}
	return false
}

const (
	MinPriority     = 1
	MaxPriority     = 5
	DefaultPriority = 3
)

// PriorityLabels maps numeric priorities to their display names.
var PriorityLabels = map[int]string{
	1: "Very Low",
	2: "Low",
	3: "Medium",
	4: "High",
	5: "Critical",
}

const CategoryOther = "Other"

// Categories is the fixed taxonomy; classifier output outside this set
// is mapped to CategoryOther.
var Categories = []string{"Work", "Personal", "Learning", "Health", "Finance", CategoryOther}

func ValidCategory(c string) bool {
	for _, allowed := range Categories {
		if c == allowed {
			return true
		}
	}
	return false
}

const (
	MaxTitleLength       = 255
	MaxDescriptionLength = 1000
	MaxParseTextLength   = 500
	MaxEstimatedMinutes  = 1440
)

const (
	// LowConfidenceThreshold marks suggestions the caller should warn about.
	LowConfidenceThreshold = 0.5
	// AutoApplyThreshold gates which sub-suggestions are folded into a parsed draft.
	AutoApplyThreshold = 0.7
)

type RecommendationType string

const (
	RecommendationParse    RecommendationType = "parse"
	RecommendationPriority RecommendationType = "priority"
	RecommendationCategory RecommendationType = "category"
	RecommendationTime     RecommendationType = "time"
)
