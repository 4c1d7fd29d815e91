package validators

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"todo-assist.com/todo-assist/internal/constants"
	dto "todo-assist.com/todo-assist/internal/data_models"
	apperrors "todo-assist.com/todo-assist/internal/errors"
)

func ValidateCreateTodoRequest(r *dto.CreateTodoRequest) error {
	if err := validateTitle(r.Title); err != nil {
		return err
	}
	if err := validateDescription(r.Description); err != nil {
		return err
	}
	if err := ValidatePriority(r.Priority); err != nil {
		return err
	}
	if err := validateCategory(r.Category); err != nil {
		return err
	}
	return validateEstimatedTime(r.EstimatedTime)
}

func ValidateUpdateTodoRequest(r *dto.UpdateTodoRequest) error {
	if r.Title != nil {
		if err := validateTitle(*r.Title); err != nil {
			return err
		}
	}
	if err := validateDescription(r.Description); err != nil {
		return err
	}
	if err := ValidatePriority(r.Priority); err != nil {
		return err
	}
	if err := validateCategory(r.Category); err != nil {
		return err
	}
	return validateEstimatedTime(r.EstimatedTime)
}

// ValidateTodoInput checks the task context sent to the enrichment
// engine. Only a title is mandatory.
func ValidateTodoInput(t *dto.TodoInput) error {
	if err := validateTitle(t.Title); err != nil {
		return err
	}
	if err := validateDescription(t.Description); err != nil {
		return err
	}
	if err := ValidatePriority(t.Priority); err != nil {
		return err
	}
	if err := validateCategory(t.Category); err != nil {
		return err
	}
	return validateEstimatedTime(t.EstimatedTime)
}

func ValidateParseText(text string) error {
	if strings.TrimSpace(text) == "" {
		return apperrors.NewValidation("text is required")
	}
	if utf8.RuneCountInString(text) > constants.MaxParseTextLength {
		return apperrors.NewValidation(fmt.Sprintf("text must be at most %d characters", constants.MaxParseTextLength))
	}
	return nil
}

func ValidateStatus(status string) error {
	if !constants.ValidStatus(status) {
		return apperrors.ErrInvalidStatus
	}
	return nil
}

var sortableColumns = map[string]bool{
	"created_at": true,
	"updated_at": true,
	"priority":   true,
	"title":      true,
}

// NormalizeListQuery applies defaults and rejects filters that could
// never match. Unknown sort columns fall back to created_at.
func NormalizeListQuery(q *dto.ListQuery) error {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PageSize < 1 {
		q.PageSize = 20
	}
	if q.PageSize > 100 {
		q.PageSize = 100
	}

	if q.Status != "" {
		if err := ValidateStatus(q.Status); err != nil {
			return err
		}
	}
	if q.Category != "" && !constants.ValidCategory(q.Category) {
		return apperrors.NewValidation("unknown category filter")
	}
	if err := ValidatePriority(q.Priority); err != nil {
		return err
	}

	if !sortableColumns[q.SortBy] {
		q.SortBy = "created_at"
	}
	if q.Order != "asc" && q.Order != "desc" {
		q.Order = "desc"
	}

	return nil
}

func validateTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return apperrors.NewValidation("title is required")
	}
	if utf8.RuneCountInString(title) > constants.MaxTitleLength {
		return apperrors.NewValidation(fmt.Sprintf("title must be at most %d characters", constants.MaxTitleLength))
	}
	return nil
}

func validateDescription(description *string) error {
	if description == nil {
		return nil
	}
	if utf8.RuneCountInString(*description) > constants.MaxDescriptionLength {
		return apperrors.NewValidation(fmt.Sprintf("description must be at most %d characters", constants.MaxDescriptionLength))
	}
	return nil
}

// ValidatePriority rejects out-of-range values outright; user input is
// never clamped.
func ValidatePriority(priority *int) error {
	if priority == nil {
		return nil
	}
	if *priority < constants.MinPriority || *priority > constants.MaxPriority {
		return apperrors.NewValidation(fmt.Sprintf("priority must be between %d and %d", constants.MinPriority, constants.MaxPriority))
	}
	return nil
}

func validateCategory(category *string) error {
	if category == nil || *category == "" {
		return nil
	}
	if !constants.ValidCategory(*category) {
		return apperrors.NewValidation(fmt.Sprintf("category must be one of %s", strings.Join(constants.Categories, ", ")))
	}
	return nil
}

func validateEstimatedTime(minutes *int) error {
	if minutes == nil {
		return nil
	}
	if *minutes <= 0 {
		return apperrors.NewValidation("estimated_time must be a positive number of minutes")
	}
	if *minutes > constants.MaxEstimatedMinutes {
		return apperrors.NewValidation(fmt.Sprintf("estimated_time cannot exceed %d minutes", constants.MaxEstimatedMinutes))
	}
	return nil
}
