package validators

import (
	"strings"
	"testing"

	dto "todo-assist.com/todo-assist/internal/data_models"
	apperrors "todo-assist.com/todo-assist/internal/errors"
)

func intPtr(v int) *int       { return &v }
func strPtr(v string) *string { return &v }

func TestValidateParseText(t *testing.T) {
	if err := ValidateParseText("call the bank tomorrow"); err != nil {
		t.Errorf("expected valid text, got %v", err)
	}
	if err := ValidateParseText("   "); !apperrors.IsValidation(err) {
		t.Errorf("expected validation error for blank text, got %v", err)
	}
	if err := ValidateParseText(strings.Repeat("x", 500)); err != nil {
		t.Errorf("expected 500 characters to pass, got %v", err)
	}
	if err := ValidateParseText(strings.Repeat("x", 501)); !apperrors.IsValidation(err) {
		t.Errorf("expected validation error for oversized text, got %v", err)
	}
}

func TestValidateCreateTodoRequest(t *testing.T) {
	cases := []struct {
		name    string
		req     dto.CreateTodoRequest
		wantErr bool
	}{
		{"minimal", dto.CreateTodoRequest{Title: "Buy milk"}, false},
		{"full", dto.CreateTodoRequest{
			Title:         "Plan trip",
			Description:   strPtr("Book flights and hotel"),
			Priority:      intPtr(4),
			Category:      strPtr("Personal"),
			EstimatedTime: intPtr(120),
		}, false},
		{"blank title", dto.CreateTodoRequest{Title: "  "}, true},
		{"title too long", dto.CreateTodoRequest{Title: strings.Repeat("a", 256)}, true},
		{"description too long", dto.CreateTodoRequest{
			Title:       "x",
			Description: strPtr(strings.Repeat("d", 1001)),
		}, true},
		{"priority too low", dto.CreateTodoRequest{Title: "x", Priority: intPtr(0)}, true},
		{"priority too high", dto.CreateTodoRequest{Title: "x", Priority: intPtr(6)}, true},
		{"unknown category", dto.CreateTodoRequest{Title: "x", Category: strPtr("Chores")}, true},
		{"zero estimate", dto.CreateTodoRequest{Title: "x", EstimatedTime: intPtr(0)}, true},
		{"estimate over cap", dto.CreateTodoRequest{Title: "x", EstimatedTime: intPtr(1441)}, true},
		{"estimate at cap", dto.CreateTodoRequest{Title: "x", EstimatedTime: intPtr(1440)}, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateCreateTodoRequest(&tc.req)
			if tc.wantErr && !apperrors.IsValidation(err) {
				t.Errorf("expected validation error, got %v", err)
			}
			if !tc.wantErr && err != nil {
				t.Errorf("expected no error, got %v", err)
			}
		})
	}
}

func TestValidateStatus(t *testing.T) {
	for _, s := range []string{"TODO", "DOING", "DONE"} {
		if err := ValidateStatus(s); err != nil {
			t.Errorf("expected %s to be valid, got %v", s, err)
		}
	}
	for _, s := range []string{"", "todo", "ARCHIVED"} {
		if err := ValidateStatus(s); err != apperrors.ErrInvalidStatus {
			t.Errorf("expected invalid status error for %q, got %v", s, err)
		}
	}
}

func TestNormalizeListQuery_Defaults(t *testing.T) {
	q := dto.ListQuery{}
	if err := NormalizeListQuery(&q); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if q.Page != 1 || q.PageSize != 20 {
		t.Errorf("expected default page 1 size 20, got %d/%d", q.Page, q.PageSize)
	}
	if q.SortBy != "created_at" || q.Order != "desc" {
		t.Errorf("expected default sort created_at desc, got %s %s", q.SortBy, q.Order)
	}
}

func TestNormalizeListQuery_CapsPageSize(t *testing.T) {
	q := dto.ListQuery{PageSize: 500}
	if err := NormalizeListQuery(&q); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if q.PageSize != 100 {
		t.Errorf("expected page size capped at 100, got %d", q.PageSize)
	}
}

func TestNormalizeListQuery_SortWhitelist(t *testing.T) {
	q := dto.ListQuery{SortBy: "id; drop table todos", Order: "sideways"}
	if err := NormalizeListQuery(&q); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if q.SortBy != "created_at" {
		t.Errorf("expected fallback sort column, got %q", q.SortBy)
	}
	if q.Order != "desc" {
		t.Errorf("expected fallback order desc, got %q", q.Order)
	}

	q = dto.ListQuery{SortBy: "priority", Order: "asc"}
	if err := NormalizeListQuery(&q); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if q.SortBy != "priority" || q.Order != "asc" {
		t.Errorf("expected whitelisted sort kept, got %s %s", q.SortBy, q.Order)
	}
}

func TestNormalizeListQuery_RejectsBadFilters(t *testing.T) {
	q := dto.ListQuery{Status: "BOGUS"}
	if err := NormalizeListQuery(&q); err != apperrors.ErrInvalidStatus {
		t.Errorf("expected invalid status error, got %v", err)
	}

	q = dto.ListQuery{Category: "Chores"}
	if err := NormalizeListQuery(&q); !apperrors.IsValidation(err) {
		t.Errorf("expected validation error, got %v", err)
	}

	q = dto.ListQuery{Priority: intPtr(7)}
	if err := NormalizeListQuery(&q); !apperrors.IsValidation(err) {
		t.Errorf("expected validation error, got %v", err)
	}
}
