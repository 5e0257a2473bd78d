package types_test

import (
	"strings"
	"testing"

	"github.com/civic-lab/fixpoint/pkg/domain/types"
)

func TestIssueStatusValidation(t *testing.T) {
	tests := []struct {
		name     string
		status   types.IssueStatus
		expected bool
	}{
		{"Valid open", types.IssueStatusOpen, true},
		{"Valid triaged", types.IssueStatusTriaged, true},
		{"Valid in_progress", types.IssueStatusInProgress, true},
		{"Valid resolved", types.IssueStatusResolved, true},
		{"Valid closed", types.IssueStatusClosed, true},
		{"Invalid empty", types.IssueStatus(""), false},
		{"Invalid mixed case", types.IssueStatus("Open"), false},
		{"Invalid unknown", types.IssueStatus("archived"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.status.IsValid()
			if result != tt.expected {
				t.Errorf("IssueStatus(%q).IsValid() = %v, want %v", tt.status, result, tt.expected)
			}
		})
	}
}

func TestIssueStatusTerminal(t *testing.T) {
	if !types.IssueStatusClosed.IsTerminal() {
		t.Error("closed should be terminal")
	}
	for _, s := range []types.IssueStatus{
		types.IssueStatusOpen,
		types.IssueStatusTriaged,
		types.IssueStatusInProgress,
		types.IssueStatusResolved,
	} {
		if s.IsTerminal() {
			t.Errorf("IssueStatus(%q) should not be terminal", s)
		}
	}
}

func TestParseCategory(t *testing.T) {
	tests := []struct {
		input    string
		expected types.Category
	}{
		{"safety", types.CategorySafety},
		{"hvac", types.CategoryHVAC},
		{"it_equipment", types.CategoryITEquipment},
		{"other", types.CategoryOther},
		{"", types.CategoryOther},
		{"paranormal", types.CategoryOther},
		{"HVAC", types.CategoryOther},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			result := types.ParseCategory(tt.input)
			if result != tt.expected {
				t.Errorf("ParseCategory(%q) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}

func TestCategoriesCoversAll(t *testing.T) {
	all := types.Categories()
	if len(all) != 10 {
		t.Errorf("Categories() returned %d entries, want 10", len(all))
	}
	for _, c := range all {
		if !c.IsValid() {
			t.Errorf("Categories() contains invalid category %q", c)
		}
	}
}

func TestIssueIDValidate(t *testing.T) {
	if err := types.IssueID(1).Validate(); err != nil {
		t.Errorf("IssueID(1).Validate() = %v, want nil", err)
	}
	if err := types.IssueID(0).Validate(); err == nil {
		t.Error("IssueID(0).Validate() = nil, want error")
	}
	if err := types.IssueID(-5).Validate(); err == nil {
		t.Error("IssueID(-5).Validate() = nil, want error")
	}
}

func TestNewVoteID(t *testing.T) {
	id := types.NewVoteID()
	if !strings.HasPrefix(id.String(), "vote-") {
		t.Errorf("NewVoteID() = %q, want vote- prefix", id)
	}
	if id == types.NewVoteID() {
		t.Error("NewVoteID() returned duplicate IDs")
	}
}

func TestNewStatusHistoryID(t *testing.T) {
	id := types.NewStatusHistoryID()
	if err := id.Validate(); err != nil {
		t.Errorf("generated ID failed validation: %v", err)
	}

	// UUID v7 layout: 8-4-4-4-12 hex digits with version nibble 7
	parts := strings.Split(id.String(), "-")
	if len(parts) != 5 {
		t.Fatalf("ID %q is not dash-separated into 5 groups", id)
	}
	if !strings.HasPrefix(parts[2], "7") {
		t.Errorf("ID %q does not carry UUID version 7", id)
	}

	if id == types.NewStatusHistoryID() {
		t.Error("NewStatusHistoryID() returned duplicate IDs")
	}
}
