package generator

import (
	"reflect"
	"testing"
)

func TestParseStringList_PlainJSON(t *testing.T) {
	got, err := ParseStringList(`["alpha", "bravo", "charlie"]`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"alpha", "bravo", "charlie"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestParseStringList_CodeFences(t *testing.T) {
	got, err := ParseStringList("```json\n[\"alpha\", \"bravo\"]\n```")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 || got[0] != "alpha" {
		t.Errorf("unexpected result %v", got)
	}

	got, err = ParseStringList("```\n[\"solo\"]\n```")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0] != "solo" {
		t.Errorf("unexpected result %v", got)
	}
}

func TestParseStringList_FiltersBlankEntries(t *testing.T) {
	got, err := ParseStringList(`["keep", "  ", "", " also kept "]`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"keep", "also kept"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestParseStringList_InvalidJSON(t *testing.T) {
	if _, err := ParseStringList("here are some questions: 1. What?"); err == nil {
		t.Error("expected error for non-JSON response")
	}
}

func TestCleanGeneratedText(t *testing.T) {
	got := CleanGeneratedText("  The <extra_id_0> cat sat <extra_id_12>  on the mat  ")
	want := "The cat sat on the mat"
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestCleanPromptText_StripsInstructionPrefix(t *testing.T) {
	got := CleanPromptText("Generate question:  What is photosynthesis")
	want := "What is photosynthesis"
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}
