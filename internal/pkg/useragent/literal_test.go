package useragent

import (
	"reflect"
	"testing"
)

func TestExtractLiteralsSimple(t *testing.T) {
	got := extractLiterals("Firefox/", 3)
	want := []string{"firefox/"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("extractLiterals(Firefox/) = %v, want %v", got, want)
	}
}

func TestExtractLiteralsAlternation(t *testing.T) {
	got := extractLiterals("Firefox|Chrome", 3)
	want := []string{"firefox", "chrome"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("extractLiterals(Firefox|Chrome) = %v, want %v", got, want)
	}
}

func TestExtractLiteralsTooShortReturnsEmpty(t *testing.T) {
	if got := extractLiterals(`\d+\.\d+`, 3); got != nil {
		t.Errorf("extractLiterals(%q) = %v, want nil", `\d+\.\d+`, got)
	}
}

func TestExtractLiteralsOneBranchWithoutLiteralPoisonsAll(t *testing.T) {
	if got := extractLiterals(`Firefox|.*`, 3); got != nil {
		t.Errorf("expected nil when one alternative has no usable literal, got %v", got)
	}
}

func TestExtractLiteralsQuantifiedCharDropped(t *testing.T) {
	// The 'x' before '+' is not unconditionally present, so it must not be
	// included in the claimed literal.
	got := extractLiterals("abx+", 2)
	want := []string{"ab"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("extractLiterals(abx+) = %v, want %v", got, want)
	}
}

func TestSplitTopLevelAlternativesNesting(t *testing.T) {
	got := splitTopLevelAlternatives("a(b|c)d|e")
	want := []string{"a(b|c)d", "e"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("splitTopLevelAlternatives = %v, want %v", got, want)
	}
}

func TestSplitTopLevelAlternativesUnbalanced(t *testing.T) {
	if got := splitTopLevelAlternatives("a(b|c"); got != nil {
		t.Errorf("expected nil for unbalanced parens, got %v", got)
	}
}
