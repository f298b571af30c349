package ruleerrors

import (
	"errors"
	"testing"

	pkgerrors "github.com/pkg/errors"
)

func TestWrappedRuleError(t *testing.T) {
	outer := pkgerrors.Wrapf(ErrAuxPowWrongIndex, "chain index %d, expected %d", 3, 5)
	expectedOuterErr := "chain index 3, expected 5: ErrAuxPowWrongIndex"

	if !errors.Is(outer, ErrAuxPowWrongIndex) {
		t.Fatal("TestWrappedRuleError: Outer should wrap ErrAuxPowWrongIndex")
	}
	if errors.Is(outer, ErrAuxPowBadTreeSize) {
		t.Fatal("TestWrappedRuleError: Outer should not match ErrAuxPowBadTreeSize")
	}

	rule := &RuleError{}
	if !errors.As(outer, rule) {
		t.Fatal("TestWrappedRuleError: Outer should contain RuleError in it")
	}
	if rule.message != "ErrAuxPowWrongIndex" {
		t.Fatalf("TestWrappedRuleError: Expected message = 'ErrAuxPowWrongIndex', found: '%s'", rule.message)
	}
	if !IsRuleError(outer) {
		t.Fatal("TestWrappedRuleError: IsRuleError should be true for a wrapped rule error")
	}

	if outer.Error() != expectedOuterErr {
		t.Fatalf("TestWrappedRuleError: Expected %s. found: %s", expectedOuterErr, outer.Error())
	}
}

func TestIsRuleErrorOnPlainError(t *testing.T) {
	if IsRuleError(pkgerrors.New("unexpected EOF")) {
		t.Fatal("TestIsRuleErrorOnPlainError: a plain error is not a rule error")
	}
	if IsRuleError(nil) {
		t.Fatal("TestIsRuleErrorOnPlainError: nil is not a rule error")
	}
}
