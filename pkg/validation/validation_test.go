package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRuleSetValidateKeepsOrder(t *testing.T) {
	rs := RuleSet{
		Check("a", false, "first"),
		Check("b", true, "skipped"),
		Check("c", false, "second"),
	}

	result := rs.Validate()

	require.False(t, result.Valid)
	require.Len(t, result.Errors, 2)
	assert.Equal(t, Error{Field: "a", Message: "first"}, result.Errors[0])
	assert.Equal(t, Error{Field: "c", Message: "second"}, result.Errors[1])
	assert.Equal(t, []string{"first", "second"}, result.Messages())
}

func TestRuleSetValidateAllPass(t *testing.T) {
	rs := RuleSet{
		Check("a", true, "nope"),
		Check("b", true, "nope"),
	}

	result := rs.Validate()

	assert.True(t, result.Valid)
	assert.Empty(t, result.Errors)
	assert.Nil(t, result.Messages())
}

func TestEmptyRuleSetIsValid(t *testing.T) {
	assert.True(t, RuleSet{}.Validate().Valid)
}
