package hooks

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mimiru/mimiru/internal/actions"
)

func TestMutation_DoReturnsResult(t *testing.T) {
	mutation := NewMutation(func(input string) actions.Result[string] {
		return actions.Ok(input + "!")
	})

	result := mutation.Do("create")
	require.True(t, result.Success())
	assert.Equal(t, "create!", result.Data())
	assert.False(t, mutation.Loading())
	assert.Empty(t, mutation.Err())
}

func TestMutation_FailureIsRecorded(t *testing.T) {
	mutation := NewMutation(func(input string) actions.Result[string] {
		return actions.Err[string]("Title must be at least 3 characters long")
	})

	result := mutation.Do("ab")
	require.False(t, result.Success())
	assert.Equal(t, "Title must be at least 3 characters long", mutation.Err())
}

func TestMutation_NewInvocationClearsError(t *testing.T) {
	var fail bool
	mutation := NewMutation(func(input string) actions.Result[string] {
		if fail {
			return actions.Err[string]("boom")
		}
		return actions.Ok(input)
	})

	fail = true
	mutation.Do("first")
	require.Equal(t, "boom", mutation.Err())

	fail = false
	mutation.Do("second")
	assert.Empty(t, mutation.Err())
}

func TestMutation_LoadingDuringInvocation(t *testing.T) {
	var observed bool
	var mutation *Mutation[string, string]
	mutation = NewMutation(func(input string) actions.Result[string] {
		observed = mutation.Loading()
		return actions.Ok(input)
	})

	mutation.Do("check")
	assert.True(t, observed)
}
