package guard_test

import (
	"errors"
	"testing"

	"alltown/internal/pkg/guard"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructorGuard_Validate(t *testing.T) {
	t.Run("constructed_guard_returns_nil", func(t *testing.T) {
		g := guard.NewConstructorGuard()

		require.NoError(t, g.Validate(errors.New("not constructed")))
		require.NoError(t, g.Validate(nil))
	})

	t.Run("zero_value_guard_returns_custom_error", func(t *testing.T) {
		var g guard.ConstructorGuard
		expectedError := errors.New("entity not constructed")

		err := g.Validate(expectedError)

		require.Error(t, err)
		assert.Equal(t, expectedError, err)
	})

	t.Run("zero_value_guard_returns_default_error_when_nil", func(t *testing.T) {
		var g guard.ConstructorGuard

		err := g.Validate(nil)

		require.Error(t, err)
		assert.Equal(t, guard.ErrDefaultConstructorGuard, err)
	})

	t.Run("default_error_has_meaningful_message", func(t *testing.T) {
		assert.Equal(t, "object must be created via its constructor", guard.ErrDefaultConstructorGuard.Error())
	})
}

// Exercises the intended embedding pattern: a guarded value object whose
// zero value fails validation while constructed instances pass.
func TestConstructorGuardEmbedding(t *testing.T) {
	type schedule struct {
		baseFee int
		guard   guard.ConstructorGuard
	}

	errScheduleNotConstructed := errors.New("schedule must be created via newSchedule")

	newSchedule := func(baseFee int) (schedule, error) {
		if baseFee < 0 {
			return schedule{}, errors.New("base fee cannot be negative")
		}
		return schedule{baseFee: baseFee, guard: guard.NewConstructorGuard()}, nil
	}

	t.Run("constructed_instance_passes", func(t *testing.T) {
		s, err := newSchedule(5)
		require.NoError(t, err)
		require.NoError(t, s.guard.Validate(errScheduleNotConstructed))
	})

	t.Run("zero_value_fails", func(t *testing.T) {
		var s schedule
		err := s.guard.Validate(errScheduleNotConstructed)
		require.Error(t, err)
		assert.Equal(t, errScheduleNotConstructed, err)
	})
}
