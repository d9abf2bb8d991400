package fares

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/travigo/hkmtr/pkg/network"
)

func TestRulesDerive(t *testing.T) {
	rules, err := CompileRules(map[Class]string{
		ClassStudent: "adult * 0.5",
		ClassChild:   "adult / 2",
		ClassSingle:  "interchanges > 0 ? adult + 1 : adult",
	})
	require.NoError(t, err)

	assert.Equal(t, []Class{ClassChild, ClassSingle, ClassStudent}, rules.Classes())
	assert.Equal(t, "adult / 2", rules.Source(ClassChild))

	student, err := rules.Derive(ClassStudent, RuleEnv{Adult: 9.1}, 10)
	require.NoError(t, err)
	assert.Equal(t, network.Cost(460), student)

	child, err := rules.Derive(ClassChild, RuleEnv{Adult: 10}, 10)
	require.NoError(t, err)
	assert.Equal(t, network.Cost(500), child)

	single, err := rules.Derive(ClassSingle, RuleEnv{Adult: 10, Interchanges: 1}, 10)
	require.NoError(t, err)
	assert.Equal(t, network.Cost(1100), single)

	single, err = rules.Derive(ClassSingle, RuleEnv{Adult: 10}, 10)
	require.NoError(t, err)
	assert.Equal(t, network.Cost(1000), single)
}

func TestRulesDeriveRoundsOnce(t *testing.T) {
	rules, err := CompileRules(map[Class]string{
		ClassStudent: "adult * 0.6993",
		ClassChild:   "adult * 0.7",
	})
	require.NoError(t, err)

	tests := []struct {
		class    Class
		adult    float64
		unit     network.Cost
		expected network.Cost
	}{
		// 1.04895 is below the half way point of 1.0 and 1.1
		{ClassStudent, 1.5, 10, 100},
		{ClassStudent, 1.5, 1, 105},
		{ClassChild, 1.5, 10, 110},
		{ClassChild, 6.5, 10, 460},
		{ClassChild, 6.5, 0, 455},
	}

	for _, test := range tests {
		derived, err := rules.Derive(test.class, RuleEnv{Adult: test.adult}, test.unit)
		require.NoError(t, err)
		assert.Equal(t, test.expected, derived, "%s %v unit %d", test.class, test.adult, test.unit)
	}
}

func TestRoundDollarsHalfUp(t *testing.T) {
	assert.Equal(t, network.Cost(460), RoundDollarsHalfUp(4.55, 10))
	assert.Equal(t, network.Cost(450), RoundDollarsHalfUp(4.549, 10))
	assert.Equal(t, network.Cost(500), RoundDollarsHalfUp(4.5, 100))
	assert.Equal(t, network.Cost(0), RoundDollarsHalfUp(0, 10))
}

func TestRulesErrors(t *testing.T) {
	_, err := CompileRules(map[Class]string{ClassAdult: "1"})
	assert.ErrorIs(t, err, network.ErrInvalidData)

	_, err = CompileRules(map[Class]string{ClassChild: "adult *"})
	assert.ErrorIs(t, err, network.ErrInvalidData)

	_, err = CompileRules(map[Class]string{ClassChild: "unknown_variable + 1"})
	assert.ErrorIs(t, err, network.ErrInvalidData)

	rules, err := CompileRules(map[Class]string{ClassChild: "adult - 100"})
	require.NoError(t, err)

	_, err = rules.Derive(ClassChild, RuleEnv{Adult: 10}, 10)
	assert.ErrorIs(t, err, network.ErrInvalidData)

	_, err = rules.Derive(ClassStudent, RuleEnv{Adult: 10}, 10)
	assert.ErrorIs(t, err, network.ErrNotFound)

	huge, err := CompileRules(map[Class]string{ClassSingle: "adult * 1e300"})
	require.NoError(t, err)
	_, err = huge.Derive(ClassSingle, RuleEnv{Adult: 10}, 10)
	assert.ErrorIs(t, err, network.ErrInvalidData)

	var none *Rules
	_, err = none.Derive(ClassStudent, RuleEnv{Adult: 10}, 10)
	assert.ErrorIs(t, err, network.ErrNotFound)
	assert.Empty(t, none.Classes())
}
