// internal/matching/personality_test.go

package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPersonalityScoreSelfMatches(t *testing.T) {
	a := traitMap{
		CategorySocialEnergy:  EnergyExtroverted,
		CategoryDecisionStyle: DecisionRational,
		CategoryLifePace:      PacePlanned,
	}
	b := traitMap{
		CategorySocialEnergy:  EnergyExtroverted,
		CategoryDecisionStyle: DecisionIntuitive,
		CategoryLifePace:      PacePlanned,
	}

	// energy and pace match, decision does not
	assert.Equal(t, 2, personalityScore(a, b, nil, nil))
}

func TestPersonalityScoreSymmetric(t *testing.T) {
	aSelf := traitMap{CategorySocialEnergy: EnergyIntroverted, CategoryLifePace: PaceFlexible}
	bSelf := traitMap{CategorySocialEnergy: EnergyExtroverted, CategoryDecisionStyle: DecisionBalanced}
	aIdeal := traitMap{CategoryIdealSocialStyle: IdealSocialWarmTalkative}
	bIdeal := traitMap{CategoryIdealActionStyle: IdealActionAdaptable}

	forward := personalityScore(aSelf, bSelf, aIdeal, bIdeal)
	backward := personalityScore(bSelf, aSelf, bIdeal, aIdeal)
	assert.Equal(t, forward, backward)
}

func TestIdealToSelfScore(t *testing.T) {
	tests := []struct {
		name  string
		ideal traitMap
		self  traitMap
		want  int
	}{
		{
			"empty ideal contributes nothing",
			traitMap{},
			traitMap{CategorySocialEnergy: EnergyExtroverted},
			0,
		},
		{
			"empty self contributes nothing",
			traitMap{CategoryIdealSocialStyle: IdealSocialFrequencyMatched},
			traitMap{},
			0,
		},
		{
			"warm talkative wants extroverted",
			traitMap{CategoryIdealSocialStyle: IdealSocialWarmTalkative},
			traitMap{CategorySocialEnergy: EnergyExtroverted},
			2,
		},
		{
			"warm talkative rejects introverted",
			traitMap{CategoryIdealSocialStyle: IdealSocialWarmTalkative},
			traitMap{CategorySocialEnergy: EnergyIntroverted},
			0,
		},
		{
			"calm reserved wants introverted",
			traitMap{CategoryIdealSocialStyle: IdealSocialCalmReserved},
			traitMap{CategorySocialEnergy: EnergyIntroverted},
			2,
		},
		{
			"frequency matched accepts any recorded energy",
			traitMap{CategoryIdealSocialStyle: IdealSocialFrequencyMatched},
			traitMap{CategorySocialEnergy: EnergySituational},
			2,
		},
		{
			"frequency matched still needs a recorded energy",
			traitMap{CategoryIdealSocialStyle: IdealSocialFrequencyMatched},
			traitMap{CategoryLifePace: PacePlanned},
			0,
		},
		{
			"meticulous wants planned pace",
			traitMap{CategoryIdealActionStyle: IdealActionMeticulous},
			traitMap{CategoryLifePace: PacePlanned},
			2,
		},
		{
			"meticulous rejects flexible pace",
			traitMap{CategoryIdealActionStyle: IdealActionMeticulous},
			traitMap{CategoryLifePace: PaceFlexible},
			0,
		},
		{
			"efficient accepts rational decision",
			traitMap{CategoryIdealActionStyle: IdealActionEfficient},
			traitMap{CategoryDecisionStyle: DecisionRational},
			2,
		},
		{
			"efficient accepts planned pace",
			traitMap{CategoryIdealActionStyle: IdealActionEfficient},
			traitMap{CategoryLifePace: PacePlanned},
			2,
		},
		{
			"adaptable accepts flexible pace",
			traitMap{CategoryIdealActionStyle: IdealActionAdaptable},
			traitMap{CategoryLifePace: PaceFlexible},
			2,
		},
		{
			"adaptable accepts balanced decision",
			traitMap{CategoryIdealActionStyle: IdealActionAdaptable},
			traitMap{CategoryDecisionStyle: DecisionBalanced},
			2,
		},
		{
			"adaptable rejects intuitive decision",
			traitMap{CategoryIdealActionStyle: IdealActionAdaptable},
			traitMap{CategoryDecisionStyle: DecisionIntuitive, CategorySocialEnergy: EnergyExtroverted},
			0,
		},
		{
			"steady accepts any recorded pace or decision",
			traitMap{CategoryIdealActionStyle: IdealActionSteady},
			traitMap{CategoryDecisionStyle: DecisionIntuitive},
			2,
		},
		{
			"emotional traits contribute nothing",
			traitMap{CategoryIdealEmotionalTrait: "warm"},
			traitMap{CategorySocialEnergy: EnergyExtroverted},
			0,
		},
		{
			"both ideal axes can stack",
			traitMap{
				CategoryIdealSocialStyle: IdealSocialWarmTalkative,
				CategoryIdealActionStyle: IdealActionEfficient,
			},
			traitMap{
				CategorySocialEnergy:  EnergyExtroverted,
				CategoryDecisionStyle: DecisionRational,
			},
			4,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, idealToSelfScore(tt.ideal, tt.self))
		})
	}
}

func TestCommunicationStyleMatched(t *testing.T) {
	direct := TraitOption("direct")
	gentle := TraitOption("gentle")

	assert.True(t, communicationStyleMatched(
		traitMap{CategoryCommunicationStyle: direct},
		traitMap{CategoryCommunicationStyle: direct},
	))
	assert.False(t, communicationStyleMatched(
		traitMap{CategoryCommunicationStyle: direct},
		traitMap{CategoryCommunicationStyle: gentle},
	))
	assert.False(t, communicationStyleMatched(
		traitMap{},
		traitMap{CategoryCommunicationStyle: direct},
	))
	assert.False(t, communicationStyleMatched(
		traitMap{CategoryCommunicationStyle: direct},
		traitMap{},
	))
}
