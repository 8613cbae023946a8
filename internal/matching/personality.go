// internal/matching/personality.go
// Personality-trait matching: self-to-self category equality plus the
// ideal-to-self cross mapping, evaluated in both directions.

package matching

// TraitCategory names a questionnaire category. Self categories describe
// the user; ideal categories describe the desired partner.
type TraitCategory string

const (
	// Self categories
	CategorySocialEnergy       TraitCategory = "social_energy_source"
	CategoryDecisionStyle      TraitCategory = "decision_style"
	CategoryLifePace           TraitCategory = "life_pace"
	CategoryCommunicationStyle TraitCategory = "communication_style"

	// Ideal categories
	CategoryIdealSocialStyle    TraitCategory = "ideal_social_style"
	CategoryIdealActionStyle    TraitCategory = "ideal_action_style"
	CategoryIdealEmotionalTrait TraitCategory = "ideal_emotional_traits"
)

// TraitOption is a canonical option code within a category. Options are
// stored as codes rather than display text so the mapping below can be an
// exhaustive switch instead of substring probes.
type TraitOption string

const (
	// social_energy_source
	EnergyExtroverted TraitOption = "extroverted"
	EnergyIntroverted TraitOption = "introverted"
	EnergySituational TraitOption = "situational"

	// decision_style
	DecisionRational  TraitOption = "rational"
	DecisionIntuitive TraitOption = "intuitive"
	DecisionBalanced  TraitOption = "balanced"

	// life_pace
	PacePlanned  TraitOption = "planned"
	PaceFlexible TraitOption = "flexible"

	// ideal_social_style
	IdealSocialWarmTalkative    TraitOption = "warm_talkative"
	IdealSocialCalmReserved     TraitOption = "calm_reserved"
	IdealSocialFrequencyMatched TraitOption = "frequency_matched"

	// ideal_action_style
	IdealActionMeticulous TraitOption = "meticulous"
	IdealActionEfficient  TraitOption = "efficient"
	IdealActionAdaptable  TraitOption = "adaptable"
	IdealActionSteady     TraitOption = "steady"
)

// traitMap holds one user's selections of a single kind, keyed by category.
type traitMap map[TraitCategory]TraitOption

const (
	selfTraitBonus  = 1
	idealTraitBonus = 2
)

// personalityScore computes the full personality contribution between two
// users: +1 per category where both self values are equal, plus the
// ideal-to-self mapping scored from both sides.
func personalityScore(aSelf, bSelf, aIdeal, bIdeal traitMap) int {
	score := 0
	for cat, val := range aSelf {
		if bSelf[cat] == val && val != "" {
			score += selfTraitBonus
		}
	}
	score += idealToSelfScore(aIdeal, bSelf)
	score += idealToSelfScore(bIdeal, aSelf)
	return score
}

// idealToSelfScore evaluates one direction of the ideal-to-self mapping:
// the ideal traits of one user against the self traits of the other.
// Each satisfied mapping is worth idealTraitBonus.
func idealToSelfScore(ideal, self traitMap) int {
	if len(ideal) == 0 || len(self) == 0 {
		return 0
	}

	score := 0

	if want, ok := ideal[CategoryIdealSocialStyle]; ok {
		if energy, ok := self[CategorySocialEnergy]; ok && idealSocialSatisfied(want, energy) {
			score += idealTraitBonus
		}
	}

	if want, ok := ideal[CategoryIdealActionStyle]; ok {
		decision, hasDecision := self[CategoryDecisionStyle]
		pace, hasPace := self[CategoryLifePace]
		if idealActionSatisfied(want, decision, hasDecision, pace, hasPace) {
			score += idealTraitBonus
		}
	}

	// ideal_emotional_traits has no corresponding self category in the
	// current questionnaire, so it contributes nothing.

	return score
}

// idealSocialSatisfied maps a desired social style onto the partner's
// social energy source. Frequency-matched accepts any recorded energy
// source; the other styles pin one.
func idealSocialSatisfied(want, energy TraitOption) bool {
	switch want {
	case IdealSocialFrequencyMatched:
		return true
	case IdealSocialWarmTalkative:
		return energy == EnergyExtroverted
	case IdealSocialCalmReserved:
		return energy == EnergyIntroverted
	}
	return false
}

// idealActionSatisfied maps a desired action style onto the partner's
// decision style and life pace. The pairings are product policy carried
// over from the questionnaire design, not derivable logic.
func idealActionSatisfied(want, decision TraitOption, hasDecision bool, pace TraitOption, hasPace bool) bool {
	switch want {
	case IdealActionMeticulous:
		return hasPace && pace == PacePlanned
	case IdealActionEfficient:
		return (hasPace && pace == PacePlanned) || (hasDecision && decision == DecisionRational)
	case IdealActionAdaptable:
		return (hasPace && pace == PaceFlexible) || (hasDecision && decision == DecisionBalanced)
	case IdealActionSteady:
		return hasPace || hasDecision
	}
	return false
}

// communicationStyleMatched reports whether both users recorded the same
// communication-style self trait.
func communicationStyleMatched(aSelf, bSelf traitMap) bool {
	a, ok := aSelf[CategoryCommunicationStyle]
	if !ok {
		return false
	}
	b, ok := bSelf[CategoryCommunicationStyle]
	return ok && a == b
}
