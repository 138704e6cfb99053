package rating

import "math"

// Weights blend the primary and behavioral scores into the combined score.
// They must sum to 1.
type Weights struct {
	Primary    float64
	Behavioral float64
}

func DefaultWeights() Weights {
	return Weights{Primary: 0.4, Behavioral: 0.6}
}

// BehaviorStats aggregates a profile's interaction history as recipient.
type BehaviorStats struct {
	LikesReceived  int
	TotalIncoming  int
	Matches        int
	ChatsInitiated int
}

// PrimaryScore rates static profile quality on a 0-100 scale:
// completeness carries 40%, photo sufficiency (capped at 3 photos) 30%, and
// a flat 30% bonus when the full preference set (age range + gender) is
// filled in.
func PrimaryScore(completeness float64, photoCount int, preferencesSet bool) float64 {
	completenessScore := completeness * 0.4

	photoScore := math.Min(float64(photoCount)/3.0, 1.0) * 0.3

	preferencesScore := 0.0
	if preferencesSet {
		preferencesScore = 0.3
	}

	return (completenessScore + photoScore + preferencesScore) * 100
}

// BehavioralScore rates how other users react to a profile on a 0-100 scale.
// Every ratio term is zero when its denominator is zero, so a profile with
// no incoming interactions scores exactly 0.
func BehavioralScore(s BehaviorStats) float64 {
	likesScore := math.Min(float64(s.LikesReceived)/100.0, 1.0) * 0.3

	ratioScore := 0.0
	if s.TotalIncoming > 0 {
		ratioScore = float64(s.LikesReceived) / float64(s.TotalIncoming) * 0.3
	}

	matchScore := 0.0
	if s.LikesReceived > 0 {
		// Conversion above 50% does not earn extra credit.
		matchRatio := math.Min(float64(s.Matches)/float64(s.LikesReceived), 0.5) / 0.5
		matchScore = matchRatio * 0.2
	}

	chatScore := 0.0
	if s.Matches > 0 {
		chatScore = float64(s.ChatsInitiated) / float64(s.Matches) * 0.2
	}

	return (likesScore + ratioScore + matchScore + chatScore) * 100
}

// CombinedScore is the weighted blend used for candidate ordering.
func CombinedScore(primary, behavioral float64, w Weights) float64 {
	return primary*w.Primary + behavioral*w.Behavioral
}
