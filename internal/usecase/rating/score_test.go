package rating

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPrimaryScore(t *testing.T) {
	tests := []struct {
		name           string
		completeness   float64
		photoCount     int
		preferencesSet bool
		expected       float64
	}{
		{
			name:           "everything filled",
			completeness:   1.0,
			photoCount:     5,
			preferencesSet: true,
			expected:       100.0,
		},
		{
			name:           "empty profile",
			completeness:   0,
			photoCount:     0,
			preferencesSet: false,
			expected:       0,
		},
		{
			name:           "photos capped at three",
			completeness:   0,
			photoCount:     30,
			preferencesSet: false,
			expected:       30.0,
		},
		{
			name:           "one photo of three",
			completeness:   0,
			photoCount:     1,
			preferencesSet: false,
			expected:       10.0,
		},
		{
			name:           "preferences only",
			completeness:   0,
			photoCount:     0,
			preferencesSet: true,
			expected:       30.0,
		},
		{
			name:           "half complete with full photos",
			completeness:   0.5,
			photoCount:     3,
			preferencesSet: true,
			expected:       80.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PrimaryScore(tt.completeness, tt.photoCount, tt.preferencesSet)
			assert.InDelta(t, tt.expected, got, 0.0001)
		})
	}
}

func TestPrimaryScoreRange(t *testing.T) {
	for _, completeness := range []float64{0, 0.33, 0.5, 1.0} {
		for _, photos := range []int{0, 1, 3, 10} {
			for _, prefs := range []bool{false, true} {
				got := PrimaryScore(completeness, photos, prefs)
				assert.GreaterOrEqual(t, got, 0.0)
				assert.LessOrEqual(t, got, 100.0)
			}
		}
	}
}

func TestBehavioralScore(t *testing.T) {
	t.Run("no incoming interactions scores zero", func(t *testing.T) {
		got := BehavioralScore(BehaviorStats{})
		assert.Equal(t, 0.0, got)
	})

	t.Run("zero denominators never panic", func(t *testing.T) {
		got := BehavioralScore(BehaviorStats{LikesReceived: 0, TotalIncoming: 0, Matches: 5, ChatsInitiated: 0})
		assert.GreaterOrEqual(t, got, 0.0)
	})

	t.Run("maximal profile scores 100", func(t *testing.T) {
		// 100+ likes, all incoming were likes, >=50% match conversion, every
		// match chatted.
		got := BehavioralScore(BehaviorStats{
			LikesReceived:  100,
			TotalIncoming:  100,
			Matches:        50,
			ChatsInitiated: 50,
		})
		assert.InDelta(t, 100.0, got, 0.0001)
	})

	t.Run("likes volume capped at 100", func(t *testing.T) {
		base := BehavioralScore(BehaviorStats{LikesReceived: 100, TotalIncoming: 100})
		more := BehavioralScore(BehaviorStats{LikesReceived: 500, TotalIncoming: 500})
		assert.InDelta(t, base, more, 0.0001)
	})

	t.Run("match conversion above half earns no extra", func(t *testing.T) {
		half := BehavioralScore(BehaviorStats{LikesReceived: 10, TotalIncoming: 10, Matches: 5})
		all := BehavioralScore(BehaviorStats{LikesReceived: 10, TotalIncoming: 10, Matches: 10})
		assert.InDelta(t, half, all, 0.0001)
	})

	t.Run("half like ratio", func(t *testing.T) {
		// likes term: 10/100*0.3 = 0.03; ratio term: 10/20*0.3 = 0.15.
		got := BehavioralScore(BehaviorStats{LikesReceived: 10, TotalIncoming: 20})
		assert.InDelta(t, 18.0, got, 0.0001)
	})
}

func TestCombinedScore(t *testing.T) {
	w := DefaultWeights()

	assert.InDelta(t, 100.0, CombinedScore(100, 100, w), 0.0001)
	assert.InDelta(t, 40.0, CombinedScore(100, 0, w), 0.0001)
	assert.InDelta(t, 60.0, CombinedScore(0, 100, w), 0.0001)

	custom := Weights{Primary: 0.7, Behavioral: 0.3}
	assert.InDelta(t, 70.0, CombinedScore(100, 0, custom), 0.0001)
}
