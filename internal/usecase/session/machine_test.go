package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistrationFlow(t *testing.T) {
	state, effect, err := Next(StateStart, EventStartNew)
	require.NoError(t, err)
	assert.Equal(t, StateRegisterName, state)
	assert.Equal(t, EffectPrompt, effect)

	// Answer every question in order.
	expected := []State{
		StateRegisterAge,
		StateRegisterGender,
		StateRegisterBio,
		StateRegisterLocation,
		StateRegisterInterests,
		StateRegisterPreferredGender,
		StateRegisterPreferredAge,
		StateRegisterPreferredLocation,
		StateUploadPhoto,
	}
	for _, want := range expected {
		state, effect, err = Next(state, EventInput)
		require.NoError(t, err)
		assert.Equal(t, want, state)
	}

	// The last answer completes the profile.
	assert.Equal(t, EffectCreateProfile, effect)

	state, effect, err = Next(state, EventPhoto)
	require.NoError(t, err)
	assert.Equal(t, StateBrowsing, state)
	assert.Equal(t, EffectSavePhoto, effect)
}

func TestStartWithExistingProfile(t *testing.T) {
	state, effect, err := Next(StateStart, EventStartExisting)
	require.NoError(t, err)
	assert.Equal(t, StateBrowsing, state)
	assert.Equal(t, EffectShowFeed, effect)
}

func TestStartResetsFromAnyState(t *testing.T) {
	for _, from := range []State{StateRegisterAge, StateBrowsing, StateEditName, StateViewingMatches} {
		state, _, err := Next(from, EventStartNew)
		require.NoError(t, err)
		assert.Equal(t, StateRegisterName, state)
	}
}

func TestOptionalStepsSkippable(t *testing.T) {
	state, _, err := Next(StateRegisterBio, EventSkipStep)
	require.NoError(t, err)
	assert.Equal(t, StateRegisterLocation, state)

	// Name is required.
	_, _, err = Next(StateRegisterName, EventSkipStep)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestEditFlow(t *testing.T) {
	state, effect, err := Next(StateBrowsing, EventOpenEditMenu)
	require.NoError(t, err)
	assert.Equal(t, StateEditMenu, state)
	assert.Equal(t, EffectShowEdit, effect)

	state, effect, err = Next(state, EventEditBio)
	require.NoError(t, err)
	assert.Equal(t, StateEditBio, state)
	assert.Equal(t, EffectPrompt, effect)

	state, effect, err = Next(state, EventInput)
	require.NoError(t, err)
	assert.Equal(t, StateEditMenu, state)
	assert.Equal(t, EffectUpdateProfile, effect)

	state, effect, err = Next(state, EventBack)
	require.NoError(t, err)
	assert.Equal(t, StateBrowsing, state)
}

func TestEditPhotoGoesThroughUpload(t *testing.T) {
	state, _, err := Next(StateEditMenu, EventEditPhoto)
	require.NoError(t, err)
	assert.Equal(t, StateUploadPhoto, state)

	state, effect, err := Next(state, EventPhoto)
	require.NoError(t, err)
	assert.Equal(t, StateBrowsing, state)
	assert.Equal(t, EffectSavePhoto, effect)
}

func TestBrowsingNavigation(t *testing.T) {
	state, effect, err := Next(StateBrowsing, EventViewMatches)
	require.NoError(t, err)
	assert.Equal(t, StateViewingMatches, state)
	assert.Equal(t, EffectShowMatch, effect)

	state, _, err = Next(state, EventViewProfile)
	require.NoError(t, err)
	assert.Equal(t, StateViewingProfile, state)

	state, effect, err = Next(state, EventBack)
	require.NoError(t, err)
	assert.Equal(t, StateBrowsing, state)
	assert.Equal(t, EffectShowFeed, effect)
}

func TestInvalidTransitions(t *testing.T) {
	cases := []struct {
		state State
		event Event
	}{
		{StateBrowsing, EventPhoto},
		{StateBrowsing, EventInput},
		{StateUploadPhoto, EventViewMatches},
		{StateRegisterAge, EventEditBio},
		{StateViewingMatches, EventEditName},
	}

	for _, tc := range cases {
		state, effect, err := Next(tc.state, tc.event)
		assert.ErrorIs(t, err, ErrInvalidTransition, "%s in %s", tc.event, tc.state)
		assert.Equal(t, tc.state, state)
		assert.Equal(t, EffectNone, effect)
	}
}
