package session

import (
	"errors"
	"fmt"
)

// State is where a user's bot conversation currently stands. The front-end
// renders prompts from the state; the machine owns the legal transitions.
type State string

const (
	StateStart State = "start"

	StateRegisterName              State = "register_name"
	StateRegisterAge               State = "register_age"
	StateRegisterGender            State = "register_gender"
	StateRegisterBio               State = "register_bio"
	StateRegisterLocation          State = "register_location"
	StateRegisterInterests         State = "register_interests"
	StateRegisterPreferredGender   State = "register_preferred_gender"
	StateRegisterPreferredAge      State = "register_preferred_age"
	StateRegisterPreferredLocation State = "register_preferred_location"
	StateUploadPhoto               State = "upload_photo"

	StateBrowsing       State = "browsing"
	StateViewingProfile State = "viewing_profile"
	StateViewingMatches State = "viewing_matches"

	StateEditMenu              State = "edit_menu"
	StateEditName              State = "edit_name"
	StateEditAge               State = "edit_age"
	StateEditBio               State = "edit_bio"
	StateEditLocation          State = "edit_location"
	StateEditInterests         State = "edit_interests"
	StateEditPreferredGender   State = "edit_preferred_gender"
	StateEditPreferredAge      State = "edit_preferred_age"
	StateEditPreferredLocation State = "edit_preferred_location"
)

// Event is something the user did.
type Event string

const (
	// EventStartExisting and EventStartNew split /start by whether the user
	// already has a profile.
	EventStartExisting Event = "start_existing"
	EventStartNew      Event = "start_new"

	// EventInput is a free-text answer to whatever the state is asking.
	EventInput Event = "input"
	// EventSkipStep skips an optional registration step.
	EventSkipStep Event = "skip_step"
	// EventPhoto is a received photo upload.
	EventPhoto Event = "photo"

	EventBrowse       Event = "browse"
	EventViewProfile  Event = "view_profile"
	EventViewMatches  Event = "view_matches"
	EventOpenEditMenu Event = "open_edit_menu"
	EventBack         Event = "back"

	EventEditName              Event = "edit_name"
	EventEditAge               Event = "edit_age"
	EventEditBio               Event = "edit_bio"
	EventEditLocation          Event = "edit_location"
	EventEditInterests         Event = "edit_interests"
	EventEditPreferredGender   Event = "edit_preferred_gender"
	EventEditPreferredAge      Event = "edit_preferred_age"
	EventEditPreferredLocation Event = "edit_preferred_location"
	EventEditPhoto             Event = "edit_photo"
)

// Effect tells the caller what the transition requires beyond storing the new
// state. The machine never performs I/O itself.
type Effect string

const (
	EffectNone Effect = ""
	// EffectPrompt: ask the user for the input the new state expects.
	EffectPrompt Effect = "prompt"
	// EffectCreateProfile: registration answers are complete, persist the
	// profile.
	EffectCreateProfile Effect = "create_profile"
	// EffectUpdateProfile: persist the edited field.
	EffectUpdateProfile Effect = "update_profile"
	// EffectSavePhoto: persist the uploaded photo.
	EffectSavePhoto  Effect = "save_photo"
	EffectShowFeed   Effect = "show_feed"
	EffectShowMatch  Effect = "show_matches"
	EffectShowEdit   Effect = "show_edit_menu"
	EffectShowDetail Effect = "show_profile"
)

var ErrInvalidTransition = errors.New("invalid session transition")

type transition struct {
	next   State
	effect Effect
}

// registrationOrder is the fixed question sequence; EventInput walks it.
var registrationOrder = map[State]transition{
	StateRegisterName:              {StateRegisterAge, EffectPrompt},
	StateRegisterAge:               {StateRegisterGender, EffectPrompt},
	StateRegisterGender:            {StateRegisterBio, EffectPrompt},
	StateRegisterBio:               {StateRegisterLocation, EffectPrompt},
	StateRegisterLocation:          {StateRegisterInterests, EffectPrompt},
	StateRegisterInterests:         {StateRegisterPreferredGender, EffectPrompt},
	StateRegisterPreferredGender:   {StateRegisterPreferredAge, EffectPrompt},
	StateRegisterPreferredAge:      {StateRegisterPreferredLocation, EffectPrompt},
	StateRegisterPreferredLocation: {StateUploadPhoto, EffectCreateProfile},
}

// optionalSteps may be skipped; skipping advances exactly like answering.
var optionalSteps = map[State]bool{
	StateRegisterBio:               true,
	StateRegisterLocation:          true,
	StateRegisterInterests:         true,
	StateRegisterPreferredLocation: true,
}

var editFields = map[Event]State{
	EventEditName:              StateEditName,
	EventEditAge:               StateEditAge,
	EventEditBio:               StateEditBio,
	EventEditLocation:          StateEditLocation,
	EventEditInterests:         StateEditInterests,
	EventEditPreferredGender:   StateEditPreferredGender,
	EventEditPreferredAge:      StateEditPreferredAge,
	EventEditPreferredLocation: StateEditPreferredLocation,
}

var editStates = map[State]bool{
	StateEditName:              true,
	StateEditAge:               true,
	StateEditBio:               true,
	StateEditLocation:          true,
	StateEditInterests:         true,
	StateEditPreferredGender:   true,
	StateEditPreferredAge:      true,
	StateEditPreferredLocation: true,
}

// Next computes the transition for an event in a state. It is a pure
// function: same inputs, same result, no side effects.
func Next(state State, event Event) (State, Effect, error) {
	switch event {
	case EventStartExisting:
		return StateBrowsing, EffectShowFeed, nil
	case EventStartNew:
		return StateRegisterName, EffectPrompt, nil
	}

	if t, ok := registrationOrder[state]; ok {
		switch event {
		case EventInput:
			return t.next, t.effect, nil
		case EventSkipStep:
			if optionalSteps[state] {
				return t.next, t.effect, nil
			}
		}
		return state, EffectNone, invalid(state, event)
	}

	if state == StateUploadPhoto {
		if event == EventPhoto {
			return StateBrowsing, EffectSavePhoto, nil
		}
		return state, EffectNone, invalid(state, event)
	}

	if editStates[state] {
		if event == EventInput {
			return StateEditMenu, EffectUpdateProfile, nil
		}
		if event == EventBack {
			return StateEditMenu, EffectShowEdit, nil
		}
		return state, EffectNone, invalid(state, event)
	}

	switch state {
	case StateBrowsing, StateViewingProfile, StateViewingMatches, StateEditMenu:
		switch event {
		case EventBrowse:
			return StateBrowsing, EffectShowFeed, nil
		case EventViewProfile:
			return StateViewingProfile, EffectShowDetail, nil
		case EventViewMatches:
			return StateViewingMatches, EffectShowMatch, nil
		case EventOpenEditMenu:
			return StateEditMenu, EffectShowEdit, nil
		case EventBack:
			return StateBrowsing, EffectShowFeed, nil
		}
		if state == StateEditMenu {
			if next, ok := editFields[event]; ok {
				return next, EffectPrompt, nil
			}
			if event == EventEditPhoto {
				return StateUploadPhoto, EffectPrompt, nil
			}
		}
	}

	return state, EffectNone, invalid(state, event)
}

func invalid(state State, event Event) error {
	return fmt.Errorf("%w: %s in %s", ErrInvalidTransition, event, state)
}
