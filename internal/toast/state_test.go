package toast

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNext(t *testing.T) {
	tests := []struct {
		from State
		ev   Event
		want State
		ok   bool
	}{
		{StateEntering, EventFrame, StateVisible, true},
		{StateEntering, EventPointerEnter, StatePaused, true},
		{StateEntering, EventTimeout, StateExiting, true},
		{StateEntering, EventPointerLeave, StateEntering, false},
		{StateVisible, EventPointerEnter, StatePaused, true},
		{StateVisible, EventTimeout, StateExiting, true},
		{StateVisible, EventFrame, StateVisible, false},
		{StateVisible, EventPointerLeave, StateVisible, false},
		{StatePaused, EventPointerLeave, StateVisible, true},
		{StatePaused, EventTimeout, StatePaused, false},
		{StatePaused, EventPointerEnter, StatePaused, false},
		{StatePaused, EventFrame, StatePaused, false},
		{StateExiting, EventPointerEnter, StateExiting, false},
		{StateExiting, EventPointerLeave, StateExiting, false},
		{StateExiting, EventTimeout, StateExiting, false},
		{StateExiting, EventFadeOut, StateExiting, true},
		{StateExiting, EventDetach, StateRemoved, true},
		{StateRemoved, EventDetach, StateRemoved, false},
		{StateRemoved, EventPointerEnter, StateRemoved, false},
	}

	for _, tt := range tests {
		t.Run(tt.from.String()+"/"+tt.ev.String(), func(t *testing.T) {
			got, ok := Next(tt.from, tt.ev)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestState_Active(t *testing.T) {
	for _, s := range []State{StateEntering, StateVisible, StatePaused, StateExiting} {
		assert.True(t, s.Active(), s.String())
	}
	assert.False(t, StateRemoved.Active())
}

func TestStateAndEvent_Strings(t *testing.T) {
	assert.Equal(t, "paused", StatePaused.String())
	assert.Equal(t, "unknown", State(99).String())
	assert.Equal(t, "pointer-leave", EventPointerLeave.String())
	assert.Equal(t, "unknown", Event(99).String())
}
