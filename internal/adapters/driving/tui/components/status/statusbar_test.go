package status

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBar_DefaultsToReady(t *testing.T) {
	bar := NewBar(nil, nil)
	bar.SetWidth(200)

	assert.Equal(t, StateReady, bar.State())
	assert.Contains(t, bar.View(), "Ready")
	assert.Contains(t, bar.View(), "export to TXT")
}

func TestBar_States(t *testing.T) {
	tests := []struct {
		name    string
		state   State
		message string
		want    string
	}{
		{"running with message", StateRunning, "Exporting (xml_entry)", "Exporting (xml_entry)"},
		{"running without message", StateRunning, "", "Running..."},
		{"error", StateError, "boom", "Error: boom"},
		{"done", StateDone, "", "2 processed, 1 skipped"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bar := NewBar(nil, nil)
			bar.SetWidth(160)
			bar.SetCounts(2, 1)
			bar.SetState(tt.state)
			bar.SetMessage(tt.message)

			assert.Contains(t, bar.View(), tt.want)
		})
	}
}

func TestBar_RunningHidesBatchKeys(t *testing.T) {
	bar := NewBar(nil, nil)
	bar.SetWidth(160)
	bar.SetState(StateRunning)

	assert.NotContains(t, bar.View(), "export to TXT")
	assert.Contains(t, bar.View(), "quit")
}

func TestBar_Clear(t *testing.T) {
	bar := NewBar(nil, nil)
	bar.SetState(StateError)
	bar.SetMessage("x")
	bar.SetCounts(1, 1)

	bar.Clear()

	assert.Equal(t, StateReady, bar.State())
	assert.Empty(t, bar.Message())
}
