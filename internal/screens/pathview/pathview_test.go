package pathview

import (
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"

	"github.com/abhisek/learnpath/internal/curriculum"
)

func samplePath() *curriculum.LearningPath {
	return &curriculum.LearningPath{
		Goal: "control_flow",
		Modules: []curriculum.PathModule{
			{ModuleID: "operators", Name: "Operators", Status: curriculum.StatusPending, EstimatedTimeHours: 2},
			{ModuleID: "control_flow", Name: "Control Flow", Status: curriculum.StatusPending, EstimatedTimeHours: 2},
		},
		Unresolved: []string{"control_flow"},
	}
}

func TestPathView_View(t *testing.T) {
	s := New(samplePath(), 7)

	view := s.View(100, 30)
	assert.Contains(t, view, "Goal: control_flow")
	assert.Contains(t, view, "recorded as event 7")
	assert.Contains(t, view, "Unresolved dependencies: control_flow")
	assert.Contains(t, view, "2.0 of 4.0 hours")
	assert.Contains(t, view, "Control Flow")
}

func TestPathView_StepUpdatesProgress(t *testing.T) {
	s := New(samplePath(), 0)

	s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	assert.Equal(t, 1, s.list.Cursor)
	assert.Contains(t, s.View(100, 30), "4.0 of 4.0 hours")
	assert.NotContains(t, s.View(100, 30), "recorded as event")
}
