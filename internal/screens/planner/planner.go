// Package planner is the form that builds a learning path from a goal and the
// learner's known topics.
package planner

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/learnpath/internal/curriculum"
	"github.com/abhisek/learnpath/internal/router"
	"github.com/abhisek/learnpath/internal/screen"
	"github.com/abhisek/learnpath/internal/screens"
	"github.com/abhisek/learnpath/internal/screens/pathview"
	"github.com/abhisek/learnpath/internal/ui/components"
	"github.com/abhisek/learnpath/internal/ui/layout"
	"github.com/abhisek/learnpath/internal/ui/theme"
)

const (
	fieldUser = iota
	fieldGoal
	fieldKnown
	fieldStyle
	fieldCount
)

// builtMsg carries the result of a build command.
type builtMsg struct {
	path    *curriculum.LearningPath
	eventID int
	err     error
}

// Screen collects the path inputs.
type Screen struct {
	env      *screens.Env
	fields   [fieldCount]components.Field
	focus    int
	building bool
	notice   string
	err      error
}

var (
	_ screen.Screen        = (*Screen)(nil)
	_ screen.InputCapturer = (*Screen)(nil)
)

// New returns the planner with goal prefilled.
func New(env *screens.Env, goal string) *Screen {
	s := &Screen{env: env}
	s.fields[fieldUser] = components.NewField("Learner", "user id", 64)
	s.fields[fieldGoal] = components.NewField("Goal", "e.g. control_flow or \"learn loops\"", 200)
	s.fields[fieldKnown] = components.NewField("Known topics", "comma separated module ids", 500)
	s.fields[fieldStyle] = components.NewField("Learning style", "optional, e.g. visual", 32)

	s.fields[fieldUser].Model.SetValue(env.UserID)
	s.fields[fieldGoal].Model.SetValue(goal)
	if goal != "" {
		s.focus = fieldKnown
	} else {
		s.focus = fieldGoal
	}
	return s
}

func (s *Screen) Init() tea.Cmd {
	return s.fields[s.focus].Focus()
}

// CapturesInput is always true; every printable key goes to a field.
func (s *Screen) CapturesInput() bool {
	return true
}

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case builtMsg:
		s.building = false
		switch {
		case msg.err != nil:
			s.err = msg.err
		case msg.path == nil:
			s.notice = "Nothing to learn: the goal is already met or matches no module."
		default:
			return s, router.Replace(pathview.New(msg.path, msg.eventID))
		}
		return s, nil

	case tea.KeyMsg:
		if s.building {
			return s, nil
		}
		switch msg.String() {
		case "tab", "down":
			return s, s.moveFocus(1)
		case "shift+tab", "up":
			return s, s.moveFocus(-1)
		case "enter":
			s.building = true
			s.err = nil
			s.notice = ""
			return s, s.build(s.request())
		}
	}

	var cmd tea.Cmd
	s.fields[s.focus], cmd = s.fields[s.focus].Update(msg)
	return s, cmd
}

func (s *Screen) moveFocus(delta int) tea.Cmd {
	s.fields[s.focus].Blur()
	s.focus = (s.focus + delta + fieldCount) % fieldCount
	return s.fields[s.focus].Focus()
}

// request is a snapshot of the form.
type request struct {
	userID     string
	assessment curriculum.Assessment
	goals      []string
}

func (s *Screen) request() request {
	r := request{
		userID: s.fields[fieldUser].Value(),
		assessment: curriculum.Assessment{
			KnownTopics:   s.fields[fieldKnown].Values(),
			LearningStyle: s.fields[fieldStyle].Value(),
		},
	}
	if r.userID == "" {
		r.userID = "anonymous"
	}
	if goal := s.fields[fieldGoal].Value(); goal != "" {
		r.goals = []string{goal}
	}
	return r
}

func (s *Screen) build(r request) tea.Cmd {
	env := s.env
	return func() tea.Msg {
		path, err := env.Builder.CreateLearningPath(env.Ctx, r.userID, r.assessment, r.goals)
		if err != nil {
			return builtMsg{err: err}
		}
		if env.Paths == nil {
			return builtMsg{path: path}
		}
		goal := ""
		if len(r.goals) > 0 {
			goal = r.goals[0]
		}
		id, err := env.Paths.RecordPath(env.Ctx, r.userID, goal, path)
		if err != nil {
			return builtMsg{err: fmt.Errorf("record path: %w", err)}
		}
		return builtMsg{path: path, eventID: id}
	}
}

func (s *Screen) View(width, height int) string {
	var b strings.Builder
	b.WriteString(theme.Title.Render("Plan a learning path") + "\n")
	b.WriteString(theme.Hint.Render("Leave the goal empty to use the default goal.") + "\n\n")

	for i := range s.fields {
		b.WriteString(s.fields[i].View() + "\n\n")
	}

	switch {
	case s.building:
		b.WriteString(theme.Subtitle.Render("Building path..."))
	case s.err != nil:
		b.WriteString(theme.Fail.Render("Error: " + s.err.Error()))
	case s.notice != "":
		b.WriteString(theme.Warn.Render(s.notice))
	}
	return b.String()
}

func (s *Screen) Title() string {
	return "Planner"
}

// KeyHints returns the footer hints.
func (s *Screen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Tab", Description: "Next field"},
		{Key: "Enter", Description: "Build"},
		{Key: "Esc", Description: "Back"},
	}
}
