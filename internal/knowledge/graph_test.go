package knowledge

import (
	"context"
	"slices"
	"testing"
)

func TestModuleDetails_Exists(t *testing.T) {
	g := NewGraph(SeedModules())
	m, ok, err := g.ModuleDetails(context.Background(), "control_flow")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok {
		t.Fatal("expected control_flow to exist")
	}
	if m.Name != "Control Flow" {
		t.Errorf("got name %q, want %q", m.Name, "Control Flow")
	}
	if m.EstimatedTimeHours != 1.5 {
		t.Errorf("got hours %v, want 1.5", m.EstimatedTimeHours)
	}
}

func TestModuleDetails_NotFound(t *testing.T) {
	g := NewGraph(SeedModules())
	_, ok, err := g.ModuleDetails(context.Background(), "nonexistent")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Fatal("expected nonexistent module to be absent")
	}
}

func TestModuleDetails_ReturnsCopy(t *testing.T) {
	g := NewGraph(SeedModules())
	m, _, _ := g.ModuleDetails(context.Background(), "operators")
	m.Prerequisites[0] = "mutated"

	again, _, _ := g.ModuleDetails(context.Background(), "operators")
	if again.Prerequisites[0] != "variables" {
		t.Errorf("graph was mutated through returned module: %v", again.Prerequisites)
	}
}

func TestPrerequisites(t *testing.T) {
	g := NewGraph(SeedModules())
	ctx := context.Background()

	got, err := g.Prerequisites(ctx, "control_flow")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"variables", "data_types", "operators"}
	if !slices.Equal(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}

	got, err = g.Prerequisites(ctx, "unknown")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("unknown module prerequisites: got %v, want empty", got)
	}
}

func TestFindModulesByGoal(t *testing.T) {
	g := NewGraph(SeedModules())
	tests := []struct {
		goal string
		want []string
	}{
		{"learn control flow", []string{"control_flow"}},
		{"Python Basics please", []string{"python_basics"}},
		{"write a function", []string{"functions"}},
		{"loops", []string{"loops"}},
		{"operators", []string{"operators"}},
		{"Default Learning Goal", nil},
		{"", nil},
		{"   ", nil},
	}
	for _, tt := range tests {
		got, err := g.FindModulesByGoal(context.Background(), tt.goal)
		if err != nil {
			t.Fatalf("FindModulesByGoal(%q): %v", tt.goal, err)
		}
		if !slices.Equal(got, tt.want) {
			t.Errorf("FindModulesByGoal(%q): got %v, want %v", tt.goal, got, tt.want)
		}
	}
}

func TestTopologicalOrder_AllPresent(t *testing.T) {
	g := NewGraph(SeedModules())
	order := g.TopologicalOrder()
	if len(order) != g.Len() {
		t.Fatalf("got %d modules in topo order, want %d", len(order), g.Len())
	}

	pos := make(map[string]int, len(order))
	for i, id := range order {
		pos[id] = i
	}
	for _, m := range SeedModules() {
		for _, p := range m.Prerequisites {
			if pos[p] >= pos[m.ID] {
				t.Errorf("prerequisite %q placed after %q", p, m.ID)
			}
		}
	}
}

func TestTopologicalOrder_Deterministic(t *testing.T) {
	first := NewGraph(SeedModules()).TopologicalOrder()
	for i := 0; i < 5; i++ {
		if got := NewGraph(SeedModules()).TopologicalOrder(); !slices.Equal(got, first) {
			t.Fatalf("run %d: got %v, want %v", i, got, first)
		}
	}
}

func TestTopologicalOrder_CycleAppendedLast(t *testing.T) {
	g := NewGraph([]Module{
		{ID: "root", Name: "Root"},
		{ID: "b", Name: "B", Prerequisites: []string{"a"}},
		{ID: "a", Name: "A", Prerequisites: []string{"b"}},
	})
	want := []string{"root", "a", "b"}
	if got := g.TopologicalOrder(); !slices.Equal(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestRootsAndDependents(t *testing.T) {
	g := NewGraph(SeedModules())
	if got, want := g.Roots(), []string{"python_basics", "variables"}; !slices.Equal(got, want) {
		t.Errorf("Roots: got %v, want %v", got, want)
	}
	deps := g.Dependents("operators")
	slices.Sort(deps)
	if want := []string{"conditionals", "control_flow", "loops"}; !slices.Equal(deps, want) {
		t.Errorf("Dependents(operators): got %v, want %v", deps, want)
	}
}

func TestSubTopics(t *testing.T) {
	g := NewGraph(SeedModules())
	if got, want := g.SubTopics("control_flow"), []string{"conditionals", "loops"}; !slices.Equal(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
	if got := g.SubTopics("missing"); got != nil {
		t.Errorf("got %v, want nil", got)
	}
}

func TestNewGraph_DuplicateKeepsFirst(t *testing.T) {
	g := NewGraph([]Module{
		{ID: "x", Name: "First"},
		{ID: "x", Name: "Second"},
	})
	if g.Len() != 1 {
		t.Fatalf("got %d modules, want 1", g.Len())
	}
	m, _, _ := g.ModuleDetails(context.Background(), "x")
	if m.Name != "First" {
		t.Errorf("got %q, want First", m.Name)
	}
}

func TestAllModules_CatalogOrder(t *testing.T) {
	all, err := NewGraph(SeedModules()).AllModules(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(all) != 8 {
		t.Fatalf("got %d modules, want 8", len(all))
	}
	if all[0].ID != "python_basics" || all[7].ID != "functions" {
		t.Errorf("unexpected order: first %q last %q", all[0].ID, all[7].ID)
	}
}
