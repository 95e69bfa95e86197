// Package render prints paths, modules, audit events and review reports as
// plain text tables for the CLI.
package render

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/abhisek/learnpath/internal/advisor"
	"github.com/abhisek/learnpath/internal/curriculum"
	"github.com/abhisek/learnpath/internal/knowledge"
	"github.com/abhisek/learnpath/internal/store"
)

const timeLayout = "2006-01-02 15:04:05"

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

func rule(w io.Writer, n int) {
	fmt.Fprintln(w, strings.Repeat("─", n))
}

func joinOrNone(ids []string) string {
	if len(ids) == 0 {
		return "none"
	}
	return strings.Join(ids, ", ")
}

// Path prints a learning path with running hour totals. A nil path prints the
// nothing-to-learn notice.
func Path(w io.Writer, p *curriculum.LearningPath) error {
	if p == nil {
		_, err := fmt.Fprintln(w, "Nothing to learn: the goal is already met or matches no known module.")
		return err
	}

	fmt.Fprintf(w, "Path %s for %s\n", p.ID, p.UserID)
	fmt.Fprintf(w, "Goal: %s\n\n", p.Goal)

	tw := newTable(w)
	fmt.Fprintln(tw, "#\tMODULE\tNAME\tHOURS\tCUMULATIVE\tSTATUS")
	var cumulative float64
	for i, m := range p.Modules {
		cumulative += m.EstimatedTimeHours
		marker := ""
		if i == p.CurrentModuleIndex {
			marker = " *"
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%.1f\t%.1f\t%s%s\n",
			i+1, m.ModuleID, m.Name, m.EstimatedTimeHours, cumulative, m.Status, marker)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(w, "\n%d modules, %.1f hours total\n", len(p.Modules), p.TotalHours())
	if len(p.Missing) > 0 {
		fmt.Fprintf(w, "Missing from catalog: %s\n", strings.Join(p.Missing, ", "))
	}
	if len(p.Unresolved) > 0 {
		fmt.Fprintf(w, "Unresolved dependencies (ordered by id): %s\n", strings.Join(p.Unresolved, ", "))
	}
	return nil
}

// Modules prints one row per module.
func Modules(w io.Writer, modules []knowledge.Module) error {
	if len(modules) == 0 {
		_, err := fmt.Fprintln(w, "No modules in catalog.")
		return err
	}
	tw := newTable(w)
	fmt.Fprintln(tw, "ID\tNAME\tHOURS\tPREREQUISITES")
	for _, m := range modules {
		fmt.Fprintf(tw, "%s\t%s\t%.1f\t%s\n", m.ID, m.Name, m.EstimatedTimeHours, joinOrNone(m.Prerequisites))
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "\n%d modules\n", len(modules))
	return err
}

// Module prints one module. dependents may be nil when the source cannot list
// its catalog.
func Module(w io.Writer, m knowledge.Module, dependents []string) error {
	fmt.Fprintf(w, "ID:            %s\n", m.ID)
	fmt.Fprintf(w, "Name:          %s\n", m.Name)
	fmt.Fprintf(w, "Hours:         %.1f\n", m.EstimatedTimeHours)
	fmt.Fprintf(w, "Prerequisites: %s\n", joinOrNone(m.Prerequisites))
	fmt.Fprintf(w, "Required by:   %s\n", joinOrNone(dependents))
	fmt.Fprintf(w, "Topics:        %s\n", joinOrNone(m.Topics))
	fmt.Fprintf(w, "Keywords:      %s\n", joinOrNone(m.Keywords))
	if m.Description != "" {
		fmt.Fprintln(w)
		fmt.Fprintln(w, m.Description)
	}
	return nil
}

// PathEvents prints audit log rows, newest first as given.
func PathEvents(w io.Writer, events []store.PathEvent) error {
	if len(events) == 0 {
		_, err := fmt.Fprintln(w, "No recorded paths.")
		return err
	}
	tw := newTable(w)
	fmt.Fprintln(tw, "ID\tTIMESTAMP\tUSER\tOUTCOME\tMODULES\tHOURS\tGOAL")
	for _, e := range events {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%d\t%.1f\t%s\n",
			e.ID, e.Timestamp.Local().Format(timeLayout), e.UserID, e.Outcome,
			len(e.ModuleIDs), e.TotalHours, e.Goal)
	}
	return tw.Flush()
}

// PathEvent prints one audit entry including its full path.
func PathEvent(w io.Writer, e *store.PathEvent) error {
	fmt.Fprintf(w, "Event:     %d (seq %d)\n", e.ID, e.Sequence)
	fmt.Fprintf(w, "Time:      %s\n", e.Timestamp.Local().Format(timeLayout))
	fmt.Fprintf(w, "User:      %s\n", e.UserID)
	fmt.Fprintf(w, "Outcome:   %s\n", e.Outcome)
	rule(w, 60)
	return Path(w, e.Path)
}

// Review prints how a model proposal compares with the built path.
func Review(w io.Writer, path *curriculum.LearningPath, r *advisor.Report) error {
	verdict := "agrees with the built path"
	if !r.Agrees() {
		verdict = "differs from the built path"
	}
	fmt.Fprintf(w, "Proposal %s\n", verdict)
	rule(w, 60)
	fmt.Fprintf(w, "Built:     %s\n", strings.Join(path.ModuleIDs(), " -> "))
	fmt.Fprintf(w, "Proposed:  %s\n", strings.Join(r.Proposal.ModuleIDs, " -> "))
	if r.Proposal.Rationale != "" {
		fmt.Fprintf(w, "Rationale: %s\n", r.Proposal.Rationale)
	}
	if len(r.UnknownIDs) > 0 {
		fmt.Fprintf(w, "Unknown ids: %s\n", strings.Join(r.UnknownIDs, ", "))
	}
	for _, v := range r.Violations {
		fmt.Fprintf(w, "Order violation: %s proposed before its prerequisite %s\n", v.ModuleID, v.Prerequisite)
	}
	if len(r.Omitted) > 0 {
		fmt.Fprintf(w, "Omitted: %s\n", strings.Join(r.Omitted, ", "))
	}
	if len(r.Added) > 0 {
		fmt.Fprintf(w, "Extra: %s\n", strings.Join(r.Added, ", "))
	}
	return nil
}
