package cmd

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"stash-recipes/core/classifier"
	"stash-recipes/core/recipe"
	"stash-recipes/core/report"
	"stash-recipes/feature/recipes"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86")).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	warnStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
)

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(mutedStyle).
		Headers(headers...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
}

// renderReport prints the recipe counts, the sets, the item level bands and the warnings.
func renderReport(w io.Writer, rep *report.Report) {
	fmt.Fprintln(w, titleStyle.Render(fmt.Sprintf("Recipe sets: %d", rep.TotalSets)))

	counts := newTable("RECIPE", "REWARD", "SETS")
	for _, r := range rep.Recipes {
		sets := strconv.Itoa(r.Sets)
		if r.Sets == 0 {
			sets = mutedStyle.Render(sets)
		}
		counts.Row(r.Name, r.Reward, sets)
	}
	fmt.Fprintln(w, counts.Render())

	if len(rep.Sets) > 0 {
		sets := newTable("#", "RECIPE", "ITEMS")
		for i, s := range rep.Sets {
			ids := make([]string, 0, len(s.Items))
			for _, it := range s.Items {
				ids = append(ids, it.ID)
			}
			sets.Row(strconv.Itoa(i+1), s.Recipe, strings.Join(ids, ", "))
		}
		fmt.Fprintln(w, sets.Render())
	}

	if len(rep.ItemLevelBands) > 0 {
		bands := newTable("SLOT", "ILVL 60-74", "ILVL 75+")
		for _, slot := range classifier.Slots {
			b, ok := rep.ItemLevelBands[slot]
			if !ok {
				continue
			}
			bands.Row(string(slot), strconv.Itoa(b.Chaos), strconv.Itoa(b.Regal))
		}
		fmt.Fprintln(w, bands.Render())
	}

	fmt.Fprintln(w, mutedStyle.Render(fmt.Sprintf("Leftover items: %d", len(rep.Leftovers))))
	for _, warn := range rep.Warnings {
		fmt.Fprintln(w, warnStyle.Render(fmt.Sprintf("skipped %s: %s", warn.ItemID, warn.Reason)))
	}
	if rep.Fingerprint != "" {
		fmt.Fprintln(w, mutedStyle.Render("Snapshot "+rep.Fingerprint))
	}
}

// renderRecipes prints the rule set in priority order.
func renderRecipes(w io.Writer, defs []recipe.Definition) {
	t := newTable("#", "ID", "NAME", "REWARD", "SLOTS", "REQUIREMENTS")
	for i, d := range defs {
		slots := make([]string, 0, len(d.Slots))
		for _, s := range d.Slots {
			label := s.Name
			if s.Count > 1 {
				label = fmt.Sprintf("%s x%d", s.Name, s.Count)
			}
			if s.FillToQuality > 0 {
				label += fmt.Sprintf(" (q%d)", s.FillToQuality)
			}
			slots = append(slots, label)
		}
		t.Row(strconv.Itoa(i+1), d.ID, d.Name, d.Reward, strings.Join(slots, ", "), requirements(d.Requirements))
	}
	fmt.Fprintln(w, t.Render())
}

func requirements(r recipe.Requirements) string {
	var parts []string
	if r.Unidentified {
		parts = append(parts, "unidentified")
	}
	if r.MinItemLevel > 0 {
		parts = append(parts, fmt.Sprintf("ilvl>=%d", r.MinItemLevel))
	}
	if r.MaxItemLevel > 0 {
		parts = append(parts, fmt.Sprintf("ilvl<=%d", r.MaxItemLevel))
	}
	if r.MaxRarity != "" {
		parts = append(parts, "max "+string(r.MaxRarity))
	}
	if r.AnyBelowItemLevel > 0 {
		parts = append(parts, fmt.Sprintf("one ilvl<%d", r.AnyBelowItemLevel))
	}
	if len(parts) == 0 {
		return mutedStyle.Render("-")
	}
	return strings.Join(parts, ", ")
}

// renderHistory prints recorded runs.
func renderHistory(w io.Writer, runs []recipes.MatchRun) {
	if len(runs) == 0 {
		fmt.Fprintln(w, mutedStyle.Render("No recorded runs."))
		return
	}
	t := newTable("WHEN", "SOURCE", "SETS", "LEFTOVERS", "WARNINGS", "SNAPSHOT")
	for _, r := range runs {
		t.Row(
			r.CreatedAt.Local().Format(time.DateTime),
			r.Source,
			strconv.Itoa(r.TotalSets),
			strconv.Itoa(r.LeftoverCount),
			strconv.Itoa(r.WarningCount),
			shortFingerprint(r.Fingerprint),
		)
	}
	fmt.Fprintln(w, t.Render())
}

func shortFingerprint(fp string) string {
	if len(fp) > 12 {
		return fp[:12]
	}
	return fp
}
