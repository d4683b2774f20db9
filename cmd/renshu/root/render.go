package root

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"renshu/internal/progress"
	"renshu/internal/ui"
)

var timeOrder = map[progress.TimeOfDay]int{
	progress.TimeMorning:   0,
	progress.TimeAfternoon: 1,
	progress.TimeEvening:   2,
}

type dayLine struct {
	icon  string
	id    string
	label string
	sub   []progress.SubCheckItem
	done  bool
	tod   progress.TimeOfDay
	loop  bool
}

func dayLines(eff progress.EffectiveDay) []dayLine {
	var lines []dayLine
	for _, it := range eff.Day.Items {
		lines = append(lines, dayLine{
			id: string(it.ID), label: it.Label, done: it.Done(), tod: it.TimeOfDay,
		})
	}
	for _, t := range eff.Day.CustomItems {
		label := t.Label
		if t.Sublabel != "" {
			label += " " + ui.Muted.Render("("+t.Sublabel+")")
		}
		lines = append(lines, dayLine{
			id: t.ID, label: label, sub: t.SubChecklist, done: t.Done(), tod: t.TimeOfDay, loop: t.Recurring,
		})
	}
	sort.SliceStable(lines, func(i, j int) bool {
		return timeOrder[lines[i].tod] < timeOrder[lines[j].tod]
	})
	return lines
}

func renderDay(w io.Writer, eff progress.EffectiveDay, settings progress.Settings) {
	completed, total := eff.Counts()

	fmt.Fprintln(w, ui.Heading(ui.IconCalendar, eff.Day.Date.String())+"  "+ui.ProgressFraction(completed, total)+"  "+ui.Streak(settings.StreakCount))
	if eff.Hidden > 0 {
		fmt.Fprintln(w, ui.Muted.Render(fmt.Sprintf("%s %d built-in item(s) hidden", ui.IconHidden, eff.Hidden)))
	}
	fmt.Fprintln(w, "")

	lastTod := progress.TimeOfDay("")
	for _, line := range dayLines(eff) {
		if line.tod != lastTod {
			fmt.Fprintln(w, ui.H2.Render(ui.TimeIcon(line.tod)+" "+titleCase(string(line.tod))))
			lastTod = line.tod
		}
		mark := ui.CheckIcon(line.done)
		loop := ""
		if line.loop {
			loop = " " + ui.IconLoop
		}
		fmt.Fprintf(w, "  %s %s%s  %s\n", mark, line.label, loop, ui.Dim.Render(shortID(line.id)))
		for i, sub := range line.sub {
			box := "[ ]"
			if sub.Checked {
				box = "[x]"
			}
			fmt.Fprintf(w, "      %s %d. %s\n", ui.Muted.Render(box), i+1, sub.Text)
		}
	}

	if eff.AllDone() {
		fmt.Fprintln(w, "")
		fmt.Fprintln(w, ui.BadgeAllDone)
	}
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// shortID abbreviates uuid task ids for display; built-in ids pass through.
func shortID(id string) string {
	if len(id) > 8 && strings.Contains(id, "-") {
		return id[:8]
	}
	return id
}
