package root

import (
	"fmt"
	"strings"

	"renshu/internal/progress"
)

// resolveCustomTask matches arg against the effective view's custom tasks:
// exact id, unique id prefix, or unique case-insensitive label prefix.
func resolveCustomTask(eff progress.EffectiveDay, arg string) (progress.CustomTask, error) {
	var matches []progress.CustomTask
	lower := strings.ToLower(arg)
	for _, t := range eff.Day.CustomItems {
		if t.ID == arg {
			return t, nil
		}
		if strings.HasPrefix(t.ID, arg) || strings.HasPrefix(strings.ToLower(t.Label), lower) {
			matches = append(matches, t)
		}
	}
	switch len(matches) {
	case 1:
		return matches[0], nil
	case 0:
		return progress.CustomTask{}, fmt.Errorf("no task matching %q on %s", arg, eff.Day.Date)
	default:
		var labels []string
		for _, m := range matches {
			labels = append(labels, m.Label)
		}
		return progress.CustomTask{}, fmt.Errorf("%q is ambiguous: %s", arg, strings.Join(labels, ", "))
	}
}
