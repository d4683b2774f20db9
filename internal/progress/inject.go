package progress

import (
	"time"

	"renshu/internal/datekey"
)

// Project overlays the recurring-task registry onto a day's stored record and
// returns the resulting record. A nil day synthesizes an empty record for the
// date. Templates already materialized in the day (matched by id) are left
// alone; applicable missing ones are appended as fresh instances with the
// completion timestamp cleared and every sub-item unchecked.
//
// Project is idempotent, never mutates its inputs, and performs no I/O.
// Persisting the injected instances is the caller's concern and happens only
// on an explicit mutation, never from a view-only projection.
func Project(day *DailyProgress, registry []CustomTask, date datekey.Key) DailyProgress {
	var out DailyProgress
	if day == nil {
		out = DailyProgress{Date: date, Items: DefaultItems()}
	} else {
		out = cloneDay(*day)
		out.Date = date
	}

	wd := date.Weekday()
	for _, tpl := range registry {
		if hasCustom(out.CustomItems, tpl.ID) || !tpl.ActiveOn(wd) {
			continue
		}
		out.CustomItems = append(out.CustomItems, freshInstance(tpl))
	}
	return out
}

// freshInstance copies a template into a new day instance: not completed, all
// sub-items unchecked.
func freshInstance(tpl CustomTask) CustomTask {
	inst := tpl
	inst.CompletedAt = nil
	inst.ActiveDays = append([]time.Weekday(nil), tpl.ActiveDays...)
	inst.SubChecklist = make([]SubCheckItem, len(tpl.SubChecklist))
	for i, sub := range tpl.SubChecklist {
		sub.Checked = false
		inst.SubChecklist[i] = sub
	}
	return inst
}

func hasCustom(items []CustomTask, id string) bool {
	for _, it := range items {
		if it.ID == id {
			return true
		}
	}
	return false
}

func cloneDay(d DailyProgress) DailyProgress {
	out := d
	out.Items = append([]ChecklistItem(nil), d.Items...)
	out.CustomItems = make([]CustomTask, len(d.CustomItems))
	for i, t := range d.CustomItems {
		t.ActiveDays = append([]time.Weekday(nil), t.ActiveDays...)
		t.SubChecklist = append([]SubCheckItem(nil), t.SubChecklist...)
		out.CustomItems[i] = t
	}
	if len(out.Items) == 0 {
		out.Items = DefaultItems()
	}
	return out
}
