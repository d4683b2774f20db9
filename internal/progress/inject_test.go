package progress

import (
	"testing"
	"time"

	"renshu/internal/datekey"
)

// 2024-03-01 was a Friday.
const friday = datekey.Key("2024-03-01")

func TestProjectSynthesizesEmptyDay(t *testing.T) {
	day := Project(nil, nil, friday)
	if day.Date != friday {
		t.Fatalf("date=%q, want %q", day.Date, friday)
	}
	if len(day.Items) != len(DefaultItems()) {
		t.Fatalf("items=%d, want %d", len(day.Items), len(DefaultItems()))
	}
	for _, it := range day.Items {
		if it.Done() {
			t.Fatalf("synthesized item %q should be uncompleted", it.ID)
		}
	}
	if len(day.CustomItems) != 0 {
		t.Fatalf("customItems=%d, want 0", len(day.CustomItems))
	}
}

func TestProjectInjectsApplicableTemplates(t *testing.T) {
	registry := []CustomTask{
		{ID: "water", Label: "Drink water", Recurring: true},
		{ID: "gym", Label: "Gym", Recurring: true, ActiveDays: []time.Weekday{time.Monday, time.Wednesday}},
		{ID: "fri", Label: "Friday review", Recurring: true, ActiveDays: []time.Weekday{time.Friday}},
	}

	day := Project(nil, registry, friday)
	if len(day.CustomItems) != 2 {
		t.Fatalf("customItems=%d, want 2 (daily + friday)", len(day.CustomItems))
	}
	ids := map[string]bool{}
	for _, c := range day.CustomItems {
		ids[c.ID] = true
	}
	if !ids["water"] || !ids["fri"] || ids["gym"] {
		t.Fatalf("injected=%v, want water+fri without gym", ids)
	}
}

func TestProjectIsIdempotent(t *testing.T) {
	registry := []CustomTask{{ID: "water", Label: "Drink water", Recurring: true}}

	first := Project(nil, registry, friday)
	second := Project(&first, registry, friday)

	if len(second.CustomItems) != 1 {
		t.Fatalf("customItems=%d after double projection, want 1", len(second.CustomItems))
	}
}

func TestProjectDoesNotMutateInput(t *testing.T) {
	now := time.Now()
	stored := DailyProgress{
		Date:  friday,
		Items: DefaultItems(),
		CustomItems: []CustomTask{
			{ID: "water", Label: "Drink water", Recurring: true, CompletedAt: &now},
		},
	}
	registry := []CustomTask{
		{ID: "water", Label: "Drink water", Recurring: true},
		{ID: "read", Label: "Read", Recurring: true},
	}

	out := Project(&stored, registry, friday)

	if len(stored.CustomItems) != 1 {
		t.Fatalf("input mutated: customItems=%d, want 1", len(stored.CustomItems))
	}
	if len(out.CustomItems) != 2 {
		t.Fatalf("output customItems=%d, want 2", len(out.CustomItems))
	}
	// The stored instance keeps its completion; the injected one starts fresh.
	for _, c := range out.CustomItems {
		switch c.ID {
		case "water":
			if !c.Done() {
				t.Fatalf("stored instance lost its completion")
			}
		case "read":
			if c.Done() {
				t.Fatalf("injected instance should start uncompleted")
			}
		}
	}
}

func TestProjectResetsSubItemsOnInjection(t *testing.T) {
	registry := []CustomTask{{
		ID: "routine", Label: "Morning routine", Recurring: true,
		SubChecklist: []SubCheckItem{
			{ID: "a", Text: "stretch", Checked: true},
			{ID: "b", Text: "vocab", Checked: true},
		},
	}}

	day := Project(nil, registry, friday)
	if len(day.CustomItems) != 1 {
		t.Fatalf("customItems=%d, want 1", len(day.CustomItems))
	}
	for _, sub := range day.CustomItems[0].SubChecklist {
		if sub.Checked {
			t.Fatalf("sub-item %q should be reset to unchecked", sub.ID)
		}
	}
	// Template keeps its checked state.
	if !registry[0].SubChecklist[0].Checked {
		t.Fatalf("template sub-item mutated")
	}
}
