package model

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"wandertui/payload"
)

// HotelBookingMessage builds the turn sent when the user picks a hotel
// card. Picking submits immediately; there is no pending-selection state
// for hotels.
func HotelBookingMessage(hotel payload.HotelCard) string {
	return "Tôi muốn đặt phòng tại " + hotel.Name
}

// SkipMessage is the turn sent when the user skips the tabular spot
// selection and lets the backend choose.
const SkipMessage = "skip"

// MultiPicker accumulates option choices for a select-then-confirm list
// (the options and spot_cards blocks). Choices are kept as 1-based
// ordinals into the rendered list; confirming submits the ordinals as a
// comma-separated turn ("2, 4") and resets the picker.
type MultiPicker struct {
	selected map[int]bool
}

// Toggle flips the ordinal in or out of the pending selection.
func (p *MultiPicker) Toggle(ordinal int) {
	if ordinal < 1 {
		return
	}
	if p.selected == nil {
		p.selected = make(map[int]bool)
	}
	if p.selected[ordinal] {
		delete(p.selected, ordinal)
		return
	}
	p.selected[ordinal] = true
}

// IsSelected reports whether the ordinal is currently pending.
func (p *MultiPicker) IsSelected(ordinal int) bool {
	return p.selected[ordinal]
}

// Selected returns the pending ordinals in ascending order.
func (p *MultiPicker) Selected() []int {
	ordinals := make([]int, 0, len(p.selected))
	for n := range p.selected {
		ordinals = append(ordinals, n)
	}
	sort.Ints(ordinals)
	return ordinals
}

// CanSubmit reports whether at least one option is pending. Confirming an
// empty selection is a no-op at the call site.
func (p *MultiPicker) CanSubmit() bool {
	return len(p.selected) > 0
}

// Submit returns the outbound turn for the pending selection and clears
// the picker. Returns "" when nothing is selected.
func (p *MultiPicker) Submit() string {
	ordinals := p.Selected()
	if len(ordinals) == 0 {
		return ""
	}
	parts := make([]string, len(ordinals))
	for i, n := range ordinals {
		parts[i] = strconv.Itoa(n)
	}
	p.Clear()
	return strings.Join(parts, ", ")
}

// Clear drops the pending selection.
func (p *MultiPicker) Clear() {
	p.selected = nil
}

// DayPicker holds the itinerary builder's spot selections keyed by day.
// Each day owns an independent set: moving to the next day neither clears
// nor inherits the previous day's picks, and submitting one day leaves
// every other day's set intact.
//
// Within a day, picks keep the order the user made them.
type DayPicker struct {
	days       map[int][]string
	currentDay int
}

// SetCurrentDay records which day newly toggled spots belong to. Driven
// by the currentDay field of the latest builder block.
func (p *DayPicker) SetCurrentDay(day int) {
	if day > 0 {
		p.currentDay = day
	}
}

// CurrentDay returns the day selections are currently scoped to.
func (p *DayPicker) CurrentDay() int {
	if p.currentDay == 0 {
		return 1
	}
	return p.currentDay
}

// Toggle flips spotID in or out of the current day's set.
func (p *DayPicker) Toggle(spotID string) {
	p.ToggleForDay(p.CurrentDay(), spotID)
}

// ToggleForDay flips spotID in or out of the given day's set.
func (p *DayPicker) ToggleForDay(day int, spotID string) {
	if spotID == "" {
		return
	}
	if p.days == nil {
		p.days = make(map[int][]string)
	}
	picks := p.days[day]
	for i, id := range picks {
		if id == spotID {
			p.days[day] = append(picks[:i:i], picks[i+1:]...)
			return
		}
	}
	p.days[day] = append(picks, spotID)
}

// IsSelected reports whether spotID is picked for the given day.
func (p *DayPicker) IsSelected(day int, spotID string) bool {
	for _, id := range p.days[day] {
		if id == spotID {
			return true
		}
	}
	return false
}

// Selected returns the picks for one day in pick order.
func (p *DayPicker) Selected(day int) []string {
	picks := p.days[day]
	out := make([]string, len(picks))
	copy(out, picks)
	return out
}

// Submit returns the outbound turn for the current day's picks and clears
// that day only. Returns "" when the day has no picks.
func (p *DayPicker) Submit() string {
	day := p.CurrentDay()
	picks := p.days[day]
	if len(picks) == 0 {
		return ""
	}
	delete(p.days, day)
	return strings.Join(picks, ", ")
}

// Reset drops every day's selections.
func (p *DayPicker) Reset() {
	p.days = nil
	p.currentDay = 0
}

// TablePicker drives the tabular spot selector. Each rendered table gets
// a fresh picker seeded from the block's default preselection; toggles,
// select-all and clear-all then operate on the full row set.
type TablePicker struct {
	rows     []payload.SpotRow
	defaults map[string]bool
	selected map[string]bool
}

// NewTablePicker seeds a picker from the table block. Default IDs that do
// not name a row are ignored.
func NewTablePicker(table *payload.SpotTable) *TablePicker {
	p := &TablePicker{
		rows:     table.Rows,
		defaults: make(map[string]bool, len(table.DefaultSelectedIDs)),
		selected: make(map[string]bool, len(table.DefaultSelectedIDs)),
	}
	known := make(map[string]bool, len(table.Rows))
	for _, row := range table.Rows {
		known[row.ID] = true
	}
	for _, id := range table.DefaultSelectedIDs {
		if known[id] {
			p.defaults[id] = true
			p.selected[id] = true
		}
	}
	return p
}

// Rows returns the table rows in wire order.
func (p *TablePicker) Rows() []payload.SpotRow {
	return p.rows
}

// Toggle flips one row by ID. Unknown IDs are ignored.
func (p *TablePicker) Toggle(id string) {
	for _, row := range p.rows {
		if row.ID != id {
			continue
		}
		if p.selected[id] {
			delete(p.selected, id)
		} else {
			p.selected[id] = true
		}
		return
	}
}

// IsSelected reports whether the row is currently checked.
func (p *TablePicker) IsSelected(id string) bool {
	return p.selected[id]
}

// SelectAll checks every row.
func (p *TablePicker) SelectAll() {
	for _, row := range p.rows {
		p.selected[row.ID] = true
	}
}

// ClearAll unchecks every row, including the defaults.
func (p *TablePicker) ClearAll() {
	p.selected = make(map[string]bool)
}

// Cancel discards the user's edits and restores the default preselection.
func (p *TablePicker) Cancel() {
	p.selected = make(map[string]bool, len(p.defaults))
	for id := range p.defaults {
		p.selected[id] = true
	}
}

// SelectedCount returns how many rows are checked.
func (p *TablePicker) SelectedCount() int {
	return len(p.selected)
}

// tableSubmission is the outbound turn body for a table confirmation:
// everything checked, plus the defaults the user explicitly removed so
// the backend can drop them from its working set.
type tableSubmission struct {
	Selected []string `json:"selected"`
	Removed  []string `json:"removed"`
}

// Submit returns the outbound turn for the current table state. Selected
// follows row order; Removed lists default rows the user unchecked.
func (p *TablePicker) Submit() (string, error) {
	sub := tableSubmission{Selected: []string{}, Removed: []string{}}
	for _, row := range p.rows {
		if p.selected[row.ID] {
			sub.Selected = append(sub.Selected, row.ID)
		} else if p.defaults[row.ID] {
			sub.Removed = append(sub.Removed, row.ID)
		}
	}
	body, err := json.Marshal(sub)
	if err != nil {
		return "", fmt.Errorf("failed to encode table selection: %w", err)
	}
	return string(body), nil
}
