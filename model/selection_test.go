package model

import (
	"encoding/json"
	"reflect"
	"testing"

	"wandertui/payload"
	"wandertui/planner"
)

func TestHotelBookingMessage(t *testing.T) {
	hotel := payload.HotelCard{ID: "h2", Name: "Dalat Palace"}
	got := HotelBookingMessage(hotel)
	want := "Tôi muốn đặt phòng tại Dalat Palace"
	if got != want {
		t.Errorf("booking message = %q, want %q", got, want)
	}
}

func TestMultiPickerSubmitFormat(t *testing.T) {
	var p MultiPicker
	p.Toggle(4)
	p.Toggle(2)

	if !p.CanSubmit() {
		t.Fatal("two selections should be submittable")
	}
	if got := p.Submit(); got != "2, 4" {
		t.Errorf("submit = %q, want %q", got, "2, 4")
	}
	if p.CanSubmit() {
		t.Error("submit must clear the pending selection")
	}
}

func TestMultiPickerToggleOff(t *testing.T) {
	var p MultiPicker
	p.Toggle(3)
	p.Toggle(3)
	if p.CanSubmit() {
		t.Error("toggling twice should deselect")
	}
	if got := p.Submit(); got != "" {
		t.Errorf("empty submit should return nothing, got %q", got)
	}
}

func TestDayPickerScopesSelectionsPerDay(t *testing.T) {
	var p DayPicker
	p.SetCurrentDay(1)
	p.Toggle("spot_5")
	p.Toggle("spot_9")

	p.SetCurrentDay(2)
	if p.IsSelected(2, "spot_5") {
		t.Error("day 2 must not inherit day 1's picks")
	}
	p.Toggle("spot_5")

	if !p.IsSelected(1, "spot_5") || !p.IsSelected(2, "spot_5") {
		t.Error("the same spot should be selectable on both days")
	}
}

func TestDayPickerSubmitClearsOnlyThatDay(t *testing.T) {
	var p DayPicker
	p.SetCurrentDay(1)
	p.Toggle("2")
	p.Toggle("4")
	p.SetCurrentDay(2)
	p.Toggle("spot_9")
	p.SetCurrentDay(1)

	got := p.Submit()
	if got != "2, 4" {
		t.Errorf("submit = %q", got)
	}
	if len(p.Selected(1)) != 0 {
		t.Error("submitted day should be cleared")
	}
	if !p.IsSelected(2, "spot_9") {
		t.Error("other days must keep their picks")
	}
}

func newTestTable() *payload.SpotTable {
	return &payload.SpotTable{
		Rows: []payload.SpotRow{
			{ID: "spot_1", Name: "Lăng Khải Định"},
			{ID: "spot_2", Name: "Chùa Thiên Mụ"},
			{ID: "spot_3", Name: "Kinh thành Huế"},
		},
		DefaultSelectedIDs: []string{"spot_1", "spot_3", "spot_bogus"},
	}
}

func TestTablePickerSeedsFromDefaults(t *testing.T) {
	p := NewTablePicker(newTestTable())
	if !p.IsSelected("spot_1") || !p.IsSelected("spot_3") {
		t.Error("defaults should start selected")
	}
	if p.IsSelected("spot_2") {
		t.Error("non-defaults should start unselected")
	}
	if p.SelectedCount() != 2 {
		t.Errorf("unknown default IDs must be ignored, count = %d", p.SelectedCount())
	}
}

func TestTablePickerSubmitTracksRemovedDefaults(t *testing.T) {
	p := NewTablePicker(newTestTable())
	p.Toggle("spot_1") // deselect a default
	p.Toggle("spot_2") // add a non-default

	body, err := p.Submit()
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}

	var sub struct {
		Selected []string `json:"selected"`
		Removed  []string `json:"removed"`
	}
	if err := json.Unmarshal([]byte(body), &sub); err != nil {
		t.Fatalf("submit body is not JSON: %v", err)
	}
	if !reflect.DeepEqual(sub.Selected, []string{"spot_2", "spot_3"}) {
		t.Errorf("selected = %v", sub.Selected)
	}
	if !reflect.DeepEqual(sub.Removed, []string{"spot_1"}) {
		t.Errorf("removed = %v", sub.Removed)
	}
}

func TestTablePickerSelectAllClearAllCancel(t *testing.T) {
	p := NewTablePicker(newTestTable())

	p.SelectAll()
	if p.SelectedCount() != 3 {
		t.Errorf("select-all count = %d", p.SelectedCount())
	}

	p.ClearAll()
	if p.SelectedCount() != 0 {
		t.Errorf("clear-all count = %d", p.SelectedCount())
	}

	p.Cancel()
	if !p.IsSelected("spot_1") || !p.IsSelected("spot_3") || p.IsSelected("spot_2") {
		t.Error("cancel should restore exactly the default preselection")
	}
}

func TestFreshTableGetsFreshPicker(t *testing.T) {
	m := newTestModel()
	tableData, err := json.Marshal(newTestTable())
	if err != nil {
		t.Fatal(err)
	}
	frame := planner.StreamFrame{
		Status: planner.StatusComplete,
		UIType: string(payload.KindSpotTable),
		UIData: tableData,
	}

	m.ApplyFrame(frame)
	if m.TablePicker == nil {
		t.Fatal("table block should bind a picker")
	}
	m.TablePicker.ClearAll()

	// The backend re-renders the table: edits are gone, defaults back.
	m.ApplyFrame(frame)
	if m.TablePicker.SelectedCount() != 2 {
		t.Errorf("new table block should reset to defaults, count = %d", m.TablePicker.SelectedCount())
	}
}
