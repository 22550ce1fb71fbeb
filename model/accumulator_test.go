package model

import (
	"encoding/json"
	"testing"

	"wandertui/payload"
	"wandertui/planner"
)

func newTestModel() *Model {
	return NewModel(nil, nil, nil)
}

func TestApplyFramePartialAlwaysAppends(t *testing.T) {
	m := newTestModel()
	base := len(m.Messages)

	frame := planner.StreamFrame{Status: planner.StatusPartial, Reply: "giống nhau"}
	if !m.ApplyFrame(frame) {
		t.Fatal("partial frame should append")
	}
	if !m.ApplyFrame(frame) {
		t.Fatal("identical partial frame should still append")
	}

	if got := len(m.Messages) - base; got != 2 {
		t.Fatalf("expected 2 appended messages, got %d", got)
	}
}

func TestApplyFrameEmptyCompleteMergesThenDiscards(t *testing.T) {
	m := newTestModel()
	base := len(m.Messages)

	frame := planner.StreamFrame{
		Status:       planner.StatusComplete,
		Reply:        "",
		ContextDelta: map[string]any{"destination": "Đà Lạt", "days": float64(3)},
	}
	if m.ApplyFrame(frame) {
		t.Fatal("pure end-of-turn frame must not append")
	}
	if len(m.Messages) != base {
		t.Fatal("history changed by a discarded frame")
	}
	if m.Context.Destination() != "Đà Lạt" {
		t.Errorf("context delta lost: destination = %q", m.Context.Destination())
	}
}

func TestApplyFrameMultiSectionTurn(t *testing.T) {
	// A hotels section, a spots section, then a bare completion: both
	// sections stay visible as separate messages.
	m := newTestModel()
	base := len(m.Messages)

	m.ApplyFrame(planner.StreamFrame{
		Status: planner.StatusPartial,
		Reply:  "Đây là vài khách sạn ở Đà Lạt",
		UIType: string(payload.KindHotelCards),
		UIData: json.RawMessage(`[{"id":"h1","name":"Ana Mandara"}]`),
	})
	m.ApplyFrame(planner.StreamFrame{
		Status: planner.StatusPartial,
		Reply:  "Và các điểm tham quan",
		UIType: string(payload.KindSpotCards),
		UIData: json.RawMessage(`["Hồ Xuân Hương"]`),
	})
	m.ApplyFrame(planner.StreamFrame{
		Status:       planner.StatusComplete,
		ContextDelta: map[string]any{"destination": "Đà Lạt"},
	})

	if got := len(m.Messages) - base; got != 2 {
		t.Fatalf("expected 2 visible sections, got %d", got)
	}
	first := m.Messages[base]
	if first.PayloadKind != payload.KindHotelCards || first.Payload == nil {
		t.Errorf("hotel section lost its payload: kind=%q", first.PayloadKind)
	}
	if m.Context.Destination() != "Đà Lạt" {
		t.Error("trailing context delta not merged")
	}
}

func TestApplyFrameBadPayloadKeepsMessage(t *testing.T) {
	m := newTestModel()

	appended := m.ApplyFrame(planner.StreamFrame{
		Status: planner.StatusComplete,
		Reply:  "vẫn có chữ",
		UIType: string(payload.KindHotelCards),
		UIData: json.RawMessage(`{"broken":true}`),
	})
	if !appended {
		t.Fatal("message with text must survive a payload contract failure")
	}

	msg := m.Messages[len(m.Messages)-1]
	if msg.PayloadErr == "" {
		t.Error("contract failure should be recorded on the message")
	}
	if msg.Payload != nil {
		t.Error("broken payload must not be attached")
	}
	if msg.Content != "vẫn có chữ" {
		t.Errorf("reply text lost: %q", msg.Content)
	}
}

func TestApplyFrameCompleteWithPayloadOnlyAppends(t *testing.T) {
	m := newTestModel()
	base := len(m.Messages)

	m.ApplyFrame(planner.StreamFrame{
		Status: planner.StatusComplete,
		UIType: string(payload.KindTips),
		UIData: json.RawMessage(`{"tipsCategories":[{"title":"Thời tiết","content":"Mang áo ấm"}]}`),
	})

	if len(m.Messages) != base+1 {
		t.Fatal("complete frame with payload should append")
	}
}

func TestApplyFrameNewOptionsBlockDropsPendingOrdinals(t *testing.T) {
	m := newTestModel()

	m.ApplyFrame(planner.StreamFrame{
		Status: planner.StatusPartial,
		Reply:  "Bạn thích hoạt động nào?",
		UIType: string(payload.KindOptions),
		UIData: json.RawMessage(`["Trekking","Chèo thuyền","Cắm trại"]`),
	})
	m.MultiPicker.Toggle(1)

	m.ApplyFrame(planner.StreamFrame{
		Status: planner.StatusPartial,
		Reply:  "Còn món ăn thì sao?",
		UIType: string(payload.KindOptions),
		UIData: json.RawMessage(`["Bánh căn","Lẩu gà lá é"]`),
	})

	if m.MultiPicker.IsSelected(1) {
		t.Error("ordinal from the previous options block must not carry into the new one")
	}
	if m.MultiPicker.CanSubmit() {
		t.Error("a fresh options block starts with nothing selected")
	}
}

func TestRecentHistoryWindow(t *testing.T) {
	var messages []Message
	for i := 0; i < 6; i++ {
		messages = append(messages, NewUserMessage("u"))
		messages = append(messages, Message{Role: RoleAssistant, Content: "a"})
	}
	messages = append(messages, Message{Role: RoleSystem, Content: "local notice"})

	turns := RecentHistory(messages, HistoryWindow)
	if len(turns) != HistoryWindow {
		t.Fatalf("expected %d turns, got %d", HistoryWindow, len(turns))
	}
	for _, turn := range turns {
		if turn.Role == RoleSystem {
			t.Error("system notices must not go over the wire")
		}
	}
}
