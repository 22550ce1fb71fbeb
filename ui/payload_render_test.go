package ui

import (
	"encoding/json"
	"strings"
	"testing"

	appmodel "wandertui/model"
	"wandertui/payload"
	"wandertui/planner"
)

func newTestView(t *testing.T) AppView {
	t.Helper()
	return NewAppView(appmodel.NewModel(nil, nil, nil))
}

func applyFrame(t *testing.T, a *AppView, kind payload.Kind, data string) appmodel.Message {
	t.Helper()
	ok := a.dataModel.ApplyFrame(planner.StreamFrame{
		Status: planner.StatusComplete,
		UIType: string(kind),
		UIData: json.RawMessage(data),
	})
	if !ok {
		t.Fatal("frame should append a message")
	}
	return a.dataModel.Messages[len(a.dataModel.Messages)-1]
}

func TestRenderPayloadHotelCards(t *testing.T) {
	a := newTestView(t)
	msg := applyFrame(t, &a, payload.KindHotelCards,
		`[{"id":"h1","name":"Ana Mandara","address":"Đà Lạt","priceDisplay":"1.2tr/đêm","rating":4.7}]`)

	out := a.renderPayload(msg)
	if !strings.Contains(out, "Ana Mandara") {
		t.Errorf("hotel name missing from render:\n%s", out)
	}
	if !strings.Contains(out, "1.2tr/đêm") {
		t.Errorf("price missing from render:\n%s", out)
	}
}

func TestRenderPayloadDecodeErrorNotice(t *testing.T) {
	a := newTestView(t)
	msg := applyFrame(t, &a, payload.KindHotelCards, `{"broken":true}`)

	out := a.renderPayload(msg)
	if !strings.Contains(out, "Không hiển thị được nội dung") {
		t.Errorf("expected inline notice, got:\n%s", out)
	}
}

func TestRenderPayloadUnknownKindRendersNothing(t *testing.T) {
	a := newTestView(t)
	ok := a.dataModel.ApplyFrame(planner.StreamFrame{
		Status: planner.StatusComplete,
		Reply:  "có chữ kèm theo",
		UIType: "hologram_tour",
		UIData: json.RawMessage(`{"x":1}`),
	})
	if !ok {
		t.Fatal("message with text should append")
	}
	msg := a.dataModel.Messages[len(a.dataModel.Messages)-1]
	if out := a.renderPayload(msg); out != "" {
		t.Errorf("unknown kind should render nothing, got:\n%s", out)
	}
}

func TestRenderSpotTableShowsDefaults(t *testing.T) {
	a := newTestView(t)
	msg := applyFrame(t, &a, payload.KindSpotTable,
		`{"rows":[{"id":"spot_1","name":"Lăng Khải Định","category":"di tích","rating":4.5,"area":"ngoại ô"},
		         {"id":"spot_2","name":"Chùa Thiên Mụ","category":"chùa","rating":4.6,"area":"ven sông"}],
		  "defaultSelectedIds":["spot_1"]}`)

	out := a.renderPayload(msg)
	if !strings.Contains(out, "Lăng Khải Định") {
		t.Errorf("row missing:\n%s", out)
	}
	if !strings.Contains(out, "Đang chọn: 1/2") {
		t.Errorf("default preselection not reflected:\n%s", out)
	}
}

func TestLatestSelectableIgnoresInertBlocks(t *testing.T) {
	a := newTestView(t)
	applyFrame(t, &a, payload.KindHotelCards, `[{"id":"h1","name":"Ana Mandara"}]`)
	applyFrame(t, &a, payload.KindTips, `{"tipsCategories":[{"title":"Thời tiết","content":"Mang áo ấm"}]}`)

	latest := a.latestSelectable()
	if latest == nil {
		t.Fatal("hotel block should still be selectable")
	}
	if latest.PayloadKind != payload.KindHotelCards {
		t.Errorf("latest selectable = %q", latest.PayloadKind)
	}
}
