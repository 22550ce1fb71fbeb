package payload

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestDecodeUnknownKindIsNotAnError(t *testing.T) {
	p, err := Decode(Kind("future_widget"), json.RawMessage(`{"x":1}`))
	if err != nil {
		t.Fatalf("unknown kind must not error: %v", err)
	}
	if p != nil {
		t.Fatalf("unknown kind must decode to nil, got %T", p)
	}
}

func TestDecodeNoneAndEmpty(t *testing.T) {
	if p, err := Decode(KindNone, json.RawMessage(`[]`)); p != nil || err != nil {
		t.Errorf("none kind: got (%v, %v)", p, err)
	}
	if p, err := Decode(KindHotelCards, nil); p != nil || err != nil {
		t.Errorf("empty data: got (%v, %v)", p, err)
	}
}

func TestDecodeContractViolation(t *testing.T) {
	_, err := Decode(KindHotelCards, json.RawMessage(`{"not":"an array"}`))
	if err == nil {
		t.Fatal("expected a decode error")
	}
	var decodeErr *DecodeError
	if !errors.As(err, &decodeErr) {
		t.Fatalf("expected *DecodeError, got %T", err)
	}
	if decodeErr.Kind != KindHotelCards {
		t.Errorf("error kind = %q", decodeErr.Kind)
	}
}

func TestDecodeHotelCards(t *testing.T) {
	data := json.RawMessage(`[{"id":"h1","name":"Ana Mandara","address":"Đà Lạt","priceDisplay":"1.2tr/đêm","rating":4.7}]`)
	p, err := Decode(KindHotelCards, data)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	hotels, ok := p.(*HotelCards)
	if !ok {
		t.Fatalf("wrong type %T", p)
	}
	if len(hotels.Hotels) != 1 || hotels.Hotels[0].Name != "Ana Mandara" {
		t.Errorf("hotels = %+v", hotels.Hotels)
	}
}

func TestDecodeItemListAcceptsBareStrings(t *testing.T) {
	data := json.RawMessage(`["Hồ Xuân Hương", {"id":"s2","name":"Thung lũng Tình Yêu","rating":4.2}]`)
	p, err := Decode(KindSpotCards, data)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	list := p.(*ItemList)
	if list.Kind != KindSpotCards {
		t.Errorf("kind = %q", list.Kind)
	}
	if list.Items[0].Name != "Hồ Xuân Hương" {
		t.Errorf("bare string item: %+v", list.Items[0])
	}
	if list.Items[1].ID != "s2" || list.Items[1].Rating != 4.2 {
		t.Errorf("object item: %+v", list.Items[1])
	}
}

func TestDecodeItineraryAliases(t *testing.T) {
	data := json.RawMessage(`{"destination":"Huế","days":2,"items":[{"day":1,"title":"Kinh thành"}]}`)

	for _, kind := range []Kind{KindItineraryPlan, KindItinerary} {
		p, err := Decode(kind, data)
		if err != nil {
			t.Fatalf("Decode(%q) failed: %v", kind, err)
		}
		plan := p.(*ItineraryPlan)
		if plan.Destination != "Huế" || len(plan.Items) != 1 {
			t.Errorf("Decode(%q) = %+v", kind, plan)
		}
	}
}

func TestDecodeBuilderAndTable(t *testing.T) {
	builderData := json.RawMessage(`{"spots":["Chợ Đà Lạt"],"currentDay":2,"totalDays":3,"hasMoreSpots":true}`)
	p, err := Decode(KindItineraryBuilder, builderData)
	if err != nil {
		t.Fatalf("builder decode failed: %v", err)
	}
	builder := p.(*ItineraryBuilder)
	if builder.CurrentDay != 2 || builder.TotalDays != 3 || !builder.HasMoreSpots {
		t.Errorf("builder = %+v", builder)
	}

	tableData := json.RawMessage(`{"rows":[{"id":"spot_1","name":"Lăng Khải Định","category":"di tích","rating":4.5,"area":"ngoại ô"}],"defaultSelectedIds":["spot_1"]}`)
	p, err = Decode(KindSpotTable, tableData)
	if err != nil {
		t.Fatalf("table decode failed: %v", err)
	}
	table := p.(*SpotTable)
	if len(table.Rows) != 1 || table.DefaultSelectedIDs[0] != "spot_1" {
		t.Errorf("table = %+v", table)
	}
}

func TestDecodeComprehensiveSubset(t *testing.T) {
	data := json.RawMessage(`{"spots":["Bà Nà Hills"],"food":[{"name":"Mì Quảng"}]}`)
	p, err := Decode(KindComprehensive, data)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	comp := p.(*Comprehensive)
	if len(comp.Hotels) != 0 || len(comp.Spots) != 1 || len(comp.Food) != 1 {
		t.Errorf("comprehensive = %+v", comp)
	}
}
