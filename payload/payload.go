// Package payload defines the generative UI blocks the planning assistant
// can attach to a message.
//
// Every assistant turn may carry at most one payload, discriminated by a
// Kind tag on the wire (the "ui_type" field). The payload package owns the
// data contract for each kind and the single decode dispatch used by the
// rest of the client. The dispatch is exhaustive over the known kinds:
// adding a kind means adding a struct and a case here, nowhere else.
//
// Decoding policy:
//   - An unknown kind decodes to nil with no error. The renderer shows
//     nothing for it; the conversation is unaffected.
//   - A known kind whose data does not match its contract returns a
//     *DecodeError. The caller keeps the message and renders an inline
//     notice instead of the block.
package payload

import (
	"encoding/json"
	"fmt"
)

// Kind discriminates the generative UI block attached to a message.
type Kind string

const (
	KindNone             Kind = "none"
	KindOptions          Kind = "options"
	KindSpotCards        Kind = "spot_cards"
	KindHotelCards       Kind = "hotel_cards"
	KindItineraryPlan    Kind = "itinerary_plan"
	KindItinerary        Kind = "itinerary"
	KindItineraryBuilder Kind = "itinerary_builder"
	KindSpotTable        Kind = "spot_selector_table"
	KindDistanceInfo     Kind = "distance_info"
	KindMonthSelector    Kind = "month_selector"
	KindTips             Kind = "tips"
	KindComprehensive    Kind = "comprehensive"
)

// Payload is implemented by every decoded UI block.
type Payload interface {
	PayloadKind() Kind
}

// DecodeError reports that ui_data did not match the contract of its
// declared kind. It is caught at the single-message boundary.
type DecodeError struct {
	Kind Kind
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("payload %q does not match its contract: %v", e.Kind, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// Item is one selectable card in an options/spot list. The backend sends
// either a bare string or an object; both normalize to Item.
type Item struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Rating      float64 `json:"rating,omitempty"`
	Description string  `json:"description,omitempty"`
	Image       string  `json:"image,omitempty"`
}

// UnmarshalJSON accepts either "name" or {id, name, ...}.
func (it *Item) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		it.Name = s
		return nil
	}

	type item Item // avoid recursion
	var obj item
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	*it = Item(obj)
	return nil
}

// ItemList carries the options and spot_cards kinds. The wire data is a
// bare JSON array.
type ItemList struct {
	Kind  Kind
	Items []Item
}

func (p *ItemList) PayloadKind() Kind { return p.Kind }

// MarshalJSON emits the bare wire array so a persisted list decodes back
// through Decode under its stored kind.
func (p *ItemList) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.Items)
}

// HotelCard is one bookable hotel suggestion.
type HotelCard struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Address      string  `json:"address"`
	PriceDisplay string  `json:"priceDisplay"`
	Rating       float64 `json:"rating"`
	Image        string  `json:"image"`
	URL          string  `json:"url,omitempty"`
}

// HotelCards carries the hotel_cards kind (wire data is a JSON array).
type HotelCards struct {
	Hotels []HotelCard
}

func (p *HotelCards) PayloadKind() Kind { return KindHotelCards }

// MarshalJSON emits the bare wire array, matching what Decode expects for
// hotel_cards.
func (p *HotelCards) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.Hotels)
}

// ItineraryDay is one day entry of a finished plan.
type ItineraryDay struct {
	Day       int    `json:"day"`
	Title     string `json:"title"`
	Morning   string `json:"morning,omitempty"`
	Afternoon string `json:"afternoon,omitempty"`
	Evening   string `json:"evening,omitempty"`
	Notes     string `json:"notes,omitempty"`
}

// PlanAction is a follow-up button the plan offers (e.g. "Điều chỉnh").
type PlanAction struct {
	Label  string `json:"label"`
	Action string `json:"action"`
}

// ItineraryPlan carries the itinerary_plan / itinerary kinds.
type ItineraryPlan struct {
	Destination string         `json:"destination"`
	Days        int            `json:"days"`
	Items       []ItineraryDay `json:"items"`
	Actions     []PlanAction   `json:"actions,omitempty"`
}

func (p *ItineraryPlan) PayloadKind() Kind { return KindItineraryPlan }

// ItineraryBuilder carries the day-by-day spot picking flow. CurrentDay is
// the day the selections entered while this block is active belong to.
type ItineraryBuilder struct {
	Spots        []Item `json:"spots"`
	CurrentDay   int    `json:"currentDay"`
	TotalDays    int    `json:"totalDays"`
	AllSpots     []Item `json:"allSpots,omitempty"`
	HasMoreSpots bool   `json:"hasMoreSpots,omitempty"`
}

func (p *ItineraryBuilder) PayloadKind() Kind { return KindItineraryBuilder }

// SpotRow is one row of the tabular spot selector.
type SpotRow struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	Category       string   `json:"category"`
	Rating         float64  `json:"rating"`
	BestTime       []string `json:"bestTime"`
	AvgDurationMin int      `json:"avgDurationMin"`
	Area           string   `json:"area"`
}

// SpotTable carries the spot_selector_table kind.
type SpotTable struct {
	Rows               []SpotRow `json:"rows"`
	DefaultSelectedIDs []string  `json:"defaultSelectedIds"`
}

func (p *SpotTable) PayloadKind() Kind { return KindSpotTable }

// SpotDistance is the distance from the chosen hotel to one spot.
type SpotDistance struct {
	Name       string  `json:"name"`
	DistanceKm float64 `json:"distanceKm"`
	Image      string  `json:"image,omitempty"`
}

// DistanceInfo carries the distance_info kind.
type DistanceInfo struct {
	Hotel     string         `json:"hotel"`
	Distances []SpotDistance `json:"distances"`
}

func (p *DistanceInfo) PayloadKind() Kind { return KindDistanceInfo }

// MonthSelector carries the month_selector kind.
type MonthSelector struct {
	BestMonths  []string `json:"bestMonths"`
	AvoidMonths []string `json:"avoidMonths"`
}

func (p *MonthSelector) PayloadKind() Kind { return KindMonthSelector }

// TipCategory is one group of travel tips.
type TipCategory struct {
	Icon    string `json:"icon"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

// Tips carries the tips kind.
type Tips struct {
	TipsCategories []TipCategory `json:"tipsCategories"`
}

func (p *Tips) PayloadKind() Kind { return KindTips }

// Comprehensive carries the comprehensive kind: any subset of hotels,
// spots and food in one block.
type Comprehensive struct {
	Hotels []HotelCard `json:"hotels,omitempty"`
	Spots  []Item      `json:"spots,omitempty"`
	Food   []Item      `json:"food,omitempty"`
}

func (p *Comprehensive) PayloadKind() Kind { return KindComprehensive }

// Decode dispatches raw ui_data to the typed block for kind.
//
// Returns (nil, nil) for KindNone, an empty kind, or a kind this client
// does not know. Returns a *DecodeError when the data does not match the
// declared kind's contract.
func Decode(kind Kind, data json.RawMessage) (Payload, error) {
	if kind == "" || kind == KindNone || len(data) == 0 {
		return nil, nil
	}

	fail := func(err error) (Payload, error) {
		return nil, &DecodeError{Kind: kind, Err: err}
	}

	switch kind {
	case KindOptions, KindSpotCards:
		var items []Item
		if err := json.Unmarshal(data, &items); err != nil {
			return fail(err)
		}
		return &ItemList{Kind: kind, Items: items}, nil

	case KindHotelCards:
		var hotels []HotelCard
		if err := json.Unmarshal(data, &hotels); err != nil {
			return fail(err)
		}
		return &HotelCards{Hotels: hotels}, nil

	case KindItineraryPlan, KindItinerary:
		var plan ItineraryPlan
		if err := json.Unmarshal(data, &plan); err != nil {
			return fail(err)
		}
		return &plan, nil

	case KindItineraryBuilder:
		var builder ItineraryBuilder
		if err := json.Unmarshal(data, &builder); err != nil {
			return fail(err)
		}
		return &builder, nil

	case KindSpotTable:
		var table SpotTable
		if err := json.Unmarshal(data, &table); err != nil {
			return fail(err)
		}
		return &table, nil

	case KindDistanceInfo:
		var info DistanceInfo
		if err := json.Unmarshal(data, &info); err != nil {
			return fail(err)
		}
		return &info, nil

	case KindMonthSelector:
		var months MonthSelector
		if err := json.Unmarshal(data, &months); err != nil {
			return fail(err)
		}
		return &months, nil

	case KindTips:
		var tips Tips
		if err := json.Unmarshal(data, &tips); err != nil {
			return fail(err)
		}
		return &tips, nil

	case KindComprehensive:
		var comp Comprehensive
		if err := json.Unmarshal(data, &comp); err != nil {
			return fail(err)
		}
		return &comp, nil
	}

	// Unknown kind: render nothing, not an error.
	return nil, nil
}
