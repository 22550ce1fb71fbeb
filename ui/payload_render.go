package ui

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"

	appmodel "wandertui/model"
	"wandertui/payload"
)

// renderPayload draws the generative UI block attached to a message,
// dispatching on its kind. Returns "" for messages without a block.
// Rendering is pure display: all selection state lives in the model's
// pickers and is painted from there.
func (a AppView) renderPayload(msg appmodel.Message) string {
	if msg.PayloadErr != "" {
		return ErrorStyle.Render("⚠ Không hiển thị được nội dung: " + msg.PayloadErr)
	}
	if msg.Payload == nil {
		return ""
	}

	switch p := msg.Payload.(type) {
	case *payload.ItemList:
		return a.renderItemList(p, msg)
	case *payload.HotelCards:
		return a.renderHotelCards(p)
	case *payload.ItineraryPlan:
		return renderItineraryPlan(p)
	case *payload.ItineraryBuilder:
		return a.renderItineraryBuilder(p, msg)
	case *payload.SpotTable:
		return a.renderSpotTable(p, msg)
	case *payload.DistanceInfo:
		return renderDistanceInfo(p)
	case *payload.MonthSelector:
		return renderMonthSelector(p)
	case *payload.Tips:
		return renderTips(p)
	case *payload.Comprehensive:
		return a.renderComprehensive(p)
	}
	return ""
}

// isLatestPayload reports whether msg carries the newest selectable block.
// Only the newest block accepts selection keys; older copies render
// without checkboxes highlighted.
func (a AppView) isLatestPayload(msg appmodel.Message) bool {
	latest := a.latestSelectable()
	return latest != nil && latest.Payload == msg.Payload
}

func (a AppView) renderItemList(p *payload.ItemList, msg appmodel.Message) string {
	var b strings.Builder
	active := a.isLatestPayload(msg)

	for i, item := range p.Items {
		ordinal := i + 1
		mark := "[ ]"
		line := fmt.Sprintf("%d. %s", ordinal, item.Name)
		if item.Rating > 0 {
			line += DimStyle.Render(fmt.Sprintf("  ★ %.1f", item.Rating))
		}
		if active && a.dataModel.MultiPicker.IsSelected(ordinal) {
			mark = SelectedStyle.Render("[x]")
			line = SelectedStyle.Render(line)
		}
		b.WriteString(fmt.Sprintf("  %s %s\n", mark, line))
		if item.Description != "" {
			b.WriteString(DimStyle.Render("       "+item.Description) + "\n")
		}
	}

	if active {
		b.WriteString("\n" + FormatFooter("Alt+1..9", "Chọn", "Alt+C", "Xác nhận"))
	}
	return b.String()
}

func (a AppView) renderHotelCards(p *payload.HotelCards) string {
	var b strings.Builder

	for i, hotel := range p.Hotels {
		b.WriteString(fmt.Sprintf("  %d. %s\n", i+1, TitleStyle.Render(hotel.Name)))
		if hotel.Address != "" {
			b.WriteString(DimStyle.Render("     "+hotel.Address) + "\n")
		}
		detail := fmt.Sprintf("     %s", hotel.PriceDisplay)
		if hotel.Rating > 0 {
			detail += fmt.Sprintf("  ★ %.1f", hotel.Rating)
		}
		b.WriteString(detail + "\n")
	}

	b.WriteString("\n" + FormatFooter("Alt+1..9", "Đặt phòng"))
	return b.String()
}

func renderItineraryPlan(p *payload.ItineraryPlan) string {
	var b strings.Builder

	header := p.Destination
	if p.Days > 0 {
		header = fmt.Sprintf("%s · %d ngày", p.Destination, p.Days)
	}
	b.WriteString(TitleStyle.Render("🗓  "+header) + "\n")

	for _, day := range p.Items {
		b.WriteString(fmt.Sprintf("\n  %s\n", SelectedStyle.Render(fmt.Sprintf("Ngày %d: %s", day.Day, day.Title))))
		if day.Morning != "" {
			b.WriteString("    Sáng:   " + day.Morning + "\n")
		}
		if day.Afternoon != "" {
			b.WriteString("    Chiều:  " + day.Afternoon + "\n")
		}
		if day.Evening != "" {
			b.WriteString("    Tối:    " + day.Evening + "\n")
		}
		if day.Notes != "" {
			b.WriteString(DimStyle.Render("    "+day.Notes) + "\n")
		}
	}

	if len(p.Actions) > 0 {
		var labels []string
		for _, action := range p.Actions {
			labels = append(labels, action.Label)
		}
		b.WriteString("\n" + DimStyle.Render("  Gợi ý: "+strings.Join(labels, " · ")))
	}
	return b.String()
}

func (a AppView) renderItineraryBuilder(p *payload.ItineraryBuilder, msg appmodel.Message) string {
	var b strings.Builder
	active := a.isLatestPayload(msg)
	day := p.CurrentDay

	b.WriteString(TitleStyle.Render(fmt.Sprintf("📍 Chọn điểm đến cho ngày %d/%d", p.CurrentDay, p.TotalDays)) + "\n\n")

	for i, spot := range p.Spots {
		ordinal := i + 1
		id := spotKey(spot)
		mark := "[ ]"
		line := fmt.Sprintf("%d. %s", ordinal, spot.Name)
		if a.dataModel.DayPicker.IsSelected(day, id) {
			mark = SelectedStyle.Render("[x]")
			line = SelectedStyle.Render(line)
		}
		b.WriteString(fmt.Sprintf("  %s %s\n", mark, line))
	}

	if p.HasMoreSpots {
		b.WriteString(DimStyle.Render("  … còn nhiều điểm khác\n"))
	}

	picked := a.dataModel.DayPicker.Selected(day)
	if len(picked) > 0 {
		b.WriteString(fmt.Sprintf("\n  Đã chọn ngày %d: %s\n", day, strings.Join(picked, ", ")))
	}

	if active {
		b.WriteString("\n" + FormatFooter("Alt+1..9", "Chọn", "Alt+C", "Chốt ngày này"))
	}
	return b.String()
}

// spotKey is the stable identity of a builder spot: its ID when the
// backend sends one, its name otherwise.
func spotKey(spot payload.Item) string {
	if spot.ID != "" {
		return spot.ID
	}
	return spot.Name
}

func (a AppView) renderSpotTable(p *payload.SpotTable, msg appmodel.Message) string {
	var b strings.Builder
	active := a.isLatestPayload(msg)
	picker := a.dataModel.TablePicker

	nameWidth := 10
	areaWidth := 8
	for _, row := range p.Rows {
		if w := runewidth.StringWidth(row.Name); w > nameWidth {
			nameWidth = w
		}
		if w := runewidth.StringWidth(row.Area); w > areaWidth {
			areaWidth = w
		}
	}

	header := fmt.Sprintf("      %s  %s  %s  %s",
		runewidth.FillRight("Địa điểm", nameWidth),
		runewidth.FillRight("Khu vực", areaWidth),
		runewidth.FillRight("Loại", 12),
		"★")
	b.WriteString(DimStyle.Render(header) + "\n")

	for i, row := range p.Rows {
		mark := "[ ]"
		selected := active && picker != nil && picker.IsSelected(row.ID)
		if selected {
			mark = SelectedStyle.Render("[x]")
		}

		line := fmt.Sprintf("%d. %s %s  %s  %s  %.1f",
			i+1,
			mark,
			runewidth.FillRight(row.Name, nameWidth),
			runewidth.FillRight(row.Area, areaWidth),
			runewidth.FillRight(row.Category, 12),
			row.Rating)
		if selected {
			line = SelectedStyle.Render(line)
		}
		b.WriteString("  " + line + "\n")
	}

	if active && picker != nil {
		b.WriteString(fmt.Sprintf("\n  Đang chọn: %d/%d\n", picker.SelectedCount(), len(p.Rows)))
		b.WriteString(FormatFooter(
			"Alt+1..9", "Chọn",
			"Alt+A", "Tất cả",
			"Alt+X", "Bỏ hết",
			"Alt+C", "Xác nhận",
			"Alt+K", "Bỏ qua",
			"Alt+U", "Hủy",
		))
	}
	return b.String()
}

func renderDistanceInfo(p *payload.DistanceInfo) string {
	var b strings.Builder
	b.WriteString(TitleStyle.Render("📏 Khoảng cách từ "+p.Hotel) + "\n")
	for _, d := range p.Distances {
		b.WriteString(fmt.Sprintf("  • %s — %.1f km\n", d.Name, d.DistanceKm))
	}
	return b.String()
}

func renderMonthSelector(p *payload.MonthSelector) string {
	var b strings.Builder
	if len(p.BestMonths) > 0 {
		b.WriteString(UserStyle.Render("  Nên đi: ") + strings.Join(p.BestMonths, ", ") + "\n")
	}
	if len(p.AvoidMonths) > 0 {
		b.WriteString(ErrorStyle.Render("  Nên tránh: ") + strings.Join(p.AvoidMonths, ", ") + "\n")
	}
	return b.String()
}

func renderTips(p *payload.Tips) string {
	var b strings.Builder
	for _, cat := range p.TipsCategories {
		title := cat.Title
		if cat.Icon != "" {
			title = cat.Icon + " " + title
		}
		b.WriteString(TitleStyle.Render("  "+title) + "\n")
		b.WriteString("  " + cat.Content + "\n\n")
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func (a AppView) renderComprehensive(p *payload.Comprehensive) string {
	var sections []string

	if len(p.Hotels) > 0 {
		sections = append(sections,
			TitleStyle.Render("🏨 Khách sạn")+"\n"+a.renderHotelCards(&payload.HotelCards{Hotels: p.Hotels}))
	}
	if len(p.Spots) > 0 {
		var b strings.Builder
		b.WriteString(TitleStyle.Render("📍 Điểm tham quan") + "\n")
		for i, spot := range p.Spots {
			b.WriteString(fmt.Sprintf("  %d. %s\n", i+1, spot.Name))
		}
		sections = append(sections, b.String())
	}
	if len(p.Food) > 0 {
		var b strings.Builder
		b.WriteString(TitleStyle.Render("🍜 Ẩm thực") + "\n")
		for i, food := range p.Food {
			b.WriteString(fmt.Sprintf("  %d. %s\n", i+1, food.Name))
		}
		sections = append(sections, b.String())
	}

	return strings.Join(sections, "\n")
}
