package ui

import (
	"github.com/charmbracelet/lipgloss"
)

func renderHelpModal(width, height int) string {
	green := lipgloss.NewStyle().
		Bold(true).
		Foreground(successColor)

	title := green.Render("WanderTUI - Phím tắt")

	blue := lipgloss.NewStyle().Foreground(accentColor)

	globalActions := lipgloss.JoinVertical(
		lipgloss.Left,
		blue.Render("## Chung"),
		"• Alt+N         Cuộc trò chuyện mới",
		"• Alt+S         Kho chuyến đi",
		"• Alt+W         Lưu chuyến đi hiện tại",
		"• Alt+Y         Sao chép câu trả lời",
		"• Alt+H         Bật/tắt trợ giúp",
		"• Alt+Q         Thoát",
	)

	chatActions := lipgloss.JoinVertical(
		lipgloss.Left,
		blue.Render("## Trò chuyện"),
		"• Enter         Gửi tin nhắn",
		"• Alt+Enter     Xuống dòng",
	)

	selectionActions := lipgloss.JoinVertical(
		lipgloss.Left,
		blue.Render("## Lựa chọn"),
		"• Alt+1..9      Chọn mục / đặt khách sạn",
		"• Alt+C         Xác nhận lựa chọn",
		"• Alt+A         Chọn tất cả (bảng)",
		"• Alt+X         Bỏ chọn tất cả (bảng)",
		"• Alt+K         Bỏ qua, để trợ lý chọn",
		"• Alt+U         Hủy, về mặc định",
	)

	column1 := lipgloss.JoinVertical(
		lipgloss.Left,
		globalActions,
		"",
		chatActions,
	)

	column2 := selectionActions

	columnStyle := lipgloss.NewStyle().Width(42).PaddingLeft(4)

	twoColumns := lipgloss.JoinHorizontal(
		lipgloss.Top,
		columnStyle.Render(column1),
		"    ",
		columnStyle.Render(column2),
	)

	footer := lipgloss.NewStyle().
		Foreground(dimColor).
		Render("      Nhấn Alt+H hoặc Esc để đóng")

	content := lipgloss.JoinVertical(
		lipgloss.Center,
		title,
		"",
		twoColumns,
		"",
		footer,
	)

	helpBox := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("8")).
		Padding(1, 2).
		Width(96)

	return lipgloss.Place(
		width,
		height,
		lipgloss.Center,
		lipgloss.Center,
		helpBox.Render(content),
	)
}
