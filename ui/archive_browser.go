package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"

	"wandertui/storage"
)

// renderArchiveBrowser draws the saved-trips modal: a navigable list with
// an optional fuzzy filter and a delete confirmation layered on top.
func renderArchiveBrowser(entries []storage.ArchiveEntry, selectedIdx int, filterMode bool, filterInput textinput.Model, confirmDelete *storage.ArchiveEntry, width, height int) string {
	title := UserStyle.Render("Kho chuyến đi")

	var lines []string
	lines = append(lines, title, "")

	if confirmDelete != nil {
		lines = append(lines,
			ErrorStyle.Render(fmt.Sprintf("Xóa %q?", confirmDelete.Name)),
			"",
			FormatFooter("Enter/y", "Xóa", "Esc/n", "Giữ lại"),
		)
		return placeModal(lines, width, height)
	}

	if filterMode {
		lines = append(lines, filterInput.View(), "")
	}

	if len(entries) == 0 {
		lines = append(lines, DimStyle.Render("Chưa có chuyến đi nào được lưu."))
	}

	for i, entry := range entries {
		line := fmt.Sprintf("%s  %s  %s",
			entry.CreatedAt.Format("02/01/2006"),
			entry.Name,
			DimStyle.Render(fmt.Sprintf("(%d tin nhắn)", entry.MessageCount)))
		if entry.Destination != "" {
			line += DimStyle.Render(" · " + entry.Destination)
		}
		if i == selectedIdx {
			line = SelectedStyle.Render("> ") + SelectedStyle.Render(line)
		} else {
			line = "  " + line
		}
		lines = append(lines, line)
	}

	lines = append(lines, "",
		FormatFooter("j/k", "Di chuyển", "Enter", "Mở", "/", "Lọc", "d", "Xóa", "Esc", "Đóng"))

	return placeModal(lines, width, height)
}

func renderArchiveSaveModal(nameInput textinput.Model, width, height int) string {
	lines := []string{
		UserStyle.Render("Lưu chuyến đi"),
		"",
		nameInput.View(),
		DimStyle.Render("Để trống sẽ dùng tên điểm đến."),
		"",
		FormatFooter("Enter", "Lưu", "Esc", "Hủy"),
	}
	return placeModal(lines, width, height)
}

func renderConfirmResetModal(width, height int) string {
	lines := []string{
		UserStyle.Render("Cuộc trò chuyện mới"),
		"",
		"Cuộc trò chuyện hiện tại và phiên đã lưu sẽ bị xóa.",
		"",
		FormatFooter("Enter/y", "Bắt đầu mới", "Esc/n", "Quay lại"),
	}
	return placeModal(lines, width, height)
}

func placeModal(lines []string, width, height int) string {
	content := lipgloss.JoinVertical(lipgloss.Left, lines...)

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("8")).
		Padding(1, 2)

	return lipgloss.Place(
		width,
		height,
		lipgloss.Center,
		lipgloss.Center,
		box.Render(content),
	)
}
