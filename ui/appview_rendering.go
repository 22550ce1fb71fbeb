package ui

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	markdown "github.com/MichaelMure/go-term-markdown"
	tea "github.com/charmbracelet/bubbletea"
	gomarkdown "github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/parser"

	"wandertui/config"
	appmodel "wandertui/model"
)

var (
	mdLinkRegex = regexp.MustCompile(`\[([^\]]+)\]\((https?://[^\)]+)\)`)
	urlRegex    = regexp.MustCompile(`(https?://[^\s]+)`)
)

func (a *AppView) updateViewportContent(gotoBottom bool) {
	if len(a.dataModel.Messages) == 0 {
		a.viewport.SetContent("Chưa có tin nhắn nào.")
		return
	}

	var content strings.Builder

	for _, msg := range a.dataModel.Messages {
		timestamp := DimStyle.Render(msg.Timestamp.Format("[15:04]"))

		var roleStyle = DimStyle
		var roleName string
		switch msg.Role {
		case appmodel.RoleUser:
			roleStyle = UserStyle
			roleName = "Bạn"
		case appmodel.RoleAssistant:
			roleStyle = AssistantStyle
			roleName = "Trợ lý"
		default:
			roleStyle = DimStyle
			roleName = "Hệ thống"
		}

		role := roleStyle.Render(roleName)

		if msg.Role == appmodel.RoleUser {
			content.WriteString(formatUserMessage(timestamp, role, msg.Rendered))
			continue
		}

		body := msg.Rendered
		if block := a.renderPayload(msg); block != "" {
			if body != "" {
				body += "\n"
			}
			body += block
		}
		if body == "" {
			continue
		}

		content.WriteString(fmt.Sprintf("%s %s\n%s\n\n", timestamp, role, body))
	}

	// In-flight indicator sits below the last message.
	if a.dataModel.Streaming {
		timestamp := DimStyle.Render(time.Now().Format("[15:04]"))
		role := AssistantStyle.Render("Trợ lý")
		content.WriteString(fmt.Sprintf("%s %s\n%s\n\n", timestamp, role, a.loadingSpinner.View()))
	}

	a.viewport.SetContent(content.String())
	if gotoBottom {
		a.viewport.GotoBottom()
	}
}

// formatUserMessage prefixes each line of a user turn with a green bar.
func formatUserMessage(timestamp, role, content string) string {
	greenBold := "\x1b[32;1m"
	reset := "\x1b[0m"
	bar := greenBold + "┃" + reset

	lines := strings.Split(content, "\n")

	var result strings.Builder
	result.WriteString(fmt.Sprintf("%s %s %s\n", bar, timestamp, role))

	for _, line := range lines {
		result.WriteString(fmt.Sprintf("%s %s\n", bar, line))
	}

	result.WriteString("\n")

	return result.String()
}

func (a AppView) renderMarkdownAsync(messageIndex int, content string) tea.Cmd {
	width := a.width
	return func() tea.Msg {
		startTime := time.Now()

		// Strip markdown link syntax so links show as plain URLs the
		// terminal emulator can make clickable.
		content = mdLinkRegex.ReplaceAllString(content, "$2")

		// Autolink stays off so URLs survive as plain text.
		defaultExt := markdown.Extensions()
		customExt := defaultExt &^ parser.Autolink
		p := parser.NewWithExtensions(customExt)
		r := markdown.NewRenderer(width-4, 0)
		doc := p.Parse([]byte(content))
		rendered := gomarkdown.Render(doc, r)

		processed := colorizeURLs(string(rendered))

		if config.DebugLog != nil {
			config.DebugLog.Printf("markdown rendered for message %d in %v", messageIndex, time.Since(startTime))
		}

		return appmodel.MarkdownRenderedMsg{
			Index:    messageIndex,
			Rendered: strings.TrimRight(processed, "\n"),
		}
	}
}

// colorizeURLs paints plain URLs red for visual distinction.
func colorizeURLs(s string) string {
	redColor := "\x1b[31m"
	reset := "\x1b[0m"

	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = urlRegex.ReplaceAllString(line, redColor+"$1"+reset)
	}
	return strings.Join(lines, "\n")
}
