package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	appmodel "wandertui/model"
	"wandertui/payload"
	"wandertui/storage"
)

type AppView struct {
	// Reference to core data model
	dataModel *appmodel.Model

	// UI Components
	viewport viewport.Model
	textarea textarea.Model

	// Window state
	width  int
	height int
	ready  bool

	// Loading spinner shown while the turn has produced nothing yet
	loadingSpinner spinner.Model

	showHelp bool

	// Archive browser
	showArchiveBrowser bool
	archiveEntries     []storage.ArchiveEntry
	selectedArchiveIdx int
	archiveFilterMode  bool
	archiveFilterInput textinput.Model
	filteredArchive    []storage.ArchiveEntry

	// Archive-save modal
	showArchiveSaveModal bool
	archiveNameInput     textinput.Model

	// New-conversation confirmation
	confirmReset bool

	// Delete confirmation inside the archive browser
	confirmDeleteArchive *storage.ArchiveEntry

	statusNotice string
}

func NewAppView(dataModel *appmodel.Model) AppView {
	ta := textarea.New()
	ta.Placeholder = "Bạn muốn đi đâu? Nhập tin nhắn..."
	ta.Focus()
	ta.CharLimit = 0
	ta.ShowLineNumbers = false
	ta.SetHeight(3)
	ta.SetWidth(80)

	// Alt+Enter for newline, Enter alone sends (handled separately)
	ta.KeyMap.InsertNewline = key.NewBinding(key.WithKeys("alt+enter"))

	ta.SetPromptFunc(2, func(lineIdx int) string {
		if lineIdx == 0 {
			return "> "
		}
		return "| "
	})

	vp := viewport.New(0, 0)

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	archiveFilterInput := textinput.New()
	archiveFilterInput.Prompt = "Lọc: "
	archiveFilterInput.CharLimit = 64

	archiveNameInput := textinput.New()
	archiveNameInput.Prompt = "Tên chuyến đi: "
	archiveNameInput.CharLimit = 80

	return AppView{
		dataModel:          dataModel,
		textarea:           ta,
		viewport:           vp,
		loadingSpinner:     sp,
		archiveFilterInput: archiveFilterInput,
		archiveNameInput:   archiveNameInput,
	}
}

func (a AppView) Init() tea.Cmd {
	// Markdown rendering waits for the first WindowSizeMsg so the width
	// is real.
	return tea.Batch(textarea.Blink, a.dataModel.Ping())
}

func (a AppView) View() string {
	if !a.ready {
		return "Loading WanderTUI..."
	}

	if a.showHelp {
		return renderHelpModal(a.width, a.height)
	}

	if a.showArchiveBrowser {
		return renderArchiveBrowser(
			a.getArchiveList(),
			a.selectedArchiveIdx,
			a.archiveFilterMode,
			a.archiveFilterInput,
			a.confirmDeleteArchive,
			a.width,
			a.height,
		)
	}

	if a.showArchiveSaveModal {
		return renderArchiveSaveModal(a.archiveNameInput, a.width, a.height)
	}

	if a.confirmReset {
		return renderConfirmResetModal(a.width, a.height)
	}

	// Title bar - "WanderTUI - destination | workflow"
	appText := AssistantStyle.Render("WanderTUI")
	destination := a.dataModel.Context.Destination()
	destText := ""
	if destination != "" {
		destText = UserStyle.Render(" - " + destination)
	}
	stateText := ""
	if state := a.dataModel.Context.WorkflowState(); state != "" {
		stateText = DimStyle.Render(" | " + state)
	}
	title := appText + destText + stateText

	if a.dataModel.Streaming {
		title += TitleStyle.Render(" | " + a.loadingSpinner.View() + " đang trả lời…")
	}

	separator := ""

	viewportView := a.viewport.View()
	inputView := a.textarea.View()

	descStyle := lipgloss.NewStyle().Foreground(successColor).Bold(true)
	statusBar := fmt.Sprintf("Alt+Q %s  Alt+N %s  Alt+S %s  Alt+W %s  Enter %s  Alt+Enter %s  Alt+H %s",
		descStyle.Render("Thoát"),
		descStyle.Render("Mới"),
		descStyle.Render("Lưu trữ"),
		descStyle.Render("Lưu chuyến đi"),
		descStyle.Render("Gửi"),
		descStyle.Render("Xuống dòng"),
		descStyle.Render("Trợ giúp"),
	)
	if a.statusNotice != "" {
		statusBar = DimStyle.Render(a.statusNotice)
	} else {
		statusBar = StatusStyle.Render(statusBar)
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		title,
		separator,
		viewportView,
		inputView,
		statusBar,
	)
}

// latestSelectable returns the newest message carrying a block that
// accepts selection keys, or nil. Only that block is live.
func (a AppView) latestSelectable() *appmodel.Message {
	for i := len(a.dataModel.Messages) - 1; i >= 0; i-- {
		msg := &a.dataModel.Messages[i]
		if msg.Payload == nil {
			continue
		}
		switch msg.PayloadKind {
		case payload.KindOptions, payload.KindSpotCards, payload.KindHotelCards,
			payload.KindItineraryBuilder, payload.KindSpotTable:
			return msg
		}
	}
	return nil
}

func (a AppView) getArchiveList() []storage.ArchiveEntry {
	if a.archiveFilterMode && len(a.filteredArchive) > 0 {
		return a.filteredArchive
	}
	return a.archiveEntries
}

func (a *AppView) closeAllModals() {
	a.showHelp = false
	a.showArchiveBrowser = false
	a.showArchiveSaveModal = false
	a.confirmReset = false
	a.confirmDeleteArchive = nil
	a.archiveFilterMode = false

	if a.archiveFilterInput.Focused() {
		a.archiveFilterInput.Blur()
	}
	if a.archiveNameInput.Focused() {
		a.archiveNameInput.Blur()
	}
}
