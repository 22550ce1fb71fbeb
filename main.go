package main

import (
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"wandertui/config"
	"wandertui/model"
	"wandertui/planner"
	"wandertui/storage"
	"wandertui/ui"
)

const Version = "v0.1.0"

func main() {
	// Validate environment variables first
	if config.HasAnyEnvVar() && !config.HasAllEnvVars() {
		missingVar := config.GetMissingEnvVar()
		fmt.Fprintf(os.Stderr, "Missing environment variable: %s\n\n"+
			"When using environment variables, both must be set:\n"+
			"  • WANDERTUI_API_URL\n"+
			"  • WANDERTUI_DATA_DIR\n\n"+
			"Set the missing variable before launching wandertui.\n",
			missingVar)
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	config.InitDebugLog(cfg.DataDir())

	sessions, err := storage.NewSessionStore(cfg.DataDir())
	if err != nil {
		fmt.Printf("Failed to initialize session store: %v\n", err)
		os.Exit(1)
	}

	// Single-instance enforcement: two instances would fight over the one
	// active session record.
	isLocked, runningPID, err := sessions.CheckInstanceLock()
	if err != nil {
		fmt.Printf("Failed to check instance lock: %v\n", err)
		os.Exit(1)
	}
	if isLocked {
		fmt.Printf("Another wandertui instance is already running (PID %d).\n", runningPID)
		os.Exit(0)
	}
	if err := sessions.LockInstance(); err != nil {
		fmt.Printf("Failed to lock instance: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		if err := sessions.UnlockInstance(); err != nil && config.DebugLog != nil {
			config.DebugLog.Printf("Warning: failed to unlock instance: %v", err)
		}
	}()

	archive, err := storage.NewArchive(cfg.DataDir())
	if err != nil {
		fmt.Printf("Failed to initialize trip archive: %v\n", err)
		os.Exit(1)
	}
	defer archive.Close()

	client, err := planner.NewClient(cfg.PlannerURL, time.Duration(cfg.TurnTimeoutSeconds)*time.Second)
	if err != nil {
		fmt.Printf("Invalid planner configuration: %v\n", err)
		os.Exit(1)
	}

	dataModel := model.NewModel(client, sessions, archive)

	p := tea.NewProgram(
		ui.NewAppView(dataModel),
		tea.WithAltScreen(),
	)

	if _, err := p.Run(); err != nil {
		fmt.Printf("Error running wandertui: %v\n", err)
		os.Exit(1)
	}
}
