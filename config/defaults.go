package config

func DefaultSystemConfig() *SystemConfig {
	return &SystemConfig{
		DataDirectory: "~/.local/share/wandertui",
	}
}

func DefaultUserConfig() *UserConfig {
	return &UserConfig{
		Planner: PlannerConfig{
			APIURL:             "http://localhost:8080",
			TurnTimeoutSeconds: 90,
		},
		Language: "vi",
	}
}

func GenerateSystemConfigTemplate() string {
	return `# WanderTUI System Configuration
# Location: ~/.config/wandertui/settings.toml
# This file uses TOML format: https://toml.io

# Directory where the active session and archived trips are stored
data_directory = "~/.local/share/wandertui"
`
}

func GenerateUserConfigTemplate() string {
	return `# WanderTUI User Configuration
# Location: <data_directory>/config.toml
# This file uses TOML format: https://toml.io

[planner]
# Trip-planning backend URL
api_url = "http://localhost:8080"

# Upper bound on a single assistant turn, in seconds
turn_timeout_seconds = 90

# Preferred assistant language (informational)
language = "vi"
`
}
