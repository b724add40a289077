package config

import (
	"fmt"
	"os"
	"path/filepath"
)

const configTemplate = `# Kalshi Trader API Configuration

[server]
# Listen address
host = "0.0.0.0"
port = 8000
# Origins allowed by the CORS middleware (frontend dev servers)
cors_origins = ["http://localhost:5173", "http://localhost:5174"]
# Directory holding the built frontend bundle; empty disables static serving
static_dir = ""

[trading]
# Account currency
currency = "USD"
# Demo account starting cash
initial_cash = 100001.0
# Emit simulated fills for market orders
simulate_fills = false

[log]
# Log level: debug, info, warn, error
level = "info"
# Log to the console
console = true
# Log to a rotating file under the config directory
file = true
`

// createTemplateConfig writes the default config.toml so a first run leaves
// an editable file behind.
func createTemplateConfig(configDir string) error {
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	path := filepath.Join(configDir, "config.toml")
	if _, err := os.Stat(path); err == nil {
		return nil
	}

	return os.WriteFile(path, []byte(configTemplate), 0644)
}
