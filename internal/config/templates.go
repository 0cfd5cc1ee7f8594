package config

import (
	"fmt"
	"os"
)

// Template is the annotated starter config written by the init command.
const Template = `# crashfeishu configuration.
# Flags override environment variables, which override this file.

# Feishu bot webhook crash messages are pushed to.
webhook = ""

# Signing secret, needed only when the bot verifies signatures.
secret = ""

# Supervisor programs to watch, each "process" or "group:process".
# An empty list watches every process.
programs = []

# Upper bound for one webhook delivery attempt.
notify_timeout = "10s"
`

// WriteTemplate writes the starter config to path.
func WriteTemplate(path string, overwrite bool) error {
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config already exists: %s", path)
		}
	}
	return os.WriteFile(path, []byte(Template), 0o600)
}
