package tools

import "strings"

// blockedCommands are substring patterns refused before any process is
// spawned. Matching happens on whitespace-normalized command text so extra
// spacing cannot slip a pattern through.
var blockedCommands = []string{
	// Destructive file operations
	"rm -rf /",
	"rm -rf /*",
	"rm -rf ~",
	"rm -rf $HOME",
	// Disk operations
	"mkfs",
	"dd if=/dev/zero",
	"dd if=/dev/random",
	"> /dev/sda",
	"> /dev/nvme",
	// Dangerous permissions
	"chmod -R 777 /",
	"chmod 777 /",
	"chown -R",
	// System destruction
	":(){ :|:& };:",
	"mv /* /dev/null",
	"cat /dev/zero >",
	// Network attacks
	"nc -l",
	// Credential theft
	"cat /etc/shadow",
	"cat /etc/passwd",
	// History manipulation
	"history -c",
	"shred",
}

// normalizeWhitespace collapses any run of whitespace to a single space.
func normalizeWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// BlockedPattern returns the first denylist pattern contained in the
// command, or "" when the command is allowed.
func BlockedPattern(command string) string {
	normalized := normalizeWhitespace(command)
	for _, blocked := range blockedCommands {
		if strings.Contains(normalized, normalizeWhitespace(blocked)) {
			return blocked
		}
	}
	return ""
}
