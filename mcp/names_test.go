package mcp

import "testing"

func TestNamespacedName(t *testing.T) {
	got := NamespacedName("filesystem", "read_file")
	want := "mcp__filesystem__read_file"
	if got != want {
		t.Errorf("NamespacedName = %q, want %q", got, want)
	}
}

func TestSplitName(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		wantServer string
		wantTool   string
		wantOK     bool
	}{
		{"valid", "mcp__srv__tool", "srv", "tool", true},
		{"tool name with separator", "mcp__srv__get__thing", "srv", "get__thing", true},
		{"missing prefix", "srv__tool", "", "", false},
		{"no separator after server", "mcp__srvtool", "", "", false},
		{"empty server", "mcp____tool", "", "", false},
		{"empty tool", "mcp__srv__", "", "", false},
		{"local tool name", "bash", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server, tool, ok := SplitName(tt.input)
			if server != tt.wantServer || tool != tt.wantTool || ok != tt.wantOK {
				t.Errorf("SplitName(%q) = (%q, %q, %v), want (%q, %q, %v)",
					tt.input, server, tool, ok, tt.wantServer, tt.wantTool, tt.wantOK)
			}
		})
	}
}
