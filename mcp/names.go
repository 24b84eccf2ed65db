package mcp

import "strings"

// Remote tools are registered under mcp__<server>__<tool> so the model can
// address a tool unambiguously across servers. Calls to the server itself
// use the original tool name.

const (
	namePrefix    = "mcp__"
	nameSeparator = "__"
)

// NamespacedName builds the catalog name for a server's tool.
func NamespacedName(server, tool string) string {
	return namePrefix + server + nameSeparator + tool
}

// SplitName splits a namespaced catalog name into server and tool. Returns
// ok=false for names that do not carry the namespace shape.
func SplitName(name string) (server, tool string, ok bool) {
	rest, found := strings.CutPrefix(name, namePrefix)
	if !found {
		return "", "", false
	}
	server, tool, found = strings.Cut(rest, nameSeparator)
	if !found || server == "" || tool == "" {
		return "", "", false
	}
	return server, tool, true
}
