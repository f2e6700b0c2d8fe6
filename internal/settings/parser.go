package settings

import (
	"fmt"

	lua "github.com/yuin/gopher-lua"
)

// ParseError represents a settings parsing error with a friendly message.
type ParseError struct {
	Message string // User-friendly message
	Detail  string // Technical details (raw Lua error)
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: %s", e.Message, e.Detail)
}

// ParseString parses a Lua settings document from a string.
// This is also the entry point used by tests and in-memory callers.
func ParseString(luaCode string) (*Settings, error) {
	L := newSandboxedVM()
	defer L.Close()

	if err := L.DoString(luaCode); err != nil {
		return nil, &ParseError{
			Message: "Lua syntax error",
			Detail:  err.Error(),
		}
	}

	return extractSettings(L)
}

// extractSettings extracts the settings from a Lua state.
// It expects a global "vsts" table.
func extractSettings(L *lua.LState) (*Settings, error) {
	vstsValue := L.GetGlobal("vsts")
	if vstsValue.Type() != lua.LTTable {
		return nil, &ParseError{
			Message: "missing or invalid 'vsts' table",
			Detail:  fmt.Sprintf("expected table, got %s", vstsValue.Type()),
		}
	}

	settings := &Settings{}
	table := vstsValue.(*lua.LTable)

	var err error
	if settings.Instance, err = stringField(table, "instance"); err != nil {
		return nil, err
	}

	toolValue := table.RawGetString("artifacttool")
	switch toolValue.Type() {
	case lua.LTNil:
		// artifacttool section is optional
	case lua.LTTable:
		tool, err := extractToolSettings(toolValue.(*lua.LTable))
		if err != nil {
			return nil, err
		}
		settings.Tool = tool
	default:
		return nil, &ParseError{
			Message: "invalid 'artifacttool' section",
			Detail:  fmt.Sprintf("expected table, got %s", toolValue.Type()),
		}
	}

	return settings, nil
}

// extractToolSettings extracts the artifacttool override table.
func extractToolSettings(table *lua.LTable) (ToolSettings, error) {
	tool := ToolSettings{}

	fields := []struct {
		name string
		dest *string
	}{
		{"path", &tool.Path},
		{"url", &tool.URL},
		{"version", &tool.Version},
		{"signature_url", &tool.SignatureURL},
		{"keyring", &tool.Keyring},
	}

	for _, f := range fields {
		value, err := stringField(table, f.name)
		if err != nil {
			return ToolSettings{}, err
		}
		*f.dest = value
	}

	return tool, nil
}

// stringField reads an optional string field from a Lua table.
// A missing field yields ""; a present non-string field is an error.
func stringField(table *lua.LTable, name string) (string, error) {
	value := table.RawGetString(name)
	switch value.Type() {
	case lua.LTNil:
		return "", nil
	case lua.LTString:
		return string(value.(lua.LString)), nil
	default:
		return "", &ParseError{
			Message: fmt.Sprintf("invalid '%s' field", name),
			Detail:  fmt.Sprintf("expected string, got %s", value.Type()),
		}
	}
}
