package event

// EventType names a kind of event. It doubles as the watermill topic.
type EventType string

const (
	CommandRegistered EventType = "command.registered"
	CommandRemoved    EventType = "command.removed"
	RegistryCleared   EventType = "registry.cleared"
	CommandInvoked    EventType = "command.invoked"
	CommandFailed     EventType = "command.failed"
	ConfigReloaded    EventType = "config.reloaded"
)

// Event is what subscribers receive. Data holds one of the *Data types
// below.
type Event struct {
	Type EventType `json:"type"`
	Data any       `json:"data"`
}

// CommandData is the data for command.registered and command.removed events.
type CommandData struct {
	Name string `json:"name"`
}

// ClearedData is the data for registry.cleared events.
type ClearedData struct {
	Count int `json:"count"`
}

// InvocationData is the data for command.invoked and command.failed events.
type InvocationData struct {
	ID       string `json:"id"`
	Command  string `json:"command"`
	ExitCode int    `json:"exitCode"`
	Error    string `json:"error,omitempty"`
}

// ReloadData is the data for config.reloaded events.
type ReloadData struct {
	Dir      string   `json:"dir"`
	Commands []string `json:"commands"`
	Error    string   `json:"error,omitempty"`
}
