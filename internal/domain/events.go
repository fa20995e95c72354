package domain

// EventType represents the type of domain event
type EventType string

// Event types
const (
	EventRepositoriesLoaded EventType = "RepositoriesLoaded"
	EventError              EventType = "Error"
	EventScreenPushed       EventType = "ScreenPushed"
	EventConfigSaved        EventType = "ConfigSaved"
)

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	Type() EventType
}

// RepositoriesLoadedEvent is emitted when a page of a list has been fetched
type RepositoriesLoadedEvent struct {
	Source ListSource
	Page   int
	Count  int
	More   bool
}

func (e RepositoriesLoadedEvent) Type() EventType { return EventRepositoriesLoaded }

// ErrorEvent is emitted when an error occurs
type ErrorEvent struct {
	Message string
	Err     error
}

func (e ErrorEvent) Type() EventType { return EventError }

// ScreenPushedEvent is emitted when the navigation host pushes a screen
type ScreenPushedEvent struct {
	Title string
	Depth int
}

func (e ScreenPushedEvent) Type() EventType { return EventScreenPushed }

// ConfigSavedEvent is emitted after the configuration file was written
type ConfigSavedEvent struct {
	Path string
}

func (e ConfigSavedEvent) Type() EventType { return EventConfigSaved }
