package ports

// InboxProcessor defines the interface for the background inbox pipeline
type InboxProcessor interface {
	// Start starts the processing loop
	Start() error

	// Stop stops the processing loop and waits for in-flight work
	Stop() error
}
