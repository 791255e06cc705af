package notifier

// Notifier represents a sink for scrape run notifications
type Notifier interface {
	// Notify sends a notification message
	Notify(message string) error

	// Close closes the notifier connection
	Close() error
}
