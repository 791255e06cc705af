package notifier

import (
	"pmj0612/shopscraper/logger"
)

// LogNotifier implements Notifier by writing to the application log
type LogNotifier struct {
	log *logger.Logger
}

// NewLogNotifier creates a new log notifier
func NewLogNotifier() *LogNotifier {
	return &LogNotifier{
		log: logger.For("notifier"),
	}
}

// Notify writes the message as an info event
func (n *LogNotifier) Notify(message string) error {
	n.log.Info().Msg(message)
	return nil
}

// Close is a no-op for the log notifier
func (n *LogNotifier) Close() error {
	return nil
}
