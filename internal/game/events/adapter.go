package events

// PublisherFunc adapts a plain function to the Publisher interface
type PublisherFunc func(Event)

// Publish implements Publisher
func (f PublisherFunc) Publish(e Event) {
	f(e)
}

// NopPublisher discards every event
var NopPublisher Publisher = PublisherFunc(func(Event) {})
