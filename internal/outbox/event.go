package outbox

// Event is the envelope written to the outbox table inside the booking transaction.
// The Kafka topic name equals EventType; the calendar-sync consumer turns
// schedly.booking.created.v1 records into provider calendar events.
type Event struct {
	AggregateType string
	AggregateID   string
	EventType     string
	Payload       []byte
}
