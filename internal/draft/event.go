package draft

import "fmt"

type EventKind string

const (
	EventAmount EventKind = "amount"
	EventCount  EventKind = "count"
)

// Event is a single edit coming from a form that keeps its state elsewhere.
type Event struct {
	Kind  EventKind
	Field InputMode // for EventAmount
	Raw   string    // for EventAmount
	Count int       // for EventCount
}

// Apply runs the reconciler for e against d.
func Apply(d Draft, e Event) (Draft, error) {
	switch e.Kind {
	case EventAmount:
		if !e.Field.Valid() {
			return d, fmt.Errorf("unknown amount field %q", e.Field)
		}

		return OnAmountEdited(e.Raw, e.Field, d), nil
	case EventCount:
		return OnInstallmentCountChanged(e.Count, d), nil
	}

	return d, fmt.Errorf("unknown event kind %q", e.Kind)
}
