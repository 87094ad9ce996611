package telinput

import (
	"encoding/json"
	"slices"

	"github.com/google/uuid"

	"github.com/hightemp/intltel/internal/resolver"
)

// ChangeKind tells observers what kind of value change happened.
type ChangeKind int

const (
	// ChangeValue carries a resolved payload.
	ChangeValue ChangeKind = iota
	// ChangeNull reports that the input was emptied.
	ChangeNull
	// ChangeUnset reports a forced country selection with no number typed.
	ChangeUnset
)

// String returns the kind name.
func (k ChangeKind) String() string {
	switch k {
	case ChangeNull:
		return "null"
	case ChangeUnset:
		return "unset"
	default:
		return "value"
	}
}

// Change is one value notification.
type Change struct {
	Kind    ChangeKind
	Payload *resolver.Payload
}

// MarshalJSON encodes the payload, or null when there is none.
func (c Change) MarshalJSON() ([]byte, error) {
	if c.Payload == nil {
		return []byte("null"), nil
	}
	return json.Marshal(c.Payload)
}

// Observer receives notifications from an Input.
type Observer interface {
	ValueChanged(Change)
	Touched()
}

// ObserverFuncs adapts plain functions to Observer. Nil fields are skipped.
type ObserverFuncs struct {
	OnChange  func(Change)
	OnTouched func()
}

// ValueChanged implements Observer.
func (f ObserverFuncs) ValueChanged(c Change) {
	if f.OnChange != nil {
		f.OnChange(c)
	}
}

// Touched implements Observer.
func (f ObserverFuncs) Touched() {
	if f.OnTouched != nil {
		f.OnTouched()
	}
}

// Registration identifies a registered observer.
type Registration uuid.UUID

// String returns the registration id.
func (r Registration) String() string {
	return uuid.UUID(r).String()
}

type registered struct {
	id       Registration
	observer Observer
}

// Register adds an observer. Observers are notified in registration order.
func (in *Input) Register(o Observer) Registration {
	id := Registration(uuid.New())
	in.observers = append(in.observers, registered{id: id, observer: o})
	return id
}

// Unregister removes an observer. It reports whether id was registered.
func (in *Input) Unregister(id Registration) bool {
	for i, r := range in.observers {
		if r.id == id {
			in.observers = append(in.observers[:i], in.observers[i+1:]...)
			return true
		}
	}
	return false
}

// Touch notifies observers that the user interacted with the input.
func (in *Input) Touch() {
	for _, r := range slices.Clone(in.observers) {
		r.observer.Touched()
	}
}

func (in *Input) emit(c Change) {
	in.logger.Debug("value changed", "kind", c.Kind)
	for _, r := range slices.Clone(in.observers) {
		r.observer.ValueChanged(c)
	}
}
