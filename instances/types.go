package instances

import "strings"

// TempPrefix is the reserved prefix for auto-generated temporary handles.
// User-assigned names must not start with it; only names bearing it are
// eligible for implicit cleanup.
const TempPrefix = "__temp"

// QualifiedType describes an instance's type: a base type name plus
// const/volatile qualification. Destruction dispatch keys on the base name
// alone; qualifiers distinguish otherwise-identical base types at the
// command boundary.
type QualifiedType struct {
	Name     string
	Const    bool
	Volatile bool
}

func (q QualifiedType) String() string {
	var b strings.Builder
	if q.Const {
		b.WriteString("const ")
	}
	if q.Volatile {
		b.WriteString("volatile ")
	}
	b.WriteString(q.Name)
	return b.String()
}

// Reference is a live registry entry: the tracked object and its type.
// Objects must be comparable; addresses are assumed unique among live
// objects, so pointers are the usual currency.
type Reference struct {
	Object any
	Type   QualifiedType
}

// DeleteFunc is a type-erased destruction callback. It reclaims a native
// object given only its address.
type DeleteFunc func(object any)

// Event kinds for instance lifecycle notifications.
type EventKind uint8

const (
	EventRegistered EventKind = iota
	EventDeleted
)

// Event represents an instance lifecycle event.
type Event struct {
	Object any
	Name   string
	Type   QualifiedType
	Kind   EventKind
}

// Observer receives notifications about instance lifecycle events.
type Observer interface {
	OnInstanceEvent(Event)
}

// IsTemporary reports whether name was minted by CreateTemporary.
func IsTemporary(name string) bool {
	return strings.HasPrefix(name, TempPrefix)
}
