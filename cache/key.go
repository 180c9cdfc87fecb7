package cache

import (
	"fmt"
	"strings"
)

// Kind identifies which entity family a cache entry belongs to. Keys of
// different kinds never collide, even when their identifiers are equal.
type Kind uint8

const (
	KindMenu Kind = iota + 1
	KindSubmenu
	KindDish
	KindTree
)

// AllID is the identifier token used for the list entry of a kind.
const AllID = "all"

var kindNames = map[Kind]string{
	KindMenu:    "menu",
	KindSubmenu: "submenu",
	KindDish:    "dish",
	KindTree:    "tree",
}

// String returns the namespace segment used for the kind.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// Valid reports whether k is one of the known kinds.
func (k Kind) Valid() bool {
	_, ok := kindNames[k]
	return ok
}

// Key is the composite cache key (kind, parent path, id). Path holds the
// ancestor identifiers from the root down to the immediate parent.
type Key struct {
	Kind Kind
	Path []string
	ID   string
}

// NewKey builds a key for a single entity under the given ancestor path.
func NewKey(kind Kind, id string, path ...string) Key {
	return Key{Kind: kind, Path: append([]string(nil), path...), ID: id}
}

// ListKey builds the list key for a kind scoped to the given ancestor path.
func ListKey(kind Kind, path ...string) Key {
	return NewKey(kind, AllID, path...)
}

// IsList reports whether the key addresses a list entry.
func (k Key) IsList() bool {
	return k.ID == AllID
}

// Equal compares two keys segment by segment.
func (k Key) Equal(other Key) bool {
	if k.Kind != other.Kind || k.ID != other.ID || len(k.Path) != len(other.Path) {
		return false
	}
	for i := range k.Path {
		if k.Path[i] != other.Path[i] {
			return false
		}
	}
	return true
}

// String renders the key with the default separator. Use a KeySerializer
// when the rendered key is sent to a backend.
func (k Key) String() string {
	parts := make([]string, 0, len(k.Path)+2)
	parts = append(parts, k.Kind.String())
	parts = append(parts, k.Path...)
	parts = append(parts, k.ID)
	return strings.Join(parts, KeySeparator)
}
