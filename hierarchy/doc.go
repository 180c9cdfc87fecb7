// Package hierarchy holds the Menu, Submenu and Dish entities and the
// relational store they live in.
//
// Every read view carries aggregate counts computed at read time: a menu
// reports how many submenus and dishes it contains, a submenu how many dishes.
// Deleting a parent removes its descendants in the same transaction, and the
// delete reports which descendants went with it so callers can drop derived
// state for them.
//
// Constraint failures from the database are decoded once, at the store
// boundary, into the error taxonomy of this package:
//
//	NotFound          the target of a read, update or delete does not exist
//	Conflict          a title collides with a sibling
//	InvalidParent     the declared parent does not exist
//	InvalidInput      the input failed validation
//	StoreUnavailable  the database failed
package hierarchy
