package domain

// ChangeType identifies what happened to a library path.
type ChangeType string

// Library change types.
const (
	ChangeCreated ChangeType = "created"
	ChangeUpdated ChangeType = "updated"
	ChangeDeleted ChangeType = "deleted"
)

// LibraryChange is emitted when a document folder or its info.yaml changes.
type LibraryChange struct {
	Path string
	Type ChangeType
}
