package domain

// Result meta keys understood by the shell.
const (
	MetaKeyID          = "id"
	MetaKeyName        = "name"
	MetaKeyDescription = "description"
)

// ResultMeta is the display projection of a document for one result row.
// Name and Description are nil when absent.
type ResultMeta struct {
	ID          string
	Name        *string
	Description *string
}

// NewResultMeta builds the meta for id. A nil doc yields an id-only meta.
func NewResultMeta(id string, doc *Document) ResultMeta {
	meta := ResultMeta{ID: id}
	if doc == nil {
		return meta
	}

	name := doc.Title
	meta.Name = &name
	if doc.HasAbstract() {
		description := *doc.Abstract
		meta.Description = &description
	}
	return meta
}

// Map returns the meta as a dictionary holding only the present keys.
func (m ResultMeta) Map() map[string]string {
	out := map[string]string{MetaKeyID: m.ID}
	if m.Name != nil {
		out[MetaKeyName] = *m.Name
	}
	if m.Description != nil {
		out[MetaKeyDescription] = *m.Description
	}
	return out
}
