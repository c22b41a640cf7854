package tagging

import "fmt"

// ContentType is the persisted descriptor of an entity kind.
// Its ID is what tagged_items reference instead of a per-table foreign key.
type ContentType struct {
	ID       uint64
	AppLabel string
	Model    string
}

// NewContentType returns an unsaved descriptor for kind
func NewContentType(kind EntityKind) (*ContentType, error) {
	if !kind.IsValid() {
		return nil, ErrUnknownKind
	}
	return &ContentType{
		AppLabel: kind.AppLabel(),
		Model:    kind.Model(),
	}, nil
}

// Kind maps the descriptor back to its entity kind
func (c *ContentType) Kind() (EntityKind, error) {
	if c.AppLabel != AppLabel {
		return "", ErrUnknownKind
	}
	return ParseEntityKind(c.Model)
}

// NaturalKey returns the "app_label.model" form of the descriptor
func (c *ContentType) NaturalKey() string {
	return fmt.Sprintf("%s.%s", c.AppLabel, c.Model)
}
