package tagging

import (
	"strings"
	"unicode/utf8"

	"github.com/storefront/backend/internal/domain/shared"
)

// MaxLabelLength is the maximum length of a tag label
const MaxLabelLength = 255

// Tag is a reusable label that can be attached to any taggable entity
type Tag struct {
	shared.BaseEntity
	Label string
}

// NewTag creates a new tag with the given label
func NewTag(label string) (*Tag, error) {
	label, err := normalizeLabel(label)
	if err != nil {
		return nil, err
	}
	return &Tag{Label: label}, nil
}

// Relabel changes the tag's label
func (t *Tag) Relabel(label string) error {
	label, err := normalizeLabel(label)
	if err != nil {
		return err
	}
	t.Label = label
	return nil
}

// String returns the label
func (t *Tag) String() string {
	return t.Label
}

func normalizeLabel(label string) (string, error) {
	label = strings.TrimSpace(label)
	if label == "" {
		return "", shared.NewDomainError("INVALID_LABEL", "Tag label cannot be empty")
	}
	if utf8.RuneCountInString(label) > MaxLabelLength {
		return "", shared.NewDomainError("INVALID_LABEL", "Tag label cannot exceed 255 characters")
	}
	return label, nil
}
