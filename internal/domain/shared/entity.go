package shared

// Entity is the base interface for all domain entities
type Entity interface {
	GetID() uint64
}

// BaseEntity provides the auto-increment identity shared by store entities
type BaseEntity struct {
	ID uint64
}

// GetID returns the entity ID
func (e *BaseEntity) GetID() uint64 {
	return e.ID
}

// IsNew reports whether the entity has not been persisted yet
func (e *BaseEntity) IsNew() bool {
	return e.ID == 0
}
