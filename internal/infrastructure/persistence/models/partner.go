package models

import (
	"time"

	"github.com/storefront/backend/internal/domain/partner"
)

// CustomerModel is the persistence model for the Customer domain entity.
type CustomerModel struct {
	BaseModel
	FirstName   string             `gorm:"type:varchar(255);not null;index:idx_customer_name,priority:1"`
	LastName    string             `gorm:"type:varchar(255);not null;index:idx_customer_name,priority:2"`
	Email       string             `gorm:"type:varchar(254);not null;uniqueIndex"`
	Phone       string             `gorm:"type:varchar(20)"`
	Birthdate   *time.Time         `gorm:"type:date"`
	Membership  partner.Membership `gorm:"type:varchar(1);not null;default:'B'"`
	OrdersCount int64              `gorm:"->;-:migration"`
}

// TableName returns the table name for GORM
func (CustomerModel) TableName() string {
	return "customers"
}

// ToDomain converts the persistence model to a domain Customer entity.
func (m *CustomerModel) ToDomain() *partner.Customer {
	return &partner.Customer{
		BaseEntity:  m.BaseModel.ToDomain(),
		FirstName:   m.FirstName,
		LastName:    m.LastName,
		Email:       m.Email,
		Phone:       m.Phone,
		Birthdate:   m.Birthdate,
		Membership:  m.Membership,
		OrdersCount: m.OrdersCount,
	}
}

// FromDomain populates the persistence model from a domain Customer entity.
func (m *CustomerModel) FromDomain(c *partner.Customer) {
	m.FromDomainBaseEntity(c.BaseEntity)
	m.FirstName = c.FirstName
	m.LastName = c.LastName
	m.Email = c.Email
	m.Phone = c.Phone
	m.Birthdate = c.Birthdate
	m.Membership = c.Membership
}

// CustomerModelFromDomain creates a new persistence model from a domain Customer entity.
func CustomerModelFromDomain(c *partner.Customer) *CustomerModel {
	m := &CustomerModel{}
	m.FromDomain(c)
	return m
}

// AddressModel is the persistence model for the Address domain entity.
type AddressModel struct {
	BaseModel
	CustomerID uint64         `gorm:"not null;index"`
	Customer   *CustomerModel `gorm:"foreignKey:CustomerID;constraint:OnDelete:CASCADE"`
	Street     string         `gorm:"type:varchar(255);not null"`
	City       string         `gorm:"type:varchar(255);not null"`
}

// TableName returns the table name for GORM
func (AddressModel) TableName() string {
	return "addresses"
}

// ToDomain converts the persistence model to a domain Address entity.
func (m *AddressModel) ToDomain() *partner.Address {
	return &partner.Address{
		BaseEntity: m.BaseModel.ToDomain(),
		CustomerID: m.CustomerID,
		Street:     m.Street,
		City:       m.City,
	}
}

// AddressModelFromDomain creates a new persistence model from a domain Address entity.
func AddressModelFromDomain(a *partner.Address) *AddressModel {
	m := &AddressModel{CustomerID: a.CustomerID, Street: a.Street, City: a.City}
	m.FromDomainBaseEntity(a.BaseEntity)
	return m
}
