package models

import "allowlist-sync/core/reconcile"

const (
	// TableName is the proxy manager's allowlist table.
	TableName = "access_list_client"
	// DomainColumn holds the name an address is derived from.
	DomainColumn = "domain"
	// AddressColumn holds the allowed network in CIDR form.
	AddressColumn = "address"
)

// AccessListClient represents the 'access_list_client' table of the proxy manager.
// Only the columns the sync touches are mapped.
type AccessListClient struct {
	ID      uint    `gorm:"column:id;primaryKey"`
	Domain  *string `gorm:"column:domain;type:varchar(255)"`
	Address *string `gorm:"column:address"`
}

// TableName overrides the table name.
func (AccessListClient) TableName() string {
	return TableName
}

// ToEntry converts the row into a reconcile entry; NULL becomes "".
func (c AccessListClient) ToEntry() reconcile.Entry {
	return reconcile.Entry{
		ID:      c.ID,
		Domain:  deref(c.Domain),
		Address: deref(c.Address),
	}
}

// Nullable maps "" to NULL.
func Nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
