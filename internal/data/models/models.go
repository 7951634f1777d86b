// Package models holds the GORM row types backing the aggregates. IDs are
// assigned in Go (uuid.New) so the same schema works on Postgres and SQLite.
package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type User struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string    `gorm:"not null;column:name" json:"name"`
	Email     string    `gorm:"uniqueIndex;not null;column:email" json:"email"`
	AddressID uuid.UUID `gorm:"type:uuid;not null;column:address_id" json:"address_id"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (User) TableName() string { return "user" }

type Address struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Street    string    `gorm:"not null;column:street" json:"street"`
	City      string    `gorm:"not null;column:city" json:"city"`
	ZipCode   string    `gorm:"not null;column:zip_code" json:"zip_code"`
	Country   string    `gorm:"not null;column:country" json:"country"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (Address) TableName() string { return "address" }

type Customer struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string    `gorm:"not null;column:name" json:"name"`
	Phone     string    `gorm:"not null;column:phone" json:"phone"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index;column:user_id" json:"user_id"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (Customer) TableName() string { return "customer" }

type Payment struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID     uuid.UUID `gorm:"type:uuid;not null;index;column:user_id" json:"user_id"`
	CustomerID uuid.UUID `gorm:"type:uuid;not null;index;column:customer_id" json:"customer_id"`
	Amount     float64   `gorm:"not null;column:amount" json:"amount"`
	Status     string    `gorm:"not null;column:status" json:"status"`
	CreatedAt  time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt  time.Time `gorm:"not null" json:"updated_at"`
}

func (Payment) TableName() string { return "payment" }

// EventLog is the audit row written for every domain event that crosses the
// event bus.
type EventLog struct {
	ID         uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Name       string         `gorm:"not null;index;column:name" json:"name"`
	Payload    datatypes.JSON `gorm:"column:payload" json:"payload"`
	OccurredAt time.Time      `gorm:"not null;index" json:"occurred_at"`
	CreatedAt  time.Time      `gorm:"not null" json:"created_at"`
}

func (EventLog) TableName() string { return "event_log" }
