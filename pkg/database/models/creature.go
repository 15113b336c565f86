package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/latoulicious/dexbox/pkg/catalog"
)

// Creature is one reference dataset entry. The entry itself is stored as
// JSON so the loose dataset typing survives the round trip.
type Creature struct {
	ID        uuid.UUID     `gorm:"type:uuid;primaryKey" json:"id"`
	No        string        `gorm:"index;not null" json:"no"`
	Name      string        `gorm:"index" json:"name"`
	Position  int           `gorm:"index;not null" json:"position"`
	Data      catalog.Entry `gorm:"type:text;not null;serializer:json" json:"data"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

// LookupItem is one row of a ball, item or nature list.
type LookupItem struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Kind      string    `gorm:"index;not null" json:"kind"`
	ItemID    string    `gorm:"not null" json:"item_id"`
	Name      string    `gorm:"not null" json:"name"`
	Position  int       `gorm:"index;not null" json:"position"`
	CreatedAt time.Time `json:"created_at"`
}

// BeforeCreate assigns the primary key.
func (c *Creature) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// BeforeCreate assigns the primary key.
func (i *LookupItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for Creature
func (Creature) TableName() string {
	return "creatures"
}

// TableName returns the table name for LookupItem
func (LookupItem) TableName() string {
	return "lookup_items"
}
