package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/jinzhu/gorm"
)

// Item is a pantry item. Names are stored normalized (see suggest.Normalize)
// so that "Canned Chickpeas" and "canned chickpeas" are the same row.
type Item struct {
	ID               string    `gorm:"primary_key" json:"id"`
	Name             string    `gorm:"unique_index;not null" json:"name"`
	Category         string    `gorm:"not null" json:"category"`
	Location         string    `gorm:"not null" json:"location"`
	Staple           bool      `json:"staple"`
	ParLevel         *int      `json:"parLevel,omitempty"`
	DefaultCostCents *int      `json:"defaultCostCents,omitempty"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`

	Batches []ItemBatch `gorm:"foreignkey:ItemID" json:"batches"`
}

// TableName sets the table name for Item.
func (Item) TableName() string { return "items" }

// BeforeCreate assigns a UUID primary key.
func (i *Item) BeforeCreate(scope *gorm.Scope) error {
	if i.ID == "" {
		return scope.SetColumn("ID", uuid.New().String())
	}
	return nil
}

// ItemBatch is one physical lot of an item. Quantity is freeform text
// ("2 cans", "500g"); the expiration date drives the expiring-soon signal.
type ItemBatch struct {
	ID           string     `gorm:"primary_key" json:"id"`
	ItemID       string     `gorm:"index;not null" json:"itemId"`
	QuantityText string     `gorm:"not null" json:"quantityText"`
	ExpiresOn    *time.Time `json:"expiresOn,omitempty"`
	PurchasedOn  *time.Time `json:"purchasedOn,omitempty"`
	CostCents    *int       `json:"costCents,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
}

// TableName sets the table name for ItemBatch.
func (ItemBatch) TableName() string { return "item_batches" }

func (b *ItemBatch) BeforeCreate(scope *gorm.Scope) error {
	if b.ID == "" {
		return scope.SetColumn("ID", uuid.New().String())
	}
	return nil
}

// GroceryItem is a generated shopping-list entry. The list is rebuilt
// wholesale by the grocery planner; Done is the only user-mutable field.
type GroceryItem struct {
	ID        string    `gorm:"primary_key" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	Channel   string    `gorm:"not null" json:"channel"`
	Reason    string    `json:"reason"`
	Done      bool      `json:"done"`
	CreatedAt time.Time `json:"createdAt"`
}

// TableName sets the table name for GroceryItem.
func (GroceryItem) TableName() string { return "grocery_items" }

func (g *GroceryItem) BeforeCreate(scope *gorm.Scope) error {
	if g.ID == "" {
		return scope.SetColumn("ID", uuid.New().String())
	}
	return nil
}
