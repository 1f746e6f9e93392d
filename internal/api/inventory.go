package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jinzhu/gorm"

	"larder/internal/models"
	"larder/internal/suggest"
)

type itemRequest struct {
	Name             string `json:"name" binding:"required"`
	Category         string `json:"category" binding:"required"`
	Location         string `json:"location" binding:"required"`
	Staple           *bool  `json:"staple"`
	ParLevel         *int   `json:"parLevel"`
	DefaultCostCents *int   `json:"defaultCostCents"`
}

type batchRequest struct {
	ID           string     `json:"id"`
	QuantityText string     `json:"quantityText" binding:"required"`
	ExpiresOn    *time.Time `json:"expiresOn"`
	PurchasedOn  *time.Time `json:"purchasedOn"`
	CostCents    *int       `json:"costCents"`
}

func (r *itemRequest) validate() error {
	if !models.ValidValue(models.ItemCategories, r.Category) {
		return fmt.Errorf("invalid category %q", r.Category)
	}
	if !models.ValidValue(models.ItemLocations, r.Location) {
		return fmt.Errorf("invalid location %q", r.Location)
	}
	return nil
}

// ListItems returns every pantry item with its batches, newest batch first.
func (s *Server) ListItems(c *gin.Context) {
	var items []models.Item
	err := s.db.
		Preload("Batches", func(db *gorm.DB) *gorm.DB { return db.Order("created_at DESC") }).
		Order("name ASC").
		Find(&items).Error
	if err != nil {
		internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

// CreateItem upserts an item by normalized name and optionally records a
// first batch in the same call.
func (s *Server) CreateItem(c *gin.Context) {
	var req struct {
		Item  itemRequest   `json:"item" binding:"required"`
		Batch *batchRequest `json:"batch"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if err := req.Item.validate(); err != nil {
		badRequest(c, err)
		return
	}

	name := suggest.Normalize(req.Item.Name)

	var item models.Item
	err := s.db.Where("name = ?", name).First(&item).Error
	switch {
	case gorm.IsRecordNotFoundError(err):
		item = models.Item{
			Name:             name,
			Category:         req.Item.Category,
			Location:         req.Item.Location,
			Staple:           req.Item.Staple != nil && *req.Item.Staple,
			ParLevel:         req.Item.ParLevel,
			DefaultCostCents: req.Item.DefaultCostCents,
		}
		if err := s.db.Create(&item).Error; err != nil {
			internalError(c, err)
			return
		}
	case err != nil:
		internalError(c, err)
		return
	default:
		item.Category = req.Item.Category
		item.Location = req.Item.Location
		if req.Item.Staple != nil {
			item.Staple = *req.Item.Staple
		}
		if req.Item.ParLevel != nil {
			item.ParLevel = req.Item.ParLevel
		}
		if req.Item.DefaultCostCents != nil {
			item.DefaultCostCents = req.Item.DefaultCostCents
		}
		if err := s.db.Save(&item).Error; err != nil {
			internalError(c, err)
			return
		}
	}

	if req.Batch != nil {
		batch := models.ItemBatch{
			ItemID:       item.ID,
			QuantityText: req.Batch.QuantityText,
			ExpiresOn:    req.Batch.ExpiresOn,
			PurchasedOn:  req.Batch.PurchasedOn,
			CostCents:    req.Batch.CostCents,
		}
		if batch.PurchasedOn == nil {
			now := time.Now()
			batch.PurchasedOn = &now
		}
		if err := s.db.Create(&batch).Error; err != nil {
			internalError(c, err)
			return
		}
	}

	s.hub.Publish("item.upserted", gin.H{"id": item.ID, "name": item.Name})
	c.JSON(http.StatusOK, gin.H{"item": item})
}

// UpdateItem updates an item and, when a batch payload is present, updates
// that batch by id or appends a new one.
func (s *Server) UpdateItem(c *gin.Context) {
	id := c.Param("id")

	var req struct {
		Item  itemRequest   `json:"item" binding:"required"`
		Batch *batchRequest `json:"batch"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if err := req.Item.validate(); err != nil {
		badRequest(c, err)
		return
	}

	var item models.Item
	if err := s.db.Where("id = ?", id).First(&item).Error; err != nil {
		notFound(c, "item")
		return
	}

	item.Name = suggest.Normalize(req.Item.Name)
	item.Category = req.Item.Category
	item.Location = req.Item.Location
	if req.Item.Staple != nil {
		item.Staple = *req.Item.Staple
	}
	if req.Item.ParLevel != nil {
		item.ParLevel = req.Item.ParLevel
	}
	if req.Item.DefaultCostCents != nil {
		item.DefaultCostCents = req.Item.DefaultCostCents
	}
	if err := s.db.Save(&item).Error; err != nil {
		internalError(c, err)
		return
	}

	if req.Batch != nil {
		if req.Batch.ID != "" {
			err := s.db.Model(&models.ItemBatch{}).
				Where("id = ? AND item_id = ?", req.Batch.ID, item.ID).
				Updates(map[string]interface{}{
					"quantity_text": req.Batch.QuantityText,
					"cost_cents":    req.Batch.CostCents,
					"expires_on":    req.Batch.ExpiresOn,
				}).Error
			if err != nil {
				internalError(c, err)
				return
			}
		} else {
			batch := models.ItemBatch{
				ItemID:       item.ID,
				QuantityText: req.Batch.QuantityText,
				ExpiresOn:    req.Batch.ExpiresOn,
				CostCents:    req.Batch.CostCents,
			}
			if err := s.db.Create(&batch).Error; err != nil {
				internalError(c, err)
				return
			}
		}
	}

	s.hub.Publish("item.upserted", gin.H{"id": item.ID, "name": item.Name})
	c.JSON(http.StatusOK, gin.H{"item": item})
}

// DeleteItem removes an item and its batches.
func (s *Server) DeleteItem(c *gin.Context) {
	id := c.Param("id")

	var item models.Item
	if err := s.db.Where("id = ?", id).First(&item).Error; err != nil {
		notFound(c, "item")
		return
	}

	if err := s.db.Where("item_id = ?", id).Delete(&models.ItemBatch{}).Error; err != nil {
		internalError(c, err)
		return
	}
	if err := s.db.Delete(&item).Error; err != nil {
		internalError(c, err)
		return
	}

	s.hub.Publish("item.deleted", gin.H{"id": id})
	c.JSON(http.StatusOK, gin.H{"success": true})
}
