package api

import (
	"fmt"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jinzhu/gorm"

	"larder/internal/models"
	"larder/internal/suggest"
)

// Bulk import accepts freeform pantry dumps:
//
//	Pantry:
//	- canned chickpeas (2 cans)
//	Spices:
//	- black pepper
//
// Heading lines switch the category; plain lines work too and land in
// PANTRY/OTHER. Quantity hints come from "(...)" or a " - " suffix.
var (
	headingLine = regexp.MustCompile(`^([A-Za-z][A-Za-z /-]+):$`)
	bulletLead  = regexp.MustCompile(`^[-*•]+\s*`)
	parenQty    = regexp.MustCompile(`^(.*)\(([^)]+)\)\s*$`)
	dashQty     = regexp.MustCompile(`^(.*)\s+-\s+(.+)$`)
)

func headingToCategory(h string) string {
	n := suggest.Normalize(h)
	switch {
	case strings.Contains(n, "spice"):
		return "SPICE"
	case strings.Contains(n, "frozen"), strings.Contains(n, "freezer"):
		return "FROZEN"
	case strings.Contains(n, "produce"), strings.Contains(n, "veg"), strings.Contains(n, "fruit"):
		return "PRODUCE"
	case strings.Contains(n, "meat"), strings.Contains(n, "seafood"), strings.Contains(n, "protein"):
		return "MEAT"
	case strings.Contains(n, "dairy"):
		return "DAIRY"
	case strings.Contains(n, "condiment"), strings.Contains(n, "sauce"):
		return "CONDIMENT"
	case strings.Contains(n, "pantry"), strings.Contains(n, "canned"), strings.Contains(n, "dry"):
		return "PANTRY"
	default:
		return "OTHER"
	}
}

func categoryToDefaultLocation(category string) string {
	switch category {
	case "FROZEN", "MEAT":
		return "FREEZER"
	case "PRODUCE", "DAIRY":
		return "FRIDGE"
	default:
		return "PANTRY"
	}
}

type importLine struct {
	name     string
	qty      string
	category string
	location string
}

// parseImportText turns the freeform dump into resolved item lines.
func parseImportText(text, defaultLocation string) []importLine {
	currentCategory := "PANTRY"

	var out []importLine
	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(strings.TrimSuffix(raw, "\r"))
		if line == "" {
			continue
		}

		if m := headingLine.FindStringSubmatch(line); m != nil {
			currentCategory = headingToCategory(m[1])
			continue
		}

		cleaned := bulletLead.ReplaceAllString(line, "")
		name, qty := cleaned, ""
		if m := parenQty.FindStringSubmatch(cleaned); m != nil {
			name, qty = strings.TrimSpace(m[1]), strings.TrimSpace(m[2])
		} else if m := dashQty.FindStringSubmatch(cleaned); m != nil {
			name, qty = strings.TrimSpace(m[1]), strings.TrimSpace(m[2])
		}

		normalized := suggest.Normalize(name)
		if normalized == "" {
			continue
		}

		location := defaultLocation
		if location == "" {
			location = categoryToDefaultLocation(currentCategory)
		}
		out = append(out, importLine{name: normalized, qty: qty, category: currentCategory, location: location})
	}
	return out
}

// ImportInventory bulk-creates items (and batches) from pasted text.
func (s *Server) ImportInventory(c *gin.Context) {
	var req struct {
		Text            string `json:"text" binding:"required"`
		DefaultLocation string `json:"defaultLocation"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if req.DefaultLocation != "" && !models.ValidValue(models.ItemLocations, req.DefaultLocation) {
		badRequest(c, fmt.Errorf("invalid defaultLocation %q", req.DefaultLocation))
		return
	}

	created := 0
	for _, line := range parseImportText(req.Text, req.DefaultLocation) {
		var item models.Item
		err := s.db.Where("name = ?", line.name).First(&item).Error
		switch {
		case gorm.IsRecordNotFoundError(err):
			item = models.Item{Name: line.name, Category: line.category, Location: line.location}
			if err := s.db.Create(&item).Error; err != nil {
				internalError(c, err)
				return
			}
		case err != nil:
			internalError(c, err)
			return
		default:
			item.Category = line.category
			item.Location = line.location
			if err := s.db.Save(&item).Error; err != nil {
				internalError(c, err)
				return
			}
		}

		now := time.Now()
		if line.qty != "" {
			batch := models.ItemBatch{ItemID: item.ID, QuantityText: line.qty, PurchasedOn: &now}
			if err := s.db.Create(&batch).Error; err != nil {
				internalError(c, err)
				return
			}
		} else {
			// No quantity given: make sure at least one batch exists so the
			// item doesn't look permanently empty.
			var count int
			s.db.Model(&models.ItemBatch{}).Where("item_id = ?", item.ID).Count(&count)
			if count == 0 {
				batch := models.ItemBatch{ItemID: item.ID, QuantityText: "1", PurchasedOn: &now}
				if err := s.db.Create(&batch).Error; err != nil {
					internalError(c, err)
					return
				}
			}
		}
		created++
	}

	s.hub.Publish("inventory.imported", gin.H{"created": created})
	c.JSON(http.StatusOK, gin.H{"created": created})
}
