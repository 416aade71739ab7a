package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/rllagas/csm-server/config"
	"github.com/rllagas/csm-server/middleware"
	"github.com/rllagas/csm-server/models"
	"github.com/rllagas/csm-server/survey"
)

// Admin CRUD over the survey schema. Every mutation invalidates the
// schema cache, writes an activity-log row and raises a notification.

func ListFields(c *gin.Context) {
	var rows []models.SurveyField
	if err := config.DB.Order("sort_order ASC").Find(&rows).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Could not load fields"})
		return
	}

	items := make([]gin.H, 0, len(rows))
	for _, row := range rows {
		def, err := row.Definition()
		if err != nil {
			continue
		}
		items = append(items, gin.H{
			"id":         row.ID,
			"sort_order": row.SortOrder,
			"definition": def,
			"updated_at": row.UpdatedAt,
		})
	}
	c.JSON(http.StatusOK, gin.H{"fields": items})
}

func validateDefinition(def survey.FieldDefinition) error {
	switch def.Type {
	case survey.TypeText, survey.TypeTextarea:
		if len(def.Options) > 0 || len(def.Rows) > 0 || len(def.Columns) > 0 {
			return errors.New("text fields carry no options, rows or columns")
		}
	case survey.TypeRadio, survey.TypeSelect:
		if len(def.Options) == 0 {
			return errors.New("choice fields need at least one option")
		}
		if len(def.Rows) > 0 || len(def.Columns) > 0 {
			return errors.New("choice fields carry no rows or columns")
		}
	case survey.TypeMatrix:
		if len(def.Rows) == 0 || len(def.Columns) == 0 {
			return errors.New("matrix fields need rows and columns")
		}
		if len(def.Options) > 0 {
			return errors.New("matrix fields carry no options")
		}
	default:
		return fmt.Errorf("unknown field type %q", def.Type)
	}
	if def.Name == "" || def.Section == "" || def.Label == "" {
		return errors.New("name, section and label are required")
	}
	if cr := def.ConditionalRequired; cr != nil && (cr.DependsOn == "" || len(cr.SkipValues) == 0) {
		return errors.New("conditionalRequired needs dependsOn and skipValues")
	}
	return nil
}

func AddField(c *gin.Context) {
	var def survey.FieldDefinition
	if err := c.ShouldBindJSON(&def); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"message": "Invalid payload", "error": err.Error()})
		return
	}
	if err := validateDefinition(def); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"message": err.Error()})
		return
	}

	var count int64
	config.DB.Model(&models.SurveyField{}).Where("name = ?", def.Name).Count(&count)
	if count > 0 {
		c.JSON(http.StatusConflict, gin.H{"message": "A field with this name already exists"})
		return
	}

	// Next position = MAX(sort_order)+1.
	type nextRes struct{ Next int }
	var r nextRes
	_ = config.DB.Model(&models.SurveyField{}).
		Select("COALESCE(MAX(sort_order), -1) + 1 AS next").
		Scan(&r).Error

	row, err := models.NewSurveyField(def, r.Next)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"message": "Could not encode field"})
		return
	}
	if err := config.DB.Create(&row).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Could not add field"})
		return
	}

	SchemaCache.Invalidate()
	u, _ := middleware.CurrentUser(c)
	logActivity(&u.ID, "field.add", def.Name)
	notify("schema", fmt.Sprintf("Survey question %q was added", def.Name))

	c.JSON(http.StatusCreated, gin.H{"field_id": row.ID})
}

func UpdateField(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid ID"})
		return
	}

	var row models.SurveyField
	if err := config.DB.First(&row, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Field not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Could not read field"})
		return
	}

	var def survey.FieldDefinition
	if err := c.ShouldBindJSON(&def); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"message": "Invalid payload", "error": err.Error()})
		return
	}
	if err := validateDefinition(def); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"message": err.Error()})
		return
	}
	if def.Name != row.Name {
		// Answer keys reference field names; renames would orphan them.
		c.JSON(http.StatusUnprocessableEntity, gin.H{"message": "Field names cannot be changed"})
		return
	}

	updated, err := models.NewSurveyField(def, row.SortOrder)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"message": "Could not encode field"})
		return
	}
	updated.ID = row.ID
	updated.CreatedAt = row.CreatedAt

	if err := config.DB.Save(&updated).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Could not update field"})
		return
	}

	SchemaCache.Invalidate()
	u, _ := middleware.CurrentUser(c)
	logActivity(&u.ID, "field.update", def.Name)
	notify("schema", fmt.Sprintf("Survey question %q was updated", def.Name))

	c.JSON(http.StatusOK, gin.H{"message": "updated"})
}

func DeleteField(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid ID"})
		return
	}

	var row models.SurveyField
	if err := config.DB.First(&row, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Field not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Could not read field"})
		return
	}

	err = config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&row).Error; err != nil {
			return err
		}
		// Close the gap in sort order.
		return tx.Model(&models.SurveyField{}).
			Where("sort_order > ?", row.SortOrder).
			Update("sort_order", gorm.Expr("sort_order - 1")).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Could not delete field"})
		return
	}

	SchemaCache.Invalidate()
	u, _ := middleware.CurrentUser(c)
	logActivity(&u.ID, "field.delete", row.Name)
	notify("schema", fmt.Sprintf("Survey question %q was removed", row.Name))

	c.JSON(http.StatusOK, gin.H{"message": "deleted"})
}

type reorderReq struct {
	// Field IDs in their new display order.
	Order []uint `json:"order" binding:"required,min=1"`
}

func ReorderFields(c *gin.Context) {
	var req reorderReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"message": "Invalid payload", "error": err.Error()})
		return
	}

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		for i, id := range req.Order {
			res := tx.Model(&models.SurveyField{}).Where("id = ?", id).Update("sort_order", i)
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return fmt.Errorf("unknown field id %d", id)
			}
		}
		return nil
	})
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"message": err.Error()})
		return
	}

	SchemaCache.Invalidate()
	u, _ := middleware.CurrentUser(c)
	logActivity(&u.ID, "field.reorder", fmt.Sprintf("%d fields", len(req.Order)))

	c.JSON(http.StatusOK, gin.H{"message": "reordered"})
}
