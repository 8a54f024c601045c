package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "walletledger/internal/errors"
	"walletledger/internal/models"
	"walletledger/internal/services"
)

// CategoryHandler handles category-related requests
type CategoryHandler struct {
	categoryService services.CategoryServicer
	auditService    services.AuditServicer
}

// NewCategoryHandler creates a new CategoryHandler
func NewCategoryHandler(categoryService services.CategoryServicer, auditService services.AuditServicer) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService, auditService: auditService}
}

// CreateCategoryRequest represents the request payload for creating a category
type CreateCategoryRequest struct {
	Name       string              `json:"name" binding:"required,max=100"`
	Type       models.CategoryType `json:"type" binding:"required,category_type"`
	Icon       string              `json:"icon" binding:"max=50"`
	Color      string              `json:"color" binding:"omitempty,hex_color"`
	IsFrequent bool                `json:"isFrequent"`
}

// UpdateCategoryRequest represents the request payload for updating a category
type UpdateCategoryRequest struct {
	Name       *string              `json:"name" binding:"omitempty,max=100"`
	Type       *models.CategoryType `json:"type" binding:"omitempty,category_type"`
	Icon       *string              `json:"icon" binding:"omitempty,max=50"`
	Color      *string              `json:"color" binding:"omitempty,hex_color"`
	IsFrequent *bool                `json:"isFrequent"`
}

// CategoryQuery holds the list query parameters.
type CategoryQuery struct {
	Type     string `form:"type" binding:"omitempty,category_type"`
	Frequent bool   `form:"frequent"`
}

// CreateCategory handles the creation of a new category
// @Summary     Create a category
// @Tags        categories
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateCategoryRequest true "Category details"
// @Success     201 {object} models.Category "Category created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Router      /categories [post]
func (h *CategoryHandler) CreateCategory(c *gin.Context) {
	var req CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	category, err := h.categoryService.AddCategory(services.CategoryInput{
		Name:       req.Name,
		Type:       req.Type,
		Icon:       req.Icon,
		Color:      req.Color,
		IsFrequent: req.IsFrequent,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log("CREATE_CATEGORY", services.ResourceCategory, category.ID, c.ClientIP(),
		map[string]any{"name": category.Name, "type": string(category.Type)})

	c.JSON(http.StatusCreated, gin.H{"category": category})
}

// ListCategories lists categories, optionally narrowed by type or to the
// frequent ones. frequent=true requires type.
// @Summary     List categories
// @Tags        categories
// @Produce     json
// @Security    BearerAuth
// @Param       type     query string false "income or expense"
// @Param       frequent query bool   false "Only frequent categories of the given type"
// @Success     200 {array} models.Category "List of categories"
// @Failure     400 {object} ErrorResponse
// @Router      /categories [get]
func (h *CategoryHandler) ListCategories(c *gin.Context) {
	var q CategoryQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	var categories []models.Category
	switch {
	case q.Frequent && q.Type == "":
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "frequent requires type"))
		return
	case q.Frequent:
		categories = h.categoryService.Frequent(models.CategoryType(q.Type))
	case q.Type != "":
		categories = h.categoryService.ListByType(models.CategoryType(q.Type))
	default:
		categories = h.categoryService.ListCategories()
	}
	if categories == nil {
		categories = []models.Category{}
	}

	c.JSON(http.StatusOK, gin.H{"categories": categories})
}

// GetCategory returns a single category.
// @Summary     Get category by ID
// @Tags        categories
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Category ID"
// @Success     200 {object} models.Category
// @Failure     404 {object} ErrorResponse "Category not found"
// @Router      /categories/{id} [get]
func (h *CategoryHandler) GetCategory(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	category, err := h.categoryService.GetCategory(id)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"category": category})
}

// UpdateCategory merges the provided fields into a category.
// @Summary     Update a category
// @Tags        categories
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path string                true "Category ID"
// @Param       request body UpdateCategoryRequest true "Fields to change"
// @Success     200 {object} map[string]any
// @Failure     400 {object} ErrorResponse
// @Router      /categories/{id} [put]
func (h *CategoryHandler) UpdateCategory(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	category, found, err := h.categoryService.UpdateCategory(id, services.CategoryUpdate{
		Name:       req.Name,
		Type:       req.Type,
		Icon:       req.Icon,
		Color:      req.Color,
		IsFrequent: req.IsFrequent,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}
	if !found {
		c.JSON(http.StatusOK, gin.H{"updated": false})
		return
	}

	h.auditService.Log("UPDATE_CATEGORY", services.ResourceCategory, category.ID, c.ClientIP(),
		map[string]any{"name": category.Name})

	c.JSON(http.StatusOK, gin.H{"updated": true, "category": category})
}

// DeleteCategory removes a category. Transactions that reference it are
// left as they are and report as uncategorized.
// @Summary     Delete a category
// @Tags        categories
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Category ID"
// @Success     200 {object} map[string]bool
// @Router      /categories/{id} [delete]
func (h *CategoryHandler) DeleteCategory(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	deleted := h.categoryService.DeleteCategory(id)
	if deleted {
		h.auditService.Log("DELETE_CATEGORY", services.ResourceCategory, id, c.ClientIP(), nil)
	}
	c.JSON(http.StatusOK, gin.H{"deleted": deleted})
}
