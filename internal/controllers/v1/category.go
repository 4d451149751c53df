package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pocketledger/backend/internal/httputil"
	"github.com/pocketledger/backend/internal/models"
)

// RegisterCategoryRoutes registers the routes for categories with the
// RouterGroup that is passed.
func RegisterCategoryRoutes(r *gin.RouterGroup) {
	{
		r.OPTIONS("", httputil.OptionsGetPost)
		r.GET("", GetCategories)
		r.POST("", CreateCategory)
	}

	{
		r.OPTIONS("/:id", httputil.OptionsGetPatchDelete)
		r.GET("/:id", GetCategory)
		r.PATCH("/:id", UpdateCategory)
		r.DELETE("/:id", DeleteCategory)
	}
}

// CategoryEditable contains all values that can be set when creating a
// category.
type CategoryEditable struct {
	Name string              `json:"name" example:"Groceries"`
	Kind models.CategoryKind `json:"kind" example:"expense"`
	Note string              `json:"note"`
}

// CategoryUpdate contains the values that can be changed on a category.
// Fields that are nil are left unchanged. The kind is fixed after creation.
type CategoryUpdate struct {
	Name *string `json:"name"`
	Note *string `json:"note"`
}

// CategoryQueryFilter contains the query parameters for the category list.
type CategoryQueryFilter struct {
	Kind string `form:"kind"`
}

// @Summary		Create category
// @Tags			Categories
// @Produce		json
// @Success		201	{object}	models.Category
// @Failure		400	{object}	httpError
// @Router			/v1/categories [post]
func CreateCategory(c *gin.Context) {
	ownerID, ok := owner(c)
	if !ok {
		return
	}

	var editable CategoryEditable
	if err := httputil.BindData(c, &editable); err != nil {
		c.JSON(status(err), newHTTPError(err))
		return
	}

	category := models.Category{
		OwnerID: ownerID,
		Name:    editable.Name,
		Kind:    editable.Kind,
		Note:    editable.Note,
	}

	if err := models.DB.Create(&category).Error; err != nil {
		c.JSON(status(err), newHTTPError(err))
		return
	}

	c.JSON(http.StatusCreated, category)
}

// @Summary		List categories
// @Tags			Categories
// @Produce		json
// @Success		200	{array}	models.Category
// @Router			/v1/categories [get]
// @Param			kind	query	string	false	"Filter by kind, income or expense"
func GetCategories(c *gin.Context) {
	ownerID, ok := owner(c)
	if !ok {
		return
	}

	var filter CategoryQueryFilter
	if err := c.Bind(&filter); err != nil {
		c.JSON(http.StatusBadRequest, newHTTPError(err))
		return
	}

	q := models.DB.Where("owner_id = ?", ownerID).Order("name")

	if filter.Kind != "" {
		kind := models.CategoryKind(filter.Kind)
		if kind != models.CategoryKindIncome && kind != models.CategoryKindExpense {
			c.JSON(http.StatusBadRequest, newHTTPError(models.ErrCategoryKindInvalid))
			return
		}
		q = q.Where("kind = ?", kind)
	}

	var categories []models.Category
	if err := q.Find(&categories).Error; err != nil {
		c.JSON(status(err), newHTTPError(err))
		return
	}

	c.JSON(http.StatusOK, categories)
}

// @Summary		Get category
// @Tags			Categories
// @Produce		json
// @Success		200	{object}	models.Category
// @Failure		404	{object}	httpError
// @Router			/v1/categories/{id} [get]
func GetCategory(c *gin.Context) {
	ownerID, ok := owner(c)
	if !ok {
		return
	}

	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, newHTTPError(httputil.ErrInvalidUUID))
		return
	}

	var category models.Category
	err := models.DB.Where("id = ? AND owner_id = ?", uri.ID.UUID, ownerID).First(&category).Error
	if err != nil {
		c.JSON(status(err), newHTTPError(err))
		return
	}

	c.JSON(http.StatusOK, category)
}

// @Summary		Update category
// @Tags			Categories
// @Produce		json
// @Success		200	{object}	models.Category
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Router			/v1/categories/{id} [patch]
func UpdateCategory(c *gin.Context) {
	ownerID, ok := owner(c)
	if !ok {
		return
	}

	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, newHTTPError(httputil.ErrInvalidUUID))
		return
	}

	var update CategoryUpdate
	if err := httputil.BindData(c, &update); err != nil {
		c.JSON(status(err), newHTTPError(err))
		return
	}

	var category models.Category
	err := models.DB.Where("id = ? AND owner_id = ?", uri.ID.UUID, ownerID).First(&category).Error
	if err != nil {
		c.JSON(status(err), newHTTPError(err))
		return
	}

	if update.Name != nil {
		category.Name = *update.Name
	}
	if update.Note != nil {
		category.Note = *update.Note
	}

	if err := models.DB.Save(&category).Error; err != nil {
		c.JSON(status(err), newHTTPError(err))
		return
	}

	c.JSON(http.StatusOK, category)
}

// @Summary		Delete category
// @Description	Deletes a category that no income, expense or budget references.
// @Tags			Categories
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Router			/v1/categories/{id} [delete]
func DeleteCategory(c *gin.Context) {
	ownerID, ok := owner(c)
	if !ok {
		return
	}

	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, newHTTPError(httputil.ErrInvalidUUID))
		return
	}

	var category models.Category
	err := models.DB.Where("id = ? AND owner_id = ?", uri.ID.UUID, ownerID).First(&category).Error
	if err != nil {
		c.JSON(status(err), newHTTPError(err))
		return
	}

	for _, model := range []any{&models.Income{}, &models.Expense{}, &models.Budget{}} {
		var count int64
		err := models.DB.Model(model).Where("category_id = ?", category.ID).Count(&count).Error
		if err != nil {
			c.JSON(status(err), newHTTPError(err))
			return
		}

		if count > 0 {
			c.JSON(http.StatusBadRequest, newHTTPError(models.ErrCategoryStillReferenced))
			return
		}
	}

	if err := models.DB.Delete(&category).Error; err != nil {
		c.JSON(status(err), newHTTPError(err))
		return
	}

	c.Status(http.StatusNoContent)
}
