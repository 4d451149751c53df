package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pocketledger/backend/internal/httputil"
	"github.com/pocketledger/backend/internal/ledger"
	"github.com/pocketledger/backend/internal/models"
)

// RegisterTransferRoutes registers the routes for transfers with the
// RouterGroup that is passed.
//
// Transfers cannot be patched. Editing one means deleting it and recording a
// new one, which keeps the reversal logic in a single place.
func RegisterTransferRoutes(r *gin.RouterGroup) {
	{
		r.OPTIONS("", httputil.OptionsGetPost)
		r.GET("", GetTransfers)
		r.POST("", CreateTransfer)
	}

	{
		r.OPTIONS("/:id", httputil.OptionsGetDelete)
		r.GET("/:id", GetTransfer)
		r.DELETE("/:id", DeleteTransfer)
	}
}

// TransferQueryFilter contains the query parameters for the transfer list.
type TransferQueryFilter struct {
	QueryDates
	QueryPagination
	AccountID string `form:"account"` // matches either side of the transfer
}

// @Summary		Create transfer
// @Description	Moves value between two accounts. A non-zero fee is charged to the source and recorded as a Bank Fees expense.
// @Tags			Transfers
// @Produce		json
// @Success		201	{object}	models.Transfer
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Router			/v1/transfers [post]
func CreateTransfer(c *gin.Context) {
	ownerID, ok := owner(c)
	if !ok {
		return
	}

	var create ledger.TransferCreate
	if err := httputil.BindData(c, &create); err != nil {
		c.JSON(status(err), newHTTPError(err))
		return
	}

	transfer, err := ledger.NewService(models.DB).CreateTransfer(ownerID, create)
	if err != nil {
		c.JSON(status(err), newHTTPError(err))
		return
	}

	c.JSON(http.StatusCreated, transfer)
}

// @Summary		List transfers
// @Tags			Transfers
// @Produce		json
// @Success		200	{array}	models.Transfer
// @Router			/v1/transfers [get]
// @Param			fromDate	query	string	false	"Only transfers on or after this date"
// @Param			untilDate	query	string	false	"Only transfers on or before this date"
// @Param			account		query	string	false	"Filter by account ID, matches source and destination"
// @Param			offset		query	uint	false	"Pagination offset"
// @Param			limit		query	int		false	"Maximum number of transfers to return, defaults to 50"
func GetTransfers(c *gin.Context) {
	ownerID, ok := owner(c)
	if !ok {
		return
	}

	var filter TransferQueryFilter
	if err := c.Bind(&filter); err != nil {
		c.JSON(http.StatusBadRequest, newHTTPError(err))
		return
	}

	q := models.DB.
		Where("owner_id = ?", ownerID).
		Order("date DESC, created_at DESC").
		Offset(int(filter.Offset)).
		Limit(filter.limit())

	if !filter.FromDate.IsZero() {
		q = q.Where("date >= ?", filter.FromDate)
	}
	if !filter.UntilDate.IsZero() {
		q = q.Where("date <= ?", filter.UntilDate)
	}
	if filter.AccountID != "" {
		q = q.Where("from_account_id = ? OR to_account_id = ?", filter.AccountID, filter.AccountID)
	}

	var transfers []models.Transfer
	if err := q.Find(&transfers).Error; err != nil {
		c.JSON(status(err), newHTTPError(err))
		return
	}

	c.JSON(http.StatusOK, transfers)
}

// @Summary		Get transfer
// @Tags			Transfers
// @Produce		json
// @Success		200	{object}	models.Transfer
// @Failure		404	{object}	httpError
// @Router			/v1/transfers/{id} [get]
func GetTransfer(c *gin.Context) {
	ownerID, ok := owner(c)
	if !ok {
		return
	}

	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, newHTTPError(httputil.ErrInvalidUUID))
		return
	}

	var transfer models.Transfer
	err := models.DB.Where("id = ? AND owner_id = ?", uri.ID.UUID, ownerID).First(&transfer).Error
	if err != nil {
		c.JSON(status(err), newHTTPError(err))
		return
	}

	c.JSON(http.StatusOK, transfer)
}

// @Summary		Delete transfer
// @Description	Reverses the transfer on both accounts and removes its fee expense, if one was recorded.
// @Tags			Transfers
// @Success		204
// @Failure		404	{object}	httpError
// @Router			/v1/transfers/{id} [delete]
func DeleteTransfer(c *gin.Context) {
	ownerID, ok := owner(c)
	if !ok {
		return
	}

	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, newHTTPError(httputil.ErrInvalidUUID))
		return
	}

	err := ledger.NewService(models.DB).DeleteTransfer(ownerID, uri.ID.UUID)
	if err != nil {
		c.JSON(status(err), newHTTPError(err))
		return
	}

	c.Status(http.StatusNoContent)
}
