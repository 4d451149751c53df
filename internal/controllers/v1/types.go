package v1

import (
	"time"

	pl_uuid "github.com/pocketledger/backend/internal/uuid"
)

type URIID struct {
	ID pl_uuid.UUID `uri:"id" binding:"required" format:"UUID"` // ID of the resource
}

// QueryDates are the date range parameters shared by the record list
// endpoints.
type QueryDates struct {
	FromDate  time.Time `form:"fromDate" time_format:"2006-01-02" time_utc:"1" example:"2024-01-01"`
	UntilDate time.Time `form:"untilDate" time_format:"2006-01-02" time_utc:"1" example:"2024-06-30"`
}

// QueryPagination are the pagination parameters shared by the list endpoints.
type QueryPagination struct {
	Offset uint `form:"offset" example:"10"`
	Limit  int  `form:"limit" example:"50"`
}

// limit returns the effective limit for a list query, defaulting to 50.
func (q QueryPagination) limit() int {
	if q.Limit == 0 {
		return 50
	}

	return q.Limit
}
