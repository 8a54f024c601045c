package handlers

import (
	"errors"
	"strings"
	"time"

	"cloud.google.com/go/civil"
	"github.com/gin-gonic/gin"

	apperrors "walletledger/internal/errors"
	"walletledger/internal/logger"
	"walletledger/internal/models"
	"walletledger/internal/pagination"
	"walletledger/internal/services"
)

const maxIDLength = 64

// ErrorDetail represents the inner error object in an error response.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// parsePathID reads an opaque string id from the path.
//
//nolint:unparam // param is intentionally generic for reuse across handlers with different path params
func parsePathID(c *gin.Context, param string) (string, error) {
	id := strings.TrimSpace(c.Param(param))
	if id == "" || len(id) > maxIDLength {
		return "", apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid "+param)
	}
	return id, nil
}

// parseFlexibleDate accepts YYYY-MM-DD or an RFC3339 timestamp and returns
// the calendar date. Timestamps keep the date as written, not as converted
// to local time.
func parseFlexibleDate(s string) (civil.Date, error) {
	s = strings.TrimSpace(s)
	if d, err := civil.ParseDate(s); err == nil {
		return d, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return civil.Date{}, apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid date, use YYYY-MM-DD")
	}
	return civil.DateOf(t), nil
}

// TransactionQuery holds the list/report filter query parameters.
type TransactionQuery struct {
	WalletID   string `form:"wallet_id" binding:"max=64"`
	CategoryID string `form:"category_id" binding:"max=64"`
	Type       string `form:"type" binding:"omitempty,transaction_type"`
	TimeFilter string `form:"time_filter" binding:"omitempty,time_filter"`
	StartDate  string `form:"start_date"`
	EndDate    string `form:"end_date"`
	Query      string `form:"q" binding:"max=100"`
}

// bindTransactionFilter parses the filter query. Supplying start_date or
// end_date without time_filter implies a custom window.
func bindTransactionFilter(c *gin.Context) (services.TransactionFilter, error) {
	var q TransactionQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		return services.TransactionFilter{}, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error())
	}

	filter := services.TransactionFilter{
		WalletID:    q.WalletID,
		CategoryID:  q.CategoryID,
		Type:        models.TransactionType(q.Type),
		TimeFilter:  services.TimeFilter(strings.ToLower(q.TimeFilter)),
		SearchQuery: strings.TrimSpace(q.Query),
	}

	if q.StartDate != "" {
		d, err := parseFlexibleDate(q.StartDate)
		if err != nil {
			return filter, err
		}
		filter.StartDate = &d
	}
	if q.EndDate != "" {
		d, err := parseFlexibleDate(q.EndDate)
		if err != nil {
			return filter, err
		}
		filter.EndDate = &d
	}
	if filter.TimeFilter == services.TimeFilterAll && (filter.StartDate != nil || filter.EndDate != nil) {
		filter.TimeFilter = services.TimeFilterCustom
	}
	if filter.StartDate != nil && filter.EndDate != nil && filter.EndDate.Before(*filter.StartDate) {
		return filter, apperrors.WithMessage(apperrors.ErrInvalidInput, "end_date must not be before start_date")
	}
	return filter, nil
}

func bindPage(c *gin.Context) (pagination.PageRequest, error) {
	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		return page, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error())
	}
	return page, nil
}

// respondWithError writes a consistent JSON error response. If the error is an
// *AppError it uses the error's status code, code, and message. Otherwise it
// logs the unexpected error and returns a generic internal server error.
func respondWithError(c *gin.Context, err error) {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		if appErr.Internal != nil {
			logger.Get().Errorw("app error",
				"code", appErr.Code,
				"internal", appErr.Internal.Error(),
				"path", c.Request.URL.Path,
			)
		}
		c.JSON(appErr.StatusCode, gin.H{
			"error": gin.H{
				"code":    appErr.Code,
				"message": appErr.Message,
			},
		})
		return
	}

	logger.Get().Errorw("unexpected error",
		"error", err.Error(),
		"path", c.Request.URL.Path,
		"method", c.Request.Method,
	)
	c.JSON(apperrors.ErrInternalServer.StatusCode, gin.H{
		"error": gin.H{
			"code":    apperrors.ErrInternalServer.Code,
			"message": apperrors.ErrInternalServer.Message,
		},
	})
}
