package middleware

import (
	"net/http"

	"github.com/bryce-dotcom/og-dealer-app-sub001/internal/infrastructure/logger"
	"github.com/bryce-dotcom/og-dealer-app-sub001/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// DealerIDHeader selects the dealership a request acts for
const DealerIDHeader = "X-Dealer-ID"

// DealerIDKey is the gin context key holding the resolved dealer id
const DealerIDKey = "dealer_id"

// Dealer resolves the dealership for each request from X-Dealer-ID, falling
// back to fallback when the header is absent. A malformed header is a 400.
// The dealer id is also attached to the request's logging context.
func Dealer(fallback uuid.UUID) gin.HandlerFunc {
	return func(c *gin.Context) {
		dealerID := fallback
		if raw := c.GetHeader(DealerIDHeader); raw != "" {
			parsed, err := uuid.Parse(raw)
			if err != nil || parsed == uuid.Nil {
				c.AbortWithStatusJSON(http.StatusBadRequest, dto.NewErrorResponseWithRequestID(
					dto.ErrCodeBadRequest,
					"X-Dealer-ID must be a UUID",
					GetRequestID(c),
				))
				return
			}
			dealerID = parsed
		}

		c.Set(DealerIDKey, dealerID)
		c.Request = c.Request.WithContext(logger.WithDealerID(c.Request.Context(), dealerID.String()))
		c.Next()
	}
}

// GetDealerID returns the dealer id resolved by Dealer, or uuid.Nil
func GetDealerID(c *gin.Context) uuid.UUID {
	if v, ok := c.Get(DealerIDKey); ok {
		if id, ok := v.(uuid.UUID); ok {
			return id
		}
	}
	return uuid.Nil
}
