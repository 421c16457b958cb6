package handlers

import (
	"errors"
	"net/http"

	"paymentrelay/internal/domain/callback"

	"github.com/gin-gonic/gin"
)

type CallbackHandler struct {
	pipeline *callback.Pipeline
}

func NewCallbackHandler(pipeline *callback.Pipeline) CallbackHandler {
	return CallbackHandler{pipeline: pipeline}
}

// callbackForm mirrors the processor's form-encoded notification body.
// Only the fields that drive verification and routing are required; the
// rest are passed through into the receipt.
type callbackForm struct {
	MerchantOrderID  string `form:"merchantOrderId" binding:"required"`
	Amount           int64  `form:"amount" binding:"required"`
	MerchantCode     string `form:"merchantCode" binding:"required"`
	ProductDetails   string `form:"productDetails"`
	AdditionalParam  string `form:"additionalParam"`
	PaymentCode      string `form:"paymentCode"`
	ResultCode       string `form:"resultCode" binding:"required"`
	MerchantUserID   string `form:"merchantUserId"`
	Reference        string `form:"reference" binding:"required"`
	Signature        string `form:"signature" binding:"required"`
	PublisherOrderID string `form:"publisherOrderId"`
	SpUserHash       string `form:"spUserHash"`
	SettlementDate   string `form:"settlementDate"`
	IssuerCode       string `form:"issuerCode"`
}

func (f callbackForm) toNotification() callback.Notification {
	return callback.Notification{
		MerchantOrderID:  f.MerchantOrderID,
		Amount:           f.Amount,
		MerchantCode:     f.MerchantCode,
		ProductDetails:   f.ProductDetails,
		AdditionalParam:  f.AdditionalParam,
		PaymentCode:      f.PaymentCode,
		ResultCode:       f.ResultCode,
		MerchantUserID:   f.MerchantUserID,
		Reference:        f.Reference,
		Signature:        f.Signature,
		PublisherOrderID: f.PublisherOrderID,
		SpUserHash:       f.SpUserHash,
		SettlementDate:   f.SettlementDate,
		IssuerCode:       f.IssuerCode,
	}
}

// Notify receives one payment notification and answers synchronously with
// the receipt. The processor treats any non-200 as a delivery failure and
// re-sends later, so the status split below matters.
func (h *CallbackHandler) Notify(c *gin.Context) {
	var form callbackForm
	if err := c.ShouldBind(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid callback payload", "details": err.Error()})
		return
	}

	receipt, err := h.pipeline.Process(c.Request.Context(), form.toNotification())
	if err != nil {
		switch {
		case errors.Is(err, callback.ErrInvalidSignature):
			c.JSON(http.StatusBadRequest, gin.H{"message": "invalid signature"})
		case errors.Is(err, callback.ErrPaymentNotFound):
			c.JSON(http.StatusNotFound, gin.H{"message": "payment not found"})
		case errors.Is(err, callback.ErrOrderInconsistent):
			c.JSON(http.StatusConflict, gin.H{"message": "payment updated but order missing"})
		case errors.Is(err, callback.ErrStoreUnavailable):
			c.JSON(http.StatusServiceUnavailable, gin.H{"message": "store unavailable"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "callback processed", "data": receipt})
}
