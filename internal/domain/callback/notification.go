package callback

// Notification carries the fields of one inbound payment notification.
// It is built from untrusted form input, consumed synchronously by the
// pipeline and never persisted verbatim.
type Notification struct {
	MerchantOrderID  string
	Amount           int64
	MerchantCode     string
	ProductDetails   string
	AdditionalParam  string
	PaymentCode      string
	ResultCode       string
	MerchantUserID   string
	Reference        string
	Signature        string
	PublisherOrderID string
	SpUserHash       string
	SettlementDate   string
	IssuerCode       string
}

// Receipt echoes the notification back to the processor together with the
// derived payment status and the raw result code.
type Receipt struct {
	MerchantOrderID  string        `json:"merchantOrderId"`
	Amount           int64         `json:"amount"`
	MerchantCode     string        `json:"merchantCode"`
	ProductDetails   string        `json:"productDetails"`
	AdditionalParam  string        `json:"additionalParam"`
	PaymentCode      string        `json:"paymentCode"`
	ResultCode       string        `json:"resultCode"`
	MerchantUserID   string        `json:"merchantUserId"`
	Reference        string        `json:"reference"`
	Signature        string        `json:"signature"`
	PublisherOrderID string        `json:"publisherOrderId"`
	SpUserHash       string        `json:"spUserHash"`
	SettlementDate   string        `json:"settlementDate"`
	IssuerCode       string        `json:"issuerCode"`
	Status           PaymentStatus `json:"status"`
	StatusCode       string        `json:"status_code"`
}

func newReceipt(n Notification, status PaymentStatus) *Receipt {
	return &Receipt{
		MerchantOrderID:  n.MerchantOrderID,
		Amount:           n.Amount,
		MerchantCode:     n.MerchantCode,
		ProductDetails:   n.ProductDetails,
		AdditionalParam:  n.AdditionalParam,
		PaymentCode:      n.PaymentCode,
		ResultCode:       n.ResultCode,
		MerchantUserID:   n.MerchantUserID,
		Reference:        n.Reference,
		Signature:        n.Signature,
		PublisherOrderID: n.PublisherOrderID,
		SpUserHash:       n.SpUserHash,
		SettlementDate:   n.SettlementDate,
		IssuerCode:       n.IssuerCode,
		Status:           status,
		StatusCode:       n.ResultCode,
	}
}
