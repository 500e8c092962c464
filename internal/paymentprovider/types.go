package paymentprovider

// PreferenceItem — позиция в платёжной преференции.
type PreferenceItem struct {
	Title      string  `json:"title"`
	Quantity   int     `json:"quantity"`
	UnitPrice  float64 `json:"unit_price"`
	CurrencyID string  `json:"currency_id"`
}

// BackURLs — адреса возврата пользователя после оплаты.
type BackURLs struct {
	Success string `json:"success"`
	Failure string `json:"failure"`
	Pending string `json:"pending"`
}

// CreatePreferenceRequest — запрос на создание преференции оплаты.
type CreatePreferenceRequest struct {
	Items             []PreferenceItem `json:"items"`
	BackURLs          BackURLs         `json:"back_urls"`
	AutoReturn        string           `json:"auto_return,omitempty"`
	ExternalReference string           `json:"external_reference"`
	NotificationURL   string           `json:"notification_url,omitempty"`
	Expires           bool             `json:"expires"`
	ExpirationDateTo  string           `json:"expiration_date_to,omitempty"`
}

// CreatePreferenceResponse — ответ провайдера с адресом чекаута.
type CreatePreferenceResponse struct {
	ID        string `json:"id"`
	InitPoint string `json:"init_point"`
}

// Payment — данные платежа, полученные по его идентификатору.
type Payment struct {
	ID                int64   `json:"id"`
	Status            string  `json:"status"` // approved, pending, rejected и др.
	ExternalReference string  `json:"external_reference"`
	TransactionAmount float64 `json:"transaction_amount"`
	PaymentMethodID   string  `json:"payment_method_id"`
}

// PaymentStatusApproved — статус подтверждённого платежа.
const PaymentStatusApproved = "approved"
