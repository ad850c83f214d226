package request

// CreateHoldingRequest represents the request body for creating a holding
type CreateHoldingRequest struct {
	ProductCode   string  `json:"productCode"`
	ProductName   string  `json:"productName"`
	ProductType   string  `json:"productType"`
	Category      string  `json:"category"`
	Quantity      float64 `json:"quantity"`
	PurchasePrice float64 `json:"purchasePrice"`
}

type UpdateHoldingRequest struct {
	ProductName   *string  `json:"productName,omitempty"`
	Category      *string  `json:"category,omitempty"`
	Quantity      *float64 `json:"quantity,omitempty"`
	PurchasePrice *float64 `json:"purchasePrice,omitempty"`
}

// CalendarCredentialsRequest represents the request body for storing the
// trade-date service credentials
type CalendarCredentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}
