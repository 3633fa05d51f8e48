package payment

type submitRequest struct {
	TransactionID string `json:"transactionId"`
}
