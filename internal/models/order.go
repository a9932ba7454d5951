package models

import "time"

const (
	OrderPending = "pending"
	OrderPaid    = "paid"
	OrderFailed  = "failed"
)

type OrderItem struct {
	ServiceID   string `json:"service_id"`
	ServiceName string `json:"service_name"`
	UnitPrice   int64  `json:"unit_price"`
	Quantity    int    `json:"quantity"`
}

type Order struct {
	ID            string      `gorm:"primaryKey" json:"order_id"`
	PatientID     string      `gorm:"not null;index" json:"patient_id"`
	TxnRef        string      `gorm:"uniqueIndex;not null" json:"txn_ref"`
	Amount        int64       `gorm:"not null" json:"amount"`
	OrderInfo     string      `json:"order_info"`
	Items         []OrderItem `gorm:"serializer:json" json:"items"`
	Status        string      `gorm:"not null;default:pending;index" json:"status"`
	ResponseCode  string      `json:"response_code,omitempty"`
	BankCode      string      `json:"bank_code,omitempty"`
	TransactionNo string      `json:"transaction_no,omitempty"`
	PaidAt        *time.Time  `json:"paid_at,omitempty"`
	CreatedAt     time.Time   `json:"created_at"`
	UpdatedAt     time.Time   `json:"-"`
}
