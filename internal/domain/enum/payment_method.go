package enum

// PaymentMethod is how a sale was paid for
type PaymentMethod string

const (
	PaymentMethodCash PaymentMethod = "CASH"
	PaymentMethodQR   PaymentMethod = "QR"
)

// IsValid checks whether the payment method is a known value
func (m PaymentMethod) IsValid() bool {
	return m == PaymentMethodCash || m == PaymentMethodQR
}

func (m PaymentMethod) String() string {
	return string(m)
}
