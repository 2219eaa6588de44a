package service

// QRCodeService builds UPI payment links and renders them as QR images.
type QRCodeService interface {
	// BuildPaymentLink encodes link as a upi://pay deep link.
	BuildPaymentLink(link PaymentLink) string

	// GeneratePaymentQR renders link as a PNG image.
	GeneratePaymentQR(link string) ([]byte, error)
}

// PaymentLink holds the fields of a UPI deep link.
type PaymentLink struct {
	PayeeAddress string  `json:"payeeAddress"`
	PayeeName    string  `json:"payeeName"`
	Amount       float64 `json:"amount"`
	Note         string  `json:"note"`
}
