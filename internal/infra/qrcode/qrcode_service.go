package qrcode

import (
	"net/url"
	"strconv"

	"currypoint/config"
	"currypoint/internal/domain/service"

	"github.com/pkg/errors"
	"github.com/skip2/go-qrcode"
)

const (
	upiScheme       = "upi"
	upiHost         = "pay"
	defaultCurrency = "INR"
	defaultSize     = 256
)

type qrcodeService struct {
	size                 int
	errorCorrectionLevel qrcode.RecoveryLevel
}

// NewQRCodeService creates a new QR code service instance
func NewQRCodeService(size int, errorCorrectionLevel string) service.QRCodeService {
	// Set error correction level
	var level qrcode.RecoveryLevel
	switch errorCorrectionLevel {
	case "L":
		level = qrcode.Low
	case "M":
		level = qrcode.Medium
	case "Q":
		level = qrcode.High
	case "H":
		level = qrcode.Highest
	default:
		level = qrcode.Medium
	}

	if size <= 0 {
		size = defaultSize
	}

	return &qrcodeService{
		size:                 size,
		errorCorrectionLevel: level,
	}
}

// NewFromConfig reads the qrcode section of cfg.
func NewFromConfig(cfg *config.Config) service.QRCodeService {
	if cfg.QRCode == nil {
		return NewQRCodeService(defaultSize, "")
	}

	return NewQRCodeService(cfg.QRCode.Size, cfg.QRCode.ErrorCorrectionLevel)
}

// DefaultNote is the transaction note used when the caller gives none.
func DefaultNote(businessName string) string {
	return "Payment to " + businessName
}

// BuildPaymentLink encodes link as upi://pay?pa=..&pn=..&am=..&cu=..&tn=..
func (s *qrcodeService) BuildPaymentLink(link service.PaymentLink) string {
	return BuildUPILink(link.PayeeAddress, link.PayeeName, link.Amount, link.Note)
}

// BuildUPILink formats amount with two decimals and falls back to DefaultNote.
func BuildUPILink(upiID, businessName string, amount float64, note string) string {
	if note == "" {
		note = DefaultNote(businessName)
	}

	// Keeps pa, pn, am, cu, tn order; url.Values.Encode would sort the keys.
	query := "pa=" + url.QueryEscape(upiID) +
		"&pn=" + url.QueryEscape(businessName) +
		"&am=" + strconv.FormatFloat(amount, 'f', 2, 64) +
		"&cu=" + defaultCurrency +
		"&tn=" + url.QueryEscape(note)

	return upiScheme + "://" + upiHost + "?" + query
}

// GeneratePaymentQR renders link as a PNG image
func (s *qrcodeService) GeneratePaymentQR(link string) ([]byte, error) {
	if link == "" {
		return nil, errors.New("payment link is empty")
	}

	qrCode, err := qrcode.New(link, s.errorCorrectionLevel)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create QR code")
	}

	pngBytes, err := qrCode.PNG(s.size)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate PNG")
	}

	return pngBytes, nil
}
