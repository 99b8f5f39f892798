package qrcode

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	skipqrcode "github.com/skip2/go-qrcode"
)

var (
	// ErrEmptyContent is returned when the content is empty or only whitespace.
	ErrEmptyContent = errors.New("content cannot be empty")
	// ErrFailedToGenerateQRCode is returned when the encoder rejects the content.
	ErrFailedToGenerateQRCode = errors.New("failed to generate QR code")
)

// DefaultSize is the image edge in pixels used for non-positive sizes.
const DefaultSize = 256

const dataURIPrefix = "data:image/png;base64,"

// Generate encodes content as a size x size PNG.
func Generate(content string, size int) ([]byte, error) {
	if strings.TrimSpace(content) == "" {
		return nil, ErrEmptyContent
	}
	if size <= 0 {
		size = DefaultSize
	}
	png, err := skipqrcode.Encode(content, skipqrcode.Medium, size)
	if err != nil {
		return nil, errors.Join(ErrFailedToGenerateQRCode, err)
	}
	return png, nil
}

// ForVoucher encodes the canonical form of v, which for a *voucher.Voucher is its code.
func ForVoucher(v fmt.Stringer, size int) ([]byte, error) {
	if v == nil {
		return nil, ErrEmptyContent
	}
	return Generate(v.String(), size)
}

// DataURI is ForVoucher returning a base64 PNG data URI.
func DataURI(v fmt.Stringer, size int) (string, error) {
	png, err := ForVoucher(v, size)
	if err != nil {
		return "", err
	}
	return dataURIPrefix + base64.StdEncoding.EncodeToString(png), nil
}
