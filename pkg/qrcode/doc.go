// Package qrcode renders voucher codes as QR images, either as PNG bytes or
// as a data URI that can be placed straight into an <img> tag.
//
// Rendering is delegated to github.com/skip2/go-qrcode at medium error
// correction. Only the canonical code is encoded, never the voucher's other
// fields, so a scanned image can be passed directly to voucher.Bag.Validate.
//
//	png, err := qrcode.ForVoucher(v, 256)
//
//	uri, err := qrcode.DataURI(v, 0) // default 256px
//	// <img src="{{ .QR }}">
//
// Blank content fails with ErrEmptyContent; encoder failures are joined with
// ErrFailedToGenerateQRCode.
package qrcode
