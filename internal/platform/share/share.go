// Package share builds stable share links and scannable codes for quotes.
package share

import (
	"encoding/base64"
	"fmt"
	"strings"

	qrcode "github.com/skip2/go-qrcode"

	"github.com/jsamuelsen/quotewall/internal/domain"
)

// qrSize is the pixel width of generated QR images.
const qrSize = 256

// Builder constructs share URLs and QR data URIs for quotes.
type Builder struct {
	baseURL string
}

// NewBuilder creates a share builder. baseURL is the externally reachable
// origin of the service, without a trailing slash.
func NewBuilder(baseURL string) *Builder {
	return &Builder{baseURL: strings.TrimRight(baseURL, "/")}
}

// URL returns the stable shareable link for a quote.
func (b *Builder) URL(id domain.QuoteID) string {
	return fmt.Sprintf("%s/quotes/%d", b.baseURL, id)
}

// QRDataURI encodes the quote's share URL as a PNG data URI suitable for
// direct embedding in an <img> tag.
func (b *Builder) QRDataURI(id domain.QuoteID) (string, error) {
	png, err := qrcode.Encode(b.URL(id), qrcode.Medium, qrSize)
	if err != nil {
		return "", fmt.Errorf("encoding share QR code: %w", err)
	}

	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png), nil
}
