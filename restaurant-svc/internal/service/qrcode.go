package service

import (
	"fmt"

	"github.com/skip2/go-qrcode"
)

// DefaultQRGenerator encodes the vote link of a restaurant as a PNG.
type DefaultQRGenerator struct {
	BaseURL string
	Size    int
}

func (g DefaultQRGenerator) VoteURL(restaurantID int64) string {
	return fmt.Sprintf("%s/vote.html?restaurant_id=%d", g.BaseURL, restaurantID)
}

func (g DefaultQRGenerator) Generate(restaurantID int64) ([]byte, error) {
	size := g.Size
	if size <= 0 {
		size = 256
	}
	return qrcode.Encode(g.VoteURL(restaurantID), qrcode.Medium, size)
}
