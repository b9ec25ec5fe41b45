package qrcode

import (
	"fmt"

	"github.com/skip2/go-qrcode"
)

const (
	DefaultSize = 256
	MinSize     = 128
	MaxSize     = 1024
)

// GeneratePNG สร้าง QR Code ของ data เป็น PNG ขนาด size x size
func GeneratePNG(data string, size int) ([]byte, error) {
	if data == "" {
		return nil, fmt.Errorf("qrcode: empty data")
	}
	switch {
	case size <= 0:
		size = DefaultSize
	case size < MinSize:
		size = MinSize
	case size > MaxSize:
		size = MaxSize
	}
	return qrcode.Encode(data, qrcode.Medium, size)
}
