package service

import (
	"github.com/skip2/go-qrcode"
)

type DefaultQRGenerator struct {
	Size  int
	Level qrcode.RecoveryLevel
}

func NewQRGenerator() DefaultQRGenerator {
	return DefaultQRGenerator{Size: 256, Level: qrcode.Medium}
}

func (g DefaultQRGenerator) Generate(content string) ([]byte, error) {
	size := g.Size
	if size == 0 {
		size = 256
	}
	return qrcode.Encode(content, g.Level, size)
}
