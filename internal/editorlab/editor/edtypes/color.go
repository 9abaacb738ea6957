package edtypes

import (
	"encoding/hex"
	"errors"
	"image/color"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
)

var (
	colorReg = regexp.MustCompile(`[rgba()#\s"]`)

	ErrUnsupportedColor = errors.New("unsupported color format")
)

// Color - цвет текста в том виде, в котором его передал редактор ("#ff0000", "rgb(255, 0, 0)", "red").
// В HTML значение выводится без изменений.
type Color string

// NewColor возвращает указатель на цвет или nil для пустой строки.
func NewColor(raw string) *Color {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	c := Color(raw)
	return &c
}

// ParseColor проверяет строку цвета и возвращает его в исходном виде.
func ParseColor(raw string) (Color, error) {
	c := Color(strings.TrimSpace(raw))
	if _, err := c.RGBA(); err != nil {
		return "", err
	}
	return c, nil
}

// RGBA разбирает hex (#rgb, #rrggbb, #rrggbbaa), rgb()/rgba() записи и именованные цвета CSS.
func (c Color) RGBA() (color.RGBA, error) {
	raw := strings.ToLower(strings.TrimSpace(string(c)))
	if raw == "" {
		return color.RGBA{}, ErrUnsupportedColor
	}
	if named, ok := colornames.Map[raw]; ok {
		return named, nil
	}
	isDecRGB := strings.HasPrefix(raw, "rgb(") || strings.HasPrefix(raw, "rgba(")
	isHex := raw[0] == '#'

	if isDecRGB {
		raw = colorReg.ReplaceAllString(raw, "")
		res := color.RGBA{A: 255}
		parts := strings.Split(raw, ",")
		if len(parts) < 3 || len(parts) > 4 {
			return color.RGBA{}, ErrUnsupportedColor
		}
		for i, n := range parts[:3] {
			nn, err := strconv.ParseUint(n, 10, 8)
			if err != nil {
				return color.RGBA{}, err
			}
			switch i {
			case 0:
				res.R = uint8(nn)
			case 1:
				res.G = uint8(nn)
			case 2:
				res.B = uint8(nn)
			}
		}
		return res, nil
	}

	if isHex {
		raw = raw[1:]
		if len(raw) == 3 {
			raw = string([]byte{raw[0], raw[0], raw[1], raw[1], raw[2], raw[2]})
		}
		b, err := hex.DecodeString(raw)
		if err != nil {
			return color.RGBA{}, err
		}
		if len(b) != 3 && len(b) != 4 {
			return color.RGBA{}, ErrUnsupportedColor
		}
		res := color.RGBA{R: b[0], G: b[1], B: b[2], A: 255}
		if len(b) == 4 {
			res.A = b[3]
		}
		return res, nil
	}

	return color.RGBA{}, ErrUnsupportedColor
}

func (c Color) String() string {
	return string(c)
}
