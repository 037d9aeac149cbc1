package qr

import (
	"bytes"
	"image/png"
	"testing"

	"relish/internal/errors"
)

func TestPNG(t *testing.T) {
	data, err := PNG("http://192.168.1.20:8175/", 256)
	if err != nil {
		t.Fatalf("PNG() error = %v", err)
	}

	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("output is not a PNG: %v", err)
	}
	if got := img.Bounds().Dx(); got != 256 {
		t.Errorf("width = %d, want 256", got)
	}
}

func TestPNG_DefaultSize(t *testing.T) {
	data, err := PNG("http://example.com/", 0)
	if err != nil {
		t.Fatalf("PNG() error = %v", err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("output is not a PNG: %v", err)
	}
	if got := img.Bounds().Dx(); got != DefaultSize {
		t.Errorf("width = %d, want %d", got, DefaultSize)
	}
}

func TestPNG_EmptyURL(t *testing.T) {
	_, err := PNG("", 256)
	if !errors.Is(err, errors.ErrInvalidRequest) {
		t.Errorf("PNG(\"\") error = %v, want INVALID_REQUEST", err)
	}
}
