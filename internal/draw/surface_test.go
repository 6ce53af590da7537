package draw

import (
	"image/color"
	"testing"
)

func TestPaintStackSaveRestore(t *testing.T) {
	p := &PaintStack{Paint: DefaultPaint}
	p.Save()
	p.SetFillColor(color.RGBA{R: 1, A: 255})
	p.SetTextAlign(AlignRight)
	p.Save()
	p.SetStrokeColor(color.RGBA{B: 1, A: 255})

	p.Restore()
	if p.Stroke != DefaultPaint.Stroke {
		t.Errorf("stroke after restore = %v, want default", p.Stroke)
	}
	if p.Align != AlignRight {
		t.Errorf("align after first restore = %v, want right", p.Align)
	}

	p.Restore()
	if p.Paint != DefaultPaint {
		t.Errorf("paint after second restore = %+v, want default", p.Paint)
	}

	p.Restore()
	if p.Paint != DefaultPaint {
		t.Errorf("unbalanced restore changed paint to %+v", p.Paint)
	}
}

func TestParseHexColor(t *testing.T) {
	tests := []struct {
		in      string
		want    color.RGBA
		wantErr bool
	}{
		{"#ff9900", color.RGBA{R: 0xff, G: 0x99, A: 255}, false},
		{"66ccff", color.RGBA{R: 0x66, G: 0xcc, B: 0xff, A: 255}, false},
		{"#fff", color.RGBA{R: 255, G: 255, B: 255, A: 255}, false},
		{"#12345", color.RGBA{}, true},
		{"#gggggg", color.RGBA{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseHexColor(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseHexColor(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseHexColor(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}

	fallback := color.RGBA{R: 9, A: 255}
	if got := ColorOr("nope", fallback); got != fallback {
		t.Errorf("ColorOr(invalid) = %v, want fallback", got)
	}
}
