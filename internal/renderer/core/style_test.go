package core

import "testing"

func TestColorFromHex(t *testing.T) {
	tests := []struct {
		in      string
		want    Color
		wantErr bool
	}{
		{"#4477AA", ColorFromRGB(0x44, 0x77, 0xAA), false},
		{"4477aa", ColorFromRGB(0x44, 0x77, 0xAA), false},
		{"#fff", ColorWhite, false},
		{"#12345", Color{}, true},
		{"#GGGGGG", Color{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ColorFromHex(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ColorFromHex(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if !tt.wantErr && !got.Equals(tt.want) {
				t.Errorf("ColorFromHex(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestColorString(t *testing.T) {
	if got := MustHex("#bbccee").String(); got != "#BBCCEE" {
		t.Errorf("String() = %q, want %q", got, "#BBCCEE")
	}
	if got := ColorDefault.String(); got != "default" {
		t.Errorf("String() = %q, want %q", got, "default")
	}
}

func TestColorContrast(t *testing.T) {
	if got := MustHex("#EEEEBB").Contrast(); !got.Equals(ColorBlack) {
		t.Errorf("pale yellow Contrast() = %v, want black", got)
	}
	if got := MustHex("#222255").Contrast(); !got.Equals(ColorWhite) {
		t.Errorf("dark blue Contrast() = %v, want white", got)
	}
}

func TestAttributeString(t *testing.T) {
	a := AttrBold.With(AttrItalic).With(AttrMonospace)
	if got := a.String(); got != "bold|italic|monospace" {
		t.Errorf("String() = %q", got)
	}
	if a.Without(AttrItalic).Has(AttrItalic) {
		t.Error("Without(AttrItalic) still has italic")
	}
}

func TestStyleBuilders(t *testing.T) {
	red := MustHex("#EE6677")
	s := NewStyle(red).Bold().Underline(ColorWhite).WithScale(1.5)
	if !s.Attributes.Has(AttrBold) || !s.Attributes.Has(AttrUnderline) {
		t.Errorf("Attributes = %v", s.Attributes)
	}
	if !s.UnderlineColor.Equals(ColorWhite) {
		t.Errorf("UnderlineColor = %v", s.UnderlineColor)
	}
	if s.IsDefault() {
		t.Error("IsDefault() = true for a styled value")
	}
	if !DefaultStyle().IsDefault() {
		t.Error("DefaultStyle().IsDefault() = false")
	}
}
