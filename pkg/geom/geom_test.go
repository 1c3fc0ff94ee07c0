package geom

import "testing"

func TestParseAxis(t *testing.T) {
	tests := []struct {
		in      string
		want    Axis
		wantErr bool
	}{
		{"horizontal", Horizontal, false},
		{"Row", Horizontal, false},
		{"x", Horizontal, false},
		{"vertical", Vertical, false},
		{" column ", Vertical, false},
		{"depth", Depth, false},
		{"z", Depth, false},
		{"diagonal", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseAxis(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseAxis(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParseAxis(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestOffsetArithmetic(t *testing.T) {
	a := Offset2{3, -2}
	b := Offset2{5, 7}

	if got := a.Add(b); got != (Offset2{8, 5}) {
		t.Errorf("Add = %v, want (8,5)", got)
	}
	if got := b.Sub(a); got != (Offset2{2, 9}) {
		t.Errorf("Sub = %v, want (2,9)", got)
	}
	if got := a.With(Vertical, 10); got != (Offset2{3, 10}) {
		t.Errorf("With = %v, want (3,10)", got)
	}
	if a != (Offset2{3, -2}) {
		t.Errorf("With must not mutate the receiver, got %v", a)
	}

	c := Offset3{1, 2, 3}
	if got := c.Add(Offset3{1, 1, 1}).Sub(Offset3{0, 0, 4}); got != (Offset3{2, 3, 0}) {
		t.Errorf("Offset3 arithmetic = %v, want (2,3,0)", got)
	}
	if c.Rank() != 3 || a.Rank() != 2 {
		t.Errorf("unexpected ranks %d, %d", c.Rank(), a.Rank())
	}
}

func TestSizeArithmetic(t *testing.T) {
	s := Size2{10, 5}
	if got := s.Add(Size2{1, 2}); got != (Size2{11, 7}) {
		t.Errorf("Add = %v, want 11x7", got)
	}
	if got := s.At(Horizontal); got != 10 {
		t.Errorf("At(Horizontal) = %d, want 10", got)
	}
	if got := (Size3{1, 2, 3}).With(Depth, 9); got != (Size3{1, 2, 9}) {
		t.Errorf("Size3.With = %v, want 1x2x9", got)
	}
}

func TestRectEquality(t *testing.T) {
	a := NewRect(Offset2{1, 2}, Size2{3, 4})
	b := NewRect(Offset2{1, 2}, Size2{3, 4})
	if a != b {
		t.Error("rects with equal components must compare equal")
	}
	if a == NewRect(Offset2{1, 2}, Size2{3, 5}) {
		t.Error("rects with different sizes must differ")
	}
	if got := a.Translate(Offset2{-1, 8}); got != NewRect(Offset2{0, 10}, Size2{3, 4}) {
		t.Errorf("Translate = %v", got)
	}
	if got := a.String(); got != "3x4@(1,2)" {
		t.Errorf("String = %q", got)
	}
}

func TestThicknessAndAdvance(t *testing.T) {
	pad := Thickness[Size2]{Leading: Size2{3, 2}, Trailing: Size2{4, 1}}
	if got := pad.Total(); got != (Size2{7, 3}) {
		t.Errorf("Total = %v, want 7x3", got)
	}
	if got := Advance(Offset2{10, -10}, pad.Leading); got != (Offset2{13, -8}) {
		t.Errorf("Advance = %v, want (13,-8)", got)
	}
	if got := Advance(Offset3{}, Size3{1, 2, 3}); got != (Offset3{1, 2, 3}) {
		t.Errorf("Advance rank 3 = %v", got)
	}
}
