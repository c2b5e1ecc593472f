package imagemap

import (
	"math"
	"testing"
)

func TestNewPoint(t *testing.T) {
	tests := []struct {
		name string
		x, y float64
		ok   bool
	}{
		{"origin", 0, 0, true},
		{"far corner", 1, 1, true},
		{"center", 0.5, 0.25, true},
		{"negative x", -0.01, 0.5, false},
		{"y above one", 0.5, 1.01, false},
		{"nan", math.NaN(), 0.5, false},
		{"inf", 0.5, math.Inf(1), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := NewPoint(tt.x, tt.y)
			if tt.ok {
				if err != nil {
					t.Fatalf("NewPoint(%v, %v): %v", tt.x, tt.y, err)
				}
				if p.X() != tt.x || p.Y() != tt.y {
					t.Errorf("NewPoint(%v, %v) = (%v, %v)", tt.x, tt.y, p.X(), p.Y())
				}
				return
			}
			if !IsCode(err, ErrCodeInvalidPoint) {
				t.Errorf("NewPoint(%v, %v) error = %v, want %s", tt.x, tt.y, err, ErrCodeInvalidPoint)
			}
		})
	}
}

func TestMustPointPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MustPoint(2, 0) did not panic")
		}
	}()
	MustPoint(2, 0)
}

func TestNewRegionDefaultRadius(t *testing.T) {
	r, err := NewRegion(MustPoint(0.5, 0.5), 0)
	if err != nil {
		t.Fatal(err)
	}
	if r.Radius != DefaultRegionRadius {
		t.Errorf("Radius = %v, want %v", r.Radius, DefaultRegionRadius)
	}
}

func TestNewRegionRejectsBadRadius(t *testing.T) {
	for _, radius := range []float64{-0.1, math.NaN(), math.Inf(1)} {
		if _, err := NewRegion(MustPoint(0.5, 0.5), radius); !IsCode(err, ErrCodeInvalidRegion) {
			t.Errorf("NewRegion radius %v: error = %v, want %s", radius, err, ErrCodeInvalidRegion)
		}
	}
}

func TestRemoveRegion(t *testing.T) {
	img := &AnnotatedImage{ID: "a.jpg"}
	for _, x := range []float64{0.1, 0.2, 0.3} {
		r, _ := NewRegion(MustPoint(x, 0.5), 0.1)
		img.AddRegion(r)
	}

	if err := img.RemoveRegion(1); err != nil {
		t.Fatal(err)
	}
	if len(img.Regions) != 2 {
		t.Fatalf("len = %d, want 2", len(img.Regions))
	}
	if img.Regions[0].Center.X() != 0.1 || img.Regions[1].Center.X() != 0.3 {
		t.Errorf("order not preserved: %v", img.Regions)
	}

	if err := img.RemoveRegion(5); !IsCode(err, ErrCodeIndexOutOfRange) {
		t.Errorf("RemoveRegion(5) error = %v, want %s", err, ErrCodeIndexOutOfRange)
	}
}

func TestImageSizeKnown(t *testing.T) {
	if (ImageSize{}).Known() {
		t.Error("zero size reported known")
	}
	if (ImageSize{Width: 10}).Known() {
		t.Error("zero height reported known")
	}
	if !(ImageSize{Width: 10, Height: 5}).Known() {
		t.Error("10x5 reported unknown")
	}
}
