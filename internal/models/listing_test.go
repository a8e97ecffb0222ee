package models

import "testing"

func TestNormalizeTransmission(t *testing.T) {
	cases := []struct {
		in   string
		want Transmission
	}{
		{"Manual", TransmissionManual},
		{"manual", TransmissionManual},
		{"  MANUAL  ", TransmissionManual},
		{"Automático", TransmissionAutomatic},
		{"automatic", TransmissionAutomatic},
		{"", TransmissionAutomatic},
		{"CVT", TransmissionAutomatic},
	}
	for _, c := range cases {
		if got := NormalizeTransmission(c.in); got != c.want {
			t.Errorf("NormalizeTransmission(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestListingValidate(t *testing.T) {
	valid := Listing{
		Brand:   "Audi",
		Model:   "A4",
		Price:   169900,
		Mileage: 33000,
	}
	if err := valid.Validate(); err != nil {
		t.Errorf("valid listing rejected: %v", err)
	}

	t.Run("missing brand", func(t *testing.T) {
		l := valid
		l.Brand = "  "
		if err := l.Validate(); err == nil {
			t.Error("expected error for blank brand")
		}
	})

	t.Run("missing model", func(t *testing.T) {
		l := valid
		l.Model = ""
		if err := l.Validate(); err == nil {
			t.Error("expected error for blank model")
		}
	})

	t.Run("negative price", func(t *testing.T) {
		l := valid
		l.Price = -1
		if err := l.Validate(); err == nil {
			t.Error("expected error for negative price")
		}
	})

	t.Run("negative mileage", func(t *testing.T) {
		l := valid
		l.Mileage = -100
		if err := l.Validate(); err == nil {
			t.Error("expected error for negative mileage")
		}
	})

	t.Run("zero price is allowed", func(t *testing.T) {
		l := valid
		l.Price = 0
		if err := l.Validate(); err != nil {
			t.Errorf("zero price should be valid: %v", err)
		}
	})
}

func TestListingName(t *testing.T) {
	l := Listing{Brand: "BMW", Model: "Serie 3"}
	if got := l.Name(); got != "BMW Serie 3" {
		t.Errorf("Name() = %q, want %q", got, "BMW Serie 3")
	}
}

func TestListingPrimaryImage(t *testing.T) {
	t.Run("primary set", func(t *testing.T) {
		l := Listing{Image: "a.jpg", Images: []string{"b.jpg"}}
		if got := l.PrimaryImage(); got != "a.jpg" {
			t.Errorf("PrimaryImage() = %q, want %q", got, "a.jpg")
		}
	})

	t.Run("falls back to first secondary", func(t *testing.T) {
		l := Listing{Images: []string{"b.jpg", "c.jpg"}}
		if got := l.PrimaryImage(); got != "b.jpg" {
			t.Errorf("PrimaryImage() = %q, want %q", got, "b.jpg")
		}
	})

	t.Run("no images", func(t *testing.T) {
		l := Listing{}
		if got := l.PrimaryImage(); got != "" {
			t.Errorf("PrimaryImage() = %q, want empty", got)
		}
	})
}
