package power

import (
	"math"
	"testing"
)

func TestWindPower(t *testing.T) {
	tests := []struct {
		name       string
		speed      float64
		capacityMW float64
		want       float64
	}{
		{"below cut-in", 2.99, 100, 0},
		{"exactly cut-in", 3.0, 100, 0},
		{"mid ramp", 6.0, 100, 100 * math.Pow(3.0/9.0, 3)},
		{"just below rated", 11.99, 100, 100 * math.Pow(8.99/9.0, 3)},
		{"exactly rated", 12.0, 100, 100},
		{"rated region", 20.0, 100, 100},
		{"just below cut-out", 24.99, 100, 100},
		{"exactly cut-out", 25.0, 100, 0},
		{"above cut-out", 30.0, 100, 0},
		{"zero speed", 0, 50, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := WindPower(tt.speed, tt.capacityMW)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("WindPower(%v, %v) = %v, want %v", tt.speed, tt.capacityMW, got, tt.want)
			}
		})
	}
}

func TestWindPower_MidRampValue(t *testing.T) {
	// 100 × ((6-3)/9)^3 = 3.7037...
	got := WindPower(6.0, 100)
	if math.Abs(got-3.7037037037) > 1e-6 {
		t.Errorf("WindPower(6, 100) = %v, want 3.7037", got)
	}
}

func TestSolarPower(t *testing.T) {
	tests := []struct {
		name       string
		ghi        float64
		capacityMW float64
		want       float64
	}{
		{"negative irradiance clamps to zero", -100, 40, 0},
		{"zero irradiance", 0, 40, 0},
		{"half reference irradiance", 500, 40, 17.0},
		{"reference irradiance", 1000, 40, 34.0},
		{"above reference clips at capacity", 1500, 40, 40},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SolarPower(tt.ghi, tt.capacityMW)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("SolarPower(%v, %v) = %v, want %v", tt.ghi, tt.capacityMW, got, tt.want)
			}
		})
	}
}

func TestVectorizedWrappers(t *testing.T) {
	speeds := []float64{0, 3, 6, 12, 25, 30}
	out := WindPowerCurve(speeds, 100)
	if len(out) != len(speeds) {
		t.Fatalf("len(out) = %d, want %d", len(out), len(speeds))
	}
	for i, s := range speeds {
		if out[i] != WindPower(s, 100) {
			t.Errorf("WindPowerCurve[%d] = %v, want %v", i, out[i], WindPower(s, 100))
		}
	}

	ghi := []float64{-100, 0, 500, 1000, 1500}
	sout := SolarPowerOutput(ghi, 40)
	if len(sout) != len(ghi) {
		t.Fatalf("len(sout) = %d, want %d", len(sout), len(ghi))
	}
	for i, g := range ghi {
		if sout[i] != SolarPower(g, 40) {
			t.Errorf("SolarPowerOutput[%d] = %v, want %v", i, sout[i], SolarPower(g, 40))
		}
	}
}
