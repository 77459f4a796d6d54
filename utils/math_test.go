package utils

import "testing"

var wrapDegTests = []struct {
	in  float32
	out float32
}{
	{0, 0},
	{90, 90},
	{190, -170},
	{-190, 170},
	{360, 0},
	{-360, 0},
	{540, -180},
	{-45, -45},
}

func TestWrapDeg(t *testing.T) {
	for _, test := range wrapDegTests {
		result := WrapDeg(test.in)
		if Abs(result-test.out) > 1e-4 {
			t.Errorf("WrapDeg(%v)=%v; expected %v", test.in, result, test.out)
		}
	}
}

var clampTests = []struct {
	in, min, max, out float32
}{
	{5, 0, 10, 5},
	{-3, 0, 10, 0},
	{14, 0, 10, 10},
	{0, 0, 0, 0},
}

func TestClamp(t *testing.T) {
	for _, test := range clampTests {
		result := Clamp(test.in, test.min, test.max)
		if result != test.out {
			t.Errorf("Clamp(%v,%v,%v)=%v; expected %v", test.in, test.min, test.max, result, test.out)
		}
	}
}

func TestLerp(t *testing.T) {
	if r := Lerp(0, 10, 0.25); Abs(r-2.5) > 1e-5 {
		t.Errorf("Lerp(0,10,0.25)=%v; expected 2.5", r)
	}
	if r := Lerp(-4, 4, 0.5); Abs(r) > 1e-5 {
		t.Errorf("Lerp(-4,4,0.5)=%v; expected 0", r)
	}
}

func TestSinCosDeg(t *testing.T) {
	if r := SinDeg(90); Abs(r-1) > 1e-5 {
		t.Errorf("SinDeg(90)=%v; expected 1", r)
	}
	if r := CosDeg(180); Abs(r+1) > 1e-5 {
		t.Errorf("CosDeg(180)=%v; expected -1", r)
	}
}
