package vpu

import (
	"bytes"
	"testing"
)

// Scenario: slidedown_vi, SEW=16, VL=8, imm=3, VLMAX=8
func TestSlidedownVI(t *testing.T) {
	vrf := newVRF(testVLEN)
	loadReg(vrf, 16, 2, 0xA0, 0xA1, 0xA2, 0xA3, 0xA4, 0xA5, 0xA6, 0xA7)

	code := SlidedownVI(vrf, vtypeFor(t, 16, 1, 1), false, 3, 2, 3, 0, testVLEN, 8)
	if code != CodeNoExcept {
		t.Fatalf("SlidedownVI returned %v", code)
	}
	expectElems(t, "vslidedown.vi", readReg(vrf, 16, 3, 8),
		[]uint64{0xA3, 0xA4, 0xA5, 0xA6, 0xA7, 0, 0, 0})
}

func TestSlideupVI(t *testing.T) {
	vrf := newVRF(testVLEN)
	loadReg(vrf, 16, 2, 0xA0, 0xA1, 0xA2, 0xA3, 0xA4, 0xA5, 0xA6, 0xA7)
	loadReg(vrf, 16, 3, 0xE0, 0xE1, 0xE2, 0xE3, 0xE4, 0xE5, 0xE6, 0xE7)

	code := SlideupVI(vrf, vtypeFor(t, 16, 1, 1), false, 3, 2, 3, 0, testVLEN, 8)
	if code != CodeNoExcept {
		t.Fatalf("SlideupVI returned %v", code)
	}
	// the first imm elements of vd keep their previous contents
	expectElems(t, "vslideup.vi", readReg(vrf, 16, 3, 8),
		[]uint64{0xE0, 0xE1, 0xE2, 0xA0, 0xA1, 0xA2, 0xA3, 0xA4})
}

func TestSlideVstartPastVLIsNoOp(t *testing.T) {
	vrf := newVRF(testVLEN)
	loadReg(vrf, 16, 2, 1, 2, 3, 4)
	before := append([]byte(nil), vrf...)

	if code := SlideupVI(vrf, vtypeFor(t, 16, 1, 1), false, 3, 2, 1, 6, testVLEN, 4); code != CodeNoExcept {
		t.Fatalf("slideup with vstart>vl returned %v", code)
	}
	if code := Slide1Up(vrf, vtypeFor(t, 16, 1, 1), false, 3, 2, []byte{1, 0, 0, 0}, 32, 6, testVLEN, 4); code != CodeNoExcept {
		t.Fatalf("slide1up with vstart>vl returned %v", code)
	}
	if !bytes.Equal(vrf, before) {
		t.Error("register file changed by a vstart>vl slide")
	}
}

func TestSlideAlignment(t *testing.T) {
	vrf := newVRF(testVLEN)
	vt := vtypeFor(t, 16, 2, 1)

	if code := SlideupVI(vrf, vt, false, 4, 3, 1, 0, testVLEN, 4); code != CodeSrc2VecIll {
		t.Errorf("odd slide source returned %v, expected %v", code, CodeSrc2VecIll)
	}
	if code := SlideupVI(vrf, vt, false, 5, 2, 1, 0, testVLEN, 4); code != CodeDstVecIll {
		t.Errorf("odd slide destination returned %v, expected %v", code, CodeDstVecIll)
	}
}

func TestSlide1Up(t *testing.T) {
	vrf := newVRF(testVLEN)
	loadReg(vrf, 16, 2, 0xA0, 0xA1, 0xA2, 0xA3)

	scalar := []byte{0x99, 0x00, 0x00, 0x00}
	code := Slide1Up(vrf, vtypeFor(t, 16, 1, 1), false, 3, 2, scalar, 32, 0, testVLEN, 4)
	if code != CodeNoExcept {
		t.Fatalf("Slide1Up returned %v", code)
	}
	expectElems(t, "vslide1up", readReg(vrf, 16, 3, 4), []uint64{0x99, 0xA0, 0xA1, 0xA2})
}

func TestSlide1Down(t *testing.T) {
	vrf := newVRF(testVLEN)
	loadReg(vrf, 16, 2, 0xA0, 0xA1, 0xA2, 0xA3, 0xA4, 0xA5, 0xA6, 0xA7)

	scalar := []byte{0x99, 0x00, 0x00, 0x00}
	code := Slide1Down(vrf, vtypeFor(t, 16, 1, 1), false, 3, 2, scalar, 32, 0, testVLEN, 8)
	if code != CodeNoExcept {
		t.Fatalf("Slide1Down returned %v", code)
	}
	expectElems(t, "vslide1down", readReg(vrf, 16, 3, 8),
		[]uint64{0xA1, 0xA2, 0xA3, 0xA4, 0xA5, 0xA6, 0xA7, 0x99})
}

func TestMaskedSlide1Up(t *testing.T) {
	vrf := newVRF(testVLEN)
	vrf[0] = 0xFE // element 0 masked off
	loadReg(vrf, 16, 2, 0xA0, 0xA1, 0xA2, 0xA3)
	loadReg(vrf, 16, 3, 0xE0, 0xE1, 0xE2, 0xE3)

	scalar := []byte{0x99, 0x00, 0x00, 0x00}
	code := Slide1Up(vrf, vtypeFor(t, 16, 1, 1), true, 3, 2, scalar, 32, 0, testVLEN, 4)
	if code != CodeNoExcept {
		t.Fatalf("masked Slide1Up returned %v", code)
	}
	// the scalar write at element 0 respects the mask
	expectElems(t, "masked vslide1up", readReg(vrf, 16, 3, 4),
		[]uint64{0xE0, 0xA0, 0xA1, 0xA2})
}

func TestMaskedSlide1Down(t *testing.T) {
	vrf := newVRF(testVLEN)
	vrf[0] = 0x07 // element 3 masked off
	loadReg(vrf, 16, 2, 0xA0, 0xA1, 0xA2, 0xA3)
	loadReg(vrf, 16, 3, 0xE0, 0xE1, 0xE2, 0xE3)

	scalar := []byte{0x99, 0x00, 0x00, 0x00}
	code := Slide1Down(vrf, vtypeFor(t, 16, 1, 1), true, 3, 2, scalar, 32, 0, testVLEN, 4)
	if code != CodeNoExcept {
		t.Fatalf("masked Slide1Down returned %v", code)
	}
	// the scalar write at element vl-1 respects the mask
	expectElems(t, "masked vslide1down", readReg(vrf, 16, 3, 4),
		[]uint64{0xA1, 0xA2, 0xA3, 0xE3})
}

func TestMvXS(t *testing.T) {
	vrf := newVRF(testVLEN)
	loadReg(vrf, 16, 2, 0x8001, 0x1234)

	// sign-extended when the scalar is wider than SEW
	scalar := make([]byte, 4)
	if code := MvXS(vrf, vtypeFor(t, 16, 1, 1), 2, scalar, 32, testVLEN, 2); code != CodeNoExcept {
		t.Fatalf("MvXS returned %v", code)
	}
	if !bytes.Equal(scalar, []byte{0x01, 0x80, 0xFF, 0xFF}) {
		t.Errorf("MvXS scalar = % X, expected 01 80 FF FF", scalar)
	}

	// truncated when the scalar is narrower than SEW
	vrf2 := newVRF(testVLEN)
	loadReg(vrf2, 64, 1, 0x1122334455667788)
	scalar = make([]byte, 4)
	if code := MvXS(vrf2, vtypeFor(t, 64, 1, 1), 1, scalar, 32, testVLEN, 1); code != CodeNoExcept {
		t.Fatalf("MvXS returned %v", code)
	}
	if !bytes.Equal(scalar, []byte{0x88, 0x77, 0x66, 0x55}) {
		t.Errorf("MvXS truncated scalar = % X, expected 88 77 66 55", scalar)
	}
}

func TestMvSX(t *testing.T) {
	vrf := newVRF(testVLEN)
	loadReg(vrf, 64, 2, 0xAAAAAAAAAAAAAAAA, 0xBBBBBBBBBBBBBBBB)

	// sign-extended into a wider element; other elements untouched
	scalar := []byte{0x01, 0x80, 0x00, 0x80}
	if code := MvSX(vrf, vtypeFor(t, 64, 1, 1), 2, scalar, 32, 0, testVLEN, 2); code != CodeNoExcept {
		t.Fatalf("MvSX returned %v", code)
	}
	got := readReg(vrf, 64, 2, 2)
	if got[0] != 0xFFFFFFFF80008001 {
		t.Errorf("MvSX element 0 = 0x%016X, expected 0xFFFFFFFF80008001", got[0])
	}
	if got[1] != 0xBBBBBBBBBBBBBBBB {
		t.Errorf("MvSX element 1 = 0x%016X, expected untouched", got[1])
	}
}

func TestMvSXVstartPastVL(t *testing.T) {
	vrf := newVRF(testVLEN)
	before := append([]byte(nil), vrf...)

	code := MvSX(vrf, vtypeFor(t, 16, 1, 1), 2, []byte{0x01, 0x00, 0x00, 0x00}, 32, 9, testVLEN, 8)
	if code != CodeNoExcept {
		t.Fatalf("MvSX with vstart>vl returned %v", code)
	}
	if !bytes.Equal(vrf, before) {
		t.Error("register file changed by a vstart>vl vmv.s.x")
	}
}

func TestFloatingPointFamilyRejected(t *testing.T) {
	vrf := newVRF(testVLEN)
	scalar := make([]byte, 8)
	vt := vtypeFor(t, 32, 1, 1)

	if code := FmvFS(vrf, vt, 2, scalar, 64, testVLEN, 4); code != CodeCfgIll {
		t.Errorf("FmvFS returned %v, expected %v", code, CodeCfgIll)
	}
	if code := FmvSF(vrf, vt, 2, scalar, 64, 0, testVLEN, 4); code != CodeCfgIll {
		t.Errorf("FmvSF returned %v, expected %v", code, CodeCfgIll)
	}
	if code := Fslide1Up(vrf, vt, false, 3, 2, scalar, 64, 0, testVLEN, 4); code != CodeCfgIll {
		t.Errorf("Fslide1Up returned %v, expected %v", code, CodeCfgIll)
	}
	if code := Fslide1Down(vrf, vt, false, 3, 2, scalar, 64, 0, testVLEN, 4); code != CodeCfgIll {
		t.Errorf("Fslide1Down returned %v, expected %v", code, CodeCfgIll)
	}
}
