package vpu

import (
	"bytes"
	"testing"
)

const testVLEN = 128 // bits per register throughout the opcode tests

// vtypeFor encodes a VTYPE word for the common test configurations
func vtypeFor(t *testing.T, sew, z, n int) uint16 {
	t.Helper()
	return EncodeVType(sew, z, n, false, false)
}

// loadReg fills architectural register r with little-endian elements
func loadReg(vrf []byte, sew, r int, vals ...uint64) {
	f := NewRegField(vrf, testVLEN, len(vals), sew, Mul{1, 1})
	v := f.Vec(r)
	for i, x := range vals {
		v.Elem(i).AssignUint(x)
	}
}

// readReg reads vl little-endian elements back from register r
func readReg(vrf []byte, sew, r, vl int) []uint64 {
	f := NewRegField(vrf, testVLEN, vl, sew, Mul{1, 1})
	v := f.Vec(r)
	out := make([]uint64, vl)
	for i := range out {
		out[i] = elemUint(v, i)
	}
	return out
}

func expectElems(t *testing.T, name string, got, expected []uint64) {
	t.Helper()
	for i := range expected {
		if got[i] != expected[i] {
			t.Errorf("%s element %d = 0x%X, expected 0x%X", name, i, got[i], expected[i])
		}
	}
}

// Scenario: add_vv, SEW=32, LMUL=1, VL=4, unmasked
func TestAddVV(t *testing.T) {
	vrf := newVRF(testVLEN)
	loadReg(vrf, 32, 1, 0x00000001, 0x00000002, 0x00000003, 0x00000004)
	loadReg(vrf, 32, 2, 0x0000000A, 0x00000014, 0x0000001E, 0x00000028)

	code := AddVV(vrf, vtypeFor(t, 32, 1, 1), false, 3, 1, 2, 0, testVLEN, 4)
	if code != CodeNoExcept {
		t.Fatalf("AddVV returned %v", code)
	}
	expectElems(t, "vadd.vv", readReg(vrf, 32, 3, 4),
		[]uint64{0x0000000B, 0x00000016, 0x00000021, 0x0000002C})
}

// Scenario: sll_vi, SEW=16, VL=8, imm=3, unmasked
func TestSllVI(t *testing.T) {
	vrf := newVRF(testVLEN)
	loadReg(vrf, 16, 2, 0x0001, 0x0002, 0x0004, 0x8000, 0x00FF, 0xFFFF, 0x0008, 0x0010)

	code := SllVI(vrf, vtypeFor(t, 16, 1, 1), false, 3, 2, 3, 0, testVLEN, 8)
	if code != CodeNoExcept {
		t.Fatalf("SllVI returned %v", code)
	}
	expectElems(t, "vsll.vi", readReg(vrf, 16, 3, 8),
		[]uint64{0x0008, 0x0010, 0x0020, 0x0000, 0x07F8, 0xFFF8, 0x0040, 0x0080})
}

// Scenario: masked add_vv, SEW=8, VL=8, vm=1
func TestMaskedAddVV(t *testing.T) {
	vrf := newVRF(testVLEN)
	vrf[0] = 0xAD // mask bits 10110101, element 0 first
	loadReg(vrf, 8, 1, 0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08)
	loadReg(vrf, 8, 2, 0x10, 0x20, 0x30, 0x40, 0x50, 0x60, 0x70, 0x80)
	loadReg(vrf, 8, 3, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF)

	code := AddVV(vrf, vtypeFor(t, 8, 1, 1), true, 3, 1, 2, 0, testVLEN, 8)
	if code != CodeNoExcept {
		t.Fatalf("masked AddVV returned %v", code)
	}
	expectElems(t, "masked vadd.vv", readReg(vrf, 8, 3, 8),
		[]uint64{0x11, 0xFF, 0x33, 0x44, 0xFF, 0x66, 0xFF, 0x88})
}

// add followed by sub of the same operand restores the original vector
func TestAddSubRoundTrip(t *testing.T) {
	vrf := newVRF(testVLEN)
	a := []uint64{0xFFFFFFFF, 0x80000000, 0x00000001, 0x7FFFFFFF}
	b := []uint64{0x00000001, 0x7FFFFFFF, 0xFFFFFFFF, 0x00000002}
	loadReg(vrf, 32, 1, a...)
	loadReg(vrf, 32, 2, b...)
	vt := vtypeFor(t, 32, 1, 1)

	if code := AddVV(vrf, vt, false, 3, 1, 2, 0, testVLEN, 4); code != CodeNoExcept {
		t.Fatalf("AddVV returned %v", code)
	}
	// vd = vs2 - vs1: subtract a (v1) from the sum, leaving b
	if code := SubVV(vrf, vt, false, 4, 1, 3, 0, testVLEN, 4); code != CodeNoExcept {
		t.Fatalf("SubVV returned %v", code)
	}
	expectElems(t, "add-sub round trip", readReg(vrf, 32, 4, 4), b)
}

func TestSubVVOperandOrder(t *testing.T) {
	vrf := newVRF(testVLEN)
	loadReg(vrf, 8, 1, 3)  // vs1: subtrahend
	loadReg(vrf, 8, 2, 10) // vs2: minuend

	if code := SubVV(vrf, vtypeFor(t, 8, 1, 1), false, 3, 1, 2, 0, testVLEN, 1); code != CodeNoExcept {
		t.Fatalf("SubVV returned %v", code)
	}
	if got := readReg(vrf, 8, 3, 1)[0]; got != 7 {
		t.Errorf("vsub.vv = %d, expected vs2-vs1 = 7", got)
	}
}

func TestRsubVI(t *testing.T) {
	vrf := newVRF(testVLEN)
	loadReg(vrf, 8, 2, 3, 10, 0)

	if code := RsubVI(vrf, vtypeFor(t, 8, 1, 1), false, 3, 2, 5, 0, testVLEN, 3); code != CodeNoExcept {
		t.Fatalf("RsubVI returned %v", code)
	}
	expectElems(t, "vrsub.vi", readReg(vrf, 8, 3, 3), []uint64{2, 0xFB, 5})
}

func TestImmediateSignExtension(t *testing.T) {
	vrf := newVRF(testVLEN)
	loadReg(vrf, 16, 2, 0x0000, 0x0100)

	// imm 0x1F is -1 after sign extension
	if code := AddVI(vrf, vtypeFor(t, 16, 1, 1), false, 3, 2, 0x1F, 0, testVLEN, 2); code != CodeNoExcept {
		t.Fatalf("AddVI returned %v", code)
	}
	expectElems(t, "vadd.vi -1", readReg(vrf, 16, 3, 2), []uint64{0xFFFF, 0x00FF})
}

func TestScalarOperands(t *testing.T) {
	vrf := newVRF(testVLEN)
	loadReg(vrf, 16, 2, 0x0001, 0x8000)

	// 32-bit scalar -2, sign-extended and truncated to SEW
	scalar := []byte{0xFE, 0xFF, 0xFF, 0xFF}
	if code := AddVX(vrf, vtypeFor(t, 16, 1, 1), false, 3, 2, scalar, 32, 0, testVLEN, 2); code != CodeNoExcept {
		t.Fatalf("AddVX returned %v", code)
	}
	expectElems(t, "vadd.vx -2", readReg(vrf, 16, 3, 2), []uint64{0xFFFF, 0x7FFE})

	// shift amount comes from the scalar modulo SEW
	scalar = []byte{0x11, 0x00, 0x00, 0x00} // 17 -> 1 at SEW=16
	if code := SllVX(vrf, vtypeFor(t, 16, 1, 1), false, 4, 2, scalar, 32, 0, testVLEN, 2); code != CodeNoExcept {
		t.Fatalf("SllVX returned %v", code)
	}
	expectElems(t, "vsll.vx 17", readReg(vrf, 16, 4, 2), []uint64{0x0002, 0x0000})
}

func TestLogicOps(t *testing.T) {
	vrf := newVRF(testVLEN)
	loadReg(vrf, 8, 1, 0x0F, 0xF0, 0xFF)
	loadReg(vrf, 8, 2, 0x3C, 0x3C, 0x00)
	vt := vtypeFor(t, 8, 1, 1)

	AndVV(vrf, vt, false, 3, 1, 2, 0, testVLEN, 3)
	expectElems(t, "vand.vv", readReg(vrf, 8, 3, 3), []uint64{0x0C, 0x30, 0x00})

	OrVV(vrf, vt, false, 3, 1, 2, 0, testVLEN, 3)
	expectElems(t, "vor.vv", readReg(vrf, 8, 3, 3), []uint64{0x3F, 0xFC, 0xFF})

	XorVV(vrf, vt, false, 3, 1, 2, 0, testVLEN, 3)
	expectElems(t, "vxor.vv", readReg(vrf, 8, 3, 3), []uint64{0x33, 0xCC, 0xFF})
}

// Scenario: widening wadd_vv signed, SEW=8 -> 16, VL=4
func TestWopVVSigned(t *testing.T) {
	vrf := newVRF(testVLEN)
	loadReg(vrf, 8, 1, 0x7F, 0xFF, 0x01, 0x80)
	loadReg(vrf, 8, 2, 0x02, 0x02, 0x02, 0x02)

	code := WopVV(vrf, vtypeFor(t, 8, 1, 1), false, 4, 1, 2, 0, testVLEN, 4, true, true)
	if code != CodeNoExcept {
		t.Fatalf("WopVV returned %v", code)
	}
	expectElems(t, "vwadd.vv", readReg(vrf, 16, 4, 4),
		[]uint64{0x0081, 0x0001, 0x0003, 0xFF82})
}

func TestWopVVUnsigned(t *testing.T) {
	vrf := newVRF(testVLEN)
	loadReg(vrf, 8, 1, 0xFF, 0x01)
	loadReg(vrf, 8, 2, 0xFF, 0xFF)

	code := WopVV(vrf, vtypeFor(t, 8, 1, 1), false, 4, 1, 2, 0, testVLEN, 2, true, false)
	if code != CodeNoExcept {
		t.Fatalf("WopVV returned %v", code)
	}
	expectElems(t, "vwaddu.vv", readReg(vrf, 16, 4, 2), []uint64{0x01FE, 0x0100})
}

func TestWopVVOverlapRejected(t *testing.T) {
	vrf := newVRF(testVLEN)
	vt := vtypeFor(t, 8, 1, 1)

	// destination group [v2,v3] overlaps vs2=v2
	if code := WopVV(vrf, vt, false, 2, 4, 2, 0, testVLEN, 4, true, true); code != CodeWideningOverlapVdVs2Ill {
		t.Errorf("overlap vd/vs2 returned %v, expected %v", code, CodeWideningOverlapVdVs2Ill)
	}
	// destination group [v2,v3] overlaps vs1=v2
	if code := WopVV(vrf, vt, false, 2, 2, 5, 0, testVLEN, 4, true, true); code != CodeWideningOverlapVdVs1Ill {
		t.Errorf("overlap vd/vs1 returned %v, expected %v", code, CodeWideningOverlapVdVs1Ill)
	}
	// no write happened on the rejected calls
	if !bytes.Equal(vrf, newVRF(testVLEN)) {
		t.Error("register file mutated by rejected widening op")
	}
}

func TestWideningAlignment(t *testing.T) {
	vrf := newVRF(testVLEN)
	vt := vtypeFor(t, 8, 1, 1)

	// LMUL=1 sources are unconstrained but the 2x destination group must be even
	if code := WopVV(vrf, vt, false, 5, 1, 2, 0, testVLEN, 4, true, true); code != CodeDstVecIll {
		t.Errorf("odd widening destination returned %v, expected %v", code, CodeDstVecIll)
	}
}

func TestAlignmentChecksLMUL2(t *testing.T) {
	vrf := newVRF(testVLEN)
	vt := vtypeFor(t, 8, 2, 1)

	tests := []struct {
		name           string
		vd, vs1, vs2   int
		expected       Code
	}{
		{"vs1 odd", 4, 1, 6, CodeSrc1VecIll},
		{"vs2 odd", 4, 2, 7, CodeSrc2VecIll},
		{"vd odd", 5, 2, 6, CodeDstVecIll},
		{"all aligned", 4, 2, 6, CodeNoExcept},
	}
	for _, tt := range tests {
		if code := AddVV(vrf, vt, false, tt.vd, tt.vs1, tt.vs2, 0, testVLEN, 4); code != tt.expected {
			t.Errorf("%s: AddVV returned %v, expected %v", tt.name, code, tt.expected)
		}
	}
}

func TestReservedLMULRejected(t *testing.T) {
	vrf := newVRF(testVLEN)
	if code := AddVV(vrf, 0x0004, false, 3, 1, 2, 0, testVLEN, 4); code != CodeCfgIll {
		t.Errorf("reserved LMUL returned %v, expected %v", code, CodeCfgIll)
	}
}

func TestBytesOutsideDestinationUntouched(t *testing.T) {
	vrf := newVRF(testVLEN)
	for i := range vrf {
		vrf[i] = 0x5A
	}
	loadReg(vrf, 32, 1, 1, 2, 3, 4)
	loadReg(vrf, 32, 2, 5, 6, 7, 8)
	before := append([]byte(nil), vrf...)

	if code := AddVV(vrf, vtypeFor(t, 32, 1, 1), false, 3, 1, 2, 0, testVLEN, 4); code != CodeNoExcept {
		t.Fatalf("AddVV returned %v", code)
	}

	regBytes := testVLEN / 8
	for i := range vrf {
		inDst := i >= 3*regBytes && i < 4*regBytes
		if !inDst && vrf[i] != before[i] {
			t.Fatalf("byte %d outside destination changed: %02X -> %02X", i, before[i], vrf[i])
		}
	}
}

// When every source element fits in SEW, the widened sum truncated back to
// SEW equals the non-widened sum
func TestWidenNarrowConsistency(t *testing.T) {
	vrf := newVRF(testVLEN)
	a := []uint64{0x01, 0x32, 0x05, 0x21}
	b := []uint64{0x02, 0x13, 0x0A, 0x1E}
	loadReg(vrf, 8, 1, a...)
	loadReg(vrf, 8, 2, b...)
	vt := vtypeFor(t, 8, 1, 1)

	if code := AddVV(vrf, vt, false, 3, 1, 2, 0, testVLEN, 4); code != CodeNoExcept {
		t.Fatalf("AddVV returned %v", code)
	}
	if code := WopVV(vrf, vt, false, 4, 1, 2, 0, testVLEN, 4, true, true); code != CodeNoExcept {
		t.Fatalf("WopVV returned %v", code)
	}

	narrow := readReg(vrf, 8, 3, 4)
	widened := readReg(vrf, 16, 4, 4)
	for i := range narrow {
		if widened[i]&0xFF != narrow[i] {
			t.Errorf("element %d: widened 0x%04X does not truncate to 0x%02X", i, widened[i], narrow[i])
		}
		if widened[i]>>8 != 0 {
			t.Errorf("element %d: widened 0x%04X has unexpected high half", i, widened[i])
		}
	}
}

func TestMulOps(t *testing.T) {
	vrf := newVRF(testVLEN)
	loadReg(vrf, 8, 1, 0x02, 0x80, 0xFF, 0x10)
	loadReg(vrf, 8, 2, 0x03, 0x80, 0x02, 0x10)
	vt := vtypeFor(t, 8, 1, 1)

	MulVV(vrf, vt, false, 3, 1, 2, 0, testVLEN, 4)
	expectElems(t, "vmul.vv", readReg(vrf, 8, 3, 4), []uint64{0x06, 0x00, 0xFE, 0x00})

	MulhVV(vrf, vt, false, 3, 1, 2, 0, testVLEN, 4)
	expectElems(t, "vmulh.vv", readReg(vrf, 8, 3, 4), []uint64{0x00, 0x40, 0xFF, 0x01})

	MulhuVV(vrf, vt, false, 3, 1, 2, 0, testVLEN, 4)
	expectElems(t, "vmulhu.vv", readReg(vrf, 8, 3, 4), []uint64{0x00, 0x40, 0x01, 0x01})

	// vmulhsu: vs2 signed, vs1 unsigned
	MulhsuVV(vrf, vt, false, 3, 1, 2, 0, testVLEN, 4)
	expectElems(t, "vmulhsu.vv", readReg(vrf, 8, 3, 4), []uint64{0x00, 0xC0, 0x01, 0x01})
}

func TestCompareToMask(t *testing.T) {
	vrf := newVRF(testVLEN)
	loadReg(vrf, 8, 1, 5, 6, 2, 1)
	loadReg(vrf, 8, 2, 5, 5, 9, 0x80)
	vt := vtypeFor(t, 8, 1, 1)

	if code := MseqVV(vrf, vt, false, 4, 1, 2, 0, testVLEN, 4); code != CodeNoExcept {
		t.Fatalf("MseqVV returned %v", code)
	}
	if vrf[4*16]&0x0F != 0x01 {
		t.Errorf("vmseq mask = %04b, expected 0001", vrf[4*16]&0x0F)
	}

	// vs2 < vs1 signed: 5<5 F, 5<6 T, 9<2 F, -128<1 T
	if code := MsltVV(vrf, vt, false, 4, 1, 2, 0, testVLEN, 4); code != CodeNoExcept {
		t.Fatalf("MsltVV returned %v", code)
	}
	if vrf[4*16]&0x0F != 0x0A {
		t.Errorf("vmslt mask = %04b, expected 1010", vrf[4*16]&0x0F)
	}

	// unsigned: 0x80<1 is false
	if code := MsltuVV(vrf, vt, false, 4, 1, 2, 0, testVLEN, 4); code != CodeNoExcept {
		t.Fatalf("MsltuVV returned %v", code)
	}
	if vrf[4*16]&0x0F != 0x02 {
		t.Errorf("vmsltu mask = %04b, expected 0010", vrf[4*16]&0x0F)
	}

	// the mask register is all-zero above bit VL-1 when it started clean
	if vrf[4*16]&0xF0 != 0 {
		t.Errorf("vmsltu set bits above VL: %08b", vrf[4*16])
	}
}

func TestCompareImmediates(t *testing.T) {
	vrf := newVRF(testVLEN)
	loadReg(vrf, 8, 2, 0xFF, 0x00, 0x01, 0x1F)
	vt := vtypeFor(t, 8, 1, 1)

	// signed: vs2 <= -1
	if code := MsleVI(vrf, vt, false, 4, 2, 0x1F, 0, testVLEN, 4); code != CodeNoExcept {
		t.Fatalf("MsleVI returned %v", code)
	}
	if vrf[4*16]&0x0F != 0x01 {
		t.Errorf("vmsle.vi -1 mask = %04b, expected 0001", vrf[4*16]&0x0F)
	}

	// unsigned: vs2 <= 31
	if code := MsleuVI(vrf, vt, false, 4, 2, 0x1F, 0, testVLEN, 4); code != CodeNoExcept {
		t.Fatalf("MsleuVI returned %v", code)
	}
	if vrf[4*16]&0x0F != 0x0E {
		t.Errorf("vmsleu.vi 31 mask = %04b, expected 1110", vrf[4*16]&0x0F)
	}
}

func TestMvBroadcast(t *testing.T) {
	vrf := newVRF(testVLEN)
	loadReg(vrf, 16, 1, 1, 2, 3, 4)
	vt := vtypeFor(t, 16, 1, 1)

	if code := MvVV(vrf, vt, false, 3, 1, 0, testVLEN, 4); code != CodeNoExcept {
		t.Fatalf("MvVV returned %v", code)
	}
	expectElems(t, "vmv.v.v", readReg(vrf, 16, 3, 4), []uint64{1, 2, 3, 4})

	if code := MvVI(vrf, vt, false, 3, 0x10, 0, testVLEN, 4); code != CodeNoExcept {
		t.Fatalf("MvVI returned %v", code)
	}
	// imm 0x10 sign-extends to -16
	expectElems(t, "vmv.v.i", readReg(vrf, 16, 3, 4), []uint64{0xFFF0, 0xFFF0, 0xFFF0, 0xFFF0})

	scalar := []byte{0x39, 0x05, 0x00, 0x00}
	if code := MvVX(vrf, vt, false, 3, scalar, 32, 0, testVLEN, 4); code != CodeNoExcept {
		t.Fatalf("MvVX returned %v", code)
	}
	expectElems(t, "vmv.v.x", readReg(vrf, 16, 3, 4), []uint64{0x0539, 0x0539, 0x0539, 0x0539})
}
