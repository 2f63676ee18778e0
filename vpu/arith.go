package vpu

// Opcode wrappers for the integer arithmetic, logic, shift, comparison and
// move instructions. Every wrapper follows the same strict phases: decode
// VTYPE, check register-group alignment, build the transient views, run the
// masked element loop from vstart, return a Code. Nothing is written before
// all checks pass.
//
// Operand roles follow the architecture: for subtraction and comparisons
// vs2 is the left-hand operand (vd = vs2 - vs1, vd.bit = vs2 < vs1).
// The vm parameter enables per-bit masking when true.

// scalarInt reads an XLEN-bit scalar register as a signed value
func scalarInt(scalar []byte, xlenBits int) int64 {
	var x uint64
	for i := 0; i < xlenBits/8; i++ {
		x |= uint64(scalar[i]) << (8 * i)
	}
	shift := 64 - uint(xlenBits)
	return int64(x<<shift) >> shift
}

// scalarUint reads an XLEN-bit scalar register as an unsigned value
func scalarUint(scalar []byte, xlenBits int) uint64 {
	var x uint64
	for i := 0; i < xlenBits/8; i++ {
		x |= uint64(scalar[i]) << (8 * i)
	}
	return x
}

// immSigned sign-extends a 5-bit immediate field
func immSigned(imm uint8) int64 {
	if imm&0x10 != 0 {
		return int64(int8(imm | ^uint8(0x1F)))
	}
	return int64(imm & 0x1F)
}

// elemS materializes a signed value as an element of the given width
func elemS(widthBits int, x int64) Element {
	e := newElement(widthBits)
	e.AssignInt(x)
	return e
}

// elemU materializes an unsigned value as an element of the given width
func elemU(widthBits int, x uint64) Element {
	e := newElement(widthBits)
	e.AssignUint(x)
	return e
}

// prepare decodes VTYPE and builds the register-field view for one call
func prepare(vrf []byte, vtype uint16, vlenBits, vl int) (*RegField, Code) {
	vt, err := DecodeVType(vtype)
	if err != nil {
		return nil, CodeCfgIll
	}
	return NewRegField(vrf, vlenBits, vl, vt.SEW, Mul{vt.Z, vt.N}), CodeNoExcept
}

// checkVV checks the source and destination alignment of a vec-vec op in
// the architectural order vs1, vs2, vd
func checkVV(f *RegField, vd, vs1, vs2 int) Code {
	switch {
	case !f.RegIsAligned(vs1):
		return CodeSrc1VecIll
	case !f.RegIsAligned(vs2):
		return CodeSrc2VecIll
	case !f.RegIsAligned(vd):
		return CodeDstVecIll
	default:
		return CodeNoExcept
	}
}

// checkVX checks the source and destination alignment of a vec-scalar or
// vec-imm op
func checkVX(f *RegField, vd, vs2 int) Code {
	switch {
	case !f.RegIsAligned(vs2):
		return CodeSrc2VecIll
	case !f.RegIsAligned(vd):
		return CodeDstVecIll
	default:
		return CodeNoExcept
	}
}

// AddVV executes vadd.vv: vd[i] = vs2[i] + vs1[i]
func AddVV(vrf []byte, vtype uint16, vm bool, vd, vs1, vs2, vstart, vlenBits, vl int) Code {
	f, code := prepare(vrf, vtype, vlenBits, vl)
	if code != CodeNoExcept {
		return code
	}
	if code := checkVV(f, vd, vs1, vs2); code != CodeNoExcept {
		return code
	}
	f.Vec(vd).MAdd(f.Vec(vs2), f.Vec(vs1), f.MaskReg(), vm, vstart)
	return CodeNoExcept
}

// AddVI executes vadd.vi: vd[i] = vs2[i] + sext(imm5)
func AddVI(vrf []byte, vtype uint16, vm bool, vd, vs2 int, imm uint8, vstart, vlenBits, vl int) Code {
	f, code := prepare(vrf, vtype, vlenBits, vl)
	if code != CodeNoExcept {
		return code
	}
	if code := checkVX(f, vd, vs2); code != CodeNoExcept {
		return code
	}
	f.Vec(vd).MAddX(f.Vec(vs2), elemS(f.SEW, immSigned(imm)), f.MaskReg(), vm, vstart)
	return CodeNoExcept
}

// AddVX executes vadd.vx: vd[i] = vs2[i] + sext(x)
func AddVX(vrf []byte, vtype uint16, vm bool, vd, vs2 int, scalar []byte, xlenBits, vstart, vlenBits, vl int) Code {
	f, code := prepare(vrf, vtype, vlenBits, vl)
	if code != CodeNoExcept {
		return code
	}
	if code := checkVX(f, vd, vs2); code != CodeNoExcept {
		return code
	}
	f.Vec(vd).MAddX(f.Vec(vs2), elemS(f.SEW, scalarInt(scalar, xlenBits)), f.MaskReg(), vm, vstart)
	return CodeNoExcept
}

// SubVV executes vsub.vv: vd[i] = vs2[i] - vs1[i]
func SubVV(vrf []byte, vtype uint16, vm bool, vd, vs1, vs2, vstart, vlenBits, vl int) Code {
	f, code := prepare(vrf, vtype, vlenBits, vl)
	if code != CodeNoExcept {
		return code
	}
	if code := checkVV(f, vd, vs1, vs2); code != CodeNoExcept {
		return code
	}
	f.Vec(vd).MSub(f.Vec(vs2), f.Vec(vs1), f.MaskReg(), vm, vstart)
	return CodeNoExcept
}

// SubVX executes vsub.vx: vd[i] = vs2[i] - sext(x)
func SubVX(vrf []byte, vtype uint16, vm bool, vd, vs2 int, scalar []byte, xlenBits, vstart, vlenBits, vl int) Code {
	f, code := prepare(vrf, vtype, vlenBits, vl)
	if code != CodeNoExcept {
		return code
	}
	if code := checkVX(f, vd, vs2); code != CodeNoExcept {
		return code
	}
	f.Vec(vd).MSubX(f.Vec(vs2), elemS(f.SEW, scalarInt(scalar, xlenBits)), f.MaskReg(), vm, vstart)
	return CodeNoExcept
}

// RsubVI executes vrsub.vi: vd[i] = sext(imm5) - vs2[i]
func RsubVI(vrf []byte, vtype uint16, vm bool, vd, vs2 int, imm uint8, vstart, vlenBits, vl int) Code {
	f, code := prepare(vrf, vtype, vlenBits, vl)
	if code != CodeNoExcept {
		return code
	}
	if code := checkVX(f, vd, vs2); code != CodeNoExcept {
		return code
	}
	f.Vec(vd).MRsubX(f.Vec(vs2), elemS(f.SEW, immSigned(imm)), f.MaskReg(), vm, vstart)
	return CodeNoExcept
}

// RsubVX executes vrsub.vx: vd[i] = sext(x) - vs2[i]
func RsubVX(vrf []byte, vtype uint16, vm bool, vd, vs2 int, scalar []byte, xlenBits, vstart, vlenBits, vl int) Code {
	f, code := prepare(vrf, vtype, vlenBits, vl)
	if code != CodeNoExcept {
		return code
	}
	if code := checkVX(f, vd, vs2); code != CodeNoExcept {
		return code
	}
	f.Vec(vd).MRsubX(f.Vec(vs2), elemS(f.SEW, scalarInt(scalar, xlenBits)), f.MaskReg(), vm, vstart)
	return CodeNoExcept
}

// AndVV executes vand.vv
func AndVV(vrf []byte, vtype uint16, vm bool, vd, vs1, vs2, vstart, vlenBits, vl int) Code {
	f, code := prepare(vrf, vtype, vlenBits, vl)
	if code != CodeNoExcept {
		return code
	}
	if code := checkVV(f, vd, vs1, vs2); code != CodeNoExcept {
		return code
	}
	f.Vec(vd).MAnd(f.Vec(vs2), f.Vec(vs1), f.MaskReg(), vm, vstart)
	return CodeNoExcept
}

// AndVI executes vand.vi
func AndVI(vrf []byte, vtype uint16, vm bool, vd, vs2 int, imm uint8, vstart, vlenBits, vl int) Code {
	f, code := prepare(vrf, vtype, vlenBits, vl)
	if code != CodeNoExcept {
		return code
	}
	if code := checkVX(f, vd, vs2); code != CodeNoExcept {
		return code
	}
	f.Vec(vd).MAndX(f.Vec(vs2), elemS(f.SEW, immSigned(imm)), f.MaskReg(), vm, vstart)
	return CodeNoExcept
}

// AndVX executes vand.vx
func AndVX(vrf []byte, vtype uint16, vm bool, vd, vs2 int, scalar []byte, xlenBits, vstart, vlenBits, vl int) Code {
	f, code := prepare(vrf, vtype, vlenBits, vl)
	if code != CodeNoExcept {
		return code
	}
	if code := checkVX(f, vd, vs2); code != CodeNoExcept {
		return code
	}
	f.Vec(vd).MAndX(f.Vec(vs2), elemS(f.SEW, scalarInt(scalar, xlenBits)), f.MaskReg(), vm, vstart)
	return CodeNoExcept
}

// OrVV executes vor.vv
func OrVV(vrf []byte, vtype uint16, vm bool, vd, vs1, vs2, vstart, vlenBits, vl int) Code {
	f, code := prepare(vrf, vtype, vlenBits, vl)
	if code != CodeNoExcept {
		return code
	}
	if code := checkVV(f, vd, vs1, vs2); code != CodeNoExcept {
		return code
	}
	f.Vec(vd).MOr(f.Vec(vs2), f.Vec(vs1), f.MaskReg(), vm, vstart)
	return CodeNoExcept
}

// OrVI executes vor.vi
func OrVI(vrf []byte, vtype uint16, vm bool, vd, vs2 int, imm uint8, vstart, vlenBits, vl int) Code {
	f, code := prepare(vrf, vtype, vlenBits, vl)
	if code != CodeNoExcept {
		return code
	}
	if code := checkVX(f, vd, vs2); code != CodeNoExcept {
		return code
	}
	f.Vec(vd).MOrX(f.Vec(vs2), elemS(f.SEW, immSigned(imm)), f.MaskReg(), vm, vstart)
	return CodeNoExcept
}

// OrVX executes vor.vx
func OrVX(vrf []byte, vtype uint16, vm bool, vd, vs2 int, scalar []byte, xlenBits, vstart, vlenBits, vl int) Code {
	f, code := prepare(vrf, vtype, vlenBits, vl)
	if code != CodeNoExcept {
		return code
	}
	if code := checkVX(f, vd, vs2); code != CodeNoExcept {
		return code
	}
	f.Vec(vd).MOrX(f.Vec(vs2), elemS(f.SEW, scalarInt(scalar, xlenBits)), f.MaskReg(), vm, vstart)
	return CodeNoExcept
}

// XorVV executes vxor.vv
func XorVV(vrf []byte, vtype uint16, vm bool, vd, vs1, vs2, vstart, vlenBits, vl int) Code {
	f, code := prepare(vrf, vtype, vlenBits, vl)
	if code != CodeNoExcept {
		return code
	}
	if code := checkVV(f, vd, vs1, vs2); code != CodeNoExcept {
		return code
	}
	f.Vec(vd).MXor(f.Vec(vs2), f.Vec(vs1), f.MaskReg(), vm, vstart)
	return CodeNoExcept
}

// XorVI executes vxor.vi
func XorVI(vrf []byte, vtype uint16, vm bool, vd, vs2 int, imm uint8, vstart, vlenBits, vl int) Code {
	f, code := prepare(vrf, vtype, vlenBits, vl)
	if code != CodeNoExcept {
		return code
	}
	if code := checkVX(f, vd, vs2); code != CodeNoExcept {
		return code
	}
	f.Vec(vd).MXorX(f.Vec(vs2), elemS(f.SEW, immSigned(imm)), f.MaskReg(), vm, vstart)
	return CodeNoExcept
}

// XorVX executes vxor.vx
func XorVX(vrf []byte, vtype uint16, vm bool, vd, vs2 int, scalar []byte, xlenBits, vstart, vlenBits, vl int) Code {
	f, code := prepare(vrf, vtype, vlenBits, vl)
	if code != CodeNoExcept {
		return code
	}
	if code := checkVX(f, vd, vs2); code != CodeNoExcept {
		return code
	}
	f.Vec(vd).MXorX(f.Vec(vs2), elemS(f.SEW, scalarInt(scalar, xlenBits)), f.MaskReg(), vm, vstart)
	return CodeNoExcept
}

// SllVV executes vsll.vv; the shift count is the low log2(SEW) bits of vs1
func SllVV(vrf []byte, vtype uint16, vm bool, vd, vs1, vs2, vstart, vlenBits, vl int) Code {
	f, code := prepare(vrf, vtype, vlenBits, vl)
	if code != CodeNoExcept {
		return code
	}
	if code := checkVV(f, vd, vs1, vs2); code != CodeNoExcept {
		return code
	}
	f.Vec(vd).MSll(f.Vec(vs2), f.Vec(vs1), f.MaskReg(), vm, vstart)
	return CodeNoExcept
}

// SllVI executes vsll.vi; the immediate is zero-extended
func SllVI(vrf []byte, vtype uint16, vm bool, vd, vs2 int, imm uint8, vstart, vlenBits, vl int) Code {
	f, code := prepare(vrf, vtype, vlenBits, vl)
	if code != CodeNoExcept {
		return code
	}
	if code := checkVX(f, vd, vs2); code != CodeNoExcept {
		return code
	}
	f.Vec(vd).MSllX(f.Vec(vs2), shiftAmount(f.SEW, uint64(imm&0x1F)), f.MaskReg(), vm, vstart)
	return CodeNoExcept
}

// SllVX executes vsll.vx
func SllVX(vrf []byte, vtype uint16, vm bool, vd, vs2 int, scalar []byte, xlenBits, vstart, vlenBits, vl int) Code {
	f, code := prepare(vrf, vtype, vlenBits, vl)
	if code != CodeNoExcept {
		return code
	}
	if code := checkVX(f, vd, vs2); code != CodeNoExcept {
		return code
	}
	f.Vec(vd).MSllX(f.Vec(vs2), shiftAmount(f.SEW, scalarUint(scalar, xlenBits)), f.MaskReg(), vm, vstart)
	return CodeNoExcept
}

// SrlVV executes vsrl.vv
func SrlVV(vrf []byte, vtype uint16, vm bool, vd, vs1, vs2, vstart, vlenBits, vl int) Code {
	f, code := prepare(vrf, vtype, vlenBits, vl)
	if code != CodeNoExcept {
		return code
	}
	if code := checkVV(f, vd, vs1, vs2); code != CodeNoExcept {
		return code
	}
	f.Vec(vd).MSrl(f.Vec(vs2), f.Vec(vs1), f.MaskReg(), vm, vstart)
	return CodeNoExcept
}

// SrlVI executes vsrl.vi
func SrlVI(vrf []byte, vtype uint16, vm bool, vd, vs2 int, imm uint8, vstart, vlenBits, vl int) Code {
	f, code := prepare(vrf, vtype, vlenBits, vl)
	if code != CodeNoExcept {
		return code
	}
	if code := checkVX(f, vd, vs2); code != CodeNoExcept {
		return code
	}
	f.Vec(vd).MSrlX(f.Vec(vs2), shiftAmount(f.SEW, uint64(imm&0x1F)), f.MaskReg(), vm, vstart)
	return CodeNoExcept
}

// SrlVX executes vsrl.vx
func SrlVX(vrf []byte, vtype uint16, vm bool, vd, vs2 int, scalar []byte, xlenBits, vstart, vlenBits, vl int) Code {
	f, code := prepare(vrf, vtype, vlenBits, vl)
	if code != CodeNoExcept {
		return code
	}
	if code := checkVX(f, vd, vs2); code != CodeNoExcept {
		return code
	}
	f.Vec(vd).MSrlX(f.Vec(vs2), shiftAmount(f.SEW, scalarUint(scalar, xlenBits)), f.MaskReg(), vm, vstart)
	return CodeNoExcept
}

// SraVV executes vsra.vv
func SraVV(vrf []byte, vtype uint16, vm bool, vd, vs1, vs2, vstart, vlenBits, vl int) Code {
	f, code := prepare(vrf, vtype, vlenBits, vl)
	if code != CodeNoExcept {
		return code
	}
	if code := checkVV(f, vd, vs1, vs2); code != CodeNoExcept {
		return code
	}
	f.Vec(vd).MSra(f.Vec(vs2), f.Vec(vs1), f.MaskReg(), vm, vstart)
	return CodeNoExcept
}

// SraVI executes vsra.vi
func SraVI(vrf []byte, vtype uint16, vm bool, vd, vs2 int, imm uint8, vstart, vlenBits, vl int) Code {
	f, code := prepare(vrf, vtype, vlenBits, vl)
	if code != CodeNoExcept {
		return code
	}
	if code := checkVX(f, vd, vs2); code != CodeNoExcept {
		return code
	}
	f.Vec(vd).MSraX(f.Vec(vs2), shiftAmount(f.SEW, uint64(imm&0x1F)), f.MaskReg(), vm, vstart)
	return CodeNoExcept
}

// SraVX executes vsra.vx
func SraVX(vrf []byte, vtype uint16, vm bool, vd, vs2 int, scalar []byte, xlenBits, vstart, vlenBits, vl int) Code {
	f, code := prepare(vrf, vtype, vlenBits, vl)
	if code != CodeNoExcept {
		return code
	}
	if code := checkVX(f, vd, vs2); code != CodeNoExcept {
		return code
	}
	f.Vec(vd).MSraX(f.Vec(vs2), shiftAmount(f.SEW, scalarUint(scalar, xlenBits)), f.MaskReg(), vm, vstart)
	return CodeNoExcept
}

// WopVV executes the widening vec-vec add/sub family (vwadd.vv, vwsub.vv,
// vwaddu.vv, vwsubu.vv): vd at 2*SEW with doubled multiplicity receives the
// extended sum or difference of the narrow sources. The destination group
// must not share bytes with either source.
func WopVV(vrf []byte, vtype uint16, vm bool, vd, vs1, vs2, vstart, vlenBits, vl int, add, signed bool) Code {
	f, code := prepare(vrf, vtype, vlenBits, vl)
	if code != CodeNoExcept {
		return code
	}
	switch {
	case !f.RegIsAligned(vs1):
		return CodeSrc1VecIll
	case !f.RegIsAligned(vs2):
		return CodeSrc2VecIll
	}
	fd := NewRegField(vrf, vlenBits, vl, 2*f.SEW, Mul{2 * f.Mul.Z, f.Mul.N})
	if !fd.RegIsAligned(vd) {
		return CodeDstVecIll
	}

	dst, vs1v, vs2v := fd.Vec(vd), f.Vec(vs1), f.Vec(vs2)
	if Overlap(dst, vs2v) != 0 {
		return CodeWideningOverlapVdVs2Ill
	}
	if Overlap(dst, vs1v) != 0 {
		return CodeWideningOverlapVdVs1Ill
	}

	switch {
	case add && signed:
		dst.MWadd(vs2v, vs1v, f.MaskReg(), vm, vstart)
	case add:
		dst.MWaddU(vs2v, vs1v, f.MaskReg(), vm, vstart)
	case signed:
		dst.MWsub(vs2v, vs1v, f.MaskReg(), vm, vstart)
	default:
		dst.MWsubU(vs2v, vs1v, f.MaskReg(), vm, vstart)
	}
	return CodeNoExcept
}

// WopVX executes the widening vec-scalar add/sub family: the scalar is
// truncated to SEW and then extended like a narrow element
func WopVX(vrf []byte, vtype uint16, vm bool, vd, vs2 int, scalar []byte, xlenBits, vstart, vlenBits, vl int, add, signed bool) Code {
	f, code := prepare(vrf, vtype, vlenBits, vl)
	if code != CodeNoExcept {
		return code
	}
	if !f.RegIsAligned(vs2) {
		return CodeSrc2VecIll
	}
	fd := NewRegField(vrf, vlenBits, vl, 2*f.SEW, Mul{2 * f.Mul.Z, f.Mul.N})
	if !fd.RegIsAligned(vd) {
		return CodeDstVecIll
	}

	dst, vs2v := fd.Vec(vd), f.Vec(vs2)
	if Overlap(dst, vs2v) != 0 {
		return CodeWideningOverlapVdVs2Ill
	}

	x := elemS(f.SEW, scalarInt(scalar, xlenBits))
	switch {
	case add && signed:
		dst.MWaddX(vs2v, x, f.MaskReg(), vm, vstart)
	case add:
		dst.MWaddUX(vs2v, x, f.MaskReg(), vm, vstart)
	case signed:
		dst.MWsubX(vs2v, x, f.MaskReg(), vm, vstart)
	default:
		dst.MWsubUX(vs2v, x, f.MaskReg(), vm, vstart)
	}
	return CodeNoExcept
}

// WopWV executes the wide-plus-narrow family (vwadd.wv etc.): vs2 is
// already a wide group, vs1 is narrow
func WopWV(vrf []byte, vtype uint16, vm bool, vd, vs1, vs2, vstart, vlenBits, vl int, add, signed bool) Code {
	f, code := prepare(vrf, vtype, vlenBits, vl)
	if code != CodeNoExcept {
		return code
	}
	if !f.RegIsAligned(vs1) {
		return CodeSrc1VecIll
	}
	fd := NewRegField(vrf, vlenBits, vl, 2*f.SEW, Mul{2 * f.Mul.Z, f.Mul.N})
	switch {
	case !fd.RegIsAligned(vd):
		return CodeDstVecIll
	case !fd.RegIsAligned(vs2):
		return CodeSrc2VecIll
	}

	dst, vs1v, vs2v := fd.Vec(vd), f.Vec(vs1), fd.Vec(vs2)
	if Overlap(dst, vs2v) != 0 {
		return CodeWideningOverlapVdVs2Ill
	}
	if Overlap(dst, vs1v) != 0 {
		return CodeWideningOverlapVdVs1Ill
	}

	switch {
	case add && signed:
		dst.MWadd(vs2v, vs1v, f.MaskReg(), vm, vstart)
	case add:
		dst.MWaddU(vs2v, vs1v, f.MaskReg(), vm, vstart)
	case signed:
		dst.MWsub(vs2v, vs1v, f.MaskReg(), vm, vstart)
	default:
		dst.MWsubU(vs2v, vs1v, f.MaskReg(), vm, vstart)
	}
	return CodeNoExcept
}

// WopWX executes the wide-plus-scalar family (vwadd.wx etc.)
func WopWX(vrf []byte, vtype uint16, vm bool, vd, vs2 int, scalar []byte, xlenBits, vstart, vlenBits, vl int, add, signed bool) Code {
	vt, err := DecodeVType(vtype)
	if err != nil {
		return CodeCfgIll
	}
	fd := NewRegField(vrf, vlenBits, vl, 2*vt.SEW, Mul{2 * vt.Z, vt.N})
	switch {
	case !fd.RegIsAligned(vd):
		return CodeDstVecIll
	case !fd.RegIsAligned(vs2):
		return CodeSrc2VecIll
	}

	dst, vs2v := fd.Vec(vd), fd.Vec(vs2)
	if Overlap(dst, vs2v) != 0 {
		return CodeWideningOverlapVdVs2Ill
	}

	x := elemS(vt.SEW, scalarInt(scalar, xlenBits))
	switch {
	case add && signed:
		dst.MWaddX(vs2v, x, fd.MaskReg(), vm, vstart)
	case add:
		dst.MWaddUX(vs2v, x, fd.MaskReg(), vm, vstart)
	case signed:
		dst.MWsubX(vs2v, x, fd.MaskReg(), vm, vstart)
	default:
		dst.MWsubUX(vs2v, x, fd.MaskReg(), vm, vstart)
	}
	return CodeNoExcept
}

// MulVV executes vmul.vv: signed low-half product
func MulVV(vrf []byte, vtype uint16, vm bool, vd, vs1, vs2, vstart, vlenBits, vl int) Code {
	return mulVV(vrf, vtype, vm, vd, vs1, vs2, vstart, vlenBits, vl, mulSS, false)
}

// MulhVV executes vmulh.vv: signed high-half product
func MulhVV(vrf []byte, vtype uint16, vm bool, vd, vs1, vs2, vstart, vlenBits, vl int) Code {
	return mulVV(vrf, vtype, vm, vd, vs1, vs2, vstart, vlenBits, vl, mulSS, true)
}

// MulhuVV executes vmulhu.vv: unsigned high-half product
func MulhuVV(vrf []byte, vtype uint16, vm bool, vd, vs1, vs2, vstart, vlenBits, vl int) Code {
	return mulVV(vrf, vtype, vm, vd, vs1, vs2, vstart, vlenBits, vl, mulUU, true)
}

// MulhsuVV executes vmulhsu.vv: signed vs2 times unsigned vs1, high half
func MulhsuVV(vrf []byte, vtype uint16, vm bool, vd, vs1, vs2, vstart, vlenBits, vl int) Code {
	return mulVV(vrf, vtype, vm, vd, vs1, vs2, vstart, vlenBits, vl, mulSU, true)
}

func mulVV(vrf []byte, vtype uint16, vm bool, vd, vs1, vs2, vstart, vlenBits, vl int, kind mulKind, high bool) Code {
	f, code := prepare(vrf, vtype, vlenBits, vl)
	if code != CodeNoExcept {
		return code
	}
	if code := checkVV(f, vd, vs1, vs2); code != CodeNoExcept {
		return code
	}
	f.Vec(vd).MMul(f.Vec(vs2), f.Vec(vs1), kind, high, f.MaskReg(), vm, vstart)
	return CodeNoExcept
}

// MulVX executes vmul.vx
func MulVX(vrf []byte, vtype uint16, vm bool, vd, vs2 int, scalar []byte, xlenBits, vstart, vlenBits, vl int) Code {
	return mulVX(vrf, vtype, vm, vd, vs2, scalar, xlenBits, vstart, vlenBits, vl, mulSS, false)
}

// MulhVX executes vmulh.vx
func MulhVX(vrf []byte, vtype uint16, vm bool, vd, vs2 int, scalar []byte, xlenBits, vstart, vlenBits, vl int) Code {
	return mulVX(vrf, vtype, vm, vd, vs2, scalar, xlenBits, vstart, vlenBits, vl, mulSS, true)
}

// MulhuVX executes vmulhu.vx
func MulhuVX(vrf []byte, vtype uint16, vm bool, vd, vs2 int, scalar []byte, xlenBits, vstart, vlenBits, vl int) Code {
	return mulVX(vrf, vtype, vm, vd, vs2, scalar, xlenBits, vstart, vlenBits, vl, mulUU, true)
}

// MulhsuVX executes vmulhsu.vx: signed vs2 times unsigned x, high half
func MulhsuVX(vrf []byte, vtype uint16, vm bool, vd, vs2 int, scalar []byte, xlenBits, vstart, vlenBits, vl int) Code {
	return mulVX(vrf, vtype, vm, vd, vs2, scalar, xlenBits, vstart, vlenBits, vl, mulSU, true)
}

func mulVX(vrf []byte, vtype uint16, vm bool, vd, vs2 int, scalar []byte, xlenBits, vstart, vlenBits, vl int, kind mulKind, high bool) Code {
	f, code := prepare(vrf, vtype, vlenBits, vl)
	if code != CodeNoExcept {
		return code
	}
	if code := checkVX(f, vd, vs2); code != CodeNoExcept {
		return code
	}
	var x Element
	if kind == mulSU || kind == mulUU {
		x = elemU(f.SEW, scalarUint(scalar, xlenBits))
	} else {
		x = elemS(f.SEW, scalarInt(scalar, xlenBits))
	}
	f.Vec(vd).MMulX(f.Vec(vs2), x, kind, high, f.MaskReg(), vm, vstart)
	return CodeNoExcept
}

// MseqVV executes vmseq.vv: mask bit i = (vs2[i] == vs1[i])
func MseqVV(vrf []byte, vtype uint16, vm bool, vd, vs1, vs2, vstart, vlenBits, vl int) Code {
	f, code := prepareCmp(vrf, vtype, vlenBits, vl, vs1, vs2)
	if code != CodeNoExcept {
		return code
	}
	f.Reg(vd).MEq(f.Vec(vs2), f.Vec(vs1), f.MaskReg(), vm, vstart)
	return CodeNoExcept
}

// MseqVI executes vmseq.vi
func MseqVI(vrf []byte, vtype uint16, vm bool, vd, vs2 int, imm uint8, vstart, vlenBits, vl int) Code {
	f, code := prepareCmpX(vrf, vtype, vlenBits, vl, vs2)
	if code != CodeNoExcept {
		return code
	}
	f.Reg(vd).MEqX(f.Vec(vs2), elemS(f.SEW, immSigned(imm)), f.MaskReg(), vm, vstart)
	return CodeNoExcept
}

// MseqVX executes vmseq.vx
func MseqVX(vrf []byte, vtype uint16, vm bool, vd, vs2 int, scalar []byte, xlenBits, vstart, vlenBits, vl int) Code {
	f, code := prepareCmpX(vrf, vtype, vlenBits, vl, vs2)
	if code != CodeNoExcept {
		return code
	}
	f.Reg(vd).MEqX(f.Vec(vs2), elemS(f.SEW, scalarInt(scalar, xlenBits)), f.MaskReg(), vm, vstart)
	return CodeNoExcept
}

// MsneVV executes vmsne.vv
func MsneVV(vrf []byte, vtype uint16, vm bool, vd, vs1, vs2, vstart, vlenBits, vl int) Code {
	f, code := prepareCmp(vrf, vtype, vlenBits, vl, vs1, vs2)
	if code != CodeNoExcept {
		return code
	}
	f.Reg(vd).MNe(f.Vec(vs2), f.Vec(vs1), f.MaskReg(), vm, vstart)
	return CodeNoExcept
}

// MsneVI executes vmsne.vi
func MsneVI(vrf []byte, vtype uint16, vm bool, vd, vs2 int, imm uint8, vstart, vlenBits, vl int) Code {
	f, code := prepareCmpX(vrf, vtype, vlenBits, vl, vs2)
	if code != CodeNoExcept {
		return code
	}
	f.Reg(vd).MNeX(f.Vec(vs2), elemS(f.SEW, immSigned(imm)), f.MaskReg(), vm, vstart)
	return CodeNoExcept
}

// MsneVX executes vmsne.vx
func MsneVX(vrf []byte, vtype uint16, vm bool, vd, vs2 int, scalar []byte, xlenBits, vstart, vlenBits, vl int) Code {
	f, code := prepareCmpX(vrf, vtype, vlenBits, vl, vs2)
	if code != CodeNoExcept {
		return code
	}
	f.Reg(vd).MNeX(f.Vec(vs2), elemS(f.SEW, scalarInt(scalar, xlenBits)), f.MaskReg(), vm, vstart)
	return CodeNoExcept
}

// MsltVV executes vmslt.vv: mask bit i = (vs2[i] < vs1[i]), signed
func MsltVV(vrf []byte, vtype uint16, vm bool, vd, vs1, vs2, vstart, vlenBits, vl int) Code {
	f, code := prepareCmp(vrf, vtype, vlenBits, vl, vs1, vs2)
	if code != CodeNoExcept {
		return code
	}
	f.Reg(vd).MLtS(f.Vec(vs2), f.Vec(vs1), f.MaskReg(), vm, vstart)
	return CodeNoExcept
}

// MsltVX executes vmslt.vx
func MsltVX(vrf []byte, vtype uint16, vm bool, vd, vs2 int, scalar []byte, xlenBits, vstart, vlenBits, vl int) Code {
	f, code := prepareCmpX(vrf, vtype, vlenBits, vl, vs2)
	if code != CodeNoExcept {
		return code
	}
	f.Reg(vd).MLtSX(f.Vec(vs2), elemS(f.SEW, scalarInt(scalar, xlenBits)), f.MaskReg(), vm, vstart)
	return CodeNoExcept
}

// MsltuVV executes vmsltu.vv: unsigned
func MsltuVV(vrf []byte, vtype uint16, vm bool, vd, vs1, vs2, vstart, vlenBits, vl int) Code {
	f, code := prepareCmp(vrf, vtype, vlenBits, vl, vs1, vs2)
	if code != CodeNoExcept {
		return code
	}
	f.Reg(vd).MLtU(f.Vec(vs2), f.Vec(vs1), f.MaskReg(), vm, vstart)
	return CodeNoExcept
}

// MsltuVX executes vmsltu.vx; the scalar is zero-extended
func MsltuVX(vrf []byte, vtype uint16, vm bool, vd, vs2 int, scalar []byte, xlenBits, vstart, vlenBits, vl int) Code {
	f, code := prepareCmpX(vrf, vtype, vlenBits, vl, vs2)
	if code != CodeNoExcept {
		return code
	}
	f.Reg(vd).MLtUX(f.Vec(vs2), elemU(f.SEW, scalarUint(scalar, xlenBits)), f.MaskReg(), vm, vstart)
	return CodeNoExcept
}

// MsleVV executes vmsle.vv
func MsleVV(vrf []byte, vtype uint16, vm bool, vd, vs1, vs2, vstart, vlenBits, vl int) Code {
	f, code := prepareCmp(vrf, vtype, vlenBits, vl, vs1, vs2)
	if code != CodeNoExcept {
		return code
	}
	f.Reg(vd).MLeS(f.Vec(vs2), f.Vec(vs1), f.MaskReg(), vm, vstart)
	return CodeNoExcept
}

// MsleVI executes vmsle.vi
func MsleVI(vrf []byte, vtype uint16, vm bool, vd, vs2 int, imm uint8, vstart, vlenBits, vl int) Code {
	f, code := prepareCmpX(vrf, vtype, vlenBits, vl, vs2)
	if code != CodeNoExcept {
		return code
	}
	f.Reg(vd).MLeSX(f.Vec(vs2), elemS(f.SEW, immSigned(imm)), f.MaskReg(), vm, vstart)
	return CodeNoExcept
}

// MsleVX executes vmsle.vx
func MsleVX(vrf []byte, vtype uint16, vm bool, vd, vs2 int, scalar []byte, xlenBits, vstart, vlenBits, vl int) Code {
	f, code := prepareCmpX(vrf, vtype, vlenBits, vl, vs2)
	if code != CodeNoExcept {
		return code
	}
	f.Reg(vd).MLeSX(f.Vec(vs2), elemS(f.SEW, scalarInt(scalar, xlenBits)), f.MaskReg(), vm, vstart)
	return CodeNoExcept
}

// MsleuVV executes vmsleu.vv
func MsleuVV(vrf []byte, vtype uint16, vm bool, vd, vs1, vs2, vstart, vlenBits, vl int) Code {
	f, code := prepareCmp(vrf, vtype, vlenBits, vl, vs1, vs2)
	if code != CodeNoExcept {
		return code
	}
	f.Reg(vd).MLeU(f.Vec(vs2), f.Vec(vs1), f.MaskReg(), vm, vstart)
	return CodeNoExcept
}

// MsleuVI executes vmsleu.vi; the immediate is zero-extended
func MsleuVI(vrf []byte, vtype uint16, vm bool, vd, vs2 int, imm uint8, vstart, vlenBits, vl int) Code {
	f, code := prepareCmpX(vrf, vtype, vlenBits, vl, vs2)
	if code != CodeNoExcept {
		return code
	}
	f.Reg(vd).MLeUX(f.Vec(vs2), elemU(f.SEW, uint64(imm&0x1F)), f.MaskReg(), vm, vstart)
	return CodeNoExcept
}

// MsleuVX executes vmsleu.vx
func MsleuVX(vrf []byte, vtype uint16, vm bool, vd, vs2 int, scalar []byte, xlenBits, vstart, vlenBits, vl int) Code {
	f, code := prepareCmpX(vrf, vtype, vlenBits, vl, vs2)
	if code != CodeNoExcept {
		return code
	}
	f.Reg(vd).MLeUX(f.Vec(vs2), elemU(f.SEW, scalarUint(scalar, xlenBits)), f.MaskReg(), vm, vstart)
	return CodeNoExcept
}

// MsgtVV executes the vec-vec form of vmsgt
func MsgtVV(vrf []byte, vtype uint16, vm bool, vd, vs1, vs2, vstart, vlenBits, vl int) Code {
	f, code := prepareCmp(vrf, vtype, vlenBits, vl, vs1, vs2)
	if code != CodeNoExcept {
		return code
	}
	f.Reg(vd).MGtS(f.Vec(vs2), f.Vec(vs1), f.MaskReg(), vm, vstart)
	return CodeNoExcept
}

// MsgtVI executes vmsgt.vi
func MsgtVI(vrf []byte, vtype uint16, vm bool, vd, vs2 int, imm uint8, vstart, vlenBits, vl int) Code {
	f, code := prepareCmpX(vrf, vtype, vlenBits, vl, vs2)
	if code != CodeNoExcept {
		return code
	}
	f.Reg(vd).MGtSX(f.Vec(vs2), elemS(f.SEW, immSigned(imm)), f.MaskReg(), vm, vstart)
	return CodeNoExcept
}

// MsgtVX executes vmsgt.vx
func MsgtVX(vrf []byte, vtype uint16, vm bool, vd, vs2 int, scalar []byte, xlenBits, vstart, vlenBits, vl int) Code {
	f, code := prepareCmpX(vrf, vtype, vlenBits, vl, vs2)
	if code != CodeNoExcept {
		return code
	}
	f.Reg(vd).MGtSX(f.Vec(vs2), elemS(f.SEW, scalarInt(scalar, xlenBits)), f.MaskReg(), vm, vstart)
	return CodeNoExcept
}

// MsgtuVV executes the vec-vec form of vmsgtu
func MsgtuVV(vrf []byte, vtype uint16, vm bool, vd, vs1, vs2, vstart, vlenBits, vl int) Code {
	f, code := prepareCmp(vrf, vtype, vlenBits, vl, vs1, vs2)
	if code != CodeNoExcept {
		return code
	}
	f.Reg(vd).MGtU(f.Vec(vs2), f.Vec(vs1), f.MaskReg(), vm, vstart)
	return CodeNoExcept
}

// MsgtuVI executes vmsgtu.vi; the immediate is zero-extended
func MsgtuVI(vrf []byte, vtype uint16, vm bool, vd, vs2 int, imm uint8, vstart, vlenBits, vl int) Code {
	f, code := prepareCmpX(vrf, vtype, vlenBits, vl, vs2)
	if code != CodeNoExcept {
		return code
	}
	f.Reg(vd).MGtUX(f.Vec(vs2), elemU(f.SEW, uint64(imm&0x1F)), f.MaskReg(), vm, vstart)
	return CodeNoExcept
}

// MsgtuVX executes vmsgtu.vx
func MsgtuVX(vrf []byte, vtype uint16, vm bool, vd, vs2 int, scalar []byte, xlenBits, vstart, vlenBits, vl int) Code {
	f, code := prepareCmpX(vrf, vtype, vlenBits, vl, vs2)
	if code != CodeNoExcept {
		return code
	}
	f.Reg(vd).MGtUX(f.Vec(vs2), elemU(f.SEW, scalarUint(scalar, xlenBits)), f.MaskReg(), vm, vstart)
	return CodeNoExcept
}

// prepareCmp builds the view for a vec-vec comparison. The destination is a
// raw register (the result mask), so only the sources have an alignment
// constraint.
func prepareCmp(vrf []byte, vtype uint16, vlenBits, vl, vs1, vs2 int) (*RegField, Code) {
	f, code := prepare(vrf, vtype, vlenBits, vl)
	if code != CodeNoExcept {
		return nil, code
	}
	if !f.RegIsAligned(vs1) {
		return nil, CodeSrc1VecIll
	}
	if !f.RegIsAligned(vs2) {
		return nil, CodeSrc2VecIll
	}
	return f, CodeNoExcept
}

// prepareCmpX builds the view for a vec-imm or vec-scalar comparison
func prepareCmpX(vrf []byte, vtype uint16, vlenBits, vl, vs2 int) (*RegField, Code) {
	f, code := prepare(vrf, vtype, vlenBits, vl)
	if code != CodeNoExcept {
		return nil, code
	}
	if !f.RegIsAligned(vs2) {
		return nil, CodeSrc2VecIll
	}
	return f, CodeNoExcept
}

// MvVV executes vmv.v.v: vd[i] = vs1[i]
func MvVV(vrf []byte, vtype uint16, vm bool, vd, vs1, vstart, vlenBits, vl int) Code {
	f, code := prepare(vrf, vtype, vlenBits, vl)
	if code != CodeNoExcept {
		return code
	}
	switch {
	case !f.RegIsAligned(vs1):
		return CodeSrc1VecIll
	case !f.RegIsAligned(vd):
		return CodeDstVecIll
	}
	f.Vec(vd).MAssign(f.Vec(vs1), f.MaskReg(), vm, vstart)
	return CodeNoExcept
}

// MvVI executes vmv.v.i: vd[i] = sext(imm5)
func MvVI(vrf []byte, vtype uint16, vm bool, vd int, imm uint8, vstart, vlenBits, vl int) Code {
	f, code := prepare(vrf, vtype, vlenBits, vl)
	if code != CodeNoExcept {
		return code
	}
	if !f.RegIsAligned(vd) {
		return CodeDstVecIll
	}
	f.Vec(vd).MAssignX(elemS(f.SEW, immSigned(imm)), f.MaskReg(), vm, vstart)
	return CodeNoExcept
}

// MvVX executes vmv.v.x: vd[i] = sext(x)
func MvVX(vrf []byte, vtype uint16, vm bool, vd int, scalar []byte, xlenBits, vstart, vlenBits, vl int) Code {
	f, code := prepare(vrf, vtype, vlenBits, vl)
	if code != CodeNoExcept {
		return code
	}
	if !f.RegIsAligned(vd) {
		return CodeDstVecIll
	}
	f.Vec(vd).MAssignX(elemS(f.SEW, scalarInt(scalar, xlenBits)), f.MaskReg(), vm, vstart)
	return CodeNoExcept
}
