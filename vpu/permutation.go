package vpu

// Scalar moves and the slide family. LMUL is ignored for the single-element
// scalar moves; the slide ops run under the normal group rules.

// MvXS executes vmv.x.s: element 0 of vs2 is copied to the scalar register,
// sign-extended when the scalar is wider than SEW and truncated when it is
// narrower
func MvXS(vrf []byte, vtype uint16, vs2 int, scalar []byte, xlenBits, vlenBits, vl int) Code {
	vt, err := DecodeVType(vtype)
	if err != nil {
		return CodeCfgIll
	}
	f := NewRegField(vrf, vlenBits, vl, vt.SEW, Mul{1, 1})
	src := f.Vec(vs2).Elem(0)

	fill := src.signFill()
	for i := 0; i < xlenBits/8; i++ {
		if i < len(src) {
			scalar[i] = src[i]
		} else {
			scalar[i] = fill
		}
	}
	return CodeNoExcept
}

// MvSX executes vmv.s.x: element 0 of vd receives the scalar, sign-extended
// when SEW is wider than the scalar. Other elements are untouched. A vstart
// past vl is a silent no-op.
func MvSX(vrf []byte, vtype uint16, vd int, scalar []byte, xlenBits, vstart, vlenBits, vl int) Code {
	if vstart > vl {
		return CodeNoExcept
	}
	vt, err := DecodeVType(vtype)
	if err != nil {
		return CodeCfgIll
	}
	f := NewRegField(vrf, vlenBits, vl, vt.SEW, Mul{1, 1})
	dst := f.Vec(vd).Elem(0)

	xlenBytes := xlenBits / 8
	fill := byte(0)
	if scalar[xlenBytes-1]&0x80 != 0 {
		fill = 0xFF
	}
	for i := range dst {
		if i < xlenBytes {
			dst[i] = scalar[i]
		} else {
			dst[i] = fill
		}
	}
	return CodeNoExcept
}

// FmvFS is the floating-point counterpart of MvXS. The family is not
// implemented; the call is rejected as illegal.
func FmvFS(vrf []byte, vtype uint16, vs2 int, scalar []byte, flenBits, vlenBits, vl int) Code {
	return CodeCfgIll
}

// FmvSF is the floating-point counterpart of MvSX; rejected as illegal
func FmvSF(vrf []byte, vtype uint16, vd int, scalar []byte, flenBits, vstart, vlenBits, vl int) Code {
	return CodeCfgIll
}

// prepareSlide decodes VTYPE and checks source and destination alignment
// for a slide op
func prepareSlide(vrf []byte, vtype uint16, vlenBits, vl, vd, vs2 int) (*RegField, Code) {
	f, code := prepare(vrf, vtype, vlenBits, vl)
	if code != CodeNoExcept {
		return nil, code
	}
	if !f.RegIsAligned(vs2) {
		return nil, CodeSrc2VecIll
	}
	if !f.RegIsAligned(vd) {
		return nil, CodeDstVecIll
	}
	return f, CodeNoExcept
}

// SlideupVX executes vslideup.vx: vd[i] = vs2[i-x] for i >= max(vstart, x)
func SlideupVX(vrf []byte, vtype uint16, vm bool, vd, vs2 int, scalar []byte, xlenBits, vstart, vlenBits, vl int) Code {
	if vstart > vl {
		return CodeNoExcept
	}
	f, code := prepareSlide(vrf, vtype, vlenBits, vl, vd, vs2)
	if code != CodeNoExcept {
		return code
	}
	f.Vec(vd).MSlideup(f.Vec(vs2), uint(scalarUint(scalar, xlenBits)), f.MaskReg(), vm, vstart)
	return CodeNoExcept
}

// SlideupVI executes vslideup.vi; the immediate is zero-extended
func SlideupVI(vrf []byte, vtype uint16, vm bool, vd, vs2 int, imm uint8, vstart, vlenBits, vl int) Code {
	if vstart > vl {
		return CodeNoExcept
	}
	f, code := prepareSlide(vrf, vtype, vlenBits, vl, vd, vs2)
	if code != CodeNoExcept {
		return code
	}
	f.Vec(vd).MSlideup(f.Vec(vs2), uint(imm&0x1F), f.MaskReg(), vm, vstart)
	return CodeNoExcept
}

// SlidedownVX executes vslidedown.vx: vd[i] = vs2[i+x], reading raw
// elements past vl inside the group and zero past the group
func SlidedownVX(vrf []byte, vtype uint16, vm bool, vd, vs2 int, scalar []byte, xlenBits, vstart, vlenBits, vl int) Code {
	f, code := prepareSlide(vrf, vtype, vlenBits, vl, vd, vs2)
	if code != CodeNoExcept {
		return code
	}
	f.Vec(vd).MSlidedown(f.Vec(vs2), uint(scalarUint(scalar, xlenBits)), f.MaskReg(), vm, vstart)
	return CodeNoExcept
}

// SlidedownVI executes vslidedown.vi
func SlidedownVI(vrf []byte, vtype uint16, vm bool, vd, vs2 int, imm uint8, vstart, vlenBits, vl int) Code {
	f, code := prepareSlide(vrf, vtype, vlenBits, vl, vd, vs2)
	if code != CodeNoExcept {
		return code
	}
	f.Vec(vd).MSlidedown(f.Vec(vs2), uint(imm&0x1F), f.MaskReg(), vm, vstart)
	return CodeNoExcept
}

// Slide1Up executes vslide1up.vx: a slide up by one with the scalar written
// into element vstart when the mask allows it
func Slide1Up(vrf []byte, vtype uint16, vm bool, vd, vs2 int, scalar []byte, xlenBits, vstart, vlenBits, vl int) Code {
	if vstart > vl {
		return CodeNoExcept
	}
	f, code := prepareSlide(vrf, vtype, vlenBits, vl, vd, vs2)
	if code != CodeNoExcept {
		return code
	}
	dst := f.Vec(vd)
	dst.MSlideup(f.Vec(vs2), 1, f.MaskReg(), vm, vstart)
	if vstart < vl && (!vm || f.MaskReg().Bit(vstart)) {
		dst.Elem(vstart).AssignInt(scalarInt(scalar, xlenBits))
	}
	return CodeNoExcept
}

// Slide1Down executes vslide1down.vx: a slide down by one with the scalar
// written into the last active element
func Slide1Down(vrf []byte, vtype uint16, vm bool, vd, vs2 int, scalar []byte, xlenBits, vstart, vlenBits, vl int) Code {
	if vstart > vl || vl == 0 {
		return CodeNoExcept
	}
	f, code := prepareSlide(vrf, vtype, vlenBits, vl, vd, vs2)
	if code != CodeNoExcept {
		return code
	}
	dst := f.Vec(vd)
	dst.MSlidedown(f.Vec(vs2), 1, f.MaskReg(), vm, vstart)
	if !vm || f.MaskReg().Bit(vl-1) {
		dst.Elem(vl - 1).AssignInt(scalarInt(scalar, xlenBits))
	}
	return CodeNoExcept
}

// Fslide1Up is the floating-point slide; the family is not implemented and
// the call is rejected as illegal
func Fslide1Up(vrf []byte, vtype uint16, vm bool, vd, vs2 int, scalar []byte, flenBits, vstart, vlenBits, vl int) Code {
	return CodeCfgIll
}

// Fslide1Down is the floating-point slide; rejected as illegal
func Fslide1Down(vrf []byte, vtype uint16, vm bool, vd, vs2 int, scalar []byte, flenBits, vstart, vlenBits, vl int) Code {
	return CodeCfgIll
}
