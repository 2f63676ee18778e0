package vpu

// Memory bus callbacks. The engine never interprets addresses; the buffer
// length is the transfer size. A callback is assumed total - faults inside
// it surface through the host's own mechanism, the engine does not unwind
// mid-element.
type (
	MemRead  func(addr uint64, buf []byte)
	MemWrite func(addr uint64, buf []byte)
)

// LoadEEW transfers vl elements of eewBytes each from memory into the
// register group at vd, honouring vstart and the mask. The memory cursor
// advances by eewBytes+strideBytes per element whether or not the element
// is transferred; unit-stride passes strideBytes 0. Negative strides pass
// through unchanged.
func LoadEEW(read MemRead, vrf []byte, emul Mul, eewBytes, vl, vlenBytes, vd int, memStart uint64, vstart int, vm bool, strideBytes int) Code {
	f := NewRegField(vrf, vlenBytes*8, vl, eewBytes*8, emul)
	if !f.RegIsAligned(vd) {
		return CodeDstVecIll
	}

	dst := f.Vec(vd)
	mask := f.MaskReg()
	addr := int64(memStart)
	for i := 0; i < vl; i++ {
		if i >= vstart && (!vm || mask.Bit(i)) {
			read(uint64(addr), dst.Elem(i))
		}
		addr += int64(eewBytes + strideBytes)
	}
	return CodeNoExcept
}

// StoreEEW is the mirror of LoadEEW: vl elements from the group at vs3 out
// to memory through the write callback
func StoreEEW(write MemWrite, vrf []byte, emul Mul, eewBytes, vl, vlenBytes, vs3 int, memStart uint64, vstart int, vm bool, strideBytes int) Code {
	f := NewRegField(vrf, vlenBytes*8, vl, eewBytes*8, emul)
	if !f.RegIsAligned(vs3) {
		return CodeSrc3VecIll
	}

	src := f.Vec(vs3)
	mask := f.MaskReg()
	addr := int64(memStart)
	for i := 0; i < vl; i++ {
		if i >= vstart && (!vm || mask.Bit(i)) {
			write(uint64(addr), src.Elem(i))
		}
		addr += int64(eewBytes + strideBytes)
	}
	return CodeNoExcept
}

// memEMUL derives the effective multiplicity EEW*LMUL/SEW for a memory op
// as an unreduced rational, and rejects configurations outside [1/8, 8]
func memEMUL(vtype uint16, eewBits int) (Mul, Code) {
	vt, err := DecodeVType(vtype)
	if err != nil {
		return Mul{}, CodeCfgIll
	}
	emul := Mul{Z: eewBits * vt.Z, N: vt.SEW * vt.N}
	if emul.N > emul.Z*8 || emul.Z > emul.N*8 {
		return Mul{}, CodeCfgIll
	}
	return emul, CodeNoExcept
}

// VloadUnitStride executes a unit-stride vector load at the given EEW
func VloadUnitStride(read MemRead, vrf []byte, vtype uint16, vm bool, eewBits, vd, vstart, vlenBits, vl int, memStart uint64) Code {
	emul, code := memEMUL(vtype, eewBits)
	if code != CodeNoExcept {
		return code
	}
	return LoadEEW(read, vrf, emul, eewBits/8, vl, vlenBits/8, vd, memStart, vstart, vm, 0)
}

// VloadStride executes a strided vector load; strideBytes is the signed
// extra pitch between consecutive element addresses
func VloadStride(read MemRead, vrf []byte, vtype uint16, vm bool, eewBits, vd, vstart, vlenBits, vl int, memStart uint64, strideBytes int) Code {
	emul, code := memEMUL(vtype, eewBits)
	if code != CodeNoExcept {
		return code
	}
	return LoadEEW(read, vrf, emul, eewBits/8, vl, vlenBits/8, vd, memStart, vstart, vm, strideBytes)
}

// VstoreUnitStride executes a unit-stride vector store
func VstoreUnitStride(write MemWrite, vrf []byte, vtype uint16, vm bool, eewBits, vs3, vstart, vlenBits, vl int, memStart uint64) Code {
	emul, code := memEMUL(vtype, eewBits)
	if code != CodeNoExcept {
		return code
	}
	return StoreEEW(write, vrf, emul, eewBits/8, vl, vlenBits/8, vs3, memStart, vstart, vm, 0)
}

// VstoreStride executes a strided vector store
func VstoreStride(write MemWrite, vrf []byte, vtype uint16, vm bool, eewBits, vs3, vstart, vlenBits, vl int, memStart uint64, strideBytes int) Code {
	emul, code := memEMUL(vtype, eewBits)
	if code != CodeNoExcept {
		return code
	}
	return StoreEEW(write, vrf, emul, eewBits/8, vl, vlenBits/8, vs3, memStart, vstart, vm, strideBytes)
}

// segEMUL derives and checks the multiplicity for an nf-field segment op:
// the aggregate nf*EMUL must stay within [1/8, 8] and the register span
// nf fields wide must not run past v31
func segEMUL(vtype uint16, eewBits, nf, vbase int) (Mul, Code) {
	vt, err := DecodeVType(vtype)
	if err != nil {
		return Mul{}, CodeCfgIll
	}
	emul := Mul{Z: eewBits * vt.Z, N: vt.SEW * vt.N}
	if emul.N > emul.Z*nf*8 || emul.Z*nf > emul.N*8 {
		return Mul{}, CodeCfgIll
	}
	if vbase+nf*emul.Z/emul.N > 32 {
		return Mul{}, CodeCfgIll
	}
	return emul, CodeNoExcept
}

// VloadSegmentUnitStride executes a unit-stride segment load of nf fields.
// The memory cursor advances by the bytes the first field actually
// transferred; vstart applies to the first field only.
func VloadSegmentUnitStride(read MemRead, vrf []byte, vtype uint16, vm bool, eewBits, nf, vd, vstart, vlenBits, vl int, memStart uint64) Code {
	emul, code := segEMUL(vtype, eewBits, nf, vd)
	if code != CodeNoExcept {
		return code
	}
	if vstart >= vl {
		return CodeNoExcept
	}

	offset := memStart
	for field := 0; field < nf; field++ {
		reg := vd + field*emul.Z/emul.N
		if code := LoadEEW(read, vrf, emul, eewBits/8, vl, vlenBits/8, reg, offset, vstart, vm, 0); code != CodeNoExcept {
			return code
		}
		offset += uint64((vl - vstart) * eewBits / 8)
		vstart = 0
	}
	return CodeNoExcept
}

// VloadSegmentStride executes a strided segment load: field f starts at
// memStart + f*eewBytes and every field applies the same stride
func VloadSegmentStride(read MemRead, vrf []byte, vtype uint16, vm bool, eewBits, nf, vd, vstart, vlenBits, vl int, memStart uint64, strideBytes int) Code {
	emul, code := segEMUL(vtype, eewBits, nf, vd)
	if code != CodeNoExcept {
		return code
	}
	if vstart >= vl {
		return CodeNoExcept
	}

	for field := 0; field < nf; field++ {
		reg := vd + field*emul.Z/emul.N
		offset := memStart + uint64(field*eewBits/8)
		if code := LoadEEW(read, vrf, emul, eewBits/8, vl, vlenBits/8, reg, offset, vstart, vm, strideBytes); code != CodeNoExcept {
			return code
		}
		vstart = 0
	}
	return CodeNoExcept
}

// VstoreSegmentUnitStride executes a unit-stride segment store of nf fields
func VstoreSegmentUnitStride(write MemWrite, vrf []byte, vtype uint16, vm bool, eewBits, nf, vs3, vstart, vlenBits, vl int, memStart uint64) Code {
	emul, code := segEMUL(vtype, eewBits, nf, vs3)
	if code != CodeNoExcept {
		return code
	}
	if vstart >= vl {
		return CodeNoExcept
	}

	offset := memStart
	for field := 0; field < nf; field++ {
		reg := vs3 + field*emul.Z/emul.N
		if code := StoreEEW(write, vrf, emul, eewBits/8, vl, vlenBits/8, reg, offset, vstart, vm, 0); code != CodeNoExcept {
			return code
		}
		offset += uint64((vl - vstart) * eewBits / 8)
		vstart = 0
	}
	return CodeNoExcept
}

// VstoreSegmentStride executes a strided segment store
func VstoreSegmentStride(write MemWrite, vrf []byte, vtype uint16, vm bool, eewBits, nf, vs3, vstart, vlenBits, vl int, memStart uint64, strideBytes int) Code {
	emul, code := segEMUL(vtype, eewBits, nf, vs3)
	if code != CodeNoExcept {
		return code
	}
	if vstart >= vl {
		return CodeNoExcept
	}

	for field := 0; field < nf; field++ {
		reg := vs3 + field*emul.Z/emul.N
		offset := memStart + uint64(field*eewBits/8)
		if code := StoreEEW(write, vrf, emul, eewBits/8, vl, vlenBits/8, reg, offset, vstart, vm, strideBytes); code != CodeNoExcept {
			return code
		}
		vstart = 0
	}
	return CodeNoExcept
}
