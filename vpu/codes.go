package vpu

// Code is the architectural outcome of one vector opcode call. It is a plain
// return value, not a Go error: the dispatching ISS maps non-zero codes to
// illegal-instruction traps.
type Code uint8

const (
	CodeNoExcept                Code = iota // instruction retired normally
	CodeDstVecIll                           // destination register not group-aligned
	CodeSrc1VecIll                          // vs1 not group-aligned
	CodeSrc2VecIll                          // vs2 not group-aligned
	CodeSrc3VecIll                          // vs3 (store data) not group-aligned
	CodeWideningOverlapVdVs1Ill             // widening destination overlaps vs1
	CodeWideningOverlapVdVs2Ill             // widening destination overlaps vs2
	CodeCfgIll                              // reserved LMUL, EMUL out of bounds, segment past v31, or unimplemented family
)

// String returns the mnemonic name of the code
func (c Code) String() string {
	switch c {
	case CodeNoExcept:
		return "NO_EXCEPT"
	case CodeDstVecIll:
		return "DST_VEC_ILL"
	case CodeSrc1VecIll:
		return "SRC1_VEC_ILL"
	case CodeSrc2VecIll:
		return "SRC2_VEC_ILL"
	case CodeSrc3VecIll:
		return "SRC3_VEC_ILL"
	case CodeWideningOverlapVdVs1Ill:
		return "WIDENING_OVERLAP_VD_VS1_ILL"
	case CodeWideningOverlapVdVs2Ill:
		return "WIDENING_OVERLAP_VD_VS2_ILL"
	case CodeCfgIll:
		return "CFG_ILL"
	default:
		return "UNKNOWN"
	}
}
