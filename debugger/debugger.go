package debugger

import (
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"

	"github.com/lookbusy1344/rvv-emulator/golden"
	"github.com/lookbusy1344/rvv-emulator/vpu"
)

// Inspector holds a register-file snapshot plus the configuration used to
// render it as elements. Commands mutate the snapshot; the front-end renders
// the dump strings after every command.
type Inspector struct {
	VRF    []byte
	Mem    []byte
	Scalar []byte

	VLEN   int // bits
	XLEN   int // bits
	SEW    int
	Z, N   int // LMUL
	VL     int
	VStart int

	Selected int // register the element panel focuses on

	LastCode vpu.Code
}

// New creates an inspector over a fresh register file
func New(vlenBits, xlenBits int) *Inspector {
	in := &Inspector{
		VRF:    make([]byte, 32*vlenBits/8),
		Mem:    make([]byte, 1024),
		Scalar: make([]byte, xlenBits/8),
		VLEN:   vlenBits,
		XLEN:   xlenBits,
		SEW:    8,
		Z:      1,
		N:      1,
	}
	in.VL = in.VLMax()
	return in
}

// VLMax is the element capacity of one group under the current config
func (in *Inspector) VLMax() int {
	return in.VLEN * in.Z / (in.N * in.SEW)
}

// HandleCommand executes one command line and returns the response text and
// whether the front-end should quit
func (in *Inspector) HandleCommand(line string) (string, bool) {
	fields := strings.Fields(strings.TrimSpace(line))
	if len(fields) == 0 {
		return "", false
	}

	switch fields[0] {
	case "quit", "q", "exit":
		return "", true

	case "help", "h", "?":
		return helpText, false

	case "vtype":
		return in.cmdVType(fields[1:]), false

	case "vl":
		if len(fields) != 2 {
			return "usage: vl <elements>", false
		}
		n, err := strconv.Atoi(fields[1])
		if err != nil || n < 0 || n > in.VLMax() {
			return fmt.Sprintf("vl must be 0..%d", in.VLMax()), false
		}
		in.VL = n
		return fmt.Sprintf("vl = %d", n), false

	case "vstart":
		if len(fields) != 2 {
			return "usage: vstart <index>", false
		}
		n, err := strconv.Atoi(fields[1])
		if err != nil || n < 0 {
			return "vstart must be a non-negative integer", false
		}
		in.VStart = n
		return fmt.Sprintf("vstart = %d", n), false

	case "reg":
		if len(fields) != 2 {
			return "usage: reg <0..31>", false
		}
		n, err := strconv.Atoi(strings.TrimPrefix(fields[1], "v"))
		if err != nil || n < 0 || n > 31 {
			return "register must be 0..31", false
		}
		in.Selected = n
		return fmt.Sprintf("selected v%d", n), false

	case "set":
		return in.cmdSet(fields[1:]), false

	case "exec":
		return in.cmdExec(fields[1:]), false

	default:
		return fmt.Sprintf("unknown command %q (try help)", fields[0]), false
	}
}

const helpText = `commands:
  vtype <sew> <lmul>   configure the view, lmul as N or 1/N (e.g. 2, 1/4)
  vl <elements>        set the active vector length
  vstart <index>       set the start element
  reg <n>              select the register shown in the element panel
  set v<N> <hex>       load little-endian bytes into a register
  exec <op> k=v ...    run an opcode (keys: vd vs1 vs2 imm scalar vm
                       eew nf stride mem_start)
  quit                 leave the inspector`

func (in *Inspector) cmdVType(args []string) string {
	if len(args) != 2 {
		return "usage: vtype <sew> <lmul>"
	}
	sew, err := strconv.Atoi(args[0])
	if err != nil {
		return "bad SEW"
	}
	switch sew {
	case 8, 16, 32, 64, 128, 256, 512, 1024:
	default:
		return "SEW must be a power of two in 8..1024"
	}

	z, n := 1, 1
	if num, den, ok := strings.Cut(args[1], "/"); ok {
		z, err = strconv.Atoi(num)
		if err == nil {
			n, err = strconv.Atoi(den)
		}
	} else {
		z, err = strconv.Atoi(args[1])
	}
	if err != nil || z < 1 || n < 1 {
		return "bad LMUL"
	}

	in.SEW, in.Z, in.N = sew, z, n
	if in.VL > in.VLMax() {
		in.VL = in.VLMax()
	}
	return fmt.Sprintf("SEW=%d LMUL=%d/%d vlmax=%d", sew, z, n, in.VLMax())
}

func (in *Inspector) cmdSet(args []string) string {
	if len(args) != 2 {
		return "usage: set v<N> <hex>"
	}
	reg, err := strconv.Atoi(strings.TrimPrefix(args[0], "v"))
	if err != nil || reg < 0 || reg > 31 {
		return "register must be v0..v31"
	}
	b, err := hex.DecodeString(args[1])
	if err != nil {
		return "bad hex bytes"
	}
	regBytes := in.VLEN / 8
	if len(b) > regBytes {
		return fmt.Sprintf("too many bytes for a %d-bit register", in.VLEN)
	}
	copy(in.VRF[reg*regBytes:], b)
	return fmt.Sprintf("v%d updated", reg)
}

func (in *Inspector) cmdExec(args []string) string {
	if len(args) == 0 {
		return "usage: exec <op> key=value ..."
	}
	c := &golden.Case{
		Op:      args[0],
		VLEN:    in.VLEN,
		XLEN:    in.XLEN,
		SEW:     in.SEW,
		LMULNum: in.Z,
		LMULDen: in.N,
		VL:      in.VL,
		VStart:  in.VStart,
	}

	for _, kv := range args[1:] {
		key, val, ok := strings.Cut(kv, "=")
		if !ok {
			return fmt.Sprintf("bad argument %q, expected key=value", kv)
		}
		var err error
		switch key {
		case "vd":
			c.Vd, err = strconv.Atoi(val)
		case "vs1":
			c.Vs1, err = strconv.Atoi(val)
		case "vs2":
			c.Vs2, err = strconv.Atoi(val)
		case "imm":
			var n int
			n, err = strconv.Atoi(val)
			c.Imm = uint8(n)
		case "vm":
			c.Masked = val == "1" || val == "true"
		case "scalar":
			var b []byte
			b, err = hex.DecodeString(val)
			if err == nil {
				copy(in.Scalar, b)
			}
		case "eew":
			c.EEW, err = strconv.Atoi(val)
		case "nf":
			c.NF, err = strconv.Atoi(val)
		case "stride":
			c.Stride, err = strconv.Atoi(val)
		case "mem_start":
			var n uint64
			n, err = strconv.ParseUint(val, 0, 64)
			c.MemStart = n
		default:
			return fmt.Sprintf("unknown key %q", key)
		}
		if err != nil {
			return fmt.Sprintf("bad value for %s: %v", key, err)
		}
	}

	code, err := golden.Execute(c, in.VRF, in.Mem, in.Scalar)
	if err != nil {
		return err.Error()
	}
	in.LastCode = code
	return fmt.Sprintf("%s -> %v", c.Op, code)
}

// RegisterDump renders all 32 registers as hex rows
func (in *Inspector) RegisterDump() string {
	var sb strings.Builder
	regBytes := in.VLEN / 8
	for r := 0; r < 32; r++ {
		sel := " "
		if r == in.Selected {
			sel = ">"
		}
		fmt.Fprintf(&sb, "%sv%-2d %s\n", sel, r, hex.EncodeToString(in.VRF[r*regBytes:(r+1)*regBytes]))
	}
	return sb.String()
}

// ElementDump renders the selected register group as SEW-wide elements,
// most significant byte first
func (in *Inspector) ElementDump() string {
	f := vpu.NewRegField(in.VRF, in.VLEN, in.VL, in.SEW, vpu.Mul{Z: in.Z, N: in.N})
	if !f.RegIsAligned(in.Selected) {
		return fmt.Sprintf("v%d is not aligned for LMUL=%d/%d", in.Selected, in.Z, in.N)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "v%d: SEW=%d VL=%d VLMAX=%d\n", in.Selected, in.SEW, in.VL, in.VLMax())
	v := f.Vec(in.Selected)
	for i := 0; i < v.VLMax(); i++ {
		marker := " "
		if i >= in.VL {
			marker = "t" // tail element
		}
		e := v.Elem(i)
		rev := make([]byte, len(e))
		for j := range e {
			rev[j] = e[len(e)-1-j]
		}
		fmt.Fprintf(&sb, "%s[%3d] %s\n", marker, i, hex.EncodeToString(rev))
	}
	return sb.String()
}

// MaskDump renders the mask register (v0) as per-element bits
func (in *Inspector) MaskDump() string {
	f := vpu.NewRegField(in.VRF, in.VLEN, in.VL, in.SEW, vpu.Mul{Z: in.Z, N: in.N})
	mask := f.MaskReg()

	var sb strings.Builder
	sb.WriteString("v0 bits: ")
	for i := 0; i < in.VLMax(); i++ {
		if mask.Bit(i) {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
		if i%8 == 7 {
			sb.WriteByte(' ')
		}
	}
	sb.WriteByte('\n')
	return sb.String()
}

// StatusLine summarises the current configuration
func (in *Inspector) StatusLine() string {
	return fmt.Sprintf("VLEN=%d XLEN=%d SEW=%d LMUL=%d/%d VL=%d VSTART=%d last=%v",
		in.VLEN, in.XLEN, in.SEW, in.Z, in.N, in.VL, in.VStart, in.LastCode)
}
