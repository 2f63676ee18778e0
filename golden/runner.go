package golden

import (
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/lookbusy1344/rvv-emulator/vpu"
)

// Result is the outcome of one golden case
type Result struct {
	Name  string
	Op    string
	File  string
	Pass  bool
	Code  vpu.Code
	Diffs []string
}

// Summary aggregates the results of a run
type Summary struct {
	Results []Result
	PerOp   map[string][2]int // op -> {pass, fail}
}

// Passed reports whether every case passed
func (s *Summary) Passed() bool {
	for _, r := range s.Results {
		if !r.Pass {
			return false
		}
	}
	return true
}

// add records one result into the per-op tallies
func (s *Summary) add(r Result) {
	s.Results = append(s.Results, r)
	if s.PerOp == nil {
		s.PerOp = make(map[string][2]int)
	}
	t := s.PerOp[r.Op]
	if r.Pass {
		t[0]++
	} else {
		t[1]++
	}
	s.PerOp[r.Op] = t
}

// Runner executes golden cases against the vector core
type Runner struct {
	Output     io.Writer // progress output, defaults to os.Stdout
	StopOnFail bool
}

// NewRunner creates a runner writing progress to out
func NewRunner(out io.Writer) *Runner {
	if out == nil {
		out = os.Stdout
	}
	return &Runner{Output: out}
}

// RunDir executes every .toml case under dir, in name order
func (r *Runner) RunDir(dir string) (*Summary, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read case directory: %w", err)
	}

	var files []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".toml") {
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(files)

	sum := &Summary{}
	for _, f := range files {
		res, err := r.RunFile(f)
		if err != nil {
			return sum, err
		}
		sum.add(res)
		if !res.Pass && r.StopOnFail {
			break
		}
	}
	return sum, nil
}

// RunFile executes a single case file
func (r *Runner) RunFile(path string) (Result, error) {
	c, err := LoadCase(path)
	if err != nil {
		return Result{}, err
	}

	res := Result{Name: c.Name, Op: c.Op, File: path}

	vrf := make([]byte, 32*c.VLEN/8)
	mem := make([]byte, c.MemSize)
	scalar := make([]byte, c.XLEN/8)

	if c.Scalar != "" {
		b, err := parseHex(c.Scalar)
		if err != nil {
			return res, err
		}
		copy(scalar, b)
	}
	for key, val := range c.In {
		b, err := parseHex(val)
		if err != nil {
			return res, err
		}
		if key == "mem" {
			copy(mem, b)
			continue
		}
		reg, ok := regIndex(key)
		if !ok {
			return res, fmt.Errorf("case %s: bad input key %q", c.Name, key)
		}
		copy(vrf[reg*c.VLEN/8:(reg+1)*c.VLEN/8], b)
	}

	code, err := Execute(c, vrf, mem, scalar)
	if err != nil {
		return res, err
	}
	res.Code = code

	if code.String() != c.ExpectCode {
		res.Diffs = append(res.Diffs, fmt.Sprintf("return code %v, expected %s", code, c.ExpectCode))
	}
	for key, val := range c.Out {
		expected, err := parseHex(val)
		if err != nil {
			return res, err
		}
		var actual []byte
		switch {
		case key == "mem":
			actual = mem[:len(expected)]
		case key == "scalar":
			actual = scalar[:len(expected)]
		default:
			reg, ok := regIndex(key)
			if !ok {
				return res, fmt.Errorf("case %s: bad output key %q", c.Name, key)
			}
			actual = vrf[reg*c.VLEN/8 : reg*c.VLEN/8+len(expected)]
		}
		if !bytesEqual(actual, expected) {
			res.Diffs = append(res.Diffs, fmt.Sprintf("%s = %s, expected %s",
				key, hex.EncodeToString(actual), hex.EncodeToString(expected)))
		}
	}

	res.Pass = len(res.Diffs) == 0
	if res.Pass {
		fmt.Fprintf(r.Output, "PASS %s (%s)\n", c.Name, c.Op)
	} else {
		fmt.Fprintf(r.Output, "FAIL %s (%s)\n", c.Name, c.Op)
		for _, d := range res.Diffs {
			fmt.Fprintf(r.Output, "     %s\n", d)
		}
	}
	return res, nil
}

func bytesEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// Execute dispatches a case to the matching opcode entry point
func Execute(c *Case, vrf, mem, scalar []byte) (vpu.Code, error) {
	vtype := vpu.EncodeVType(c.SEW, c.LMULNum, c.LMULDen, false, false)
	read := func(addr uint64, buf []byte) { copy(buf, mem[addr:]) }
	write := func(addr uint64, buf []byte) { copy(mem[addr:], buf) }

	switch c.Op {
	case "add_vv":
		return vpu.AddVV(vrf, vtype, c.Masked, c.Vd, c.Vs1, c.Vs2, c.VStart, c.VLEN, c.VL), nil
	case "add_vi":
		return vpu.AddVI(vrf, vtype, c.Masked, c.Vd, c.Vs2, c.Imm, c.VStart, c.VLEN, c.VL), nil
	case "add_vx":
		return vpu.AddVX(vrf, vtype, c.Masked, c.Vd, c.Vs2, scalar, c.XLEN, c.VStart, c.VLEN, c.VL), nil
	case "sub_vv":
		return vpu.SubVV(vrf, vtype, c.Masked, c.Vd, c.Vs1, c.Vs2, c.VStart, c.VLEN, c.VL), nil
	case "sub_vx":
		return vpu.SubVX(vrf, vtype, c.Masked, c.Vd, c.Vs2, scalar, c.XLEN, c.VStart, c.VLEN, c.VL), nil
	case "rsub_vi":
		return vpu.RsubVI(vrf, vtype, c.Masked, c.Vd, c.Vs2, c.Imm, c.VStart, c.VLEN, c.VL), nil
	case "rsub_vx":
		return vpu.RsubVX(vrf, vtype, c.Masked, c.Vd, c.Vs2, scalar, c.XLEN, c.VStart, c.VLEN, c.VL), nil
	case "and_vv":
		return vpu.AndVV(vrf, vtype, c.Masked, c.Vd, c.Vs1, c.Vs2, c.VStart, c.VLEN, c.VL), nil
	case "and_vi":
		return vpu.AndVI(vrf, vtype, c.Masked, c.Vd, c.Vs2, c.Imm, c.VStart, c.VLEN, c.VL), nil
	case "and_vx":
		return vpu.AndVX(vrf, vtype, c.Masked, c.Vd, c.Vs2, scalar, c.XLEN, c.VStart, c.VLEN, c.VL), nil
	case "or_vv":
		return vpu.OrVV(vrf, vtype, c.Masked, c.Vd, c.Vs1, c.Vs2, c.VStart, c.VLEN, c.VL), nil
	case "or_vi":
		return vpu.OrVI(vrf, vtype, c.Masked, c.Vd, c.Vs2, c.Imm, c.VStart, c.VLEN, c.VL), nil
	case "or_vx":
		return vpu.OrVX(vrf, vtype, c.Masked, c.Vd, c.Vs2, scalar, c.XLEN, c.VStart, c.VLEN, c.VL), nil
	case "xor_vv":
		return vpu.XorVV(vrf, vtype, c.Masked, c.Vd, c.Vs1, c.Vs2, c.VStart, c.VLEN, c.VL), nil
	case "xor_vi":
		return vpu.XorVI(vrf, vtype, c.Masked, c.Vd, c.Vs2, c.Imm, c.VStart, c.VLEN, c.VL), nil
	case "xor_vx":
		return vpu.XorVX(vrf, vtype, c.Masked, c.Vd, c.Vs2, scalar, c.XLEN, c.VStart, c.VLEN, c.VL), nil
	case "sll_vv":
		return vpu.SllVV(vrf, vtype, c.Masked, c.Vd, c.Vs1, c.Vs2, c.VStart, c.VLEN, c.VL), nil
	case "sll_vi":
		return vpu.SllVI(vrf, vtype, c.Masked, c.Vd, c.Vs2, c.Imm, c.VStart, c.VLEN, c.VL), nil
	case "sll_vx":
		return vpu.SllVX(vrf, vtype, c.Masked, c.Vd, c.Vs2, scalar, c.XLEN, c.VStart, c.VLEN, c.VL), nil
	case "srl_vv":
		return vpu.SrlVV(vrf, vtype, c.Masked, c.Vd, c.Vs1, c.Vs2, c.VStart, c.VLEN, c.VL), nil
	case "srl_vi":
		return vpu.SrlVI(vrf, vtype, c.Masked, c.Vd, c.Vs2, c.Imm, c.VStart, c.VLEN, c.VL), nil
	case "srl_vx":
		return vpu.SrlVX(vrf, vtype, c.Masked, c.Vd, c.Vs2, scalar, c.XLEN, c.VStart, c.VLEN, c.VL), nil
	case "sra_vv":
		return vpu.SraVV(vrf, vtype, c.Masked, c.Vd, c.Vs1, c.Vs2, c.VStart, c.VLEN, c.VL), nil
	case "sra_vi":
		return vpu.SraVI(vrf, vtype, c.Masked, c.Vd, c.Vs2, c.Imm, c.VStart, c.VLEN, c.VL), nil
	case "sra_vx":
		return vpu.SraVX(vrf, vtype, c.Masked, c.Vd, c.Vs2, scalar, c.XLEN, c.VStart, c.VLEN, c.VL), nil
	case "wadd_vv":
		return vpu.WopVV(vrf, vtype, c.Masked, c.Vd, c.Vs1, c.Vs2, c.VStart, c.VLEN, c.VL, true, true), nil
	case "waddu_vv":
		return vpu.WopVV(vrf, vtype, c.Masked, c.Vd, c.Vs1, c.Vs2, c.VStart, c.VLEN, c.VL, true, false), nil
	case "wsub_vv":
		return vpu.WopVV(vrf, vtype, c.Masked, c.Vd, c.Vs1, c.Vs2, c.VStart, c.VLEN, c.VL, false, true), nil
	case "wsubu_vv":
		return vpu.WopVV(vrf, vtype, c.Masked, c.Vd, c.Vs1, c.Vs2, c.VStart, c.VLEN, c.VL, false, false), nil
	case "wadd_vx":
		return vpu.WopVX(vrf, vtype, c.Masked, c.Vd, c.Vs2, scalar, c.XLEN, c.VStart, c.VLEN, c.VL, true, true), nil
	case "waddu_vx":
		return vpu.WopVX(vrf, vtype, c.Masked, c.Vd, c.Vs2, scalar, c.XLEN, c.VStart, c.VLEN, c.VL, true, false), nil
	case "wsub_vx":
		return vpu.WopVX(vrf, vtype, c.Masked, c.Vd, c.Vs2, scalar, c.XLEN, c.VStart, c.VLEN, c.VL, false, true), nil
	case "wsubu_vx":
		return vpu.WopVX(vrf, vtype, c.Masked, c.Vd, c.Vs2, scalar, c.XLEN, c.VStart, c.VLEN, c.VL, false, false), nil
	case "wadd_wv":
		return vpu.WopWV(vrf, vtype, c.Masked, c.Vd, c.Vs1, c.Vs2, c.VStart, c.VLEN, c.VL, true, true), nil
	case "waddu_wv":
		return vpu.WopWV(vrf, vtype, c.Masked, c.Vd, c.Vs1, c.Vs2, c.VStart, c.VLEN, c.VL, true, false), nil
	case "wsub_wv":
		return vpu.WopWV(vrf, vtype, c.Masked, c.Vd, c.Vs1, c.Vs2, c.VStart, c.VLEN, c.VL, false, true), nil
	case "wsubu_wv":
		return vpu.WopWV(vrf, vtype, c.Masked, c.Vd, c.Vs1, c.Vs2, c.VStart, c.VLEN, c.VL, false, false), nil
	case "wadd_wx":
		return vpu.WopWX(vrf, vtype, c.Masked, c.Vd, c.Vs2, scalar, c.XLEN, c.VStart, c.VLEN, c.VL, true, true), nil
	case "waddu_wx":
		return vpu.WopWX(vrf, vtype, c.Masked, c.Vd, c.Vs2, scalar, c.XLEN, c.VStart, c.VLEN, c.VL, true, false), nil
	case "wsub_wx":
		return vpu.WopWX(vrf, vtype, c.Masked, c.Vd, c.Vs2, scalar, c.XLEN, c.VStart, c.VLEN, c.VL, false, true), nil
	case "wsubu_wx":
		return vpu.WopWX(vrf, vtype, c.Masked, c.Vd, c.Vs2, scalar, c.XLEN, c.VStart, c.VLEN, c.VL, false, false), nil
	case "mul_vv":
		return vpu.MulVV(vrf, vtype, c.Masked, c.Vd, c.Vs1, c.Vs2, c.VStart, c.VLEN, c.VL), nil
	case "mulh_vv":
		return vpu.MulhVV(vrf, vtype, c.Masked, c.Vd, c.Vs1, c.Vs2, c.VStart, c.VLEN, c.VL), nil
	case "mulhu_vv":
		return vpu.MulhuVV(vrf, vtype, c.Masked, c.Vd, c.Vs1, c.Vs2, c.VStart, c.VLEN, c.VL), nil
	case "mulhsu_vv":
		return vpu.MulhsuVV(vrf, vtype, c.Masked, c.Vd, c.Vs1, c.Vs2, c.VStart, c.VLEN, c.VL), nil
	case "mul_vx":
		return vpu.MulVX(vrf, vtype, c.Masked, c.Vd, c.Vs2, scalar, c.XLEN, c.VStart, c.VLEN, c.VL), nil
	case "mulh_vx":
		return vpu.MulhVX(vrf, vtype, c.Masked, c.Vd, c.Vs2, scalar, c.XLEN, c.VStart, c.VLEN, c.VL), nil
	case "mulhu_vx":
		return vpu.MulhuVX(vrf, vtype, c.Masked, c.Vd, c.Vs2, scalar, c.XLEN, c.VStart, c.VLEN, c.VL), nil
	case "mulhsu_vx":
		return vpu.MulhsuVX(vrf, vtype, c.Masked, c.Vd, c.Vs2, scalar, c.XLEN, c.VStart, c.VLEN, c.VL), nil
	case "mseq_vv":
		return vpu.MseqVV(vrf, vtype, c.Masked, c.Vd, c.Vs1, c.Vs2, c.VStart, c.VLEN, c.VL), nil
	case "mseq_vi":
		return vpu.MseqVI(vrf, vtype, c.Masked, c.Vd, c.Vs2, c.Imm, c.VStart, c.VLEN, c.VL), nil
	case "mseq_vx":
		return vpu.MseqVX(vrf, vtype, c.Masked, c.Vd, c.Vs2, scalar, c.XLEN, c.VStart, c.VLEN, c.VL), nil
	case "msne_vv":
		return vpu.MsneVV(vrf, vtype, c.Masked, c.Vd, c.Vs1, c.Vs2, c.VStart, c.VLEN, c.VL), nil
	case "msne_vi":
		return vpu.MsneVI(vrf, vtype, c.Masked, c.Vd, c.Vs2, c.Imm, c.VStart, c.VLEN, c.VL), nil
	case "msne_vx":
		return vpu.MsneVX(vrf, vtype, c.Masked, c.Vd, c.Vs2, scalar, c.XLEN, c.VStart, c.VLEN, c.VL), nil
	case "mslt_vv":
		return vpu.MsltVV(vrf, vtype, c.Masked, c.Vd, c.Vs1, c.Vs2, c.VStart, c.VLEN, c.VL), nil
	case "mslt_vx":
		return vpu.MsltVX(vrf, vtype, c.Masked, c.Vd, c.Vs2, scalar, c.XLEN, c.VStart, c.VLEN, c.VL), nil
	case "msltu_vv":
		return vpu.MsltuVV(vrf, vtype, c.Masked, c.Vd, c.Vs1, c.Vs2, c.VStart, c.VLEN, c.VL), nil
	case "msltu_vx":
		return vpu.MsltuVX(vrf, vtype, c.Masked, c.Vd, c.Vs2, scalar, c.XLEN, c.VStart, c.VLEN, c.VL), nil
	case "msle_vv":
		return vpu.MsleVV(vrf, vtype, c.Masked, c.Vd, c.Vs1, c.Vs2, c.VStart, c.VLEN, c.VL), nil
	case "msle_vi":
		return vpu.MsleVI(vrf, vtype, c.Masked, c.Vd, c.Vs2, c.Imm, c.VStart, c.VLEN, c.VL), nil
	case "msle_vx":
		return vpu.MsleVX(vrf, vtype, c.Masked, c.Vd, c.Vs2, scalar, c.XLEN, c.VStart, c.VLEN, c.VL), nil
	case "msleu_vv":
		return vpu.MsleuVV(vrf, vtype, c.Masked, c.Vd, c.Vs1, c.Vs2, c.VStart, c.VLEN, c.VL), nil
	case "msleu_vi":
		return vpu.MsleuVI(vrf, vtype, c.Masked, c.Vd, c.Vs2, c.Imm, c.VStart, c.VLEN, c.VL), nil
	case "msleu_vx":
		return vpu.MsleuVX(vrf, vtype, c.Masked, c.Vd, c.Vs2, scalar, c.XLEN, c.VStart, c.VLEN, c.VL), nil
	case "msgt_vv":
		return vpu.MsgtVV(vrf, vtype, c.Masked, c.Vd, c.Vs1, c.Vs2, c.VStart, c.VLEN, c.VL), nil
	case "msgt_vi":
		return vpu.MsgtVI(vrf, vtype, c.Masked, c.Vd, c.Vs2, c.Imm, c.VStart, c.VLEN, c.VL), nil
	case "msgt_vx":
		return vpu.MsgtVX(vrf, vtype, c.Masked, c.Vd, c.Vs2, scalar, c.XLEN, c.VStart, c.VLEN, c.VL), nil
	case "msgtu_vv":
		return vpu.MsgtuVV(vrf, vtype, c.Masked, c.Vd, c.Vs1, c.Vs2, c.VStart, c.VLEN, c.VL), nil
	case "msgtu_vi":
		return vpu.MsgtuVI(vrf, vtype, c.Masked, c.Vd, c.Vs2, c.Imm, c.VStart, c.VLEN, c.VL), nil
	case "msgtu_vx":
		return vpu.MsgtuVX(vrf, vtype, c.Masked, c.Vd, c.Vs2, scalar, c.XLEN, c.VStart, c.VLEN, c.VL), nil
	case "mv_vv":
		return vpu.MvVV(vrf, vtype, c.Masked, c.Vd, c.Vs1, c.VStart, c.VLEN, c.VL), nil
	case "mv_vi":
		return vpu.MvVI(vrf, vtype, c.Masked, c.Vd, c.Imm, c.VStart, c.VLEN, c.VL), nil
	case "mv_vx":
		return vpu.MvVX(vrf, vtype, c.Masked, c.Vd, scalar, c.XLEN, c.VStart, c.VLEN, c.VL), nil
	case "mv_xs":
		return vpu.MvXS(vrf, vtype, c.Vs2, scalar, c.XLEN, c.VLEN, c.VL), nil
	case "mv_sx":
		return vpu.MvSX(vrf, vtype, c.Vd, scalar, c.XLEN, c.VStart, c.VLEN, c.VL), nil
	case "slideup_vi":
		return vpu.SlideupVI(vrf, vtype, c.Masked, c.Vd, c.Vs2, c.Imm, c.VStart, c.VLEN, c.VL), nil
	case "slideup_vx":
		return vpu.SlideupVX(vrf, vtype, c.Masked, c.Vd, c.Vs2, scalar, c.XLEN, c.VStart, c.VLEN, c.VL), nil
	case "slidedown_vi":
		return vpu.SlidedownVI(vrf, vtype, c.Masked, c.Vd, c.Vs2, c.Imm, c.VStart, c.VLEN, c.VL), nil
	case "slidedown_vx":
		return vpu.SlidedownVX(vrf, vtype, c.Masked, c.Vd, c.Vs2, scalar, c.XLEN, c.VStart, c.VLEN, c.VL), nil
	case "slide1up":
		return vpu.Slide1Up(vrf, vtype, c.Masked, c.Vd, c.Vs2, scalar, c.XLEN, c.VStart, c.VLEN, c.VL), nil
	case "slide1down":
		return vpu.Slide1Down(vrf, vtype, c.Masked, c.Vd, c.Vs2, scalar, c.XLEN, c.VStart, c.VLEN, c.VL), nil
	case "vload_encoded_unitstride":
		return vpu.VloadUnitStride(read, vrf, vtype, c.Masked, c.EEW, c.Vd, c.VStart, c.VLEN, c.VL, c.MemStart), nil
	case "vload_encoded_stride":
		return vpu.VloadStride(read, vrf, vtype, c.Masked, c.EEW, c.Vd, c.VStart, c.VLEN, c.VL, c.MemStart, c.Stride), nil
	case "vload_segment_unitstride":
		return vpu.VloadSegmentUnitStride(read, vrf, vtype, c.Masked, c.EEW, c.NF, c.Vd, c.VStart, c.VLEN, c.VL, c.MemStart), nil
	case "vload_segment_stride":
		return vpu.VloadSegmentStride(read, vrf, vtype, c.Masked, c.EEW, c.NF, c.Vd, c.VStart, c.VLEN, c.VL, c.MemStart, c.Stride), nil
	case "vstore_encoded_unitstride":
		return vpu.VstoreUnitStride(write, vrf, vtype, c.Masked, c.EEW, c.Vd, c.VStart, c.VLEN, c.VL, c.MemStart), nil
	case "vstore_encoded_stride":
		return vpu.VstoreStride(write, vrf, vtype, c.Masked, c.EEW, c.Vd, c.VStart, c.VLEN, c.VL, c.MemStart, c.Stride), nil
	case "vstore_segment_unitstride":
		return vpu.VstoreSegmentUnitStride(write, vrf, vtype, c.Masked, c.EEW, c.NF, c.Vd, c.VStart, c.VLEN, c.VL, c.MemStart), nil
	case "vstore_segment_stride":
		return vpu.VstoreSegmentStride(write, vrf, vtype, c.Masked, c.EEW, c.NF, c.Vd, c.VStart, c.VLEN, c.VL, c.MemStart, c.Stride), nil
	default:
		return 0, fmt.Errorf("unknown op %q", c.Op)
	}
}
