package golden

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
)

// Case describes one opcode invocation and its expected post-state. Cases
// live in TOML files, one case per file; vector registers and memory images
// are hex byte strings in little-endian element order.
type Case struct {
	Name string `toml:"name"`
	Op   string `toml:"op"`

	VLEN    int  `toml:"vlen"`
	XLEN    int  `toml:"xlen"`
	SEW     int  `toml:"sew"`
	LMULNum int  `toml:"lmul_num"`
	LMULDen int  `toml:"lmul_den"`
	VL      int  `toml:"vl"`
	VStart  int  `toml:"vstart"`
	Masked  bool `toml:"masked"`

	Vd  int `toml:"vd"`
	Vs1 int `toml:"vs1"`
	Vs2 int `toml:"vs2"`

	Imm    uint8  `toml:"imm"`
	Scalar string `toml:"scalar"` // hex, little-endian, XLEN/8 bytes

	// memory-op parameters
	EEW      int    `toml:"eew"`
	NF       int    `toml:"nf"`
	Stride   int    `toml:"stride"`
	MemStart uint64 `toml:"mem_start"`
	MemSize  int    `toml:"mem_size"`

	In  map[string]string `toml:"in"`  // "v0".."v31", "mem"
	Out map[string]string `toml:"out"` // "v0".."v31", "mem", "scalar"

	ExpectCode string `toml:"expect_code"` // defaults to NO_EXCEPT
}

// LoadCase reads and validates a single case file
func LoadCase(path string) (*Case, error) {
	c := &Case{
		VLEN:    128,
		XLEN:    32,
		SEW:     8,
		LMULNum: 1,
		LMULDen: 1,
		MemSize: 256,
	}
	if _, err := toml.DecodeFile(path, c); err != nil {
		return nil, fmt.Errorf("failed to parse case file %s: %w", path, err)
	}
	if c.Op == "" {
		return nil, fmt.Errorf("case file %s has no op", path)
	}
	if c.Name == "" {
		c.Name = c.Op
	}
	if c.ExpectCode == "" {
		c.ExpectCode = "NO_EXCEPT"
	}
	return c, nil
}

// parseHex decodes a hex byte string, ignoring spaces and underscores
func parseHex(s string) ([]byte, error) {
	clean := strings.Map(func(r rune) rune {
		if r == ' ' || r == '_' || r == '\n' || r == '\t' {
			return -1
		}
		return r
	}, s)
	b, err := hex.DecodeString(clean)
	if err != nil {
		return nil, fmt.Errorf("bad hex string %q: %w", s, err)
	}
	return b, nil
}

// regIndex parses a "vN" key into the register number
func regIndex(key string) (int, bool) {
	if len(key) < 2 || key[0] != 'v' {
		return 0, false
	}
	n := 0
	for _, r := range key[1:] {
		if r < '0' || r > '9' {
			return 0, false
		}
		n = n*10 + int(r-'0')
	}
	if n > 31 {
		return 0, false
	}
	return n, true
}
