package vpu

// Element is a little-endian two's-complement integer of arbitrary byte
// width. It is a borrowed window into the register-file buffer (or a scratch
// allocation); arithmetic methods write their result into the receiver.
type Element []byte

// newElement allocates a zeroed scratch element of the given bit width
func newElement(widthBits int) Element {
	return make(Element, widthBits/8)
}

// clone returns a scratch copy of e
func (e Element) clone() Element {
	c := make(Element, len(e))
	copy(c, e)
	return c
}

// negative reports whether the top bit is set
func (e Element) negative() bool {
	return e[len(e)-1]&0x80 != 0
}

// signFill is the fill byte for sign extension of e
func (e Element) signFill() byte {
	if e.negative() {
		return 0xFF
	}
	return 0
}

// extByte returns byte i of e under sign or zero extension to any width
func (e Element) extByte(i int, signed bool) byte {
	if i < len(e) {
		return e[i]
	}
	if signed {
		return e.signFill()
	}
	return 0
}

// intByte returns byte i of the sign-extended 64-bit value x
func intByte(x int64, i int) byte {
	if i < 8 {
		return byte(x >> (8 * i))
	}
	if x < 0 {
		return 0xFF
	}
	return 0
}

// Assign copies src into e. Both must have the same width.
func (e Element) Assign(src Element) {
	copy(e, src)
}

// AssignInt writes the sign-extended 64-bit value x into e
func (e Element) AssignInt(x int64) {
	for i := range e {
		e[i] = intByte(x, i)
	}
}

// AssignUint writes the zero-extended 64-bit value x into e
func (e Element) AssignUint(x uint64) {
	for i := range e {
		if i < 8 {
			e[i] = byte(x >> (8 * i))
		} else {
			e[i] = 0
		}
	}
}

// Inc adds one to e in place
func (e Element) Inc() {
	for i := range e {
		e[i]++
		if e[i] != 0 {
			return
		}
	}
}

// Dec subtracts one from e in place
func (e Element) Dec() {
	for i := range e {
		e[i]--
		if e[i] != 0xFF {
			return
		}
	}
}

// Neg replaces e with its two's complement
func (e Element) Neg() {
	for i := range e {
		e[i] = ^e[i]
	}
	e.Inc()
}

// Add writes l + r into e, byte by byte with an 8-bit carry
func (e Element) Add(l, r Element) {
	carry := uint16(0)
	for i := range e {
		x := uint16(l[i]) + uint16(r[i]) + carry
		e[i] = byte(x)
		carry = x >> 8
	}
}

// Sub writes l - r into e via the two's complement of r
func (e Element) Sub(l, r Element) {
	twos := r.clone()
	twos.Neg()
	e.Add(l, twos)
}

// Wadd writes the widened sum of l and r into e; the narrower operands are
// sign-extended to the destination width. Operands may be the destination
// width (wv forms) or half of it.
func (e Element) Wadd(l, r Element) {
	carry := uint16(0)
	for i := range e {
		x := uint16(l.extByte(i, true)) + uint16(r.extByte(i, true)) + carry
		e[i] = byte(x)
		carry = x >> 8
	}
}

// WaddU is Wadd with zero extension of the narrower operands
func (e Element) WaddU(l, r Element) {
	carry := uint16(0)
	for i := range e {
		x := uint16(l.extByte(i, false)) + uint16(r.extByte(i, false)) + carry
		e[i] = byte(x)
		carry = x >> 8
	}
}

// Wsub writes the widened difference l - r into e. The subtrahend is
// sign-extended to the destination width before negation so the borrow
// propagates across the widened bytes.
func (e Element) Wsub(l, r Element) {
	wide := newElement(len(e) * 8)
	for i := range wide {
		wide[i] = r.extByte(i, true)
	}
	wide.Neg()
	carry := uint16(0)
	for i := range e {
		x := uint16(l.extByte(i, true)) + uint16(wide[i]) + carry
		e[i] = byte(x)
		carry = x >> 8
	}
}

// WsubU is Wsub with zero extension of both operands
func (e Element) WsubU(l, r Element) {
	wide := newElement(len(e) * 8)
	for i := range wide {
		wide[i] = r.extByte(i, false)
	}
	wide.Neg()
	carry := uint16(0)
	for i := range e {
		x := uint16(l.extByte(i, false)) + uint16(wide[i]) + carry
		e[i] = byte(x)
		carry = x >> 8
	}
}

// And writes l & r into e
func (e Element) And(l, r Element) {
	for i := range e {
		e[i] = l[i] & r[i]
	}
}

// Or writes l | r into e
func (e Element) Or(l, r Element) {
	for i := range e {
		e[i] = l[i] | r[i]
	}
}

// Xor writes l ^ r into e
func (e Element) Xor(l, r Element) {
	for i := range e {
		e[i] = l[i] ^ r[i]
	}
}

// shiftLeftOne shifts the element left by one bit, filling with zero
func shiftLeftOne(b []byte) {
	cin := byte(0)
	for i := range b {
		cout := b[i] >> 7
		b[i] = b[i]<<1 | cin
		cin = cout
	}
}

// shiftRightOne shifts the element right by one bit; arith injects the sign
// bit at the top, otherwise zero
func shiftRightOne(b []byte, arith bool) {
	cin := byte(0)
	if arith {
		cin = b[len(b)-1] & 0x80
	}
	for i := len(b) - 1; i >= 0; i-- {
		cout := (b[i] & 0x01) << 7
		b[i] = b[i]>>1 | cin
		cin = cout
	}
}

// shiftAmount masks a raw shift-amount source down to the effective count:
// the low log2(width) bits
func shiftAmount(widthBits int, raw uint64) uint {
	return uint(raw) & uint(widthBits-1)
}

// shiftAmountElem reads the shift-amount source element and masks it to the
// low log2(width) bits
func shiftAmountElem(widthBits int, src Element) uint {
	var raw uint64
	for i := 0; i < len(src) && i < 8; i++ {
		raw |= uint64(src[i]) << (8 * i)
	}
	return shiftAmount(widthBits, raw)
}

// Sll writes l shifted left by amount into e (amount already masked)
func (e Element) Sll(l Element, amount uint) {
	e.Assign(l)
	for ; amount > 0; amount-- {
		shiftLeftOne(e)
	}
}

// Srl writes l logically shifted right by amount into e
func (e Element) Srl(l Element, amount uint) {
	e.Assign(l)
	for ; amount > 0; amount-- {
		shiftRightOne(e, false)
	}
}

// Sra writes l arithmetically shifted right by amount into e
func (e Element) Sra(l Element, amount uint) {
	e.Assign(l)
	for ; amount > 0; amount-- {
		shiftRightOne(e, true)
	}
}

// Eq reports e == r
func (e Element) Eq(r Element) bool {
	for i := range e {
		if e[i] != r[i] {
			return false
		}
	}
	return true
}

// LtS reports e < r as signed integers: subtract one byte wider than the
// operands and inspect the top bit, so the sign is exact even when the
// narrow difference would overflow
func (e Element) LtS(r Element) bool {
	d := newElement(len(e)*8 + 8)
	d.Wsub(e, r)
	return d.negative()
}

// LtU reports e < r as unsigned integers, walking bytes from most to least
// significant
func (e Element) LtU(r Element) bool {
	for i := len(e) - 1; i >= 0; i-- {
		if e[i] != r[i] {
			return e[i] < r[i]
		}
	}
	return false
}

// mulKind selects the signedness of a multiply's operands
type mulKind int

const (
	mulSS mulKind = iota // signed x signed
	mulUU                // unsigned x unsigned
	mulSU                // signed (left) x unsigned (right)
)

// Mul writes the signed/unsigned product of l and r into e. The product is
// computed as a sign-magnitude schoolbook byte product into a double-width
// accumulator; high selects the upper half, otherwise the lower half is
// kept. l, r and e all share one width.
func (e Element) Mul(l, r Element, kind mulKind, high bool) {
	n := len(e)

	lNeg := kind != mulUU && l.negative()
	rNeg := kind == mulSS && r.negative()

	a := l.clone()
	if lNeg {
		a.Neg()
	}
	b := r.clone()
	if rNeg {
		b.Neg()
	}

	out := make([]byte, 2*n)
	for i := 0; i < n; i++ {
		carry := uint32(0)
		for j := 0; j < n; j++ {
			cur := uint32(out[i+j]) + uint32(a[i])*uint32(b[j]) + carry
			out[i+j] = byte(cur)
			carry = cur >> 8
		}
		out[i+n] = byte(carry)
	}

	if lNeg != rNeg {
		Element(out).Neg()
	}

	if high {
		copy(e, out[n:])
	} else {
		copy(e, out[:n])
	}
}
