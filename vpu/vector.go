package vpu

// Vector is one logical vector: VL elements of SEW bits backed by a
// contiguous register group inside the register-file buffer. The backing
// slice covers the whole group (VLMax elements), so slide kernels can read
// raw elements past VL.
type Vector struct {
	Width int    // element width in bits
	Len   int    // active element count (VL)
	Start int    // base architectural register index
	off   int    // byte offset of the group inside the register file
	mem   []byte // group backing, VLMax elements
}

// Elem returns element i of the group as a borrowed window
func (v Vector) Elem(i int) Element {
	w := v.Width / 8
	return Element(v.mem[i*w : (i+1)*w])
}

// VLMax is the number of elements the backing group can hold
func (v Vector) VLMax() int {
	return len(v.mem) * 8 / v.Width
}

// active reports whether element i takes part in a masked operation
func active(vm Register, masked bool, i int) bool {
	return !masked || vm.Bit(i)
}

// MAssign copies src into v element-wise under the mask
func (v Vector) MAssign(src Vector, vm Register, masked bool, start int) {
	for i := start; i < v.Len; i++ {
		if active(vm, masked, i) {
			v.Elem(i).Assign(src.Elem(i))
		}
	}
}

// MAssignX broadcasts the scalar x into v element-wise under the mask
func (v Vector) MAssignX(x Element, vm Register, masked bool, start int) {
	for i := start; i < v.Len; i++ {
		if active(vm, masked, i) {
			v.Elem(i).Assign(x)
		}
	}
}

// MAdd writes l[i] + r[i] into v under the mask
func (v Vector) MAdd(l, r Vector, vm Register, masked bool, start int) {
	for i := start; i < v.Len; i++ {
		if active(vm, masked, i) {
			v.Elem(i).Add(l.Elem(i), r.Elem(i))
		}
	}
}

// MAddX writes l[i] + x into v under the mask
func (v Vector) MAddX(l Vector, x Element, vm Register, masked bool, start int) {
	for i := start; i < v.Len; i++ {
		if active(vm, masked, i) {
			v.Elem(i).Add(l.Elem(i), x)
		}
	}
}

// MSub writes l[i] - r[i] into v under the mask
func (v Vector) MSub(l, r Vector, vm Register, masked bool, start int) {
	for i := start; i < v.Len; i++ {
		if active(vm, masked, i) {
			v.Elem(i).Sub(l.Elem(i), r.Elem(i))
		}
	}
}

// MSubX writes l[i] - x into v under the mask
func (v Vector) MSubX(l Vector, x Element, vm Register, masked bool, start int) {
	for i := start; i < v.Len; i++ {
		if active(vm, masked, i) {
			v.Elem(i).Sub(l.Elem(i), x)
		}
	}
}

// MRsubX writes x - l[i] into v under the mask
func (v Vector) MRsubX(l Vector, x Element, vm Register, masked bool, start int) {
	for i := start; i < v.Len; i++ {
		if active(vm, masked, i) {
			v.Elem(i).Sub(x, l.Elem(i))
		}
	}
}

// MAnd writes l[i] & r[i] into v under the mask
func (v Vector) MAnd(l, r Vector, vm Register, masked bool, start int) {
	for i := start; i < v.Len; i++ {
		if active(vm, masked, i) {
			v.Elem(i).And(l.Elem(i), r.Elem(i))
		}
	}
}

// MAndX writes l[i] & x into v under the mask
func (v Vector) MAndX(l Vector, x Element, vm Register, masked bool, start int) {
	for i := start; i < v.Len; i++ {
		if active(vm, masked, i) {
			v.Elem(i).And(l.Elem(i), x)
		}
	}
}

// MOr writes l[i] | r[i] into v under the mask
func (v Vector) MOr(l, r Vector, vm Register, masked bool, start int) {
	for i := start; i < v.Len; i++ {
		if active(vm, masked, i) {
			v.Elem(i).Or(l.Elem(i), r.Elem(i))
		}
	}
}

// MOrX writes l[i] | x into v under the mask
func (v Vector) MOrX(l Vector, x Element, vm Register, masked bool, start int) {
	for i := start; i < v.Len; i++ {
		if active(vm, masked, i) {
			v.Elem(i).Or(l.Elem(i), x)
		}
	}
}

// MXor writes l[i] ^ r[i] into v under the mask
func (v Vector) MXor(l, r Vector, vm Register, masked bool, start int) {
	for i := start; i < v.Len; i++ {
		if active(vm, masked, i) {
			v.Elem(i).Xor(l.Elem(i), r.Elem(i))
		}
	}
}

// MXorX writes l[i] ^ x into v under the mask
func (v Vector) MXorX(l Vector, x Element, vm Register, masked bool, start int) {
	for i := start; i < v.Len; i++ {
		if active(vm, masked, i) {
			v.Elem(i).Xor(l.Elem(i), x)
		}
	}
}

// MSll shifts l[i] left by the masked low bits of r[i] under the mask
func (v Vector) MSll(l, r Vector, vm Register, masked bool, start int) {
	for i := start; i < v.Len; i++ {
		if active(vm, masked, i) {
			v.Elem(i).Sll(l.Elem(i), shiftAmountElem(v.Width, r.Elem(i)))
		}
	}
}

// MSllX shifts l[i] left by the pre-masked scalar amount under the mask
func (v Vector) MSllX(l Vector, amount uint, vm Register, masked bool, start int) {
	for i := start; i < v.Len; i++ {
		if active(vm, masked, i) {
			v.Elem(i).Sll(l.Elem(i), amount)
		}
	}
}

// MSrl logically shifts l[i] right by the masked low bits of r[i]
func (v Vector) MSrl(l, r Vector, vm Register, masked bool, start int) {
	for i := start; i < v.Len; i++ {
		if active(vm, masked, i) {
			v.Elem(i).Srl(l.Elem(i), shiftAmountElem(v.Width, r.Elem(i)))
		}
	}
}

// MSrlX logically shifts l[i] right by the pre-masked scalar amount
func (v Vector) MSrlX(l Vector, amount uint, vm Register, masked bool, start int) {
	for i := start; i < v.Len; i++ {
		if active(vm, masked, i) {
			v.Elem(i).Srl(l.Elem(i), amount)
		}
	}
}

// MSra arithmetically shifts l[i] right by the masked low bits of r[i]
func (v Vector) MSra(l, r Vector, vm Register, masked bool, start int) {
	for i := start; i < v.Len; i++ {
		if active(vm, masked, i) {
			v.Elem(i).Sra(l.Elem(i), shiftAmountElem(v.Width, r.Elem(i)))
		}
	}
}

// MSraX arithmetically shifts l[i] right by the pre-masked scalar amount
func (v Vector) MSraX(l Vector, amount uint, vm Register, masked bool, start int) {
	for i := start; i < v.Len; i++ {
		if active(vm, masked, i) {
			v.Elem(i).Sra(l.Elem(i), amount)
		}
	}
}

// MWadd writes the sign-extended widened sum l[i] + r[i] into v. The
// receiver's elements are twice the source width (or equal, for the wv
// forms where one source is already wide).
func (v Vector) MWadd(l, r Vector, vm Register, masked bool, start int) {
	for i := start; i < v.Len; i++ {
		if active(vm, masked, i) {
			v.Elem(i).Wadd(l.Elem(i), r.Elem(i))
		}
	}
}

// MWaddX is MWadd against a narrow scalar
func (v Vector) MWaddX(l Vector, x Element, vm Register, masked bool, start int) {
	for i := start; i < v.Len; i++ {
		if active(vm, masked, i) {
			v.Elem(i).Wadd(l.Elem(i), x)
		}
	}
}

// MWaddU writes the zero-extended widened sum l[i] + r[i] into v
func (v Vector) MWaddU(l, r Vector, vm Register, masked bool, start int) {
	for i := start; i < v.Len; i++ {
		if active(vm, masked, i) {
			v.Elem(i).WaddU(l.Elem(i), r.Elem(i))
		}
	}
}

// MWaddUX is MWaddU against a narrow scalar
func (v Vector) MWaddUX(l Vector, x Element, vm Register, masked bool, start int) {
	for i := start; i < v.Len; i++ {
		if active(vm, masked, i) {
			v.Elem(i).WaddU(l.Elem(i), x)
		}
	}
}

// MWsub writes the sign-extended widened difference l[i] - r[i] into v
func (v Vector) MWsub(l, r Vector, vm Register, masked bool, start int) {
	for i := start; i < v.Len; i++ {
		if active(vm, masked, i) {
			v.Elem(i).Wsub(l.Elem(i), r.Elem(i))
		}
	}
}

// MWsubX is MWsub against a narrow scalar
func (v Vector) MWsubX(l Vector, x Element, vm Register, masked bool, start int) {
	for i := start; i < v.Len; i++ {
		if active(vm, masked, i) {
			v.Elem(i).Wsub(l.Elem(i), x)
		}
	}
}

// MWsubU writes the zero-extended widened difference l[i] - r[i] into v
func (v Vector) MWsubU(l, r Vector, vm Register, masked bool, start int) {
	for i := start; i < v.Len; i++ {
		if active(vm, masked, i) {
			v.Elem(i).WsubU(l.Elem(i), r.Elem(i))
		}
	}
}

// MWsubUX is MWsubU against a narrow scalar
func (v Vector) MWsubUX(l Vector, x Element, vm Register, masked bool, start int) {
	for i := start; i < v.Len; i++ {
		if active(vm, masked, i) {
			v.Elem(i).WsubU(l.Elem(i), x)
		}
	}
}

// MMul writes the product l[i] * r[i] into v; kind selects operand
// signedness and high selects the upper result half
func (v Vector) MMul(l, r Vector, kind mulKind, high bool, vm Register, masked bool, start int) {
	for i := start; i < v.Len; i++ {
		if active(vm, masked, i) {
			v.Elem(i).Mul(l.Elem(i), r.Elem(i), kind, high)
		}
	}
}

// MMulX writes the product l[i] * x into v
func (v Vector) MMulX(l Vector, x Element, kind mulKind, high bool, vm Register, masked bool, start int) {
	for i := start; i < v.Len; i++ {
		if active(vm, masked, i) {
			v.Elem(i).Mul(l.Elem(i), x, kind, high)
		}
	}
}

// MSlideup writes src[i-amount] into v[i] for i >= max(start, amount).
// Elements below the slide amount are untouched.
func (v Vector) MSlideup(src Vector, amount uint, vm Register, masked bool, start int) {
	first := start
	if int(amount) > first {
		first = int(amount)
	}
	for i := first; i < v.Len; i++ {
		if active(vm, masked, i) {
			v.Elem(i).Assign(src.Elem(i - int(amount)))
		}
	}
}

// MSlidedown writes src[i+amount] into v[i]. Source indices past VL but
// inside the register group read the raw bytes; indices past the group
// produce zero.
func (v Vector) MSlidedown(src Vector, amount uint, vm Register, masked bool, start int) {
	vlmax := src.VLMax()
	for i := start; i < v.Len; i++ {
		if !active(vm, masked, i) {
			continue
		}
		j := i + int(amount)
		if j < vlmax {
			v.Elem(i).Assign(src.Elem(j))
		} else {
			v.Elem(i).AssignInt(0)
		}
	}
}

// Comparison writers. The destination is a raw register treated as the
// packed result mask: bit i receives the predicate of element i. Bits
// before start and bits of skipped elements are unchanged.

// MEq sets bit i of m to l[i] == r[i]
func (m Register) MEq(l, r Vector, vm Register, masked bool, start int) {
	for i := start; i < l.Len; i++ {
		if active(vm, masked, i) {
			m.SetBit(i, l.Elem(i).Eq(r.Elem(i)))
		}
	}
}

// MEqX sets bit i of m to l[i] == x
func (m Register) MEqX(l Vector, x Element, vm Register, masked bool, start int) {
	for i := start; i < l.Len; i++ {
		if active(vm, masked, i) {
			m.SetBit(i, l.Elem(i).Eq(x))
		}
	}
}

// MNe sets bit i of m to l[i] != r[i]
func (m Register) MNe(l, r Vector, vm Register, masked bool, start int) {
	for i := start; i < l.Len; i++ {
		if active(vm, masked, i) {
			m.SetBit(i, !l.Elem(i).Eq(r.Elem(i)))
		}
	}
}

// MNeX sets bit i of m to l[i] != x
func (m Register) MNeX(l Vector, x Element, vm Register, masked bool, start int) {
	for i := start; i < l.Len; i++ {
		if active(vm, masked, i) {
			m.SetBit(i, !l.Elem(i).Eq(x))
		}
	}
}

// MLtS sets bit i of m to l[i] < r[i], signed
func (m Register) MLtS(l, r Vector, vm Register, masked bool, start int) {
	for i := start; i < l.Len; i++ {
		if active(vm, masked, i) {
			m.SetBit(i, l.Elem(i).LtS(r.Elem(i)))
		}
	}
}

// MLtSX sets bit i of m to l[i] < x, signed
func (m Register) MLtSX(l Vector, x Element, vm Register, masked bool, start int) {
	for i := start; i < l.Len; i++ {
		if active(vm, masked, i) {
			m.SetBit(i, l.Elem(i).LtS(x))
		}
	}
}

// MLeS sets bit i of m to l[i] <= r[i], signed
func (m Register) MLeS(l, r Vector, vm Register, masked bool, start int) {
	for i := start; i < l.Len; i++ {
		if active(vm, masked, i) {
			m.SetBit(i, !r.Elem(i).LtS(l.Elem(i)))
		}
	}
}

// MLeSX sets bit i of m to l[i] <= x, signed
func (m Register) MLeSX(l Vector, x Element, vm Register, masked bool, start int) {
	for i := start; i < l.Len; i++ {
		if active(vm, masked, i) {
			m.SetBit(i, !x.LtS(l.Elem(i)))
		}
	}
}

// MGtS sets bit i of m to l[i] > r[i], signed
func (m Register) MGtS(l, r Vector, vm Register, masked bool, start int) {
	for i := start; i < l.Len; i++ {
		if active(vm, masked, i) {
			m.SetBit(i, r.Elem(i).LtS(l.Elem(i)))
		}
	}
}

// MGtSX sets bit i of m to l[i] > x, signed
func (m Register) MGtSX(l Vector, x Element, vm Register, masked bool, start int) {
	for i := start; i < l.Len; i++ {
		if active(vm, masked, i) {
			m.SetBit(i, x.LtS(l.Elem(i)))
		}
	}
}

// MGeS sets bit i of m to l[i] >= r[i], signed
func (m Register) MGeS(l, r Vector, vm Register, masked bool, start int) {
	for i := start; i < l.Len; i++ {
		if active(vm, masked, i) {
			m.SetBit(i, !l.Elem(i).LtS(r.Elem(i)))
		}
	}
}

// MLtU sets bit i of m to l[i] < r[i], unsigned
func (m Register) MLtU(l, r Vector, vm Register, masked bool, start int) {
	for i := start; i < l.Len; i++ {
		if active(vm, masked, i) {
			m.SetBit(i, l.Elem(i).LtU(r.Elem(i)))
		}
	}
}

// MLtUX sets bit i of m to l[i] < x, unsigned
func (m Register) MLtUX(l Vector, x Element, vm Register, masked bool, start int) {
	for i := start; i < l.Len; i++ {
		if active(vm, masked, i) {
			m.SetBit(i, l.Elem(i).LtU(x))
		}
	}
}

// MLeU sets bit i of m to l[i] <= r[i], unsigned
func (m Register) MLeU(l, r Vector, vm Register, masked bool, start int) {
	for i := start; i < l.Len; i++ {
		if active(vm, masked, i) {
			m.SetBit(i, !r.Elem(i).LtU(l.Elem(i)))
		}
	}
}

// MLeUX sets bit i of m to l[i] <= x, unsigned
func (m Register) MLeUX(l Vector, x Element, vm Register, masked bool, start int) {
	for i := start; i < l.Len; i++ {
		if active(vm, masked, i) {
			m.SetBit(i, !x.LtU(l.Elem(i)))
		}
	}
}

// MGtU sets bit i of m to l[i] > r[i], unsigned
func (m Register) MGtU(l, r Vector, vm Register, masked bool, start int) {
	for i := start; i < l.Len; i++ {
		if active(vm, masked, i) {
			m.SetBit(i, r.Elem(i).LtU(l.Elem(i)))
		}
	}
}

// MGtUX sets bit i of m to l[i] > x, unsigned
func (m Register) MGtUX(l Vector, x Element, vm Register, masked bool, start int) {
	for i := start; i < l.Len; i++ {
		if active(vm, masked, i) {
			m.SetBit(i, x.LtU(l.Elem(i)))
		}
	}
}

// MGeU sets bit i of m to l[i] >= r[i], unsigned
func (m Register) MGeU(l, r Vector, vm Register, masked bool, start int) {
	for i := start; i < l.Len; i++ {
		if active(vm, masked, i) {
			m.SetBit(i, !l.Elem(i).LtU(r.Elem(i)))
		}
	}
}
