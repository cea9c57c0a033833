package sample

// Vec4 is a 4-lane portable vector of float32, used by the polyblep package
// for branchless selection. Go has no portable SIMD intrinsics in the
// retrieval pack (no repo imports one), so this is a manual array-backed
// lane type rather than a real SIMD instruction sequence — it exists to
// preserve the shape of the branchless compare-select algorithm from
// spec.md §4.5/§9, not to claim actual vector hardware usage.
type Vec4 [4]float32

// SplatVec4 returns a Vec4 with all four lanes set to v.
func SplatVec4(v float32) Vec4 { return Vec4{v, v, v, v} }

// LoadVec4 reads up to 4 elements from s, zero-filling any remainder.
func LoadVec4(s []float32) Vec4 {
	var v Vec4
	n := len(s)
	if n > 4 {
		n = 4
	}
	copy(v[:n], s[:n])
	return v
}

// ToArray returns the four lanes as a plain array.
func (v Vec4) ToArray() [4]float32 { return v }

func (v Vec4) Add(o Vec4) Vec4 {
	return Vec4{v[0] + o[0], v[1] + o[1], v[2] + o[2], v[3] + o[3]}
}

func (v Vec4) Sub(o Vec4) Vec4 {
	return Vec4{v[0] - o[0], v[1] - o[1], v[2] - o[2], v[3] - o[3]}
}

func (v Vec4) Mul(o Vec4) Vec4 {
	return Vec4{v[0] * o[0], v[1] * o[1], v[2] * o[2], v[3] * o[3]}
}

// SelectGT returns, lane by lane, a[i] if v[i] > cmp[i] else b[i] — a
// branchless select implemented with a boolean-to-float mask multiply so
// that no per-lane conditional jump appears in the generated code.
func (v Vec4) SelectGT(cmp, a, b Vec4) Vec4 {
	var out Vec4
	for i := 0; i < 4; i++ {
		mask := maskGT(v[i], cmp[i])
		out[i] = a[i]*mask + b[i]*(1-mask)
	}
	return out
}

// SelectLT is the mirror of SelectGT for the '<' comparison.
func (v Vec4) SelectLT(cmp, a, b Vec4) Vec4 {
	var out Vec4
	for i := 0; i < 4; i++ {
		mask := maskLT(v[i], cmp[i])
		out[i] = a[i]*mask + b[i]*(1-mask)
	}
	return out
}

func maskGT(x, y float32) float32 {
	if x > y {
		return 1
	}
	return 0
}

func maskLT(x, y float32) float32 {
	if x < y {
		return 1
	}
	return 0
}
