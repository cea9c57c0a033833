package polyblep

import "github.com/blackboxaudio/bbx-audio-sub000/pkg/sample"

// PolySIMD computes four lanes of the polynomial step correction at once,
// selecting between the leading-edge and trailing-edge branches with
// sample.Vec4's compare-select helpers instead of a per-lane conditional —
// spec.md §4.5/§8 requires this to stay branchless and to agree bit-for-bit
// with the scalar Poly for dt < 0.5, since the two branches are mutually
// exclusive in that range.
func PolySIMD(t, dt sample.Vec4) sample.Vec4 {
	one := sample.SplatVec4(1)
	two := sample.SplatVec4(2)
	zero := sample.SplatVec4(0)

	tOverDt := divLanes(t, dt)
	leading := tOverDt.Mul(two).Sub(tOverDt.Mul(tOverDt)).Sub(one)

	tTrail := divLanes(t.Sub(one), dt)
	trailing := tTrail.Mul(tTrail).Add(tTrail.Mul(two)).Add(one)

	oneMinusDt := one.Sub(dt)
	selected := t.SelectLT(dt, leading, zero)
	return t.SelectGT(oneMinusDt, trailing, selected)
}

func divLanes(a, b sample.Vec4) sample.Vec4 {
	var out sample.Vec4
	for i := 0; i < 4; i++ {
		out[i] = a[i] / b[i]
	}
	return out
}
