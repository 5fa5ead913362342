package ec

import "github.com/longfellow-zk/longfellow/internal/algebra/fp"

// BN254G1 returns the short-Weierstrass descriptor for bn254's G1 curve,
// y^2 = x^3 + 3 over the scalar field wrapped by internal/algebra/fp — used
// as the ec package's own cross-check instantiation (A=0 exercises the
// addJZero fast path) and as the curve the Ligero/sumcheck layers run their
// own internal point arithmetic over, since the whole proving pipeline
// shares this one field.
func BN254G1() *Curve {
	f := fp.Field()
	a := f.Zero()
	b := f.OfScalar(3)
	gx := f.OfScalar(1)
	gy := f.OfScalar(2)
	return NewCurve(f, a, b, gx, gy)
}
