// Copyright 2016 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package quad

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

func checkNodeSet(tst *testing.T, kind string, n int, correct []float64, left, right bool) {
	o, err := NewNodeSet(kind, n)
	if err != nil {
		tst.Errorf("NewNodeSet failed:\n%v", err)
		return
	}
	chk.Vector(tst, io.Sf("%s n=%d", kind, n), 1e-14, o.T, correct)
	if o.LeftIsNode != left || o.RightIsNode != right {
		tst.Errorf("%s n=%d: wrong endpoint flags: %v %v", kind, n, o.LeftIsNode, o.RightIsNode)
	}
}

func Test_nodes01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("nodes01. Gauss-Legendre nodes")

	checkNodeSet(tst, GaussLegendre, 3, []float64{
		0.11270166537925831, 0.5, 0.8872983346207417,
	}, false, false)

	checkNodeSet(tst, GaussLegendre, 5, []float64{
		0.046910077030668004, 0.23076534494715845, 0.5, 0.7692346550528415, 0.953089922969332,
	}, false, false)

	checkNodeSet(tst, GaussLegendre, 7, []float64{
		0.025446043828620736, 0.12923440720030277, 0.2970774243113014, 0.5,
		0.7029225756886985, 0.8707655927996972, 0.9745539561713793,
	}, false, false)
}

func Test_nodes02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("nodes02. Gauss-Lobatto nodes")

	checkNodeSet(tst, GaussLobatto, 2, []float64{0, 1}, true, true)
	checkNodeSet(tst, GaussLobatto, 3, []float64{0, 0.5, 1}, true, true)

	checkNodeSet(tst, GaussLobatto, 5, []float64{
		0, 0.17267316464601143, 0.5, 0.8273268353539885, 1,
	}, true, true)

	checkNodeSet(tst, GaussLobatto, 7, []float64{
		0, 0.08488805186071653, 0.2655756032646429, 0.5,
		0.7344243967353571, 0.9151119481392834, 1,
	}, true, true)

	checkNodeSet(tst, GaussLobatto, 9, []float64{
		0, 0.05012100229426992, 0.16140686024463113, 0.3184412680869109, 0.5,
		0.6815587319130891, 0.8385931397553689, 0.94987899770573, 1,
	}, true, true)
}

func Test_nodes03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("nodes03. Clenshaw-Curtis and uniform nodes")

	checkNodeSet(tst, ClenshawCurtis, 2, []float64{0, 1}, true, true)
	checkNodeSet(tst, ClenshawCurtis, 3, []float64{0, 0.5, 1}, true, true)

	checkNodeSet(tst, ClenshawCurtis, 5, []float64{
		0, 0.14644660940672623779957781894757548, 0.5, 0.85355339059327376220042218105242452, 1,
	}, true, true)

	checkNodeSet(tst, ClenshawCurtis, 7, []float64{
		0, 0.066987298107780676618138414623531908, 0.25, 0.5,
		0.75, 0.93301270189221932338186158537646809, 1,
	}, true, true)

	checkNodeSet(tst, ClenshawCurtis, 9, []float64{
		0, 0.038060233744356621935908405301605857, 0.14644660940672623779957781894757548,
		0.30865828381745511413577000798480057, 0.5, 0.69134171618254488586422999201519943,
		0.85355339059327376220042218105242452, 0.96193976625564337806409159469839414, 1,
	}, true, true)

	checkNodeSet(tst, Uniform, 2, []float64{0, 1}, true, true)
	checkNodeSet(tst, Uniform, 3, []float64{0, 0.5, 1}, true, true)
	checkNodeSet(tst, Uniform, 5, []float64{0, 0.25, 0.5, 0.75, 1}, true, true)
}

func Test_nodes04(tst *testing.T) {

	//verbose()
	chk.PrintTitle("nodes04. Gauss-Radau (right) nodes")

	for _, n := range []int{2, 3, 5, 7, 9} {
		o, err := NewNodeSet(GaussRadau, n)
		if err != nil {
			tst.Errorf("NewNodeSet failed:\n%v", err)
			return
		}
		chk.IntAssert(len(o.T), n)
		chk.Scalar(tst, io.Sf("radau n=%d right endpoint", n), 1e-14, o.T[n-1], 1.0)
		if o.LeftIsNode || !o.RightIsNode {
			tst.Errorf("radau n=%d: wrong endpoint flags", n)
			return
		}
		if o.T[0] <= 0 {
			tst.Errorf("radau n=%d: left endpoint must not be a node. t[0] = %g", n, o.T[0])
			return
		}
		for j := 1; j < n; j++ {
			if o.T[j] <= o.T[j-1] {
				tst.Errorf("radau n=%d: nodes are not strictly increasing", n)
				return
			}
		}
	}

	// 2-node Radau IIA: t = {1/3, 1}
	o, err := NewNodeSet(GaussRadau, 2)
	if err != nil {
		tst.Errorf("NewNodeSet failed:\n%v", err)
		return
	}
	chk.Vector(tst, "radau n=2", 1e-14, o.T, []float64{1.0 / 3.0, 1.0})
}

func Test_nodes05(tst *testing.T) {

	//verbose()
	chk.PrintTitle("nodes05. invalid input")

	if _, err := NewNodeSet("not-a-quadrature", 3); err == nil {
		tst.Errorf("unknown quadrature type must fail")
	}
	if _, err := NewNodeSet(GaussLegendre, 0); err == nil {
		tst.Errorf("zero nodes must fail")
	}
	if _, err := NewNodeSet(GaussLobatto, 1); err == nil {
		tst.Errorf("1-node Gauss-Lobatto must fail")
	}
}
