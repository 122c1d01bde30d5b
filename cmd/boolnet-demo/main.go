// Package main demonstrates core boolnet usage patterns.
package main

import (
	"fmt"

	"github.com/qdyn/boolnet/pkg/boolnet"
	"github.com/qdyn/boolnet/pkg/boolnet/analysis"
	"github.com/qdyn/boolnet/pkg/boolnet/solver"
)

func main() {
	fmt.Println("=== boolnet Examples ===")
	fmt.Println()

	expressionAlgebra()
	primeImplicants()
	toggleSwitch()
	mutualInhibition()
}

// expressionAlgebra demonstrates building, simplifying, and formatting
// Boolean expressions over named variables.
func expressionAlgebra() {
	fmt.Println("1. Expression Algebra:")

	reg := boolnet.NewRegistry()
	a, _ := reg.Ensure("A")
	b, _ := reg.Ensure("B")
	c, _ := reg.Ensure("C")

	// E = A & B | C
	e := boolnet.Or(boolnet.And(boolnet.Atom(a), boolnet.Atom(b)), boolnet.Atom(c))
	fmt.Printf("   E = %s\n", e.Format(reg))

	notE := boolnet.Not(e)
	fmt.Printf("   !E = %s\n", notE.Format(reg))

	nnf := boolnet.NNF(notE)
	fmt.Printf("   NNF(!E) = %s\n", nnf.Format(reg))

	simplified, changed := boolnet.Simplify(boolnet.And(boolnet.True, e))
	fmt.Printf("   simplify(TRUE & E) = %s (changed=%v)\n", simplified.Format(reg), changed)
	fmt.Println()
}

// primeImplicants demonstrates computing the prime-implicant antichain
// of an expression.
func primeImplicants() {
	fmt.Println("2. Prime Implicants:")

	reg := boolnet.NewRegistry()
	a, _ := reg.Ensure("A")
	b, _ := reg.Ensure("B")
	c, _ := reg.Ensure("C")

	e := boolnet.Or(boolnet.And(boolnet.Atom(a), boolnet.Atom(b)), boolnet.Atom(c))
	primes := boolnet.PrimeImplicants(e)

	fmt.Printf("   PI(A & B | C) has %d implicant(s):\n", primes.Len())
	for _, p := range primes.Patterns() {
		fmt.Printf("     %s\n", p.String(reg.Len()))
	}
	fmt.Println()
}

// toggleSwitch builds a one-component negative-feedback network
// (A <- !A) and finds its fixed points and trap spaces.
func toggleSwitch() {
	fmt.Println("3. Self-Inhibiting Switch (A <- !A):")

	m := boolnet.NewModel()
	a, _ := m.Ensure("A")

	_ = m.PushRule(a, 1, boolnet.Not(boolnet.Atom(a)))

	fps := analysis.NewFixedPointBuilder(m).Solve(0)
	fmt.Printf("   fixed points: %d found\n", len(fps.Patterns))
	fmt.Print(fps.Format())

	traps := analysis.NewTrapSpaceBuilder(m).Solve(solver.ModeALL, 0)
	fmt.Printf("   trap spaces (ALL): %d found\n", len(traps.Patterns))
	fmt.Print(traps.Format())
	fmt.Println()
}

// mutualInhibition builds a two-component mutual-inhibition network
// (A <- !B, B <- !A), which stabilizes at two fixed points, and reports
// both its fixed points and its elementary trap spaces.
func mutualInhibition() {
	fmt.Println("4. Mutual Inhibition (A <- !B, B <- !A):")

	m := boolnet.NewModel()
	a, _ := m.Ensure("A")
	b, _ := m.Ensure("B")

	_ = m.PushRule(a, 1, boolnet.Not(boolnet.Atom(b)))
	_ = m.PushRule(b, 1, boolnet.Not(boolnet.Atom(a)))

	fps := analysis.NewFixedPointBuilder(m).Solve(0)
	fmt.Printf("   fixed points: %d found\n", len(fps.Patterns))
	fmt.Print(fps.Format())

	elementary := analysis.NewTrapSpaceBuilder(m).Solve(solver.ModeMIN, 0)
	fmt.Printf("   elementary trap spaces: %d found\n", len(elementary.Patterns))
	fmt.Print(elementary.Format())
	fmt.Println()
}
