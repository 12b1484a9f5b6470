// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package feed

import "code.hybscloud.com/kont"

// Bindings to the kont effect worlds. The protocol itself only requires
// Pure and Bind; these witnesses make a feed pipeline a kont computation,
// so kont handlers, stepping, and error effects apply unchanged.

// Eff is the closure-based Cont-world effect type with erased payloads.
type Eff = kont.Eff[kont.Erased]

// Kont is the Cont-world binding: effects are kont continuations.
// Pipelines built under Kont may interleave kont effect operations
// (via [LiftEnum]/[PerformEnum]) and are run with [RunEff] or any
// kont handler.
type Kont struct{}

// Pure implements Monad for the Cont world.
func (Kont) Pure(v Erased) Eff { return kont.Pure[kont.Erased](v) }

// Bind implements Monad for the Cont world.
func (Kont) Bind(m Eff, f func(Erased) Eff) Eff { return kont.Bind(m, f) }

// RunEff runs an effect-free Cont-world pipeline and recovers its typed
// result. Pipelines containing kont effect operations suspend; drive those
// with kont.Handle or kont.Step instead.
func RunEff[A any](m Eff) A {
	v, susp := kont.Step(m)
	if susp != nil {
		panic("feed: effect suspension in RunEff; drive with kont.Handle")
	}
	return v.(A)
}

// Expr is the defunctionalized Expr-world effect type with erased payloads.
type Expr = kont.Expr[kont.Erased]

// KontExpr is the Expr-world binding: effects are defunctionalized frame
// chains evaluated by kont's trampoline. Pipelines interleaving kont effect
// operations defer through the frame chain instead of nesting closures.
type KontExpr struct{}

// Pure implements Monad for the Expr world.
func (KontExpr) Pure(v Erased) Expr { return kont.ExprReturn[kont.Erased](v) }

// Bind implements Monad for the Expr world.
func (KontExpr) Bind(m Expr, f func(Erased) Expr) Expr { return kont.ExprBind(m, f) }

// RunExpr trampolines an effect-free Expr-world pipeline to completion and
// recovers its typed result. Panics on kont effect operations; drive those
// with kont.HandleExpr or kont.StepExpr instead.
func RunExpr[A any](m Expr) A {
	return kont.RunPure(m).(A)
}
