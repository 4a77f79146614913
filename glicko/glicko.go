/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */

// Package glicko implements the Glicko-2 rating system per Professor Mark E.
// Glickman's paper (https://www.glicko.net/glicko/glicko2.pdf). Variable
// naming follows the paper's conventions: mu and phi are the rating and
// rating deviation converted to the Glicko-2 internal scale, sigma is the
// rating volatility, and tau constrains how quickly volatility may change.
package glicko

import "math"

const (
	DefaultRating     = 1500.0
	DefaultDeviation  = 350.0
	DefaultVolatility = 0.06

	DefaultTau = 0.5

	scale   = 173.7178
	epsilon = 0.000001
)

// Rating holds a player's strength estimate on the public 1500 scale.
type Rating struct {
	Value      float64
	Deviation  float64
	Volatility float64
}

// NewRating returns a Rating at the standard Glicko-2 starting values.
func NewRating() Rating {
	return Rating{
		Value:      DefaultRating,
		Deviation:  DefaultDeviation,
		Volatility: DefaultVolatility,
	}
}

// System evaluates game outcomes under a fixed volatility-change constraint.
type System struct {
	tau float64
}

// NewSystem returns a System with the given tau. Reasonable choices are
// between 0.3 and 1.2; smaller values prevent volatility from changing by
// large amounts. Pass DefaultTau when in doubt.
func NewSystem(tau float64) *System {
	if tau <= 0 {
		tau = DefaultTau
	}
	return &System{tau: tau}
}

// game is a single outcome from one player's perspective.
type game struct {
	opponent Rating
	// 0 - loss; 0.5 - draw; 1 - win.
	score float64
}

// Update applies a single decisive or drawn game between two players and
// returns both updated ratings. When drawn is false the first argument is
// treated as the winner. Inputs are not modified.
func (s *System) Update(first, second Rating, drawn bool) (Rating, Rating) {
	score := 1.0
	if drawn {
		score = 0.5
	}

	updatedFirst := s.rate(first, []game{{opponent: second, score: score}})
	updatedSecond := s.rate(second, []game{{opponent: first, score: 1.0 - score}})

	return updatedFirst, updatedSecond
}

// rate computes a player's post-period rating from the games played during
// the period, following steps 1-8 of the paper.
func (s *System) rate(player Rating, games []game) Rating {
	mu := toMu(player.Value)
	phi := toPhi(player.Deviation)
	sigma := player.Volatility

	// Step 3: estimated variance of the rating based only on game outcomes.
	var vInv, dSum float64
	for _, gm := range games {
		oppMu := toMu(gm.opponent.Value)
		oppPhi := toPhi(gm.opponent.Deviation)
		gVal := g(oppPhi)
		eVal := e(mu, oppMu, gVal)

		vInv += gVal * gVal * eVal * (1 - eVal)
		dSum += gVal * (gm.score - eVal)
	}
	v := 1 / vInv

	// Step 4: estimated rating improvement.
	delta := v * dSum

	// Step 5: new volatility.
	sigmaPrime := s.solveSigma(sigma, delta, phi, v)

	// Step 6: pre-rating-period deviation.
	phiStar := math.Sqrt(phi*phi + sigmaPrime*sigmaPrime)

	// Step 7: new deviation and rating.
	phiPrime := 1 / math.Sqrt(1/(phiStar*phiStar)+1/v)
	muPrime := mu + phiPrime*phiPrime*dSum

	// Step 8: convert back to the public scale.
	return Rating{
		Value:      fromMu(muPrime),
		Deviation:  fromPhi(phiPrime),
		Volatility: sigmaPrime,
	}
}

func toMu(value float64) float64  { return (value - 1500) / scale }
func fromMu(mu float64) float64   { return scale*mu + 1500 }
func toPhi(dev float64) float64   { return dev / scale }
func fromPhi(phi float64) float64 { return phi * scale }

// g weights an opponent's result down as their rating deviation grows.
func g(phi float64) float64 {
	return 1 / math.Sqrt(1+3*phi*phi/(math.Pi*math.Pi))
}

// e is the expected score against an opponent with rating oppMu.
func e(mu, oppMu, g float64) float64 {
	return 1 / (1 + math.Exp(-g*(mu-oppMu)))
}

// solveSigma performs the step 5 iteration: find the root of f via the
// Illinois variant of regula falsi.
func (s *System) solveSigma(sigma, delta, phi, v float64) float64 {
	a := math.Log(sigma * sigma)

	f := func(x float64) float64 {
		ex := math.Exp(x)
		num := ex * (delta*delta - phi*phi - v - ex)
		den := 2 * (phi*phi + v + ex) * (phi*phi + v + ex)
		return num/den - (x-a)/(s.tau*s.tau)
	}

	lowerA := a
	var lowerB float64
	if delta*delta > phi*phi+v {
		lowerB = math.Log(delta*delta - phi*phi - v)
	} else {
		k := 1.0
		for f(a-k*s.tau) < 0 {
			k++
		}
		lowerB = a - k*s.tau
	}

	fA := f(lowerA)
	fB := f(lowerB)
	for math.Abs(lowerB-lowerA) > epsilon {
		c := lowerA + (lowerA-lowerB)*fA/(fB-fA)
		fC := f(c)

		if fC*fB <= 0 {
			lowerA = lowerB
			fA = fB
		} else {
			fA /= 2
		}

		lowerB = c
		fB = fC
	}

	return math.Exp(lowerA / 2)
}
