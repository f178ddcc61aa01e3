// Package solve implements the constrained integer allocation model.
//
// Given per-form fragment supplies, target proportions and objective
// weights, the model maximizes the weighted ecological function score
//
//	maximize   Σ score[f] · allocated[f]
//	subject to allocated[f] ≤ supply[f]
//	           allocated[f] + slack[f] ≥ proportion[f] · total
//	           slack[f] ≤ slackCap
//	           total = Σ allocated[f],  total ≥ 1
//
// with all decision variables non-negative integers. The proportional
// constraints act as soft floors: a form may fall short of its target share
// by at most slackCap whole fragments.
//
// # Solver
//
// The model is solved exactly, without an external ILP backend. For a fixed
// total T the constraints decouple: each form has an integer feasible range
// [max(0, ⌈proportion·T − slackCap⌉), supply], and distributing the
// remaining T − Σ lower-bounds fragments greedily in descending score order
// is optimal (a unit-weight knapsack). The solver enumerates every candidate
// total from 1 to Σ supply and keeps the best objective, so its cost is
// linear in the total supply. Ties on the objective are broken toward the
// larger total, then by declaration order inside the greedy fill, making the
// result fully deterministic: identical inputs always produce identical
// allocations.
package solve

import (
	"math"
	"sort"

	"github.com/reeflab/reefplan/pkg/errors"
	"github.com/reeflab/reefplan/pkg/scenario"
)

// objEps guards floating-point objective comparisons.
const objEps = 1e-9

// FormInput is one growth form as seen by the solver.
type FormInput struct {
	Name       string  `json:"name"`
	Supply     int     `json:"supply"`
	Proportion float64 `json:"proportion"`
	Score      float64 `json:"score"`
}

// Problem is a complete allocation model instance.
type Problem struct {
	Forms    []FormInput `json:"forms"`
	SlackCap int         `json:"slack_cap"`
}

// FormResult is the per-form outcome of a solve.
type FormResult struct {
	Name      string  `json:"name"`
	Supply    int     `json:"supply"`
	Allocated int     `json:"allocated"`

	// Target is the proportional target used in the constraints.
	Target float64 `json:"target"`

	// Achieved is Allocated / Total (0 when Total is 0).
	Achieved float64 `json:"achieved"`

	// EcoScore is the objective weight, and Contribution its share of the
	// objective value (EcoScore · Allocated).
	EcoScore     float64 `json:"eco_score"`
	Contribution float64 `json:"contribution"`
}

// Allocation is an optimal solution to a Problem.
type Allocation struct {
	Forms []FormResult `json:"forms"`
	Total int          `json:"total"`

	// Score is the objective value, Σ EcoScore · Allocated.
	Score float64 `json:"score"`
}

// FromScenario builds a Problem from the enabled forms of a scenario,
// applying normalization and weighting per the scenario options.
func FromScenario(s *scenario.Scenario) Problem {
	enabled := s.Enabled()
	props := s.NormalizedProportions()
	scores := s.EffectiveScores()

	p := Problem{SlackCap: s.Options.SlackCap}
	for i, f := range enabled {
		p.Forms = append(p.Forms, FormInput{
			Name:       f.Name,
			Supply:     f.Supply,
			Proportion: props[i],
			Score:      scores[i],
		})
	}
	return p
}

// Solve finds an optimal allocation, or reports infeasibility via an error
// with code INFEASIBLE_MODEL. No partial allocation is ever returned.
//
// Preconditions (enforced upstream by scenario validation): at least one
// form, non-negative supplies with a positive sum, finite non-negative
// proportions and scores, SlackCap ≥ 0.
func (p Problem) Solve() (*Allocation, error) {
	n := len(p.Forms)
	if n == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "allocation model has no forms")
	}

	maxTotal := 0
	for _, f := range p.Forms {
		maxTotal += f.Supply
	}
	if maxTotal == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "allocation model has no supply")
	}

	// Fill order for surplus fragments: descending score, stable on
	// declaration order.
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return p.Forms[order[a]].Score > p.Forms[order[b]].Score
	})

	var (
		found    bool
		bestObj  float64
		bestTot  int
		bestAllo []int
	)

	lower := make([]int, n)
	alloc := make([]int, n)

	for total := 1; total <= maxTotal; total++ {
		base := 0
		feasible := true
		for i, f := range p.Forms {
			lb := int(math.Ceil(f.Proportion*float64(total) - float64(p.SlackCap) - objEps))
			if lb < 0 {
				lb = 0
			}
			if lb > f.Supply {
				feasible = false
				break
			}
			lower[i] = lb
			base += lb
		}
		if !feasible || base > total {
			continue
		}

		// Hand out the fragments above the floors to the highest-scoring
		// forms first; greedy is exact because every fragment weighs one.
		rem := total - base
		copy(alloc, lower)
		for _, i := range order {
			if rem == 0 {
				break
			}
			room := p.Forms[i].Supply - alloc[i]
			if room > rem {
				room = rem
			}
			alloc[i] += room
			rem -= room
		}
		if rem > 0 {
			continue // supplies cannot absorb this total
		}

		obj := 0.0
		for i, f := range p.Forms {
			obj += f.Score * float64(alloc[i])
		}

		// Strictly better objective wins; on a tie prefer the larger total
		// so slack is not spent without need.
		if !found || obj > bestObj+objEps || (obj > bestObj-objEps && total > bestTot) {
			found = true
			bestObj = obj
			bestTot = total
			if bestAllo == nil {
				bestAllo = make([]int, n)
			}
			copy(bestAllo, alloc)
		}
	}

	if !found {
		return nil, errors.New(errors.ErrCodeInfeasible,
			"no feasible allocation: supplies cannot meet the proportional floors within slack %d", p.SlackCap)
	}

	return p.buildResult(bestAllo, bestTot, bestObj), nil
}

// buildResult assembles the Allocation with derived per-form values.
func (p Problem) buildResult(alloc []int, total int, score float64) *Allocation {
	out := &Allocation{
		Forms: make([]FormResult, len(p.Forms)),
		Total: total,
		Score: score,
	}
	for i, f := range p.Forms {
		achieved := 0.0
		if total > 0 {
			achieved = float64(alloc[i]) / float64(total)
		}
		out.Forms[i] = FormResult{
			Name:         f.Name,
			Supply:       f.Supply,
			Allocated:    alloc[i],
			Target:       f.Proportion,
			Achieved:     achieved,
			EcoScore:     f.Score,
			Contribution: f.Score * float64(alloc[i]),
		}
	}
	return out
}

// AllocatedByName returns the allocation as a name → count map.
func (a *Allocation) AllocatedByName() map[string]int {
	m := make(map[string]int, len(a.Forms))
	for _, f := range a.Forms {
		m[f.Name] = f.Allocated
	}
	return m
}
