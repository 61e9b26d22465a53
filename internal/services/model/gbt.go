package model

import (
	"fmt"
	"math/rand"
	"sort"
)

// GBTParams are the fixed hyperparameters of the boosted ensemble. The seed
// drives row subsampling; with Subsample 1.0 construction is fully
// deterministic regardless of it.
type GBTParams struct {
	Trees        int
	LearningRate float64
	MaxDepth     int
	MinLeaf      int
	Subsample    float64
	Seed         int64
}

// DefaultGBTParams mirror the production training configuration.
func DefaultGBTParams() GBTParams {
	return GBTParams{
		Trees:        300,
		LearningRate: 0.1,
		MaxDepth:     6,
		MinLeaf:      1,
		Subsample:    1.0,
		Seed:         42,
	}
}

func (p GBTParams) validate() error {
	if p.Trees <= 0 {
		return fmt.Errorf("gbt: trees must be positive")
	}
	if p.LearningRate <= 0 || p.LearningRate > 1 {
		return fmt.Errorf("gbt: learning rate must be in (0, 1]")
	}
	if p.MaxDepth <= 0 {
		return fmt.Errorf("gbt: max depth must be positive")
	}
	if p.Subsample <= 0 || p.Subsample > 1 {
		return fmt.Errorf("gbt: subsample must be in (0, 1]")
	}
	return nil
}

// GBTRegressor is a gradient-boosted ensemble of regression trees trained
// with squared loss: each round fits a tree to the current residuals and
// adds it with shrinkage.
type GBTRegressor struct {
	Params    GBTParams
	BaseScore float64
	Trees     []Tree
}

// Fit trains the ensemble on a standardized matrix against y.
func (g *GBTRegressor) Fit(x [][]float64, y []float64) error {
	if err := g.Params.validate(); err != nil {
		return err
	}
	if len(x) == 0 || len(x) != len(y) {
		return fmt.Errorf("gbt: invalid training set: %d rows, %d targets", len(x), len(y))
	}

	n := len(x)
	if g.Params.MinLeaf < 1 {
		g.Params.MinLeaf = 1
	}

	base := 0.0
	for _, v := range y {
		base += v
	}
	base /= float64(n)
	g.BaseScore = base

	pred := make([]float64, n)
	for i := range pred {
		pred[i] = base
	}

	resid := make([]float64, n)
	rng := rand.New(rand.NewSource(g.Params.Seed))
	g.Trees = make([]Tree, 0, g.Params.Trees)

	for m := 0; m < g.Params.Trees; m++ {
		sse := 0.0
		for i := range resid {
			resid[i] = y[i] - pred[i]
			sse += resid[i] * resid[i]
		}
		if sse == 0 {
			break // already interpolating the training set
		}

		idx := g.sampleRows(rng, n)
		tree := buildTree(x, resid, idx, g.Params.MaxDepth, g.Params.MinLeaf)
		g.Trees = append(g.Trees, tree)

		for i := range pred {
			pred[i] += g.Params.LearningRate * tree.Predict(x[i])
		}
	}
	return nil
}

// Predict scores one standardized row.
func (g *GBTRegressor) Predict(row []float64) float64 {
	out := g.BaseScore
	for i := range g.Trees {
		out += g.Params.LearningRate * g.Trees[i].Predict(row)
	}
	return out
}

// sampleRows picks rows for one boosting round. At subsample 1.0 it returns
// all rows in input order.
func (g *GBTRegressor) sampleRows(rng *rand.Rand, n int) []int {
	if g.Params.Subsample >= 1 {
		idx := make([]int, n)
		for i := range idx {
			idx[i] = i
		}
		return idx
	}

	k := int(float64(n) * g.Params.Subsample)
	if k < 1 {
		k = 1
	}
	perm := rng.Perm(n)[:k]
	// Keep ascending order so tree construction stays input-order stable.
	idx := make([]int, len(perm))
	copy(idx, perm)
	sort.Ints(idx)
	return idx
}
