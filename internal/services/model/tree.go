package model

import "sort"

// Node is one node of a regression tree. Nodes are stored in a flat slice so
// the tree serializes as plain data; Left/Right are slice indices.
type Node struct {
	Feature   int
	Threshold float64
	Left      int
	Right     int
	Value     float64
	Leaf      bool
}

// Tree is a binary regression tree fitted to residuals with exact greedy
// variance-reduction splits. Construction is deterministic for a fixed
// input order.
type Tree struct {
	Nodes []Node
}

// Predict walks the tree for one standardized row.
func (t *Tree) Predict(row []float64) float64 {
	i := 0
	for !t.Nodes[i].Leaf {
		n := t.Nodes[i]
		if row[n.Feature] <= n.Threshold {
			i = n.Left
		} else {
			i = n.Right
		}
	}
	return t.Nodes[i].Value
}

type treeBuilder struct {
	x        [][]float64
	y        []float64
	maxDepth int
	minLeaf  int
	nodes    []Node
}

// buildTree fits a tree over the rows selected by idx.
func buildTree(x [][]float64, y []float64, idx []int, maxDepth, minLeaf int) Tree {
	b := &treeBuilder{x: x, y: y, maxDepth: maxDepth, minLeaf: minLeaf}
	b.grow(idx, 0)
	return Tree{Nodes: b.nodes}
}

func (b *treeBuilder) grow(idx []int, depth int) int {
	if depth >= b.maxDepth || len(idx) < 2*b.minLeaf || len(idx) < 2 {
		return b.leaf(idx)
	}

	feature, threshold, ok := b.bestSplit(idx)
	if !ok {
		return b.leaf(idx)
	}

	left := make([]int, 0, len(idx))
	right := make([]int, 0, len(idx))
	for _, i := range idx {
		if b.x[i][feature] <= threshold {
			left = append(left, i)
		} else {
			right = append(right, i)
		}
	}

	at := len(b.nodes)
	b.nodes = append(b.nodes, Node{Feature: feature, Threshold: threshold})
	l := b.grow(left, depth+1)
	r := b.grow(right, depth+1)
	b.nodes[at].Left = l
	b.nodes[at].Right = r
	return at
}

func (b *treeBuilder) leaf(idx []int) int {
	sum := 0.0
	for _, i := range idx {
		sum += b.y[i]
	}
	value := 0.0
	if len(idx) > 0 {
		value = sum / float64(len(idx))
	}
	at := len(b.nodes)
	b.nodes = append(b.nodes, Node{Value: value, Leaf: true})
	return at
}

// bestSplit scans every feature for the split maximizing variance reduction.
// Ties keep the first candidate found, which makes construction order-stable.
func (b *treeBuilder) bestSplit(idx []int) (int, float64, bool) {
	width := len(b.x[idx[0]])
	total := 0.0
	for _, i := range idx {
		total += b.y[i]
	}
	n := float64(len(idx))
	baseScore := total * total / n

	bestGain := 0.0
	bestFeature := -1
	bestThreshold := 0.0

	order := make([]int, len(idx))
	for j := 0; j < width; j++ {
		copy(order, idx)
		sort.SliceStable(order, func(a, c int) bool {
			return b.x[order[a]][j] < b.x[order[c]][j]
		})

		sumLeft := 0.0
		for k := 0; k < len(order)-1; k++ {
			sumLeft += b.y[order[k]]
			nLeft := float64(k + 1)
			nRight := n - nLeft
			if int(nLeft) < b.minLeaf || int(nRight) < b.minLeaf {
				continue
			}

			v, next := b.x[order[k]][j], b.x[order[k+1]][j]
			if v == next {
				continue // cannot split between equal values
			}

			sumRight := total - sumLeft
			gain := sumLeft*sumLeft/nLeft + sumRight*sumRight/nRight - baseScore
			if gain > bestGain+1e-12 {
				bestGain = gain
				bestFeature = j
				bestThreshold = v + (next-v)/2
			}
		}
	}

	if bestFeature < 0 {
		return 0, 0, false
	}
	return bestFeature, bestThreshold, true
}
