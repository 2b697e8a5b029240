package generator

import (
	"fmt"

	"github.com/arborist-labs/alchemy/internal/rng"
	"github.com/arborist-labs/alchemy/pkg/lambda"
)

// BTree generates a term shaped like a random unlabeled binary tree over n
// nodes: a node with two children becomes an App, a node with exactly one
// child becomes an Abs, and a leaf becomes a Var. The tree shape is built
// by inserting a random permutation of 0..n into a binary search tree, the
// same construction the original generator used for its node placement.
type BTree struct {
	size               int
	freeVarProbability float64
	standardization    Standardization
	rng                *rng.Rng
}

// NewBTree constructs a BTree generator. size must be positive;
// freeVarProbability must be in [0, 1].
func NewBTree(size int, freeVarProbability float64, std Standardization, seed rng.Seed) (*BTree, error) {
	if size <= 0 {
		return nil, fmt.Errorf("generator: btree size must be positive, got %d", size)
	}
	if freeVarProbability < 0 || freeVarProbability > 1 {
		return nil, fmt.Errorf("generator: free variable probability must be in [0, 1], got %f", freeVarProbability)
	}
	return &BTree{
		size:               size,
		freeVarProbability: freeVarProbability,
		standardization:    std,
		rng:                rng.New(seed),
	}, nil
}

type btreeNode struct {
	value       int
	left, right *btreeNode
}

func (n *btreeNode) insert(v int) {
	if v <= n.value {
		if n.left == nil {
			n.left = &btreeNode{value: v}
		} else {
			n.left.insert(v)
		}
		return
	}
	if n.right == nil {
		n.right = &btreeNode{value: v}
	} else {
		n.right.insert(v)
	}
}

// Generate draws a fresh permutation from the generator's random source and
// shapes it into a term.
func (g *BTree) Generate() (lambda.Term, error) {
	permutation := make([]int, g.size)
	for i := range permutation {
		permutation[i] = i
	}
	g.rng.Shuffle(len(permutation), func(i, j int) {
		permutation[i], permutation[j] = permutation[j], permutation[i]
	})

	root := &btreeNode{value: permutation[0]}
	for _, v := range permutation[1:] {
		root.insert(v)
	}
	return g.toLambda(root, 0), nil
}

func (g *BTree) toLambda(n *btreeNode, depth int) lambda.Term {
	switch {
	case n.left == nil && n.right == nil:
		return g.leaf(depth)
	case n.left != nil && n.right != nil:
		return lambda.NewApp(g.toLambda(n.left, depth), g.toLambda(n.right, depth))
	case n.left != nil:
		return lambda.NewAbs(g.toLambda(n.left, depth+1))
	default:
		return lambda.NewAbs(g.toLambda(n.right, depth+1))
	}
}

// leaf resolves a tree leaf to a variable: free with probability
// freeVarProbability (or always, when no binder is in scope), otherwise
// bound according to the configured standardization.
func (g *BTree) leaf(depth int) lambda.Term {
	if depth == 0 || g.rng.Float64() < g.freeVarProbability {
		return lambda.NewVar(depth)
	}
	switch g.standardization {
	case StandardizationPrefix:
		return lambda.NewVar(depth - 1)
	case StandardizationPostfix:
		return lambda.NewVar(0)
	default:
		return lambda.NewVar(g.rng.IntN(depth))
	}
}
