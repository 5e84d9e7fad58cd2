// Package treeviz renders recorded search trees as Graphviz DOT graphs.
// The output is plain DOT text; rasterising it is left to external tools.
// Trees are read-only snapshots, valid between a finished search and the
// next one.
package treeviz

import (
	"fmt"
	"strconv"

	"github.com/awalterschulze/gographviz"

	"github.com/Mgrdich/TermTacToe/internal/mcts"
	"github.com/Mgrdich/TermTacToe/internal/search"
)

// MinimaxDOT renders the flat vertex slice of a recorded minimax search,
// limited to maxDepth plies below the root. Edges on a vertex's recorded
// best move are drawn bold.
func MinimaxDOT[M comparable](vertices []search.Vertex[M], maxDepth int) (string, error) {
	g := gographviz.NewGraph()
	if err := g.SetName("minimax"); err != nil {
		return "", err
	}
	if err := g.SetDir(true); err != nil {
		return "", err
	}
	if len(vertices) == 0 {
		return g.String(), nil
	}

	var walk func(idx, depth int) error
	walk = func(idx, depth int) error {
		v := vertices[idx]
		label := fmt.Sprintf("value %.2f", v.Value)
		if v.HasMove {
			label = fmt.Sprintf("%v\nvalue %.2f", v.Move, v.Value)
		}
		if err := g.AddNode("minimax", nodeName(idx), map[string]string{
			"label": strconv.Quote(label),
			"shape": "box",
		}); err != nil {
			return err
		}
		if depth >= maxDepth {
			return nil
		}
		child := idx + 1
		for c := 0; c < v.ChildCount; c++ {
			if err := walk(child, depth+1); err != nil {
				return err
			}
			attrs := map[string]string{}
			if v.HasBest && vertices[child].HasMove && vertices[child].Move == v.BestMove {
				attrs["style"] = "bold"
			}
			if err := g.AddEdge(nodeName(idx), nodeName(child), true, attrs); err != nil {
				return err
			}
			child = search.SubtreeEnd(vertices, child)
		}
		return nil
	}
	if err := walk(0, 0); err != nil {
		return "", err
	}
	return g.String(), nil
}

// MCTSDOT renders an MCTS tree down to maxDepth plies below root. Each
// node shows its move, accumulated points, visit count and mean.
func MCTSDOT[M comparable](root *mcts.Node[M], exploration float64, maxDepth int) (string, error) {
	g := gographviz.NewGraph()
	if err := g.SetName("mcts"); err != nil {
		return "", err
	}
	if err := g.SetDir(true); err != nil {
		return "", err
	}
	if root == nil {
		return g.String(), nil
	}

	next := 0
	var walk func(n *mcts.Node[M], parent *mcts.Node[M], parentName string, depth int) error
	walk = func(n *mcts.Node[M], parent *mcts.Node[M], parentName string, depth int) error {
		name := nodeName(next)
		next++

		label := fmt.Sprintf("%v\n%.1f / %.0f\nmean %.3f", n.Move, n.Numerator, n.Denominator, n.Mean())
		if parent == nil {
			label = fmt.Sprintf("root\n%.1f / %.0f", n.Numerator, n.Denominator)
		} else if n.Denominator > 0 {
			label += fmt.Sprintf("\nucb %.3f", n.UCB(parent, exploration))
		}
		if err := g.AddNode("mcts", name, map[string]string{
			"label": strconv.Quote(label),
		}); err != nil {
			return err
		}
		if parentName != "" {
			if err := g.AddEdge(parentName, name, true, nil); err != nil {
				return err
			}
		}
		if depth >= maxDepth {
			return nil
		}
		for _, c := range n.Children {
			if err := walk(c, n, name, depth+1); err != nil {
				return err
			}
		}
		return nil
	}
	if err := walk(root, nil, "", 0); err != nil {
		return "", err
	}
	return g.String(), nil
}

func nodeName(i int) string {
	return "n" + strconv.Itoa(i)
}
