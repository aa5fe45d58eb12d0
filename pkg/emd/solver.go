package emd

import "math"

// The transportation problem is solved with the network simplex specialized
// to dense bipartite graphs: a northwest-corner initial basis, duals computed
// over the basis spanning tree, and stepping-stone pivots along the unique
// cycle closed by the entering arc.

const reducedCostEps = 1e-10

type basisCell struct {
	i, j int
	flow float64
}

// northwestCorner builds an initial basic feasible solution with exactly
// n+m-1 basic cells forming a spanning tree of the bipartite graph.
func northwestCorner(a, b []float64) []basisCell {
	n, m := len(a), len(b)
	cells := make([]basisCell, 0, n+m-1)

	i, j := 0, 0
	remA, remB := a[0], b[0]
	for {
		q := min(remA, remB)
		cells = append(cells, basisCell{i: i, j: j, flow: q})
		remA -= q
		remB -= q
		if i == n-1 && j == m-1 {
			return cells
		}
		switch {
		case i == n-1:
			j++
			remB = b[j]
		case j == m-1:
			i++
			remA = a[i]
		case remA <= remB:
			i++
			remA = a[i]
		default:
			j++
			remB = b[j]
		}
	}
}

// solveTransport runs the simplex until optimality or the iteration budget is
// exhausted.  It returns the flow matrix and the total transport cost.
func solveTransport(a, b []float64, costs *Matrix, maxIter int) (*Matrix, float64, error) {
	n, m := len(a), len(b)
	cells := northwestCorner(a, b)

	// Node ids: rows are 0..n-1, columns are n..n+m-1.
	adj := make([][]int, n+m)
	u := make([]float64, n)
	v := make([]float64, m)
	parent := make([]int, n+m)    // parent node in the BFS tree
	parentArc := make([]int, n+m) // basis cell connecting node to its parent
	queue := make([]int, 0, n+m)

	for iter := 0; iter < maxIter; iter++ {
		for node := range adj {
			adj[node] = adj[node][:0]
		}
		for c, cell := range cells {
			adj[cell.i] = append(adj[cell.i], c)
			adj[n+cell.j] = append(adj[n+cell.j], c)
		}

		computeDuals(cells, adj, costs, u, v, n)

		// Entering arc: the non-basic cell with the most negative reduced cost.
		enterI, enterJ := -1, -1
		best := -reducedCostEps
		for i := 0; i < n; i++ {
			for j := 0; j < m; j++ {
				if rc := costs.At(i, j) - u[i] - v[j]; rc < best {
					best = rc
					enterI, enterJ = i, j
				}
			}
		}
		if enterI < 0 {
			flow := NewMatrix(n, m)
			total := 0.0
			for _, cell := range cells {
				flow.Set(cell.i, cell.j, cell.flow)
				total += cell.flow * costs.At(cell.i, cell.j)
			}
			return flow, total, nil
		}

		// The tree path from row enterI to column enterJ closes the pivot
		// cycle.  Arcs at even positions along the path lose flow.
		path := treePath(adj, cells, parent, parentArc, queue, enterI, n+enterJ, n)

		theta := math.Inf(1)
		leaving := -1
		for k := 0; k < len(path); k += 2 {
			if f := cells[path[k]].flow; f < theta {
				theta = f
				leaving = path[k]
			}
		}
		for k, c := range path {
			if k%2 == 0 {
				cells[c].flow -= theta
			} else {
				cells[c].flow += theta
			}
		}
		cells[leaving] = basisCell{i: enterI, j: enterJ, flow: theta}
	}
	return nil, 0, ErrMaxIterations
}

// computeDuals solves u[i] + v[j] = cost(i, j) over the basis tree, anchoring
// u[0] = 0.
func computeDuals(cells []basisCell, adj [][]int, costs *Matrix, u, v []float64, n int) {
	seen := make([]bool, len(adj))
	stack := []int{0}
	seen[0] = true
	u[0] = 0
	for len(stack) > 0 {
		node := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, c := range adj[node] {
			cell := cells[c]
			colNode := n + cell.j
			next := colNode
			if node == colNode {
				next = cell.i
			}
			if seen[next] {
				continue
			}
			seen[next] = true
			if next == colNode {
				v[cell.j] = costs.At(cell.i, cell.j) - u[cell.i]
			} else {
				u[cell.i] = costs.At(cell.i, cell.j) - v[cell.j]
			}
			stack = append(stack, next)
		}
	}
}

// treePath returns the basis cells along the unique tree path between the two
// nodes, in order starting from `from`.
func treePath(adj [][]int, cells []basisCell, parent, parentArc []int, queue []int, from, to, n int) []int {
	for i := range parent {
		parent[i] = -1
	}
	queue = queue[:0]
	queue = append(queue, from)
	parent[from] = from
	for len(queue) > 0 && parent[to] == -1 {
		node := queue[0]
		queue = queue[1:]
		for _, c := range adj[node] {
			cell := cells[c]
			next := cell.i
			if node == cell.i {
				next = n + cell.j
			}
			if parent[next] != -1 {
				continue
			}
			parent[next] = node
			parentArc[next] = c
			queue = append(queue, next)
		}
	}

	var path []int
	for node := to; node != from; node = parent[node] {
		path = append(path, parentArc[node])
	}
	// Reverse so the path starts at `from`.
	for l, r := 0, len(path)-1; l < r; l, r = l+1, r-1 {
		path[l], path[r] = path[r], path[l]
	}
	return path
}
