package chunk

import "container/heap"

// huffNode is a node of the code-assignment tree. Leaves carry the prefix
// table row index they stand for.
type huffNode struct {
	weight int
	order  int // insertion order, breaks weight ties deterministically
	leaf   int
	left   *huffNode
	right  *huffNode
}

type huffHeap []*huffNode

func (h huffHeap) Len() int { return len(h) }

func (h huffHeap) Less(i, j int) bool {
	if h[i].weight != h[j].weight {
		return h[i].weight < h[j].weight
	}

	return h[i].order < h[j].order
}

func (h huffHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *huffHeap) Push(x any) { *h = append(*h, x.(*huffNode)) }

func (h *huffHeap) Pop() any {
	old := *h
	n := len(old)
	node := old[n-1]
	*h = old[:n-1]

	return node
}

// assignCodes gives every prefix row a Huffman code built from the row
// counts, so frequent ranges get short codes. A single row gets the empty
// code. With the table capped at 15 rows the deepest possible code is 14
// bits, inside the format's 16-bit ceiling.
func assignCodes[T any](prefixes []Prefix[T]) {
	switch len(prefixes) {
	case 0:
		return
	case 1:
		prefixes[0].Code = []bool{}

		return
	}

	h := make(huffHeap, 0, len(prefixes))
	for i := range prefixes {
		h = append(h, &huffNode{weight: prefixes[i].Count, order: i, leaf: i})
	}
	heap.Init(&h)

	order := len(prefixes)
	for h.Len() > 1 {
		left := heap.Pop(&h).(*huffNode)
		right := heap.Pop(&h).(*huffNode)
		heap.Push(&h, &huffNode{
			weight: left.weight + right.weight,
			order:  order,
			leaf:   -1,
			left:   left,
			right:  right,
		})
		order++
	}

	root := h[0]
	var walk func(node *huffNode, code []bool)
	walk = func(node *huffNode, code []bool) {
		if node.leaf >= 0 {
			prefixes[node.leaf].Code = append([]bool(nil), code...)

			return
		}
		walk(node.left, append(code, false))
		walk(node.right, append(code, true))
	}
	walk(root, nil)
}
