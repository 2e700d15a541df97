package spec

// https://dom.spec.whatwg.org/#nodelist
type NodeList []*Node

func (h *NodeList) Contains(n *Node) int {
	for i := range *h {
		if n == (*h)[i] {
			return i
		}
	}
	return -1
}

// Remove deletes and returns the node at i, or nil when i is out of range.
func (h *NodeList) Remove(i int) *Node {
	if i < 0 || i >= len(*h) {
		return nil
	}
	node := (*h)[i]
	*h = append((*h)[:i], (*h)[i+1:]...)
	return node
}

func (h *NodeList) Insert(i int, n *Node) {
	*h = append(*h, nil)
	copy((*h)[i+1:], (*h)[i:])
	(*h)[i] = n
}
