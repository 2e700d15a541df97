package parser

import "sync"

// entityNode is one level of the named character reference trie.
type entityNode struct {
	children map[rune]*entityNode
	value    string
	terminal bool
}

func (n *entityNode) child(r rune) *entityNode {
	if n.children == nil {
		return nil
	}
	return n.children[r]
}

var (
	entityTrieOnce sync.Once
	entityTrieRoot *entityNode
)

// entityTrie returns the root of the trie built from namedEntities.
func entityTrie() *entityNode {
	entityTrieOnce.Do(func() {
		entityTrieRoot = &entityNode{}
		for name, value := range namedEntities {
			node := entityTrieRoot
			for _, r := range name {
				next := node.child(r)
				if next == nil {
					next = &entityNode{}
					if node.children == nil {
						node.children = make(map[rune]*entityNode)
					}
					node.children[r] = next
				}
				node = next
			}
			node.value = value
			node.terminal = true
		}
	})
	return entityTrieRoot
}

// entityMatch is the result of a longest prefix lookup.
type entityMatch struct {
	// length is the number of runes of the matched name, 0 when nothing
	// matched.
	length int
	value  string
}

// longestEntityPrefix returns the longest entity name that prefixes s.
func longestEntityPrefix(s []rune) entityMatch {
	var m entityMatch
	node := entityTrie()
	for i, r := range s {
		node = node.child(r)
		if node == nil {
			break
		}
		if node.terminal {
			m = entityMatch{length: i + 1, value: node.value}
		}
	}
	return m
}
