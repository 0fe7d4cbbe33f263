package lineage

import "fmt"

// Stats summarizes the scheduled events of a forest.
type Stats struct {
	Trees     int     `yaml:"trees"`
	Nodes     int     `yaml:"nodes"`
	Divisions int     `yaml:"divisions"` // branch nodes
	Deaths    int     `yaml:"deaths"`    // leaf nodes
	MaxDepth  int     `yaml:"max_depth"` // root alone has depth 1
	LastEvent float64 `yaml:"last_event"`
	// TypeCounts maps type letter to the number of nodes carrying it.
	TypeCounts map[string]int `yaml:"type_counts"`
}

// ComputeStats walks every tree in the forest.
func ComputeStats(f Forest) Stats {
	st := Stats{Trees: len(f), TypeCounts: make(map[string]int)}
	for _, root := range f {
		if d := depth(root); d > st.MaxDepth {
			st.MaxDepth = d
		}
		root.Walk(func(n, _ *Node) bool {
			st.Nodes++
			switch {
			case n.IsLeaf():
				st.Deaths++
			case n.IsBranch():
				st.Divisions++
			}
			if n.EventTime > st.LastEvent {
				st.LastEvent = n.EventTime
			}
			st.TypeCounts[string(n.TypeLetter())]++
			return true
		})
	}
	return st
}

func depth(n *Node) int {
	if n == nil {
		return 0
	}
	return 1 + max(depth(n.Left), depth(n.Right))
}

// Validate checks the structural invariants of a forest: every node has zero
// or two children, its type is in range, and its event time is not earlier
// than its parent's.
func Validate(f Forest) error {
	var err error
	for i, root := range f {
		if root == nil {
			return fmt.Errorf("tree %d: nil root", i)
		}
		root.Walk(func(n, parent *Node) bool {
			switch {
			case !n.IsValid():
				err = fmt.Errorf("tree %d: node %c:%v has exactly one child", i, n.TypeLetter(), n.EventTime)
			case n.Type < 0 || n.Type > MaxType:
				err = fmt.Errorf("tree %d: type %d out of range", i, n.Type)
			case parent != nil && n.EventTime < parent.EventTime:
				err = fmt.Errorf("tree %d: node %c:%v fires before its parent (%v)", i, n.TypeLetter(), n.EventTime, parent.EventTime)
			}
			return err == nil
		})
		if err != nil {
			return err
		}
	}
	return nil
}
