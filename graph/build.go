package graph

import "deadlockscan/model"

// BuildFunction walks fn's statement tree in source order, maintaining a
// lock stack, and returns the per-function lock-dependency graph: an edge
// from the top of the stack to every newly acquired lock encountered
// beneath it. Wait operations contribute an edge from the current top of
// stack (when it differs from the wait's own target) but are never pushed
// — a wait releases and later re-acquires its own monitor, so it holds no
// nested lock across the wait itself.
func BuildFunction(fn *model.Function) *Graph {
	g := New()
	var stack []model.LockIdentity
	walkStatements(fn.Statements, &stack, g)
	return g
}

func walkStatements(statements []model.Statement, stack *[]model.LockIdentity, g *Graph) {
	for _, stmt := range statements {
		switch s := stmt.(type) {
		case *model.MonitorRegion:
			id := model.NewLockIdentity(s.Expression, s.ObjectType, s.DeclSite)
			if len(*stack) > 0 {
				g.AddEdge(string((*stack)[len(*stack)-1]), string(id))
			}
			*stack = append(*stack, id)
			walkStatements(s.Enclosed, stack, g)
			*stack = (*stack)[:len(*stack)-1]
		case *model.WaitOperation:
			id := model.NewLockIdentity(s.Target, s.ObjectType, s.DeclSite)
			if len(*stack) > 0 && (*stack)[len(*stack)-1] != id {
				g.AddEdge(string((*stack)[len(*stack)-1]), string(id))
			}
		}
	}
}

// Merge builds every function's per-function graph and unions their edges
// into one graph after canonicalising each endpoint — stripping the
// declaration-site suffix so every instance of a monitor-bearing type
// collapses onto a single node. This is the conservative, over-approximate
// step: two distinct instances of the same type acquired in a safe fixed
// order look identical to two instances acquired in conflicting orders.
func Merge(functions []*model.Function) *Graph {
	merged := New()
	for _, fn := range functions {
		local := BuildFunction(fn)
		for _, edge := range local.Edges() {
			merged.AddEdge(model.LockIdentity(edge[0]).Canonical(), model.LockIdentity(edge[1]).Canonical())
		}
	}
	return merged
}
