package visit

import "github.com/J0sF3r/asilo-fronted-sub000/pkg/types"

// reachable holds the forward edges of the visit status graph. Transitions
// are monotonic forward; cancellation is terminal from any non-completed
// state; completada and cancelada have no outgoing edges.
var reachable = map[types.VisitStatus][]types.VisitStatus{
	types.StatusProgramada: {types.StatusRealizada, types.StatusCancelada},
	types.StatusRealizada:  {types.StatusCompletada, types.StatusCancelada},
}

// CanTransition reports whether target is reachable from current. Saving a
// visit without changing its status is always legal.
func CanTransition(current, target types.VisitStatus) bool {
	if current == target {
		return true
	}
	for _, next := range reachable[current] {
		if next == target {
			return true
		}
	}
	return false
}

// ResultsReady reports whether a visit qualifies for the resultados_listos
// list filter: performed, with at least one exam order, and every order
// carrying a result. This is derived client-side, never a stored field.
func ResultsReady(v *types.Visit, orders []*types.ExamOrder) bool {
	if v.Status != types.StatusRealizada || len(orders) == 0 {
		return false
	}
	for _, order := range orders {
		if !order.HasResult() {
			return false
		}
	}
	return true
}
