package listctl

import (
	"errors"
	"sync"
)

// ErrActionInFlight is returned when a mutation of the same kind is already
// running for one of the targeted IDs. It is the server-side guard behind
// the disabled-while-pending UI controls: a double-click can never dispatch
// the same approve/reject twice.
var ErrActionInFlight = errors.New("an action of this kind is already in flight for this user")

// ActionType identifies a state-changing user operation.
type ActionType string

const (
	ActionApprove     ActionType = "approve"
	ActionReject      ActionType = "reject"
	ActionRevoke      ActionType = "revoke"
	ActionBulkApprove ActionType = "bulk-approve"
	ActionBulkReject  ActionType = "bulk-reject"
)

// Label returns the human-readable verb for confirmation dialogs.
func (a ActionType) Label() string {
	switch a {
	case ActionApprove, ActionBulkApprove:
		return "Approve"
	case ActionReject, ActionBulkReject:
		return "Reject"
	case ActionRevoke:
		return "Revoke access"
	default:
		return string(a)
	}
}

// Valid reports whether a is a known action type.
func (a ActionType) Valid() bool {
	switch a {
	case ActionApprove, ActionReject, ActionRevoke, ActionBulkApprove, ActionBulkReject:
		return true
	}
	return false
}

// PendingAction is a transient intent created when an action button is
// clicked, consumed by a confirmation dialog, and discarded after execution
// or cancellation.
type PendingAction struct {
	Type      ActionType
	TargetIDs []string
}

// kind collapses single and bulk variants: a bulk approve and a single
// approve of the same user are the same kind of mutation for in-flight
// accounting.
func (a ActionType) kind() string {
	switch a {
	case ActionApprove, ActionBulkApprove:
		return "approve"
	case ActionReject, ActionBulkReject:
		return "reject"
	default:
		return string(a)
	}
}

// inflightRegistry tracks which (action kind, target id) pairs currently
// have a mutation running. Acquisition is all-or-nothing across a bulk
// target set.
type inflightRegistry struct {
	mu     sync.Mutex
	active map[string]struct{}
}

func newInflightRegistry() *inflightRegistry {
	return &inflightRegistry{active: make(map[string]struct{})}
}

// begin reserves all (action, id) keys or none. The returned release
// function must be called once the mutation resolves.
func (r *inflightRegistry) begin(action ActionType, ids []string) (func(), error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	keys := make([]string, 0, len(ids))
	for _, id := range ids {
		keys = append(keys, action.kind()+":"+id)
	}
	for _, key := range keys {
		if _, busy := r.active[key]; busy {
			return nil, ErrActionInFlight
		}
	}
	for _, key := range keys {
		r.active[key] = struct{}{}
	}

	var once sync.Once
	release := func() {
		once.Do(func() {
			r.mu.Lock()
			defer r.mu.Unlock()
			for _, key := range keys {
				delete(r.active, key)
			}
		})
	}
	return release, nil
}
