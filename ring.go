package hashring

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"sync"

	"hashring/hash"
)

// ErrEmptyRing is returned by lookups when no virtual nodes are on the ring.
// Callers must add at least one node before routing keys.
var ErrEmptyRing = errors.New("hashring: empty ring")

// DefaultReplicas is the virtual node count used when the caller supplies a
// non-positive replica count.
const DefaultReplicas = 128

// NodeID constrains the physical node identifier type. Identifiers must be
// usable as map keys and carry a stable string form; the string form is used
// both to derive virtual node hash keys and as the total order for
// deterministic node enumeration.
type NodeID interface {
	comparable
	fmt.Stringer
}

// vnode is one virtual node: a position on the ring and the physical node
// that owns it. key is a fixed-width lowercase hex digest, so lexicographic
// order equals numeric order.
type vnode[N NodeID] struct {
	key   string
	owner N
}

// Ring implements consistent hashing with virtual nodes over physical nodes
// of type N. All methods are safe for concurrent use: a single exclusive
// lock serializes lookups and mutations, so no caller can observe the ring
// and the per-node registry out of step.
type Ring[N NodeID] struct {
	mu       sync.Mutex
	replicas int
	algo     hash.Algorithm
	hashFn   hash.Func
	vnodes   []vnode[N]     // sorted ascending by key
	owned    map[N][]string // node -> hash keys generated for it
}

// New creates a ring that places each physical node at replicas positions
// using the given digest algorithm. Non-positive replica counts fall back to
// DefaultReplicas.
func New[N NodeID](replicas int, algo hash.Algorithm) *Ring[N] {
	if replicas <= 0 {
		replicas = DefaultReplicas
	}
	return &Ring[N]{
		replicas: replicas,
		algo:     algo,
		hashFn:   hash.New(algo),
		owned:    make(map[N][]string),
	}
}

// virtualKeys derives the hash keys for node under the current configuration.
func (r *Ring[N]) virtualKeys(node N) []string {
	keys := make([]string, r.replicas)
	for i := range keys {
		keys[i] = r.hashFn([]byte(strconv.Itoa(i) + ":" + node.String()))
	}
	return keys
}

// AddNode installs a node on the ring. Adding a node that is already present
// is a no-op. Mutation cost is dominated by the full re-sort, acceptable for
// workloads where membership changes are rare relative to lookups.
func (r *Ring[N]) AddNode(node N) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.owned[node]; ok {
		return
	}

	keys := r.virtualKeys(node)
	r.owned[node] = keys

	// A key that collides with one already on the ring keeps its current
	// owner; the registry still records the full generated set.
	taken := make(map[string]bool, len(r.vnodes))
	for _, v := range r.vnodes {
		taken[v.key] = true
	}
	for _, k := range keys {
		if taken[k] {
			continue
		}
		taken[k] = true
		r.vnodes = append(r.vnodes, vnode[N]{key: k, owner: node})
	}
	sort.Slice(r.vnodes, func(i, j int) bool { return r.vnodes[i].key < r.vnodes[j].key })
}

// RemoveNode takes a node off the ring. Removing a node that is not present
// is a no-op.
func (r *Ring[N]) RemoveNode(node N) {
	r.mu.Lock()
	defer r.mu.Unlock()

	keys, ok := r.owned[node]
	if !ok {
		return
	}
	delete(r.owned, node)

	drop := make(map[string]bool, len(keys))
	for _, k := range keys {
		drop[k] = true
	}
	// Filtering a sorted slice keeps it sorted. A collided key owned by
	// another node survives.
	kept := r.vnodes[:0]
	for _, v := range r.vnodes {
		if drop[v.key] && v.owner == node {
			continue
		}
		kept = append(kept, v)
	}
	r.vnodes = kept
}

// GetNode returns the node responsible for key: the owner of the first
// virtual node at or clockwise of the key's digest. For a fixed ring state
// the result is a pure function of key. Returns ErrEmptyRing when no nodes
// are registered.
func (r *Ring[N]) GetNode(key string) (N, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var zero N
	if len(r.vnodes) == 0 {
		return zero, ErrEmptyRing
	}
	return r.vnodes[r.search(r.hashFn([]byte(key)))].owner, nil
}

// GetNodes returns up to n distinct nodes, starting with the one responsible
// for key and continuing clockwise. Higher layers use it as a replica
// preference list. Returns ErrEmptyRing when no nodes are registered.
func (r *Ring[N]) GetNodes(key string, n int) ([]N, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.vnodes) == 0 {
		return nil, ErrEmptyRing
	}
	if n <= 0 {
		return []N{}, nil
	}

	idx := r.search(r.hashFn([]byte(key)))
	seen := make(map[N]bool, n)
	nodes := make([]N, 0, n)
	for i := 0; i < len(r.vnodes) && len(nodes) < n; i++ {
		owner := r.vnodes[(idx+i)%len(r.vnodes)].owner
		if !seen[owner] {
			seen[owner] = true
			nodes = append(nodes, owner)
		}
	}
	return nodes, nil
}

// search returns the index of the first virtual node whose key is >= digest,
// wrapping to 0 when the digest is past the last virtual node. Must be
// called with the lock held and a non-empty ring.
func (r *Ring[N]) search(digest string) int {
	idx := sort.Search(len(r.vnodes), func(i int) bool {
		return r.vnodes[i].key >= digest
	})
	if idx == len(r.vnodes) {
		idx = 0
	}
	return idx
}

// AllNodes returns the physical nodes currently on the ring, sorted by their
// string form for deterministic enumeration.
func (r *Ring[N]) AllNodes() []N {
	r.mu.Lock()
	defer r.mu.Unlock()

	nodes := make([]N, 0, len(r.owned))
	for node := range r.owned {
		nodes = append(nodes, node)
	}
	sort.Slice(nodes, func(i, j int) bool { return nodes[i].String() < nodes[j].String() })
	return nodes
}

// VirtualNodeCount returns the number of virtual nodes on the ring. It can
// fall short of nodes*replicas when generated hash keys collide.
func (r *Ring[N]) VirtualNodeCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.vnodes)
}

// PhysicalNodeCount returns the number of physical nodes on the ring.
func (r *Ring[N]) PhysicalNodeCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.owned)
}

// SetHashFunction switches the digest algorithm and rebuilds the ring. Every
// virtual node moves, so essentially all keys remap: this is a disruptive
// operation, not a tuning knob.
func (r *Ring[N]) SetHashFunction(algo hash.Algorithm) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.algo = algo
	r.hashFn = hash.New(algo)
	r.rebuild()
}

// SetReplicaCount changes the per-node virtual node count and rebuilds the
// ring. Like New, non-positive counts fall back to DefaultReplicas. Key
// remapping is global, as with SetHashFunction.
func (r *Ring[N]) SetReplicaCount(n int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if n <= 0 {
		n = DefaultReplicas
	}
	r.replicas = n
	r.rebuild()
}

// Rebuild regenerates every registered node's virtual nodes under the
// current configuration, replacing the ring contents. Rebuilding under an
// unchanged configuration reproduces the identical ring.
func (r *Ring[N]) Rebuild() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rebuild()
}

// rebuild must be called with the lock held. Nodes are processed in string
// order so collision winners, and therefore the rebuilt ring, are
// deterministic for a given membership and configuration.
func (r *Ring[N]) rebuild() {
	nodes := make([]N, 0, len(r.owned))
	for node := range r.owned {
		nodes = append(nodes, node)
	}
	sort.Slice(nodes, func(i, j int) bool { return nodes[i].String() < nodes[j].String() })

	r.vnodes = r.vnodes[:0]
	taken := make(map[string]bool, len(nodes)*r.replicas)
	for _, node := range nodes {
		keys := r.virtualKeys(node)
		r.owned[node] = keys
		for _, k := range keys {
			if taken[k] {
				continue
			}
			taken[k] = true
			r.vnodes = append(r.vnodes, vnode[N]{key: k, owner: node})
		}
	}
	sort.Slice(r.vnodes, func(i, j int) bool { return r.vnodes[i].key < r.vnodes[j].key })
}
