package translate

import (
	"sort"
	"strings"

	"github.com/relfind/wmf/relast"
)

// freeVars returns the names of n's free variables: VarRef leaves not bound
// by an enclosing Decl within n itself (spec §4.4 "a pre-pass computes each
// node's free variables").
func freeVars(n *relast.Node) []string {
	if n == nil {
		return nil
	}
	switch n.Kind {
	case relast.KindVarRef:
		return []string{n.VarName}
	case relast.KindRelVar, relast.KindConstUniv, relast.KindConstIden, relast.KindConstNone,
		relast.KindConstInts, relast.KindConstInt, relast.KindBoolConst, relast.KindIntConst:
		return nil
	case relast.KindCompr, relast.KindQuantCompr, relast.KindAll, relast.KindSome, relast.KindSum:
		set := map[string]bool{}
		for _, d := range n.Decls {
			for _, v := range freeVars(d.Bound) {
				set[v] = true
			}
		}
		declared := map[string]bool{}
		for _, d := range n.Decls {
			declared[d.Var] = true
		}
		for _, v := range freeVars(n.Body) {
			if !declared[v] {
				set[v] = true
			}
		}
		return setToSortedSlice(set)
	default:
		set := map[string]bool{}
		collect := func(vs []string) {
			for _, v := range vs {
				set[v] = true
			}
		}
		collect(freeVars(n.Left))
		collect(freeVars(n.Right))
		collect(freeVars(n.Operand))
		collect(freeVars(n.Body))
		collect(freeVars(n.Cond))
		for _, in := range n.Inputs {
			collect(freeVars(in))
		}
		return setToSortedSlice(set)
	}
}

func setToSortedSlice(set map[string]bool) []string {
	out := make([]string, 0, len(set))
	for v := range set {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

// countRefs tallies pointer occurrences of every node reachable from root,
// the "appears more than once" half of the shareability test (spec §4.4).
func countRefs(n *relast.Node, counts map[*relast.Node]int) {
	if n == nil {
		return
	}
	counts[n]++
	for _, d := range n.Decls {
		countRefs(d.Bound, counts)
	}
	countRefs(n.Left, counts)
	countRefs(n.Right, counts)
	countRefs(n.Operand, counts)
	countRefs(n.Body, counts)
	countRefs(n.Cond, counts)
	for _, in := range n.Inputs {
		countRefs(in, counts)
	}
}

type cacheEntry struct {
	value Value
}

// Cache memoizes translations of shareable nodes keyed by (node, frozen
// bindings of its free variables) (spec §3 "Translation Cache (C4)").
// NoVarRecord (closed nodes) and MultiVarRecord (nodes with free variables)
// are represented uniformly here: the key already collapses to a constant
// string for a closed node, since it has no bindings to freeze.
type Cache struct {
	refCount map[*relast.Node]int
	entries  map[string]cacheEntry
}

// NewCache runs the free-variable and reference-count pre-pass over root.
func NewCache(root *relast.Node) *Cache {
	counts := make(map[*relast.Node]int)
	countRefs(root, counts)
	return &Cache{refCount: counts, entries: make(map[string]cacheEntry)}
}

func (c *Cache) key(n *relast.Node, env *Env) string {
	fv := freeVars(n)
	bindings := env.freeVarBindings(fv)
	return ptrString(n) + "|" + strings.Join(bindings, ",")
}

// shareable reports whether n is worth installing a cache record for: it
// recurs more than once in the tree, or it is closed (no free variables),
// which subsumes the "free variables strictly below the innermost
// quantifier" condition for the common case of a fully ground subtree.
func (c *Cache) shareable(n *relast.Node) bool {
	if c.refCount[n] > 1 {
		return true
	}
	return len(freeVars(n)) == 0
}

// Get looks up a memoized translation of n under env's current bindings.
func (c *Cache) Get(n *relast.Node, env *Env) (Value, bool) {
	e, ok := c.entries[c.key(n, env)]
	if !ok {
		return Value{}, false
	}
	return e.value, true
}

// Put installs v as the translation of n under env's current bindings, if n
// is judged shareable.
func (c *Cache) Put(n *relast.Node, env *Env, v Value) {
	if !c.shareable(n) {
		return
	}
	c.entries[c.key(n, env)] = cacheEntry{value: v}
}
