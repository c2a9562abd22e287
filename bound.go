package fathom

import (
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/domtree/fathom/cluster"
	"github.com/domtree/fathom/dom"
)

// ClusterOptions configures a bestCluster LHS (spec §4.4); it is the
// engine-facing alias of the standalone cluster package's Options so
// callers never need to import cluster themselves just to write
// fathom.BestCluster(t, fathom.ClusterOptions{...}).
type ClusterOptions = cluster.Options

// DefaultClusterOptions returns DistanceOptions' defaults wrapped as a
// ClusterOptions with the spec's default splittingDistance. The
// Distance func closes over DefaultDistanceOptions so BestCluster
// without arguments behaves exactly like spec.md §4.4's defaults.
func DefaultClusterOptions() ClusterOptions {
	distOpts := cluster.DefaultDistanceOptions()
	return ClusterOptions{
		Distance: func(a, b any) float64 {
			return cluster.Distance(a.(dom.Element), b.(dom.Element), distOpts)
		},
		SplittingDistance: 4,
	}
}

// domMatchCacheSize bounds the LRU used to memoize Dom(selector) lookups
// (spec §4.3.1): a document with a few hundred distinct selectors in its
// ruleset will never evict, while pathological rulesets can't grow the
// cache unbounded.
const domMatchCacheSize = 512

// BoundRuleset is a Ruleset bound to one document (spec §3, "Bound
// ruleset"): it owns the fnode store, the per-type index, the aggregate
// caches (max, bestCluster), the Dom(selector) match memoization, and
// the bookkeeping the planner/executor need to avoid redoing work
// across repeated Get calls on the same binding.
type BoundRuleset struct {
	ruleset *Ruleset
	doc     dom.Document

	fnodesByElement map[dom.Element]*Fnode
	fnodesByType     map[Type][]*Fnode

	maxCache         map[Type][]*Fnode
	bestClusterCache map[Type][]*Fnode

	domMatchCache *lru.Cache[string, []dom.Element]

	doneInwardRules map[*Rule]bool

	// planCache memoizes each rule's direct prerequisite list (the result
	// of prerequisitesOf), keyed by rule identity, per spec §4.1.1 ("Plan
	// caching"). The transitive walk over those lists is redone by every
	// planFor call.
	planCache map[*Rule][]*Rule
}

// Against binds rs to doc, producing a fresh BoundRuleset ready for Get
// calls (spec §3). Binding does no work itself; fnodes and indices are
// built lazily as rules run.
func (rs *Ruleset) Against(doc dom.Document) *BoundRuleset {
	cache, _ := lru.New[string, []dom.Element](domMatchCacheSize)
	return &BoundRuleset{
		ruleset:          rs,
		doc:              doc,
		fnodesByElement:  make(map[dom.Element]*Fnode),
		fnodesByType:     make(map[Type][]*Fnode),
		maxCache:         make(map[Type][]*Fnode),
		bestClusterCache: make(map[Type][]*Fnode),
		domMatchCache:    cache,
		doneInwardRules:  make(map[*Rule]bool),
		planCache:        make(map[*Rule][]*Rule),
	}
}

// fnodeFor returns the fnode for el, creating it on first reference.
func (br *BoundRuleset) fnodeFor(el dom.Element) *Fnode {
	if f, ok := br.fnodesByElement[el]; ok {
		return f
	}
	f := newFnode(el)
	br.fnodesByElement[el] = f
	return f
}

// fnodesOfType returns every fnode currently bearing t, in the order
// facts were merged onto them (spec §4.2's "document order is not
// guaranteed once scores start flowing" note).
func (br *BoundRuleset) fnodesOfType(t Type) []*Fnode {
	return br.fnodesByType[t]
}

// addToTypeIndex records that f now bears t, for fnodesOfType, and drops
// the max/bestCluster caches for t. Each call appends f, so a second call
// for the same (f, t) pair would list f twice; the executor only calls it
// the first time a type is merged onto a fnode.
func (br *BoundRuleset) addToTypeIndex(t Type, f *Fnode) {
	br.fnodesByType[t] = append(br.fnodesByType[t], f)
	delete(br.maxCache, t)
	delete(br.bestClusterCache, t)
}

// maxOfType returns the fnode(s) of type t with the greatest ScoreFor(t),
// memoized until another fnode gains t (see addToTypeIndex); a fact that
// only changes the score of a fnode already bearing t does not drop the
// cached result.
func (br *BoundRuleset) maxOfType(t Type) []*Fnode {
	if cached, ok := br.maxCache[t]; ok {
		return cached
	}
	candidates := br.fnodesByType[t]
	if len(candidates) == 0 {
		br.maxCache[t] = nil
		return nil
	}
	best := candidates[0].ScoreFor(t)
	out := []*Fnode{candidates[0]}
	for _, f := range candidates[1:] {
		s := f.ScoreFor(t)
		switch {
		case s > best:
			best = s
			out = []*Fnode{f}
		case s == best:
			out = append(out, f)
		}
	}
	br.maxCache[t] = out
	return out
}

// bestClusterOfType clusters every fnode of type t and returns the
// members of whichever cluster has the greatest summed ScoreFor(t),
// memoized, like maxOfType, until another fnode gains t.
func (br *BoundRuleset) bestClusterOfType(t Type, opts ClusterOptions) []*Fnode {
	if cached, ok := br.bestClusterCache[t]; ok {
		return cached
	}
	fnodes := br.fnodesByType[t]
	if len(fnodes) == 0 {
		br.bestClusterCache[t] = nil
		return nil
	}
	clusters := cluster.Clusterize(fnodes, cluster.Options{
		Distance: func(a, b any) float64 {
			return opts.Distance(a.(*Fnode).Element(), b.(*Fnode).Element())
		},
		SplittingDistance: opts.SplittingDistance,
	})

	var best *cluster.Cluster[*Fnode]
	bestScore := -1.0
	for _, c := range clusters {
		s := cluster.Sum(c, func(f *Fnode) float64 { return f.ScoreFor(t) })
		if s > bestScore {
			bestScore = s
			best = c
		}
	}
	var out []*Fnode
	if best != nil {
		out = append([]*Fnode(nil), best.Items...)
	}
	br.bestClusterCache[t] = out
	return out
}

// domMatches returns the elements matching selector against the bound
// document, memoized by selector text for the lifetime of the binding
// (spec §4.3.1): the DOM itself never changes mid-query, so a selector's
// result set is pure.
func (br *BoundRuleset) domMatches(selector string) ([]dom.Element, error) {
	if cached, ok := br.domMatchCache.Get(selector); ok {
		return cached, nil
	}
	matched := br.doc.QuerySelectorAll(selector)
	br.domMatchCache.Add(selector, matched)
	return matched, nil
}
