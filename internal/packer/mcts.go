package packer

import (
	"fmt"
	"math"
	"math/rand"
	"sync"

	"github.com/binstack/cellpack/internal/anchor"
	"github.com/binstack/cellpack/internal/constraint"
	"github.com/binstack/cellpack/internal/entity"
	"github.com/binstack/cellpack/internal/rng"
	"github.com/binstack/cellpack/internal/scoring"
)

// MCTSConfig tunes the tree search. Workers > 1 enables the optional
// root-parallel mode; Workers == 1 (the default, zero value treated as
// 1) is the single-threaded, fully deterministic path.
type MCTSConfig struct {
	NumSimulations int
	RolloutDepth   int
	UCTConst       float64
	Workers        int
}

// Node is one state in the open-loop search tree: Remaining items not
// yet placed, the cage state reached by applying Action on top of
// Parent, and the accumulated visit count/reward used by UCT.
type Node struct {
	Parent   *Node
	Children []*Node
	N        uint64
	W        float64

	Remaining []entity.Item
	SimCage   *entity.Cage
	Action    *Placement
	Added     float64

	expandOrder []int
	expandIdx   int
	expanded    bool
}

func newRootNode(cage *entity.Cage, candidates []entity.Item) *Node {
	remaining := make([]entity.Item, len(candidates))
	copy(remaining, candidates)
	return &Node{SimCage: cage, Remaining: remaining}
}

func (n *Node) fullyExpanded() bool {
	return n.expanded && n.expandIdx >= len(n.expandOrder)
}

// MCTS implements spec's open-loop UCT search over first-action
// choices sharing a root, using the same bestAction helper for both
// expansion and rollout.
type MCTS struct {
	Anchors    anchor.Generator
	Params     constraint.Params
	Weights    scoring.Weights
	Config     MCTSConfig
	MasterSeed uint64

	decisionMu      sync.Mutex
	decisionCounter uint64
}

// NewMCTS constructs an MCTS packer.
func NewMCTS(gen anchor.Generator, params constraint.Params, weights scoring.Weights, cfg MCTSConfig, masterSeed uint64) *MCTS {
	return &MCTS{Anchors: gen, Params: params, Weights: weights, Config: cfg, MasterSeed: masterSeed}
}

// Name returns the packer's registry name.
func (m *MCTS) Name() string { return "mcts" }

// Pack runs NumSimulations playouts from a fresh root built over
// candidates, then commits the root child with the highest mean
// reward (W/N) — not the most-visited child — matching the
// determinism contract this variant pins.
func (m *MCTS) Pack(cage *entity.Cage, candidates []entity.Item) (*Placement, error) {
	if len(candidates) == 0 {
		return nil, ErrEmptyCandidates
	}

	workers := m.Config.Workers
	if workers < 1 {
		workers = 1
	}
	counter := m.nextDecision()

	var best *Placement
	if workers == 1 {
		run := m.newRun(counter, 0)
		root := newRootNode(cage, candidates)
		run.runSimulations(root, m.Config.NumSimulations)
		best = bestMeanReward(root.Children)
	} else {
		best = m.packRootParallel(cage, candidates, counter, workers)
	}

	if best == nil {
		return nil, nil
	}
	if err := commitAndRefresh(cage, *best); err != nil {
		return nil, err
	}
	return best, nil
}

func (m *MCTS) nextDecision() uint64 {
	m.decisionMu.Lock()
	defer m.decisionMu.Unlock()
	m.decisionCounter++
	return m.decisionCounter
}

// mctsRun bundles the read-only configuration and the two
// purpose-specific RNGs for one Pack call (or, under root-parallel,
// one worker's tree). Keeping this separate from MCTS itself means
// concurrent workers never share mutable search state.
type mctsRun struct {
	anchors    anchor.Generator
	params     constraint.Params
	weights    scoring.Weights
	config     MCTSConfig
	expandRNG  *rand.Rand
	rolloutRNG *rand.Rand
}

func (m *MCTS) newRun(counter uint64, workerIdx int) *mctsRun {
	extra := append(rng.DecisionCounter(counter), byte(workerIdx))
	return &mctsRun{
		anchors:    m.Anchors,
		params:     m.Params,
		weights:    m.Weights,
		config:     m.Config,
		expandRNG:  rng.Derive(m.MasterSeed, "expand", extra),
		rolloutRNG: rng.Derive(m.MasterSeed, "rollout", extra),
	}
}

func (r *mctsRun) runSimulations(root *Node, n int) {
	for i := 0; i < n; i++ {
		r.simulate(root)
	}
}

// simulate runs one selection/expansion/rollout/backpropagation pass.
func (r *mctsRun) simulate(root *Node) {
	path := []*Node{root}
	node := root

	for len(node.Remaining) > 0 {
		if !node.fullyExpanded() {
			child := r.expand(node)
			if child == nil {
				break
			}
			path = append(path, child)
			node = child
			break
		}
		if len(node.Children) == 0 {
			break
		}
		node = r.selectUCT(node)
		path = append(path, node)
	}

	reward := 0.0
	for _, n := range path {
		reward += n.Added
	}
	reward += r.rollout(node)

	for _, n := range path {
		n.N++
		n.W += reward
	}
}

// expand tries node's untried remaining candidates in the node's
// RNG-shuffled order (computed once, lazily, on first expansion) and
// creates a child for the first one with a feasible best action.
// Infeasible candidates are skipped and counted as tried; it returns
// nil once every remaining candidate has been tried without success.
// The child's cage is committed through commitAndRefresh, so its
// support surfaces are rebuilt exactly as the real commit path would —
// without this, simulated cages would never expose a surface above
// z=0 and every multi-layer stack would be invisible to the search.
func (r *mctsRun) expand(node *Node) *Node {
	if !node.expanded {
		node.expandOrder = r.expandRNG.Perm(len(node.Remaining))
		node.expanded = true
	}
	for node.expandIdx < len(node.expandOrder) {
		idx := node.expandOrder[node.expandIdx]
		node.expandIdx++

		item := node.Remaining[idx]
		placement, ok := r.bestAction(node.SimCage, item)
		if !ok {
			continue
		}
		childCage := node.SimCage.Clone()
		if err := commitAndRefresh(childCage, placement); err != nil {
			continue
		}
		remaining := removeItemAt(node.Remaining, idx)
		added := placement.Item.RotatedDims(placement.Rotation).Volume()
		child := &Node{Parent: node, SimCage: childCage, Remaining: remaining, Action: &placement, Added: added}
		node.Children = append(node.Children, child)
		return child
	}
	return nil
}

// rollout shuffles node's remaining candidates and greedily commits
// the best valid action per item on a scratch cage, skipping items
// that have no feasible placement, accumulating placed volume as the
// simulated reward.
func (r *mctsRun) rollout(node *Node) float64 {
	cage := node.SimCage.Clone()
	items := make([]entity.Item, len(node.Remaining))
	copy(items, node.Remaining)
	r.rolloutRNG.Shuffle(len(items), func(i, j int) { items[i], items[j] = items[j], items[i] })

	var reward float64
	var depth int
	for _, item := range items {
		if r.config.RolloutDepth > 0 && depth >= r.config.RolloutDepth {
			break
		}
		placement, ok := r.bestAction(cage, item)
		if !ok {
			continue
		}
		if err := commitAndRefresh(cage, placement); err != nil {
			continue
		}
		reward += placement.Item.RotatedDims(placement.Rotation).Volume()
		depth++
	}
	return reward
}

// bestAction finds the best-scoring feasible (rotation, anchor) for a
// single item on cage, shared by expansion and rollout. Ties are
// broken by rotated volume descending (a no-op for a single item,
// since volume is rotation-invariant, but kept for a uniform rule),
// then z ascending, y ascending, x ascending.
func (r *mctsRun) bestAction(cage *entity.Cage, item entity.Item) (Placement, bool) {
	anchors := r.anchors.Anchors(cage)

	var best *Placement
	var bestScore, bestVolume float64
	for _, rot := range sortedRotations(item.AllowedRotations) {
		d := item.RotatedDims(rot)
		volume := d.Volume()
		for _, pos := range anchors {
			result := constraint.Check(cage, item, pos, rot, r.params)
			if !result.Satisfied {
				continue
			}
			score := scoring.Score(pos, r.weights)
			if best == nil || betterAction(score, volume, pos, bestScore, bestVolume, best.Position) {
				placement := Placement{Item: item, Position: pos, Rotation: rot}
				best = &placement
				bestScore = score
				bestVolume = volume
			}
		}
	}
	if best == nil {
		return Placement{}, false
	}
	return *best, true
}

func betterAction(score, volume float64, pos entity.Point3, bestScore, bestVolume float64, bestPos entity.Point3) bool {
	if score != bestScore {
		return score > bestScore
	}
	if volume != bestVolume {
		return volume > bestVolume
	}
	if pos.Z != bestPos.Z {
		return pos.Z < bestPos.Z
	}
	if pos.Y != bestPos.Y {
		return pos.Y < bestPos.Y
	}
	return pos.X < bestPos.X
}

func (r *mctsRun) selectUCT(node *Node) *Node {
	var best *Node
	bestUCT := math.Inf(-1)
	for _, child := range node.Children {
		var uct float64
		if child.N == 0 {
			uct = math.Inf(1)
		} else {
			uct = child.W/float64(child.N) + r.config.UCTConst*math.Sqrt(math.Log(float64(node.N))/float64(child.N))
		}
		if uct > bestUCT {
			bestUCT = uct
			best = child
		}
	}
	return best
}

// bestMeanReward returns the Action of the child with the highest
// mean reward (W/N), first-discovered wins on ties. Children with zero
// visits (possible only if simulations == 0) are skipped.
func bestMeanReward(children []*Node) *Placement {
	var best *Placement
	var bestMean float64
	for _, child := range children {
		if child.N == 0 {
			continue
		}
		mean := child.W / float64(child.N)
		if best == nil || mean > bestMean {
			best = child.Action
			bestMean = mean
		}
	}
	return best
}

// packRootParallel runs Workers independent trees against read-only
// Cage.Clone snapshots and combines each tree's root-child mean
// rewards by a visit-weighted vote: matching actions across trees
// have their (W, N) summed before computing the combined mean, so a
// tree that ran more simulations contributes proportionally more.
func (m *MCTS) packRootParallel(cage *entity.Cage, candidates []entity.Item, counter uint64, workers int) *Placement {
	type rootResult struct {
		idx  int
		root *Node
	}

	results := make(chan rootResult, workers)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(workerIdx int) {
			defer wg.Done()
			run := m.newRun(counter, workerIdx)
			root := newRootNode(cage.Clone(), candidates)
			run.runSimulations(root, m.Config.NumSimulations)
			results <- rootResult{idx: workerIdx, root: root}
		}(w)
	}
	wg.Wait()
	close(results)

	roots := make([]*Node, workers)
	for res := range results {
		roots[res.idx] = res.root
	}

	type vote struct {
		placement Placement
		w, n      float64
	}
	votes := map[string]*vote{}
	var order []string
	for _, root := range roots {
		for _, child := range root.Children {
			key := actionKey(child.Action)
			v, exists := votes[key]
			if !exists {
				v = &vote{placement: *child.Action}
				votes[key] = v
				order = append(order, key)
			}
			v.w += child.W
			v.n += float64(child.N)
		}
	}

	var best *Placement
	var bestMean float64
	for _, key := range order {
		v := votes[key]
		if v.n == 0 {
			continue
		}
		mean := v.w / v.n
		if best == nil || mean > bestMean {
			placement := v.placement
			best = &placement
			bestMean = mean
		}
	}
	return best
}

func actionKey(p *Placement) string {
	return fmt.Sprintf("%d|%d|%.9f|%.9f|%.9f", p.Item.ID, p.Rotation, p.Position.X, p.Position.Y, p.Position.Z)
}
