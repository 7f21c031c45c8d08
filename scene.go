package canopy

import (
	"time"
)

// Scene is the top-level object that owns the node tree. Controlling code
// creates nodes through it, calls Update once per frame and then Draw.
//
// A Scene is not safe for concurrent use; Update and Draw must be called
// from one goroutine and never re-entered.
type Scene struct {
	root  *Node
	debug bool
	store EntityStore

	// nodes holds every live node. Only maintained in debug mode, where it
	// backs the removed-node checks.
	nodes map[*Node]struct{}
}

// NewScene creates a new scene with a pre-created root group node.
func NewScene() *Scene {
	s := &Scene{}
	s.root = newNode(s, NodeTypeGroup)
	s.root.tag = "root"
	s.register(s.root)
	return s
}

// Root returns the scene's root node.
func (s *Scene) Root() *Node {
	return s.root
}

// AddNode creates a grouping node under parent. A nil parent means the root.
func (s *Scene) AddNode(parent *Node) *Node {
	return s.add(parent, newNode(s, NodeTypeGroup))
}

// AddBatch creates a node under parent that updates and draws b.
func (s *Scene) AddBatch(parent *Node, b *SpriteBatch) *Node {
	if b == nil {
		panic("canopy: cannot add nil batch")
	}
	n := newNode(s, NodeTypeBatch)
	n.batch = b
	return s.add(parent, n)
}

// AddLabel creates a node under parent that updates and draws l.
func (s *Scene) AddLabel(parent *Node, l *Label) *Node {
	if l == nil {
		panic("canopy: cannot add nil label")
	}
	n := newNode(s, NodeTypeLabel)
	n.label = l
	return s.add(parent, n)
}

// AddAnimation creates a node under parent that advances a each frame.
func (s *Scene) AddAnimation(parent *Node, a *Animation) *Node {
	if a == nil {
		panic("canopy: cannot add nil animation")
	}
	n := newNode(s, NodeTypeAnimation)
	n.animation = a
	return s.add(parent, n)
}

// AddDrawable creates a node under parent that updates and draws d.
func (s *Scene) AddDrawable(parent *Node, d Drawable) *Node {
	if d == nil {
		panic("canopy: cannot add nil drawable")
	}
	n := newNode(s, NodeTypeDrawable)
	n.drawable = d
	return s.add(parent, n)
}

func (s *Scene) add(parent, n *Node) *Node {
	if parent == nil {
		parent = s.root
	}
	s.checkNode(parent, "add (parent)")
	s.register(n)
	parent.AddChild(n)
	s.emit(EventNodeAdded, n)
	return n
}

// SetParent moves child, with its subtree, under parent.
func (s *Scene) SetParent(parent, child *Node) {
	s.checkNode(parent, "SetParent (parent)")
	s.checkNode(child, "SetParent (child)")
	parent.AddChild(child)
}

// Remove detaches node from the tree and unregisters it and its
// descendants. Removing an already removed node is a no-op.
func (s *Scene) Remove(node *Node) {
	debugAssert(node != s.root, "cannot remove the root node")
	if node.removed {
		return
	}
	s.checkNode(node, "Remove")
	node.Remove()
}

// Enable enables node.
func (s *Scene) Enable(node *Node) {
	s.checkNode(node, "Enable")
	node.SetEnabled(true)
}

// Disable disables node. The node and its subtree are skipped by Update and
// Draw but otherwise kept intact.
func (s *Scene) Disable(node *Node) {
	s.checkNode(node, "Disable")
	node.SetEnabled(false)
}

// Move translates the renderables of node and its subtree by delta.
func (s *Scene) Move(node *Node, delta Vec2) {
	if delta.IsZero() {
		return
	}
	s.checkNode(node, "Move")
	node.Move(delta)
}

// AttachProgram makes node's subtree draw with program. Zero detaches it.
func (s *Scene) AttachProgram(node *Node, program int) {
	s.checkNode(node, "AttachProgram")
	node.AttachProgram(program)
}

// SetTag sets node's tag.
func (s *Scene) SetTag(node *Node, tag string) {
	s.checkNode(node, "SetTag")
	node.SetTag(tag)
}

// Find returns the first node in pre-order whose tag equals tag, or nil.
func (s *Scene) Find(tag string) *Node {
	var found *Node
	s.root.walk(func(n *Node) bool {
		if found != nil {
			return false
		}
		if n.tag == tag {
			found = n
			return false
		}
		return true
	})
	return found
}

// Contains reports whether node belongs to this scene and has not been
// removed.
func (s *Scene) Contains(node *Node) bool {
	return node != nil && !node.removed && node.scene == s
}

// Update advances every enabled node, pre-order, by dt seconds. Each
// renderable regenerates only its stale vertex data.
func (s *Scene) Update(dt float64) {
	var stats frameStats
	var t0 time.Time
	if s.debug {
		t0 = time.Now()
	}

	s.root.update(dt, &stats.visited, &stats.uploads)

	if s.debug {
		stats.updateTime = time.Since(t0)
		s.debugLog(stats)
	}
}

// Draw issues draw calls for every enabled node, pre-order. Call it only
// after Update for the frame has returned.
func (s *Scene) Draw(r Rasterizer) {
	var t0 time.Time
	if s.debug {
		t0 = time.Now()
	}

	s.root.draw(r)

	if s.debug {
		s.debugLog(frameStats{drawTime: time.Since(t0)})
	}
}

// SetDebugMode enables or disables debug mode. When enabled, contract
// violations (removed nodes, invalid pivots or scales, stale sprite
// handles) panic, tree depth and child count warnings are logged, and
// per-frame timing stats are logged at debug level.
func (s *Scene) SetDebugMode(enabled bool) {
	s.debug = enabled
	globalDebug = enabled
	if enabled && s.nodes == nil {
		s.nodes = make(map[*Node]struct{})
		s.root.walk(func(n *Node) bool {
			s.nodes[n] = struct{}{}
			return true
		})
	} else if !enabled {
		s.nodes = nil
	}
}

func (s *Scene) register(n *Node) {
	if s.nodes != nil {
		s.nodes[n] = struct{}{}
	}
}

func (s *Scene) unregister(n *Node) {
	if s.nodes != nil {
		delete(s.nodes, n)
	}
}

// checkNode panics in debug mode when n is nil, removed, or not part of
// this scene.
func (s *Scene) checkNode(n *Node, op string) {
	if !s.debug {
		return
	}
	if n == nil {
		panic("canopy debug: " + op + " on nil node")
	}
	debugCheckRemoved(n, op)
	if _, ok := s.nodes[n]; !ok {
		panic("canopy debug: " + op + " on node from another scene")
	}
}
