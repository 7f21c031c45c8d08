package canopy

// nodeIDCounter is a plain counter; scenes are single-threaded.
var nodeIDCounter uint32

func nextNodeID() uint32 {
	nodeIDCounter++
	return nodeIDCounter
}

// Node is a scene graph element. A node owns its children and optionally
// carries one renderable. A single flat struct is used for all node types
// to avoid interface dispatch on the hot path.
//
// Nodes are created through a Scene. The parent pointer is a weak back
// reference used only for detaching.
type Node struct {
	id      uint32
	tag     string
	typ     NodeType
	enabled bool
	removed bool
	program int

	scene    *Scene
	parent   *Node
	children []*Node

	batch     *SpriteBatch
	label     *Label
	animation *Animation
	drawable  Drawable
}

func newNode(s *Scene, typ NodeType) *Node {
	return &Node{
		id:      nextNodeID(),
		typ:     typ,
		enabled: true,
		scene:   s,
	}
}

// ID returns the node's unique id. Zero after removal.
func (n *Node) ID() uint32 { return n.id }

// Type returns what kind of renderable the node carries.
func (n *Node) Type() NodeType { return n.typ }

// Tag returns the node's tag.
func (n *Node) Tag() string { return n.tag }

// SetTag sets a free-form tag, used for debugging and Scene.Find.
func (n *Node) SetTag(tag string) { n.tag = tag }

// Parent returns the node's parent, or nil for the root and detached nodes.
func (n *Node) Parent() *Node { return n.parent }

// Children returns the child list. The returned slice MUST NOT be mutated by the caller.
func (n *Node) Children() []*Node { return n.children }

// NumChildren returns the number of children.
func (n *Node) NumChildren() int { return len(n.children) }

// ChildAt returns the child at the given index.
func (n *Node) ChildAt(index int) *Node { return n.children[index] }

// Batch returns the node's sprite batch, or nil.
func (n *Node) Batch() *SpriteBatch { return n.batch }

// Label returns the node's label, or nil.
func (n *Node) Label() *Label { return n.label }

// Animation returns the node's animation, or nil.
func (n *Node) Animation() *Animation { return n.animation }

// Drawable returns the node's user drawable, or nil.
func (n *Node) Drawable() Drawable { return n.drawable }

// Program returns the program attached to the node, or 0.
func (n *Node) Program() int { return n.program }

// AttachProgram makes the subtree rooted at n draw with program.
// Zero detaches it.
func (n *Node) AttachProgram(program int) {
	if globalDebug {
		debugCheckRemoved(n, "AttachProgram")
	}
	n.program = program
}

// IsEnabled reports whether the node itself is enabled. A node is only
// visited when it and all of its ancestors are enabled.
func (n *Node) IsEnabled() bool { return n.enabled }

// SetEnabled enables or disables the node and, implicitly, its subtree.
func (n *Node) SetEnabled(enabled bool) {
	if globalDebug {
		debugCheckRemoved(n, "SetEnabled")
	}
	if n.enabled == enabled {
		return
	}
	n.enabled = enabled
	if n.scene != nil {
		if enabled {
			n.scene.emit(EventNodeEnabled, n)
		} else {
			n.scene.emit(EventNodeDisabled, n)
		}
	}
}

// IsRemoved reports whether the node has been removed from its scene.
func (n *Node) IsRemoved() bool { return n.removed }

// --- Tree manipulation ---

// AddChild appends child to this node's children.
// If child already has a parent, it is removed from that parent first.
// Panics if child is nil or child is an ancestor of this node (cycle).
func (n *Node) AddChild(child *Node) *Node {
	if child == nil {
		panic("canopy: cannot add nil child")
	}
	if globalDebug {
		debugCheckRemoved(n, "AddChild (parent)")
		debugCheckRemoved(child, "AddChild (child)")
	}
	if isAncestor(child, n) {
		panic("canopy: adding child would create a cycle")
	}
	if child.parent != nil {
		child.parent.removeChildByPtr(child)
	}
	child.parent = n
	n.children = append(n.children, child)
	if globalDebug {
		debugCheckTreeDepth(child)
		debugCheckChildCount(n)
	}
	return child
}

// Remove detaches this node from its parent and unregisters it and all of
// its descendants from the scene. Removing a node twice is a no-op.
func (n *Node) Remove() {
	if n.removed {
		return
	}
	if n.parent != nil {
		n.parent.removeChildByPtr(n)
		n.parent = nil
	}
	n.remove()
}

func (n *Node) remove() {
	if n.scene != nil {
		n.scene.emit(EventNodeRemoved, n)
		n.scene.unregister(n)
	}
	n.removed = true
	n.id = 0
	for _, child := range n.children {
		child.parent = nil
		child.remove()
	}
	n.children = nil
	n.scene = nil
	n.batch = nil
	n.label = nil
	n.animation = nil
	n.drawable = nil
}

// Move translates the renderables of this node and of every node beneath
// it by delta. Renderables are not transform-composed, so this is how a
// grouping node moves its contents.
func (n *Node) Move(delta Vec2) {
	if globalDebug {
		debugCheckRemoved(n, "Move")
	}
	if delta.IsZero() {
		return
	}
	n.move(delta)
}

func (n *Node) move(delta Vec2) {
	switch n.typ {
	case NodeTypeBatch:
		n.batch.Move(delta)
	case NodeTypeLabel:
		n.label.Move(delta)
	case NodeTypeDrawable:
		if m, ok := n.drawable.(Mover); ok {
			m.Move(delta)
		}
	}
	for _, child := range n.children {
		child.move(delta)
	}
}

// --- Traversal ---

// update runs n's renderable update and recurses pre-order into enabled
// children. Returns the number of nodes visited and uploads performed.
func (n *Node) update(dt float64, visited, uploads *int) {
	if !n.enabled {
		return
	}
	*visited++
	switch n.typ {
	case NodeTypeBatch:
		if n.batch.Update() {
			*uploads++
		}
	case NodeTypeLabel:
		if n.label.Update() {
			*uploads++
		}
	case NodeTypeAnimation:
		n.animation.Update(dt)
	case NodeTypeDrawable:
		n.drawable.Update(dt)
	}
	for _, child := range n.children {
		child.update(dt, visited, uploads)
	}
}

// draw issues n's draw call and recurses pre-order into enabled children,
// switching programs around subtrees that carry one.
func (n *Node) draw(r Rasterizer) {
	if !n.enabled {
		return
	}
	if n.program != 0 {
		prev := r.UseProgram(n.program)
		defer r.UseProgram(prev)
	}
	switch n.typ {
	case NodeTypeBatch:
		n.batch.Draw(r)
	case NodeTypeLabel:
		n.label.Draw(r)
	case NodeTypeDrawable:
		n.drawable.Draw(r)
	}
	for _, child := range n.children {
		child.draw(r)
	}
}

// walk calls fn for n and every descendant, pre-order, ignoring enabled
// state. Stops descending into a subtree when fn returns false.
func (n *Node) walk(fn func(*Node) bool) {
	if !fn(n) {
		return
	}
	for _, child := range n.children {
		child.walk(fn)
	}
}

// --- Helpers ---

// isAncestor reports whether candidate is an ancestor of node.
func isAncestor(candidate, node *Node) bool {
	for p := node; p != nil; p = p.parent {
		if p == candidate {
			return true
		}
	}
	return false
}

// removeChildByPtr removes child from n.children without clearing child.parent.
// Uses copy+nil to avoid retaining a dangling pointer in the backing array.
func (n *Node) removeChildByPtr(child *Node) {
	for i, c := range n.children {
		if c == child {
			copy(n.children[i:], n.children[i+1:])
			n.children[len(n.children)-1] = nil
			n.children = n.children[:len(n.children)-1]
			return
		}
	}
}
