package canopy

// SceneEventType identifies a structural change in a scene.
type SceneEventType uint8

const (
	EventNodeAdded    SceneEventType = iota // a node was created under a parent
	EventNodeRemoved                        // a node was removed, once per node in the subtree
	EventNodeEnabled                        // a disabled node was enabled
	EventNodeDisabled                       // an enabled node was disabled
)

func (t SceneEventType) String() string {
	switch t {
	case EventNodeAdded:
		return "added"
	case EventNodeRemoved:
		return "removed"
	case EventNodeEnabled:
		return "enabled"
	case EventNodeDisabled:
		return "disabled"
	default:
		return "unknown"
	}
}

// SceneEvent describes one structural change.
type SceneEvent struct {
	Type     SceneEventType
	NodeID   uint32
	NodeType NodeType
	Tag      string
}

// EntityStore receives scene events, typically to forward them into an
// ECS world (see the ecs package).
type EntityStore interface {
	EmitEvent(event SceneEvent)
}

// SetEntityStore sets the receiver for scene events. Nil disables events.
func (s *Scene) SetEntityStore(store EntityStore) {
	s.store = store
}

func (s *Scene) emit(typ SceneEventType, n *Node) {
	if s.store == nil {
		return
	}
	s.store.EmitEvent(SceneEvent{Type: typ, NodeID: n.id, NodeType: n.typ, Tag: n.tag})
}
