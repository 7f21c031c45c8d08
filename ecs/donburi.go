package ecs

import (
	"github.com/phanxgames/canopy"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
	"github.com/yohamta/donburi/filter"
)

// SceneEventType is the Donburi event type for canopy scene events.
var SceneEventType = events.NewEventType[canopy.SceneEvent]()

type donburiStore struct {
	world donburi.World
}

// NewDonburiStore creates an EntityStore backed by a Donburi world.
// Scene events are published to SceneEventType and can be consumed with
// events.Subscribe and ProcessEvents.
func NewDonburiStore(world donburi.World) canopy.EntityStore {
	return &donburiStore{world: world}
}

func (s *donburiStore) EmitEvent(event canopy.SceneEvent) {
	SceneEventType.Publish(s.world, event)
}

var (
	// Sprite holds a handle to the sprite an entity renders as.
	Sprite = donburi.NewComponentType[canopy.SpriteRef]()
	// Position is the entity's position in scene space.
	Position = donburi.NewComponentType[canopy.Vec2]()
)

var spriteQuery = donburi.NewQuery(filter.Contains(Sprite, Position))

// SyncSprites copies the Position of every entity that has both components
// onto its sprite and returns how many sprites moved. Entities whose sprite
// handle was invalidated by a batch removal are skipped.
func SyncSprites(world donburi.World) int {
	moved := 0
	spriteQuery.Each(world, func(e *donburi.Entry) {
		ref := Sprite.Get(e)
		if !ref.IsValid() {
			return
		}
		s := ref.Sprite()
		if p := *Position.Get(e); s.Position() != p {
			s.SetPosition(p)
			moved++
		}
	})
	return moved
}
