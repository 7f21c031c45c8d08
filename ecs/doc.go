// Package ecs bridges canopy scenes and [Donburi] worlds.
//
// [NewDonburiStore] forwards scene events (nodes added, removed, enabled or
// disabled) into a world as typed events. Subscribe to [SceneEventType] in
// your systems to receive them:
//
//	store := ecs.NewDonburiStore(world)
//	scene.SetEntityStore(store)
//
// The [Sprite] and [Position] components let systems drive sprites from
// entity state; call [SyncSprites] once per tick before Scene.Update.
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
