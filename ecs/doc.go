// Package ecs provides ECS adapters for imagemap's selection events.
//
// The primary adapter is [NewDonburiSink], which forwards every image the
// map draws into a [Donburi] world as a typed event. Subscribe to
// [SelectionEventType] in your ECS systems to receive them.
//
// Usage:
//
//	sink := ecs.NewDonburiSink(world)
//	m.SetEventSink(sink)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
