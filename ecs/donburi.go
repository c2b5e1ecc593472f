package ecs

import (
	"github.com/phanxgames/imagemap"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// SelectionEventType is the Donburi event type for imagemap selection
// events. Subscribe to this in your ECS systems to react to the image on
// screen changing.
var SelectionEventType = events.NewEventType[imagemap.SelectionEvent]()

type donburiSink struct {
	world donburi.World
}

// NewDonburiSink creates an EventSink backed by a Donburi world.
// Selection events are published to SelectionEventType and can be
// consumed with events.Subscribe and ProcessEvents.
func NewDonburiSink(world donburi.World) imagemap.EventSink {
	return &donburiSink{world: world}
}

func (s *donburiSink) EmitSelection(event imagemap.SelectionEvent) {
	SelectionEventType.Publish(s.world, event)
}
