// Package ecs provides ECS adapters for gimbal.
package ecs

import (
	"github.com/phanxgames/gimbal"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// ResolutionEventType is the Donburi event type for gimbal resolution
// events. Subscribe to this in your ECS systems to receive each entity's
// resolved pose every frame.
var ResolutionEventType = events.NewEventType[gimbal.ResolutionEvent]()

type donburiSink struct {
	world donburi.World
}

// NewDonburiSink creates an EventSink backed by a Donburi world.
// Resolution events are published to ResolutionEventType and can be
// consumed with events.Subscribe and ProcessEvents.
func NewDonburiSink(world donburi.World) gimbal.EventSink {
	return &donburiSink{world: world}
}

func (s *donburiSink) EmitResolution(event gimbal.ResolutionEvent) {
	ResolutionEventType.Publish(s.world, event)
}
