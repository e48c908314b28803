// Package gimbal is a frame-driven scene and camera-rig toolkit for
// [Ebitengine].
//
// Gimbal lets you describe a 3D scene's entities and camera as time-varying
// property blueprints — literal values, functions of the current frame, or
// nested mixtures of both — and resolves them once per frame into concrete
// values for a renderer. On top sits a camera-rig pipeline: stacks of "car"
// (absolute position), "nudge" (position perturbation), and "stick"
// (orientation) providers that compose into a final camera pose with
// explicit priority, fallback, and voting semantics.
//
// # Quick start
//
// Create a [Stage], register elements and a projection, and hand it to
// [Run], which creates a window and game loop for you:
//
//	stage := gimbal.NewStage(gimbal.StageConfig{})
//	stage.RegisterElement("hero", gimbal.Blueprint{
//		"kind":     gimbal.KindSprite,
//		"texture":  "hero.png",
//		"position": gimbal.Vector3{X: 0, Y: 0, Z: -5},
//	})
//	stage.RegisterProjection("main", gimbal.Blueprint{
//		"car":   []gimbal.CarModifier{gimbal.NewFixedCar("home", 0, gimbal.Vector3{Z: 4})},
//		"stick": []gimbal.StickModifier{gimbal.NewFixedStick("level", 0, gimbal.StickResult{Distance: 10})},
//	})
//	gimbal.Run(stage, gimbal.RunConfig{Title: "My Rig", Width: 640, Height: 480})
//
// For full control, implement [ebiten.Game] yourself and call
// [Stage.Update] and [Stage.Resolve] directly each frame.
//
// # Blueprints
//
// Any blueprint field may be a literal, a [ComputeFunc] evaluated against the
// per-frame [Context], or a nested [Blueprint]. Blueprints compile once at
// registration into a tagged dynamic plan; resolution every frame is a pure
// function of the plan and the context, so the same context always yields
// the same values.
//
//	stage.RegisterElement("moon", gimbal.Blueprint{
//		"kind": gimbal.KindSprite,
//		"position": func(ctx *gimbal.Context, pool gimbal.Pool) any {
//			a := ctx.Progress * 2 * math.Pi
//			return gimbal.Vector3{X: math.Cos(a) * 3, Z: math.Sin(a) * 3}
//		},
//	})
//
// # Camera rig
//
// A projection's position is produced in three stages: the highest-priority
// active car that succeeds wins outright; every successful nudge votes a
// partial per-axis offset and the votes are averaged per axis; the
// highest-priority active stick that succeeds supplies yaw/pitch/roll and a
// look distance. Providers that fail are skipped (and optionally recorded to
// an audit log), never fatal. [Chain] and [Fallback] combine providers.
// Projections compose hierarchically through a parent target id.
//
// # Key features
//
// Gimbal includes asynchronous texture/font hydration with status slots,
// an ordered post-resolution effect pipeline, eased computed properties and
// glide camera moves (via [gween]), an Ebitengine billboard renderer, and
// ECS integration (via [Donburi] adapter in gimbal/ecs).
//
// [Ebitengine]: https://ebitengine.org
// [gween]: https://github.com/tanema/gween
// [Donburi]: https://github.com/yohamta/donburi
package gimbal
