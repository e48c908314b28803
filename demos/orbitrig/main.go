// orbitrig spins a full camera rig around a ring of panels: an orbit car
// drives the position, a shake nudge perturbs it, and a tracking stick
// keeps the center element in view with a fixed stick as fallback.
package main

import (
	"log"
	"math"

	"github.com/phanxgames/gimbal"
)

const (
	screenW = 960
	screenH = 540
	ringN   = 12
)

func main() {
	stage := gimbal.NewStage(gimbal.StageConfig{
		Playback: gimbal.Playback{Duration: 8, Loop: true},
	})

	// Center beacon the stick tracks, bobbing on the loop.
	_, err := stage.RegisterElement("beacon", gimbal.Blueprint{
		"kind":     gimbal.KindPanel,
		"position": gimbal.Vector3{},
		"scale":    1.5,
		"color":    gimbal.Color{R: 1, G: 0.85, B: 0.3, A: 1},
		"effects": []gimbal.EffectInstruction{
			{Type: "bob", Settings: map[string]any{"amplitude": 0.75, "cycles": 2.0}},
			{Type: "scale-pulse", Settings: map[string]any{"amount": 0.2, "cycles": 4.0}},
		},
	})
	if err != nil {
		log.Fatal(err)
	}

	// Ring of tinted panels around the beacon.
	for i := 0; i < ringN; i++ {
		a := float64(i) / ringN * 2 * math.Pi
		hue := float64(i) / ringN
		_, err := stage.RegisterElement(ringID(i), gimbal.Blueprint{
			"kind":     gimbal.KindPanel,
			"position": gimbal.Vector3{X: math.Cos(a) * 5, Z: math.Sin(a) * 5},
			"color":    gimbal.Color{R: hue, G: 0.4, B: 1 - hue, A: 1},
		})
		if err != nil {
			log.Fatal(err)
		}
	}

	track := gimbal.NewTrackStick("track-beacon", 100, "beacon", gimbal.Vector3{})
	level := gimbal.NewFixedStick("level", 0, gimbal.StickResult{Distance: 10})

	_, err = stage.RegisterProjection("main", gimbal.Blueprint{
		"car": []gimbal.CarModifier{
			gimbal.NewOrbitCar("orbit", 0, gimbal.Vector3{Y: 3}, 12),
		},
		"nudge": []gimbal.NudgeModifier{
			gimbal.NewShakeNudge("handheld", gimbal.Vector3{X: 0.05, Y: 0.05}),
		},
		"stick":       []gimbal.StickModifier{track, level},
		"orientation": gimbal.LookAtAuthority,
		"lookAt": func(ctx *gimbal.Context, pool gimbal.Pool) any {
			if beacon, ok := pool["beacon"].(*gimbal.ResolvedElement); ok {
				return beacon.Position
			}
			return gimbal.Vector3{}
		},
	})
	if err != nil {
		log.Fatal(err)
	}

	if err := gimbal.Run(stage, gimbal.RunConfig{
		Title: "gimbal orbit rig", Width: screenW, Height: screenH,
	}); err != nil {
		log.Fatal(err)
	}
}

func ringID(i int) string {
	return "ring-" + string(rune('a'+i))
}
