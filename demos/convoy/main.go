// convoy demonstrates hierarchical projection composition: a lead
// projection glides across the scene while a chase projection, targeting
// the lead, inherits its motion with a fixed local offset. The renderer
// looks through the chase projection.
package main

import (
	"log"
	"math"

	"github.com/phanxgames/gimbal"
	"github.com/tanema/gween/ease"
)

const (
	screenW = 960
	screenH = 540
)

func main() {
	stage := gimbal.NewStage(gimbal.StageConfig{
		Playback: gimbal.Playback{Duration: 6, Loop: true},
	})

	// A lane of panels to fly past.
	for i := 0; i < 10; i++ {
		id := "post-" + string(rune('a'+i))
		side := 2.0
		if i%2 == 0 {
			side = -2.0
		}
		if _, err := stage.RegisterElement(id, gimbal.Blueprint{
			"kind":     gimbal.KindPanel,
			"position": gimbal.Vector3{X: side, Z: -float64(i) * 4},
			"color":    gimbal.Color{R: 0.3, G: 0.8, B: 0.5, A: 1},
		}); err != nil {
			log.Fatal(err)
		}
	}

	glide := gimbal.NewGlide("fly-in", 0,
		gimbal.Vector3{Y: 2, Z: 8}, gimbal.Vector3{Y: 2, Z: -30}, 12, ease.InOutQuad)

	if _, err := stage.RegisterProjection("lead", gimbal.Blueprint{
		"car": []gimbal.CarModifier{glide},
		"rotation": func(ctx *gimbal.Context, pool gimbal.Pool) any {
			// Gentle weave as the lead advances.
			return gimbal.Rotation3{Roll: 0.05 * math.Sin(ctx.Progress*2*math.Pi)}
		},
	}); err != nil {
		log.Fatal(err)
	}

	// The chase projection sits behind and above the lead in the lead's
	// local space; hierarchy composition carries it along.
	if _, err := stage.RegisterProjection("chase", gimbal.Blueprint{
		"target":   "lead",
		"position": gimbal.Vector3{Y: 1.5, Z: 6},
	}); err != nil {
		log.Fatal(err)
	}

	if err := gimbal.Run(stage, gimbal.RunConfig{
		Title: "gimbal convoy", Width: screenW, Height: screenH,
		ProjectionID: "chase",
	}); err != nil {
		log.Fatal(err)
	}
}
