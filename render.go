package gimbal

import (
	"fmt"
	"image/color"
	"math"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// Renderer draws a resolved snapshot through one projection's final pose:
// elements are projected to the screen as camera-facing billboards and
// painted back to front. It consumes only plain resolved data and asset
// slots; a still-pending or errored texture slot falls back to a flat
// color fill.
type Renderer struct {
	// ProjectionID selects the camera pose from the snapshot.
	ProjectionID string
	// FOV is the vertical field of view in radians. Zero means 60 degrees.
	FOV float64
	// Background fills the screen before drawing. Defaults to opaque black.
	Background Color
	// Near culls anything closer than this camera-space distance.
	Near float64

	depthBuf []billboard
}

// NewRenderer creates a renderer viewing through the given projection.
func NewRenderer(projectionID string) *Renderer {
	return &Renderer{
		ProjectionID: projectionID,
		FOV:          60 * math.Pi / 180,
		Near:         0.1,
	}
}

// billboard is one projected element awaiting submission.
type billboard struct {
	el     *ResolvedElement
	sx, sy float64
	depth  float64 // camera-space distance, for painter's sort
	size   float64 // on-screen scale factor
}

// Draw renders the snapshot to screen. Unknown element kinds panic: an
// unhandled variant is a programming error, not a runtime condition.
func (r *Renderer) Draw(screen *ebiten.Image, snap *Snapshot) {
	screen.Fill(color.RGBA{
		R: uint8(r.Background.R * 255),
		G: uint8(r.Background.G * 255),
		B: uint8(r.Background.B * 255),
		A: 255,
	})

	proj := snap.Projection(r.ProjectionID)
	if proj == nil {
		return
	}

	bounds := screen.Bounds()
	w := float64(bounds.Dx())
	h := float64(bounds.Dy())
	fov := r.FOV
	if fov == 0 {
		fov = 60 * math.Pi / 180
	}
	focal := (h / 2) / math.Tan(fov/2)

	r.depthBuf = r.depthBuf[:0]
	for _, id := range drawOrder(snap) {
		el := snap.Elements[id]
		cam := cameraSpace(el.Position, proj.Position, proj.Rotation)
		if cam.Z >= -r.Near {
			continue // behind or on the camera plane
		}
		dist := -cam.Z
		r.depthBuf = append(r.depthBuf, billboard{
			el:    el,
			sx:    w/2 + focal*cam.X/dist,
			sy:    h/2 - focal*cam.Y/dist,
			depth: dist,
			size:  focal / dist,
		})
	}

	// Painter's algorithm: farthest first. The input order is deterministic
	// (drawOrder) and the sort stable, so equidistant elements keep their
	// relative order across frames.
	sort.SliceStable(r.depthBuf, func(i, j int) bool {
		return r.depthBuf[i].depth > r.depthBuf[j].depth
	})

	for _, b := range r.depthBuf {
		submitBillboard(screen, b)
	}
}

// drawOrder returns the element iteration order: the snapshot's
// registration order when present, otherwise sorted ids. Ranging over the
// Elements map directly would reshuffle equidistant billboards every frame.
func drawOrder(snap *Snapshot) []string {
	if len(snap.Order) == len(snap.Elements) {
		return snap.Order
	}
	ids := make([]string, 0, len(snap.Elements))
	for id := range snap.Elements {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// cameraSpace transforms a world point into the camera's local frame:
// translate by the inverse position, then apply the inverse rotation
// (yaw, pitch, roll undone in reverse order).
func cameraSpace(world, camPos Vector3, camRot Rotation3) Vector3 {
	v := world.Sub(camPos)

	// Undo yaw about +Y.
	sy, cy := math.Sincos(-camRot.Yaw)
	v.X, v.Z = cy*v.X+sy*v.Z, -sy*v.X+cy*v.Z

	// Undo pitch about +X.
	sp, cp := math.Sincos(-camRot.Pitch)
	v.Y, v.Z = cp*v.Y-sp*v.Z, sp*v.Y+cp*v.Z

	// Undo roll about +Z.
	sr, cr := math.Sincos(-camRot.Roll)
	v.X, v.Y = cr*v.X-sr*v.Y, sr*v.X+cr*v.Y

	return v
}

// submitBillboard draws one projected element. Dispatch over the closed
// ElementKind set is exhaustive.
func submitBillboard(screen *ebiten.Image, b billboard) {
	el := b.el
	switch el.Kind {
	case KindSprite:
		img := textureOf(el)
		drawQuad(screen, img, b, el.Color)
	case KindPanel:
		drawQuad(screen, whitePixel(), b, el.Color)
	case KindText:
		drawBillboardText(screen, b)
	case KindProjection:
		// Projections are poses, not visuals.
	default:
		panic(fmt.Sprintf("gimbal: unknown element kind %d (id %q)", el.Kind, el.ID))
	}
}

// textureOf returns the element's hydrated texture, or the flat white
// pixel when the slot is pending, errored, or empty.
func textureOf(el *ResolvedElement) *ebiten.Image {
	slot := el.Slots.Texture
	if slot.Status == AssetReady {
		if img, ok := slot.Value.(*ebiten.Image); ok && img != nil {
			return img
		}
	}
	return whitePixel()
}

// drawQuad draws img centered on the billboard's screen point, scaled by
// distance and the element's resolved scale, tinted by the element color.
func drawQuad(screen *ebiten.Image, img *ebiten.Image, b billboard, c Color) {
	ib := img.Bounds()
	iw := float64(ib.Dx())
	ih := float64(ib.Dy())
	if iw == 0 || ih == 0 {
		return
	}

	// A scale-1 element spans one world unit vertically.
	s := b.size * b.el.Scale / ih

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(-iw/2, -ih/2)
	op.GeoM.Scale(s, s)
	op.GeoM.Translate(b.sx, b.sy)
	op.ColorScale.Scale(
		float32(c.R*c.A), float32(c.G*c.A), float32(c.B*c.A), float32(c.A),
	)
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(img, op)
}

// drawBillboardText draws the element's "text" property with its hydrated
// font face. Falls back to a flat quad while the font is not ready so the
// element still occupies its spot.
func drawBillboardText(screen *ebiten.Image, b billboard) {
	el := b.el
	str, _ := el.Prop("text").(string)
	face, _ := el.Slots.Font.Value.(*TTFFace)
	if str == "" || face == nil || el.Slots.Font.Status != AssetReady {
		drawQuad(screen, whitePixel(), b, el.Color)
		return
	}

	tw, th := face.Measure(str)
	op := &text.DrawOptions{}
	op.GeoM.Translate(-tw/2, -th/2)
	op.GeoM.Scale(b.el.Scale, b.el.Scale)
	op.GeoM.Translate(b.sx, b.sy)
	op.ColorScale.Scale(
		float32(el.Color.R*el.Color.A), float32(el.Color.G*el.Color.A),
		float32(el.Color.B*el.Color.A), float32(el.Color.A),
	)
	text.Draw(screen, str, face.Face, op)
}

// white pixel singleton for flat fills (no sync.Once — gimbal rendering is
// single-threaded).
var whitePixelImage *ebiten.Image

func whitePixel() *ebiten.Image {
	if whitePixelImage == nil {
		whitePixelImage = ebiten.NewImage(1, 1)
		whitePixelImage.Fill(color.White)
	}
	return whitePixelImage
}
