package gimbal

// AssetStatus is the lifecycle state of an asset slot.
type AssetStatus uint8

const (
	// AssetPending: a reference exists but the loader has not been
	// dispatched yet.
	AssetPending AssetStatus = iota
	// AssetLoading: the loader has been dispatched and has not settled.
	AssetLoading
	// AssetReady: the payload is available. Slots created without a
	// reference are READY immediately with a nil payload.
	AssetReady
	// AssetError: the loader settled with an error. Consumers treat this
	// like "no asset" (flat color fill); it is never thrown.
	AssetError
)

// String returns the status name for debug output.
func (s AssetStatus) String() string {
	switch s {
	case AssetPending:
		return "pending"
	case AssetLoading:
		return "loading"
	case AssetReady:
		return "ready"
	case AssetError:
		return "error"
	default:
		return "unknown"
	}
}

// assetKind routes a slot to the matching Loader operation.
type assetKind uint8

const (
	assetTexture assetKind = iota
	assetFont
)

// AssetSlot tracks one asset reference's hydration for the life of its
// owning element. Created at registration and never recreated; mutated
// exactly once, on the frame goroutine, when the loader settles. Readers
// observe it at frame boundaries only, so there is no torn-read hazard.
type AssetSlot struct {
	Status AssetStatus
	// Value is the hydrated payload: *ebiten.Image for textures, *TTFFace
	// for fonts, or nil.
	Value any
	// Err is the loader's error message when Status is AssetError.
	Err string

	ref        string
	kind       assetKind
	dispatched bool
}

// Ref returns the asset reference this slot hydrates. Empty for slots
// created without a reference.
func (s *AssetSlot) Ref() string { return s.ref }

// newAssetSlot creates a slot for the given reference. An empty reference
// yields an immediately-ready slot with a nil payload.
func newAssetSlot(ref string, kind assetKind) *AssetSlot {
	if ref == "" {
		return &AssetSlot{Status: AssetReady, kind: kind}
	}
	return &AssetSlot{Status: AssetPending, ref: ref, kind: kind}
}

// AssetSlots holds the per-element asset slots. Both slots always exist;
// elements without a texture or font reference get ready slots with nil
// payloads.
type AssetSlots struct {
	Texture *AssetSlot
	Font    *AssetSlot
}

// Loader is the external asset-fetching collaborator. Both operations run
// on a background goroutine and must return errors rather than panic;
// errors settle the slot into AssetError.
type Loader interface {
	// LoadTexture fetches and decodes the texture payload for ref.
	LoadTexture(ref string) (any, error)
	// LoadFont fetches and decodes the font payload for ref.
	LoadFont(ref string) (any, error)
}

// hydrationResult carries one settled load back to the frame goroutine.
type hydrationResult struct {
	slot  *AssetSlot
	value any
	err   error
}

// hydrationQueueCap bounds the settle channel. Large enough that loader
// goroutines never block in practice; a blocked send only delays that one
// settle until the next drain.
const hydrationQueueCap = 256
