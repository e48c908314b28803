package gimbal

import "fmt"

// Element is a registered scene entity: its compiled dynamic plan, asset
// slots, and registration-bound effect list. Elements are created by
// Stage.RegisterElement and are singletons per id.
type Element struct {
	ID   string
	Kind ElementKind

	plan    *Plan
	effects []boundEffect
	// Slots persist for the element's lifetime; resolution shares them with
	// every frame's ResolvedElement.
	Slots *AssetSlots
}

// newElement compiles a blueprint into an Element. The "kind" static key
// selects the element kind (default sprite); "texture" and "font" static
// keys create pending asset slots; "effects" binds against the library.
func newElement(id string, bp Blueprint, library *Library) (*Element, error) {
	plan := CompileBlueprint(bp)

	kind := KindSprite
	if k, ok := plan.Static("kind").(ElementKind); ok {
		kind = k
	}
	if kind == KindProjection {
		return nil, fmt.Errorf("gimbal: element %q: use RegisterProjection for projections", id)
	}

	effects, err := bindPlanEffects(plan, library, kind, id)
	if err != nil {
		return nil, err
	}

	textureRef, _ := plan.Static("texture").(string)
	fontRef, _ := plan.Static("font").(string)

	return &Element{
		ID:      id,
		Kind:    kind,
		plan:    plan,
		effects: effects,
		Slots: &AssetSlots{
			Texture: newAssetSlot(textureRef, assetTexture),
			Font:    newAssetSlot(fontRef, assetFont),
		},
	}, nil
}

// bindPlanEffects binds a plan's static effect list against the library.
func bindPlanEffects(plan *Plan, library *Library, kind ElementKind, id string) ([]boundEffect, error) {
	instructions, err := effectInstructions(plan.Static("effects"))
	if err != nil {
		return nil, fmt.Errorf("%w (entity %q)", err, id)
	}
	bound, err := library.bind(instructions, kind)
	if err != nil {
		return nil, fmt.Errorf("%w (entity %q)", err, id)
	}
	return bound, nil
}

// resolveElement evaluates the element's plan against the frame and applies
// its bound effects, producing this frame's plain-data view.
func resolveElement(el *Element, ctx *Context, pool Pool) *ResolvedElement {
	r := &ResolvedElement{
		ID:    el.ID,
		Kind:  el.Kind,
		Props: resolvePlan(el.plan, ctx, pool),
		Slots: el.Slots,
	}
	extractPose(r)
	applyEffects(r, el.effects, ctx, pool)
	return r
}
