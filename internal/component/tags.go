package component

// Player marks the controlled avatar.
type Player struct{}

// Enemy marks a spawned monster.
type Enemy struct{}

// Camera marks the view entity; it is parented to the player.
type Camera struct{}

// Name is a human-readable label; for enemies it is the archetype name used
// to look up clips.
type Name string

// Dying is the terminal lifecycle tag: Alive -> Dying -> despawned.
// Health and Collider are removed in the same flush that adds it.
type Dying struct {
	// ClipSwitched is set once the terminal clip has been requested.
	ClipSwitched bool
	// Dropped is set once the death drop has been rolled.
	Dropped bool
	// Despawned is set once despawn has been requested.
	Despawned bool
}
