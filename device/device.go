// Package device defines the host-GPU collaborator the texture cache
// borrows textures from and returns them to. The cache never allocates or
// frees host textures directly; it only calls through this interface.
package device

// Device fetches and recycles host textures. Implementations: device/software
// (a pure-Go image.RGBA-backed reference device, used by tests and as a
// headless default) and device/gl (a real OpenGL 3.3 core-profile device).
type Device interface {
	// FetchTexture allocates a width x height RGBA8 texture with the given
	// layers/levels/samples. Returns nil on allocation failure; callers must
	// treat that as a non-fatal resource-exhaustion condition.
	FetchTexture(width, height, layers, levels, samples int) Texture

	// RecycleTexture returns a texture obtained from FetchTexture for reuse
	// or destruction. Ownership of tex transfers to the device; callers must
	// not touch it again.
	RecycleTexture(tex Texture)
}

// Texture is a single host texture, sampleable by the renderer once
// decoded into.
type Texture interface {
	Width() int
	Height() int

	// Map returns a pointer to a directly-writable region of the texture's
	// backing store, along with its row stride in bytes. ok is false if the
	// texture can't be mapped, in which case callers must decode into a
	// staging buffer and call Update instead.
	Map(x, y, w, h int) (dst []byte, stride int, ok bool)
	Unmap()

	// Update uploads w x h RGBA8 pixels from src (row stride given in
	// bytes) to the texture at (x, y).
	Update(x, y, w, h int, src []byte, stride int)
}
