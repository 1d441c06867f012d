package engine

import (
	"github.com/go-gl/glfw/v3.3/glfw"
)

// keySource reports the current state of a key; *glfw.Window implements it.
type keySource interface {
	GetKey(key glfw.Key) glfw.Action
}

// InputHandler tracks the keyboard between frames so presses can be told
// apart from held keys.
type InputHandler struct {
	source       keySource
	keys         []glfw.Key
	currentKeys  map[glfw.Key]bool
	previousKeys map[glfw.Key]bool
}

// NewInputHandler creates an input handler polling the given keys.
func NewInputHandler(source keySource, keys ...glfw.Key) *InputHandler {
	return &InputHandler{
		source:       source,
		keys:         keys,
		currentKeys:  make(map[glfw.Key]bool, len(keys)),
		previousKeys: make(map[glfw.Key]bool, len(keys)),
	}
}

// Update polls the tracked keys. Call once per frame after the window
// events were processed.
func (ih *InputHandler) Update() {
	ih.previousKeys, ih.currentKeys = ih.currentKeys, ih.previousKeys
	for _, key := range ih.keys {
		ih.currentKeys[key] = ih.source.GetKey(key) == glfw.Press
	}
}

// IsKeyDown checks whether the key is held
func (ih *InputHandler) IsKeyDown(key glfw.Key) bool {
	return ih.currentKeys[key]
}

// IsKeyPressed checks whether the key went down this frame
func (ih *InputHandler) IsKeyPressed(key glfw.Key) bool {
	return ih.currentKeys[key] && !ih.previousKeys[key]
}

// IsKeyReleased checks whether the key went up this frame
func (ih *InputHandler) IsKeyReleased(key glfw.Key) bool {
	return !ih.currentKeys[key] && ih.previousKeys[key]
}
