package opengl

import (
	"github.com/go-gl/glfw/v3.3/glfw"

	"galaxygenerator/panel"
)

// panelAction maps a key event to a panel action. Arrow presses and
// repeats adjust the selected binding; letting go of the arrow commits,
// which is when the galaxy regenerates.
func panelAction(key glfw.Key, action glfw.Action, mods glfw.ModifierKey) (panel.Action, bool) {
	adjusting := key == glfw.KeyLeft || key == glfw.KeyRight ||
		key == glfw.KeyMinus || key == glfw.KeyEqual ||
		key == glfw.KeyKPSubtract || key == glfw.KeyKPAdd

	if action == glfw.Release {
		if adjusting {
			return panel.Release, true
		}
		return 0, false
	}

	switch key {
	case glfw.KeyRight, glfw.KeyEqual, glfw.KeyKPAdd:
		return panel.Increase, true
	case glfw.KeyLeft, glfw.KeyMinus, glfw.KeyKPSubtract:
		return panel.Decrease, true
	}

	if action != glfw.Press {
		return 0, false
	}
	switch key {
	case glfw.KeyDown:
		return panel.SelectNext, true
	case glfw.KeyUp:
		return panel.SelectPrev, true
	case glfw.KeyTab:
		if mods&glfw.ModShift != 0 {
			return panel.SelectPrev, true
		}
		return panel.SelectNext, true
	case glfw.KeyR:
		return panel.ResetAll, true
	}
	return 0, false
}

// holdSteps is the adjustment multiplier for a held arrow with shift
// pressed, for sweeping wide ranges like count
func holdSteps(mods glfw.ModifierKey) int {
	if mods&glfw.ModShift != 0 {
		return 10
	}
	return 1
}
