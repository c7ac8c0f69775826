package opengl

import (
	"testing"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/stretchr/testify/assert"

	"galaxygenerator/panel"
)

func TestPanelAction(t *testing.T) {
	tests := []struct {
		name   string
		key    glfw.Key
		action glfw.Action
		mods   glfw.ModifierKey
		want   panel.Action
		ok     bool
	}{
		{"right press", glfw.KeyRight, glfw.Press, 0, panel.Increase, true},
		{"right repeat", glfw.KeyRight, glfw.Repeat, 0, panel.Increase, true},
		{"right release commits", glfw.KeyRight, glfw.Release, 0, panel.Release, true},
		{"minus press", glfw.KeyMinus, glfw.Press, 0, panel.Decrease, true},
		{"down selects next", glfw.KeyDown, glfw.Press, 0, panel.SelectNext, true},
		{"down repeat ignored", glfw.KeyDown, glfw.Repeat, 0, 0, false},
		{"down release ignored", glfw.KeyDown, glfw.Release, 0, 0, false},
		{"shift tab", glfw.KeyTab, glfw.Press, glfw.ModShift, panel.SelectPrev, true},
		{"tab", glfw.KeyTab, glfw.Press, 0, panel.SelectNext, true},
		{"reset", glfw.KeyR, glfw.Press, 0, panel.ResetAll, true},
		{"unbound", glfw.KeyQ, glfw.Press, 0, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := panelAction(tt.key, tt.action, tt.mods)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestHoldSteps(t *testing.T) {
	assert.Equal(t, 1, holdSteps(0))
	assert.Equal(t, 10, holdSteps(glfw.ModShift))
}
