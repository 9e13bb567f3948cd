package scene

import "testing"

func TestFadeRestartsOnlyOnEntry(t *testing.T) {
	m := &chunkMesh{}

	m.SetVisible(true)
	if m.fade != 0 {
		t.Fatalf("fade on entry = %v, want 0", m.fade)
	}
	m.fade = 1

	// A LOD rebuild re-issues a show on an already visible chunk.
	m.SetVisible(true)
	if m.fade != 1 {
		t.Errorf("fade after redundant show = %v, want 1", m.fade)
	}

	m.SetVisible(false)
	m.SetVisible(true)
	if m.fade != 0 {
		t.Errorf("fade after re-entry = %v, want 0", m.fade)
	}
}
