package camera

import "testing"

func TestDragRotates(t *testing.T) {
	o := newTestOrbit()
	o.EnableDamping = false
	d := NewDrag(o)

	start := o.Camera.Position
	d.Apply(Pointer{X: 10, Y: 10, Left: true}, 600)
	o.Update()
	if !vecClose(o.Camera.Position, start, 1e-9) {
		t.Error("press alone moved the camera")
	}
	if !d.Dragging() || !o.interacting {
		t.Error("press did not start a drag")
	}

	d.Apply(Pointer{X: 70, Y: 10, Left: true}, 600)
	o.Update()
	if vecClose(o.Camera.Position, start, 1e-6) {
		t.Error("drag did not rotate the camera")
	}
	if !almostEqual(o.Distance(), 25) {
		t.Errorf("rotation changed distance to %f", o.Distance())
	}

	d.Apply(Pointer{X: 70, Y: 10}, 600)
	if d.Dragging() || o.interacting {
		t.Error("release did not end the drag")
	}
}

func TestDragPans(t *testing.T) {
	o := newTestOrbit()
	o.EnableDamping = false
	d := NewDrag(o)

	d.Apply(Pointer{X: 0, Y: 0, Right: true}, 600)
	d.Apply(Pointer{X: 50, Y: 0, Right: true}, 600)
	o.Update()
	if o.Target[0] >= 0 {
		t.Errorf("right drag should pan the target left, got %v", o.Target)
	}
}

func TestWheelZooms(t *testing.T) {
	o := newTestOrbit()
	o.EnableDamping = false
	d := NewDrag(o)

	d.Apply(Pointer{WheelY: 2}, 600)
	o.Update()
	if !almostEqual(o.Distance(), 25*0.95*0.95) {
		t.Errorf("distance = %f, want %f", o.Distance(), 25*0.95*0.95)
	}
	if d.Dragging() {
		t.Error("wheel started a drag")
	}
}
