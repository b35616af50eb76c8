package mirrorball

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"mirror-balls/internal/geometry"
	"mirror-balls/internal/mathutil"
	"mirror-balls/internal/scene"
)

func testMaterials() Materials {
	return Materials{
		Inner: scene.NewBasicMaterial(scene.Hex(0x222222)),
		Tiles: scene.NewMatcapMaterial(nil, scene.BackSide),
	}
}

func TestTileCountMatchesUniqueVertices(t *testing.T) {
	g, err := geometry.Icosahedron(1, Detail)
	if err != nil {
		t.Fatal(err)
	}
	want := len(geometry.MergeVertices(g.Positions, geometry.DefaultMergeTolerance))

	for _, r := range []float64{0.01, 1, 1.5, 1.99, 40} {
		b, err := New(r, testMaterials())
		if err != nil {
			t.Fatalf("radius %f: %v", r, err)
		}
		if got := b.TileCount(); got != want {
			t.Errorf("radius %f: %d tiles, want %d", r, got, want)
		}
	}
}

func TestTilesFaceCentre(t *testing.T) {
	b, err := New(1.5, testMaterials())
	if err != nil {
		t.Fatal(err)
	}
	for i, m := range b.Tiles.Instances {
		pos := m.Col(3).Vec3()
		if d := mathutil.ForwardAxis(m).Dot(pos.Normalize().Mul(-1)); d < 0.999 {
			t.Errorf("tile %d forward not toward centre (alignment %f)", i, d)
		}
		if d := mathutil.ForwardAxis(m).Dot(pos.Normalize()); d >= 0 {
			t.Errorf("tile %d: forward·direction = %f, want < 0", i, d)
		}
		if math.Abs(pos.Len()-1.5) > 1e-9 {
			t.Errorf("tile %d not on sphere surface: %f", i, pos.Len())
		}
	}
}

func TestTileFrontFaceLooksInward(t *testing.T) {
	b, err := New(1, testMaterials())
	if err != nil {
		t.Fatal(err)
	}
	geo := b.Tiles.Geometry
	for i, inst := range b.Tiles.Instances {
		a, bb, c := geo.Triangle(0)
		pa := inst.Mul4x1(geo.Positions[a].Vec4(1)).Vec3()
		pb := inst.Mul4x1(geo.Positions[bb].Vec4(1)).Vec3()
		pc := inst.Mul4x1(geo.Positions[c].Vec4(1)).Vec3()
		n := pb.Sub(pa).Cross(pc.Sub(pa))
		if n.Dot(pa) >= 0 {
			t.Fatalf("tile %d front face points outward; back side would be hidden", i)
		}
	}
}

func TestBallComposition(t *testing.T) {
	mats := testMaterials()
	b, err := New(1.2, mats)
	if err != nil {
		t.Fatal(err)
	}
	children := b.Node.Children()
	if len(children) != 2 {
		t.Fatalf("ball has %d children, want 2", len(children))
	}
	if children[0].Mesh != b.Inner || children[1].Mesh != b.Tiles {
		t.Error("children are not inner sphere then tiles")
	}
	if b.Inner.Material != mats.Inner || b.Tiles.Material != mats.Tiles {
		t.Error("materials are not shared")
	}
	if !b.Node.LocalMatrix().ApproxEqual(mgl64.Ident4()) {
		t.Error("ball not at origin with identity transform")
	}
	for _, c := range children {
		if !c.LocalMatrix().ApproxEqual(mgl64.Ident4()) {
			t.Errorf("child %s has non-identity transform", c.Name)
		}
	}
}

func TestTileTransformsStayFixedUnderSpin(t *testing.T) {
	b, err := New(1, testMaterials())
	if err != nil {
		t.Fatal(err)
	}
	before := append([]mgl64.Mat4(nil), b.Tiles.Instances...)
	b.SetRotationY(2.5)
	for i := range before {
		if before[i] != b.Tiles.Instances[i] {
			t.Fatalf("tile %d transform changed after rotating the ball", i)
		}
	}
	if b.RotationY() != 2.5 {
		t.Errorf("RotationY = %f", b.RotationY())
	}
}

func TestNewRejectsBadInput(t *testing.T) {
	if _, err := New(0, testMaterials()); err == nil {
		t.Error("expected error for zero radius")
	}
	if _, err := New(1, Materials{}); err == nil {
		t.Error("expected error for missing materials")
	}
}
