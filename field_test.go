package plexus

import (
	"math"
	"testing"
)

func quietConfig() Config {
	cfg := NeuralConfig()
	cfg.Packets = false
	return cfg
}

func TestNewFieldInitialization(t *testing.T) {
	cfg := NeuralConfig()
	f := NewField(cfg, 800, 600, NewSeededRand(7))
	pts := f.Points()
	if len(pts) != cfg.Points {
		t.Fatalf("len(points) = %d, want %d", len(pts), cfg.Points)
	}
	for i, p := range pts {
		if p.Pos.X < 0 || p.Pos.X >= 800 || p.Pos.Y < 0 || p.Pos.Y >= 600 {
			t.Errorf("point %d position %+v outside [0,800)x[0,600)", i, p.Pos)
		}
		if math.Abs(p.Vel.X) > cfg.MaxSpeed || math.Abs(p.Vel.Y) > cfg.MaxSpeed {
			t.Errorf("point %d velocity %+v exceeds %v", i, p.Vel, cfg.MaxSpeed)
		}
		if p.Radius < cfg.Radius.Min || p.Radius > cfg.Radius.Max {
			t.Errorf("point %d radius %v outside %+v", i, p.Radius, cfg.Radius)
		}
		if p.Phase < 0 || p.Phase >= 2*math.Pi {
			t.Errorf("point %d phase %v outside [0, 2pi)", i, p.Phase)
		}
	}
	if len(f.Packets()) != 0 || len(f.Connections()) != 0 {
		t.Error("new field should have no packets or connections")
	}
}

func TestNewFieldSeeded(t *testing.T) {
	cfg := NeuralConfig()
	a := NewField(cfg, 640, 480, NewSeededRand(42))
	b := NewField(cfg, 640, 480, NewSeededRand(42))
	for i := range a.Points() {
		if a.Point(i) != b.Point(i) {
			t.Fatalf("point %d differs between equally seeded fields", i)
		}
	}
}

func TestNewFieldNilRand(t *testing.T) {
	f := NewField(ConstellationConfig(), 100, 100, nil)
	if len(f.Points()) != 60 {
		t.Errorf("len(points) = %d, want 60", len(f.Points()))
	}
	f.Step()
}

func TestStepMovesAndAdvancesPhase(t *testing.T) {
	cfg := quietConfig()
	f := NewFieldFromPoints(cfg, 100, 100, []Point{
		{Pos: Vec2{10, 20}, Vel: Vec2{0.2, -0.1}, Radius: 2, Phase: 1},
	}, NewSeededRand(1))
	f.Step()
	p := f.Point(0)
	assertNear(t, "x", p.Pos.X, 10.2)
	assertNear(t, "y", p.Pos.Y, 19.9)
	assertNear(t, "phase", p.Phase, 1+cfg.PhaseStep)
	if p.Vel != (Vec2{0.2, -0.1}) {
		t.Errorf("velocity changed inside bounds: %+v", p.Vel)
	}
}

func TestBoundaryContainment(t *testing.T) {
	cfg := quietConfig()
	cfg.Points = 50
	cfg.MaxSpeed = 3
	w, h := 200.0, 150.0
	f := NewField(cfg, w, h, NewSeededRand(3))
	for tick := 0; tick < 5000; tick++ {
		f.Step()
		for i, p := range f.Points() {
			if p.Pos.X < -cfg.MaxSpeed || p.Pos.X > w+cfg.MaxSpeed ||
				p.Pos.Y < -cfg.MaxSpeed || p.Pos.Y > h+cfg.MaxSpeed {
				t.Fatalf("tick %d: point %d at %+v escaped bounds", tick, i, p.Pos)
			}
		}
	}
}

func TestVelocityReflection(t *testing.T) {
	cfg := quietConfig()
	f := NewFieldFromPoints(cfg, 100, 100, []Point{
		{Pos: Vec2{99.9, 50}, Vel: Vec2{0.3, 0.1}},
		{Pos: Vec2{50, 50}, Vel: Vec2{0.3, 0.1}},
		{Pos: Vec2{50, 0.1}, Vel: Vec2{0.1, -0.3}},
	}, NewSeededRand(1))
	f.Step()

	if got := f.Point(0).Vel; got != (Vec2{-0.3, 0.1}) {
		t.Errorf("point 0 velocity = %+v, want x flipped only", got)
	}
	if got := f.Point(1).Vel; got != (Vec2{0.3, 0.1}) {
		t.Errorf("point 1 velocity = %+v, want unchanged", got)
	}
	if got := f.Point(2).Vel; got != (Vec2{0.1, 0.3}) {
		t.Errorf("point 2 velocity = %+v, want y flipped only", got)
	}

	// The overshoot is not corrected, and the next tick must not flip again.
	f.Step()
	if got := f.Point(0).Vel; got != (Vec2{-0.3, 0.1}) {
		t.Errorf("point 0 velocity after second tick = %+v", got)
	}
}

func TestReflectionAfterShrinkDoesNotJitter(t *testing.T) {
	cfg := quietConfig()
	f := NewFieldFromPoints(cfg, 200, 200, []Point{
		{Pos: Vec2{150, 50}, Vel: Vec2{-0.2, 0}},
	}, NewSeededRand(1))
	f.Resize(100, 100, ResizeKeep)
	for i := 0; i < 10; i++ {
		f.Step()
		if f.Point(0).Vel.X != -0.2 {
			t.Fatalf("tick %d: point heading back inside was reflected", i)
		}
	}
}

func TestResizeModes(t *testing.T) {
	pts := func() []Point {
		return []Point{{Pos: Vec2{50, 40}, Vel: Vec2{0.1, 0.2}}}
	}
	keep := NewFieldFromPoints(quietConfig(), 100, 80, pts(), NewSeededRand(1))
	keep.Resize(200, 40, ResizeKeep)
	if got := keep.Point(0).Pos; got != (Vec2{50, 40}) {
		t.Errorf("keep: position = %+v", got)
	}

	rescale := NewFieldFromPoints(quietConfig(), 100, 80, pts(), NewSeededRand(1))
	rescale.Resize(200, 40, ResizeRescale)
	if got := rescale.Point(0).Pos; got != (Vec2{100, 20}) {
		t.Errorf("rescale: position = %+v", got)
	}
	if got := rescale.Point(0).Vel; got != (Vec2{0.1, 0.2}) {
		t.Errorf("rescale changed velocity: %+v", got)
	}
	if w, h := rescale.Bounds(); w != 200 || h != 40 {
		t.Errorf("Bounds = %v x %v", w, h)
	}
}

func TestTwoPointConnectionOpacity(t *testing.T) {
	cfg := quietConfig()
	cfg.LinkDistance = 150
	f := NewFieldFromPoints(cfg, 500, 500, []Point{
		{Pos: Vec2{100, 100}},
		{Pos: Vec2{150, 100}},
	}, NewSeededRand(1))
	f.Step()

	conns := f.Connections()
	if len(conns) != 1 {
		t.Fatalf("len(connections) = %d, want 1", len(conns))
	}
	c := conns[0]
	if c.A != 0 || c.B != 1 {
		t.Errorf("connection = %d-%d, want 0-1", c.A, c.B)
	}
	assertNear(t, "distance", c.Distance, 50)
	assertNear(t, "opacity", c.Opacity, 2.0/3.0*cfg.LineOpacity)
}

func TestConnectionThreshold(t *testing.T) {
	cfg := quietConfig()
	cfg.LinkDistance = 100
	f := NewFieldFromPoints(cfg, 500, 500, []Point{
		{Pos: Vec2{0, 0}},
		{Pos: Vec2{100, 0}}, // exactly D: not connected
		{Pos: Vec2{0, 99}},  // just inside
	}, NewSeededRand(1))
	f.Step()
	conns := f.Connections()
	if len(conns) != 1 || conns[0].A != 0 || conns[0].B != 2 {
		t.Errorf("connections = %+v, want only 0-2", conns)
	}
}

func TestConnectionSymmetry(t *testing.T) {
	cfg := quietConfig()
	pts := []Point{
		{Pos: Vec2{10, 10}},
		{Pos: Vec2{60, 90}},
		{Pos: Vec2{300, 300}},
		{Pos: Vec2{20, 40}},
	}
	rev := make([]Point, len(pts))
	for i := range pts {
		rev[len(pts)-1-i] = pts[i]
	}
	a := NewFieldFromPoints(cfg, 500, 500, pts, NewSeededRand(1))
	b := NewFieldFromPoints(cfg, 500, 500, rev, NewSeededRand(1))
	a.Step()
	b.Step()

	type key struct{ a, b Vec2 }
	collect := func(f *Field) map[key]float64 {
		m := make(map[key]float64)
		for _, c := range f.Connections() {
			pa, pb := f.Point(c.A).Pos, f.Point(c.B).Pos
			if pb.X < pa.X || (pb.X == pa.X && pb.Y < pa.Y) {
				pa, pb = pb, pa
			}
			m[key{pa, pb}] = c.Opacity
		}
		return m
	}
	ma, mb := collect(a), collect(b)
	if len(ma) != len(mb) {
		t.Fatalf("connection count %d vs %d", len(ma), len(mb))
	}
	for k, op := range ma {
		if mb[k] != op {
			t.Errorf("pair %+v opacity %v vs %v", k, op, mb[k])
		}
	}
}

func TestPacketLifecycle(t *testing.T) {
	cfg := quietConfig()
	f := NewFieldFromPoints(cfg, 100, 100, nil, NewSeededRand(1))
	if !f.SpawnPacket(Vec2{0, 0}, Vec2{100, 0}, 0.05) {
		t.Fatal("SpawnPacket should succeed below the cap")
	}

	last := 0.0
	for tick := 1; tick <= 25; tick++ {
		f.Step()
		pk := f.Packets()
		if tick < 20 {
			if len(pk) != 1 {
				t.Fatalf("tick %d: packet missing", tick)
			}
			if pk[0].Progress() < last {
				t.Fatalf("tick %d: progress decreased %v -> %v", tick, last, pk[0].Progress())
			}
			last = pk[0].Progress()
			continue
		}
		if len(pk) != 0 {
			t.Fatalf("tick %d: packet still live with progress %v", tick, pk[0].Progress())
		}
	}
}

func TestPacketPosition(t *testing.T) {
	p := Packet{From: Vec2{0, 0}, To: Vec2{100, 50}, Speed: 0.25, age: 2}
	if got := p.Position(); got != (Vec2{50, 25}) {
		t.Errorf("Position = %+v, want {50 25}", got)
	}
}

func TestPacketPathIsSnapshot(t *testing.T) {
	cfg := quietConfig()
	f := NewFieldFromPoints(cfg, 500, 500, []Point{
		{Pos: Vec2{0, 0}, Vel: Vec2{1, 1}},
		{Pos: Vec2{10, 0}, Vel: Vec2{1, 1}},
	}, NewSeededRand(1))
	f.SpawnPacket(f.Point(0).Pos, f.Point(1).Pos, 0.1)
	for i := 0; i < 5; i++ {
		f.Step()
	}
	pk := f.Packets()[0]
	if pk.From != (Vec2{0, 0}) || pk.To != (Vec2{10, 0}) {
		t.Errorf("packet path moved with its points: %+v -> %+v", pk.From, pk.To)
	}
}

func TestPacketCap(t *testing.T) {
	cfg := NeuralConfig()
	cfg.Points = 30
	cfg.SpawnChance = 1
	cfg.MaxPackets = 5
	cfg.PacketSpeed = Range{Min: 0.001, Max: 0.002}
	f := NewField(cfg, 100, 100, NewSeededRand(9))
	for tick := 0; tick < 200; tick++ {
		f.Step()
		if n := len(f.Packets()); n > cfg.MaxPackets {
			t.Fatalf("tick %d: %d packets exceed cap %d", tick, n, cfg.MaxPackets)
		}
	}
	if len(f.Packets()) != cfg.MaxPackets {
		t.Errorf("len(packets) = %d, want cap %d with spawn chance 1", len(f.Packets()), cfg.MaxPackets)
	}
	if f.SpawnPacket(Vec2{}, Vec2{1, 1}, 0.1) {
		t.Error("SpawnPacket should fail at the cap")
	}
}

func TestSpawnPacketRejectsZeroSpeed(t *testing.T) {
	f := NewFieldFromPoints(NeuralConfig(), 10, 10, nil, NewSeededRand(1))
	if f.SpawnPacket(Vec2{}, Vec2{1, 1}, 0) {
		t.Error("zero-speed packet should be rejected")
	}
}

func TestPacketsDisabled(t *testing.T) {
	cfg := quietConfig()
	cfg.SpawnChance = 1
	f := NewField(cfg, 50, 50, NewSeededRand(2))
	for i := 0; i < 10; i++ {
		f.Step()
	}
	if len(f.Packets()) != 0 {
		t.Errorf("packets spawned with Packets=false: %d", len(f.Packets()))
	}
}

func TestPacketSpawnSnapshotsConnectedPair(t *testing.T) {
	cfg := NeuralConfig()
	cfg.SpawnChance = 1
	cfg.MaxPackets = 1
	f := NewFieldFromPoints(cfg, 500, 500, []Point{
		{Pos: Vec2{100, 100}},
		{Pos: Vec2{120, 100}},
	}, NewSeededRand(1))
	f.Step()
	pk := f.Packets()
	if len(pk) != 1 {
		t.Fatalf("len(packets) = %d, want 1", len(pk))
	}
	if pk[0].From != (Vec2{100, 100}) || pk[0].To != (Vec2{120, 100}) {
		t.Errorf("packet path = %+v -> %+v", pk[0].From, pk[0].To)
	}
	if pk[0].Progress() != 0 {
		t.Errorf("new packet progress = %v, want 0", pk[0].Progress())
	}
	if pk[0].Speed < cfg.PacketSpeed.Min || pk[0].Speed > cfg.PacketSpeed.Max {
		t.Errorf("speed %v outside %+v", pk[0].Speed, cfg.PacketSpeed)
	}
}

func BenchmarkFieldStep(b *testing.B) {
	f := NewField(NeuralConfig(), 1920, 1080, NewSeededRand(1))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		f.Step()
	}
}
