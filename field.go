package plexus

import (
	"math"
	"math/rand/v2"
	"time"
)

// Point is a persistent animated dot. Phase only feeds rendering.
type Point struct {
	Pos    Vec2
	Vel    Vec2
	Radius float64
	Phase  float64
}

// Packet travels from one point to another. From and To are snapshots taken at
// spawn time; the endpoints may move afterwards without affecting the path.
type Packet struct {
	From  Vec2
	To    Vec2
	Speed float64
	age   int // ticks aged since spawn
}

// Progress returns how far along its path the packet is, in [0, 1) while alive.
func (p Packet) Progress() float64 {
	return float64(p.age) * p.Speed
}

// Position returns the interpolated packet position.
func (p Packet) Position() Vec2 {
	return p.From.Add(p.To.Sub(p.From).Scale(p.Progress()))
}

// Connection is a pair of points closer than the link distance this tick.
// A is always less than B.
type Connection struct {
	A, B     int
	Distance float64
	// Opacity is (1 - Distance/LinkDistance) * LineOpacity.
	Opacity float64
}

// Field holds the simulated points and live packets. It is owned by a single
// Layer and is not safe for concurrent use.
type Field struct {
	cfg     Config
	rng     *rand.Rand
	w, h    float64
	points  []Point
	packets []Packet
	conns   []Connection
}

// newRand returns a PCG-backed generator seeded from the clock.
func newRand() *rand.Rand {
	seed := uint64(time.Now().UnixNano())
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// NewSeededRand returns a PCG-backed generator for reproducible fields.
func NewSeededRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// NewField creates cfg.Points points uniformly distributed over [0,w)×[0,h).
// A nil rng is replaced by a clock-seeded one.
func NewField(cfg Config, w, h float64, rng *rand.Rand) *Field {
	if rng == nil {
		rng = newRand()
	}
	n := max(cfg.Points, 0)
	pts := make([]Point, n)
	for i := range pts {
		pts[i] = Point{
			Pos: Vec2{rng.Float64() * w, rng.Float64() * h},
			Vel: Vec2{
				(rng.Float64()*2 - 1) * cfg.MaxSpeed,
				(rng.Float64()*2 - 1) * cfg.MaxSpeed,
			},
			Radius: cfg.Radius.Random(rng),
			Phase:  rng.Float64() * 2 * math.Pi,
		}
	}
	return NewFieldFromPoints(cfg, w, h, pts, rng)
}

// NewFieldFromPoints creates a field from explicit points. The slice is owned
// by the field afterwards.
func NewFieldFromPoints(cfg Config, w, h float64, points []Point, rng *rand.Rand) *Field {
	if rng == nil {
		rng = newRand()
	}
	return &Field{
		cfg:     cfg,
		rng:     rng,
		w:       w,
		h:       h,
		points:  points,
		packets: make([]Packet, 0, max(cfg.MaxPackets, 0)),
	}
}

// Bounds returns the field width and height.
func (f *Field) Bounds() (w, h float64) {
	return f.w, f.h
}

// Points returns the points. The returned slice MUST NOT be mutated.
func (f *Field) Points() []Point {
	return f.points
}

// Point returns a copy of point i.
func (f *Field) Point(i int) Point {
	return f.points[i]
}

// Packets returns the live packets. The returned slice MUST NOT be mutated.
func (f *Field) Packets() []Packet {
	return f.packets
}

// Connections returns the pairs connected during the last Step. The returned
// slice is reused by the next Step and MUST NOT be retained.
func (f *Field) Connections() []Connection {
	return f.conns
}

// SpawnPacket adds a packet travelling from -> to, unless the packet cap is
// reached. It reports whether the packet was added.
func (f *Field) SpawnPacket(from, to Vec2, speed float64) bool {
	if len(f.packets) >= f.cfg.MaxPackets || speed <= 0 {
		return false
	}
	f.packets = append(f.packets, Packet{From: from, To: to, Speed: speed})
	return true
}

// Resize changes the field bounds. ResizeRescale maps points proportionally
// into the new bounds; ResizeKeep leaves them in place. Velocities are never
// touched.
func (f *Field) Resize(w, h float64, mode ResizeMode) {
	if w == f.w && h == f.h {
		return
	}
	if mode == ResizeRescale && f.w > 0 && f.h > 0 {
		sx, sy := w/f.w, h/f.h
		for i := range f.points {
			f.points[i].Pos.X *= sx
			f.points[i].Pos.Y *= sy
		}
	}
	f.w, f.h = w, h
}

// Step advances the field by one tick: points move and reflect off the walls,
// packets age (and expire at progress >= 1), then every unordered pair closer
// than the link distance is recorded and may spawn a packet. Packets spawned
// during a Step are first aged by the following Step.
func (f *Field) Step() {
	for i := range f.points {
		p := &f.points[i]
		p.Pos.X += p.Vel.X
		p.Pos.Y += p.Vel.Y

		// Reflect only while heading outward so points left outside by a
		// resize travel back in instead of jittering at the wall.
		if (p.Pos.X < 0 && p.Vel.X < 0) || (p.Pos.X > f.w && p.Vel.X > 0) {
			p.Vel.X = -p.Vel.X
		}
		if (p.Pos.Y < 0 && p.Vel.Y < 0) || (p.Pos.Y > f.h && p.Vel.Y > 0) {
			p.Vel.Y = -p.Vel.Y
		}
		p.Phase += f.cfg.PhaseStep
	}

	// Age packets, swap-remove finished ones.
	i := 0
	for i < len(f.packets) {
		pk := &f.packets[i]
		pk.age++
		if pk.Progress() >= 1 {
			last := len(f.packets) - 1
			f.packets[i] = f.packets[last]
			f.packets = f.packets[:last]
			continue
		}
		i++
	}

	f.conns = f.conns[:0]
	d := f.cfg.LinkDistance
	d2 := d * d
	for a := 0; a < len(f.points); a++ {
		pa := f.points[a].Pos
		for b := a + 1; b < len(f.points); b++ {
			pb := f.points[b].Pos
			dx := pa.X - pb.X
			dy := pa.Y - pb.Y
			dist2 := dx*dx + dy*dy
			if dist2 >= d2 {
				continue
			}
			dist := math.Sqrt(dist2)
			f.conns = append(f.conns, Connection{
				A:        a,
				B:        b,
				Distance: dist,
				Opacity:  (1 - dist/d) * f.cfg.LineOpacity,
			})
			if f.cfg.Packets && len(f.packets) < f.cfg.MaxPackets && f.rng.Float64() < f.cfg.SpawnChance {
				f.packets = append(f.packets, Packet{
					From:  pa,
					To:    pb,
					Speed: f.cfg.PacketSpeed.Random(f.rng),
				})
			}
		}
	}
}
