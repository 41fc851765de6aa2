package main

import "github.com/phanxgames/plexus"

// series holds per-tick counts from a headless run.
type series struct {
	connections []float64
	packets     []float64
}

// collectStats mounts a layer on a recording surface and samples the field
// after every tick.
func collectStats(cfg plexus.Config, w, h, n int, opts ...plexus.LayerOption) series {
	opts = append(opts, plexus.WithSurfaceFactory(plexus.RecordingFactory))
	l := plexus.NewLayer(cfg, opts...)
	l.Mount(w, h, plexus.ThemeDark)
	defer l.Unmount()

	s := series{
		connections: make([]float64, 0, n),
		packets:     make([]float64, 0, n),
	}
	for i := 0; i < n; i++ {
		l.Frame()
		if rs, ok := l.Surface().(*plexus.RecordingSurface); ok {
			rs.Reset()
		}
		f := l.Field()
		if f == nil {
			s.connections = append(s.connections, 0)
			s.packets = append(s.packets, 0)
			continue
		}
		s.connections = append(s.connections, float64(len(f.Connections())))
		s.packets = append(s.packets, float64(len(f.Packets())))
	}
	return s
}

func mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	sum := 0.0
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

func maxOf(xs []float64) float64 {
	m := 0.0
	for _, x := range xs {
		m = max(m, x)
	}
	return m
}
