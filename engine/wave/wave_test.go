package wave

import (
	"math"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/jelly-go/common"
	"github.com/Carmen-Shannon/jelly-go/engine/mesh"
)

func TestDisplaceZeroAmplitude(t *testing.T) {
	params := Params{Amplitude: 0, Frequency: 0.02, Damping: 0.02}
	in := common.Vec2{X: 35, Y: -12}

	out := Displace(in, common.Vec2{}, common.Vec2{X: 100, Y: 50}, 1.7, params)

	if out != in {
		t.Errorf("Displace with zero amplitude = %+v, want %+v unchanged", out, in)
	}
}

func TestDisplaceCenterVertexFinite(t *testing.T) {
	params := DefaultParams()

	// A vertex exactly at the disturbance center has no defined radial
	// direction; the epsilon bias must still move it along a finite diagonal.
	out := Displace(common.Vec2{}, common.Vec2{}, common.Vec2{}, 0.25, params)

	for axis, comp := range []float32{out.X, out.Y} {
		f := float64(comp)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			t.Fatalf("component %d = %v, want finite", axis, comp)
		}
	}
	if out == (common.Vec2{}) {
		t.Error("center vertex did not move; expected epsilon-biased displacement")
	}
}

func TestDisplaceMatchesContractFormula(t *testing.T) {
	params := Params{Amplitude: 6, Frequency: 0.02, Damping: 0.02}
	pos := common.Vec2{X: 30, Y: 40}
	vel := common.Vec2{X: 2, Y: 0}
	tm := float32(0.5)

	out := Displace(pos, common.Vec2{}, vel, tm, params)

	dist := float32(50.0)
	ripple := float32(math.Sin(float64(params.Frequency*dist-tm*6.2831))) *
		params.Amplitude * float32(math.Exp(float64(-dist*params.Damping)))
	boost := 1 + vel.Length()*5.0
	disp := ripple * boost
	dir := common.Vec2{X: 30 + 1e-4, Y: 40 + 1e-4}.Normalize()
	want := pos.Add(dir.Scale(disp))

	if math.Abs(float64(out.X-want.X)) > 1e-4 || math.Abs(float64(out.Y-want.Y)) > 1e-4 {
		t.Errorf("Displace = %+v, want %+v", out, want)
	}
}

func TestBoost(t *testing.T) {
	if got := Boost(common.Vec2{}); got != 1 {
		t.Errorf("Boost(zero) = %v, want 1", got)
	}
	if got := Boost(common.Vec2{X: 3, Y: 4}); got != 26 {
		t.Errorf("Boost(3,4) = %v, want 26", got)
	}
}

func TestClampBoost(t *testing.T) {
	tests := []struct {
		name     string
		velocity common.Vec2
		limit    float32
		want     common.Vec2
	}{
		{"under limit passes through", common.Vec2{X: 0.1, Y: 0}, 8, common.Vec2{X: 0.1, Y: 0}},
		{"over limit rescales", common.Vec2{X: 3, Y: 4}, 6, common.Vec2{X: 0.6, Y: 0.8}},
		{"limit one suppresses", common.Vec2{X: 3, Y: 4}, 1, common.Vec2{}},
		{"limit below one suppresses", common.Vec2{X: 1, Y: 0}, 0.5, common.Vec2{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ClampBoost(tt.velocity, tt.limit)
			if math.Abs(float64(got.X-tt.want.X)) > 1e-5 || math.Abs(float64(got.Y-tt.want.Y)) > 1e-5 {
				t.Errorf("ClampBoost(%+v, %v) = %+v, want %+v", tt.velocity, tt.limit, got, tt.want)
			}
			if got != (common.Vec2{}) && Boost(got) > tt.limit+1e-4 {
				t.Errorf("Boost(result) = %v, exceeds limit %v", Boost(got), tt.limit)
			}
		})
	}
}

func TestDisplaceMeshSerial(t *testing.T) {
	src, err := mesh.Generate(4, 3, 100, 60)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	u := Uniforms{
		WinSize:   common.Vec2{X: 100, Y: 60},
		Velocity:  common.Vec2{X: 5, Y: 0},
		Time:      0.8,
		Amplitude: 6,
		Frequency: 0.02,
		Damping:   0.02,
	}

	var dst mesh.Mesh
	DisplaceMesh(&dst, src, u, nil)

	if len(dst.Vertices) != len(src.Vertices) {
		t.Fatalf("dst vertices = %d, want %d", len(dst.Vertices), len(src.Vertices))
	}
	if !reflect.DeepEqual(dst.Indices, src.Indices) {
		t.Error("dst indices differ from src; topology must pass through")
	}

	for i, v := range dst.Vertices {
		if v.UV != src.Vertices[i].UV {
			t.Fatalf("vertex %d uv = %v, want %v passed through", i, v.UV, src.Vertices[i].UV)
		}
		p := common.Vec2{X: src.Vertices[i].Position[0], Y: src.Vertices[i].Position[1]}
		want := Displace(p, u.Center, u.Velocity, u.Time, u.Params())
		if v.Position != [2]float32{want.X, want.Y} {
			t.Fatalf("vertex %d position = %v, want %v", i, v.Position, want)
		}
	}
}

func TestDisplaceMeshPooledMatchesSerial(t *testing.T) {
	// Big enough for several chunks.
	src, err := mesh.Generate(40, 20, 800, 400)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	u := Uniforms{
		WinSize:   common.Vec2{X: 800, Y: 400},
		Velocity:  common.Vec2{X: -3, Y: 7},
		Time:      2.3,
		Amplitude: 6,
		Frequency: 0.02,
		Damping:   0.02,
	}

	var serial, pooled mesh.Mesh
	DisplaceMesh(&serial, src, u, nil)

	pool := worker.NewDynamicWorkerPool(4, 64, 1*time.Second)
	DisplaceMesh(&pooled, src, u, pool)

	if !reflect.DeepEqual(serial.Vertices, pooled.Vertices) {
		t.Error("pooled displacement differs from serial")
	}
}

func TestDisplaceMeshReusesScratch(t *testing.T) {
	src, err := mesh.Generate(2, 2, 10, 10)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	u := Uniforms{Amplitude: 6, Frequency: 0.02, Damping: 0.02, Time: 1}

	var dst mesh.Mesh
	DisplaceMesh(&dst, src, u, nil)
	first := &dst.Vertices[0]

	DisplaceMesh(&dst, src, u, nil)
	if first != &dst.Vertices[0] {
		t.Error("scratch vertex slice reallocated despite matching size")
	}
}

func TestShaderSourcesCarryContract(t *testing.T) {
	sources := map[string]string{
		"wgsl":      JellyShaderSource,
		"glsl vert": VertexShaderGLSL,
	}

	for name, src := range sources {
		if src == "" {
			t.Fatalf("%s source is empty", name)
		}
		for _, literal := range []string{"6.2831", "0.0001", "5.0"} {
			if !strings.Contains(src, literal) {
				t.Errorf("%s source missing contract literal %q", name, literal)
			}
		}
	}

	if FragmentShaderGLSL == "" {
		t.Fatal("glsl fragment source is empty")
	}
	if !strings.Contains(FragmentShaderGLSL, "uTex") {
		t.Error("glsl fragment source missing uTex sampler")
	}
}

func TestUniformsGPUMirror(t *testing.T) {
	u := Uniforms{
		WinSize:   common.Vec2{X: 800, Y: 600},
		Center:    common.Vec2{},
		Velocity:  common.Vec2{X: 1, Y: 2},
		Time:      3,
		Amplitude: 4,
		Frequency: 5,
		Damping:   6,
	}

	g := u.GPU()
	if g.Size() != 48 {
		t.Errorf("GPUWaveUniforms size = %d, want 48", g.Size())
	}
	if got := g.Marshal(); len(got) != 48 {
		t.Errorf("Marshal length = %d, want 48", len(got))
	}
	if g.WinSize != [2]float32{800, 600} || g.Velocity != [2]float32{1, 2} {
		t.Errorf("GPU mirror fields = %+v, want the source uniform values", g)
	}
	if g.Time != 3 || g.Amplitude != 4 || g.Frequency != 5 || g.Damping != 6 {
		t.Errorf("GPU scalar fields = %+v, want 3/4/5/6", g)
	}
}
