package batch

import (
	"fmt"
	"image"
	"image/png"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"microraster/internal/atlas"
	"microraster/internal/postprocess"
	"microraster/internal/raster"
	"microraster/internal/scene"

	"github.com/HugoSmits86/nativewebp"
)

// Output formats.
const (
	FormatWebP = "webp"
	FormatPNG  = "png"
)

// Config holds all shared resources for a batch run. Atlas is shared
// read-only by every worker; each worker owns its framebuffer and renderer.
type Config struct {
	OutputDir     string
	Atlas         *atlas.Atlas
	Atlases       *atlas.Cache // per-scene atlases; shared by all workers
	SceneEncoding string
	Width         int // frame size for scenes that do not set one
	Height        int
	QueueCapacity int
	Format        string
	Scale         float64
	Strict        bool
	Workers       int
	Logger        *slog.Logger
}

// Result holds the outcome of rendering one scene.
type Result struct {
	Scene    string // source path
	Name     string
	Output   string
	Width    int
	Height   int
	Commands int
	Flushes  int
	Success  bool
	Error    string
}

// Run renders every scene file using a worker pool. Results keep the order
// of paths.
func Run(cfg Config, paths []string) []Result {
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.DiscardHandler)
	}
	if cfg.Atlas == nil {
		cfg.Atlas = atlas.Default()
	}
	if cfg.Atlases == nil {
		cfg.Atlases = atlas.NewCache()
	}

	total := len(paths)
	results := make([]Result, total)
	claims := &outputNames{owners: make(map[string]string)}
	var processed atomic.Int64

	start := time.Now()

	// Progress reporter
	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(2 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				p := processed.Load()
				if p > 0 {
					elapsed := time.Since(start).Seconds()
					cfg.Logger.Info("batch: progress",
						"done", p, "total", total, "scenes_per_sec", float64(p)/elapsed)
				}
			}
		}
	}()

	// Worker pool
	sceneChan := make(chan int, cfg.Workers*2)
	var wg sync.WaitGroup

	for w := 0; w < cfg.Workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range sceneChan {
				results[idx] = processScene(cfg, claims, paths[idx])
				processed.Add(1)
			}
		}()
	}

	// Send work
	for i := range paths {
		sceneChan <- i
	}
	close(sceneChan)

	wg.Wait()
	close(done)

	return results
}

// Render replays s onto a fresh framebuffer and returns the renderer used.
func Render(cfg Config, s *scene.Scene) *raster.Renderer {
	w, h := s.Width, s.Height
	if w == 0 {
		w = cfg.Width
	}
	if h == 0 {
		h = cfg.Height
	}
	opts := []raster.Option{
		raster.WithQueueCapacity(cfg.QueueCapacity),
		raster.WithStrictSampling(cfg.Strict),
	}
	if cfg.Logger != nil {
		opts = append(opts, raster.WithLogger(cfg.Logger.With("scene", s.Name)))
	}
	r := raster.New(raster.NewFrameBuffer(w, h), cfg.Atlas, opts...)
	s.Replay(r)
	return r
}

// outputNames hands each output name to the first scene that claims it.
// Keys are lowercased for case-insensitive filesystems.
type outputNames struct {
	mu     sync.Mutex
	owners map[string]string // name -> scene path
}

func (o *outputNames) claim(name, path string) error {
	key := strings.ToLower(name)
	o.mu.Lock()
	defer o.mu.Unlock()
	if owner, ok := o.owners[key]; ok {
		return fmt.Errorf("duplicate scene name %q (already written by %s)", name, owner)
	}
	o.owners[key] = path
	return nil
}

// validName rejects scene names that would not land directly in the
// output directory.
func validName(name string) error {
	if name == "" || name == "." || name == ".." ||
		strings.ContainsAny(name, `/\:`) || filepath.Base(name) != name {
		return fmt.Errorf("invalid scene name %q: must be a plain file name", name)
	}
	return nil
}

func processScene(cfg Config, claims *outputNames, path string) (res Result) {
	res = Result{Scene: path}

	// Strict mode turns contract violations into panics; report them per scene.
	defer func() {
		if p := recover(); p != nil {
			res.Success = false
			res.Error = fmt.Sprint(p)
		}
	}()

	s, err := scene.Load(path, cfg.SceneEncoding)
	if err != nil {
		res.Error = err.Error()
		return res
	}
	res.Name = s.Name
	if err := validName(s.Name); err != nil {
		res.Error = err.Error()
		return res
	}

	if s.Atlas != "" {
		a, err := cfg.Atlases.Resolve(s.Atlas)
		if err != nil {
			res.Error = err.Error()
			return res
		}
		cfg.Atlas = a
	}

	r := Render(cfg, s)
	fb := r.FrameBuffer()
	st := r.Stats()
	res.Width, res.Height = fb.Width, fb.Height
	res.Commands, res.Flushes = st.Commands, st.Flushes
	if fb.Width == 0 || fb.Height == 0 {
		res.Error = "empty frame: no width/height in scene or config"
		return res
	}

	img := postprocess.Scale(fb.NRGBA(), cfg.Scale)

	ext := cfg.Format
	if ext == "" {
		ext = FormatWebP
	}
	if err := claims.claim(s.Name, path); err != nil {
		res.Error = err.Error()
		return res
	}
	outPath := filepath.Join(cfg.OutputDir, s.Name+"."+ext)
	if err := os.MkdirAll(filepath.Dir(outPath), 0755); err != nil {
		res.Error = err.Error()
		return res
	}
	if err := WriteImage(outPath, ext, img); err != nil {
		res.Error = err.Error()
		return res
	}

	res.Output = outPath
	res.Success = true
	return res
}

// WriteImage encodes img to path as webp or png.
func WriteImage(path, format string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	switch format {
	case FormatWebP:
		err = nativewebp.Encode(f, img, nil)
	case FormatPNG:
		err = png.Encode(f, img)
	default:
		err = fmt.Errorf("unknown format %q", format)
	}
	if err != nil {
		f.Close()
		return fmt.Errorf("%s encode: %w", format, err)
	}
	return f.Close()
}
