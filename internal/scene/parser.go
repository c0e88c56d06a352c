package scene

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"microraster/internal/atlas"
	"microraster/internal/mathutil"
	"microraster/internal/raster"

	"golang.org/x/text/encoding/charmap"
)

// ErrUnknownOp is returned for a command whose op is not recognized.
var ErrUnknownOp = errors.New("scene: unknown op")

// jsonScene matches the scene file schema.
type jsonScene struct {
	Name       string        `json:"name"`
	Width      int           `json:"width"`
	Height     int           `json:"height"`
	Background []int         `json:"background"`
	Atlas      string        `json:"atlas"`
	Commands   []jsonCommand `json:"commands"`
}

type jsonCommand struct {
	Op     string   `json:"op"`
	Rect   []int    `json:"rect"`
	Pos    []int    `json:"pos"`
	From   []int    `json:"from"`
	To     []int    `json:"to"`
	Center []int    `json:"center"`
	Radius int      `json:"radius"`
	Points [][]int  `json:"points"`
	Color  []int    `json:"color"`
	Colors [][]int  `json:"colors"`
	Text   string   `json:"text"`
	Icon   jsonIcon `json:"icon"`
}

// jsonIcon accepts either a numeric atlas id or one of the icon names.
type jsonIcon int

var iconNames = map[string]int{
	"close":     atlas.IconClose,
	"check":     atlas.IconCheck,
	"collapsed": atlas.IconCollapsed,
	"expanded":  atlas.IconExpanded,
}

func (i *jsonIcon) UnmarshalJSON(b []byte) error {
	var name string
	if err := json.Unmarshal(b, &name); err == nil {
		id, ok := iconNames[strings.ToLower(name)]
		if !ok {
			return fmt.Errorf("unknown icon %q", name)
		}
		*i = jsonIcon(id)
		return nil
	}
	var id int
	if err := json.Unmarshal(b, &id); err != nil {
		return fmt.Errorf("icon must be a name or an id: %s", b)
	}
	*i = jsonIcon(id)
	return nil
}

// Encodings lists the legacy 8-bit encodings a scene file may be stored in.
var Encodings = map[string]*charmap.Charmap{
	"windows-1252": charmap.Windows1252,
	"cp1252":       charmap.Windows1252,
	"iso-8859-1":   charmap.ISO8859_1,
	"latin1":       charmap.ISO8859_1,
	"iso-8859-15":  charmap.ISO8859_15,
}

// Load reads a scene file. encoding names a legacy 8-bit encoding to decode
// from; "" or "utf-8" reads the file as UTF-8.
func Load(path, encoding string) (*Scene, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("scene: read %s: %w", path, err)
	}

	enc := strings.ToLower(encoding)
	if enc != "" && enc != "utf-8" && enc != "utf8" {
		cm, ok := Encodings[enc]
		if !ok {
			return nil, fmt.Errorf("scene: unsupported encoding %q", encoding)
		}
		raw, err = cm.NewDecoder().Bytes(raw)
		if err != nil {
			return nil, fmt.Errorf("scene: decode %s as %s: %w", path, encoding, err)
		}
	}

	s, err := Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("scene: parse %s: %w", path, err)
	}
	if s.Name == "" {
		base := filepath.Base(path)
		s.Name = strings.TrimSuffix(base, filepath.Ext(base))
	}
	if s.Atlas != "" && !filepath.IsAbs(s.Atlas) {
		s.Atlas = filepath.Join(filepath.Dir(path), s.Atlas)
	}
	return s, nil
}

// Parse decodes a UTF-8 scene document.
func Parse(data []byte) (*Scene, error) {
	var js jsonScene
	if err := json.Unmarshal(data, &js); err != nil {
		return nil, err
	}
	if js.Width < 0 || js.Height < 0 {
		return nil, fmt.Errorf("negative frame size %dx%d", js.Width, js.Height)
	}

	s := &Scene{
		Name:   js.Name,
		Width:  js.Width,
		Height: js.Height,
		Atlas:  js.Atlas,
	}
	if js.Background != nil {
		bg, err := toColor(js.Background)
		if err != nil {
			return nil, fmt.Errorf("background: %w", err)
		}
		s.Background = &bg
	}

	s.Commands = make([]Command, 0, len(js.Commands))
	for i, jc := range js.Commands {
		cmd, err := decodeCommand(jc)
		if err != nil {
			return nil, fmt.Errorf("command %d (%s): %w", i, jc.Op, err)
		}
		s.Commands = append(s.Commands, cmd)
	}
	return s, nil
}

func decodeCommand(jc jsonCommand) (Command, error) {
	cmd := Command{Op: Op(strings.ToLower(jc.Op))}
	var err error

	switch cmd.Op {
	case OpRect, OpIcon, OpClip:
		if cmd.Rect, err = toRect(jc.Rect); err != nil {
			return cmd, err
		}
		if cmd.Op == OpIcon {
			cmd.Icon = int(jc.Icon)
		}
		if cmd.Op != OpClip {
			cmd.Colors[0], err = toColor(jc.Color)
		}

	case OpText:
		cmd.Text = jc.Text
		if cmd.Pos, err = toVec(jc.Pos); err != nil {
			return cmd, err
		}
		cmd.Colors[0], err = toColor(jc.Color)

	case OpClear:
		cmd.Colors[0], err = toColor(jc.Color)

	case OpLine, OpWuLine:
		if cmd.Pos, err = toVec(jc.From); err != nil {
			return cmd, fmt.Errorf("from: %w", err)
		}
		if cmd.To, err = toVec(jc.To); err != nil {
			return cmd, fmt.Errorf("to: %w", err)
		}
		cmd.Colors[0], err = toColor(jc.Color)

	case OpTriangle:
		if len(jc.Points) != 3 {
			return cmd, fmt.Errorf("triangle needs 3 points, got %d", len(jc.Points))
		}
		for k := range 3 {
			if cmd.Points[k], err = toVec(jc.Points[k]); err != nil {
				return cmd, err
			}
		}
		switch {
		case len(jc.Colors) == 3:
			for k := range 3 {
				if cmd.Colors[k], err = toColor(jc.Colors[k]); err != nil {
					return cmd, err
				}
			}
		case jc.Color != nil:
			c, cerr := toColor(jc.Color)
			if cerr != nil {
				return cmd, cerr
			}
			cmd.Colors = [3]raster.Color{c, c, c}
		default:
			return cmd, errors.New("triangle needs color or 3 colors")
		}

	case OpCircle, OpFillCircle:
		if cmd.Pos, err = toVec(jc.Center); err != nil {
			return cmd, err
		}
		cmd.Radius = jc.Radius
		cmd.Colors[0], err = toColor(jc.Color)

	default:
		return cmd, fmt.Errorf("%w %q", ErrUnknownOp, jc.Op)
	}
	return cmd, err
}

func toRect(v []int) (mathutil.Rect, error) {
	if len(v) != 4 {
		return mathutil.Rect{}, fmt.Errorf("rect needs [x,y,w,h], got %v", v)
	}
	if v[2] < 0 || v[3] < 0 {
		return mathutil.Rect{}, fmt.Errorf("rect has negative size %v", v)
	}
	return mathutil.R(v[0], v[1], v[2], v[3]), nil
}

func toVec(v []int) (mathutil.Vec2, error) {
	if len(v) != 2 {
		return mathutil.Vec2{}, fmt.Errorf("point needs [x,y], got %v", v)
	}
	return mathutil.V(v[0], v[1]), nil
}

// toColor accepts [r,g,b] (opaque) or [r,g,b,a].
func toColor(v []int) (raster.Color, error) {
	if len(v) != 3 && len(v) != 4 {
		return raster.Color{}, fmt.Errorf("color needs [r,g,b] or [r,g,b,a], got %v", v)
	}
	var ch [4]uint8
	ch[3] = 255
	for i, c := range v {
		if c < 0 || c > 255 {
			return raster.Color{}, fmt.Errorf("color channel %d out of range in %v", c, v)
		}
		ch[i] = uint8(c)
	}
	return raster.RGBA(ch[0], ch[1], ch[2], ch[3]), nil
}

// Find returns the scene files under dir, sorted by path. A scene file is a
// *.json document whose top level is an object with a "commands" key, so
// atlas tables and manifests stored alongside are skipped. Files that are
// not valid JSON are kept so Load reports them.
func Find(dir string) ([]string, error) {
	var paths []string
	err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.EqualFold(filepath.Ext(path), ".json") {
			return nil
		}
		ok, err := isScene(path)
		if err != nil {
			return err
		}
		if ok {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scene: scan %s: %w", dir, err)
	}
	sort.Strings(paths)
	return paths, nil
}

func isScene(path string) (bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return false, err
	}
	if !json.Valid(data) {
		return true, nil
	}
	var top map[string]json.RawMessage
	if err := json.Unmarshal(data, &top); err != nil {
		return false, nil
	}
	_, ok := top["commands"]
	return ok, nil
}
