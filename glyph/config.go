package ottava

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"

	Mt "github.com/craque/ottava/types"
)

// ErrConfig means a GlyphConfig carries dimensions
// the layout engine cannot work with.
var ErrConfig = errors.New("invalid glyph config")

// GlyphConfig holds the immutable layout parameters for one theme/run.
// There is no process-wide config state: a caller constructs one
// of these and passes it into every Layout and ComposeGrid call.
type GlyphConfig struct {
	BarWidth      float64      // perpendicular width of one bar, px
	BarLength     float64      // geometric range of a full-value bar, px
	BarsPerSide   int          // bars stacked on each side (pre + post)
	SidesCount    int          // directions (Left, Right, Up, Down)
	MaxValue      float64      // domain ceiling for the value scale
	Background    string       // circle and center square fill
	Empty         string       // missing-placeholder fill
	Penumbra      string       // circle stroke color
	PenumbraWidth float64      // circle stroke width
	Colors        [4][2]string // bar fill by [direction][phase]
}

// DefaultGlyphConfig is the standard glyph footprint.
// Bar colors are light/dark pairs, one hue per direction.
func DefaultGlyphConfig() GlyphConfig {
	return GlyphConfig{
		BarWidth:      10,
		BarLength:     50,
		BarsPerSide:   2,
		SidesCount:    4,
		MaxValue:      20,
		Background:    "#ffffff",
		Empty:         "#d9d9d9",
		Penumbra:      "#ffffff",
		PenumbraWidth: 20,
		Colors: [4][2]string{
			Mt.Left:  {"#aec7e8", "#1f77b4"},
			Mt.Right: {"#98df8a", "#2ca02c"},
			Mt.Up:    {"#ff9896", "#d62728"},
			Mt.Down:  {"#c5b0d5", "#9467bd"},
		},
	}
}

// TotalWidth is the side of the glyph bounding square:
// the center bar stack plus a full-length bar on both sides.
func (c GlyphConfig) TotalWidth() float64 {
	return float64(c.BarsPerSide)*c.BarWidth + 2*c.BarLength
}

// Validate rejects dimensions that would degenerate the layout.
func (c GlyphConfig) Validate() error {
	if c.MaxValue <= 0 {
		return fmt.Errorf("%w: maxvalue %v must be > 0", ErrConfig, c.MaxValue)
	}
	if c.BarWidth <= 0 || c.BarLength <= 0 {
		return fmt.Errorf("%w: bar dimensions %vx%v must be > 0", ErrConfig, c.BarWidth, c.BarLength)
	}
	if c.BarsPerSide <= 0 || c.SidesCount <= 0 {
		return fmt.Errorf("%w: bar counts %d/%d must be > 0", ErrConfig, c.BarsPerSide, c.SidesCount)
	}
	if c.SidesCount*c.BarsPerSide != Mt.VectorLen {
		return fmt.Errorf("%w: %d sides x %d bars must cover %d vector values",
			ErrConfig, c.SidesCount, c.BarsPerSide, Mt.VectorLen)
	}
	return nil
}

// ConfigFile is one stanza of the on-disk JSON config.
// Metrics lists the eight endpoint keys feeding the glyph,
// in direction/phase order.
type ConfigFile struct {
	ID      string   `json:"id"`
	URL     string   `json:"url"`
	Delim   string   `json:"delim"`
	Metrics []string `json:"metrics"`
	MaxVal  float64  `json:"maxvalue"`
}

// LoadConfigFileName pulls a given filename config off local disk
// Validation is performed on the file before opening
func LoadConfigFileName(filename string) ([]ConfigFile, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	// validation
	err = validateLoad(file)
	if err != nil {
		slog.Error("Validation failed", slog.Any("Error", err))
		return nil, err
	}

	return LoadConfig(file)
}

func validateLoad(file *os.File) error {
	// validate file
	info, err := file.Stat()
	if err != nil {
		slog.Error("could not stat file")
		return err
	}

	// validate size
	if info.Size() == 0 {
		slog.Error("file is empty")
		return errors.New("file is empty")
	}

	return nil
}

func LoadConfig(file *os.File) ([]ConfigFile, error) {
	// decode json
	var config []ConfigFile
	decoder := json.NewDecoder(file)
	if err := decoder.Decode(&config); err != nil {
		slog.Error("could not decode file")
		return nil, err
	}

	return config, nil
}

// GlyphConfigFromEnv starts from the defaults and lets the
// environment override the numeric layout parameters.
func GlyphConfigFromEnv() GlyphConfig {
	c := DefaultGlyphConfig()
	c.BarWidth = float64(FillEnvVarInt("OTTAVA_BAR_WIDTH", int(c.BarWidth)))
	c.BarLength = float64(FillEnvVarInt("OTTAVA_BAR_LENGTH", int(c.BarLength)))
	c.MaxValue = float64(FillEnvVarInt("OTTAVA_MAX_VALUE", int(c.MaxValue)))
	return c
}
