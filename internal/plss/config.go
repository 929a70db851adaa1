package plss

import (
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Layout is the closed set of textual orderings the Layout Detector (§4.C)
// classifies a description into.
type Layout string

const (
	LayoutAuto        Layout = "" // unset: auto-detect
	LayoutTRSDesc     Layout = "TRS_desc"
	LayoutDescSTR     Layout = "desc_STR"
	LayoutSDescTR     Layout = "S_desc_TR"
	LayoutTRDescS     Layout = "TR_desc_S"
	LayoutCopyAll     Layout = "copy_all"
)

// Config is the structured configuration record replacing the free-form
// string-bag surface of the original library (§9). Every field corresponds
// to one row of §6's configuration table. Zero value is NOT valid
// configuration — always construct through NewConfig, which applies the
// documented defaults.
type Config struct {
	DefaultNS             string // "n" | "s"
	DefaultEW             string // "e" | "w"
	Layout                Layout
	WaitToParse           bool
	ParseQQ               bool
	CleanQQ               bool
	RequireColon          bool
	IncludeLotDivisions   bool
	OCRScrub              bool
	Segment               bool
	QQDepthMin            int
	QQDepthMax            int // 0 means unbounded
	BreakHalves           bool
	SecWithin             bool

	// qqDepthExplicit tracks whether QQDepth (singular) was set, so
	// normalize() can apply the "overrides both min and max" rule exactly
	// once, idempotently.
	qqDepthExplicit bool
	qqDepthValue    int
}

// MaxSafeExpansionDepth is the hard safety-rail cap from §4.G: deeper
// expansions are permitted only by explicit configuration above this
// default, since leaf counts grow as 4^depth.
const MaxSafeExpansionDepth = 6

// NewConfig returns a Config with every §6 default applied.
func NewConfig() Config {
	return Config{
		DefaultNS:           "n",
		DefaultEW:           "w",
		Layout:              LayoutAuto,
		ParseQQ:             false,
		CleanQQ:             false,
		RequireColon:        true,
		IncludeLotDivisions: true,
		OCRScrub:            false,
		Segment:             false,
		QQDepthMin:          2,
		QQDepthMax:          0,
		BreakHalves:         false,
		SecWithin:           false,
	}
}

// WithQQDepth overrides both QQDepthMin and QQDepthMax to the same value,
// matching the `qq_depth` option's documented effect.
func (c Config) WithQQDepth(depth int) Config {
	c.qqDepthExplicit = true
	c.qqDepthValue = depth
	return c
}

// normalize resolves cross-field interactions and reports any
// configuration-level warnings (never errors, per §7's "configuration
// produces warnings, never errors" policy). The returned Config is safe to
// parse with; store collects any flags worth surfacing to the caller even
// though no Description exists yet to own them.
func (c Config) normalize(store *FlagStore) Config {
	if c.DefaultNS != "n" && c.DefaultNS != "s" {
		store.Warn(FlagConfigIgnored, fmt.Sprintf("default_ns=%q invalid, using n", c.DefaultNS))
		c.DefaultNS = "n"
	}
	if c.DefaultEW != "e" && c.DefaultEW != "w" {
		store.Warn(FlagConfigIgnored, fmt.Sprintf("default_ew=%q invalid, using w", c.DefaultEW))
		c.DefaultEW = "w"
	}
	if c.qqDepthExplicit {
		c.QQDepthMin = c.qqDepthValue
		c.QQDepthMax = c.qqDepthValue
	}
	if c.QQDepthMax > 0 && c.QQDepthMax < c.QQDepthMin {
		store.Warn(FlagQQDepthMinMaxCollapsed, fmt.Sprintf("qq_depth_max=%d < qq_depth_min=%d, using min for both", c.QQDepthMax, c.QQDepthMin))
		c.QQDepthMax = c.QQDepthMin
	}
	if c.QQDepthMax == 0 {
		cap := MaxSafeExpansionDepth
		if c.QQDepthMin > cap {
			cap = c.QQDepthMin
		}
		c.QQDepthMax = cap
		if c.QQDepthMax > MaxSafeExpansionDepth {
			store.Warn(FlagConfigIgnored, fmt.Sprintf("qq_depth_max unset and qq_depth_min=%d exceeds safety cap %d; capping", c.QQDepthMin, MaxSafeExpansionDepth))
			c.QQDepthMax = MaxSafeExpansionDepth
		}
	}
	if !c.RequireColon {
		// require_colon defaults true; explicit false is a legitimate
		// configuration, not a warning condition.
	}
	return c
}

// ParseConfigString parses the library's legacy "key:value, key2:value2"
// free-text configuration shorthand into a structured Config. Unknown keys
// produce a warning flag rather than an error, per §7's configuration
// policy; this is the "string surface... retained only as a convenience
// parser" called out in §9.
func ParseConfigString(s string, store *FlagStore) Config {
	cfg := NewConfig()
	for _, pair := range strings.Split(s, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		kv := strings.SplitN(pair, ":", 2)
		key := strings.TrimSpace(kv[0])
		val := ""
		if len(kv) == 2 {
			val = strings.TrimSpace(kv[1])
		}
		applyConfigKV(&cfg, key, val, store)
	}
	return cfg.normalize(store)
}

// yamlConfig mirrors Config's field names in snake_case for the YAML
// convenience surface (§9).
type yamlConfig struct {
	DefaultNS           string `yaml:"default_ns"`
	DefaultEW           string `yaml:"default_ew"`
	Layout              string `yaml:"layout"`
	WaitToParse         bool   `yaml:"wait_to_parse"`
	ParseQQ             bool   `yaml:"parse_qq"`
	CleanQQ             bool   `yaml:"clean_qq"`
	RequireColon        *bool  `yaml:"require_colon"`
	IncludeLotDivisions *bool  `yaml:"include_lot_divisions"`
	OCRScrub            bool   `yaml:"ocr_scrub"`
	Segment             bool   `yaml:"segment"`
	QQDepthMin          *int   `yaml:"qq_depth_min"`
	QQDepthMax          *int   `yaml:"qq_depth_max"`
	QQDepth             *int   `yaml:"qq_depth"`
	BreakHalves         bool   `yaml:"break_halves"`
	SecWithin           bool   `yaml:"sec_within"`
}

// ParseConfigYAML parses a YAML document into a structured Config, for
// callers who keep parser configuration alongside other application YAML.
func ParseConfigYAML(data []byte, store *FlagStore) (Config, error) {
	var y yamlConfig
	if err := yaml.Unmarshal(data, &y); err != nil {
		return Config{}, fmt.Errorf("plss: invalid yaml config: %w", err)
	}
	cfg := NewConfig()
	if y.DefaultNS != "" {
		cfg.DefaultNS = strings.ToLower(y.DefaultNS)
	}
	if y.DefaultEW != "" {
		cfg.DefaultEW = strings.ToLower(y.DefaultEW)
	}
	if y.Layout != "" {
		cfg.Layout = Layout(y.Layout)
	}
	cfg.WaitToParse = y.WaitToParse
	cfg.ParseQQ = y.ParseQQ
	cfg.CleanQQ = y.CleanQQ
	if y.RequireColon != nil {
		cfg.RequireColon = *y.RequireColon
	}
	if y.IncludeLotDivisions != nil {
		cfg.IncludeLotDivisions = *y.IncludeLotDivisions
	}
	cfg.OCRScrub = y.OCRScrub
	cfg.Segment = y.Segment
	if y.QQDepthMin != nil {
		cfg.QQDepthMin = *y.QQDepthMin
	}
	if y.QQDepthMax != nil {
		cfg.QQDepthMax = *y.QQDepthMax
	}
	if y.QQDepth != nil {
		cfg = cfg.WithQQDepth(*y.QQDepth)
	}
	cfg.BreakHalves = y.BreakHalves
	cfg.SecWithin = y.SecWithin
	return cfg.normalize(store), nil
}

func applyConfigKV(cfg *Config, key, val string, store *FlagStore) {
	switch strings.ToLower(key) {
	case "default_ns":
		cfg.DefaultNS = strings.ToLower(val)
	case "default_ew":
		cfg.DefaultEW = strings.ToLower(val)
	case "layout":
		cfg.Layout = Layout(val)
	case "wait_to_parse":
		cfg.WaitToParse = parseBool(val)
	case "parse_qq":
		cfg.ParseQQ = parseBool(val)
	case "clean_qq":
		cfg.CleanQQ = parseBool(val)
	case "require_colon":
		cfg.RequireColon = parseBool(val)
	case "include_lot_divisions":
		cfg.IncludeLotDivisions = parseBool(val)
	case "ocr_scrub":
		cfg.OCRScrub = parseBool(val)
	case "segment":
		cfg.Segment = parseBool(val)
	case "qq_depth_min":
		if n, err := strconv.Atoi(val); err == nil {
			cfg.QQDepthMin = n
		}
	case "qq_depth_max":
		if n, err := strconv.Atoi(val); err == nil {
			cfg.QQDepthMax = n
		}
	case "qq_depth":
		if n, err := strconv.Atoi(val); err == nil {
			*cfg = cfg.WithQQDepth(n)
		}
	case "break_halves":
		cfg.BreakHalves = parseBool(val)
	case "sec_within":
		cfg.SecWithin = parseBool(val)
	default:
		store.Warn(FlagConfigIgnored, fmt.Sprintf("unknown config key %q", key))
	}
}

func parseBool(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "t", "true", "yes", "on":
		return true
	default:
		return false
	}
}
