// SPDX-License-Identifier: EPL-2.0

package config

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"gopkg.in/ini.v1"

	"github.com/ik5/audmix/mixer"
)

const (
	SectionMixer = "Mixer"
	SectionBus   = "Bus"
)

// Output backends understood by audmix.NewBackend.
const (
	BackendOto   = "oto"
	BackendMalgo = "malgo"
	BackendNone  = "none"
)

// Config is the file form of the engine settings.
type Config struct {
	Mixer   mixer.Config
	Backend string
}

func Default() Config {
	return Config{
		Mixer:   mixer.DefaultConfig(),
		Backend: BackendOto,
	}
}

var loadOptions = ini.LoadOptions{
	InsensitiveSections:     true,
	InsensitiveKeys:         true,
	SkipUnrecognizableLines: false,
	AllowShadows:            false,
}

// Load reads INI data from a file name, a []byte or an io.Reader and
// overlays it on Default. Missing keys keep their default value.
func Load(source any) (Config, error) {
	f, err := ini.LoadSources(loadOptions, source)
	if err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}
	return Parse(f)
}

// Parse reads settings from an already loaded INI file.
func Parse(f *ini.File) (Config, error) {
	cfg := Default()

	sec := f.Section(SectionMixer)
	ints := []struct {
		key string
		dst *int
	}{
		{"SampleRate", &cfg.Mixer.SampleRate},
		{"Channels", &cfg.Mixer.Channels},
		{"BufferFrames", &cfg.Mixer.BufferFrames},
		{"Capacity", &cfg.Mixer.Capacity},
	}
	for _, k := range ints {
		if !sec.HasKey(k.key) {
			continue
		}
		v, err := sec.Key(k.key).Int()
		if err != nil {
			return Config{}, keyError(SectionMixer, k.key, err)
		}
		*k.dst = v
	}

	floats := []struct {
		key string
		dst *float32
	}{
		{"PanWidth", &cfg.Mixer.PanWidth},
		{"SilenceThreshold", &cfg.Mixer.SilenceThreshold},
	}
	for _, k := range floats {
		if !sec.HasKey(k.key) {
			continue
		}
		v, err := sec.Key(k.key).Float64()
		if err != nil {
			return Config{}, keyError(SectionMixer, k.key, err)
		}
		*k.dst = float32(v)
	}

	if sec.HasKey("Backend") {
		cfg.Backend = strings.ToLower(strings.TrimSpace(sec.Key("Backend").String()))
	}
	switch cfg.Backend {
	case BackendOto, BackendMalgo, BackendNone:
	default:
		return Config{}, fmt.Errorf("%w: %q", ErrUnknownBackend, cfg.Backend)
	}

	if busSec, err := f.GetSection(SectionBus); err == nil {
		for _, key := range busSec.Keys() {
			b, err := mixer.ParseBus(key.Name())
			if err != nil {
				return Config{}, fmt.Errorf("[%s]: %w", SectionBus, err)
			}
			v, err := key.Float64()
			if err != nil {
				return Config{}, keyError(SectionBus, key.Name(), err)
			}
			if cfg.Mixer.BusVolumes == nil {
				cfg.Mixer.BusVolumes = make(map[mixer.Bus]float32)
			}
			cfg.Mixer.BusVolumes[b] = float32(v)
		}
	}

	if err := cfg.Mixer.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func keyError(section, key string, err error) error {
	return fmt.Errorf("%w: [%s] %s: %w", ErrInvalidValue, section, key, err)
}

// WriteTo writes c as INI.
func (c Config) WriteTo(w io.Writer) (int64, error) {
	f := ini.Empty()

	sec := f.Section(SectionMixer)
	sec.Key("SampleRate").SetValue(strconv.Itoa(c.Mixer.SampleRate))
	sec.Key("Channels").SetValue(strconv.Itoa(c.Mixer.Channels))
	sec.Key("BufferFrames").SetValue(strconv.Itoa(c.Mixer.BufferFrames))
	sec.Key("Capacity").SetValue(strconv.Itoa(c.Mixer.Capacity))
	sec.Key("PanWidth").SetValue(formatFloat(c.Mixer.PanWidth))
	sec.Key("SilenceThreshold").SetValue(formatFloat(c.Mixer.SilenceThreshold))
	sec.Key("Backend").SetValue(c.Backend)

	buses := f.Section(SectionBus)
	for _, b := range mixer.Buses() {
		v, ok := c.Mixer.BusVolumes[b]
		if !ok {
			v = 1
		}
		buses.Key(b.String()).SetValue(formatFloat(v))
	}

	return f.WriteTo(w)
}

func formatFloat(v float32) string {
	return strconv.FormatFloat(float64(v), 'g', -1, 32)
}
