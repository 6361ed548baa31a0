// SPDX-License-Identifier: EPL-2.0

package mixer

import (
	"fmt"
	"math"
	"sync"

	"github.com/rs/zerolog"

	"github.com/ik5/audmix/audio"
	"github.com/ik5/audmix/backend"
	"github.com/ik5/audmix/bank"
	"github.com/ik5/audmix/formats/wav"
	"github.com/ik5/audmix/spatial"
	"github.com/ik5/audmix/utils"
	"github.com/ik5/audmix/voice"
)

type state int

const (
	stateIdle state = iota
	stateStarting
	stateRunning
	stateClosed
)

// Stats are running counters since New.
type Stats struct {
	Callbacks      uint64
	VoicesStarted  uint64
	VoicesRejected uint64
	VoicesStopped  uint64
	VoicesFinished uint64
	ActiveVoices   int
	Sounds         int
}

// Mixer owns the voice pool, the sound bank and the bus volumes, and
// renders them from the backend callback.
//
// All methods are safe for concurrent use. A single mutex is shared
// between the control methods and Mix.
type Mixer struct {
	mu       sync.Mutex
	cfg      Config
	pool     *voice.Pool
	bank     *bank.Bank
	listener spatial.Vec2
	buses    [busCount]float32
	stream   backend.Stream
	state    state
	stats    Stats

	registry *audio.Registry
	log      zerolog.Logger
}

// New builds an idle mixer. Sounds can be registered and voices started
// before Init; they are heard once the backend stream runs.
func New(cfg Config, opts ...Option) (*Mixer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	m := &Mixer{
		cfg:  cfg,
		pool: voice.NewPool(cfg.Capacity),
		bank: bank.New(),
		log:  zerolog.Nop(),
	}
	for i := range m.buses {
		m.buses[i] = 1
	}
	for b, v := range cfg.BusVolumes {
		m.buses[b] = v
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.registry == nil {
		m.registry = audio.NewRegistry()
		m.registry.Register("wav", wav.Decoder{})
	}

	return m, nil
}

func (m *Mixer) Config() Config { return m.cfg }

func (m *Mixer) Logger() zerolog.Logger { return m.log }

// Init opens and starts an output stream on b with Mix as its callback.
func (m *Mixer) Init(b backend.Backend) error {
	m.mu.Lock()
	switch m.state {
	case stateClosed:
		m.mu.Unlock()
		return ErrClosed
	case stateStarting, stateRunning:
		m.mu.Unlock()
		return ErrAlreadyInitialized
	}
	m.state = stateStarting
	m.mu.Unlock()

	stream, err := m.open(b)

	m.mu.Lock()
	defer m.mu.Unlock()
	if err != nil {
		if m.state == stateStarting {
			m.state = stateIdle
		}
		m.log.Error().Err(err).Msg("cannot start audio output")
		return err
	}
	if m.state == stateClosed {
		// Shutdown won the race while the device was opening.
		_ = stream.Close()
		return ErrClosed
	}
	m.stream = stream
	m.state = stateRunning
	m.log.Info().
		Int("sample_rate", m.cfg.SampleRate).
		Int("channels", m.cfg.Channels).
		Int("buffer_frames", m.cfg.BufferFrames).
		Int("voices", m.pool.Cap()).
		Msg("mixer started")
	return nil
}

func (m *Mixer) open(b backend.Backend) (backend.Stream, error) {
	stream, err := b.Open(m.cfg.StreamConfig(), m.Mix)
	if err != nil {
		return nil, fmt.Errorf("%w: open: %w", ErrBackend, err)
	}
	if err := stream.Start(); err != nil {
		_ = stream.Close()
		return nil, fmt.Errorf("%w: start: %w", ErrBackend, err)
	}
	return stream, nil
}

// Shutdown stops the output stream and releases every sound. No callback
// touches the mixer's sounds once Shutdown returns.
func (m *Mixer) Shutdown() error {
	m.mu.Lock()
	if m.state == stateClosed {
		m.mu.Unlock()
		return ErrClosed
	}
	m.state = stateClosed
	stream := m.stream
	m.stream = nil
	m.mu.Unlock()

	var err error
	if stream != nil {
		if cerr := stream.Close(); cerr != nil {
			err = fmt.Errorf("%w: close: %w", ErrBackend, cerr)
		}
	}

	m.mu.Lock()
	m.pool.Reset()
	m.bank.Clear()
	m.mu.Unlock()

	if err != nil {
		m.log.Warn().Err(err).Msg("mixer shut down with errors")
		return err
	}
	m.log.Info().Msg("mixer shut down")
	return nil
}

// RegisterSound decodes an encoded asset and stores it in the bank. The
// format is sniffed from the leading bytes. Decoding happens without
// holding the mixer lock.
func (m *Mixer) RegisterSound(data []byte) (bank.SoundHandle, error) {
	snd, format, err := m.decode(data)
	if err != nil {
		m.log.Warn().Err(err).Int("bytes", len(data)).Msg("sound rejected")
		return bank.InvalidSound, err
	}

	m.mu.Lock()
	if m.state == stateClosed {
		m.mu.Unlock()
		return bank.InvalidSound, ErrClosed
	}
	h, err := m.bank.Add(snd)
	m.mu.Unlock()
	if err != nil {
		m.log.Warn().Err(err).Msg("sound rejected")
		return bank.InvalidSound, err
	}

	if snd.SampleRate != m.cfg.SampleRate {
		m.log.Warn().
			Uint32("sound", uint32(h)).
			Int("sound_rate", snd.SampleRate).
			Int("output_rate", m.cfg.SampleRate).
			Msg("sample rate differs from output, sound will play off-pitch")
	}
	m.log.Debug().
		Uint32("sound", uint32(h)).
		Str("format", format).
		Int("channels", snd.Channels).
		Int("frames", snd.Frames()).
		Msg("sound registered")
	return h, nil
}

func (m *Mixer) decode(data []byte) (*bank.Sound, string, error) {
	src, format, err := m.registry.DecodeBytes(data)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %w", ErrDecode, err)
	}
	defer src.Close()

	if src.Channels() < 1 {
		return nil, format, fmt.Errorf("%w: %w", ErrDecode, audio.ErrBadChannels)
	}
	if src.Channels() > 2 {
		src = audio.NewMonoMixer(src)
	}

	samples, err := audio.ReadAll(src)
	if err != nil {
		return nil, format, fmt.Errorf("%w: %s: %w", ErrDecode, format, err)
	}

	return &bank.Sound{
		Samples:    samples,
		Channels:   src.Channels(),
		SampleRate: src.SampleRate(),
	}, format, nil
}

// AddSound stores already decoded samples, bypassing the registry.
func (m *Mixer) AddSound(snd *bank.Sound) (bank.SoundHandle, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state == stateClosed {
		return bank.InvalidSound, ErrClosed
	}
	return m.bank.Add(snd)
}

// UnregisterSound drops a sound. Voices still playing it fall silent at
// the next callback.
func (m *Mixer) UnregisterSound(h bank.SoundHandle) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.bank.Remove(h)
}

// Sounds reports how many sounds are registered.
func (m *Mixer) Sounds() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.bank.Len()
}

// Play starts a non-positional voice. It never blocks on or evicts other
// voices: when every slot is busy it returns ErrNoFreeVoice.
func (m *Mixer) Play(sound bank.SoundHandle, opts ...PlayOption) (voice.Handle, error) {
	p, err := playOptions(opts)
	if err != nil {
		return voice.InvalidHandle, err
	}
	return m.start(voice.Voice{
		Sound:  sound,
		Volume: p.volume,
		Loop:   p.loop,
		Pan:    p.pan,
		Bus:    int(p.bus),
	})
}

// PlaySpatial starts a voice positioned in the world. Its volume and pan
// follow the listener on every callback. Negative or NaN distances count
// as 0 and NaN coordinates as the origin.
func (m *Mixer) PlaySpatial(sound bank.SoundHandle, pos spatial.Vec2, minDistance, maxDistance float32, opts ...PlayOption) (voice.Handle, error) {
	p, err := playOptions(opts)
	if err != nil {
		return voice.InvalidHandle, err
	}
	return m.start(voice.Voice{
		Sound:       sound,
		Volume:      p.volume,
		Loop:        p.loop,
		Bus:         int(p.bus),
		Spatial:     true,
		Position:    pos.Finite(),
		MinDistance: utils.Clamp32(minDistance, 0, math.MaxFloat32),
		MaxDistance: utils.Clamp32(maxDistance, 0, math.MaxFloat32),
	})
}

func playOptions(opts []PlayOption) (playParams, error) {
	p := playParams{volume: 1, bus: BusMaster}
	for _, opt := range opts {
		opt(&p)
	}
	if !p.bus.Valid() {
		return p, fmt.Errorf("%w: %d", ErrUnknownBus, int(p.bus))
	}
	p.volume = utils.Clamp32(p.volume, 0, 1)
	p.pan = utils.Clamp32(p.pan, -1, 1)
	return p, nil
}

func (m *Mixer) start(v voice.Voice) (voice.Handle, error) {
	m.mu.Lock()
	if m.state == stateClosed {
		m.mu.Unlock()
		return voice.InvalidHandle, ErrClosed
	}
	if _, ok := m.bank.Get(v.Sound); !ok {
		m.mu.Unlock()
		m.log.Warn().Uint32("sound", uint32(v.Sound)).Msg("play: unknown sound")
		return voice.InvalidHandle, ErrUnknownSound
	}
	h, ok := m.pool.Alloc(v)
	if !ok {
		m.stats.VoicesRejected++
		capacity := m.pool.Cap()
		m.mu.Unlock()
		m.log.Warn().Int("capacity", capacity).Uint32("sound", uint32(v.Sound)).Msg("voice pool exhausted")
		return voice.InvalidHandle, ErrNoFreeVoice
	}
	m.stats.VoicesStarted++
	m.mu.Unlock()
	return h, nil
}

// Stop ends the voice. Handles of voices that already ended, or whose
// slot was reused, are ignored.
func (m *Mixer) Stop(h voice.Handle) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.pool.Release(h) {
		return false
	}
	m.stats.VoicesStopped++
	return true
}

func (m *Mixer) StopAll() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stats.VoicesStopped += uint64(m.pool.Active())
	m.pool.Reset()
}

func (m *Mixer) IsPlaying(h voice.Handle) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.pool.Lookup(h)
	return ok
}

// Voice returns a snapshot of the voice h refers to.
func (m *Mixer) Voice(h voice.Handle) (voice.Voice, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.pool.Lookup(h)
	if !ok {
		return voice.Voice{}, false
	}
	return *v, true
}

func (m *Mixer) SetVoiceVolume(h voice.Handle, volume float32) bool {
	return m.updateVoice(h, func(v *voice.Voice) {
		v.Volume = utils.Clamp32(volume, 0, 1)
	})
}

// SetVoicePan has no audible effect on spatial voices.
func (m *Mixer) SetVoicePan(h voice.Handle, pan float32) bool {
	return m.updateVoice(h, func(v *voice.Voice) {
		v.Pan = utils.Clamp32(pan, -1, 1)
	})
}

// SetVoicePosition moves a spatial voice. It reports false for
// non-spatial voices.
func (m *Mixer) SetVoicePosition(h voice.Handle, pos spatial.Vec2) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.pool.Lookup(h)
	if !ok || !v.Spatial {
		return false
	}
	v.Position = pos.Finite()
	return true
}

func (m *Mixer) updateVoice(h voice.Handle, fn func(*voice.Voice)) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.pool.Lookup(h)
	if !ok {
		return false
	}
	fn(v)
	return true
}

func (m *Mixer) ActiveVoices() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.pool.Active()
}

func (m *Mixer) SetListenerPosition(pos spatial.Vec2) {
	m.mu.Lock()
	m.listener = pos.Finite()
	m.mu.Unlock()
}

func (m *Mixer) Listener() spatial.Vec2 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.listener
}

// SetBusVolume sets the gain of a bus, clamped to [0, 1]. It reports false
// for an unknown bus.
func (m *Mixer) SetBusVolume(b Bus, volume float32) bool {
	if !b.Valid() {
		return false
	}
	m.mu.Lock()
	m.buses[b] = utils.Clamp32(volume, 0, 1)
	m.mu.Unlock()
	return true
}

// BusVolume returns 0 for an unknown bus.
func (m *Mixer) BusVolume(b Bus) float32 {
	if !b.Valid() {
		return 0
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.buses[b]
}

func (m *Mixer) Stats() Stats {
	m.mu.Lock()
	defer m.mu.Unlock()
	s := m.stats
	s.ActiveVoices = m.pool.Active()
	s.Sounds = m.bank.Len()
	return s
}
