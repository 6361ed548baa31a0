// SPDX-License-Identifier: EPL-2.0

package mixer

import (
	"errors"
	"testing"

	"github.com/ik5/audmix/audio"
	"github.com/ik5/audmix/bank"
	"github.com/ik5/audmix/formats/wav"
	"github.com/ik5/audmix/internal/audiotest"
	"github.com/ik5/audmix/spatial"
	"github.com/ik5/audmix/voice"
)

func TestNew_InvalidConfig(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.Capacity = 0

	m, err := New(cfg)
	if !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("New() error = %v, want ErrInvalidConfig", err)
	}
	if m != nil {
		t.Error("New() returned a mixer for an invalid config")
	}
}

func TestNew_BusDefaults(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.BusVolumes = map[Bus]float32{BusMusic: 0.3}

	m, err := New(cfg)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	for _, b := range Buses() {
		want := float32(1)
		if b == BusMusic {
			want = 0.3
		}
		if got := m.BusVolume(b); got != want {
			t.Errorf("BusVolume(%s) = %v, want %v", b, got, want)
		}
	}
}

func TestInit(t *testing.T) {
	t.Parallel()

	m, err := New(DefaultConfig())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer m.Shutdown()

	err = m.Init(&audiotest.FakeBackend{Fail: true})
	if !errors.Is(err, ErrBackend) || !errors.Is(err, audiotest.ErrOpenFailed) {
		t.Fatalf("Init(failing) error = %v, want ErrBackend wrapping ErrOpenFailed", err)
	}

	fb := &audiotest.FakeBackend{}
	if err := m.Init(fb); err != nil {
		t.Fatalf("Init() after failure error = %v", err)
	}
	s := fb.Stream()
	if !s.Started() {
		t.Error("stream was not started")
	}
	if s.Config != m.Config().StreamConfig() {
		t.Errorf("stream config = %+v, want %+v", s.Config, m.Config().StreamConfig())
	}

	if err := m.Init(&audiotest.FakeBackend{}); !errors.Is(err, ErrAlreadyInitialized) {
		t.Errorf("second Init() error = %v, want ErrAlreadyInitialized", err)
	}
}

func TestPlay_PoolExhaustion(t *testing.T) {
	t.Parallel()

	m, _ := newRunningMixer(t, nil)
	snd := addSound(t, m, 1, constant(16, 0.1)...)

	for i := range DefaultCapacity {
		if _, err := m.Play(snd); err != nil {
			t.Fatalf("Play() #%d error = %v", i, err)
		}
	}

	h, err := m.Play(snd)
	if h != voice.InvalidHandle || !errors.Is(err, ErrNoFreeVoice) {
		t.Errorf("Play() on full pool = (%d, %v), want (InvalidHandle, ErrNoFreeVoice)", h, err)
	}
	if n := m.ActiveVoices(); n != DefaultCapacity {
		t.Errorf("ActiveVoices() = %d, want %d", n, DefaultCapacity)
	}

	st := m.Stats()
	if st.VoicesStarted != DefaultCapacity || st.VoicesRejected != 1 {
		t.Errorf("Stats() = %+v", st)
	}
}

func TestPlay_Rejects(t *testing.T) {
	t.Parallel()

	m, _ := newRunningMixer(t, nil)
	snd := addSound(t, m, 1, 0.5)

	tests := []struct {
		name  string
		sound bank.SoundHandle
		opts  []PlayOption
		want  error
	}{
		{"unknown sound", 42, nil, ErrUnknownSound},
		{"invalid sound", 0, nil, ErrUnknownSound},
		{"unknown bus", snd, []PlayOption{WithBus(Bus(17))}, ErrUnknownBus},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, err := m.Play(tt.sound, tt.opts...)
			if h != voice.InvalidHandle || !errors.Is(err, tt.want) {
				t.Errorf("Play() = (%d, %v), want (InvalidHandle, %v)", h, err, tt.want)
			}
		})
	}

	if n := m.ActiveVoices(); n != 0 {
		t.Errorf("ActiveVoices() = %d after rejected plays", n)
	}
}

func TestPlay_OptionsAreClamped(t *testing.T) {
	t.Parallel()

	m, _ := newRunningMixer(t, nil)
	snd := addSound(t, m, 1, 0.5)

	h, err := m.Play(snd, WithVolume(3), WithPan(-7), WithBus(BusUI), WithLoop(true))
	if err != nil {
		t.Fatalf("Play() error = %v", err)
	}

	v, ok := m.Voice(h)
	if !ok {
		t.Fatal("Voice() = false for a playing voice")
	}
	if v.Volume != 1 || v.Pan != -1 || v.Bus != int(BusUI) || !v.Loop || v.Spatial {
		t.Errorf("Voice() = %+v", v)
	}
}

func TestStop_IsIdempotent(t *testing.T) {
	t.Parallel()

	m, stream := newRunningMixer(t, nil)
	snd := addSound(t, m, 1, 0.5)

	h, err := m.Play(snd, WithLoop(true))
	if err != nil {
		t.Fatalf("Play() error = %v", err)
	}
	if out := stream.Pump(); out[0] != 0.5 {
		t.Fatalf("first sample = %v, want 0.5", out[0])
	}

	if !m.Stop(h) {
		t.Fatal("Stop() = false for a playing voice")
	}
	assertSilent(t, stream.Pump())

	if m.Stop(h) || m.Stop(h) {
		t.Error("Stop() on a stopped voice = true")
	}
	if m.Stop(voice.InvalidHandle) {
		t.Error("Stop(InvalidHandle) = true")
	}
}

func TestStop_StaleHandleAfterSlotReuse(t *testing.T) {
	t.Parallel()

	m, stream := newRunningMixer(t, func(c *Config) { c.Capacity = 1 })
	snd := addSound(t, m, 1, 0.25)

	old, err := m.Play(snd)
	if err != nil {
		t.Fatalf("Play() error = %v", err)
	}
	stream.Pump()
	if m.IsPlaying(old) {
		t.Fatal("one-sample voice still playing after a callback")
	}

	cur, err := m.Play(snd, WithLoop(true))
	if err != nil {
		t.Fatalf("Play() error = %v", err)
	}
	if cur.Index() != old.Index() || cur == old {
		t.Fatalf("handles old=%#x cur=%#x, want same slot, different generation", old, cur)
	}

	if m.Stop(old) {
		t.Error("Stop(stale) = true")
	}
	if m.SetVoiceVolume(old, 0) {
		t.Error("SetVoiceVolume(stale) = true")
	}
	if !m.IsPlaying(cur) {
		t.Error("stale handle affected the voice now in its slot")
	}
}

func TestStopAll(t *testing.T) {
	t.Parallel()

	m, stream := newRunningMixer(t, nil)
	snd := addSound(t, m, 1, 0.5)

	for range 5 {
		if _, err := m.Play(snd, WithLoop(true)); err != nil {
			t.Fatalf("Play() error = %v", err)
		}
	}
	m.StopAll()

	if n := m.ActiveVoices(); n != 0 {
		t.Errorf("ActiveVoices() = %d, want 0", n)
	}
	if st := m.Stats(); st.VoicesStopped != 5 {
		t.Errorf("VoicesStopped = %d, want 5", st.VoicesStopped)
	}
	assertSilent(t, stream.Pump())
}

func TestVoiceSetters(t *testing.T) {
	t.Parallel()

	m, _ := newRunningMixer(t, nil)
	snd := addSound(t, m, 1, 0.5)

	plain, _ := m.Play(snd, WithLoop(true))
	placed, _ := m.PlaySpatial(snd, spatial.Vec2{X: 1, Y: 2}, 10, 100, WithLoop(true))

	if !m.SetVoiceVolume(plain, -1) {
		t.Fatal("SetVoiceVolume() = false")
	}
	if !m.SetVoicePan(plain, 0.5) {
		t.Fatal("SetVoicePan() = false")
	}
	v, _ := m.Voice(plain)
	if v.Volume != 0 || v.Pan != 0.5 {
		t.Errorf("voice = %+v, want volume 0 pan 0.5", v)
	}

	if m.SetVoicePosition(plain, spatial.Vec2{}) {
		t.Error("SetVoicePosition() on a non-spatial voice = true")
	}
	pos := spatial.Vec2{X: -5, Y: 3}
	if !m.SetVoicePosition(placed, pos) {
		t.Fatal("SetVoicePosition() = false")
	}
	v, _ = m.Voice(placed)
	if v.Position != pos || !v.Spatial || v.MinDistance != 10 || v.MaxDistance != 100 {
		t.Errorf("voice = %+v", v)
	}
}

func TestListenerAndBusVolume(t *testing.T) {
	t.Parallel()

	m, _ := newRunningMixer(t, nil)

	m.SetListenerPosition(spatial.Vec2{X: 3, Y: 4})
	if got := m.Listener(); got != (spatial.Vec2{X: 3, Y: 4}) {
		t.Errorf("Listener() = %v", got)
	}

	tests := []struct {
		bus  Bus
		in   float32
		ok   bool
		want float32
	}{
		{BusMusic, 0.4, true, 0.4},
		{BusMaster, 2, true, 1},
		{BusSFX, -1, true, 0},
		{Bus(-1), 0.5, false, 0},
		{busCount, 0.5, false, 0},
	}
	for _, tt := range tests {
		if ok := m.SetBusVolume(tt.bus, tt.in); ok != tt.ok {
			t.Errorf("SetBusVolume(%s, %v) = %v, want %v", tt.bus, tt.in, ok, tt.ok)
		}
		if got := m.BusVolume(tt.bus); got != tt.want {
			t.Errorf("BusVolume(%s) = %v, want %v", tt.bus, got, tt.want)
		}
	}
}

func TestRegisterSound(t *testing.T) {
	t.Parallel()

	m, stream := newRunningMixer(t, nil)

	h, err := m.RegisterSound(encodeWAV(t, DefaultSampleRate, 1, 32, []float32{0.5, -0.25}))
	if err != nil {
		t.Fatalf("RegisterSound() error = %v", err)
	}
	if !h.Valid() {
		t.Fatal("RegisterSound() returned the invalid handle")
	}

	if _, err := m.Play(h); err != nil {
		t.Fatalf("Play() error = %v", err)
	}
	assertSamples(t, stream.Pump(), []float32{0.5, 0.5, -0.25, -0.25, 0, 0, 0, 0})
}

func TestRegisterSound_FoldsSurroundToMono(t *testing.T) {
	t.Parallel()

	m, stream := newRunningMixer(t, nil)

	quad := []float32{0.5, 0.25, -0.25, 0.5}
	h, err := m.RegisterSound(encodeWAV(t, DefaultSampleRate, 4, 32, quad))
	if err != nil {
		t.Fatalf("RegisterSound() error = %v", err)
	}
	if _, err := m.Play(h); err != nil {
		t.Fatalf("Play() error = %v", err)
	}
	assertSamples(t, stream.Pump(), []float32{0.25, 0.25, 0, 0, 0, 0, 0, 0})
}

func TestRegisterSound_Failures(t *testing.T) {
	t.Parallel()

	m, _ := newRunningMixer(t, nil)

	good := encodeWAV(t, DefaultSampleRate, 1, 16, []float32{0.5})
	noData := good[:36] // RIFF header plus fmt chunk

	tests := []struct {
		name string
		data []byte
		want error
	}{
		{"empty", nil, audio.ErrUnknownFormat},
		{"garbage", []byte("definitely not audio"), audio.ErrUnknownFormat},
		{"missing data chunk", noData, wav.ErrMissingDataChunk},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, err := m.RegisterSound(tt.data)
			if h.Valid() {
				t.Errorf("RegisterSound() handle = %d, want invalid", h)
			}
			if !errors.Is(err, ErrDecode) || !errors.Is(err, tt.want) {
				t.Errorf("RegisterSound() error = %v, want ErrDecode wrapping %v", err, tt.want)
			}
		})
	}

	if n := m.Sounds(); n != 0 {
		t.Errorf("Sounds() = %d after failed registrations", n)
	}
}

func TestUnregisterSound(t *testing.T) {
	t.Parallel()

	m, stream := newRunningMixer(t, nil)
	snd := addSound(t, m, 1, constant(64, 0.5)...)

	h, _ := m.Play(snd, WithLoop(true))
	if !m.UnregisterSound(snd) {
		t.Fatal("UnregisterSound() = false")
	}
	if m.UnregisterSound(snd) {
		t.Error("second UnregisterSound() = true")
	}

	assertSilent(t, stream.Pump())
	if m.IsPlaying(h) {
		t.Error("voice of an unregistered sound still playing")
	}
	if _, err := m.Play(snd); !errors.Is(err, ErrUnknownSound) {
		t.Errorf("Play(unregistered) error = %v, want ErrUnknownSound", err)
	}
}

func TestUnregisterSound_SharedSoundKeepsPlaying(t *testing.T) {
	t.Parallel()

	m, stream := newRunningMixer(t, nil)
	snd := &bank.Sound{
		Samples:    constant(64, 0.5),
		Channels:   1,
		SampleRate: DefaultSampleRate,
	}
	first, err := m.AddSound(snd)
	if err != nil {
		t.Fatalf("AddSound() error = %v", err)
	}
	second, err := m.AddSound(snd)
	if err != nil {
		t.Fatalf("AddSound() error = %v", err)
	}

	h, _ := m.Play(second, WithLoop(true))
	m.UnregisterSound(first)

	out := stream.Pump()
	if out[0] == 0 {
		t.Error("voice on the second registration went silent")
	}
	if !m.IsPlaying(h) {
		t.Error("voice on the second registration stopped")
	}
	if len(snd.Samples) != 64 {
		t.Errorf("caller's sound has %d samples, want 64", len(snd.Samples))
	}
}

func TestShutdown(t *testing.T) {
	t.Parallel()

	m, stream := newRunningMixer(t, nil)
	snd := addSound(t, m, 1, constant(64, 0.5)...)
	if _, err := m.Play(snd, WithLoop(true)); err != nil {
		t.Fatalf("Play() error = %v", err)
	}

	if err := m.Shutdown(); err != nil {
		t.Fatalf("Shutdown() error = %v", err)
	}
	if !stream.Closed() {
		t.Error("Shutdown() left the stream open")
	}
	if n, a := m.Sounds(), m.ActiveVoices(); n != 0 || a != 0 {
		t.Errorf("after Shutdown() sounds = %d voices = %d", n, a)
	}
	assertSilent(t, stream.Pump())

	out := constant(8, 1)
	m.Mix(out, 4, 2)
	assertSilent(t, out)

	if err := m.Shutdown(); !errors.Is(err, ErrClosed) {
		t.Errorf("second Shutdown() error = %v, want ErrClosed", err)
	}
	if _, err := m.Play(snd); !errors.Is(err, ErrClosed) {
		t.Errorf("Play() after Shutdown() error = %v, want ErrClosed", err)
	}
	if _, err := m.RegisterSound(encodeWAV(t, DefaultSampleRate, 1, 16, []float32{0})); !errors.Is(err, ErrClosed) {
		t.Errorf("RegisterSound() after Shutdown() error = %v, want ErrClosed", err)
	}
	if err := m.Init(&audiotest.FakeBackend{}); !errors.Is(err, ErrClosed) {
		t.Errorf("Init() after Shutdown() error = %v, want ErrClosed", err)
	}
}

func TestShutdown_WithoutInit(t *testing.T) {
	t.Parallel()

	m, err := New(DefaultConfig())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	addSound(t, m, 2, 0.1, 0.2)

	if err := m.Shutdown(); err != nil {
		t.Errorf("Shutdown() error = %v", err)
	}
	if n := m.Sounds(); n != 0 {
		t.Errorf("Sounds() = %d, want 0", n)
	}
}
