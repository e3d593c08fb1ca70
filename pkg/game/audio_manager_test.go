package game

import (
	"encoding/binary"
	"testing"
)

// TestSynthesizeToneLength 测试输出长度（16-bit 立体声，每帧 4 字节）
func TestSynthesizeToneLength(t *testing.T) {
	tests := []struct {
		name       string
		sampleRate int
		notes      []ToneNote
		wantBytes  int
	}{
		{"单音符", 48000, []ToneNote{{Frequency: 440, Duration: 0.1, Gain: 1}}, 4800 * 4},
		{"两个音符", 44100, []ToneNote{{Frequency: 440, Duration: 0.1, Gain: 1}, {Frequency: 880, Duration: 0.2, Gain: 1}}, (4410 + 8820) * 4},
		{"采样率为0", 0, []ToneNote{{Frequency: 440, Duration: 0.1, Gain: 1}}, 0},
		{"无音符", 48000, nil, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SynthesizeTone(tt.sampleRate, tt.notes)
			if len(got) != tt.wantBytes {
				t.Errorf("len = %d, want %d", len(got), tt.wantBytes)
			}
		})
	}
}

// TestSynthesizeToneEnvelope 测试首尾静音、左右声道一致
func TestSynthesizeToneEnvelope(t *testing.T) {
	pcm := SynthesizeTone(48000, []ToneNote{{Frequency: 155, Duration: 0.2, Wave: WaveSquare, Gain: 0.5}})

	sample := func(frame, ch int) int16 {
		return int16(binary.LittleEndian.Uint16(pcm[frame*4+ch*2:]))
	}

	frames := len(pcm) / 4
	if s := sample(0, 0); s != 0 {
		t.Errorf("First sample = %d, want 0 (fade in)", s)
	}
	if s := sample(frames-1, 0); s != 0 {
		t.Errorf("Last sample = %d, want 0 (fade out)", s)
	}

	peak := int16(0)
	for i := 0; i < frames; i++ {
		l, r := sample(i, 0), sample(i, 1)
		if l != r {
			t.Fatalf("Frame %d: left %d != right %d", i, l, r)
		}
		if l > peak {
			peak = l
		}
	}
	// Gain 0.5 的方波峰值不超过满幅的一半
	if peak <= 0 || peak > 16384 {
		t.Errorf("Peak = %d, want within (0, 16384]", peak)
	}
}

// TestSoundNotesDefined 测试所有音效都有音符定义
func TestSoundNotesDefined(t *testing.T) {
	for _, id := range []SoundID{SoundConfirm, SoundCorrect, SoundWrong, SoundTick} {
		if len(soundNotes[id]) == 0 {
			t.Errorf("Sound %d has no notes", id)
		}
	}
}

// TestAudioManagerNilContext 测试没有音频上下文时安全降级
func TestAudioManagerNilContext(t *testing.T) {
	am := NewAudioManager(nil, 0.5, false)
	if am.PlaySound(SoundCorrect) {
		t.Error("PlaySound should return false without an audio context")
	}

	var nilManager *AudioManager
	if nilManager.PlaySound(SoundCorrect) {
		t.Error("PlaySound on nil manager should return false")
	}
}
