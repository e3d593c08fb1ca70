package game

import (
	"encoding/binary"
	"log"
	"math"

	"github.com/hajimehoshi/ebiten/v2/audio"
)

// SoundID 音效ID
type SoundID int

const (
	// SoundConfirm 按下 Enter 推进画面
	SoundConfirm SoundID = iota
	// SoundCorrect 回答正确
	SoundCorrect
	// SoundWrong 回答错误
	SoundWrong
	// SoundTick 倒计时最后 10 秒每秒一次
	SoundTick
)

// Waveform 波形
type Waveform int

const (
	// WaveSine 正弦波
	WaveSine Waveform = iota
	// WaveSquare 方波
	WaveSquare
)

// ToneNote 合成音效中的一个音符
type ToneNote struct {
	Frequency float64  // 频率（Hz）
	Duration  float64  // 时长（秒）
	Wave      Waveform // 波形
	Gain      float64  // 音量 0 ~ 1
}

// soundNotes 各音效的音符序列
// 音效全部由程序合成，不需要音频文件
var soundNotes = map[SoundID][]ToneNote{
	SoundConfirm: {
		{Frequency: 880, Duration: 0.06, Wave: WaveSine, Gain: 0.6},
	},
	SoundCorrect: {
		{Frequency: 784, Duration: 0.10, Wave: WaveSine, Gain: 0.7},
		{Frequency: 1047, Duration: 0.25, Wave: WaveSine, Gain: 0.7},
	},
	SoundWrong: {
		{Frequency: 155, Duration: 0.35, Wave: WaveSquare, Gain: 0.35},
	},
	SoundTick: {
		{Frequency: 1200, Duration: 0.03, Wave: WaveSine, Gain: 0.4},
	},
}

// AudioManager 音频管理器
// 职责：
//   - 懒加载合成音效的播放器
//   - 统一控制音量和静音
type AudioManager struct {
	audioContext *audio.Context
	sampleRate   int
	volume       float64
	muted        bool
	soundPlayers map[SoundID]*audio.Player // 音效播放器缓存
}

// NewAudioManager 创建新的音频管理器
//
// 参数：
//   - ctx: 音频上下文（可为 nil，此时所有播放请求被忽略）
//   - volume: 音量 0.0 ~ 1.0
//   - muted: 是否静音
func NewAudioManager(ctx *audio.Context, volume float64, muted bool) *AudioManager {
	sampleRate := 0
	if ctx != nil {
		sampleRate = ctx.SampleRate()
	}
	return &AudioManager{
		audioContext: ctx,
		sampleRate:   sampleRate,
		volume:       volume,
		muted:        muted,
		soundPlayers: make(map[SoundID]*audio.Player),
	}
}

// PlaySound 播放音效
//
// 返回：
//   - bool: 是否成功播放
func (am *AudioManager) PlaySound(id SoundID) bool {
	if am == nil || am.audioContext == nil || am.muted {
		return false
	}

	player := am.getSoundPlayer(id)
	if player == nil {
		return false
	}

	player.SetVolume(am.volume)
	if err := player.Rewind(); err != nil {
		log.Printf("[AudioManager] Warning: Failed to rewind sound %d: %v", id, err)
	}
	player.Play()
	return true
}

// getSoundPlayer 获取或创建音效播放器
func (am *AudioManager) getSoundPlayer(id SoundID) *audio.Player {
	if player, ok := am.soundPlayers[id]; ok {
		return player
	}

	notes, ok := soundNotes[id]
	if !ok {
		log.Printf("[AudioManager] Warning: Unknown sound %d", id)
		return nil
	}

	pcm := SynthesizeTone(am.sampleRate, notes)
	player := am.audioContext.NewPlayerFromBytes(pcm)
	am.soundPlayers[id] = player
	return player
}

// SetMuted 设置静音
func (am *AudioManager) SetMuted(muted bool) {
	am.muted = muted
}

// envelopeSeconds 音符开头和结尾的淡入淡出时长，避免爆音
const envelopeSeconds = 0.005

// SynthesizeTone 合成音符序列
// 输出 16-bit 有符号小端立体声 PCM（Ebitengine audio 的默认格式）
func SynthesizeTone(sampleRate int, notes []ToneNote) []byte {
	if sampleRate <= 0 {
		return nil
	}

	total := 0
	for _, n := range notes {
		total += int(n.Duration * float64(sampleRate))
	}

	buf := make([]byte, 0, total*4)
	for _, n := range notes {
		samples := int(n.Duration * float64(sampleRate))
		fade := int(envelopeSeconds * float64(sampleRate))
		for i := 0; i < samples; i++ {
			t := float64(i) / float64(sampleRate)
			phase := 2 * math.Pi * n.Frequency * t

			v := math.Sin(phase)
			if n.Wave == WaveSquare {
				if v >= 0 {
					v = 1
				} else {
					v = -1
				}
			}

			env := 1.0
			if fade > 0 {
				if i < fade {
					env = float64(i) / float64(fade)
				} else if samples-1-i < fade {
					env = float64(samples-1-i) / float64(fade)
				}
			}
			// 整个音符线性衰减，听起来更像"叮"
			env *= 1 - 0.6*float64(i)/float64(samples)

			s := int16(v * env * n.Gain * math.MaxInt16)
			buf = binary.LittleEndian.AppendUint16(buf, uint16(s))
			buf = binary.LittleEndian.AppendUint16(buf, uint16(s))
		}
	}
	return buf
}
