// Package audio 合成游戏音效并输出为 PCM 流
//
// 音效全部由振荡器实时合成（github.com/gopxl/beep），不依赖音频文件。
// 输出格式固定为 16-bit 小端双声道 PCM，可直接交给 Ebitengine 的 audio.Player 播放。
package audio

import (
	"time"

	"github.com/gopxl/beep"

	"github.com/decker502/clicktarget/pkg/game"
)

// SampleRate 合成采样率，与 audio.NewContext(48000) 保持一致
const SampleRate = 48000

// BytesPerFrame 每帧字节数（2 声道 × 16 bit）
const BytesPerFrame = 4

// NewSoundStreamer 构建某种音效的合成流
// 每次调用返回新的流；未知音效返回 nil
func NewSoundStreamer(s game.Sound, rate beep.SampleRate) beep.Streamer {
	switch s {
	case game.SoundHit:
		return newVolume(tone(880, 1320, 60*time.Millisecond, WaveSine, rate), 0.6)

	case game.SoundBomb:
		// 低频方波下滑叠加一个正弦底鼓
		d := 350 * time.Millisecond
		return beep.Take(rate.N(d), beep.Mix(
			newVolume(tone(220, 55, d, WaveSquare, rate), 0.35),
			newVolume(tone(110, 40, d, WaveSine, rate), 0.6),
		))

	case game.SoundPowerUp:
		step := 70 * time.Millisecond
		return newVolume(beep.Seq(
			tone(523, 523, step, WaveTriangle, rate),
			tone(659, 659, step, WaveTriangle, rate),
			tone(784, 784, step, WaveTriangle, rate),
			tone(1047, 1047, 2*step, WaveTriangle, rate),
		), 0.6)

	case game.SoundExtraLife:
		step := 90 * time.Millisecond
		return newVolume(beep.Seq(
			tone(660, 660, step, WaveSine, rate),
			tone(990, 990, 2*step, WaveSine, rate),
		), 0.6)

	case game.SoundGameOver:
		step := 180 * time.Millisecond
		return newVolume(beep.Seq(
			tone(392, 392, step, WaveSquare, rate),
			tone(330, 330, step, WaveSquare, rate),
			tone(262, 196, 3*step, WaveSquare, rate),
		), 0.3)

	default:
		return nil
	}
}

// SoundDuration 返回音效的标称时长
func SoundDuration(s game.Sound) time.Duration {
	switch s {
	case game.SoundHit:
		return 60 * time.Millisecond
	case game.SoundBomb:
		return 350 * time.Millisecond
	case game.SoundPowerUp:
		return 350 * time.Millisecond
	case game.SoundExtraLife:
		return 270 * time.Millisecond
	case game.SoundGameOver:
		return 900 * time.Millisecond
	default:
		return 0
	}
}

// RenderSound 把一个音效渲染成 PCM 字节
func RenderSound(s game.Sound) []byte {
	streamer := NewSoundStreamer(s, beep.SampleRate(SampleRate))
	if streamer == nil {
		return nil
	}
	return RenderPCM16(streamer)
}

// NewSoundStream 渲染音效并包装为可回绕的流
func NewSoundStream(s game.Sound) *PCMStream {
	return NewPCMStream(RenderSound(s), SampleRate)
}

// AllSounds 列出所有可合成的音效
var AllSounds = []game.Sound{
	game.SoundHit,
	game.SoundBomb,
	game.SoundPowerUp,
	game.SoundExtraLife,
	game.SoundGameOver,
}
