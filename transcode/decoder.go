package transcode

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/RyanBlaney/sonido-shrp/logging"
)

var (
	// ErrInvalidWAV is returned when the input is not a readable WAV file
	ErrInvalidWAV = errors.New("invalid WAV file")

	// ErrUnsupportedFormat is returned for WAV encodings the decoder cannot scale
	ErrUnsupportedFormat = errors.New("unsupported WAV format")
)

// AudioData represents decoded audio data
type AudioData struct {
	PCM        []float64     `json:"-"` // mono samples in [-1, 1)
	SampleRate int           `json:"sample_rate"`
	Channels   int           `json:"channels"` // channel count of the source
	BitDepth   int           `json:"bit_depth"`
	Duration   time.Duration `json:"duration"`
}

// NumSamples returns the number of mono samples
func (a *AudioData) NumSamples() int {
	return len(a.PCM)
}

// DecoderConfig holds decoder configuration
type DecoderConfig struct {
	// Channel selects one source channel (0-origin). -1 averages all channels.
	Channel int `json:"channel"`

	// MaxDuration truncates the decoded signal when positive
	MaxDuration time.Duration `json:"max_duration"`
}

// DefaultDecoderConfig averages all channels and keeps the whole file
func DefaultDecoderConfig() *DecoderConfig {
	return &DecoderConfig{
		Channel: -1,
	}
}

// Decoder reads PCM WAV files into floating point samples
type Decoder struct {
	config *DecoderConfig
}

// NewDecoder creates a new audio decoder
func NewDecoder(config *DecoderConfig) *Decoder {
	if config == nil {
		config = DefaultDecoderConfig()
	}
	return &Decoder{config: config}
}

// LoadWAV decodes a WAV file with the default configuration
func LoadWAV(filename string) (*AudioData, error) {
	return NewDecoder(nil).DecodeFile(filename)
}

// DecodeFile decodes a WAV file and returns PCM data
func (d *Decoder) DecodeFile(filename string) (*AudioData, error) {
	logger := logging.WithFields(logging.Fields{
		"component": "audio_decoder",
		"function":  "DecodeFile",
		"filename":  filename,
	})

	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", filename, err)
	}
	defer f.Close()

	data, err := d.DecodeReader(f)
	if err != nil {
		logger.Error(err, "Failed to decode WAV file")
		return nil, err
	}

	logger.Debug("WAV file decoded", logging.Fields{
		"sample_rate": data.SampleRate,
		"channels":    data.Channels,
		"bit_depth":   data.BitDepth,
		"samples":     data.NumSamples(),
	})
	return data, nil
}

// DecodeReader decodes WAV data from r.
//
// Integer samples are divided by 2^(bitDepth-1), so 16-bit audio maps to
// value/32768. Multichannel input is reduced to mono as configured.
func (d *Decoder) DecodeReader(r io.ReadSeeker) (*AudioData, error) {
	dec := wav.NewDecoder(r)
	if !dec.IsValidFile() {
		if err := dec.Err(); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidWAV, err)
		}
		return nil, ErrInvalidWAV
	}
	if dec.WavAudioFormat != 1 {
		return nil, fmt.Errorf("%w: audio format %d is not integer PCM", ErrUnsupportedFormat, dec.WavAudioFormat)
	}

	bitDepth := int(dec.BitDepth)
	switch bitDepth {
	case 16, 24, 32:
	default:
		return nil, fmt.Errorf("%w: %d-bit samples", ErrUnsupportedFormat, bitDepth)
	}

	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidWAV, err)
	}

	channels := buf.Format.NumChannels
	if channels < 1 || buf.Format.SampleRate <= 0 {
		return nil, fmt.Errorf("%w: %d channels at %d Hz", ErrInvalidWAV, channels, buf.Format.SampleRate)
	}
	if d.config.Channel >= channels {
		return nil, fmt.Errorf("channel %d requested from %d-channel audio", d.config.Channel, channels)
	}

	pcm := d.toMono(buf, float64(int64(1)<<(bitDepth-1)))
	sampleRate := buf.Format.SampleRate
	if d.config.MaxDuration > 0 {
		maxSamples := int(d.config.MaxDuration.Seconds() * float64(sampleRate))
		if maxSamples < len(pcm) {
			pcm = pcm[:maxSamples]
		}
	}

	return &AudioData{
		PCM:        pcm,
		SampleRate: sampleRate,
		Channels:   channels,
		BitDepth:   bitDepth,
		Duration:   time.Duration(len(pcm)) * time.Second / time.Duration(sampleRate),
	}, nil
}

func (d *Decoder) toMono(buf *audio.IntBuffer, scale float64) []float64 {
	channels := buf.Format.NumChannels
	frames := len(buf.Data) / channels
	pcm := make([]float64, frames)

	if channels == 1 {
		for i, v := range buf.Data[:frames] {
			pcm[i] = float64(v) / scale
		}
		return pcm
	}

	if d.config.Channel >= 0 {
		for i := range pcm {
			pcm[i] = float64(buf.Data[i*channels+d.config.Channel]) / scale
		}
		return pcm
	}

	logging.Warn("Mixing multichannel audio down to mono", logging.Fields{
		"component": "audio_decoder",
		"channels":  channels,
	})
	for i := range pcm {
		sum := 0.0
		for c := 0; c < channels; c++ {
			sum += float64(buf.Data[i*channels+c])
		}
		pcm[i] = sum / float64(channels) / scale
	}
	return pcm
}
