package media

import (
	"fmt"
	"io"
	"math"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

const (
	// Display range for logarithmic peaks. Anything quieter than the floor
	// renders as silence, anything at the ceiling as full height.
	waveformFloorDb   = -60.0
	waveformCeilingDb = 0.0

	// Linear amplitude below this is treated as silence (approx -120dB),
	// avoiding log10 of zero.
	silenceThreshold = 0.000001
)

// WavPeaks decodes a 16-bit PCM WAV file and reduces it to roughly buckets
// display peaks, each the per-block maximum mapped through a dB scale to a
// visual height in [0,1]. It also returns the duration in seconds.
func WavPeaks(path string, buckets int) ([]float64, float64, error) {
	if buckets < 1 {
		return nil, 0, fmt.Errorf("buckets must be at least 1")
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to open input file '%s': %w", path, err)
	}
	defer file.Close()

	decoder := wav.NewDecoder(file)
	if !decoder.IsValidFile() {
		return nil, 0, fmt.Errorf("'%s' is not a valid WAV file", path)
	}
	if decoder.WavAudioFormat != 1 || decoder.BitDepth != 16 {
		return nil, 0, fmt.Errorf("unsupported WAV format: only 16-bit PCM is supported (got %d-bit, format %d)", decoder.BitDepth, decoder.WavAudioFormat)
	}

	format := decoder.Format()
	if format == nil {
		return nil, 0, fmt.Errorf("could not retrieve audio format details from '%s'", path)
	}
	sampleRate := int(format.SampleRate)
	channels := int(format.NumChannels)
	if channels == 0 {
		return nil, 0, fmt.Errorf("file '%s' reported 0 channels", path)
	}

	// Derive the block size from the reported duration so the peak count
	// lands near the requested bucket count. When the header does not carry
	// a usable duration, fall back to a fixed block size.
	framesPerBucket := 1024
	if dur, err := decoder.Duration(); err == nil && dur > 0 {
		totalFrames := int(dur.Seconds() * float64(sampleRate))
		if perBucket := totalFrames / buckets; perBucket > 0 {
			framesPerBucket = perBucket
		} else {
			framesPerBucket = 1
		}
	}

	chunkSize := 8192
	if chunkSize%channels != 0 {
		chunkSize = (chunkSize/channels + 1) * channels
	}
	pcmBuffer := &audio.IntBuffer{
		Format: format,
		Data:   make([]int, chunkSize),
	}

	var peaks []float64
	var blockMax int32
	framesInBlock := 0
	totalFrames := 0

	for {
		numSamples, err := decoder.PCMBuffer(pcmBuffer)
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, 0, fmt.Errorf("error reading PCM chunk: %w", err)
		}
		if numSamples == 0 {
			break
		}

		samples := pcmBuffer.Data[:numSamples]
		frames := numSamples / channels
		totalFrames += frames

		for i := 0; i < frames; i++ {
			// Per audio frame, keep the largest absolute sample across
			// channels so the display shows the true peak.
			var frameMax int32
			for ch := 0; ch < channels; ch++ {
				sample := int32(samples[i*channels+ch])
				if sample < 0 {
					sample = -sample
				}
				if sample > frameMax {
					frameMax = sample
				}
			}
			if frameMax > blockMax {
				blockMax = frameMax
			}
			framesInBlock++

			if framesInBlock >= framesPerBucket {
				peaks = append(peaks, visualPeakHeight(blockMax))
				blockMax = 0
				framesInBlock = 0
			}
		}
	}

	// Flush the trailing partial block so short files still get a peak.
	if framesInBlock > 0 {
		peaks = append(peaks, visualPeakHeight(blockMax))
	}

	durationSeconds := float64(totalFrames) / float64(sampleRate)
	return peaks, durationSeconds, nil
}

// visualPeakHeight maps a 16-bit absolute peak to a display height in [0,1]
// on a logarithmic scale between waveformFloorDb and waveformCeilingDb.
func visualPeakHeight(maxAbsSample int32) float64 {
	// 32767 is the largest positive 16-bit sample.
	linear := float64(maxAbsSample) / 32767.0

	dB := waveformFloorDb
	if linear >= silenceThreshold {
		dB = 20 * math.Log10(linear)
	}
	if dB < waveformFloorDb {
		dB = waveformFloorDb
	} else if dB > waveformCeilingDb {
		dB = waveformCeilingDb
	}

	height := (dB - waveformFloorDb) / (waveformCeilingDb - waveformFloorDb)
	if height < 0 {
		height = 0
	} else if height > 1 {
		height = 1
	}
	return height
}
