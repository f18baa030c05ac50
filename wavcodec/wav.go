// Package wavcodec wraps raw linear PCM in a WAV container. The speech
// capability returns mono 16-bit samples at 24kHz; the encoder labels the
// container accordingly and performs no resampling or channel mixing, so
// callers must ensure the upstream format matches.
package wavcodec

import (
	"encoding/base64"
	"encoding/binary"
	"fmt"
)

const (
	SampleRate    = 24000
	NumChannels   = 1
	BitsPerSample = 16

	headerSize = 44
	blockAlign = NumChannels * BitsPerSample / 8
	byteRate   = SampleRate * blockAlign
)

// Encode prepends the 44-byte RIFF/WAVE header to the PCM payload.
func Encode(pcm []byte) []byte {
	dataLen := len(pcm)
	out := make([]byte, headerSize+dataLen)

	copy(out[0:4], "RIFF")
	binary.LittleEndian.PutUint32(out[4:8], uint32(36+dataLen))
	copy(out[8:12], "WAVE")

	copy(out[12:16], "fmt ")
	binary.LittleEndian.PutUint32(out[16:20], 16)
	binary.LittleEndian.PutUint16(out[20:22], 1) // PCM
	binary.LittleEndian.PutUint16(out[22:24], NumChannels)
	binary.LittleEndian.PutUint32(out[24:28], SampleRate)
	binary.LittleEndian.PutUint32(out[28:32], byteRate)
	binary.LittleEndian.PutUint16(out[32:34], blockAlign)
	binary.LittleEndian.PutUint16(out[34:36], BitsPerSample)

	copy(out[36:40], "data")
	binary.LittleEndian.PutUint32(out[40:44], uint32(dataLen))

	copy(out[headerSize:], pcm)
	return out
}

// DataURI encodes the PCM payload as a self-contained audio/wav data URI.
func DataURI(pcm []byte) string {
	return "data:audio/wav;base64," + base64.StdEncoding.EncodeToString(Encode(pcm))
}

// DataURIFromBase64PCM decodes the base64 PCM payload as returned by the
// speech capability and encodes it as a WAV data URI.
func DataURIFromBase64PCM(base64PCM string) (string, error) {
	pcm, err := base64.StdEncoding.DecodeString(base64PCM)
	if err != nil {
		return "", fmt.Errorf("failed to decode base64 PCM payload: %w", err)
	}
	return DataURI(pcm), nil
}
