package wavcodec

import (
	"bytes"
	"encoding/base64"
	"encoding/binary"
	"strings"
	"testing"
)

func TestEncode_HeaderLayout(t *testing.T) {
	pcm := []byte{0x01, 0x02, 0x03, 0x04, 0x05, 0x06}

	out := Encode(pcm)

	if len(out) != 44+len(pcm) {
		t.Fatalf("expected total length %d, got %d", 44+len(pcm), len(out))
	}
	if string(out[0:4]) != "RIFF" {
		t.Fatalf("expected RIFF chunk ID, got %q", out[0:4])
	}
	if string(out[8:12]) != "WAVE" {
		t.Fatalf("expected WAVE format, got %q", out[8:12])
	}
	if string(out[12:16]) != "fmt " {
		t.Fatalf("expected fmt subchunk ID, got %q", out[12:16])
	}
	if string(out[36:40]) != "data" {
		t.Fatalf("expected data subchunk ID, got %q", out[36:40])
	}

	if got := binary.LittleEndian.Uint32(out[4:8]); got != uint32(36+len(pcm)) {
		t.Fatalf("expected chunk size %d, got %d", 36+len(pcm), got)
	}
	if got := binary.LittleEndian.Uint32(out[16:20]); got != 16 {
		t.Fatalf("expected fmt subchunk size 16, got %d", got)
	}
	if got := binary.LittleEndian.Uint16(out[20:22]); got != 1 {
		t.Fatalf("expected PCM audio format, got %d", got)
	}
	if got := binary.LittleEndian.Uint16(out[22:24]); got != 1 {
		t.Fatalf("expected mono, got %d channels", got)
	}
	if got := binary.LittleEndian.Uint32(out[24:28]); got != 24000 {
		t.Fatalf("expected 24kHz sample rate, got %d", got)
	}
	if got := binary.LittleEndian.Uint32(out[28:32]); got != 48000 {
		t.Fatalf("expected byte rate 48000, got %d", got)
	}
	if got := binary.LittleEndian.Uint16(out[32:34]); got != 2 {
		t.Fatalf("expected block align 2, got %d", got)
	}
	if got := binary.LittleEndian.Uint16(out[34:36]); got != 16 {
		t.Fatalf("expected 16 bits per sample, got %d", got)
	}
	if got := binary.LittleEndian.Uint32(out[40:44]); got != uint32(len(pcm)) {
		t.Fatalf("expected data size %d, got %d", len(pcm), got)
	}
	if !bytes.Equal(out[44:], pcm) {
		t.Fatal("PCM payload was not copied verbatim")
	}
}

func TestEncode_EmptyPayload(t *testing.T) {
	out := Encode(nil)

	if len(out) != 44 {
		t.Fatalf("expected bare header of 44 bytes, got %d", len(out))
	}
	if got := binary.LittleEndian.Uint32(out[4:8]); got != 36 {
		t.Fatalf("expected chunk size 36, got %d", got)
	}
	if got := binary.LittleEndian.Uint32(out[40:44]); got != 0 {
		t.Fatalf("expected data size 0, got %d", got)
	}
}

func TestEncode_Deterministic(t *testing.T) {
	pcm := bytes.Repeat([]byte{0xAB, 0xCD}, 1200)

	first := Encode(pcm)
	second := Encode(pcm)

	if !bytes.Equal(first, second) {
		t.Fatal("encoding the same PCM input twice produced different output")
	}
}

func TestDataURI_Format(t *testing.T) {
	pcm := []byte{0x10, 0x20, 0x30}

	uri := DataURI(pcm)

	if !strings.HasPrefix(uri, "data:audio/wav;base64,") {
		t.Fatalf("unexpected data URI prefix: %q", uri[:30])
	}

	decoded, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(uri, "data:audio/wav;base64,"))
	if err != nil {
		t.Fatal("data URI payload is not valid base64:", err)
	}
	if !bytes.Equal(decoded, Encode(pcm)) {
		t.Fatal("data URI payload does not round-trip to the encoded container")
	}
}

func TestDataURIFromBase64PCM(t *testing.T) {
	pcm := []byte{0x00, 0x7F, 0x80, 0xFF}

	uri, err := DataURIFromBase64PCM(base64.StdEncoding.EncodeToString(pcm))
	if err != nil {
		t.Fatal("failed to encode valid base64 PCM:", err)
	}
	if uri != DataURI(pcm) {
		t.Fatal("base64 input and raw input produced different data URIs")
	}

	if _, err := DataURIFromBase64PCM("not-base64!!"); err == nil {
		t.Fatal("expected an error for malformed base64 input")
	}
}
