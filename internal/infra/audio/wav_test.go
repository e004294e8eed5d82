package audio

import (
	"bytes"
	"encoding/binary"
	"testing"
)

func TestEncodeWAV_Header(t *testing.T) {
	samples := []int16{0, 100, -100, 32000}

	var buf bytes.Buffer
	if err := EncodeWAV(&buf, samples, 16000); err != nil {
		t.Fatalf("EncodeWAV error: %v", err)
	}

	data := buf.Bytes()
	if len(data) != 44+len(samples)*2 {
		t.Fatalf("size: got %d, want %d", len(data), 44+len(samples)*2)
	}

	if string(data[0:4]) != "RIFF" || string(data[8:12]) != "WAVE" {
		t.Error("missing RIFF/WAVE markers")
	}
	if string(data[36:40]) != "data" {
		t.Error("missing data chunk marker")
	}

	sampleRate := binary.LittleEndian.Uint32(data[24:28])
	if sampleRate != 16000 {
		t.Errorf("sample rate: got %d", sampleRate)
	}
	channels := binary.LittleEndian.Uint16(data[22:24])
	if channels != 1 {
		t.Errorf("channels: got %d", channels)
	}
	bits := binary.LittleEndian.Uint16(data[34:36])
	if bits != 16 {
		t.Errorf("bits per sample: got %d", bits)
	}
	dataSize := binary.LittleEndian.Uint32(data[40:44])
	if int(dataSize) != len(samples)*2 {
		t.Errorf("data size: got %d", dataSize)
	}

	first := int16(binary.LittleEndian.Uint16(data[44:46]))
	last := int16(binary.LittleEndian.Uint16(data[len(data)-2:]))
	if first != 0 || last != 32000 {
		t.Errorf("samples: got first %d last %d", first, last)
	}
}
