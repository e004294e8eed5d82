package audio

import (
	"bytes"
	"encoding/binary"
	"io"
)

// EncodeWAV writes mono 16-bit PCM samples as a RIFF/WAV stream.
func EncodeWAV(w io.Writer, samples []int16, sampleRate int) error {
	var buf bytes.Buffer

	dataSize := len(samples) * 2
	fileSize := 36 + dataSize

	buf.WriteString("RIFF")
	binary.Write(&buf, binary.LittleEndian, int32(fileSize))
	buf.WriteString("WAVE")

	buf.WriteString("fmt ")
	binary.Write(&buf, binary.LittleEndian, int32(16))
	binary.Write(&buf, binary.LittleEndian, int16(1)) // PCM
	binary.Write(&buf, binary.LittleEndian, int16(1)) // mono
	binary.Write(&buf, binary.LittleEndian, int32(sampleRate))
	binary.Write(&buf, binary.LittleEndian, int32(sampleRate*2)) // byte rate
	binary.Write(&buf, binary.LittleEndian, int16(2))            // block align
	binary.Write(&buf, binary.LittleEndian, int16(16))           // bits per sample

	buf.WriteString("data")
	binary.Write(&buf, binary.LittleEndian, int32(dataSize))
	for _, sample := range samples {
		binary.Write(&buf, binary.LittleEndian, sample)
	}

	_, err := w.Write(buf.Bytes())
	return err
}
