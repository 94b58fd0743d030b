package audio

import (
	"bytes"
	"encoding/binary"
)

// EncodeWAV wraps PCM samples in a RIFF/WAV container at the capture
// format (16 kHz mono, 16-bit little-endian).
func EncodeWAV(samples []int16) []byte {
	dataSize := len(samples) * 2
	buf := bytes.NewBuffer(make([]byte, 0, 44+dataSize))

	buf.WriteString("RIFF")
	binary.Write(buf, binary.LittleEndian, uint32(36+dataSize))
	buf.WriteString("WAVE")

	const (
		fmtChunkSize  = 16
		pcmFormat     = 1
		bitsPerSample = 16
	)
	byteRate := SampleRate * Channels * bitsPerSample / 8
	blockAlign := Channels * bitsPerSample / 8

	buf.WriteString("fmt ")
	binary.Write(buf, binary.LittleEndian, uint32(fmtChunkSize))
	binary.Write(buf, binary.LittleEndian, uint16(pcmFormat))
	binary.Write(buf, binary.LittleEndian, uint16(Channels))
	binary.Write(buf, binary.LittleEndian, uint32(SampleRate))
	binary.Write(buf, binary.LittleEndian, uint32(byteRate))
	binary.Write(buf, binary.LittleEndian, uint16(blockAlign))
	binary.Write(buf, binary.LittleEndian, uint16(bitsPerSample))

	buf.WriteString("data")
	binary.Write(buf, binary.LittleEndian, uint32(dataSize))
	binary.Write(buf, binary.LittleEndian, samples)

	return buf.Bytes()
}
