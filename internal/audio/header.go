package audio

import (
	"bytes"
	"encoding/binary"
	"errors"
	"time"
)

var (
	ErrUnknownFormat = errors.New("unknown audio format")
	ErrBadHeader     = errors.New("malformed audio header")
)

var (
	riffMagic = []byte("RIFF")
	waveMagic = []byte("WAVE")
	id3Magic  = []byte("ID3")
)

// MPEG-1 Layer III bitrates in kbit/s, indexed by the header's bitrate bits
var mp3Bitrates = [16]int{
	0, 32, 40, 48, 56, 64, 80, 96, 112, 128, 160, 192, 224, 256, 320, 0,
}

// Duration reads the playing time of WAV or MP3 data from its headers.
// MP3 durations assume a constant bitrate
func Duration(data []byte) (time.Duration, error) {
	switch {
	case len(data) >= 12 && bytes.Equal(data[0:4], riffMagic) &&
		bytes.Equal(data[8:12], waveMagic):
		return wavDuration(data)
	case bytes.HasPrefix(data, id3Magic) || isFrameSync(data):
		return mp3Duration(data)
	default:
		return 0, ErrUnknownFormat
	}
}

func wavDuration(data []byte) (time.Duration, error) {
	var byteRate uint32
	pos := 12
	for pos+8 <= len(data) {
		id := data[pos : pos+4]
		size := int(binary.LittleEndian.Uint32(data[pos+4 : pos+8]))
		body := pos + 8
		switch string(id) {
		case "fmt ":
			if size < 16 || body+16 > len(data) {
				return 0, ErrBadHeader
			}
			byteRate = binary.LittleEndian.Uint32(data[body+8 : body+12])
		case "data":
			if byteRate == 0 {
				return 0, ErrBadHeader
			}
			size = min(size, len(data)-body)
			secs := float64(size) / float64(byteRate)
			return time.Duration(secs * float64(time.Second)), nil
		}
		pos = body + size + size%2
	}
	return 0, ErrBadHeader
}

func mp3Duration(data []byte) (time.Duration, error) {
	start := 0
	if bytes.HasPrefix(data, id3Magic) {
		if len(data) < 10 {
			return 0, ErrBadHeader
		}
		// ID3v2 sizes are syncsafe: 7 bits per byte
		size := int(data[6])<<21 | int(data[7])<<14 |
			int(data[8])<<7 | int(data[9])
		start = 10 + size
	}
	for ; start+4 <= len(data); start++ {
		if isFrameSync(data[start:]) {
			break
		}
	}
	if start+4 > len(data) {
		return 0, ErrBadHeader
	}
	kbps := mp3Bitrates[data[start+2]>>4]
	if kbps == 0 {
		return 0, ErrBadHeader
	}
	bits := float64(len(data)-start) * 8
	secs := bits / float64(kbps*1000)
	return time.Duration(secs * float64(time.Second)), nil
}

func isFrameSync(data []byte) bool {
	return len(data) >= 4 && data[0] == 0xFF && data[1]&0xE0 == 0xE0
}
