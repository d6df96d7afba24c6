package nvs

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"hash/crc32"
	"sort"
)

// Partition image layout (little-endian, as on the ESP32):
//   - Magic: 4 bytes "NVS1" (Offset 0)
//   - Payload length: uint32 (Offset 4)
//   - Payload CRC32 (IEEE): uint32 (Offset 8)
//   - Payload (Offset 12): repeated entries of
//     u8 namespace length | namespace | u8 key length | key | u32 value length | value
//
// An image whose header is all zero is a freshly erased partition.
const (
	offsetMagic  = 0
	offsetLength = 4
	offsetCRC    = 8
	headerSize   = 12

	// DefaultPartitionSize matches the ESP32 default "nvs" partition (0x5000).
	DefaultPartitionSize = 0x5000
)

var magic = [4]byte{'N', 'V', 'S', '1'}

// decodeImage parses a partition image into a table.
func decodeImage(img []byte) (table, error) {
	t := make(table)
	if len(img) < headerSize {
		return nil, fmt.Errorf("%w: image shorter than header", ErrCorrupt)
	}
	if isErased(img[:headerSize]) {
		return t, nil
	}
	if !bytes.Equal(img[offsetMagic:offsetMagic+4], magic[:]) {
		return nil, fmt.Errorf("%w: bad magic %x", ErrCorrupt, img[offsetMagic:offsetMagic+4])
	}

	length := int(binary.LittleEndian.Uint32(img[offsetLength:]))
	if length > len(img)-headerSize {
		return nil, fmt.Errorf("%w: payload length %d exceeds partition", ErrCorrupt, length)
	}
	payload := img[headerSize : headerSize+length]
	if sum := crc32.ChecksumIEEE(payload); sum != binary.LittleEndian.Uint32(img[offsetCRC:]) {
		return nil, fmt.Errorf("%w: checksum mismatch", ErrCorrupt)
	}

	for len(payload) > 0 {
		ns, rest, err := readShort(payload)
		if err != nil {
			return nil, err
		}
		key, rest, err := readShort(rest)
		if err != nil {
			return nil, err
		}
		if len(rest) < 4 {
			return nil, fmt.Errorf("%w: truncated value length", ErrCorrupt)
		}
		n := int(binary.LittleEndian.Uint32(rest))
		rest = rest[4:]
		if n > len(rest) {
			return nil, fmt.Errorf("%w: truncated value", ErrCorrupt)
		}
		t.put(ns, key, string(rest[:n]))
		payload = rest[n:]
	}
	return t, nil
}

// encodeImage renders t as an image of exactly size bytes.
func encodeImage(t table, size int) ([]byte, error) {
	var payload bytes.Buffer

	namespaces := make([]string, 0, len(t))
	for ns := range t {
		namespaces = append(namespaces, ns)
	}
	sort.Strings(namespaces)

	for _, ns := range namespaces {
		keys := make([]string, 0, len(t[ns]))
		for k := range t[ns] {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		for _, k := range keys {
			v := t[ns][k]
			payload.WriteByte(byte(len(ns)))
			payload.WriteString(ns)
			payload.WriteByte(byte(len(k)))
			payload.WriteString(k)
			payload.Write(binary.LittleEndian.AppendUint32(nil, uint32(len(v))))
			payload.WriteString(v)
		}
	}

	if headerSize+payload.Len() > size {
		return nil, fmt.Errorf("%w: need %d bytes, partition has %d", ErrNoSpace, headerSize+payload.Len(), size)
	}

	img := make([]byte, size)
	copy(img[offsetMagic:], magic[:])
	binary.LittleEndian.PutUint32(img[offsetLength:], uint32(payload.Len()))
	binary.LittleEndian.PutUint32(img[offsetCRC:], crc32.ChecksumIEEE(payload.Bytes()))
	copy(img[headerSize:], payload.Bytes())
	return img, nil
}

func readShort(b []byte) (string, []byte, error) {
	if len(b) < 1 {
		return "", nil, fmt.Errorf("%w: truncated name", ErrCorrupt)
	}
	n := int(b[0])
	if n == 0 || n > MaxNameLen || len(b) < 1+n {
		return "", nil, fmt.Errorf("%w: bad name length %d", ErrCorrupt, n)
	}
	return string(b[1 : 1+n]), b[1+n:], nil
}

func isErased(b []byte) bool {
	for _, c := range b {
		if c != 0 {
			return false
		}
	}
	return true
}
