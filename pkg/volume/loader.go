package volume

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/klauspost/compress/gzip"
)

// header holds the grid extents and element width parsed from the text
// preamble of an fld file.
type header struct {
	dimX, dimY, dimZ int
	elementSize      int
}

// LoadFile reads an AVS .fld volume file: a key=value text preamble ended
// by a form feed, two separator bytes, then the raw little-endian sample
// payload. Files with a .gz suffix are decompressed transparently.
func LoadFile(filename string) (*Volume, error) {
	startTime := time.Now()

	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open volume file: %w", err)
	}
	defer file.Close()

	var r io.Reader = file
	if strings.HasSuffix(filename, ".gz") {
		gz, err := gzip.NewReader(file)
		if err != nil {
			return nil, fmt.Errorf("failed to open gzip stream: %w", err)
		}
		defer gz.Close()
		r = gz
	}

	vol, err := Read(r)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", filename, err)
	}
	vol.FileName = filename

	fmt.Printf("Loaded %dx%dx%d volume from %s in %v\n",
		vol.DimX, vol.DimY, vol.DimZ, filename, time.Since(startTime))
	return vol, nil
}

// Read parses a volume from an fld stream. Header problems are reported as
// warnings and parsing continues best-effort; only payload truncation is a
// hard error. Missing dimension keys leave the grid empty, which the
// caller must validate before rendering.
func Read(r io.Reader) (*Volume, error) {
	br := bufio.NewReader(r)

	hdr, err := readHeader(br)
	if err != nil {
		return nil, err
	}

	// Header and payload are separated by two form feed bytes.
	if _, err := br.Discard(2); err != nil {
		return nil, fmt.Errorf("failed to skip header separator: %w", err)
	}

	voxelCount := hdr.dimX * hdr.dimY * hdr.dimZ
	buf := make([]byte, voxelCount*hdr.elementSize)
	if _, err := io.ReadFull(br, buf); err != nil {
		return nil, fmt.Errorf("failed to read volume payload: %w", err)
	}

	data := make([]uint16, voxelCount)
	switch hdr.elementSize {
	case 1: // bytes, zero-extended
		for i, b := range buf {
			data[i] = uint16(b)
		}
	case 2: // little-endian shorts
		for i := 0; i < len(buf); i += 2 {
			data[i/2] = uint16(buf[i]) | uint16(buf[i+1])<<8
		}
	}

	vol := NewVolume(data, hdr.dimX, hdr.dimY, hdr.dimZ)
	vol.elementSize = hdr.elementSize
	return vol, nil
}

// readHeader consumes key=value lines until the form feed that starts the
// data section. Comments after '#' and all whitespace are stripped.
func readHeader(br *bufio.Reader) (header, error) {
	hdr := header{elementSize: 2}

	for {
		peek, err := br.Peek(1)
		if err == io.EOF {
			break
		}
		if err != nil {
			return hdr, fmt.Errorf("failed to read volume header: %w", err)
		}
		if peek[0] == '\f' {
			break
		}

		line, err := br.ReadString('\n')
		if err != nil && err != io.EOF {
			return hdr, fmt.Errorf("failed to read volume header: %w", err)
		}
		eof := err == io.EOF

		parseHeaderLine(line, &hdr)

		if eof {
			break
		}
	}
	return hdr, nil
}

// parseHeaderLine handles a single preamble line, warning (not failing) on
// anything unsupported.
func parseHeaderLine(line string, hdr *header) {
	if i := strings.IndexByte(line, '#'); i >= 0 {
		line = line[:i]
	}
	line = strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, line)
	if line == "" {
		return
	}

	key, value, _ := strings.Cut(line, "=")
	switch key {
	case "ndim":
		if atoiWarn(key, value) != 3 {
			fmt.Fprintln(os.Stderr, "volume: only 3D files are supported")
		}
	case "dim1":
		hdr.dimX = atoiWarn(key, value)
	case "dim2":
		hdr.dimY = atoiWarn(key, value)
	case "dim3":
		hdr.dimZ = atoiWarn(key, value)
	case "nspace":
		// Ignored.
	case "veclen":
		if atoiWarn(key, value) != 1 {
			fmt.Fprintln(os.Stderr, "volume: only scalar data is supported")
		}
	case "data":
		switch value {
		case "byte":
			hdr.elementSize = 1
		case "short":
			hdr.elementSize = 2
		default:
			fmt.Fprintf(os.Stderr, "volume: data type %q not recognized\n", value)
		}
	case "field":
		if value != "uniform" {
			fmt.Fprintln(os.Stderr, "volume: only uniform fields are supported")
		}
	default:
		fmt.Fprintf(os.Stderr, "volume: unknown header keyword %q\n", key)
	}
}

func atoiWarn(key, value string) int {
	n, err := strconv.Atoi(value)
	if err != nil {
		fmt.Fprintf(os.Stderr, "volume: bad value %q for header key %q\n", value, key)
		return 0
	}
	return n
}
