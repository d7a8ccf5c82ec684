package tzif

import (
	"errors"
	"fmt"
	"io"

	"github.com/nvigier/tzengine/tzerr"
)

type File struct {
	Version Version

	V1Missing bool
	V1Header  Header
	V1Data    V1DataBlock

	V2Header Header
	V2Data   V2DataBlock
	V2Footer Footer
}

// Encode writes the given TZif data to the given writer.
// If f.Version is V1, V2Header, V2Data and V2Footer are not written.
func (f File) Encode(w io.Writer) error {
	if !f.V1Missing {
		err := f.V1Header.Write(w)
		if err != nil {
			return fmt.Errorf("write v1 header: %w", err)
		}
		err = f.V1Data.Write(w)
		if err != nil {
			return fmt.Errorf("write v1 data: %w", err)
		}
	}

	if f.V2Header.Version != f.Version {
		return fmt.Errorf("version mismatch: file is %v and v2+ header is %v", f.Version, f.V2Header.Version)
	}

	if f.Version == V2 || f.Version == V3 {
		if err := f.V2Header.Write(w); err != nil {
			return fmt.Errorf("write v2 header: %w", err)
		}
		if err := f.V2Data.Write(w); err != nil {
			return fmt.Errorf("write v2 data: %w", err)
		}
		if err := f.V2Footer.Write(w); err != nil {
			return fmt.Errorf("write v2 footer: %w", err)
		}
	}

	return nil
}

// DecodeFile reads the given TZif data from the given reader.
// The returned File's Version is the highest version found.
// If the version is V1, V2Header, V2Data and V2Footer are empty values.
// If the version is V2, V3 or V4, V1Header and V1Data hold the v1 block when
// the stream starts with a header of version V1; otherwise V1Missing is set.
func DecodeFile(r io.Reader) (File, error) {
	var f File
	h, err := ReadHeader(r)
	if err != nil {
		return f, fmt.Errorf("%w: read header: %v", tzerr.InvalidFile, err)
	}

	// Strictly speaking, each TZif file needs a V1 header, but we are relaxed in what we accept.
	f.V1Missing = h.Version != V1
	if !f.V1Missing {
		f.Version = V1
		f.V1Header = h
		f.V1Data, err = ReadV1DataBlock(r, h)
		if err != nil {
			return f, fmt.Errorf("%w: read v1 data block: %v", tzerr.InvalidFile, err)
		}

		// Look for V2+ header.
		h, err = ReadHeader(r)
		if errors.Is(err, io.EOF) {
			// No V2+ data, we are done.
			if err := Validate(f); err != nil {
				return f, fmt.Errorf("%w: %v", tzerr.InvalidFile, err)
			}
			return f, nil
		}
		if err != nil {
			return f, fmt.Errorf("%w: read v2 header: %v", tzerr.InvalidFile, err)
		}
	}

	if h.Version != V2 && h.Version != V3 && h.Version != V4 {
		return f, fmt.Errorf("%w: unsupported version: %v", tzerr.InvalidFile, h.Version)
	}
	f.V2Header = h
	f.Version = h.Version // set max version

	f.V2Data, err = ReadV2DataBlock(r, h)
	if err != nil {
		return f, fmt.Errorf("%w: read v2 data block: %v", tzerr.InvalidFile, err)
	}
	f.V2Footer, err = ReadFooter(r)
	if err != nil {
		return f, fmt.Errorf("%w: read footer: %v", tzerr.InvalidFile, err)
	}

	if err := Validate(f); err != nil {
		return f, fmt.Errorf("%w: %v", tzerr.InvalidFile, err)
	}

	return f, nil
}
