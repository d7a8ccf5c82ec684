package tzif

import (
	"bytes"
	"errors"
	"testing"

	"github.com/nvigier/tzengine/tzerr"
)

func validV1File() File {
	return File{
		Version: V1,
		V1Header: Header{
			Version: V1,
			Typecnt: 1,
			Charcnt: 4,
		},
		V1Data: V1DataBlock{
			LocalTimeTypeRecord: []LocalTimeTypeRecord{{Utoff: 0}},
			TimeZoneDesignation: []byte("UTC\x00"),
		},
	}
}

func TestValidateRejectsZeroTypecnt(t *testing.T) {
	f := validV1File()
	f.V1Header.Typecnt = 0
	f.V1Data.LocalTimeTypeRecord = nil
	if err := Validate(f); err == nil {
		t.Fatalf("expected error for typecnt=0")
	}
}

func TestValidateRejectsMissingDesignationTerminator(t *testing.T) {
	f := validV1File()
	f.V1Data.TimeZoneDesignation = []byte("UTC")
	if err := Validate(f); err == nil {
		t.Fatalf("expected error for missing NUL terminator")
	}
}

func TestValidateRejectsTimecntTypeMismatch(t *testing.T) {
	f := validV1File()
	f.V1Header.Timecnt = 2
	f.V1Data.TransitionTimes = []int32{1, 2}
	f.V1Data.TransitionTypes = []uint8{0}
	if err := Validate(f); err == nil {
		t.Fatalf("expected error for mismatched transition times/types")
	}
}

func TestDecodeFileWrapsTzerrInvalidFile(t *testing.T) {
	_, err := DecodeFile(bytes.NewReader([]byte("not a tzif file")))
	if !errors.Is(err, tzerr.InvalidFile) {
		t.Fatalf("DecodeFile error = %v, want wrapping tzerr.InvalidFile", err)
	}
}

func TestDecodeFileRejectsInconsistentHeaderCounts(t *testing.T) {
	f := validV1File()
	var buf bytes.Buffer
	if err := f.Encode(&buf); err != nil {
		t.Fatalf("encode: %v", err)
	}
	raw := buf.Bytes()
	// Byte 39 is the low byte of typecnt (big-endian uint32 ending at
	// offset 40 in the 44-byte v1 header); corrupt it so the declared
	// typecnt no longer matches the one local time type record actually
	// written.
	raw[39] = 2
	if _, err := DecodeFile(bytes.NewReader(raw)); !errors.Is(err, tzerr.InvalidFile) {
		t.Fatalf("DecodeFile with corrupted typecnt: err = %v, want tzerr.InvalidFile", err)
	}
}
