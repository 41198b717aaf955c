// Package row implements the fixed on-disk layout of a stored record:
// (id uint32, username, email), serialized with no padding between
// fields; each text field is zero-filled on the right to its fixed width.
package row

import (
	"encoding/binary"
	"errors"
	"strings"
)

const (
	UsernameSize = 32
	EmailSize    = 255

	idOffset       = 0
	idSize         = 4
	usernameOffset = idOffset + idSize
	emailOffset    = usernameOffset + UsernameSize

	// Size is the on-disk width of one serialized row.
	Size = idOffset + idSize + UsernameSize + EmailSize
)

// ErrStringTooLong is returned by Validate when a text field exceeds
// its fixed on-disk width.
var ErrStringTooLong = errors.New("string is too long")

// Row is the in-memory representation of one record.
type Row struct {
	ID       uint32
	Username string
	Email    string
}

// Validate checks that Username and Email fit in their fixed-width
// fields. The codec itself never truncates: callers must reject
// oversized input before it reaches Serialize.
func (r Row) Validate() error {
	if len(r.Username) > UsernameSize || len(r.Email) > EmailSize {
		return ErrStringTooLong
	}
	return nil
}

// Serialize writes r into dst, which must be exactly Size bytes: id
// first, then username and email, each zero-padded on the right.
func Serialize(r Row, dst []byte) {
	_ = dst[Size-1] // bounds check hint, mirrors fixed-layout accessors elsewhere
	binary.LittleEndian.PutUint32(dst[idOffset:idOffset+idSize], r.ID)

	clear(dst[usernameOffset : usernameOffset+UsernameSize])
	copy(dst[usernameOffset:usernameOffset+UsernameSize], r.Username)

	clear(dst[emailOffset:emailOffset+EmailSize])
	copy(dst[emailOffset:emailOffset+EmailSize], r.Email)
}

// Deserialize is the inverse of Serialize: it reads a Size-byte region
// and trims the zero padding back off the text fields.
func Deserialize(src []byte) Row {
	_ = src[Size-1]
	return Row{
		ID:       binary.LittleEndian.Uint32(src[idOffset : idOffset+idSize]),
		Username: trimPadding(src[usernameOffset : usernameOffset+UsernameSize]),
		Email:    trimPadding(src[emailOffset : emailOffset+EmailSize]),
	}
}

func trimPadding(b []byte) string {
	return strings.TrimRight(string(b), "\x00")
}
