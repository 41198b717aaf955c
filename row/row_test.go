package row

import "testing"

func TestSerializeDeserializeRoundTrip(t *testing.T) {
	want := Row{ID: 7, Username: "alice", Email: "alice@example.com"}
	buf := make([]byte, Size)
	Serialize(want, buf)
	got := Deserialize(buf)
	if got != want {
		t.Fatalf("round trip mismatch: got %+v, want %+v", got, want)
	}
}

func TestSerializeZeroPadsUnusedBytes(t *testing.T) {
	buf := make([]byte, Size)
	for i := range buf {
		buf[i] = 0xFF
	}
	Serialize(Row{ID: 1, Username: "a", Email: "b"}, buf)

	for i := usernameOffset + 1; i < usernameOffset+UsernameSize; i++ {
		if buf[i] != 0 {
			t.Fatalf("username padding byte %d not zeroed: %x", i, buf[i])
		}
	}
	for i := emailOffset + 1; i < emailOffset+EmailSize; i++ {
		if buf[i] != 0 {
			t.Fatalf("email padding byte %d not zeroed: %x", i, buf[i])
		}
	}
}

func TestValidateBoundary(t *testing.T) {
	exact := Row{
		Username: string(make([]byte, UsernameSize)),
		Email:    string(make([]byte, EmailSize)),
	}
	if err := exact.Validate(); err != nil {
		t.Errorf("exact-length fields should validate, got %v", err)
	}

	tooLongUsername := Row{Username: string(make([]byte, UsernameSize+1))}
	if err := tooLongUsername.Validate(); err != ErrStringTooLong {
		t.Errorf("expected ErrStringTooLong for oversized username, got %v", err)
	}

	tooLongEmail := Row{Email: string(make([]byte, EmailSize+1))}
	if err := tooLongEmail.Validate(); err != ErrStringTooLong {
		t.Errorf("expected ErrStringTooLong for oversized email, got %v", err)
	}
}

func TestRowSizeConstant(t *testing.T) {
	if Size != 4+32+255 {
		t.Fatalf("Size = %d, want %d", Size, 4+32+255)
	}
}
