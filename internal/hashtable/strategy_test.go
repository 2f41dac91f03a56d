package hashtable

import (
	"bytes"
	"errors"
	"testing"
)

var errCopyRefused = errors.New("copy refused")

func TestAddRollsBackOnKeyCopyFailure(t *testing.T) {
	failing := false
	table := New(0, 8, 8, &Strategies{
		CopyKey: func(src []byte, size int) ([]byte, error) {
			if failing {
				return nil, errCopyRefused
			}
			return CopyBytes(src, size)
		},
	})
	defer table.Close()

	mustAdd(t, table, "previous", "value")

	failing = true
	if _, err := table.Add([]byte("rejected"), []byte("value")); !errors.Is(err, errCopyRefused) {
		t.Fatalf("expected the copy error, got %v", err)
	}
	failing = false

	if table.Count() != 1 {
		t.Fatalf("count was not rolled back: %d", table.Count())
	}
	if _, ok := table.Get([]byte("rejected")); ok {
		t.Fatalf("a failed add left a partial entry behind")
	}
	if _, ok := table.Get([]byte("previous")); !ok {
		t.Fatalf("a failed add disturbed existing entries")
	}
}

func TestAddReleasesKeyOnValueCopyFailure(t *testing.T) {
	var destroyedKeys [][]byte

	table := New(0, 8, 8, &Strategies{
		CopyValue: func([]byte, int) ([]byte, error) {
			return nil, errCopyRefused
		},
		DestroyKey: func(buf []byte) {
			destroyedKeys = append(destroyedKeys, buf)
		},
	})
	defer table.Close()

	if _, err := table.Add([]byte("unlucky"), []byte("value")); !errors.Is(err, errCopyRefused) {
		t.Fatalf("expected the copy error, got %v", err)
	}

	if len(destroyedKeys) != 1 {
		t.Fatalf("expected the already-copied key to be destroyed exactly once, got %d calls", len(destroyedKeys))
	}
	if !bytes.Equal(destroyedKeys[0][:7], []byte("unlucky")) {
		t.Fatalf("an unexpected buffer was destroyed: %q", destroyedKeys[0])
	}
	if table.Count() != 0 {
		t.Fatalf("count was not rolled back: %d", table.Count())
	}
}

func TestDestroyStrategiesOnRemoveAndClose(t *testing.T) {
	keyDestroys := 0
	valueDestroys := 0

	table := New(0, 8, 8, &Strategies{
		DestroyKey:   func([]byte) { keyDestroys++ },
		DestroyValue: func([]byte) { valueDestroys++ },
	})

	for i := byte(0); i < 10; i++ {
		if _, err := table.Add([]byte{i + 1, 2, 3, 4, 5, 6, 7, 8}, []byte{i}); err != nil {
			t.Fatalf("Add failed: %v", err)
		}
	}

	table.Remove([]byte{1, 2, 3, 4, 5, 6, 7, 8})
	if keyDestroys != 1 || valueDestroys != 1 {
		t.Fatalf("Remove: expected one key and one value destroy, got %d/%d", keyDestroys, valueDestroys)
	}

	table.Close()
	if keyDestroys != 10 || valueDestroys != 10 {
		t.Fatalf("Close: expected every entry destroyed exactly once, got %d/%d", keyDestroys, valueDestroys)
	}
}

func TestResizeRelinksWithoutRecreatingEntries(t *testing.T) {
	copies := 0
	table := New(2, 8, 8, &Strategies{
		CopyKey: func(src []byte, size int) ([]byte, error) {
			copies++
			return CopyBytes(src, size)
		},
	})
	defer table.Close()

	const n = 100
	for i := byte(0); i < n; i++ {
		if _, err := table.Add([]byte{i + 1, 2, 3, 4, 5, 6, 7, 8}, []byte{i}); err != nil {
			t.Fatalf("Add failed: %v", err)
		}
	}

	// Growing from capacity 2 to hold 100 entries forced many resizes, yet
	// the key copy strategy must have run exactly once per insert.
	if copies != n {
		t.Fatalf("expected %d key copies, got %d (resize recreated entries)", n, copies)
	}
	if table.Capacity() <= 2 {
		t.Fatalf("table never resized")
	}
}

func TestCompareBytesPadding(t *testing.T) {
	// A short buffer compares equal to its zero-padded fixed-width copy.
	if CompareBytes([]byte("ab"), []byte("ab\x00\x00"), 4) != 0 {
		t.Errorf("short buffer did not compare equal to its padded copy")
	}
	if CompareBytes([]byte("ab"), []byte("abc"), 4) == 0 {
		t.Errorf("distinct buffers compared equal")
	}
	if CompareBytes([]byte("abX"), []byte("abY"), 2) != 0 {
		t.Errorf("comparison walked past the configured width")
	}
	if got := CompareBytes([]byte("a"), []byte("b"), 1); got >= 0 {
		t.Errorf("expected a negative ordering, got %d", got)
	}
}

func TestCopyBytesPadsToWidth(t *testing.T) {
	buf, err := CopyBytes([]byte("ab"), 4)
	if err != nil {
		t.Fatalf("CopyBytes returned error: %v", err)
	}
	if !bytes.Equal(buf, []byte("ab\x00\x00")) {
		t.Fatalf("expected a zero-padded 4-byte buffer, got %v", buf)
	}
}

func TestTextPresets(t *testing.T) {
	if CompareText([]byte("abc\x00junk"), []byte("abc"), 16) != 0 {
		t.Errorf("CompareText did not stop at the terminator")
	}
	if CompareText([]byte("abc"), []byte("abd"), 16) == 0 {
		t.Errorf("CompareText reported distinct strings equal")
	}

	buf, err := CopyText([]byte("abc\x00junk"), 16)
	if err != nil {
		t.Fatalf("CopyText returned error: %v", err)
	}
	if string(buf) != "abc" {
		t.Fatalf("CopyText copied past the terminator: %q", buf)
	}

	if got := FormatText([]byte("abc\x00\x00")); got != `"abc"` {
		t.Errorf("FormatText = %s", got)
	}
}
