package main

import (
	"encoding/binary"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/skybi/table-server/internal/hashtable"
)

// Demonstrates the table engine against its two key families: NUL-padded text
// keys with the text presets and binary keys (UUIDs, machine words) with the
// xxHash and identity presets.

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{
		Out: os.Stderr,
	})

	textDemo()
	binaryDemo()
	identityDemo()
}

func textDemo() {
	log.Info().Msg("running the text key demo...")

	table := hashtable.New(0, 20, 32, &hashtable.Strategies{
		Compare:   hashtable.CompareText,
		CopyKey:   hashtable.CopyText,
		CopyValue: hashtable.CopyText,
	})
	defer table.Close()

	people := map[string]string{
		"Ruben": "age: 19, rating: 5/5",
		"Thais": "age: 17, rating: 5/5",
		"Iseut": "age: 15, rating: 5/5",
		"Jules": "age: 31, rating: 2/5",
		"Jeane": "age: 46, rating: 1/5",
	}
	for name, description := range people {
		if _, err := table.Add([]byte(name), []byte(description)); err != nil {
			log.Fatal().Err(err).Str("key", name).Msg("could not add an entry")
		}
	}
	table.Dump(os.Stdout, hashtable.FormatText, hashtable.FormatText)

	table.Remove([]byte("Jeane"))
	table.Remove([]byte("Jules"))
	table.Dump(os.Stdout, hashtable.FormatText, hashtable.FormatText)

	for _, name := range []string{"Ruben", "Thais", "Iseut", "Jules", "Jeane"} {
		if value, ok := table.Get([]byte(name)); ok {
			log.Info().Str("key", name).Str("value", string(value)).Msg("found")
		} else {
			log.Info().Str("key", name).Msg("not found")
		}
	}
}

func binaryDemo() {
	log.Info().Msg("running the UUID key demo...")

	// UUIDs may contain NUL bytes, so the NUL-stopping text hashes are out;
	// xxHash covers the full 16-byte width.
	table := hashtable.New(0, 16, 8, &hashtable.Strategies{
		Hash: hashtable.HashXX,
	})
	defer table.Close()

	ids := make([]uuid.UUID, 8)
	for i := range ids {
		ids[i] = uuid.New()

		value := make([]byte, 8)
		binary.LittleEndian.PutUint64(value, uint64(i))
		if _, err := table.Add(ids[i][:], value); err != nil {
			log.Fatal().Err(err).Msg("could not add an entry")
		}
	}

	table.Dump(os.Stdout, formatUUID, formatWord)

	for i, id := range ids {
		value, ok := table.Get(id[:])
		if !ok || binary.LittleEndian.Uint64(value) != uint64(i) {
			log.Fatal().Str("key", id.String()).Msg("stored sequence number went missing")
		}
	}
	log.Info().Int("count", table.Count()).Int("capacity", table.Capacity()).Msg("all UUID keys verified")
}

func identityDemo() {
	log.Info().Msg("running the identity hash demo...")

	// Word-wide keys that are already well distributed skip hashing entirely.
	table := hashtable.New(0, 8, 8, &hashtable.Strategies{
		Hash: hashtable.HashIdentity,
	})
	defer table.Close()

	for i := uint64(1); i <= 16; i++ {
		key := make([]byte, 8)
		binary.LittleEndian.PutUint64(key, i*0x9e3779b97f4a7c15)

		value := make([]byte, 8)
		binary.LittleEndian.PutUint64(value, i)

		if _, err := table.Add(key, value); err != nil {
			log.Fatal().Err(err).Msg("could not add an entry")
		}
	}

	table.Dump(os.Stdout, formatWord, formatWord)
	log.Info().Int("count", table.Count()).Int("capacity", table.Capacity()).Msg("identity table populated")
}

func formatUUID(buf []byte) string {
	id, err := uuid.FromBytes(buf)
	if err != nil {
		return hashtable.FormatRaw(buf)
	}
	return id.String()
}

func formatWord(buf []byte) string {
	return fmt.Sprintf("%d", binary.LittleEndian.Uint64(buf))
}
