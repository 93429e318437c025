package id

import (
	cryptoRand "crypto/rand"
	"encoding/binary"
	"io"
	"math/rand"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

const alphanum = "abcdefghijklmnopqrstuvwxyz0123456789"

var (
	mu   sync.Mutex
	rng  *rand.Rand
	mono io.Reader
)

func init() {
	// Seed a PRNG from crypto/rand so ULID entropy is unpredictable.
	// ulid.Monotonic keeps IDs generated within the same millisecond
	// lexicographically increasing.
	var seed int64
	_ = binary.Read(cryptoRand.Reader, binary.LittleEndian, &seed)
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	rng = rand.New(rand.NewSource(seed))
	mono = ulid.Monotonic(rng, 0)
}

// New returns a ULID string (time-sortable identifier).
//
// ULIDs sort by generation time, which makes them handy for cycle ids in the
// event log and for SQLite indexes.
func New() string {
	mu.Lock()
	defer mu.Unlock()

	id, err := ulid.New(ulid.Timestamp(time.Now().UTC()), mono)
	if err != nil {
		// Errors are extremely unlikely unless time goes backwards or entropy fails.
		panic(err)
	}
	return id.String()
}

// Padding returns n random lowercase alphanumeric characters, used to pad
// fixed-width tokens such as correlation ids.
func Padding(n int) string {
	if n <= 0 {
		return ""
	}

	mu.Lock()
	defer mu.Unlock()

	b := make([]byte, n)
	for i := range b {
		b[i] = alphanum[rng.Intn(len(alphanum))]
	}
	return string(b)
}
