package capture

import (
	"os"
	"path/filepath"
	"testing"

	"go.viam.com/test"
	"golang.org/x/exp/rand"
)

func TestPairs(t *testing.T) {
	models := []string{"a.fbx", "b.fbx", "c.fbx"}
	mocaps := []string{"walk.bvh", "run.bvh"}

	pairs := Pairs(models, mocaps, rand.NewSource(1))
	test.That(t, pairs, test.ShouldHaveLength, 6)

	seen := map[Pair]int{}
	for _, pair := range pairs {
		seen[pair]++
	}
	test.That(t, len(seen), test.ShouldEqual, 6)
	for pair, n := range seen {
		test.That(t, n, test.ShouldEqual, 1)
		test.That(t, pair.ModelFile, test.ShouldBeIn, "a.fbx", "b.fbx", "c.fbx")
		test.That(t, pair.MocapFile, test.ShouldBeIn, "walk.bvh", "run.bvh")
	}

	test.That(t, Pairs(nil, mocaps, rand.NewSource(1)), test.ShouldBeEmpty)
}

func TestStatusRecoveryRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "StatusRecovery.txt")
	pairs := []Pair{
		{ModelFile: "a.fbx", MocapFile: "walk.bvh"},
		{ModelFile: "b.fbx", MocapFile: "run.bvh"},
		{ModelFile: "c.fbx", MocapFile: "walk.bvh"},
	}
	test.That(t, SaveRemaining(path, pairs), test.ShouldBeNil)

	// the first pair was in flight when the run stopped; resumption skips it
	loaded, err := LoadRemaining(path)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, loaded, test.ShouldResemble, pairs[1:])
}

func TestLoadRemainingEdgeCases(t *testing.T) {
	_, err := LoadRemaining(filepath.Join(t.TempDir(), "missing.txt"))
	test.That(t, err, test.ShouldNotBeNil)

	empty := filepath.Join(t.TempDir(), "empty.txt")
	test.That(t, os.WriteFile(empty, nil, 0o600), test.ShouldBeNil)
	loaded, err := LoadRemaining(empty)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, loaded, test.ShouldBeEmpty)

	malformed := filepath.Join(t.TempDir(), "bad.txt")
	test.That(t, os.WriteFile(malformed, []byte("just-one-field\n"), 0o600), test.ShouldBeNil)
	_, err = LoadRemaining(malformed)
	test.That(t, err, test.ShouldNotBeNil)
}

func TestFrameRangeIntersect(t *testing.T) {
	r, ok := Intersect(
		FrameRange{First: 1, Last: 300},
		FrameRange{First: 12, Last: 250},
		FrameRange{First: 5, Last: 400},
	)
	test.That(t, ok, test.ShouldBeTrue)
	test.That(t, r.First, test.ShouldEqual, 12)
	test.That(t, r.Last, test.ShouldEqual, 250)
	test.That(t, r.Count(), test.ShouldEqual, 239)

	// the window never starts before frame 1
	r, ok = Intersect(FrameRange{First: -10, Last: 100})
	test.That(t, ok, test.ShouldBeTrue)
	test.That(t, r.First, test.ShouldEqual, 1)

	_, ok = Intersect(FrameRange{First: 100, Last: 200}, FrameRange{First: 300, Last: 400})
	test.That(t, ok, test.ShouldBeFalse)

	_, ok = Intersect()
	test.That(t, ok, test.ShouldBeFalse)
}
