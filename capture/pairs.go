// Package capture schedules which character/motion pairings a synthesis run
// works through and recovers that schedule after an interrupted run.
package capture

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/pkg/errors"
	"go.viam.com/utils"
	"golang.org/x/exp/rand"
)

// Pair is one unit of work: a 3D character asset animated by one motion
// capture sequence.
type Pair struct {
	ModelFile string
	MocapFile string
}

// Pairs builds the full cross product of character and motion files and
// shuffles it so runs do not depend on directory listing order. A nil source
// seeds from the shared global one.
func Pairs(modelFiles, mocapFiles []string, src rand.Source) []Pair {
	pairs := make([]Pair, 0, len(modelFiles)*len(mocapFiles))
	for _, model := range modelFiles {
		for _, mocap := range mocapFiles {
			pairs = append(pairs, Pair{ModelFile: model, MocapFile: mocap})
		}
	}
	if src == nil {
		src = rand.NewSource(rand.Uint64())
	}
	rand.New(src).Shuffle(len(pairs), func(i, j int) {
		pairs[i], pairs[j] = pairs[j], pairs[i]
	})
	return pairs
}

// SaveRemaining logs the pairs still to be processed, one per line, so an
// interrupted run can pick up where it left off.
func SaveRemaining(path string, pairs []Pair) (err error) {
	file, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "cannot write status recovery file %q", path)
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil && err == nil {
			err = errors.Wrapf(closeErr, "cannot write status recovery file %q", path)
		}
	}()

	writer := bufio.NewWriter(file)
	for _, pair := range pairs {
		if _, err := fmt.Fprintf(writer, "%s %s\n", pair.ModelFile, pair.MocapFile); err != nil {
			return errors.Wrapf(err, "cannot write status recovery file %q", path)
		}
	}
	return writer.Flush()
}

// LoadRemaining reads a status recovery file and returns the pairs left to
// process. The first logged pair was mid-flight when the previous run
// stopped, so it is skipped.
func LoadRemaining(path string) ([]Pair, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot read status recovery file %q", path)
	}
	defer utils.UncheckedErrorFunc(file.Close)

	var pairs []Pair
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) != 2 {
			return nil, errors.Errorf("malformed status recovery line %q in %q", line, path)
		}
		pairs = append(pairs, Pair{ModelFile: fields[0], MocapFile: fields[1]})
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrapf(err, "cannot read status recovery file %q", path)
	}
	if len(pairs) == 0 {
		return nil, nil
	}
	return pairs[1:], nil
}
