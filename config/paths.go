package config

import (
	"bufio"
	"encoding/xml"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/edaniels/golog"
	"github.com/pkg/errors"
	"go.viam.com/utils"
)

// Paths points at the asset directories and run bookkeeping files of a
// synthesis run.
type Paths struct {
	ModelPath          string
	MocapPath          string
	MocapListing       string
	StatusRecoveryFile string
	OutputPath         string
}

type pathAttr struct {
	Path string `xml:"path,attr"`
}

type pathsDoc struct {
	Inputs struct {
		HumanModels    pathAttr `xml:"humanmodelspath"`
		MocapDataset   pathAttr `xml:"mocapdatasetpath"`
		MocapSelected  pathAttr `xml:"mocapselectedlist"`
		StatusRecovery pathAttr `xml:"statusRecoveryFile"`
	} `xml:"inputs"`
	Outputs struct {
		Destination pathAttr `xml:"destinationpath"`
	} `xml:"outputs"`
}

// ReadPaths loads the main path configuration document.
func ReadPaths(path string, logger golog.Logger) (*Paths, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot read path configuration %q", path)
	}
	var doc pathsDoc
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrapf(err, "cannot parse path configuration %q", path)
	}
	paths := &Paths{
		ModelPath:          doc.Inputs.HumanModels.Path,
		MocapPath:          doc.Inputs.MocapDataset.Path,
		MocapListing:       doc.Inputs.MocapSelected.Path,
		StatusRecoveryFile: doc.Inputs.StatusRecovery.Path,
		OutputPath:         doc.Outputs.Destination.Path,
	}
	if paths.ModelPath == "" || paths.MocapPath == "" || paths.OutputPath == "" {
		return nil, errors.Errorf("path configuration %q is missing model, mocap, or output paths", path)
	}
	logger.Infow("path configuration loaded",
		"models", paths.ModelPath,
		"mocaps", paths.MocapPath,
		"output", paths.OutputPath)
	return paths, nil
}

// ModelFiles lists the character assets (.mhx2) under the model directory.
func (p *Paths) ModelFiles() ([]string, error) {
	return listFiles(p.ModelPath, ".mhx2")
}

// MocapFiles lists the motion sequences to use: the pre-selected listing
// file when one is configured, otherwise every .bvh under the mocap
// directory.
func (p *Paths) MocapFiles() ([]string, error) {
	if p.MocapListing != "" {
		return ReadFileListing(p.MocapListing)
	}
	return listFiles(p.MocapPath, ".bvh")
}

func listFiles(dir, extension string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot list %q", dir)
	}
	var files []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), extension) {
			continue
		}
		files = append(files, filepath.Join(dir, entry.Name()))
	}
	sort.Strings(files)
	return files, nil
}

// ReadFileListing reads a one-path-per-line listing file, skipping blanks.
func ReadFileListing(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot read file listing %q", path)
	}
	defer utils.UncheckedErrorFunc(file.Close)

	var files []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		files = append(files, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrapf(err, "cannot read file listing %q", path)
	}
	return files, nil
}
