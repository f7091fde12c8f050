// Package main is a command that dry-runs a capture setup: it loads the run
// configuration, samples camera placements around the recording zone, and
// writes one camera-only annotation document per placement for inspection.
// The host 3D engine side (assets, retargeting, rendering) is driven
// elsewhere.
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/edaniels/golog"
	"github.com/pkg/errors"
	"go.viam.com/utils"
	"golang.org/x/exp/rand"
	"golang.org/x/sync/errgroup"

	"github.com/depthsynth/depthsynth/annotation"
	"github.com/depthsynth/depthsynth/camera"
	"github.com/depthsynth/depthsynth/capture"
	"github.com/depthsynth/depthsynth/config"
	"github.com/depthsynth/depthsynth/placement"
)

func main() {
	utils.ContextualMain(mainWithArgs, logger)
}

// Nominal standing-adult landmark heights used to aim cameras before any
// character is loaded.
const (
	defaultHipHeight  = 0.95
	defaultNeckHeight = 1.47
)

var logger = golog.NewDevelopmentLogger("depthsynth")

// Arguments for the command.
type Arguments struct {
	SceneParams string `flag:"0,required,usage=path to the scene parameter file"`
	OutputPath  string `flag:"out,usage=directory for the generated annotation documents"`
	Cameras     int    `flag:"cameras,default=3,usage=camera poses to sample per configured sensor"`
	Seed        int    `flag:"seed,default=0,usage=random seed (0 seeds from entropy)"`
}

func mainWithArgs(ctx context.Context, args []string, logger golog.Logger) error {
	var argsParsed Arguments
	if err := utils.ParseFlags(args, &argsParsed); err != nil {
		return err
	}
	if argsParsed.OutputPath == "" {
		argsParsed.OutputPath = "."
	}
	seed := uint64(argsParsed.Seed)
	if seed == 0 {
		seed = rand.Uint64()
	}
	return dryRun(ctx, argsParsed, seed, logger)
}

func dryRun(ctx context.Context, args Arguments, seed uint64, logger golog.Logger) error {
	sceneParams, err := config.ReadSceneParams(args.SceneParams, logger)
	if err != nil {
		return err
	}
	paths, err := config.ReadPaths(sceneParams.MainConfigFile, logger)
	if err != nil {
		return err
	}
	recording, err := config.ReadRecording(sceneParams.RecManagerConfigFile, logger)
	if err != nil {
		return err
	}

	// the pair shuffle gets its own stream so it stays independent of the
	// pose sampling
	pairs, err := workQueue(paths, rand.NewSource(seed+1))
	if err != nil {
		logger.Warnw("no character/mocap pairs available, continuing without file references", "error", err)
	} else {
		logger.Infow("work queue built", "pairs", len(pairs))
	}

	sampler, err := placement.NewSampler(placement.NewZone(recording.ReferencePoint), rand.NewSource(seed))
	if err != nil {
		return err
	}

	if err := os.MkdirAll(args.OutputPath, 0o750); err != nil {
		return errors.Wrapf(err, "cannot create output directory %q", args.OutputPath)
	}

	group, _ := errgroup.WithContext(ctx)
	for _, intrinsics := range recording.Cameras {
		poses, err := sampler.Poses(defaultHipHeight, defaultNeckHeight, args.Cameras)
		if err != nil {
			return err
		}
		for i, pose := range poses {
			// shadow copies: go 1.21 loop variables are per-loop, not per-iteration
			intrinsics, pose, i := intrinsics, pose, i
			group.Go(func() error {
				return writePoseDocument(logger, args.OutputPath, intrinsics, pose, i, pairs)
			})
		}
	}
	return group.Wait()
}

// workQueue builds or recovers the character/mocap processing order.
func workQueue(paths *config.Paths, src rand.Source) ([]capture.Pair, error) {
	if paths.StatusRecoveryFile != "" {
		if _, err := os.Stat(paths.StatusRecoveryFile); err == nil {
			return capture.LoadRemaining(paths.StatusRecoveryFile)
		}
	}
	models, err := paths.ModelFiles()
	if err != nil {
		return nil, err
	}
	mocaps, err := paths.MocapFiles()
	if err != nil {
		return nil, err
	}
	return capture.Pairs(models, mocaps, src), nil
}

func writePoseDocument(
	logger golog.Logger,
	outputPath string,
	intrinsics camera.Intrinsics,
	pose placement.Pose,
	index int,
	pairs []capture.Pair,
) error {
	model, err := camera.NewModel(intrinsics, pose.Position, pose.LookAt)
	if err != nil {
		return err
	}
	logger.Infow("camera placed",
		"name", intrinsics.Name,
		"pose", index,
		"position", pose.Position,
		"look_at", pose.LookAt)

	session := annotation.NewSession()
	for _, pair := range pairs {
		session.AddFileReference(pair.ModelFile, pair.MocapFile)
	}
	if err := session.SetCamera(annotation.NewCameraRecord(model)); err != nil {
		return err
	}

	dest := filepath.Join(outputPath, fmt.Sprintf("annotations_%s_%d.xml", intrinsics.Name, index))
	if err := annotation.WriteFile(session, dest); err != nil {
		return err
	}
	logger.Infow("annotation document written", "path", dest)
	return nil
}
