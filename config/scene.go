// Package config loads the synthesis run configuration: the scene-parameter
// file plus the path and recording-manager documents it points at.
package config

import (
	"os"

	"github.com/edaniels/golog"
	"github.com/pkg/errors"
	"github.com/yosuke-furukawa/json5/encoding/json5"
)

// SceneParams is the top-level run configuration. It names the two XML
// documents to load and sets the knobs of a capture run.
type SceneParams struct {
	MainConfigFile       string  `json:"main_config_file"`
	RecManagerConfigFile string  `json:"rec_manager_config_file"`
	MinDistanceToCamera  float64 `json:"min_distance_to_camera"`
	NumberOfModels       int     `json:"number_of_models"`
	FixedModelsDistance  bool    `json:"fixed_models_distance"`
	DistanceBtwModels    float64 `json:"distance_btw_models"`
	UseSameMocap         bool    `json:"use_same_mocap"`
	ConvertToUint16      bool    `json:"convert_to_uint16"`
}

// CheckValid checks if the fields for SceneParams have valid inputs.
func (params *SceneParams) CheckValid() error {
	if params.MainConfigFile == "" || params.RecManagerConfigFile == "" {
		return errors.New("scene parameters must name both configuration files")
	}
	if params.NumberOfModels < 1 || params.NumberOfModels > 2 {
		return errors.Errorf("number_of_models must be 1 or 2, got %d", params.NumberOfModels)
	}
	if params.MinDistanceToCamera < 0 {
		return errors.Errorf("negative min_distance_to_camera %v", params.MinDistanceToCamera)
	}
	if params.NumberOfModels == 2 && params.DistanceBtwModels <= 0 {
		return errors.Errorf("distance_btw_models must be positive with two models, got %v", params.DistanceBtwModels)
	}
	return nil
}

// ReadSceneParams loads and validates a scene-parameter file. The file is
// JSON5, so hand-maintained configs may carry comments.
func ReadSceneParams(path string, logger golog.Logger) (*SceneParams, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot read scene parameters %q", path)
	}
	var params SceneParams
	if err := json5.Unmarshal(data, &params); err != nil {
		return nil, errors.Wrapf(err, "cannot parse scene parameters %q", path)
	}
	if err := params.CheckValid(); err != nil {
		return nil, errors.Wrapf(err, "invalid scene parameters %q", path)
	}
	logger.Infow("scene parameters loaded",
		"main_config", params.MainConfigFile,
		"rec_manager_config", params.RecManagerConfigFile,
		"models", params.NumberOfModels)
	return &params, nil
}
