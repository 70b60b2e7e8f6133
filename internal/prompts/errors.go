package prompts

import "errors"

// ErrInvalidStage is returned for an unknown stage name.
var ErrInvalidStage = errors.New("stage must be objectives, knowledge, activities, or assessment")
