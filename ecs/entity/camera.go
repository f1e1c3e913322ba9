package entity

import (
	"fmt"

	"github.com/milk9111/shelter/common"
	"github.com/milk9111/shelter/ecs"
)

const cameraPrefab = "camera.yaml"

// NewCameraAt builds the camera prefab and centres it on p.
func NewCameraAt(w *ecs.World, p common.Vec) (ecs.Entity, error) {
	camera, err := BuildEntity(w, cameraPrefab)
	if err != nil {
		return 0, fmt.Errorf("camera: %w", err)
	}
	if err := SetEntityPosition(w, camera, p); err != nil {
		return 0, fmt.Errorf("camera: override transform: %w", err)
	}
	return camera, nil
}
