package camera

import "github.com/Faultbox/hamsterrun/pkg/math"

// AlignToPlayer orients a marker so its forward follows the player's up and
// its face turns toward the camera.
func AlignToPlayer(playerUp, cameraForward math.Vec3) math.Quat {
	return math.QuatLookRotation(playerUp, cameraForward.Neg())
}

// FaceCamera orients an upright billboard toward the camera.
func FaceCamera(cameraForward math.Vec3) math.Quat {
	return math.QuatLookRotation(cameraForward.Neg(), math.Up)
}
