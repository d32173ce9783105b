package protocol

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// RotationEvent represents a single face rotation from the cube.
type RotationEvent struct {
	FaceCode          byte   `json:"face_code"`          // Raw face+direction code (0x00-0x0B)
	CenterOrientation byte   `json:"center_orientation"` // Center piece orientation
	Clockwise         bool   `json:"clockwise"`          // Direction of rotation
	Color             string `json:"color"`              // Center color of the turned face
}

// BatteryEvent represents a battery level notification.
type BatteryEvent struct {
	Level int `json:"level"` // 0-100 percentage
}

// CubeTypeEvent represents a cube type notification.
type CubeTypeEvent struct {
	TypeCode byte   `json:"type_code"`
	TypeName string `json:"type_name"`
}

// OrientationEvent represents a cube orientation notification.
type OrientationEvent struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
	W float64 `json:"w"`

	// Derived discrete orientation
	UpFace    string `json:"up_face"`    // Which face is pointing up (U, D, F, B, R, L)
	FrontFace string `json:"front_face"` // Which face is facing the solver
}

// Color index to name mapping used by rotation face codes.
var colorNames = map[byte]string{
	0: "blue",
	1: "green",
	2: "white",
	3: "yellow",
	4: "red",
	5: "orange",
}

// DecodeRotation decodes a rotation message payload into rotation events.
// Rotation payloads contain pairs of bytes: [face_dir] [center_orientation]
func DecodeRotation(payload []byte) ([]RotationEvent, error) {
	if len(payload)%2 != 0 {
		return nil, fmt.Errorf("rotation payload must have even length, got %d", len(payload))
	}

	var events []RotationEvent
	for i := 0; i < len(payload); i += 2 {
		faceCode := payload[i]
		centerOrient := payload[i+1]

		// Even codes are clockwise, odd codes counter-clockwise.
		clockwise := faceCode%2 == 0
		colorIdx := faceCode / 2

		colorName, ok := colorNames[colorIdx]
		if !ok {
			return nil, fmt.Errorf("unknown color index %d from face code 0x%02X", colorIdx, faceCode)
		}

		events = append(events, RotationEvent{
			FaceCode:          faceCode,
			CenterOrientation: centerOrient,
			Clockwise:         clockwise,
			Color:             colorName,
		})
	}

	return events, nil
}

// DecodeBattery decodes a battery message payload.
func DecodeBattery(payload []byte) (*BatteryEvent, error) {
	if len(payload) < 1 {
		return nil, fmt.Errorf("battery payload too short")
	}
	return &BatteryEvent{
		Level: int(payload[0]),
	}, nil
}

// DecodeCubeType decodes a cube type message payload.
func DecodeCubeType(payload []byte) (*CubeTypeEvent, error) {
	if len(payload) < 1 {
		return nil, fmt.Errorf("cube type payload too short")
	}

	typeName := "standard"
	if payload[0] == 0x01 {
		typeName = "edge"
	}

	return &CubeTypeEvent{
		TypeCode: payload[0],
		TypeName: typeName,
	}, nil
}

// DecodeOrientation decodes an orientation message payload.
// Format: ASCII string "x#y#z#w" where # is the separator.
func DecodeOrientation(payload []byte) (*OrientationEvent, error) {
	parts := strings.Split(string(payload), "#")
	if len(parts) != 4 {
		return nil, fmt.Errorf("orientation payload must have 4 parts, got %d", len(parts))
	}

	var q [4]float64
	for i, name := range []string{"x", "y", "z", "w"} {
		v, err := strconv.ParseFloat(leadingNumber(parts[i]), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid %s value: %w", name, err)
		}
		q[i] = v
	}

	event := &OrientationEvent{X: q[0], Y: q[1], Z: q[2], W: q[3]}
	event.UpFace, event.FrontFace = quaternionToFaces(q[0], q[1], q[2], q[3])
	return event, nil
}

// leadingNumber returns the numeric prefix of s. The device may append
// stray bytes after the last field.
func leadingNumber(s string) string {
	end := 0
	for i, r := range s {
		if (r == '-' && i == 0) || r == '.' || (r >= '0' && r <= '9') {
			end = i + 1
			continue
		}
		break
	}
	return s[:end]
}

// quaternionToFaces converts a quaternion to discrete face orientations.
// Returns which cube face is pointing up and which is facing the solver.
func quaternionToFaces(x, y, z, w float64) (upFace, frontFace string) {
	// GoCube sends raw integer components.
	mag := math.Sqrt(x*x + y*y + z*z + w*w)
	if mag > 0 {
		x /= mag
		y /= mag
		z /= mag
		w /= mag
	}

	// Rotate the up vector (0, 1, 0) by the quaternion
	upX := 2 * (x*y - w*z)
	upY := 1 - 2*(x*x+z*z)
	upZ := 2 * (y*z + w*x)

	// Rotate the front vector (0, 0, 1) by the quaternion
	frontX := 2 * (x*z + w*y)
	frontY := 2 * (y*z - w*x)
	frontZ := 1 - 2*(x*x+y*y)

	return vectorToFace(upX, upY, upZ), vectorToFace(frontX, frontY, frontZ)
}

// vectorToFace determines which cube face a vector points to.
func vectorToFace(x, y, z float64) string {
	absX := math.Abs(x)
	absY := math.Abs(y)
	absZ := math.Abs(z)

	if absY >= absX && absY >= absZ {
		if y > 0 {
			return "U"
		}
		return "D"
	}
	if absZ >= absX && absZ >= absY {
		if z > 0 {
			return "F"
		}
		return "B"
	}
	if x > 0 {
		return "R"
	}
	return "L"
}

// DecodeMessage decodes msg into its type name and a JSON payload for
// storage. Unknown types are stored as hex.
func DecodeMessage(msg *Message) (string, string, error) {
	eventType := MessageTypeName(msg.Type)

	var v any
	var err error
	switch msg.Type {
	case MsgTypeRotation:
		v, err = DecodeRotation(msg.Payload)
	case MsgTypeBattery:
		v, err = DecodeBattery(msg.Payload)
	case MsgTypeCubeType:
		v, err = DecodeCubeType(msg.Payload)
	case MsgTypeOrientation:
		v, err = DecodeOrientation(msg.Payload)
	default:
		v = map[string]string{"hex": hex.EncodeToString(msg.Payload)}
	}
	if err != nil {
		return eventType, "", err
	}

	data, err := json.Marshal(v)
	if err != nil {
		return eventType, "", fmt.Errorf("failed to encode %s payload: %w", eventType, err)
	}
	return eventType, string(data), nil
}
