package models

// ============================================================================
// FIELD LIMITS
// ============================================================================

const (
	// WorkspaceNameMaxLen is the maximum workspace name length
	WorkspaceNameMaxLen = 40

	// TaskMaxLen is the maximum todo title length
	TaskMaxLen = 60

	// DescriptionMaxLen is the maximum todo description length
	DescriptionMaxLen = 200

	// SubtaskNameMaxLen is the maximum subtask name length
	SubtaskNameMaxLen = 60
)

// ============================================================================
// DEFAULTS
// ============================================================================

// DefaultSubtaskName is used when a subtask is created without a name
const DefaultSubtaskName = "Untitled Subtask"

// DefaultWorkspaceName is used by the create-workspace modal before the user types
const DefaultWorkspaceName = "Untitled"

// ============================================================================
// ORDERING
// ============================================================================

// Direction for reordering a todo among its siblings
type Direction int

const (
	DirectionUp Direction = iota
	DirectionDown
)

// String returns the flag-friendly name of the direction
func (d Direction) String() string {
	if d == DirectionUp {
		return "up"
	}
	return "down"
}
