package ui

// ModalKind identifies which modal is open
type ModalKind int

const (
	ModalNone              ModalKind = iota // Nothing open
	ModalEditingTask                        // Edit task sheet for one todo
	ModalCreatingWorkspace                  // New workspace dialog
	ModalEditingProfile                     // Account profile
	ModalSharingWorkspace                   // Share dialog for one workspace
)

// String returns the name templates use to pick the modal fragment
func (k ModalKind) String() string {
	switch k {
	case ModalEditingTask:
		return "editTask"
	case ModalCreatingWorkspace:
		return "createWorkspace"
	case ModalEditingProfile:
		return "profile"
	case ModalSharingWorkspace:
		return "share"
	default:
		return "none"
	}
}

// Modal is the one modal a session has open, together with the entity it is
// about. The zero value is no modal.
type Modal struct {
	kind        ModalKind
	todoID      int
	workspaceID int
}

// NoModal is the closed state
func NoModal() Modal { return Modal{} }

// EditingTask opens the edit sheet for todoID
func EditingTask(todoID int) Modal {
	return Modal{kind: ModalEditingTask, todoID: todoID}
}

// CreatingWorkspace opens the new workspace dialog
func CreatingWorkspace() Modal {
	return Modal{kind: ModalCreatingWorkspace}
}

// EditingProfile opens the profile modal
func EditingProfile() Modal {
	return Modal{kind: ModalEditingProfile}
}

// SharingWorkspace opens the share dialog for workspaceID
func SharingWorkspace(workspaceID int) Modal {
	return Modal{kind: ModalSharingWorkspace, workspaceID: workspaceID}
}

// Kind returns which modal this is
func (m Modal) Kind() ModalKind { return m.kind }

// IsOpen reports whether any modal is open
func (m Modal) IsOpen() bool { return m.kind != ModalNone }

// TodoID returns the todo being edited, if this is the edit task modal
func (m Modal) TodoID() (int, bool) {
	return m.todoID, m.kind == ModalEditingTask
}

// WorkspaceID returns the workspace being shared, if this is the share modal
func (m Modal) WorkspaceID() (int, bool) {
	return m.workspaceID, m.kind == ModalSharingWorkspace
}
