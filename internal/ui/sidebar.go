package ui

import (
	"fmt"
	"time"
)

// Sidebar geometry, in CSS pixels
const (
	SidebarMinWidth    = 240
	SidebarMaxWidth    = 480
	SidebarMobileWidth = 400
	MobileBreakpoint   = 768

	// AnimationDuration is how long reset and collapse transitions run
	AnimationDuration = 300 * time.Millisecond
)

// Clock returns the current time. Tests swap it for a fake.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock is the wall clock
var SystemClock Clock = systemClock{}

// Layout is the sidebar and navbar geometry sent to the browser as signals
type Layout struct {
	SidebarWidth string `json:"sidebarWidth"`
	NavbarLeft   string `json:"navbarLeft"`
	NavbarWidth  string `json:"navbarWidth"`
	IsCollapsed  bool   `json:"isCollapsed"`
	IsResetting  bool   `json:"isResetting"`
	IsResizing   bool   `json:"isResizing"`
	IsMobile     bool   `json:"isMobile"`
}

// Sidebar tracks the resizable navigation sidebar for one session.
// It is not safe for concurrent use; State serializes access.
type Sidebar struct {
	clock Clock

	// width is the sidebar width in pixels, 0 when collapsed
	width int

	// navbarLeft and navbarWidth are CSS values for the navbar beside the sidebar
	navbarLeft  string
	navbarWidth string

	collapsed bool
	mobile    bool

	// resizing is true between pointer-down on the handle and pointer-up
	resizing bool

	// attached and detached count move/up listener registrations
	attached int
	detached int

	// animatingUntil is when the current reset or collapse transition ends
	animatingUntil time.Time
}

// NewSidebar creates a sidebar for a viewport of the given width.
// Narrow viewports start collapsed; 0 means unknown and is treated as desktop.
func NewSidebar(clock Clock, viewportWidth int) *Sidebar {
	if clock == nil {
		clock = SystemClock
	}
	s := &Sidebar{clock: clock, mobile: isMobileWidth(viewportWidth)}
	if s.mobile {
		s.setCollapsed()
	} else {
		s.setWidth(SidebarMinWidth)
		s.navbarLeft = fmt.Sprintf("%dpx", SidebarMinWidth)
		s.navbarWidth = fmt.Sprintf("calc(100%% - %dpx)", SidebarMinWidth)
	}
	return s
}

func isMobileWidth(viewportWidth int) bool {
	return viewportWidth > 0 && viewportWidth <= MobileBreakpoint
}

// PointerDown starts a resize session and attaches the move/up listeners.
// A second pointer-down inside the same session attaches nothing.
func (s *Sidebar) PointerDown() bool {
	if s.resizing {
		return false
	}
	s.resizing = true
	s.attached++
	return true
}

// PointerMove resizes to clientX, clamped to [SidebarMinWidth, SidebarMaxWidth].
// Moves outside a resize session are ignored.
func (s *Sidebar) PointerMove(clientX int) bool {
	if !s.resizing {
		return false
	}
	w := clampWidth(clientX)
	s.collapsed = false
	s.setWidth(w)
	s.navbarLeft = fmt.Sprintf("%dpx", w)
	s.navbarWidth = fmt.Sprintf("calc(100%% - %dpx)", w)
	return true
}

// PointerUp ends the resize session and detaches the listeners
func (s *Sidebar) PointerUp() bool {
	if !s.resizing {
		return false
	}
	s.resizing = false
	s.detached++
	return true
}

func clampWidth(w int) int {
	if w < SidebarMinWidth {
		return SidebarMinWidth
	}
	if w > SidebarMaxWidth {
		return SidebarMaxWidth
	}
	return w
}

// ResetWidth expands the sidebar to its default width and starts the transition
func (s *Sidebar) ResetWidth() {
	s.collapsed = false
	if s.mobile {
		s.setWidth(SidebarMobileWidth)
		s.navbarWidth = "100%"
		s.navbarLeft = "0"
	} else {
		s.setWidth(SidebarMinWidth)
		s.navbarWidth = fmt.Sprintf("calc(100%% - %dpx)", SidebarMinWidth)
		s.navbarLeft = fmt.Sprintf("%dpx", SidebarMinWidth)
	}
	s.animate()
}

// Collapse hides the sidebar and starts the transition
func (s *Sidebar) Collapse() {
	s.setCollapsed()
	s.animate()
}

func (s *Sidebar) setCollapsed() {
	s.collapsed = true
	s.setWidth(0)
	s.navbarWidth = "100%"
	s.navbarLeft = "0"
}

func (s *Sidebar) setWidth(w int) {
	s.width = w
}

func (s *Sidebar) animate() {
	s.animatingUntil = s.clock.Now().Add(AnimationDuration)
}

// SetViewport records a new viewport width. Crossing into mobile collapses the
// sidebar, crossing back to desktop resets it. Reports whether mode changed.
func (s *Sidebar) SetViewport(viewportWidth int) bool {
	mobile := isMobileWidth(viewportWidth)
	if mobile == s.mobile {
		return false
	}
	s.mobile = mobile
	if mobile {
		s.Collapse()
	} else {
		s.ResetWidth()
	}
	return true
}

// RouteChanged collapses the sidebar on mobile so the new page is visible
func (s *Sidebar) RouteChanged() {
	if s.mobile {
		s.Collapse()
	}
}

// Animating reports whether a reset or collapse transition is still running
func (s *Sidebar) Animating() bool {
	return s.clock.Now().Before(s.animatingUntil)
}

// AnimationEnds returns when the current transition finishes
func (s *Sidebar) AnimationEnds() time.Time {
	return s.animatingUntil
}

// Width returns the sidebar width in pixels
func (s *Sidebar) Width() int { return s.width }

// Collapsed reports whether the sidebar is hidden
func (s *Sidebar) Collapsed() bool { return s.collapsed }

// Mobile reports whether the last viewport was narrow
func (s *Sidebar) Mobile() bool { return s.mobile }

// Listeners returns how many times move/up listeners were attached and detached
func (s *Sidebar) Listeners() (attached, detached int) {
	return s.attached, s.detached
}

// Layout returns the current geometry
func (s *Sidebar) Layout() Layout {
	return Layout{
		SidebarWidth: fmt.Sprintf("%dpx", s.width),
		NavbarLeft:   s.navbarLeft,
		NavbarWidth:  s.navbarWidth,
		IsCollapsed:  s.collapsed,
		IsResetting:  s.Animating(),
		IsResizing:   s.resizing,
		IsMobile:     s.mobile,
	}
}
