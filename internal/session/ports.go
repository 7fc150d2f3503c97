package session

import "github.com/Aman-CERP/postsearch/internal/render"

// Ports is everything the session needs from the surface hosting the search
// panel. The terminal UI implements it; tests use a fake.
type Ports interface {
	// InputValue returns the current text of the search input.
	InputValue() string
	// SetInputValue replaces the text of the search input.
	SetInputValue(v string)
	// SetResults replaces the content of the results container.
	SetResults(list render.ResultList)
	// SetPanelVisible shows or hides the search panel.
	SetPanelVisible(visible bool)
	// FocusInput moves keyboard focus to the search input.
	FocusInput()
}
