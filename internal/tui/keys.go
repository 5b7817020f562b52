package tui

// Key bindings of the browse model.
const (
	keyQuit      = "q"
	keyCtrlC     = "ctrl+c"
	keyEnter     = "enter"
	keyEsc       = "esc"
	keyBackspace = "backspace"
	keySlash     = "/"
	keySortPrice = "p"
	keySortTitle = "t"
	keyPrevPage  = "left"
	keyPrevVim   = "h"
	keyNextPage  = "right"
	keyNextVim   = "l"
	keyFirstPage = "g"
	keyLastPage  = "G"
	keyPageSize  = "z"
	keyCopy      = "y"
)
