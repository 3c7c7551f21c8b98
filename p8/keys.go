package p8

// Key names a host key. Presenters translate their native key codes
// into these names; letters and digits use their lower-case character.
type Key string

const (
	KeyLeft   Key = "left"
	KeyRight  Key = "right"
	KeyUp     Key = "up"
	KeyDown   Key = "down"
	KeyEnter  Key = "enter"
	KeyEscape Key = "esc"
	KeyShift  Key = "shift"
	KeyF1     Key = "f1"
	KeyF2     Key = "f2"
	KeyF6     Key = "f6"
)

// KeyEvent is a key press or release.
type KeyEvent struct {
	Key  Key
	Down bool
}

// Buttons, as numbered by btn.
const (
	ButtonLeft = iota
	ButtonRight
	ButtonUp
	ButtonDown
	ButtonJump
	ButtonDash
	numButtons
)

// controlScheme maps each button, and pause, to a host key.
type controlScheme struct {
	buttons [numButtons]Key
	pause   Key
}

var controlSchemes = [...]controlScheme{
	{[numButtons]Key{KeyLeft, KeyRight, KeyUp, KeyDown, "z", "x"}, KeyEnter},
	{[numButtons]Key{"a", "d", "w", "s", "n", "m"}, "p"},
	{[numButtons]Key{"h", "l", "k", "j", "c", "v"}, KeyEnter},
}

// NumControlSchemes is the number of selectable control schemes.
const NumControlSchemes = len(controlSchemes)

// Fixed hotkeys, independent of the control scheme.
const (
	keyExit     = KeyEscape
	keySave     = KeyF1
	keyLoad     = KeyF2
	keyReset    = KeyF6
	keyShake    = Key("7")
	keyScale    = Key("8")
	keyControls = Key("9")
)
