package input

// Button is a mouse button index.
type Button int

// MaxButtons bounds button indexes tracked by a State.
const MaxButtons = 8

// Mouse buttons.
const (
	ButtonLeft   Button = 1
	ButtonRight  Button = 2
	ButtonMiddle Button = 3
)

// State holds the current and previous input snapshot of one window. Each
// window owns its own State, so press edges in one never affect another.
// The zero value is ready to use.
type State struct {
	keys        [MaxKeys]bool
	prevKeys    [MaxKeys]bool
	buttons     [MaxButtons]bool
	prevButtons [MaxButtons]bool
}

// Update rolls the current snapshot into the previous one and records the
// keys and buttons that are down now. Out of range codes are ignored.
func (s *State) Update(keys []Key, buttons []Button) {
	s.prevKeys = s.keys
	s.prevButtons = s.buttons
	clear(s.keys[:])
	clear(s.buttons[:])

	for _, k := range keys {
		if validKey(k) {
			s.keys[k] = true
		}
	}
	for _, b := range buttons {
		if validButton(b) {
			s.buttons[b] = true
		}
	}
}

// KeyDown reports whether k is held.
func (s *State) KeyDown(k Key) bool {
	return validKey(k) && s.keys[k]
}

// KeyPressed reports whether k went down since the previous Update.
func (s *State) KeyPressed(k Key) bool {
	return validKey(k) && s.keys[k] && !s.prevKeys[k]
}

// ButtonDown reports whether b is held.
func (s *State) ButtonDown(b Button) bool {
	return validButton(b) && s.buttons[b]
}

// ButtonPressed reports whether b went down since the previous Update.
func (s *State) ButtonPressed(b Button) bool {
	return validButton(b) && s.buttons[b] && !s.prevButtons[b]
}

func validKey(k Key) bool { return k >= 0 && k < MaxKeys }

func validButton(b Button) bool { return b >= 0 && b < MaxButtons }
