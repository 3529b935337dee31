// Package input tracks edge-triggered keyboard and mouse button state for one
// window session.
package input

import (
	"fmt"
	"strconv"
	"strings"
)

// Key is a keyboard key code. Printable keys use their uppercase ASCII value.
type Key int

// MaxKeys bounds key codes tracked by a State.
const MaxKeys = 512

// Key codes.
const (
	KeyUnknown Key = -1

	KeySpace        Key = 32
	KeyApostrophe   Key = 39
	KeyComma        Key = 44
	KeyMinus        Key = 45
	KeyPeriod       Key = 46
	KeySlash        Key = 47
	Key0            Key = 48
	KeySemicolon    Key = 59
	KeyEqual        Key = 61
	KeyA            Key = 65
	KeyLeftBracket  Key = 91
	KeyBackslash    Key = 92
	KeyRightBracket Key = 93
	KeyGraveAccent  Key = 96
	KeyWorld1       Key = 161
	KeyWorld2       Key = 162

	KeyEscape      Key = 256
	KeyEnter       Key = 257
	KeyTab         Key = 258
	KeyBackspace   Key = 259
	KeyInsert      Key = 260
	KeyDelete      Key = 261
	KeyRight       Key = 262
	KeyLeft        Key = 263
	KeyDown        Key = 264
	KeyUp          Key = 265
	KeyPageUp      Key = 266
	KeyPageDown    Key = 267
	KeyHome        Key = 268
	KeyEnd         Key = 269
	KeyCapsLock    Key = 280
	KeyScrollLock  Key = 281
	KeyNumLock     Key = 282
	KeyPrintScreen Key = 283
	KeyPause       Key = 284
	KeyF1          Key = 290 // through KeyF1+24
	KeyKP0         Key = 320 // through KeyKP0+9
	KeyKPDecimal   Key = 330
	KeyKPDivide    Key = 331
	KeyKPMultiply  Key = 332
	KeyKPSubtract  Key = 333
	KeyKPAdd       Key = 334
	KeyKPEnter     Key = 335
	KeyKPEqual     Key = 336
	KeyLeftShift   Key = 340
	KeyLeftControl Key = 341
	KeyLeftAlt     Key = 342
	KeyLeftSuper   Key = 343
	KeyRightShift  Key = 344
	KeyRightCtrl   Key = 345
	KeyRightAlt    Key = 346
	KeyRightSuper  Key = 347
	KeyMenu        Key = 348
)

const (
	maxFunctionKey = 25
	maxKeypadDigit = 9
)

var namedKeys = map[string]Key{
	"space":        KeySpace,
	"world1":       KeyWorld1,
	"world2":       KeyWorld2,
	"escape":       KeyEscape,
	"enter":        KeyEnter,
	"tab":          KeyTab,
	"backspace":    KeyBackspace,
	"insert":       KeyInsert,
	"delete":       KeyDelete,
	"right":        KeyRight,
	"left":         KeyLeft,
	"down":         KeyDown,
	"up":           KeyUp,
	"pageup":       KeyPageUp,
	"pagedown":     KeyPageDown,
	"home":         KeyHome,
	"end":          KeyEnd,
	"capslock":     KeyCapsLock,
	"scrolllock":   KeyScrollLock,
	"numlock":      KeyNumLock,
	"printscreen":  KeyPrintScreen,
	"pause":        KeyPause,
	"kpdecimal":    KeyKPDecimal,
	"kpdivide":     KeyKPDivide,
	"kpmultiply":   KeyKPMultiply,
	"kpsubtract":   KeyKPSubtract,
	"kpadd":        KeyKPAdd,
	"kpenter":      KeyKPEnter,
	"kpequal":      KeyKPEqual,
	"leftshift":    KeyLeftShift,
	"leftcontrol":  KeyLeftControl,
	"leftalt":      KeyLeftAlt,
	"leftsuper":    KeyLeftSuper,
	"rightshift":   KeyRightShift,
	"rightcontrol": KeyRightCtrl,
	"rightalt":     KeyRightAlt,
	"rightsuper":   KeyRightSuper,
	"menu":         KeyMenu,
}

// ParseKey maps a key name to its code. Single characters name printable keys
// (letters in either case); longer names are matched case-insensitively, with
// "f1".."f25" and "kp0".."kp9" for function and keypad digit keys. Anything
// else is KeyUnknown.
func ParseKey(name string) Key {
	if len(name) == 1 {
		return parseChar(name[0])
	}
	lower := strings.ToLower(name)
	if k, ok := namedKeys[lower]; ok {
		return k
	}
	if n, ok := numberSuffix(lower, "kp"); ok && n <= maxKeypadDigit {
		return KeyKP0 + Key(n)
	}
	if n, ok := numberSuffix(lower, "f"); ok && n >= 1 && n <= maxFunctionKey {
		return KeyF1 + Key(n-1)
	}
	return KeyUnknown
}

func parseChar(c byte) Key {
	switch {
	case c >= 'a' && c <= 'z':
		return KeyA + Key(c-'a')
	case c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		return Key(c)
	}
	switch Key(c) {
	case KeyApostrophe, KeyComma, KeyMinus, KeyPeriod, KeySlash, KeySemicolon,
		KeyEqual, KeyLeftBracket, KeyBackslash, KeyRightBracket, KeyGraveAccent:
		return Key(c)
	}
	return KeyUnknown
}

func numberSuffix(s, prefix string) (int, bool) {
	rest, ok := strings.CutPrefix(s, prefix)
	if !ok || rest == "" {
		return 0, false
	}
	n, err := strconv.Atoi(rest)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

// String returns a name ParseKey accepts.
func (k Key) String() string {
	switch {
	case k == KeySpace:
		return "space"
	case k > KeySpace && k < 128:
		return strings.ToLower(string(rune(k)))
	case k >= KeyF1 && k < KeyF1+maxFunctionKey:
		return fmt.Sprintf("f%d", k-KeyF1+1)
	case k >= KeyKP0 && k <= KeyKP0+maxKeypadDigit:
		return fmt.Sprintf("kp%d", k-KeyKP0)
	}
	for name, v := range namedKeys {
		if v == k {
			return name
		}
	}
	return "unknown"
}
