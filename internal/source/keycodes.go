package source

import "relayout/internal/keys"

// Linux input-event keycodes for the keys the pipeline cares about
// (linux/input-event-codes.h). Keys absent from the table are ignored.
const (
	codeLeftShift  = 42
	codeRightShift = 54
)

var keycodeNames = map[uint16]keys.PhysicalKey{
	1:  "escape",
	2:  "1",
	3:  "2",
	4:  "3",
	5:  "4",
	6:  "5",
	7:  "6",
	8:  "7",
	9:  "8",
	10: "9",
	11: "0",
	12: "-",
	13: "=",
	14: "backspace",
	15: "tab",
	16: "q",
	17: "w",
	18: "e",
	19: "r",
	20: "t",
	21: "y",
	22: "u",
	23: "i",
	24: "o",
	25: "p",
	26: "[",
	27: "]",
	28: "enter",
	29: "leftctrl",
	30: "a",
	31: "s",
	32: "d",
	33: "f",
	34: "g",
	35: "h",
	36: "j",
	37: "k",
	38: "l",
	39: ";",
	40: "'",
	41: "`",
	42: "leftshift",
	43: "\\",
	44: "z",
	45: "x",
	46: "c",
	47: "v",
	48: "b",
	49: "n",
	50: "m",
	51: ",",
	52: ".",
	53: "/",
	54: "rightshift",
	56: "leftalt",
	57: "space",
	58: "capslock",

	96:  "enter", // keypad enter
	97:  "rightctrl",
	100: "rightalt",
	102: "home",
	103: "up",
	104: "pageup",
	105: "left",
	106: "right",
	107: "end",
	108: "down",
	109: "pagedown",
	110: "insert",
	111: "delete",
	125: "leftmeta",
	126: "rightmeta",
}
