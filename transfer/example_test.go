package transfer_test

import (
	"fmt"

	"github.com/adamwoolhether/easyhttp/transfer"
)

func ExampleHandle_Escape() {
	h := transfer.NewDefault()
	defer h.Close()

	escaped := h.Escape("lol and stuff")
	fmt.Println(escaped)
	fmt.Println(h.Unescape(escaped))
	// Output:
	// lol%20and%20stuff
	// lol and stuff
}
