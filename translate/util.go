package translate

import "fmt"

// ptrString returns a stable per-process identity string for any pointer
// value, used to compose cache keys without comparing matrix contents.
func ptrString(p interface{}) string {
	return fmt.Sprintf("%p", p)
}
