package gcrt

import (
	"fmt"
	"os"
)

// PrintNum writes n as decimal followed by a newline, and returns 0.
func PrintNum(n int64) int64 {
	fmt.Fprintf(os.Stdout, "%d\n", n)
	return 0
}

// PrintChar writes the low 8 bits of c with no trailing newline, and
// returns 0.
func PrintChar(c int64) int64 {
	os.Stdout.Write([]byte{byte(c)})
	return 0
}

// Panic prints msg and a newline, then exits 0 — every fatal path in this
// runtime funnels through here or through Collector.panicf, which has the
// same shape scoped to a Collector's own trace writer.
func Panic(msg string) {
	fmt.Fprintln(os.Stdout, msg)
	os.Exit(0)
}
