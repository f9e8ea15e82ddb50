// Command bindgen builds a checksummed component interface from a directory
// of declaration metadata and prints views of it: a summary, the FFI symbol
// table, a WIT rendering and the checksum.
package main

func main() {
	Execute()
}
