// Command arbor loads, inspects and runs behavior-tree documents.
package main

func main() {
	Execute()
}
