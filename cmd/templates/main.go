// Command templates renders template invocations from the command line and
// serves the component over stdio, HTTP and MCP.
package main

func main() {
	Execute()
}
