package main

import "todo-assist.com/todo-assist/cmd"

func main() {
	cmd.Execute()
}
