package main

import "inventoryManagement/internal/cmd"

func main() {
	cmd.Execute()
}
