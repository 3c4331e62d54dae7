package main

import "github.com/SBSWP/itb-100-thermal-battery/cmd"

func main() {
	cmd.Execute()
}
