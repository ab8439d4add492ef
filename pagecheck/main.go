package main

import (
	"github.com/codeready-toolchain/toolchain-pageobjects/pagecheck/cmd"
)

func main() {
	cmd.Execute()
}
